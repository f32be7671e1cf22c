// Command redisdbinit registers the named Redis databases the bot looks up
// through "db:<name>" keys, e.g. -db property=1.
package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

type dbList map[string]int

func (l dbList) String() string {
	parts := make([]string, 0, len(l))
	for name, id := range l {
		parts = append(parts, fmt.Sprintf("%s=%d", name, id))
	}
	return strings.Join(parts, ",")
}

func (l dbList) Set(v string) error {
	name, idStr, found := strings.Cut(v, "=")
	if !found || name == "" || strings.Contains(name, ":") {
		return fmt.Errorf("expected name=id, got %q", v)
	}
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return fmt.Errorf("db id for %q must be a positive number", name)
	}
	l[name] = id
	return nil
}

func register(ctx context.Context, conn *redis.Client, dbs dbList) error {
	for name, id := range dbs {
		key := "db:" + name
		if err := conn.Set(ctx, key, id, 0).Err(); err != nil {
			return fmt.Errorf("cannot set %s: %w", key, err)
		}
		log.WithFields(log.Fields{"name": name, "db": id}).Info("redis db registered")
	}
	return nil
}

func main() {
	addr := flag.String("addr", "localhost:6379", "redis address")
	pass := flag.String("pass", "", "redis password")
	dbs := dbList{"property": 1}
	flag.Var(dbs, "db", "name=id pair to register, may be repeated")
	flag.Parse()

	conn := redis.NewClient(&redis.Options{Addr: *addr, Password: *pass, DB: 0})
	defer conn.Close()

	if err := register(context.Background(), conn, dbs); err != nil {
		log.WithField("err", err).Fatal("registration failed")
	}
}
