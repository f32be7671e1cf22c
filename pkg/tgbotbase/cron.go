package tgbotbase

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

// Cron runs jobs at the requested wall-clock time.
type Cron interface {
	AddJob(when time.Time, job CronJob)
}

// CronJob is executed once its time has come. Recurring jobs reschedule
// themselves through the passed Cron.
type CronJob interface {
	Do(scheduledWhen time.Time, cron Cron)
}

type cronEntry struct {
	when time.Time
	job  CronJob
}

type cron struct {
	ctx      context.Context
	newJobCh chan cronEntry
	timer    *time.Timer

	// ordered by when; jobs with equal time keep arrival order
	queue []cronEntry
}

// NewCron starts a scheduler which lives until ctx is cancelled.
func NewCron(ctx context.Context) Cron {
	c := &cron{
		ctx:      ctx,
		newJobCh: make(chan cronEntry),
		timer:    time.NewTimer(time.Hour),
	}
	c.timer.Stop()

	go c.run()
	log.Debug("cron: started")
	return c
}

func (c *cron) AddJob(when time.Time, job CronJob) {
	select {
	case c.newJobCh <- cronEntry{when: when, job: job}:
	case <-c.ctx.Done():
		log.WithField("when", when).Debug("cron: stopped, job dropped")
	}
}

func (c *cron) enqueue(e cronEntry) {
	pos := slices.IndexFunc(c.queue, func(q cronEntry) bool {
		return q.when.After(e.when)
	})
	if pos < 0 {
		c.queue = append(c.queue, e)
	} else {
		c.queue = slices.Insert(c.queue, pos, e)
	}
	log.WithFields(log.Fields{"when": e.when, "queued": len(c.queue)}).Debug("cron: job added")
}

// popDue removes and returns every job scheduled at or before now.
func (c *cron) popDue(now time.Time) []cronEntry {
	n := 0
	for n < len(c.queue) && !c.queue[n].when.After(now) {
		n++
	}
	due := slices.Clone(c.queue[:n])
	c.queue = slices.Delete(c.queue, 0, n)
	return due
}

func (c *cron) resetTimer(now time.Time) {
	c.timer.Stop()
	if len(c.queue) == 0 {
		return
	}
	next := c.queue[0].when.Sub(now)
	if next < 0 {
		next = 0
	}
	c.timer.Reset(next)
}

func (c *cron) run() {
	for {
		select {
		case <-c.ctx.Done():
			c.timer.Stop()
			log.WithField("pending", len(c.queue)).Debug("cron: stopped")
			return
		case e := <-c.newJobCh:
			c.enqueue(e)
			c.resetTimer(time.Now())
		case now := <-c.timer.C:
			due := c.popDue(now)
			for _, e := range due {
				log.WithFields(log.Fields{"scheduled": e.when, "late": now.Sub(e.when)}).Debug("cron: executing job")
				go e.job.Do(e.when, c)
			}
			c.resetTimer(now)
		}
	}
}

// CalcNextTimeFromMidnight returns the first moment not earlier than now
// which is fromMidnight past a local midnight.
func CalcNextTimeFromMidnight(now time.Time, fromMidnight time.Duration) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	next := midnight.Add(fromMidnight)
	if next.Before(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}
