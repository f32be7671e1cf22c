package dashboard

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/studio-b12/gowebdav"
)

// Publisher uploads rendered reports to a WebDAV share.
type Publisher struct {
	client *gowebdav.Client
	root   string
}

func NewPublisher(url, user, password, root string) *Publisher {
	if root == "" {
		root = "/"
	}
	return &Publisher{
		client: gowebdav.NewClient(url, user, password),
		root:   root,
	}
}

// ReportFileName is the workbook name for a report, e.g. covid-philippines-20200104.xlsx.
func ReportFileName(r *Report) string {
	country := strings.ToLower(strings.ReplaceAll(r.Dataset.Country, " ", "-"))
	return fmt.Sprintf("covid-%s-%s.xlsx", country, r.Dataset.Range.To.Format("20060102"))
}

// PublishXlsx renders the report as a workbook and stores it under the root
// directory. It returns the remote path.
func (p *Publisher) PublishXlsx(r *Report) (string, error) {
	var buf bytes.Buffer
	if err := WriteXlsx(&buf, r); err != nil {
		return "", err
	}

	if p.root != "/" {
		if err := p.client.MkdirAll(p.root, os.ModePerm); err != nil {
			log.WithFields(log.Fields{"root": p.root, "err": err}).Error("cannot create remote directory")
			return "", err
		}
	}

	remote := path.Join(p.root, ReportFileName(r))
	start := time.Now()
	if err := p.client.Write(remote, buf.Bytes(), 0644); err != nil {
		log.WithFields(log.Fields{"path": remote, "err": err}).Error("cannot upload report")
		return "", err
	}
	log.WithFields(log.Fields{"path": remote, "bytes": buf.Len(), "took": time.Since(start)}).Info("report uploaded")
	return remote, nil
}
