package dashboard

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studio-b12/gowebdav"
	"github.com/tealeg/xlsx"
	"golang.org/x/net/webdav"
)

func TestPublishXlsx(t *testing.T) {
	srv := httptest.NewServer(&webdav.Handler{
		FileSystem: webdav.NewMemFS(),
		LockSystem: webdav.NewMemLS(),
	})
	defer srv.Close()

	r := sampleReport(t)
	p := NewPublisher(srv.URL, "", "", "/reports/covid")
	remote, err := p.PublishXlsx(r)
	require.NoError(t, err)
	assert.Equal(t, "/reports/covid/covid-philippines-20200108.xlsx", remote)

	data, err := gowebdav.NewClient(srv.URL, "", "").Read(remote)
	require.NoError(t, err)
	f, err := xlsx.OpenBinary(data)
	require.NoError(t, err)
	assert.Contains(t, f.Sheet, SummarySheet)
}

func TestReportFileName(t *testing.T) {
	r := sampleReport(t)
	r.Dataset.Country = "South Korea"
	assert.Equal(t, "covid-south-korea-20200108.xlsx", ReportFileName(r))
}
