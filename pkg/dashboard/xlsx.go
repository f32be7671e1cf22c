package dashboard

import (
	"io"
	"time"

	"github.com/tealeg/xlsx"
)

const SummarySheet = "summary"

// WriteXlsx writes a workbook with a summary sheet and the daily series of
// every metric.
func WriteXlsx(out io.Writer, r *Report) error {
	f, err := BuildWorkbook(r)
	if err != nil {
		return err
	}
	return f.Write(out)
}

func BuildWorkbook(r *Report) (*xlsx.File, error) {
	ds := r.Dataset
	f := xlsx.NewFile()

	summary, err := f.AddSheet(SummarySheet)
	if err != nil {
		return nil, err
	}
	addStrings(summary, "Country", ds.Country)
	addStrings(summary, "From", FormatDate(ds.Range.From))
	addStrings(summary, "To", FormatDate(ds.Range.To))
	addStrings(summary, "Generated", r.Generated.UTC().Format(time.RFC3339))
	for _, c := range Cards(r) {
		addStrings(summary, c.Header, c.Content, c.Footer)
	}

	headerStyle := xlsx.NewStyle()
	headerStyle.Font.Bold = true
	headerStyle.ApplyFont = true

	for _, b := range ds.Bundles() {
		sh, err := f.AddSheet(string(b.Metric))
		if err != nil {
			return nil, err
		}
		header := sh.AddRow()
		for _, title := range []string{"Date", "Cumulative", "Per Day"} {
			c := header.AddCell()
			c.SetString(title)
			c.SetStyle(headerStyle)
		}
		for i, p := range b.Cumulative {
			row := sh.AddRow()
			row.AddCell().SetString(p.Date.Format("2006-01-02"))
			row.AddCell().SetInt(int(p.Value))
			row.AddCell().SetInt(int(b.Daily[i].Value))
		}
	}

	return f, nil
}

func addStrings(sh *xlsx.Sheet, values ...string) {
	row := sh.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}
