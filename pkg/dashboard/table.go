package dashboard

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/table"
)

// WriteTable renders the statistic cards and the per-metric summary as text tables.
func WriteTable(out io.Writer, r *Report) error {
	ds := r.Dataset

	general := table.NewWriter()
	general.SetOutputMirror(out)
	general.SetStyle(table.StyleLight)
	general.SetTitle("COVID-19 Tracker: %s (as of %s)", ds.Country, FormatDate(ds.Range.To))
	general.AppendHeader(table.Row{"Statistic", "Value", ""})
	for _, c := range Cards(r) {
		general.AppendRow(table.Row{c.Header, c.Content, c.Footer})
	}
	general.Render()

	if _, err := fmt.Fprintln(out); err != nil {
		return err
	}

	hist := table.NewWriter()
	hist.SetOutputMirror(out)
	hist.SetStyle(table.StyleLight)
	hist.SetTitle("Historical: from %s to %s", FormatDate(ds.Range.From), FormatDate(ds.Range.To))
	hist.AppendHeader(table.Row{"Metric", "Latest", "Average Per Day", "Overall", "Highest Recorded", "Highest On", "Growth 7d"})
	rows := make([]table.Row, 0, 3)
	for _, b := range ds.Bundles() {
		s := b.Summary
		rows = append(rows, table.Row{
			MetricTitle(b.Metric),
			"+" + FormatCount(s.Latest.Value),
			FormatCount(s.AveragePerDay),
			FormatCount(s.Overall.Value),
			FormatCount(s.Highest.Value),
			FormatDate(s.Highest.Date),
			FormatPercent(s.GrowthRate7d),
		})
	}
	hist.AppendRows(rows)
	hist.AppendFooter(table.Row{"Active", "", "", FormatCount(r.Overview.Active), "", "", ""})
	hist.Render()

	return nil
}
