package dashboard

import (
	"fmt"
	"strings"

	"github.com/ilyalavrinov/covidtracker/pkg/covidstats"
)

var markdownToEscape = []string{"\\", "`", "*", "_", "{", "}", "[", "]", "(", ")", "#", "+", "-", ".", "!", "|", "~", ">", "="}

// EscapeMarkdown escapes s for Telegram's MarkdownV2.
func EscapeMarkdown(s string) string {
	for _, e := range markdownToEscape {
		s = strings.ReplaceAll(s, e, "\\"+e)
	}
	return s
}

var metricIcons = map[covidstats.Metric]string{
	covidstats.Cases:     "🌡",
	covidstats.Deaths:    "💀",
	covidstats.Recovered: "💚",
}

// Markdown renders the report as a MarkdownV2 message.
func Markdown(r *Report) string {
	ds := r.Dataset
	o := r.Overview
	esc := EscapeMarkdown

	var sb strings.Builder
	fmt.Fprintf(&sb, "*%s*\n", esc("COVID-19: "+ds.Country))
	fmt.Fprintf(&sb, "_%s_\n", esc("as of "+FormatDate(ds.Range.To)))

	sb.WriteString("\n")
	for _, b := range ds.Bundles() {
		fmt.Fprintf(&sb, "%s %s: %s %s\n", metricIcons[b.Metric], esc(MetricTitle(b.Metric)),
			esc(FormatCount(b.Summary.Overall.Value)), esc(fmt.Sprintf("(+%s)", FormatCount(b.Summary.Latest.Value))))
	}
	fmt.Fprintf(&sb, "🤒 %s\n", esc("Active: "+FormatCount(o.Active)))

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%s\n", esc(fmt.Sprintf("Case growth (%d days): %s", covidstats.GrowthWindow, FormatPercent(ds.Cases.Summary.GrowthRate7d))))
	perMillion := Unavailable
	if o.CasesPerMillion.Available() {
		perMillion = FormatDecimal(o.CasesPerMillion.Value)
	}
	fmt.Fprintf(&sb, "%s\n", esc("Cases per million: "+perMillion))
	fmt.Fprintf(&sb, "%s\n", esc("Recovery rate: "+FormatPercent(o.RecoveryRate)))
	fmt.Fprintf(&sb, "%s\n", esc("Fatality rate: "+FormatPercent(o.FatalityRate)))

	sb.WriteString("\n*Highest in a day*\n")
	for _, b := range ds.Bundles() {
		h := b.Summary.Highest
		fmt.Fprintf(&sb, "%s\n", esc(fmt.Sprintf("%s: %s on %s", MetricTitle(b.Metric), FormatCount(h.Value), FormatDate(h.Date))))
	}

	sb.WriteString("\n*Average per day*\n")
	for _, b := range ds.Bundles() {
		fmt.Fprintf(&sb, "%s\n", esc(fmt.Sprintf("%s: %s", MetricTitle(b.Metric), FormatCount(b.Summary.AveragePerDay))))
	}

	fmt.Fprintf(&sb, "\n_%s_", esc(fmt.Sprintf("from %s to %s", FormatDate(ds.Range.From), FormatDate(ds.Range.To))))
	return sb.String()
}
