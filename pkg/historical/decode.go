package historical

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ilyalavrinov/covidtracker/pkg/covidstats"
)

type historicalDTO struct {
	Country  string       `json:"country"`
	Timeline *timelineDTO `json:"timeline"`
}

type timelineDTO struct {
	Cases     orderedCounts `json:"cases"`
	Deaths    orderedCounts `json:"deaths"`
	Recovered orderedCounts `json:"recovered"`
}

func (t timelineDTO) toTimeline() covidstats.Timeline {
	return covidstats.Timeline{
		Cases:     covidstats.RawSeries(t.Cases),
		Deaths:    covidstats.RawSeries(t.Deaths),
		Recovered: covidstats.RawSeries(t.Recovered),
	}
}

type countryDTO struct {
	Country    string `json:"country"`
	Population int64  `json:"population"`
}

// orderedCounts decodes a date -> count object keeping the key order of the
// document. Values stay textual; covidstats.Normalize validates them.
type orderedCounts covidstats.RawSeries

func (o *orderedCounts) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected an object of counts, got %v", tok)
	}

	var out covidstats.RawSeries
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected key %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("value of %q: %w", key, err)
		}
		out = append(out, covidstats.RawPoint{Key: key, Value: rawValue(raw)})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*o = orderedCounts(out)
	return nil
}

func rawValue(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	switch {
	case bytes.Equal(raw, []byte("null")):
		return ""
	case len(raw) > 0 && raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}
