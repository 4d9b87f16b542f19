package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/midimap/tsidump/dcdt"
)

// Package report renders a decode result for humans: a channel-grouped
// text table, or JSON records for anyone who wants to post-process.

// WriteTable writes the mapping table grouped by channel, a section of
// unidentified segments, and the summary counts.
func WriteTable(w io.Writer, result *dcdt.Result) error {
	byChannel := make(map[int][]dcdt.Mapping)
	var unidentified []dcdt.Mapping
	for _, m := range result.Mappings {
		if m.Identifier == nil {
			unidentified = append(unidentified, m)
			continue
		}
		byChannel[m.Identifier.Channel] = append(byChannel[m.Identifier.Channel], m)
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	for channel := 1; channel <= 16; channel++ {
		mappings := byChannel[channel]
		if len(mappings) == 0 {
			continue
		}
		fmt.Fprintf(tw, "Channel %d\n", channel)
		for _, m := range mappings {
			label := m.Label
			if label == "" {
				label = "-"
			}
			kindNum := m.Identifier.Kind.String()
			if m.Identifier.Kind != dcdt.KindPitchBend {
				kindNum = fmt.Sprintf("%s %d", m.Identifier.Kind, m.Identifier.Number)
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\toffset %d\n", kindNum, label, m.Confidence, m.Offset)
		}
	}

	if len(unidentified) > 0 {
		fmt.Fprintf(tw, "Unidentified segments\n")
		for _, m := range unidentified {
			fmt.Fprintf(tw, "  offset %d\n", m.Offset)
		}
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	return writeSummary(w, result)
}

func writeSummary(w io.Writer, result *dcdt.Result) error {
	s := result.Summary()
	_, err := fmt.Fprintf(w,
		"\n%d segments, %d identified, %d labeled, %d confirmed, %d truncated\n",
		s.Segments, s.Identified, s.Labeled, s.Confirmed, s.Truncated)
	if err != nil {
		return err
	}
	for _, te := range result.Truncated {
		if _, err := fmt.Fprintf(w, "skipped: %s\n", te); err != nil {
			return err
		}
	}
	return nil
}

// jsonReport is the stable JSON shape; errors are flattened to strings
// since they are only read by humans.
type jsonReport struct {
	Mappings []dcdt.Mapping `json:"mappings"`
	Skipped  []string       `json:"skipped,omitempty"`
	Summary  dcdt.Summary   `json:"summary"`
}

// WriteJSON writes the same data as WriteTable, as one JSON document.
func WriteJSON(w io.Writer, result *dcdt.Result) error {
	rep := jsonReport{
		Mappings: result.Mappings,
		Summary:  result.Summary(),
	}
	for _, te := range result.Truncated {
		rep.Skipped = append(rep.Skipped, te.Error())
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
