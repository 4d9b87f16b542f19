package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/midimap/tsidump/dcdt"
)

func testResult() *dcdt.Result {
	return &dcdt.Result{
		Mappings: []dcdt.Mapping{
			{
				Offset:     0,
				Identifier: &dcdt.Identifier{Channel: 1, Kind: dcdt.KindCC, Number: 46},
				Label:      "Deck A Play",
				Confidence: dcdt.Confirmed,
			},
			{
				Offset:     120,
				Identifier: &dcdt.Identifier{Channel: 1, Kind: dcdt.KindPitchBend},
			},
			{
				Offset:     240,
				Identifier: &dcdt.Identifier{Channel: 3, Kind: dcdt.KindNote, Number: 60},
			},
			{Offset: 360},
		},
		Truncated: []*dcdt.TruncatedSegmentError{
			{Offset: 500, DeclaredLength: 9999, PayloadLen: 600},
		},
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, testResult()); err != nil {
		t.Fatalf("write: %s", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Channel 1",
		"Channel 3",
		"CC 46",
		"Deck A Play",
		"PitchBend",
		"Note 60",
		"confirmed",
		"unverified",
		"Unidentified segments",
		"offset 360",
		"4 segments, 3 identified, 1 labeled, 1 confirmed, 1 truncated",
		"declared length 9999",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table output misses %q:\n%s", want, out)
		}
	}
}

func TestWriteTableGroupsByChannel(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, testResult()); err != nil {
		t.Fatalf("write: %s", err)
	}
	out := buf.String()

	if strings.Index(out, "Channel 1") > strings.Index(out, "Channel 3") {
		t.Errorf("channels out of order:\n%s", out)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, testResult()); err != nil {
		t.Fatalf("write: %s", err)
	}

	var decoded struct {
		Mappings []struct {
			Offset     int    `json:"offset"`
			Confidence string `json:"confidence"`
			Identifier *struct {
				Channel int    `json:"channel"`
				Kind    string `json:"kind"`
				Number  int    `json:"number"`
			} `json:"identifier"`
			Label string `json:"label"`
		} `json:"mappings"`
		Skipped []string `json:"skipped"`
		Summary struct {
			Segments   int `json:"segments"`
			Identified int `json:"identified"`
			Labeled    int `json:"labeled"`
			Confirmed  int `json:"confirmed"`
			Truncated  int `json:"truncated"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("unmarshal: %s", err)
	}

	if len(decoded.Mappings) != 4 {
		t.Fatalf("expected 4 mappings, got %d", len(decoded.Mappings))
	}
	first := decoded.Mappings[0]
	if first.Identifier == nil || first.Identifier.Channel != 1 ||
		first.Identifier.Kind != "CC" || first.Identifier.Number != 46 {
		t.Errorf("unexpected first identifier: %+v", first.Identifier)
	}
	if first.Confidence != "confirmed" || first.Label != "Deck A Play" {
		t.Errorf("unexpected first mapping: %+v", first)
	}
	if decoded.Mappings[3].Identifier != nil {
		t.Errorf("unidentified mapping must have a null identifier")
	}
	if len(decoded.Skipped) != 1 {
		t.Errorf("expected 1 skipped entry, got %d", len(decoded.Skipped))
	}
	s := decoded.Summary
	if s.Segments != 4 || s.Identified != 3 || s.Labeled != 1 || s.Confirmed != 1 || s.Truncated != 1 {
		t.Errorf("unexpected summary: %+v", s)
	}
}
