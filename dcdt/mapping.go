package dcdt

import (
	"fmt"
	"sort"

	"github.com/midimap/tsidump/memorywriter"
)

// Confidence says how much to trust a mapping. The decoder alone can
// never produce more than "unverified"; only a human confirming the
// mapping over a live MIDI connection upgrades it.
type Confidence int

const (
	Unverified Confidence = iota
	Confirmed
)

func (c Confidence) String() string {
	if c == Confirmed {
		return "confirmed"
	}
	return "unverified"
}

func (c Confidence) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Mapping is the decoder's output unit: one per discovered segment,
// whether or not the identifier or label could be decoded.
type Mapping struct {
	Offset     int         `json:"offset"`
	Identifier *Identifier `json:"identifier,omitempty"`
	Label      string      `json:"label,omitempty"`
	Confidence Confidence  `json:"confidence"`
}

// Summary is the count block reported alongside the mapping table.
type Summary struct {
	Segments   int `json:"segments"`
	Truncated  int `json:"truncated"`
	Identified int `json:"identified"`
	Labeled    int `json:"labeled"`
	Confirmed  int `json:"confirmed"`
}

// Result is a full decode of one payload.
type Result struct {
	Mappings  []Mapping
	Truncated []*TruncatedSegmentError
}

// Summary recounts the result. Computed on demand so that confidence
// upgrades from interactive verification show up.
func (r *Result) Summary() Summary {
	s := Summary{
		Segments:  len(r.Mappings),
		Truncated: len(r.Truncated),
	}
	for _, m := range r.Mappings {
		if m.Identifier != nil {
			s.Identified++
		}
		if m.Label != "" {
			s.Labeled++
		}
		if m.Confidence == Confirmed {
			s.Confirmed++
		}
	}
	return s
}

// Options parameterize a decode. Zero value means the DCDT signature,
// no vocabulary (so no labels) and no logging.
type Options struct {
	Signature  string
	Vocabulary []string
	Log        *memorywriter.MemoryWriter
}

func (o *Options) log(format string, args ...interface{}) {
	if o.Log == nil {
		return
	}
	o.Log.Log("dcdt - " + fmt.Sprintf(format, args...))
}

// Interpret decodes one mapping per segment, preserving discovery
// order. Segments whose identifier cannot be decoded are kept with a
// nil identifier so they can still be inspected manually.
func Interpret(segments []Segment, opts Options) []Mapping {
	mappings := make([]Mapping, 0, len(segments))
	for _, seg := range segments {
		m := Mapping{Offset: seg.Offset, Confidence: Unverified}

		id, idEnd, ok := parseIdentifier(seg.Raw)
		if ok {
			m.Identifier = id
		} else {
			opts.log("segment at %d: no control identifier", seg.Offset)
		}
		// label search needs a starting point, which is only known
		// when the leading string decoded at all
		if idEnd > 0 {
			m.Label = FindLabel(seg.Raw, idEnd, opts.Vocabulary)
		}

		mappings = append(mappings, m)
	}
	return mappings
}

// Decode runs the whole pipeline over a payload: scan for segments,
// then interpret each one. Pure function of its inputs; decoding the
// same payload twice yields identical results.
func Decode(payload []byte, opts Options) *Result {
	if opts.Signature == "" {
		opts.Signature = DefaultSignature
	}

	segments, truncated := Scan(payload, opts.Signature)
	opts.log("scanned %d bytes: %d segments, %d truncated", len(payload), len(segments), len(truncated))
	for _, te := range truncated {
		opts.log("%s", te)
	}

	return &Result{
		Mappings:  Interpret(segments, opts),
		Truncated: truncated,
	}
}

// SortMappings re-sorts mappings by (channel, number) for
// presentation. Unidentified mappings go last; the sort is stable, so
// discovery order is kept among equals.
func SortMappings(mappings []Mapping) {
	sort.SliceStable(mappings, func(i, j int) bool {
		a, b := mappings[i].Identifier, mappings[j].Identifier
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		if a.Channel != b.Channel {
			return a.Channel < b.Channel
		}
		return a.Number < b.Number
	})
}
