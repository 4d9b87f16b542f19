package dcdt

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Package dcdt decodes the binary controller blob found inside TSI
// files. The format is not documented anywhere; what this package
// implements is the working hypothesis recovered by poking at real
// files: repeating records introduced by a 4-byte ASCII signature,
// framed by a big-endian uint32 length, carrying UTF-16BE strings.
// Treat every decoded value as best-effort.

// DefaultSignature introduces control-data records in every observed file.
const DefaultSignature = "DCDT"

// headerLen is the signature plus the 4-byte length field.
func headerLen(sig []byte) int {
	return len(sig) + 4
}

// Segment is one length-framed record found in the payload.
type Segment struct {
	Signature      string
	Offset         int
	DeclaredLength uint32
	Raw            []byte
}

// TruncatedSegmentError records a segment whose declared length
// overruns the payload. Such segments are skipped, never fatal.
type TruncatedSegmentError struct {
	Offset         int
	DeclaredLength uint32
	PayloadLen     int
}

func (e *TruncatedSegmentError) Error() string {
	return fmt.Sprintf(
		"segment at offset %d: declared length %d overruns payload of %d bytes",
		e.Offset, e.DeclaredLength, e.PayloadLen,
	)
}

// Scan finds every occurrence of signature in payload and frames it
// into a Segment. Matching is exact byte search; the signature can in
// principle appear inside unrelated data, which is a limitation of the
// format itself. Segments come out in non-decreasing offset order.
//
// After a valid segment the cursor resumes right after the signature,
// not after the body: records overlap in observed files and the next
// legitimate signature can start inside the previous body. A truncated
// segment advances the cursor by a single byte so a bogus length can
// never hide later records.
func Scan(payload []byte, signature string) ([]Segment, []*TruncatedSegmentError) {
	sig := []byte(signature)
	var (
		segments  []Segment
		truncated []*TruncatedSegmentError
	)

	cur := 0
	for cur < len(payload) {
		rel := bytes.Index(payload[cur:], sig)
		if rel < 0 {
			break
		}
		p := cur + rel

		body := p + headerLen(sig)
		if body > len(payload) {
			// not even room for the length field
			truncated = append(truncated, &TruncatedSegmentError{
				Offset:     p,
				PayloadLen: len(payload),
			})
			cur = p + 1
			continue
		}

		declared := binary.BigEndian.Uint32(payload[p+len(sig):])
		end := body + int(declared)
		if end > len(payload) {
			truncated = append(truncated, &TruncatedSegmentError{
				Offset:         p,
				DeclaredLength: declared,
				PayloadLen:     len(payload),
			})
			cur = p + 1
			continue
		}

		segments = append(segments, Segment{
			Signature:      signature,
			Offset:         p,
			DeclaredLength: declared,
			Raw:            payload[body:end],
		})
		cur = p + len(sig)
	}

	return segments, truncated
}
