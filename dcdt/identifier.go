package dcdt

import (
	"encoding/binary"
	"fmt"
	"regexp"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
)

// Kind is the MIDI message kind a control identifier addresses.
type Kind int

const (
	KindCC Kind = iota
	KindNote
	KindPitchBend
)

func (k Kind) String() string {
	switch k {
	case KindCC:
		return "CC"
	case KindNote:
		return "Note"
	case KindPitchBend:
		return "PitchBend"
	}
	return "unknown"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Identifier is the decoded "Ch <n>.CC.<m>" style control identifier.
// Number is meaningless for KindPitchBend.
type Identifier struct {
	Channel int  `json:"channel"`
	Kind    Kind `json:"kind"`
	Number  int  `json:"number"`
}

func (id *Identifier) String() string {
	if id.Kind == KindPitchBend {
		return fmt.Sprintf("Ch %d.PitchBend", id.Channel)
	}
	return fmt.Sprintf("Ch %d.%s.%d", id.Channel, id.Kind, id.Number)
}

var (
	numberedRe  = regexp.MustCompile(`^Ch (\d{1,2})\.(CC|Note)\.(\d{1,3})$`)
	pitchbendRe = regexp.MustCompile(`^Ch (\d{1,2})\.PitchBend$`)
)

// parseIdentifier decodes the identifier string at the start of a
// segment body. Returns the identifier, the byte offset just past the
// string (where label scanning starts), and whether decoding worked.
//
// Many segments are not control-identifier records at all, so every
// failure here is soft: the caller keeps the segment with a nil
// identifier instead of dropping it.
func parseIdentifier(raw []byte) (*Identifier, int, bool) {
	if len(raw) < 4 {
		return nil, 0, false
	}
	n := int(binary.BigEndian.Uint32(raw))
	end := 4 + n*2
	if n < 0 || end > len(raw) {
		return nil, 0, false
	}

	text, ok := decodeUTF16BE(raw[4:end])
	if !ok {
		return nil, 0, false
	}

	id, ok := matchIdentifier(text)
	if !ok {
		return nil, end, false
	}
	return id, end, true
}

func matchIdentifier(text string) (*Identifier, bool) {
	if m := numberedRe.FindStringSubmatch(text); m != nil {
		channel, _ := strconv.Atoi(m[1])
		number, _ := strconv.Atoi(m[3])
		if channel < 1 || channel > 16 || number > 127 {
			return nil, false
		}
		kind := KindCC
		if m[2] == "Note" {
			kind = KindNote
		}
		return &Identifier{Channel: channel, Kind: kind, Number: number}, true
	}

	if m := pitchbendRe.FindStringSubmatch(text); m != nil {
		channel, _ := strconv.Atoi(m[1])
		if channel < 1 || channel > 16 {
			return nil, false
		}
		return &Identifier{Channel: channel, Kind: KindPitchBend}, true
	}

	return nil, false
}

// decodeUTF16BE decodes big-endian UTF-16 bytes. Odd length or
// unpaired surrogates fail the decode instead of yielding replacement
// runes, since a mangled string is useless as an identifier.
func decodeUTF16BE(b []byte) (string, bool) {
	if len(b)%2 != 0 {
		return "", false
	}
	units := make([]uint16, 0, len(b)/2)
	for i := 0; i < len(b); i += 2 {
		units = append(units, binary.BigEndian.Uint16(b[i:]))
	}
	runes := utf16.Decode(units)
	for _, r := range runes {
		if r == utf8.RuneError {
			return "", false
		}
	}
	return string(runes), true
}
