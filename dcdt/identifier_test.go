package dcdt

import (
	"encoding/binary"
	"testing"
)

func TestParseIdentifier(t *testing.T) {
	testcases := []struct {
		text string
		want *Identifier
	}{
		{"Ch 1.CC.46", &Identifier{Channel: 1, Kind: KindCC, Number: 46}},
		{"Ch 16.CC.0", &Identifier{Channel: 16, Kind: KindCC, Number: 0}},
		{"Ch 2.Note.64", &Identifier{Channel: 2, Kind: KindNote, Number: 64}},
		{"Ch 10.Note.127", &Identifier{Channel: 10, Kind: KindNote, Number: 127}},
		{"Ch 3.PitchBend", &Identifier{Channel: 3, Kind: KindPitchBend}},
		// out of range
		{"Ch 0.CC.5", nil},
		{"Ch 17.CC.5", nil},
		{"Ch 1.CC.128", nil},
		{"Ch 0.PitchBend", nil},
		// wrong shape
		{"Ch 1.CC", nil},
		{"Ch 1.Aftertouch.3", nil},
		{"Ch1.CC.46", nil},
		{"ch 1.cc.46", nil},
		{"Deck A Play", nil},
		{"", nil},
		{"Ch 1.CC.46 ", nil},
	}

	for _, tc := range testcases {
		body := identifierBody(tc.text, nil)
		id, end, ok := parseIdentifier(body)

		if tc.want == nil {
			if ok {
				t.Errorf("%q: expected no identifier, got %v", tc.text, id)
			}
			continue
		}
		if !ok {
			t.Errorf("%q: expected identifier, got none", tc.text)
			continue
		}
		if *id != *tc.want {
			t.Errorf("%q: got %v, expected %v", tc.text, id, tc.want)
		}
		if end != 4+2*len([]rune(tc.text)) {
			t.Errorf("%q: string end %d, expected %d", tc.text, end, 4+2*len(tc.text))
		}
	}
}

func TestParseIdentifierShortBody(t *testing.T) {
	for _, body := range [][]byte{nil, {0x00}, {0x00, 0x00, 0x00}} {
		if id, _, ok := parseIdentifier(body); ok {
			t.Errorf("body %v: expected failure, got %v", body, id)
		}
	}
}

func TestParseIdentifierCountOverrunsBody(t *testing.T) {
	// char count claims more UTF-16 units than the body holds
	body := binary.BigEndian.AppendUint32(nil, 50)
	body = append(body, utf16be("Ch 1.CC.46")...)

	if id, _, ok := parseIdentifier(body); ok {
		t.Errorf("expected failure on overrunning char count, got %v", id)
	}
}

func TestParseIdentifierUnpairedSurrogate(t *testing.T) {
	body := binary.BigEndian.AppendUint32(nil, 1)
	body = append(body, 0xd8, 0x00) // lone high surrogate

	if id, _, ok := parseIdentifier(body); ok {
		t.Errorf("expected failure on unpaired surrogate, got %v", id)
	}
}

func TestIdentifierString(t *testing.T) {
	testcases := []struct {
		id   Identifier
		want string
	}{
		{Identifier{Channel: 1, Kind: KindCC, Number: 46}, "Ch 1.CC.46"},
		{Identifier{Channel: 2, Kind: KindNote, Number: 64}, "Ch 2.Note.64"},
		{Identifier{Channel: 3, Kind: KindPitchBend}, "Ch 3.PitchBend"},
	}
	for _, tc := range testcases {
		if got := tc.id.String(); got != tc.want {
			t.Errorf("got %q, expected %q", got, tc.want)
		}
	}
}
