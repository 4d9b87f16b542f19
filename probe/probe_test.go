package probe

import (
	"testing"

	"github.com/midimap/tsidump/dcdt"
)

func TestMessagesForCC(t *testing.T) {
	id := &dcdt.Identifier{Channel: 1, Kind: dcdt.KindCC, Number: 46}

	msgs := messagesFor(id, 127)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}

	var channel, controller, value uint8
	if !msgs[0].GetControlChange(&channel, &controller, &value) {
		t.Fatalf("expected a control change, got %s", msgs[0])
	}
	if channel != 0 || controller != 46 || value != 127 {
		t.Errorf("got ch %d cc %d val %d, expected ch 0 cc 46 val 127", channel, controller, value)
	}
}

func TestMessagesForNote(t *testing.T) {
	id := &dcdt.Identifier{Channel: 10, Kind: dcdt.KindNote, Number: 60}

	msgs := messagesFor(id, 100)
	if len(msgs) != 2 {
		t.Fatalf("expected note on + note off, got %d messages", len(msgs))
	}

	var channel, key, velocity uint8
	if !msgs[0].GetNoteOn(&channel, &key, &velocity) {
		t.Fatalf("expected a note on, got %s", msgs[0])
	}
	if channel != 9 || key != 60 || velocity != 100 {
		t.Errorf("got ch %d key %d vel %d, expected ch 9 key 60 vel 100", channel, key, velocity)
	}
	if !msgs[1].GetNoteEnd(&channel, &key) {
		t.Fatalf("expected a note off, got %s", msgs[1])
	}
}

func TestMessagesForPitchBend(t *testing.T) {
	id := &dcdt.Identifier{Channel: 16, Kind: dcdt.KindPitchBend}

	msgs := messagesFor(id, 127)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}

	var channel uint8
	var relative int16
	var absolute uint16
	if !msgs[0].GetPitchBend(&channel, &relative, &absolute) {
		t.Fatalf("expected a pitch bend, got %s", msgs[0])
	}
	if channel != 15 || relative != 8191 {
		t.Errorf("got ch %d value %d, expected ch 15 value 8191", channel, relative)
	}
}
