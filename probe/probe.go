package probe

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // register rtmidi driver

	"github.com/midimap/tsidump/dcdt"
	"github.com/midimap/tsidump/memorywriter"
)

// Package probe walks decoded mappings and lets a human verify them:
// it sends the matching MIDI message to the virtual bus the DJ
// application listens on, asks whether the application reacted, and
// upgrades confirmed mappings. A decoded mapping stays "unverified"
// until someone actually watched it work.

// gap between note-on and note-off when probing Note mappings
const noteGap = 150 * time.Millisecond

type Options struct {
	// Port is matched case-insensitively as a substring of the
	// output port name, so "Traktor" finds "Traktor Virtual Input".
	Port  string
	Value uint8

	In  io.Reader
	Out io.Writer
	Log *memorywriter.MemoryWriter
}

func (o *Options) log(s string) {
	if o.Log != nil {
		o.Log.Log("probe - " + s)
	}
}

// Run sends each identified mapping to the MIDI output port and asks
// the operator to confirm the reaction. Mappings answered with "y" are
// marked Confirmed in place. Unidentified mappings are skipped; there
// is nothing to send for them.
func Run(result *dcdt.Result, opts Options) error {
	defer midi.CloseDriver()

	port, err := findOutPort(opts.Port)
	if err != nil {
		return err
	}

	send, err := midi.SendTo(port)
	if err != nil {
		return fmt.Errorf("open %s: %w", port, err)
	}
	opts.log("sending to " + port.String())

	scanner := bufio.NewScanner(opts.In)

	for i := range result.Mappings {
		m := &result.Mappings[i]
		if m.Identifier == nil {
			continue
		}

		msgs := messagesFor(m.Identifier, opts.Value)
	resend:
		for _, msg := range msgs {
			if err := send(msg); err != nil {
				return fmt.Errorf("send %s: %w", m.Identifier, err)
			}
			if len(msgs) > 1 {
				time.Sleep(noteGap)
			}
		}

		label := m.Label
		if label == "" {
			label = "(no label)"
		}
		fmt.Fprintf(opts.Out, "sent %s  %s - did it react? [y/n/r/q] ", m.Identifier, label)

		if !scanner.Scan() {
			break
		}
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "y", "yes":
			m.Confidence = dcdt.Confirmed
			opts.log("confirmed " + m.Identifier.String())
		case "r", "resend":
			goto resend
		case "q", "quit":
			return scanner.Err()
		default:
			// anything else means "no reaction", leave unverified
		}
	}

	return scanner.Err()
}

// messagesFor builds the wire messages for one identifier. Pure, so it
// can be tested without a MIDI driver. TSI channels are 1-based, MIDI
// wire channels 0-based.
func messagesFor(id *dcdt.Identifier, value uint8) []midi.Message {
	ch := uint8(id.Channel - 1)
	switch id.Kind {
	case dcdt.KindCC:
		return []midi.Message{midi.ControlChange(ch, uint8(id.Number), value)}
	case dcdt.KindNote:
		return []midi.Message{
			midi.NoteOn(ch, uint8(id.Number), value),
			midi.NoteOff(ch, uint8(id.Number)),
		}
	case dcdt.KindPitchBend:
		return []midi.Message{midi.Pitchbend(ch, 8191)}
	}
	return nil
}

func findOutPort(name string) (drivers.Out, error) {
	outs := midi.GetOutPorts()
	if len(outs) == 0 {
		return nil, errors.New("no MIDI output ports found")
	}

	if name == "" {
		names := make([]string, 0, len(outs))
		for _, out := range outs {
			names = append(names, out.String())
		}
		return nil, fmt.Errorf("no port given, available: %s", strings.Join(names, ", "))
	}

	needle := strings.ToLower(name)
	for _, out := range outs {
		if strings.Contains(strings.ToLower(out.String()), needle) {
			return out, nil
		}
	}
	return nil, fmt.Errorf("no MIDI output port matching %q", name)
}
