package tsi

import (
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
)

// Package tsi unwraps Traktor TSI configuration files. A TSI file is
// an XML document holding a flat table of Entry elements with Name and
// Value attributes; the controller mapping itself is a Base64-encoded
// binary blob stored under one well-known entry name.

// ControllerEntry is the entry holding the Base64 controller blob.
const ControllerEntry = "DeviceIO.Config.Controller"

// ErrNoController means the file has no controller mapping configured.
// This is an expected condition, not a parse failure.
var ErrNoController = errors.New("no controller configuration entry")

// MalformedInputError wraps a terminal envelope problem: broken XML or
// broken Base64. Field names the offending part of the input.
type MalformedInputError struct {
	Field string
	Err   error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input in %s: %s", e.Field, e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// Container is the parsed entry table. Read-only after Parse.
type Container struct {
	entries map[string]string
}

// Parse reads the XML entry table. Every element carrying both a Name
// and a Value attribute is treated as an entry; nesting and element
// names are ignored, which matches how Traktor lays the table out.
func Parse(r io.Reader) (*Container, error) {
	c := &Container{
		entries: make(map[string]string),
	}

	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &MalformedInputError{Field: "xml", Err: err}
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		var name, value string
		var hasName, hasValue bool
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "Name":
				name = attr.Value
				hasName = true
			case "Value":
				value = attr.Value
				hasValue = true
			}
		}
		if hasName && hasValue {
			c.entries[name] = value
		}
	}

	return c, nil
}

// LoadFile parses the file at path.
func LoadFile(path string) (*Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() // nolint: errcheck

	return Parse(f)
}

// Entry returns the raw value of a named entry.
func (c *Container) Entry(name string) (string, bool) {
	v, ok := c.entries[name]
	return v, ok
}

// Len returns the number of entries in the table.
func (c *Container) Len() int {
	return len(c.entries)
}

// ControllerPayload extracts and Base64-decodes the controller blob.
// Returns ErrNoController when the entry is absent and a
// MalformedInputError when the entry exists but is not valid Base64.
func (c *Container) ControllerPayload() ([]byte, error) {
	raw, ok := c.entries[ControllerEntry]
	if !ok {
		return nil, ErrNoController
	}

	payload, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, &MalformedInputError{Field: ControllerEntry, Err: err}
	}
	return payload, nil
}
