package memorywriter

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"time"
)

// Package memorywriter keeps log lines in memory. The newest lines
// rotate in a bounded window, but the first lines from startup are
// always kept, so the exported log shows both how a run started and
// how it ended. Useful for verbose logging that would be too big
// to keep whole.

// hard cap on a single line, to bound memory on bad input
const maxLineLength = 500

type MemoryWriter struct {
	headKeep  int
	head      [][]byte
	tailKeep  int
	tail      [][]byte
	started   time.Time
	stampTime bool

	// optional secondary writer, typically stderr or a logfile,
	// that receives every line as well
	copyTo io.Writer
}

func New(size, startSize int, stampTime bool, copyTo io.Writer) *MemoryWriter {
	return &MemoryWriter{
		headKeep:  startSize,
		head:      make([][]byte, 0, startSize),
		tailKeep:  size,
		tail:      make([][]byte, 0, size),
		started:   time.Now(),
		stampTime: stampTime,
		copyTo:    copyTo,
	}
}

func (m *MemoryWriter) Log(s string) {
	_, err := m.Write([]byte(s + "\n"))
	if err != nil {
		// give up, just print on stdout
		fmt.Println(err)
	}
}

// Write remembers the line in memory and mirrors it to copyTo if set.
func (m *MemoryWriter) Write(p []byte) (int, error) {
	if len(p) > maxLineLength {
		return 0, errors.New("input too long")
	}

	var line []byte
	if m.stampTime {
		now := time.Now()
		elapsed := now.Sub(m.started)
		line = []byte(fmt.Sprintf("[%.6f : %s] %s", elapsed.Seconds(), now.Format("15:04:05"), string(p)))
	} else {
		line = make([]byte, len(p))
		copy(line, p)
	}

	if m.copyTo != nil {
		_, err := m.copyTo.Write(line)
		if err != nil {
			return 0, err
		}
	}

	if len(m.head) < m.headKeep {
		m.head = append(m.head, line)
	} else {
		for len(m.tail) >= m.tailKeep {
			m.tail = m.tail[1:]
		}
		m.tail = append(m.tail, line)
	}
	return len(p), nil
}

// writeTo exports the remembered lines, newest first, with an
// arbitrary header on top (version string and such).
func (m *MemoryWriter) writeTo(header string, w io.Writer) error {
	_, err := w.Write([]byte(header))
	if err != nil {
		return err
	}

	for i := len(m.tail) - 1; i >= 0; i-- {
		_, err = w.Write(m.tail[i])
		if err != nil {
			return err
		}
	}

	// marks the rotation gap between startup lines and recent lines
	_, err = w.Write([]byte("...\n"))
	if err != nil {
		return err
	}

	for i := len(m.head) - 1; i >= 0; i-- {
		_, err = w.Write(m.head[i])
		if err != nil {
			return err
		}
	}

	return nil
}

func (m *MemoryWriter) String(header string) (string, error) {
	var b bytes.Buffer
	err := m.writeTo(header, &b)
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// Gzip exports the log as gzip bytes, for the status page download.
func (m *MemoryWriter) Gzip(header string) ([]byte, error) {
	var buf bytes.Buffer
	gw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, err
	}

	gw.Name = "log.txt"
	err = m.writeTo(header, gw)
	if err != nil {
		return nil, err
	}

	err = gw.Close()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
