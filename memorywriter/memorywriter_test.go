package memorywriter

import (
	"bytes"
	"strings"
	"testing"
)

func TestRotation(t *testing.T) {
	m := New(2, 1, false, nil)
	for _, line := range []string{"first", "second", "third", "fourth"} {
		m.Log(line)
	}

	out, err := m.String("header\n")
	if err != nil {
		t.Fatalf("export: %s", err)
	}

	// newest first, rotation gap, then the retained startup line
	for _, want := range []string{"header", "fourth", "third", "...", "first"} {
		if !strings.Contains(out, want) {
			t.Errorf("export misses %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "second") {
		t.Errorf("rotated line survived:\n%s", out)
	}
	if strings.Index(out, "fourth") > strings.Index(out, "third") {
		t.Errorf("lines not newest-first:\n%s", out)
	}
}

func TestLineTooLong(t *testing.T) {
	m := New(10, 1, false, nil)
	_, err := m.Write(bytes.Repeat([]byte("x"), maxLineLength+1))
	if err == nil {
		t.Error("expected error for an overlong line")
	}
}

func TestCopyTo(t *testing.T) {
	var mirror bytes.Buffer
	m := New(10, 1, false, &mirror)
	m.Log("hello")

	if !strings.Contains(mirror.String(), "hello") {
		t.Errorf("copy writer did not receive the line: %q", mirror.String())
	}
}

func TestTimestamps(t *testing.T) {
	m := New(10, 1, true, nil)
	m.Log("stamped")

	out, err := m.String("")
	if err != nil {
		t.Fatalf("export: %s", err)
	}
	if !strings.Contains(out, "] stamped") {
		t.Errorf("expected a timestamp prefix:\n%s", out)
	}
}

func TestGzipExport(t *testing.T) {
	m := New(10, 1, false, nil)
	m.Log("compressed line")

	gz, err := m.Gzip("v1\n")
	if err != nil {
		t.Fatalf("gzip: %s", err)
	}
	if len(gz) == 0 {
		t.Error("empty gzip export")
	}
	// gzip magic
	if gz[0] != 0x1f || gz[1] != 0x8b {
		t.Errorf("not gzip data: % x", gz[:2])
	}
}
