package models

import (
	"bytes"
	"testing"
)

func TestProgressWriterCountsBytes(t *testing.T) {
	var buf bytes.Buffer
	pw := &progressWriter{writer: &buf, total: 100, label: "test.bin"}

	n, err := pw.Write(make([]byte, 40))
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if n != 40 {
		t.Errorf("n = %d, want 40", n)
	}
	if pw.written != 40 {
		t.Errorf("written = %d, want 40", pw.written)
	}

	if _, err := pw.Write(make([]byte, 60)); err != nil {
		t.Fatal(err)
	}
	if pw.written != 100 {
		t.Errorf("written = %d, want 100", pw.written)
	}
	if buf.Len() != 100 {
		t.Errorf("underlying writer got %d bytes, want 100", buf.Len())
	}
}

func TestProgressWriterUnknownTotal(t *testing.T) {
	var buf bytes.Buffer
	pw := &progressWriter{writer: &buf, total: -1, label: "test.bin"}

	if _, err := pw.Write([]byte("data")); err != nil {
		t.Fatalf("Write() with unknown total error = %v", err)
	}
	if pw.written != 4 {
		t.Errorf("written = %d, want 4", pw.written)
	}
}
