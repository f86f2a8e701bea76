package main

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("read pipe: %v", err)
	}
	return buf.String()
}

func TestDemoProducesOutput(t *testing.T) {
	out := captureStdout(t, demo)
	if out == "" {
		t.Fatal("demo() produced no output")
	}
	if !strings.Contains(out, "\x1b[") {
		t.Error("expected demo() output to contain at least one ANSI escape sequence")
	}
}

func TestRenderHeadingIsBold(t *testing.T) {
	out := captureStdout(t, func() { render("# Hello") })
	if !strings.Contains(out, "Hello") {
		t.Errorf("expected rendered output to contain heading text, got %q", out)
	}
	if !strings.Contains(out, "\x1b[1m") {
		t.Error("expected a bold SGR sequence for the heading")
	}
}

func TestRenderPlainParagraph(t *testing.T) {
	out := captureStdout(t, func() { render("just some text") })
	if !strings.Contains(out, "just some text") {
		t.Errorf("expected rendered output to contain the paragraph text, got %q", out)
	}
}
