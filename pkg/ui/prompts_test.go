package ui

import (
	"bytes"
	"strings"
	"testing"
)

func newTestPrompter(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return NewPrompter(strings.NewReader(input), &out), &out
}

func TestAskChoice(t *testing.T) {
	p, out := newTestPrompter("2\n")

	choice, err := p.AskChoice("Pick one", []string{"first", "second", "third"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if choice != 1 {
		t.Errorf("Expected index 1, got %d", choice)
	}
	if !strings.Contains(out.String(), "second") {
		t.Error("Menu should list the options")
	}
}

func TestAskChoiceRepromptsOnInvalidInput(t *testing.T) {
	p, _ := newTestPrompter("zero\n9\n1\n")

	choice, err := p.AskChoice("Pick one", []string{"a", "b"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if choice != 0 {
		t.Errorf("Expected index 0, got %d", choice)
	}
}

func TestAskYesNo(t *testing.T) {
	tests := []struct {
		input      string
		defaultYes bool
		want       bool
	}{
		{"y\n", false, true},
		{"yes\n", false, true},
		{"n\n", true, false},
		{"\n", true, true},
		{"\n", false, false},
		{"whatever\n", true, false},
	}

	for _, tt := range tests {
		p, _ := newTestPrompter(tt.input)
		got, err := p.AskYesNo("Continue?", tt.defaultYes)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got != tt.want {
			t.Errorf("Input %q (default %v): expected %v, got %v", tt.input, tt.defaultYes, tt.want, got)
		}
	}
}

func TestAskIntEnforcesRange(t *testing.T) {
	p, _ := newTestPrompter("0\n500000\n42\n")

	n, err := p.AskInt("Sample size", 1, 100000)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if n != 42 {
		t.Errorf("Expected 42, got %d", n)
	}
}

func TestAskOptionalInt(t *testing.T) {
	p, _ := newTestPrompter("\n")
	_, ok, err := p.AskOptionalInt("Seed")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ok {
		t.Error("Blank input should report not-set")
	}

	p, _ = newTestPrompter("123\n")
	n, ok, err := p.AskOptionalInt("Seed")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !ok || n != 123 {
		t.Errorf("Expected 123, got %d (ok=%v)", n, ok)
	}
}
