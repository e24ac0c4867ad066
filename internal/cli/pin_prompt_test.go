package cli

import (
	"strings"
	"testing"
)

func TestReadLineStopsAtNewline(t *testing.T) {
	t.Parallel()

	input := strings.NewReader("1357\r\n2468\n")

	first, err := readLine(input)
	if err != nil || first != "1357" {
		t.Fatalf("expected first line 1357, got %q (err=%v)", first, err)
	}
	second, err := readLine(input)
	if err != nil || second != "2468" {
		t.Fatalf("expected second line 2468, got %q (err=%v)", second, err)
	}
}

func TestReadLineAcceptsMissingTrailingNewline(t *testing.T) {
	t.Parallel()

	got, err := readLine(strings.NewReader("9753"))
	if err != nil || got != "9753" {
		t.Fatalf("expected 9753, got %q (err=%v)", got, err)
	}
}

func TestReadLineRejectsOverlongInput(t *testing.T) {
	t.Parallel()

	if _, err := readLine(strings.NewReader(strings.Repeat("1", maxPinLineLength+2))); err == nil {
		t.Fatal("expected overlong line to fail")
	}
}

func TestPromptPinRequiresStdin(t *testing.T) {
	t.Parallel()

	if _, err := PromptPin(nil, &strings.Builder{}, "PIN: "); err == nil {
		t.Fatal("expected missing stdin to fail")
	}
}
