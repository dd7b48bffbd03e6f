package main

import (
	"testing"

	"github.com/0xcro3dile/wordlookup-go/internal/domain/entities"
)

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in      string
		want    entities.Position
		wantErr bool
	}{
		{"0:0", entities.Position{}, false},
		{"12:4", entities.Position{Line: 12, Ch: 4}, false},
		{"12", entities.Position{}, true},
		{"a:1", entities.Position{}, true},
		{"1:-2", entities.Position{}, true},
	}

	for _, tt := range tests {
		got, err := parsePosition(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePosition(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePosition(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestOneLine(t *testing.T) {
	if got := oneLine("a\n  b\tc", 10); got != "a b c" {
		t.Errorf("unexpected %q", got)
	}
	if got := oneLine("abcdefghij", 5); got != "abcd…" {
		t.Errorf("unexpected %q", got)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	if err := run([]string{"nope"}); err == nil {
		t.Error("unknown command should fail")
	}
}

func TestRun_HelpAndVersion(t *testing.T) {
	for _, args := range [][]string{nil, {"--help"}, {"version"}} {
		if err := run(args); err != nil {
			t.Errorf("run(%v) failed: %v", args, err)
		}
	}
}
