package chunking

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitKeepsShortTextWhole(t *testing.T) {
	s := NewSplitter(100)
	got := s.Split("  Senior engineer with seven years of experience.  ")
	want := []string{"Senior engineer with seven years of experience."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Split() = %q, want %q", got, want)
	}
}

func TestSplitBreaksOnWhitespace(t *testing.T) {
	s := NewSplitter(12)
	got := s.Split("alpha beta gamma delta epsilon")
	want := []string{"alpha beta", "gamma delta", "epsilon"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Split() = %q, want %q", got, want)
	}
}

func TestSplitNeverExceedsChunkSize(t *testing.T) {
	s := NewSplitter(7)
	text := "résumé naïve café " + strings.Repeat("x", 20) + " fin"
	chunks := s.Split(text)
	if len(chunks) == 0 {
		t.Fatalf("expected chunks")
	}
	for _, c := range chunks {
		if n := utf8.RuneCountInString(c); n > 7 {
			t.Fatalf("chunk %q has %d runes", c, n)
		}
		if !utf8.ValidString(c) {
			t.Fatalf("chunk %q is not valid UTF-8", c)
		}
	}
	if got := strings.Join(chunks, ""); strings.ReplaceAll(text, " ", "") != got {
		t.Fatalf("chunks lost text: %q", got)
	}
}

func TestSplitEmpty(t *testing.T) {
	if got := NewSplitter(0).Split("   \n\t"); got != nil {
		t.Fatalf("expected nil, got %q", got)
	}
	if NewSplitter(0).ChunkSize != 6000 {
		t.Fatalf("expected default chunk size")
	}
}

func TestSplitUsesBoundaryRightAfterLimit(t *testing.T) {
	got := NewSplitter(12).Split("Teh project, teh team and Teh code")
	want := []string{"Teh project,", "teh team and", "Teh code"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Split() = %q, want %q", got, want)
	}
}
