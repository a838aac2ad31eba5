package epubgen

import (
	"errors"
	"strings"
	"testing"
)

func TestSplitChapters_TwoChapters(t *testing.T) {
	chapters, err := splitChapters("# Chapter One\nHello\n# Chapter Two\nWorld")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chapters) != 2 {
		t.Fatalf("len(chapters) = %d, want 2", len(chapters))
	}
	if chapters[0].title != "Chapter One" {
		t.Errorf("chapters[0].title = %q, want %q", chapters[0].title, "Chapter One")
	}
	if chapters[1].title != "Chapter Two" {
		t.Errorf("chapters[1].title = %q, want %q", chapters[1].title, "Chapter Two")
	}
	if chapters[0].body != "Hello" {
		t.Errorf("chapters[0].body = %q, want %q", chapters[0].body, "Hello")
	}
	if chapters[1].body != "World" {
		t.Errorf("chapters[1].body = %q, want %q", chapters[1].body, "World")
	}
}

func TestSplitChapters_NoHeading(t *testing.T) {
	input := "Just some text.\n\nMore text."
	chapters, err := splitChapters(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chapters) != 1 {
		t.Fatalf("len(chapters) = %d, want 1", len(chapters))
	}
	if chapters[0].title != "" {
		t.Errorf("title = %q, want empty (book title fallback)", chapters[0].title)
	}
	if chapters[0].body != input {
		t.Errorf("body = %q, want entire input", chapters[0].body)
	}
}

func TestSplitChapters_Empty(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n\t \n"} {
		_, err := splitChapters(input)
		if !errors.Is(err, ErrEmptyDocument) {
			t.Errorf("splitChapters(%q) error = %v, want ErrEmptyDocument", input, err)
		}
	}
}

func TestSplitChapters_Preamble(t *testing.T) {
	chapters, err := splitChapters("Intro text before any heading.\n# Chapter One\nBody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chapters) != 2 {
		t.Fatalf("len(chapters) = %d, want 2", len(chapters))
	}
	if chapters[0].title != "" {
		t.Errorf("preamble title = %q, want empty", chapters[0].title)
	}
	if chapters[0].body != "Intro text before any heading." {
		t.Errorf("preamble body = %q", chapters[0].body)
	}
	if chapters[1].title != "Chapter One" {
		t.Errorf("chapters[1].title = %q, want %q", chapters[1].title, "Chapter One")
	}
}

func TestSplitChapters_BlankPreambleDropped(t *testing.T) {
	chapters, err := splitChapters("\n\n# Chapter One\nBody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chapters) != 1 {
		t.Fatalf("len(chapters) = %d, want 1", len(chapters))
	}
	if chapters[0].title != "Chapter One" {
		t.Errorf("title = %q, want %q", chapters[0].title, "Chapter One")
	}
}

func TestSplitChapters_DeeperHeadingsStayInBody(t *testing.T) {
	chapters, err := splitChapters("# Chapter\n## Section\ntext\n### Sub")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chapters) != 1 {
		t.Fatalf("len(chapters) = %d, want 1", len(chapters))
	}
	want := "## Section\ntext\n### Sub"
	if chapters[0].body != want {
		t.Errorf("body = %q, want %q", chapters[0].body, want)
	}
}

func TestSplitChapters_FencedHeadingNotSplit(t *testing.T) {
	input := "# Chapter\n```\n# not a heading\n```\nafter"
	chapters, err := splitChapters(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chapters) != 1 {
		t.Fatalf("len(chapters) = %d, want 1", len(chapters))
	}
	if !strings.Contains(chapters[0].body, "# not a heading") {
		t.Errorf("fenced heading missing from body: %q", chapters[0].body)
	}
}

func TestSplitChapters_InfoStringNeverClosesFence(t *testing.T) {
	input := "# Chapter\n```\ntext\n```go\n# still in the block\n```\n# Second"
	chapters, err := splitChapters(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chapters) != 2 {
		t.Fatalf("len(chapters) = %d, want 2", len(chapters))
	}
	if !strings.Contains(chapters[0].body, "# still in the block") {
		t.Errorf("fenced heading leaked out of the block: %q", chapters[0].body)
	}
	if chapters[1].title != "Second" {
		t.Errorf("chapters[1].title = %q, want %q", chapters[1].title, "Second")
	}
}

func TestFenceSequence(t *testing.T) {
	tests := []struct {
		line string
		seq  string
		rest string
	}{
		{"```", "```", ""},
		{"```go", "```", "go"},
		{"~~~~", "~~~~", ""},
		{"  ```", "```", ""},
		{"`` not a fence", "", ""},
		{"text", "", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		seq, rest := fenceSequence(tt.line)
		if seq != tt.seq || rest != tt.rest {
			t.Errorf("fenceSequence(%q) = (%q, %q), want (%q, %q)", tt.line, seq, rest, tt.seq, tt.rest)
		}
	}
}

func TestSplitChapters_TildeFence(t *testing.T) {
	input := "# Chapter\n~~~text\n# still code\n~~~\n# Second"
	chapters, err := splitChapters(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chapters) != 2 {
		t.Fatalf("len(chapters) = %d, want 2", len(chapters))
	}
	if chapters[1].title != "Second" {
		t.Errorf("chapters[1].title = %q, want %q", chapters[1].title, "Second")
	}
}

func TestSplitChapters_CRLF(t *testing.T) {
	chapters, err := splitChapters("# One\r\nHello\r\n# Two\r\nWorld")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chapters) != 2 {
		t.Fatalf("len(chapters) = %d, want 2", len(chapters))
	}
	if chapters[0].body != "Hello" {
		t.Errorf("chapters[0].body = %q, want %q", chapters[0].body, "Hello")
	}
}

// Concatenating chapter bodies in ordinal order reproduces the source
// modulo the heading lines consumed for titling.
func TestSplitChapters_BodyRoundTrip(t *testing.T) {
	input := "preamble\n# One\nline a\nline b\n\n# Two\n## sub\nline c"
	chapters, err := splitChapters(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var bodies []string
	for _, ch := range chapters {
		bodies = append(bodies, ch.body)
	}
	got := strings.Join(bodies, "\n")

	var withoutHeadings []string
	for _, line := range strings.Split(input, "\n") {
		if _, ok := topLevelHeading(line); ok {
			continue
		}
		withoutHeadings = append(withoutHeadings, line)
	}
	want := strings.Join(withoutHeadings, "\n")

	if got != want {
		t.Errorf("concatenated bodies = %q, want %q", got, want)
	}
}

func TestTopLevelHeading(t *testing.T) {
	tests := []struct {
		line  string
		title string
		ok    bool
	}{
		{"# Title", "Title", true},
		{"#Title", "Title", true},
		{"#  Spaced   Out ", "Spaced Out", true},
		{"# Closing ##", "Closing", true},
		{"  # Indented", "Indented", true},
		{"## Section", "", false},
		{"#", "", false},
		{"# ", "", false},
		{"plain text", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		title, ok := topLevelHeading(tt.line)
		if ok != tt.ok || title != tt.title {
			t.Errorf("topLevelHeading(%q) = (%q, %v), want (%q, %v)", tt.line, title, ok, tt.title, tt.ok)
		}
	}
}

func TestCleanHeadingText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"*Bold* Title", "Bold Title"},
		{"__Very__ _Important_", "Very Important"},
		{"`code` heading", "code heading"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := cleanHeadingText(tt.in); got != tt.want {
			t.Errorf("cleanHeadingText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
