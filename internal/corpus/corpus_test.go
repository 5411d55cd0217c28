// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadText(t *testing.T) {
	dir := t.TempDir()
	content := "temp 98.6 this morning\n\ntemp 101.5 tonight\n"
	if err := os.WriteFile(filepath.Join(dir, "note1.txt"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	docs, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d docs, want 1", len(docs))
	}
	doc := docs[0]
	if doc.ID != "note1" {
		t.Errorf("ID = %q, want note1", doc.ID)
	}
	if len(doc.Sentences) != 2 {
		t.Fatalf("got %d sentences, want 2 (blank line skipped): %v", len(doc.Sentences), doc.Sentences)
	}
	if doc.Sentences[0] != "temp 98.6 this morning" {
		t.Errorf("sentence = %q", doc.Sentences[0])
	}
}

func TestLoadHTML(t *testing.T) {
	dir := t.TempDir()
	content := `<html><head><title>report</title><style>p{color:red}</style></head>
<body><script>var x = 1;</script><p>Officials reported 292 new cases. The death toll rose to 9.</p></body></html>`
	if err := os.WriteFile(filepath.Join(dir, "report.html"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	docs, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d docs, want 1", len(docs))
	}
	doc := docs[0]
	if len(doc.Sentences) != 2 {
		t.Fatalf("got %d sentences, want 2: %v", len(doc.Sentences), doc.Sentences)
	}
	for _, s := range doc.Sentences {
		if s == "report" || s == "var x = 1;" {
			t.Errorf("non-visible text leaked into sentences: %q", s)
		}
	}
	if doc.Sentences[0] != "Officials reported 292 new cases." {
		t.Errorf("sentence = %q", doc.Sentences[0])
	}
}

func TestLoadSortsAndFilters(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.txt", "a.txt", "ignore.pdf"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("one line\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	docs, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d docs, want 2", len(docs))
	}
	if docs[0].ID != "a" || docs[1].ID != "b" {
		t.Errorf("order = %s, %s; want a, b", docs[0].ID, docs[1].ID)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	if err := os.WriteFile(path, []byte("temp 98.6\ntemp 101.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.ID != "note" {
		t.Errorf("ID = %q, want note", doc.ID)
	}
	if len(doc.Sentences) != 2 {
		t.Errorf("got %d sentences, want 2", len(doc.Sentences))
	}

	if _, err := LoadFile(filepath.Join(dir, "note.pdf")); err == nil {
		t.Error("LoadFile of unsupported type succeeded, want error")
	}
}

func TestLoadMissingDir(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Load of a missing directory succeeded, want error")
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			"three terminators",
			"First sentence. Second one! Third?",
			[]string{"First sentence.", "Second one!", "Third?"},
		},
		{
			"no terminator",
			"a single fragment",
			[]string{"a single fragment"},
		},
		{
			"empty",
			"",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d sentences %v, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("sentence %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
