// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus loads input documents for batch extraction. Plain-text
// documents carry one sentence per line; HTML documents are reduced to
// their visible text and split into sentences.
package corpus

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Document is one corpus file, reduced to a sentence list.
type Document struct {
	ID        string
	Path      string
	Sentences []string
}

var reSentenceEnd = regexp.MustCompile(`([.!?])\s+`)

// Load reads every .txt, .html and .htm file under dir, non-recursively,
// and returns the documents sorted by ID. The document ID is the file
// name without its extension.
func Load(dir string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading corpus dir %s: %w", dir, err)
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		ext := strings.ToLower(filepath.Ext(entry.Name()))

		var sentences []string
		switch ext {
		case ".txt":
			sentences, err = loadText(path)
		case ".html", ".htm":
			sentences, err = loadHTML(path)
		default:
			continue
		}
		if err != nil {
			return nil, err
		}

		docs = append(docs, Document{
			ID:        strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())),
			Path:      path,
			Sentences: sentences,
		})
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

// LoadFile reads a single .txt, .html or .htm document.
func LoadFile(path string) (Document, error) {
	var sentences []string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		sentences, err = loadText(path)
	case ".html", ".htm":
		sentences, err = loadHTML(path)
	default:
		return Document{}, fmt.Errorf("unsupported document type %s", filepath.Ext(path))
	}
	if err != nil {
		return Document{}, err
	}

	base := filepath.Base(path)
	return Document{
		ID:        strings.TrimSuffix(base, filepath.Ext(base)),
		Path:      path,
		Sentences: sentences,
	}, nil
}

// loadText reads a plain-text document, one sentence per line. Blank
// lines are skipped.
func loadText(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var sentences []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			sentences = append(sentences, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return sentences, nil
}

// loadHTML parses an HTML document, collects its visible text, and
// splits the text into sentences.
func loadHTML(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	doc, err := html.Parse(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return SplitSentences(visibleText(doc)), nil
}

// visibleText walks the node tree and joins text nodes, skipping script,
// style, and other non-rendered elements.
func visibleText(doc *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)

	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "head", "title":
				return
			}
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				sb.WriteString(text)
				sb.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return strings.TrimSpace(sb.String())
}

// SplitSentences breaks a text block at sentence-ending punctuation
// followed by whitespace. Good enough for report text; abbreviation
// handling is out of scope.
func SplitSentences(text string) []string {
	marked := reSentenceEnd.ReplaceAllString(text, "$1\n")
	var sentences []string
	for _, s := range strings.Split(marked, "\n") {
		s = strings.TrimSpace(s)
		if s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}
