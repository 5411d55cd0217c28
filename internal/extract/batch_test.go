// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/extract-engine/internal/finder"
	"github.com/pdiddy/extract-engine/pkg/types"
)

func batchSetup(t *testing.T) (types.BatchConfig, string) {
	t.Helper()
	tmpDir := t.TempDir()
	cfg := types.BatchConfig{
		CorpusDir:  filepath.Join(tmpDir, "corpus"),
		ResultsDir: filepath.Join(tmpDir, "results"),
	}
	if err := os.MkdirAll(cfg.CorpusDir, 0o755); err != nil {
		t.Fatal(err)
	}
	return cfg, cfg.CorpusDir
}

func writeDoc(t *testing.T, corpusDir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(corpusDir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestExtractAll(t *testing.T) {
	cfg, corpusDir := batchSetup(t)
	writeDoc(t, corpusDir, "note1.txt", "temp 98.6 this morning\ntemp 101.5 tonight\n")
	writeDoc(t, corpusDir, "note2.txt", "no vitals recorded\n")

	e := New(types.EngineConfig{}, finder.Defaults())
	var buf strings.Builder
	summary, err := e.ExtractAll(context.Background(), Query{Terms: "temp"}, "fever", cfg, &buf)
	if err != nil {
		t.Fatalf("ExtractAll: %v\noutput: %s", err, buf.String())
	}
	if summary.Extracted != 2 || summary.Failed != 0 {
		t.Fatalf("summary = %+v, want 2 extracted", summary)
	}

	data, err := os.ReadFile(filepath.Join(cfg.ResultsDir, "note1-measurements.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	var result docResult
	if err := yaml.Unmarshal(data, &result); err != nil {
		t.Fatal(err)
	}
	if result.DocID != "note1" || result.Feature != "fever" {
		t.Errorf("result header = %s/%s, want note1/fever", result.DocID, result.Feature)
	}
	if len(result.Measurements) != 2 {
		t.Fatalf("got %d measurements, want 2: %+v", len(result.Measurements), result.Measurements)
	}
	for _, m := range result.Measurements {
		if m.DocID != "note1" || m.Feature != "fever" {
			t.Errorf("measurement tags = %s/%s, want note1/fever", m.DocID, m.Feature)
		}
	}
}

func TestExtractAllSkipsUnchanged(t *testing.T) {
	cfg, corpusDir := batchSetup(t)
	writeDoc(t, corpusDir, "note1.txt", "temp 98.6\n")

	e := New(types.EngineConfig{}, finder.Defaults())
	var buf strings.Builder
	if _, err := e.ExtractAll(context.Background(), Query{Terms: "temp"}, "fever", cfg, &buf); err != nil {
		t.Fatal(err)
	}

	summary, err := e.ExtractAll(context.Background(), Query{Terms: "temp"}, "fever", cfg, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Skipped != 1 || summary.Extracted != 0 {
		t.Errorf("second run summary = %+v, want 1 skipped", summary)
	}
}

func TestExtractAllCancellation(t *testing.T) {
	cfg, corpusDir := batchSetup(t)
	writeDoc(t, corpusDir, "note1.txt", "temp 98.6\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := New(types.EngineConfig{}, finder.Defaults())
	var buf strings.Builder
	if _, err := e.ExtractAll(ctx, Query{Terms: "temp"}, "fever", cfg, &buf); err == nil {
		t.Error("ExtractAll with canceled context succeeded, want error")
	}
}
