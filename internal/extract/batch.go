// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/extract-engine/internal/corpus"
	"github.com/pdiddy/extract-engine/pkg/types"
)

// BatchSummary holds counts from a batch extraction run.
type BatchSummary struct {
	Extracted int
	Skipped   int
	Failed    int
}

// Total returns the number of documents processed.
func (s BatchSummary) Total() int {
	return s.Extracted + s.Skipped + s.Failed
}

// HasFailures reports whether any documents failed.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// docResult is the per-document YAML payload written by batch runs and
// ingested by the record store.
type docResult struct {
	DocID        string                    `yaml:"doc_id"`
	Feature      string                    `yaml:"feature"`
	Query        Query                     `yaml:"query"`
	Measurements []types.StoredMeasurement `yaml:"measurements"`
}

// ExtractAll runs the query against every document in cfg.CorpusDir and
// writes one [docID]-measurements.yaml per document to cfg.ResultsDir.
// Documents whose results are newer than the source are skipped.
// Progress lines go to w; feature labels the run for downstream joins.
func (e *Engine) ExtractAll(ctx context.Context, q Query, feature string, cfg types.BatchConfig, w io.Writer) (BatchSummary, error) {
	if err := os.MkdirAll(cfg.ResultsDir, 0o755); err != nil {
		return BatchSummary{}, fmt.Errorf("creating results directory: %w", err)
	}

	docs, err := corpus.Load(cfg.CorpusDir)
	if err != nil {
		return BatchSummary{}, err
	}

	var summary BatchSummary
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		outPath := filepath.Join(cfg.ResultsDir, doc.ID+"-measurements.yaml")

		changed, err := hasChanged(doc.Path, outPath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", doc.ID, err)
			summary.Failed++
			continue
		}
		if !changed {
			fmt.Fprintf(w, "skipped %s\n", doc.ID)
			summary.Skipped++
			continue
		}

		result, err := e.extractDoc(doc, q, feature)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", doc.ID, err)
			summary.Failed++
			continue
		}

		if err := writeDocResult(outPath, result); err != nil {
			fmt.Fprintf(w, "failed  %s: write error: %v\n", doc.ID, err)
			summary.Failed++
			continue
		}

		fmt.Fprintf(w, "extracted %s (%d measurements)\n", doc.ID, len(result.Measurements))
		summary.Extracted++
	}

	return summary, nil
}

// extractDoc runs the query over every sentence of one document and
// flattens the surviving measurements into store records.
func (e *Engine) extractDoc(doc corpus.Document, q Query, feature string) (*docResult, error) {
	out := &docResult{
		DocID:        doc.ID,
		Feature:      feature,
		Query:        q,
		Measurements: []types.StoredMeasurement{},
	}

	for _, sentence := range doc.Sentences {
		res, err := e.Run(q, sentence)
		if err != nil {
			return nil, err
		}
		for _, m := range res.Measurements {
			out.Measurements = append(out.Measurements, types.StoredMeasurement{
				Measurement: m,
				DocID:       doc.ID,
				Feature:     feature,
			})
		}
	}

	return out, nil
}

// hasChanged reports whether the source document is newer than its
// results file. Returns true if the results file does not exist.
func hasChanged(srcPath, outPath string) (bool, error) {
	srcInfo, err := os.Stat(srcPath)
	if err != nil {
		return false, fmt.Errorf("stat source %s: %w", srcPath, err)
	}

	outInfo, err := os.Stat(outPath)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat output %s: %w", outPath, err)
	}

	return srcInfo.ModTime().After(outInfo.ModTime()), nil
}

func writeDocResult(path string, result *docResult) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
