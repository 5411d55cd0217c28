// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// EngineConfig holds settings for the value-extraction engine.
type EngineConfig struct {
	// CaseSensitive preserves case when matching query terms.
	CaseSensitive bool `json:"case_sensitive" yaml:"case_sensitive"`

	// DenomOnly returns fraction denominators instead of numerators.
	DenomOnly bool `json:"denom_only" yaml:"denom_only"`

	// HypotheticalWindow is the word-distance window after a trigger
	// phrase inside which results are suppressed (default 6).
	HypotheticalWindow int `json:"hypothetical_window" yaml:"hypothetical_window"`
}

// BatchConfig holds settings for batch extraction over a corpus.
type BatchConfig struct {
	// CorpusDir contains one .txt document per file, one sentence per line.
	CorpusDir string `json:"corpus_dir" yaml:"corpus_dir"`

	// ResultsDir receives one [docID]-measurements.yaml file per document.
	ResultsDir string `json:"results_dir" yaml:"results_dir"`
}

// StoreConfig holds settings for the measurement record store.
type StoreConfig struct {
	// ResultsDir is the batch output directory the store ingests from.
	ResultsDir string `json:"results_dir" yaml:"results_dir"`

	// IndexDir receives the SQLite database and export.yaml.
	IndexDir string `json:"index_dir" yaml:"index_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Engine EngineConfig `json:"engine" yaml:"engine"`
	Batch  BatchConfig  `json:"batch" yaml:"batch"`
	Store  StoreConfig  `json:"store" yaml:"store"`
}
