package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/sentistat/pkg/sentistat/corpus"
)

// Columns locates the fields the jobs read.
type Columns struct {
	URL        corpus.ColumnSpec `yaml:"url"`
	Title      corpus.ColumnSpec `yaml:"title"`
	Selftext   corpus.ColumnSpec `yaml:"selftext"`
	Annotator1 corpus.ColumnSpec `yaml:"annotator1"`
	Annotator2 corpus.ColumnSpec `yaml:"annotator2"`
}

// Config is the YAML run configuration.
type Config struct {
	Input          string         `yaml:"input"`
	Sheet          string         `yaml:"sheet"`
	SkipRows       int            `yaml:"skip_rows"`
	Columns        Columns        `yaml:"columns"`
	Labels         map[int]string `yaml:"labels"`
	Stoplist       string         `yaml:"stoplist"`
	ExtraStopwords []string       `yaml:"extra_stopwords"`
	DefaultSource  string         `yaml:"default_source"`
	StripMarkup    bool           `yaml:"strip_markup"`
	TopWords       int            `yaml:"top_words"`
	TopBigrams     int            `yaml:"top_bigrams"`
	TopLabelWords  int            `yaml:"top_label_words"`
	Weighting      string         `yaml:"weighting"`
	DB             string         `yaml:"db"`
}

// Default returns the layout of the annotated corpus spreadsheet.
func Default() Config {
	return Config{
		Input:    "Sentiment Annotated Corpus.xlsx",
		Sheet:    "Sheet1",
		SkipRows: 2,
		Columns: Columns{
			URL:        corpus.ColumnSpec{Name: "url", Index: 2},
			Title:      corpus.ColumnSpec{Name: "title", Index: 6},
			Selftext:   corpus.ColumnSpec{Name: "selftext", Index: 7},
			Annotator1: corpus.ColumnSpec{Name: "annotator1", Index: 8},
			Annotator2: corpus.ColumnSpec{Name: "annotator2", Index: 9},
		},
		Labels: map[int]string{
			1: "Negative",
			2: "Neutral",
			3: "Positive",
			4: "Mixed/Other",
			5: "Sarcastic",
		},
		DefaultSource: "r/Ljubljana",
		TopWords:      20,
		TopBigrams:    10,
		TopLabelWords: 5,
		Weighting:     "none",
	}
}

// LoadConfig reads a YAML file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	// labels in the file replace the default scheme entirely
	var probe struct {
		Labels map[int]string `yaml:"labels"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(probe.Labels) > 0 {
		cfg.Labels = nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	// stoplist paths are relative to the config file
	if cfg.Stoplist != "" && !filepath.IsAbs(cfg.Stoplist) {
		cfg.Stoplist = filepath.Join(filepath.Dir(path), cfg.Stoplist)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.SkipRows < 0 {
		return fmt.Errorf("skip_rows must be >= 0, got %d", c.SkipRows)
	}
	if c.TopWords < 0 || c.TopBigrams < 0 || c.TopLabelWords < 0 {
		return fmt.Errorf("top_* limits must be >= 0")
	}
	switch c.Weighting {
	case "", "none", "linear", "quadratic":
	default:
		return fmt.Errorf("unknown weighting %q", c.Weighting)
	}
	return nil
}

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}
