// Package config holds the settings of a preparation run.
package config

import (
	"fmt"

	"github.com/satdlab/satdprep/golib/errors"
	"github.com/satdlab/satdprep/golib/fileutil"
	"github.com/satdlab/satdprep/golib/text"
	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v2"
)

// Lemmatizer names.
const (
	WordNet  = "wordnet"
	Porter   = "porter"
	NoLemmas = "none"
)

// Columns names the input columns.
type Columns struct {
	ID    string `yaml:"id"`
	Text  string `yaml:"text"`
	Label string `yaml:"label"`
}

// Config is the configuration of a preparation run.
type Config struct {
	Input     string  `yaml:"input"`
	OutputDir string  `yaml:"output_dir"`
	Columns   Columns `yaml:"columns"`

	LabelEncoding  string `yaml:"label_encoding"`
	KeepFirstPerID bool   `yaml:"keep_first_per_id"`

	Vectorizer  string `yaml:"vectorizer"`
	MaxFeatures int    `yaml:"max_features"`
	// NGramMax > 1 adds word n-grams up to that order to the vocabulary.
	NGramMax int `yaml:"ngram_max"`

	TestSize float64 `yaml:"test_size"`
	Seed     uint32  `yaml:"seed"`
	// PositionalLabels takes the last LabelCount columns as labels instead of
	// the label columns found during aggregation.
	PositionalLabels bool `yaml:"positional_labels"`
	LabelCount       int  `yaml:"label_count"`

	Sentinel       string `yaml:"sentinel"`
	Lemmatizer     string `yaml:"lemmatizer"`
	WordNetDir     string `yaml:"wordnet_dir"`
	StopWordsFile  string `yaml:"stopwords_file"`
	LemmaCacheSize int    `yaml:"lemma_cache_size"`
}

// Default returns the configuration that produced the published datasets.
func Default() *Config {
	return &Config{
		Input:     "../Data/sample_SATD30ktop.csv",
		OutputDir: "../Data",
		Columns: Columns{
			ID:    "satd_id",
			Text:  "v1_comment",
			Label: "refactoring_type",
		},
		LabelEncoding:  "onehot",
		KeepFirstPerID: true,
		Vectorizer:     "count-compat",
		MaxFeatures:    1000,
		NGramMax:       1,
		TestSize:       0.30,
		Seed:           42,
		LabelCount:     10,
		Sentinel:       text.Sentinel,
		Lemmatizer:     WordNet,
		LemmaCacheSize: 4096,
	}
}

// Load reads a YAML file over the defaults; keys missing from the file keep
// their default value.
func Load(fs afero.Fs, path string) (*Config, error) {
	buf, err := fileutil.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	c := Default()
	if err := yaml.UnmarshalStrict(buf, c); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	return c, nil
}

// Marshal renders c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate reports every problem with c at once.
func (c *Config) Validate() error {
	var errs errors.Errors
	required := func(name, v string) {
		if v == "" {
			errs = errors.Append(errs, fmt.Errorf("%s must be set", name))
		}
	}
	required("input", c.Input)
	required("output_dir", c.OutputDir)
	required("columns.id", c.Columns.ID)
	required("columns.text", c.Columns.Text)
	required("columns.label", c.Columns.Label)

	switch c.LabelEncoding {
	case "onehot", "multi":
	default:
		errs = errors.Append(errs, fmt.Errorf("label_encoding %q must be onehot or multi", c.LabelEncoding))
	}
	switch c.Vectorizer {
	case "count-compat", "tfidf", "count":
	default:
		errs = errors.Append(errs, fmt.Errorf("vectorizer %q must be count-compat, tfidf or count", c.Vectorizer))
	}
	switch c.Lemmatizer {
	case WordNet, Porter, NoLemmas:
	default:
		errs = errors.Append(errs, fmt.Errorf("lemmatizer %q must be wordnet, porter or none", c.Lemmatizer))
	}

	if c.MaxFeatures < 0 {
		errs = errors.Append(errs, fmt.Errorf("max_features must not be negative, got %d", c.MaxFeatures))
	}
	if c.NGramMax < 1 {
		errs = errors.Append(errs, fmt.Errorf("ngram_max must be at least 1, got %d", c.NGramMax))
	}
	if !(c.TestSize > 0 && c.TestSize < 1) {
		errs = errors.Append(errs, fmt.Errorf("test_size must be between 0 and 1, got %v", c.TestSize))
	}
	if c.PositionalLabels && c.LabelCount <= 0 {
		errs = errors.Append(errs, fmt.Errorf("label_count must be positive, got %d", c.LabelCount))
	}
	return errors.AsError(errs)
}

// Normalizer builds the text normalizer described by c, reading the stop
// word list and WordNet files from fs when they are configured.
func (c *Config) Normalizer(fs afero.Fs) (*text.Normalizer, error) {
	stop := text.EnglishStopWords()
	if c.StopWordsFile != "" {
		r, err := fileutil.NewReader(fs, c.StopWordsFile)
		if err != nil {
			return nil, errors.Wrapf(err, "opening stop words")
		}
		defer r.Close()
		if stop, err = text.ReadStopWords(r); err != nil {
			return nil, errors.Wrapf(err, "reading stop words")
		}
	}

	var lem text.Lemmatizer
	switch c.Lemmatizer {
	case WordNet:
		lex := text.DefaultLexicon()
		if c.WordNetDir != "" {
			var err error
			if lex, err = text.LoadWordNet(fs, c.WordNetDir); err != nil {
				return nil, err
			}
		}
		m, err := text.NewMorphyLemmatizer(lex, c.LemmaCacheSize)
		if err != nil {
			return nil, err
		}
		lem = m
	case Porter:
		lem = text.PorterLemmatizer{}
	case NoLemmas:
		lem = text.IdentityLemmatizer{}
	default:
		return nil, errors.Errorf("unknown lemmatizer %q", c.Lemmatizer)
	}

	return text.NewNormalizer(text.NormalizerOptions{
		StopWords:  stop,
		Lemmatizer: lem,
		Sentinel:   c.Sentinel,
	}), nil
}
