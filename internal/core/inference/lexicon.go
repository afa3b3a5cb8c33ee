package inference

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	lexiconassets "github.com/wordser/wordser/internal/assets/lexicon"
)

// Lexicon is the word list artifact the model is built from.
type Lexicon struct {
	Version   int      `yaml:"version"`
	Stopwords []string `yaml:"stopwords"`
	Positive  []string `yaml:"positive"`
	Negative  []string `yaml:"negative"`
	Negators  []string `yaml:"negators"`
}

// ParseLexicon decodes and validates a YAML lexicon.
func ParseLexicon(data []byte) (*Lexicon, error) {
	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}
	if err := lex.validate(); err != nil {
		return nil, err
	}
	return &lex, nil
}

// ReadLexicon loads a lexicon from path, or the embedded default when path
// is empty.
func ReadLexicon(path string) (*Lexicon, string, error) {
	if path == "" {
		lex, err := ParseLexicon(lexiconassets.YAML)
		return lex, "embedded", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read lexicon: %w", err)
	}
	lex, err := ParseLexicon(data)
	return lex, path, err
}

func (l *Lexicon) validate() error {
	var errs []error
	if len(l.Stopwords) == 0 {
		errs = append(errs, errors.New("stopwords list is empty"))
	}
	if len(l.Positive) == 0 {
		errs = append(errs, errors.New("positive list is empty"))
	}
	if len(l.Negative) == 0 {
		errs = append(errs, errors.New("negative list is empty"))
	}
	if len(l.Negators) == 0 {
		errs = append(errs, errors.New("negators list is empty"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid lexicon: %w", errors.Join(errs...))
	}
	return nil
}
