// Package yaml loads lexicon and analysis configuration overrides from
// YAML files. Keys absent from a file keep their default values.
package yaml

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/pagedigest"
	"gopkg.in/yaml.v3"
)

// LoadLexicon reads a lexicon from path. Lists present in the file replace
// the corresponding default lists entirely.
func LoadLexicon(path string) (*pagedigest.Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lexicon: %w", err)
	}
	defer f.Close()
	return DecodeLexicon(f)
}

// DecodeLexicon decodes a lexicon from r over the default lexicon.
func DecodeLexicon(r io.Reader) (*pagedigest.Lexicon, error) {
	lex := pagedigest.DefaultLexicon()
	if err := decode(r, lex); err != nil {
		return nil, err
	}
	if len(lex.ImperativeVerbs) == 0 {
		return nil, pagedigest.Errorf(pagedigest.EINVALID, "lexicon has no imperative verbs")
	}
	return lex, nil
}

// LoadConfig reads analysis configuration from path.
func LoadConfig(path string) (pagedigest.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return pagedigest.Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return DecodeConfig(f)
}

// DecodeConfig decodes configuration from r over the defaults and
// validates the result.
func DecodeConfig(r io.Reader) (pagedigest.Config, error) {
	cfg := pagedigest.DefaultConfig()
	if err := decode(r, &cfg); err != nil {
		return pagedigest.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return pagedigest.Config{}, err
	}
	return cfg, nil
}

func decode(r io.Reader, v any) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && err != io.EOF {
		return pagedigest.Errorf(pagedigest.EINVALID, "invalid yaml: %v", err)
	}
	return nil
}
