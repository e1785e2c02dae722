package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kirillkom/resume-quality-checker/internal/core/domain"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// DefaultRules returns the built-in rules. It panics only if the embedded file is broken.
func DefaultRules() domain.Rules {
	rules, err := ParseRules(bytes.NewReader(defaultRulesYAML))
	if err != nil {
		panic(fmt.Sprintf("embedded rules.yaml: %v", err))
	}
	return rules
}

// LoadRules reads rules from path, or returns the built-in rules when path is empty.
func LoadRules(path string) (domain.Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return domain.Rules{}, fmt.Errorf("open rules file: %w", err)
	}
	defer f.Close()

	rules, err := ParseRules(f)
	if err != nil {
		return domain.Rules{}, fmt.Errorf("rules file %s: %w", path, err)
	}
	return rules, nil
}

func ParseRules(r io.Reader) (domain.Rules, error) {
	var rules domain.Rules
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&rules); err != nil {
		return domain.Rules{}, domain.WrapError(domain.ErrInvalidInput, "decode rules", err)
	}
	rules = rules.Normalize()
	if err := rules.Validate(); err != nil {
		return domain.Rules{}, err
	}
	return rules, nil
}
