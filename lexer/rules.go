package lexer

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v2"
)

// RuleSet is the document read by LoadRules:
//
//	rules:
//	  - name: ident
//	    pattern: "[a-z_][a-z0-9_]*"
//	  - name: space
//	    pattern: "[ \t\n]+"
//	    skip: true
type RuleSet struct {
	Rules []Rule `yaml:"rules"`
}

// LoadRules reads a YAML rule set. Unknown fields are rejected.
func LoadRules(r io.Reader) ([]Rule, error) {
	bs, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("lexer: reading rules: %w", err)
	}

	var set RuleSet
	if err = yaml.UnmarshalStrict(bs, &set); err != nil {
		return nil, fmt.Errorf("lexer: parsing rules: %w", err)
	}
	if len(set.Rules) == 0 {
		return nil, ErrNoRules
	}
	return set.Rules, nil
}
