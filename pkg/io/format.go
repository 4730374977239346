package io

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/pumlgen/pkg/model"
)

type document struct {
	TopLevelNamespace string     `yaml:"top_level_namespace,omitempty" json:"top_level_namespace,omitempty"`
	Classes           []classDoc `yaml:"classes,omitempty" json:"classes,omitempty"`
	Enumerations      []enumDoc  `yaml:"enumerations,omitempty" json:"enumerations,omitempty"`
}

type classDoc struct {
	Namespace    string     `yaml:"namespace,omitempty" json:"namespace,omitempty"`
	Name         string     `yaml:"name" json:"name"`
	Abstract     bool       `yaml:"abstract,omitempty" json:"abstract,omitempty"`
	Record       bool       `yaml:"record,omitempty" json:"record,omitempty"`
	Base         *symbolDoc `yaml:"base,omitempty" json:"base,omitempty"`
	Associations []assocDoc `yaml:"associations,omitempty" json:"associations,omitempty"`
}

type assocDoc struct {
	Name     string    `yaml:"name" json:"name"`
	Type     symbolDoc `yaml:"type" json:"type"`
	List     bool      `yaml:"list,omitempty" json:"list,omitempty"`
	Nullable bool      `yaml:"nullable,omitempty" json:"nullable,omitempty"`
}

type enumDoc struct {
	Namespace string   `yaml:"namespace,omitempty" json:"namespace,omitempty"`
	Name      string   `yaml:"name" json:"name"`
	Values    []string `yaml:"values,omitempty" json:"values,omitempty"`
}

// symbolDoc is a type reference. It decodes from a dotted string or from a
// {name, namespace} mapping.
type symbolDoc struct {
	Name      string `yaml:"name" json:"name"`
	Namespace string `yaml:"namespace,omitempty" json:"namespace,omitempty"`
}

type symbolFields symbolDoc

func parseSymbol(s string) symbolDoc {
	s = strings.TrimSpace(s)
	if i := strings.LastIndex(s, "."); i > 0 && i < len(s)-1 {
		return symbolDoc{Namespace: s[:i], Name: s[i+1:]}
	}
	return symbolDoc{Name: s}
}

func (s *symbolDoc) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*s = parseSymbol(node.Value)
		return nil
	}
	var f symbolFields
	if err := node.Decode(&f); err != nil {
		return fmt.Errorf("line %d: type reference: %w", node.Line, err)
	}
	*s = symbolDoc(f)
	return nil
}

func (s *symbolDoc) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = parseSymbol(str)
		return nil
	}
	var f symbolFields
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("type reference: %w", err)
	}
	*s = symbolDoc(f)
	return nil
}

// scalar reports whether s survives a round trip through its dotted form.
func (s symbolDoc) scalar() bool {
	return !strings.Contains(s.Name, ".")
}

func (s symbolDoc) MarshalYAML() (any, error) {
	if s.scalar() {
		return model.FullName(s.Namespace, s.Name), nil
	}
	return symbolFields(s), nil
}

func (s symbolDoc) MarshalJSON() ([]byte, error) {
	if s.scalar() {
		return json.Marshal(model.FullName(s.Namespace, s.Name))
	}
	return json.Marshal(symbolFields(s))
}
