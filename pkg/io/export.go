package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/pumlgen/pkg/model"
)

func toDocument(p *model.Project) document {
	symbol := func(s *model.TypeSymbol) symbolDoc {
		return symbolDoc{Name: s.Name, Namespace: s.Namespace}
	}

	var doc document
	for _, c := range p.Classes() {
		cd := classDoc{
			Namespace: c.Namespace(),
			Name:      c.Name(),
			Abstract:  c.Abstract,
			Record:    c.Record,
		}
		if c.HasBase() {
			base := symbol(c.Base)
			cd.Base = &base
		}
		for _, a := range c.Associations() {
			cd.Associations = append(cd.Associations, assocDoc{
				Name:     a.Name,
				Type:     symbol(a.Target),
				List:     a.IsList,
				Nullable: a.IsNullable,
			})
		}
		doc.Classes = append(doc.Classes, cd)
	}
	for _, e := range p.Enumerations() {
		doc.Enumerations = append(doc.Enumerations, enumDoc{
			Namespace: e.Namespace(),
			Name:      e.Name(),
			Values:    e.Values(),
		})
	}
	return doc
}

// WriteYAML encodes p as a YAML model and writes it to w.
// The output can be re-imported with [ReadYAML].
func WriteYAML(p *model.Project, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toDocument(p)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// WriteJSON encodes p as a JSON model and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(p *model.Project, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toDocument(p)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportModel writes p to path, choosing the format from the extension the
// same way [ImportModel] does.
func ExportModel(p *model.Project, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if isJSON(path) {
		return WriteJSON(p, f)
	}
	return WriteYAML(p, f)
}
