package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/pumlgen/pkg/model"
	"github.com/matzehuels/pumlgen/pkg/namespace"
)

// ReadOptions controls how a model file becomes a project.
type ReadOptions struct {
	// TopLevelNamespace overrides the top_level_namespace of the file.
	TopLevelNamespace string

	// Excludes lists names that drop matching entities. An entity in the
	// root namespace is dropped when an exclude equals its name; any other
	// entity is dropped when its namespace starts with an exclude or an
	// exclude equals its full name. Matching uses relative namespaces.
	Excludes []string
}

// Excluded reports whether obj matches one of excludes.
func Excluded(obj model.NamespacedObject, excludes []string) bool {
	for _, x := range excludes {
		if x = strings.TrimSpace(x); x == "" {
			continue
		}
		if strings.TrimSpace(obj.Namespace()) == "" {
			if x == obj.Name() {
				return true
			}
			continue
		}
		if strings.HasPrefix(obj.Namespace(), x) || x == obj.FullName() {
			return true
		}
	}
	return false
}

// ReadYAML decodes a YAML model from r into an unlinked project.
//
// Entities are registered in file order, classes first. ReadYAML fails on
// malformed input and on duplicate or unnamed entities; errors name the
// entity involved. It does not close r.
func ReadYAML(r io.Reader, opts ReadOptions) (*model.Project, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return build(doc, opts)
}

// ReadJSON is the JSON counterpart of [ReadYAML].
func ReadJSON(r io.Reader, opts ReadOptions) (*model.Project, error) {
	var doc document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return build(doc, opts)
}

// ImportModel reads the model file at path. Files ending in ".json" are
// decoded as JSON, everything else as YAML.
func ImportModel(path string, opts ReadOptions) (*model.Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var p *model.Project
	if isJSON(path) {
		p, err = ReadJSON(f, opts)
	} else {
		p, err = ReadYAML(f, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

func build(doc document, opts ReadOptions) (*model.Project, error) {
	top := doc.TopLevelNamespace
	if opts.TopLevelNamespace != "" {
		top = opts.TopLevelNamespace
	}
	rel := func(ns string) string { return namespace.Relative(top, strings.TrimSpace(ns)) }
	symbol := func(s symbolDoc) *model.TypeSymbol {
		return model.NewTypeSymbol(strings.TrimSpace(s.Name), rel(s.Namespace))
	}

	p := model.NewProject(top)
	for _, cd := range doc.Classes {
		c := model.NewClass(rel(cd.Namespace), strings.TrimSpace(cd.Name))
		c.Abstract = cd.Abstract
		c.Record = cd.Record
		if cd.Base != nil && strings.TrimSpace(cd.Base.Name) != "" {
			c.Base = symbol(*cd.Base)
		}
		if Excluded(c, opts.Excludes) {
			continue
		}
		b, err := p.AddClass(c)
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", c.FullName(), err)
		}
		for _, ad := range cd.Associations {
			a := model.NewAssociation(ad.Name, symbol(ad.Type), ad.List, ad.Nullable)
			if err := b.AddAssociation(a); err != nil {
				return nil, fmt.Errorf("class %s: association %s: %w", c.FullName(), ad.Name, err)
			}
		}
	}
	for _, ed := range doc.Enumerations {
		e := model.NewEnumeration(rel(ed.Namespace), strings.TrimSpace(ed.Name), ed.Values...)
		if Excluded(e, opts.Excludes) {
			continue
		}
		if err := p.AddEnumeration(e); err != nil {
			return nil, fmt.Errorf("enumeration %s: %w", e.FullName(), err)
		}
	}
	return p, nil
}
