package model

import (
	"slices"
	"strings"
)

// Project is the registry of every class and enumeration taking part in a
// diagram set. Entities are kept in registration order so that rendering and
// reference lookups are deterministic.
//
// The zero value is not usable; create projects with [NewProject].
type Project struct {
	topLevel string

	classes []*Class
	enums   []*Enumeration
	index   map[string]NamespacedObject

	linked bool
	refs   map[NamespacedObject][]*Class
}

// NewProject creates an empty project. The top-level namespace is kept for
// reference only; callers strip it from namespaces before registering
// entities.
func NewProject(topLevelNamespace string) *Project {
	return &Project{
		topLevel: topLevelNamespace,
		index:    make(map[string]NamespacedObject),
	}
}

// TopLevelNamespace returns the namespace prefix stripped from entity
// namespaces when the project was read.
func (p *Project) TopLevelNamespace() string { return p.topLevel }

// ClassBuilder attaches associations to a registered class. It is only
// handed out by [Project.AddClass], so an association can never end up on a
// class the project does not know about.
type ClassBuilder struct {
	project *Project
	class   *Class
}

// Class returns the class the builder attaches to.
func (b *ClassBuilder) Class() *Class {
	if b == nil {
		return nil
	}
	return b.class
}

// AddAssociation appends a to the class. A nil builder returns a
// [MissingContextError].
func (b *ClassBuilder) AddAssociation(a *Association) error {
	if b == nil || b.class == nil {
		name := ""
		if a != nil {
			name = a.Name
		}
		return &MissingContextError{Association: name}
	}
	if b.project.linked {
		return ErrAlreadyLinked
	}
	if a == nil {
		return nil
	}
	b.class.associations = append(b.class.associations, a)
	return nil
}

// AddClass registers c and returns a builder for its associations.
// It fails with [ErrEmptyName] or a [DuplicateEntityError]; on failure the
// registry is left unchanged.
func (p *Project) AddClass(c *Class) (*ClassBuilder, error) {
	if err := p.register(c); err != nil {
		return nil, err
	}
	p.classes = append(p.classes, c)
	return &ClassBuilder{project: p, class: c}, nil
}

// AddEnumeration registers e. It fails with [ErrEmptyName] or a
// [DuplicateEntityError]; on failure the registry is left unchanged.
func (p *Project) AddEnumeration(e *Enumeration) error {
	if err := p.register(e); err != nil {
		return err
	}
	p.enums = append(p.enums, e)
	return nil
}

func (p *Project) register(obj NamespacedObject) error {
	if p.linked {
		return ErrAlreadyLinked
	}
	if strings.TrimSpace(obj.Name()) == "" {
		return ErrEmptyName
	}
	key := obj.FullName()
	if _, exists := p.index[key]; exists {
		return &DuplicateEntityError{Kind: obj.Kind().String(), FullName: key}
	}
	p.index[key] = obj
	return nil
}

// Classes returns the registered classes in registration order.
func (p *Project) Classes() []*Class { return slices.Clone(p.classes) }

// Enumerations returns the registered enumerations in registration order.
func (p *Project) Enumerations() []*Enumeration { return slices.Clone(p.enums) }

// Objects returns every entity, classes first, each group in registration
// order.
func (p *Project) Objects() []NamespacedObject {
	out := make([]NamespacedObject, 0, len(p.classes)+len(p.enums))
	for _, c := range p.classes {
		out = append(out, c)
	}
	for _, e := range p.enums {
		out = append(out, e)
	}
	return out
}

// Lookup returns the entity registered under fullName.
func (p *Project) Lookup(fullName string) (NamespacedObject, bool) {
	obj, ok := p.index[fullName]
	return obj, ok
}

// Len returns the number of registered entities.
func (p *Project) Len() int { return len(p.index) }

// Linked reports whether [Project.LinkSymbols] has run.
func (p *Project) Linked() bool { return p.linked }

// Namespaces returns the distinct namespaces of all classes and
// enumerations, in first-seen order. Blank namespaces are skipped.
func (p *Project) Namespaces() []string {
	seen := make(map[string]bool)
	var out []string
	for _, obj := range p.Objects() {
		ns := obj.Namespace()
		if strings.TrimSpace(ns) == "" || seen[ns] {
			continue
		}
		seen[ns] = true
		out = append(out, ns)
	}
	return out
}

// GetReferencesTo returns the distinct classes that point at target through
// a resolved association or a resolved base type, in registration order.
// Before linking nothing is resolved and the result is empty.
func (p *Project) GetReferencesTo(target NamespacedObject) []*Class {
	if target == nil || p.refs == nil {
		return nil
	}
	return slices.Clone(p.refs[target])
}
