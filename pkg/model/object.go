package model

import "strings"

// Kind distinguishes the two entity types a project can hold.
type Kind int

const (
	KindClass Kind = iota
	KindEnumeration
)

func (k Kind) String() string {
	if k == KindEnumeration {
		return "enumeration"
	}
	return "class"
}

// NamespacedObject is implemented by every entity stored in a [Project].
type NamespacedObject interface {
	// Namespace returns the dot-separated namespace, possibly empty.
	Namespace() string
	// Name returns the simple (bare) name.
	Name() string
	// FullName returns Namespace + "." + Name, or just Name when the
	// namespace is empty or whitespace.
	FullName() string
	// Kind reports whether the entity is a class or an enumeration.
	Kind() Kind
}

// FullName joins a namespace and a simple name. A blank namespace yields the
// name unchanged.
func FullName(namespace, name string) string {
	if strings.TrimSpace(namespace) == "" {
		return name
	}
	return namespace + "." + name
}

type ident struct {
	namespace string
	name      string
}

func (i ident) Namespace() string { return i.namespace }
func (i ident) Name() string      { return i.name }
func (i ident) FullName() string  { return FullName(i.namespace, i.name) }
