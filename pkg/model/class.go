package model

import "slices"

// Class is a type that owns associations and may derive from a base type.
// Set Abstract, Record and Base before registering the class; the project
// does not expect them to change afterwards.
type Class struct {
	ident

	Abstract bool
	Record   bool
	Base     *TypeSymbol

	associations []*Association
}

// NewClass creates a class with no base type and no associations.
func NewClass(namespace, name string) *Class {
	return &Class{ident: ident{namespace: namespace, name: name}}
}

func (c *Class) Kind() Kind { return KindClass }

// HasBase reports whether a base type was declared, resolved or not.
func (c *Class) HasBase() bool {
	return c.Base != nil && c.Base.Name != ""
}

// Associations returns the class's associations in insertion order.
// The returned slice is a copy.
func (c *Class) Associations() []*Association {
	return slices.Clone(c.associations)
}

// Enumeration is a type with an ordered list of member names.
type Enumeration struct {
	ident

	values []string
}

// NewEnumeration creates an enumeration with the given members.
func NewEnumeration(namespace, name string, values ...string) *Enumeration {
	return &Enumeration{
		ident:  ident{namespace: namespace, name: name},
		values: slices.Clone(values),
	}
}

func (e *Enumeration) Kind() Kind { return KindEnumeration }

// Values returns the members in declaration order.
func (e *Enumeration) Values() []string {
	return slices.Clone(e.values)
}
