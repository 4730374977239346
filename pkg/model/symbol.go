package model

import "strings"

// TypeSymbol is an unresolved reference to a type, written as a simple name
// plus an optional namespace. [Project.LinkSymbols] binds it to the entity
// with the same full name, if one is registered.
//
// A symbol is resolved at most once. Symbols that never resolve refer to
// types outside the project and are rendered by their simple name.
type TypeSymbol struct {
	Name      string
	Namespace string

	target NamespacedObject
}

// NewTypeSymbol creates an unresolved symbol.
func NewTypeSymbol(name, namespace string) *TypeSymbol {
	return &TypeSymbol{Name: name, Namespace: namespace}
}

// FullName returns the name the linker looks the symbol up by.
func (s *TypeSymbol) FullName() string {
	return FullName(s.Namespace, s.Name)
}

// Target returns the entity the symbol was bound to, or nil.
func (s *TypeSymbol) Target() NamespacedObject {
	if s == nil {
		return nil
	}
	return s.target
}

// IsResolved reports whether linking found a matching entity.
func (s *TypeSymbol) IsResolved() bool {
	return s != nil && s.target != nil
}

func (s *TypeSymbol) resolve(obj NamespacedObject) bool {
	if s.target != nil {
		return false
	}
	s.target = obj
	return true
}

// Association is a named, typed field of a class.
type Association struct {
	Name       string
	Target     *TypeSymbol
	IsList     bool
	IsNullable bool
}

// NewAssociation creates an association. A trailing "?" on the target's
// simple name is the nullable marker: it is stripped from the symbol and
// IsNullable is set.
func NewAssociation(name string, target *TypeSymbol, isList, isNullable bool) *Association {
	if target == nil {
		target = NewTypeSymbol("", "")
	}
	if trimmed, ok := strings.CutSuffix(target.Name, "?"); ok {
		target.Name = trimmed
		isNullable = true
	}
	return &Association{
		Name:       name,
		Target:     target,
		IsList:     isList,
		IsNullable: isNullable,
	}
}
