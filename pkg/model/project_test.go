package model

import (
	"errors"
	"testing"
)

func TestFullName(t *testing.T) {
	tests := []struct {
		namespace, name, want string
	}{
		{"Shop.Orders", "Order", "Shop.Orders.Order"},
		{"", "Order", "Order"},
		{"   ", "Order", "Order"},
		{"A", "B", "A.B"},
	}
	for _, tt := range tests {
		if got := FullName(tt.namespace, tt.name); got != tt.want {
			t.Errorf("FullName(%q, %q) = %q, want %q", tt.namespace, tt.name, got, tt.want)
		}
	}
}

func TestAddClassDuplicate(t *testing.T) {
	p := NewProject("")
	if _, err := p.AddClass(NewClass("N", "Foo")); err != nil {
		t.Fatalf("AddClass() error = %v", err)
	}

	_, err := p.AddClass(NewClass("N", "Foo"))
	if !errors.Is(err, ErrDuplicateEntity) {
		t.Fatalf("AddClass() duplicate error = %v, want ErrDuplicateEntity", err)
	}
	var dup *DuplicateEntityError
	if !errors.As(err, &dup) || dup.FullName != "N.Foo" || dup.Kind != "class" {
		t.Errorf("AddClass() error = %#v, want DuplicateEntityError for class N.Foo", err)
	}
	if got := len(p.Classes()); got != 1 {
		t.Errorf("len(Classes()) = %d, want 1", got)
	}
}

func TestDuplicateAcrossKinds(t *testing.T) {
	p := NewProject("")
	if _, err := p.AddClass(NewClass("N", "Status")); err != nil {
		t.Fatal(err)
	}
	err := p.AddEnumeration(NewEnumeration("N", "Status", "Open"))
	if !errors.Is(err, ErrDuplicateEntity) {
		t.Fatalf("AddEnumeration() error = %v, want ErrDuplicateEntity", err)
	}
	if got := len(p.Enumerations()); got != 0 {
		t.Errorf("len(Enumerations()) = %d, want 0", got)
	}

	p2 := NewProject("")
	if err := p2.AddEnumeration(NewEnumeration("N", "Status")); err != nil {
		t.Fatal(err)
	}
	if _, err := p2.AddClass(NewClass("N", "Status")); !errors.Is(err, ErrDuplicateEntity) {
		t.Errorf("AddClass() after enumeration error = %v, want ErrDuplicateEntity", err)
	}
}

func TestAddEmptyName(t *testing.T) {
	p := NewProject("")
	if _, err := p.AddClass(NewClass("N", " ")); !errors.Is(err, ErrEmptyName) {
		t.Errorf("AddClass() error = %v, want ErrEmptyName", err)
	}
	if err := p.AddEnumeration(NewEnumeration("N", "")); !errors.Is(err, ErrEmptyName) {
		t.Errorf("AddEnumeration() error = %v, want ErrEmptyName", err)
	}
	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
}

func TestAddAssociationWithoutClass(t *testing.T) {
	var b *ClassBuilder
	err := b.AddAssociation(NewAssociation("items", NewTypeSymbol("Item", "N"), true, false))
	if !errors.Is(err, ErrMissingContext) {
		t.Fatalf("AddAssociation() error = %v, want ErrMissingContext", err)
	}
	var mc *MissingContextError
	if !errors.As(err, &mc) || mc.Association != "items" {
		t.Errorf("AddAssociation() error = %#v, want MissingContextError for items", err)
	}
}

func TestAssociationsKeepOrder(t *testing.T) {
	p := NewProject("")
	b, err := p.AddClass(NewClass("N", "Foo"))
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"c", "a", "b"} {
		if err := b.AddAssociation(NewAssociation(name, NewTypeSymbol("int", ""), false, false)); err != nil {
			t.Fatal(err)
		}
	}
	var got []string
	for _, a := range b.Class().Associations() {
		got = append(got, a.Name)
	}
	if len(got) != 3 || got[0] != "c" || got[1] != "a" || got[2] != "b" {
		t.Errorf("Associations() = %v, want [c a b]", got)
	}
}

func TestNewAssociationNullableMarker(t *testing.T) {
	a := NewAssociation("age", NewTypeSymbol("int?", ""), false, false)
	if a.Target.Name != "int" {
		t.Errorf("Target.Name = %q, want %q", a.Target.Name, "int")
	}
	if !a.IsNullable {
		t.Error("IsNullable = false, want true")
	}

	b := NewAssociation("age", NewTypeSymbol("int", ""), false, false)
	if b.IsNullable {
		t.Error("IsNullable = true for plain symbol, want false")
	}
}

func TestNamespaces(t *testing.T) {
	p := NewProject("")
	mustAddClass(t, p, NewClass("B", "X"))
	mustAddClass(t, p, NewClass("A", "Y"))
	mustAddClass(t, p, NewClass("B", "Z"))
	mustAddClass(t, p, NewClass("", "Root"))
	if err := p.AddEnumeration(NewEnumeration("C.D", "E")); err != nil {
		t.Fatal(err)
	}

	got := p.Namespaces()
	want := []string{"B", "A", "C.D"}
	if len(got) != len(want) {
		t.Fatalf("Namespaces() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Namespaces()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMutationAfterLink(t *testing.T) {
	p := NewProject("")
	b := mustAddClass(t, p, NewClass("N", "Foo"))
	if _, err := p.LinkSymbols(); err != nil {
		t.Fatal(err)
	}

	if _, err := p.AddClass(NewClass("N", "Bar")); !errors.Is(err, ErrAlreadyLinked) {
		t.Errorf("AddClass() after link error = %v, want ErrAlreadyLinked", err)
	}
	if err := p.AddEnumeration(NewEnumeration("N", "E")); !errors.Is(err, ErrAlreadyLinked) {
		t.Errorf("AddEnumeration() after link error = %v, want ErrAlreadyLinked", err)
	}
	if err := b.AddAssociation(NewAssociation("x", NewTypeSymbol("int", ""), false, false)); !errors.Is(err, ErrAlreadyLinked) {
		t.Errorf("AddAssociation() after link error = %v, want ErrAlreadyLinked", err)
	}
	if _, err := p.LinkSymbols(); !errors.Is(err, ErrAlreadyLinked) {
		t.Errorf("second LinkSymbols() error = %v, want ErrAlreadyLinked", err)
	}
}

func mustAddClass(t *testing.T, p *Project, c *Class) *ClassBuilder {
	t.Helper()
	b, err := p.AddClass(c)
	if err != nil {
		t.Fatalf("AddClass(%s) error = %v", c.FullName(), err)
	}
	return b
}

func mustAssociate(t *testing.T, b *ClassBuilder, name, target, ns string, list bool) *Association {
	t.Helper()
	a := NewAssociation(name, NewTypeSymbol(target, ns), list, false)
	if err := b.AddAssociation(a); err != nil {
		t.Fatalf("AddAssociation(%s) error = %v", name, err)
	}
	return a
}
