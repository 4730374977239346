package puml

import (
	"testing"

	"github.com/matzehuels/pumlgen/pkg/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		base string
		want Stereotype
	}{
		{"AggregateRoot", StereotypeAggregateRoot},
		{"MyAggregateRoot", StereotypeAggregateRoot},
		{"Aggregate", StereotypeAggregateRoot},
		{"AggregateEntity", StereotypeAggregateRoot},
		{"Entity", StereotypeEntity},
		{"AuditedEntity", StereotypeEntity},
		{"ValueObject", StereotypeValueObject},
		{"SingleValueObject", StereotypeValueObject},
		{"Enumeration", StereotypeEnumeration},
		{"entity", StereotypeNone},
		{"Person", StereotypeNone},
		{"", StereotypeNone},
		{"  ", StereotypeNone},
	}
	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			if got := Classify(tt.base); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.base, got, tt.want)
			}
		})
	}
}

func TestClassStereotype(t *testing.T) {
	record := model.NewClass("N", "Money")
	record.Record = true
	record.Base = model.NewTypeSymbol("Entity", "N")

	entity := model.NewClass("N", "Order")
	entity.Base = model.NewTypeSymbol("MyAggregateRoot", "Base.Domain")

	plain := model.NewClass("N", "Helper")

	tests := []struct {
		name string
		c    *model.Class
		want Stereotype
	}{
		{"record overrides base", record, StereotypeValueObject},
		{"classifies bare base name", entity, StereotypeAggregateRoot},
		{"no base", plain, StereotypeNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassStereotype(tt.c); got != tt.want {
				t.Errorf("ClassStereotype(%s) = %v, want %v", tt.c.FullName(), got, tt.want)
			}
		})
	}
}
