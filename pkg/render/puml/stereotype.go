package puml

import (
	"regexp"
	"strings"

	"github.com/matzehuels/pumlgen/pkg/model"
)

// Stereotype is a domain-pattern tag attached to a rendered class.
type Stereotype int

const (
	StereotypeNone Stereotype = iota
	StereotypeAggregateRoot
	StereotypeEntity
	StereotypeValueObject
	StereotypeEnumeration
)

func (s Stereotype) String() string {
	switch s {
	case StereotypeAggregateRoot:
		return "Aggregate Root"
	case StereotypeEntity:
		return "Entity"
	case StereotypeValueObject:
		return "Value Object"
	case StereotypeEnumeration:
		return "Enumeration"
	default:
		return ""
	}
}

// stereotypeRules is evaluated top-down; order matters because
// "AggregateEntity" must classify as an aggregate root.
var stereotypeRules = []struct {
	pattern *regexp.Regexp
	tag     Stereotype
}{
	{regexp.MustCompile(`Aggregate(Root)?`), StereotypeAggregateRoot},
	{regexp.MustCompile(`Entity`), StereotypeEntity},
	{regexp.MustCompile(`(Single)?ValueObject`), StereotypeValueObject},
	{regexp.MustCompile(`Enumeration`), StereotypeEnumeration},
}

// Classify maps a bare base type name onto a stereotype. Matching is
// case-sensitive and unanchored.
func Classify(baseName string) Stereotype {
	if strings.TrimSpace(baseName) == "" {
		return StereotypeNone
	}
	for _, rule := range stereotypeRules {
		if rule.pattern.MatchString(baseName) {
			return rule.tag
		}
	}
	return StereotypeNone
}

// ClassStereotype returns the stereotype a class is rendered with.
func ClassStereotype(c *model.Class) Stereotype {
	if c.Record {
		return StereotypeValueObject
	}
	if !c.HasBase() {
		return StereotypeNone
	}
	return Classify(c.Base.Name)
}

// drawsInheritance reports whether the base arrow is emitted: the base must
// be resolved and must not classify as a stereotype.
func drawsInheritance(c *model.Class) bool {
	if !c.HasBase() || !c.Base.IsResolved() {
		return false
	}
	return Classify(c.Base.Target().Name()) == StereotypeNone
}
