package model

import "maps"

// LinkResult summarizes a [Project.LinkSymbols] run.
type LinkResult struct {
	Resolved   int // symbols bound to a registered entity
	Unresolved int // symbols left pointing outside the project
}

// LinkSymbols binds every association target and base type symbol to the
// registered entity with the same full name. Lookups run against a snapshot
// of the combined class and enumeration registry, so the outcome does not
// depend on the order entities were added in.
//
// LinkSymbols must be called exactly once; a second call returns
// [ErrAlreadyLinked]. Afterwards the project is read-only.
func (p *Project) LinkSymbols() (LinkResult, error) {
	if p.linked {
		return LinkResult{}, ErrAlreadyLinked
	}
	lookup := maps.Clone(p.index)

	var res LinkResult
	bind := func(s *TypeSymbol) {
		if s == nil {
			return
		}
		if s.target == nil {
			if obj, ok := lookup[s.FullName()]; ok {
				s.resolve(obj)
			}
		}
		if s.target != nil {
			res.Resolved++
		} else {
			res.Unresolved++
		}
	}

	for _, c := range p.classes {
		for _, a := range c.associations {
			bind(a.Target)
		}
		if c.HasBase() {
			bind(c.Base)
		}
	}

	p.refs = buildReferenceIndex(p.classes)
	p.linked = true
	return res, nil
}

func buildReferenceIndex(classes []*Class) map[NamespacedObject][]*Class {
	refs := make(map[NamespacedObject][]*Class)
	add := func(target NamespacedObject, c *Class) {
		list := refs[target]
		if n := len(list); n > 0 && list[n-1] == c {
			return
		}
		refs[target] = append(list, c)
	}
	for _, c := range classes {
		for _, a := range c.associations {
			if t := a.Target.Target(); t != nil {
				add(t, c)
			}
		}
		if t := c.Base.Target(); t != nil {
			add(t, c)
		}
	}
	return refs
}
