// Package model provides the in-memory type graph that diagrams are generated
// from.
//
// # Overview
//
// A [Project] is a registry of named entities: [Class] values, which may own
// [Association] edges and an optional base type, and [Enumeration] values,
// which carry an ordered list of member names. Every entity is identified by
// its namespace and simple name; the two joined with a dot form the
// entity's full name, which must be unique across classes and enumerations
// combined.
//
// # Two-Phase Lifecycle
//
// Building a project happens in two phases:
//
//  1. Build: register classes with [Project.AddClass] and enumerations with
//     [Project.AddEnumeration]. Associations are attached through the
//     [ClassBuilder] returned for each registered class.
//  2. Link: call [Project.LinkSymbols] exactly once. Every [TypeSymbol] whose
//     full name matches a registered entity is bound to it; all others stay
//     unresolved and are treated as external types (primitives, framework
//     types and so on).
//
// After linking the project is read-only. Adding entities or associations
// returns [ErrAlreadyLinked].
//
// # References
//
// [Project.GetReferencesTo] answers the reverse question: which classes point
// at a given entity, either through a resolved association or a resolved base
// type. The diagram renderer uses the count of distinct referencing classes
// to decide whether an association is drawn as an arrow or collapsed into an
// attribute.
package model
