// Package puml renders linked type graphs as modular PlantUML files.
//
// Every class and enumeration gets its own file, placed in the folder its
// namespace maps to (see package namespace). A type file wraps the type's
// markup in a "TYPE" sub block so other files can pull in just the type with
// !includesub, and it includes the type blocks of everything it is connected
// to. Any single file therefore renders a self-contained neighbourhood
// diagram, whichever file is opened first.
//
// # Attributes and Associations
//
// An association is drawn as an arrow only when its target is resolved, is
// referenced by one to three distinct classes project-wide, and is not
// suppressed by [Options]. Everything else collapses into a typed attribute
// inside the class body. Heavily referenced types, such as shared value
// objects, would otherwise drown every diagram in arrows.
//
// # Stereotypes
//
// Classes are tagged with a domain stereotype derived from the bare name of
// their base type, using an ordered table where the first match wins; see
// [Classify]. Records are always value objects. A class whose base
// classifies as a stereotype gets no inheritance arrow.
//
// # Namespace Configuration
//
// [ConfigFileName] at the output root holds one named block per namespace
// prefix. Type files include the unnamed first block and then the block of
// every namespace prefix they touch, so styling placed on "Shop" applies to
// "Shop.Orders" as well. The file is created once and afterwards only
// extended; see [MergeConfig].
package puml
