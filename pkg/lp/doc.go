// Package lp parses, mutates, writes, and compares linear programs in
// the LP text format.
//
// The format is the solver-interchange dialect: a sense keyword, one or
// more named objectives, a Subject To section of linear constraints,
// then optional Bounds, variable-type, and SOS sections, terminated by
// End. Keywords are case-insensitive and common aliases are accepted.
//
// A parsed [Problem] keeps objectives, constraints, and the variable
// table in declaration order and indexed by name. Mutations address
// entities by name and cascade variable renames and removals through
// every expression. [Write] renders a problem back to deterministic LP
// text, and [Compare] produces a structured [DiffReport] between two
// problems with a 1e-10 tolerance on floats.
package lp
