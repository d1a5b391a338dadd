// Package mir defines the mid-level intermediate representation used by
// the transformation layer: control-flow-graph function bodies, the
// places and projections that name storage locations within them, and a
// pair of structural visitors (read-only and mutating) over every node
// shape in the representation.
//
// # Shape of the IR
//
// A Body is a list of basic blocks. Each block holds an ordered list of
// statements followed by an optional terminator. Statements and
// terminators reference storage through Place values: a base Local plus
// an ordered sequence of ProjectionElem refinements (field access,
// dereference, indexing, subslicing, downcast). A place with no
// projections denotes the whole local.
//
// Every sum-typed node (statement kinds, terminator kinds, rvalues,
// operands, projection elements, aggregate kinds, assert messages,
// literals, types) is a sealed interface: the unexported methods that
// seal each interface are the traversal hooks themselves. A new variant
// cannot be constructed as a member of its sum until it implements the
// read-only and mutating walk hooks, so adding a node shape is a compile
// error everywhere until traversal handles it. This is the load-bearing
// correctness mechanism of the package: no visitor can silently skip a
// node kind.
//
// # Visitors
//
// Visitor and MutVisitor expose one overridable entry point per node
// kind. The default behavior of every entry point is structural
// recursion, provided by the exported Walk functions. VisitorBase and
// MutVisitorBase implement the full interfaces by delegating to the Walk
// functions through an embedded back-reference, so a concrete visitor
// overrides only the entry points it cares about and inherits recursion
// for everything else. Overrides that want to keep descending must call
// the matching Walk function explicitly, mirroring the visit/super split
// of the traversal design.
//
// Traversal itself cannot fail and has no side effects; all effects
// belong to the caller's overrides.
package mir
