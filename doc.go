// Package weft is the structural addressing and operation-transform core of
// a rich-text document model. It defines how locations in a hierarchical
// text tree are named (Path, Point, Range), the tree itself (Element and
// Text nodes), and the closed set of invertible Operations that rewrite one
// tree snapshot into the next.
//
// Apply never mutates its input; it returns a new root that shares every
// untouched subtree with the old one. Any coordinate computed before an
// operation must be passed through the matching Transform to stay valid
// afterward, and a batch of operations rebases coordinates through each
// operation in turn, never just once at the end. The same transforms are the
// primitive a collaborative layer would use to rebase a pending operation
// against an applied one; this package supplies the primitive and takes no
// position on transport or conflict policy.
package weft
