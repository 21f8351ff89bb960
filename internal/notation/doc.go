// Package notation implements the Λ scanning and symbol-resolution engine:
// a single-pass scanner with precedence-ordered variable-length matching,
// a resolver that walks a fixed chain of vocabulary lookups, the mutable
// per-session context driven by {ns:...} and {def:...} control blocks, and
// the renderers that compose them into English or Chinese output.
package notation
