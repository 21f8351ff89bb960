// Package vocab defines the immutable Λ vocabulary table: category mappings
// for single- and two-character atoms, named domain namespaces, and
// disambiguation alternates. The table is built once at process start,
// validated eagerly, and shared read-only across all translation calls.
package vocab
