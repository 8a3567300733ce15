// Package domain defines the core business entities for Nomad.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A retrievable unit of text in a collection
//   - Candidate: A document returned by a similarity query
//   - RankedDocument: A document scored by the reranker
//   - Verdict: A toxicity classification result
//   - Session: A persisted chat conversation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
