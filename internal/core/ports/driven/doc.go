// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the pipeline to function:
//
//   - EmbeddingService: Generates vector embeddings for ingestion and queries
//   - VectorCollection: Stores embeddings and answers similarity queries
//   - RelevanceScorer: Cross-encoder scoring for reranking
//   - LLMService: Chat completion for answer generation
//   - SessionStore: Chat history persistence
//   - CatalogSource: FAQ and trip record loading
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ToxicityClassifier: Content moderation. Without it (or when its model
//     cannot be reached) every check yields an unavailable verdict and the
//     pipeline proceeds unguarded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
