package domain

// Collection names a vector collection. The two collections are populated
// and queried independently and merged only at query time.
type Collection string

const (
	// CollectionFAQ holds question/answer pairs from the FAQ knowledge base.
	CollectionFAQ Collection = "travel-faq"

	// CollectionTrips holds the structured trip catalog.
	CollectionTrips Collection = "travel-trips"
)

// Document represents a retrievable unit of text within a collection.
// Documents are immutable once ingested; identity is a stable string id
// ("faq_<i>" or "trip_<i>"), unique within its collection.
//
// Exactly one of FAQ or Trip is set, matching the owning collection.
// Collections carry typed metadata rather than free-form maps so that
// malformed records are rejected at ingestion, not discovered mid-query.
type Document struct {
	// ID is the stable identifier, unique within the collection.
	ID string

	// Collection is the collection this document belongs to.
	Collection Collection

	// Text is the embedded and retrieved content.
	Text string

	// FAQ holds the metadata for documents in CollectionFAQ.
	FAQ *FAQEntry

	// Trip holds the metadata for documents in CollectionTrips.
	Trip *Trip
}

// Candidate is an ephemeral result of one similarity query. It is never
// persisted.
type Candidate struct {
	// Document is the retrieved document, metadata included.
	Document Document

	// Distance is the cosine distance to the query (lower is more similar).
	Distance float64
}

// RankedDocument pairs a document with its cross-encoder relevance score.
// It exists only within one pipeline invocation.
type RankedDocument struct {
	Document Document

	// Score is the raw pairwise relevance score. It carries no learned
	// calibration; thresholds applied to it are tunables, not
	// probabilities.
	Score float64
}

// RetrievalSet holds the per-collection results of one retrieval fan-out.
// The two candidate lists are kept separate so the generator can preview
// the top raw candidate from each source; Merged flattens them for
// reranking.
type RetrievalSet struct {
	FAQ   []Candidate
	Trips []Candidate
}

// Merged returns the concatenation of both candidate lists. No
// deduplication is performed: the collections hold disjoint entity types,
// so identical documents cannot appear in both.
func (r RetrievalSet) Merged() []Candidate {
	merged := make([]Candidate, 0, len(r.FAQ)+len(r.Trips))
	merged = append(merged, r.FAQ...)
	merged = append(merged, r.Trips...)
	return merged
}

// TopFAQ returns the most similar FAQ candidate, or nil if none.
func (r RetrievalSet) TopFAQ() *Candidate {
	if len(r.FAQ) == 0 {
		return nil
	}
	return &r.FAQ[0]
}

// TopTrip returns the most similar trip candidate, or nil if none.
func (r RetrievalSet) TopTrip() *Candidate {
	if len(r.Trips) == 0 {
		return nil
	}
	return &r.Trips[0]
}
