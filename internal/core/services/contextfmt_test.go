package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nomad-labs/nomad-cli/internal/core/domain"
)

func TestAssembleContext_Empty(t *testing.T) {
	assert.Equal(t, "No relevant documents found for context", AssembleContext(nil))
	assert.Equal(t, NoContextSentinel, AssembleContext([]domain.RankedDocument{}))
}

func TestAssembleContext_SingleDocument(t *testing.T) {
	docs := []domain.RankedDocument{
		{Document: domain.Document{ID: "faq_0", Text: "Full refund up to 14 days."}, Score: 0.9},
	}

	got := AssembleContext(docs)

	assert.Equal(t,
		"<Relevant Document #1>\nFull refund up to 14 days.\n</Relevant Document #1>\n",
		got)
}

func TestAssembleContext_PreservesRerankedOrder(t *testing.T) {
	docs := []domain.RankedDocument{
		{Document: domain.Document{ID: "faq_1", Text: "first"}, Score: 0.9},
		{Document: domain.Document{ID: "trip_2", Text: "second"}, Score: 0.7},
		{Document: domain.Document{ID: "faq_3", Text: "third"}, Score: 0.6},
	}

	got := AssembleContext(docs)

	assert.Equal(t,
		"<Relevant Document #1>\nfirst\n</Relevant Document #1>\n"+
			"<Relevant Document #2>\nsecond\n</Relevant Document #2>\n"+
			"<Relevant Document #3>\nthird\n</Relevant Document #3>\n",
		got)
}
