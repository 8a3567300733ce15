package services

import (
	"fmt"
	"strings"

	"github.com/nomad-labs/nomad-cli/internal/core/domain"
)

// NoContextSentinel is returned by AssembleContext when reranking left no
// documents. The generator treats it as "no grounding available" and
// instructs the model accordingly.
const NoContextSentinel = "No relevant documents found for context"

// AssembleContext formats the surviving documents into the delimited
// context block passed to the generator. Each document is wrapped in an
// indexed tag, in reranked order.
func AssembleContext(docs []domain.RankedDocument) string {
	if len(docs) == 0 {
		return NoContextSentinel
	}

	var b strings.Builder
	for i, doc := range docs {
		fmt.Fprintf(&b, "<Relevant Document #%d>\n%s\n</Relevant Document #%d>\n",
			i+1, doc.Document.Text, i+1)
	}
	return b.String()
}
