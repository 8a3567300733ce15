// Package jsonfile loads the FAQ knowledge base and trip catalog from
// JSON files on disk.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nomad-labs/nomad-cli/internal/core/domain"
	"github.com/nomad-labs/nomad-cli/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.CatalogSource = (*Loader)(nil)

// Default source file names within the data directory.
const (
	FAQFileName   = "faq.json"
	TripsFileName = "trips_data.json"
)

// Loader reads catalog source files from a data directory.
type Loader struct {
	faqPath   string
	tripsPath string
}

// NewLoader creates a loader rooted at the given data directory.
func NewLoader(dataDir string) *Loader {
	return &Loader{
		faqPath:   filepath.Join(dataDir, FAQFileName),
		tripsPath: filepath.Join(dataDir, TripsFileName),
	}
}

// faqRecord is the on-disk FAQ entry format.
type faqRecord struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

// LoadFAQ reads all FAQ entries from the source file.
func (l *Loader) LoadFAQ(ctx context.Context) ([]domain.FAQEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(l.faqPath)
	if err != nil {
		return nil, fmt.Errorf("reading FAQ file: %w", err)
	}

	var records []faqRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(l.faqPath), err)
	}

	entries := make([]domain.FAQEntry, len(records))
	for i, r := range records {
		entries[i] = domain.FAQEntry{
			Question: r.Question,
			Answer:   r.Answer,
			Category: r.Category,
		}
	}
	return entries, nil
}

// LoadTrips reads all trip records from the source file.
func (l *Loader) LoadTrips(ctx context.Context) ([]domain.Trip, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(l.tripsPath)
	if err != nil {
		return nil, fmt.Errorf("reading trips file: %w", err)
	}

	var trips []domain.Trip
	if err := json.Unmarshal(data, &trips); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(l.tripsPath), err)
	}
	return trips, nil
}
