package domain

import (
	"fmt"
	"strings"
)

// FAQEntry is one record of the FAQ knowledge base.
type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

// Validate checks that the entry carries the fields ingestion depends on.
func (e FAQEntry) Validate() error {
	if strings.TrimSpace(e.Question) == "" {
		return fmt.Errorf("faq entry: %w: empty question", ErrInvalidInput)
	}
	if strings.TrimSpace(e.Answer) == "" {
		return fmt.Errorf("faq entry: %w: empty answer", ErrInvalidInput)
	}
	return nil
}

// DocumentText renders the embedded text: question and answer combined so
// similarity queries match against both.
func (e FAQEntry) DocumentText() string {
	return fmt.Sprintf("Question: %s\nAnswer: %s", e.Question, e.Answer)
}

// Trip is one record of the structured trip catalog. The JSON field names
// follow the catalog file format.
type Trip struct {
	Country    string   `json:"Country"`
	City       string   `json:"City"`
	StartDate  string   `json:"Start date"`
	Days       int      `json:"Count of days"`
	CostEUR    float64  `json:"Cost in EUR"`
	Activities []string `json:"Extra activities"`
	Details    string   `json:"Trip details"`
}

// Validate checks that the trip carries the fields ingestion depends on.
func (t Trip) Validate() error {
	if strings.TrimSpace(t.Country) == "" {
		return fmt.Errorf("trip: %w: empty country", ErrInvalidInput)
	}
	if strings.TrimSpace(t.City) == "" {
		return fmt.Errorf("trip: %w: empty city", ErrInvalidInput)
	}
	if t.Days <= 0 {
		return fmt.Errorf("trip: %w: non-positive day count", ErrInvalidInput)
	}
	return nil
}

// DocumentText renders the trip as a single retrievable paragraph.
func (t Trip) DocumentText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d-day trip to %s, %s starting %s for %.0f EUR.",
		t.Days, t.City, t.Country, t.StartDate, t.CostEUR)
	if len(t.Activities) > 0 {
		fmt.Fprintf(&b, " Extra activities: %s.", strings.Join(t.Activities, ", "))
	}
	if t.Details != "" {
		fmt.Fprintf(&b, " %s", t.Details)
	}
	return b.String()
}

// TripQuery holds the optional exact-match criteria for a catalog lookup.
// Pointer fields distinguish "not supplied" from zero values.
type TripQuery struct {
	Country    string
	City       string
	StartDate  string
	TripID     *int
	Days       *int
	CostEUR    *float64
	Activities []string
	Details    string
}

// Empty reports whether no criteria were supplied at all.
func (q TripQuery) Empty() bool {
	return q.Country == "" && q.City == "" && q.StartDate == "" &&
		q.TripID == nil && q.Days == nil && q.CostEUR == nil &&
		len(q.Activities) == 0 && q.Details == ""
}

// Matches reports whether the trip satisfies every supplied criterion.
// Text fields compare case-insensitively; TripID is handled by the caller
// since it is a positional index, not a field match.
func (q TripQuery) Matches(t Trip) bool {
	if q.Country != "" && !strings.EqualFold(q.Country, t.Country) {
		return false
	}
	if q.City != "" && !strings.EqualFold(q.City, t.City) {
		return false
	}
	if q.StartDate != "" && q.StartDate != t.StartDate {
		return false
	}
	if q.Days != nil && *q.Days != t.Days {
		return false
	}
	if q.CostEUR != nil && *q.CostEUR != t.CostEUR {
		return false
	}
	for _, activity := range q.Activities {
		if !containsFold(t.Activities, activity) {
			return false
		}
	}
	if q.Details != "" && !strings.EqualFold(q.Details, t.Details) {
		return false
	}
	return true
}

func containsFold(list []string, want string) bool {
	for _, s := range list {
		if strings.EqualFold(s, want) {
			return true
		}
	}
	return false
}

// TripNotFoundError reports a positional lookup for an id outside the
// catalog range.
type TripNotFoundError struct {
	ID int
}

func (e *TripNotFoundError) Error() string {
	return fmt.Sprintf("No trip found with ID %d", e.ID)
}
