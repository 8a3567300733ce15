package domain

// ToxicityLabel is the label assigned by the toxicity classifier.
type ToxicityLabel string

const (
	// LabelToxic marks text classified as toxic.
	LabelToxic ToxicityLabel = "toxic"

	// LabelNonToxic marks text classified as non-toxic.
	LabelNonToxic ToxicityLabel = "non-toxic"

	// LabelUnavailable marks a verdict produced while the classifier
	// could not run (model failed to load or the inference call failed).
	// The gate fails open: an unavailable verdict never blocks the turn.
	LabelUnavailable ToxicityLabel = "unavailable"
)

// DefaultToxicityThreshold is the confidence required to act on a verdict.
const DefaultToxicityThreshold = 0.8

// Verdict is an ephemeral toxicity classification result. It is never
// persisted.
type Verdict struct {
	Label ToxicityLabel

	// Score is the classifier's confidence in the label. Meaningless when
	// Label is LabelUnavailable.
	Score float64
}

// ToxicityDecision is the tri-state outcome of applying a confidence
// threshold to a verdict.
type ToxicityDecision int

const (
	// DecisionUnknown means the verdict is not actionable: the classifier
	// was unavailable, or the score fell inside the non-actionable band.
	// Callers choose the default; the pipeline currently proceeds.
	DecisionUnknown ToxicityDecision = iota

	// DecisionToxic means the text is toxic with sufficient confidence.
	DecisionToxic

	// DecisionNonToxic means the text is non-toxic with sufficient
	// confidence.
	DecisionNonToxic
)

// String returns the decision name for logging.
func (d ToxicityDecision) String() string {
	switch d {
	case DecisionToxic:
		return "toxic"
	case DecisionNonToxic:
		return "non-toxic"
	default:
		return "unknown"
	}
}

// IsToxic reports whether the verdict should block the pipeline at the
// given threshold. Unknown verdicts fall through to false: the gate fails
// open rather than refusing service while moderation is degraded.
func (v Verdict) IsToxic(threshold float64) bool {
	return v.Decide(threshold) == DecisionToxic
}

// Decide applies the confidence threshold to the verdict.
//
// The bands are asymmetric: a toxic label needs score >= threshold, while
// a non-toxic label needs score < (1 - threshold). Everything in between,
// and every unavailable verdict, is DecisionUnknown.
func (v Verdict) Decide(threshold float64) ToxicityDecision {
	switch {
	case v.Label == LabelToxic && v.Score >= threshold:
		return DecisionToxic
	case v.Label == LabelNonToxic && v.Score < (1-threshold):
		return DecisionNonToxic
	default:
		return DecisionUnknown
	}
}
