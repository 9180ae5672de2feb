// Package scoring holds the pure evidence scoring and workflow routing
// math. Everything here is deterministic and free of I/O so the routing
// rules can be tested exhaustively.
package scoring

import (
	"math"

	"claimflow/models"
)

// Sub-score weights for the overall score. No other blend is valid.
const (
	weightCompleteness = 0.40
	weightRelevance    = 0.35
	weightOcr          = 0.25
)

// Routing and status thresholds.
const (
	relevanceInconsistentBelow = 60
	completenessIncompleteBelow = 80

	resubmissionBelow    = 60 // completeness or relevance under this forces resubmission
	investigationBelow   = 70 // completeness or relevance under this forces investigation
	investigationFraudAt = 70 // fraud score at or above this forces investigation
	fastTrackFraudBelow  = 30
	fastTrackCompleteness = 90
	fastTrackRelevance    = 80
	fastTrackOcr          = 70
)

// Completeness scores provided documents against the mandatory
// requirement count: min(100, provided*100/mandatory). A claim type with
// no mandatory requirements is vacuously complete.
func Completeness(provided, mandatory int) int {
	if mandatory <= 0 {
		return 100
	}
	score := provided * 100 / mandatory
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// MeanConfidence averages per-document OCR confidences, rounding to the
// nearest integer. The empty case is decided by the caller (vacuous 100
// for zero documents, default 70 for failed extraction).
func MeanConfidence(confidences []int) (int, bool) {
	if len(confidences) == 0 {
		return 0, false
	}
	sum := 0
	for _, c := range confidences {
		sum += c
	}
	return int(math.Round(float64(sum) / float64(len(confidences)))), true
}

// Overall blends the three sub-scores with the fixed weights.
func Overall(completeness, relevance, ocr int) int {
	s := weightCompleteness*float64(completeness) +
		weightRelevance*float64(relevance) +
		weightOcr*float64(ocr)
	return int(math.Round(s))
}

// Status derives the validation status. Precedence: missing documents
// dominate relevance, which dominates completeness.
func Status(missingCount, completeness, relevance int) models.ValidationStatus {
	if missingCount > 0 {
		return models.ValidationIncomplete
	}
	if relevance < relevanceInconsistentBelow {
		return models.ValidationInconsistent
	}
	if completeness < completenessIncompleteBelow {
		return models.ValidationIncomplete
	}
	return models.ValidationComplete
}

// Route picks the workflow track for a claim. Rules are evaluated in
// order; the first match wins.
func Route(completeness, relevance, ocr, fraudScore int) models.WorkflowRoute {
	if completeness < resubmissionBelow || relevance < resubmissionBelow {
		return models.RouteResubmission
	}
	if fraudScore >= investigationFraudAt || completeness < investigationBelow || relevance < investigationBelow {
		return models.RouteInvestigation
	}
	if fraudScore < fastTrackFraudBelow && completeness >= fastTrackCompleteness &&
		relevance >= fastTrackRelevance && ocr >= fastTrackOcr {
		return models.RouteFastTrack
	}
	return models.RouteStandard
}
