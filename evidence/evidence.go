// Package evidence computes completeness, relevance and OCR-consistency
// scores for a claim's documents and recommends a workflow route. All
// calls to the external analysis service degrade to documented defaults;
// only a missing claim is a caller-visible failure.
package evidence

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"claimflow/claims"
	"claimflow/models"
	"claimflow/pkg/ai"
	"claimflow/pkg/imgprep"
	"claimflow/pkg/scoring"
)

// ErrNotFound reports a missing claim or a claim with no stored result.
var ErrNotFound = errors.New("not found")

// Defaults applied when the analysis service cannot be reached.
const (
	defaultRelevance = 50 // neutral
	defaultOcr       = 70
	unknownDocType   = "UNKNOWN"
)

type ClaimStore interface {
	ByID(id uint) (*models.Claim, error)
}

type DocumentStore interface {
	ByClaim(claimID uint) ([]models.ClaimDocument, error)
}

type RequirementStore interface {
	// MandatoryByClaimType returns mandatory requirements in catalog order.
	MandatoryByClaimType(claimTypeID uint) ([]models.DocumentRequirement, error)
}

type ResultStore interface {
	// Upsert inserts or wholly replaces the result keyed by claim id.
	Upsert(r *models.EvidenceValidationResult) error
	ByClaim(claimID uint) (*models.EvidenceValidationResult, error)
}

type FraudStore interface {
	ByClaim(claimID uint) (*models.FraudResult, error)
}

// Analyzer is the slice of the analysis service the engine uses.
type Analyzer interface {
	ClassifyEvidence(ctx context.Context, image io.Reader, filename string) (*ai.Classification, error)
	ExtractOCR(ctx context.Context, image io.Reader, filename, documentType string) (*ai.Extraction, error)
	AnalyzeRelevance(ctx context.Context, claimType string, docs []ai.ClassifiedDocument) (*ai.RelevanceReport, error)
}

// FileStore resolves a document's storage locator to its contents.
type FileStore interface {
	Open(storePath string) (io.ReadCloser, error)
}

type Engine struct {
	claims  ClaimStore
	docs    DocumentStore
	reqs    RequirementStore
	results ResultStore
	frauds  FraudStore
	ai      Analyzer
	files   FileStore
}

func NewEngine(claims ClaimStore, docs DocumentStore, reqs RequirementStore,
	results ResultStore, frauds FraudStore, analyzer Analyzer, files FileStore) *Engine {
	return &Engine{claims: claims, docs: docs, reqs: reqs, results: results,
		frauds: frauds, ai: analyzer, files: files}
}

// Validate recomputes all sub-scores for the claim and stores exactly one
// result row, replacing any earlier run.
func (e *Engine) Validate(ctx context.Context, claimID uint) (*models.EvidenceValidationResult, error) {
	claim, err := e.claims.ByID(claimID)
	if err != nil || claim == nil {
		return nil, fmt.Errorf("%w: claim %d", ErrNotFound, claimID)
	}
	docs, err := e.docs.ByClaim(claimID)
	if err != nil {
		return nil, err
	}

	completeness, missing, err := e.checkCompleteness(claim, docs)
	if err != nil {
		return nil, err
	}
	relevance, warnings := e.analyzeRelevance(ctx, claim.ClaimType.Name, docs)
	ocr, extracted := e.extractFields(ctx, docs)

	fraudScore := 0
	switch fr, err := e.frauds.ByClaim(claimID); {
	case err == nil && fr != nil:
		fraudScore = fr.FraudScore
	case err != nil && !errors.Is(err, claims.ErrNotFound):
		return nil, err
	}

	result := &models.EvidenceValidationResult{
		ClaimID:             claimID,
		CompletenessScore:   completeness,
		RelevanceScore:      relevance,
		OcrConsistencyScore: ocr,
		OverallScore:        scoring.Overall(completeness, relevance, ocr),
		Status:              scoring.Status(len(missing), completeness, relevance),
		MissingDocuments:    missing,
		Warnings:            warnings,
		ExtractedFields:     extracted,
		RecommendedRoute:    scoring.Route(completeness, relevance, ocr, fraudScore),
		ValidationDate:      time.Now(),
	}
	if err := e.results.Upsert(result); err != nil {
		return nil, err
	}
	return result, nil
}

// Result returns the stored validation result without recomputation.
func (e *Engine) Result(claimID uint) (*models.EvidenceValidationResult, error) {
	r, err := e.results.ByClaim(claimID)
	if err != nil || r == nil {
		return nil, fmt.Errorf("%w: no validation result for claim %d", ErrNotFound, claimID)
	}
	return r, nil
}

// checkCompleteness counts documents against mandatory requirements. The
// missing labels are the first (mandatory - provided) requirement display
// names in catalog order: a count-based proxy, since per-category matching
// is delegated to the external classifier.
func (e *Engine) checkCompleteness(claim *models.Claim, docs []models.ClaimDocument) (int, []string, error) {
	reqs, err := e.reqs.MandatoryByClaimType(claim.ClaimTypeID)
	if err != nil {
		return 0, nil, err
	}
	missing := []string{}
	if len(reqs) == 0 {
		return 100, missing, nil
	}
	if gap := len(reqs) - len(docs); gap > 0 {
		for _, r := range reqs[:gap] {
			missing = append(missing, r.DisplayName)
		}
	}
	return scoring.Completeness(len(docs), len(reqs)), missing, nil
}

// analyzeRelevance classifies and extracts each document, then submits
// the batch to the relevance endpoint. A failed document becomes an
// UNKNOWN zero-confidence placeholder; a failed relevance call yields the
// neutral default with no warnings.
func (e *Engine) analyzeRelevance(ctx context.Context, claimTypeName string, docs []models.ClaimDocument) (int, []string) {
	if len(docs) == 0 {
		return 0, nil
	}

	batch := make([]ai.ClassifiedDocument, 0, len(docs))
	for _, doc := range docs {
		batch = append(batch, e.classifyOne(ctx, doc))
	}

	report, err := e.ai.AnalyzeRelevance(ctx, claimTypeName, batch)
	if err != nil {
		return defaultRelevance, nil
	}
	return report.RelevanceScore, report.Warnings
}

func (e *Engine) classifyOne(ctx context.Context, doc models.ClaimDocument) ai.ClassifiedDocument {
	placeholder := ai.ClassifiedDocument{
		DocumentType:    unknownDocType,
		Confidence:      0,
		ExtractedFields: map[string]any{},
	}
	data, err := e.readDocument(doc)
	if err != nil {
		return placeholder
	}
	cls, err := e.ai.ClassifyEvidence(ctx, bytes.NewReader(data), doc.DocumentName)
	if err != nil {
		return placeholder
	}
	out := ai.ClassifiedDocument{
		DocumentType:    cls.DocumentType,
		Confidence:      cls.Confidence,
		ExtractedFields: map[string]any{},
	}
	if ext, err := e.ai.ExtractOCR(ctx, bytes.NewReader(data), doc.DocumentName, cls.DocumentType); err == nil && ext.ExtractedFields != nil {
		out.ExtractedFields = ext.ExtractedFields
	}
	return out
}

// extractFields runs the generic extractor over every document and
// averages the confidences. Zero documents is vacuously consistent;
// extraction that yields no confidences falls back to the default.
func (e *Engine) extractFields(ctx context.Context, docs []models.ClaimDocument) (int, map[string]any) {
	extracted := map[string]any{}
	if len(docs) == 0 {
		return 100, extracted
	}
	var confidences []int
	for _, doc := range docs {
		data, err := e.readDocument(doc)
		if err != nil {
			continue
		}
		ext, err := e.ai.ExtractOCR(ctx, bytes.NewReader(data), doc.DocumentName, unknownDocType)
		if err != nil {
			continue
		}
		extracted[fmt.Sprintf("document_%d", doc.ID)] = ext.ExtractedFields
		confidences = append(confidences, ext.Confidence)
	}
	mean, ok := scoring.MeanConfidence(confidences)
	if !ok {
		return defaultOcr, extracted
	}
	return mean, extracted
}

func (e *Engine) readDocument(doc models.ClaimDocument) ([]byte, error) {
	f, err := e.files.Open(doc.StorePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return imgprep.Shrink(data, imgprep.MaxDimension), nil
}
