// Package fraud wraps the external image-forensics endpoint with degraded
// defaults so a claim's fraud verdict is always available, even when the
// service is down.
package fraud

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"claimflow/claims"
	"claimflow/models"
	"claimflow/pkg/ai"
	"claimflow/pkg/imgprep"
)

var ErrNoImage = errors.New("claim has no image documents")

const degradedRemarks = "Could not complete AI analysis. The image requires further verification. Manual review recommended."

type Analyzer interface {
	Analyze(ctx context.Context, image io.Reader, filename string) (*ai.FraudAnalysis, error)
	Health(ctx context.Context) bool
}

type ResultStore interface {
	// Replace removes any earlier result for the claim before inserting.
	Replace(r *models.FraudResult) error
	ByClaim(claimID uint) (*models.FraudResult, error)
	Count() (int64, error)
	CountByStatus(status models.ImageStatus) (int64, error)
}

type DocumentStore interface {
	ByClaim(claimID uint) ([]models.ClaimDocument, error)
}

type FileStore interface {
	Open(storePath string) (io.ReadCloser, error)
}

type Provider struct {
	ai      Analyzer
	results ResultStore
	docs    DocumentStore
	files   FileStore
}

func NewProvider(analyzer Analyzer, results ResultStore, docs DocumentStore, files FileStore) *Provider {
	return &Provider{ai: analyzer, results: results, docs: docs, files: files}
}

// Statistics is an aggregate over all stored fraud verdicts.
type Statistics struct {
	Total      int64 `json:"totalAnalyzed"`
	Genuine    int64 `json:"genuine"`
	Suspicious int64 `json:"suspicious"`
	Fraud      int64 `json:"fraud"`
}

// Analyze submits one image and never fails: when the service is
// unreachable or returns garbage, the verdict degrades to a suspicious
// placeholder that forces manual review.
func (p *Provider) Analyze(ctx context.Context, image io.Reader, filename string) *ai.FraudAnalysis {
	data, err := io.ReadAll(image)
	if err != nil {
		return degraded()
	}
	res, err := p.ai.Analyze(ctx, bytes.NewReader(imgprep.Shrink(data, imgprep.MaxDimension)), filename)
	if err != nil || res == nil || res.ImageStatus == "" {
		return degraded()
	}
	return res
}

// AnalyzeClaim runs fraud analysis on the claim's first image document and
// stores the verdict, replacing any earlier one. It fails only when the
// claim has nothing analyzable; service failures degrade instead.
func (p *Provider) AnalyzeClaim(ctx context.Context, claimID uint) (*models.FraudResult, error) {
	docs, err := p.docs.ByClaim(claimID)
	if err != nil {
		return nil, err
	}
	doc, ok := firstImage(docs)
	if !ok {
		return nil, fmt.Errorf("%w: claim %d", ErrNoImage, claimID)
	}

	analysis := p.analyzeDocument(ctx, doc)
	result := &models.FraudResult{
		ClaimID:      claimID,
		ImageStatus:  models.ImageStatus(analysis.ImageStatus),
		FraudScore:   analysis.FraudScore,
		Confidence:   analysis.Confidence,
		Remarks:      analysis.Remarks,
		Details:      analysis.Details,
		AnalysisDate: time.Now(),
	}
	if err := p.results.Replace(result); err != nil {
		return nil, err
	}
	return result, nil
}

// ResultByClaim returns the stored verdict, or nil when the claim was
// never analyzed. Storage failures propagate.
func (p *Provider) ResultByClaim(claimID uint) (*models.FraudResult, error) {
	r, err := p.results.ByClaim(claimID)
	if err != nil {
		if errors.Is(err, claims.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r, nil
}

func (p *Provider) Statistics() (*Statistics, error) {
	total, err := p.results.Count()
	if err != nil {
		return nil, err
	}
	suspicious, err := p.results.CountByStatus(models.ImageSuspicious)
	if err != nil {
		return nil, err
	}
	fraudulent, err := p.results.CountByStatus(models.ImageFraud)
	if err != nil {
		return nil, err
	}
	return &Statistics{
		Total:      total,
		Genuine:    total - suspicious - fraudulent,
		Suspicious: suspicious,
		Fraud:      fraudulent,
	}, nil
}

func (p *Provider) ServiceAvailable(ctx context.Context) bool {
	return p.ai.Health(ctx)
}

func (p *Provider) analyzeDocument(ctx context.Context, doc models.ClaimDocument) *ai.FraudAnalysis {
	f, err := p.files.Open(doc.StorePath)
	if err != nil {
		return degraded()
	}
	defer f.Close()
	return p.Analyze(ctx, f, doc.DocumentName)
}

func firstImage(docs []models.ClaimDocument) (models.ClaimDocument, bool) {
	for _, d := range docs {
		if strings.HasPrefix(d.ContentType, "image/") {
			return d, true
		}
	}
	return models.ClaimDocument{}, false
}

func degraded() *ai.FraudAnalysis {
	return &ai.FraudAnalysis{
		ImageStatus: string(models.ImageSuspicious),
		FraudScore:  50,
		Confidence:  30,
		Remarks:     degradedRemarks,
		Details:     map[string]any{"error": "analysis service unavailable"},
	}
}
