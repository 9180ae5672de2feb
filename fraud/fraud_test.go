package fraud

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"claimflow/claims"
	"claimflow/models"
	"claimflow/pkg/ai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyzer struct {
	result  *ai.FraudAnalysis
	err     error
	healthy bool
	calls   int
}

func (f *fakeAnalyzer) Analyze(_ context.Context, _ io.Reader, _ string) (*ai.FraudAnalysis, error) {
	f.calls++
	return f.result, f.err
}

func (f *fakeAnalyzer) Health(_ context.Context) bool { return f.healthy }

type fakeResults struct {
	byClaim map[uint]*models.FraudResult
	saveErr error
	readErr error
}

func (f *fakeResults) Replace(r *models.FraudResult) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.byClaim[r.ClaimID] = r
	return nil
}

func (f *fakeResults) ByClaim(id uint) (*models.FraudResult, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	r, ok := f.byClaim[id]
	if !ok {
		return nil, claims.ErrNotFound
	}
	return r, nil
}

func (f *fakeResults) Count() (int64, error) { return int64(len(f.byClaim)), nil }

func (f *fakeResults) CountByStatus(status models.ImageStatus) (int64, error) {
	var n int64
	for _, r := range f.byClaim {
		if r.ImageStatus == status {
			n++
		}
	}
	return n, nil
}

type fakeDocs struct{ docs map[uint][]models.ClaimDocument }

func (f *fakeDocs) ByClaim(id uint) ([]models.ClaimDocument, error) { return f.docs[id], nil }

type fakeFiles struct{ failAll bool }

func (f *fakeFiles) Open(string) (io.ReadCloser, error) {
	if f.failAll {
		return nil, errors.New("no such file")
	}
	return io.NopCloser(bytes.NewReader([]byte("imagebytes"))), nil
}

type providerFixture struct {
	provider *Provider
	analyzer *fakeAnalyzer
	results  *fakeResults
	docs     *fakeDocs
	files    *fakeFiles
}

func newProviderFixture() *providerFixture {
	fx := &providerFixture{
		analyzer: &fakeAnalyzer{},
		results:  &fakeResults{byClaim: map[uint]*models.FraudResult{}},
		docs:     &fakeDocs{docs: map[uint][]models.ClaimDocument{}},
		files:    &fakeFiles{},
	}
	fx.provider = NewProvider(fx.analyzer, fx.results, fx.docs, fx.files)
	return fx
}

func genuineAnalysis() *ai.FraudAnalysis {
	return &ai.FraudAnalysis{
		ImageStatus: "GENUINE",
		FraudScore:  5,
		Confidence:  92,
		Remarks:     "No manipulation detected",
		Details:     map[string]any{"ela_score": 0.02},
	}
}

func TestAnalyzeServiceFailureDegrades(t *testing.T) {
	fx := newProviderFixture()
	fx.analyzer.err = errors.New("connection refused")

	res := fx.provider.Analyze(context.Background(), bytes.NewReader([]byte("img")), "a.jpg")

	assert.Equal(t, "SUSPICIOUS", res.ImageStatus)
	assert.Equal(t, 50, res.FraudScore)
	assert.Equal(t, 30, res.Confidence)
	assert.Contains(t, res.Remarks, "Manual review recommended")
}

func TestAnalyzeEmptyVerdictDegrades(t *testing.T) {
	fx := newProviderFixture()
	fx.analyzer.result = &ai.FraudAnalysis{}

	res := fx.provider.Analyze(context.Background(), bytes.NewReader([]byte("img")), "a.jpg")
	assert.Equal(t, "SUSPICIOUS", res.ImageStatus)
}

func TestAnalyzeClaimStoresVerdict(t *testing.T) {
	fx := newProviderFixture()
	fx.analyzer.result = genuineAnalysis()
	fx.docs.docs[1] = []models.ClaimDocument{
		{ID: 1, ClaimID: 1, DocumentName: "report.pdf", StorePath: "r.pdf", ContentType: "application/pdf"},
		{ID: 2, ClaimID: 1, DocumentName: "crash.jpg", StorePath: "c.jpg", ContentType: "image/jpeg"},
	}

	res, err := fx.provider.AnalyzeClaim(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, models.ImageGenuine, res.ImageStatus)
	assert.Equal(t, 5, res.FraudScore)
	assert.False(t, res.AnalysisDate.IsZero())
	assert.Equal(t, 1, fx.analyzer.calls, "only the first image document is analyzed")
	require.Contains(t, fx.results.byClaim, uint(1))
}

func TestAnalyzeClaimNoImageDocuments(t *testing.T) {
	fx := newProviderFixture()
	fx.docs.docs[1] = []models.ClaimDocument{
		{ID: 1, ClaimID: 1, DocumentName: "report.pdf", StorePath: "r.pdf", ContentType: "application/pdf"},
	}

	_, err := fx.provider.AnalyzeClaim(context.Background(), 1)
	require.ErrorIs(t, err, ErrNoImage)

	_, err = fx.provider.AnalyzeClaim(context.Background(), 2)
	require.ErrorIs(t, err, ErrNoImage, "claim with no documents at all")
}

func TestAnalyzeClaimUnreadableFileDegrades(t *testing.T) {
	fx := newProviderFixture()
	fx.files.failAll = true
	fx.docs.docs[1] = []models.ClaimDocument{
		{ID: 1, ClaimID: 1, DocumentName: "crash.jpg", StorePath: "gone.jpg", ContentType: "image/jpeg"},
	}

	res, err := fx.provider.AnalyzeClaim(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.ImageSuspicious, res.ImageStatus)
	assert.Equal(t, 0, fx.analyzer.calls)
}

func TestAnalyzeClaimReplacesEarlierVerdict(t *testing.T) {
	fx := newProviderFixture()
	fx.docs.docs[1] = []models.ClaimDocument{
		{ID: 1, ClaimID: 1, DocumentName: "crash.jpg", StorePath: "c.jpg", ContentType: "image/jpeg"},
	}

	fx.analyzer.err = errors.New("down")
	first, err := fx.provider.AnalyzeClaim(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.ImageSuspicious, first.ImageStatus)

	fx.analyzer.err = nil
	fx.analyzer.result = genuineAnalysis()
	second, err := fx.provider.AnalyzeClaim(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.ImageGenuine, second.ImageStatus)

	require.Len(t, fx.results.byClaim, 1)
	assert.Equal(t, models.ImageGenuine, fx.results.byClaim[1].ImageStatus)
}

func TestResultByClaimAbsentIsNil(t *testing.T) {
	fx := newProviderFixture()
	res, err := fx.provider.ResultByClaim(9)
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestResultByClaimStorageFailurePropagates(t *testing.T) {
	fx := newProviderFixture()
	fx.results.readErr = errors.New("pq: connection refused")

	_, err := fx.provider.ResultByClaim(1)
	require.EqualError(t, err, "pq: connection refused")
}

func TestStatistics(t *testing.T) {
	fx := newProviderFixture()
	fx.results.byClaim[1] = &models.FraudResult{ClaimID: 1, ImageStatus: models.ImageGenuine}
	fx.results.byClaim[2] = &models.FraudResult{ClaimID: 2, ImageStatus: models.ImageSuspicious}
	fx.results.byClaim[3] = &models.FraudResult{ClaimID: 3, ImageStatus: models.ImageSuspicious}
	fx.results.byClaim[4] = &models.FraudResult{ClaimID: 4, ImageStatus: models.ImageFraud}

	stats, err := fx.provider.Statistics()
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(1), stats.Genuine)
	assert.Equal(t, int64(2), stats.Suspicious)
	assert.Equal(t, int64(1), stats.Fraud)
}

func TestServiceAvailable(t *testing.T) {
	fx := newProviderFixture()
	assert.False(t, fx.provider.ServiceAvailable(context.Background()))
	fx.analyzer.healthy = true
	assert.True(t, fx.provider.ServiceAvailable(context.Background()))
}
