// Package ai is the HTTP client for the external analysis service that
// performs image fraud detection, evidence classification, OCR extraction
// and relevance analysis. Every call carries a bounded timeout; callers
// decide how to degrade when a call fails.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// DefaultTimeout bounds every outbound call when no explicit timeout is
// configured. The service performs model inference, so it is generous.
const DefaultTimeout = 15 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// FraudAnalysis is the /api/analyze response payload.
type FraudAnalysis struct {
	ImageStatus string         `json:"imageStatus"`
	FraudScore  int            `json:"fraudScore"`
	Confidence  int            `json:"confidence"`
	Remarks     string         `json:"remarks"`
	Details     map[string]any `json:"details"`
}

// Classification is the /api/classify-evidence response payload.
type Classification struct {
	DocumentType string `json:"documentType"`
	Confidence   int    `json:"confidence"`
}

// Extraction is the /api/extract-ocr response payload.
type Extraction struct {
	ExtractedFields map[string]any `json:"extractedFields"`
	Confidence      int            `json:"confidence"`
}

// ClassifiedDocument is one entry of the relevance request batch.
type ClassifiedDocument struct {
	DocumentType    string         `json:"documentType"`
	Confidence      int            `json:"confidence"`
	ExtractedFields map[string]any `json:"extractedFields"`
}

// RelevanceReport is the /api/analyze-relevance response payload.
type RelevanceReport struct {
	RelevanceScore int      `json:"relevanceScore"`
	Warnings       []string `json:"warnings"`
}

// Analyze submits an image for fraud analysis.
func (c *Client) Analyze(ctx context.Context, image io.Reader, filename string) (*FraudAnalysis, error) {
	var out FraudAnalysis
	if err := c.postImage(ctx, "/api/analyze", image, filename, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClassifyEvidence asks the service for a document-type label and confidence.
func (c *Client) ClassifyEvidence(ctx context.Context, image io.Reader, filename string) (*Classification, error) {
	var out Classification
	if err := c.postImage(ctx, "/api/classify-evidence", image, filename, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExtractOCR extracts field-value pairs from an image. documentType hints
// which extraction profile to use; "UNKNOWN" requests the generic one.
func (c *Client) ExtractOCR(ctx context.Context, image io.Reader, filename, documentType string) (*Extraction, error) {
	var out Extraction
	fields := map[string]string{"document_type": documentType}
	if err := c.postImage(ctx, "/api/extract-ocr", image, filename, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalyzeRelevance submits the classified document batch for a claim type
// and returns the relevance score plus warnings.
func (c *Client) AnalyzeRelevance(ctx context.Context, claimType string, docs []ClassifiedDocument) (*RelevanceReport, error) {
	if docs == nil {
		docs = []ClassifiedDocument{}
	}
	payload, err := json.Marshal(map[string]any{
		"claimType": claimType,
		"documents": docs,
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/analyze-relevance", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var out RelevanceReport
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health probes GET /health. All errors are reported as unavailable.
func (c *Client) Health(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

// postImage sends a multipart request with the image under field "image"
// plus any extra form fields, decoding the JSON response into out.
func (c *Client) postImage(ctx context.Context, path string, image io.Reader, filename string, fields map[string]string, out any) error {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	fw, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(fw, image); err != nil {
		return err
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return err
		}
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("analysis service returned %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
