package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
)

// helper to perform requests with auth token
func performRequest(r http.Handler, method, path string, body io.Reader, token string, contentType string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func setupTestServer(t *testing.T) *gin.Engine {
	// integration tests are opt-in. Set DB_DSN_TEST=1 and DB_DSN to run them.
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	gin.SetMode(gin.TestMode)
	jwtSecret = []byte("integration-test-secret")
	tmp := t.TempDir()
	_ = os.Setenv("UPLOAD_BASE", tmp)
	initDB()
	wireServices()
	r := gin.Default()
	setupRoutes(r)
	return r
}

func loginAs(t *testing.T, r http.Handler, email, password string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	resp := performRequest(r, http.MethodPost, "/api/auth/login", bytes.NewBuffer(body), "", "application/json")
	if resp.Code != http.StatusOK {
		t.Fatalf("login %s failed status=%d body=%s", email, resp.Code, resp.Body.String())
	}
	var out map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &out)
	token, _ := out["token"].(string)
	if token == "" {
		t.Fatalf("empty token in login response: %+v", out)
	}
	return token
}

func TestClaimLifecycleFlow(t *testing.T) {
	r := setupTestServer(t)

	customer := loginAs(t, r, "john@example.com", "customer123")
	admin := loginAs(t, r, "admin@example.com", "admin123")
	agent := loginAs(t, r, "agent@example.com", "agent123")

	// claim types are seeded and readable without auth
	resp := performRequest(r, http.MethodGet, "/api/claim-types", nil, "", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("list claim types failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var types []map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &types)
	if len(types) == 0 {
		t.Fatal("expected seeded claim types")
	}
	typeID := uint(types[0]["id"].(float64))

	// customer submits a claim against the seeded policy
	claimBody, _ := json.Marshal(map[string]any{
		"claimTypeId":  typeID,
		"description":  "Rear bumper damage in parking lot",
		"policyNumber": "POL-20250109001",
		"amount":       1250.00,
	})
	resp = performRequest(r, http.MethodPost, "/api/claims", bytes.NewBuffer(claimBody), customer, "application/json")
	if resp.Code != http.StatusCreated {
		t.Fatalf("create claim failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var claim map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &claim)
	claimID := uint(claim["id"].(float64))
	if claim["status"] != "SUBMITTED" {
		t.Fatalf("expected SUBMITTED, got %v", claim["status"])
	}

	// upload a document
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	w, _ := mw.CreateFormFile("file", "damage.jpg")
	_, _ = w.Write([]byte("not really a jpeg"))
	_ = mw.Close()
	path := fmt.Sprintf("/api/claims/%d/documents", claimID)
	resp = performRequest(r, http.MethodPost, path, buf, customer, mw.FormDataContentType())
	if resp.Code != http.StatusCreated {
		t.Fatalf("upload failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// admin assigns the agent; claim moves to IN_REVIEW
	var agentUser map[string]any
	resp = performRequest(r, http.MethodGet, "/api/users", nil, admin, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("list users failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var users []map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &users)
	for _, u := range users {
		if u["role"] == "AGENT" {
			agentUser = u
			break
		}
	}
	if agentUser == nil {
		t.Fatal("no seeded agent found")
	}
	assignPath := fmt.Sprintf("/api/claims/%d/assign/%d", claimID, uint(agentUser["id"].(float64)))
	resp = performRequest(r, http.MethodPut, assignPath, nil, admin, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("assign failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &claim)
	if claim["status"] != "IN_REVIEW" {
		t.Fatalf("expected IN_REVIEW after assign, got %v", claim["status"])
	}

	// agent approves
	decBody, _ := json.Marshal(map[string]string{"response": "Approved after document review"})
	resp = performRequest(r, http.MethodPut, fmt.Sprintf("/api/claims/%d/approve", claimID), bytes.NewBuffer(decBody), agent, "application/json")
	if resp.Code != http.StatusOK {
		t.Fatalf("approve failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// verify description twice: second call conflicts
	verifyPath := fmt.Sprintf("/api/claims/%d/verify-description", claimID)
	resp = performRequest(r, http.MethodPut, verifyPath, nil, agent, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("verify failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodPut, verifyPath, nil, agent, "")
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 on second verify, got %d body=%s", resp.Code, resp.Body.String())
	}

	// details aggregate includes the audit trail
	resp = performRequest(r, http.MethodGet, fmt.Sprintf("/api/claims/%d/details", claimID), nil, customer, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("details failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var details map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &details)
	if details["auditHistory"] == nil {
		t.Fatal("expected audit history in details")
	}

	// customer cannot list all claims
	resp = performRequest(r, http.MethodGet, "/api/claims", nil, customer, "")
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer listing all claims, got %d", resp.Code)
	}

	// unauthenticated access is rejected
	resp = performRequest(r, http.MethodGet, "/api/claims/my", nil, "", "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.Code)
	}

	// admin deletes the claim; a second delete is a 404
	resp = performRequest(r, http.MethodDelete, fmt.Sprintf("/api/claims/%d", claimID), nil, admin, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("delete failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodDelete, fmt.Sprintf("/api/claims/%d", claimID), nil, admin, "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on double delete, got %d", resp.Code)
	}
}

func TestRegisterGeneratesPolicyNumber(t *testing.T) {
	r := setupTestServer(t)

	body, _ := json.Marshal(map[string]string{
		"name":     "New Customer",
		"email":    "newcustomer@example.com",
		"password": "secret123",
	})
	resp := performRequest(r, http.MethodPost, "/api/auth/register", bytes.NewBuffer(body), "", "application/json")
	if resp.Code != http.StatusOK && resp.Code != http.StatusConflict {
		t.Fatalf("register failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	if resp.Code == http.StatusOK {
		var out map[string]any
		_ = json.Unmarshal(resp.Body.Bytes(), &out)
		user, _ := out["user"].(map[string]any)
		policy, _ := user["policyNumber"].(string)
		if len(policy) != len("POL-20250109001") {
			t.Fatalf("unexpected policy number %q", policy)
		}
	}
}

func TestMigrateCommand(t *testing.T) {
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	initDB()
}
