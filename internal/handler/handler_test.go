package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greencred/lending-service/internal/config"
	"github.com/greencred/lending-service/internal/extraction"
	"github.com/greencred/lending-service/internal/integrations/assistant"
	"github.com/greencred/lending-service/internal/models"
	"github.com/greencred/lending-service/internal/repository"
	"github.com/greencred/lending-service/internal/service"
	"github.com/greencred/lending-service/internal/storage"
)

type noopNotifier struct{}

func (noopNotifier) SendReviewNotification(*models.Application) error { return nil }
func (noopNotifier) SendDecisionNotification(*models.Application, models.ReviewOutcome) error {
	return nil
}
func (noopNotifier) SendDocumentsReminder(*models.Application) error { return nil }

type echoCompleter struct{}

func (echoCompleter) Complete(_ context.Context, message string, _ []assistant.Message, _ *models.ESGInput) (assistant.Reply, error) {
	return assistant.Reply{Text: "echo: " + message}, nil
}

type fixtureSource struct{}

func (fixtureSource) Lookup(_ context.Context, companyName string) (models.CompanyESG, error) {
	return models.CompanyESG{
		Scores: models.ESGInput{Environmental: 80, Social: 75, Governance: 85, Risk: 70},
		Source: "fixture",
	}, nil
}

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &config.Config{BaseRate: 7.5, TermYears: 5, TokenSecret: "test-secret"}
	svc := service.NewService(
		repository.NewMemoryRepository(),
		storage.NewMemoryStore(),
		storage.NewTokenSigner(cfg.TokenSecret, time.Hour),
		extraction.NewPlainTextExtractor(),
		echoCompleter{},
		fixtureSource{},
		noopNotifier{},
		service.RatingPolicy{},
		log,
		cfg,
	)

	r := mux.NewRouter()
	NewHandler(svc, log).RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func TestScoreEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/score", map[string]any{
		"company_name": "EcoTech",
		"loan_amount":  500000,
		"esg_data":     map[string]float64{"environmental": 85, "social": 78, "governance": 92, "risk": 88},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res service.ScoreResult
	decodeBody(t, rec, &res)
	assert.Equal(t, 85.8, res.ESGScore.OverallScore)
	assert.Equal(t, "A", res.ESGScore.Rating)
	assert.Equal(t, 5.0, res.LoanTerms.DiscountedRate)
	assert.NotEmpty(t, res.Insights)
}

func TestScoreEndpoint_Validation(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing esg_data", map[string]any{"loan_amount": 1000}},
		{"non-positive amount", map[string]any{
			"loan_amount": 0,
			"esg_data":    map[string]float64{"environmental": 50, "social": 50, "governance": 50, "risk": 50},
		}},
		{"out of range score", map[string]any{
			"loan_amount": 1000,
			"esg_data":    map[string]float64{"environmental": 150, "social": 50, "governance": 50, "risk": 50},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/score", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func createApplication(t *testing.T, router *mux.Router) models.Application {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/applications", map[string]any{
		"company_name": "EcoTech Solutions",
		"loan_amount":  250000,
		"esg_scores":   map[string]float64{"environmental": 85, "social": 78, "governance": 92, "risk": 88},
		"contact_info": map[string]string{"name": "Anna Green", "email": "anna@ecotech.example"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var app models.Application
	decodeBody(t, rec, &app)
	return app
}

func TestApplicationLifecycle(t *testing.T) {
	router := newTestRouter(t)
	app := createApplication(t, router)

	assert.Equal(t, models.StatusSubmitted, app.Status)
	assert.Regexp(t, `^GCLOAN-[0-9A-F]{8}$`, app.ReferenceNumber)

	// lookup by reference number
	rec := doJSON(t, router, http.MethodGet, "/applications/"+app.ReferenceNumber, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched models.Application
	decodeBody(t, rec, &fetched)
	assert.Equal(t, app.ID, fetched.ID)

	// manual transition to review
	rec = doJSON(t, router, http.MethodPatch, "/applications/"+app.ID+"/status", map[string]string{
		"status": "UNDER_REVIEW",
		"agent":  "Maria Santos",
		"note":   "Documents look complete",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeBody(t, rec, &fetched)
	assert.Equal(t, models.StatusUnderReview, fetched.Status)
	require.Len(t, fetched.AgentNotes, 1)
	assert.Equal(t, "Maria Santos", fetched.AgentNotes[0].Agent)

	// illegal jump is a conflict
	rec = doJSON(t, router, http.MethodPatch, "/applications/"+app.ID+"/status", map[string]string{
		"status": "SUBMITTED",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestReviewEndpoint(t *testing.T) {
	router := newTestRouter(t)
	app := createApplication(t, router)

	rec := doJSON(t, router, http.MethodPost, "/applications/"+app.ID+"/review", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var outcome models.ReviewOutcome
	decodeBody(t, rec, &outcome)
	// strong fixture scores approve
	assert.Equal(t, models.StatusApproved, outcome.Outcome)
	assert.NotEmpty(t, outcome.ReviewerComments)
	assert.NotEmpty(t, outcome.NextSteps)
}

func TestGetApplication_NotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/applications/GCLOAN-FFFFFFFF", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDocumentUploadAndDownload(t *testing.T) {
	router := newTestRouter(t)

	text := "Renewable energy usage hit 62% while board independence stands at 80%."
	rec := doJSON(t, router, http.MethodPost, "/documents", map[string]string{
		"company_name": "EcoTech",
		"file_name":    "report.txt",
		"content":      base64.StdEncoding.EncodeToString([]byte(text)),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var res models.DocumentResult
	decodeBody(t, rec, &res)
	require.NotNil(t, res.Metrics.Environmental)
	assert.Equal(t, 62.0, *res.Metrics.Environmental)
	require.NotNil(t, res.Metrics.Governance)
	assert.Equal(t, 80.0, *res.Metrics.Governance)
	require.NotEmpty(t, res.Storage.URL)

	dl := httptest.NewRequest(http.MethodGet, res.Storage.URL, nil)
	dlRec := httptest.NewRecorder()
	router.ServeHTTP(dlRec, dl)
	require.Equal(t, http.StatusOK, dlRec.Code, dlRec.Body.String())
	assert.Equal(t, text, dlRec.Body.String())

	// a token for one key cannot fetch another
	forged := fmt.Sprintf("/documents/%s?token=%s", "other/key.txt", dl.URL.Query().Get("token"))
	dlRec = httptest.NewRecorder()
	router.ServeHTTP(dlRec, httptest.NewRequest(http.MethodGet, forged, nil))
	assert.Equal(t, http.StatusBadRequest, dlRec.Code)
}

func TestDocumentUpload_BadContent(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/documents", map[string]string{
		"file_name": "report.txt",
		"content":   "%%% not base64 %%%",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/chat", map[string]any{
		"message": "What is a green loan?",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var reply assistant.Reply
	decodeBody(t, rec, &reply)
	assert.Equal(t, "echo: What is a green loan?", reply.Text)

	rec = doJSON(t, router, http.MethodPost, "/chat", map[string]any{"message": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompanyESGEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/companies/Apple/esg", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		CompanyName string             `json:"company_name"`
		Data        models.CompanyESG  `json:"esg_data"`
		Reports     []models.ReportRef `json:"reports"`
	}
	decodeBody(t, rec, &res)
	assert.Equal(t, "Apple", res.CompanyName)
	assert.Equal(t, 80.0, res.Data.Scores.Environmental)
	assert.Len(t, res.Reports, 3)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
