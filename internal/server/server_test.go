package server

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lifeplan-tools/lifeplan-forecast/internal/config"
	"github.com/lifeplan-tools/lifeplan-forecast/pkg/testutil"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	return NewHandler(zap.NewNop(), 0, "test")
}

func postJSON(t *testing.T, h http.Handler, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestVersion(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"version":"test"}`, rec.Body.String())
}

func TestFAQ(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/faq", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Entries []struct {
			Question string `json:"question"`
			Answer   string `json:"answer"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Entries)
	for _, entry := range resp.Entries {
		assert.NotEmpty(t, entry.Question)
		assert.NotEmpty(t, entry.Answer)
	}
}

func TestSimulate(t *testing.T) {
	h := newTestServer(t)
	rec := postJSON(t, h, "/api/simulate", simulateRequest{Plan: testutil.BaselinePlan()})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp simulateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Records, 5)
	assert.Equal(t, 1, resp.Records[0].Year)
	assert.InDelta(t, 2000000, resp.Summary.FinalAssets, 0.01)
	assert.Zero(t, resp.Summary.FirstNegativeYear)
	assert.NotEmpty(t, resp.Duration)
}

func TestSimulateInvalidPlan(t *testing.T) {
	h := newTestServer(t)
	plan := testutil.BaselinePlan()
	plan.HorizonYears = 0
	rec := postJSON(t, h, "/api/simulate", simulateRequest{Plan: plan})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "horizonYears")
}

func TestSimulateMalformedBody(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/simulate", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSimulateReportsWarnings(t *testing.T) {
	h := newTestServer(t)
	plan := testutil.BaselinePlan()
	plan.OneOff = []config.OneOffExpense{{Name: "roof", Amount: 1, Year: 99}}
	rec := postJSON(t, h, "/api/simulate", simulateRequest{Plan: plan})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp simulateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Warnings)
	assert.Contains(t, resp.Warnings[0], "year 99")
}

func TestAdvice(t *testing.T) {
	h := newTestServer(t)
	rec := postJSON(t, h, "/api/advice", simulateRequest{
		Plan: testutil.BaselinePlan(),
		Goal: "retire early",
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp adviceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Advice, "retire early")
	assert.InDelta(t, 2000000, resp.Summary.FinalAssets, 0.01)
}

func TestPlanExportCsv(t *testing.T) {
	h := newTestServer(t)
	rec := postJSON(t, h, "/api/plan/export", exportRequest{Plan: testutil.BaselinePlan()})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		PlanCsv string `json:"planCsv"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.PlanCsv, "key,value")
	assert.Contains(t, resp.PlanCsv, "horizonYears,5")
	assert.Contains(t, resp.PlanCsv, "household.0.name,primary")
}

func TestPlanExportYaml(t *testing.T) {
	h := newTestServer(t)
	rec := postJSON(t, h, "/api/plan/export", exportRequest{
		Plan:   testutil.BaselinePlan(),
		Format: "yaml",
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		PlanYaml string `json:"planYaml"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.PlanYaml, "horizonYears: 5")
	assert.Contains(t, resp.PlanYaml, "monthlySalaryMain: 50000")
}

func TestPlanExportUnknownFormat(t *testing.T) {
	h := newTestServer(t)
	rec := postJSON(t, h, "/api/plan/export", exportRequest{
		Plan:   testutil.BaselinePlan(),
		Format: "xml",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown export format")
}

func TestPlanImport(t *testing.T) {
	h := newTestServer(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "plan.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("key,value\nhorizonYears,12\nincome.monthlySalaryMain,250000\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/plan/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Plan config.Simulation `json:"plan"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 12, resp.Plan.HorizonYears)
	assert.Equal(t, 250000.0, resp.Plan.Income.MonthlySalaryMain)
}

func TestPlanImportBadFile(t *testing.T) {
	h := newTestServer(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "plan.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("key,value\nnoSuchThing,1\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/plan/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "noSuchThing")
}

func TestPlanImportMissingFile(t *testing.T) {
	h := newTestServer(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("other", "x"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/plan/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing plan file")
}
