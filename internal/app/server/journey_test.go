package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"payrollpro/internal/platform/config"
)

func newTestApp(t *testing.T, adminPassword string) *App {
	t.Helper()
	cfg := config.Config{
		Addr:               ":0",
		DataDir:            t.TempDir(),
		FrontendDir:        t.TempDir(),
		Environment:        "test",
		AdminPassword:      adminPassword,
		JWTSecret:          "test-secret",
		BackupInterval:     30 * time.Minute,
		BackupMaxSlots:     5,
		BackupReminderDays: 7,
		MaxBodyBytes:       1 << 20,
		RateLimitPerMinute: 1000,
		MetricsEnabled:     true,
	}

	app, err := New(cfg)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return app
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	RequestID string `json:"requestId"`
}

func doJSON(t *testing.T, app *App, method, path string, body any, token string) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 && strings.Contains(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: decode envelope: %v (%s)", method, path, err, rec.Body.String())
		}
	}
	return rec.Code, env
}

func decodeInto(t *testing.T, raw json.RawMessage, dest any) {
	t.Helper()
	if err := json.Unmarshal(raw, dest); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func TestPayrollJourney(t *testing.T) {
	app := newTestApp(t, "")

	status, env := doJSON(t, app, http.MethodPost, "/api/v1/employees", map[string]any{
		"firstName":  "Hery",
		"lastName":   "Rakoto",
		"baseSalary": 250000,
		"bonus":      50000,
		"deductions": 25000,
	}, "")
	if status != http.StatusCreated {
		t.Fatalf("create employee: status %d (%+v)", status, env.Error)
	}
	var emp struct {
		ID        string `json:"id"`
		Matricule string `json:"matricule"`
	}
	decodeInto(t, env.Data, &emp)
	if emp.ID == "" || emp.Matricule == "" {
		t.Fatalf("employee missing id or matricule: %+v", emp)
	}

	status, env = doJSON(t, app, http.MethodPost, "/api/v1/advances", map[string]any{
		"employeeId": emp.ID,
		"amount":     50000,
		"month":      3,
		"year":       2025,
	}, "")
	if status != http.StatusCreated {
		t.Fatalf("create advance: status %d (%+v)", status, env.Error)
	}
	var advance struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decodeInto(t, env.Data, &advance)
	if advance.Status != "pending" {
		t.Fatalf("expected pending advance, got %q", advance.Status)
	}

	status, env = doJSON(t, app, http.MethodPost, "/api/v1/advances/"+advance.ID+"/approve", nil, "")
	if status != http.StatusOK {
		t.Fatalf("approve advance: status %d (%+v)", status, env.Error)
	}

	status, env = doJSON(t, app, http.MethodPost, "/api/v1/salaries/compute", map[string]any{
		"employeeId": emp.ID,
		"month":      3,
		"year":       2025,
	}, "")
	if status != http.StatusOK {
		t.Fatalf("compute salary: status %d (%+v)", status, env.Error)
	}
	var payment struct {
		ID        string  `json:"id"`
		NetSalary float64 `json:"netSalary"`
		Status    string  `json:"status"`
	}
	decodeInto(t, env.Data, &payment)
	if payment.NetSalary != 225000 {
		t.Fatalf("expected net 225000, got %v", payment.NetSalary)
	}

	status, env = doJSON(t, app, http.MethodPost, "/api/v1/salaries/"+payment.ID+"/pay", map[string]any{
		"amount": 100000,
	}, "")
	if status != http.StatusOK {
		t.Fatalf("pay: status %d (%+v)", status, env.Error)
	}
	var paid struct {
		Status          string  `json:"status"`
		RemainingAmount float64 `json:"remainingAmount"`
	}
	decodeInto(t, env.Data, &paid)
	if paid.Status != "partial" || paid.RemainingAmount != 125000 {
		t.Fatalf("expected partial/125000, got %q/%v", paid.Status, paid.RemainingAmount)
	}

	status, env = doJSON(t, app, http.MethodPost, "/api/v1/receipts/salary/"+payment.ID, nil, "")
	if status != http.StatusCreated {
		t.Fatalf("issue receipt: status %d (%+v)", status, env.Error)
	}
	var receipt struct {
		ReceiptNumber string `json:"receiptNumber"`
	}
	decodeInto(t, env.Data, &receipt)
	if receipt.ReceiptNumber != fmt.Sprintf("SAL-202503-%s", emp.Matricule) {
		t.Fatalf("unexpected receipt number %q", receipt.ReceiptNumber)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/receipts/salary/"+payment.ID+"/pdf", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected a PDF, status %d", rec.Code)
	}

	status, env = doJSON(t, app, http.MethodGet, "/api/v1/dashboard?month=3&year=2025", nil, "")
	if status != http.StatusOK {
		t.Fatalf("dashboard: status %d (%+v)", status, env.Error)
	}
	var stats struct {
		TotalEmployees int64   `json:"totalEmployees"`
		PaidThisMonth  float64 `json:"paidThisMonth"`
		RemainingToPay float64 `json:"remainingToPay"`
	}
	decodeInto(t, env.Data, &stats)
	if stats.TotalEmployees != 1 || stats.PaidThisMonth != 100000 || stats.RemainingToPay != 125000 {
		t.Fatalf("dashboard figures wrong: %+v", stats)
	}
}

func TestBackupRoundTripOverAPI(t *testing.T) {
	app := newTestApp(t, "")

	status, env := doJSON(t, app, http.MethodPost, "/api/v1/employees", map[string]any{
		"firstName":  "Hery",
		"lastName":   "Rakoto",
		"baseSalary": 250000,
	}, "")
	if status != http.StatusCreated {
		t.Fatalf("create employee: status %d (%+v)", status, env.Error)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/backup/export", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("export: status %d", rec.Code)
	}
	exported := rec.Body.Bytes()

	status, env = doJSON(t, app, http.MethodPost, "/api/v1/backup/clear", nil, "")
	if status != http.StatusOK {
		t.Fatalf("clear: status %d (%+v)", status, env.Error)
	}

	importReq := httptest.NewRequest(http.MethodPost, "/api/v1/backup/import", bytes.NewReader(exported))
	importRec := httptest.NewRecorder()
	app.Router.ServeHTTP(importRec, importReq)
	if importRec.Code != http.StatusOK {
		t.Fatalf("import: status %d (%s)", importRec.Code, importRec.Body.String())
	}

	status, env = doJSON(t, app, http.MethodGet, "/api/v1/employees", nil, "")
	if status != http.StatusOK {
		t.Fatalf("list: status %d", status)
	}
	var employees []map[string]any
	decodeInto(t, env.Data, &employees)
	if len(employees) != 1 {
		t.Fatalf("expected the restored employee, got %d", len(employees))
	}
}

func TestAdminAuthGuardsAPI(t *testing.T) {
	app := newTestApp(t, "s3cret")

	status, env := doJSON(t, app, http.MethodGet, "/api/v1/employees", nil, "")
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}

	status, env = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", map[string]any{"password": "wrong"}, "")
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", status)
	}

	status, env = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", map[string]any{"password": "s3cret"}, "")
	if status != http.StatusOK {
		t.Fatalf("login: status %d (%+v)", status, env.Error)
	}
	var login struct {
		Token string `json:"token"`
	}
	decodeInto(t, env.Data, &login)
	if login.Token == "" {
		t.Fatalf("expected a token")
	}

	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/employees", nil, login.Token)
	if status != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", status)
	}
}

func TestSettingsUpdateOverAPI(t *testing.T) {
	app := newTestApp(t, "")

	status, env := doJSON(t, app, http.MethodPut, "/api/v1/settings", map[string]any{
		"companyName": "SARL Tsiky",
	}, "")
	if status != http.StatusOK {
		t.Fatalf("update settings: status %d (%+v)", status, env.Error)
	}
	var current struct {
		CompanyName string `json:"companyName"`
		Currency    string `json:"currency"`
	}
	decodeInto(t, env.Data, &current)
	if current.CompanyName != "SARL Tsiky" || current.Currency != "MGA" {
		t.Fatalf("settings merge wrong: %+v", current)
	}
}

func TestHealthEndpoints(t *testing.T) {
	app := newTestApp(t, "")

	for _, path := range []string{"/healthz", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d", path, rec.Code)
		}
	}
}
