package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dataarena/dataarena-backend/internal/data/repos"
	"github.com/dataarena/dataarena-backend/internal/data/repos/testutil"
	"github.com/dataarena/dataarena-backend/internal/domain"
	httpH "github.com/dataarena/dataarena-backend/internal/http/handlers"
	httpMW "github.com/dataarena/dataarena-backend/internal/http/middleware"
	"github.com/dataarena/dataarena-backend/internal/realtime"
	"github.com/dataarena/dataarena-backend/internal/services"
)

type apiHarness struct {
	engine *gin.Engine
	auth   services.AuthService
	db     *gorm.DB
}

func newAPIHarness(t *testing.T) *apiHarness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	bus := realtime.NopBus{}

	userRepo := repos.NewUserRepo(tx, log)
	userTokenRepo := repos.NewUserTokenRepo(tx, log)
	challengeRepo := repos.NewChallengeRepo(tx, log)
	submissionRepo := repos.NewSubmissionRepo(tx, log)
	progressRepo := repos.NewChallengeProgressRepo(tx, log)
	contactRepo := repos.NewContactMessageRepo(tx, log)

	authService := services.NewAuthService(tx, log, userRepo, userTokenRepo, "router-test-secret", time.Hour, 24*time.Hour)
	progressService := services.NewProgressService(tx, log, progressRepo, challengeRepo, bus)

	engine := NewRouter(RouterConfig{
		AuthMiddleware:     httpMW.NewAuthMiddleware(log, authService),
		AuthHandler:        httpH.NewAuthHandler(authService),
		UserHandler:        httpH.NewUserHandler(services.NewUserService(log, userRepo)),
		ChallengeHandler:   httpH.NewChallengeHandler(log, services.NewChallengeService(tx, log, challengeRepo)),
		SubmissionHandler:  httpH.NewSubmissionHandler(log, services.NewSubmissionService(tx, log, submissionRepo, challengeRepo, progressService, bus)),
		ProgressHandler:    httpH.NewProgressHandler(log, progressService),
		CertificateHandler: httpH.NewCertificateHandler(log, services.NewCertificateService(log, progressRepo, challengeRepo, userRepo)),
		ContactHandler:     httpH.NewContactHandler(services.NewContactService(log, contactRepo)),
		HealthHandler:      httpH.NewHealthHandler(),
	})

	return &apiHarness{engine: engine, auth: authService, db: tx}
}

func (h *apiHarness) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.engine.ServeHTTP(rec, req)
	return rec
}

// registerAndLogin creates a user through the API and returns an access
// token. When admin is set the role is promoted before login so the
// token carries it.
func (h *apiHarness) registerAndLogin(t *testing.T, email string, admin bool) string {
	t.Helper()
	rec := h.do(t, http.MethodPost, "/api/register", "", gin.H{
		"name": "Router Tester", "email": email, "password": "pw",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: status %d: %s", rec.Code, rec.Body.String())
	}
	if admin {
		if err := h.db.WithContext(context.Background()).
			Model(&domain.User{}).
			Where("email = ?", email).
			Update("role", domain.RoleAdmin).Error; err != nil {
			t.Fatalf("promote admin: %v", err)
		}
	}
	rec = h.do(t, http.MethodPost, "/api/login", "", gin.H{"email": email, "password": "pw"})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status %d: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return out.AccessToken
}

func TestHealthcheck(t *testing.T) {
	h := newAPIHarness(t)
	rec := h.do(t, http.MethodGet, "/healthcheck", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestContactEndpoint(t *testing.T) {
	h := newAPIHarness(t)

	rec := h.do(t, http.MethodPost, "/api/contact", "", gin.H{
		"name": "Visitor", "email": "v@test.dev", "message": "Hello",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	rec = h.do(t, http.MethodPost, "/api/contact", "", gin.H{"name": "", "email": "v@test.dev", "message": "Hello"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %d", rec.Code)
	}
}

func TestChallengeEndpointsAuthz(t *testing.T) {
	h := newAPIHarness(t)

	create := gin.H{
		"title":       "Router Challenge",
		"description": "desc",
		"difficulty":  "hard",
		"dataset_url": "https://example.com/data.csv",
		"tags":        "SQL, Visualization",
		"deadline":    "2026-12-31",
	}

	// Unauthenticated writes are rejected; the catalog stays public.
	if rec := h.do(t, http.MethodPost, "/api/challenges", "", create); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	if rec := h.do(t, http.MethodGet, "/api/challenges", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("public list: status %d", rec.Code)
	}

	participant := h.registerAndLogin(t, "router-user@test.dev", false)
	if rec := h.do(t, http.MethodPost, "/api/challenges", participant, create); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for participant, got %d", rec.Code)
	}

	admin := h.registerAndLogin(t, "router-admin@test.dev", true)
	rec := h.do(t, http.MethodPost, "/api/challenges", admin, create)
	if rec.Code != http.StatusCreated {
		t.Fatalf("admin create: status %d: %s", rec.Code, rec.Body.String())
	}
	var created domain.Challenge
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode challenge: %v", err)
	}
	if created.Points != 1200 {
		t.Fatalf("expected derived points 1200, got %d", created.Points)
	}

	// Full lifecycle through the wire: submit, then check the certificate.
	subPath := fmt.Sprintf("/api/challenges/%s/submissions", created.ID)
	if rec := h.do(t, http.MethodPost, subPath, participant, gin.H{"file_name": "sol.ipynb"}); rec.Code != http.StatusCreated {
		t.Fatalf("submission: status %d: %s", rec.Code, rec.Body.String())
	}

	certPath := fmt.Sprintf("/api/challenges/%s/certificate", created.ID)
	rec = h.do(t, http.MethodGet, certPath, participant, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("certificate: status %d: %s", rec.Code, rec.Body.String())
	}
	var cert services.CertificateEligibility
	if err := json.Unmarshal(rec.Body.Bytes(), &cert); err != nil {
		t.Fatalf("decode certificate: %v", err)
	}
	if !cert.Eligible {
		t.Fatal("submitter must be certificate-eligible")
	}
}
