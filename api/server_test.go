package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sanketkurve/portfolio-backend/auth"
	"github.com/sanketkurve/portfolio-backend/database"
	"github.com/sanketkurve/portfolio-backend/database/dbtest"
	"github.com/sanketkurve/portfolio-backend/models"
)

const (
	testAdmin    = "SanketKurve"
	testPassword = "correct horse"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []models.Message
}

func (n *recordingNotifier) MessageReceived(msg models.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
}

type testEnv struct {
	db       database.Database
	tokens   *auth.TokenService
	notifier *recordingNotifier
	router   *chi.Mux
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := dbtest.New(t)
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash(testPassword)
	require.NoError(t, err)
	_, err = db.AdminRepo().Create(context.Background(), testAdmin, "admin@example.com", hash)
	require.NoError(t, err)

	tokens := auth.NewTokenService("api-test-secret", time.Hour)
	notifier := &recordingNotifier{}
	deps := Dependencies{
		Database: db,
		Auth:     auth.NewService(db.AdminRepo(), hasher, tokens, zerolog.Nop()),
		Notifier: notifier,
	}

	router := newRouter(deps,
		withConfig(map[string]string{"ACCEPTED_ORIGINS": "https://site.example"}),
		withLogger(zerolog.Nop()),
	)
	return &testEnv{db: db, tokens: tokens, notifier: notifier, router: router}
}

func (e *testEnv) token(t *testing.T) string {
	t.Helper()
	token, err := e.tokens.Issue(testAdmin, models.RoleAdmin)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("User-Agent", "api-test/1.0")

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestBanner(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api", "", "")
	if rec.Code == http.StatusNotFound {
		rec = env.do(t, http.MethodGet, "/api/", "", "")
	}
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[bannerResponse](t, rec)
	assert.Equal(t, "Portfolio API is running", body.Message)
	assert.Equal(t, apiVersion, body.Version)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[healthResponse](t, rec)
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "connected", body.Database)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	expired, err := auth.NewTokenService("api-test-secret", time.Minute,
		auth.WithClock(func() time.Time { return time.Now().Add(-time.Hour) }),
	).Issue(testAdmin, models.RoleAdmin)
	require.NoError(t, err)

	forged, err := auth.NewTokenService("some-other-secret", time.Hour).Issue(testAdmin, models.RoleAdmin)
	require.NoError(t, err)

	ghost, err := env.tokens.Issue("deleted-admin", models.RoleAdmin)
	require.NoError(t, err)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/admin/auth/verify"},
		{http.MethodGet, "/api/admin/projects"},
		{http.MethodPost, "/api/admin/skills"},
		{http.MethodDelete, "/api/admin/certificates/" + "00000000-0000-0000-0000-000000000001"},
		{http.MethodGet, "/api/admin/messages"},
		{http.MethodGet, "/api/admin/dashboard/stats"},
	}
	tokens := map[string]string{
		"missing":         "",
		"garbage":         "not-a-token",
		"expired":         expired,
		"wrong key":       forged,
		"unknown subject": ghost,
	}

	for _, route := range routes {
		for name, token := range tokens {
			t.Run(route.method+" "+route.path+" "+name, func(t *testing.T) {
				rec := env.do(t, route.method, route.path, "", token)
				assert.Equal(t, http.StatusUnauthorized, rec.Code)

				body := decode[ErrorResponse](t, rec)
				assert.Equal(t, "unauthorized", body.Error)
				assert.Equal(t, "error", body.Status)
			})
		}
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	t.Run("valid credentials", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/admin/auth/login",
			`{"username":"SanketKurve","password":"correct horse"}`, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		result := decode[auth.LoginResult](t, rec)
		assert.Equal(t, "bearer", result.TokenType)
		assert.Equal(t, testAdmin, result.Username)
		assert.Equal(t, models.RoleAdmin, result.Role)

		verify := env.do(t, http.MethodGet, "/api/admin/auth/verify", "", result.AccessToken)
		require.Equal(t, http.StatusOK, verify.Code)
		body := decode[verifyResponse](t, verify)
		assert.True(t, body.Valid)
		require.NotNil(t, body.User)
		assert.Equal(t, testAdmin, body.User.Username)
	})

	t.Run("unknown user and wrong password look the same", func(t *testing.T) {
		unknown := env.do(t, http.MethodPost, "/api/admin/auth/login",
			`{"username":"wrong_user","password":"anything"}`, "")
		wrong := env.do(t, http.MethodPost, "/api/admin/auth/login",
			`{"username":"SanketKurve","password":"wrong_pw"}`, "")

		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, http.StatusUnauthorized, wrong.Code)
		assert.Equal(t, unknown.Body.String(), wrong.Body.String())
	})

	t.Run("missing password", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/admin/auth/login", `{"username":"SanketKurve"}`, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "password", decode[ErrorResponse](t, rec).Field)
	})
}

func TestContact(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/contact",
		`{"name":"Ada","email":"ada@x.com","message":"hi"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	msg := decode[models.Message](t, rec)
	assert.Equal(t, "unread", msg.Status)
	require.NotNil(t, msg.IP)
	assert.Equal(t, "192.0.2.1", *msg.IP)
	require.NotNil(t, msg.UserAgent)
	assert.Equal(t, "api-test/1.0", *msg.UserAgent)

	require.Len(t, env.notifier.messages, 1)
	assert.Equal(t, msg.ID, env.notifier.messages[0].ID)

	t.Run("client cannot set status or ip", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/contact",
			`{"name":"Ada","email":"ada@x.com","message":"hi","status":"read","ip":"1.2.3.4"}`, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid email", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/contact",
			`{"name":"Ada","email":"not-an-email","message":"hi"}`, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "email", decode[ErrorResponse](t, rec).Field)
	})
}

func TestProjectLifecycle(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t)

	rec := env.do(t, http.MethodPost, "/api/admin/projects",
		`{"title":"Portfolio","tagline":"Personal site","description":"Go backend","year":2025,"tech":["Go"]}`, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[models.Project](t, rec)
	assert.True(t, created.Visible)
	assert.Equal(t, "web", created.Category)

	path := "/api/admin/projects/" + created.ID.String()

	rec = env.do(t, http.MethodPut, path, `{"visible":false,"tagline":null}`, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[models.Project](t, rec)
	assert.False(t, updated.Visible)
	assert.Equal(t, "Personal site", updated.Tagline)

	rec = env.do(t, http.MethodGet, "/api/projects/"+created.ID.String(), "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/projects", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/admin/projects", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Project](t, rec), 1)

	rec = env.do(t, http.MethodPut, path, `{"color":"blue"}`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "color", decode[ErrorResponse](t, rec).Field)

	rec = env.do(t, http.MethodDelete, path, "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Project deleted successfully", decode[messageResponse](t, rec).Message)

	rec = env.do(t, http.MethodGet, path, "", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = env.do(t, http.MethodPut, path, `{"title":"Again"}`, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = env.do(t, http.MethodDelete, path, "", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProjectCreateMissingField(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/admin/projects",
		`{"title":"Portfolio","description":"Go backend","year":2025}`, env.token(t))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[ErrorResponse](t, rec)
	assert.Equal(t, "tagline", body.Field)
	assert.Equal(t, "missing required field", body.Error)
}

func TestSkillsOrderedPublicly(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t)

	for _, body := range []string{
		`{"name":"Python","category":"Programming","order":12}`,
		`{"name":"Go","category":"Programming","order":3}`,
		`{"name":"Rust","category":"Programming","level":70,"order":9}`,
		`{"name":"Hidden","category":"Programming","order":1,"visible":false}`,
	} {
		rec := env.do(t, http.MethodPost, "/api/admin/skills", body, token)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := env.do(t, http.MethodGet, "/api/skills", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var names []string
	for _, s := range decode[[]models.Skill](t, rec) {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Go", "Rust", "Python"}, names)
}

func TestCertificateCRUD(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t)

	rec := env.do(t, http.MethodPost, "/api/admin/certificates",
		`{"name":"CKA","issuer":"CNCF","date":"2024-05"}`, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	cert := decode[models.Certificate](t, rec)

	rec = env.do(t, http.MethodPut, "/api/admin/certificates/"+cert.ID.String(), `{"priority":2}`, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decode[models.Certificate](t, rec).Priority)

	rec = env.do(t, http.MethodGet, "/api/certificates", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Certificate](t, rec), 1)

	rec = env.do(t, http.MethodDelete, "/api/admin/certificates/"+cert.ID.String(), "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Certificate deleted successfully", decode[messageResponse](t, rec).Message)
}

func TestMessageAdmin(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t)

	rec := env.do(t, http.MethodPost, "/api/contact", `{"name":"Ada","email":"ada@x.com","message":"hi"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	msg := decode[models.Message](t, rec)
	statusPath := "/api/admin/messages/" + msg.ID.String() + "/status"

	rec = env.do(t, http.MethodPut, statusPath+"?status=read", "", token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Status updated successfully", decode[messageResponse](t, rec).Message)

	rec = env.do(t, http.MethodPut, statusPath, `{"status":"archived"}`, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	stored, err := env.db.MessageRepo().FindByID(context.Background(), msg.ID)
	require.NoError(t, err)
	assert.Equal(t, "archived", stored.Status)

	rec = env.do(t, http.MethodPut, statusPath, "", token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/admin/messages", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Message](t, rec), 1)

	rec = env.do(t, http.MethodDelete, "/api/admin/messages/"+msg.ID.String(), "", token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPut, statusPath+"?status=read", "", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDashboardStats(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t)

	projects := []string{
		`{"title":"A","tagline":"a","description":"a","year":2023}`,
		`{"title":"B","tagline":"b","description":"b","year":2024}`,
		`{"title":"C","tagline":"c","description":"c","year":2025,"visible":false}`,
	}
	for _, body := range projects {
		require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/admin/projects", body, token).Code)
	}
	for _, body := range []string{`{"name":"Go","category":"Programming"}`, `{"name":"SQL","category":"Data"}`} {
		require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/admin/skills", body, token).Code)
	}
	var firstID string
	for i, body := range []string{
		`{"name":"Ada","email":"ada@x.com","message":"hi"}`,
		`{"name":"Bob","email":"bob@x.com","message":"hello"}`,
	} {
		rec := env.do(t, http.MethodPost, "/api/contact", body, "")
		require.Equal(t, http.StatusCreated, rec.Code)
		if i == 0 {
			firstID = decode[models.Message](t, rec).ID.String()
		}
	}
	require.Equal(t, http.StatusOK,
		env.do(t, http.MethodPut, "/api/admin/messages/"+firstID+"/status?status=read", "", token).Code)

	rec := env.do(t, http.MethodGet, "/api/admin/dashboard/stats", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.DashboardStats{
		TotalProjects:     3,
		TotalSkills:       2,
		TotalCertificates: 0,
		TotalMessages:     2,
		UnreadMessages:    1,
	}, decode[models.DashboardStats](t, rec))
}

func TestDecodeJSON_RejectsTrailingData(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/contact",
		`{"name":"Ada","email":"ada@x.com","message":"hi"}{"name":"Eve"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDecodeJSON_RejectsOversizedBody(t *testing.T) {
	env := newTestEnv(t)

	huge := `{"name":"Ada","email":"ada@x.com","message":"` + strings.Repeat("x", maxBodyBytes) + `"}`
	rec := env.do(t, http.MethodPost, "/api/contact", huge, "")
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t)

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		return rec
	}

	allowed := preflight("https://site.example")
	assert.Equal(t, "https://site.example", allowed.Header().Get("Access-Control-Allow-Origin"))

	blocked := preflight("https://evil.example")
	assert.Equal(t, http.StatusForbidden, blocked.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/projects", "", "").Code)
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/contact",
		`{"name":"Ada","email":"ada@x.com","message":"hi"}`, "").Code)

	rec := env.do(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `portfolio_http_requests_total{method="GET",route="/api/projects",status="200"} 1`)
	assert.Contains(t, body, "portfolio_contact_messages_total 1")
}

func TestPanicRecovery(t *testing.T) {
	r := chi.NewRouter()
	r.Use(LogInternalServerErrors)
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.True(t, bytes.Contains(rec.Body.Bytes(), []byte(`"status":"error"`)))
}
