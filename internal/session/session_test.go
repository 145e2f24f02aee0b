package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"physcalc/internal/config"
	"physcalc/internal/testutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	cfg := config.Defaults()
	cfg.Server.Dev = true
	cfg.Session.Secret = "test-secret"
	require.NoError(t, cfg.Validate())
	return NewManager(cfg)
}

// carry copies cookies set on rr onto a new request.
func TestIssueAndUsername(t *testing.T) {
	m := newTestManager(t)

	rr := httptest.NewRecorder()
	require.NoError(t, m.Issue(rr, "ada"))

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "physcalc_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.False(t, cookies[0].Secure, "dev mode cookies are not Secure")
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	username, ok := m.Username(testutil.WithCookies(rr, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.True(t, ok)
	assert.Equal(t, "ada", username)
}

func TestUsernameRejectsBadTokens(t *testing.T) {
	m := newTestManager(t)

	other := newTestManager(t)
	other.secret = []byte("another-secret")
	rr := httptest.NewRecorder()
	require.NoError(t, other.Issue(rr, "mallory"))
	forged := rr.Result().Cookies()[0].Value

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "mallory",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, value := range map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": forged,
		"alg none":     none,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: "physcalc_session", Value: value})
			_, ok := m.Username(req)
			assert.False(t, ok)
		})
	}
}

func TestUsernameRejectsExpiredToken(t *testing.T) {
	m := newTestManager(t)
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issued }

	rr := httptest.NewRecorder()
	require.NoError(t, m.Issue(rr, "ada"))
	req := testutil.WithCookies(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	_, ok := m.Username(req)
	assert.True(t, ok)

	m.now = func() time.Time { return issued.Add(25 * time.Hour) }
	_, ok = m.Username(req)
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	m := newTestManager(t)

	rr := httptest.NewRecorder()
	m.Clear(rr)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestFlashRoundTrip(t *testing.T) {
	m := newTestManager(t)

	rr := httptest.NewRecorder()
	m.Flash(rr, "Registration Successful! Please log in.")

	req := testutil.WithCookies(rr, httptest.NewRequest(http.MethodGet, "/login", nil))
	rr2 := httptest.NewRecorder()
	assert.Equal(t, "Registration Successful! Please log in.", m.PopFlash(rr2, req))

	cleared := rr2.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Less(t, cleared[0].MaxAge, 0)

	assert.Equal(t, "", m.PopFlash(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/login", nil)))
}

func TestRequireLogin(t *testing.T) {
	m := newTestManager(t)

	var seen string
	h := m.RequireLogin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UsernameFromContext(r.Context())
	}))

	rr := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/dashboard", nil), h)
	testutil.CheckResponseCode(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))

	login := httptest.NewRecorder()
	require.NoError(t, m.Issue(login, "ada"))
	rr = testutil.ExecuteRequest(testutil.WithCookies(login, httptest.NewRequest(http.MethodGet, "/dashboard", nil)), h)
	testutil.CheckResponseCode(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ada", seen)
}

func TestRequireAPI(t *testing.T) {
	m := newTestManager(t)
	h := m.RequireAPI(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rr := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/api/v1/formulas", nil), h)
	testutil.CheckResponseCode(t, http.StatusUnauthorized, rr.Code)

	var body map[string]string
	testutil.DecodeJSONBody(t, rr.Body, &body)
	assert.Equal(t, "login required", body["error"])

	login := httptest.NewRecorder()
	require.NoError(t, m.Issue(login, "ada"))
	rr = testutil.ExecuteRequest(testutil.WithCookies(login, httptest.NewRequest(http.MethodGet, "/api/v1/formulas", nil)), h)
	testutil.CheckResponseCode(t, http.StatusNoContent, rr.Code)
}
