package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProtectedRouteWithoutToken(t *testing.T) {
	env := newTestEnv(t, &stubRepo{})

	rec := env.doWithToken(t, http.MethodGet, "/homefeed/home", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Missing session", errorMessage(t, rec))
}

func TestProtectedRouteWithUnknownToken(t *testing.T) {
	env := newTestEnv(t, &stubRepo{})

	rec := env.doWithToken(t, http.MethodGet, "/homefeed/home", "bogus", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid session", errorMessage(t, rec))
}

func TestLegacySessionHeaderStillWorks(t *testing.T) {
	env := newTestEnv(t, &stubRepo{})

	req := httptest.NewRequest(http.MethodGet, "/homefeed/home", nil)
	req.Header.Set("session-id", env.token)

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionTokenViaQueryParam(t *testing.T) {
	env := newTestEnv(t, &stubRepo{})

	rec := env.doWithToken(t, http.MethodGet, "/homefeed/home?session_id="+env.token, "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHeaderTakesPrecedenceOverQueryParam(t *testing.T) {
	env := newTestEnv(t, &stubRepo{})

	rec := env.doWithToken(t, http.MethodGet, "/homefeed/home?session_id=bogus", env.token, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPreflightShortCircuits(t *testing.T) {
	env := newTestEnv(t, &stubRepo{})

	rec := env.doWithToken(t, http.MethodOptions, "/homefeed/home", "", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
