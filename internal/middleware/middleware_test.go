package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/storefront/internal/common"
	"github.com/Alturino/storefront/internal/common/constants"
	commonHttp "github.com/Alturino/storefront/internal/common/http"
)

const secretKey = "middleware-test-secret"

func TestSession(t *testing.T) {
	existing := uuid.NewString()
	tests := []struct {
		name       string
		cookie     *http.Cookie
		wantReuse  bool
		wantCookie bool
	}{
		{
			name:       "new session gets a cookie",
			wantCookie: true,
		},
		{
			name:      "existing session is reused",
			cookie:    &http.Cookie{Name: constants.CookieSession, Value: existing},
			wantReuse: true,
		},
		{
			name:       "malformed session is replaced",
			cookie:     &http.Cookie{Name: constants.CookieSession, Value: "not-a-uuid"},
			wantCookie: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var got string
			handler := Session(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = common.SessionIDFromContext(r.Context())
			}))

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if test.cookie != nil {
				r.AddCookie(test.cookie)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			require.NotEmpty(t, got)
			if test.wantReuse {
				assert.Equal(t, existing, got)
			}
			cookies := w.Result().Cookies()
			if test.wantCookie {
				require.Len(t, cookies, 1)
				assert.Equal(t, got, cookies[0].Value)
				assert.True(t, cookies[0].HttpOnly)
				assert.Equal(t, int(constants.CookieMaxAge.Seconds()), cookies[0].MaxAge)
			} else {
				assert.Empty(t, cookies)
			}
		})
	}
}

func TestEndSession(t *testing.T) {
	w := httptest.NewRecorder()

	sid := EndSession(w, true)
	_, err := uuid.Parse(sid)
	require.NoError(t, err)

	cookies := map[string]*http.Cookie{}
	for _, cookie := range w.Result().Cookies() {
		cookies[cookie.Name] = cookie
	}
	require.Contains(t, cookies, constants.CookieSession)
	require.Contains(t, cookies, constants.CookieCart)

	assert.Equal(t, sid, cookies[constants.CookieSession].Value)
	assert.True(t, cookies[constants.CookieSession].Secure)
	assert.Positive(t, cookies[constants.CookieSession].MaxAge)
	assert.Equal(t, -1, cookies[constants.CookieCart].MaxAge)

	// the next request after signing out runs under the rotated session
	var got string
	handler := Session(true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = common.SessionIDFromContext(r.Context())
	}))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookies[constants.CookieSession])
	handler.ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, sid, got)
}

func TestLoggingMasksPasswordAndKeepsBody(t *testing.T) {
	body := `{"email":"a@b.c","password":"secret1"}`
	var forwarded string
	var requestID string
	handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		forwarded = string(b)
	}))

	r := httptest.NewRequest(http.MethodPost, "/users/login", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	requestID = w.Header().Get(commonHttp.HeaderRequestID)

	assert.JSONEq(t, body, forwarded)
	_, err := uuid.Parse(requestID)
	assert.NoError(t, err)
}

func TestRecoverPanic(t *testing.T) {
	handler := RecoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "failed", body["status"])
}

func TestAuthenticator(t *testing.T) {
	userId := uuid.New()
	valid, err := common.CreateToken(secretKey, userId, time.Now())
	require.NoError(t, err)
	foreign, err := common.CreateToken("other-secret", userId, time.Now())
	require.NoError(t, err)

	tests := []struct {
		name         string
		header       string
		optional     bool
		wantStatus   int
		wantSignedIn bool
	}{
		{name: "required with valid token", header: "Bearer " + valid, wantStatus: http.StatusOK, wantSignedIn: true},
		{name: "required without token", wantStatus: http.StatusUnauthorized},
		{name: "required with foreign token", header: "Bearer " + foreign, wantStatus: http.StatusUnauthorized},
		{name: "required with wrong scheme", header: "Basic " + valid, wantStatus: http.StatusUnauthorized},
		{name: "optional without token", optional: true, wantStatus: http.StatusOK},
		{name: "optional with valid token", header: "bearer " + valid, optional: true, wantStatus: http.StatusOK, wantSignedIn: true},
		{name: "optional with foreign token", header: "Bearer " + foreign, optional: true, wantStatus: http.StatusUnauthorized},
	}

	authenticator := NewAuthenticator(secretKey, nil)
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var signedIn bool
			var gotUser uuid.UUID
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				id, err := common.UserIdFromJwtToken(r.Context())
				signedIn = err == nil
				gotUser = id
				w.WriteHeader(http.StatusOK)
			})
			var handler http.Handler
			if test.optional {
				handler = authenticator.Optional(next)
			} else {
				handler = authenticator.Required(next)
			}

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if test.header != "" {
				r.Header.Set(commonHttp.HeaderAuthorization, test.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			assert.Equal(t, test.wantStatus, w.Code)
			assert.Equal(t, test.wantSignedIn, signedIn)
			if test.wantSignedIn {
				assert.Equal(t, userId, gotUser)
			}
		})
	}
}
