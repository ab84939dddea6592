package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/bookmarks/internal/adapters/crypto/argon2"
	"github.com/vncsmyrnk/bookmarks/internal/adapters/repository/memory"
	tokenjwt "github.com/vncsmyrnk/bookmarks/internal/adapters/token/jwt"
	"github.com/vncsmyrnk/bookmarks/internal/core/domain"
	"github.com/vncsmyrnk/bookmarks/internal/core/ports"
	"github.com/vncsmyrnk/bookmarks/internal/core/services"
	"github.com/vncsmyrnk/bookmarks/internal/logging"
)

const testSecret = "test-secret"

type TestApp struct {
	Server    *httptest.Server
	Client    *http.Client
	Users     *memory.UserRepository
	Bookmarks *memory.BookmarkRepository
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()

	users := memory.NewUserRepository()
	bookmarks := memory.NewBookmarkRepository()

	app := newTestApp(t, users, bookmarks)
	app.Users = users
	app.Bookmarks = bookmarks
	return app
}

func newTestApp(t *testing.T, users ports.UserRepository, bookmarks ports.BookmarkRepository) *TestApp {
	t.Helper()

	logger := logging.Discard()
	hasher := argon2.New(argon2.Params{Memory: 1024, Iterations: 1, Parallelism: 1}, 4)
	issuer, err := tokenjwt.NewIssuer(testSecret)
	require.NoError(t, err)

	router := NewHandler(
		NewAuthHandler(services.NewAuthService(users, hasher, issuer, logger), logger),
		NewUserHandler(services.NewUserService(users), logger),
		NewBookmarkHandler(services.NewBookmarkService(bookmarks, logger), logger),
		issuer,
		logger,
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestApp{
		Server: server,
		Client: server.Client(),
	}
}

func (app *TestApp) do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, app.Server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func (app *TestApp) signUp(t *testing.T, email, password string) string {
	t.Helper()
	status, raw := app.do(t, http.MethodPost, "/auth/signup", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusCreated, status, string(raw))

	var token ports.AuthToken
	require.NoError(t, json.Unmarshal(raw, &token))
	require.NotEmpty(t, token.AccessToken)
	return token.AccessToken
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func TestFlow(t *testing.T) {
	app := setupTestApp(t)
	creds := map[string]string{"email": "a@x.com", "password": "pw1"}

	t.Run("sign up validation", func(t *testing.T) {
		for _, body := range []any{
			map[string]string{"password": "pw1"},
			map[string]string{"email": "a@x.com"},
			map[string]string{},
			map[string]string{"email": "not-an-email", "password": "pw1"},
			"{not json",
		} {
			status, _ := app.do(t, http.MethodPost, "/auth/signup", "", body)
			assert.Equal(t, http.StatusBadRequest, status)
		}
		assert.Equal(t, 0, app.Users.Len())
	})

	app.signUp(t, creds["email"], creds["password"])

	t.Run("sign up twice", func(t *testing.T) {
		status, raw := app.do(t, http.MethodPost, "/auth/signup", "", creds)
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "credentials taken", decode[errorResponse](t, raw).Error)
		assert.Equal(t, 1, app.Users.Len())
	})

	t.Run("sign in validation", func(t *testing.T) {
		status, _ := app.do(t, http.MethodPost, "/auth/signin", "", map[string]string{"email": "a@x.com"})
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("sign in failures look the same", func(t *testing.T) {
		statusWrong, rawWrong := app.do(t, http.MethodPost, "/auth/signin", "", map[string]string{"email": "a@x.com", "password": "nope"})
		statusUnknown, rawUnknown := app.do(t, http.MethodPost, "/auth/signin", "", map[string]string{"email": "b@x.com", "password": "pw1"})
		assert.Equal(t, http.StatusUnauthorized, statusWrong)
		assert.Equal(t, statusWrong, statusUnknown)
		assert.JSONEq(t, string(rawWrong), string(rawUnknown))
	})

	status, raw := app.do(t, http.MethodPost, "/auth/signin", "", creds)
	require.Equal(t, http.StatusOK, status)
	token := decode[ports.AuthToken](t, raw).AccessToken

	t.Run("get me", func(t *testing.T) {
		status, raw := app.do(t, http.MethodGet, "/users/me", token, nil)
		require.Equal(t, http.StatusOK, status)
		user := decode[map[string]any](t, raw)
		assert.Equal(t, "a@x.com", user["email"])
		assert.NotContains(t, string(raw), "argon2")
	})

	t.Run("edit user", func(t *testing.T) {
		body := map[string]string{"first_name": "Ada", "last_name": "Lovelace"}
		status, raw := app.do(t, http.MethodPatch, "/users", token, body)
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, string(raw), "Ada")
		assert.Contains(t, string(raw), "Lovelace")
		assert.Contains(t, string(raw), "a@x.com")
	})

	t.Run("empty list", func(t *testing.T) {
		status, raw := app.do(t, http.MethodGet, "/bookmarks", token, nil)
		require.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `[]`, string(raw))
	})

	t.Run("create validation", func(t *testing.T) {
		status, _ := app.do(t, http.MethodPost, "/bookmarks", token, map[string]string{"link": "https://go.dev"})
		assert.Equal(t, http.StatusBadRequest, status)
	})

	status, raw = app.do(t, http.MethodPost, "/bookmarks", token, map[string]string{"title": "T", "link": "L"})
	require.Equal(t, http.StatusCreated, status, string(raw))
	created := decode[domain.Bookmark](t, raw)
	assert.Equal(t, "T", created.Title)
	assert.Equal(t, "L", created.Link)
	path := fmt.Sprintf("/bookmarks/%s", created.ID)

	t.Run("list has one", func(t *testing.T) {
		status, raw := app.do(t, http.MethodGet, "/bookmarks", token, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Len(t, decode[[]domain.Bookmark](t, raw), 1)
	})

	t.Run("get by id", func(t *testing.T) {
		status, raw := app.do(t, http.MethodGet, path, token, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, string(raw), created.ID.String())
	})

	t.Run("edit keeps unspecified fields", func(t *testing.T) {
		status, raw := app.do(t, http.MethodPatch, path, token, map[string]string{"description": "notes"})
		require.Equal(t, http.StatusOK, status)
		got := decode[domain.Bookmark](t, raw)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "T", got.Title)
		assert.Equal(t, "L", got.Link)
		require.NotNil(t, got.Description)
		assert.Equal(t, "notes", *got.Description)
	})

	t.Run("delete returns the record", func(t *testing.T) {
		status, raw := app.do(t, http.MethodDelete, path, token, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, string(raw), created.ID.String())
	})

	t.Run("list is empty again", func(t *testing.T) {
		status, raw := app.do(t, http.MethodGet, "/bookmarks", token, nil)
		require.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `[]`, string(raw))
	})

	t.Run("deleted record is forbidden", func(t *testing.T) {
		status, _ := app.do(t, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusForbidden, status)
	})
}

func TestBookmarks_OtherUser(t *testing.T) {
	app := setupTestApp(t)
	alice := app.signUp(t, "alice@x.com", "pw")
	bob := app.signUp(t, "bob@x.com", "pw")

	status, raw := app.do(t, http.MethodPost, "/bookmarks", alice, map[string]string{"title": "T", "link": "L"})
	require.Equal(t, http.StatusCreated, status)
	path := "/bookmarks/" + decode[domain.Bookmark](t, raw).ID.String()

	missing := "/bookmarks/" + uuid.NewString()
	for _, tc := range []struct {
		method string
		body   any
	}{
		{http.MethodGet, nil},
		{http.MethodPatch, map[string]string{"title": "stolen"}},
		{http.MethodDelete, nil},
	} {
		statusOther, rawOther := app.do(t, tc.method, path, bob, tc.body)
		statusMissing, rawMissing := app.do(t, tc.method, missing, bob, tc.body)
		assert.Equal(t, http.StatusForbidden, statusOther, tc.method)
		assert.Equal(t, statusOther, statusMissing, tc.method)
		assert.JSONEq(t, string(rawOther), string(rawMissing), tc.method)
	}

	status, raw = app.do(t, http.MethodGet, path, alice, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "T", decode[domain.Bookmark](t, raw).Title)

	status, raw = app.do(t, http.MethodGet, "/bookmarks", bob, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestBookmarks_InvalidID(t *testing.T) {
	app := setupTestApp(t)
	token := app.signUp(t, "a@x.com", "pw")

	status, _ := app.do(t, http.MethodGet, "/bookmarks/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func signedToken(t *testing.T, secret string, sub string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   sub,
		"email": "a@x.com",
		"iat":   exp.Add(-15 * time.Minute).Unix(),
		"exp":   exp.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestRequireBearer(t *testing.T) {
	app := setupTestApp(t)
	valid := app.signUp(t, "a@x.com", "pw")

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid", "Bearer " + valid, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"expired", "Bearer " + signedToken(t, testSecret, uuid.NewString(), time.Now().Add(-time.Minute)), http.StatusUnauthorized},
		{"foreign secret", "Bearer " + signedToken(t, "other", uuid.NewString(), time.Now().Add(time.Minute)), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, app.Server.URL+"/bookmarks", nil)
			require.NoError(t, err)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Client.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestGetMe_UserGone(t *testing.T) {
	app := setupTestApp(t)
	token := signedToken(t, testSecret, uuid.NewString(), time.Now().Add(time.Minute))

	status, _ := app.do(t, http.MethodGet, "/users/me", token, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

type failingBookmarkService struct {
	ports.BookmarkService
}

func (failingBookmarkService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Bookmark, error) {
	return nil, errors.New("connection refused on 10.0.0.7")
}

func TestInternalErrorsAreGeneric(t *testing.T) {
	issuer, err := tokenjwt.NewIssuer(testSecret)
	require.NoError(t, err)
	logger := logging.Discard()

	router := NewHandler(nil, nil, NewBookmarkHandler(failingBookmarkService{}, logger), issuer, logger)
	token, err := issuer.Issue(uuid.New(), "a@x.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/bookmarks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{&domain.EmailTakenError{Email: "a@x.com"}, http.StatusConflict},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrTokenExpired, http.StatusUnauthorized},
		{domain.ErrTokenInvalid, http.StatusUnauthorized},
		{fmt.Errorf("wrapped: %w", domain.ErrNotFoundOrForbidden), http.StatusForbidden},
		{badRequest("title: cannot be blank."), http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		status, _ := statusFor(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
	}
}
