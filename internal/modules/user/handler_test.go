package user

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	users map[int64]*User
}

func (f *fakeRepo) Upsert(ctx context.Context, u *User) error { return nil }

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func passthrough(next http.Handler) http.Handler { return next }

func meRouter(repo Repository, userID func(context.Context) (int64, bool)) *chi.Mux {
	r := chi.NewRouter()
	NewHandler(repo, passthrough, userID).RegisterRoutes(r)
	return r
}

func asUser(id int64) func(context.Context) (int64, bool) {
	return func(context.Context) (int64, bool) { return id, true }
}

func TestMeReturnsProfileAsJSON(t *testing.T) {
	repo := &fakeRepo{users: map[int64]*User{
		42: {ID: 42, FirstName: "Anna", Username: "anna", CreatedAt: time.Now()},
	}}
	rec := httptest.NewRecorder()

	meRouter(repo, asUser(42)).ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var got User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, "Anna", got.FirstName)
}

func TestMeUnknownUserRespondsJSONError(t *testing.T) {
	rec := httptest.NewRecorder()

	meRouter(&fakeRepo{}, asUser(7)).ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"user not found"}`, rec.Body.String())
}

func TestMeWithoutIdentityRespondsUnauthorized(t *testing.T) {
	noUser := func(context.Context) (int64, bool) { return 0, false }
	rec := httptest.NewRecorder()

	meRouter(&fakeRepo{}, noUser).ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
