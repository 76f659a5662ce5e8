package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/zaikabox/zaikabox-api/internal/domain/entity"
)

type stubIdempotencyRepo struct {
	keys []*entity.IdempotencyKey
}

func (r *stubIdempotencyRepo) GetByKey(ctx context.Context, key string, userID *uuid.UUID) (*entity.IdempotencyKey, error) {
	for _, k := range r.keys {
		if k.Key != key {
			continue
		}
		if userID == nil && k.UserID == nil {
			return k, nil
		}
		if userID != nil && k.UserID != nil && *userID == *k.UserID {
			return k, nil
		}
	}
	return nil, nil
}

func (r *stubIdempotencyRepo) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	r.keys = append(r.keys, ikey)
	return nil
}

func (r *stubIdempotencyRepo) DeleteExpired(ctx context.Context) error {
	return nil
}

// newIdempotencyRouter wires the middleware in front of a counting handler,
// optionally simulating an authenticated user.
func newIdempotencyRouter(repo *stubIdempotencyRepo, userID *uuid.UUID, calls *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if userID != nil {
		router.Use(func(c *gin.Context) {
			c.Set("user_id", *userID)
			c.Next()
		})
	}
	router.POST("/orders", Idempotency(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		*calls++
		c.JSON(http.StatusCreated, gin.H{"order_no": "ORD-1"})
	})
	return router
}

func post(router *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotencyReplaysGuestCheckout(t *testing.T) {
	repo := &stubIdempotencyRepo{}
	calls := 0
	router := newIdempotencyRouter(repo, nil, &calls)

	first := post(router, "guest-key-1")
	second := post(router, "guest-key-1")

	assert.Equal(t, 1, calls, "retried guest checkout must not reach the handler twice")
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
}

func TestIdempotencyScopesKeysByUser(t *testing.T) {
	repo := &stubIdempotencyRepo{}
	userA := uuid.New()
	userB := uuid.New()

	callsA := 0
	post(newIdempotencyRouter(repo, &userA, &callsA), "shared-key")

	// A different user reusing the same key gets a fresh execution, not
	// user A's stored response
	callsB := 0
	resp := post(newIdempotencyRouter(repo, &userB, &callsB), "shared-key")

	assert.Equal(t, 1, callsA)
	assert.Equal(t, 1, callsB)
	assert.Empty(t, resp.Header().Get("X-Idempotency-Replayed"))
}

func TestIdempotencyGuestKeyNotVisibleToUser(t *testing.T) {
	repo := &stubIdempotencyRepo{}
	guestCalls := 0
	post(newIdempotencyRouter(repo, nil, &guestCalls), "key-x")

	user := uuid.New()
	userCalls := 0
	resp := post(newIdempotencyRouter(repo, &user, &userCalls), "key-x")

	assert.Equal(t, 1, userCalls)
	assert.Empty(t, resp.Header().Get("X-Idempotency-Replayed"))
}

func TestIdempotencyWithoutHeaderPassesThrough(t *testing.T) {
	repo := &stubIdempotencyRepo{}
	calls := 0
	router := newIdempotencyRouter(repo, nil, &calls)

	post(router, "")
	post(router, "")

	assert.Equal(t, 2, calls)
	assert.Empty(t, repo.keys)
}
