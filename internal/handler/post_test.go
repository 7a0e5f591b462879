package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/linkboard-dev/linkboard/internal/domain"
	internal_errors "github.com/linkboard-dev/linkboard/internal/errors"
)

func TestSharePost(t *testing.T) {
	route := "/v1/posts"
	validBody := []byte(`{"text": "check this out https://example.org #go"}`)

	t.Run("invited member shares a post", func(t *testing.T) {
		deps := newTestDeps()
		deps.post.CreateFunc = func(ctx context.Context, authorEmail domain.Email, text string) (domain.Post, error) {
			assert.Equal(t, "u1@x.org", authorEmail)
			assert.Equal(t, "check this out https://example.org #go", text)
			return domain.Post{Id: "p1", Text: text, AuthorEmail: authorEmail}, nil
		}
		identity, roles := member("u1@x.org")
		router := setupTestRouter(deps, identity, roles)

		req := createRequest(t, http.MethodPost, route, validBody)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), `"shared":true`)
		assert.Contains(t, rr.Body.String(), "p1")
	})

	t.Run("uninvited member is rejected", func(t *testing.T) {
		deps := newTestDeps()
		deps.post.CreateFunc = func(ctx context.Context, authorEmail domain.Email, text string) (domain.Post, error) {
			t.Fatal("service must not be called")
			return domain.Post{}, nil
		}
		identity, _ := member("new@x.org")
		router := setupTestRouter(deps, identity, domain.RoleSet{InternalUser: true})

		req := createRequest(t, http.MethodPost, route, validBody)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("blocked member is rejected", func(t *testing.T) {
		identity, _ := member("blocked@x.org")
		roles := domain.RoleSet{InternalUser: true, Invited: true, Blocked: true}
		router := setupTestRouter(newTestDeps(), identity, roles)

		req := createRequest(t, http.MethodPost, route, validBody)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("missing text is rejected", func(t *testing.T) {
		identity, roles := member("u1@x.org")
		router := setupTestRouter(newTestDeps(), identity, roles)

		req := createRequest(t, http.MethodPost, route, []byte(`{}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("service validation error is surfaced", func(t *testing.T) {
		deps := newTestDeps()
		deps.post.CreateFunc = func(ctx context.Context, authorEmail domain.Email, text string) (domain.Post, error) {
			return domain.Post{}, internal_errors.Validation("Please enter a text")
		}
		identity, roles := member("u1@x.org")
		router := setupTestRouter(deps, identity, roles)

		req := createRequest(t, http.MethodPost, route, []byte(`{"text": "<b></b>"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Please enter a text")
	})
}

func TestDeletePost(t *testing.T) {
	route := "/v1/posts/p1"

	t.Run("owner deletes own post", func(t *testing.T) {
		deps := newTestDeps()
		deps.post.DeleteFunc = func(ctx context.Context, id domain.PostId, requesterEmail domain.Email, roles domain.RoleSet) error {
			assert.Equal(t, "p1", id)
			assert.Equal(t, "u1@x.org", requesterEmail)
			return nil
		}
		identity, roles := member("u1@x.org")
		router := setupTestRouter(deps, identity, roles)

		req := createRequest(t, http.MethodDelete, route, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"deleted":true`)
	})

	t.Run("moderator may delete", func(t *testing.T) {
		deps := newTestDeps()
		identity, _ := member("mod@x.org")
		roles := domain.RoleSet{InternalUser: true, Invited: true, Moderator: true}
		router := setupTestRouter(deps, identity, roles)

		req := createRequest(t, http.MethodDelete, route, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("blocked moderator is rejected", func(t *testing.T) {
		deps := newTestDeps()
		deps.post.DeleteFunc = func(ctx context.Context, id domain.PostId, requesterEmail domain.Email, roles domain.RoleSet) error {
			t.Fatal("service must not be called")
			return nil
		}
		identity, _ := member("mod@x.org")
		roles := domain.RoleSet{InternalUser: true, Invited: true, Moderator: true, Blocked: true}
		router := setupTestRouter(deps, identity, roles)

		req := createRequest(t, http.MethodDelete, route, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("external visitor is rejected", func(t *testing.T) {
		identity, roles := external()
		router := setupTestRouter(newTestDeps(), identity, roles)

		req := createRequest(t, http.MethodDelete, route, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("missing post returns 404", func(t *testing.T) {
		deps := newTestDeps()
		deps.post.DeleteFunc = func(ctx context.Context, id domain.PostId, requesterEmail domain.Email, roles domain.RoleSet) error {
			return internal_errors.NotFound("Post not found")
		}
		identity, roles := member("u1@x.org")
		router := setupTestRouter(deps, identity, roles)

		req := createRequest(t, http.MethodDelete, route, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
