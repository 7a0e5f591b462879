package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/linkboard-dev/linkboard/internal/config"
	"github.com/linkboard-dev/linkboard/internal/domain"
	mw "github.com/linkboard-dev/linkboard/internal/middleware"
	"github.com/linkboard-dev/linkboard/internal/service"
)

// Mock structs
type MockFeedService struct {
	LatestFunc func(ctx context.Context, viewer domain.Identity, roles domain.RoleSet, limit int, hashtag string) ([]domain.AnnotatedPost, error)
}

func (m *MockFeedService) Latest(ctx context.Context, viewer domain.Identity, roles domain.RoleSet, limit int, hashtag string) ([]domain.AnnotatedPost, error) {
	if m.LatestFunc != nil {
		return m.LatestFunc(ctx, viewer, roles, limit, hashtag)
	}
	return nil, nil
}

type MockPostService struct {
	CreateFunc func(ctx context.Context, authorEmail domain.Email, text string) (domain.Post, error)
	DeleteFunc func(ctx context.Context, id domain.PostId, requesterEmail domain.Email, roles domain.RoleSet) error
}

func (m *MockPostService) Create(ctx context.Context, authorEmail domain.Email, text string) (domain.Post, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, authorEmail, text)
	}
	return domain.Post{Id: "p1", Text: text, AuthorEmail: authorEmail}, nil
}

func (m *MockPostService) Delete(ctx context.Context, id domain.PostId, requesterEmail domain.Email, roles domain.RoleSet) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, requesterEmail, roles)
	}
	return nil
}

type MockStatisticService struct {
	RecordFunc func(ctx context.Context, actorEmail domain.Email, action string, postId domain.PostId, content string) error
}

func (m *MockStatisticService) Record(ctx context.Context, actorEmail domain.Email, action string, postId domain.PostId, content string) error {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, actorEmail, action, postId, content)
	}
	return nil
}

type MockInviteService struct {
	MineFunc    func(ctx context.Context, email domain.Email) ([]domain.Invite, error)
	ConsumeFunc func(ctx context.Context, id domain.InviteId, consumerEmail domain.Email) error
}

func (m *MockInviteService) Mine(ctx context.Context, email domain.Email) ([]domain.Invite, error) {
	if m.MineFunc != nil {
		return m.MineFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockInviteService) Consume(ctx context.Context, id domain.InviteId, consumerEmail domain.Email) error {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, id, consumerEmail)
	}
	return nil
}

type MockSessionService struct {
	NewTokenFunc func(identity domain.Identity) (string, error)
	IdentityFunc func(tokenStr string) (domain.Identity, error)
}

func (m *MockSessionService) NewToken(identity domain.Identity) (string, error) {
	if m.NewTokenFunc != nil {
		return m.NewTokenFunc(identity)
	}
	return "token", nil
}

func (m *MockSessionService) Identity(tokenStr string) (domain.Identity, error) {
	if m.IdentityFunc != nil {
		return m.IdentityFunc(tokenStr)
	}
	return domain.External(), nil
}

type MockPinger struct {
	PingFunc func(ctx context.Context) error
}

func (m *MockPinger) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

var _ service.FeedService = (*MockFeedService)(nil)
var _ service.PostService = (*MockPostService)(nil)
var _ service.StatisticService = (*MockStatisticService)(nil)
var _ service.InviteService = (*MockInviteService)(nil)

func testConfig() *config.Config {
	return &config.Config{
		Public: config.Public{
			FeedDefaultLimit: config.DefaultFeedLimit,
			InviteBatchSize:  config.DefaultInviteBatchSize,
		},
		Private: config.Private{
			SessionKey:   "test-session-key",
			ProvisionKey: "test-provision-key",
		},
	}
}

// testDeps bundles the mocks a handler test can override per case.
type testDeps struct {
	feed      *MockFeedService
	post      *MockPostService
	statistic *MockStatisticService
	invite    *MockInviteService
	sessions  *MockSessionService
	health    *MockPinger
}

func newTestDeps() *testDeps {
	return &testDeps{
		feed:      &MockFeedService{},
		post:      &MockPostService{},
		statistic: &MockStatisticService{},
		invite:    &MockInviteService{},
		sessions:  &MockSessionService{},
		health:    &MockPinger{},
	}
}

// setupTestRouter wires the handler behind a chi router that injects the
// given identity and roles, standing in for the real middleware chain.
func setupTestRouter(deps *testDeps, identity domain.Identity, roles domain.RoleSet) *chi.Mux {
	h := New(deps.feed, deps.post, deps.statistic, deps.invite, deps.sessions, deps.health, testConfig())

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r = mw.WithIdentity(r, identity)
			r = mw.WithRoles(r, roles)
			next.ServeHTTP(w, r)
		})
	})

	router.Get("/v1/whoami", h.Whoami)
	router.Get("/v1/posts", h.Feed)
	router.Post("/v1/posts", h.SharePost)
	router.Delete("/v1/posts/{id}", h.DeletePost)
	router.Post("/v1/statistics", h.RecordStatistic)
	router.Get("/v1/invites", h.MyInvites)
	router.Post("/v1/invites/{id}/consume", h.ConsumeInvite)
	router.Post("/v1/session", h.CreateSession)
	router.Get("/v1/health", h.Health)
	router.Get("/v1/ready", h.Ready)

	return router
}

func createRequest(t *testing.T, method, url string, body []byte, cookies ...*http.Cookie) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, url, bytes.NewBuffer(body))
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func member(email string) (domain.Identity, domain.RoleSet) {
	return domain.Identity{Kind: domain.IdentityInternal, Email: email},
		domain.RoleSet{InternalUser: true, Invited: true}
}

func external() (domain.Identity, domain.RoleSet) {
	return domain.External(), domain.RoleSet{ExternalUser: true}
}
