package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/linkboard-dev/linkboard/internal/config"
	"github.com/linkboard-dev/linkboard/internal/logger"
	"github.com/linkboard-dev/linkboard/internal/service"
	"github.com/linkboard-dev/linkboard/internal/session"
)

// Pinger reports storage reachability for the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	feed      service.FeedService
	post      service.PostService
	statistic service.StatisticService
	invite    service.InviteService
	sessions  session.Service
	health    Pinger
	cfg       *config.Config
}

func New(feed service.FeedService, post service.PostService, statistic service.StatisticService, invite service.InviteService, sessions session.Service, health Pinger, cfg *config.Config) *Handler {
	return &Handler{feed, post, statistic, invite, sessions, health, cfg}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}
