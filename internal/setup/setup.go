package setup

import (
	"github.com/linkboard-dev/linkboard/internal/config"
	"github.com/linkboard-dev/linkboard/internal/handler"
	"github.com/linkboard-dev/linkboard/internal/service"
	"github.com/linkboard-dev/linkboard/internal/session"
	"github.com/linkboard-dev/linkboard/internal/storage/pg"
)

// Dependencies holds all initialized dependencies.
type Dependencies struct {
	Storage  *pg.Storage
	Handler  *handler.Handler
	Sessions session.Service
	Roles    service.RoleService
	Config   *config.Config
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	sessions := session.New(cfg.SessionKey(), cfg.SessionTTL())

	roles := service.NewRoles(storage, cfg.AccessLists(), cfg.Public.InviteBatchSize)
	feed := service.NewFeed(storage, storage)
	post := service.NewPost(storage)
	statistic := service.NewStatistic(storage)
	invite := service.NewInvite(storage)

	h := handler.New(feed, post, statistic, invite, sessions, storage, cfg)

	return &Dependencies{
		Storage:  storage,
		Handler:  h,
		Sessions: sessions,
		Roles:    roles,
		Config:   cfg,
	}, nil
}
