package handler

import (
	"github.com/user/cinehunt/internal/config"
	"github.com/user/cinehunt/internal/repository"
	"github.com/user/cinehunt/internal/service"
)

// Handler HTTP 处理器
type Handler struct {
	Config    *config.Config
	Catalog   *service.CatalogService
	Detail    *service.DetailService
	Sessions  *repository.SessionRepository
	Favorites *repository.FavoriteRepository
}

// NewHandler 创建处理器并装配各服务
func NewHandler(cfg *config.Config, store *repository.LocalStore) *Handler {
	client := service.NewOMDBClient(cfg)
	adapter := service.NewMovieAdapter(nil)
	registry := service.NewMovieRegistry(4096)

	return &Handler{
		Config:    cfg,
		Catalog:   service.NewCatalogService(client, adapter, registry, nil),
		Detail:    service.NewDetailService(client, adapter, registry),
		Sessions:  repository.NewSessionRepository(store, cfg.AppSecret, cfg.TokenExpiry),
		Favorites: repository.NewFavoriteRepository(store),
	}
}
