package session

import (
	"go.uber.org/zap"

	"composer/block"
	"composer/composer"
	"composer/config"
)

// NewStore creates block store configured by editor settings.
func NewStore(cfg *config.EditorConfig, log *zap.Logger, opts ...composer.Option) *composer.Store {
	all := []composer.Option{
		composer.WithMotionLifetime(cfg.MoveAnimation),
		composer.WithCitationEvery(cfg.Templates.CitationEvery),
	}
	return composer.New(block.NewAllocator(cfg.IDs), log, append(all, opts...)...)
}
