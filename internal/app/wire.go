//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/lighter/common/internal/shared/config"
)

// InitializeApp wires the application from cfg. The returned cleanup closes
// the database and Redis connections and flushes the logger.
func InitializeApp(cfg *config.Config) (*App, func(), error) {
	wire.Build(
		InfraSet,
		UserSet,
		NewRouter,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
