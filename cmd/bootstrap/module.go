package bootstrap

import (
	"os"
	"strings"

	"booking-engine/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// NewModule assembles the dependency graph. The persistence profile is
// chosen once at composition time: the static profile runs without a
// database, everything else connects to Postgres and the live catalog.
func NewModule() fx.Option {
	base := fx.Options(
		ConfigModule,
		components.UseCaseModule,
		components.HandlerModule,
	)

	if catalogMode() == "static" {
		return fx.Options(base, components.StaticPersistenceModule)
	}
	return fx.Options(base, DBModule, components.PersistenceModule)
}

func catalogMode() string {
	mode := strings.ToLower(os.Getenv("CATALOG_MODE"))
	if mode == "" {
		return "static"
	}
	return mode
}
