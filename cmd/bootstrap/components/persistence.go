package components

import (
	infracatalog "booking-engine/internal/infra/catalog"
	"booking-engine/internal/infra/repository"
	"booking-engine/internal/usecase/commands"
	"booking-engine/internal/usecase/queries"

	"go.uber.org/fx"
)

// PersistenceModule wires the live profile: Postgres-backed stores and the
// HTTP catalog gateway.
var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		fx.Annotate(
			repository.NewInventoryRepository,
			fx.As(new(commands.InventoryStore)),
			fx.As(new(queries.InventoryReader)),
		),
		fx.Annotate(
			repository.NewBookingRepository,
			fx.As(new(commands.BookingRepository)),
			fx.As(new(queries.BookingReader)),
		),
		fx.Annotate(
			infracatalog.NewHTTPGateway,
			fx.As(new(commands.CatalogGateway)),
			fx.As(new(queries.ProductReader)),
		),
	),
)
