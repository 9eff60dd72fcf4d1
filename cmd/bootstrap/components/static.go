package components

import (
	"log/slog"
	"time"

	"booking-engine/internal/domain/catalog"
	"booking-engine/internal/domain/inventory"
	infracatalog "booking-engine/internal/infra/catalog"
	"booking-engine/internal/infra/memstore"
	"booking-engine/internal/usecase/commands"
	"booking-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// Fixed identifiers so the demo data is addressable from curl and docs.
var (
	demoRoomID      = uuid.MustParse("0b54b9a2-2a3e-4c8f-9a6e-5b1f6d2c9e01")
	demoBreakfastID = uuid.MustParse("1c65cab3-3b4f-4d90-ab7f-6c2a7e3daf12")
	demoParkingID   = uuid.MustParse("2d76dbc4-4c50-4ea1-bc80-7d3b8f4ebf23")
)

// StaticPersistenceModule wires the database-free profile: in-process stores
// seeded with a demo product, and the bundled catalog.
var StaticPersistenceModule = fx.Module("persistence/static",
	fx.Provide(
		fx.Annotate(
			NewSeededInventoryStore,
			fx.As(new(commands.InventoryStore)),
			fx.As(new(queries.InventoryReader)),
		),
		fx.Annotate(
			memstore.NewBookingStore,
			fx.As(new(commands.BookingRepository)),
			fx.As(new(queries.BookingReader)),
		),
		fx.Annotate(
			NewSeededCatalogGateway,
			fx.As(new(commands.CatalogGateway)),
			fx.As(new(queries.ProductReader)),
		),
	),
)

func NewSeededInventoryStore() *memstore.InventoryStore {
	store := memstore.NewInventoryStore()

	price := decimal.NewFromInt(120)
	today := inventory.NormalizeDate(time.Now().UTC())
	for i := 0; i < 60; i++ {
		entry, err := inventory.NewEntry(demoRoomID, today.AddDate(0, 0, i), 10, 0, price, "EUR", false)
		if err != nil {
			slog.Error("failed to seed demo inventory", "error", err)
			continue
		}
		store.Seed(entry)
	}
	return store
}

func NewSeededCatalogGateway() *infracatalog.StaticGateway {
	gateway := infracatalog.NewStaticGateway()

	basePrice := decimal.NewFromInt(120)
	gateway.SeedProduct(
		catalog.Product{ID: demoRoomID, Name: "Demo Double Room", BasePriceHint: &basePrice},
		catalog.AddOn{ID: demoBreakfastID, Name: "Breakfast", UnitPrice: decimal.NewFromInt(15), Type: catalog.AddOnPerPerson},
		catalog.AddOn{ID: demoParkingID, Name: "Parking", UnitPrice: decimal.NewFromInt(10), Type: catalog.AddOnPerNight},
	)
	return gateway
}
