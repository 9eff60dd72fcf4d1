package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Read models consumed from the content provider. The engine treats these
// as best-effort enrichment; only add-on unit prices feed into totals.

type Product struct {
	ID            uuid.UUID
	Name          string
	BasePriceHint *decimal.Decimal
}

type AddOnType string

const (
	AddOnOneTime   AddOnType = "one_time"
	AddOnPerUnit   AddOnType = "per_unit"
	AddOnPerNight  AddOnType = "per_night"
	AddOnPerPerson AddOnType = "per_person"
)

func (t AddOnType) IsValid() bool {
	switch t {
	case AddOnOneTime, AddOnPerUnit, AddOnPerNight, AddOnPerPerson:
		return true
	default:
		return false
	}
}

type AddOn struct {
	ID        uuid.UUID
	Name      string
	UnitPrice decimal.Decimal
	Type      AddOnType
}
