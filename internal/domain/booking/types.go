package booking

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// ProductType distinguishes per-night stays from fixed-date events. Events
// occupy a single inventory day and are priced once, not per night.
type ProductType string

const (
	ProductRoom  ProductType = "room"
	ProductEvent ProductType = "event"
)

func (p ProductType) String() string {
	return string(p)
}

func (p ProductType) IsValid() bool {
	switch p {
	case ProductRoom, ProductEvent:
		return true
	default:
		return false
	}
}
