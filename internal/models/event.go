package models

// Event is one detected motion occurrence, keyed by its day bucket and
// the epoch millisecond id it was captured at.
type Event struct {
	Id        string  `json:"id"`
	Day       string  `json:"day"`
	Snapshots []Media `json:"snapshots,omitempty"`
	HasVideo  bool    `json:"hasVideo"`
}

// DayEvents groups the events found under a single day bucket.
type DayEvents struct {
	Day    string  `json:"day"`
	Events []Event `json:"events"`
}

type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

func ParseOrder(s string) (Order, error) {
	switch Order(s) {
	case "", OrderAsc:
		return OrderAsc, nil
	case OrderDesc:
		return OrderDesc, nil
	}
	return "", ErrInvalidOrder
}

type Filter string

const (
	FilterNone  Filter = ""
	FilterAll   Filter = "all"
	FilterToday Filter = "today"
	FilterWeek  Filter = "week"
	FilterMonth Filter = "month"
	FilterYear  Filter = "year"
)

func ParseFilter(s string) (Filter, error) {
	switch f := Filter(s); f {
	case FilterNone, FilterAll, FilterToday, FilterWeek, FilterMonth, FilterYear:
		return f, nil
	}
	return "", ErrInvalidFilter
}
