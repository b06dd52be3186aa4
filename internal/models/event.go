package models

import "time"

type Event struct {
	ID               int64
	Title            string
	Category         string
	City             string
	Venue            string
	StartsAt         time.Time
	EndsAt           time.Time
	PriceUSD         float64
	AvailableTickets int
	BannerURL        string
	Description      string
}

// EventFilter narrows event listings. Zero values match everything.
type EventFilter struct {
	Category string
	City     string
}
