package domain

import "time"

// Event is a race the catalog's photos belong to.
type Event struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location,omitempty"`
	Date      time.Time `json:"date"`
	CreatedBy *int64    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// EventClass is a race category (e.g. 10K, half marathon) within an event.
type EventClass struct {
	ID      int64  `json:"id"`
	EventID int64  `json:"eventId"`
	Name    string `json:"name"`
}

// Photo is a catalog entry tagged with the runner's start number. CreatedBy
// is the account credited on sale; it may be NULL for legacy rows, in which
// case the event's creator is credited instead.
type Photo struct {
	ID        int64     `json:"id"`
	EventID   int64     `json:"eventId"`
	Class     string    `json:"class"`
	StartNo   string    `json:"startNo"`
	Price     int64     `json:"price"`
	URL       string    `json:"url"`
	CreatedBy *int64    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`

	EventName string `json:"eventName,omitempty"`
}

// RecapPhoto is a numbered alternate rendering of a photo. Variant numbers
// are unique per photo.
type RecapPhoto struct {
	ID            int64  `json:"id"`
	PhotoID       int64  `json:"photoId"`
	VariantNumber int    `json:"variantNumber"`
	FilePath      string `json:"filePath"`
}
