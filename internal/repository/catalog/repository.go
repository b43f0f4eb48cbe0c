package catalog

import (
	"context"
	"time"

	"racephoto-marketplace/internal/domain"
)

// SearchFilter narrows photo search; zero values mean "any".
type SearchFilter struct {
	EventID int64
	StartNo string
	Class   string
}

type Repository interface {
	ListEvents(ctx context.Context) ([]domain.Event, error)
	ListEventClasses(ctx context.Context, eventID int64) ([]domain.EventClass, error)
	SearchPhotos(ctx context.Context, filter SearchFilter) ([]domain.Photo, error)
}

// Ingest is the write side used by the bulk importer.
type Ingest interface {
	EnsureEvent(ctx context.Context, name, location string, date time.Time) (int64, error)
	InsertPhoto(ctx context.Context, photo domain.Photo) (int64, error)
}
