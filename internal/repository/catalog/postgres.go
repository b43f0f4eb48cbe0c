package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"racephoto-marketplace/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

// NewPostgresIngest exposes the importer's write side over the same store.
func NewPostgresIngest(pool *pgxpool.Pool) Ingest {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) ListEvents(ctx context.Context) ([]domain.Event, error) {
	const q = `
SELECT id, name, COALESCE(location, ''), date, created_by, created_at
FROM events
ORDER BY date DESC, id DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Location, &e.Date, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func (r *postgresRepo) ListEventClasses(ctx context.Context, eventID int64) ([]domain.EventClass, error) {
	const q = `
SELECT id, event_id, name
FROM event_classes
WHERE event_id = $1
ORDER BY name ASC
`
	rows, err := r.pool.Query(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.EventClass
	for rows.Next() {
		var c domain.EventClass
		if err := rows.Scan(&c.ID, &c.EventID, &c.Name); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *postgresRepo) SearchPhotos(ctx context.Context, filter SearchFilter) ([]domain.Photo, error) {
	const q = `
SELECT p.id, p.event_id, p.class, p.start_no, p.price, p.url, p.created_by, p.created_at, e.name
FROM photos p
JOIN events e ON e.id = p.event_id
WHERE ($1 = 0 OR p.event_id = $1)
  AND ($2 = '' OR p.start_no = $2)
  AND ($3 = '' OR p.class = $3)
ORDER BY p.created_at DESC, p.id DESC
`
	rows, err := r.pool.Query(ctx, q, filter.EventID, filter.StartNo, filter.Class)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Photo
	for rows.Next() {
		var p domain.Photo
		if err := rows.Scan(&p.ID, &p.EventID, &p.Class, &p.StartNo, &p.Price, &p.URL, &p.CreatedBy, &p.CreatedAt, &p.EventName); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *postgresRepo) EnsureEvent(ctx context.Context, name, location string, date time.Time) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `SELECT id FROM events WHERE name = $1 LIMIT 1`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	err = r.pool.QueryRow(ctx, `
INSERT INTO events (name, location, date)
VALUES ($1, NULLIF($2, ''), $3)
RETURNING id
`, name, location, date).Scan(&id)
	return id, err
}

func (r *postgresRepo) InsertPhoto(ctx context.Context, photo domain.Photo) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
INSERT INTO photos (event_id, class, start_no, price, url, created_by)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`, photo.EventID, photo.Class, photo.StartNo, photo.Price, photo.URL, photo.CreatedBy).Scan(&id)
	return id, err
}
