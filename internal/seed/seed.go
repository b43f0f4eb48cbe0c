package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"racephoto-marketplace/internal/domain"
)

type photoSeed struct {
	Class   string
	StartNo string
	Price   int64
	URL     string
	Recaps  []string
}

// Apply inserts basic seed data for manual testing. It is idempotent: the
// super admin upserts by email and the demo event is only created once.
func Apply(ctx context.Context, pool *pgxpool.Pool, adminEmail, adminPassword string) error {
	adminID, err := ensureSuperAdmin(ctx, pool, adminEmail, adminPassword)
	if err != nil {
		return fmt.Errorf("ensure super admin: %w", err)
	}

	eventID, created, err := ensureEvent(ctx, pool, "Demo Fun Run 10K", "Jakarta", adminID)
	if err != nil {
		return fmt.Errorf("ensure event: %w", err)
	}
	if !created {
		return nil
	}

	for _, class := range []string{"5K", "10K"} {
		if err := insertEventClass(ctx, pool, eventID, class); err != nil {
			return fmt.Errorf("insert event class %s: %w", class, err)
		}
	}

	photos := []photoSeed{
		{
			Class:   "10K",
			StartNo: "1042",
			Price:   25000,
			URL:     "/uploads/photos/demo-1042.jpg",
			Recaps:  []string{"demo-1042-v1.jpg", "demo-1042-v2.jpg"},
		},
		{
			Class:   "10K",
			StartNo: "1187",
			Price:   25000,
			URL:     "/uploads/photos/demo-1187.jpg",
			Recaps:  []string{"demo-1187-v1.jpg"},
		},
		{
			Class:   "5K",
			StartNo: "204",
			Price:   20000,
			URL:     "/uploads/photos/demo-204.jpg",
		},
	}

	for _, p := range photos {
		if err := insertPhoto(ctx, pool, eventID, adminID, p); err != nil {
			return fmt.Errorf("insert photo %s: %w", p.StartNo, err)
		}
	}

	return nil
}

func ensureSuperAdmin(ctx context.Context, pool *pgxpool.Pool, email, password string) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	const q = `
INSERT INTO users (name, email, password_hash, role)
VALUES ('Super Admin', $1, $2, $3)
ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role
RETURNING id
`
	var id int64
	if err := pool.QueryRow(ctx, q, email, string(hash), domain.RoleSuperAdmin).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// ensureEvent reports whether the event was created by this call so Apply can
// skip the demo photos on reruns. Events have no natural unique key, so the
// existence check stands in for ON CONFLICT.
func ensureEvent(ctx context.Context, pool *pgxpool.Pool, name, location string, createdBy int64) (int64, bool, error) {
	var id int64
	err := pool.QueryRow(ctx, `SELECT id FROM events WHERE name = $1 LIMIT 1`, name).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, false, err
	}

	err = pool.QueryRow(ctx, `
INSERT INTO events (name, location, date, created_by)
VALUES ($1, $2, CURRENT_DATE, $3)
RETURNING id
`, name, location, createdBy).Scan(&id)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func insertEventClass(ctx context.Context, pool *pgxpool.Pool, eventID int64, name string) error {
	_, err := pool.Exec(ctx, `
INSERT INTO event_classes (event_id, name)
VALUES ($1, $2)
ON CONFLICT (event_id, name) DO NOTHING
`, eventID, name)
	return err
}

func insertPhoto(ctx context.Context, pool *pgxpool.Pool, eventID, createdBy int64, p photoSeed) error {
	var photoID int64
	err := pool.QueryRow(ctx, `
INSERT INTO photos (event_id, class, start_no, price, url, created_by)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`, eventID, p.Class, p.StartNo, p.Price, p.URL, createdBy).Scan(&photoID)
	if err != nil {
		return err
	}

	for i, file := range p.Recaps {
		_, err := pool.Exec(ctx, `
INSERT INTO recap_photos (photo_id, variant_number, file_path)
VALUES ($1, $2, $3)
ON CONFLICT (photo_id, variant_number) DO NOTHING
`, photoID, i+1, file)
		if err != nil {
			return err
		}
	}
	return nil
}
