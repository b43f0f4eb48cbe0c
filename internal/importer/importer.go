package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"racephoto-marketplace/internal/domain"
)

type CatalogWriter interface {
	EnsureEvent(ctx context.Context, name, location string, date time.Time) (int64, error)
	InsertPhoto(ctx context.Context, photo domain.Photo) (int64, error)
}

type OwnerResolver interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// CSVImporter bulk-loads event photos from a CSV export. Expected columns:
// event, class, start_no, price, url, plus optional location, date
// (YYYY-MM-DD) and owner_email.
type CSVImporter struct {
	reader  *csv.Reader
	catalog CatalogWriter
	owners  OwnerResolver
}

func NewCSVImporter(r io.Reader, catalog CatalogWriter, owners OwnerResolver) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:  csvr,
		catalog: catalog,
		owners:  owners,
	}
}

// Run parses CSV rows and inserts photos, creating events as needed.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, required := range []string{"event", "class", "start_no", "price", "url"} {
		if _, ok := index[required]; !ok {
			return 0, fmt.Errorf("missing required column %q", required)
		}
	}

	eventIDs := map[string]int64{}
	imported := 0
	line := 1

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		eventName := field(record, index, "event")
		startNo := field(record, index, "start_no")
		url := field(record, index, "url")
		if eventName == "" || startNo == "" || url == "" {
			continue
		}

		price, err := strconv.ParseInt(field(record, index, "price"), 10, 64)
		if err != nil {
			return imported, fmt.Errorf("line %d: parse price: %w", line, err)
		}

		eventID, ok := eventIDs[eventName]
		if !ok {
			date := time.Now().UTC()
			if raw := field(record, index, "date"); raw != "" {
				parsed, err := time.Parse("2006-01-02", raw)
				if err != nil {
					return imported, fmt.Errorf("line %d: parse date: %w", line, err)
				}
				date = parsed
			}
			eventID, err = i.catalog.EnsureEvent(ctx, eventName, field(record, index, "location"), date)
			if err != nil {
				return imported, fmt.Errorf("line %d: ensure event %q: %w", line, eventName, err)
			}
			eventIDs[eventName] = eventID
		}

		var ownerID *int64
		if email := field(record, index, "owner_email"); email != "" {
			owner, err := i.owners.GetByEmail(ctx, email)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return imported, fmt.Errorf("line %d: resolve owner %q: %w", line, email, err)
			}
			if owner != nil {
				ownerID = &owner.ID
			}
		}

		photo := domain.Photo{
			EventID:   eventID,
			Class:     field(record, index, "class"),
			StartNo:   startNo,
			Price:     price,
			URL:       url,
			CreatedBy: ownerID,
		}
		if _, err := i.catalog.InsertPhoto(ctx, photo); err != nil {
			return imported, fmt.Errorf("line %d: insert photo: %w", line, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}

func field(record []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
