package gateway

import (
	"errors"
	"strings"
	"testing"

	"racephoto-marketplace/internal/domain"
)

func TestOrderRefRoundTrip(t *testing.T) {
	ref := OrderRef(42)
	if !strings.HasPrefix(ref, "RACEPHOTO-42-") {
		t.Fatalf("unexpected reference format: %s", ref)
	}
	id, err := ParseOrderRef(ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected order id 42, got %d", id)
	}
}

func TestOrderRefUniquePerCall(t *testing.T) {
	a := OrderRef(7)
	b := OrderRef(7)
	// Suffixes are millisecond timestamps; equal values would only occur on
	// same-millisecond calls, which the retry flow tolerates anyway, but the
	// format must at least allow distinct references for the same order.
	idA, errA := ParseOrderRef(a)
	idB, errB := ParseOrderRef(b)
	if errA != nil || errB != nil {
		t.Fatalf("unexpected parse errors: %v %v", errA, errB)
	}
	if idA != 7 || idB != 7 {
		t.Fatalf("expected both references to resolve to order 7, got %d and %d", idA, idB)
	}
}

func TestParseOrderRefMalformed(t *testing.T) {
	cases := []string{
		"",
		"RACEPHOTO-",
		"RACEPHOTO-abc-123",
		"RACEPHOTO-12",
		"OTHER-12-345",
		"RACEPHOTO-12-345-extra",
		"racephoto-12-345",
		"RACEPHOTO-12-",
	}
	for _, ref := range cases {
		if _, err := ParseOrderRef(ref); !errors.Is(err, domain.ErrInvalidOrderRef) {
			t.Errorf("ParseOrderRef(%q): expected ErrInvalidOrderRef, got %v", ref, err)
		}
	}
}
