package gateway

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"racephoto-marketplace/internal/domain"
)

// Gateway order references look like RACEPHOTO-{orderID}-{millis}. The
// millisecond suffix makes repeated token requests for the same order unique
// at the gateway; stale references simply expire there.
var orderRefPattern = regexp.MustCompile(`^RACEPHOTO-(\d+)-\d+$`)

// OrderRef derives a fresh globally-unique gateway reference for an order.
func OrderRef(orderID int64) string {
	return fmt.Sprintf("RACEPHOTO-%d-%d", orderID, time.Now().UnixMilli())
}

// ParseOrderRef recovers the local order ID from a gateway reference.
// Anything not matching the expected pattern is rejected before any lookup.
func ParseOrderRef(ref string) (int64, error) {
	m := orderRefPattern.FindStringSubmatch(ref)
	if m == nil {
		return 0, domain.ErrInvalidOrderRef
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, domain.ErrInvalidOrderRef
	}
	return id, nil
}
