package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"racephoto-marketplace/internal/domain"
	ordersvc "racephoto-marketplace/internal/service/order"
)

func TestCreateOrderHandler_Created(t *testing.T) {
	deps := testDeps()
	deps.OrderSvc = &stubOrderSvc{
		out: &ordersvc.CreateOutput{
			Order: &domain.Order{ID: 12, Email: "runner@example.com", TotalPrice: 50000, Status: domain.OrderPending},
		},
	}
	router := newTestRouter(t, deps)

	body := `{"email":"runner@example.com","items":[{"photoId":3,"variant":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"totalPrice":50000`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), `"skipped"`) {
		t.Fatalf("skipped should be omitted when empty: %s", rec.Body.String())
	}
}

func TestCreateOrderHandler_ReportsSkipped(t *testing.T) {
	deps := testDeps()
	deps.OrderSvc = &stubOrderSvc{
		out: &ordersvc.CreateOutput{
			Order:   &domain.Order{ID: 12, Email: "runner@example.com", TotalPrice: 25000},
			Skipped: []int64{99},
		},
	}
	router := newTestRouter(t, deps)

	body := `{"email":"runner@example.com","items":[{"photoId":3},{"photoId":99}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"skipped":[99]`) {
		t.Fatalf("expected skipped ids in body: %s", rec.Body.String())
	}
}

func TestCreateOrderHandler_MissingEmail(t *testing.T) {
	router := newTestRouter(t, testDeps())

	body := `{"items":[{"photoId":3}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestCreateOrderHandler_AllItemsSkipped(t *testing.T) {
	deps := testDeps()
	deps.OrderSvc = &stubOrderSvc{err: domain.ErrEmptyCart}
	router := newTestRouter(t, deps)

	body := `{"email":"runner@example.com","items":[{"photoId":99}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestGetOrderHandler_NotFound(t *testing.T) {
	deps := testDeps()
	deps.OrderSvc = &stubOrderSvc{err: domain.ErrNotFound}
	router := newTestRouter(t, deps)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/42", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestGetOrderHandler_BadID(t *testing.T) {
	router := newTestRouter(t, testDeps())

	req := httptest.NewRequest(http.MethodGet, "/api/orders/abc", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}
