package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"racephoto-marketplace/internal/domain"
	settlementsvc "racephoto-marketplace/internal/service/settlement"
)

func TestPaymentInfoHandler_Defaults(t *testing.T) {
	router := newTestRouter(t, testDeps())

	req := httptest.NewRequest(http.MethodGet, "/api/payment", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"provider":"midtrans"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestCreateTokenHandler_Success(t *testing.T) {
	deps := testDeps()
	deps.PaymentSvc = &stubPaymentSvc{
		token: &settlementsvc.TokenOutput{Token: "snap-token", RedirectURL: "https://pay.example/redir"},
	}
	router := newTestRouter(t, deps)

	req := httptest.NewRequest(http.MethodPost, "/api/payment/create-token", strings.NewReader(`{"orderId":12}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"token":"snap-token"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestCreateTokenHandler_OrderNotFound(t *testing.T) {
	deps := testDeps()
	deps.PaymentSvc = &stubPaymentSvc{err: domain.ErrNotFound}
	router := newTestRouter(t, deps)

	req := httptest.NewRequest(http.MethodPost, "/api/payment/create-token", strings.NewReader(`{"orderId":99}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestCreateTokenHandler_MissingOrderID(t *testing.T) {
	router := newTestRouter(t, testDeps())

	req := httptest.NewRequest(http.MethodPost, "/api/payment/create-token", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestNotificationHandler_Settled(t *testing.T) {
	deps := testDeps()
	deps.PaymentSvc = &stubPaymentSvc{
		result: &settlementsvc.NotificationResult{OrderID: 12, Applied: true, Status: domain.OrderSuccess},
	}
	router := newTestRouter(t, deps)

	req := httptest.NewRequest(http.MethodPost, "/api/payment/notification", strings.NewReader(`{"order_id":"RACEPHOTO-12-1700000000000"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"applied":true`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

// A duplicate delivery must still answer 200 so the gateway stops retrying.
func TestNotificationHandler_DuplicateDelivery(t *testing.T) {
	deps := testDeps()
	deps.PaymentSvc = &stubPaymentSvc{
		result: &settlementsvc.NotificationResult{OrderID: 12, Applied: false, Status: domain.OrderSuccess},
	}
	router := newTestRouter(t, deps)

	req := httptest.NewRequest(http.MethodPost, "/api/payment/notification", strings.NewReader(`{"order_id":"RACEPHOTO-12-1700000000000"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"applied":false`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestNotificationHandler_BadReference(t *testing.T) {
	deps := testDeps()
	deps.PaymentSvc = &stubPaymentSvc{err: domain.ErrInvalidOrderRef}
	router := newTestRouter(t, deps)

	req := httptest.NewRequest(http.MethodPost, "/api/payment/notification", strings.NewReader(`{"order_id":"OTHER-1"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestNotificationHandler_UnknownStatus(t *testing.T) {
	deps := testDeps()
	deps.PaymentSvc = &stubPaymentSvc{err: domain.ErrUnknownGatewayStatus}
	router := newTestRouter(t, deps)

	req := httptest.NewRequest(http.MethodPost, "/api/payment/notification", strings.NewReader(`{"order_id":"RACEPHOTO-12-1700000000000"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestOverrideStatusHandler_InvalidStatus(t *testing.T) {
	deps := testDeps()
	deps.AccountSvc = &stubAccountSvc{user: &domain.User{ID: 1, Role: domain.RoleAdmin}}
	router := newTestRouter(t, deps)

	req := httptest.NewRequest(http.MethodPut, "/api/orders/12/status", strings.NewReader(`{"status":"paid"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestOverrideStatusHandler_Success(t *testing.T) {
	deps := testDeps()
	deps.AccountSvc = &stubAccountSvc{user: &domain.User{ID: 1, Role: domain.RoleAdmin}}
	deps.PaymentSvc = &stubPaymentSvc{
		result: &settlementsvc.NotificationResult{OrderID: 12, Applied: true, Status: domain.OrderSuccess},
	}
	router := newTestRouter(t, deps)

	req := httptest.NewRequest(http.MethodPut, "/api/orders/12/status", strings.NewReader(`{"status":"success"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestOverrideStatusHandler_RequiresAuth(t *testing.T) {
	router := newTestRouter(t, testDeps())

	req := httptest.NewRequest(http.MethodPut, "/api/orders/12/status", strings.NewReader(`{"status":"success"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestResendReceiptHandler_NotPaid(t *testing.T) {
	deps := testDeps()
	deps.AccountSvc = &stubAccountSvc{user: &domain.User{ID: 1, Role: domain.RoleAdmin}}
	deps.PaymentSvc = &stubPaymentSvc{resendErr: domain.ErrNotSuccessful}
	router := newTestRouter(t, deps)

	req := httptest.NewRequest(http.MethodPost, "/api/orders/12/send-email", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestResendReceiptHandler_Sent(t *testing.T) {
	deps := testDeps()
	deps.AccountSvc = &stubAccountSvc{user: &domain.User{ID: 1, Role: domain.RoleAdmin}}
	router := newTestRouter(t, deps)

	req := httptest.NewRequest(http.MethodPost, "/api/orders/12/send-email", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"sent":true`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
