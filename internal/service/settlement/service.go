package settlement

import (
	"context"
	"errors"
	"io"
	"log"
	"strconv"

	"racephoto-marketplace/internal/domain"
	"racephoto-marketplace/internal/gateway"
	"racephoto-marketplace/internal/mailer"
	orderrepo "racephoto-marketplace/internal/repository/order"
	settlementrepo "racephoto-marketplace/internal/repository/settlement"
)

// Service orchestrates the payment lifecycle: gateway token creation,
// webhook reconciliation, manual status overrides, and receipt sending.
type Service struct {
	orders      orderRepo
	settlements settlementRepo
	gateway     gateway.Adapter
	mailer      mailer.Mailer
	logger      *log.Logger
}

type orderRepo interface {
	GetByIDWithItems(ctx context.Context, id int64) (*domain.Order, error)
	SaveSnapToken(ctx context.Context, id int64, token string) error
}

type settlementRepo interface {
	Reconcile(ctx context.Context, orderID int64, target domain.OrderStatus) (*settlementrepo.Result, error)
}

func New(orders orderrepo.Repository, settlements settlementrepo.Repository, gw gateway.Adapter, m mailer.Mailer, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		orders:      orders,
		settlements: settlements,
		gateway:     gw,
		mailer:      m,
		logger:      logger,
	}
}

type TokenOutput struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirectUrl"`
}

// CreateToken obtains a payment token for a pending order. Every call derives
// a fresh gateway reference, so a retry after a gateway timeout cannot collide
// with the earlier attempt. The order is only written to after the gateway
// call succeeds.
func (s *Service) CreateToken(ctx context.Context, orderID int64) (*TokenOutput, error) {
	order, err := s.orders.GetByIDWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	items := make([]gateway.LineItem, 0, len(order.Items))
	for _, item := range order.Items {
		startNo := item.SnapStartNo
		if startNo == "" {
			startNo = "N/A"
		}
		items = append(items, gateway.LineItem{
			ID:    strconv.FormatInt(item.ID, 10),
			Name:  "Foto #" + startNo,
			Price: item.Price,
		})
	}

	token, err := s.gateway.CreateTransaction(ctx, gateway.TransactionRequest{
		OrderRef:    gateway.OrderRef(order.ID),
		GrossAmount: order.TotalPrice,
		Email:       order.Email,
		Phone:       order.Whatsapp,
		Items:       items,
	})
	if err != nil {
		return nil, err
	}

	if err := s.orders.SaveSnapToken(ctx, order.ID, token.Token); err != nil {
		return nil, err
	}

	return &TokenOutput{Token: token.Token, RedirectURL: token.RedirectURL}, nil
}

// NotificationResult reports how a webhook was handled.
type NotificationResult struct {
	OrderID int64
	Applied bool
	Status  domain.OrderStatus
}

// HandleNotification processes a gateway webhook. The payload is verified
// through the gateway before anything else happens, the local order ID comes
// from the verified reference, and the transition plus balance credits run in
// one reconciliation transaction. A duplicate delivery for an already-settled
// order is a no-op, not an error, so the gateway stops retrying.
func (s *Service) HandleNotification(ctx context.Context, raw []byte) (*NotificationResult, error) {
	notif, err := s.gateway.VerifyNotification(ctx, raw)
	if err != nil {
		return nil, err
	}

	orderID, err := gateway.ParseOrderRef(notif.OrderRef)
	if err != nil {
		return nil, err
	}

	target, err := mapGatewayStatus(notif.TransactionStatus, notif.FraudStatus)
	if err != nil {
		s.logger.Printf("settlement: order_id=%d unmapped gateway status=%q fraud=%q", orderID, notif.TransactionStatus, notif.FraudStatus)
		return nil, err
	}

	res, err := s.settlements.Reconcile(ctx, orderID, target)
	if err != nil {
		return nil, err
	}

	if res.Applied && res.Status == domain.OrderSuccess {
		s.sendReceipt(ctx, orderID)
	}

	return &NotificationResult{OrderID: orderID, Applied: res.Applied, Status: res.Status}, nil
}

// OverrideStatus is the operator-triggered manual transition. It goes through
// the same reconciliation and side effects as the webhook path.
func (s *Service) OverrideStatus(ctx context.Context, orderID int64, status string) (*NotificationResult, error) {
	target, ok := domain.ParseOrderStatus(status)
	if !ok {
		return nil, errors.New("invalid status")
	}

	res, err := s.settlements.Reconcile(ctx, orderID, target)
	if err != nil {
		return nil, err
	}

	if res.Applied && res.Status == domain.OrderSuccess {
		s.sendReceipt(ctx, orderID)
	}

	return &NotificationResult{OrderID: orderID, Applied: res.Applied, Status: res.Status}, nil
}

// ResendReceipt re-sends the receipt for an already-settled order.
func (s *Service) ResendReceipt(ctx context.Context, orderID int64) error {
	order, err := s.orders.GetByIDWithItems(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status != domain.OrderSuccess {
		return domain.ErrNotSuccessful
	}
	return s.mailer.SendReceipt(ctx, order)
}

// sendReceipt is best effort: a mail failure never affects the settlement
// that triggered it. Operators can resend later.
func (s *Service) sendReceipt(ctx context.Context, orderID int64) {
	if s.mailer == nil {
		return
	}
	order, err := s.orders.GetByIDWithItems(ctx, orderID)
	if err != nil {
		s.logger.Printf("settlement: load order for receipt order_id=%d error=%v", orderID, err)
		return
	}
	if err := s.mailer.SendReceipt(ctx, order); err != nil {
		s.logger.Printf("settlement: send receipt order_id=%d error=%v", orderID, err)
	}
}

// mapGatewayStatus translates a verified gateway report into the local target
// state. capture and settlement only count when the fraud evaluation accepts
// the payment (or is absent); any other fraud outcome leaves the order
// pending until the gateway reports a final status.
func mapGatewayStatus(transactionStatus, fraudStatus string) (domain.OrderStatus, error) {
	switch transactionStatus {
	case "capture", "settlement":
		if fraudStatus == "" || fraudStatus == "accept" {
			return domain.OrderSuccess, nil
		}
		return domain.OrderPending, nil
	case "deny", "cancel", "expire":
		return domain.OrderFailed, nil
	case "pending":
		return domain.OrderPending, nil
	default:
		return "", domain.ErrUnknownGatewayStatus
	}
}
