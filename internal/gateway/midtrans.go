package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

// MidtransAdapter implements Adapter against Midtrans Snap (token creation)
// and the Core API (webhook verification).
type MidtransAdapter struct {
	snap   snap.Client
	core   coreapi.Client
	logger *log.Logger
}

func NewMidtrans(serverKey string, production bool, logger *log.Logger) *MidtransAdapter {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	a := &MidtransAdapter{logger: logger}
	a.snap.New(serverKey, env)
	a.core.New(serverKey, env)
	return a
}

// CreateTransaction requests a Snap token. The midtrans client does not take
// a context; the enclosing request deadline covers the call.
func (a *MidtransAdapter) CreateTransaction(_ context.Context, req TransactionRequest) (*Token, error) {
	items := make([]midtrans.ItemDetails, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, midtrans.ItemDetails{
			ID:    item.ID,
			Name:  item.Name,
			Price: item.Price,
			Qty:   1,
		})
	}

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderRef,
			GrossAmt: req.GrossAmount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			Email: req.Email,
			Phone: req.Phone,
		},
		Items: &items,
	}

	resp, midErr := a.snap.CreateTransaction(snapReq)
	if midErr != nil {
		a.logger.Printf("midtrans: create transaction ref=%s error=%v", req.OrderRef, midErr)
		return nil, fmt.Errorf("midtrans create transaction: %w", midErr)
	}
	return &Token{Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

// VerifyNotification authenticates a webhook by re-checking the transaction
// status with the gateway. Only the order_id field of the raw payload is
// read, and only to address the status lookup; every trusted field comes
// from the gateway's response.
func (a *MidtransAdapter) VerifyNotification(_ context.Context, raw []byte) (*Notification, error) {
	var payload struct {
		OrderID string `json:"order_id"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode notification: %w", err)
	}
	if payload.OrderID == "" {
		return nil, fmt.Errorf("notification missing order_id")
	}

	status, midErr := a.core.CheckTransaction(payload.OrderID)
	if midErr != nil {
		a.logger.Printf("midtrans: check transaction ref=%s error=%v", payload.OrderID, midErr)
		return nil, fmt.Errorf("midtrans check transaction: %w", midErr)
	}

	return &Notification{
		OrderRef:          status.OrderID,
		TransactionStatus: status.TransactionStatus,
		FraudStatus:       status.FraudStatus,
	}, nil
}
