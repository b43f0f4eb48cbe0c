package mailer

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"gopkg.in/gomail.v2"

	"racephoto-marketplace/internal/domain"
)

// Mailer sends the purchase receipt for a settled order.
type Mailer interface {
	SendReceipt(ctx context.Context, order *domain.Order) error
}

// SMTPMailer delivers receipts over SMTP.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	logger *log.Logger
}

func NewSMTP(host string, port int, username, password, from string, logger *log.Logger) *SMTPMailer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		logger: logger,
	}
}

func (m *SMTPMailer) SendReceipt(_ context.Context, order *domain.Order) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", order.Email)
	msg.SetHeader("Subject", fmt.Sprintf("Bukti Pembelian Foto - Order #%d", order.ID))
	msg.SetBody("text/html", receiptHTML(order))

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Printf("mailer: send receipt order_id=%d to=%s error=%v", order.ID, order.Email, err)
		return err
	}
	m.logger.Printf("mailer: receipt sent order_id=%d to=%s", order.ID, order.Email)
	return nil
}

func receiptHTML(order *domain.Order) string {
	var rows strings.Builder
	for i, item := range order.Items {
		event := item.SnapEvent
		if event == "" {
			event = "Event"
		}
		startNo := item.SnapStartNo
		if startNo == "" {
			startNo = "-"
		}
		photoURL := item.RecapURL
		if photoURL == "" {
			photoURL = item.SnapPhotoURL
		}
		fmt.Fprintf(&rows, `
<tr>
  <td style="padding: 12px; border-bottom: 1px solid #eee;">%d</td>
  <td style="padding: 12px; border-bottom: 1px solid #eee;">%s</td>
  <td style="padding: 12px; border-bottom: 1px solid #eee;">%s</td>
  <td style="padding: 12px; border-bottom: 1px solid #eee;">Varian %d</td>
  <td style="padding: 12px; border-bottom: 1px solid #eee;"><a href="%s">foto</a></td>
  <td style="padding: 12px; border-bottom: 1px solid #eee; text-align: right;">%s</td>
</tr>`, i+1, event, startNo, item.Variant, photoURL, FormatIDR(item.Price))
	}

	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 640px; margin: 0 auto;">
  <h2>Terima kasih atas pembelian Anda!</h2>
  <p>Order #%d</p>
  <table style="width: 100%%; border-collapse: collapse;">
    <thead>
      <tr>
        <th style="padding: 12px; text-align: left;">No</th>
        <th style="padding: 12px; text-align: left;">Event</th>
        <th style="padding: 12px; text-align: left;">No Start</th>
        <th style="padding: 12px; text-align: left;">Varian</th>
        <th style="padding: 12px; text-align: left;">Foto</th>
        <th style="padding: 12px; text-align: right;">Harga</th>
      </tr>
    </thead>
    <tbody>%s</tbody>
  </table>
  <p style="text-align: right; font-weight: bold;">Total: %s</p>
</div>`, order.ID, rows.String(), FormatIDR(order.TotalPrice))
}

// FormatIDR renders an amount in the smallest currency unit as rupiah with
// dot thousand separators, e.g. 20000 -> "Rp 20.000".
func FormatIDR(amount int64) string {
	digits := fmt.Sprintf("%d", amount)
	negative := strings.HasPrefix(digits, "-")
	if negative {
		digits = digits[1:]
	}

	var out strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(d)
	}

	if negative {
		return "-Rp " + out.String()
	}
	return "Rp " + out.String()
}
