package httpserver

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"racephoto-marketplace/internal/domain"
)

func paymentInfoHandler(info GatewayInfo) gin.HandlerFunc {
	if info.Provider == "" {
		info.Provider = "midtrans"
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, info)
	}
}

type createTokenRequest struct {
	OrderID int64 `json:"orderId" binding:"required"`
}

func createTokenHandler(svc PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createTokenRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderId is required"})
			return
		}

		out, err := svc.CreateToken(c.Request.Context(), req.OrderID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// notificationHandler receives gateway webhooks. The raw body goes to the
// service untouched; verification against the gateway happens there. A
// duplicate delivery still answers 200 so the gateway stops retrying, while
// malformed or unverifiable payloads answer 4xx.
func notificationHandler(svc PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
			return
		}

		res, err := svc.HandleNotification(c.Request.Context(), raw)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orderId": res.OrderID,
			"status":  res.Status,
			"applied": res.Applied,
		})
	}
}

type overrideStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func overrideStatusHandler(svc PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		var req overrideStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
			return
		}
		if _, ok := domain.ParseOrderStatus(req.Status); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}

		res, err := svc.OverrideStatus(c.Request.Context(), id, req.Status)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orderId": res.OrderID,
			"status":  res.Status,
			"applied": res.Applied,
		})
	}
}

func resendReceiptHandler(svc PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		if err := svc.ResendReceipt(c.Request.Context(), id); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"sent": true})
	}
}
