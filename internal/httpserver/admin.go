package httpserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"racephoto-marketplace/internal/domain"
	accountsvc "racephoto-marketplace/internal/service/account"
)

func balanceHandler(svc AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		out, err := svc.Balance(c.Request.Context(), user.ID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

type withdrawalRequest struct {
	Amount        int64  `json:"amount" binding:"required,gt=0"`
	BankName      string `json:"bankName" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required"`
	AccountName   string `json:"accountName" binding:"required"`
}

func requestWithdrawalHandler(svc AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		var req withdrawalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount and bank details are required"})
			return
		}

		wr, err := svc.RequestWithdrawal(c.Request.Context(), user.ID, accountsvc.WithdrawalInput{
			Amount:        req.Amount,
			BankName:      req.BankName,
			AccountNumber: req.AccountNumber,
			AccountName:   req.AccountName,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"withdrawal": wr})
	}
}

func listWithdrawalsHandler(svc AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		withdrawals, err := svc.ListAllWithdrawals(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		if withdrawals == nil {
			withdrawals = []domain.WithdrawalRequest{}
		}
		c.JSON(http.StatusOK, gin.H{"withdrawals": withdrawals})
	}
}

type processWithdrawalRequest struct {
	Notes string `json:"notes"`
}

func approveWithdrawalHandler(svc AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		processWithdrawal(c, svc.ApproveWithdrawal)
	}
}

func rejectWithdrawalHandler(svc AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		processWithdrawal(c, svc.RejectWithdrawal)
	}
}

func processWithdrawal(c *gin.Context, fn func(ctx context.Context, id, processedBy int64, notes string) (*domain.WithdrawalRequest, error)) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req processWithdrawalRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
	}

	wr, err := fn(c.Request.Context(), id, user.ID, req.Notes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawal": wr})
}
