package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	ordersvc "racephoto-marketplace/internal/service/order"
)

type createOrderRequest struct {
	Email    string            `json:"email" binding:"required,email"`
	Whatsapp string            `json:"whatsapp"`
	Items    []cartItemRequest `json:"items" binding:"required,min=1,dive"`
}

type cartItemRequest struct {
	PhotoID int64 `json:"photoId" binding:"required"`
	Variant int   `json:"variant"`
}

func createOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and at least one cart item are required"})
			return
		}

		items := make([]ordersvc.CartItem, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, ordersvc.CartItem{PhotoID: item.PhotoID, Variant: item.Variant})
		}

		out, err := svc.Create(c.Request.Context(), ordersvc.CreateInput{
			Email:    req.Email,
			Whatsapp: req.Whatsapp,
			Items:    items,
		})
		if err != nil {
			writeError(c, err)
			return
		}

		resp := gin.H{"order": out.Order}
		if len(out.Skipped) > 0 {
			resp["skipped"] = out.Skipped
		}
		c.JSON(http.StatusCreated, resp)
	}
}

func getOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		order, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

// pathID parses the :id segment; on failure it writes a 400 and reports false.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
