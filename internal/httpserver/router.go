package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"racephoto-marketplace/internal/domain"
	"racephoto-marketplace/internal/repository/catalog"
	accountsvc "racephoto-marketplace/internal/service/account"
	ordersvc "racephoto-marketplace/internal/service/order"
	settlementsvc "racephoto-marketplace/internal/service/settlement"
)

// OrderService creates and reads orders.
type OrderService interface {
	Create(ctx context.Context, in ordersvc.CreateInput) (*ordersvc.CreateOutput, error)
	Get(ctx context.Context, id int64) (*domain.Order, error)
}

// PaymentService drives the payment lifecycle against the gateway.
type PaymentService interface {
	CreateToken(ctx context.Context, orderID int64) (*settlementsvc.TokenOutput, error)
	HandleNotification(ctx context.Context, raw []byte) (*settlementsvc.NotificationResult, error)
	OverrideStatus(ctx context.Context, orderID int64, status string) (*settlementsvc.NotificationResult, error)
	ResendReceipt(ctx context.Context, orderID int64) error
}

// AccountService handles admin authentication, balances and withdrawals.
type AccountService interface {
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	Balance(ctx context.Context, userID int64) (*accountsvc.BalanceOutput, error)
	RequestWithdrawal(ctx context.Context, userID int64, in accountsvc.WithdrawalInput) (*domain.WithdrawalRequest, error)
	ListAllWithdrawals(ctx context.Context) ([]domain.WithdrawalRequest, error)
	ApproveWithdrawal(ctx context.Context, id, processedBy int64, notes string) (*domain.WithdrawalRequest, error)
	RejectWithdrawal(ctx context.Context, id, processedBy int64, notes string) (*domain.WithdrawalRequest, error)
}

// GatewayInfo is the public payment-gateway description served to clients.
type GatewayInfo struct {
	Provider   string `json:"provider"`
	Production bool   `json:"production"`
}

// Deps carries the services the router depends on.
type Deps struct {
	OrderSvc   OrderService
	PaymentSvc PaymentService
	AccountSvc AccountService
	Catalog    catalog.Repository
	Gateway    GatewayInfo
}

func (d Deps) validate() error {
	if d.OrderSvc == nil {
		return errors.New("order service is required")
	}
	if d.PaymentSvc == nil {
		return errors.New("payment service is required")
	}
	if d.AccountSvc == nil {
		return errors.New("account service is required")
	}
	if d.Catalog == nil {
		return errors.New("catalog repository is required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")

	api.POST("/orders", createOrderHandler(deps.OrderSvc))
	api.GET("/orders/:id", getOrderHandler(deps.OrderSvc))

	api.GET("/payment", paymentInfoHandler(deps.Gateway))
	api.POST("/payment/create-token", createTokenHandler(deps.PaymentSvc))
	api.POST("/payment/notification", notificationHandler(deps.PaymentSvc))

	api.POST("/auth/login", loginHandler(deps.AccountSvc))

	api.GET("/events", listEventsHandler(deps.Catalog))
	api.GET("/events/:id/classes", listEventClassesHandler(deps.Catalog))
	api.GET("/photos", searchPhotosHandler(deps.Catalog))

	authed := api.Group("", authMiddleware(deps.AccountSvc))
	authed.GET("/auth/me", meHandler)
	authed.PUT("/orders/:id/status", overrideStatusHandler(deps.PaymentSvc))
	authed.POST("/orders/:id/send-email", resendReceiptHandler(deps.PaymentSvc))
	authed.GET("/admin/balance", balanceHandler(deps.AccountSvc))
	authed.POST("/admin/withdrawals", requestWithdrawalHandler(deps.AccountSvc))

	super := authed.Group("", superAdminMiddleware())
	super.GET("/admin/withdrawals", listWithdrawalsHandler(deps.AccountSvc))
	super.POST("/admin/withdrawals/:id/approve", approveWithdrawalHandler(deps.AccountSvc))
	super.POST("/admin/withdrawals/:id/reject", rejectWithdrawalHandler(deps.AccountSvc))

	return router, nil
}

// writeError translates domain errors into HTTP status codes. Anything not
// recognized is a 500 with a generic body so internals do not leak.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrInvalidOrderRef),
		errors.Is(err, domain.ErrUnknownGatewayStatus),
		errors.Is(err, domain.ErrNotSuccessful),
		errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrOrderNotPending):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
