package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"racephoto-marketplace/internal/config"
	"racephoto-marketplace/internal/db"
	"racephoto-marketplace/internal/gateway"
	"racephoto-marketplace/internal/httpserver"
	"racephoto-marketplace/internal/mailer"
	accountrepo "racephoto-marketplace/internal/repository/account"
	catalogrepo "racephoto-marketplace/internal/repository/catalog"
	orderrepo "racephoto-marketplace/internal/repository/order"
	settlementrepo "racephoto-marketplace/internal/repository/settlement"
	accountsvc "racephoto-marketplace/internal/service/account"
	ordersvc "racephoto-marketplace/internal/service/order"
	settlementsvc "racephoto-marketplace/internal/service/settlement"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	settlementRepo := settlementrepo.NewPostgres(dbpool, logger)
	accountRepo := accountrepo.NewPostgres(dbpool, logger)
	catalogRepo := catalogrepo.NewPostgres(dbpool)

	gw := gateway.NewMidtrans(cfg.MidtransServerKey, cfg.MidtransProduction, logger)
	mail := mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom, logger)

	orderService := ordersvc.New(orderRepo)
	settlementService := settlementsvc.New(orderRepo, settlementRepo, gw, mail, logger)
	accountService := accountsvc.New(accountRepo, cfg.JWTSecret, cfg.JWTTTL)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		OrderSvc:   orderService,
		PaymentSvc: settlementService,
		AccountSvc: accountService,
		Catalog:    catalogRepo,
		Gateway:    httpserver.GatewayInfo{Provider: "midtrans", Production: cfg.MidtransProduction},
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
