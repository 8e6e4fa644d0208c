package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "prestoras-backend/internal/adapter/http"
	appmw "prestoras-backend/internal/adapter/middleware"
	"prestoras-backend/internal/adapter/repository/mysql"
	"prestoras-backend/internal/config"
	"prestoras-backend/internal/infrastructure/cache"
	"prestoras-backend/internal/infrastructure/db"
	clientUC "prestoras-backend/internal/usecase/client"
	loanUC "prestoras-backend/internal/usecase/loan"
	paymentUC "prestoras-backend/internal/usecase/payment"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	loanRepo := mysql.NewLoanRepository(gormDB)
	installmentRepo := mysql.NewInstallmentRepository(gormDB)
	paymentRepo := mysql.NewPaymentRepository(gormDB)
	clientRepo := mysql.NewClientRepository(gormDB)
	uow := mysql.NewGormUoW(gormDB)

	loanUsecase := loanUC.NewUsecase(loanRepo, installmentRepo, clientRepo, uow)
	paymentUsecase := paymentUC.NewUsecase(paymentRepo, loanRepo, uow)
	clientUsecase := clientUC.NewUsecase(clientRepo, loanRepo)

	cv := httpadp.NewValidator()
	h := httpadp.NewHandler()
	lh := httpadp.NewLoanHandler(loanUsecase, cv)
	ph := httpadp.NewPaymentHandler(paymentUsecase, cv)
	ch := httpadp.NewClientHandler(clientUsecase)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)

	api := e.Group("",
		appmw.TenancyMiddleware(),
		appmw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second),
	)
	api.POST("/loans", lh.CreateLoan)
	api.GET("/loans/:loan_id", lh.GetLoan)
	api.PATCH("/loans/:loan_id", lh.UpdateLoan)
	api.DELETE("/loans/:loan_id", lh.DeleteLoan)
	api.POST("/loans/:loan_id/penalty", lh.AdjustPenalty)
	api.POST("/loans/:loan_id/penalty/recalculate", lh.RecalculatePenalty)
	api.POST("/loans/:loan_id/refinance", lh.RefinanceLoan)
	api.POST("/payments", ph.RegisterPayment)
	api.GET("/payments/:payment_id", ph.GetPayment)
	api.GET("/clients/:client_id/classification", ch.GetClassification)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
