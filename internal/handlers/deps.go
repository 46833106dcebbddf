package handlers

import (
	"go.uber.org/zap"

	"go-shop-backend/internal/config"
	"go-shop-backend/internal/orders"
	"go-shop-backend/internal/otp"
)

// Package-level collaborators, wired once from main before the router
// starts taking traffic.
var (
	cfg        *config.Config
	logger     *zap.Logger
	orderSvc   orders.Service
	orderStore *orders.GormStore
	otpSvc     *otp.Service
)

func Init(c *config.Config, l *zap.Logger, svc orders.Service, store *orders.GormStore, o *otp.Service) {
	cfg = c
	logger = l
	orderSvc = svc
	orderStore = store
	otpSvc = o
}
