package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"payroll/internal/api"
	"payroll/internal/config"
	"payroll/internal/metrics"
	"payroll/internal/model"
	"payroll/internal/service"
	"payroll/internal/storage"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// 初始化配置
	cfg, err := config.ParseConfig()
	if err != nil {
		logrus.WithError(err).Error("Failed to parse config")
		return
	}

	// 初始化logger
	logrus.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.WithError(err).WithField("log_level", cfg.LogLevel).Warn("unknown log level, falling back to info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	store, err := model.InitRecordStore(&cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise record store")
		return
	}

	if local, ok := store.Backend().(storage.LocalBaseDirProvider); ok {
		logrus.WithField("data_dir", local.LocalBaseDir()).Info("records stored on local disk")
	}

	directory := service.NewDirectory(store)
	ledger := service.NewLedger(store)

	initCtx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	if _, err := directory.EnsureBootstrapAdmin(initCtx, cfg.BootstrapAdminLogin, cfg.BootstrapAdminPassword, cfg.BootstrapAdminName); err != nil {
		cancelInit()
		logrus.WithError(err).Error("failed to seed administrator")
		return
	}
	if err := ledger.Init(initCtx); err != nil {
		cancelInit()
		logrus.WithError(err).Error("failed to initialise payroll ledger")
		return
	}
	cancelInit()

	httpHandler, err := api.NewHTTPHandler(cfg, directory, ledger, metrics.New())
	if err != nil {
		logrus.WithError(err).Error("failed to initialise http handler")
		return
	}

	// 设置Gin模式
	gin.SetMode(gin.ReleaseMode)
	r := api.NewRouter(httpHandler)

	serverHost := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
	httpServer := &http.Server{
		Addr:              serverHost,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logrus.WithFields(logrus.Fields{
			"host":       serverHost,
			"store_type": cfg.StoreType,
		}).Info("服务器启动")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("服务器启动失败")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("server shutdown failed")
	}
}
