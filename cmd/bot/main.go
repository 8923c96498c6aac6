package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Samandarmister/Firmauz-bot/config"
	"github.com/Samandarmister/Firmauz-bot/internal/delivery/httpapi"
	"github.com/Samandarmister/Firmauz-bot/internal/delivery/telegram"
	"github.com/Samandarmister/Firmauz-bot/internal/infrastructure/storage"
	"github.com/Samandarmister/Firmauz-bot/internal/usecase"
	"github.com/Samandarmister/Firmauz-bot/pkg/logger"
)

func main() {
	initDefaultTimezone()

	// Logger ni ishga tushirish
	logger.Init()
	logger.InfoLogger.Println("🚀 Ilova ishga tushmoqda...")

	// Konfiguratsiyani yuklash
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Konfiguratsiya yuklanmadi: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if cfg.AllowEmptySecrets && isEmptyOrDisabled(cfg.TelegramToken) {
		logger.InfoLogger.Println("Secretlar yetishmayapti (TELEGRAM_BOT_TOKEN). Bot vaqtincha ishga tushmaydi.")
		<-sigChan
		return
	}

	// 1. Store
	store, err := storage.Open(storage.Options{
		Driver:          cfg.StorageDriver,
		DatabaseURL:     cfg.DatabaseURL,
		SQLitePath:      cfg.SQLitePath,
		DataPath:        cfg.DataPath,
		WriteMode:       cfg.WriteMode,
		ConnectAttempts: cfg.ConnectRetries,
		ConnectDelay:    cfg.ConnectDelay,
	})
	if err != nil {
		log.Fatalf("❌ Store ochilmadi: %v", err)
	}
	defer store.Close()

	// 2. Use cases
	layout := usecase.NewLayout(cfg.DataPath)
	admins := make(map[int64]bool, len(cfg.AdminIDs))
	for _, id := range cfg.AdminIDs {
		admins[id] = true
	}
	firms := usecase.NewFirmUseCase(store, layout)
	deps := telegram.Deps{
		Users:   store,
		Firms:   firms,
		Reports: usecase.NewReportUseCase(store, layout),
		Uploads: usecase.NewUploadUseCase(store, layout),
		Docs:    usecase.NewDocumentUseCase(store, layout),
		Access: usecase.NewAccessUseCase(store, usecase.AccessPolicy{
			MaxChecks: cfg.AccessMaxChecks,
			Window:    cfg.AccessWindow,
			Admins:    admins,
		}),
		Layout:          layout,
		Admins:          cfg.AdminIDs,
		JanitorInterval: cfg.JanitorInterval,
		TempMaxAge:      cfg.TempMaxAge,
		Workers:         cfg.Workers,
	}
	logger.InfoLogger.Printf("✅ Use cases tayyor (ma'lumotlar: %s, adminlar: %d)", layout.Root, len(cfg.AdminIDs))

	// 3. Telegram bot handler
	botHandler, err := telegram.NewBotHandler(cfg.TelegramToken, deps)
	if err != nil {
		log.Fatalf("❌ Bot handler yaratilmadi: %v", err)
	}
	logger.InfoLogger.Printf("✅ Telegram bot tayyor: @%s", botHandler.GetBotUsername())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var srv *http.Server
	if cfg.HTTPAddr != "" {
		srv = httpapi.NewServer(cfg.HTTPAddr, httpapi.NewRouter(firms, botHandler))
		go func() {
			logger.InfoLogger.Printf("🌐 HTTP %s da tinglanmoqda", cfg.HTTPAddr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.ErrorLogger.Printf("❌ HTTP server xatosi: %v", err)
			}
		}()
	}

	// Botni alohida goroutine da ishga tushirish
	go func() {
		if err := botHandler.Start(ctx); err != nil && err != context.Canceled {
			logger.ErrorLogger.Printf("❌ Bot xatosi: %v", err)
		}
	}()

	logger.InfoLogger.Println("🤖 Bot ishlayapti. To'xtatish uchun Ctrl+C ni bosing.")

	// Signal kutish
	<-sigChan
	logger.InfoLogger.Println("⏳ To'xtatish signali qabul qilindi...")

	cancel()
	if srv != nil {
		shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.ErrorLogger.Printf("❌ HTTP server to'xtatilmadi: %v", err)
		}
		stop()
	}
	logger.InfoLogger.Println("✅ Bot to'xtatildi.")
}

func initDefaultTimezone() {
	const tzName = "Asia/Tashkent"
	if loc, err := time.LoadLocation(tzName); err == nil {
		time.Local = loc
		return
	}
	time.Local = time.FixedZone(tzName, 5*60*60)
}

func isEmptyOrDisabled(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return true
	}
	return strings.EqualFold(value, "disabled")
}
