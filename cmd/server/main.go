package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yourusername/store-assistant-bot/config"
	"github.com/yourusername/store-assistant-bot/internal/delivery/httpapi"
	"github.com/yourusername/store-assistant-bot/internal/delivery/telegram"
	"github.com/yourusername/store-assistant-bot/internal/domain/repository"
	"github.com/yourusername/store-assistant-bot/internal/infrastructure/gemini"
	"github.com/yourusername/store-assistant-bot/internal/infrastructure/parser"
	"github.com/yourusername/store-assistant-bot/internal/infrastructure/postgres"
	"github.com/yourusername/store-assistant-bot/internal/infrastructure/sheets"
	"github.com/yourusername/store-assistant-bot/internal/infrastructure/storage"
	"github.com/yourusername/store-assistant-bot/internal/infrastructure/togetherai"
	"github.com/yourusername/store-assistant-bot/internal/usecase"
	"github.com/yourusername/store-assistant-bot/pkg/logger"
)

func main() {
	logger.Init()
	logger.InfoLogger.Println("🚀 Запуск ассистента магазина...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Конфигурация не загружена: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1. Completion service
	var aiRepo repository.AIRepository
	switch cfg.AIProvider {
	case "gemini":
		geminiClient, err := gemini.NewClient(cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("❌ Gemini клиент не создан: %v", err)
		}
		aiRepo = geminiClient
		logger.InfoLogger.Println("✅ AI клиент готов (Gemini)")
	default:
		aiRepo = togetherai.NewClient(cfg.TogetherAPIKey)
		logger.InfoLogger.Println("✅ AI клиент готов (Together AI)")
	}

	// 2. Spreadsheet client, when anything needs it
	var sheetsClient *sheets.Client
	if cfg.ServiceAccountJSON != "" {
		sheetsClient, err = sheets.NewClient(ctx, cfg.ServiceAccountJSON)
		if err != nil {
			log.Fatalf("❌ Google Sheets клиент не создан: %v", err)
		}
		logger.InfoLogger.Println("✅ Google Sheets клиент готов")
	}

	// 3. Product catalog behind the refresh cache
	var productSource repository.ProductRepository
	if cfg.ProductXLSX != "" {
		productSource = parser.NewExcelCatalog(cfg.ProductXLSX)
		logger.InfoLogger.Printf("✅ Каталог: локальный файл %s", cfg.ProductXLSX)
	} else {
		productSource = sheetsClient.ProductStore(cfg.ProductSheetID)
		logger.InfoLogger.Println("✅ Каталог: Google Sheets")
	}
	catalog := storage.NewCatalogCache(productSource)

	// 4. Order sink
	var orderStore repository.OrderRepository
	if cfg.DatabaseURL != "" {
		pgStore, err := postgres.NewOrderStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("❌ Postgres не подключен: %v", err)
		}
		defer pgStore.Close()
		orderStore = pgStore
		logger.InfoLogger.Println("✅ Заказы: Postgres")
	} else {
		orderStore = sheetsClient.OrderStore(cfg.OrderSheetID)
		logger.InfoLogger.Println("✅ Заказы: Google Sheets")
	}

	// 5. Office status, optional
	var officeStore repository.OfficeRepository
	if sheetsClient != nil && cfg.OfficeSheetID != "" {
		officeStore = sheetsClient.OfficeStore(cfg.OfficeSheetID)
		logger.InfoLogger.Println("✅ Статус офиса: Google Sheets")
	}

	// 6. Sessions, texts, engine
	sessionStore := storage.NewMemorySessionStore()
	texts := usecase.LoadTexts(cfg.TextsDir)
	intent := usecase.NewIntentClassifier(aiRepo)
	dialog := usecase.NewDialogUseCase(aiRepo, catalog, orderStore, officeStore, sessionStore, intent, texts)
	logger.InfoLogger.Println("✅ Диалоговый движок готов")

	// 7. HTTP delivery
	router := httpapi.NewRouter(dialog, cfg.CORSOrigin)
	server := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	go func() {
		logger.InfoLogger.Printf("🌐 HTTP сервер слушает %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ HTTP сервер: %v", err)
		}
	}()

	// 8. Telegram delivery, optional
	if cfg.TelegramToken != "" {
		botHandler, err := telegram.NewBotHandler(cfg.TelegramToken, dialog)
		if err != nil {
			log.Fatalf("❌ Telegram бот не создан: %v", err)
		}
		go botHandler.Start(ctx)
		logger.InfoLogger.Println("✅ Telegram бот запущен")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	logger.InfoLogger.Println("⏳ Получен сигнал остановки...")

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.ErrorLogger.Printf("Ошибка остановки HTTP сервера: %v", err)
	}
	logger.InfoLogger.Println("✅ Сервис остановлен.")
}
