package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"simple-ocr-server/config"
	"simple-ocr-server/internal/api/httpserver"
	"simple-ocr-server/internal/api/telegram"
	"simple-ocr-server/internal/container"
	"simple-ocr-server/internal/infrastructure/imaging"
	"simple-ocr-server/internal/infrastructure/tesseract"
	"simple-ocr-server/internal/infrastructure/vision"
	"simple-ocr-server/internal/logging"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	level, err := tesseract.ParseLevel(cfg.Level)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Собираем движок распознавания
	engineOpts := []tesseract.Option{
		tesseract.WithLanguages(cfg.Languages...),
		tesseract.WithLevel(level),
	}
	if cfg.Preprocess {
		if !vision.Available() {
			log.Printf("Warning: OCR_PREPROCESS is set but the binary is built without the gocv tag, images go to the engine unchanged")
		}
		engineOpts = append(engineOpts, tesseract.WithPreprocessor(vision.NewGoCVPreprocessor()))
	}
	engine := tesseract.NewEngine(engineOpts...)

	appContainer := container.New(imaging.NewDecoder(imaging.WithMaxPixels(cfg.MaxPixels)), engine, logging.NewLogger("ocr"))

	// Единственная фатальная ошибка после старта — невозможность занять адрес
	ln, err := httpserver.Listen(cfg.Port, cfg.SocketPath)
	if err != nil {
		log.Fatalf("Failed to bind %s: %v", cfg.Addr(), err)
	}

	handler := httpserver.NewHandler(appContainer.OCRService, logging.NewLogger("http"), cfg.MaxBodyBytes)
	server := httpserver.NewServer(ln, handler)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(cfg.TelegramToken, appContainer.OCRService, logging.NewLogger("telegram"))
		if err != nil {
			log.Printf("Warning: telegram bot disabled: %v", err)
		} else {
			go func() {
				if err := bot.Run(ctx); err != nil {
					log.Printf("Bot error: %v", err)
				}
			}()
			log.Println("Telegram bot is running...")
		}
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- server.Serve() }()

	log.Printf("OCR server listening on %s (engine=%s, languages=%v, level=%s)", server.Addr(), engine.Name(), cfg.Languages, cfg.Level)

	select {
	case err := <-serveErr:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
		return
	case <-ctx.Done():
	}

	log.Printf("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		log.Printf("Error during shutdown: %v", err)
	}
	if cfg.SocketPath != "" {
		_ = os.Remove(cfg.SocketPath)
	}
	log.Printf("Shutdown complete")
}
