package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"simple-ocr-server/internal/infrastructure/imaging"
)

const (
	DefaultPort            = 80
	DefaultMaxBodyBytes    = 32 << 20
	DefaultMaxPixels       = imaging.DefaultMaxPixels
	DefaultShutdownTimeout = 10 * time.Second
)

type Config struct {
	Port            int
	SocketPath      string // при заданном пути сервер слушает unix-сокет вместо порта
	Languages       []string
	Level           string // word | line | para | block
	Preprocess      bool
	MaxBodyBytes    int64
	MaxPixels       int64  // предел ширина×высота декодируемого изображения
	TelegramToken   string // пустой токен отключает бота
	ShutdownTimeout time.Duration
}

// Load собирает конфигурацию: .env, переменные окружения, затем флаги --port и --path.
func Load(args []string) (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	env := &envReader{}
	cfg := &Config{
		Port:            env.getInt("PORT", DefaultPort),
		SocketPath:      os.Getenv("SOCKET_PATH"),
		Languages:       splitList(getEnv("OCR_LANGUAGES", "eng")),
		Level:           getEnv("OCR_LEVEL", "line"),
		Preprocess:      env.getBool("OCR_PREPROCESS", false),
		MaxBodyBytes:    env.getInt64("MAX_BODY_BYTES", DefaultMaxBodyBytes),
		MaxPixels:       env.getInt64("MAX_IMAGE_PIXELS", DefaultMaxPixels),
		TelegramToken:   os.Getenv("TELEGRAM_TOKEN"),
		ShutdownTimeout: env.getDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
	}
	if err := env.err(); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}

	fs := flag.NewFlagSet("simple-ocr-server", flag.ContinueOnError)
	fs.IntVar(&cfg.Port, "port", cfg.Port, "TCP port to listen on")
	fs.StringVar(&cfg.SocketPath, "path", cfg.SocketPath, "unix socket path to listen on instead of a TCP port")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.SocketPath == "" && (c.Port < 1 || c.Port > 65535) {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	}
	if c.MaxPixels <= 0 {
		return fmt.Errorf("MAX_IMAGE_PIXELS must be positive, got %d", c.MaxPixels)
	}
	if len(c.Languages) == 0 {
		return errors.New("OCR_LANGUAGES must name at least one language")
	}
	switch c.Level {
	case "word", "line", "para", "block":
	default:
		return fmt.Errorf("OCR_LEVEL must be one of word, line, para, block, got %q", c.Level)
	}
	return nil
}

// Addr описание адреса для логов
func (c *Config) Addr() string {
	if c.SocketPath != "" {
		return "unix:" + c.SocketPath
	}
	return ":" + strconv.Itoa(c.Port)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// envReader читает типизированные переменные окружения.
// Незаданная переменная даёт значение по умолчанию, заданная, но некорректная, копит ошибку.
type envReader struct {
	errs []error
}

func (e *envReader) lookup(key string) (string, bool) {
	val := strings.TrimSpace(os.Getenv(key))
	return val, val != ""
}

func (e *envReader) fail(key, kind, val string) {
	e.errs = append(e.errs, fmt.Errorf("%s: invalid %s %q", key, kind, val))
}

func (e *envReader) getInt(key string, defaultVal int) int {
	raw, ok := e.lookup(key)
	if !ok {
		return defaultVal
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		e.fail(key, "integer", raw)
		return defaultVal
	}
	return val
}

func (e *envReader) getInt64(key string, defaultVal int64) int64 {
	raw, ok := e.lookup(key)
	if !ok {
		return defaultVal
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		e.fail(key, "integer", raw)
		return defaultVal
	}
	return val
}

func (e *envReader) getBool(key string, defaultVal bool) bool {
	raw, ok := e.lookup(key)
	if !ok {
		return defaultVal
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		e.fail(key, "boolean", raw)
		return defaultVal
	}
	return val
}

func (e *envReader) getDuration(key string, defaultVal time.Duration) time.Duration {
	raw, ok := e.lookup(key)
	if !ok {
		return defaultVal
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		e.fail(key, "duration", raw)
		return defaultVal
	}
	return val
}

func (e *envReader) err() error {
	return errors.Join(e.errs...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
