package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/constants"
	"github.com/Samandarmister/Firmauz-bot/internal/domain/repository"
)

// Config ilovaning konfiguratsiyasi
type Config struct {
	TelegramToken     string
	AllowEmptySecrets bool
	AdminIDs          []int64

	DataPath       string
	StorageDriver  string
	DatabaseURL    string
	SQLitePath     string
	WriteMode      repository.ReportWriteMode
	ConnectRetries int
	ConnectDelay   time.Duration

	AccessMaxChecks int
	AccessWindow    time.Duration
	JanitorInterval time.Duration
	TempMaxAge      time.Duration

	HTTPAddr string
	Workers  int
}

// Load konfiguratsiyani yuklash
func Load() (*Config, error) {
	// .env faylini yuklash (mavjud bo'lsa)
	_ = godotenv.Load()

	admins, err := parseAdminIDs(os.Getenv("ADMIN_IDS"))
	if err != nil {
		return nil, fmt.Errorf("ADMIN_IDS noto'g'ri formatda: %v", err)
	}

	dataPath := strings.TrimSpace(os.Getenv("DATA_PATH"))
	if dataPath == "" {
		dataPath = constants.DefaultDataPath
	}
	sqlitePath := strings.TrimSpace(os.Getenv("SQLITE_PATH"))
	if sqlitePath == "" {
		sqlitePath = filepath.Join(dataPath, constants.SQLiteFileName)
	}

	config := &Config{
		TelegramToken:     strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		AllowEmptySecrets: getEnvBool("ALLOW_EMPTY_SECRETS", false),
		AdminIDs:          admins,
		DataPath:          dataPath,
		StorageDriver:     strings.ToLower(strings.TrimSpace(os.Getenv("STORAGE_DRIVER"))),
		DatabaseURL:       strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SQLitePath:        sqlitePath,
		WriteMode:         repository.ParseReportWriteMode(strings.ToLower(strings.TrimSpace(os.Getenv("REPORT_WRITE_MODE")))),
		ConnectRetries:    getEnvInt("POSTGRES_CONNECT_MAX_ATTEMPTS", 20),
		ConnectDelay:      time.Duration(getEnvInt("POSTGRES_CONNECT_RETRY_SECONDS", 2)) * time.Second,
		AccessMaxChecks:   getEnvInt("ACCESS_MAX_CHECKS", constants.DefaultMaxChecks),
		AccessWindow:      time.Duration(getEnvInt("ACCESS_BLOCK_SECONDS", int(constants.DefaultBlockWindow/time.Second))) * time.Second,
		JanitorInterval:   time.Duration(getEnvInt("JANITOR_INTERVAL_MINUTES", int(constants.DefaultJanitorInterval/time.Minute))) * time.Minute,
		TempMaxAge:        time.Duration(getEnvInt("TEMP_FILE_MAX_AGE_HOURS", int(constants.DefaultTempMaxAge/time.Hour))) * time.Hour,
		HTTPAddr:          strings.TrimSpace(os.Getenv("HTTP_ADDR")),
		Workers:           getEnvInt("BOT_WORKERS", 0),
	}

	// Validatsiya
	if !config.AllowEmptySecrets && config.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable bo'sh")
	}
	if config.AccessMaxChecks <= 0 {
		return nil, fmt.Errorf("ACCESS_MAX_CHECKS musbat bo'lishi kerak")
	}

	return config, nil
}

// parseAdminIDs "123, 456" -> [123 456]
func parseAdminIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q raqam emas", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func getEnvInt(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	switch strings.ToLower(value) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return defaultValue
	}
}
