package storage

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/constants"
	"github.com/Samandarmister/Firmauz-bot/internal/domain/repository"
)

// Drayverlar
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Options store tanlash sozlamalari
type Options struct {
	Driver      string
	DatabaseURL string
	SQLitePath  string
	DataPath    string
	WriteMode   repository.ReportWriteMode

	ConnectAttempts int
	ConnectDelay    time.Duration
}

// ResolveDriver bo'sh drayver uchun DSN bo'lsa postgres, aks holda sqlite
func (o Options) ResolveDriver() string {
	d := strings.ToLower(strings.TrimSpace(o.Driver))
	if d != "" {
		return d
	}
	if strings.TrimSpace(o.DatabaseURL) != "" {
		return DriverPostgres
	}
	return DriverSQLite
}

// Open sozlamalarga mos store'ni ochadi
func Open(opts Options) (repository.Store, error) {
	switch driver := opts.ResolveDriver(); driver {
	case DriverPostgres:
		if strings.TrimSpace(opts.DatabaseURL) == "" {
			return nil, fmt.Errorf("postgres uchun DATABASE_URL kerak")
		}
		store, err := NewPostgresStore(opts.DatabaseURL, opts.WriteMode, opts.ConnectAttempts, opts.ConnectDelay)
		if err != nil {
			return nil, fmt.Errorf("postgres store: %w", err)
		}
		log.Printf("🗄 store: postgres (rejim=%s)", opts.WriteMode)
		return store, nil
	case DriverSQLite:
		path := opts.SQLitePath
		if path == "" {
			dataPath := opts.DataPath
			if dataPath == "" {
				dataPath = constants.DefaultDataPath
			}
			path = filepath.Join(dataPath, constants.SQLiteFileName)
		}
		store, err := NewSQLiteStore(path, opts.WriteMode)
		if err != nil {
			return nil, err
		}
		log.Printf("🗄 store: sqlite %s (rejim=%s)", path, opts.WriteMode)
		return store, nil
	case DriverMemory:
		log.Printf("🗄 store: memory (rejim=%s) - qayta ishga tushganda ma'lumot yo'qoladi", opts.WriteMode)
		return NewMemoryStore(opts.WriteMode), nil
	default:
		return nil, fmt.Errorf("noma'lum STORAGE_DRIVER: %q", driver)
	}
}
