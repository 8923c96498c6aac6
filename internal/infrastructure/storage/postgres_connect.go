package storage

import (
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	postgresConnectAttemptsDefault = 20
	postgresConnectDelayDefault    = 2 * time.Second
)

type postgresDSNInfo struct {
	User     string
	Password string
	Host     string
	Port     string
	DBName   string
	SSLMode  string
}

// openPostgresWithRetry konteynerda baza kechroq ko'tarilishini kutadi.
// Baza umuman yo'q bo'lsa bir marta yaratib ko'radi.
func openPostgresWithRetry(dsn string, attempts int, delay time.Duration) (*sql.DB, error) {
	if attempts <= 0 {
		attempts = postgresConnectAttemptsDefault
	}
	if delay <= 0 {
		delay = postgresConnectDelayDefault
	}

	var lastErr error
	created := false
	for attempt := 1; attempt <= attempts; attempt++ {
		db, err := sql.Open("postgres", dsn)
		if err == nil {
			if err = db.Ping(); err == nil {
				return db, nil
			}
			_ = db.Close()
		}
		lastErr = err
		if !created && isDatabaseMissingError(err) {
			if createErr := ensurePostgresDatabase(dsn); createErr == nil {
				created = true
				log.Printf("🗄 postgres: baza yaratildi, qayta ulanilmoqda")
				continue
			} else {
				lastErr = createErr
			}
		}
		if attempt < attempts {
			log.Printf("⏳ postgres: ulanish %d/%d muvaffaqiyatsiz: %v", attempt, attempts, err)
			time.Sleep(delay)
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("postgres ulanmadi")
	}
	return nil, lastErr
}

func ensurePostgresDatabase(dsn string) error {
	info, ok := parsePostgresDSNInfo(dsn)
	if !ok || info.DBName == "" || info.Host == "" || info.User == "" {
		return fmt.Errorf("dsn ichida baza ma'lumoti topilmadi")
	}
	baseDSN := info.buildURL("postgres")
	err := createPostgresDatabase(baseDSN, info.DBName)
	if err == nil {
		return nil
	}
	if adminDSN := strings.TrimSpace(os.Getenv("POSTGRES_ADMIN_DSN")); adminDSN != "" && adminDSN != baseDSN {
		return createPostgresDatabase(adminDSN, info.DBName)
	}
	return err
}

func parsePostgresDSNInfo(dsn string) (postgresDSNInfo, bool) {
	trimmed := strings.TrimSpace(dsn)
	if trimmed == "" {
		return postgresDSNInfo{}, false
	}
	if strings.HasPrefix(trimmed, "postgres://") || strings.HasPrefix(trimmed, "postgresql://") {
		return parsePostgresURL(trimmed)
	}
	return parsePostgresKeyValue(trimmed)
}

func parsePostgresURL(raw string) (postgresDSNInfo, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return postgresDSNInfo{}, false
	}
	info := postgresDSNInfo{
		Host:    u.Hostname(),
		Port:    u.Port(),
		DBName:  strings.TrimPrefix(u.Path, "/"),
		SSLMode: u.Query().Get("sslmode"),
	}
	if u.User != nil {
		info.User = u.User.Username()
		info.Password, _ = u.User.Password()
	}
	info.applyDefaults()
	return info, true
}

func parsePostgresKeyValue(raw string) (postgresDSNInfo, bool) {
	info := postgresDSNInfo{}
	for _, part := range strings.Fields(raw) {
		key, val, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		val = strings.Trim(val, `"'`)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "user", "username":
			info.User = val
		case "password":
			info.Password = val
		case "host":
			info.Host = val
		case "port":
			info.Port = val
		case "dbname", "database":
			info.DBName = val
		case "sslmode":
			info.SSLMode = val
		}
	}
	if info.Host == "" && info.User == "" && info.DBName == "" {
		return postgresDSNInfo{}, false
	}
	info.applyDefaults()
	return info, true
}

func (p *postgresDSNInfo) applyDefaults() {
	if p.Port == "" {
		p.Port = "5432"
	}
	if p.SSLMode == "" {
		p.SSLMode = "disable"
	}
}

func (p postgresDSNInfo) buildURL(dbName string) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(p.Host, p.Port),
		Path:   "/" + dbName,
	}
	if p.User != "" {
		if p.Password != "" {
			u.User = url.UserPassword(p.User, p.Password)
		} else {
			u.User = url.User(p.User)
		}
	}
	q := u.Query()
	if p.SSLMode != "" {
		q.Set("sslmode", p.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func createPostgresDatabase(dsn, dbName string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return err
	}
	if _, err := db.Exec("CREATE DATABASE " + quoteIdentifier(dbName)); err != nil && !isDatabaseExistsError(err) {
		return err
	}
	return nil
}

func isDatabaseMissingError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "does not exist") && strings.Contains(msg, "database")
}

func isDatabaseExistsError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already exists") && strings.Contains(msg, "database")
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
