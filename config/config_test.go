package config

import (
	"testing"
	"time"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/repository"
)

func TestParseAdminIDs(t *testing.T) {
	cases := []struct {
		raw     string
		want    []int64
		wantErr bool
	}{
		{"", nil, false},
		{"123", []int64{123}, false},
		{" 1, 2 ,3,", []int64{1, 2, 3}, false},
		{"1,abc", nil, true},
	}
	for _, tc := range cases {
		got, err := parseAdminIDs(tc.raw)
		if (err != nil) != tc.wantErr {
			t.Errorf("parseAdminIDs(%q): xato kutilgan=%v, natija=%v", tc.raw, tc.wantErr, err)
			continue
		}
		if len(got) != len(tc.want) {
			t.Errorf("parseAdminIDs(%q): kutilgan=%v, natija=%v", tc.raw, tc.want, got)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("parseAdminIDs(%q): kutilgan=%v, natija=%v", tc.raw, tc.want, got)
			}
		}
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_BOOL", "yes")
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BAD_INT", "x")

	if !getEnvBool("TEST_BOOL", false) {
		t.Error("yes -> true bo'lishi kerak")
	}
	if getEnvBool("TEST_BOOL_MISSING", false) {
		t.Error("bo'sh qiymat standartni qaytarishi kerak")
	}
	if got := getEnvInt("TEST_INT", 1); got != 42 {
		t.Errorf("getEnvInt: kutilgan=42, natija=%d", got)
	}
	if got := getEnvInt("TEST_BAD_INT", 7); got != 7 {
		t.Errorf("noto'g'ri son standartga qaytishi kerak, natija=%d", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("ADMIN_IDS", "10,20")
	t.Setenv("DATA_PATH", "")
	t.Setenv("SQLITE_PATH", "")
	t.Setenv("REPORT_WRITE_MODE", "")
	t.Setenv("ACCESS_MAX_CHECKS", "")
	t.Setenv("ACCESS_BLOCK_SECONDS", "")
	t.Setenv("JANITOR_INTERVAL_MINUTES", "")
	t.Setenv("TEMP_FILE_MAX_AGE_HOURS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load xato: %v", err)
	}
	if cfg.DataPath != "data" {
		t.Errorf("DataPath: kutilgan=data, natija=%q", cfg.DataPath)
	}
	if cfg.SQLitePath != "data/bot.db" {
		t.Errorf("SQLitePath: natija=%q", cfg.SQLitePath)
	}
	if cfg.WriteMode != repository.WriteAppend {
		t.Errorf("WriteMode: natija=%q", cfg.WriteMode)
	}
	if cfg.AccessMaxChecks != 10 || cfg.AccessWindow != 24*time.Hour {
		t.Errorf("access: natija=%d %v", cfg.AccessMaxChecks, cfg.AccessWindow)
	}
	if cfg.JanitorInterval != time.Hour || cfg.TempMaxAge != 24*time.Hour {
		t.Errorf("janitor: natija=%v %v", cfg.JanitorInterval, cfg.TempMaxAge)
	}
	if len(cfg.AdminIDs) != 2 {
		t.Errorf("AdminIDs: natija=%v", cfg.AdminIDs)
	}
}

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("ALLOW_EMPTY_SECRETS", "false")
	t.Setenv("ADMIN_IDS", "")
	if _, err := Load(); err == nil {
		t.Error("token bo'lmasa xato kutilgan")
	}

	t.Setenv("ALLOW_EMPTY_SECRETS", "true")
	if _, err := Load(); err != nil {
		t.Errorf("ALLOW_EMPTY_SECRETS bilan xato bo'lmasligi kerak: %v", err)
	}
}
