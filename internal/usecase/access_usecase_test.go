package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
	"github.com/Samandarmister/Firmauz-bot/internal/domain/repository"
	"github.com/Samandarmister/Firmauz-bot/internal/infrastructure/storage"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestAccessBlocksAfterTenAttempts(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: base}
	acc := newAccessUseCase(storage.NewMemoryStore(repository.WriteAppend), AccessPolicy{MaxChecks: 10, Window: 24 * time.Hour}, clock.now)

	for i := 0; i < 10; i++ {
		clock.t = base.Add(time.Duration(i) * time.Minute)
		blocked, err := acc.IsBlocked(ctx, "302824863", 42)
		if err != nil {
			t.Fatal(err)
		}
		if blocked {
			t.Fatalf("%d-urinishda erta bloklandi", i+1)
		}
		if err := acc.RecordAttempt(ctx, "302824863", "+998900000000", 42); err != nil {
			t.Fatal(err)
		}
	}

	clock.t = base.Add(10 * time.Minute)
	if blocked, _ := acc.IsBlocked(ctx, "302824863", 42); !blocked {
		t.Fatal("11-urinish bloklanishi kerak edi")
	}
	if blocked, _ := acc.IsBlocked(ctx, "302824863", 43); blocked {
		t.Error("boshqa foydalanuvchi bloklanmasligi kerak")
	}
	if blocked, _ := acc.IsBlocked(ctx, "123456789", 42); blocked {
		t.Error("boshqa firma uchun blok bo'lmasligi kerak")
	}

	// birinchi urinish oynadan chiqdi
	clock.t = base.Add(24*time.Hour + time.Second)
	if blocked, _ := acc.IsBlocked(ctx, "302824863", 42); blocked {
		t.Fatal("24 soat 1 soniyadan keyin blok yechilishi kerak edi")
	}
}

func TestAccessAdminExempt(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore(repository.WriteAppend)
	acc := NewAccessUseCase(store, AccessPolicy{MaxChecks: 1, Admins: map[int64]bool{7: true}})
	for i := 0; i < 3; i++ {
		if err := acc.RecordAttempt(ctx, "302824863", "+998900000000", 7); err != nil {
			t.Fatal(err)
		}
	}
	n, _ := store.CountAccessSince(ctx, "302824863", 7, time.Now().Add(-time.Hour))
	if n != 0 {
		t.Errorf("admin urinishlari yozilmasligi kerak, natija=%d", n)
	}
	if blocked, _ := acc.IsBlocked(ctx, "302824863", 7); blocked {
		t.Error("admin bloklanmasligi kerak")
	}
}

func TestAccessPurgeDoesNotAffectCount(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: base}
	store := storage.NewMemoryStore(repository.WriteAppend)
	acc := newAccessUseCase(store, AccessPolicy{MaxChecks: 2, Window: time.Hour}, clock.now)

	_ = acc.RecordAttempt(ctx, "302824863", "+998900000000", 1)
	clock.t = base.Add(30 * time.Minute)
	_ = acc.RecordAttempt(ctx, "302824863", "+998900000000", 1)

	clock.t = base.Add(time.Hour)
	n, err := acc.Purge(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("1 ta eski yozuv o'chishi kerak edi, natija=%d", n)
	}
	if blocked, _ := acc.IsBlocked(ctx, "302824863", 1); blocked {
		t.Error("oynada bitta urinish qoldi, blok bo'lmasligi kerak")
	}
}

type failingAccessRepo struct{}

func (failingAccessRepo) RecordAccess(context.Context, entity.AccessAttempt) error {
	return errors.New("baza ishlamayapti")
}

func (failingAccessRepo) CountAccessSince(context.Context, string, int64, time.Time) (int, error) {
	return 0, errors.New("baza ishlamayapti")
}

func (failingAccessRepo) PurgeAccessBefore(context.Context, time.Time) (int64, error) {
	return 0, errors.New("baza ishlamayapti")
}

func (failingAccessRepo) LogDownload(context.Context, entity.DownloadLog) error {
	return nil
}

func TestAccessStorageFailureSurfaces(t *testing.T) {
	acc := NewAccessUseCase(failingAccessRepo{}, AccessPolicy{})
	blocked, err := acc.IsBlocked(context.Background(), "302824863", 5)
	if err == nil {
		t.Fatal("saqlash xatosi qaytarilishi kerak edi")
	}
	if blocked {
		t.Error("xatoda blok qiymati false bo'lishi kerak")
	}
	if err := acc.RecordAttempt(context.Background(), "302824863", "+998900000000", 5); err == nil {
		t.Error("yozish xatosi yashirildi")
	}
}
