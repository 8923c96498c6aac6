package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/constants"
	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
	"github.com/Samandarmister/Firmauz-bot/internal/domain/repository"
)

// AccessUseCase telefon tekshiruvi urinishlarini cheklaydi.
// Bloklash faqat vaqt filtri bilan hisoblanadi, tozalash unga ta'sir qilmaydi.
type AccessUseCase interface {
	RecordAttempt(ctx context.Context, stir, phone string, userID int64) error
	IsBlocked(ctx context.Context, stir string, userID int64) (bool, error)
	Purge(ctx context.Context) (int64, error)
	Window() time.Duration
}

// AccessPolicy cheklov sozlamalari
type AccessPolicy struct {
	MaxChecks int
	Window    time.Duration
	Admins    map[int64]bool
}

type accessUseCase struct {
	repo   repository.AccessRepository
	policy AccessPolicy
	now    func() time.Time
}

// NewAccessUseCase nol qiymatlar standartga almashtiriladi
func NewAccessUseCase(repo repository.AccessRepository, policy AccessPolicy) AccessUseCase {
	return newAccessUseCase(repo, policy, time.Now)
}

func newAccessUseCase(repo repository.AccessRepository, policy AccessPolicy, now func() time.Time) *accessUseCase {
	if policy.MaxChecks <= 0 {
		policy.MaxChecks = constants.DefaultMaxChecks
	}
	if policy.Window <= 0 {
		policy.Window = constants.DefaultBlockWindow
	}
	return &accessUseCase{repo: repo, policy: policy, now: now}
}

func (u *accessUseCase) Window() time.Duration { return u.policy.Window }

// RecordAttempt adminlar yozilmaydi
func (u *accessUseCase) RecordAttempt(ctx context.Context, stir, phone string, userID int64) error {
	if u.policy.Admins[userID] {
		return nil
	}
	a := entity.AccessAttempt{Stir: stir, Phone: phone, UserID: userID, Timestamp: u.now()}
	if err := u.repo.RecordAccess(ctx, a); err != nil {
		return fmt.Errorf("urinishni yozish: %w", err)
	}
	return nil
}

// IsBlocked oyna ichidagi urinishlar soni chegaraga yetganmi
func (u *accessUseCase) IsBlocked(ctx context.Context, stir string, userID int64) (bool, error) {
	if u.policy.Admins[userID] {
		return false, nil
	}
	since := u.now().Add(-u.policy.Window)
	n, err := u.repo.CountAccessSince(ctx, stir, userID, since)
	if err != nil {
		return false, fmt.Errorf("urinishlarni sanash: %w", err)
	}
	return n >= u.policy.MaxChecks, nil
}

func (u *accessUseCase) Purge(ctx context.Context) (int64, error) {
	cutoff := u.now().Add(-u.policy.Window)
	n, err := u.repo.PurgeAccessBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("eski urinishlarni o'chirish: %w", err)
	}
	return n, nil
}
