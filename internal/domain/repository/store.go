package repository

import (
	"context"
	"time"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
)

// ReportWriteMode bir oy uchun qayta yuborilgan hisobotlar bilan ishlash usuli
type ReportWriteMode string

const (
	// WriteAppend har bir tasdiq yangi qator qo'shadi
	WriteAppend ReportWriteMode = "append"
	// WriteUpsert (stir, oy) uchun eski qatorlar almashtiriladi
	WriteUpsert ReportWriteMode = "upsert"
)

// ParseReportWriteMode noma'lum qiymat append bo'ladi
func ParseReportWriteMode(raw string) ReportWriteMode {
	if ReportWriteMode(raw) == WriteUpsert {
		return WriteUpsert
	}
	return WriteAppend
}

// UserRepository foydalanuvchi tili
type UserRepository interface {
	SetLanguage(ctx context.Context, userID int64, lang entity.Language) error
	// GetLanguage topilmasa lotin qaytaradi
	GetLanguage(ctx context.Context, userID int64) (entity.Language, error)
}

// FirmRepository firmalar va egalari
type FirmRepository interface {
	CreateFirm(ctx context.Context, firm entity.Firm) error
	GetFirm(ctx context.Context, stir string) (*entity.Firm, error)
	FirmExists(ctx context.Context, stir string) (bool, error)
	UpdateFirmName(ctx context.Context, stir, name string) error
	ListFirms(ctx context.Context) ([]entity.Firm, error)
	CountFirms(ctx context.Context) (int, error)

	AddOwner(ctx context.Context, stir, phone string) error
	ReplaceOwnerPhone(ctx context.Context, stir, phone string) error
	OwnerPhones(ctx context.Context, stir string) ([]string, error)
}

// ReportRepository uch turdagi oylik hisobotlar
type ReportRepository interface {
	SavePayroll(ctx context.Context, r entity.PayrollReport) (int64, error)
	SaveTurnover(ctx context.Context, r entity.TurnoverReport) (int64, error)
	LatestPayroll(ctx context.Context, stir string, month entity.Month) (*entity.PayrollReport, error)
	LatestTurnover(ctx context.Context, kind entity.TaxType, stir string, month entity.Month) (*entity.TurnoverReport, error)
	CountReports(ctx context.Context, stir string, month entity.Month) (int, error)
	DeleteReports(ctx context.Context, stir string, month entity.Month) (int64, error)
}

// FileRepository fayl ko'rsatkichlari
type FileRepository interface {
	UpsertFile(ctx context.Context, fp entity.FilePointer) error
	GetFile(ctx context.Context, stir string, tax entity.TaxType, month entity.Month, kind entity.FileKind) (*entity.FilePointer, error)
	ListFiles(ctx context.Context, stir string, month entity.Month) ([]entity.FilePointer, error)
	DeleteFiles(ctx context.Context, stir string, month entity.Month) (int64, error)

	UpsertFirmDocs(ctx context.Context, docs entity.FirmDocs) error
	GetFirmDocs(ctx context.Context, stir string) (*entity.FirmDocs, error)
}

// AccessRepository urinishlar va yuklab olishlar jurnali
type AccessRepository interface {
	RecordAccess(ctx context.Context, a entity.AccessAttempt) error
	// CountAccessSince since dan keyingi (qat'iy katta) urinishlar soni
	CountAccessSince(ctx context.Context, stir string, userID int64, since time.Time) (int, error)
	// PurgeAccessBefore cutoff va undan eski yozuvlarni o'chiradi
	PurgeAccessBefore(ctx context.Context, cutoff time.Time) (int64, error)
	LogDownload(ctx context.Context, d entity.DownloadLog) error
}

// Store barcha repository'lar birgalikda
type Store interface {
	UserRepository
	FirmRepository
	ReportRepository
	FileRepository
	AccessRepository
	Close() error
}
