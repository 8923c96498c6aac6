package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
	"github.com/Samandarmister/Firmauz-bot/internal/domain/repository"
)

type sqliteStore struct {
	db   *gorm.DB
	mode repository.ReportWriteMode
}

// NewSQLiteStore lokal bot.db fayli bilan ishlaydi
func NewSQLiteStore(path string, mode repository.ReportWriteMode) (repository.Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite papkasi: %w", err)
		}
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, fmt.Errorf("sqlite ochilmadi: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		// sqlite bitta yozuvchi bilan barqaror ishlaydi
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(
		&userRow{}, &firmRow{}, &ownerRow{}, &payrollRow{}, &turnoverRow{},
		&fileRow{}, &firmDocsRow{}, &accessRow{}, &downloadRow{},
	); err != nil {
		return nil, fmt.Errorf("sqlite migratsiya: %w", err)
	}
	return &sqliteStore{db: db, mode: mode}, nil
}

func (s *sqliteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.ErrNotFound
	}
	return err
}

func (s *sqliteStore) SetLanguage(ctx context.Context, userID int64, lang entity.Language) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"language"}),
	}).Create(&userRow{UserID: userID, Language: string(lang)}).Error
}

func (s *sqliteStore) GetLanguage(ctx context.Context, userID int64) (entity.Language, error) {
	var row userRow
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.LangLatin, nil
	}
	if err != nil {
		return entity.LangLatin, err
	}
	return entity.ParseLanguage(row.Language), nil
}

func firmFromRow(r firmRow) entity.Firm {
	return entity.Firm{
		Stir: r.Stir, Name: r.Name, Director: r.Director, Regime: entity.Regime(r.Regime),
		DSRate: r.DSRate, YSRate: r.YSRate, QQSRate: r.QQSRate, CreatedAt: r.CreatedAt,
	}
}

func (s *sqliteStore) CreateFirm(ctx context.Context, f entity.Firm) error {
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&firmRow{
		Stir: f.Stir, Name: f.Name, Director: f.Director, Regime: string(f.Regime),
		DSRate: f.DSRate, YSRate: f.YSRate, QQSRate: f.QQSRate,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return entity.ErrAlreadyExists
	}
	return nil
}

func (s *sqliteStore) GetFirm(ctx context.Context, stir string) (*entity.Firm, error) {
	var row firmRow
	if err := s.db.WithContext(ctx).Where("stir = ?", stir).Take(&row).Error; err != nil {
		return nil, notFound(err)
	}
	f := firmFromRow(row)
	return &f, nil
}

func (s *sqliteStore) FirmExists(ctx context.Context, stir string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&firmRow{}).Where("stir = ?", stir).Count(&n).Error
	return n > 0, err
}

func (s *sqliteStore) UpdateFirmName(ctx context.Context, stir, name string) error {
	res := s.db.WithContext(ctx).Model(&firmRow{}).Where("stir = ?", stir).Update("name", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (s *sqliteStore) ListFirms(ctx context.Context) ([]entity.Firm, error) {
	var rows []firmRow
	if err := s.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	res := make([]entity.Firm, 0, len(rows))
	for _, r := range rows {
		res = append(res, firmFromRow(r))
	}
	return res, nil
}

func (s *sqliteStore) CountFirms(ctx context.Context) (int, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&firmRow{}).Count(&n).Error
	return int(n), err
}

func (s *sqliteStore) AddOwner(ctx context.Context, stir, phone string) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&ownerRow{Stir: stir, Phone: phone}).Error
}

func (s *sqliteStore) ReplaceOwnerPhone(ctx context.Context, stir, phone string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("stir = ?", stir).Delete(&ownerRow{}).Error; err != nil {
			return err
		}
		return tx.Create(&ownerRow{Stir: stir, Phone: phone}).Error
	})
}

func (s *sqliteStore) OwnerPhones(ctx context.Context, stir string) ([]string, error) {
	var phones []string
	err := s.db.WithContext(ctx).Model(&ownerRow{}).Where("stir = ?", stir).Order("id").Pluck("phone", &phones).Error
	return phones, err
}

func (s *sqliteStore) SavePayroll(ctx context.Context, r entity.PayrollReport) (int64, error) {
	employees, err := json.Marshal(r.Employees)
	if err != nil {
		return 0, fmt.Errorf("xodimlar json: %w", err)
	}
	row := payrollRow{
		Stir: r.Stir, Month: string(r.Month), FirmName: r.FirmName, EmployeeCount: r.EmployeeCount,
		Employees: string(employees), PeriodPay: r.PeriodPay, TotalPay: r.TotalPay, Tax: r.Tax,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if s.mode == repository.WriteUpsert {
			if err := tx.Where("stir = ? AND month = ?", r.Stir, string(r.Month)).Delete(&payrollRow{}).Error; err != nil {
				return err
			}
		}
		return tx.Create(&row).Error
	})
	return row.ID, err
}

func (s *sqliteStore) SaveTurnover(ctx context.Context, r entity.TurnoverReport) (int64, error) {
	row := turnoverRow{
		Kind: string(r.Kind), Stir: r.Stir, Month: string(r.Month), FirmName: r.FirmName,
		Director: r.Director, Rate: r.Rate, YearToDate: r.YearToDate, MonthAmount: r.MonthAmount, Tax: r.Tax,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if s.mode == repository.WriteUpsert {
			if err := tx.Where("kind = ? AND stir = ? AND month = ?", row.Kind, row.Stir, row.Month).
				Delete(&turnoverRow{}).Error; err != nil {
				return err
			}
		}
		return tx.Create(&row).Error
	})
	return row.ID, err
}

func (s *sqliteStore) LatestPayroll(ctx context.Context, stir string, month entity.Month) (*entity.PayrollReport, error) {
	var row payrollRow
	err := s.db.WithContext(ctx).Where("stir = ? AND month = ?", stir, string(month)).Order("id DESC").Take(&row).Error
	if err != nil {
		return nil, notFound(err)
	}
	r := entity.PayrollReport{
		ID: row.ID, Stir: row.Stir, Month: entity.Month(row.Month), FirmName: row.FirmName,
		EmployeeCount: row.EmployeeCount, PeriodPay: row.PeriodPay, TotalPay: row.TotalPay, Tax: row.Tax,
		CreatedAt: row.CreatedAt,
	}
	if row.Employees != "" {
		if err := json.Unmarshal([]byte(row.Employees), &r.Employees); err != nil {
			return nil, fmt.Errorf("xodimlar json: %w", err)
		}
	}
	return &r, nil
}

func (s *sqliteStore) LatestTurnover(ctx context.Context, kind entity.TaxType, stir string, month entity.Month) (*entity.TurnoverReport, error) {
	var row turnoverRow
	err := s.db.WithContext(ctx).Where("kind = ? AND stir = ? AND month = ?", string(kind), stir, string(month)).
		Order("id DESC").Take(&row).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &entity.TurnoverReport{
		ID: row.ID, Kind: entity.TaxType(row.Kind), Stir: row.Stir, Month: entity.Month(row.Month),
		FirmName: row.FirmName, Director: row.Director, Rate: row.Rate, YearToDate: row.YearToDate,
		MonthAmount: row.MonthAmount, Tax: row.Tax, CreatedAt: row.CreatedAt,
	}, nil
}

func (s *sqliteStore) CountReports(ctx context.Context, stir string, month entity.Month) (int, error) {
	var p, t int64
	db := s.db.WithContext(ctx)
	if err := db.Model(&payrollRow{}).Where("stir = ? AND month = ?", stir, string(month)).Count(&p).Error; err != nil {
		return 0, err
	}
	if err := db.Model(&turnoverRow{}).Where("stir = ? AND month = ?", stir, string(month)).Count(&t).Error; err != nil {
		return 0, err
	}
	return int(p + t), nil
}

func (s *sqliteStore) DeleteReports(ctx context.Context, stir string, month entity.Month) (int64, error) {
	db := s.db.WithContext(ctx)
	p := db.Where("stir = ? AND month = ?", stir, string(month)).Delete(&payrollRow{})
	if p.Error != nil {
		return 0, p.Error
	}
	t := db.Where("stir = ? AND month = ?", stir, string(month)).Delete(&turnoverRow{})
	if t.Error != nil {
		return p.RowsAffected, t.Error
	}
	return p.RowsAffected + t.RowsAffected, nil
}

func (s *sqliteStore) UpsertFile(ctx context.Context, fp entity.FilePointer) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "stir"}, {Name: "tax_type"}, {Name: "month"}, {Name: "kind"}},
		DoUpdates: clause.AssignmentColumns([]string{"path", "updated_at"}),
	}).Create(&fileRow{
		Stir: fp.Stir, TaxType: string(fp.TaxType), Month: string(fp.Month), Kind: string(fp.Kind),
		Path: fp.Path, UpdatedAt: time.Now(),
	}).Error
}

func fileFromRow(r fileRow) entity.FilePointer {
	return entity.FilePointer{
		Stir: r.Stir, TaxType: entity.TaxType(r.TaxType), Month: entity.Month(r.Month),
		Kind: entity.FileKind(r.Kind), Path: r.Path, UpdatedAt: r.UpdatedAt,
	}
}

func (s *sqliteStore) GetFile(ctx context.Context, stir string, tax entity.TaxType, month entity.Month, kind entity.FileKind) (*entity.FilePointer, error) {
	var row fileRow
	err := s.db.WithContext(ctx).
		Where("stir = ? AND tax_type = ? AND month = ? AND kind = ?", stir, string(tax), string(month), string(kind)).
		Take(&row).Error
	if err != nil {
		return nil, notFound(err)
	}
	fp := fileFromRow(row)
	return &fp, nil
}

func (s *sqliteStore) ListFiles(ctx context.Context, stir string, month entity.Month) ([]entity.FilePointer, error) {
	var rows []fileRow
	if err := s.db.WithContext(ctx).Where("stir = ? AND month = ?", stir, string(month)).Order("path").Find(&rows).Error; err != nil {
		return nil, err
	}
	res := make([]entity.FilePointer, 0, len(rows))
	for _, r := range rows {
		res = append(res, fileFromRow(r))
	}
	return res, nil
}

func (s *sqliteStore) DeleteFiles(ctx context.Context, stir string, month entity.Month) (int64, error) {
	res := s.db.WithContext(ctx).Where("stir = ? AND month = ?", stir, string(month)).Delete(&fileRow{})
	return res.RowsAffected, res.Error
}

func (s *sqliteStore) UpsertFirmDocs(ctx context.Context, d entity.FirmDocs) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&firmDocsRow{Stir: d.Stir, PDF1: d.PDF1, PDF2: d.PDF2, PFX: d.PFX}).Error
}

func (s *sqliteStore) GetFirmDocs(ctx context.Context, stir string) (*entity.FirmDocs, error) {
	var row firmDocsRow
	if err := s.db.WithContext(ctx).Where("stir = ?", stir).Take(&row).Error; err != nil {
		return nil, notFound(err)
	}
	return &entity.FirmDocs{Stir: row.Stir, PDF1: row.PDF1, PDF2: row.PDF2, PFX: row.PFX}, nil
}

func (s *sqliteStore) RecordAccess(ctx context.Context, a entity.AccessAttempt) error {
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now()
	}
	return s.db.WithContext(ctx).Create(&accessRow{Stir: a.Stir, Phone: a.Phone, UserID: a.UserID, TS: a.Timestamp.Unix()}).Error
}

func (s *sqliteStore) CountAccessSince(ctx context.Context, stir string, userID int64, since time.Time) (int, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&accessRow{}).
		Where("stir = ? AND user_id = ? AND ts > ?", stir, userID, since.Unix()).Count(&n).Error
	return int(n), err
}

func (s *sqliteStore) PurgeAccessBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("ts <= ?", cutoff.Unix()).Delete(&accessRow{})
	return res.RowsAffected, res.Error
}

func (s *sqliteStore) LogDownload(ctx context.Context, d entity.DownloadLog) error {
	return s.db.WithContext(ctx).Create(&downloadRow{UserID: d.UserID, Phone: d.Phone, Stir: d.Stir, FilePath: d.FilePath}).Error
}
