package storage

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
	"github.com/Samandarmister/Firmauz-bot/internal/domain/repository"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type postgresStore struct {
	db   *sql.DB
	mode repository.ReportWriteMode
}

// NewPostgresStore ulanadi va migratsiyalarni qo'llaydi
func NewPostgresStore(dsn string, mode repository.ReportWriteMode, attempts int, delay time.Duration) (repository.Store, error) {
	db, err := openPostgresWithRetry(dsn, attempts, delay)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := migratePostgres(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &postgresStore{db: db, mode: mode}, nil
}

func migratePostgres(db *sql.DB) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("migratsiya: %w", err)
	}
	return nil
}

func (p *postgresStore) Close() error { return p.db.Close() }

func (p *postgresStore) SetLanguage(ctx context.Context, userID int64, lang entity.Language) error {
	_, err := p.db.ExecContext(ctx, `
	INSERT INTO users (user_id, language) VALUES ($1, $2)
	ON CONFLICT (user_id) DO UPDATE SET language = EXCLUDED.language`, userID, string(lang))
	return err
}

func (p *postgresStore) GetLanguage(ctx context.Context, userID int64) (entity.Language, error) {
	var lang string
	err := p.db.QueryRowContext(ctx, `SELECT language FROM users WHERE user_id = $1`, userID).Scan(&lang)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.LangLatin, nil
	}
	if err != nil {
		return entity.LangLatin, err
	}
	return entity.ParseLanguage(lang), nil
}

func (p *postgresStore) CreateFirm(ctx context.Context, f entity.Firm) error {
	res, err := p.db.ExecContext(ctx, `
	INSERT INTO firms (stir, name, director, regime, ds_rate, ys_rate, qqs_rate)
	VALUES ($1,$2,$3,$4,$5,$6,$7)
	ON CONFLICT (stir) DO NOTHING`,
		f.Stir, f.Name, f.Director, string(f.Regime), f.DSRate, f.YSRate, f.QQSRate)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrAlreadyExists
	}
	return nil
}

const firmColumns = `stir, name, director, regime, ds_rate, ys_rate, qqs_rate, created_at`

func scanFirm(row interface{ Scan(...any) error }) (entity.Firm, error) {
	var f entity.Firm
	var regime string
	err := row.Scan(&f.Stir, &f.Name, &f.Director, &regime, &f.DSRate, &f.YSRate, &f.QQSRate, &f.CreatedAt)
	f.Regime = entity.Regime(regime)
	return f, err
}

func (p *postgresStore) GetFirm(ctx context.Context, stir string) (*entity.Firm, error) {
	f, err := scanFirm(p.db.QueryRowContext(ctx, `SELECT `+firmColumns+` FROM firms WHERE stir = $1`, stir))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (p *postgresStore) FirmExists(ctx context.Context, stir string) (bool, error) {
	var exists bool
	err := p.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM firms WHERE stir = $1)`, stir).Scan(&exists)
	return exists, err
}

func (p *postgresStore) UpdateFirmName(ctx context.Context, stir, name string) error {
	res, err := p.db.ExecContext(ctx, `UPDATE firms SET name = $2 WHERE stir = $1`, stir, name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (p *postgresStore) ListFirms(ctx context.Context) ([]entity.Firm, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT `+firmColumns+` FROM firms ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []entity.Firm
	for rows.Next() {
		f, err := scanFirm(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, f)
	}
	return res, rows.Err()
}

func (p *postgresStore) CountFirms(ctx context.Context) (int, error) {
	var n int
	err := p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM firms`).Scan(&n)
	return n, err
}

func (p *postgresStore) AddOwner(ctx context.Context, stir, phone string) error {
	_, err := p.db.ExecContext(ctx, `
	INSERT INTO firm_owners (stir, phone) VALUES ($1, $2)
	ON CONFLICT (stir, phone) DO NOTHING`, stir, phone)
	return err
}

func (p *postgresStore) ReplaceOwnerPhone(ctx context.Context, stir, phone string) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM firm_owners WHERE stir = $1`, stir); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO firm_owners (stir, phone) VALUES ($1, $2)`, stir, phone); err != nil {
		return err
	}
	return tx.Commit()
}

func (p *postgresStore) OwnerPhones(ctx context.Context, stir string) ([]string, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT phone FROM firm_owners WHERE stir = $1 ORDER BY id`, stir)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []string
	for rows.Next() {
		var phone string
		if err := rows.Scan(&phone); err != nil {
			return nil, err
		}
		res = append(res, phone)
	}
	return res, rows.Err()
}

func (p *postgresStore) SavePayroll(ctx context.Context, r entity.PayrollReport) (int64, error) {
	employees, err := json.Marshal(r.Employees)
	if err != nil {
		return 0, fmt.Errorf("xodimlar json: %w", err)
	}
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()
	if p.mode == repository.WriteUpsert {
		if _, err := tx.ExecContext(ctx, `DELETE FROM payroll_reports WHERE stir = $1 AND month = $2`, r.Stir, string(r.Month)); err != nil {
			return 0, err
		}
	}
	var id int64
	err = tx.QueryRowContext(ctx, `
	INSERT INTO payroll_reports (stir, month, firm_name, employee_count, employees, period_pay, total_pay, tax)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id`,
		r.Stir, string(r.Month), r.FirmName, r.EmployeeCount, string(employees), r.PeriodPay, r.TotalPay, r.Tax).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, tx.Commit()
}

func (p *postgresStore) SaveTurnover(ctx context.Context, r entity.TurnoverReport) (int64, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()
	if p.mode == repository.WriteUpsert {
		if _, err := tx.ExecContext(ctx, `DELETE FROM turnover_reports WHERE kind = $1 AND stir = $2 AND month = $3`,
			string(r.Kind), r.Stir, string(r.Month)); err != nil {
			return 0, err
		}
	}
	var id int64
	err = tx.QueryRowContext(ctx, `
	INSERT INTO turnover_reports (kind, stir, month, firm_name, director, rate, year_to_date, month_amount, tax)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9) RETURNING id`,
		string(r.Kind), r.Stir, string(r.Month), r.FirmName, r.Director, r.Rate, r.YearToDate, r.MonthAmount, r.Tax).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, tx.Commit()
}

func (p *postgresStore) LatestPayroll(ctx context.Context, stir string, month entity.Month) (*entity.PayrollReport, error) {
	var r entity.PayrollReport
	var m string
	var employees []byte
	err := p.db.QueryRowContext(ctx, `
	SELECT id, stir, month, firm_name, employee_count, employees, period_pay, total_pay, tax, created_at
	FROM payroll_reports WHERE stir = $1 AND month = $2
	ORDER BY id DESC LIMIT 1`, stir, string(month)).
		Scan(&r.ID, &r.Stir, &m, &r.FirmName, &r.EmployeeCount, &employees, &r.PeriodPay, &r.TotalPay, &r.Tax, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	r.Month = entity.Month(m)
	if err := json.Unmarshal(employees, &r.Employees); err != nil {
		return nil, fmt.Errorf("xodimlar json: %w", err)
	}
	return &r, nil
}

func (p *postgresStore) LatestTurnover(ctx context.Context, kind entity.TaxType, stir string, month entity.Month) (*entity.TurnoverReport, error) {
	var r entity.TurnoverReport
	var k, m string
	err := p.db.QueryRowContext(ctx, `
	SELECT id, kind, stir, month, firm_name, director, rate, year_to_date, month_amount, tax, created_at
	FROM turnover_reports WHERE kind = $1 AND stir = $2 AND month = $3
	ORDER BY id DESC LIMIT 1`, string(kind), stir, string(month)).
		Scan(&r.ID, &k, &r.Stir, &m, &r.FirmName, &r.Director, &r.Rate, &r.YearToDate, &r.MonthAmount, &r.Tax, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	r.Kind = entity.TaxType(k)
	r.Month = entity.Month(m)
	return &r, nil
}

func (p *postgresStore) CountReports(ctx context.Context, stir string, month entity.Month) (int, error) {
	var n int
	err := p.db.QueryRowContext(ctx, `
	SELECT (SELECT COUNT(*) FROM payroll_reports WHERE stir = $1 AND month = $2)
	     + (SELECT COUNT(*) FROM turnover_reports WHERE stir = $1 AND month = $2)`, stir, string(month)).Scan(&n)
	return n, err
}

func (p *postgresStore) DeleteReports(ctx context.Context, stir string, month entity.Month) (int64, error) {
	var total int64
	for _, table := range []string{"payroll_reports", "turnover_reports"} {
		res, err := p.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE stir = $1 AND month = $2`, stir, string(month))
		if err != nil {
			return total, err
		}
		n, _ := res.RowsAffected()
		total += n
	}
	return total, nil
}

func (p *postgresStore) UpsertFile(ctx context.Context, fp entity.FilePointer) error {
	_, err := p.db.ExecContext(ctx, `
	INSERT INTO files (stir, tax_type, month, kind, path, updated_at)
	VALUES ($1,$2,$3,$4,$5,NOW())
	ON CONFLICT (stir, tax_type, month, kind) DO UPDATE SET path = EXCLUDED.path, updated_at = NOW()`,
		fp.Stir, string(fp.TaxType), string(fp.Month), string(fp.Kind), fp.Path)
	return err
}

func scanFile(row interface{ Scan(...any) error }) (entity.FilePointer, error) {
	var fp entity.FilePointer
	var tax, month, kind string
	err := row.Scan(&fp.Stir, &tax, &month, &kind, &fp.Path, &fp.UpdatedAt)
	fp.TaxType, fp.Month, fp.Kind = entity.TaxType(tax), entity.Month(month), entity.FileKind(kind)
	return fp, err
}

func (p *postgresStore) GetFile(ctx context.Context, stir string, tax entity.TaxType, month entity.Month, kind entity.FileKind) (*entity.FilePointer, error) {
	fp, err := scanFile(p.db.QueryRowContext(ctx, `
	SELECT stir, tax_type, month, kind, path, updated_at FROM files
	WHERE stir = $1 AND tax_type = $2 AND month = $3 AND kind = $4`,
		stir, string(tax), string(month), string(kind)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &fp, nil
}

func (p *postgresStore) ListFiles(ctx context.Context, stir string, month entity.Month) ([]entity.FilePointer, error) {
	rows, err := p.db.QueryContext(ctx, `
	SELECT stir, tax_type, month, kind, path, updated_at FROM files
	WHERE stir = $1 AND month = $2 ORDER BY path`, stir, string(month))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []entity.FilePointer
	for rows.Next() {
		fp, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, fp)
	}
	return res, rows.Err()
}

func (p *postgresStore) DeleteFiles(ctx context.Context, stir string, month entity.Month) (int64, error) {
	res, err := p.db.ExecContext(ctx, `DELETE FROM files WHERE stir = $1 AND month = $2`, stir, string(month))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (p *postgresStore) UpsertFirmDocs(ctx context.Context, d entity.FirmDocs) error {
	_, err := p.db.ExecContext(ctx, `
	INSERT INTO firm_docs (stir, pdf1, pdf2, pfx) VALUES ($1,$2,$3,$4)
	ON CONFLICT (stir) DO UPDATE SET pdf1 = EXCLUDED.pdf1, pdf2 = EXCLUDED.pdf2, pfx = EXCLUDED.pfx`,
		d.Stir, d.PDF1, d.PDF2, d.PFX)
	return err
}

func (p *postgresStore) GetFirmDocs(ctx context.Context, stir string) (*entity.FirmDocs, error) {
	var d entity.FirmDocs
	err := p.db.QueryRowContext(ctx, `SELECT stir, pdf1, pdf2, pfx FROM firm_docs WHERE stir = $1`, stir).
		Scan(&d.Stir, &d.PDF1, &d.PDF2, &d.PFX)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (p *postgresStore) RecordAccess(ctx context.Context, a entity.AccessAttempt) error {
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now()
	}
	_, err := p.db.ExecContext(ctx, `INSERT INTO access_log (stir, phone, user_id, ts) VALUES ($1,$2,$3,$4)`,
		a.Stir, a.Phone, a.UserID, a.Timestamp.Unix())
	return err
}

func (p *postgresStore) CountAccessSince(ctx context.Context, stir string, userID int64, since time.Time) (int, error) {
	var n int
	err := p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM access_log WHERE stir = $1 AND user_id = $2 AND ts > $3`,
		stir, userID, since.Unix()).Scan(&n)
	return n, err
}

func (p *postgresStore) PurgeAccessBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := p.db.ExecContext(ctx, `DELETE FROM access_log WHERE ts <= $1`, cutoff.Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (p *postgresStore) LogDownload(ctx context.Context, d entity.DownloadLog) error {
	_, err := p.db.ExecContext(ctx, `INSERT INTO download_log (user_id, phone, stir, file_path) VALUES ($1,$2,$3,$4)`,
		d.UserID, d.Phone, d.Stir, d.FilePath)
	return err
}
