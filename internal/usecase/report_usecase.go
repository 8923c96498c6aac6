package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/constants"
	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
	"github.com/Samandarmister/Firmauz-bot/internal/domain/repository"
	"github.com/Samandarmister/Firmauz-bot/internal/infrastructure/i18n"
	"github.com/Samandarmister/Firmauz-bot/internal/infrastructure/spreadsheet"
)

// ReportUseCase oylik hisobotlarni saqlash, ko'rsatish va o'chirish
type ReportUseCase interface {
	CommitPayroll(ctx context.Context, rec spreadsheet.PayrollRecord) (CommitResult, error)
	CommitTurnover(ctx context.Context, kind entity.TaxType, rec spreadsheet.TurnoverRecord) (CommitResult, error)
	PreviewPayroll(lang entity.Language, rec spreadsheet.PayrollRecord) string
	PreviewTurnover(lang entity.Language, kind entity.TaxType, rec spreadsheet.TurnoverRecord) (string, error)
	// Summary bazadagi oxirgi hisobot matni. Hisobot yo'q bo'lsa found=false.
	Summary(ctx context.Context, lang entity.Language, firm entity.Firm, tax entity.TaxType, month entity.Month) (text string, found bool, err error)
	// Files egasiga yuboriladigan fayllar: 1 va 2-Excel (tanlangan yozuvda, bo'lmasa boshqasida), keyin html
	Files(ctx context.Context, stir string, tax entity.TaxType, month entity.Month, lang entity.Language) ([]string, error)
	Delete(ctx context.Context, stir string, month entity.Month) (DeleteResult, error)
	// Seed qo'lda kiritish uchun Excel faylni o'qiydi
	Seed(ctx context.Context, tax entity.TaxType, path string, lang entity.Language) entity.Result[*Seed]
}

// CommitResult FilesErr bo'lsa hisobot saqlangan, lekin Excel fayllari yaratilmagan
type CommitResult struct {
	ReportID int64
	FilesErr error
}

// DeleteResult o'chirish natijasi
type DeleteResult struct {
	FilesRemoved int
	FileErrors   []string
	Reports      int64
	Pointers     int64
}

type reportUseCase struct {
	store      repository.Store
	layout     Layout
	taxPercent int64
	now        func() time.Time
}

// NewReportUseCase yangi ReportUseCase
func NewReportUseCase(store repository.Store, layout Layout) ReportUseCase {
	return &reportUseCase{
		store:      store,
		layout:     layout,
		taxPercent: constants.PayrollTaxPercent,
		now:        time.Now,
	}
}

func (u *reportUseCase) CommitPayroll(ctx context.Context, rec spreadsheet.PayrollRecord) (CommitResult, error) {
	report := entity.NewPayrollReport(rec.Stir, rec.Month, rec.FirmName, rec.Employees, u.taxPercent)
	id, err := u.store.SavePayroll(ctx, report)
	if err != nil {
		return CommitResult{}, fmt.Errorf("daromad hisobotini saqlash: %w", err)
	}
	latin, cyr := u.layout.StagePaths(rec.Stir, entity.TaxDaromad, rec.Month, entity.StageExcel1)
	res := CommitResult{ReportID: id}
	if err := spreadsheet.GeneratePayroll(rec, latin, cyr); err != nil {
		log.Printf("❌ Excel yaratishda xato: stir=%s oy=%s err=%v", rec.Stir, rec.Month, err)
		res.FilesErr = err
		return res, nil
	}
	res.FilesErr = u.pointExcel1(ctx, rec.Stir, entity.TaxDaromad, rec.Month, latin, cyr)
	return res, nil
}

func (u *reportUseCase) CommitTurnover(ctx context.Context, kind entity.TaxType, rec spreadsheet.TurnoverRecord) (CommitResult, error) {
	report, err := entity.NewTurnoverReport(kind, rec.Stir, rec.Month, rec.FirmName, rec.Director, rec.Rate, rec.YearToDate, rec.MonthAmount)
	if err != nil {
		return CommitResult{}, fmt.Errorf("%s hisoboti: %w", kind, err)
	}
	id, err := u.store.SaveTurnover(ctx, report)
	if err != nil {
		return CommitResult{}, fmt.Errorf("%s hisobotini saqlash: %w", kind, err)
	}
	latin, cyr := u.layout.StagePaths(rec.Stir, kind, rec.Month, entity.StageExcel1)
	res := CommitResult{ReportID: id}
	if err := spreadsheet.GenerateTurnover(kind, rec, latin, cyr); err != nil {
		log.Printf("❌ Excel yaratishda xato: stir=%s tur=%s oy=%s err=%v", rec.Stir, kind, rec.Month, err)
		res.FilesErr = err
		return res, nil
	}
	res.FilesErr = u.pointExcel1(ctx, rec.Stir, kind, rec.Month, latin, cyr)
	return res, nil
}

func (u *reportUseCase) pointExcel1(ctx context.Context, stir string, tax entity.TaxType, month entity.Month, latin, cyr string) error {
	now := u.now()
	for kind, path := range map[entity.FileKind]string{
		entity.FileExcel1Latin:    latin,
		entity.FileExcel1Cyrillic: cyr,
	} {
		fp := entity.FilePointer{Stir: stir, TaxType: tax, Month: month, Kind: kind, Path: path, UpdatedAt: now}
		if err := u.store.UpsertFile(ctx, fp); err != nil {
			return fmt.Errorf("fayl ko'rsatkichi (%s): %w", kind, err)
		}
	}
	return nil
}

func (u *reportUseCase) PreviewPayroll(lang entity.Language, rec spreadsheet.PayrollRecord) string {
	r := entity.NewPayrollReport(rec.Stir, rec.Month, rec.FirmName, rec.Employees, u.taxPercent)
	return payrollText(lang, r)
}

func (u *reportUseCase) PreviewTurnover(lang entity.Language, kind entity.TaxType, rec spreadsheet.TurnoverRecord) (string, error) {
	r, err := entity.NewTurnoverReport(kind, rec.Stir, rec.Month, rec.FirmName, rec.Director, rec.Rate, rec.YearToDate, rec.MonthAmount)
	if err != nil {
		return "", err
	}
	return turnoverText(lang, r), nil
}

func (u *reportUseCase) Summary(ctx context.Context, lang entity.Language, firm entity.Firm, tax entity.TaxType, month entity.Month) (string, bool, error) {
	switch tax {
	case entity.TaxDaromad:
		r, err := u.store.LatestPayroll(ctx, firm.Stir, month)
		if errors.Is(err, entity.ErrNotFound) {
			return "", false, nil
		}
		if err != nil {
			return "", false, fmt.Errorf("daromad hisobotini o'qish: %w", err)
		}
		return payrollText(lang, *r), true, nil
	case entity.TaxYagona, entity.TaxQQS:
		r, err := u.store.LatestTurnover(ctx, tax, firm.Stir, month)
		if errors.Is(err, entity.ErrNotFound) {
			return "", false, nil
		}
		if err != nil {
			return "", false, fmt.Errorf("%s hisobotini o'qish: %w", tax, err)
		}
		if strings.TrimSpace(r.Director) == "" {
			r.Director = firm.Director
		}
		return turnoverText(lang, *r), true, nil
	}
	return "", false, fmt.Errorf("noma'lum soliq turi: %q", tax)
}

func (u *reportUseCase) Files(ctx context.Context, stir string, tax entity.TaxType, month entity.Month, lang entity.Language) ([]string, error) {
	var out []string
	for _, st := range []entity.UploadStage{entity.StageExcel1, entity.StageExcel2, entity.StageHTML} {
		langs := []entity.Language{lang, lang.Other()}
		if st == entity.StageHTML {
			langs = langs[:1]
		}
		for _, l := range langs {
			fp, err := u.store.GetFile(ctx, stir, tax, month, st.Kind(l))
			if errors.Is(err, entity.ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("fayl ko'rsatkichi: %w", err)
			}
			if !fileExists(fp.Path) {
				log.Printf("⚠️ Fayl bazada bor, diskda yo'q: stir=%s oy=%s tur=%s yo'l=%s", stir, month, fp.Kind, fp.Path)
				continue
			}
			out = append(out, fp.Path)
			break
		}
	}
	return out, nil
}

func payrollText(lang entity.Language, r entity.PayrollReport) string {
	lines := make([]string, 0, len(r.Employees))
	for i, e := range r.Employees {
		lines = append(lines, fmt.Sprintf("%d (%s) – %s, %s: %s %s (%s: %s %s)",
			i+1, i18n.Convert(lang, e.Position), i18n.Convert(lang, e.FullName),
			i18n.Tr(lang, "bu oy uchun hisobotda"), FormatAmount(e.ThisMonth), i18n.Tr(lang, "so‘m"),
			i18n.Tr(lang, "yil boshidan hisobotda"), FormatAmount(e.YearToDate), i18n.Tr(lang, "so‘m"),
		))
	}
	return i18n.T(lang, i18n.KeyDaromadReport, i18n.P{
		"firma_name":          i18n.Convert(lang, r.FirmName),
		"oy":                  r.Month.Name(lang),
		"xodimlar_soni":       r.EmployeeCount,
		"xodimlar_data":       strings.Join(lines, "\n"),
		"hisobot_davri_oylik": FormatAmount(r.PeriodPay),
		"jami_oylik":          FormatAmount(r.TotalPay),
		"soliq":               FormatAmount(r.Tax),
	})
}

func turnoverText(lang entity.Language, r entity.TurnoverReport) string {
	director := r.Director
	if strings.TrimSpace(director) == "" {
		director = "Noma'lum"
	}
	common := i18n.P{
		"oy":         r.Month.Name(lang),
		"firma_nomi": i18n.Convert(lang, r.FirmName),
		"rahbar":     i18n.Convert(lang, director),
		"yil":        constants.ReportYear,
	}
	if r.Kind == entity.TaxQQS {
		common["yil_boshidan_qqs"] = FormatAmount(r.YearToDate)
		common["shu_oy_qqs"] = FormatAmount(r.MonthAmount)
		common["soliq_turi_qqs"] = r.Rate
		common["qqs_soliq"] = FormatAmount(r.Tax)
		return i18n.T(lang, i18n.KeyQQSReport, common)
	}
	common["yil_boshidan_aylanma"] = FormatAmount(r.YearToDate)
	common["shu_oy_aylanma"] = FormatAmount(r.MonthAmount)
	common["soliq_turi_yagona"] = r.Rate
	common["yagona_soliq"] = FormatAmount(r.Tax)
	return i18n.T(lang, i18n.KeyYagonaReport, common)
}

func (u *reportUseCase) Seed(ctx context.Context, tax entity.TaxType, path string, lang entity.Language) entity.Result[*Seed] {
	return LoadSeed(ctx, u.store, tax, path, lang)
}

// Delete avval diskdagi fayllar, keyin hisobot qatorlari, oxirida fayl ko'rsatkichlari.
// Fayl o'chmasa log qilinadi, jarayon to'xtamaydi.
func (u *reportUseCase) Delete(ctx context.Context, stir string, month entity.Month) (DeleteResult, error) {
	var res DeleteResult
	files, err := u.store.ListFiles(ctx, stir, month)
	if err != nil {
		return res, fmt.Errorf("fayllar ro'yxati: %w", err)
	}
	removed := make(map[string]bool, len(files))
	for _, fp := range files {
		if removed[fp.Path] {
			continue
		}
		removed[fp.Path] = true
		if err := os.Remove(fp.Path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			log.Printf("⚠️ Fayl o'chirilmadi: %s err=%v", fp.Path, err)
			res.FileErrors = append(res.FileErrors, fp.Path)
			continue
		}
		res.FilesRemoved++
	}
	// html faqat lotin ko'rsatkichiga ega, kirill nusxasi ham o'chadi
	for _, fp := range files {
		if fp.Kind != entity.FileHTML {
			continue
		}
		cyr := u.layout.StagePath(stir, fp.TaxType, month, entity.StageHTML, entity.LangCyrillic)
		if removed[cyr] {
			continue
		}
		removed[cyr] = true
		if err := os.Remove(cyr); err == nil {
			res.FilesRemoved++
		}
	}

	if res.Reports, err = u.store.DeleteReports(ctx, stir, month); err != nil {
		return res, fmt.Errorf("hisobotlarni o'chirish: %w", err)
	}
	if res.Pointers, err = u.store.DeleteFiles(ctx, stir, month); err != nil {
		return res, fmt.Errorf("fayl ko'rsatkichlarini o'chirish: %w", err)
	}
	log.Printf("🗑 Hisobot o'chirildi: stir=%s oy=%s fayllar=%d qatorlar=%d", stir, month, res.FilesRemoved, res.Reports)
	return res, nil
}
