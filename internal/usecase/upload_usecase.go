package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/constants"
	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
	"github.com/Samandarmister/Firmauz-bot/internal/domain/repository"
	"github.com/Samandarmister/Firmauz-bot/internal/infrastructure/spreadsheet"
)

// UploadUseCase excel1 -> excel2 -> html ketma-ketligi
type UploadUseCase interface {
	// StartStage excel1 allaqachon diskda bo'lsa excel2 dan boshlanadi
	StartStage(ctx context.Context, stir string, tax entity.TaxType, month entity.Month) (entity.UploadStage, error)
	TempPath(kind string, userID int64, ext string) string
	// Store vaqtinchalik faylni bosqich joyiga qo'yadi. Vaqtinchalik fayl har doim o'chiriladi.
	Store(ctx context.Context, in StageInput) (entity.Result[StageOutcome], error)
}

// StageInput yuklangan bosqich fayli
type StageInput struct {
	Stir     string
	Tax      entity.TaxType
	Month    entity.Month
	Stage    entity.UploadStage
	TempPath string
	Lang     entity.Language
}

// StageOutcome Done bo'lsa ketma-ketlik tugadi
type StageOutcome struct {
	Next entity.UploadStage
	Done bool
}

// AcceptsFile bosqich kengaytmasini tekshiradi (yuklab olishdan oldin)
func AcceptsFile(stage entity.UploadStage, fileName string) bool {
	return strings.EqualFold(filepath.Ext(strings.TrimSpace(fileName)), stage.Ext())
}

type uploadUseCase struct {
	store  repository.Store
	layout Layout
	now    func() time.Time
}

// NewUploadUseCase yangi UploadUseCase
func NewUploadUseCase(store repository.Store, layout Layout) UploadUseCase {
	return &uploadUseCase{store: store, layout: layout, now: time.Now}
}

func (u *uploadUseCase) StartStage(ctx context.Context, stir string, tax entity.TaxType, month entity.Month) (entity.UploadStage, error) {
	for _, kind := range []entity.FileKind{entity.FileExcel1Latin, entity.FileExcel1Cyrillic} {
		fp, err := u.store.GetFile(ctx, stir, tax, month, kind)
		if errors.Is(err, entity.ErrNotFound) {
			continue
		}
		if err != nil {
			return entity.StageExcel1, fmt.Errorf("fayl ko'rsatkichi: %w", err)
		}
		if fileExists(fp.Path) {
			return entity.StageExcel2, nil
		}
	}
	return entity.StageExcel1, nil
}

func (u *uploadUseCase) TempPath(kind string, userID int64, ext string) string {
	return u.layout.TempPath(kind, userID, ext, u.now())
}

func (u *uploadUseCase) Store(ctx context.Context, in StageInput) (entity.Result[StageOutcome], error) {
	defer func() {
		if err := os.Remove(in.TempPath); err == nil {
			log.Printf("🧹 Vaqtinchalik fayl o'chirildi: %s", in.TempPath)
		}
	}()

	latin, cyr := u.layout.StagePaths(in.Stir, in.Tax, in.Month, in.Stage)
	switch in.Stage {
	case entity.StageExcel1:
		if res, err := u.storeExcel1(ctx, in, latin, cyr); err != nil || !res.IsOK() {
			return res, err
		}
		if err := u.point(ctx, in, entity.FileExcel1Latin, latin); err != nil {
			return entity.Result[StageOutcome]{}, err
		}
		if err := u.point(ctx, in, entity.FileExcel1Cyrillic, cyr); err != nil {
			return entity.Result[StageOutcome]{}, err
		}
		return entity.OK(StageOutcome{Next: entity.StageExcel2}), nil

	case entity.StageExcel2:
		if err := copyPair(in.TempPath, latin, cyr); err != nil {
			return entity.Result[StageOutcome]{}, err
		}
		if err := u.point(ctx, in, entity.FileExcel2Latin, latin); err != nil {
			return entity.Result[StageOutcome]{}, err
		}
		if err := u.point(ctx, in, entity.FileExcel2Cyrillic, cyr); err != nil {
			return entity.Result[StageOutcome]{}, err
		}
		return entity.OK(StageOutcome{Next: entity.StageHTML}), nil

	case entity.StageHTML:
		if err := copyPair(in.TempPath, latin, cyr); err != nil {
			return entity.Result[StageOutcome]{}, err
		}
		if err := u.point(ctx, in, entity.FileHTML, latin); err != nil {
			return entity.Result[StageOutcome]{}, err
		}
		log.Printf("✅ Fayllar yuklandi: stir=%s tur=%s oy=%s", in.Stir, in.Tax, in.Month)
		return entity.OK(StageOutcome{Done: true}), nil
	}
	return entity.Result[StageOutcome]{}, fmt.Errorf("noma'lum bosqich: %d", in.Stage)
}

// storeExcel1 faylni tekshiradi. Yagona uchun fayllar qayta yaratiladi, qolganlari nusxalanadi.
// Faylda shu firma va oy qatori bo'lsa hisobot bazaga ham yoziladi.
func (u *uploadUseCase) storeExcel1(ctx context.Context, in StageInput, latin, cyr string) (entity.Result[StageOutcome], error) {
	known := u.knownFirm(ctx)
	switch in.Tax {
	case entity.TaxYagona, entity.TaxQQS:
		parsed := spreadsheet.ParseTurnover(in.TempPath, in.Lang, known)
		if !parsed.OK() {
			return entity.Invalid[StageOutcome](parseFailure(parsed.Err)), nil
		}
		rec, found := parsed.Get(in.Stir, in.Month)
		if found {
			report, err := entity.NewTurnoverReport(in.Tax, rec.Stir, rec.Month, rec.FirmName, rec.Director, rec.Rate, rec.YearToDate, rec.MonthAmount)
			if err == nil {
				if _, err := u.store.SaveTurnover(ctx, report); err != nil {
					return entity.Result[StageOutcome]{}, fmt.Errorf("%s hisobotini saqlash: %w", in.Tax, err)
				}
			}
		}
		if in.Tax == entity.TaxYagona && found {
			if err := spreadsheet.GenerateTurnover(in.Tax, rec, latin, cyr); err != nil {
				return entity.Result[StageOutcome]{}, fmt.Errorf("yagona fayllarini yaratish: %w", err)
			}
			return entity.OK(StageOutcome{}), nil
		}
	default:
		parsed := spreadsheet.ParsePayroll(in.TempPath, in.Lang, known)
		if !parsed.OK() {
			return entity.Invalid[StageOutcome](parseFailure(parsed.Err)), nil
		}
		if rec, found := parsed.Get(in.Stir, in.Month); found {
			report := entity.NewPayrollReport(rec.Stir, rec.Month, rec.FirmName, rec.Employees, constants.PayrollTaxPercent)
			if _, err := u.store.SavePayroll(ctx, report); err != nil {
				return entity.Result[StageOutcome]{}, fmt.Errorf("daromad hisobotini saqlash: %w", err)
			}
		}
	}
	if err := copyPair(in.TempPath, latin, cyr); err != nil {
		return entity.Result[StageOutcome]{}, err
	}
	return entity.OK(StageOutcome{}), nil
}

func (u *uploadUseCase) point(ctx context.Context, in StageInput, kind entity.FileKind, path string) error {
	fp := entity.FilePointer{Stir: in.Stir, TaxType: in.Tax, Month: in.Month, Kind: kind, Path: path, UpdatedAt: u.now()}
	if err := u.store.UpsertFile(ctx, fp); err != nil {
		return fmt.Errorf("fayl ko'rsatkichi (%s): %w", kind, err)
	}
	return nil
}

// knownFirm bitta yuklash davomida natijalarni eslab qoladi
func (u *uploadUseCase) knownFirm(ctx context.Context) spreadsheet.KnownFirm {
	cache := make(map[string]bool)
	return func(stir string) bool {
		if v, ok := cache[stir]; ok {
			return v
		}
		ok, err := u.store.FirmExists(ctx, stir)
		if err != nil {
			log.Printf("❌ Firma tekshiruvida xato: stir=%s err=%v", stir, err)
			return false
		}
		cache[stir] = ok
		return ok
	}
}

func parseFailure(errText string) string {
	if strings.TrimSpace(errText) == "" {
		errText = "ma'lumot topilmadi"
	}
	return "❌ Faylni o'qishda xato: " + errText
}

func copyPair(src, latin, cyr string) error {
	if err := copyFile(src, latin); err != nil {
		return fmt.Errorf("faylni nusxalash: %w", err)
	}
	if err := copyFile(src, cyr); err != nil {
		_ = os.Remove(latin)
		return fmt.Errorf("faylni nusxalash: %w", err)
	}
	return nil
}
