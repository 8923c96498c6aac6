package usecase

import (
	"context"
	"log"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
	"github.com/Samandarmister/Firmauz-bot/internal/domain/repository"
	"github.com/Samandarmister/Firmauz-bot/internal/infrastructure/spreadsheet"
)

// SeedEntry tanlov ro'yxatidagi qator
type SeedEntry struct {
	Stir     string
	Month    entity.Month
	FirmName string
}

// Seed qo'lda kiritishni to'ldirish uchun o'qilgan fayl
type Seed struct {
	Tax      entity.TaxType
	payroll  *spreadsheet.Parsed[spreadsheet.PayrollRecord]
	turnover *spreadsheet.Parsed[spreadsheet.TurnoverRecord]
}

// Entries fayldagi tartibda
func (s *Seed) Entries() []SeedEntry {
	if s == nil {
		return nil
	}
	var out []SeedEntry
	if s.payroll != nil {
		for _, r := range s.payroll.Records {
			out = append(out, SeedEntry{Stir: r.Stir, Month: r.Month, FirmName: r.FirmName})
		}
	}
	if s.turnover != nil {
		for _, r := range s.turnover.Records {
			out = append(out, SeedEntry{Stir: r.Stir, Month: r.Month, FirmName: r.FirmName})
		}
	}
	return out
}

func (s *Seed) Payroll(stir string, month entity.Month) (spreadsheet.PayrollRecord, bool) {
	if s == nil || s.payroll == nil {
		return spreadsheet.PayrollRecord{}, false
	}
	return s.payroll.Get(stir, month)
}

func (s *Seed) Turnover(stir string, month entity.Month) (spreadsheet.TurnoverRecord, bool) {
	if s == nil || s.turnover == nil {
		return spreadsheet.TurnoverRecord{}, false
	}
	return s.turnover.Get(stir, month)
}

// LoadSeed soliq turiga mos faylni o'qiydi. Yozuv bo'lmasa Invalid.
func LoadSeed(ctx context.Context, store repository.FirmRepository, tax entity.TaxType, path string, lang entity.Language) entity.Result[*Seed] {
	known := func(stir string) bool {
		ok, err := store.FirmExists(ctx, stir)
		if err != nil {
			log.Printf("❌ Firma tekshiruvida xato: stir=%s err=%v", stir, err)
		}
		return ok
	}
	seed := &Seed{Tax: tax}
	var errText string
	if tax == entity.TaxDaromad {
		seed.payroll = spreadsheet.ParsePayroll(path, lang, known)
		if !seed.payroll.OK() {
			errText = seed.payroll.Err
		}
	} else {
		seed.turnover = spreadsheet.ParseTurnover(path, lang, known)
		if !seed.turnover.OK() {
			errText = seed.turnover.Err
		}
	}
	if len(seed.Entries()) == 0 {
		return entity.Invalid[*Seed](parseFailure(errText))
	}
	return entity.OK(seed)
}
