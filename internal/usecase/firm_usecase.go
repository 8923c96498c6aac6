package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
	"github.com/Samandarmister/Firmauz-bot/internal/domain/repository"
	"github.com/Samandarmister/Firmauz-bot/internal/infrastructure/translit"
)

// FirmUseCase firmalarni ro'yxatga olish, import, tahrirlash va qidirish
type FirmUseCase interface {
	// CheckNewStir shakl va noyoblik
	CheckNewStir(ctx context.Context, raw string) (entity.Result[string], error)
	// Lookup mavjud firma
	Lookup(ctx context.Context, raw string) (entity.Result[*entity.Firm], error)
	Onboard(ctx context.Context, in OnboardInput) (*entity.Firm, error)
	Import(ctx context.Context, rows []entity.FirmImportRow) (ImportReport, error)
	Rename(ctx context.Context, stir, name string) (entity.Result[string], error)
	ReplacePhone(ctx context.Context, stir, phone string) (entity.Result[string], error)
	VerifyOwner(ctx context.Context, stir, phone string) (bool, error)
	List(ctx context.Context) ([]entity.Firm, error)
	Search(ctx context.Context, query string) ([]entity.Firm, error)
	Count(ctx context.Context) (int, error)
}

// OnboardInput bitta firma qo'shish oqimi natijasi
type OnboardInput struct {
	Stir     string
	Regime   entity.Regime
	Name     string
	Director string
	Phone    string
}

// ImportFlag importda o'tkazib yuborilgan qator
type ImportFlag struct {
	Row    int
	Stir   string
	Reason string
}

// ImportReport ommaviy import natijasi
type ImportReport struct {
	Added   []entity.Firm
	Flagged []ImportFlag
}

type firmUseCase struct {
	store  repository.Store
	layout Layout
}

// NewFirmUseCase yangi FirmUseCase
func NewFirmUseCase(store repository.Store, layout Layout) FirmUseCase {
	return &firmUseCase{store: store, layout: layout}
}

func (u *firmUseCase) CheckNewStir(ctx context.Context, raw string) (entity.Result[string], error) {
	res := ValidateStir(raw)
	if !res.IsOK() {
		return res, nil
	}
	exists, err := u.store.FirmExists(ctx, res.Value)
	if err != nil {
		return res, fmt.Errorf("firma tekshiruvi: %w", err)
	}
	if exists {
		return entity.Invalid[string]("❌ Bu STIR allaqachon mavjud."), nil
	}
	return res, nil
}

func (u *firmUseCase) Lookup(ctx context.Context, raw string) (entity.Result[*entity.Firm], error) {
	res := ValidateStir(raw)
	if !res.IsOK() {
		return entity.Invalid[*entity.Firm](res.Reason), nil
	}
	firm, err := u.store.GetFirm(ctx, res.Value)
	if errors.Is(err, entity.ErrNotFound) {
		return entity.NotFound[*entity.Firm](), nil
	}
	if err != nil {
		return entity.Result[*entity.Firm]{}, fmt.Errorf("firma o'qish: %w", err)
	}
	return entity.OK(firm), nil
}

// Onboard firma, egasi va papkalarni yaratadi. Maydonlar oldindan tekshirilgan bo'lishi kerak.
func (u *firmUseCase) Onboard(ctx context.Context, in OnboardInput) (*entity.Firm, error) {
	firm := entity.Firm{
		Stir:     in.Stir,
		Name:     strings.TrimSpace(in.Name),
		Director: strings.TrimSpace(in.Director),
		Regime:   in.Regime,
		DSRate:   "0",
		YSRate:   "0",
		QQSRate:  "0",
	}
	if err := u.store.CreateFirm(ctx, firm); err != nil {
		return nil, fmt.Errorf("firma saqlash: %w", err)
	}
	if err := u.store.AddOwner(ctx, in.Stir, in.Phone); err != nil {
		return nil, fmt.Errorf("egasini saqlash: %w", err)
	}
	if err := u.layout.EnsureFirmDirs(in.Stir, in.Regime); err != nil {
		log.Printf("⚠️ Papkalar yaratilmadi: stir=%s err=%v", in.Stir, err)
	}
	log.Printf("🏢 Firma qo'shildi: stir=%s rejim=%s", in.Stir, in.Regime)
	return &firm, nil
}

// Import har bir qatorni alohida saqlaydi. Fayl ichidagi takroriy STIR uchun birinchisi olinadi,
// keyingilari va bazada bor STIR'lar belgilab qaytariladi.
func (u *firmUseCase) Import(ctx context.Context, rows []entity.FirmImportRow) (ImportReport, error) {
	var rep ImportReport
	seen := make(map[string]int, len(rows))
	for _, row := range rows {
		stir := row.Firm.Stir
		if first, ok := seen[stir]; ok {
			rep.Flagged = append(rep.Flagged, ImportFlag{
				Row: row.Row, Stir: stir,
				Reason: fmt.Sprintf("fayl ichida takroriy STIR (%d-qatorda bor)", first),
			})
			continue
		}
		seen[stir] = row.Row

		exists, err := u.store.FirmExists(ctx, stir)
		if err != nil {
			return rep, fmt.Errorf("firma tekshiruvi: %w", err)
		}
		if exists {
			rep.Flagged = append(rep.Flagged, ImportFlag{Row: row.Row, Stir: stir, Reason: "STIR bazada mavjud"})
			continue
		}
		if err := u.store.CreateFirm(ctx, row.Firm); err != nil {
			if errors.Is(err, entity.ErrAlreadyExists) {
				rep.Flagged = append(rep.Flagged, ImportFlag{Row: row.Row, Stir: stir, Reason: "STIR bazada mavjud"})
				continue
			}
			return rep, fmt.Errorf("firma saqlash (%d-qator): %w", row.Row, err)
		}
		if err := u.store.AddOwner(ctx, stir, row.Phone); err != nil {
			return rep, fmt.Errorf("egasini saqlash (%d-qator): %w", row.Row, err)
		}
		if err := u.layout.EnsureFirmDirs(stir, row.Firm.Regime); err != nil {
			log.Printf("⚠️ Papkalar yaratilmadi: stir=%s err=%v", stir, err)
		}
		rep.Added = append(rep.Added, row.Firm)
	}
	log.Printf("📥 Import: qo'shildi=%d belgilandi=%d", len(rep.Added), len(rep.Flagged))
	return rep, nil
}

func (u *firmUseCase) Rename(ctx context.Context, stir, name string) (entity.Result[string], error) {
	res := ValidateFirmName(name)
	if !res.IsOK() {
		return res, nil
	}
	err := u.store.UpdateFirmName(ctx, stir, res.Value)
	if errors.Is(err, entity.ErrNotFound) {
		return entity.NotFound[string](), nil
	}
	if err != nil {
		return res, fmt.Errorf("firma nomini yangilash: %w", err)
	}
	return res, nil
}

func (u *firmUseCase) ReplacePhone(ctx context.Context, stir, phone string) (entity.Result[string], error) {
	res := ValidatePhone(phone)
	if !res.IsOK() {
		return res, nil
	}
	exists, err := u.store.FirmExists(ctx, stir)
	if err != nil {
		return res, fmt.Errorf("firma tekshiruvi: %w", err)
	}
	if !exists {
		return entity.NotFound[string](), nil
	}
	if err := u.store.ReplaceOwnerPhone(ctx, stir, res.Value); err != nil {
		return res, fmt.Errorf("telefonni almashtirish: %w", err)
	}
	return res, nil
}

// VerifyOwner telefon firmaga bog'langanmi
func (u *firmUseCase) VerifyOwner(ctx context.Context, stir, phone string) (bool, error) {
	phones, err := u.store.OwnerPhones(ctx, stir)
	if err != nil {
		return false, fmt.Errorf("egalarni o'qish: %w", err)
	}
	phone = strings.TrimSpace(phone)
	for _, p := range phones {
		if p == phone {
			return true, nil
		}
	}
	return false, nil
}

func (u *firmUseCase) List(ctx context.Context) ([]entity.Firm, error) {
	firms, err := u.store.ListFirms(ctx)
	if err != nil {
		return nil, fmt.Errorf("firmalar ro'yxati: %w", err)
	}
	sort.SliceStable(firms, func(i, j int) bool { return firms[i].Stir < firms[j].Stir })
	return firms, nil
}

func (u *firmUseCase) Count(ctx context.Context) (int, error) {
	return u.store.CountFirms(ctx)
}

// Search STIR boshi yoki nomdagi qism bo'yicha, lotin va kirill yozuvlarida
func (u *firmUseCase) Search(ctx context.Context, query string) ([]entity.Firm, error) {
	q := normalizeSearch(query)
	if q == "" {
		return nil, nil
	}
	firms, err := u.List(ctx)
	if err != nil {
		return nil, err
	}
	variants := searchVariants(q)
	var out []entity.Firm
	for _, f := range firms {
		if matchFirm(f, variants) {
			out = append(out, f)
		}
	}
	return out, nil
}

func matchFirm(f entity.Firm, variants []string) bool {
	names := searchVariants(normalizeSearch(f.Name))
	for _, v := range variants {
		if strings.HasPrefix(f.Stir, v) {
			return true
		}
		for _, n := range names {
			if strings.Contains(n, v) {
				return true
			}
		}
	}
	return false
}

// searchVariants matnning o'zi, lotin va kirill ko'rinishlari
func searchVariants(s string) []string {
	out := []string{s}
	for _, v := range []string{
		normalizeSearch(translit.ToLatin(s)),
		normalizeSearch(translit.ToCyrillic(s)),
	} {
		if v != "" && v != s {
			out = append(out, v)
		}
	}
	return out
}

// normalizeSearch NFKC, kichik harf, bo'shliqlar bittaga
func normalizeSearch(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ToLower(s)
	for _, r := range []string{"‘", "’", "ʻ", "ʼ", "`"} {
		s = strings.ReplaceAll(s, r, "'")
	}
	return strings.Join(strings.Fields(s), " ")
}
