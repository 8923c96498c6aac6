package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
	"github.com/Samandarmister/Firmauz-bot/internal/domain/repository"
	"github.com/Samandarmister/Firmauz-bot/internal/infrastructure/i18n"
	"github.com/Samandarmister/Firmauz-bot/internal/infrastructure/storage"
	"github.com/Samandarmister/Firmauz-bot/internal/infrastructure/translit"
)

func newTestFirms(t *testing.T) (FirmUseCase, repository.Store, Layout) {
	t.Helper()
	store := storage.NewMemoryStore(repository.WriteAppend)
	layout := NewLayout(t.TempDir())
	return NewFirmUseCase(store, layout), store, layout
}

func TestOnboardThenVerifyOwner(t *testing.T) {
	ctx := context.Background()
	firms, _, layout := newTestFirms(t)

	res, err := firms.CheckNewStir(ctx, "302824863")
	if err != nil || !res.IsOK() {
		t.Fatalf("yangi STIR rad etildi: %+v %v", res, err)
	}
	_, err = firms.Onboard(ctx, OnboardInput{
		Stir:     "302824863",
		Regime:   entity.RegimeDSYS,
		Name:     "Zamin Agro",
		Director: "Aliyev Vali",
		Phone:    "+998901234567",
	})
	if err != nil {
		t.Fatalf("onboard xatosi: %v", err)
	}

	ok, err := firms.VerifyOwner(ctx, "302824863", "+998901234567")
	if err != nil || !ok {
		t.Fatalf("to'g'ri telefon tasdiqlanmadi: %v %v", ok, err)
	}
	ok, _ = firms.VerifyOwner(ctx, "302824863", "+998907654321")
	if ok {
		t.Fatal("boshqa telefon tasdiqlandi")
	}

	for _, tax := range []entity.TaxType{entity.TaxDaromad, entity.TaxYagona} {
		if info, err := os.Stat(layout.TaxDir("302824863", tax)); err != nil || !info.IsDir() {
			t.Errorf("%s papkasi yaratilmadi", tax)
		}
	}
	if _, err := os.Stat(layout.TaxDir("302824863", entity.TaxQQS)); !os.IsNotExist(err) {
		t.Error("ds-ys firmasi uchun qqs papkasi yaratilmasligi kerak")
	}

	res, _ = firms.CheckNewStir(ctx, "302824863")
	if res.Kind != entity.ResultInvalid {
		t.Fatalf("takroriy STIR qabul qilindi: %v", res.Kind)
	}
}

func TestLookupResults(t *testing.T) {
	ctx := context.Background()
	firms, store, _ := newTestFirms(t)
	if err := store.CreateFirm(ctx, entity.Firm{Stir: "123456789", Name: "Alfa Trade", Regime: entity.RegimeDSQQS}); err != nil {
		t.Fatal(err)
	}

	if res, _ := firms.Lookup(ctx, "12345678"); res.Kind != entity.ResultInvalid {
		t.Errorf("8 xonali STIR: kutilgan=invalid, natija=%v", res.Kind)
	}
	if res, _ := firms.Lookup(ctx, "987654321"); res.Kind != entity.ResultNotFound {
		t.Errorf("noma'lum STIR: kutilgan=not_found, natija=%v", res.Kind)
	}
	res, err := firms.Lookup(ctx, "123456789")
	if err != nil || !res.IsOK() {
		t.Fatalf("firma topilmadi: %v", err)
	}
	if res.Value.Name != "Alfa Trade" {
		t.Errorf("nom o'zgargan: %q", res.Value.Name)
	}
	if back := translit.ToLatin(i18n.Convert(entity.LangCyrillic, res.Value.Name)); back != "Alfa Trade" {
		t.Errorf("kirill va qaytish mos emas: %q", back)
	}
}

func TestImportFlagsDuplicates(t *testing.T) {
	ctx := context.Background()
	firms, store, layout := newTestFirms(t)
	if err := store.CreateFirm(ctx, entity.Firm{Stir: "111111111", Name: "Eski", Regime: entity.RegimeDSYS}); err != nil {
		t.Fatal(err)
	}
	row := func(n int, stir, name string, regime entity.Regime) entity.FirmImportRow {
		return entity.FirmImportRow{Row: n, Phone: "+998901234567", Firm: entity.Firm{Stir: stir, Name: name, Regime: regime}}
	}
	rep, err := firms.Import(ctx, []entity.FirmImportRow{
		row(2, "222222222", "Birinchi", entity.RegimeDSQQS),
		row(3, "222222222", "Ikkinchi", entity.RegimeDSYS),
		row(4, "111111111", "Eski nusxa", entity.RegimeDSYS),
		row(5, "333333333", "Uchinchi", entity.RegimeDSYS),
	})
	if err != nil {
		t.Fatalf("import xatosi: %v", err)
	}
	if len(rep.Added) != 2 {
		t.Fatalf("2 ta firma qo'shilishi kerak edi, natija=%d", len(rep.Added))
	}
	if len(rep.Flagged) != 2 || rep.Flagged[0].Row != 3 || rep.Flagged[1].Row != 4 {
		t.Fatalf("belgilangan qatorlar noto'g'ri: %+v", rep.Flagged)
	}
	f, err := store.GetFirm(ctx, "222222222")
	if err != nil || f.Name != "Birinchi" {
		t.Fatalf("birinchi qator saqlanishi kerak edi: %+v %v", f, err)
	}
	if _, err := os.Stat(filepath.Join(layout.TaxDir("222222222", entity.TaxQQS))); err != nil {
		t.Error("ds-qqs uchun qqs papkasi yaratilmadi")
	}
	phones, _ := store.OwnerPhones(ctx, "333333333")
	if len(phones) != 1 {
		t.Errorf("egasi bog'lanmadi: %v", phones)
	}
}

func TestRenameAndReplacePhone(t *testing.T) {
	ctx := context.Background()
	firms, store, _ := newTestFirms(t)
	if _, err := firms.Onboard(ctx, OnboardInput{Stir: "123456789", Regime: entity.RegimeDSYS, Name: "Alfa", Director: "Vali", Phone: "+998901111111"}); err != nil {
		t.Fatal(err)
	}

	if res, _ := firms.Rename(ctx, "123456789", "Ab"); res.IsOK() {
		t.Error("qisqa nom qabul qilindi")
	}
	if res, err := firms.Rename(ctx, "123456789", "Alfa Trade"); err != nil || !res.IsOK() {
		t.Fatalf("nom yangilanmadi: %+v %v", res, err)
	}
	f, _ := store.GetFirm(ctx, "123456789")
	if f.Name != "Alfa Trade" {
		t.Errorf("nom: %q", f.Name)
	}
	if res, _ := firms.Rename(ctx, "999999999", "Yangi nom"); res.Kind != entity.ResultNotFound {
		t.Errorf("noma'lum firma: kutilgan=not_found, natija=%v", res.Kind)
	}

	if res, _ := firms.ReplacePhone(ctx, "123456789", "998902222222"); res.IsOK() {
		t.Error("noto'g'ri telefon qabul qilindi")
	}
	if res, err := firms.ReplacePhone(ctx, "123456789", "+998902222222"); err != nil || !res.IsOK() {
		t.Fatalf("telefon almashtirilmadi: %+v %v", res, err)
	}
	if ok, _ := firms.VerifyOwner(ctx, "123456789", "+998901111111"); ok {
		t.Error("eski telefon hali ham ishlaydi")
	}
	if ok, _ := firms.VerifyOwner(ctx, "123456789", "+998902222222"); !ok {
		t.Error("yangi telefon ishlamadi")
	}
}

func TestSearchAcrossScripts(t *testing.T) {
	ctx := context.Background()
	firms, store, _ := newTestFirms(t)
	for _, f := range []entity.Firm{
		{Stir: "302824863", Name: "Zamin Agro", Regime: entity.RegimeDSYS},
		{Stir: "123456789", Name: "Бек Инвест", Regime: entity.RegimeDSQQS},
	} {
		if err := store.CreateFirm(ctx, f); err != nil {
			t.Fatal(err)
		}
	}

	cases := []struct {
		query string
		want  string
	}{
		{"zamin", "302824863"},
		{"ЗАМИН", "302824863"},
		{"3028", "302824863"},
		{"bek", "123456789"},
		{"  инвест ", "123456789"},
	}
	for _, tc := range cases {
		got, err := firms.Search(ctx, tc.query)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].Stir != tc.want {
			t.Errorf("qidiruv %q: kutilgan=%s, natija=%+v", tc.query, tc.want, got)
		}
	}
	if got, _ := firms.Search(ctx, "   "); len(got) != 0 {
		t.Errorf("bo'sh so'rov natija qaytardi: %+v", got)
	}
}
