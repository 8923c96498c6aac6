package usecase

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
	"github.com/Samandarmister/Firmauz-bot/internal/domain/repository"
	"github.com/Samandarmister/Firmauz-bot/internal/infrastructure/spreadsheet"
	"github.com/Samandarmister/Firmauz-bot/internal/infrastructure/storage"
)

func TestFormatAmount(t *testing.T) {
	cases := map[int64]string{0: "0", 999: "999", 5_000_000: "5,000,000", 1_500_000: "1,500,000"}
	for in, want := range cases {
		if got := FormatAmount(in); got != want {
			t.Errorf("FormatAmount(%d): kutilgan=%q, natija=%q", in, want, got)
		}
	}
}

func samplePayroll() spreadsheet.PayrollRecord {
	return spreadsheet.PayrollRecord{
		Stir:     "123456789",
		Month:    entity.MonthMay,
		FirmName: "Alfa Trade",
		Employees: []entity.Employee{
			{Position: "Rahbar", FullName: "Aliyev Vali", YearToDate: 5_000_000, ThisMonth: 5_000_000},
		},
	}
}

func TestCommitPayrollWritesFilesAndPointers(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore(repository.WriteAppend)
	layout := NewLayout(t.TempDir())
	reports := NewReportUseCase(store, layout)

	res, err := reports.CommitPayroll(ctx, samplePayroll())
	if err != nil {
		t.Fatalf("commit xatosi: %v", err)
	}
	if res.FilesErr != nil {
		t.Fatalf("fayllar yaratilmadi: %v", res.FilesErr)
	}

	latin, cyr := layout.StagePaths("123456789", entity.TaxDaromad, entity.MonthMay, entity.StageExcel1)
	for _, p := range []string{latin, cyr} {
		if !fileExists(p) {
			t.Errorf("fayl yo'q: %s", p)
		}
	}
	if !strings.HasSuffix(cyr, "Май1.xlsx") {
		t.Errorf("kirill fayl nomi noto'g'ri: %s", cyr)
	}
	for kind, want := range map[entity.FileKind]string{entity.FileExcel1Latin: latin, entity.FileExcel1Cyrillic: cyr} {
		fp, err := store.GetFile(ctx, "123456789", entity.TaxDaromad, entity.MonthMay, kind)
		if err != nil || fp.Path != want {
			t.Errorf("%s ko'rsatkichi noto'g'ri: %+v %v", kind, fp, err)
		}
	}

	firm := entity.Firm{Stir: "123456789", Name: "Alfa Trade"}
	text, found, err := reports.Summary(ctx, entity.LangLatin, firm, entity.TaxDaromad, entity.MonthMay)
	if err != nil || !found {
		t.Fatalf("hisobot topilmadi: %v", err)
	}
	for _, want := range []string{"Alfa Trade", "May", "600,000", "5,000,000", "1 (Rahbar) – Aliyev Vali"} {
		if !strings.Contains(text, want) {
			t.Errorf("hisobotda %q yo'q:\n%s", want, text)
		}
	}
	text, _, _ = reports.Summary(ctx, entity.LangCyrillic, firm, entity.TaxDaromad, entity.MonthMay)
	if !strings.Contains(text, "Алфа Траде") || !strings.Contains(text, "Май") {
		t.Errorf("kirill hisobot noto'g'ri:\n%s", text)
	}
}

func TestTurnoverSummaryTax(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore(repository.WriteAppend)
	reports := NewReportUseCase(store, NewLayout(t.TempDir()))
	firm := entity.Firm{Stir: "123456789", Name: "Alfa", Director: "Vali"}

	cases := []struct {
		kind entity.TaxType
		rate string
		amt  int64
		want string
	}{
		{entity.TaxYagona, "4%", 5_000_000, "200,000"},
		{entity.TaxQQS, "15%", 10_000_000, "1,500,000"},
	}
	for _, tc := range cases {
		rec := spreadsheet.TurnoverRecord{Stir: firm.Stir, Month: entity.MonthIyun, FirmName: "Alfa", Rate: tc.rate, YearToDate: 20_000_000, MonthAmount: tc.amt}
		if _, err := reports.CommitTurnover(ctx, tc.kind, rec); err != nil {
			t.Fatalf("%s: %v", tc.kind, err)
		}
		text, found, err := reports.Summary(ctx, entity.LangLatin, firm, tc.kind, entity.MonthIyun)
		if err != nil || !found {
			t.Fatalf("%s hisobot topilmadi: %v", tc.kind, err)
		}
		if !strings.Contains(text, tc.want+" so‘m") {
			t.Errorf("%s: soliq %s kutilgan:\n%s", tc.kind, tc.want, text)
		}
		if !strings.Contains(text, "Vali") {
			t.Errorf("%s: rahbar firmadan olinmadi", tc.kind)
		}
	}

	if _, found, err := reports.Summary(ctx, entity.LangLatin, firm, entity.TaxYagona, entity.MonthMart); err != nil || found {
		t.Errorf("mavjud bo'lmagan oy: found=%v err=%v", found, err)
	}
}

func TestPreviewTurnoverRejectsBadRate(t *testing.T) {
	reports := NewReportUseCase(storage.NewMemoryStore(repository.WriteAppend), NewLayout(t.TempDir()))
	rec := spreadsheet.TurnoverRecord{Stir: "123456789", Month: entity.MonthMay, Rate: "abc"}
	if _, err := reports.PreviewTurnover(entity.LangLatin, entity.TaxYagona, rec); err == nil {
		t.Fatal("noto'g'ri stavka qabul qilindi")
	}
	rec.Rate = "4%"
	rec.MonthAmount = 5_000_000
	text, err := reports.PreviewTurnover(entity.LangLatin, entity.TaxYagona, rec)
	if err != nil || !strings.Contains(text, "Noma'lum") {
		t.Errorf("rahbarsiz hisobot: %v\n%s", err, text)
	}
}

func TestDeleteRemovesFilesThenRows(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore(repository.WriteAppend)
	layout := NewLayout(t.TempDir())
	reports := NewReportUseCase(store, layout)

	if _, err := reports.CommitPayroll(ctx, samplePayroll()); err != nil {
		t.Fatal(err)
	}
	// html ko'rsatkichi faqat lotin nusxada
	htmlLatin, htmlCyr := layout.StagePaths("123456789", entity.TaxDaromad, entity.MonthMay, entity.StageHTML)
	for _, p := range []string{htmlLatin, htmlCyr} {
		if err := os.WriteFile(p, []byte("<html></html>"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	_ = store.UpsertFile(ctx, entity.FilePointer{Stir: "123456789", TaxType: entity.TaxDaromad, Month: entity.MonthMay, Kind: entity.FileHTML, Path: htmlLatin})
	// diskda yo'q fayl jarayonni to'xtatmaydi
	_ = store.UpsertFile(ctx, entity.FilePointer{Stir: "123456789", TaxType: entity.TaxDaromad, Month: entity.MonthMay, Kind: entity.FileExcel2Latin, Path: layout.Root + "/yoq.xlsx"})

	res, err := reports.Delete(ctx, "123456789", entity.MonthMay)
	if err != nil {
		t.Fatalf("o'chirish xatosi: %v", err)
	}
	if res.FilesRemoved != 4 {
		t.Errorf("4 ta fayl o'chishi kerak edi, natija=%d", res.FilesRemoved)
	}
	if res.Reports != 1 || res.Pointers != 4 {
		t.Errorf("qatorlar: hisobot=%d ko'rsatkich=%d", res.Reports, res.Pointers)
	}
	if fileExists(htmlCyr) {
		t.Error("kirill html qoldi")
	}
	if _, err := store.GetFile(ctx, "123456789", entity.TaxDaromad, entity.MonthMay, entity.FileExcel1Latin); !errors.Is(err, entity.ErrNotFound) {
		t.Errorf("ko'rsatkich o'chmadi: %v", err)
	}
	if n, _ := store.CountReports(ctx, "123456789", entity.MonthMay); n != 0 {
		t.Errorf("hisobot qatorlari qoldi: %d", n)
	}
}

func TestFilesPreferScriptWithFallback(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore(repository.WriteAppend)
	layout := NewLayout(t.TempDir())
	reports := NewReportUseCase(store, layout)
	if _, err := reports.CommitPayroll(ctx, samplePayroll()); err != nil {
		t.Fatal(err)
	}
	latin, cyr := layout.StagePaths("123456789", entity.TaxDaromad, entity.MonthMay, entity.StageExcel1)

	files, err := reports.Files(ctx, "123456789", entity.TaxDaromad, entity.MonthMay, entity.LangCyrillic)
	if err != nil || len(files) != 1 || files[0] != cyr {
		t.Fatalf("kirill fayl kutilgan: %v %v", files, err)
	}

	// kirill nusxa diskda yo'q bo'lsa lotin yuboriladi
	if err := os.Remove(cyr); err != nil {
		t.Fatal(err)
	}
	files, _ = reports.Files(ctx, "123456789", entity.TaxDaromad, entity.MonthMay, entity.LangCyrillic)
	if len(files) != 1 || files[0] != latin {
		t.Errorf("lotin nusxaga o'tish kerak edi: %v", files)
	}

	if files, _ := reports.Files(ctx, "123456789", entity.TaxQQS, entity.MonthMay, entity.LangLatin); len(files) != 0 {
		t.Errorf("qqs uchun fayl bo'lmasligi kerak: %v", files)
	}
}

func TestSeedFromSpreadsheet(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore(repository.WriteAppend)
	if err := store.CreateFirm(ctx, entity.Firm{Stir: "123456789", Name: "Alfa", Regime: entity.RegimeDSYS}); err != nil {
		t.Fatal(err)
	}
	reports := NewReportUseCase(store, NewLayout(t.TempDir()))
	dir := t.TempDir()

	path := dir + "/seed.xlsx"
	writeXLSX(t, path, [][]any{
		{"STIR", "Oy", "Firma nomi", "Rahbar", "Stavka", "Yil boshidan", "Shu oy"},
		{"123456789", "Iyun", "Alfa", "Vali", "4%", 20_000_000, 5_000_000},
		{"987654321", "Iyun", "Noma'lum", "Ali", "4%", 1_000_000, 500_000},
	})
	res := reports.Seed(ctx, entity.TaxYagona, path, entity.LangLatin)
	if !res.IsOK() {
		t.Fatalf("seed o'qilmadi: %+v", res)
	}
	entries := res.Value.Entries()
	if len(entries) != 1 || entries[0].Stir != "123456789" || entries[0].Month != entity.MonthIyun {
		t.Fatalf("faqat bazadagi firma qatori kutilgan: %+v", entries)
	}
	rec, ok := res.Value.Turnover("123456789", entity.MonthIyun)
	if !ok || rec.MonthAmount != 5_000_000 || rec.YearToDate != 20_000_000 {
		t.Errorf("qator noto'g'ri: %+v %v", rec, ok)
	}
	if _, ok := res.Value.Turnover("123456789", entity.MonthMay); ok {
		t.Error("faylda yo'q oy topilmasligi kerak")
	}

	empty := dir + "/empty.xlsx"
	writeXLSX(t, empty, [][]any{{"STIR", "Oy", "Firma nomi", "Rahbar", "Stavka", "Yil boshidan", "Shu oy"}})
	if res := reports.Seed(ctx, entity.TaxYagona, empty, entity.LangLatin); res.IsOK() {
		t.Error("bo'sh fayl Invalid bo'lishi kerak")
	}
}
