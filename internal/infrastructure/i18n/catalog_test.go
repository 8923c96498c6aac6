package i18n

import (
	"strings"
	"testing"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
)

func TestEveryKeyInBothLanguages(t *testing.T) {
	for _, key := range Keys() {
		if !Has(entity.LangLatin, key) {
			t.Errorf("lotin matn yo'q: %s", key)
		}
		if !Has(entity.LangCyrillic, key) {
			t.Errorf("kirill matn yo'q: %s", key)
		}
	}
	if len(latinTexts) != len(cyrillicTexts) {
		t.Fatalf("kalitlar soni farq qiladi: lotin=%d kirill=%d", len(latinTexts), len(cyrillicTexts))
	}
}

func TestTFillsPlaceholders(t *testing.T) {
	got := T(entity.LangLatin, KeySelectTaxType, P{"stir": "123456789"})
	if got != "📊 STIR: 123456789\nSoliq turini tanlang:" {
		t.Fatalf("noto'g'ri matn: %q", got)
	}
	got = T(entity.LangCyrillic, KeySelectTaxType, P{"stir": "123456789"})
	if !strings.Contains(got, "СТИР: 123456789") {
		t.Fatalf("kirill matn noto'g'ri: %q", got)
	}
}

func TestTurnoverReportsMentionYear(t *testing.T) {
	for _, lang := range []entity.Language{entity.LangLatin, entity.LangCyrillic} {
		for _, key := range []string{KeyYagonaReport, KeyQQSReport} {
			got := T(lang, key, P{"yil": 2025, "oy": "May"})
			if !strings.Contains(got, "2025-") {
				t.Errorf("%s/%s: yil yo'q", lang, key)
			}
			if strings.Contains(got, "{") {
				t.Errorf("%s/%s: to'ldirilmagan joy bor: %q", lang, key, got)
			}
		}
	}
}

func TestUnknownKey(t *testing.T) {
	if got := T(entity.LangLatin, "yoq_kalit", nil); got != missingText {
		t.Fatalf("kutilgan=%q, natija=%q", missingText, got)
	}
}

func TestTrKeepsProtectedTokens(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Faqat .xlsx fayl", "Фақат .xlsx файл"},
		{"Bekor qilish: /cancel", "Бекор қилиш: /cancel"},
		{"STIR: %s", "СТИР: %s"},
		{"Fayl turi: excel1_latin", "Файл тури: excel1_latin"},
	}
	for _, tc := range cases {
		if got := Tr(entity.LangCyrillic, tc.in); got != tc.want {
			t.Errorf("Tr(%q): kutilgan=%q, natija=%q", tc.in, tc.want, got)
		}
	}
	if got := Tr(entity.LangLatin, "Faqat .xlsx fayl"); got != "Faqat .xlsx fayl" {
		t.Errorf("lotinda o'zgarmasligi kerak: %q", got)
	}
}

func TestTrf(t *testing.T) {
	got := Trf(entity.LangCyrillic, "STIR: %s", "302824863")
	if got != "СТИР: 302824863" {
		t.Fatalf("natija=%q", got)
	}
}

func TestMonthName(t *testing.T) {
	if MonthName(entity.LangCyrillic, entity.MonthIyun) != "Июн" {
		t.Fatal("Июн kutilgan")
	}
	if MonthName(entity.LangLatin, entity.MonthIyun) != "Iyun" {
		t.Fatal("Iyun kutilgan")
	}
}
