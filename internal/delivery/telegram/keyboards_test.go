package telegram

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
)

func TestPaging(t *testing.T) {
	cases := []struct {
		total, size, page int
		pages, clamped    int
		from, to          int
	}{
		{0, 10, 0, 1, 0, 0, 0},
		{10, 10, 0, 1, 0, 0, 10},
		{11, 10, 1, 2, 1, 10, 11},
		{25, 10, 5, 3, 2, 20, 25},
		{25, 10, -3, 3, 0, 0, 10},
	}
	for _, tc := range cases {
		if got := calcTotalPages(tc.total, tc.size); got != tc.pages {
			t.Errorf("calcTotalPages(%d): kutilgan=%d, natija=%d", tc.total, tc.pages, got)
		}
		page := clampPage(tc.page, tc.total, tc.size)
		if page != tc.clamped {
			t.Errorf("clampPage(%d, %d): kutilgan=%d, natija=%d", tc.page, tc.total, tc.clamped, page)
		}
		from, to := pageBounds(page, tc.total, tc.size)
		if from != tc.from || to != tc.to {
			t.Errorf("pageBounds(%d, %d): kutilgan=[%d,%d), natija=[%d,%d)", page, tc.total, tc.from, tc.to, from, to)
		}
	}
}

func TestFirmPickerPages(t *testing.T) {
	var firms []entity.Firm
	for i := 0; i < 23; i++ {
		firms = append(firms, entity.Firm{Stir: fmt.Sprintf("1000000%02d", i), Name: fmt.Sprintf("Firma %d", i)})
	}

	kb, page, total := firmPicker(entity.LangLatin, firms, 9)
	if page != 2 || total != 3 {
		t.Fatalf("sahifa: kutilgan=2/3, natija=%d/%d", page, total)
	}
	// 3 ta firma + navigatsiya + qidiruv/orqaga
	if len(kb.InlineKeyboard) != 5 {
		t.Fatalf("qatorlar soni: natija=%d", len(kb.InlineKeyboard))
	}
	first := kb.InlineKeyboard[0][0]
	if first.CallbackData == nil || *first.CallbackData != "fp|100000020" {
		t.Errorf("birinchi tugma: %+v", first)
	}
	nav := kb.InlineKeyboard[3]
	if len(nav) != 2 || !strings.Contains(nav[1].Text, "3/3") {
		t.Errorf("oxirgi sahifada Keyingi bo'lmasligi kerak: %+v", nav)
	}

	kb, _, _ = firmPicker(entity.LangCyrillic, firms, 0)
	if !strings.Contains(kb.InlineKeyboard[0][0].Text, "Фирма") {
		t.Errorf("firma nomi kirillga o'girilmadi: %q", kb.InlineKeyboard[0][0].Text)
	}
}

func TestMonthKeyboard(t *testing.T) {
	kb := monthKeyboard(entity.LangLatin, func(m entity.Month) action { return action{Kind: actMonth, Month: m} })
	n := 0
	for _, row := range kb.InlineKeyboard {
		if len(row) > 3 {
			t.Errorf("qatorda 3 tadan ko'p tugma: %d", len(row))
		}
		n += len(row)
	}
	if n != len(entity.AllMonths) {
		t.Errorf("oylar soni: kutilgan=%d, natija=%d", len(entity.AllMonths), n)
	}
}

func TestSplitIntoChunks(t *testing.T) {
	lines := strings.Repeat("a", 3000) + "\n" + strings.Repeat("b", 3000)
	chunks := splitIntoChunks(lines, maxMessageLen)
	if len(chunks) != 2 || chunks[0] != strings.Repeat("a", 3000) {
		t.Fatalf("qator chegarasida bo'linishi kerak: %d bo'lak", len(chunks))
	}

	// yangi qatorsiz kirill matn rune o'rtasidan kesilmasligi kerak
	cyr := strings.Repeat("ж", 2100) + "x"
	chunks = splitIntoChunks(cyr, maxMessageLen)
	if len(chunks) != 2 {
		t.Fatalf("bo'laklar soni: natija=%d", len(chunks))
	}
	for _, c := range chunks {
		if len(c) > maxMessageLen || !utf8.ValidString(c) {
			t.Errorf("bo'lak noto'g'ri: uzunlik=%d", len(c))
		}
	}
	if got := splitIntoChunks("qisqa", maxMessageLen); len(got) != 1 || got[0] != "qisqa" {
		t.Errorf("qisqa matn bo'linmasligi kerak: %v", got)
	}
}
