package usecase

import (
	"strings"
	"testing"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
)

func TestValidateStir(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"123456789", true},
		{" 302824863 ", true},
		{"12345678", false},
		{"1234567890", false},
		{"12345678a", false},
		{"", false},
	}
	for _, tc := range cases {
		res := ValidateStir(tc.in)
		if res.IsOK() != tc.ok {
			t.Errorf("STIR=%q: kutilgan=%v, natija=%v", tc.in, tc.ok, res.Kind)
		}
	}
}

func TestValidatePhone(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"+998901234567", true},
		{"998901234567", false},
		{"+99890123456", false},
		{"+9989012345678", false},
		{"+998 90 123 45 67", false},
	}
	for _, tc := range cases {
		res := ValidatePhone(tc.in)
		if res.IsOK() != tc.ok {
			t.Errorf("telefon=%q: kutilgan=%v, natija=%v", tc.in, tc.ok, res.Kind)
		}
	}
}

func TestValidateFirmNameCountsRunes(t *testing.T) {
	if ValidateFirmName("Ab").IsOK() {
		t.Error("2 belgili nom qabul qilindi")
	}
	if !ValidateFirmName("Абв").IsOK() {
		t.Error("3 belgili kirill nom rad etildi")
	}
	if res := ValidateFirmName("  Zamin Agro "); res.Value != "Zamin Agro" {
		t.Errorf("nom kesilmadi: %q", res.Value)
	}
}

func TestValidateEmployeeCount(t *testing.T) {
	for in, ok := range map[string]bool{"3": true, " 1 ": true, "0": false, "-2": false, "abc": false} {
		if ValidateEmployeeCount(in).IsOK() != ok {
			t.Errorf("xodimlar soni %q: kutilgan=%v", in, ok)
		}
	}
}

func TestParseEmployeeLine(t *testing.T) {
	res := ParseEmployeeLine("1 (Rahbar) – Aliyev Valijon – 0 so'm (5000000 so'm)", 1)
	if !res.IsOK() {
		t.Fatalf("qator rad etildi: %s", res.Reason)
	}
	e := res.Value
	if e.Position != "Rahbar" || e.FullName != "Aliyev Valijon" || e.ThisMonth != 0 || e.YearToDate != 5_000_000 {
		t.Fatalf("noto'g'ri xodim: %+v", e)
	}

	res = ParseEmployeeLine("2 (Hisobchi) - Karimova Zuhra - 2 000 000 so‘m (6 000 000 so‘m)", 2)
	if !res.IsOK() || res.Value.ThisMonth != 2_000_000 || res.Value.YearToDate != 6_000_000 {
		t.Fatalf("bo'shliqli summa o'qilmadi: %+v %s", res.Value, res.Reason)
	}
}

func TestParseEmployeeLineWrongIndex(t *testing.T) {
	res := ParseEmployeeLine("3 (Rahbar) – Aliyev Valijon – 0 so'm (5000000 so'm)", 2)
	if res.Kind != entity.ResultInvalid {
		t.Fatalf("tartib raqami tekshirilmadi: %v", res.Kind)
	}
	if !strings.Contains(res.Reason, "2-xodimni") {
		t.Errorf("xabarda kutilgan raqam yo'q: %q", res.Reason)
	}
}

func TestParseEmployeeLineMalformed(t *testing.T) {
	for _, line := range []string{
		"",
		"Aliyev Valijon 5000000",
		"1 (Rahbar) – Aliyev – abc so'm (5000000 so'm)",
		"1 Rahbar – Aliyev – 0 so'm (5000000 so'm)",
	} {
		if ParseEmployeeLine(line, 1).IsOK() {
			t.Errorf("noto'g'ri qator qabul qilindi: %q", line)
		}
	}
}

func TestParseTurnoverLine(t *testing.T) {
	res := ParseTurnoverLine(entity.TaxYagona, "4%, 10000000, 5000000")
	if !res.IsOK() {
		t.Fatalf("rad etildi: %s", res.Reason)
	}
	if res.Value.Rate != "4%" || res.Value.YearToDate != 10_000_000 || res.Value.MonthAmount != 5_000_000 {
		t.Fatalf("noto'g'ri qiymatlar: %+v", res.Value)
	}

	res = ParseTurnoverLine(entity.TaxQQS, " 15 % , 20 000 000 , 10 000 000 ")
	if !res.IsOK() || res.Value.Rate != "15%" || res.Value.MonthAmount != 10_000_000 {
		t.Fatalf("QQS qatori o'qilmadi: %+v %s", res.Value, res.Reason)
	}
}

func TestParseTurnoverLineHints(t *testing.T) {
	res := ParseTurnoverLine(entity.TaxQQS, "15, 100, 50")
	if res.IsOK() || !strings.Contains(res.Reason, "15%, 20000000, 10000000") {
		t.Errorf("QQS namunasi kutilgan edi: %+v", res)
	}
	res = ParseTurnoverLine(entity.TaxYagona, "salom")
	if res.IsOK() || !strings.Contains(res.Reason, "4%, 10000000, 5000000") {
		t.Errorf("yagona namunasi kutilgan edi: %+v", res)
	}
	// soliq int64 dan oshib ketadi
	res = ParseTurnoverLine(entity.TaxYagona, "999999999%, 1, 9000000000000000000")
	if res.IsOK() {
		t.Errorf("juda katta soliq rad etilishi kerak: %+v", res.Value)
	}
}
