package entity

import "testing"

func TestParseMonth(t *testing.T) {
	cases := []struct {
		in   string
		want Month
		ok   bool
	}{
		{"Iyun", MonthIyun, true},
		{"iyun", MonthIyun, true},
		{"Июн", MonthIyun, true},
		{" МАЙ ", MonthMay, true},
		{"yanvar", MonthYanvar, true},
		{"avgust", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseMonth(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseMonth(%q): kutilgan=(%q,%v), natija=(%q,%v)", tc.in, tc.want, tc.ok, got, ok)
		}
	}
}

func TestMonthName(t *testing.T) {
	if MonthFevral.Name(LangCyrillic) != "Феврал" {
		t.Error("Феврал kutilgan")
	}
	if MonthFevral.Name(LangLatin) != "Fevral" {
		t.Error("Fevral kutilgan")
	}
}

func TestRegimeTaxTypes(t *testing.T) {
	if !RegimeDSYS.Allows(TaxYagona) || RegimeDSYS.Allows(TaxQQS) {
		t.Error("ds-ys: daromad va yagona bo'lishi kerak")
	}
	if !RegimeDSQQS.Allows(TaxQQS) || RegimeDSQQS.Allows(TaxYagona) {
		t.Error("ds-qqs: daromad va qqs bo'lishi kerak")
	}
	if _, ok := ParseRegime("ds-xx"); ok {
		t.Error("noma'lum rejim qabul qilindi")
	}
}
