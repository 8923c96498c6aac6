package entity

import (
	"math"
	"testing"
)

func TestComputeRateTax(t *testing.T) {
	cases := []struct {
		amount int64
		rate   string
		want   int64
	}{
		{5_000_000, "4%", 200_000},
		{10_000_000, "15%", 1_500_000},
		{10_000_000, "12", 1_200_000},
		{1_000, " 4.5 % ", 45},
		{999, "1%", 9},
		{0, "4%", 0},
	}
	for _, tc := range cases {
		got, err := ComputeRateTax(tc.amount, tc.rate)
		if err != nil {
			t.Fatalf("%d × %s: kutilmagan xato: %v", tc.amount, tc.rate, err)
		}
		if got != tc.want {
			t.Errorf("%d × %s: kutilgan=%d, natija=%d", tc.amount, tc.rate, tc.want, got)
		}
	}
}

func TestComputeRateTaxInvalid(t *testing.T) {
	cases := []struct {
		amount int64
		rate   string
	}{
		{100, ""},
		{100, "%"},
		{100, "abc"},
		{100, "-3%"},
		{5_000_000, "NaN%"},
		{5_000_000, "nan"},
		{5_000_000, "Inf"},
		{5_000_000, "-Inf%"},
		{5_000_000, "1e400%"},
		{math.MaxInt64, "200%"},
		{5_000_000, "1e300%"},
	}
	for _, tc := range cases {
		if tax, err := ComputeRateTax(tc.amount, tc.rate); err == nil {
			t.Errorf("%d × %q: xato kutilgan edi, natija=%d", tc.amount, tc.rate, tax)
		}
	}
	if _, err := ParseRate("NaN%"); err == nil {
		t.Error("ParseRate NaN ni qabul qilmasligi kerak")
	}
}

func TestNewPayrollReport(t *testing.T) {
	employees := []Employee{
		{Position: "Direktor", FullName: "Aliyev Vali", YearToDate: 3_000_000, ThisMonth: 3_000_000},
		{Position: "Hisobchi", FullName: "Karimova Zuhra", YearToDate: 2_000_000, ThisMonth: 2_000_000},
	}
	r := NewPayrollReport("123456789", MonthMay, "Alfa", employees, 12)
	if r.PeriodPay != 5_000_000 {
		t.Errorf("oylik yig'indi: kutilgan=5000000, natija=%d", r.PeriodPay)
	}
	if r.TotalPay != 5_000_000 {
		t.Errorf("jami: kutilgan=5000000, natija=%d", r.TotalPay)
	}
	if r.Tax != 600_000 {
		t.Errorf("soliq: kutilgan=600000, natija=%d", r.Tax)
	}
	if r.EmployeeCount != 2 {
		t.Errorf("xodimlar soni: %d", r.EmployeeCount)
	}
}

func TestNewPayrollReportSkipsNonPositive(t *testing.T) {
	employees := []Employee{
		{FullName: "A", YearToDate: 100, ThisMonth: 100},
		{FullName: "B", YearToDate: 50, ThisMonth: 0},
	}
	r := NewPayrollReport("123456789", MonthMart, "Beta", employees, 12)
	if r.PeriodPay != 100 || r.TotalPay != 150 || r.Tax != 12 {
		t.Fatalf("natija noto'g'ri: %+v", r)
	}
}

func TestNewTurnoverReport(t *testing.T) {
	r, err := NewTurnoverReport(TaxYagona, "123456789", MonthMay, "Alfa", "Vali", "4", 20_000_000, 5_000_000)
	if err != nil {
		t.Fatalf("xato: %v", err)
	}
	if r.Rate != "4%" || r.Tax != 200_000 {
		t.Fatalf("natija noto'g'ri: %+v", r)
	}
}
