package entity

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Employee oylik hisobotidagi xodim
type Employee struct {
	Position   string
	FullName   string
	YearToDate int64
	ThisMonth  int64
}

// PayrollReport daromad solig'i hisoboti
type PayrollReport struct {
	ID            int64
	Stir          string
	Month         Month
	FirmName      string
	EmployeeCount int
	Employees     []Employee
	PeriodPay     int64
	TotalPay      int64
	Tax           int64
	CreatedAt     time.Time
}

// NewPayrollReport yig'indilarni va soliqni hisoblaydi
func NewPayrollReport(stir string, month Month, firmName string, employees []Employee, taxPercent int64) PayrollReport {
	r := PayrollReport{
		Stir:          stir,
		Month:         month,
		FirmName:      firmName,
		EmployeeCount: len(employees),
		Employees:     append([]Employee(nil), employees...),
	}
	for _, e := range employees {
		if e.ThisMonth > 0 {
			r.PeriodPay += e.ThisMonth
		}
		r.TotalPay += e.YearToDate
	}
	r.Tax = r.PeriodPay * taxPercent / 100
	return r
}

// TurnoverReport yagona soliq yoki QQS hisoboti
type TurnoverReport struct {
	ID          int64
	Kind        TaxType
	Stir        string
	Month       Month
	FirmName    string
	Director    string
	Rate        string
	YearToDate  int64
	MonthAmount int64
	Tax         int64
	CreatedAt   time.Time
}

// NewTurnoverReport stavka bo'yicha soliqni hisoblaydi
func NewTurnoverReport(kind TaxType, stir string, month Month, firmName, director, rate string, ytd, monthAmount int64) (TurnoverReport, error) {
	tax, err := ComputeRateTax(monthAmount, rate)
	if err != nil {
		return TurnoverReport{}, err
	}
	return TurnoverReport{
		Kind:        kind,
		Stir:        stir,
		Month:       month,
		FirmName:    firmName,
		Director:    director,
		Rate:        NormalizeRate(rate),
		YearToDate:  ytd,
		MonthAmount: monthAmount,
		Tax:         tax,
	}, nil
}

// ParseRate "4%", "4", " 4.5 % " -> foiz qiymati
func ParseRate(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, fmt.Errorf("stavka bo'sh")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("stavka noto'g'ri: %q", raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("stavka noto'g'ri: %q", raw)
	}
	if v < 0 {
		return 0, fmt.Errorf("stavka manfiy: %q", raw)
	}
	return v, nil
}

// NormalizeRate stavkani "N%" ko'rinishiga keltiradi
func NormalizeRate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return s
	}
	if !strings.HasSuffix(s, "%") {
		s += "%"
	}
	return s
}

// ComputeRateTax aylanma × stavka, butun songa qirqiladi
func ComputeRateTax(amount int64, rate string) (int64, error) {
	pct, err := ParseRate(rate)
	if err != nil {
		return 0, err
	}
	tax := float64(amount) * pct / 100
	// float64(math.MaxInt64) 2^63 ga yaxlitlanadi, shuning uchun >=
	if tax >= math.MaxInt64 || tax < math.MinInt64 {
		return 0, fmt.Errorf("soliq summasi juda katta: %d × %s", amount, rate)
	}
	return int64(tax), nil
}
