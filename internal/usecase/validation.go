package usecase

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/constants"
	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
)

var (
	reStir  = regexp.MustCompile(`^\d{9}$`)
	rePhone = regexp.MustCompile(`^\+998\d{9}$`)

	// "1 (Rahbar) – Aliyev Valijon – 0 so'm (5000000 so'm)"
	reEmployeeLine = regexp.MustCompile(`^\s*(\d+)\s*\((.*?)\)\s*[–—-]\s*(.*?)\s*[–—-]\s*([\d\s]+)\s*so['’‘ʻ]?m\s*\(\s*([\d\s]+)\s*so['’‘ʻ]?m\s*\)\s*$`)

	// "4%, 10000000, 5000000"
	reTurnoverLine = regexp.MustCompile(`^\s*([\d.,]+\s*%)\s*,\s*([\d\s]+)\s*,\s*([\d\s]+)\s*$`)
)

// Validatsiya xabarlari (lotin, tarjima delivery qatlamida)
const (
	msgBadStir          = "❌ STIR 9 ta raqamdan iborat bo'lishi kerak."
	msgBadPhone         = "❌ Telefon raqami +998XXXXXXXXX formatida bo'lishi kerak."
	msgShortFirmName    = "❌ Firma nomi kamida 3 ta belgidan iborat bo'lishi kerak."
	msgBadEmployeeCount = "❌ Xodimlar soni 0 dan katta bo'lishi kerak."
	msgBadEmployeeLine  = "❌ Noto'g'ri format. Namuna: 1 (Rahbar) – Aliyev Valijon – 0 so'm (5000000 so'm)"
	msgBadRegime        = "❌ Soliq rejimi ds-ys yoki ds-qqs bo'lishi kerak."
	msgEmptyDirector    = "❌ Rahbar ismi bo'sh bo'lmasligi kerak."
)

// ValidateStir 9 xonali raqamli STIR
func ValidateStir(raw string) entity.Result[string] {
	s := strings.TrimSpace(raw)
	if !reStir.MatchString(s) {
		return entity.Invalid[string](msgBadStir)
	}
	return entity.OK(s)
}

// ValidatePhone +998 va 9 ta raqam
func ValidatePhone(raw string) entity.Result[string] {
	s := strings.TrimSpace(raw)
	if !rePhone.MatchString(s) {
		return entity.Invalid[string](msgBadPhone)
	}
	return entity.OK(s)
}

func ValidateRegime(raw string) entity.Result[entity.Regime] {
	r, ok := entity.ParseRegime(raw)
	if !ok {
		return entity.Invalid[entity.Regime](msgBadRegime)
	}
	return entity.OK(r)
}

// ValidateFirmName belgilar soni bo'yicha (bayt emas)
func ValidateFirmName(raw string) entity.Result[string] {
	s := strings.TrimSpace(raw)
	if utf8.RuneCountInString(s) < constants.MinFirmNameLen {
		return entity.Invalid[string](msgShortFirmName)
	}
	return entity.OK(s)
}

func ValidateDirector(raw string) entity.Result[string] {
	s := strings.TrimSpace(raw)
	if s == "" {
		return entity.Invalid[string](msgEmptyDirector)
	}
	return entity.OK(s)
}

// ValidateEmployeeCount musbat butun son
func ValidateEmployeeCount(raw string) entity.Result[int] {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return entity.Invalid[int](msgBadEmployeeCount)
	}
	return entity.OK(n)
}

// ParseEmployeeLine xodim qatorini o'qiydi. Tartib raqami expectedIdx ga teng bo'lishi shart.
func ParseEmployeeLine(line string, expectedIdx int) entity.Result[entity.Employee] {
	m := reEmployeeLine.FindStringSubmatch(line)
	if m == nil {
		return entity.Invalid[entity.Employee](msgBadEmployeeLine)
	}
	idx, err := strconv.Atoi(m[1])
	if err != nil || idx != expectedIdx {
		return entity.Invalid[entity.Employee](fmt.Sprintf("❌ Noto'g'ri tartib raqami. %d-xodimni kiriting.", expectedIdx))
	}
	thisMonth, err1 := parseSpacedInt(m[4])
	ytd, err2 := parseSpacedInt(m[5])
	if err1 != nil || err2 != nil {
		return entity.Invalid[entity.Employee](msgBadEmployeeLine)
	}
	position := strings.TrimSpace(m[2])
	name := strings.TrimSpace(m[3])
	if name == "" {
		return entity.Invalid[entity.Employee](msgBadEmployeeLine)
	}
	return entity.OK(entity.Employee{
		Position:   position,
		FullName:   name,
		ThisMonth:  thisMonth,
		YearToDate: ytd,
	})
}

// TurnoverInput yagona yoki QQS uchun qo'lda kiritilgan uchlik
type TurnoverInput struct {
	Rate        string
	YearToDate  int64
	MonthAmount int64
}

// ParseTurnoverLine "stavka%, yil boshidan, shu oy" qatorini o'qiydi
func ParseTurnoverLine(kind entity.TaxType, line string) entity.Result[TurnoverInput] {
	m := reTurnoverLine.FindStringSubmatch(line)
	if m == nil {
		return entity.Invalid[TurnoverInput](turnoverHint(kind))
	}
	rate := strings.ReplaceAll(m[1], " ", "")
	if _, err := entity.ParseRate(rate); err != nil {
		return entity.Invalid[TurnoverInput](turnoverHint(kind))
	}
	ytd, err1 := parseSpacedInt(m[2])
	month, err2 := parseSpacedInt(m[3])
	if err1 != nil || err2 != nil {
		return entity.Invalid[TurnoverInput](turnoverHint(kind))
	}
	if _, err := entity.ComputeRateTax(month, rate); err != nil {
		return entity.Invalid[TurnoverInput](turnoverHint(kind))
	}
	return entity.OK(TurnoverInput{Rate: entity.NormalizeRate(rate), YearToDate: ytd, MonthAmount: month})
}

func turnoverHint(kind entity.TaxType) string {
	if kind == entity.TaxQQS {
		return "❌ Noto'g'ri format. Namuna: 15%, 20000000, 10000000"
	}
	return "❌ Noto'g'ri format. Namuna: 4%, 10000000, 5000000"
}

// parseSpacedInt "5 000 000" -> 5000000
func parseSpacedInt(raw string) (int64, error) {
	s := strings.Join(strings.Fields(raw), "")
	if s == "" {
		return 0, fmt.Errorf("son bo'sh")
	}
	return strconv.ParseInt(s, 10, 64)
}
