package spreadsheet

import (
	"fmt"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
	"github.com/Samandarmister/Firmauz-bot/internal/infrastructure/i18n"
)

// PayrollRecord bitta firma va oy uchun xodimlar ro'yxati
type PayrollRecord struct {
	Stir      string
	Month     entity.Month
	FirmName  string
	Employees []entity.Employee
}

// ParsePayroll daromad solig'i faylini o'qiydi.
// Ustunlar: STIR, Oy, Firma nomi, Lavozim, F.I.Sh, Yil boshidan, Shu oy.
// STIR, oy va firma nomi bo'sh bo'lsa oldingi to'g'ri qatordan olinadi.
func ParsePayroll(path string, lang entity.Language, known KnownFirm) (res *Parsed[PayrollRecord]) {
	res = newParsed[PayrollRecord]()
	defer func() {
		if r := recover(); r != nil {
			res.fail(path, fmt.Errorf("panic: %v", r))
		}
	}()

	rows, err := readRows(path)
	if err != nil {
		return res.fail(path, err)
	}

	var curStir, curMonth, curName string
	for i, row := range rows {
		if i == 0 || emptyRow(row) {
			continue
		}
		rowNo := i + 1
		stir := orDefault(cell(row, 0), curStir)
		monthRaw := orDefault(cell(row, 1), curMonth)
		name := orDefault(cell(row, 2), curName)
		position := cell(row, 3)
		fullName := cell(row, 4)
		ytdRaw := cell(row, 5)
		monthRawAmt := cell(row, 6)

		if stir == "" || monthRaw == "" || name == "" || position == "" || fullName == "" || ytdRaw == "" || monthRawAmt == "" {
			res.skip(rowNo, "bo'sh maydon bor")
			continue
		}
		ytd, ok1 := parseAmount(ytdRaw)
		thisMonth, ok2 := parseAmount(monthRawAmt)
		if !ok1 || !ok2 {
			res.skip(rowNo, "maosh raqam emas: %q, %q", ytdRaw, monthRawAmt)
			continue
		}
		month, ok := entity.ParseMonth(monthRaw)
		if !ok {
			res.skip(rowNo, "noto'g'ri oy: %q", monthRaw)
			continue
		}
		if !IsStir(stir) {
			res.skip(rowNo, "noto'g'ri STIR: %q", stir)
			continue
		}
		if known != nil && !known(stir) {
			res.skip(rowNo, "STIR bazada yo'q: %s", stir)
			continue
		}

		curStir, curMonth, curName = stir, monthRaw, name

		key := Key{stir, month}
		rec, exists := res.Get(stir, month)
		if !exists {
			rec = PayrollRecord{Stir: stir, Month: month, FirmName: i18n.Convert(lang, name)}
		}
		rec.Employees = append(rec.Employees, entity.Employee{
			Position:   i18n.Convert(lang, position),
			FullName:   i18n.Convert(lang, fullName),
			YearToDate: ytd,
			ThisMonth:  thisMonth,
		})
		res.put(key, rec)
	}
	return res
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
