package spreadsheet

import (
	"fmt"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
	"github.com/Samandarmister/Firmauz-bot/internal/infrastructure/i18n"
)

// TurnoverRecord yagona soliq yoki QQS qatori
type TurnoverRecord struct {
	Stir        string
	Month       entity.Month
	FirmName    string
	Director    string
	Rate        string
	YearToDate  int64
	MonthAmount int64
}

// ParseTurnover yagona/QQS faylini o'qiydi.
// Ustunlar: STIR, Oy, Firma nomi, Rahbar, Stavka, Yil boshidan, Shu oy.
// Varaq tilga qarab Sheet1 yoki Лист1, topilmasa faol varaq.
func ParseTurnover(path string, lang entity.Language, known KnownFirm) (res *Parsed[TurnoverRecord]) {
	res = newParsed[TurnoverRecord]()
	defer func() {
		if r := recover(); r != nil {
			res.fail(path, fmt.Errorf("panic: %v", r))
		}
	}()

	preferred := SheetLatin
	if lang == entity.LangCyrillic {
		preferred = SheetCyrillic
	}
	rows, err := readRows(path, preferred)
	if err != nil {
		return res.fail(path, err)
	}

	for i, row := range rows {
		if i == 0 || emptyRow(row) {
			continue
		}
		rowNo := i + 1
		stir, monthRaw, name, director, rate := cell(row, 0), cell(row, 1), cell(row, 2), cell(row, 3), cell(row, 4)
		ytdRaw, amountRaw := cell(row, 5), cell(row, 6)

		if stir == "" || monthRaw == "" || name == "" || director == "" || rate == "" || ytdRaw == "" || amountRaw == "" {
			res.skip(rowNo, "bo'sh maydon bor")
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
		month, ok := entity.ParseMonth(monthRaw)
		if !ok {
			res.skip(rowNo, "noto'g'ri oy: %q", monthRaw)
			continue
		}
		if _, err := entity.ParseRate(rate); err != nil {
			res.skip(rowNo, "%v", err)
			continue
		}
		ytd, ok1 := parseAmount(ytdRaw)
		amount, ok2 := parseAmount(amountRaw)
		if !ok1 || !ok2 {
			res.skip(rowNo, "aylanma raqam emas: %q, %q", ytdRaw, amountRaw)
			continue
		}
		if _, err := entity.ComputeRateTax(amount, rate); err != nil {
			res.skip(rowNo, "%v", err)
			continue
		}

		res.put(Key{stir, month}, TurnoverRecord{
			Stir:        stir,
			Month:       month,
			FirmName:    i18n.Convert(lang, name),
			Director:    i18n.Convert(lang, director),
			Rate:        entity.NormalizeRate(rate),
			YearToDate:  ytd,
			MonthAmount: amount,
		})
	}
	return res
}
