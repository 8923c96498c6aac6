package spreadsheet

import (
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
)

var phoneRe = regexp.MustCompile(`^\+998\d{9}$`)

// ParseFirms ommaviy import fayli.
// Ustunlar: STIR, Firma nomi, Soliq turi, Rahbar, Telefon, DS%, YS%, QQS%.
// Takroriy STIR'lar bu yerda tekshirilmaydi.
func ParseFirms(path string) (rows []entity.FirmImportRow, skipped []Skip, errText string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ firmalar excel panic: %v, fayl: %s", r, path)
			rows, skipped, errText = nil, nil, fmt.Sprintf("Excel faylini o'qishda xato: %v", r)
		}
	}()

	raw, err := readRows(path, SheetCyrillic)
	if err != nil {
		log.Printf("❌ firmalar excel: %v, fayl: %s", err, path)
		return nil, nil, fmt.Sprintf("Excel faylini o'qishda xato: %v", err)
	}

	skip := func(row int, format string, args ...any) {
		reason := fmt.Sprintf(format, args...)
		log.Printf("⚠️ firmalar excel: %d-qator o'tkazildi: %s", row, reason)
		skipped = append(skipped, Skip{Row: row, Reason: reason})
	}

	for i, row := range raw {
		if i == 0 || emptyRow(row) {
			continue
		}
		rowNo := i + 1
		if len(row) > 8 && !emptyRow(row[8:]) {
			skip(rowNo, "ustunlar soni mos emas")
			continue
		}
		stir := cell(row, 0)
		name := cell(row, 1)
		regimeRaw := strings.ToLower(cell(row, 2))
		director := cell(row, 3)
		phone := cell(row, 4)

		if stir == "" || name == "" || regimeRaw == "" || director == "" || phone == "" {
			skip(rowNo, "bo'sh maydon")
			continue
		}
		if !IsStir(stir) {
			skip(rowNo, "noto'g'ri STIR: %q", stir)
			continue
		}
		regime, ok := entity.ParseRegime(regimeRaw)
		if !ok {
			log.Printf("⚠️ firmalar excel: %d-qator: soliq turi %q noto'g'ri, ds-ys qo'yildi", rowNo, regimeRaw)
			regime = entity.RegimeDSYS
		}
		if !phoneRe.MatchString(phone) {
			skip(rowNo, "noto'g'ri telefon: %q", phone)
			continue
		}

		rows = append(rows, entity.FirmImportRow{
			Row:   rowNo,
			Phone: phone,
			Firm: entity.Firm{
				Stir:     stir,
				Name:     name,
				Director: director,
				Regime:   regime,
				DSRate:   normPercent(cell(row, 5)),
				YSRate:   normPercent(cell(row, 6)),
				QQSRate:  normPercent(cell(row, 7)),
			},
		})
	}
	return rows, skipped, ""
}

// normPercent "12%" -> "12", bo'sh -> "0"
func normPercent(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "%", ""))
	if s == "" {
		return "0"
	}
	return cleanCell(s)
}
