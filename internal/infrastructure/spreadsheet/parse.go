// Package spreadsheet hisobot va firmalar .xlsx fayllarini o'qish va yaratish.
package spreadsheet

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
)

// Sheet nomlari
const (
	SheetLatin    = "Sheet1"
	SheetCyrillic = "Лист1"
)

// KnownFirm STIR bazada bormi
type KnownFirm func(stir string) bool

// Key (STIR, oy) juftligi
type Key struct {
	Stir  string
	Month entity.Month
}

// Skip o'tkazib yuborilgan qator
type Skip struct {
	Row    int
	Reason string
}

// Parsed o'qish natijasi. Err bo'sh bo'lmasa Records bo'sh bo'ladi.
type Parsed[T any] struct {
	Records []T
	Skipped []Skip
	Err     string

	index map[Key]int
}

func newParsed[T any]() *Parsed[T] {
	return &Parsed[T]{index: make(map[Key]int)}
}

// Get kalit bo'yicha yozuv
func (p *Parsed[T]) Get(stir string, month entity.Month) (T, bool) {
	var zero T
	if p == nil {
		return zero, false
	}
	i, ok := p.index[Key{stir, month}]
	if !ok {
		return zero, false
	}
	return p.Records[i], true
}

// OK kamida bitta yozuv bor va xato yo'q
func (p *Parsed[T]) OK() bool { return p != nil && p.Err == "" && len(p.Records) > 0 }

func (p *Parsed[T]) put(k Key, v T) {
	if i, ok := p.index[k]; ok {
		p.Records[i] = v
		return
	}
	p.index[k] = len(p.Records)
	p.Records = append(p.Records, v)
}

func (p *Parsed[T]) skip(row int, format string, args ...any) {
	reason := fmt.Sprintf(format, args...)
	log.Printf("⚠️ excel: %d-qator o'tkazildi: %s", row, reason)
	p.Skipped = append(p.Skipped, Skip{Row: row, Reason: reason})
}

func (p *Parsed[T]) fail(path string, err error) *Parsed[T] {
	log.Printf("❌ excel o'qishda xato: %v, fayl: %s", err, path)
	p.Records = nil
	p.index = make(map[Key]int)
	p.Err = fmt.Sprintf("Excel faylni o'qishda xato: %v", err)
	return p
}

// readRows fayldagi satrlarni xom qiymat bilan o'qiydi.
// preferred bo'sh bo'lmasa va mavjud bo'lsa shu varaq, aks holda faol varaq.
func readRows(path string, preferred ...string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	for _, name := range preferred {
		if idx, err := f.GetSheetIndex(name); err == nil && idx >= 0 {
			sheet = name
			break
		}
	}
	if sheet == "" {
		return nil, fmt.Errorf("varaq topilmadi")
	}
	return f.GetRows(sheet, excelize.Options{RawCellValue: true})
}

func cell(row []string, i int) string {
	if i < len(row) {
		return cleanCell(row[i])
	}
	return ""
}

// cleanCell "12.0" -> "12"
func cleanCell(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasSuffix(s, ".0") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			s = strconv.FormatInt(int64(f), 10)
		}
	}
	return s
}

func emptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseAmount butun son yoki kasr (qirqiladi); bo'shliqlar e'tiborga olinmaydi
func parseAmount(raw string) (int64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// IsStir 9 xonali raqam
func IsStir(s string) bool {
	if len(s) != 9 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
