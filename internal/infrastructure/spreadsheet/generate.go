package spreadsheet

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
	"github.com/Samandarmister/Firmauz-bot/internal/infrastructure/i18n"
)

var (
	payrollHeaders = []string{"STIR", "Oy", "Firma nomi", "Xodim lavozimi", "Ism Familyasi", "Yil boshidan", "Shu Oy uchun oylik"}
	yagonaHeaders  = []string{"STIR", "Oy", "Firma nomi", "Raxbar", "Soliq turi yagona", "Yil boshidan aylanma", "Shu oy uchun aylanma"}
	qqsHeaders     = []string{"STIR", "Oy", "Firma nomi", "Raxbar", "Soliq turi QQS", "Yil boshidan QQS", "Shu oy uchun QQS"}
)

// GeneratePayroll lotin va kirill nusxalarini birga yozadi
func GeneratePayroll(rec PayrollRecord, latinPath, cyrillicPath string) error {
	build := func(lang entity.Language) [][]any {
		rows := make([][]any, 0, len(rec.Employees))
		for i, e := range rec.Employees {
			row := []any{"", "", "", i18n.Convert(lang, e.Position), i18n.Convert(lang, e.FullName), e.YearToDate, e.ThisMonth}
			if i == 0 {
				row[0], row[1], row[2] = rec.Stir, rec.Month.Name(lang), i18n.Convert(lang, rec.FirmName)
			}
			rows = append(rows, row)
		}
		return rows
	}
	return writePair(payrollHeaders, build, latinPath, cyrillicPath)
}

// GenerateTurnover yagona yoki QQS uchun bitta qatorli fayllar
func GenerateTurnover(kind entity.TaxType, rec TurnoverRecord, latinPath, cyrillicPath string) error {
	headers := yagonaHeaders
	if kind == entity.TaxQQS {
		headers = qqsHeaders
	}
	build := func(lang entity.Language) [][]any {
		return [][]any{{
			rec.Stir, rec.Month.Name(lang), i18n.Convert(lang, rec.FirmName), i18n.Convert(lang, rec.Director),
			entity.NormalizeRate(rec.Rate), rec.YearToDate, rec.MonthAmount,
		}}
	}
	return writePair(headers, build, latinPath, cyrillicPath)
}

func writePair(headers []string, build func(entity.Language) [][]any, latinPath, cyrillicPath string) error {
	if err := writeSheet(latinPath, SheetLatin, headers, build(entity.LangLatin), entity.LangLatin); err != nil {
		return err
	}
	if err := writeSheet(cyrillicPath, SheetCyrillic, headers, build(entity.LangCyrillic), entity.LangCyrillic); err != nil {
		// ikkalasi birga bo'lishi kerak
		_ = os.Remove(latinPath)
		return err
	}
	return nil
}

func writeSheet(path, sheetName string, headers []string, rows [][]any, lang entity.Language) error {
	f := excelize.NewFile()
	defer f.Close()

	current := f.GetSheetName(0)
	if current != sheetName {
		if err := f.SetSheetName(current, sheetName); err != nil {
			return err
		}
	}

	for i, h := range headers {
		cellName, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cellName, i18n.Tr(lang, h)); err != nil {
			return err
		}
	}
	for r, row := range rows {
		for c, v := range row {
			cellName, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cellName, v); err != nil {
				return err
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("papka yaratilmadi: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("excel saqlanmadi: %w", err)
	}
	log.Printf("📄 excel yaratildi: %s", path)
	return nil
}
