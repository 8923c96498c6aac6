package telegram

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
	"github.com/Samandarmister/Firmauz-bot/internal/infrastructure/i18n"
	"github.com/Samandarmister/Firmauz-bot/internal/infrastructure/spreadsheet"
	"github.com/Samandarmister/Firmauz-bot/internal/usecase"
)

const employeeExample = "Namuna: 1 (Rahbar) – Aliyev Valijon – 0 so'm (5000000 so'm)"

func turnoverPrompt(tax entity.TaxType) string {
	if tax == entity.TaxQQS {
		return "🧾 QQS ma'lumotlarini kiriting: stavka, yil boshidan aylanma, shu oy aylanmasi.\nNamuna: 15%, 20000000, 10000000"
	}
	return "📊 Yagona soliq ma'lumotlarini kiriting: stavka, yil boshidan aylanma, shu oy aylanmasi.\nNamuna: 4%, 10000000, 5000000"
}

func (h *BotHandler) handleManualTax(chatID, userID int64, lang entity.Language, sess session, tax entity.TaxType) {
	h.sessions.set(userID, stageManualSource, sessionData{Tax: tax})
	h.say(chatID, lang, "Ma'lumotlar qayerdan olinsin?", sourceKeyboard(lang))
}

func (h *BotHandler) handleManualSource(ctx context.Context, chatID, userID int64, lang entity.Language, sess session, value string) {
	data := sessionData{Tax: sess.Data.Tax}
	if value == sourceExcel {
		h.sessions.set(userID, stageManualSeedFile, data)
		h.say(chatID, lang, "📥 Hisobot Excel faylini yuklang (.xlsx):", nil)
		return
	}
	data.Purpose = pickManual
	sess = h.sessions.set(userID, stagePickFirm, data)
	h.showFirmPicker(ctx, chatID, 0, userID, lang, sess, 0)
}

// handleSeedFile fayl o'qilgach vaqtinchalik nusxa kerak emas
func (h *BotHandler) handleSeedFile(ctx context.Context, chatID, userID int64, lang entity.Language, sess session, doc *tgbotapi.Document) {
	if !strings.EqualFold(filepath.Ext(doc.FileName), ".xlsx") {
		h.say(chatID, lang, "❌ Faqat .xlsx fayllarni yuklang.", nil)
		return
	}
	tmp := h.uploads.TempPath("seed", userID, ".xlsx")
	if err := h.download(ctx, doc.FileID, tmp); err != nil {
		log.Printf("❌ Hisobot fayli yuklab olinmadi: user=%d err=%v", userID, err)
		h.say(chatID, lang, "❌ Faylni yuklab bo'lmadi. Qayta urinib ko'ring.", nil)
		return
	}
	res := h.reports.Seed(ctx, sess.Data.Tax, tmp, lang)
	if err := os.Remove(tmp); err != nil {
		log.Printf("⚠️ Vaqtinchalik fayl o'chirilmadi: %s err=%v", tmp, err)
	}
	if !res.IsOK() {
		h.say(chatID, lang, res.Reason, nil)
		return
	}
	data := sessionData{Tax: sess.Data.Tax, Seed: res.Value}
	sess = h.sessions.set(userID, stageManualSeedPick, data)
	h.showSeedPicker(chatID, 0, userID, lang, sess, 0)
}

func (h *BotHandler) showSeedPicker(chatID int64, messageID int, userID int64, lang entity.Language, sess session, page int) {
	kb, page, total := seedPicker(lang, sess.Data.Seed.Entries(), page)
	data := sess.Data
	data.Page = page
	h.sessions.set(userID, stageManualSeedPick, data)
	text := i18n.Trf(lang, "Excel faylidan quyidagi firmalar topildi. Hisobot kiritish uchun birini tanlang (Sahifa %d/%d):", page+1, total)
	h.showPage(chatID, messageID, text, kb)
}

// handleSeedPicked tanlangan qator ma'lumotlari bilan tasdiqlashga o'tadi
func (h *BotHandler) handleSeedPicked(ctx context.Context, chatID, userID int64, lang entity.Language, sess session, index int) {
	entries := sess.Data.Seed.Entries()
	if index < 0 || index >= len(entries) {
		h.staleButton(chatID, lang)
		return
	}
	entry := entries[index]
	res, err := h.firms.Lookup(ctx, entry.Stir)
	if err != nil {
		h.storageFailure(chatID, userID, lang, "firma o'qish", err)
		return
	}
	if !res.IsOK() {
		h.sendKey(chatID, lang, i18n.KeyInvalidStir, nil, nil)
		return
	}
	firm := *res.Value
	tax := sess.Data.Tax
	if !firm.Regime.Allows(tax) {
		h.sayf(chatID, lang, "❌ Bu firma rejimi (%s) bu soliq turiga mos emas.", firm.Regime)
		return
	}

	data := sessionData{
		Stir: firm.Stir, Regime: firm.Regime, Name: firm.Name, Director: firm.Director,
		Tax: tax, Month: entry.Month, Seed: sess.Data.Seed,
	}
	if tax == entity.TaxDaromad {
		rec, ok := data.Seed.Payroll(entry.Stir, entry.Month)
		if !ok {
			h.startManualEntry(chatID, userID, lang, data)
			return
		}
		data.Payroll = rec
		data.EmployeeCount = len(rec.Employees)
		data.Employees = rec.Employees
		h.askConfirm(chatID, userID, lang, data)
		return
	}
	rec, ok := data.Seed.Turnover(entry.Stir, entry.Month)
	if !ok {
		h.startManualEntry(chatID, userID, lang, data)
		return
	}
	if strings.TrimSpace(rec.Director) == "" {
		rec.Director = firm.Director
	}
	data.Turnover = rec
	h.askConfirm(chatID, userID, lang, data)
}

func (h *BotHandler) handleManualMonth(ctx context.Context, chatID, userID int64, lang entity.Language, sess session, month entity.Month) {
	data := sess.Data
	data.Month = month
	h.startManualEntry(chatID, userID, lang, data)
}

// startManualEntry daromad uchun firma nomidan, boshqalar uchun aylanma qatoridan boshlanadi
func (h *BotHandler) startManualEntry(chatID, userID int64, lang entity.Language, data sessionData) {
	if data.Tax == entity.TaxDaromad {
		h.sessions.set(userID, stageManualFirmName, data)
		h.sayf(chatID, lang, "🏢 Firma nomi: %s\nO'zgartirish uchun yangi nom kiriting yoki \"-\" yuboring:", i18n.Convert(lang, data.Name))
		return
	}
	h.sessions.set(userID, stageManualTurnover, data)
	h.say(chatID, lang, turnoverPrompt(data.Tax), nil)
}

func (h *BotHandler) handleManualText(ctx context.Context, chatID, userID int64, lang entity.Language, sess session, text string) {
	data := sess.Data
	switch sess.Stage {
	case stageManualFirmName:
		if text != "-" {
			res := usecase.ValidateFirmName(text)
			if !res.IsOK() {
				h.say(chatID, lang, res.Reason, nil)
				return
			}
			data.Name = res.Value
		}
		h.askEmployeeCount(chatID, userID, lang, data)

	case stageManualEmployeeCount:
		res := usecase.ValidateEmployeeCount(text)
		if !res.IsOK() {
			h.say(chatID, lang, res.Reason, nil)
			return
		}
		data.EmployeeCount = res.Value
		data.Employees = nil
		h.sessions.set(userID, stageManualEmployee, data)
		h.sayf(chatID, lang, "👤 1-xodim ma'lumotlarini kiriting (1/%d):\n%s", data.EmployeeCount, i18n.Tr(lang, employeeExample))

	case stageManualEmployee:
		idx := len(data.Employees) + 1
		res := usecase.ParseEmployeeLine(text, idx)
		if !res.IsOK() {
			h.say(chatID, lang, res.Reason, nil)
			return
		}
		data.Employees = append(append([]entity.Employee(nil), data.Employees...), res.Value)
		if len(data.Employees) < data.EmployeeCount {
			h.sessions.set(userID, stageManualEmployee, data)
			h.sayf(chatID, lang, "Keyingi xodim ma'lumotlarini kiriting (%d/%d):", len(data.Employees)+1, data.EmployeeCount)
			return
		}
		data.Payroll = spreadsheet.PayrollRecord{
			Stir:      data.Stir,
			Month:     data.Month,
			FirmName:  data.Name,
			Employees: data.Employees,
		}
		h.askConfirm(chatID, userID, lang, data)

	case stageManualTurnover:
		res := usecase.ParseTurnoverLine(data.Tax, text)
		if !res.IsOK() {
			h.say(chatID, lang, res.Reason, nil)
			return
		}
		data.Turnover = spreadsheet.TurnoverRecord{
			Stir:        data.Stir,
			Month:       data.Month,
			FirmName:    data.Name,
			Director:    data.Director,
			Rate:        res.Value.Rate,
			YearToDate:  res.Value.YearToDate,
			MonthAmount: res.Value.MonthAmount,
		}
		h.askConfirm(chatID, userID, lang, data)
	}
}

func (h *BotHandler) askEmployeeCount(chatID, userID int64, lang entity.Language, data sessionData) {
	h.sessions.set(userID, stageManualEmployeeCount, data)
	h.say(chatID, lang, "👥 Xodimlar sonini kiriting:", nil)
}

// askConfirm hisobot ko'rinishi va tasdiqlash tugmalari
func (h *BotHandler) askConfirm(chatID, userID int64, lang entity.Language, data sessionData) {
	var preview string
	if data.Tax == entity.TaxDaromad {
		preview = h.reports.PreviewPayroll(lang, data.Payroll)
	} else {
		var err error
		preview, err = h.reports.PreviewTurnover(lang, data.Tax, data.Turnover)
		if err != nil {
			h.sessions.set(userID, stageManualTurnover, data)
			h.sayf(chatID, lang, "❌ Ma'lumotda xato: %v", err)
			h.say(chatID, lang, turnoverPrompt(data.Tax), nil)
			return
		}
	}
	h.sessions.set(userID, stageManualConfirm, data)
	h.sendText(chatID, preview, nil)
	h.say(chatID, lang, "Tasdiqlaysizmi?", confirmKeyboard(lang))
}

func (h *BotHandler) handleManualConfirm(ctx context.Context, chatID, userID int64, lang entity.Language, sess session, value string) {
	data := sess.Data
	switch value {
	case confirmCancel:
		h.sessions.clear(userID)
		h.say(chatID, lang, "❌ Amaliyot bekor qilindi.", nil)
		h.showAdminPanel(chatID, lang)
		return
	case confirmEdit:
		if data.Tax == entity.TaxDaromad {
			h.askEmployeeCount(chatID, userID, lang, data)
			return
		}
		h.sessions.set(userID, stageManualTurnover, data)
		h.say(chatID, lang, turnoverPrompt(data.Tax), nil)
		return
	}

	var res usecase.CommitResult
	var err error
	if data.Tax == entity.TaxDaromad {
		res, err = h.reports.CommitPayroll(ctx, data.Payroll)
	} else {
		res, err = h.reports.CommitTurnover(ctx, data.Tax, data.Turnover)
	}
	if err != nil {
		h.storageFailure(chatID, userID, lang, "hisobotni saqlash", err)
		return
	}
	h.sessions.clear(userID)
	log.Printf("📝 Hisobot saqlandi: user=%d stir=%s tur=%s oy=%s id=%d", userID, data.Stir, data.Tax, data.Month, res.ReportID)
	h.sayf(chatID, lang, "✅ %s uchun hisobot saqlandi!", data.Month.Name(lang))
	if res.FilesErr != nil {
		h.say(chatID, lang, "⚠️ Hisobot saqlandi, lekin Excel fayllarini yaratib bo'lmadi.", nil)
	}
	h.showAdminPanel(chatID, lang)
}
