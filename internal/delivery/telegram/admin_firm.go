package telegram

import (
	"context"
	"fmt"
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

// handleAddFirmText firma qo'shish: STIR -> rejim -> nom -> rahbar -> telefon
func (h *BotHandler) handleAddFirmText(ctx context.Context, chatID, userID int64, lang entity.Language, sess session, text string) {
	data := sess.Data
	switch sess.Stage {
	case stageAddStir:
		res, err := h.firms.CheckNewStir(ctx, text)
		if err != nil {
			h.storageFailure(chatID, userID, lang, "STIR tekshiruvi", err)
			return
		}
		if !res.IsOK() {
			h.say(chatID, lang, res.Reason, nil)
			return
		}
		data.Stir = res.Value
		h.sessions.set(userID, stageAddRegime, data)
		h.say(chatID, lang, "📊 Soliq rejimini tanlang", regimeKeyboard())

	case stageAddRegime:
		res := usecase.ValidateRegime(text)
		if !res.IsOK() {
			h.say(chatID, lang, res.Reason, regimeKeyboard())
			return
		}
		data.Regime = res.Value
		h.sessions.set(userID, stageAddName, data)
		h.say(chatID, lang, "🏢 Firma nomini kiriting:", nil)

	case stageAddName:
		res := usecase.ValidateFirmName(text)
		if !res.IsOK() {
			h.say(chatID, lang, res.Reason, nil)
			return
		}
		data.Name = res.Value
		h.sessions.set(userID, stageAddDirector, data)
		h.say(chatID, lang, "👤 Firma rahbarining F.I.Sh ni kiriting:", nil)

	case stageAddDirector:
		res := usecase.ValidateDirector(text)
		if !res.IsOK() {
			h.say(chatID, lang, res.Reason, nil)
			return
		}
		data.Director = res.Value
		h.sessions.set(userID, stageAddPhone, data)
		h.say(chatID, lang, "📞 Firma egasining telefon raqamini kiriting (masalan: +998901234567):", nil)

	case stageAddPhone:
		res := usecase.ValidatePhone(text)
		if !res.IsOK() {
			h.say(chatID, lang, res.Reason, nil)
			return
		}
		firm, err := h.firms.Onboard(ctx, usecase.OnboardInput{
			Stir:     data.Stir,
			Regime:   data.Regime,
			Name:     data.Name,
			Director: data.Director,
			Phone:    res.Value,
		})
		if err != nil {
			h.storageFailure(chatID, userID, lang, "firma qo'shish", err)
			return
		}
		h.sessions.clear(userID)
		h.sayf(chatID, lang, "✅ Firma qo'shildi!\n📌 STIR: %s\n🏢 Nomi: %s\n📊 Rejim: %s\n📞 Telefon: %s",
			firm.Stir, i18n.Convert(lang, firm.Name), firm.Regime, res.Value)
		h.showAdminPanel(chatID, lang)
	}
}

// handleImportFile firmalar ro'yxati Excel fayli
func (h *BotHandler) handleImportFile(ctx context.Context, chatID, userID int64, lang entity.Language, doc *tgbotapi.Document) {
	if !strings.EqualFold(filepath.Ext(doc.FileName), ".xlsx") {
		h.say(chatID, lang, "❌ Faqat .xlsx fayllarni yuklang.", nil)
		return
	}
	tmp := h.uploads.TempPath("import", userID, ".xlsx")
	if err := h.download(ctx, doc.FileID, tmp); err != nil {
		log.Printf("❌ Import fayli yuklab olinmadi: user=%d err=%v", userID, err)
		h.say(chatID, lang, "❌ Faylni yuklab bo'lmadi. Qayta urinib ko'ring.", nil)
		return
	}
	defer os.Remove(tmp)

	rows, skipped, errText := spreadsheet.ParseFirms(tmp)
	if errText != "" {
		h.say(chatID, lang, "❌ "+errText, nil)
		return
	}
	rep, err := h.firms.Import(ctx, rows)
	if err != nil {
		h.storageFailure(chatID, userID, lang, "firmalar importi", err)
		return
	}
	h.sessions.clear(userID)

	var b strings.Builder
	fmt.Fprintf(&b, "📥 Import yakunlandi.\n✅ Qo'shildi: %d\n⚠️ O'tkazib yuborildi: %d", len(rep.Added), len(rep.Flagged)+len(skipped))
	for _, s := range skipped {
		fmt.Fprintf(&b, "\n• %d-qator: %s", s.Row, s.Reason)
	}
	for _, f := range rep.Flagged {
		fmt.Fprintf(&b, "\n• %d-qator (%s): %s", f.Row, f.Stir, f.Reason)
	}
	h.sendText(chatID, i18n.Tr(lang, b.String()), nil)
	h.showAdminPanel(chatID, lang)
}

func (h *BotHandler) startFirmPicker(ctx context.Context, chatID, userID int64, lang entity.Language, purpose pickPurpose) {
	sess := h.sessions.set(userID, stagePickFirm, sessionData{Purpose: purpose})
	h.showFirmPicker(ctx, chatID, 0, userID, lang, sess, 0)
}

func pickerTitle(p pickPurpose) string {
	switch p {
	case pickEdit:
		return "✏️ Tahrirlash uchun firmani tanlang"
	case pickUpload:
		return "📤 Fayl yuklash uchun firmani tanlang"
	case pickManual:
		return "Hisobot kiritish uchun firmani tanlang"
	case pickDelete:
		return "🗑 Hisobotini o'chirish uchun firmani tanlang"
	}
	return "📋 Firmalar ro'yxati"
}

// showFirmPicker qidiruv so'rovi bo'lsa faqat mos firmalar
func (h *BotHandler) showFirmPicker(ctx context.Context, chatID int64, messageID int, userID int64, lang entity.Language, sess session, page int) {
	var firms []entity.Firm
	var err error
	if sess.Data.Query != "" {
		firms, err = h.firms.Search(ctx, sess.Data.Query)
	} else {
		firms, err = h.firms.List(ctx)
	}
	if err != nil {
		h.storageFailure(chatID, userID, lang, "firmalar ro'yxati", err)
		return
	}
	if len(firms) == 0 {
		if sess.Data.Query != "" {
			h.sessions.set(userID, stageSearch, sess.Data)
			h.say(chatID, lang, "🔍 Hech narsa topilmadi. Boshqa so'rov kiriting yoki /cancel bosing.", nil)
			return
		}
		h.sessions.clear(userID)
		h.say(chatID, lang, "📭 Hozircha firmalar yo'q.", nil)
		h.showAdminPanel(chatID, lang)
		return
	}

	kb, page, total := firmPicker(lang, firms, page)
	data := sess.Data
	data.Page = page
	h.sessions.set(userID, stagePickFirm, data)
	text := i18n.Trf(lang, "%s (Sahifa %d/%d):", i18n.Tr(lang, pickerTitle(data.Purpose)), page+1, total)
	h.showPage(chatID, messageID, text, kb)
}

func (h *BotHandler) handleSearchText(ctx context.Context, chatID, userID int64, lang entity.Language, sess session, text string) {
	data := sess.Data
	data.Query = text
	data.Page = 0
	sess = h.sessions.set(userID, stageSearch, data)
	h.showFirmPicker(ctx, chatID, 0, userID, lang, sess, 0)
}

func (h *BotHandler) handleFirmPicked(ctx context.Context, chatID, userID int64, lang entity.Language, sess session, stir string) {
	res, err := h.firms.Lookup(ctx, stir)
	if err != nil {
		h.storageFailure(chatID, userID, lang, "firma o'qish", err)
		return
	}
	if !res.IsOK() {
		h.staleButton(chatID, lang)
		return
	}
	firm := *res.Value
	data := sessionData{Stir: firm.Stir, Regime: firm.Regime, Name: firm.Name, Director: firm.Director, Purpose: sess.Data.Purpose}

	switch sess.Data.Purpose {
	case pickEdit:
		h.sessions.set(userID, stageEditName, data)
		h.sayf(chatID, lang, "🏢 Joriy nomi: %s\nYangi firma nomini kiriting:", i18n.Convert(lang, firm.Name))
	case pickUpload:
		h.sessions.set(userID, stageUploadTax, data)
		kb := taxKeyboard(lang, firm.Regime.TaxTypes(), func(t entity.TaxType) action {
			return action{Kind: actTax, Tax: t}
		})
		h.sendKey(chatID, lang, i18n.KeySelectTaxType, i18n.P{"stir": firm.Stir}, kb)
	case pickManual:
		data.Tax = sess.Data.Tax
		if !firm.Regime.Allows(data.Tax) {
			h.sayf(chatID, lang, "❌ Bu firma rejimi (%s) bu soliq turiga mos emas. Boshqa firmani tanlang.", firm.Regime)
			return
		}
		data.Seed = sess.Data.Seed
		h.sessions.set(userID, stageManualMonth, data)
		h.say(chatID, lang, "Qaysi oy uchun hisobot kiritmoqchisiz?", monthKeyboard(lang, func(m entity.Month) action {
			return action{Kind: actMonth, Month: m}
		}))
	case pickDelete:
		h.sessions.set(userID, stageDeleteMonth, data)
		h.say(chatID, lang, "🗑 Qaysi oy hisobotini o'chirmoqchisiz?", monthKeyboard(lang, func(m entity.Month) action {
			return action{Kind: actMonth, Month: m}
		}))
	default:
		h.sessions.clear(userID)
		h.sendFirmCard(chatID, lang, firm)
	}
}

func (h *BotHandler) handleEditNameText(ctx context.Context, chatID, userID int64, lang entity.Language, sess session, text string) {
	res, err := h.firms.Rename(ctx, sess.Data.Stir, text)
	if err != nil {
		h.storageFailure(chatID, userID, lang, "firma nomini yangilash", err)
		return
	}
	switch res.Kind {
	case entity.ResultInvalid:
		h.say(chatID, lang, res.Reason, nil)
		return
	case entity.ResultNotFound:
		h.sessions.clear(userID)
		h.sendKey(chatID, lang, i18n.KeyInvalidStir, nil, nil)
		return
	}
	h.sessions.clear(userID)
	h.sayf(chatID, lang, "✅ Firma nomi yangilandi!\n📌 STIR: %s\n🏢 Yangi nomi: %s", sess.Data.Stir, i18n.Convert(lang, res.Value))
	h.showAdminPanel(chatID, lang)
}

// handleEditPhoneText avval STIR, keyin yangi telefon
func (h *BotHandler) handleEditPhoneText(ctx context.Context, chatID, userID int64, lang entity.Language, sess session, text string) {
	if sess.Stage == stageEditPhoneStir {
		res, err := h.firms.Lookup(ctx, text)
		if err != nil {
			h.storageFailure(chatID, userID, lang, "firma o'qish", err)
			return
		}
		switch res.Kind {
		case entity.ResultInvalid:
			h.say(chatID, lang, res.Reason, nil)
		case entity.ResultNotFound:
			h.say(chatID, lang, "❌ Bunday STIR bazada yo‘q!", nil)
		default:
			h.sessions.set(userID, stageEditPhoneValue, sessionData{Stir: res.Value.Stir})
			h.say(chatID, lang, "📞 Yangi telefon raqamini kiriting (masalan: +998901234567):", nil)
		}
		return
	}

	res, err := h.firms.ReplacePhone(ctx, sess.Data.Stir, text)
	if err != nil {
		h.storageFailure(chatID, userID, lang, "telefonni almashtirish", err)
		return
	}
	switch res.Kind {
	case entity.ResultInvalid:
		h.say(chatID, lang, res.Reason, nil)
		return
	case entity.ResultNotFound:
		h.sessions.clear(userID)
		h.say(chatID, lang, "❌ Bunday STIR bazada yo‘q!", nil)
		return
	}
	h.sessions.clear(userID)
	h.sayf(chatID, lang, "✅ Telefon yangilandi!\n📌 STIR: %s\n📞 Yangi raqam: %s", sess.Data.Stir, res.Value)
	h.showAdminPanel(chatID, lang)
}
