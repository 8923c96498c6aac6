package telegram

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
	"github.com/Samandarmister/Firmauz-bot/internal/infrastructure/i18n"
	"github.com/Samandarmister/Firmauz-bot/internal/infrastructure/translit"
)

// handleCommand komandalarni qayta ishlash.
// Har qanday komanda joriy oqimni yakunlaydi.
func (h *BotHandler) handleCommand(ctx context.Context, message *tgbotapi.Message, lang entity.Language) {
	userID := message.From.ID
	chatID := message.Chat.ID

	switch message.Command() {
	case "start":
		h.sessions.clear(userID)
		h.sendKey(chatID, lang, i18n.KeySelectLanguage, nil, languageKeyboard())
	case "admin":
		h.sessions.clear(userID)
		if !h.requireAdmin(chatID, userID, lang) {
			return
		}
		h.showAdminPanel(chatID, lang)
	case "cancel":
		h.cancel(chatID, userID, lang)
	case "translate_latin":
		h.sessions.clear(userID)
		h.sessions.set(userID, stageTranslate, sessionData{Target: entity.LangLatin})
		h.sendKey(chatID, lang, i18n.KeyEnterCyrillicText, nil, nil)
	case "translate_cyrillic":
		h.sessions.clear(userID)
		h.sessions.set(userID, stageTranslate, sessionData{Target: entity.LangCyrillic})
		h.sendKey(chatID, lang, i18n.KeyEnterLatinText, nil, nil)
	default:
		h.say(chatID, lang, "Noma'lum komanda. /start bilan boshlang.", nil)
	}
}

// cancel istalgan holatdan chiqish: ma'lumot va vaqtinchalik fayl tozalanadi
func (h *BotHandler) cancel(chatID, userID int64, lang entity.Language) {
	sess := h.sessions.get(userID)
	h.sessions.clear(userID)
	if sess.Stage != stageIdle {
		log.Printf("↩️ Oqim bekor qilindi: user=%d holat=%s sessiya=%s", userID, sess.Stage, sess.ID)
	}
	h.say(chatID, lang, "❌ Amaliyot bekor qilindi.", nil)
	if h.isAdmin(userID) {
		h.showAdminPanel(chatID, lang)
		return
	}
	h.sendKey(chatID, lang, i18n.KeyWelcome, nil, nil)
}

func (h *BotHandler) handleLanguageChoice(ctx context.Context, cq *tgbotapi.CallbackQuery, userID int64, lang entity.Language) {
	chatID := cq.Message.Chat.ID
	if err := h.setLang(ctx, userID, lang); err != nil {
		log.Printf("❌ Til saqlanmadi: user=%d err=%v", userID, err)
		h.say(chatID, lang, "❌ Texnik xatolik yuz berdi. Keyinroq qayta urinib ko'ring.", nil)
		return
	}
	h.clearInlineButtons(cq)
	h.sendKey(chatID, lang, i18n.KeyLanguageSet, nil, nil)
	h.sendKey(chatID, lang, i18n.KeyWelcome, nil, nil)
	if h.isAdmin(userID) {
		h.say(chatID, lang, "🔐 Admin panel: /admin", nil)
	}
}

func (h *BotHandler) handleTranslateText(chatID, userID int64, lang entity.Language, sess session, text string) {
	var out string
	if sess.Data.Target == entity.LangCyrillic {
		out = translit.ToCyrillic(text)
	} else {
		out = translit.ToLatin(text)
	}
	h.sessions.clear(userID)
	h.sendKey(chatID, lang, i18n.KeyTranslatedText, i18n.P{"text": out}, nil)
}

func (h *BotHandler) showAdminPanel(chatID int64, lang entity.Language) {
	h.say(chatID, lang, "🔐 Admin panel. Bo'limni tanlang:", adminKeyboard(lang))
}

// handleAdminItem admin menyu bandi yangi oqim boshlaydi
func (h *BotHandler) handleAdminItem(ctx context.Context, chatID, userID int64, lang entity.Language, item string) {
	h.sessions.clear(userID)
	switch item {
	case adminAdd:
		h.sessions.set(userID, stageAddStir, sessionData{})
		h.say(chatID, lang, "🆔 Yangi firma STIR raqamini kiriting (9 raqam):", nil)
	case adminImport:
		h.sessions.set(userID, stageImportFile, sessionData{})
		h.say(chatID, lang, "📥 Firmalar ro'yxati Excel faylini yuklang (.xlsx):\nUstunlar: STIR, Firma nomi, Soliq turi, Rahbar, Telefon, DS%, YS%, QQS%", nil)
	case adminEdit:
		h.startFirmPicker(ctx, chatID, userID, lang, pickEdit)
	case adminUpload:
		h.startFirmPicker(ctx, chatID, userID, lang, pickUpload)
	case adminDelete:
		h.startFirmPicker(ctx, chatID, userID, lang, pickDelete)
	case adminList:
		h.startFirmPicker(ctx, chatID, userID, lang, pickList)
	case adminManual:
		h.sessions.set(userID, stageManualTax, sessionData{})
		kb := taxKeyboard(lang, []entity.TaxType{entity.TaxDaromad, entity.TaxYagona, entity.TaxQQS}, func(t entity.TaxType) action {
			return action{Kind: actTax, Tax: t}
		})
		h.say(chatID, lang, "📝 Qaysi soliq turi bo'yicha hisobot kiritmoqchisiz?", kb)
	case adminPhone:
		h.sessions.set(userID, stageEditPhoneStir, sessionData{})
		h.say(chatID, lang, "🆔 Firma STIR raqamini kiriting:", nil)
	case adminDocs:
		h.sessions.set(userID, stageDocsStir, sessionData{})
		h.say(chatID, lang, "🆔 Hujjatlar yuklanadigan firma STIR raqamini kiriting:", nil)
	}
}
