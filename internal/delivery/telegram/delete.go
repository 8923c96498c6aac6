package telegram

import (
	"context"
	"log"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
	"github.com/Samandarmister/Firmauz-bot/internal/infrastructure/i18n"
)

func (h *BotHandler) handleDeleteMonth(ctx context.Context, chatID, userID int64, lang entity.Language, sess session, month entity.Month) {
	data := sess.Data
	data.Month = month
	h.sessions.set(userID, stageDeleteConfirm, data)
	h.sayf(chatID, lang, "⚠️ %s (%s) firmasining %s oyi hisobotlari va fayllari o'chirilsinmi?",
		i18n.Convert(lang, data.Name), data.Stir, month.Name(lang))
	h.say(chatID, lang, "Bu amalni qaytarib bo'lmaydi.", deleteKeyboard(lang))
}

func (h *BotHandler) handleDeleteConfirm(ctx context.Context, chatID, userID int64, lang entity.Language, sess session, yes bool) {
	data := sess.Data
	if !yes {
		h.sessions.clear(userID)
		h.say(chatID, lang, "❌ O'chirish bekor qilindi.", nil)
		h.showAdminPanel(chatID, lang)
		return
	}
	res, err := h.reports.Delete(ctx, data.Stir, data.Month)
	if err != nil {
		h.storageFailure(chatID, userID, lang, "hisobotni o'chirish", err)
		return
	}
	h.sessions.clear(userID)
	log.Printf("🗑 Admin o'chirdi: user=%d stir=%s oy=%s", userID, data.Stir, data.Month)
	h.sayf(chatID, lang, "✅ %s uchun ma'lumotlar o'chirildi.\n📄 Fayllar: %d\n📊 Hisobotlar: %d\n🔗 Ko'rsatkichlar: %d",
		data.Month.Name(lang), res.FilesRemoved, res.Reports, res.Pointers)
	if len(res.FileErrors) > 0 {
		h.sayf(chatID, lang, "⚠️ %d ta faylni o'chirib bo'lmadi.", len(res.FileErrors))
	}
	h.showAdminPanel(chatID, lang)
}
