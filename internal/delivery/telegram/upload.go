package telegram

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
	"github.com/Samandarmister/Firmauz-bot/internal/usecase"
)

func (h *BotHandler) handleUploadTax(chatID, userID int64, lang entity.Language, sess session, tax entity.TaxType) {
	data := sess.Data
	if !data.Regime.Allows(tax) {
		h.staleButton(chatID, lang)
		return
	}
	data.Tax = tax
	h.sessions.set(userID, stageUploadMonth, data)
	h.say(chatID, lang, "Fayllarni qaysi oy uchun yuklamoqchisiz?", monthKeyboard(lang, func(m entity.Month) action {
		return action{Kind: actMonth, Month: m}
	}))
}

// handleUploadMonth 1-Excel diskda bo'lsa ketma-ketlik 2-Excel dan davom etadi
func (h *BotHandler) handleUploadMonth(ctx context.Context, chatID, userID int64, lang entity.Language, sess session, month entity.Month) {
	data := sess.Data
	data.Month = month
	start, err := h.uploads.StartStage(ctx, data.Stir, data.Tax, month)
	if err != nil {
		h.storageFailure(chatID, userID, lang, "yuklash bosqichi", err)
		return
	}
	data.Upload = start
	h.sessions.set(userID, stageUploadFile, data)
	if start == entity.StageExcel2 {
		h.sayf(chatID, lang, "✅ %s uchun 1-Excel fayl allaqachon mavjud. Endi 2-Excel faylni yuklang (.xlsx):", month.Name(lang))
		h.say(chatID, lang, "Yoki 1-Excel faylni qaytadan yuklang:", overwriteKeyboard(lang))
		return
	}
	h.sayf(chatID, lang, "📋 %s uchun 1-Excel faylni yuklang (.xlsx):", month.Name(lang))
}

// handleUploadOverwrite mavjud 1-Excel ustidan yozish
func (h *BotHandler) handleUploadOverwrite(chatID, userID int64, lang entity.Language, sess session) {
	data := sess.Data
	data.Upload = entity.StageExcel1
	h.sessions.set(userID, stageUploadFile, data)
	h.sayf(chatID, lang, "📋 %s uchun 1-Excel faylni yuklang (.xlsx):", data.Month.Name(lang))
}

func (h *BotHandler) handleUploadFile(ctx context.Context, chatID, userID int64, lang entity.Language, sess session, doc *tgbotapi.Document) {
	data := sess.Data
	if !usecase.AcceptsFile(data.Upload, doc.FileName) {
		h.sayf(chatID, lang, "❌ Faqat %s fayllarni yuklang.", data.Upload.Ext())
		return
	}

	tmp := h.uploads.TempPath(string(data.Upload.Kind(lang)), userID, data.Upload.Ext())
	data.TempPath = tmp
	h.sessions.set(userID, stageUploadFile, data)
	if err := h.download(ctx, doc.FileID, tmp); err != nil {
		log.Printf("❌ Fayl yuklab olinmadi: user=%d stir=%s err=%v", userID, data.Stir, err)
		h.say(chatID, lang, "❌ Faylni yuklab bo'lmadi. Qayta urinib ko'ring.", nil)
		return
	}

	res, err := h.uploads.Store(ctx, usecase.StageInput{
		Stir:     data.Stir,
		Tax:      data.Tax,
		Month:    data.Month,
		Stage:    data.Upload,
		TempPath: tmp,
		Lang:     lang,
	})
	// Store vaqtinchalik faylni o'chirgan
	data.TempPath = ""
	if err != nil {
		h.storageFailure(chatID, userID, lang, "faylni saqlash", err)
		return
	}
	if !res.IsOK() {
		h.sessions.set(userID, stageUploadFile, data)
		h.say(chatID, lang, res.Reason, nil)
		return
	}

	out := res.Value
	if out.Done {
		h.sessions.clear(userID)
		h.sayf(chatID, lang, "✅ %s uchun fayllar muvaffaqiyatli yuklandi!", data.Month.Name(lang))
		h.showAdminPanel(chatID, lang)
		return
	}
	data.Upload = out.Next
	h.sessions.set(userID, stageUploadFile, data)
	switch out.Next {
	case entity.StageExcel2:
		h.say(chatID, lang, "✅ 1-Excel fayl yuklangan, endi 2-Excel faylni yuklang (.xlsx). Bekor qilish uchun /cancel bosing.", nil)
	case entity.StageHTML:
		h.say(chatID, lang, "✅ 2-Excel fayl yuklangan. Endi html faylni yuklang (.html) yoki /cancel bosib amaliyotni bekor qiling.", nil)
	}
}
