package telegram

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
	"github.com/Samandarmister/Firmauz-bot/internal/usecase"
)

func (h *BotHandler) handleDocsStir(ctx context.Context, chatID, userID int64, lang entity.Language, sess session, text string) {
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
		stir := res.Value.Stir
		h.sessions.set(userID, stageDocsPDF1, sessionData{Stir: stir})
		h.say(chatID, lang, "1-PDF faylni yuboring:", nil)
	}
}

func docSlot(st stage) usecase.DocSlot {
	switch st {
	case stageDocsPDF2:
		return usecase.DocPDF2
	case stageDocsPFX:
		return usecase.DocPFX
	}
	return usecase.DocPDF1
}

// handleDocsFile PDF1 -> PDF2 -> PFX. Fayllar temp papkaga tushadi,
// PFX kelgach uchalasi joyiga ko'chiriladi va yo'llar bazaga yoziladi.
func (h *BotHandler) handleDocsFile(ctx context.Context, chatID, userID int64, lang entity.Language, sess session, doc *tgbotapi.Document) {
	data := sess.Data
	slot := docSlot(sess.Stage)
	target, err := h.docs.Target(data.Stir, slot, doc.FileName)
	if err != nil {
		h.sayf(chatID, lang, "❌ Faqat %s fayl yuboring.", slot.Ext())
		return
	}
	tmp := h.uploads.TempPath("doc", userID, slot.Ext())
	if err := h.download(ctx, doc.FileID, tmp); err != nil {
		log.Printf("❌ Hujjat yuklab olinmadi: stir=%s err=%v", data.Stir, err)
		h.say(chatID, lang, "❌ Faylni yuklab bo'lmadi. Qayta urinib ko'ring.", nil)
		return
	}
	data.Staged = append(data.Staged, usecase.StagedDoc{Slot: slot, TempPath: tmp, Target: target})

	switch slot {
	case usecase.DocPDF1:
		h.sessions.set(userID, stageDocsPDF2, data)
		h.say(chatID, lang, "Ikkinchi PDF faylni yuboring:", nil)
	case usecase.DocPDF2:
		h.sessions.set(userID, stageDocsPFX, data)
		h.say(chatID, lang, "PFX faylni yuboring:", nil)
	case usecase.DocPFX:
		// Install xato bersa storageFailure barcha temp fayllarni o'chiradi
		h.sessions.set(userID, stageDocsPFX, data)
		if _, err := h.docs.Install(ctx, data.Stir, data.Staged); err != nil {
			h.storageFailure(chatID, userID, lang, "hujjatlarni saqlash", err)
			return
		}
		h.sessions.clear(userID)
		log.Printf("📎 Firma hujjatlari saqlandi: stir=%s", data.Stir)
		h.say(chatID, lang, "✅ Firma hujjatlari yuklandi va saqlandi!", nil)
		h.showAdminPanel(chatID, lang)
	}
}
