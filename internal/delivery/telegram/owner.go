package telegram

import (
	"context"
	"log"
	"path/filepath"
	"strings"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
	"github.com/Samandarmister/Firmauz-bot/internal/infrastructure/i18n"
)

// handleOwnerStir bo'sh holatdagi matn STIR sifatida qabul qilinadi
func (h *BotHandler) handleOwnerStir(ctx context.Context, chatID int64, lang entity.Language, text string) {
	res, err := h.firms.Lookup(ctx, text)
	if err != nil {
		log.Printf("❌ Firma qidiruvida xato: stir=%s err=%v", text, err)
		h.say(chatID, lang, "❌ Texnik xatolik yuz berdi. Keyinroq qayta urinib ko'ring.", nil)
		return
	}
	switch res.Kind {
	case entity.ResultInvalid:
		h.say(chatID, lang, res.Reason, nil)
	case entity.ResultNotFound:
		h.sendKey(chatID, lang, i18n.KeyInvalidStir, nil, nil)
	case entity.ResultOK:
		h.sendFirmCard(chatID, lang, *res.Value)
	}
}

func (h *BotHandler) showOwnerCard(ctx context.Context, chatID int64, lang entity.Language, stir string) {
	h.handleOwnerStir(ctx, chatID, lang, stir)
}

func (h *BotHandler) sendFirmCard(chatID int64, lang entity.Language, firm entity.Firm) {
	director := firm.Director
	if strings.TrimSpace(director) == "" {
		director = "Noma'lum"
	}
	text := i18n.T(lang, i18n.KeyFirmaInfo, i18n.P{
		"stir":       firm.Stir,
		"firma_nomi": i18n.Convert(lang, firm.Name),
		"rahbar":     i18n.Convert(lang, director),
		"soliq_turi": firm.Regime,
		"ds_stavka":  rateLabel(firm.DSRate),
		"ys_stavka":  rateLabel(firm.YSRate),
		"qqs_stavka": rateLabel(firm.QQSRate),
	})
	h.sendText(chatID, text, ownerKeyboard(lang, firm))
}

func rateLabel(rate string) string {
	rate = strings.TrimSpace(rate)
	if rate == "" {
		rate = "0"
	}
	return rate + "%"
}

func (h *BotHandler) handleOwnerTax(chatID int64, lang entity.Language, a action) {
	kb := monthKeyboard(lang, func(m entity.Month) action {
		return action{Kind: actOwnerMonth, Stir: a.Stir, Tax: a.Tax, Month: m}
	})
	h.sendKey(chatID, lang, i18n.KeySelectMonth, i18n.P{"soliq_turi": i18n.Tr(lang, taxLabel(a.Tax))}, kb)
}

// handleOwnerMonth fayllar, keyin matnli hisobot, oxirida qaytish tugmalari
func (h *BotHandler) handleOwnerMonth(ctx context.Context, chatID int64, lang entity.Language, a action) {
	defer h.sendKey(chatID, lang, i18n.KeyBackOptions, nil, backOptionsKeyboard(lang, a.Stir))

	files, err := h.reports.Files(ctx, a.Stir, a.Tax, a.Month, lang)
	if err != nil {
		log.Printf("❌ Hisobot fayllari o'qilmadi: stir=%s oy=%s err=%v", a.Stir, a.Month, err)
	}
	sent := 0
	for _, path := range files {
		if err := h.sendDocument(chatID, path); err != nil {
			log.Printf("❌ Fayl yuborilmadi: stir=%s fayl=%s err=%v", a.Stir, path, err)
			h.sendKey(chatID, lang, i18n.KeyFileError, i18n.P{"error": filepath.Base(path)}, nil)
			continue
		}
		sent++
	}

	found := false
	res, err := h.firms.Lookup(ctx, a.Stir)
	if err != nil {
		log.Printf("❌ Firma o'qilmadi: stir=%s err=%v", a.Stir, err)
	} else if res.IsOK() {
		var text string
		text, found, err = h.reports.Summary(ctx, lang, *res.Value, a.Tax, a.Month)
		if err != nil {
			log.Printf("❌ Hisobot o'qilmadi: stir=%s oy=%s err=%v", a.Stir, a.Month, err)
		}
		if found {
			h.sendText(chatID, text, nil)
		}
	}

	if sent == 0 && !found {
		key := i18n.KeyNoManualReport
		switch a.Tax {
		case entity.TaxYagona:
			key = i18n.KeyYagonaFileNotFound
		case entity.TaxQQS:
			key = i18n.KeyQQSFileNotFound
		}
		h.sendKey(chatID, lang, key, i18n.P{"oy": a.Month.Name(lang)}, nil)
	}
}

func (h *BotHandler) handleOwnerDocs(ctx context.Context, chatID, userID int64, lang entity.Language, stir string) {
	h.sessions.clear(userID)
	h.sessions.set(userID, stageVerifyPhone, sessionData{Stir: stir})
	h.say(chatID, lang, "📞 Firma egasi telefon raqamini kiriting:", nil)
}

// handleVerifyPhone avval blok, keyin urinish yoziladi, keyin telefon solishtiriladi.
// Adminlar access qatlamida istisno qilingan.
func (h *BotHandler) handleVerifyPhone(ctx context.Context, chatID, userID int64, lang entity.Language, sess session, text string) {
	stir := sess.Data.Stir
	blocked, err := h.access.IsBlocked(ctx, stir, userID)
	if err != nil {
		h.storageFailure(chatID, userID, lang, "blok tekshiruvi", err)
		return
	}
	if blocked {
		log.Printf("⛔ Bloklangan urinish: stir=%s user=%d", stir, userID)
		h.sessions.clear(userID)
		h.say(chatID, lang, "⛔ Ko‘p noto‘g‘ri urinish! 24 soatdan keyin yana urinib ko‘ring.", nil)
		return
	}

	phone := strings.TrimSpace(text)
	if err := h.access.RecordAttempt(ctx, stir, phone, userID); err != nil {
		h.storageFailure(chatID, userID, lang, "urinishni yozish", err)
		return
	}
	ok, err := h.firms.VerifyOwner(ctx, stir, phone)
	if err != nil {
		h.storageFailure(chatID, userID, lang, "telefon tekshiruvi", err)
		return
	}
	if !ok {
		h.say(chatID, lang, "❌ Telefon raqami noto‘g‘ri. Yana urinib ko‘ring.", nil)
		return
	}

	h.sessions.clear(userID)
	h.say(chatID, lang, "✅ Telefon tasdiqlandi! Hujjatlar yuborilmoqda...", nil)
	files, err := h.docs.Files(stir)
	if err != nil {
		log.Printf("❌ Hujjatlar papkasi o'qilmadi: stir=%s err=%v", stir, err)
	}
	if len(files) == 0 {
		h.say(chatID, lang, "⚠️ Bu firmaga tegishli hujjatlar topilmadi.", nil)
		return
	}
	for _, path := range files {
		if err := h.sendDocument(chatID, path); err != nil {
			log.Printf("❌ Hujjat yuborilmadi: stir=%s fayl=%s err=%v", stir, path, err)
			h.sayf(chatID, lang, "⚠️ Yuklab bo‘lmadi: %s", filepath.Base(path))
			continue
		}
		if err := h.docs.LogDownload(ctx, userID, phone, stir, path); err != nil {
			log.Printf("❌ Yuklab olish jurnali yozilmadi: stir=%s user=%d err=%v", stir, userID, err)
		}
	}
	h.say(chatID, lang, "✅ Barcha hujjatlar yuborildi.", nil)
}
