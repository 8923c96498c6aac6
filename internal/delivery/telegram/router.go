package telegram

import (
	"context"
	"log"
	"runtime/debug"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
	"github.com/Samandarmister/Firmauz-bot/internal/infrastructure/i18n"
)

// Start botni ishga tushirish
func (h *BotHandler) Start(ctx context.Context) error {
	go h.runJanitor(ctx)

	pool := newWorkerPool(h, h.workers)
	pool.start(ctx)
	defer pool.shutdown()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			pool.submit(ctx, update)
		}
	}
}

// dispatch bitta yangilanish
func (h *BotHandler) dispatch(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}
	if update.Message != nil {
		h.handleMessage(ctx, update.Message)
	}
}

func recoverUpdate(kind string, userID int64) {
	if r := recover(); r != nil {
		log.Printf("❌ %s panic: user=%d err=%v\n%s", kind, userID, r, debug.Stack())
	}
}

// handleMessage xabarni qayta ishlash
func (h *BotHandler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message == nil || message.From == nil || message.Chat == nil {
		return
	}
	userID := message.From.ID
	defer recoverUpdate("message", userID)
	unlock := h.sessions.lock(userID)
	defer unlock()

	chatID := message.Chat.ID
	lang := h.lang(ctx, userID)

	if message.IsCommand() {
		h.handleCommand(ctx, message, lang)
		return
	}
	if message.Document != nil {
		h.handleDocument(ctx, message, lang)
		return
	}

	text := strings.TrimSpace(message.Text)
	if text == "" {
		return
	}
	sess := h.sessions.get(userID)

	switch sess.Stage {
	case stageIdle:
		h.handleOwnerStir(ctx, chatID, lang, text)
	case stageTranslate:
		h.handleTranslateText(chatID, userID, lang, sess, text)
	case stageVerifyPhone:
		h.handleVerifyPhone(ctx, chatID, userID, lang, sess, text)
	case stageAddStir, stageAddRegime, stageAddName, stageAddDirector, stageAddPhone:
		h.handleAddFirmText(ctx, chatID, userID, lang, sess, text)
	case stageSearch:
		h.handleSearchText(ctx, chatID, userID, lang, sess, text)
	case stageEditName:
		h.handleEditNameText(ctx, chatID, userID, lang, sess, text)
	case stageEditPhoneStir, stageEditPhoneValue:
		h.handleEditPhoneText(ctx, chatID, userID, lang, sess, text)
	case stageManualFirmName, stageManualEmployeeCount, stageManualEmployee, stageManualTurnover:
		h.handleManualText(ctx, chatID, userID, lang, sess, text)
	case stageDocsStir:
		h.handleDocsStir(ctx, chatID, userID, lang, sess, text)
	case stageImportFile, stageUploadFile, stageManualSeedFile, stageDocsPDF1, stageDocsPDF2, stageDocsPFX:
		h.say(chatID, lang, "📎 Iltimos, fayl yuboring yoki /cancel bosing.", nil)
	default:
		// tugma kutilayotgan holatlar
		h.say(chatID, lang, "👆 Iltimos, tugmalardan birini tanlang yoki /cancel bosing.", nil)
	}
}

// handleDocument fayl kutilayotgan holatlar
func (h *BotHandler) handleDocument(ctx context.Context, message *tgbotapi.Message, lang entity.Language) {
	userID := message.From.ID
	chatID := message.Chat.ID
	sess := h.sessions.get(userID)
	doc := message.Document

	if doc.FileSize > maxUploadSize {
		h.say(chatID, lang, "❌ Fayl hajmi 20MB dan oshmasligi kerak!", nil)
		return
	}

	switch sess.Stage {
	case stageImportFile:
		h.handleImportFile(ctx, chatID, userID, lang, doc)
	case stageUploadFile:
		h.handleUploadFile(ctx, chatID, userID, lang, sess, doc)
	case stageManualSeedFile:
		h.handleSeedFile(ctx, chatID, userID, lang, sess, doc)
	case stageDocsPDF1, stageDocsPDF2, stageDocsPFX:
		h.handleDocsFile(ctx, chatID, userID, lang, sess, doc)
	default:
		h.say(chatID, lang, "⚠️ Hozir fayl kutilmayapti.", nil)
	}
}

// handleCallback tugma bosilishi: bir marta decode, keyin bitta switch
func (h *BotHandler) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq == nil || cq.From == nil {
		return
	}
	userID := cq.From.ID
	defer recoverUpdate("callback", userID)
	unlock := h.sessions.lock(userID)
	defer unlock()

	h.answerCallback(cq, "")
	if cq.Message == nil || cq.Message.Chat == nil {
		return
	}
	chatID := cq.Message.Chat.ID
	messageID := cq.Message.MessageID
	lang := h.lang(ctx, userID)

	a, err := decodeAction(cq.Data)
	if err != nil {
		log.Printf("⚠️ Noto'g'ri callback: user=%d data=%q err=%v", userID, cq.Data, err)
		return
	}
	sess := h.sessions.get(userID)

	switch a.Kind {
	case actNoop:
	case actLanguage:
		h.handleLanguageChoice(ctx, cq, userID, entity.Language(a.Value))
	case actOwnerTax:
		h.handleOwnerTax(chatID, lang, a)
	case actOwnerMonth:
		h.handleOwnerMonth(ctx, chatID, lang, a)
	case actOwnerDocs:
		h.handleOwnerDocs(ctx, chatID, userID, lang, a.Stir)
	case actBackTax:
		h.showOwnerCard(ctx, chatID, lang, a.Stir)
	case actOtherFirm:
		h.sessions.clear(userID)
		h.sendKey(chatID, lang, i18n.KeyWelcome, nil, nil)
	case actAdmin:
		if !h.requireAdmin(chatID, userID, lang) {
			return
		}
		h.clearInlineButtons(cq)
		h.handleAdminItem(ctx, chatID, userID, lang, a.Value)
	case actMenu:
		if !h.requireAdmin(chatID, userID, lang) {
			return
		}
		h.clearInlineButtons(cq)
		h.sessions.clear(userID)
		h.showAdminPanel(chatID, lang)
	case actRegime:
		if !h.expect(chatID, lang, sess, stageAddRegime) {
			return
		}
		h.clearInlineButtons(cq)
		h.handleAddFirmText(ctx, chatID, userID, lang, sess, a.Value)
	case actFirm:
		if !h.expect(chatID, lang, sess, stagePickFirm, stageSearch) {
			return
		}
		h.handleFirmPicked(ctx, chatID, userID, lang, sess, a.Stir)
	case actPage:
		switch sess.Stage {
		case stagePickFirm, stageSearch:
			h.showFirmPicker(ctx, chatID, messageID, userID, lang, sess, a.Page)
		case stageManualSeedPick:
			h.showSeedPicker(chatID, messageID, userID, lang, sess, a.Page)
		default:
			h.staleButton(chatID, lang)
		}
	case actSearch:
		if !h.expect(chatID, lang, sess, stagePickFirm, stageSearch) {
			return
		}
		h.sessions.set(userID, stageSearch, sess.Data)
		h.say(chatID, lang, "🔍 STIR yoki firma nomini kiriting:", nil)
	case actTax:
		switch sess.Stage {
		case stageUploadTax:
			h.clearInlineButtons(cq)
			h.handleUploadTax(chatID, userID, lang, sess, a.Tax)
		case stageManualTax:
			h.clearInlineButtons(cq)
			h.handleManualTax(chatID, userID, lang, sess, a.Tax)
		default:
			h.staleButton(chatID, lang)
		}
	case actMonth:
		switch sess.Stage {
		case stageUploadMonth:
			h.clearInlineButtons(cq)
			h.handleUploadMonth(ctx, chatID, userID, lang, sess, a.Month)
		case stageManualMonth:
			h.clearInlineButtons(cq)
			h.handleManualMonth(ctx, chatID, userID, lang, sess, a.Month)
		case stageDeleteMonth:
			h.clearInlineButtons(cq)
			h.handleDeleteMonth(ctx, chatID, userID, lang, sess, a.Month)
		default:
			h.staleButton(chatID, lang)
		}
	case actOverwrite:
		if !h.expect(chatID, lang, sess, stageUploadFile) {
			return
		}
		h.clearInlineButtons(cq)
		h.handleUploadOverwrite(chatID, userID, lang, sess)
	case actSource:
		if !h.expect(chatID, lang, sess, stageManualSource) {
			return
		}
		h.clearInlineButtons(cq)
		h.handleManualSource(ctx, chatID, userID, lang, sess, a.Value)
	case actSeed:
		if !h.expect(chatID, lang, sess, stageManualSeedPick) {
			return
		}
		h.clearInlineButtons(cq)
		h.handleSeedPicked(ctx, chatID, userID, lang, sess, a.Index)
	case actConfirm:
		if !h.expect(chatID, lang, sess, stageManualConfirm) {
			return
		}
		h.clearInlineButtons(cq)
		h.handleManualConfirm(ctx, chatID, userID, lang, sess, a.Value)
	case actDelete:
		if !h.expect(chatID, lang, sess, stageDeleteConfirm) {
			return
		}
		h.clearInlineButtons(cq)
		h.handleDeleteConfirm(ctx, chatID, userID, lang, sess, a.Value == deleteYes)
	}
}

// expect sessiya shu holatlardan birida bo'lmasa tugma eskirgan
func (h *BotHandler) expect(chatID int64, lang entity.Language, sess session, stages ...stage) bool {
	for _, st := range stages {
		if sess.Stage == st {
			return true
		}
	}
	h.staleButton(chatID, lang)
	return false
}

func (h *BotHandler) staleButton(chatID int64, lang entity.Language) {
	h.say(chatID, lang, "⚠️ Bu tugma eskirgan. Qaytadan boshlang.", nil)
}

func (h *BotHandler) requireAdmin(chatID, userID int64, lang entity.Language) bool {
	if h.isAdmin(userID) {
		return true
	}
	h.say(chatID, lang, "⛔ Bu bo'lim faqat adminlar uchun.", nil)
	return false
}

// storageFailure saqlash xatosi: log, umumiy xabar, sessiya tozalanadi
func (h *BotHandler) storageFailure(chatID, userID int64, lang entity.Language, op string, err error) {
	log.Printf("❌ %s: user=%d err=%v", op, userID, err)
	h.sessions.clear(userID)
	h.say(chatID, lang, "❌ Texnik xatolik yuz berdi. Keyinroq qayta urinib ko'ring.", nil)
}
