package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
	"github.com/Samandarmister/Firmauz-bot/internal/infrastructure/i18n"
)

const maxMessageLen = 4096

func (h *BotHandler) sendAndLog(msg tgbotapi.Chattable) (tgbotapi.Message, error) {
	if h.bot == nil {
		return tgbotapi.Message{}, fmt.Errorf("telegram bot is nil")
	}
	sent, err := h.bot.Send(msg)
	if err != nil {
		log.Printf("Xabar yuborishda xatolik: %v", err)
		return sent, err
	}
	return sent, nil
}

// sendText matnni bo'laklab yuboradi; klaviatura oxirgi bo'lakka qo'yiladi
func (h *BotHandler) sendText(chatID int64, text string, markup interface{}) {
	if strings.TrimSpace(text) == "" {
		log.Printf("⚠️ Bo'sh xabar yuborilmoqchi bo'ldi! ChatID: %d", chatID)
		return
	}
	chunks := splitIntoChunks(text, maxMessageLen)
	for i, chunk := range chunks {
		msg := tgbotapi.NewMessage(chatID, chunk)
		if i == len(chunks)-1 && markup != nil {
			msg.ReplyMarkup = markup
		}
		if _, err := h.sendAndLog(msg); err != nil {
			return
		}
	}
}

// say lotin matnni foydalanuvchi yozuvida yuboradi
func (h *BotHandler) say(chatID int64, lang entity.Language, text string, markup interface{}) {
	h.sendText(chatID, i18n.Tr(lang, text), markup)
}

func (h *BotHandler) sayf(chatID int64, lang entity.Language, format string, args ...any) {
	h.sendText(chatID, i18n.Trf(lang, format, args...), nil)
}

// sendKey katalogdagi matn
func (h *BotHandler) sendKey(chatID int64, lang entity.Language, key string, params i18n.P, markup interface{}) {
	h.sendText(chatID, i18n.T(lang, key, params), markup)
}

// sendDocument diskdagi faylni yuboradi
func (h *BotHandler) sendDocument(chatID int64, path string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	_, err := h.sendAndLog(doc)
	return err
}

// showPage sahifalangan ro'yxatni tahrirlaydi, tahrir bo'lmasa yangi xabar yuboradi
func (h *BotHandler) showPage(chatID int64, messageID int, text string, markup tgbotapi.InlineKeyboardMarkup) {
	if messageID != 0 {
		edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, markup)
		_, err := h.bot.Request(edit)
		if err == nil {
			return
		}
		log.Printf("sahifani tahrirlab bo'lmadi: %v", err)
	}
	h.sendText(chatID, text, markup)
}

func (h *BotHandler) answerCallback(cq *tgbotapi.CallbackQuery, text string) {
	if cq == nil || cq.ID == "" {
		return
	}
	if _, err := h.bot.Request(tgbotapi.NewCallback(cq.ID, text)); err != nil {
		log.Printf("callback javobi yuborilmadi: %v", err)
	}
}

func (h *BotHandler) clearInlineButtons(cq *tgbotapi.CallbackQuery) {
	if cq == nil || cq.Message == nil || cq.Message.Chat == nil {
		return
	}
	empty := tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
	edit := tgbotapi.NewEditMessageReplyMarkup(cq.Message.Chat.ID, cq.Message.MessageID, empty)
	if _, err := h.bot.Request(edit); err != nil {
		log.Printf("inline keyboard clear failed: %v", err)
	}
}

// lang foydalanuvchi tili (kesh, keyin baza)
func (h *BotHandler) lang(ctx context.Context, userID int64) entity.Language {
	h.langMu.RLock()
	l, ok := h.langCache[userID]
	h.langMu.RUnlock()
	if ok {
		return l
	}
	l = entity.LangLatin
	if h.users != nil {
		got, err := h.users.GetLanguage(ctx, userID)
		if err != nil {
			log.Printf("❌ Til o'qilmadi: user=%d err=%v", userID, err)
			return l
		}
		l = got
	}
	h.langMu.Lock()
	h.langCache[userID] = l
	h.langMu.Unlock()
	return l
}

func (h *BotHandler) setLang(ctx context.Context, userID int64, l entity.Language) error {
	if h.users != nil {
		if err := h.users.SetLanguage(ctx, userID, l); err != nil {
			return err
		}
	}
	h.langMu.Lock()
	h.langCache[userID] = l
	h.langMu.Unlock()
	return nil
}

func splitIntoChunks(s string, limit int) []string {
	if limit <= 0 || len(s) <= limit {
		return []string{s}
	}
	var chunks []string
	for len(s) > limit {
		cut := strings.LastIndex(s[:limit], "\n")
		if cut <= 0 {
			cut = limit
			for cut > 0 && !utf8.RuneStart(s[cut]) {
				cut--
			}
		}
		chunks = append(chunks, s[:cut])
		s = strings.TrimPrefix(s[cut:], "\n")
	}
	if s != "" {
		chunks = append(chunks, s)
	}
	return chunks
}
