package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/constants"
	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
	"github.com/Samandarmister/Firmauz-bot/internal/infrastructure/i18n"
	"github.com/Samandarmister/Firmauz-bot/internal/usecase"
)

func button(lang entity.Language, label string, a action) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(i18n.Tr(lang, label), a.encode())
}

func languageKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🇺🇿 O'zbekcha (lotin)", action{Kind: actLanguage, Value: string(entity.LangLatin)}.encode()),
			tgbotapi.NewInlineKeyboardButtonData("🇺🇿 Ўзбекча (кирилл)", action{Kind: actLanguage, Value: string(entity.LangCyrillic)}.encode()),
		),
	)
}

func adminKeyboard(lang entity.Language) tgbotapi.InlineKeyboardMarkup {
	item := func(label, value string) tgbotapi.InlineKeyboardButton {
		return button(lang, label, action{Kind: actAdmin, Value: value})
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(item("➕ Firma qo'shish", adminAdd), item("📥 Firmalarni import", adminImport)),
		tgbotapi.NewInlineKeyboardRow(item("✏️ Firmani tahrirlash", adminEdit), item("📞 Telefonni o'zgartirish", adminPhone)),
		tgbotapi.NewInlineKeyboardRow(item("📤 Fayl yuklash", adminUpload), item("📝 Qo'lda kiritish", adminManual)),
		tgbotapi.NewInlineKeyboardRow(item("🗑 Hisobotni o'chirish", adminDelete), item("📋 Firmalar ro'yxati", adminList)),
		tgbotapi.NewInlineKeyboardRow(item("📎 Firma hujjatlari", adminDocs)),
	)
}

func regimeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(string(entity.RegimeDSYS), action{Kind: actRegime, Value: string(entity.RegimeDSYS)}.encode()),
			tgbotapi.NewInlineKeyboardButtonData(string(entity.RegimeDSQQS), action{Kind: actRegime, Value: string(entity.RegimeDSQQS)}.encode()),
		),
	)
}

// taxLabel soliq turi tugma matni (lotin)
func taxLabel(t entity.TaxType) string {
	switch t {
	case entity.TaxDaromad:
		return "💰 Daromad solig'i"
	case entity.TaxYagona:
		return "📊 Yagona soliq"
	case entity.TaxQQS:
		return "🧾 QQS"
	}
	return string(t)
}

// taxKeyboard toAction har bir soliq turi uchun tugma yasaydi
func taxKeyboard(lang entity.Language, taxes []entity.TaxType, toAction func(entity.TaxType) action) tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, t := range taxes {
		row = append(row, button(lang, taxLabel(t), toAction(t)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// ownerKeyboard firma kartasi ostidagi tugmalar
func ownerKeyboard(lang entity.Language, firm entity.Firm) tgbotapi.InlineKeyboardMarkup {
	kb := taxKeyboard(lang, firm.Regime.TaxTypes(), func(t entity.TaxType) action {
		return action{Kind: actOwnerTax, Stir: firm.Stir, Tax: t}
	})
	kb.InlineKeyboard = append(kb.InlineKeyboard, tgbotapi.NewInlineKeyboardRow(
		button(lang, "📂 Hujjatlarni ko'rish", action{Kind: actOwnerDocs, Stir: firm.Stir}),
	))
	return kb
}

// monthKeyboard 7 oy, qatorda 3 tadan
func monthKeyboard(lang entity.Language, toAction func(entity.Month) action) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, m := range entity.AllMonths {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(m.Name(lang), toAction(m).encode()))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func backOptionsKeyboard(lang entity.Language, stir string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(button(lang, "🔙 Soliq turini qayta tanlash", action{Kind: actBackTax, Stir: stir})),
		tgbotapi.NewInlineKeyboardRow(button(lang, "🏢 Boshqa firma", action{Kind: actOtherFirm})),
	)
}

func sourceKeyboard(lang entity.Language) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			button(lang, "📥 Excel fayl yuklash", action{Kind: actSource, Value: sourceExcel}),
			button(lang, "✍️ Qo'lda kiritish", action{Kind: actSource, Value: sourceManual}),
		),
	)
}

func confirmKeyboard(lang entity.Language) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			button(lang, "✅ Tasdiqlash", action{Kind: actConfirm, Value: confirmOK}),
			button(lang, "✏️ Tahrirlash", action{Kind: actConfirm, Value: confirmEdit}),
		),
		tgbotapi.NewInlineKeyboardRow(button(lang, "❌ Bekor qilish", action{Kind: actConfirm, Value: confirmCancel})),
	)
}

func deleteKeyboard(lang entity.Language) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			button(lang, "Ha, o'chirish", action{Kind: actDelete, Value: deleteYes}),
			button(lang, "Yo'q", action{Kind: actDelete, Value: deleteNo}),
		),
	)
}

func overwriteKeyboard(lang entity.Language) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(button(lang, "🔄 1-Excel faylni qayta yuklash", action{Kind: actOverwrite})),
	)
}

func calcTotalPages(total int, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 1
	}
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	return pages
}

func clampPage(page int, totalItems int, pageSize int) int {
	if page < 0 {
		return 0
	}
	totalPages := calcTotalPages(totalItems, pageSize)
	if page >= totalPages {
		return totalPages - 1
	}
	return page
}

// pageBounds sahifadagi elementlar oralig'i [from, to)
func pageBounds(page, total, pageSize int) (from, to int) {
	from = page * pageSize
	to = from + pageSize
	if to > total {
		to = total
	}
	if from > to {
		from = to
	}
	return from, to
}

// navRow Oldingi / sahifa / Keyingi
func navRow(lang entity.Language, page, totalPages int) []tgbotapi.InlineKeyboardButton {
	var row []tgbotapi.InlineKeyboardButton
	if page > 0 {
		row = append(row, button(lang, "⬅️ Oldingi", action{Kind: actPage, Page: page - 1}))
	}
	row = append(row, tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%d/%d", page+1, totalPages), action{Kind: actNoop}.encode()))
	if page+1 < totalPages {
		row = append(row, button(lang, "Keyingi ➡️", action{Kind: actPage, Page: page + 1}))
	}
	return row
}

// firmPicker 10 tadan firma, navigatsiya, qidiruv va orqaga
func firmPicker(lang entity.Language, firms []entity.Firm, page int) (tgbotapi.InlineKeyboardMarkup, int, int) {
	page = clampPage(page, len(firms), constants.FirmsPerPage)
	totalPages := calcTotalPages(len(firms), constants.FirmsPerPage)
	from, to := pageBounds(page, len(firms), constants.FirmsPerPage)

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, f := range firms[from:to] {
		label := fmt.Sprintf("🏢 %s (%s)", i18n.Convert(lang, f.Name), f.Stir)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, action{Kind: actFirm, Stir: f.Stir}.encode()),
		))
	}
	rows = append(rows, navRow(lang, page, totalPages))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		button(lang, "🔍 Qidirish", action{Kind: actSearch}),
		button(lang, "🔙 Orqaga", action{Kind: actMenu}),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...), page, totalPages
}

// seedPicker Excel fayldan topilgan qatorlar
func seedPicker(lang entity.Language, entries []usecase.SeedEntry, page int) (tgbotapi.InlineKeyboardMarkup, int, int) {
	page = clampPage(page, len(entries), constants.FirmsPerPage)
	totalPages := calcTotalPages(len(entries), constants.FirmsPerPage)
	from, to := pageBounds(page, len(entries), constants.FirmsPerPage)

	var rows [][]tgbotapi.InlineKeyboardButton
	for i := from; i < to; i++ {
		e := entries[i]
		label := strings.Join([]string{e.Stir, e.Month.Name(lang), i18n.Convert(lang, e.FirmName)}, " – ")
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, action{Kind: actSeed, Index: i}.encode()),
		))
	}
	rows = append(rows, navRow(lang, page, totalPages))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(button(lang, "🔙 Orqaga", action{Kind: actMenu})))
	return tgbotapi.NewInlineKeyboardMarkup(rows...), page, totalPages
}
