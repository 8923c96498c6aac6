// Package i18n lotin va kirill yozuvidagi bot matnlari.
package i18n

import (
	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
)

// Kalitlar
const (
	KeySelectLanguage     = "select_language"
	KeyLanguageSet        = "language_set"
	KeyWelcome            = "welcome"
	KeyEnterCyrillicText  = "enter_cyrillic_text"
	KeyEnterLatinText     = "enter_latin_text"
	KeyTranslatedText     = "translated_text"
	KeyInvalidStir        = "invalid_stir"
	KeySelectTaxType      = "select_tax_type"
	KeySelectMonth        = "select_month"
	KeyFileNotFound       = "file_not_found"
	KeyFileError          = "file_error"
	KeyYagonaFileNotFound = "yagona_file_not_found"
	KeyQQSFileNotFound    = "qqs_file_not_found"
	KeyNoManualReport     = "no_manual_report"
	KeyBackOptions        = "back_options"
	KeyExcel1NotFound     = "excel1_not_found"
	KeyExcel1Uploaded     = "excel1_uploaded"
	KeyFirmaInfo          = "firma_info"
	KeyDaromadReport      = "daromad_report"
	KeyYagonaReport       = "yagona_report"
	KeyQQSReport          = "qqs_report"
)

var latinTexts = map[string]string{
	KeySelectLanguage:     "Iltimos, tilni tanlang:",
	KeyLanguageSet:        "Til muvaffaqiyatli o‘zgartirildi!",
	KeyWelcome:            "Botga xush kelibsiz! Firma STIR raqamini kiriting (9 raqam, masalan: 123456789):",
	KeyEnterCyrillicText:  "Kirill alifbosidagi matnni kiriting:",
	KeyEnterLatinText:     "Lotin alifbosidagi matnni kiriting:",
	KeyTranslatedText:     "Tarjima qilingan matn: {text}",
	KeyInvalidStir:        "❌ Bu STIR bo'yicha firma topilmadi.",
	KeySelectTaxType:      "📊 STIR: {stir}\nSoliq turini tanlang:",
	KeySelectMonth:        "📅 {soliq_turi} uchun oyni tanlang:",
	KeyFileNotFound:       "❌ {oy} uchun fayl topilmadi.",
	KeyFileError:          "❌ Faylni yuklashda xato yuz berdi: {error}",
	KeyYagonaFileNotFound: "❌ {oy} uchun yagona soliq hisoboti topilmadi.",
	KeyQQSFileNotFound:    "❌ {oy} uchun QQS hisoboti topilmadi.",
	KeyNoManualReport:     "❌ {oy} uchun qo'lda kiritilgan hisobot topilmadi.",
	KeyBackOptions:        "Quyidagi variantlardan birini tanlang:",
	KeyExcel1NotFound:     "📋 1-Excel faylni hisobotlarni yaratib qo‘ying iltimos, so‘ng 2-Excel faylni yuklang (.xlsx):",
	KeyExcel1Uploaded:     "✅ 1-Excel fayl yuklangan, endi 2-Excel faylni yuklang (.xlsx):",
	KeyFirmaInfo: "📋 Firma xaqida malumot\n\n" +
		"🏢 STIR: {stir}\n" +
		"🏢 Firma nomi: {firma_nomi}\n" +
		"👤 Rahbar: {rahbar}\n" +
		"📊 Soliq turi: {soliq_turi}\n\n" +
		"📌 Soliq stavkalari:\n" +
		"🔹 Daromad soligi (DS): {ds_stavka}\n" +
		"🔹 Yagona soliq (YaS): {ys_stavka}\n" +
		"🔹 QQS (Qo‘shilgan qiymat soligi): {qqs_stavka}",
	KeyDaromadReport: "📋 {firma_name} uchun {oy} hisoboti\n\n" +
		"👥 Xodimlar soni: {xodimlar_soni}\n" +
		"📋 Xodimlar:\n{xodimlar_data}\n\n" +
		"📅 Hisobot davri (oylik): {hisobot_davri_oylik} so‘m\n" +
		"💸 Jami oylik: {jami_oylik} so‘m\n" +
		"📊 Soliq: {soliq} so‘m",
	KeyYagonaReport: "📋 YAGONA SOLIQ HISOBOTI – {oy} OYI\n\n" +
		"💼 Firma nomi: {firma_nomi}\n" +
		"👤 Raxbar: {rahbar}\n" +
		"📅 Hisobot davri: {yil}-yil {oy}\n" +
		"📌 Hisobot turi: Aylanma tushumdan hisoblangan yagona soliq\n\n" +
		"🔁 Aylanma tushum (yil boshidan olingan jami aylanma): {yil_boshidan_aylanma} so‘m\n\n" +
		"🔁 Aylanma tushum (oy davomida olingan jami aylanma): {shu_oy_aylanma} so‘m\n\n" +
		"📊 Qo‘llanilgan soliq stavkasi: {soliq_turi_yagona} (amaldagi qonunchilikka asosan)\n\n" +
		"📉 Hisob-kitob formulasi Oy uchun:\n" +
		"Yagona soliq = Aylanma tushum × Soliq stavkasi\n" +
		"📐 {shu_oy_aylanma} × {soliq_turi_yagona} = {yagona_soliq} so‘m\n\n" +
		"💸 Yakuniy natija – To‘lanishi lozim bo‘lgan yagona soliq miqdori: ➡️ {yagona_soliq} so‘m\n\n" +
		"📎 Eslatma:\n" +
		"Ushbu hisob-kitob O‘zbekiston Respublikasining amaldagi soliq kodeksi asosida amalga oshirilgan bo‘lib, " +
		"faqatgina yagona soliq to‘lovchilar (masalan, kichik tadbirkorlik subyektlari) uchun mo‘ljallangan.\n" +
		"🕒 Hisobot topshirish muddati tugashidan oldin Davlat soliq xizmati organlariga taqdim etilishi zarur.",
	KeyQQSReport: "📋 QQS HISOBOTI – {oy} OYI\n\n" +
		"💼 Firma nomi: {firma_nomi}\n" +
		"👤 Raxbar: {rahbar}\n" +
		"📅 Hisobot davri: {yil}-yil {oy}\n" +
		"📌 Hisobot turi: Qo‘shilgan qiymat solig‘i (QQS)\n\n" +
		"🔁 Savdo tushum (yil davomida amalga oshirilgan savdo hajmi): {yil_boshidan_qqs} so‘m\n\n" +
		"🔁 Savdo tushum (oy davomida amalga oshirilgan savdo hajmi): {shu_oy_qqs} so‘m\n\n" +
		"📊 QQS stavkasi (amaldagi stavka): {soliq_turi_qqs}\n\n" +
		"📉 Hisob-kitob formulasi:\n" +
		"QQS = Aylanma tushum × QQS stavkasi\n" +
		"📐 {shu_oy_qqs} × {soliq_turi_qqs} = {qqs_soliq} so‘m\n\n" +
		"💸 Yakuniy natija – QQS to‘lov summasi: ➡️ {qqs_soliq} so‘m\n\n" +
		"📎 Eslatma:\n" +
		"Qo‘shilgan qiymat solig‘i (QQS) to‘lovchilari umumiy aylanma tushumga qarab hisob-kitob qilishlari lozim. " +
		"QQSni to‘lash va hisobotni topshirish belgilangan muddatda amalga oshirilmasa, jarimalar qo‘llaniladi.\n" +
		"🧾 Ushbu ma’lumot Soliq Kodeksi (2024-yilgi tahriri) asosida shakllantirilgan.",
}

var cyrillicTexts = map[string]string{
	KeySelectLanguage:     "Илтимос, тилни танланг:",
	KeyLanguageSet:        "Тил муваффақиятли ўзгартирилди!",
	KeyWelcome:            "Ботга хуш келибсиз! Фирма СТИР рақамини киритинг (9 рақам, масалан: 123456789):",
	KeyEnterCyrillicText:  "Кирилл алифбосидаги матнни киритинг:",
	KeyEnterLatinText:     "Лотин алифбосидаги матнни киритинг:",
	KeyTranslatedText:     "Таржима қилинган матн: {text}",
	KeyInvalidStir:        "❌ Бу СТИР бўйича фирма топилмади.",
	KeySelectTaxType:      "📊 СТИР: {stir}\nСолиқ турини танланг:",
	KeySelectMonth:        "📅 {soliq_turi} учун ойни танланг:",
	KeyFileNotFound:       "❌ {oy} учун файл топилмади.",
	KeyFileError:          "❌ Файлни юклашда хато юз берди: {error}",
	KeyYagonaFileNotFound: "❌ {oy} учун ягона солиқ ҳисоботи топилмади.",
	KeyQQSFileNotFound:    "❌ {oy} учун ҚҚС ҳисоботи топилмади.",
	KeyNoManualReport:     "❌ {oy} учун қўлда киритилган ҳисобот топилмади.",
	KeyBackOptions:        "Қуйидаги вариантлардан бирини танланг:",
	KeyExcel1NotFound:     "📋 1-Excel файлни ҳисоботларни яратиб қўйинг илтимос, сўнг 2-Excel файлни юкланг (.xlsx):",
	KeyExcel1Uploaded:     "✅ 1-Excel файл юкланган, энди 2-Excel файлни юкланг (.xlsx):",
	KeyFirmaInfo: "📋 Фирма ҳақида маълумот\n\n" +
		"🏢 СТИР: {stir}\n" +
		"🏢 Фирма номи: {firma_nomi}\n" +
		"👤 Раҳбар: {rahbar}\n" +
		"📊 Солиқ тури: {soliq_turi}\n\n" +
		"📌 Солиқ ставкалари:\n" +
		"🔹 Даромад солиғи (ДС): {ds_stavka}\n" +
		"🔹 Ягона солиқ (ЯС): {ys_stavka}\n" +
		"🔹 ҚҚС (Қўшилган қиймат солиғи): {qqs_stavka}",
	KeyDaromadReport: "📋 {firma_name} учун {oy} ҳисоботи\n\n" +
		"👥 Ходимлар сони: {xodimlar_soni}\n" +
		"📋 Ходимлар:\n{xodimlar_data}\n\n" +
		"📅 Ҳисобот даври (ойлик): {hisobot_davri_oylik} сўм\n" +
		"💸 Жами ойлик: {jami_oylik} сўм\n" +
		"📊 Солиқ: {soliq} сўм",
	KeyYagonaReport: "📋 ЯГОНА СОЛИҚ ҲИСОБОТИ – {oy} ОЙИ\n\n" +
		"💼 Фирма номи: {firma_nomi}\n" +
		"👤 Раҳбар: {rahbar}\n" +
		"📅 Ҳисобот даври: {yil}-йил {oy}\n" +
		"📌 Ҳисобот тури: Айланма тушумдан ҳисобланган ягона солиқ\n\n" +
		"🔁 Айланма тушум (йил бошидан олинган жами айланма): {yil_boshidan_aylanma} сўм\n\n" +
		"🔁 Айланма тушум (ой давомида олинган жами айланма): {shu_oy_aylanma} сўм\n\n" +
		"📊 Қўлланилган солиқ ставкаси: {soliq_turi_yagona} (амалдаги қонунчиликка асосан)\n\n" +
		"📉 Ҳисоб-китоб формуласи Ой учун:\n" +
		"Ягона солиқ = Айланма тушум × Солиқ ставкаси\n" +
		"📐 {shu_oy_aylanma} × {soliq_turi_yagona} = {yagona_soliq} сўм\n\n" +
		"💸 Якуний натижа – Тўланиши лозим бўлган ягона солиқ миқдори: ➡️ {yagona_soliq} сўм\n\n" +
		"📎 Эслатма:\n" +
		"Ушбу ҳисоб-китоб Ўзбекистон Республикасининг амалдаги солиқ кодекси асосида амалга оширилган бўлиб, " +
		"фақатгина ягона солиқ тўловчилар (масалан, кичик тадбиркорлик субъектлари) учун мўлжалланган.\n" +
		"🕒 Ҳисобот топшириш муддати тугашидан олдин Давлат солиқ хизмати органларига тақдим этилиши зарур.",
	KeyQQSReport: "📋 ҚҚС ҲИСОБОТИ – {oy} ОЙИ\n\n" +
		"💼 Фирма номи: {firma_nomi}\n" +
		"👤 Раҳбар: {rahbar}\n" +
		"📅 Ҳисобот даври: {yil}-йил {oy}\n" +
		"📌 Ҳисобот тури: Қўшилган қиймат солиғи (ҚҚС)\n\n" +
		"🔁 Савдо тушум (йил давомида амалга оширилган савдо ҳажми): {yil_boshidan_qqs} сўм\n\n" +
		"🔁 Савдо тушум (ой давомида амалга оширилган савдо ҳажми): {shu_oy_qqs} сўм\n\n" +
		"📊 ҚҚС ставкаси (амалдаги ставка): {soliq_turi_qqs}\n\n" +
		"📉 Ҳисоб-китоб формуласи:\n" +
		"ҚҚС = Айланма тушум × ҚҚС ставкаси\n" +
		"📐 {shu_oy_qqs} × {soliq_turi_qqs} = {qqs_soliq} сўм\n\n" +
		"💸 Якуний натижа – ҚҚС тўлов суммаси: ➡️ {qqs_soliq} сўм\n\n" +
		"📎 Эслатма:\n" +
		"Қўшилган қиймат солиғи (ҚҚС) тўловчилари умумий айланма тушумга қараб ҳисоб-китоб қилишлари лозим. " +
		"ҚҚСни тўлаш ва ҳисоботни топшириш белгиланган муддатда амалга оширилмаса, жарималар қўлланилади.\n" +
		"🧾 Ушбу маълумот Солиқ Кодекси (2024-йилги таҳрири) асосида шакллантирилган.",
}

const missingText = "Matn topilmadi"

// Keys katalogdagi barcha kalitlar
func Keys() []string {
	keys := make([]string, 0, len(latinTexts))
	for k := range latinTexts {
		keys = append(keys, k)
	}
	return keys
}

func table(lang entity.Language) map[string]string {
	if lang == entity.LangCyrillic {
		return cyrillicTexts
	}
	return latinTexts
}

// Has kalit shu tilda mavjudmi
func Has(lang entity.Language, key string) bool {
	_, ok := table(lang)[key]
	return ok
}

// MonthName oy nomi tanlangan yozuvda
func MonthName(lang entity.Language, m entity.Month) string {
	return m.Name(lang)
}
