package i18n

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
	"github.com/Samandarmister/Firmauz-bot/internal/infrastructure/translit"
)

// P shablon parametrlari: {nom} -> qiymat
type P map[string]any

// T kalit bo'yicha matnni chiqaradi va {nom} joylarini to'ldiradi.
// Parametr qiymatlari o'girilmaydi.
func T(lang entity.Language, key string, params P) string {
	text, ok := table(lang)[key]
	if !ok {
		text, ok = latinTexts[key]
		if !ok {
			return Tr(lang, missingText)
		}
		text = Tr(lang, text)
	}
	return fill(text, params)
}

func fill(text string, params P) string {
	if len(params) == 0 {
		return text
	}
	pairs := make([]string, 0, len(params)*2)
	for k, v := range params {
		pairs = append(pairs, "{"+k+"}", fmt.Sprint(v))
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// Convert foydalanuvchi ma'lumotini (firma nomi, rahbar) tanlangan yozuvga o'giradi
func Convert(lang entity.Language, s string) string {
	if lang == entity.LangCyrillic {
		return translit.ToCyrillic(s)
	}
	return translit.ToLatin(s)
}

// Tr katalogda yo'q lotin matnni tanlangan yozuvga o'giradi.
// %v fe'llari, {nom} joylari, /buyruqlar, .kengaytmalar va raqamli so'zlar o'zgarmaydi.
func Tr(lang entity.Language, latin string) string {
	if lang != entity.LangCyrillic {
		return latin
	}
	var b strings.Builder
	b.Grow(len(latin) * 2)
	rs := []rune(latin)
	start := 0
	flush := func(end int) {
		if end > start {
			b.WriteString(translit.ToCyrillic(string(rs[start:end])))
		}
	}
	for i := 0; i < len(rs); {
		end := protectedEnd(rs, i)
		if end == i {
			i++
			continue
		}
		flush(i)
		b.WriteString(string(rs[i:end]))
		i = end
		start = end
	}
	flush(len(rs))
	return b.String()
}

// Trf Tr + fmt.Sprintf
func Trf(lang entity.Language, format string, args ...any) string {
	return fmt.Sprintf(Tr(lang, format), args...)
}

// protectedEnd i pozitsiyadan boshlanuvchi o'girilmaydigan bo'lak oxiri; bo'lak bo'lmasa i
func protectedEnd(rs []rune, i int) int {
	r := rs[i]
	switch {
	case r == '%' && i+1 < len(rs):
		j := i + 1
		for j < len(rs) && strings.ContainsRune("+-# 0123456789.", rs[j]) {
			j++
		}
		if j < len(rs) && unicode.IsLetter(rs[j]) {
			return j + 1
		}
		return i
	case r == '{':
		for j := i + 1; j < len(rs); j++ {
			if rs[j] == '}' {
				return j + 1
			}
			if unicode.IsSpace(rs[j]) {
				return i
			}
		}
		return i
	case (r == '/' || r == '.') && (i == 0 || unicode.IsSpace(rs[i-1]) || rs[i-1] == '(') &&
		i+1 < len(rs) && unicode.IsLetter(rs[i+1]):
		return wordEnd(rs, i+1)
	case unicode.IsLetter(r) && (i == 0 || !isWordRune(rs[i-1])):
		end := wordEnd(rs, i)
		for _, c := range rs[i:end] {
			if unicode.IsDigit(c) || c == '_' {
				return end
			}
		}
		// STIR, QQS, DS kabi qisqartmalar kirillda ham harfma-harf o'giriladi
		return i
	}
	return i
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func wordEnd(rs []rune, i int) int {
	j := i
	for j < len(rs) && (isWordRune(rs[j]) || rs[j] == '.' && j+1 < len(rs) && isWordRune(rs[j+1])) {
		j++
	}
	return j
}
