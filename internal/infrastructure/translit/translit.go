// Package translit o'zbek lotin va kirill yozuvlari orasida harfma-harf o'girish.
package translit

import (
	"strings"
	"unicode"
)

var latinToCyr = map[rune]string{
	'a': "а", 'b': "б", 'd': "д", 'e': "е", 'f': "ф", 'g': "г", 'h': "ҳ",
	'i': "и", 'j': "ж", 'k': "к", 'l': "л", 'm': "м", 'n': "н", 'o': "о",
	'p': "п", 'q': "қ", 'r': "р", 's': "с", 't': "т", 'u': "у", 'v': "в",
	'x': "х", 'y': "й", 'z': "з", 'c': "ц", 'w': "в",
}

var cyrToLatin = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'ё': "yo", 'ж': "j",
	'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
	'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u", 'ф': "f",
	'х': "x", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sh", 'ъ': "’", 'ы': "i",
	'ь': "", 'э': "e", 'ю': "yu", 'я': "ya", 'ў': "o‘", 'қ': "q", 'ғ': "g‘",
	'ҳ': "h",
}

// apostrophe o‘, g‘ va tutuq belgisi uchun ishlatiladigan barcha variantlar
func isApostrophe(r rune) bool {
	switch r {
	case '\'', '‘', '’', 'ʻ', 'ʼ', '`', '´':
		return true
	}
	return false
}

func isLatinVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

func isCyrVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'а', 'е', 'ё', 'и', 'о', 'у', 'э', 'ю', 'я', 'ў', 'ы':
		return true
	}
	return false
}

func isLatinLetter(r rune) bool {
	l := unicode.ToLower(r)
	return l >= 'a' && l <= 'z'
}

func isCyrLetter(r rune) bool {
	return unicode.Is(unicode.Cyrillic, r)
}

// ToCyrillic lotin matnni kirillga o'giradi. Lotin bo'lmagan belgilar o'zgarmaydi.
func ToCyrillic(s string) string {
	rs := []rune(s)
	var b strings.Builder
	b.Grow(len(s) * 2)

	at := func(i int) rune {
		if i < 0 || i >= len(rs) {
			return 0
		}
		return rs[i]
	}
	lowerAt := func(i int) rune { return unicode.ToLower(at(i)) }
	// writeCase manba harf katta bo'lsa natijani ham kattalashtiradi
	writeCase := func(out string, upper bool, allUpper bool) {
		if !upper || out == "" {
			b.WriteString(out)
			return
		}
		if allUpper {
			b.WriteString(strings.ToUpper(out))
			return
		}
		or := []rune(out)
		b.WriteRune(unicode.ToUpper(or[0]))
		b.WriteString(string(or[1:]))
	}

	for i := 0; i < len(rs); i++ {
		r := rs[i]
		lr := unicode.ToLower(r)
		upper := unicode.IsUpper(r)

		if !isLatinLetter(r) {
			if isApostrophe(r) && isLatinLetter(at(i-1)) && isLatinLetter(at(i+1)) {
				b.WriteString("ъ")
				continue
			}
			b.WriteRune(r)
			continue
		}

		next := lowerAt(i + 1)
		nextUpper := unicode.IsUpper(at(i + 1))

		switch {
		case (lr == 'o' || lr == 'g') && isApostrophe(at(i+1)):
			out := "ў"
			if lr == 'g' {
				out = "ғ"
			}
			writeCase(out, upper, false)
			i++
			continue
		case lr == 's' && next == 'h':
			writeCase("ш", upper, false)
			i++
			continue
		case lr == 'c' && next == 'h':
			writeCase("ч", upper, false)
			i++
			continue
		case lr == 'y' && (next == 'a' || next == 'u' || next == 'e' || next == 'o') && !isApostrophe(at(i+2)):
			var out string
			switch next {
			case 'a':
				out = "я"
			case 'u':
				out = "ю"
			case 'e':
				out = "е"
			default:
				out = "ё"
			}
			writeCase(out, upper || nextUpper, false)
			i++
			continue
		case lr == 'e':
			prev := at(i - 1)
			if !isLatinLetter(prev) || isLatinVowel(prev) {
				writeCase("э", upper, false)
				continue
			}
		}
		writeCase(latinToCyr[lr], upper, false)
	}
	return b.String()
}

// ToLatin kirill matnni lotinga o'giradi. Kirill bo'lmagan belgilar o'zgarmaydi.
func ToLatin(s string) string {
	rs := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	at := func(i int) rune {
		if i < 0 || i >= len(rs) {
			return 0
		}
		return rs[i]
	}

	for i, r := range rs {
		if !isCyrLetter(r) {
			b.WriteRune(r)
			continue
		}
		lr := unicode.ToLower(r)
		upper := unicode.IsUpper(r)

		out, ok := cyrToLatin[lr]
		if lr == 'е' {
			prev := at(i - 1)
			if !isCyrLetter(prev) || isCyrVowel(prev) || unicode.ToLower(prev) == 'ъ' || unicode.ToLower(prev) == 'ь' {
				out = "ye"
			} else {
				out = "e"
			}
			ok = true
		}
		if !ok {
			b.WriteRune(r)
			continue
		}
		if !upper || out == "" {
			b.WriteString(out)
			continue
		}
		// "ШАХАР" -> "SHAHAR", "Шахар" -> "Shahar"
		next := at(i + 1)
		prev := at(i - 1)
		if (isCyrLetter(next) && unicode.IsUpper(next)) || (!isCyrLetter(next) && isCyrLetter(prev) && unicode.IsUpper(prev)) {
			b.WriteString(strings.ToUpper(out))
			continue
		}
		or := []rune(out)
		b.WriteRune(unicode.ToUpper(or[0]))
		b.WriteString(string(or[1:]))
	}
	return b.String()
}

// HasCyrillic matnda kamida bitta kirill harfi bormi
func HasCyrillic(s string) bool {
	for _, r := range s {
		if isCyrLetter(r) {
			return true
		}
	}
	return false
}
