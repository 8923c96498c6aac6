package entity

// Language foydalanuvchi tanlagan yozuv
type Language string

const (
	LangLatin    Language = "uz_latin"
	LangCyrillic Language = "uz_cyrillic"
)

// ParseLanguage noma'lum qiymatlar lotinga tushadi
func ParseLanguage(raw string) Language {
	switch raw {
	case string(LangCyrillic), "cyrillic", "kirill":
		return LangCyrillic
	default:
		return LangLatin
	}
}

// Script fayl turi qo'shimchasi: latin / cyrillic
func (l Language) Script() string {
	if l == LangCyrillic {
		return "cyrillic"
	}
	return "latin"
}

// Other qarama-qarshi yozuv
func (l Language) Other() Language {
	if l == LangCyrillic {
		return LangLatin
	}
	return LangCyrillic
}
