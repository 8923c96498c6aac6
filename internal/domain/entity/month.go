package entity

import "strings"

// Month qo'llab-quvvatlanadigan oylar (lotin, kichik harf)
type Month string

const (
	MonthYanvar Month = "yanvar"
	MonthFevral Month = "fevral"
	MonthMart   Month = "mart"
	MonthAprel  Month = "aprel"
	MonthMay    Month = "may"
	MonthIyun   Month = "iyun"
	MonthIyul   Month = "iyul"
)

// AllMonths tartiblangan ro'yxat
var AllMonths = []Month{MonthYanvar, MonthFevral, MonthMart, MonthAprel, MonthMay, MonthIyun, MonthIyul}

var monthLatin = map[Month]string{
	MonthYanvar: "Yanvar",
	MonthFevral: "Fevral",
	MonthMart:   "Mart",
	MonthAprel:  "Aprel",
	MonthMay:    "May",
	MonthIyun:   "Iyun",
	MonthIyul:   "Iyul",
}

var monthCyrillic = map[Month]string{
	MonthYanvar: "Январ",
	MonthFevral: "Феврал",
	MonthMart:   "Март",
	MonthAprel:  "Апрел",
	MonthMay:    "Май",
	MonthIyun:   "Июн",
	MonthIyul:   "Июл",
}

var monthLookup = func() map[string]Month {
	m := make(map[string]Month, 2*len(AllMonths))
	for _, month := range AllMonths {
		m[string(month)] = month
		m[strings.ToLower(monthCyrillic[month])] = month
	}
	return m
}()

// ParseMonth lotin yoki kirill yozuvidagi oy nomini taniydi (katta-kichik harf farqsiz)
func ParseMonth(raw string) (Month, bool) {
	m, ok := monthLookup[strings.ToLower(strings.TrimSpace(raw))]
	return m, ok
}

// Name oy nomini berilgan yozuvda qaytaradi
func (m Month) Name(lang Language) string {
	if lang == LangCyrillic {
		if name, ok := monthCyrillic[m]; ok {
			return name
		}
	} else if name, ok := monthLatin[m]; ok {
		return name
	}
	return string(m)
}

func (m Month) Valid() bool {
	_, ok := monthLatin[m]
	return ok
}
