package entity

import (
	"strings"
	"time"
)

// Regime soliq rejimi
type Regime string

const (
	RegimeDSYS  Regime = "ds-ys"
	RegimeDSQQS Regime = "ds-qqs"
)

// ParseRegime faqat ikki rejimni qabul qiladi
func ParseRegime(raw string) (Regime, bool) {
	switch Regime(strings.ToLower(strings.TrimSpace(raw))) {
	case RegimeDSYS:
		return RegimeDSYS, true
	case RegimeDSQQS:
		return RegimeDSQQS, true
	}
	return "", false
}

// TaxTypes rejimga tegishli soliq turlari (papkalar)
func (r Regime) TaxTypes() []TaxType {
	if r == RegimeDSQQS {
		return []TaxType{TaxDaromad, TaxQQS}
	}
	return []TaxType{TaxDaromad, TaxYagona}
}

// Allows soliq turi shu rejimga tegishlimi
func (r Regime) Allows(t TaxType) bool {
	for _, tt := range r.TaxTypes() {
		if tt == t {
			return true
		}
	}
	return false
}

// TaxType hisobot turi va papka nomi
type TaxType string

const (
	TaxDaromad TaxType = "daromad"
	TaxYagona  TaxType = "yagona"
	TaxQQS     TaxType = "qqs"
)

func ParseTaxType(raw string) (TaxType, bool) {
	switch TaxType(strings.ToLower(strings.TrimSpace(raw))) {
	case TaxDaromad:
		return TaxDaromad, true
	case TaxYagona:
		return TaxYagona, true
	case TaxQQS:
		return TaxQQS, true
	}
	return "", false
}

// Firm ro'yxatdan o'tgan soliq to'lovchi
type Firm struct {
	Stir      string
	Name      string
	Director  string
	Regime    Regime
	DSRate    string
	YSRate    string
	QQSRate   string
	CreatedAt time.Time
}

// OwnerBinding telefon raqamini firma hujjatlariga bog'laydi
type OwnerBinding struct {
	Stir  string
	Phone string
}

// FirmDocs egasi yuklab oladigan hujjatlar
type FirmDocs struct {
	Stir string
	PDF1 string
	PDF2 string
	PFX  string
}

// FirmImportRow ommaviy importdagi bitta qator
type FirmImportRow struct {
	Firm  Firm
	Phone string
	Row   int
}
