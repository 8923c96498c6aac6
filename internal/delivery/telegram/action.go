package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
	"github.com/Samandarmister/Firmauz-bot/internal/infrastructure/spreadsheet"
)

// actionKind tugma ma'lumotining birinchi bo'lagi
type actionKind string

const (
	actLanguage   actionKind = "lang" // Value: uz_latin | uz_cyrillic
	actAdmin      actionKind = "adm"  // Value: admin menyu bandi
	actMenu       actionKind = "menu" // admin panelga qaytish
	actOwnerTax   actionKind = "otx"  // Stir, Tax
	actOwnerMonth actionKind = "omo"  // Stir, Tax, Month
	actOwnerDocs  actionKind = "odoc" // Stir
	actBackTax    actionKind = "btx"  // Stir
	actOtherFirm  actionKind = "oth"
	actRegime     actionKind = "rg" // Value: ds-ys | ds-qqs
	actFirm       actionKind = "fp" // Stir
	actPage       actionKind = "pg" // Page
	actSearch     actionKind = "srch"
	actTax        actionKind = "tt" // Tax
	actMonth      actionKind = "mo" // Month
	actSource     actionKind = "src"
	actSeed       actionKind = "sd" // Index
	actConfirm    actionKind = "cf"
	actDelete     actionKind = "del"
	actOverwrite  actionKind = "ow"
	actNoop       actionKind = "noop"
)

// Admin menyu bandlari
const (
	adminAdd    = "add"
	adminImport = "import"
	adminEdit   = "edit"
	adminUpload = "upload"
	adminManual = "manual"
	adminDelete = "delete"
	adminList   = "list"
	adminDocs   = "docs"
	adminPhone  = "phone"
)

// Tasdiqlash, manba va o'chirish qiymatlari
const (
	confirmOK     = "ok"
	confirmEdit   = "edit"
	confirmCancel = "cancel"

	sourceExcel  = "excel"
	sourceManual = "manual"

	deleteYes = "yes"
	deleteNo  = "no"
)

// maxCallbackData Telegram callback_data chegarasi (bayt)
const maxCallbackData = 64

const actionSep = "|"

// action decode qilingan tugma bosilishi
type action struct {
	Kind  actionKind
	Value string
	Stir  string
	Tax   entity.TaxType
	Month entity.Month
	Page  int
	Index int
}

// encode action -> callback_data
func (a action) encode() string {
	parts := []string{string(a.Kind)}
	switch a.Kind {
	case actLanguage, actAdmin, actRegime, actSource, actConfirm, actDelete:
		parts = append(parts, a.Value)
	case actOwnerTax:
		parts = append(parts, a.Stir, string(a.Tax))
	case actOwnerMonth:
		parts = append(parts, a.Stir, string(a.Tax), string(a.Month))
	case actOwnerDocs, actBackTax, actFirm:
		parts = append(parts, a.Stir)
	case actPage:
		parts = append(parts, strconv.Itoa(a.Page))
	case actSeed:
		parts = append(parts, strconv.Itoa(a.Index))
	case actTax:
		parts = append(parts, string(a.Tax))
	case actMonth:
		parts = append(parts, string(a.Month))
	}
	return strings.Join(parts, actionSep)
}

// decodeAction callback_data ni bir marta tahlil qiladi
func decodeAction(data string) (action, error) {
	if data == "" || len(data) > maxCallbackData {
		return action{}, fmt.Errorf("callback data uzunligi noto'g'ri: %d", len(data))
	}
	parts := strings.Split(data, actionSep)
	a := action{Kind: actionKind(parts[0])}
	args := parts[1:]

	need := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("%s: %d ta parametr kerak, %d ta keldi", a.Kind, n, len(args))
		}
		return nil
	}

	switch a.Kind {
	case actMenu, actOtherFirm, actSearch, actOverwrite, actNoop:
		if err := need(0); err != nil {
			return action{}, err
		}
	case actLanguage:
		if err := need(1); err != nil {
			return action{}, err
		}
		if args[0] != string(entity.LangLatin) && args[0] != string(entity.LangCyrillic) {
			return action{}, fmt.Errorf("noma'lum til: %q", args[0])
		}
		a.Value = args[0]
	case actAdmin:
		if err := need(1); err != nil {
			return action{}, err
		}
		switch args[0] {
		case adminAdd, adminImport, adminEdit, adminUpload, adminManual, adminDelete, adminList, adminDocs, adminPhone:
		default:
			return action{}, fmt.Errorf("noma'lum admin bandi: %q", args[0])
		}
		a.Value = args[0]
	case actRegime:
		if err := need(1); err != nil {
			return action{}, err
		}
		if _, ok := entity.ParseRegime(args[0]); !ok {
			return action{}, fmt.Errorf("noma'lum rejim: %q", args[0])
		}
		a.Value = args[0]
	case actSource:
		if err := need(1); err != nil {
			return action{}, err
		}
		if args[0] != sourceExcel && args[0] != sourceManual {
			return action{}, fmt.Errorf("noma'lum manba: %q", args[0])
		}
		a.Value = args[0]
	case actConfirm:
		if err := need(1); err != nil {
			return action{}, err
		}
		if args[0] != confirmOK && args[0] != confirmEdit && args[0] != confirmCancel {
			return action{}, fmt.Errorf("noma'lum tanlov: %q", args[0])
		}
		a.Value = args[0]
	case actDelete:
		if err := need(1); err != nil {
			return action{}, err
		}
		if args[0] != deleteYes && args[0] != deleteNo {
			return action{}, fmt.Errorf("noma'lum javob: %q", args[0])
		}
		a.Value = args[0]
	case actOwnerTax:
		if err := need(2); err != nil {
			return action{}, err
		}
		if err := a.setStir(args[0]); err != nil {
			return action{}, err
		}
		if err := a.setTax(args[1]); err != nil {
			return action{}, err
		}
	case actOwnerMonth:
		if err := need(3); err != nil {
			return action{}, err
		}
		if err := a.setStir(args[0]); err != nil {
			return action{}, err
		}
		if err := a.setTax(args[1]); err != nil {
			return action{}, err
		}
		if err := a.setMonth(args[2]); err != nil {
			return action{}, err
		}
	case actOwnerDocs, actBackTax, actFirm:
		if err := need(1); err != nil {
			return action{}, err
		}
		if err := a.setStir(args[0]); err != nil {
			return action{}, err
		}
	case actTax:
		if err := need(1); err != nil {
			return action{}, err
		}
		if err := a.setTax(args[0]); err != nil {
			return action{}, err
		}
	case actMonth:
		if err := need(1); err != nil {
			return action{}, err
		}
		if err := a.setMonth(args[0]); err != nil {
			return action{}, err
		}
	case actPage, actSeed:
		if err := need(1); err != nil {
			return action{}, err
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return action{}, fmt.Errorf("%s: raqam noto'g'ri: %q", a.Kind, args[0])
		}
		if a.Kind == actPage {
			a.Page = n
		} else {
			a.Index = n
		}
	default:
		return action{}, fmt.Errorf("noma'lum tugma: %q", parts[0])
	}
	return a, nil
}

func (a *action) setStir(s string) error {
	if !spreadsheet.IsStir(s) {
		return fmt.Errorf("STIR noto'g'ri: %q", s)
	}
	a.Stir = s
	return nil
}

func (a *action) setTax(s string) error {
	t, ok := entity.ParseTaxType(s)
	if !ok {
		return fmt.Errorf("soliq turi noto'g'ri: %q", s)
	}
	a.Tax = t
	return nil
}

func (a *action) setMonth(s string) error {
	m, ok := entity.ParseMonth(s)
	if !ok {
		return fmt.Errorf("oy noto'g'ri: %q", s)
	}
	a.Month = m
	return nil
}
