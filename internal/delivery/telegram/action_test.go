package telegram

import (
	"strings"
	"testing"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
)

func TestActionRoundTrip(t *testing.T) {
	cases := []action{
		{Kind: actLanguage, Value: string(entity.LangCyrillic)},
		{Kind: actAdmin, Value: adminUpload},
		{Kind: actMenu},
		{Kind: actOwnerTax, Stir: "123456789", Tax: entity.TaxQQS},
		{Kind: actOwnerMonth, Stir: "123456789", Tax: entity.TaxDaromad, Month: entity.MonthIyul},
		{Kind: actOwnerDocs, Stir: "123456789"},
		{Kind: actBackTax, Stir: "123456789"},
		{Kind: actOtherFirm},
		{Kind: actRegime, Value: string(entity.RegimeDSQQS)},
		{Kind: actFirm, Stir: "987654321"},
		{Kind: actPage, Page: 12},
		{Kind: actSearch},
		{Kind: actTax, Tax: entity.TaxYagona},
		{Kind: actMonth, Month: entity.MonthFevral},
		{Kind: actSource, Value: sourceExcel},
		{Kind: actSeed, Index: 3},
		{Kind: actConfirm, Value: confirmCancel},
		{Kind: actDelete, Value: deleteYes},
		{Kind: actOverwrite},
		{Kind: actNoop},
	}
	for _, want := range cases {
		data := want.encode()
		if len(data) > maxCallbackData {
			t.Errorf("%s: callback data juda uzun (%d)", want.Kind, len(data))
		}
		got, err := decodeAction(data)
		if err != nil {
			t.Errorf("decodeAction(%q) xato: %v", data, err)
			continue
		}
		if got != want {
			t.Errorf("decodeAction(%q): kutilgan=%+v, natija=%+v", data, want, got)
		}
	}
}

func TestDecodeActionRejects(t *testing.T) {
	cases := []string{
		"",
		"nope",
		"menu|extra",
		"lang|uz_arab",
		"adm|hack",
		"rg|ds-xx",
		"otx|12345|daromad",
		"otx|123456789|aksiz",
		"omo|123456789|daromad|dekabr",
		"fp|abcdefghi",
		"pg|-1",
		"pg|x",
		"sd",
		"cf|maybe",
		"del|ha",
		"src|pdf",
		"fp|" + strings.Repeat("1", 70),
	}
	for _, data := range cases {
		if _, err := decodeAction(data); err == nil {
			t.Errorf("decodeAction(%q): xato kutilgan edi", data)
		}
	}
}
