package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lasenhorita/pizzabot/internal/models"
)

func TestMoney(t *testing.T) {
	cases := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.NewFromInt(0), "R$ 0,00"},
		{decimal.NewFromFloat(12.5), "R$ 12,50"},
		{decimal.NewFromFloat(1234.99), "R$ 1234,99"},
	}
	for _, c := range cases {
		if got := Money(c.in); got != c.want {
			t.Errorf("Money(%s) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDigits(t *testing.T) {
	if got := Digits("+55 (77) 98819-7145"); got != "5577988197145" {
		t.Errorf("Digits = %q", got)
	}
	if got := Digits("abc"); got != "" {
		t.Errorf("Digits(abc) = %q, want empty", got)
	}
}

func TestPhone(t *testing.T) {
	if got := Phone("77988197145"); got != "(77) 98819-7145" {
		t.Errorf("Phone 11 digits = %q", got)
	}
	if got := Phone("7736221122"); got != "(77) 3622-1122" {
		t.Errorf("Phone 10 digits = %q", got)
	}
	if got := Phone("123"); got != "123" {
		t.Errorf("Phone unknown length should pass through, got %q", got)
	}
}

func TestOrderNumber(t *testing.T) {
	cases := []struct{ in, want string }{
		{"7", "#0007"},
		{"0042", "#0042"},
		{"20240131007", "#20240131007"},
		{"", "#"},
	}
	for _, c := range cases {
		if got := OrderNumber(c.in); got != c.want {
			t.Errorf("OrderNumber(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDateTime(t *testing.T) {
	ts := time.Date(2024, 3, 9, 19, 5, 0, 0, time.UTC)
	if got := DateTime(ts); got != "09/03/2024 19:05" {
		t.Errorf("DateTime = %q", got)
	}
}

func TestStatusLabels(t *testing.T) {
	if got := Status(models.StatusOutForDel); got != "🛵 Saiu para Entrega" {
		t.Errorf("Status = %q", got)
	}
	if got := StatusEmoji(models.StatusPreparing); got != "👨‍🍳" {
		t.Errorf("StatusEmoji = %q", got)
	}
	if got := Status("desconhecido"); got != "desconhecido" {
		t.Errorf("unknown status should pass through, got %q", got)
	}
}

func TestParseIndex(t *testing.T) {
	if idx, ok := ParseIndex(" 2 ", 3); !ok || idx != 1 {
		t.Errorf("ParseIndex(2, 3) = %d, %v", idx, ok)
	}
	if _, ok := ParseIndex("0", 3); ok {
		t.Error("ParseIndex(0) should be invalid")
	}
	if _, ok := ParseIndex("4", 3); ok {
		t.Error("ParseIndex out of range should be invalid")
	}
	if _, ok := ParseIndex("abc", 3); ok {
		t.Error("ParseIndex(abc) should be invalid")
	}
}

func TestParseAmount(t *testing.T) {
	got, err := ParseAmount("50,50")
	if err != nil {
		t.Fatalf("ParseAmount error: %v", err)
	}
	if !got.Equal(decimal.NewFromFloat(50.5)) {
		t.Errorf("ParseAmount(50,50) = %s", got)
	}
	if _, err := ParseAmount("cinquenta"); err == nil {
		t.Error("ParseAmount should reject non-numeric input")
	}
}
