// Package format provides pure presentation helpers for bot messages:
// currency, phone numbers, dates, status labels and order numbers.
package format

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/lasenhorita/pizzabot/internal/models"
	"github.com/shopspring/decimal"
)

var nonDigits = regexp.MustCompile(`\D`)

// Money renders a decimal amount in Brazilian real notation ("R$ 12,34").
func Money(v decimal.Decimal) string {
	return "R$ " + strings.Replace(v.StringFixed(2), ".", ",", 1)
}

// Digits strips every non-digit character from s.
func Digits(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}

// Phone renders a bare digit string as a Brazilian phone number for display.
// Unrecognized lengths are returned unchanged.
func Phone(phone string) string {
	d := Digits(phone)
	switch len(d) {
	case 11:
		return fmt.Sprintf("(%s) %s-%s", d[:2], d[2:7], d[7:])
	case 10:
		return fmt.Sprintf("(%s) %s-%s", d[:2], d[2:6], d[6:])
	default:
		return phone
	}
}

// DateTime renders a timestamp as dd/mm/yyyy hh:mm.
func DateTime(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}

// OrderNumber renders a backend-assigned order number for display. Short
// numbers are zero-padded to four digits ("#0007"); longer backend numbers
// (date-prefixed sequences) are shown as-is behind the hash.
func OrderNumber(number string) string {
	d := Digits(number)
	if d == "" {
		return "#" + number
	}
	if len(d) < 4 {
		d = strings.Repeat("0", 4-len(d)) + d
	}
	return "#" + d
}

// StatusEmoji returns the marker shown next to an order status in listings.
func StatusEmoji(s models.OrderStatus) string {
	switch s {
	case models.StatusPending:
		return "🆕"
	case models.StatusConfirmed:
		return "✅"
	case models.StatusPreparing:
		return "👨‍🍳"
	case models.StatusReady:
		return "📦"
	case models.StatusOutForDel:
		return "🛵"
	case models.StatusDelivered:
		return "✔️"
	case models.StatusCancelled:
		return "❌"
	default:
		return "❓"
	}
}

// Status renders an order status with its marker and label.
func Status(s models.OrderStatus) string {
	switch s {
	case models.StatusPending:
		return "🆕 Pendente"
	case models.StatusConfirmed:
		return "✅ Confirmado"
	case models.StatusPreparing:
		return "👨‍🍳 Em Preparo"
	case models.StatusReady:
		return "📦 Pronto"
	case models.StatusOutForDel:
		return "🛵 Saiu para Entrega"
	case models.StatusDelivered:
		return "✔️ Entregue"
	case models.StatusCancelled:
		return "❌ Cancelado"
	default:
		return string(s)
	}
}

// PaymentMethod renders a payment method label.
func PaymentMethod(m models.PaymentMethod) string {
	switch m {
	case models.PaymentCash:
		return "💵 Dinheiro"
	case models.PaymentCredit:
		return "💳 Cartão de Crédito"
	case models.PaymentDebit:
		return "💳 Cartão de Débito"
	case models.PaymentPix:
		return "📱 PIX"
	default:
		return string(m)
	}
}

// DeliveryType renders a delivery type label.
func DeliveryType(t models.DeliveryType) string {
	if t == models.DeliveryTypeDelivery {
		return "🛵 Entrega"
	}
	return "🏪 Retirada no balcão"
}

// ParseIndex parses a 1-based menu selection against a list of n options.
// It returns the zero-based index and whether the input was a valid pick.
func ParseIndex(text string, n int) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || v < 1 || v > n {
		return 0, false
	}
	return v - 1, true
}

// ParseAmount parses a user-typed money amount, accepting comma or dot as
// the decimal separator.
func ParseAmount(text string) (decimal.Decimal, error) {
	cleaned := strings.Replace(strings.TrimSpace(text), ",", ".", 1)
	return decimal.NewFromString(cleaned)
}
