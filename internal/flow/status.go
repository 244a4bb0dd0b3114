package flow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lasenhorita/pizzabot/internal/format"
	"github.com/lasenhorita/pizzabot/internal/models"
)

const maxListedOrders = 5

// showRecentOrders lists the customer's latest orders and enters TRACK_ORDER.
func (e *Engine) showRecentOrders(ctx context.Context, sess *models.Session) string {
	orders, err := e.orders.OrdersByCustomer(ctx, sess.Customer.ID)
	if err != nil {
		slog.Error("Engine order listing failed", "phone", sess.Phone, "customer_id", sess.Customer.ID, "error", err)
		return genericErrorReply
	}
	if len(orders) == 0 {
		return `📋 Você ainda não tem pedidos.

Digite *1* para fazer seu primeiro pedido! 🍕`
	}
	if len(orders) > maxListedOrders {
		orders = orders[:maxListedOrders]
	}
	sess.RecentOrders = orders
	sess.State = models.StateTrackOrder

	var b strings.Builder
	b.WriteString("📋 *Seus Pedidos*\n\n")
	for i, order := range orders {
		fmt.Fprintf(&b, "*%d* - Pedido %s %s\n    %s - %s\n",
			i+1,
			format.OrderNumber(order.DisplayNumber()),
			format.StatusEmoji(order.Status),
			format.DateTime(order.CreatedAt),
			format.Money(order.Total))
	}
	b.WriteString("\nDigite o *número* do pedido para ver os detalhes, ou *0* para voltar ao menu.")
	return b.String()
}

// handleTrackOrder shows the detail of one listed order.
func (e *Engine) handleTrackOrder(ctx context.Context, sess *models.Session, option string) string {
	if option == "0" {
		sess.RecentOrders = nil
		sess.State = models.StateMainMenu
		return e.mainMenuText(sess)
	}
	idx, ok := format.ParseIndex(option, len(sess.RecentOrders))
	if !ok {
		return "❌ Opção inválida. Digite o número de um dos pedidos listados ou *0* para voltar."
	}

	order, err := e.orders.OrderByID(ctx, sess.RecentOrders[idx].ID)
	if err != nil {
		slog.Error("Engine order detail failed", "phone", sess.Phone, "order_id", sess.RecentOrders[idx].ID, "error", err)
		return genericErrorReply
	}
	if order == nil {
		return "❌ Não encontrei esse pedido. Digite outro número ou *0* para voltar."
	}
	return orderDetailText(order)
}

// orderDetailText renders the full order with its status narrative.
func orderDetailText(order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 *Pedido %s*\n", format.OrderNumber(order.DisplayNumber()))
	fmt.Fprintf(&b, "🗓️ %s\n", format.DateTime(order.CreatedAt))
	fmt.Fprintf(&b, "Status: *%s*\n", format.Status(order.Status))
	b.WriteString("━━━━━━━━━━━━━━━\n")
	for _, item := range order.Items {
		name := fmt.Sprintf("produto #%d", item.ProductID)
		if item.Product != nil {
			name = item.Product.Name
		}
		if item.Size != nil {
			name = fmt.Sprintf("Pizza %s - %s", item.Size.Name, noteOrName(item.Note, name))
		}
		fmt.Fprintf(&b, "%dx %s - %s\n", item.Quantity, name, format.Money(item.UnitPrice))
	}
	b.WriteString("━━━━━━━━━━━━━━━\n")
	fmt.Fprintf(&b, "Subtotal: %s\n", format.Money(order.Subtotal))
	if order.DeliveryType == models.DeliveryTypeDelivery {
		fmt.Fprintf(&b, "Taxa de entrega: %s\n", format.Money(order.DeliveryFee))
	}
	fmt.Fprintf(&b, "*Total: %s*\n", format.Money(order.Total))
	fmt.Fprintf(&b, "%s\n", format.PaymentMethod(order.PaymentMethod))
	fmt.Fprintf(&b, "\n%s\n", statusNarrative(order))
	b.WriteString("\nDigite outro número para ver outro pedido, ou *0* para voltar ao menu.")
	return b.String()
}

func noteOrName(note, fallback string) string {
	if note != "" {
		return note
	}
	return fallback
}

// statusNarrative tells the customer what is happening with the order in
// their own terms.
func statusNarrative(order *models.Order) string {
	switch order.Status {
	case models.StatusPending:
		return "🆕 Recebemos seu pedido e ele será confirmado em instantes!"
	case models.StatusConfirmed:
		return "✅ Pedido confirmado! Já vamos começar o preparo."
	case models.StatusPreparing:
		return "👨‍🍳 Seu pedido está sendo preparado com muito carinho!"
	case models.StatusReady:
		if order.DeliveryType == models.DeliveryTypePickup {
			return "📦 Seu pedido está pronto para retirada no balcão!"
		}
		return "📦 Seu pedido está pronto e sairá para entrega em breve!"
	case models.StatusOutForDel:
		if order.Courier != nil && order.Courier.Name != "" {
			return fmt.Sprintf("🛵 Seu pedido saiu para entrega com *%s*! Deve chegar em breve.", order.Courier.Name)
		}
		return "🛵 Seu pedido saiu para entrega! Deve chegar em breve."
	case models.StatusDelivered:
		return "✔️ Pedido entregue. Bom apetite! 🍕"
	case models.StatusCancelled:
		return "❌ Este pedido foi cancelado. Qualquer dúvida, fale com a gente pelo menu."
	default:
		return ""
	}
}
