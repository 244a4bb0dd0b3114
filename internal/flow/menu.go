package flow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lasenhorita/pizzabot/internal/format"
	"github.com/lasenhorita/pizzabot/internal/models"
)

// Storefront texts shown by the informational options.
const (
	pizzeriaName  = "LaSenhorita Pizzaria"
	pickupAddress = "Rua das Pizzas, 123 - Centro"
	pixKey        = "77988197145 (Rogério S. O.)"

	openingHours = `🕐 *Horário de Funcionamento:*
Segunda a Quinta: 18h às 23h
Sexta e Sábado: 18h às 00h
Domingo: 18h às 22h`
)

// mainMenuText renders the top-level menu, greeting a resolved customer by
// name.
func (e *Engine) mainMenuText(sess *models.Session) string {
	greeting := "Olá! Seja bem-vindo(a)!"
	if sess.Customer != nil && sess.Customer.Name != "" {
		greeting = fmt.Sprintf("Olá, *%s*! Que bom ter você de volta! 😊", sess.Customer.Name)
	}
	return fmt.Sprintf(`🍕 *%s* 🍕
%s

Escolha uma opção:

*1* - 🛒 Fazer Pedido
*2* - 📋 Consultar Pedido
*3* - 📍 Horário e Localização
*4* - 📞 Falar com Atendente

Digite o número da opção desejada:`, pizzeriaName, greeting)
}

// handleStart resolves the customer by phone on first contact and shows the
// main menu. Lookup failure degrades to the generic greeting.
func (e *Engine) handleStart(ctx context.Context, sess *models.Session) string {
	if sess.Customer == nil {
		customer, err := e.customers.CustomerByPhone(ctx, sess.Phone)
		if err != nil {
			slog.Error("Engine start customer lookup failed", "phone", sess.Phone, "error", err)
		} else if customer != nil {
			sess.Customer = customer
		}
	}
	sess.State = models.StateMainMenu
	return e.mainMenuText(sess)
}

// handleMainMenu processes the top-level menu selection.
func (e *Engine) handleMainMenu(ctx context.Context, sess *models.Session, option string) string {
	switch option {
	case "1":
		if sess.Customer == nil {
			sess.Reg = &models.RegistrationDraft{}
			sess.State = models.StateRegisterName
			return `📝 *Cadastro*

Para fazer seu pedido, preciso de algumas informações.

Qual é o seu *nome*?`
		}
		return e.showCategories(ctx, sess)

	case "2":
		if sess.Customer == nil {
			return `❌ Você precisa ter feito pelo menos um pedido para consultar.

Digite *1* para fazer um pedido.`
		}
		return e.showRecentOrders(ctx, sess)

	case "3":
		return fmt.Sprintf(`📍 *Horário e Localização*

%s

📍 *Endereço:*
%s

Digite *1* para fazer um pedido ou *menu* para recomeçar.`, openingHours, pickupAddress)

	case "4":
		return `📞 *Falar com Atendente*

Um momento, estamos direcionando você para um de nossos atendentes.

Enquanto isso, você pode enviar sua dúvida ou solicitação que responderemos em breve! 😊

Digite *menu* para voltar ao menu principal.`

	default:
		return "❌ Opção inválida. Por favor, digite um número de 1 a 4.\n\n" + e.mainMenuText(sess)
	}
}

// handleRegisterName captures the new customer's name.
func (e *Engine) handleRegisterName(sess *models.Session, text string) string {
	if len(strings.TrimSpace(text)) < models.MinNameLength {
		return "❌ Por favor, digite um nome válido."
	}
	sess.Reg.Name = strings.TrimSpace(text)
	sess.State = models.StateRegisterAddress
	return fmt.Sprintf(`✅ Obrigado, *%s*!

Agora, qual é o seu *endereço completo* para entrega?
(Rua, número, complemento)`, sess.Reg.Name)
}

// handleRegisterAddress captures the street address and lists the
// fee-bearing neighborhoods.
func (e *Engine) handleRegisterAddress(ctx context.Context, sess *models.Session, text string) string {
	if len(strings.TrimSpace(text)) < models.MinAddressLength {
		return "❌ Por favor, digite um endereço válido com rua e número."
	}
	sess.Reg.Address = strings.TrimSpace(text)

	fees, err := e.catalog.DeliveryFees(ctx)
	if err != nil {
		slog.Error("Engine register fee listing failed", "phone", sess.Phone, "error", err)
		// Fall back to free-text neighborhood capture.
		sess.Reg.Fees = nil
		sess.State = models.StateRegisterNeighborhood
		return "Qual é o *bairro*?"
	}
	sess.Reg.Fees = fees
	sess.State = models.StateRegisterNeighborhood
	return neighborhoodListText(fees)
}

func neighborhoodListText(fees []models.DeliveryFee) string {
	var b strings.Builder
	b.WriteString("📍 *Bairros que atendemos:*\n\n")
	for i, fee := range fees {
		fmt.Fprintf(&b, "*%d* - %s (Taxa: %s)\n", i+1, fee.Neighborhood, format.Money(fee.Fee))
	}
	b.WriteString("\nDigite o *número* do seu bairro, ou o nome caso não esteja na lista:")
	return b.String()
}

// handleRegisterNeighborhood resolves the neighborhood, creates the customer
// record and moves into the category listing. Creation is idempotent: an
// existing record for the phone is reused instead of POSTed again.
func (e *Engine) handleRegisterNeighborhood(ctx context.Context, sess *models.Session, text string) string {
	neighborhood := strings.TrimSpace(text)
	if idx, ok := format.ParseIndex(text, len(sess.Reg.Fees)); ok {
		neighborhood = sess.Reg.Fees[idx].Neighborhood
	} else if len(neighborhood) < 2 {
		return "❌ Por favor, digite o número do bairro ou o nome do bairro."
	}

	existing, err := e.customers.CustomerByPhone(ctx, sess.Phone)
	if err != nil {
		slog.Error("Engine register duplicate check failed", "phone", sess.Phone, "error", err)
		return genericErrorReply
	}

	var customer *models.Customer
	if existing != nil {
		addr, hood := sess.Reg.Address, neighborhood
		customer, err = e.customers.UpdateCustomer(ctx, existing.ID, models.UpdateCustomerRequest{
			Address:      &addr,
			Neighborhood: &hood,
		})
	} else {
		customer, err = e.customers.CreateCustomer(ctx, models.CreateCustomerRequest{
			Name:         sess.Reg.Name,
			Phone:        sess.Phone,
			Address:      sess.Reg.Address,
			Neighborhood: neighborhood,
		})
	}
	if err != nil {
		slog.Error("Engine register customer save failed", "phone", sess.Phone, "error", err)
		return genericErrorReply
	}

	sess.Customer = customer
	sess.Reg = nil
	return e.showCategories(ctx, sess)
}

// showCategories fetches the category listing and enters SELECT_CATEGORY.
func (e *Engine) showCategories(ctx context.Context, sess *models.Session) string {
	categories, err := e.catalog.Categories(ctx)
	if err != nil {
		slog.Error("Engine category listing failed", "phone", sess.Phone, "error", err)
		return genericErrorReply
	}
	sess.Categories = categories
	sess.State = models.StateSelectCategory

	var b strings.Builder
	fmt.Fprintf(&b, "🍕 *Cardápio %s*\n\nEscolha uma categoria:\n\n", pizzeriaName)
	for i, cat := range categories {
		fmt.Fprintf(&b, "*%d* - %s %s\n", i+1, categoryEmoji(cat.Name), cat.Name)
	}
	b.WriteString("\n*0* - Voltar ao menu principal")
	return b.String()
}

func categoryEmoji(name string) string {
	switch name {
	case "Pizzas":
		return "🍕"
	case "Bebidas":
		return "🥤"
	case "Porções":
		return "🍟"
	case "Sobremesas":
		return "🍰"
	default:
		return "📦"
	}
}
