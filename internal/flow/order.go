package flow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lasenhorita/pizzabot/internal/format"
	"github.com/lasenhorita/pizzabot/internal/models"
)

// handleSelectCategory resolves the chosen category and branches into the
// pizza composition flow or the simple product listing.
func (e *Engine) handleSelectCategory(ctx context.Context, sess *models.Session, option string) string {
	if option == "0" {
		sess.State = models.StateMainMenu
		return e.mainMenuText(sess)
	}
	idx, ok := format.ParseIndex(option, len(sess.Categories))
	if !ok {
		return "❌ Opção inválida. Digite o número de uma das categorias listadas."
	}
	category := sess.Categories[idx]

	products, err := e.catalog.ProductsByCategory(ctx, category.ID)
	if err != nil {
		slog.Error("Engine product listing failed", "phone", sess.Phone, "category_id", category.ID, "error", err)
		return genericErrorReply
	}
	if len(products) == 0 {
		return fmt.Sprintf("😕 Nenhum produto disponível em *%s* no momento.\n\nEscolha outra categoria ou digite *0* para voltar.", category.Name)
	}
	sess.Category = &category

	if products[0].IsPizza {
		sizes, err := e.catalog.Sizes(ctx)
		if err != nil {
			slog.Error("Engine size listing failed", "phone", sess.Phone, "error", err)
			return genericErrorReply
		}
		sess.Pizza = &models.PizzaDraft{Sizes: sizes, Candidates: products}
		sess.State = models.StateSelectSize
		return e.sizeListText(sess)
	}

	sess.Products = products
	sess.State = models.StateSelectProduct

	var b strings.Builder
	fmt.Fprintf(&b, "%s *%s*\n\nEscolha um produto:\n\n", categoryEmoji(category.Name), category.Name)
	for i, p := range products {
		fmt.Fprintf(&b, "*%d* - %s - %s\n", i+1, p.Name, format.Money(p.UnitPrice()))
	}
	b.WriteString("\n*0* - Voltar às categorias")
	return b.String()
}

// sizeListText lists the available pizza sizes.
func (e *Engine) sizeListText(sess *models.Session) string {
	var b strings.Builder
	b.WriteString("🍕 *Monte sua pizza!*\n\nEscolha o tamanho:\n\n")
	for i, size := range sess.Pizza.Sizes {
		fmt.Fprintf(&b, "*%d* - %s (%d fatias, até %d sabores)\n", i+1, size.Name, size.Slices, size.MaxToppings)
	}
	b.WriteString("\n*0* - Voltar")
	return b.String()
}

func (e *Engine) toppingCountText(size *models.PizzaSize) string {
	return fmt.Sprintf(`✅ Tamanho *%s* (%d fatias)

Quantos sabores você quer? Digite um número de *1* a *%d*:

*0* - Voltar`, size.Name, size.Slices, size.MaxToppings)
}

// handleSelectSize records the pizza size and asks for the topping count.
// Zero backs out to the category listing.
func (e *Engine) handleSelectSize(ctx context.Context, sess *models.Session, option string) string {
	if option == "0" {
		sess.Pizza = nil
		return e.showCategories(ctx, sess)
	}
	idx, ok := format.ParseIndex(option, len(sess.Pizza.Sizes))
	if !ok {
		return "❌ Opção inválida. Digite o número de um dos tamanhos ou *0* para voltar."
	}
	size := sess.Pizza.Sizes[idx]
	sess.Pizza.Size = &size

	if size.MaxToppings <= 1 {
		sess.Pizza.ToppingCount = 1
		sess.State = models.StateSelectTopping
		return e.toppingListText(sess)
	}

	sess.State = models.StateSelectToppingCount
	return e.toppingCountText(&size)
}

// handleSelectToppingCount records how many distinct toppings the pizza will
// carry and opens the topping listing. Zero backs out to the size listing.
func (e *Engine) handleSelectToppingCount(ctx context.Context, sess *models.Session, option string) string {
	if option == "0" {
		sess.Pizza.Size = nil
		sess.State = models.StateSelectSize
		return e.sizeListText(sess)
	}
	idx, ok := format.ParseIndex(option, sess.Pizza.Size.MaxToppings)
	if !ok {
		return fmt.Sprintf("❌ Opção inválida. Digite um número de *1* a *%d*, ou *0* para voltar.", sess.Pizza.Size.MaxToppings)
	}
	sess.Pizza.ToppingCount = idx + 1
	sess.State = models.StateSelectTopping
	return e.toppingListText(sess)
}

// toppingListText lists the topping candidates with their price at the chosen
// size, marking the priciest-topping pricing rule.
func (e *Engine) toppingListText(sess *models.Session) string {
	draft := sess.Pizza
	remaining := draft.ToppingCount - len(draft.Toppings)

	var b strings.Builder
	if len(draft.Toppings) == 0 {
		if draft.ToppingCount > 1 {
			fmt.Fprintf(&b, "🍕 Escolha o *1º sabor* (de %d):\n\n", draft.ToppingCount)
		} else {
			b.WriteString("🍕 Escolha o *sabor* da pizza:\n\n")
		}
	} else {
		fmt.Fprintf(&b, "🍕 Escolha o *%dº sabor* (faltam %d):\n\n", len(draft.Toppings)+1, remaining)
	}
	for i, p := range draft.Candidates {
		fmt.Fprintf(&b, "*%d* - %s %s - %s\n", i+1, toppingMarker(p.Name), p.Name, format.Money(p.PriceAtSize(draft.Size.ID)))
	}
	b.WriteString("\n🟢 Tradicionais/Especiais | 🔴 Premium")
	if draft.ToppingCount > 1 {
		b.WriteString("\n💡 Em pizzas com mais de um sabor vale o preço do sabor mais caro.")
	}
	b.WriteString("\n\n*0* - Voltar")
	return b.String()
}

// toppingMarker flags the premium toppings in listings.
func toppingMarker(name string) string {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "camarão") ||
		strings.Contains(lower, "carne do sol") ||
		strings.Contains(lower, "filé") {
		return "🔴"
	}
	return "🟢"
}

// handleSelectTopping records one topping pick, repeating until the chosen
// count is reached, then moves to the crust step. Zero backs out one step,
// discarding the toppings picked so far.
func (e *Engine) handleSelectTopping(ctx context.Context, sess *models.Session, option string) string {
	draft := sess.Pizza
	if option == "0" {
		draft.Toppings = nil
		if draft.Size.MaxToppings > 1 {
			sess.State = models.StateSelectToppingCount
			return e.toppingCountText(draft.Size)
		}
		draft.Size = nil
		sess.State = models.StateSelectSize
		return e.sizeListText(sess)
	}
	idx, ok := format.ParseIndex(option, len(draft.Candidates))
	if !ok {
		return "❌ Opção inválida. Digite o número de um dos sabores ou *0* para voltar."
	}
	topping := draft.Candidates[idx]
	for _, chosen := range draft.Toppings {
		if chosen.ID == topping.ID {
			return fmt.Sprintf("❌ O sabor *%s* já foi escolhido. Escolha um sabor diferente.", topping.Name)
		}
	}
	draft.Toppings = append(draft.Toppings, topping)

	if len(draft.Toppings) < draft.ToppingCount {
		return e.toppingListText(sess)
	}

	crusts, err := e.catalog.Crusts(ctx)
	if err != nil {
		slog.Error("Engine crust listing failed", "phone", sess.Phone, "error", err)
		// Undo the pick so a retry re-selects the last topping.
		draft.Toppings = draft.Toppings[:len(draft.Toppings)-1]
		return genericErrorReply
	}
	if len(crusts) == 0 {
		return e.finishPizza(sess, nil)
	}
	draft.Crusts = crusts
	sess.State = models.StateSelectCrust

	var b strings.Builder
	b.WriteString("🧀 Deseja *borda recheada*?\n\n")
	b.WriteString("*1* - Sem borda recheada\n")
	for i, crust := range crusts {
		fmt.Fprintf(&b, "*%d* - %s (+%s)\n", i+2, crust.Name, format.Money(crust.Surcharge))
	}
	return b.String()
}

// handleSelectCrust closes the pizza with an optional stuffed crust. Option
// one is no crust, the crusts themselves start at two.
func (e *Engine) handleSelectCrust(sess *models.Session, option string) string {
	if option == "1" {
		return e.finishPizza(sess, nil)
	}
	idx, ok := format.ParseIndex(option, len(sess.Pizza.Crusts)+1)
	if !ok {
		return "❌ Opção inválida. Digite *1* para sem borda ou o número de uma das bordas."
	}
	crust := sess.Pizza.Crusts[idx-1]
	return e.finishPizza(sess, &crust)
}

// finishPizza prices the composed pizza, appends it to the cart and offers
// the next step. The unit price is the priciest topping at the chosen size
// plus the crust surcharge.
func (e *Engine) finishPizza(sess *models.Session, crust *models.Crust) string {
	draft := sess.Pizza

	price := decimal.Zero
	names := make([]string, 0, len(draft.Toppings))
	for _, t := range draft.Toppings {
		if p := t.PriceAtSize(draft.Size.ID); p.GreaterThan(price) {
			price = p
		}
		names = append(names, t.Name)
	}
	note := strings.Join(names, " / ")
	name := fmt.Sprintf("Pizza %s - %s", draft.Size.Name, note)
	if crust != nil {
		price = price.Add(crust.Surcharge)
		name += fmt.Sprintf(" (borda %s)", crust.Name)
	}

	size := *draft.Size
	sess.Cart = append(sess.Cart, models.CartItem{
		Kind:      models.CartItemPizza,
		Name:      name,
		Size:      &size,
		Toppings:  draft.Toppings,
		Crust:     crust,
		UnitPrice: price,
		Quantity:  1,
		Note:      note,
	})
	sess.Pizza = nil
	return e.itemAddedText(sess, name, price)
}

// handleSelectProduct adds a simple product to the cart.
func (e *Engine) handleSelectProduct(ctx context.Context, sess *models.Session, option string) string {
	if option == "0" {
		return e.showCategories(ctx, sess)
	}
	idx, ok := format.ParseIndex(option, len(sess.Products))
	if !ok {
		return "❌ Opção inválida. Digite o número de um dos produtos listados."
	}
	product := sess.Products[idx]

	sess.Cart = append(sess.Cart, models.CartItem{
		Kind:      models.CartItemProduct,
		Name:      product.Name,
		Product:   &product,
		UnitPrice: product.UnitPrice(),
		Quantity:  1,
	})
	sess.Products = nil
	return e.itemAddedText(sess, product.Name, product.UnitPrice())
}

func (e *Engine) itemAddedText(sess *models.Session, name string, price decimal.Decimal) string {
	sess.State = models.StateItemAdded
	return fmt.Sprintf(`✅ *%s* adicionado ao carrinho! (%s)

O que deseja fazer agora?

*1* - ➕ Adicionar mais itens
*2* - 🛒 Ver carrinho`, name, format.Money(price))
}

// handleItemAdded routes the post-add choice.
func (e *Engine) handleItemAdded(ctx context.Context, sess *models.Session, option string) string {
	switch option {
	case "1":
		return e.showCategories(ctx, sess)
	case "2":
		return e.showCart(sess)
	default:
		return "❌ Opção inválida. Digite *1* ou *2*."
	}
}

// showCart renders the cart and enters CART_REVIEW.
func (e *Engine) showCart(sess *models.Session) string {
	if len(sess.Cart) == 0 {
		sess.State = models.StateMainMenu
		return "🛒 Seu carrinho está vazio.\n\n" + e.mainMenuText(sess)
	}
	sess.State = models.StateCartReview

	var b strings.Builder
	b.WriteString("🛒 *Seu Carrinho*\n━━━━━━━━━━━━━━━\n")
	for i, item := range sess.Cart {
		fmt.Fprintf(&b, "*%d* - %dx %s - %s\n", i+1, item.Quantity, item.Name, format.Money(item.Subtotal()))
	}
	fmt.Fprintf(&b, "━━━━━━━━━━━━━━━\n*Subtotal: %s*\n\n", format.Money(sess.CartSubtotal()))
	b.WriteString(`*1* - ➕ Adicionar mais itens
*2* - 🗑️ Remover um item
*3* - ✅ Finalizar pedido
*0* - ❌ Cancelar pedido`)
	return b.String()
}

// handleCartReview routes the cart review choice. Zero abandons the cart.
func (e *Engine) handleCartReview(ctx context.Context, sess *models.Session, option string) string {
	switch option {
	case "1":
		return e.showCategories(ctx, sess)
	case "2":
		sess.State = models.StateRemoveItem
		return "🗑️ Digite o *número* do item que deseja remover:"
	case "3":
		return e.startCheckout(sess)
	case "0":
		sess.Reset()
		return "❌ Pedido cancelado.\n\n" + e.mainMenuText(sess)
	default:
		return "❌ Opção inválida. Digite *1*, *2*, *3* ou *0*."
	}
}

// handleRemoveItem removes one cart line and re-renders the cart.
func (e *Engine) handleRemoveItem(sess *models.Session, option string) string {
	idx, ok := format.ParseIndex(option, len(sess.Cart))
	if !ok {
		return "❌ Opção inválida. Digite o número de um dos itens do carrinho."
	}
	removed := sess.Cart[idx]
	sess.Cart = append(sess.Cart[:idx], sess.Cart[idx+1:]...)

	if len(sess.Cart) == 0 {
		sess.State = models.StateMainMenu
		return fmt.Sprintf("🗑️ *%s* removido.\n\n🛒 Seu carrinho ficou vazio.\n\n%s", removed.Name, e.mainMenuText(sess))
	}
	return fmt.Sprintf("🗑️ *%s* removido.\n\n%s", removed.Name, e.showCart(sess))
}

// startCheckout opens the checkout draft and asks delivery vs pickup.
func (e *Engine) startCheckout(sess *models.Session) string {
	if len(sess.Cart) == 0 {
		sess.State = models.StateMainMenu
		return "🛒 Seu carrinho está vazio.\n\n" + e.mainMenuText(sess)
	}
	sess.Checkout = &models.CheckoutDraft{Subtotal: sess.CartSubtotal()}
	sess.State = models.StateDeliveryType
	return `🚚 Como você quer receber seu pedido?

*1* - 🛵 Entrega
*2* - 🏪 Retirada no balcão`
}

// handleDeliveryType resolves delivery vs pickup. Delivery reuses the address
// on file when there is one, otherwise collects it inline; unknown
// neighborhoods fall back to a zero fee.
func (e *Engine) handleDeliveryType(ctx context.Context, sess *models.Session, option string) string {
	switch option {
	case "1":
		sess.Checkout.DeliveryType = models.DeliveryTypeDelivery
		if !sess.Customer.HasAddress() {
			sess.Reg = &models.RegistrationDraft{}
			sess.State = models.StateCollectAddress
			return `📍 Qual é o *endereço completo* para entrega?
(Rua, número, complemento)`
		}
		return e.resolveFeeAndAskPayment(ctx, sess, sess.Customer.Neighborhood)

	case "2":
		sess.Checkout.DeliveryType = models.DeliveryTypePickup
		sess.Checkout.Fee = decimal.Zero
		sess.Checkout.Total = sess.Checkout.Subtotal
		return e.paymentMethodText(sess)

	default:
		return "❌ Opção inválida. Digite *1* para entrega ou *2* para retirada."
	}
}

// handleCollectAddress captures the delivery address inline at checkout.
func (e *Engine) handleCollectAddress(ctx context.Context, sess *models.Session, text string) string {
	if len(strings.TrimSpace(text)) < models.MinAddressLength {
		return "❌ Por favor, digite um endereço válido com rua e número."
	}
	sess.Reg.Address = strings.TrimSpace(text)

	fees, err := e.catalog.DeliveryFees(ctx)
	if err != nil {
		slog.Error("Engine checkout fee listing failed", "phone", sess.Phone, "error", err)
		sess.Reg.Fees = nil
		sess.State = models.StateCollectNeighborhood
		return "Qual é o *bairro*?"
	}
	sess.Reg.Fees = fees
	sess.State = models.StateCollectNeighborhood
	return neighborhoodListText(fees)
}

// handleCollectNeighborhood saves the collected address on the customer
// record and resolves the delivery fee.
func (e *Engine) handleCollectNeighborhood(ctx context.Context, sess *models.Session, text string) string {
	neighborhood := strings.TrimSpace(text)
	if idx, ok := format.ParseIndex(text, len(sess.Reg.Fees)); ok {
		neighborhood = sess.Reg.Fees[idx].Neighborhood
	} else if len(neighborhood) < 2 {
		return "❌ Por favor, digite o número do bairro ou o nome do bairro."
	}

	addr := sess.Reg.Address
	customer, err := e.customers.UpdateCustomer(ctx, sess.Customer.ID, models.UpdateCustomerRequest{
		Address:      &addr,
		Neighborhood: &neighborhood,
	})
	if err != nil {
		slog.Error("Engine checkout address update failed", "phone", sess.Phone, "error", err)
		return genericErrorReply
	}
	sess.Customer = customer
	sess.Reg = nil
	return e.resolveFeeAndAskPayment(ctx, sess, neighborhood)
}

// resolveFeeAndAskPayment looks up the neighborhood fee, totals the checkout
// and moves to the payment step. A neighborhood without a fee row delivers
// for free rather than blocking the order.
func (e *Engine) resolveFeeAndAskPayment(ctx context.Context, sess *models.Session, neighborhood string) string {
	fee, err := e.catalog.DeliveryFeeByNeighborhood(ctx, neighborhood)
	if err != nil {
		slog.Error("Engine fee lookup failed", "phone", sess.Phone, "neighborhood", neighborhood, "error", err)
		return genericErrorReply
	}
	if fee != nil {
		sess.Checkout.Fee = fee.Fee
	} else {
		slog.Warn("Engine no fee for neighborhood, charging none", "phone", sess.Phone, "neighborhood", neighborhood)
		sess.Checkout.Fee = decimal.Zero
	}
	sess.Checkout.Total = sess.Checkout.Subtotal.Add(sess.Checkout.Fee)
	return e.paymentMethodText(sess)
}

func (e *Engine) paymentMethodText(sess *models.Session) string {
	sess.State = models.StatePaymentMethod
	var b strings.Builder
	if sess.Checkout.DeliveryType == models.DeliveryTypeDelivery {
		fmt.Fprintf(&b, "🛵 Taxa de entrega: %s\n", format.Money(sess.Checkout.Fee))
	}
	fmt.Fprintf(&b, "💰 *Total: %s*\n\n", format.Money(sess.Checkout.Total))
	b.WriteString(`Qual a *forma de pagamento*?

*1* - 💵 Dinheiro
*2* - 💳 Cartão de Crédito
*3* - 💳 Cartão de Débito
*4* - 📱 PIX`)
	return b.String()
}

// handlePaymentMethod records the payment method; cash asks for change.
func (e *Engine) handlePaymentMethod(sess *models.Session, option string) string {
	switch option {
	case "1":
		sess.Checkout.PaymentMethod = models.PaymentCash
		sess.State = models.StateChangeAmount
		return fmt.Sprintf(`💵 Pagamento em dinheiro.

*Precisa de troco?*
Digite o valor da nota (ex: 50 ou 50,00), ou *0* se não precisar de troco.

Total do pedido: %s`, format.Money(sess.Checkout.Total))
	case "2":
		sess.Checkout.PaymentMethod = models.PaymentCredit
	case "3":
		sess.Checkout.PaymentMethod = models.PaymentDebit
	case "4":
		sess.Checkout.PaymentMethod = models.PaymentPix
	default:
		return "❌ Opção inválida. Digite um número de 1 a 4."
	}
	return e.orderSummaryText(sess)
}

// handleChangeAmount validates the tendered cash amount. Zero means no
// change is needed; a positive amount must cover the total.
func (e *Engine) handleChangeAmount(sess *models.Session, text string) string {
	amount, err := format.ParseAmount(text)
	if err != nil || amount.IsNegative() {
		return "❌ Valor inválido. Digite o valor da nota (ex: 50 ou 50,00), ou *0* se não precisar de troco."
	}
	if amount.IsPositive() && amount.LessThan(sess.Checkout.Total) {
		return fmt.Sprintf("❌ O valor informado (%s) é menor que o total do pedido (%s). Digite um valor maior ou *0*.",
			format.Money(amount), format.Money(sess.Checkout.Total))
	}
	sess.Checkout.ChangeFor = amount
	return e.orderSummaryText(sess)
}

// orderSummaryText renders the final confirmation and enters ORDER_SUMMARY.
func (e *Engine) orderSummaryText(sess *models.Session) string {
	sess.State = models.StateOrderSummary
	co := sess.Checkout

	var b strings.Builder
	b.WriteString("📋 *Resumo do Pedido*\n━━━━━━━━━━━━━━━\n")
	for _, item := range sess.Cart {
		fmt.Fprintf(&b, "%dx %s - %s\n", item.Quantity, item.Name, format.Money(item.Subtotal()))
	}
	b.WriteString("━━━━━━━━━━━━━━━\n")
	fmt.Fprintf(&b, "Subtotal: %s\n", format.Money(co.Subtotal))
	if co.DeliveryType == models.DeliveryTypeDelivery {
		fmt.Fprintf(&b, "Taxa de entrega: %s\n", format.Money(co.Fee))
	}
	fmt.Fprintf(&b, "*Total: %s*\n\n", format.Money(co.Total))
	fmt.Fprintf(&b, "%s\n", format.DeliveryType(co.DeliveryType))
	if co.DeliveryType == models.DeliveryTypeDelivery {
		fmt.Fprintf(&b, "📍 %s - %s\n", sess.Customer.Address, sess.Customer.Neighborhood)
	} else {
		fmt.Fprintf(&b, "📍 %s\n", pickupAddress)
	}
	fmt.Fprintf(&b, "%s\n", format.PaymentMethod(co.PaymentMethod))
	if co.PaymentMethod == models.PaymentCash && co.ChangeFor.IsPositive() {
		fmt.Fprintf(&b, "💵 Troco para: %s\n", format.Money(co.ChangeFor))
	}
	b.WriteString(`
*1* - ✅ Confirmar pedido
*2* - ❌ Cancelar`)
	return b.String()
}

// handleOrderSummary submits the order on confirmation.
func (e *Engine) handleOrderSummary(ctx context.Context, sess *models.Session, option string) string {
	switch option {
	case "1":
		return e.submitOrder(ctx, sess)
	case "2":
		sess.Reset()
		return "❌ Pedido cancelado.\n\n" + e.mainMenuText(sess)
	default:
		return "❌ Opção inválida. Digite *1* para confirmar ou *2* para cancelar."
	}
}

// submitOrder builds the backend payload from the cart and checkout draft and
// posts it. The session is only reset after the backend accepts the order.
func (e *Engine) submitOrder(ctx context.Context, sess *models.Session) string {
	co := sess.Checkout

	items := make([]models.OrderItem, 0, len(sess.Cart))
	for _, item := range sess.Cart {
		oi := models.OrderItem{
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Note:      item.Note,
		}
		if item.Kind == models.CartItemPizza {
			oi.ProductID = item.Toppings[0].ID
			sizeID := item.Size.ID
			oi.SizeID = &sizeID
			if item.Crust != nil {
				crustID := item.Crust.ID
				oi.CrustID = &crustID
			}
		} else {
			oi.ProductID = item.Product.ID
		}
		items = append(items, oi)
	}

	req := models.CreateOrderRequest{
		CustomerID:    sess.Customer.ID,
		DeliveryType:  co.DeliveryType,
		PaymentMethod: co.PaymentMethod,
		Subtotal:      co.Subtotal,
		DeliveryFee:   co.Fee,
		Total:         co.Total,
		Items:         items,
		Phone:         sess.Phone,
	}
	if co.DeliveryType == models.DeliveryTypeDelivery {
		req.DeliveryAddress = sess.Customer.Address + " - " + sess.Customer.Neighborhood
	}
	if co.PaymentMethod == models.PaymentCash && co.ChangeFor.IsPositive() {
		change := co.ChangeFor
		req.ChangeFor = &change
	}

	order, err := e.orders.CreateOrder(ctx, req)
	if err != nil {
		slog.Error("Engine order submission failed", "phone", sess.Phone, "error", err)
		return genericErrorReply
	}

	eta := "40 a 60 minutos"
	if co.DeliveryType == models.DeliveryTypePickup {
		eta = "30 a 40 minutos"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🎉 *Pedido %s confirmado!*\n\n", format.OrderNumber(order.DisplayNumber()))
	fmt.Fprintf(&b, "⏱️ Tempo estimado: %s\n", eta)
	if co.PaymentMethod == models.PaymentPix {
		fmt.Fprintf(&b, "\n📱 *Chave PIX:* %s\n", pixKey)
		b.WriteString("Envie o comprovante por aqui para agilizar a confirmação! 😉\n")
	}
	b.WriteString("\nVocê pode acompanhar o pedido digitando *2* no menu principal.\n\nObrigado pela preferência! 🍕")

	sess.Reset()
	return b.String()
}
