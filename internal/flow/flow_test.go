package flow

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/lasenhorita/pizzabot/internal/models"
	"github.com/lasenhorita/pizzabot/internal/session"
)

// fakeBackend implements Catalog, Customers and Orders against in-memory
// fixtures resembling the pizzeria seed data.
type fakeBackend struct {
	categories []models.Category
	products   map[int][]models.Product
	sizes      []models.PizzaSize
	crusts     []models.Crust
	fees       []models.DeliveryFee
	customers  map[string]*models.Customer

	failCategories bool
	failOrders     bool

	createCustomerCalls int
	nextCustomerID      int
	lastOrderReq        *models.CreateOrderRequest
	orders              []models.Order
}

func (f *fakeBackend) Categories(ctx context.Context) ([]models.Category, error) {
	if f.failCategories {
		return nil, errors.New("backend unavailable")
	}
	return f.categories, nil
}

func (f *fakeBackend) ProductsByCategory(ctx context.Context, categoryID int) ([]models.Product, error) {
	return f.products[categoryID], nil
}

func (f *fakeBackend) Sizes(ctx context.Context) ([]models.PizzaSize, error) {
	return f.sizes, nil
}

func (f *fakeBackend) Crusts(ctx context.Context) ([]models.Crust, error) {
	return f.crusts, nil
}

func (f *fakeBackend) DeliveryFees(ctx context.Context) ([]models.DeliveryFee, error) {
	return f.fees, nil
}

func (f *fakeBackend) DeliveryFeeByNeighborhood(ctx context.Context, neighborhood string) (*models.DeliveryFee, error) {
	for _, fee := range f.fees {
		if strings.EqualFold(fee.Neighborhood, neighborhood) {
			return &fee, nil
		}
	}
	return nil, nil
}

func (f *fakeBackend) CustomerByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	if c, ok := f.customers[phone]; ok {
		return c, nil
	}
	return nil, nil
}

func (f *fakeBackend) CreateCustomer(ctx context.Context, req models.CreateCustomerRequest) (*models.Customer, error) {
	f.createCustomerCalls++
	f.nextCustomerID++
	c := &models.Customer{
		ID:           f.nextCustomerID,
		Name:         req.Name,
		Phone:        req.Phone,
		Address:      req.Address,
		Neighborhood: req.Neighborhood,
	}
	f.customers[req.Phone] = c
	return c, nil
}

func (f *fakeBackend) UpdateCustomer(ctx context.Context, id int, req models.UpdateCustomerRequest) (*models.Customer, error) {
	for _, c := range f.customers {
		if c.ID == id {
			if req.Address != nil {
				c.Address = *req.Address
			}
			if req.Neighborhood != nil {
				c.Neighborhood = *req.Neighborhood
			}
			return c, nil
		}
	}
	return nil, errors.New("customer not found")
}

func (f *fakeBackend) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	if f.failOrders {
		return nil, errors.New("backend unavailable")
	}
	f.lastOrderReq = &req
	order := models.Order{
		ID:            len(f.orders) + 1,
		Number:        "7",
		CustomerID:    req.CustomerID,
		Status:        models.StatusPending,
		DeliveryType:  req.DeliveryType,
		PaymentMethod: req.PaymentMethod,
		Subtotal:      req.Subtotal,
		DeliveryFee:   req.DeliveryFee,
		Total:         req.Total,
		Items:         req.Items,
	}
	f.orders = append(f.orders, order)
	return &order, nil
}

func (f *fakeBackend) OrdersByCustomer(ctx context.Context, customerID int) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeBackend) OrderByID(ctx context.Context, orderID int) (*models.Order, error) {
	for _, o := range f.orders {
		if o.ID == orderID {
			return &o, nil
		}
	}
	return nil, nil
}

func price(sizeID int, v int64) models.SizePrice {
	return models.SizePrice{SizeID: sizeID, Price: decimal.NewFromInt(v)}
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		categories: []models.Category{
			{ID: 1, Name: "Pizzas", Order: 1},
			{ID: 2, Name: "Bebidas", Order: 2},
		},
		products: map[int][]models.Product{
			1: {
				{ID: 10, Name: "Calabresa", CategoryID: 1, IsPizza: true, Active: true,
					SizePrices: []models.SizePrice{price(1, 35), price(2, 42)}},
				{ID: 11, Name: "Frango com Catupiry", CategoryID: 1, IsPizza: true, Active: true,
					SizePrices: []models.SizePrice{price(1, 40), price(2, 52)}},
			},
			2: {
				{ID: 20, Name: "Coca-Cola 2L", CategoryID: 2, Active: true,
					Price: &models.SimplePrice{Price: decimal.NewFromInt(12)}},
			},
		},
		sizes: []models.PizzaSize{
			{ID: 1, Name: "Média", Slices: 6, MaxToppings: 2},
			{ID: 2, Name: "Grande", Slices: 8, MaxToppings: 3},
		},
		crusts: []models.Crust{
			{ID: 1, Name: "Catupiry", Surcharge: decimal.NewFromInt(8)},
		},
		fees: []models.DeliveryFee{
			{ID: 1, Neighborhood: "Centro", Fee: decimal.NewFromInt(6)},
			{ID: 2, Neighborhood: "Jardim", Fee: decimal.NewFromInt(8)},
		},
		customers:      map[string]*models.Customer{},
		nextCustomerID: 100,
	}
}

const testPhone = "5577999990000"

func newTestEngine(f *fakeBackend) (*Engine, *models.Session) {
	sessions := session.NewInMemoryStore()
	engine := NewEngine(sessions, f, f, f)
	sess := sessions.GetOrCreate(testPhone, testPhone)
	return engine, sess
}

func seedCustomer(f *fakeBackend) *models.Customer {
	c := &models.Customer{ID: 1, Name: "Ana", Phone: testPhone, Address: "Rua A, 10", Neighborhood: "Centro"}
	f.customers[testPhone] = c
	return c
}

func send(t *testing.T, e *Engine, sess *models.Session, text string) string {
	t.Helper()
	return e.HandleMessage(context.Background(), sess, text)
}

func TestFullDeliveryOrderWithCashChange(t *testing.T) {
	f := newFakeBackend()
	seedCustomer(f)
	engine, sess := newTestEngine(f)

	reply := send(t, engine, sess, "oi")
	if !strings.Contains(reply, "Ana") {
		t.Errorf("greeting should name the customer, got %q", reply)
	}
	if sess.State != models.StateMainMenu {
		t.Fatalf("expected MAIN_MENU, got %s", sess.State)
	}

	send(t, engine, sess, "1") // order -> categories
	if sess.State != models.StateSelectCategory {
		t.Fatalf("expected SELECT_CATEGORY, got %s", sess.State)
	}

	send(t, engine, sess, "1") // Pizzas -> sizes
	if sess.State != models.StateSelectSize {
		t.Fatalf("expected SELECT_SIZE, got %s", sess.State)
	}

	send(t, engine, sess, "2") // Grande -> topping count
	if sess.State != models.StateSelectToppingCount {
		t.Fatalf("expected SELECT_TOPPING_COUNT, got %s", sess.State)
	}

	send(t, engine, sess, "2") // two toppings
	if sess.State != models.StateSelectTopping {
		t.Fatalf("expected SELECT_TOPPING, got %s", sess.State)
	}

	send(t, engine, sess, "1") // Calabresa (42 at Grande)
	reply = send(t, engine, sess, "2") // Frango (52) -> crust prompt
	if sess.State != models.StateSelectCrust {
		t.Fatalf("expected SELECT_CRUST, got %s", sess.State)
	}
	if !strings.Contains(reply, "borda") {
		t.Errorf("expected crust prompt, got %q", reply)
	}

	reply = send(t, engine, sess, "2") // Catupiry crust (+8): 52 + 8 = 60
	if sess.State != models.StateItemAdded {
		t.Fatalf("expected ITEM_ADDED, got %s", sess.State)
	}
	if !strings.Contains(reply, "R$ 60,00") {
		t.Errorf("pizza should cost the priciest topping plus crust, got %q", reply)
	}

	send(t, engine, sess, "1") // add more -> categories
	send(t, engine, sess, "2") // Bebidas
	if sess.State != models.StateSelectProduct {
		t.Fatalf("expected SELECT_PRODUCT, got %s", sess.State)
	}
	send(t, engine, sess, "1") // Coca 12

	if got := sess.CartSubtotal(); !got.Equal(decimal.NewFromInt(72)) {
		t.Fatalf("expected cart subtotal 72, got %s", got)
	}

	send(t, engine, sess, "2") // view cart
	if sess.State != models.StateCartReview {
		t.Fatalf("expected CART_REVIEW, got %s", sess.State)
	}
	send(t, engine, sess, "3") // finalize -> delivery type
	if sess.State != models.StateDeliveryType {
		t.Fatalf("expected DELIVERY_TYPE, got %s", sess.State)
	}

	reply = send(t, engine, sess, "1") // delivery, address on file, Centro fee 6
	if sess.State != models.StatePaymentMethod {
		t.Fatalf("expected PAYMENT_METHOD, got %s", sess.State)
	}
	if !strings.Contains(reply, "R$ 78,00") {
		t.Errorf("expected total 78,00 in payment prompt, got %q", reply)
	}

	send(t, engine, sess, "1") // cash -> change amount
	if sess.State != models.StateChangeAmount {
		t.Fatalf("expected CHANGE_AMOUNT, got %s", sess.State)
	}

	reply = send(t, engine, sess, "50") // below total, rejected
	if sess.State != models.StateChangeAmount {
		t.Fatalf("insufficient change amount must not advance state, got %s", sess.State)
	}
	if !strings.Contains(reply, "menor que o total") {
		t.Errorf("expected rejection message, got %q", reply)
	}

	reply = send(t, engine, sess, "100")
	if sess.State != models.StateOrderSummary {
		t.Fatalf("expected ORDER_SUMMARY, got %s", sess.State)
	}
	if !strings.Contains(reply, "Troco para: R$ 100,00") {
		t.Errorf("summary should show the change amount, got %q", reply)
	}

	reply = send(t, engine, sess, "1") // confirm
	if !strings.Contains(reply, "confirmado") {
		t.Errorf("expected confirmation, got %q", reply)
	}
	if sess.State != models.StateMainMenu || len(sess.Cart) != 0 {
		t.Errorf("session should reset after submission, state=%s cart=%d", sess.State, len(sess.Cart))
	}

	req := f.lastOrderReq
	if req == nil {
		t.Fatal("order was not submitted")
	}
	if !req.Total.Equal(decimal.NewFromInt(78)) {
		t.Errorf("expected order total 78, got %s", req.Total)
	}
	if !req.DeliveryFee.Equal(decimal.NewFromInt(6)) {
		t.Errorf("expected delivery fee 6, got %s", req.DeliveryFee)
	}
	if len(req.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(req.Items))
	}
	pizza := req.Items[0]
	if pizza.ProductID != 10 {
		t.Errorf("pizza item should reference the first topping, got product %d", pizza.ProductID)
	}
	if pizza.SizeID == nil || *pizza.SizeID != 2 {
		t.Errorf("pizza item missing size 2: %+v", pizza.SizeID)
	}
	if pizza.CrustID == nil || *pizza.CrustID != 1 {
		t.Errorf("pizza item missing crust 1: %+v", pizza.CrustID)
	}
	if !pizza.UnitPrice.Equal(decimal.NewFromInt(60)) {
		t.Errorf("expected pizza unit price 60, got %s", pizza.UnitPrice)
	}
	if req.ChangeFor == nil || !req.ChangeFor.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected change-for 100, got %+v", req.ChangeFor)
	}
}

func TestPickupChargesNoFee(t *testing.T) {
	f := newFakeBackend()
	seedCustomer(f)
	engine, sess := newTestEngine(f)

	send(t, engine, sess, "oi")
	send(t, engine, sess, "1")
	send(t, engine, sess, "2") // Bebidas
	send(t, engine, sess, "1") // Coca 12
	send(t, engine, sess, "2") // view cart
	send(t, engine, sess, "3") // finalize

	reply := send(t, engine, sess, "2") // pickup
	if sess.State != models.StatePaymentMethod {
		t.Fatalf("expected PAYMENT_METHOD, got %s", sess.State)
	}
	if !strings.Contains(reply, "R$ 12,00") {
		t.Errorf("pickup total should equal subtotal, got %q", reply)
	}
	if !sess.Checkout.Fee.IsZero() {
		t.Errorf("pickup fee should be zero, got %s", sess.Checkout.Fee)
	}
}

func TestPixOrderShowsKey(t *testing.T) {
	f := newFakeBackend()
	seedCustomer(f)
	engine, sess := newTestEngine(f)

	send(t, engine, sess, "oi")
	send(t, engine, sess, "1")
	send(t, engine, sess, "2")
	send(t, engine, sess, "1")
	send(t, engine, sess, "2") // view cart
	send(t, engine, sess, "3") // finalize
	send(t, engine, sess, "2") // pickup
	send(t, engine, sess, "4") // pix -> summary
	if sess.State != models.StateOrderSummary {
		t.Fatalf("expected ORDER_SUMMARY, got %s", sess.State)
	}

	reply := send(t, engine, sess, "1")
	if !strings.Contains(reply, pixKey) {
		t.Errorf("pix confirmation should carry the key, got %q", reply)
	}
	if f.lastOrderReq.ChangeFor != nil {
		t.Errorf("pix order must not carry change-for, got %+v", f.lastOrderReq.ChangeFor)
	}
}

func TestZeroChangeMeansNoChange(t *testing.T) {
	f := newFakeBackend()
	seedCustomer(f)
	engine, sess := newTestEngine(f)

	send(t, engine, sess, "oi")
	send(t, engine, sess, "1")
	send(t, engine, sess, "2")
	send(t, engine, sess, "1")
	send(t, engine, sess, "2") // view cart
	send(t, engine, sess, "3") // finalize
	send(t, engine, sess, "2") // pickup
	send(t, engine, sess, "1") // cash
	reply := send(t, engine, sess, "0")
	if sess.State != models.StateOrderSummary {
		t.Fatalf("zero should be accepted as no change, got %s", sess.State)
	}
	if strings.Contains(reply, "Troco para") {
		t.Errorf("summary should not show change when none requested, got %q", reply)
	}

	send(t, engine, sess, "1")
	if f.lastOrderReq.ChangeFor != nil {
		t.Errorf("order must not carry change-for, got %+v", f.lastOrderReq.ChangeFor)
	}
}

func TestRegistrationCreatesCustomerOnce(t *testing.T) {
	f := newFakeBackend()
	engine, sess := newTestEngine(f)

	send(t, engine, sess, "oi")
	send(t, engine, sess, "1")
	if sess.State != models.StateRegisterName {
		t.Fatalf("unknown customer should register first, got %s", sess.State)
	}

	reply := send(t, engine, sess, "B")
	if sess.State != models.StateRegisterName {
		t.Fatalf("too-short name must not advance state, got %s", sess.State)
	}
	if !strings.Contains(reply, "nome válido") {
		t.Errorf("expected name reprompt, got %q", reply)
	}

	send(t, engine, sess, "Bruno")
	if sess.State != models.StateRegisterAddress {
		t.Fatalf("expected REGISTER_ADDRESS, got %s", sess.State)
	}

	send(t, engine, sess, "Rua B, 22")
	if sess.State != models.StateRegisterNeighborhood {
		t.Fatalf("expected REGISTER_NEIGHBORHOOD, got %s", sess.State)
	}

	send(t, engine, sess, "2") // Jardim
	if sess.State != models.StateSelectCategory {
		t.Fatalf("registration should land in SELECT_CATEGORY, got %s", sess.State)
	}
	if f.createCustomerCalls != 1 {
		t.Errorf("expected exactly one customer creation, got %d", f.createCustomerCalls)
	}
	if sess.Customer == nil || sess.Customer.Neighborhood != "Jardim" {
		t.Errorf("session customer not bound: %+v", sess.Customer)
	}
}

func TestEscapeCommandResetsFromAnyState(t *testing.T) {
	f := newFakeBackend()
	seedCustomer(f)
	engine, sess := newTestEngine(f)

	send(t, engine, sess, "oi")
	send(t, engine, sess, "1")
	send(t, engine, sess, "1") // pizzas -> sizes
	send(t, engine, sess, "1") // Média
	if sess.State != models.StateSelectToppingCount {
		t.Fatalf("expected SELECT_TOPPING_COUNT, got %s", sess.State)
	}

	reply := send(t, engine, sess, "MENU")
	if sess.State != models.StateMainMenu {
		t.Errorf("escape should reset to MAIN_MENU, got %s", sess.State)
	}
	if len(sess.Cart) != 0 || sess.Pizza != nil {
		t.Errorf("escape should clear cart and scratch")
	}
	if !strings.Contains(reply, "Escolha uma opção") {
		t.Errorf("escape should show the main menu, got %q", reply)
	}
}

func TestInvalidInputKeepsState(t *testing.T) {
	f := newFakeBackend()
	seedCustomer(f)
	engine, sess := newTestEngine(f)

	send(t, engine, sess, "oi")
	send(t, engine, sess, "1")
	send(t, engine, sess, "1")
	if sess.State != models.StateSelectSize {
		t.Fatalf("expected SELECT_SIZE, got %s", sess.State)
	}

	reply := send(t, engine, sess, "99")
	if sess.State != models.StateSelectSize {
		t.Errorf("invalid pick must keep state, got %s", sess.State)
	}
	if !strings.Contains(reply, "inválida") {
		t.Errorf("expected targeted reprompt, got %q", reply)
	}
}

func TestDuplicateToppingRejected(t *testing.T) {
	f := newFakeBackend()
	seedCustomer(f)
	engine, sess := newTestEngine(f)

	send(t, engine, sess, "oi")
	send(t, engine, sess, "1")
	send(t, engine, sess, "1")
	send(t, engine, sess, "2") // Grande
	send(t, engine, sess, "2") // two toppings
	send(t, engine, sess, "1") // Calabresa
	reply := send(t, engine, sess, "1")
	if sess.State != models.StateSelectTopping {
		t.Errorf("duplicate topping must keep state, got %s", sess.State)
	}
	if !strings.Contains(reply, "já foi escolhido") {
		t.Errorf("expected duplicate rejection, got %q", reply)
	}
}

func TestBackendFailureLeavesStateUntouched(t *testing.T) {
	f := newFakeBackend()
	seedCustomer(f)
	f.failCategories = true
	engine, sess := newTestEngine(f)

	send(t, engine, sess, "oi")
	reply := send(t, engine, sess, "1")
	if reply != genericErrorReply {
		t.Errorf("expected generic error reply, got %q", reply)
	}
	if sess.State != models.StateMainMenu {
		t.Errorf("failed call must not mutate state, got %s", sess.State)
	}
}

func TestOrderSubmissionFailureKeepsCart(t *testing.T) {
	f := newFakeBackend()
	seedCustomer(f)
	f.failOrders = true
	engine, sess := newTestEngine(f)

	send(t, engine, sess, "oi")
	send(t, engine, sess, "1")
	send(t, engine, sess, "2")
	send(t, engine, sess, "1")
	send(t, engine, sess, "2") // view cart
	send(t, engine, sess, "3") // finalize
	send(t, engine, sess, "2") // pickup
	send(t, engine, sess, "4") // pix

	reply := send(t, engine, sess, "1")
	if reply != genericErrorReply {
		t.Errorf("expected generic error reply, got %q", reply)
	}
	if sess.State != models.StateOrderSummary {
		t.Errorf("failed submission must stay on summary, got %s", sess.State)
	}
	if len(sess.Cart) != 1 {
		t.Errorf("failed submission must keep cart, got %d items", len(sess.Cart))
	}
}

func TestRemoveItemEmptiesCart(t *testing.T) {
	f := newFakeBackend()
	seedCustomer(f)
	engine, sess := newTestEngine(f)

	send(t, engine, sess, "oi")
	send(t, engine, sess, "1")
	send(t, engine, sess, "2")
	send(t, engine, sess, "1") // Coca
	send(t, engine, sess, "2") // view cart
	if sess.State != models.StateCartReview {
		t.Fatalf("expected CART_REVIEW, got %s", sess.State)
	}
	send(t, engine, sess, "2") // remove
	reply := send(t, engine, sess, "1")
	if sess.State != models.StateMainMenu {
		t.Errorf("emptying the cart should return to MAIN_MENU, got %s", sess.State)
	}
	if !strings.Contains(reply, "vazio") {
		t.Errorf("expected empty cart notice, got %q", reply)
	}
}

func TestBackOptionStepsThroughPizzaComposition(t *testing.T) {
	f := newFakeBackend()
	seedCustomer(f)
	engine, sess := newTestEngine(f)

	send(t, engine, sess, "oi")
	send(t, engine, sess, "1")
	send(t, engine, sess, "1") // pizzas -> sizes
	if sess.State != models.StateSelectSize {
		t.Fatalf("expected SELECT_SIZE, got %s", sess.State)
	}

	send(t, engine, sess, "0") // back to categories
	if sess.State != models.StateSelectCategory {
		t.Errorf("back from size should return to SELECT_CATEGORY, got %s", sess.State)
	}
	if sess.Pizza != nil {
		t.Error("backing out of sizes should discard the pizza draft")
	}

	send(t, engine, sess, "1") // pizzas again
	send(t, engine, sess, "2") // Grande -> topping count
	reply := send(t, engine, sess, "0")
	if sess.State != models.StateSelectSize {
		t.Errorf("back from topping count should return to SELECT_SIZE, got %s", sess.State)
	}
	if !strings.Contains(reply, "Escolha o tamanho") {
		t.Errorf("expected size listing, got %q", reply)
	}

	send(t, engine, sess, "2") // Grande
	send(t, engine, sess, "2") // two toppings
	send(t, engine, sess, "1") // Calabresa
	reply = send(t, engine, sess, "0")
	if sess.State != models.StateSelectToppingCount {
		t.Errorf("back from toppings should return to SELECT_TOPPING_COUNT, got %s", sess.State)
	}
	if len(sess.Pizza.Toppings) != 0 {
		t.Errorf("backing out should discard picked toppings, got %d", len(sess.Pizza.Toppings))
	}
	if !strings.Contains(reply, "Quantos sabores") {
		t.Errorf("expected topping count prompt, got %q", reply)
	}
}

func TestCrustOptionOneMeansNoCrust(t *testing.T) {
	f := newFakeBackend()
	seedCustomer(f)
	engine, sess := newTestEngine(f)

	send(t, engine, sess, "oi")
	send(t, engine, sess, "1")
	send(t, engine, sess, "1") // pizzas
	send(t, engine, sess, "1") // Média
	send(t, engine, sess, "1") // one topping
	reply := send(t, engine, sess, "1") // Calabresa (35 at Média) -> crust prompt
	if sess.State != models.StateSelectCrust {
		t.Fatalf("expected SELECT_CRUST, got %s", sess.State)
	}
	if !strings.Contains(reply, "*1* - Sem borda recheada") {
		t.Errorf("crust menu should offer no-crust as option 1, got %q", reply)
	}
	if !strings.Contains(reply, "*2* - Catupiry") {
		t.Errorf("crusts should be numbered from 2, got %q", reply)
	}

	reply = send(t, engine, sess, "1") // no crust
	if sess.State != models.StateItemAdded {
		t.Fatalf("expected ITEM_ADDED, got %s", sess.State)
	}
	if !strings.Contains(reply, "R$ 35,00") {
		t.Errorf("no-crust pizza must carry no surcharge, got %q", reply)
	}
	if sess.Cart[0].Crust != nil {
		t.Errorf("cart item should have no crust, got %+v", sess.Cart[0].Crust)
	}

	// Checkout lives in the cart review, not here.
	reply = send(t, engine, sess, "3")
	if sess.State != models.StateItemAdded {
		t.Errorf("three is not a post-add option, state=%s", sess.State)
	}
	if !strings.Contains(reply, "*1* ou *2*") {
		t.Errorf("expected reprompt for 1 or 2, got %q", reply)
	}
}

func TestCartReviewCancelEmptiesCart(t *testing.T) {
	f := newFakeBackend()
	seedCustomer(f)
	engine, sess := newTestEngine(f)

	send(t, engine, sess, "oi")
	send(t, engine, sess, "1")
	send(t, engine, sess, "2") // Bebidas
	send(t, engine, sess, "1") // Coca
	send(t, engine, sess, "2") // view cart
	if sess.State != models.StateCartReview {
		t.Fatalf("expected CART_REVIEW, got %s", sess.State)
	}

	reply := send(t, engine, sess, "0")
	if sess.State != models.StateMainMenu {
		t.Errorf("cancel should return to MAIN_MENU, got %s", sess.State)
	}
	if len(sess.Cart) != 0 {
		t.Errorf("cancel should empty the cart, got %d items", len(sess.Cart))
	}
	if !strings.Contains(reply, "Pedido cancelado") {
		t.Errorf("expected cancellation notice, got %q", reply)
	}
}

func TestTrackOrderListsAndDetails(t *testing.T) {
	f := newFakeBackend()
	c := seedCustomer(f)
	engine, sess := newTestEngine(f)

	// Seed a delivered order.
	f.orders = append(f.orders, models.Order{
		ID: 1, Number: "3", CustomerID: c.ID, Status: models.StatusOutForDel,
		DeliveryType: models.DeliveryTypeDelivery,
		Total:        decimal.NewFromInt(50),
		Courier:      &models.Courier{ID: 1, Name: "Marcos"},
	})

	send(t, engine, sess, "oi")
	reply := send(t, engine, sess, "2")
	if sess.State != models.StateTrackOrder {
		t.Fatalf("expected TRACK_ORDER, got %s", sess.State)
	}
	if !strings.Contains(reply, "#0003") {
		t.Errorf("listing should show the padded order number, got %q", reply)
	}

	reply = send(t, engine, sess, "1")
	if !strings.Contains(reply, "Marcos") {
		t.Errorf("out-for-delivery detail should name the courier, got %q", reply)
	}

	reply = send(t, engine, sess, "0")
	if sess.State != models.StateMainMenu {
		t.Errorf("expected return to MAIN_MENU, got %s", sess.State)
	}
	if !strings.Contains(reply, "Escolha uma opção") {
		t.Errorf("expected main menu, got %q", reply)
	}
}

func TestTrackingRequiresCustomer(t *testing.T) {
	f := newFakeBackend()
	engine, sess := newTestEngine(f)

	send(t, engine, sess, "oi")
	reply := send(t, engine, sess, "2")
	if sess.State != models.StateMainMenu {
		t.Errorf("unknown customer cannot track, state=%s", sess.State)
	}
	if !strings.Contains(reply, "pelo menos um pedido") {
		t.Errorf("expected tracking refusal, got %q", reply)
	}
}
