package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var errFakeDB = errors.New("fallo de base simulado")

// fakeCategoryRepo repositorio de categorías en memoria para tests.
type fakeCategoryRepo struct {
	categories map[string]*entity.Category
	failCreate bool
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[string]*entity.Category)}
}

func (r *fakeCategoryRepo) Create(category *entity.Category) error {
	if r.failCreate {
		return errFakeDB
	}
	c := *category
	r.categories[c.ID] = &c
	return nil
}

func (r *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCategoryRepo) GetByName(name string) (*entity.Category, error) {
	var oldest *entity.Category
	for _, c := range r.categories {
		if c.Name != name {
			continue
		}
		if oldest == nil || c.CreatedAt.Before(oldest.CreatedAt) {
			oldest = c
		}
	}
	if oldest == nil {
		return nil, nil
	}
	copied := *oldest
	return &copied, nil
}

func (r *fakeCategoryRepo) GetDescendants(id string, includeSelf bool) ([]string, error) {
	ids := []string{}
	if includeSelf {
		ids = append(ids, id)
	}
	frontier := []string{id}
	for len(frontier) > 0 {
		next := []string{}
		for _, parent := range frontier {
			for _, c := range r.categories {
				if c.ParentID == parent {
					ids = append(ids, c.ID)
					next = append(next, c.ID)
				}
			}
		}
		frontier = next
	}
	return ids, nil
}

func (r *fakeCategoryRepo) ListByParent(parentID string) ([]*entity.Category, error) {
	list := []*entity.Category{}
	for _, c := range r.categories {
		if c.ParentID == parentID {
			copied := *c
			list = append(list, &copied)
		}
	}
	return list, nil
}

// fakeProductRepo repositorio de productos en memoria para tests.
type fakeProductRepo struct {
	products   map[string]*entity.Product
	order      []string // IDs en orden de inserción
	failCreate bool
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(product *entity.Product) error {
	if r.failCreate {
		return errFakeDB
	}
	p := *product
	r.products[p.ID] = &p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProductRepo) AverageByCategoryIDs(categoryIDs []string) (decimal.Decimal, error) {
	inSet := make(map[string]bool, len(categoryIDs))
	for _, id := range categoryIDs {
		inSet[id] = true
	}
	sum := decimal.Zero
	count := 0
	for _, p := range r.products {
		if inSet[p.CategoryID] {
			sum = sum.Add(p.Price)
			count++
		}
	}
	if count == 0 {
		return decimal.Zero, nil
	}
	return sum.Div(decimal.NewFromInt(int64(count))), nil
}

func (r *fakeProductRepo) ListByCategory(categoryID string, limit, offset int) ([]*entity.Product, error) {
	list := []*entity.Product{}
	for _, id := range r.order {
		p := r.products[id]
		if categoryID == "" || p.CategoryID == categoryID {
			copied := *p
			list = append(list, &copied)
		}
	}
	if offset > len(list) {
		offset = len(list)
	}
	list = list[offset:]
	if limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

// fakeOrderRepo repositorio de pedidos en memoria para tests.
type fakeOrderRepo struct {
	orders      map[string]*entity.Order
	assoc       map[string][]string // orderID -> productIDs
	products    *fakeProductRepo
	failCreate  bool
	failAddUpon int // falla AddProduct en la N-ésima llamada (1-based); 0 = nunca
	addCalls    int
}

func newFakeOrderRepo(products *fakeProductRepo) *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:   make(map[string]*entity.Order),
		assoc:    make(map[string][]string),
		products: products,
	}
}

func (r *fakeOrderRepo) Create(order *entity.Order) error {
	if r.failCreate {
		return errFakeDB
	}
	o := *order
	r.orders[o.ID] = &o
	return nil
}

func (r *fakeOrderRepo) AddProduct(orderID, productID string) error {
	r.addCalls++
	if r.failAddUpon > 0 && r.addCalls >= r.failAddUpon {
		return errFakeDB
	}
	r.assoc[orderID] = append(r.assoc[orderID], productID)
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	copied := *o
	return &copied, nil
}

func (r *fakeOrderRepo) GetProducts(orderID string) ([]*entity.Product, error) {
	list := []*entity.Product{}
	for _, pid := range r.assoc[orderID] {
		p, err := r.products.GetByID(pid)
		if err != nil {
			return nil, err
		}
		if p != nil {
			list = append(list, p)
		}
	}
	return list, nil
}

// fakeUserRepo repositorio de clientes en memoria para tests.
type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(user *entity.User) error {
	u := *user
	r.users[u.ID] = &u
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

// fakeTxRunner simula la transacción: si fn falla, revierte el estado de los
// repos de pedidos al snapshot previo.
type fakeTxRunner struct {
	orderRepo   *fakeOrderRepo
	productRepo *fakeProductRepo
}

func (t *fakeTxRunner) Run(_ context.Context, fn func(repository.OrderRepository, repository.ProductRepository) error) error {
	ordersBefore := make(map[string]*entity.Order, len(t.orderRepo.orders))
	for k, v := range t.orderRepo.orders {
		ordersBefore[k] = v
	}
	assocBefore := make(map[string][]string, len(t.orderRepo.assoc))
	for k, v := range t.orderRepo.assoc {
		assocBefore[k] = append([]string(nil), v...)
	}

	if err := fn(t.orderRepo, t.productRepo); err != nil {
		t.orderRepo.orders = ordersBefore
		t.orderRepo.assoc = assocBefore
		return err
	}
	return nil
}

// fakeNotifier registra las invocaciones del despachador de notificaciones.
type fakeNotifier struct {
	calls     int
	lastOrder *entity.Order
	lastUser  *entity.User
	lastProds []*entity.Product
}

func (n *fakeNotifier) OrderCreated(order *entity.Order, customer *entity.User, products []*entity.Product) {
	n.calls++
	n.lastOrder = order
	n.lastUser = customer
	n.lastProds = products
}

// fakeCache registra lecturas/escrituras del cache de promedios.
type fakeCache struct {
	values      map[string]decimal.Decimal
	gets        int
	sets        int
	invalidates int
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]decimal.Decimal)}
}

func (c *fakeCache) GetAverage(categoryID string) (decimal.Decimal, bool) {
	c.gets++
	v, ok := c.values[categoryID]
	return v, ok
}

func (c *fakeCache) SetAverage(categoryID string, avg decimal.Decimal) {
	c.sets++
	c.values[categoryID] = avg
}

func (c *fakeCache) InvalidateAverages() {
	c.invalidates++
	c.values = make(map[string]decimal.Decimal)
}
