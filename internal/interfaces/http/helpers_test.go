package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	apphttp "github.com/jhoicas/tienda-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/tienda-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "tienda-api-test"
	testExpMin    = 60
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memCategoryRepo struct {
	categories map[string]*entity.Category
}

func (r *memCategoryRepo) Create(c *entity.Category) error {
	copied := *c
	r.categories[c.ID] = &copied
	return nil
}

func (r *memCategoryRepo) GetByID(id string) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (r *memCategoryRepo) GetByName(name string) (*entity.Category, error) {
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

func (r *memCategoryRepo) GetDescendants(id string, includeSelf bool) ([]string, error) {
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

func (r *memCategoryRepo) ListByParent(parentID string) ([]*entity.Category, error) {
	list := []*entity.Category{}
	for _, c := range r.categories {
		if c.ParentID == parentID {
			copied := *c
			list = append(list, &copied)
		}
	}
	return list, nil
}

type memProductRepo struct {
	products map[string]*entity.Product
}

func (r *memProductRepo) Create(p *entity.Product) error {
	copied := *p
	r.products[p.ID] = &copied
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (r *memProductRepo) AverageByCategoryIDs(categoryIDs []string) (decimal.Decimal, error) {
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

func (r *memProductRepo) ListByCategory(categoryID string, limit, offset int) ([]*entity.Product, error) {
	list := []*entity.Product{}
	for _, p := range r.products {
		if categoryID == "" || p.CategoryID == categoryID {
			copied := *p
			list = append(list, &copied)
		}
	}
	return list, nil
}

type memOrderRepo struct {
	orders   map[string]*entity.Order
	assoc    map[string][]string
	products *memProductRepo
}

func (r *memOrderRepo) Create(o *entity.Order) error {
	copied := *o
	r.orders[o.ID] = &copied
	return nil
}

func (r *memOrderRepo) AddProduct(orderID, productID string) error {
	r.assoc[orderID] = append(r.assoc[orderID], productID)
	return nil
}

func (r *memOrderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	copied := *o
	return &copied, nil
}

func (r *memOrderRepo) GetProducts(orderID string) ([]*entity.Product, error) {
	list := []*entity.Product{}
	for _, pid := range r.assoc[orderID] {
		if p, _ := r.products.GetByID(pid); p != nil {
			list = append(list, p)
		}
	}
	return list, nil
}

type memUserRepo struct {
	users map[string]*entity.User
}

func (r *memUserRepo) Create(u *entity.User) error {
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

type memTxRunner struct {
	orderRepo   *memOrderRepo
	productRepo *memProductRepo
}

func (t *memTxRunner) Run(_ context.Context, fn func(repository.OrderRepository, repository.ProductRepository) error) error {
	return fn(t.orderRepo, t.productRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado de la app de test
// ──────────────────────────────────────────────────────────────────────────────

// testEnv app Fiber completa sobre repositorios en memoria.
type testEnv struct {
	app          *fiber.App
	categoryRepo *memCategoryRepo
	productRepo  *memProductRepo
	orderRepo    *memOrderRepo
	userRepo     *memUserRepo
}

// notifier opcional, para verificar el efecto lateral desde la capa HTTP.
func buildTestEnv(t *testing.T, notifier usecase.OrderNotifier) *testEnv {
	t.Helper()

	categoryRepo := &memCategoryRepo{categories: map[string]*entity.Category{}}
	productRepo := &memProductRepo{products: map[string]*entity.Product{}}
	orderRepo := &memOrderRepo{orders: map[string]*entity.Order{}, assoc: map[string][]string{}, products: productRepo}
	userRepo := &memUserRepo{users: map[string]*entity.User{}}

	require.NoError(t, userRepo.Create(&entity.User{
		ID:    testUserID,
		Email: "cliente@example.com",
		Name:  "Cliente",
	}))

	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, nil)
	bulkUC := usecase.NewBulkUseCase(categoryUC, productRepo, nil)
	pricingUC := usecase.NewPricingUseCase(categoryRepo, productRepo, nil)
	orderUC := usecase.NewOrderUseCase(
		&memTxRunner{orderRepo: orderRepo, productRepo: productRepo},
		productRepo, orderRepo, userRepo, notifier,
	)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: testExpMin,
		Issuer:     testIssuer,
	})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		JWTSecret: testJWTSecret,
		Auth:      apphttp.NewAuthHandler(authUC),
		Category:  apphttp.NewCategoryHandler(categoryUC),
		Product:   apphttp.NewProductHandler(productUC, bulkUC),
		Order:     apphttp.NewOrderHandler(orderUC),
		Pricing:   apphttp.NewPricingHandler(pricingUC),
	})

	return &testEnv{
		app:          app,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		userRepo:     userRepo,
	}
}

func testToken(t *testing.T) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// doJSON lanza una petición JSON autenticada y devuelve la respuesta.
func (e *testEnv) doJSON(t *testing.T, method, path, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", testToken(t))
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func (e *testEnv) seedCategory(t *testing.T, id, parentID, name string) {
	t.Helper()
	require.NoError(t, e.categoryRepo.Create(&entity.Category{ID: id, ParentID: parentID, Name: name}))
}

func (e *testEnv) seedProduct(t *testing.T, id, categoryID, price string) {
	t.Helper()
	require.NoError(t, e.productRepo.Create(&entity.Product{
		ID:         id,
		CategoryID: categoryID,
		Name:       "Producto " + id,
		Price:      decimal.RequireFromString(price),
	}))
}
