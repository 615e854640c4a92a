package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vogelpark/storefront/internal/cart"
	"github.com/vogelpark/storefront/pkg/db/models"
	pkgerrors "github.com/vogelpark/storefront/pkg/errors"
)

type fakeOrderRepo struct {
	created  []*models.Order
	statuses map[uuid.UUID]string
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *models.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	f.created = append(f.created, order)
	return nil
}

func (f *fakeOrderRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var rows []models.Order
	for _, o := range f.created {
		if o.UserID != nil && *o.UserID == userID {
			rows = append(rows, *o)
		}
	}
	return rows, nil
}

func (f *fakeOrderRepo) ListAll(ctx context.Context) ([]models.Order, error) {
	var rows []models.Order
	for _, o := range f.created {
		rows = append(rows, *o)
	}
	return rows, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	for _, o := range f.created {
		if o.ID == id {
			if f.statuses == nil {
				f.statuses = map[uuid.UUID]string{}
			}
			f.statuses[id] = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeCatalog struct {
	products map[uuid.UUID]*models.Product
}

func (f *fakeCatalog) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newCheckoutFixture(t *testing.T) (Service, *fakeOrderRepo, *models.Product) {
	t.Helper()
	product := &models.Product{
		ID:    uuid.New(),
		Title: "Futter",
		Price: decimal.RequireFromString("9.99"),
	}
	repo := &fakeOrderRepo{}
	svc, err := NewService(repo, &fakeCatalog{products: map[uuid.UUID]*models.Product{product.ID: product}})
	require.NoError(t, err)
	return svc, repo, product
}

func TestCheckoutFreezesCatalogPrice(t *testing.T) {
	svc, repo, product := newCheckoutFixture(t)

	resp, err := svc.Checkout(context.Background(), CheckoutRequest{
		UserID:    uuid.New(),
		FirstName: "Greta",
		LastName:  "Greif",
		Email:     "greta@example.com",
		Address:   "Parkweg 1",
		City:      "Walsrode",
		Country:   "DE",
		Payment:   "invoice",
		Cart:      []cart.Entry{{ID: product.ID.String(), Quantity: 3}},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, resp.OrderID)

	require.Len(t, repo.created, 1)
	order := repo.created[0]
	require.Len(t, order.Items, 1)
	assert.Equal(t, 3, order.Items[0].Quantity)
	assert.True(t, order.Items[0].Price.Equal(product.Price))
	assert.Equal(t, "pending", order.Status)
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	svc, _, _ := newCheckoutFixture(t)

	_, err := svc.Checkout(context.Background(), CheckoutRequest{Cart: nil})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.Checkout(context.Background(), CheckoutRequest{
		Cart: []cart.Entry{{ID: "", Quantity: 2}, {ID: uuid.NewString(), Quantity: 0}},
	})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCheckoutSkipsVanishedProducts(t *testing.T) {
	svc, repo, product := newCheckoutFixture(t)

	_, err := svc.Checkout(context.Background(), CheckoutRequest{
		Cart: []cart.Entry{
			{ID: uuid.NewString(), Quantity: 1},
			{ID: product.ID.String(), Quantity: 2},
		},
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Len(t, repo.created[0].Items, 1)
}

func TestSetStatusUnknownOrder(t *testing.T) {
	svc, _, _ := newCheckoutFixture(t)

	err := svc.SetStatus(context.Background(), uuid.New(), "shipped")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListForUserScoping(t *testing.T) {
	svc, _, product := newCheckoutFixture(t)
	alice, bob := uuid.New(), uuid.New()

	for _, user := range []uuid.UUID{alice, bob} {
		_, err := svc.Checkout(context.Background(), CheckoutRequest{
			UserID: user,
			Cart:   []cart.Entry{{ID: product.ID.String(), Quantity: 1}},
		})
		require.NoError(t, err)
	}

	own, err := svc.ListForUser(context.Background(), alice, false)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	all, err := svc.ListForUser(context.Background(), alice, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
