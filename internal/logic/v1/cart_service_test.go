package v1

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meditrust/storefront/internal/core/domain"
)

// fakeCatalog implements domain.ProductRepository over a map.
type fakeCatalog struct {
	mu       sync.Mutex
	products map[int]domain.Product
}

func newFakeCatalog(products ...domain.Product) *fakeCatalog {
	m := make(map[int]domain.Product, len(products))
	for _, p := range products {
		m[p.SerialNumber] = p
	}
	return &fakeCatalog{products: m}
}

func (f *fakeCatalog) ListAll(context.Context) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeCatalog) BySerial(_ context.Context, serial int) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[serial]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeCatalog) setPrice(serial int, price float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.products[serial]
	p.TransferPrice = price
	f.products[serial] = p
}

// fakeCartRepo implements domain.CartRepository in memory. The mutex
// around UpsertAdd mirrors the atomicity the SQL upsert provides.
type fakeCartRepo struct {
	mu      sync.Mutex
	catalog *fakeCatalog
	entries map[[2]int]*fakeEntry
	seq     int
}

type fakeEntry struct {
	id       int
	quantity int
	addedAt  time.Time
}

func newFakeCartRepo(catalog *fakeCatalog) *fakeCartRepo {
	return &fakeCartRepo{catalog: catalog, entries: make(map[[2]int]*fakeEntry)}
}

func (f *fakeCartRepo) UpsertAdd(_ context.Context, userID, productID, quantity int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]int{userID, productID}
	if e, ok := f.entries[key]; ok {
		e.quantity += quantity
		return e.quantity, nil
	}
	f.seq++
	f.entries[key] = &fakeEntry{id: f.seq, quantity: quantity, addedAt: time.Now()}
	return quantity, nil
}

func (f *fakeCartRepo) SetQuantity(_ context.Context, userID, productID, quantity int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[[2]int{userID, productID}]
	if !ok {
		return false, nil
	}
	e.quantity = quantity
	return true, nil
}

func (f *fakeCartRepo) Delete(_ context.Context, userID, productID int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]int{userID, productID}
	if _, ok := f.entries[key]; !ok {
		return false, nil
	}
	delete(f.entries, key)
	return true, nil
}

func (f *fakeCartRepo) ListByUser(_ context.Context, userID int) ([]domain.CartLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lines := make([]domain.CartLine, 0)
	for key, e := range f.entries {
		if key[0] != userID {
			continue
		}
		product := f.catalog.products[key[1]]
		lines = append(lines, domain.CartLine{
			EntryID:  e.id,
			Quantity: e.quantity,
			AddedAt:  e.addedAt,
			Product:  product,
		})
	}
	return lines, nil
}

func newCartFixture(products ...domain.Product) (*CartService, *fakeCatalog, *fakeCartRepo) {
	catalog := newFakeCatalog(products...)
	carts := newFakeCartRepo(catalog)
	return NewCartService(carts, catalog), catalog, carts
}

func TestAddItemMergesQuantities(t *testing.T) {
	svc, _, _ := newCartFixture(domain.Product{SerialNumber: 10, ProductName: "Paracetamol", TransferPrice: 12.5})
	ctx := context.Background()

	qty, err := svc.AddItem(ctx, 1, 10, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, qty)

	qty, err = svc.AddItem(ctx, 1, 10, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, qty, "second add must merge, not overwrite")

	lines, err := svc.ListItems(ctx, 1)
	require.NoError(t, err)
	require.Len(t, lines, 1, "merge must never create a second entry")
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestAddItemRejectsUnknownProduct(t *testing.T) {
	svc, _, _ := newCartFixture()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, 99, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)

	lines, err := svc.ListItems(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, lines, "failed add must not create a row")
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	svc, _, _ := newCartFixture(domain.Product{SerialNumber: 10})
	ctx := context.Background()

	for _, qty := range []int{0, -3} {
		_, err := svc.AddItem(ctx, 1, 10, qty)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
}

func TestUpdateQuantityOverwrites(t *testing.T) {
	svc, _, _ := newCartFixture(domain.Product{SerialNumber: 10})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, 10, 5)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateQuantity(ctx, 1, 10, 2))

	lines, err := svc.ListItems(ctx, 1)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity, "update is absolute-set, never additive")
}

func TestUpdateQuantityMissingEntry(t *testing.T) {
	svc, _, _ := newCartFixture(domain.Product{SerialNumber: 10})

	err := svc.UpdateQuantity(context.Background(), 1, 10, 2)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestUpdateQuantityRejectsNonPositive(t *testing.T) {
	svc, _, _ := newCartFixture(domain.Product{SerialNumber: 10})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, 10, 3)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.UpdateQuantity(ctx, 1, 10, 0), ErrInvalidQuantity)

	lines, err := svc.ListItems(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, lines[0].Quantity, "rejected update must not clamp")
}

func TestRemoveItemTwice(t *testing.T) {
	svc, _, _ := newCartFixture(domain.Product{SerialNumber: 10})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, 10, 1)
	require.NoError(t, err)

	assert.NoError(t, svc.RemoveItem(ctx, 1, 10))
	assert.ErrorIs(t, svc.RemoveItem(ctx, 1, 10), ErrEntryNotFound,
		"second remove must report the miss, not succeed silently")
}

func TestCartTotalTracksCatalogPrice(t *testing.T) {
	svc, catalog, _ := newCartFixture(domain.Product{SerialNumber: 10, TransferPrice: 10})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, 10, 2)
	require.NoError(t, err)

	lines, err := svc.ListItems(ctx, 1)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, CartTotal(lines), 1e-9)

	// A price change after the add must show up in the next read.
	catalog.setPrice(10, 12.5)

	lines, err = svc.ListItems(ctx, 1)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, CartTotal(lines), 1e-9)
}

func TestConcurrentAddsConverge(t *testing.T) {
	svc, _, _ := newCartFixture(domain.Product{SerialNumber: 10})
	ctx := context.Background()

	const n = 64
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.AddItem(ctx, 1, 10, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	lines, err := svc.ListItems(ctx, 1)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, n, lines[0].Quantity, "no increment may be lost")
}

func TestCartLifecycleScenario(t *testing.T) {
	svc, _, _ := newCartFixture(domain.Product{SerialNumber: 10, ProductName: "Amoxicillin"})
	ctx := context.Background()

	qty, err := svc.AddItem(ctx, 7, 10, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, qty)

	qty, err = svc.AddItem(ctx, 7, 10, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, qty)

	require.NoError(t, svc.UpdateQuantity(ctx, 7, 10, 1))

	lines, err := svc.ListItems(ctx, 7)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)

	require.NoError(t, svc.RemoveItem(ctx, 7, 10))

	lines, err = svc.ListItems(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCartsAreIndependentPerUser(t *testing.T) {
	svc, _, _ := newCartFixture(domain.Product{SerialNumber: 10})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, 10, 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, 2, 10, 7)
	require.NoError(t, err)

	lines, err := svc.ListItems(ctx, 1)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}
