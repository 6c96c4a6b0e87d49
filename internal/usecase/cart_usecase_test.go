package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =====================
// fakes
// =====================

// KVのインメモリfake。Setを失敗させられる。
type fakeKV struct {
	mu      sync.Mutex
	values  map[string]string
	failSet bool
}

func newFakeKV() *fakeKV {
	return &fakeKV{values: map[string]string{}}
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	if !ok {
		return "", repo.ErrNotFound
	}
	return v, nil
}

func (f *fakeKV) Set(ctx context.Context, key string, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSet {
		return errors.New("kv down")
	}
	f.values[key] = value
	return nil
}

func (f *fakeKV) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, key)
	return nil
}

// 固定カタログのstub
type stubProductRepo struct{}

var stubCatalog = []model.Product{
	{ID: 1, Name: "Coconut Argan Hair Oil", Price: 1200, Image: "/assets/1.jpeg", Category: "Hair Treatment", InStock: true},
	{ID: 2, Name: "Rosemary Mint Scalp Oil", Price: 950, Image: "/assets/2.jpeg", Category: "Scalp Treatment", InStock: true},
	{ID: 3, Name: "Sold Out Oil", Price: 500, InStock: false},
}

func (s *stubProductRepo) List(ctx context.Context) ([]model.Product, error) {
	return stubCatalog, nil
}

func (s *stubProductRepo) ListFeatured(ctx context.Context) ([]model.Product, error) {
	return nil, nil
}

func (s *stubProductRepo) FindByID(ctx context.Context, id int64) (model.Product, error) {
	for _, p := range stubCatalog {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, repo.ErrNotFound
}

func (s *stubProductRepo) ReviewsByProductID(ctx context.Context, id int64) ([]model.Review, error) {
	return nil, nil
}

func newCartUC(kv *fakeKV) *usecase.CartUsecase {
	return usecase.NewCartUsecase(kv, &stubProductRepo{})
}

// 不変条件: productIDごとに1行・数量は常に1以上・合計は毎回明細から一致
func assertCartInvariants(t *testing.T, out usecase.CartResponse) {
	t.Helper()

	seen := map[int64]bool{}
	var total int64 = 0
	var count int64 = 0
	for _, it := range out.Items {
		assert.False(t, seen[it.ProductID], "duplicate line for product %d", it.ProductID)
		seen[it.ProductID] = true
		assert.GreaterOrEqual(t, it.Quantity, int64(1))
		total += it.Price * it.Quantity
		count += it.Quantity
	}
	assert.Equal(t, total, out.Total)
	assert.Equal(t, count, out.ItemCount)
}

// =====================
// tests
// =====================

func TestAddToCart_MergesSameProduct(t *testing.T) {
	kv := newFakeKV()
	uc := newCartUC(kv)
	ctx := context.Background()

	out, err := uc.AddToCart(ctx, "k", usecase.AddCartInput{ProductID: 1, Quantity: 2})
	require.NoError(t, err)
	assertCartInvariants(t, out)

	out, err = uc.AddToCart(ctx, "k", usecase.AddCartInput{ProductID: 1, Quantity: 3})
	require.NoError(t, err)

	require.Len(t, out.Items, 1)
	assert.Equal(t, int64(5), out.Items[0].Quantity)
	assert.Equal(t, int64(6000), out.Total)
	assertCartInvariants(t, out)
}

func TestAddToCart_ClampsQuantityToOne(t *testing.T) {
	uc := newCartUC(newFakeKV())
	ctx := context.Background()

	out, err := uc.AddToCart(ctx, "k", usecase.AddCartInput{ProductID: 2, Quantity: 0})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, int64(1), out.Items[0].Quantity)

	out, err = uc.AddToCart(ctx, "k", usecase.AddCartInput{ProductID: 2, Quantity: -5})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Items[0].Quantity)
	assertCartInvariants(t, out)
}

func TestAddToCart_SnapshotsProductAtAddTime(t *testing.T) {
	uc := newCartUC(newFakeKV())
	ctx := context.Background()

	_, err := uc.AddToCart(ctx, "k", usecase.AddCartInput{ProductID: 1, Quantity: 1})
	require.NoError(t, err)

	line, ok, err := uc.GetCartItem(ctx, "k", 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Coconut Argan Hair Oil", line.Snapshot.Name)
	assert.Equal(t, int64(1200), line.Snapshot.Price)
	assert.Equal(t, "Hair Treatment", line.Snapshot.Category)
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	uc := newCartUC(newFakeKV())

	_, err := uc.AddToCart(context.Background(), "k", usecase.AddCartInput{ProductID: 99, Quantity: 1})
	require.Error(t, err)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

func TestAddToCart_OutOfStock(t *testing.T) {
	uc := newCartUC(newFakeKV())

	_, err := uc.AddToCart(context.Background(), "k", usecase.AddCartInput{ProductID: 3, Quantity: 1})
	require.Error(t, err)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

func TestUpdateQuantity_SetsExactly(t *testing.T) {
	uc := newCartUC(newFakeKV())
	ctx := context.Background()

	_, err := uc.AddToCart(ctx, "k", usecase.AddCartInput{ProductID: 1, Quantity: 4})
	require.NoError(t, err)

	// 加算ではなく上書き
	out, err := uc.UpdateQuantity(ctx, "k", 1, 2)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, int64(2), out.Items[0].Quantity)
	assertCartInvariants(t, out)
}

func TestUpdateQuantity_ZeroRemovesLine(t *testing.T) {
	uc := newCartUC(newFakeKV())
	ctx := context.Background()

	_, err := uc.AddToCart(ctx, "k", usecase.AddCartInput{ProductID: 1, Quantity: 2})
	require.NoError(t, err)

	out, err := uc.UpdateQuantity(ctx, "k", 1, 0)
	require.NoError(t, err)
	assert.Empty(t, out.Items)

	in, err := uc.IsInCart(ctx, "k", 1)
	require.NoError(t, err)
	assert.False(t, in)
}

func TestUpdateQuantity_AbsentProductIsNoop(t *testing.T) {
	uc := newCartUC(newFakeKV())
	ctx := context.Background()

	_, err := uc.AddToCart(ctx, "k", usecase.AddCartInput{ProductID: 1, Quantity: 1})
	require.NoError(t, err)

	out, err := uc.UpdateQuantity(ctx, "k", 2, 7)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, int64(1), out.Items[0].ProductID)
	assert.Equal(t, int64(1), out.Items[0].Quantity)
}

func TestRemoveFromCart_AbsentIsNoop(t *testing.T) {
	uc := newCartUC(newFakeKV())
	ctx := context.Background()

	out, err := uc.RemoveFromCart(ctx, "k", 42)
	require.NoError(t, err)
	assert.Empty(t, out.Items)
}

func TestClearCart_Idempotent(t *testing.T) {
	kv := newFakeKV()
	uc := newCartUC(kv)
	ctx := context.Background()

	_, err := uc.AddToCart(ctx, "k", usecase.AddCartInput{ProductID: 1, Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, uc.ClearCart(ctx, "k"))
	require.NoError(t, uc.ClearCart(ctx, "k"))

	out, err := uc.GetCart(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, int64(0), out.Total)
	assert.Equal(t, int64(0), out.ItemCount)
}

func TestCart_RoundTripThroughPersistence(t *testing.T) {
	kv := newFakeKV()
	ctx := context.Background()

	uc := newCartUC(kv)
	_, err := uc.AddToCart(ctx, "k", usecase.AddCartInput{ProductID: 1, Quantity: 2})
	require.NoError(t, err)
	_, err = uc.AddToCart(ctx, "k", usecase.AddCartInput{ProductID: 2, Quantity: 1})
	require.NoError(t, err)

	before, err := uc.Lines(ctx, "k")
	require.NoError(t, err)

	// リロード相当: 同じKVを読む別インスタンス
	reloaded := newCartUC(kv)
	after, err := reloaded.Lines(ctx, "k")
	require.NoError(t, err)

	assert.Equal(t, before, after)

	total, err := reloaded.GetCartTotal(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, int64(1200*2+950), total)

	count, err := reloaded.GetCartItemsCount(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestCart_InsertionOrderPreserved(t *testing.T) {
	uc := newCartUC(newFakeKV())
	ctx := context.Background()

	_, err := uc.AddToCart(ctx, "k", usecase.AddCartInput{ProductID: 2, Quantity: 1})
	require.NoError(t, err)
	out, err := uc.AddToCart(ctx, "k", usecase.AddCartInput{ProductID: 1, Quantity: 1})
	require.NoError(t, err)

	require.Len(t, out.Items, 2)
	assert.Equal(t, int64(2), out.Items[0].ProductID)
	assert.Equal(t, int64(1), out.Items[1].ProductID)
}

func TestCart_CorruptPersistedStateRecoversEmpty(t *testing.T) {
	kv := newFakeKV()
	require.NoError(t, kv.Set(context.Background(), "cart:k", "{definitely not json"))

	uc := newCartUC(kv)
	out, err := uc.GetCart(context.Background(), "k")

	// 壊れたデータは黙って空カートに復旧する
	require.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, int64(0), out.Total)
}

func TestCart_StorageFailureSurfacesOnMutation(t *testing.T) {
	kv := newFakeKV()
	kv.failSet = true
	uc := newCartUC(kv)

	_, err := uc.AddToCart(context.Background(), "k", usecase.AddCartInput{ProductID: 1, Quantity: 1})
	require.Error(t, err)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 500, he.Status)
}

func TestCart_IsolatedPerKey(t *testing.T) {
	kv := newFakeKV()
	uc := newCartUC(kv)
	ctx := context.Background()

	_, err := uc.AddToCart(ctx, "a", usecase.AddCartInput{ProductID: 1, Quantity: 1})
	require.NoError(t, err)

	out, err := uc.GetCart(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, out.Items)
}
