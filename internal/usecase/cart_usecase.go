package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

const cartKeyPrefix = "cart:"

// CartUsecase はカートの唯一の正。
// 明細はカートトークンごとにKVへJSONで丸ごと永続化し、
// 集計（点数・合計）は毎回現在の明細から計算する。キャッシュしない。
type CartUsecase struct {
	store       repo.KVStore
	productRepo repo.ProductRepository
}

func NewCartUsecase(store repo.KVStore, productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{
		store:       store,
		productRepo: productRepo,
	}
}

type CartLineResponse struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Image     string `json:"image"`
	Category  string `json:"category"`
	Quantity  int64  `json:"quantity"`
	LineTotal int64  `json:"line_total"`
}

type CartResponse struct {
	Items     []CartLineResponse `json:"items"`
	ItemCount int64              `json:"item_count"`
	Total     int64              `json:"total"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

// GetCart は現在の明細と集計を返す。
func (u *CartUsecase) GetCart(ctx context.Context, cartKey string) (CartResponse, error) {
	lines, err := u.Lines(ctx, cartKey)
	if err != nil {
		return CartResponse{}, err
	}
	return toCartResponse(lines), nil
}

// AddToCart はカートに追加。同一商品は数量加算、新規はスナップショット付きで末尾に追加。
// 数量が1未満なら1に切り上げる（エラーにはしない）。
func (u *CartUsecase) AddToCart(ctx context.Context, cartKey string, in AddCartInput) (CartResponse, error) {
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}

	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "catalog error")
	}
	if !p.InStock {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "out of stock")
	}

	lines, err := u.Lines(ctx, cartKey)
	if err != nil {
		return CartResponse{}, err
	}

	found := false
	for i := range lines {
		if lines[i].ProductID == in.ProductID {
			lines[i].Quantity += qty
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, model.CartLine{
			ProductID: in.ProductID,
			Snapshot:  model.SnapshotOf(p),
			Quantity:  qty,
		})
	}

	if err := u.saveLines(ctx, cartKey, lines); err != nil {
		return CartResponse{}, err
	}
	return toCartResponse(lines), nil
}

// UpdateQuantity は数量を上書き（加算ではない）。
// 0以下は削除として扱う。対象が無ければ何もしない。
func (u *CartUsecase) UpdateQuantity(ctx context.Context, cartKey string, productID int64, quantity int64) (CartResponse, error) {
	if quantity <= 0 {
		return u.RemoveFromCart(ctx, cartKey, productID)
	}

	lines, err := u.Lines(ctx, cartKey)
	if err != nil {
		return CartResponse{}, err
	}

	changed := false
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = quantity
			changed = true
			break
		}
	}

	if changed {
		if err := u.saveLines(ctx, cartKey, lines); err != nil {
			return CartResponse{}, err
		}
	}
	return toCartResponse(lines), nil
}

// RemoveFromCart は明細を削除。無ければ何もしない。
func (u *CartUsecase) RemoveFromCart(ctx context.Context, cartKey string, productID int64) (CartResponse, error) {
	lines, err := u.Lines(ctx, cartKey)
	if err != nil {
		return CartResponse{}, err
	}

	kept := lines[:0]
	removed := false
	for _, l := range lines {
		if l.ProductID == productID {
			removed = true
			continue
		}
		kept = append(kept, l)
	}

	if removed {
		if err := u.saveLines(ctx, cartKey, kept); err != nil {
			return CartResponse{}, err
		}
	}
	return toCartResponse(kept), nil
}

// ClearCart は全明細を消して空の状態を永続化する。何度呼んでも同じ。
func (u *CartUsecase) ClearCart(ctx context.Context, cartKey string) error {
	return u.saveLines(ctx, cartKey, []model.CartLine{})
}

// GetCartTotal は quantity * snapshot.price の合計。
func (u *CartUsecase) GetCartTotal(ctx context.Context, cartKey string) (int64, error) {
	lines, err := u.Lines(ctx, cartKey)
	if err != nil {
		return 0, err
	}
	return cartTotal(lines), nil
}

// GetCartItemsCount は数量の合計。
func (u *CartUsecase) GetCartItemsCount(ctx context.Context, cartKey string) (int64, error) {
	lines, err := u.Lines(ctx, cartKey)
	if err != nil {
		return 0, err
	}
	return cartItemCount(lines), nil
}

func (u *CartUsecase) IsInCart(ctx context.Context, cartKey string, productID int64) (bool, error) {
	_, ok, err := u.findLine(ctx, cartKey, productID)
	return ok, err
}

func (u *CartUsecase) GetCartItem(ctx context.Context, cartKey string, productID int64) (model.CartLine, bool, error) {
	return u.findLine(ctx, cartKey, productID)
}

// Lines は永続化済みの明細を読む。
// 未保存・壊れたJSONは空カートとして黙って復旧する（利用者には見せない）。
func (u *CartUsecase) Lines(ctx context.Context, cartKey string) ([]model.CartLine, error) {
	raw, err := u.store.Get(ctx, cartKeyPrefix+cartKey)
	if errors.Is(err, repo.ErrNotFound) {
		return []model.CartLine{}, nil
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "storage error")
	}

	var lines []model.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return []model.CartLine{}, nil
	}
	if lines == nil {
		lines = []model.CartLine{}
	}
	return lines, nil
}

func (u *CartUsecase) findLine(ctx context.Context, cartKey string, productID int64) (model.CartLine, bool, error) {
	lines, err := u.Lines(ctx, cartKey)
	if err != nil {
		return model.CartLine{}, false, err
	}
	for _, l := range lines {
		if l.ProductID == productID {
			return l, true, nil
		}
	}
	return model.CartLine{}, false, nil
}

// 変更のたびに明細リストを丸ごと保存する
func (u *CartUsecase) saveLines(ctx context.Context, cartKey string, lines []model.CartLine) error {
	b, err := json.Marshal(lines)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	if err := u.store.Set(ctx, cartKeyPrefix+cartKey, string(b)); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return nil
}

func cartTotal(lines []model.CartLine) int64 {
	var total int64 = 0
	for _, l := range lines {
		total += l.Snapshot.Price * l.Quantity
	}
	return total
}

func cartItemCount(lines []model.CartLine) int64 {
	var count int64 = 0
	for _, l := range lines {
		count += l.Quantity
	}
	return count
}

func toCartResponse(lines []model.CartLine) CartResponse {
	items := make([]CartLineResponse, 0, len(lines))
	for _, l := range lines {
		items = append(items, CartLineResponse{
			ProductID: l.ProductID,
			Name:      l.Snapshot.Name,
			Price:     l.Snapshot.Price,
			Image:     l.Snapshot.Image,
			Category:  l.Snapshot.Category,
			Quantity:  l.Quantity,
			LineTotal: l.Snapshot.Price * l.Quantity,
		})
	}
	return CartResponse{
		Items:     items,
		ItemCount: cartItemCount(lines),
		Total:     cartTotal(lines),
	}
}
