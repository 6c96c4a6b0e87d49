package model

// 追加時点の商品属性スナップショット。
// 表示用にカタログを引き直さないため必ず保存する。
type ProductSnapshot struct {
	Name     string `json:"name" bson:"name"`
	Price    int64  `json:"price" bson:"price"`
	Image    string `json:"image" bson:"image"`
	Category string `json:"category" bson:"category"`
}

// カートの明細。productIDごとに最大1行、quantityは常に1以上。
// quantity 0 の行は存在させない（削除で表現する）。
type CartLine struct {
	ProductID int64           `json:"product_id" bson:"product_id"`
	Snapshot  ProductSnapshot `json:"snapshot" bson:"snapshot"`
	Quantity  int64           `json:"quantity" bson:"quantity"`
}

func SnapshotOf(p Product) ProductSnapshot {
	return ProductSnapshot{
		Name:     p.Name,
		Price:    p.Price,
		Image:    p.Image,
		Category: p.Category,
	}
}
