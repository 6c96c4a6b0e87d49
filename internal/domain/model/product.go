package model

// カタログの商品。静的データとして持つ（DBには置かない）。
type Product struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Price       int64    `json:"price"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	Category    string   `json:"category"`
	InStock     bool     `json:"in_stock"`
	Featured    bool     `json:"featured"`
}

// 商品レビュー（固定シード。ランダム生成はしない）
type Review struct {
	ProductID int64  `json:"product_id"`
	Author    string `json:"author"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}
