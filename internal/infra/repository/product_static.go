package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// カタログはコードに持つ静的データ。
type ProductStaticRepository struct {
	products []model.Product
	reviews  []model.Review
}

func NewProductStaticRepository() *ProductStaticRepository {
	return &ProductStaticRepository{
		products: catalog,
		reviews:  reviewSeed,
	}
}

func (r *ProductStaticRepository) List(ctx context.Context) ([]model.Product, error) {
	out := make([]model.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *ProductStaticRepository) ListFeatured(ctx context.Context) ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *ProductStaticRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, repo.ErrNotFound
}

func (r *ProductStaticRepository) ReviewsByProductID(ctx context.Context, id int64) ([]model.Review, error) {
	out := make([]model.Review, 0, 4)
	for _, rv := range r.reviews {
		if rv.ProductID == id {
			out = append(out, rv)
		}
	}
	return out, nil
}

var catalog = []model.Product{
	{
		ID:          1,
		Name:        "Coconut Argan Hair Oil",
		Price:       1200,
		Image:       "/assets/1.jpeg",
		Description: "A luxurious blend of organic coconut and argan oils that deeply nourishes and strengthens hair. Rich in vitamins E and essential fatty acids, this oil promotes healthy hair growth while adding natural shine and softness.",
		Ingredients: []string{"Organic Coconut Oil", "Argan Oil", "Vitamin E", "Jojoba Oil"},
		Category:    "Hair Treatment",
		InStock:     true,
		Featured:    true,
	},
	{
		ID:          2,
		Name:        "Rosemary Mint Scalp Oil",
		Price:       950,
		Image:       "/assets/2.jpeg",
		Description: "Stimulating scalp treatment with organic rosemary and refreshing mint oils. Perfect for improving circulation and promoting healthy hair growth while providing a cooling, invigorating sensation.",
		Ingredients: []string{"Rosemary Essential Oil", "Peppermint Oil", "Sweet Almond Oil", "Tea Tree Oil"},
		Category:    "Scalp Treatment",
		InStock:     true,
		Featured:    true,
	},
	{
		ID:          3,
		Name:        "Lavender Chamomile Hair Serum",
		Price:       850,
		Image:       "/assets/3.jpeg",
		Description: "Calming and soothing hair serum infused with organic lavender and chamomile. Ideal for sensitive scalps and provides deep moisturization while promoting relaxation and stress relief.",
		Ingredients: []string{"Lavender Essential Oil", "Chamomile Extract", "Grapeseed Oil", "Rosehip Oil"},
		Category:    "Hair Serum",
		InStock:     true,
		Featured:    false,
	},
	{
		ID:          4,
		Name:        "Moroccan Black Seed Oil",
		Price:       1400,
		Image:       "/assets/4.jpeg",
		Description: "Premium Moroccan black seed oil known for its powerful healing properties. Rich in antioxidants and essential nutrients that strengthen hair follicles and prevent hair loss naturally.",
		Ingredients: []string{"Black Seed Oil", "Moroccan Argan Oil", "Castor Oil", "Vitamin E"},
		Category:    "Premium Treatment",
		InStock:     true,
		Featured:    true,
	},
	{
		ID:          5,
		Name:        "Hibiscus Amla Growth Oil",
		Price:       1100,
		Image:       "/assets/5.jpeg",
		Description: "Traditional Ayurvedic blend featuring hibiscus and amla extracts. This powerful combination promotes rapid hair growth, prevents premature graying, and adds incredible volume and thickness.",
		Ingredients: []string{"Hibiscus Extract", "Amla Oil", "Bhringraj Oil", "Fenugreek Oil"},
		Category:    "Growth Treatment",
		InStock:     true,
		Featured:    false,
	},
}

// レビューは固定シード
var reviewSeed = []model.Review{
	{ProductID: 1, Author: "Ayesha K.", Rating: 5, Comment: "My hair feels so much softer after two weeks of use."},
	{ProductID: 1, Author: "Sana M.", Rating: 4, Comment: "Lovely scent, absorbs quickly without feeling greasy."},
	{ProductID: 2, Author: "Hira B.", Rating: 5, Comment: "The cooling feeling on the scalp is amazing in summer."},
	{ProductID: 3, Author: "Zainab R.", Rating: 4, Comment: "Really calms my sensitive scalp. Will buy again."},
	{ProductID: 4, Author: "Fatima A.", Rating: 5, Comment: "Noticed far less hair fall after a month."},
	{ProductID: 5, Author: "Mariam S.", Rating: 4, Comment: "Great volume, and the bottle lasts a long time."},
}
