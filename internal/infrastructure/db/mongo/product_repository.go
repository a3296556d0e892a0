package mongo

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/midas/product-tracker/internal/core/domain"
	"github.com/midas/product-tracker/internal/core/ports"
)

const collectionProducts = "products"

const decimal128Digits = 34

var _ ports.ProductRepository = (*ProductRepository)(nil)

// ProductRepository implements ports.ProductRepository using MongoDB.
// Documents are inserted whole, so a reader never sees a partial product.
type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(collectionProducts)}
}

type mongoProduct struct {
	ID          primitive.ObjectID    `bson:"_id,omitempty"`
	ProductID   string                `bson:"product_id"`
	URL         string                `bson:"url"`
	Name        string                `bson:"name"`
	Retailer    string                `bson:"retailer"`
	TargetPrice *primitive.Decimal128 `bson:"target_price,omitempty"`
	AddedBy     string                `bson:"added_by"`
	CreatedAt   time.Time             `bson:"created_at"`
}

// Append inserts a product document.
func (r *ProductRepository) Append(ctx context.Context, p domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoProduct{
		ProductID: p.ID.String(),
		URL:       p.URL,
		Name:      p.Name,
		Retailer:  string(p.Retailer),
		AddedBy:   p.AddedBy,
		CreatedAt: p.CreatedAt.UTC(),
	}
	price, err := encodeTargetPrice(p.TargetPrice)
	if err != nil {
		return err
	}
	doc.TargetPrice = price

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// List returns matching products ordered by _id. ObjectIDs generated by one
// process increase monotonically, which preserves insertion order.
func (r *ProductRepository) List(ctx context.Context, filter ports.ListProductsFilter) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.AddedBy != "" {
		query["added_by"] = filter.AddedBy
	}

	cur, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoProduct
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	out := make([]domain.Product, 0, len(docs))
	for _, doc := range docs {
		p, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// EnsureIndexes creates necessary indexes on the products collection.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "added_by", Value: 1}, {Key: "_id", Value: 1}}},
		{Keys: bson.D{{Key: "product_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// encodeTargetPrice converts a price to Decimal128, rounding away digits
// beyond its 34-digit coefficient.
func encodeTargetPrice(price decimal.NullDecimal) (*primitive.Decimal128, error) {
	if !price.Valid {
		return nil, nil
	}
	d := price.Decimal
	if digits := len(new(big.Int).Abs(d.Coefficient()).String()); digits > decimal128Digits {
		d = d.Round(-d.Exponent() - int32(digits-decimal128Digits))
	}
	encoded, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return nil, fmt.Errorf("encode target price: %w", err)
	}
	return &encoded, nil
}

func (m mongoProduct) toDomain() (domain.Product, error) {
	id, err := uuid.Parse(m.ProductID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("decode product id %q: %w", m.ProductID, err)
	}

	p := domain.Product{
		ID:        id,
		URL:       m.URL,
		Name:      m.Name,
		Retailer:  domain.Retailer(m.Retailer),
		AddedBy:   m.AddedBy,
		CreatedAt: m.CreatedAt.UTC(),
	}
	if m.TargetPrice != nil {
		d, err := decimal.NewFromString(m.TargetPrice.String())
		if err != nil {
			return domain.Product{}, fmt.Errorf("decode target price: %w", err)
		}
		p.TargetPrice = decimal.NewNullDecimal(d)
	}
	return p, nil
}
