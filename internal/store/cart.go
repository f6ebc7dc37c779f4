package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/peeringlatam/network-planner/internal/store/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Cart interface {
	Create(ctx context.Context) (*model.Cart, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Cart, error)
	// AddItem adds one unit of the product, creating the line when needed.
	AddItem(ctx context.Context, cartID uuid.UUID, productID uint) (*model.Cart, error)
	// RemoveItem deletes the line. Removing a missing line is not an error.
	RemoveItem(ctx context.Context, cartID uuid.UUID, productID uint) (*model.Cart, error)
}

type CartStore struct {
	db *gorm.DB
}

var _ Cart = (*CartStore)(nil)

func NewCartStore(db *gorm.DB) Cart {
	return &CartStore{db: db}
}

func (c *CartStore) Create(ctx context.Context) (*model.Cart, error) {
	cart := model.Cart{ID: uuid.New()}
	if err := c.getDB(ctx).Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *CartStore) Get(ctx context.Context, id uuid.UUID) (*model.Cart, error) {
	var cart model.Cart
	result := c.getDB(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.product_id") }).
		Preload("Items.Product").
		Preload("Items.Product.Images", orderImages).
		First(&cart, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &cart, nil
}

func (c *CartStore) AddItem(ctx context.Context, cartID uuid.UUID, productID uint) (*model.Cart, error) {
	db := c.getDB(ctx)

	if err := c.exists(db, &model.Cart{}, "id = ?", cartID); err != nil {
		return nil, err
	}
	if err := c.exists(db, &model.Product{}, "id = ?", productID); err != nil {
		return nil, err
	}

	item := model.CartItem{CartID: cartID, ProductID: productID, Quantity: 1}
	result := db.Omit("Product").Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]any{"quantity": gorm.Expr("cart_items.quantity + 1")}),
	}).Create(&item)
	if result.Error != nil {
		return nil, result.Error
	}

	if err := db.Model(&model.Cart{}).Where("id = ?", cartID).Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP")).Error; err != nil {
		return nil, err
	}
	return c.Get(ctx, cartID)
}

func (c *CartStore) RemoveItem(ctx context.Context, cartID uuid.UUID, productID uint) (*model.Cart, error) {
	db := c.getDB(ctx)

	if err := c.exists(db, &model.Cart{}, "id = ?", cartID); err != nil {
		return nil, err
	}
	if err := db.Where("cart_id = ? AND product_id = ?", cartID, productID).Delete(&model.CartItem{}).Error; err != nil {
		return nil, err
	}
	return c.Get(ctx, cartID)
}

func (c *CartStore) exists(db *gorm.DB, m any, query string, args ...any) error {
	var count int64
	if err := db.Model(m).Where(query, args...).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (c *CartStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return c.db.WithContext(ctx)
}
