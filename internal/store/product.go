package store

import (
	"context"
	"errors"

	"github.com/peeringlatam/network-planner/internal/store/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Product interface {
	List(ctx context.Context, opts *QueryOptions) (model.ProductList, error)
	Get(ctx context.Context, id uint) (*model.Product, error)
	Count(ctx context.Context) (int64, error)
	// Upsert creates the product or updates the one with the same name, replacing its images.
	Upsert(ctx context.Context, product model.Product) (*model.Product, error)
}

type ProductStore struct {
	db *gorm.DB
}

var _ Product = (*ProductStore)(nil)

func NewProductStore(db *gorm.DB) Product {
	return &ProductStore{db: db}
}

func (p *ProductStore) List(ctx context.Context, opts *QueryOptions) (model.ProductList, error) {
	var products model.ProductList
	tx := p.getDB(ctx).Model(&products).Preload("Images", orderImages)
	if opts != nil {
		tx = apply(tx, opts.QueryFn)
	}

	if err := tx.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (p *ProductStore) Get(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	result := p.getDB(ctx).Preload("Images", orderImages).First(&product, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &product, nil
}

func (p *ProductStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := p.getDB(ctx).Model(&model.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (p *ProductStore) Upsert(ctx context.Context, product model.Product) (*model.Product, error) {
	db := p.getDB(ctx)
	images := product.Images
	product.Images = nil

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"description", "price"}),
	}).Create(&product)
	if result.Error != nil {
		return nil, result.Error
	}

	var stored model.Product
	if err := db.First(&stored, "name = ?", product.Name).Error; err != nil {
		return nil, err
	}

	if err := db.Where("product_id = ?", stored.ID).Delete(&model.ProductImage{}).Error; err != nil {
		return nil, err
	}
	for i := range images {
		images[i].ID = 0
		images[i].ProductID = stored.ID
		if images[i].Position == 0 {
			images[i].Position = i + 1
		}
		if err := db.Create(&images[i]).Error; err != nil {
			return nil, err
		}
	}

	return p.Get(ctx, stored.ID)
}

func orderImages(db *gorm.DB) *gorm.DB {
	return db.Order("product_images.position")
}

func (p *ProductStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return p.db.WithContext(ctx)
}
