package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/peeringlatam/network-planner/internal/store"
	"github.com/peeringlatam/network-planner/internal/store/model"
)

type CartService struct {
	store store.Store
}

func NewCartService(store store.Store) *CartService {
	return &CartService{store: store}
}

func (c *CartService) CreateCart(ctx context.Context) (*model.Cart, error) {
	return c.store.Cart().Create(ctx)
}

func (c *CartService) GetCart(ctx context.Context, id uuid.UUID) (*model.Cart, error) {
	cart, err := c.store.Cart().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrCartNotFound(id)
		}
		return nil, err
	}
	return cart, nil
}

// AddItem adds one unit of the product to the cart.
func (c *CartService) AddItem(ctx context.Context, cartID uuid.UUID, productID uint) (*model.Cart, error) {
	if _, err := c.GetCart(ctx, cartID); err != nil {
		return nil, err
	}

	cart, err := c.store.Cart().AddItem(ctx, cartID, productID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrProductNotFound(productID)
		}
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops the product line. Removing a product that is not in the cart is a no-op.
func (c *CartService) RemoveItem(ctx context.Context, cartID uuid.UUID, productID uint) (*model.Cart, error) {
	cart, err := c.store.Cart().RemoveItem(ctx, cartID, productID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrCartNotFound(cartID)
		}
		return nil, err
	}
	return cart, nil
}
