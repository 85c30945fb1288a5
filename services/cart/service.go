package cart

import (
	"errors"
	"fmt"

	productRepo "bakehouse/database/repository/product"
	"bakehouse/models"
)

// ErrUnknownProduct rejects additions of products not in the catalog.
var ErrUnknownProduct = errors.New("unknown product")

// CartService mutates draft carts against the live catalog so line prices
// are always the catalog's, never the client's.
type CartService interface {
	// AddItem adds quantity units of a product, creating the cart when the
	// session ID is empty or expired. Returns the updated cart.
	AddItem(sessionID, productID string, quantity int) (*models.Cart, error)
	// SetQuantity sets a line's quantity; zero removes the line.
	SetQuantity(sessionID, productID string, quantity int) (*models.Cart, error)
	Get(sessionID string) (*models.Cart, error)
	Clear(sessionID string) error
}

// DefaultCartService implements CartService.
type DefaultCartService struct {
	Store    CartStore
	Products productRepo.ProductRepository
}

// AddItem adds a product line, merging with an existing line for the product.
func (s *DefaultCartService) AddItem(sessionID, productID string, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %d", quantity)
	}
	product, err := s.Products.GetByID(productID)
	if err != nil {
		if errors.Is(err, productRepo.ErrNotFound) {
			return nil, ErrUnknownProduct
		}
		return nil, err
	}

	cart, err := s.loadOrCreate(sessionID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			cart.Items[i].UnitPrice = product.Price
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  quantity,
		})
	}

	if err := s.Store.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// SetQuantity sets a line's quantity; zero removes the line.
func (s *DefaultCartService) SetQuantity(sessionID, productID string, quantity int) (*models.Cart, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("quantity must not be negative, got %d", quantity)
	}
	cart, err := s.Store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	items := cart.Items[:0]
	found := false
	for _, it := range cart.Items {
		if it.ProductID == productID {
			found = true
			if quantity == 0 {
				continue
			}
			it.Quantity = quantity
		}
		items = append(items, it)
	}
	if !found {
		return nil, ErrUnknownProduct
	}
	cart.Items = items

	if err := s.Store.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Get returns the cart for a session.
func (s *DefaultCartService) Get(sessionID string) (*models.Cart, error) {
	return s.Store.Get(sessionID)
}

// Clear tears down the cart session.
func (s *DefaultCartService) Clear(sessionID string) error {
	return s.Store.Clear(sessionID)
}

func (s *DefaultCartService) loadOrCreate(sessionID string) (*models.Cart, error) {
	if sessionID == "" {
		return s.Store.New(), nil
	}
	cart, err := s.Store.Get(sessionID)
	if errors.Is(err, ErrCartNotFound) {
		return s.Store.New(), nil
	}
	return cart, err
}
