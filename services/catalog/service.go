package catalog

import (
	"errors"
	"fmt"
	"strings"

	productRepo "bakehouse/database/repository/product"
	"bakehouse/models"
	"bakehouse/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrProductNotFound is surfaced when no product matches the identifier.
var ErrProductNotFound = errors.New("product not found")

// CatalogService manages the storefront product catalog.
type CatalogService interface {
	ListProducts(category string) ([]models.Product, error)
	GetProduct(id string) (*models.Product, error)
	CreateProduct(product *models.Product) (*models.Product, error)
	UpdateProduct(product *models.Product) (*models.Product, error)
	DeleteProduct(id string) error
}

// DefaultCatalogService implements CatalogService.
type DefaultCatalogService struct {
	Repo productRepo.ProductRepository
}

// ListProducts returns active products, optionally filtered by category.
func (s *DefaultCatalogService) ListProducts(category string) ([]models.Product, error) {
	return s.Repo.List(strings.ToLower(strings.TrimSpace(category)))
}

// GetProduct fetches one product.
func (s *DefaultCatalogService) GetProduct(id string) (*models.Product, error) {
	product, err := s.Repo.GetByID(id)
	if errors.Is(err, productRepo.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	return product, err
}

// CreateProduct validates and inserts a new catalog product.
func (s *DefaultCatalogService) CreateProduct(product *models.Product) (*models.Product, error) {
	if err := validate(product); err != nil {
		return nil, err
	}
	product.ID = uuid.New().String()
	product.Category = strings.ToLower(strings.TrimSpace(product.Category))
	if err := s.Repo.Create(product); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("product created", zap.String("productID", product.ID), zap.String("name", product.Name))
	return product, nil
}

// UpdateProduct validates and replaces an existing catalog product.
func (s *DefaultCatalogService) UpdateProduct(product *models.Product) (*models.Product, error) {
	if product.ID == "" {
		return nil, ErrProductNotFound
	}
	if err := validate(product); err != nil {
		return nil, err
	}
	product.Category = strings.ToLower(strings.TrimSpace(product.Category))
	err := s.Repo.Update(product)
	if errors.Is(err, productRepo.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product from the catalog.
func (s *DefaultCatalogService) DeleteProduct(id string) error {
	err := s.Repo.Delete(id)
	if errors.Is(err, productRepo.ErrNotFound) {
		return ErrProductNotFound
	}
	return err
}

func validate(product *models.Product) error {
	if strings.TrimSpace(product.Name) == "" {
		return fmt.Errorf("product name is required")
	}
	if product.Price < 0 {
		return fmt.Errorf("product price must not be negative")
	}
	return nil
}
