package services

import (
	"context"
	"fmt"

	"catalogo/internal/filters"
	"catalogo/internal/models"
	"catalogo/internal/repositories"
)

type (
	BookService      = EntityService[models.Book, *models.Book, models.BookPayload]
	VolunteerService = EntityService[models.Volunteer, *models.Volunteer, models.VolunteerPayload]
)

// NewBookService creates the entity service for books.
func NewBookService(repo repositories.Repository[models.Book], deps Dependencies) *BookService {
	return NewEntityService[models.Book, *models.Book, models.BookPayload](repo, BookKind, deps)
}

// NewVolunteerService creates the entity service for volunteers.
func NewVolunteerService(repo repositories.Repository[models.Volunteer], deps Dependencies) *VolunteerService {
	return NewEntityService[models.Volunteer, *models.Volunteer, models.VolunteerPayload](repo, VolunteerKind, deps)
}

// ProductService adds filtering, search and categories to the product entity service.
type ProductService struct {
	*EntityService[models.Product, *models.Product, models.ProductPayload]
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.Repository[models.Product], deps Dependencies) *ProductService {
	return &ProductService{
		EntityService: NewEntityService[models.Product, *models.Product, models.ProductPayload](repo, ProductKind, deps),
	}
}

// ListFiltered lists products matching the listing parameters, most recent first.
func (s *ProductService) ListFiltered(ctx context.Context, params filters.ProductListParams) ([]models.Product, error) {
	return s.List(ctx, filters.ProductList(params))
}

// Search finds available products whose name or description contains q.
// It returns the trimmed term used for matching.
func (s *ProductService) Search(ctx context.Context, q string) ([]models.Product, string, error) {
	filter, term, err := filters.ProductSearch(q)
	if err != nil {
		return nil, term, fmt.Errorf("%w: %w", ErrInvalidSearch, err)
	}
	products, err := s.List(ctx, filter)
	if err != nil {
		return nil, term, err
	}
	return products, term, nil
}

// Categories returns the distinct categories currently in use.
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	return s.DistinctValues(ctx, "category")
}
