package serializers

import (
	"errors"

	"catalog/internal/apperror"
	"catalog/internal/models"
	"catalog/internal/repositories"
)

const msgSlugTaken = "product with this slug already exists."

// ProductData is the wire representation of a product.
type ProductData struct {
	ID    uint   `json:"id"`
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

type productFields struct {
	Slug  *string `json:"slug" validate:"omitempty,min=1,max=50,slug"`
	Name  *string `json:"name" validate:"omitempty,min=1,max=100"`
	Price *int64  `json:"price" validate:"omitempty,min=-2147483648,max=2147483647"`
}

// ProductSerializer validates product payloads. It needs the repository to
// enforce slug uniqueness before the write reaches the store.
type ProductSerializer struct {
	repo repositories.ProductRepository
}

// NewProductSerializer creates a ProductSerializer backed by repo.
func NewProductSerializer(repo repositories.ProductRepository) *ProductSerializer {
	return &ProductSerializer{repo: repo}
}

// Validate checks payload and returns the product that should be stored.
// instance is nil on create. With partial set, only the fields present in
// payload are checked and applied; the rest keep instance's values.
// Slug is the natural key: required on create, and never changeable afterwards.
func (s *ProductSerializer) Validate(payload Payload, instance *models.Product, partial bool) (models.Product, error) {
	errs := apperror.NewValidationError()

	fields := productFields{
		Slug:  stringField(payload, "slug", errs),
		Name:  stringField(payload, "name", errs),
		Price: intField(payload, "price", errs),
	}
	if !partial {
		if instance == nil {
			requireFields(payload, errs, "slug")
		}
		requireFields(payload, errs, "name", "price")
	}
	checkConstraints(fields, errs)

	if fields.Slug != nil && !errs.Has("slug") {
		if instance != nil {
			if *fields.Slug != instance.Slug {
				errs.Add("slug", msgImmutable)
			}
		} else {
			taken, err := s.slugTaken(*fields.Slug)
			if err != nil {
				return models.Product{}, err
			}
			if taken {
				errs.Add("slug", msgSlugTaken)
			}
		}
	}

	if errs.HasErrors() {
		return models.Product{}, errs
	}

	var product models.Product
	if instance != nil {
		product = *instance
	}
	if fields.Slug != nil {
		product.Slug = *fields.Slug
	}
	if fields.Name != nil {
		product.Name = *fields.Name
	}
	if fields.Price != nil {
		product.Price = int(*fields.Price)
	}
	return product, nil
}

func (s *ProductSerializer) slugTaken(slug string) (bool, error) {
	_, err := s.repo.GetBySlug(slug)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, apperror.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// SlugConflict is the validation failure reported when the store rejects a
// duplicate slug that slipped past Validate.
func SlugConflict() *apperror.ValidationError {
	return apperror.FieldError("slug", msgSlugTaken)
}

// SerializeProduct maps a product to its wire representation.
func SerializeProduct(p models.Product) ProductData {
	return ProductData{ID: p.ID, Slug: p.Slug, Name: p.Name, Price: p.Price}
}

// SerializeProducts maps a list of products; the result is never nil.
func SerializeProducts(products []models.Product) []ProductData {
	out := make([]ProductData, 0, len(products))
	for _, p := range products {
		out = append(out, SerializeProduct(p))
	}
	return out
}
