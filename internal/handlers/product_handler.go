package handlers

import (
	"catalog/internal/middleware"
	"catalog/internal/serializers"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products. Listing is open to
// anonymous callers; every other action requires an authenticated caller.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Post("/", middleware.RequireAuth(), h.HandleCreateProduct)
	productRoutes.Get("/:slug", middleware.RequireAuth(), h.HandleGetProduct)
	productRoutes.Put("/:slug", middleware.RequireAuth(), h.HandleUpdateProduct)
	productRoutes.Patch("/:slug", middleware.RequireAuth(), h.HandlePartialUpdateProduct)
	productRoutes.Delete("/:slug", middleware.RequireAuth(), h.HandleDeleteProduct)
}

// HandleGetProducts lists every product.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return err
	}
	return c.JSON(serializers.SerializeProducts(products))
}

// HandleGetProduct retrieves a single product by its slug.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProductBySlug(c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(serializers.SerializeProduct(*product))
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	payload, err := serializers.DecodePayload(c.Body())
	if err != nil {
		return err
	}
	product, err := h.service.CreateProduct(payload)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(serializers.SerializeProduct(*product))
}

// HandleUpdateProduct replaces a product; name and price are required.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	return h.update(c, false)
}

// HandlePartialUpdateProduct changes only the supplied fields.
func (h *ProductHandler) HandlePartialUpdateProduct(c *fiber.Ctx) error {
	return h.update(c, true)
}

func (h *ProductHandler) update(c *fiber.Ctx, partial bool) error {
	payload, err := serializers.DecodePayload(c.Body())
	if err != nil {
		return err
	}
	product, err := h.service.UpdateProduct(c.Params("slug"), payload, partial)
	if err != nil {
		return err
	}
	return c.JSON(serializers.SerializeProduct(*product))
}

// HandleDeleteProduct deletes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.Params("slug")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
