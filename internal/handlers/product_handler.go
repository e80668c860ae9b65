package handlers

import (
	"errors"
	"strconv"

	"catalogue/internal/i18n"
	"catalogue/internal/models"
	"catalogue/internal/repositories"
	"catalogue/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProductService is the business API the product handler depends on.
type ProductService interface {
	FindAllProducts() ([]models.Product, error)
	CreateProduct(title string, details *string) (*models.Product, error)
	FindProduct(id int) (*models.Product, error)
	UpdateProduct(id int, title string, details *string) error
	DeleteProduct(id int) error
}

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service   ProductService
	validator *validation.Validator
	messages  *i18n.Bundle
	log       *zap.Logger
	basePath  string
}

// NewProductHandler creates a new ProductHandler. basePath is the prefix the
// routes are mounted under and is used to build Location headers.
func NewProductHandler(service ProductService, v *validation.Validator, messages *i18n.Bundle, log *zap.Logger, basePath string) *ProductHandler {
	return &ProductHandler{
		service:   service,
		validator: v,
		messages:  messages,
		log:       log,
		basePath:  basePath,
	}
}

// RegisterRoutes registers the product routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Patch("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetProducts returns every product.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.FindAllProducts()
	if err != nil {
		return h.internalError(c, "find all products", err)
	}
	return c.JSON(products)
}

// HandleCreateProduct validates the payload and creates a product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	locale := h.locale(c)

	var payload NewProductPayload
	if ok, err := h.bindAndValidate(c, locale, &payload); !ok {
		return err
	}

	product, err := h.service.CreateProduct(payload.Title, payload.Details)
	if err != nil {
		return h.internalError(c, "create product", err)
	}

	c.Location(h.basePath + "/products/" + strconv.Itoa(product.ID))
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleGetProduct returns a single product.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	locale := h.locale(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return h.invalidID(c, locale)
	}

	product, err := h.service.FindProduct(id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return h.notFound(c, locale)
		}
		return h.internalError(c, "find product", err)
	}
	return c.JSON(product)
}

// HandleUpdateProduct replaces title and details of an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	locale := h.locale(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return h.invalidID(c, locale)
	}

	var payload UpdateProductPayload
	if ok, err := h.bindAndValidate(c, locale, &payload); !ok {
		return err
	}

	if err := h.service.UpdateProduct(id, payload.Title, payload.Details); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return h.notFound(c, locale)
		}
		return h.internalError(c, "update product", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDeleteProduct deletes a product. Unknown ids still answer 204.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return h.invalidID(c, h.locale(c))
	}

	if err := h.service.DeleteProduct(id); err != nil {
		return h.internalError(c, "delete product", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// bindAndValidate parses the body into payload and validates it. When it
// returns false the problem response has already been written.
func (h *ProductHandler) bindAndValidate(c *fiber.Ctx, locale string, payload any) (bool, error) {
	if err := c.BodyParser(payload); err != nil {
		h.log.Debug("invalid request body", zap.String("path", c.Path()), zap.Error(err))
		return false, h.badRequest(c, locale, []string{h.messages.Message(locale, i18n.KeyRequestBodyInvalid)})
	}

	result, err := h.validator.Validate(locale, payload)
	if err != nil {
		return false, h.internalError(c, "validate payload", err)
	}
	if !result.OK() {
		return false, h.badRequest(c, locale, result.Errors)
	}
	return true, nil
}

func (h *ProductHandler) locale(c *fiber.Ctx) string {
	return h.messages.Match(c.Get(fiber.HeaderAcceptLanguage))
}

func (h *ProductHandler) badRequest(c *fiber.Ctx, locale string, errs []string) error {
	title := h.messages.Message(locale, i18n.KeyBadRequestTitle)
	return writeProblem(c, fiber.StatusBadRequest, title, title, errs)
}

func (h *ProductHandler) invalidID(c *fiber.Ctx, locale string) error {
	return h.badRequest(c, locale, []string{h.messages.Message(locale, i18n.KeyProductIDInvalid)})
}

func (h *ProductHandler) notFound(c *fiber.Ctx, locale string) error {
	return writeProblem(c, fiber.StatusNotFound,
		h.messages.Message(locale, i18n.KeyNotFoundTitle),
		h.messages.Message(locale, i18n.KeyProductNotFound),
		nil,
	)
}

func (h *ProductHandler) internalError(c *fiber.Ctx, op string, err error) error {
	h.log.Error("product request failed", zap.String("op", op), zap.Error(err))
	locale := h.locale(c)
	return writeProblem(c, fiber.StatusInternalServerError,
		h.messages.Message(locale, i18n.KeyInternalErrorTitle),
		h.messages.Message(locale, i18n.KeyInternalErrorDetail),
		nil,
	)
}
