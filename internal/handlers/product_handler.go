package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"pazar/internal/apperrors"
	"pazar/internal/middleware"
	"pazar/internal/services"
	"pazar/internal/uploads"
)

// ProductHandler handles product mutations inside a store aggregate. Creation
// and image replacement arrive as multipart forms; updates arrive as JSON
// patches where omitted fields keep their prior values.
type ProductHandler struct {
	storeService *services.StoreService
	storage      *uploads.Storage
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(storeService *services.StoreService, storage *uploads.Storage) *ProductHandler {
	return &ProductHandler{storeService: storeService, storage: storage}
}

// RegisterRoutes registers the product routes. All of them require a store
// token; the service enforces that the token matches the targeted store.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, authGuard fiber.Handler) {
	products := router.Group("/products", authGuard, middleware.StoreOnly())
	products.Post("/:storeId", h.HandleCreate)
	products.Patch("/:storeId/:productId", h.HandleUpdate)
	products.Put("/:storeId/:productId/image", h.HandleUpdateImage)
	products.Delete("/:storeId/:productId", h.HandleDelete)
}

// HandleCreate adds a product to the caller's store from a multipart form.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	input, err := productInputFromForm(c)
	if err != nil {
		return writeError(c, err)
	}

	imagePath := ""
	if file, err := c.FormFile("image"); err == nil && file != nil {
		imagePath, err = h.storage.SaveImage(file)
		if err != nil {
			return writeError(c, err)
		}
	}

	product, err := h.storeService.AddProduct(c.Params("storeId"), middleware.PrincipalFrom(c), input, imagePath)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdate applies a JSON partial update to one product.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	var raw map[string]interface{}
	if err := c.BodyParser(&raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	product, err := h.storeService.UpdateProduct(
		c.Params("storeId"), c.Params("productId"),
		middleware.PrincipalFrom(c), productInputFromJSON(raw))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(product)
}

// HandleUpdateImage replaces one product's image from a multipart form.
func (h *ProductHandler) HandleUpdateImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "image file is required"})
	}
	imagePath, err := h.storage.SaveImage(file)
	if err != nil {
		return writeError(c, err)
	}

	product, err := h.storeService.UpdateProductImage(
		c.Params("storeId"), c.Params("productId"),
		middleware.PrincipalFrom(c), imagePath)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(product)
}

// HandleDelete removes one product. Deleting an already-deleted product
// succeeds with removed=false.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	removed, err := h.storeService.DeleteProduct(
		c.Params("storeId"), c.Params("productId"), middleware.PrincipalFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"removed": removed})
}

// productInputFromForm builds a ProductInput from multipart form fields. The
// list fields stay raw strings; the service normalizes them.
func productInputFromForm(c *fiber.Ctx) (services.ProductInput, error) {
	var in services.ProductInput

	if v := c.FormValue("name"); v != "" {
		in.Name = &v
	}
	if v := c.FormValue("description"); v != "" {
		in.Description = &v
	}
	if v := c.FormValue("color"); v != "" {
		in.Color = &v
	}
	if v := c.FormValue("size"); v != "" {
		in.Size = &v
	}
	if v := c.FormValue("category"); v != "" {
		in.Category = &v
	}
	if v := c.FormValue("product_category"); v != "" {
		in.ProductCategory = &v
	}
	if v := c.FormValue("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return in, badNumber("price")
		}
		in.Price = &price
	}
	if v := c.FormValue("stock"); v != "" {
		stock, err := strconv.Atoi(v)
		if err != nil {
			return in, badNumber("stock")
		}
		in.Stock = &stock
	}
	if v := c.FormValue("max_qty"); v != "" {
		maxQty, err := strconv.Atoi(v)
		if err != nil {
			return in, badNumber("max_qty")
		}
		in.MaxQty = &maxQty
	}
	// A malformed discount is ignored rather than rejected: the discount is
	// only ever set from a clean positive number.
	if v := c.FormValue("discount_price"); v != "" {
		if discount, err := strconv.ParseFloat(v, 64); err == nil {
			in.DiscountPrice = &discount
		}
	}
	if v := c.FormValue("colors"); v != "" {
		in.Colors = v
	}
	if v := c.FormValue("sizes"); v != "" {
		in.Sizes = v
	}
	if v := c.FormValue("campaigns"); v != "" {
		in.Campaigns = v
	}
	if v := c.FormValue("attributes"); v != "" {
		in.Attributes = v
	}
	return in, nil
}

// productInputFromJSON builds a ProductInput from a decoded JSON object,
// keeping track of which keys were actually present.
func productInputFromJSON(raw map[string]interface{}) services.ProductInput {
	var in services.ProductInput

	if v, ok := raw["name"].(string); ok {
		in.Name = &v
	}
	if v, ok := raw["description"].(string); ok {
		in.Description = &v
	}
	if v, ok := raw["color"].(string); ok {
		in.Color = &v
	}
	if v, ok := raw["size"].(string); ok {
		in.Size = &v
	}
	if v, ok := raw["category"].(string); ok {
		in.Category = &v
	}
	if v, ok := raw["product_category"].(string); ok {
		in.ProductCategory = &v
	}
	if v, ok := raw["price"].(float64); ok {
		in.Price = &v
	}
	if v, ok := raw["discount_price"].(float64); ok {
		in.DiscountPrice = &v
	}
	if v, ok := raw["stock"].(float64); ok {
		stock := int(v)
		in.Stock = &stock
	}
	if v, ok := raw["max_qty"].(float64); ok {
		maxQty := int(v)
		in.MaxQty = &maxQty
	}
	if v, ok := raw["colors"]; ok {
		in.Colors = v
	}
	if v, ok := raw["sizes"]; ok {
		in.Sizes = v
	}
	if v, ok := raw["campaigns"]; ok {
		in.Campaigns = v
	}
	if v, ok := raw["attributes"]; ok {
		in.Attributes = v
	}
	return in
}

func badNumber(field string) error {
	return apperrors.BadRequest("invalid numeric value for %s", field)
}
