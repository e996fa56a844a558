package handlers

import (
	"errors"
	"fmt"
	"log"

	"gostore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the authenticated user's cart.
// The user identity always comes from the JWT middleware, never the body.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/", h.HandleAddToCart)
	cartRoutes.Put("/", h.HandleUpdateCartItem)
	cartRoutes.Delete("/:productId", h.HandleRemoveFromCart)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// AddToCartRequest represents the request body for adding a product.
// Quantity defaults to 1 when omitted.
type AddToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,gte=0"`
}

// UpdateCartItemRequest represents the request body for setting a line's
// quantity. A quantity of zero removes the line.
type UpdateCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

// userID extracts the authenticated user's ID injected by the JWT middleware.
func userID(c *fiber.Ctx) (string, error) {
	id, ok := c.Locals("user_id").(string)
	if !ok || id == "" {
		return "", fmt.Errorf("no authenticated user in request context")
	}
	return id, nil
}

// HandleGetCart returns the current cart view.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	view, err := h.service.ProjectCart(uid)
	if err != nil {
		return h.cartError(c, uid, err)
	}
	return c.JSON(view)
}

// HandleAddToCart adds a product to the cart and returns the updated view.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-to-cart request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	view, err := h.service.AddItem(uid, req.ProductID, req.Quantity)
	if err != nil {
		return h.cartError(c, uid, err)
	}
	return c.JSON(view)
}

// HandleUpdateCartItem sets a line's quantity and returns the updated view.
func (h *CartHandler) HandleUpdateCartItem(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	var req UpdateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update-cart request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	view, err := h.service.UpdateItem(uid, req.ProductID, req.Quantity)
	if err != nil {
		return h.cartError(c, uid, err)
	}
	return c.JSON(view)
}

// HandleRemoveFromCart removes a product's line and returns the updated view.
func (h *CartHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	view, err := h.service.RemoveItem(uid, c.Params("productId"))
	if err != nil {
		return h.cartError(c, uid, err)
	}
	return c.JSON(view)
}

// HandleClearCart empties the cart and returns the (empty) view.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	view, err := h.service.ClearCart(uid)
	if err != nil {
		return h.cartError(c, uid, err)
	}
	return c.JSON(view)
}

// cartError maps cart engine errors onto HTTP status codes.
func (h *CartHandler) cartError(c *fiber.Ctx, uid string, err error) error {
	log.Printf("Cart operation failed for user %s: %v", uid, err)

	var status int
	switch {
	case errors.Is(err, services.ErrProductNotFound), errors.Is(err, services.ErrLineNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrInvalidQuantity), errors.Is(err, services.ErrInsufficientStock):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrConflict):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrUpstreamUnavailable):
		status = fiber.StatusServiceUnavailable
	default:
		status = fiber.StatusInternalServerError
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "Cart operation failed",
		"error":   err.Error(),
	})
}
