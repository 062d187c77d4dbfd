package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jeansk1/eva4-backend/internal/application/dto"
	"github.com/jeansk1/eva4-backend/internal/application/storefront"
	"github.com/jeansk1/eva4-backend/pkg/validator"
)

// CartHandler maneja el carrito de la tienda pública. El dueño del carrito
// es el usuario autenticado o, para visitantes, la clave de sesión del
// header X-Session-Key.
type CartHandler struct {
	uc *storefront.CartUseCase
}

// NewCartHandler construye el handler.
func NewCartHandler(uc *storefront.CartUseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// cartKey resuelve el dueño del carrito para el request. Devuelve una
// clave inválida si no hay ni token ni sesión.
func cartKey(c *fiber.Ctx) storefront.CartKey {
	if actor := GetActor(c); actor.Authenticated() {
		return storefront.CartKey{UserID: actor.ID}
	}
	return storefront.CartKey{SessionKey: GetSessionKey(c)}
}

// requireCartKey corta con 400 si el request no identifica un carrito.
func requireCartKey(c *fiber.Ctx) (storefront.CartKey, error) {
	key := cartKey(c)
	if !key.Valid() {
		return storefront.CartKey{}, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "MISSING_CART_KEY", Message: "se requiere token o header " + HeaderSessionKey,
		})
	}
	return key, nil
}

// Get godoc
// @Summary      Ver el carrito
// @Tags         cart
// @Produce      json
// @Param        X-Session-Key  header  string  false  "Clave de sesión anónima"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	key, errResp := requireCartKey(c)
	if errResp != nil {
		return errResp
	}
	out, err := h.uc.Get(key)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Agregar producto al carrito (acumula cantidad)
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        X-Session-Key  header  string  false  "Clave de sesión anónima"
// @Param        body  body  dto.AddCartItemRequest  true  "Producto y cantidad"
// @Success      200   {object}  dto.CartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cart/items [post]
func (h *CartHandler) Add(c *fiber.Ctx) error {
	key, errResp := requireCartKey(c)
	if errResp != nil {
		return errResp
	}
	var in dto.AddCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if errs := validator.Struct(in); errs != nil {
		return invalid(c, validator.Message(errs))
	}
	out, err := h.uc.Add(key, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// UpdateQuantity godoc
// @Summary      Fijar la cantidad de una línea del carrito
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        X-Session-Key  header  string  false  "Clave de sesión anónima"
// @Param        productId  path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateCartItemRequest  true  "Nueva cantidad"
// @Success      200   {object}  dto.CartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cart/items/{productId} [put]
func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	key, errResp := requireCartKey(c)
	if errResp != nil {
		return errResp
	}
	var in dto.UpdateCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if errs := validator.Struct(in); errs != nil {
		return invalid(c, validator.Message(errs))
	}
	out, err := h.uc.UpdateQuantity(key, c.Params("productId"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Remove godoc
// @Summary      Quitar una línea del carrito
// @Tags         cart
// @Produce      json
// @Param        X-Session-Key  header  string  false  "Clave de sesión anónima"
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart/items/{productId} [delete]
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	key, errResp := requireCartKey(c)
	if errResp != nil {
		return errResp
	}
	out, err := h.uc.Remove(key, c.Params("productId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Merge godoc
// @Summary      Fusionar el carrito anónimo de la sesión con el del usuario autenticado
// @Tags         cart
// @Security     Bearer
// @Param        X-Session-Key  header  string  true  "Clave de sesión anónima a absorber"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cart/merge [post]
func (h *CartHandler) Merge(c *fiber.Ctx) error {
	actor := GetActor(c)
	if !actor.Authenticated() {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "se requiere usuario autenticado"})
	}
	sessionKey := GetSessionKey(c)
	if sessionKey == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_SESSION", Message: "header " + HeaderSessionKey + " requerido"})
	}
	if err := h.uc.Merge(sessionKey, actor.ID); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Checkout godoc
// @Summary      Convertir el carrito en una orden y vaciarlo
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        X-Session-Key  header  string  false  "Clave de sesión anónima"
// @Param        body  body  dto.CheckoutRequest  true  "Datos de contacto"
// @Success      201   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorResponse  "stock insuficiente"
// @Router       /api/cart/checkout [post]
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	key, errResp := requireCartKey(c)
	if errResp != nil {
		return errResp
	}
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if errs := validator.Struct(in); errs != nil {
		return invalid(c, validator.Message(errs))
	}
	out, err := h.uc.Checkout(c.UserContext(), key, in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
