package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jeansk1/eva4-backend/internal/application/dto"
	"github.com/jeansk1/eva4-backend/internal/domain/access"
	"github.com/jeansk1/eva4-backend/internal/domain/entity"
	"github.com/jeansk1/eva4-backend/pkg/jwt"
)

// Locals key para el Actor resuelto en Fiber.
const localActor = "actor"

// HeaderSessionKey identifica el carrito de un visitante anónimo.
const HeaderSessionKey = "X-Session-Key"

// AuthMiddleware valida el Bearer Token JWT y deja el Actor en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorFromHeader(c, jwtSecret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: err.Error()})
		}
		if !actor.Authenticated() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		c.Locals(localActor, actor)
		return c.Next()
	}
}

// OptionalAuthMiddleware resuelve el Actor si el request trae un token
// válido, y deja pasar como anónimo si no trae ninguno. Un token presente
// pero inválido sí corta el request.
func OptionalAuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorFromHeader(c, jwtSecret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: err.Error()})
		}
		c.Locals(localActor, actor)
		return c.Next()
	}
}

// RequireRole corta con 403 si el rol del actor no está en la lista. Debe
// ir después de AuthMiddleware.
func RequireRole(roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := GetActor(c)
		for _, role := range roles {
			if actor.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	}
}

// GetActor devuelve el Actor del contexto; zero-value para anónimos.
func GetActor(c *fiber.Ctx) access.Actor {
	v := c.Locals(localActor)
	if v == nil {
		return access.Actor{}
	}
	actor, _ := v.(access.Actor)
	return actor
}

// GetSessionKey devuelve la clave de sesión anónima del request, si viene.
func GetSessionKey(c *fiber.Ctx) string {
	return strings.TrimSpace(c.Get(HeaderSessionKey))
}

// actorFromHeader parsea el Bearer token si está presente. Sin header
// devuelve un Actor anónimo sin error; con header malformado o token
// inválido devuelve error.
func actorFromHeader(c *fiber.Ctx, jwtSecret string) (access.Actor, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return access.Actor{}, nil
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return access.Actor{}, fiber.NewError(fiber.StatusUnauthorized, "formato: Bearer <token>")
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return access.Actor{}, fiber.NewError(fiber.StatusUnauthorized, "token vacío")
	}
	claims, err := jwt.Parse(jwtSecret, tokenString)
	if err != nil {
		return access.Actor{}, fiber.NewError(fiber.StatusUnauthorized, "token inválido o expirado")
	}
	return access.Actor{
		ID:        claims.UserID,
		Role:      entity.Role(claims.Role),
		CompanyID: claims.CompanyID,
		BranchID:  claims.BranchID,
	}, nil
}
