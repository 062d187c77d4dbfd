package postgres

import (
	"context"
	"fmt"

	"github.com/jeansk1/eva4-backend/internal/domain/entity"
	"github.com/jeansk1/eva4-backend/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo implementación del puerto CartRepository sobre PostgreSQL. Cada
// línea pertenece a un usuario (user_id) o a una sesión anónima
// (session_key); la columna no usada queda NULL.
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador de persistencia de carritos.
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

// Create persiste una línea nueva de carrito.
func (r *CartRepo) Create(item *entity.CartItem) error {
	query := `
		INSERT INTO cart_items (id, user_id, session_key, product_id, quantity, added_at)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.UserID, item.SessionKey, item.ProductID, item.Quantity, item.AddedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cart item: %w", err)
	}
	return nil
}

// Update actualiza cantidad y dueño de una línea (Merge re-asigna el dueño).
func (r *CartRepo) Update(item *entity.CartItem) error {
	query := `
		UPDATE cart_items SET user_id = NULLIF($2, ''), session_key = NULLIF($3, ''), quantity = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.UserID, item.SessionKey, item.Quantity,
	)
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	return nil
}

// Delete elimina una línea por ID.
func (r *CartRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM cart_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	return nil
}

const selectCartItem = `
	SELECT id, COALESCE(user_id::text, ''), COALESCE(session_key, ''), product_id, quantity, added_at
	FROM cart_items`

// GetByUserAndProduct devuelve la línea del usuario para el producto o nil.
func (r *CartRepo) GetByUserAndProduct(userID, productID string) (*entity.CartItem, error) {
	return r.getOne(selectCartItem+` WHERE user_id = $1 AND product_id = $2`, userID, productID)
}

// GetBySessionAndProduct devuelve la línea anónima de la sesión o nil.
func (r *CartRepo) GetBySessionAndProduct(sessionKey, productID string) (*entity.CartItem, error) {
	return r.getOne(selectCartItem+` WHERE session_key = $1 AND product_id = $2`, sessionKey, productID)
}

func (r *CartRepo) getOne(query string, args ...any) (*entity.CartItem, error) {
	var it entity.CartItem
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&it.ID, &it.UserID, &it.SessionKey, &it.ProductID, &it.Quantity, &it.AddedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart item: %w", err)
	}
	return &it, nil
}

// ListByUser lista las líneas del carrito de un usuario.
func (r *CartRepo) ListByUser(userID string) ([]*entity.CartItem, error) {
	return r.list(selectCartItem+` WHERE user_id = $1 ORDER BY added_at`, userID)
}

// ListBySession lista las líneas del carrito de una sesión anónima.
func (r *CartRepo) ListBySession(sessionKey string) ([]*entity.CartItem, error) {
	return r.list(selectCartItem+` WHERE session_key = $1 ORDER BY added_at`, sessionKey)
}

func (r *CartRepo) list(query string, args ...any) ([]*entity.CartItem, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	var items []*entity.CartItem
	for rows.Next() {
		var it entity.CartItem
		if err := rows.Scan(&it.ID, &it.UserID, &it.SessionKey, &it.ProductID, &it.Quantity, &it.AddedAt); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// DeleteByUser vacía el carrito de un usuario.
func (r *CartRepo) DeleteByUser(userID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete cart by user: %w", err)
	}
	return nil
}

// DeleteBySession vacía el carrito de una sesión anónima.
func (r *CartRepo) DeleteBySession(sessionKey string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM cart_items WHERE session_key = $1`, sessionKey)
	if err != nil {
		return fmt.Errorf("delete cart by session: %w", err)
	}
	return nil
}
