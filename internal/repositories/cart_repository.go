package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shresthasriv/ecom-nexora/internal/models"
	"github.com/shresthasriv/ecom-nexora/internal/utils"
)

var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrVersionConflict = errors.New("cart was modified concurrently")
)

// CartRepository persists one cart per owner key. UpdateCart only succeeds
// when the stored version still matches cart.Version, and bumps it on success.
type CartRepository interface {
	FindOrCreate(ctx context.Context, owner string) (*models.Cart, error)
	GetByOwner(ctx context.Context, owner string) (*models.Cart, error)
	UpdateCart(ctx context.Context, cart *models.Cart) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) FindOrCreate(ctx context.Context, owner string) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO carts (id, owner_key, items, version, created_at, updated_at)
		VALUES ($1, $2, '[]', 1, NOW(), NOW())
		ON CONFLICT (owner_key) DO NOTHING
	`

	if _, err := r.DB.ExecContext(dbCtx, query, uuid.New(), owner); err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	return r.selectByOwner(dbCtx, owner)
}

func (r *cartRepository) GetByOwner(ctx context.Context, owner string) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return r.selectByOwner(dbCtx, owner)
}

func (r *cartRepository) selectByOwner(ctx context.Context, owner string) (*models.Cart, error) {

	query := `
		SELECT id, owner_key, items, version, created_at, updated_at
		FROM carts
		WHERE owner_key = $1
	`

	cart := &models.Cart{}

	var itemsJSON []byte

	err := r.DB.QueryRowContext(ctx, query, owner).Scan(&cart.ID, &cart.OwnerKey, &itemsJSON, &cart.Version, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &cart.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart items: %w", err)
	}

	return cart, nil
}

func (r *cartRepository) UpdateCart(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	items := cart.Items
	if items == nil {
		items = []models.CartItem{}
	}

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart items: %w", err)
	}

	query := `
		UPDATE carts
		SET items = $1, version = version + 1, updated_at = NOW()
		WHERE id = $2 AND version = $3
		RETURNING version, updated_at
	`

	err = r.DB.QueryRowContext(dbCtx, query, itemsJSON, cart.ID, cart.Version).Scan(&cart.Version, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVersionConflict
		}
		return fmt.Errorf("failed to update the cart: %w", err)
	}

	return nil
}
