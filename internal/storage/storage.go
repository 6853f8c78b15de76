package storage

import (
	"context"

	"github.com/cfshr/aur/internal/domain"
)

// Key is the fixed storage slot name for persisted cart state. Backends derive
// their concrete location (file name, redis key) from it.
const Key = "aur-cart-storage"

// Storage persists the cart state of a single shopper device.
//
// Load returns pkg/errors.ErrNotFound when no state has been persisted yet and
// an error wrapping pkg/errors.ErrCorrupted when the persisted bytes do not
// decode; callers treat both as an empty initial cart.
type Storage interface {
	// Load reads the persisted cart state.
	Load(ctx context.Context) (domain.Cart, error)

	// Save overwrites the persisted cart state.
	Save(ctx context.Context, cart domain.Cart) error

	// Delete removes the persisted state. Deleting absent state is not an error.
	Delete(ctx context.Context) error
}
