package repositories

import (
	"context"
	"errors"

	"tsehay_admin/internal/models"
)

var (
	// ErrNotFound is returned when a specific record is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrStoreClosed is returned once the data service has been shut down.
	ErrStoreClosed = errors.New("data service closed")

	// ErrInvalidRecord is returned when a record violates the data model.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrInvalidTimestamp is returned when a date query is not an ISO timestamp.
	ErrInvalidTimestamp = errors.New("invalid ISO timestamp")
)

// MenuRepository defines the menu operations of the data service.
type MenuRepository interface {
	GetMenuItems(ctx context.Context) ([]models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item models.MenuItem) error
	AddMenuItem(ctx context.Context, draft models.MenuItemDraft) (*models.MenuItem, error)
}

// TableRepository defines the table operations of the data service.
type TableRepository interface {
	GetAvailableTables(ctx context.Context, isoTimestamp string) ([]models.TableAvailability, error)
	UpdateTableAvailability(ctx context.Context, tableID string, available bool) error
}

// DataService is the full collaborator used by the dashboard.
type DataService interface {
	MenuRepository
	TableRepository
}
