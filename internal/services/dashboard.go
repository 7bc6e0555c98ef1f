package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"tsehay_admin/internal/models"
	"tsehay_admin/internal/repositories"
	"tsehay_admin/pkg/utils"
)

// --- Custom Service Errors ---
var (
	ErrTableNotFound    = errors.New("table not found in dashboard")
	ErrMenuItemNotFound = errors.New("menu item not found in dashboard")
	ErrNotEditing       = errors.New("no menu item is being edited")
	ErrInvalidPrice     = errors.New("price must be a non-negative number")
	ErrUnknownField     = errors.New("unknown menu item field")
)

// Notification texts shown after dashboard actions.
const (
	msgTableUpdateFailed = "Failed to update table availability"
	msgMenuUpdateFailed  = "Failed to update menu item"
	msgMenuAddFailed     = "Failed to add menu item"
	msgInvalidPrice      = "Price must be a non-negative number"
)

// DashboardView is a copy of the dashboard's view state for rendering.
type DashboardView struct {
	Tables           []models.TableAvailability `json:"tables"`
	MenuItems        []models.MenuItem          `json:"menuItems"`
	EditingItemID    string                     `json:"editingItemId,omitempty"`
	EditedItem       *models.MenuItem           `json:"editedItem,omitempty"`
	IsAddingMenuItem bool                       `json:"isAddingMenuItem"`
	NewMenuItem      models.MenuItemDraft       `json:"newMenuItem"`
}

// Dashboard is the view state of one admin's dashboard screen.
//
// Mutations follow the same pattern: the data service is called without the
// lock held, and local state is patched by entity ID only after it succeeds.
type Dashboard struct {
	data     repositories.DataService
	notifier Notifier
	now      func() time.Time

	mountOnce sync.Once

	mu      sync.Mutex
	tables  []models.TableAvailability
	menu    []models.MenuItem
	edit    EditState
	addOpen bool
	draft   models.MenuItemDraft
}

// NewDashboard creates an unmounted dashboard.
func NewDashboard(data repositories.DataService, notifier Notifier) *Dashboard {
	return &Dashboard{
		data:     data,
		notifier: notifier,
		now:      time.Now,
		edit:     NoEdit{},
	}
}

// Mount fetches tables and menu items the first time it is called.
// Fetch failures are logged and leave the corresponding list empty.
// The fetch belongs to the session, so cancelling ctx does not abort it.
func (d *Dashboard) Mount(ctx context.Context) {
	d.mountOnce.Do(func() {
		ctx := context.WithoutCancel(ctx)
		var wg sync.WaitGroup
		wg.Add(2)

		go func() {
			defer wg.Done()
			items, err := d.data.GetMenuItems(ctx)
			if err != nil {
				utils.LogError(err, "Failed to fetch menu items")
				return
			}
			d.mu.Lock()
			d.menu = items
			d.mu.Unlock()
		}()

		go func() {
			defer wg.Done()
			tables, err := d.data.GetAvailableTables(ctx, d.now().UTC().Format(time.RFC3339Nano))
			if err != nil {
				utils.LogError(err, "Failed to fetch tables")
				return
			}
			d.mu.Lock()
			d.tables = tables
			d.mu.Unlock()
		}()

		wg.Wait()
	})
}

// View returns a copy of the current view state.
func (d *Dashboard) View() DashboardView {
	d.mu.Lock()
	defer d.mu.Unlock()

	view := DashboardView{
		Tables:           append([]models.TableAvailability{}, d.tables...),
		MenuItems:        append([]models.MenuItem{}, d.menu...),
		IsAddingMenuItem: d.addOpen,
		NewMenuItem:      d.draft,
	}
	if e, ok := d.edit.(Editing); ok {
		scratch := e.Scratch
		view.EditingItemID = e.ItemID
		view.EditedItem = &scratch
	}
	return view
}

// EditState returns the current edit state.
func (d *Dashboard) EditState() EditState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.edit
}

// ToggleTable inverts a table's availability.
func (d *Dashboard) ToggleTable(ctx context.Context, tableID string) error {
	d.mu.Lock()
	idx := d.tableIndex(tableID)
	if idx < 0 {
		d.mu.Unlock()
		d.notifier.Notify(failureNotice(msgTableUpdateFailed))
		return fmt.Errorf("%w: %s", ErrTableNotFound, tableID)
	}
	// The number shown in the notice is read before the call, from the same
	// record the new value is derived from.
	table := d.tables[idx]
	d.mu.Unlock()

	next := !table.IsAvailable
	if err := d.data.UpdateTableAvailability(ctx, tableID, next); err != nil {
		d.notifier.Notify(failureNotice(msgTableUpdateFailed))
		return fmt.Errorf("updating table %s: %w", tableID, err)
	}

	d.mu.Lock()
	if i := d.tableIndex(tableID); i >= 0 {
		d.tables[i].IsAvailable = next
	}
	d.mu.Unlock()

	d.notifier.Notify(models.Notification{
		Title:       "Table Updated",
		Description: fmt.Sprintf("Table %d is now %s", table.TableNumber, models.AvailabilityWord(next)),
		Variant:     models.NotificationDefault,
	})
	return nil
}

// BeginEdit puts one menu item in edit mode, discarding any other edit in progress.
func (d *Dashboard) BeginEdit(itemID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	idx := d.menuIndex(itemID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrMenuItemNotFound, itemID)
	}
	d.edit = Editing{ItemID: itemID, Scratch: d.menu[idx]}
	return nil
}

// CancelEdit leaves edit mode without saving.
func (d *Dashboard) CancelEdit() {
	d.mu.Lock()
	d.edit = NoEdit{}
	d.mu.Unlock()
}

// SetEditField replaces one field of the scratch copy.
func (d *Dashboard) SetEditField(field models.MenuField, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.edit.(Editing)
	if !ok {
		return ErrNotEditing
	}
	if err := setMenuField(&e.Scratch, field, value); err != nil {
		return err
	}
	d.edit = e
	return nil
}

// SaveEdit sends the scratch copy to the data service.
// It is a no-op when no item is being edited.
func (d *Dashboard) SaveEdit(ctx context.Context) error {
	d.mu.Lock()
	e, ok := d.edit.(Editing)
	d.mu.Unlock()
	if !ok {
		return nil
	}

	if err := d.data.UpdateMenuItem(ctx, e.Scratch); err != nil {
		d.notifier.Notify(failureNotice(msgMenuUpdateFailed))
		return fmt.Errorf("updating menu item %s: %w", e.ItemID, err)
	}

	d.mu.Lock()
	if i := d.menuIndex(e.ItemID); i >= 0 {
		d.menu[i] = e.Scratch
	}
	// An edit begun on another item while the call was in flight survives.
	if current, ok := d.edit.(Editing); ok && current.ItemID == e.ItemID {
		d.edit = NoEdit{}
	}
	d.mu.Unlock()

	d.notifier.Notify(models.Notification{
		Title:       "Menu Item Updated",
		Description: fmt.Sprintf("%s has been successfully updated", e.Scratch.Name),
		Variant:     models.NotificationDefault,
	})
	return nil
}

// SubmitEditForm applies every posted field to the scratch copy and saves it.
func (d *Dashboard) SubmitEditForm(ctx context.Context, values map[models.MenuField]string) error {
	if err := d.applyFields(d.SetEditField, values); err != nil {
		if errors.Is(err, ErrInvalidPrice) {
			d.notifier.Notify(failureNotice(msgInvalidPrice))
		}
		return err
	}
	return d.SaveEdit(ctx)
}

// BeginAdd shows the add-item form.
func (d *Dashboard) BeginAdd() {
	d.mu.Lock()
	d.addOpen = true
	d.mu.Unlock()
}

// CancelAdd hides the add-item form. The draft is kept.
func (d *Dashboard) CancelAdd() {
	d.mu.Lock()
	d.addOpen = false
	d.mu.Unlock()
}

// CancelAddForm keeps the posted fields in the draft and hides the form.
// A rejected field keeps its old value.
func (d *Dashboard) CancelAddForm(values map[models.MenuField]string) error {
	err := d.applyFields(d.SetDraftField, values)
	d.CancelAdd()
	return err
}

// SetDraftField replaces one field of the add-item draft.
func (d *Dashboard) SetDraftField(field models.MenuField, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	item := d.draft.WithID("")
	if err := setMenuField(&item, field, value); err != nil {
		return err
	}
	d.draft = item.Draft()
	return nil
}

// SubmitAdd creates the drafted item through the data service.
func (d *Dashboard) SubmitAdd(ctx context.Context) error {
	d.mu.Lock()
	draft := d.draft
	d.mu.Unlock()

	added, err := d.data.AddMenuItem(ctx, draft)
	if err != nil {
		d.notifier.Notify(failureNotice(msgMenuAddFailed))
		return fmt.Errorf("adding menu item: %w", err)
	}

	d.mu.Lock()
	d.menu = append(d.menu, *added)
	d.addOpen = false
	d.draft = models.MenuItemDraft{}
	d.mu.Unlock()

	d.notifier.Notify(models.Notification{
		Title:       "Menu Item Added",
		Description: fmt.Sprintf("%s has been successfully added to the menu", added.Name),
		Variant:     models.NotificationDefault,
	})
	return nil
}

// SubmitAddForm applies every posted field to the draft and submits it.
func (d *Dashboard) SubmitAddForm(ctx context.Context, values map[models.MenuField]string) error {
	if err := d.applyFields(d.SetDraftField, values); err != nil {
		if errors.Is(err, ErrInvalidPrice) {
			d.notifier.Notify(failureNotice(msgInvalidPrice))
		}
		return err
	}
	return d.SubmitAdd(ctx)
}

// applyFields sets the fields in render order. Valid fields are kept even
// when another field is rejected.
func (d *Dashboard) applyFields(set func(models.MenuField, string) error, values map[models.MenuField]string) error {
	var errs []error
	for _, field := range models.MenuFields {
		value, ok := values[field]
		if !ok {
			continue
		}
		if err := set(field, value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (d *Dashboard) tableIndex(id string) int {
	for i := range d.tables {
		if d.tables[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Dashboard) menuIndex(id string) int {
	for i := range d.menu {
		if d.menu[i].ID == id {
			return i
		}
	}
	return -1
}

func setMenuField(item *models.MenuItem, field models.MenuField, value string) error {
	switch field {
	case models.MenuFieldName:
		item.Name = value
	case models.MenuFieldCategory:
		item.Category = value
	case models.MenuFieldDescription:
		item.Description = value
	case models.MenuFieldImage:
		item.Image = value
	case models.MenuFieldPrice:
		price, err := utils.ParsePrice(value)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPrice, err)
		}
		item.Price = price
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}
