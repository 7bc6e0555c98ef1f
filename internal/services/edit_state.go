package services

import "tsehay_admin/internal/models"

// EditState is either NoEdit or Editing. The unexported method seals the set,
// so at most one menu item can ever be in edit mode.
type EditState interface {
	editState()
}

// NoEdit means no menu item is being edited.
type NoEdit struct{}

// Editing holds the item under edit and its scratch copy.
type Editing struct {
	ItemID  string
	Scratch models.MenuItem
}

func (NoEdit) editState()  {}
func (Editing) editState() {}

// EditingItemID returns the ID of the item in edit mode, if any.
func EditingItemID(s EditState) (string, bool) {
	if e, ok := s.(Editing); ok {
		return e.ItemID, true
	}
	return "", false
}
