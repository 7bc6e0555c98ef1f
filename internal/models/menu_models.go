package models

// MenuItem represents a dish on the restaurant menu.
type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
}

// MenuItemDraft is a menu item that has not been assigned an ID yet.
type MenuItemDraft struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
}

// WithID returns the menu item the draft becomes once the data service assigns it an ID.
func (d MenuItemDraft) WithID(id string) MenuItem {
	return MenuItem{
		ID:          id,
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Image:       d.Image,
		Category:    d.Category,
	}
}

// MenuField names one editable field of a menu item form.
type MenuField string

const (
	MenuFieldName        MenuField = "name"
	MenuFieldCategory    MenuField = "category"
	MenuFieldDescription MenuField = "description"
	MenuFieldPrice       MenuField = "price"
	MenuFieldImage       MenuField = "image"
)

// MenuFields lists the form fields in the order they are rendered.
var MenuFields = []MenuField{
	MenuFieldName,
	MenuFieldCategory,
	MenuFieldDescription,
	MenuFieldPrice,
	MenuFieldImage,
}

// IsValidMenuField checks if the provided string names an editable menu field.
func IsValidMenuField(field string) bool {
	switch MenuField(field) {
	case MenuFieldName,
		MenuFieldCategory,
		MenuFieldDescription,
		MenuFieldPrice,
		MenuFieldImage:
		return true
	default:
		return false
	}
}

// Draft returns the item without its ID.
func (m MenuItem) Draft() MenuItemDraft {
	return MenuItemDraft{
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Image:       m.Image,
		Category:    m.Category,
	}
}
