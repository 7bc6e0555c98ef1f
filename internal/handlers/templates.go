package handlers

import (
	"embed"
	"fmt"
	"html/template"

	"tsehay_admin/pkg/utils"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// menuFieldSet feeds the shared menu item form fields.
type menuFieldSet struct {
	Prefix      string
	Name        string
	Category    string
	Description string
	Price       float64
	Image       string
}

var templateFuncs = template.FuncMap{
	"formatPrice": func(price float64) string {
		return "$" + decimal.NewFromFloat(price).StringFixed(2)
	},
	"priceInput": utils.FormatPriceInput,
	"capacityLabel": func(capacity int) string {
		if capacity == 1 {
			return "1 person"
		}
		return fmt.Sprintf("%d people", capacity)
	},
	"fieldSet": func(prefix, name, category, description string, price float64, image string) menuFieldSet {
		return menuFieldSet{
			Prefix:      prefix,
			Name:        name,
			Category:    category,
			Description: description,
			Price:       price,
			Image:       image,
		}
	},
}

// LoadTemplates parses the embedded HTML templates for gin's HTML renderer.
func LoadTemplates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}
