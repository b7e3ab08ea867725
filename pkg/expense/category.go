package expense

import (
	"fmt"
	"strings"

	"github.com/fintrack/fintrack/pkg/record"
)

type Category string

const (
	Housing    Category = "HOUSING"
	Food       Category = "FOOD"
	Health     Category = "HEALTH"
	Transport  Category = "TRANSPORT"
	Education  Category = "EDUCATION"
	Leisure    Category = "LEISURE"
	Unforeseen Category = "UNFORESEEN"
	Other      Category = "OTHER"
)

// Categories lists every category in report order.
var Categories = []Category{Housing, Food, Health, Transport, Education, Leisure, Unforeseen, Other}

const DefaultCategory = Other

func (c Category) IsValid() bool {
	for _, category := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// ParseCategory accepts any letter case. A blank value selects DefaultCategory.
func ParseCategory(value string) (Category, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultCategory, nil
	}
	category := Category(strings.ToUpper(value))
	if !category.IsValid() {
		return "", fmt.Errorf("%w: unknown category %q", record.ErrInvalidRecord, value)
	}
	return category, nil
}
