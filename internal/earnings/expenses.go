package earnings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Tiliavir/hourly-rate-calculator/internal/model"
)

var (
	// ErrExpenseNotFound is returned when no item carries the requested ID.
	ErrExpenseNotFound = errors.New("expense not found")
	// ErrUnknownField is returned by Update for a field it cannot set.
	ErrUnknownField = errors.New("unknown expense field")
	// ErrAmbiguousID is returned by Find when an ID prefix matches several items.
	ErrAmbiguousID = errors.New("ambiguous expense id")
)

// Field names an editable attribute of an expense item.
type Field string

const (
	FieldName     Field = "name"
	FieldQuantity Field = "quantity"
	FieldPrice    Field = "price"
)

// ParseField maps user input (including the short forms "qty" and
// "unit_price") onto a Field.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name":
		return FieldName, nil
	case "quantity", "qty":
		return FieldQuantity, nil
	case "price", "unit_price", "unitprice":
		return FieldPrice, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// newID generates expense IDs. Replaced in tests.
var newID = func() string { return uuid.New().String() }

// ExpenseList is an ordered list of expense items. Order is kept for display
// only; it never affects the totals.
type ExpenseList []model.ExpenseItem

// Add appends a new item with a fresh ID and returns it.
func (l *ExpenseList) Add(name string, quantity int, unitPrice float64) model.ExpenseItem {
	if quantity < 0 {
		quantity = 0
	}
	if unitPrice < 0 {
		unitPrice = 0
	}
	item := model.ExpenseItem{
		ID:        newID(),
		Name:      name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
	item.LineTotal = LineTotal(item)
	*l = append(*l, item)
	return item
}

// Remove deletes the item with the given ID, keeping the order of the rest.
// It reports whether an item was removed.
func (l *ExpenseList) Remove(id string) bool {
	items := *l
	for i := range items {
		if items[i].ID == id {
			*l = append(items[:i:i], items[i+1:]...)
			return true
		}
	}
	return false
}

// Update sets one field of the item with the given ID. Numeric values that
// cannot be parsed are stored as 0. Only quantity and price changes touch
// the line total.
func (l ExpenseList) Update(id string, field Field, value string) error {
	idx := l.index(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrExpenseNotFound, id)
	}
	item := &l[idx]
	switch field {
	case FieldName:
		item.Name = value
	case FieldQuantity:
		item.Quantity = ParseQuantity(value)
		item.LineTotal = LineTotal(*item)
	case FieldPrice:
		item.UnitPrice = ParseAmount(value)
		item.LineTotal = LineTotal(*item)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Find returns the item whose ID equals ref or, failing that, the single
// item whose ID starts with ref.
func (l ExpenseList) Find(ref string) (model.ExpenseItem, error) {
	if ref == "" {
		return model.ExpenseItem{}, fmt.Errorf("%w: empty id", ErrExpenseNotFound)
	}
	if idx := l.index(ref); idx >= 0 {
		return l[idx], nil
	}
	var match *model.ExpenseItem
	for i := range l {
		if strings.HasPrefix(l[i].ID, ref) {
			if match != nil {
				return model.ExpenseItem{}, fmt.Errorf("%w: %s", ErrAmbiguousID, ref)
			}
			match = &l[i]
		}
	}
	if match == nil {
		return model.ExpenseItem{}, fmt.Errorf("%w: %s", ErrExpenseNotFound, ref)
	}
	return *match, nil
}

// Normalize repairs items read from disk: missing IDs are generated,
// negative numbers are clamped and every line total is recomputed.
func (l ExpenseList) Normalize() {
	for i := range l {
		item := &l[i]
		if item.ID == "" {
			item.ID = newID()
		}
		if item.Quantity < 0 {
			item.Quantity = 0
		}
		if item.UnitPrice < 0 {
			item.UnitPrice = 0
		}
		item.LineTotal = LineTotal(*item)
	}
}

func (l ExpenseList) index(id string) int {
	for i := range l {
		if l[i].ID == id {
			return i
		}
	}
	return -1
}
