// Package item defines the normalized record every export lays out and the
// adapters that build it from shot and pull-sheet records.
package item

import (
	"strconv"
	"strings"
)

// Kind tells which feature a record came from
type Kind string

const (
	KindShot Kind = "shot"
	KindPull Kind = "pull"
)

// Field keys. Section ids reuse these keys so a visible section maps
// directly onto an item value.
const (
	FieldShotNumber = "shotNumber"
	FieldShotName   = "shotName"
	FieldImage      = "image"
	FieldType       = "type"
	FieldLane       = "lane"
	FieldLocation   = "location"
	FieldDate       = "date"
	FieldTalent     = "talent"
	FieldProducts   = "products"
	FieldNotes      = "notes"
	FieldStyle      = "styleNumber"
	FieldProduct    = "product"
	FieldCategory   = "category"
	FieldGender     = "gender"
	FieldSize       = "size"
	FieldQuantity   = "quantity"
)

// Image references a picture and the part of it to keep when it is cropped
// to fill a box
type Image struct {
	Path string
	// FocusX and FocusY are the point to keep in view, in percent of the
	// source width and height. 50/50 centres the crop.
	FocusX float64
	FocusY float64
	// Zoom enlarges the source before cropping; values below 1 mean 1.
	Zoom float64
}

// ExportableItem is the normalized record consumed by the layout engine.
// Layout never modifies an item.
type ExportableItem struct {
	ID     string
	Kind   Kind
	Image  *Image
	Number string
	Title  string
	Type   string
	Lane   string

	Location string
	Date     string
	Talent   []string
	Products []string
	Notes    string

	Category string
	Gender   string
	Size     string
	Quantity int
}

// HasImage reports whether the item references an image
func (it ExportableItem) HasImage() bool {
	return it.Image != nil && strings.TrimSpace(it.Image.Path) != ""
}

// Value returns the display value of a field key. List fields are joined
// with ", "; unknown keys yield "".
func (it ExportableItem) Value(key string) string {
	switch key {
	case FieldShotNumber, FieldStyle:
		return it.Number
	case FieldShotName, FieldProduct:
		return it.Title
	case FieldImage:
		if it.Image == nil {
			return ""
		}
		return it.Image.Path
	case FieldType:
		return it.Type
	case FieldLane:
		return it.Lane
	case FieldLocation:
		return it.Location
	case FieldDate:
		return it.Date
	case FieldTalent:
		return joinList(it.Talent)
	case FieldProducts:
		return joinList(it.Products)
	case FieldNotes:
		return it.Notes
	case FieldCategory:
		return it.Category
	case FieldGender:
		return it.Gender
	case FieldSize:
		return it.Size
	case FieldQuantity:
		if it.Quantity <= 0 {
			return ""
		}
		return strconv.Itoa(it.Quantity)
	}
	return ""
}

// IsPopulated reports whether a field has a non-blank value
func (it ExportableItem) IsPopulated(key string) bool {
	if key == FieldImage {
		return it.HasImage()
	}
	return strings.TrimSpace(it.Value(key)) != ""
}

func joinList(values []string) string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return strings.Join(out, ", ")
}
