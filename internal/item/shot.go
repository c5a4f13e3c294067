package item

import (
	"strings"

	"github.com/google/uuid"
)

// Shot is a planner record as stored by the production tool
type Shot struct {
	ID        string       `yaml:"id"`
	Number    string       `yaml:"shotNumber"`
	Name      string       `yaml:"name"`
	Type      string       `yaml:"type"`
	Date      string       `yaml:"date"`
	Location  string       `yaml:"location"`
	Lane      string       `yaml:"lane"`
	Talent    []TalentRef  `yaml:"talent"`
	Products  []ProductRef `yaml:"products"`
	Notes     string       `yaml:"notes"`
	Reference *ImageRef    `yaml:"referenceImage"`
}

// TalentRef names a person booked for a shot
type TalentRef struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// ProductRef is a product placed in a shot
type ProductRef struct {
	FamilyName string `yaml:"familyName"`
	ColourName string `yaml:"colourName"`
	Size       string `yaml:"size"`
}

// ImageRef is a stored image path with its crop position. An unset focus
// coordinate means the centre of the image.
type ImageRef struct {
	Path   string   `yaml:"path"`
	FocusX *float64 `yaml:"x"`
	FocusY *float64 `yaml:"y"`
	Zoom   float64  `yaml:"zoom"`
}

// Label renders a product as "Family (Colour, Size)"
func (p ProductRef) Label() string {
	var details []string
	if c := strings.TrimSpace(p.ColourName); c != "" {
		details = append(details, c)
	}
	if s := strings.TrimSpace(p.Size); s != "" {
		details = append(details, s)
	}
	name := strings.TrimSpace(p.FamilyName)
	if len(details) == 0 {
		return name
	}
	return name + " (" + strings.Join(details, ", ") + ")"
}

// FromShot maps a planner shot into an ExportableItem. Shots without an id
// are given a random one so downstream code can key on it.
func FromShot(s Shot) ExportableItem {
	it := ExportableItem{
		ID:       s.ID,
		Kind:     KindShot,
		Number:   strings.TrimSpace(s.Number),
		Title:    strings.TrimSpace(s.Name),
		Type:     strings.TrimSpace(s.Type),
		Lane:     strings.TrimSpace(s.Lane),
		Location: strings.TrimSpace(s.Location),
		Date:     strings.TrimSpace(s.Date),
		Notes:    strings.TrimSpace(s.Notes),
		Image:    s.Reference.toImage(),
	}
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	for _, t := range s.Talent {
		if name := strings.TrimSpace(t.Name); name != "" {
			it.Talent = append(it.Talent, name)
		}
	}
	for _, p := range s.Products {
		if label := p.Label(); label != "" {
			it.Products = append(it.Products, label)
		}
	}
	return it
}

func (r *ImageRef) toImage() *Image {
	if r == nil || strings.TrimSpace(r.Path) == "" {
		return nil
	}
	return &Image{Path: r.Path, FocusX: focusOrCentre(r.FocusX), FocusY: focusOrCentre(r.FocusY), Zoom: r.Zoom}
}

func focusOrCentre(v *float64) float64 {
	if v == nil {
		return 50
	}
	return *v
}
