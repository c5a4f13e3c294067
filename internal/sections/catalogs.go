package sections

import "github.com/gompdf/shotpdf/internal/item"

// Shot sections
const (
	ShotNumber   ID = item.FieldShotNumber
	ShotName     ID = item.FieldShotName
	ShotCombined ID = "shotCombined"
	Image        ID = item.FieldImage
	Type         ID = item.FieldType
	Lane         ID = item.FieldLane
	Date         ID = item.FieldDate
	Location     ID = item.FieldLocation
	Talent       ID = item.FieldTalent
	Products     ID = item.FieldProducts
	Notes        ID = item.FieldNotes
)

// Pull sections
const (
	StyleNumber     ID = item.FieldStyle
	Product         ID = item.FieldProduct
	ProductCombined ID = "productCombined"
	Category        ID = item.FieldCategory
	Gender          ID = item.FieldGender
	Size            ID = item.FieldSize
	Quantity        ID = item.FieldQuantity
)

// Preset names shared by both catalogs
const (
	PresetMinimal  = "minimal"
	PresetStandard = "standard"
	PresetFull     = "full"
)

// ShotCatalog lists the sections of planner exports
var ShotCatalog = NewCatalog("shots", []Definition{
	{ID: ShotNumber, Label: "Shot #", Required: true, Visible: true, Order: 0, Flex: 1},
	{ID: ShotName, Label: "Shot Name", Visible: true, Order: 1, Flex: 2},
	{ID: ShotCombined, Label: "Shot", Members: []ID{ShotNumber, ShotName}},
	{ID: Image, Label: "Image", Visible: true, Order: 2, Flex: 1.5},
	{ID: Type, Label: "Type", Order: 3, Flex: 1},
	{ID: Lane, Label: "Lane", Order: 4, Flex: 1},
	{ID: Date, Label: "Date", Visible: true, Order: 5, Flex: 1},
	{ID: Location, Label: "Location", Visible: true, Order: 6, Flex: 1.5},
	{ID: Talent, Label: "Talent", Visible: true, Order: 7, Flex: 1.5},
	{ID: Products, Label: "Products", Visible: true, Order: 8, Flex: 2},
	{ID: Notes, Label: "Notes", Visible: true, Order: 9, Flex: 3},
}, map[string][]ID{
	PresetMinimal:  {ShotCombined, Image},
	PresetStandard: {ShotCombined, Image, Date, Location, Talent, Products, Notes},
	PresetFull:     {ShotCombined, Image, Type, Lane, Date, Location, Talent, Products, Notes},
})

// PullCatalog lists the sections of pull-sheet exports
var PullCatalog = NewCatalog("pull", []Definition{
	{ID: StyleNumber, Label: "Style #", Visible: true, Order: 0, Flex: 1},
	{ID: Product, Label: "Product", Required: true, Visible: true, Order: 1, Flex: 2.5},
	{ID: ProductCombined, Label: "Product", Members: []ID{StyleNumber, Product}},
	{ID: Image, Label: "Image", Visible: true, Order: 2, Flex: 1.5},
	{ID: Category, Label: "Category", Visible: true, Order: 3, Flex: 1},
	{ID: Gender, Label: "Gender", Visible: true, Order: 4, Flex: 1},
	{ID: Size, Label: "Sizes", Visible: true, Order: 5, Flex: 2},
	{ID: Quantity, Label: "Qty", Visible: true, Order: 6, Flex: 0.75},
	{ID: Notes, Label: "Notes", Visible: true, Order: 7, Flex: 2.5},
}, map[string][]ID{
	PresetMinimal:  {ProductCombined, Size, Quantity},
	PresetStandard: {ProductCombined, Image, Category, Size, Quantity, Notes},
	PresetFull:     {ProductCombined, Image, Category, Gender, Size, Quantity, Notes},
})

// CatalogFor returns the catalog matching an item kind
func CatalogFor(kind item.Kind) *Catalog {
	if kind == item.KindPull {
		return PullCatalog
	}
	return ShotCatalog
}
