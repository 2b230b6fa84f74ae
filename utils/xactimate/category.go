package xactimate

import "strings"

// Category labels
const (
	CategoryGeneral            = "GENERAL"
	CategoryWaterExtraction    = "WATER EXTRACTION & REMEDIATION"
	CategoryCleaning           = "CLEANING"
	CategoryDemolition         = "GENERAL DEMOLITION"
	CategoryTemporaryRepairs   = "TEMPORARY REPAIRS"
	CategoryDoors              = "DOORS"
	CategorySlidingPatioDoors  = "WINDOWS - SLIDING PATIO DOORS"
	CategoryWindows            = "WINDOWS - ALUMINUM"
	CategoryWindowTreatment    = "WINDOW TREATMENT"
	CategoryMirrors            = "MIRRORS & SHOWER DOORS"
	CategoryAppliances         = "APPLIANCES"
	CategoryPlumbing           = "PLUMBING"
	CategoryElectrical         = "ELECTRICAL"
	CategoryLightFixtures      = "LIGHT FIXTURES"
	CategoryHVAC               = "HEAT, VENT & AIR CONDITIONING"
	CategoryCabinetry          = "CABINETRY"
	CategoryDrywall            = "DRYWALL"
	CategoryLathPlaster        = "INTERIOR LATH & PLASTER"
	CategoryStucco             = "STUCCO & EXTERIOR PLASTER"
	CategoryFinishCarpentry    = "FINISH CARPENTRY / TRIMWORK"
	CategoryFinishHardware     = "FINISH HARDWARE"
	CategoryPainting           = "PAINTING & WOOD WALL FINISHES"
	CategoryPaneling           = "PANELING & WOOD WALL FINISHES"
	CategoryWallpaper          = "WALLPAPER"
	CategoryCeramicTile        = "FLOOR COVERING - CERAMIC TILE"
	CategoryCarpet             = "FLOOR COVERING - CARPET"
	CategoryStoneFloor         = "FLOOR COVERING - STONE"
	CategoryWoodFloor          = "FLOOR COVERING - WOOD"
	CategoryVinylFloor         = "FLOOR COVERING - VINYL"
	CategoryLaminateFloor      = "FLOOR COVERING - LAMINATE"
	CategoryTile               = "TILE"
	CategoryFloorCovering      = "FLOOR COVERING"
	CategorySoffitFasciaGutter = "SOFFIT, FASCIA, & GUTTER"
	CategoryInsulation         = "INSULATION"
	CategoryBathAccessories    = "TOILET & BATH ACCESSORIES"
)

// categoryRule assigns label when the uppercased description contains any
// keyword in anyOf and none in noneOf.
type categoryRule struct {
	label  string
	anyOf  []string
	noneOf []string
}

func (r categoryRule) matches(desc string) bool {
	return containsAny(desc, r.anyOf) && !containsAny(desc, r.noneOf)
}

// categoryRules is evaluated top to bottom and the first match wins.
// Specific terms sit above generic ones: "INSULATED DOOR" must reach DOORS
// before INSULATION, "FLOOR PERIMETER" must reach painting before flooring,
// and "PANEL" is claimed by electrical before paneling.
var categoryRules = []categoryRule{
	// adjustments rather than physical work
	{label: CategoryGeneral, anyOf: []string{"DEDUCTION", "DEDUCT FOR", "LESS ", "SUBTRACT", "CREDIT FOR"}},

	{label: CategoryWaterExtraction, anyOf: []string{"WATER EXTRACTION", "STRUCTURAL DRYING", "MOISTURE", "DEHUMID", "AIR MOVER", "WATER MITIGATION"}},
	{label: CategoryCleaning, anyOf: []string{"CLEAN", "MUCK OUT", "SANITIZE", "DISINFECT", "ANTI-MICROBIAL", "ANTIMICROBIAL", "DEODOR"}},
	{label: CategoryDemolition, anyOf: []string{"DEMO", "DEMOLITION", "TEAR OUT", "REMOVE ", "DISPOSAL", "DUMPSTER", "HAUL", "DEBRIS"}},
	{label: CategoryTemporaryRepairs, anyOf: []string{"TEMPORARY", "TARP", "BOARD UP", "EMERGENCY"}},

	{label: CategoryDoors, anyOf: []string{"DOOR", "THRESHOLD", "DOOR HARDWARE", "DOOR KNOB", "DOOR HANDLE", "LOCKSET", "DEADBOLT"}},
	{label: CategorySlidingPatioDoors, anyOf: []string{"PATIO DOOR", "SLIDING DOOR", "SLIDING GLASS"}},
	{label: CategoryWindows, anyOf: []string{"WINDOW", "GLASS", "GLAZING"}},
	{label: CategoryWindowTreatment, anyOf: []string{"WINDOW TREATMENT", "BLINDS", "SHADE", "CURTAIN"}},
	{label: CategoryMirrors, anyOf: []string{"MIRROR", "SHOWER DOOR", "TUB DOOR", "GLASS DOOR"}},

	{label: CategoryAppliances, anyOf: []string{"APPLIANCE", "DISHWASHER", "RANGE", "REFRIGERATOR", "WASHER", "DRYER", "GARBAGE DISPOSAL", "DISPOSAL", "MICROWAVE", "STOVE", "OVEN"}},

	{label: CategoryPlumbing, anyOf: []string{"PLUMB", "FAUCET", "VALVE", "PIPE", "DRAIN", "TRAP", "SUPPLY LINE", "WATER LINE", "SHOWER HEAD", "TUB", "BATHTUB"}},
	{label: CategoryPlumbing, anyOf: []string{"SINK"}, noneOf: []string{"CABINET"}},
	{label: CategoryPlumbing, anyOf: []string{"TOILET"}, noneOf: []string{"ACCESSORY"}},

	{label: CategoryElectrical, anyOf: []string{"ELECTRIC", "OUTLET", "SWITCH", "RECEPTACLE", "WIRE", "WIRING", "BREAKER", "PANEL", "GFI", "GFCI"}},
	{label: CategoryLightFixtures, anyOf: []string{"LIGHT FIXTURE", "LIGHTING", "CHANDELIER", "CEILING FAN"}},
	{label: CategoryHVAC, anyOf: []string{"HVAC", "AIR CONDITION", "FURNACE", "DUCT", "AC UNIT", "HEAT PUMP", "CONDENSER", "THERMOSTAT"}, noneOf: []string{"STRUCTURAL DRYING", "WATER"}},

	{label: CategoryCabinetry, anyOf: []string{"CABINET", "COUNTER TOP", "COUNTERTOP", "VANITY"}},
	{label: CategoryDrywall, anyOf: []string{"DRYWALL", "SHEETROCK", "GYPSUM", "TEXTURE WALL", "TEXTURE CEILING"}},
	{label: CategoryLathPlaster, anyOf: []string{"PLASTER", "LATH"}},
	{label: CategoryStucco, anyOf: []string{"STUCCO", "EXTERIOR PLASTER"}},
	{label: CategoryFinishCarpentry, anyOf: []string{"BASEBOARD", "BASE BOARD", "TRIM", "MOLDING", "CASING", "CROWN", "WAINSCOT", "CHAIR RAIL"}},
	{label: CategoryFinishHardware, anyOf: []string{"FINISH HARDWARE", "KNOB", "HANDLE", "HINGE", "PULL"}},
	{label: CategoryPainting, anyOf: []string{"PAINT", "PRIMER", "STAIN", "WOOD FINISH", "SEAL"}},
	{label: CategoryPaneling, anyOf: []string{"PANEL", "WOOD PANEL", "WAINSCOTING"}},
	{label: CategoryWallpaper, anyOf: []string{"WALLPAPER"}},

	// floor perimeter is a wall measurement
	{label: CategoryPainting, anyOf: []string{"FLOOR PERIMETER", "PERIMETER"}},

	{label: CategoryCeramicTile, anyOf: []string{"CERAMIC TILE", "PORCELAIN TILE"}},
	{label: CategoryCarpet, anyOf: []string{"CARPET", "PAD"}},
	{label: CategoryStoneFloor, anyOf: []string{"STONE FLOOR", "MARBLE FLOOR", "GRANITE FLOOR", "TRAVERTINE"}},
	{label: CategoryWoodFloor, anyOf: []string{"HARDWOOD", "WOOD FLOOR", "OAK FLOOR", "ENGINEERED WOOD"}},
	{label: CategoryVinylFloor, anyOf: []string{"VINYL", "LVP", "LVT", "LUXURY VINYL"}},
	{label: CategoryLaminateFloor, anyOf: []string{"LAMINATE"}},
	{label: CategoryTile, anyOf: []string{"TILE", "REGROUT"}},
	{label: CategoryFloorCovering, anyOf: []string{"FLOOR", "FLOORING"}},

	{label: CategorySoffitFasciaGutter, anyOf: []string{"SOFFIT", "FASCIA", "GUTTER", "DOWNSPOUT"}},
	{label: CategoryInsulation, anyOf: []string{"INSULATION", "INSULATE", "BATT", "BLOWN-IN"}},
	{label: CategoryBathAccessories, anyOf: []string{"TOILET ACCESSORY", "BATH ACCESSORY", "TOWEL BAR", "PAPER HOLDER", "GRAB BAR"}},
}

// Categorize maps a line item description to exactly one category label.
func Categorize(description string) string {
	desc := strings.ToUpper(description)
	for _, rule := range categoryRules {
		if rule.matches(desc) {
			return rule.label
		}
	}
	return CategoryGeneral
}
