package settings

import "slices"

// Region is the market a shoot is styled for.
type Region string

const (
	RegionEU    Region = "EU"
	RegionLATAM Region = "LATAM"
)

// RegionOptions lists regions in display order.
var RegionOptions = []Region{RegionEU, RegionLATAM}

// RegionLabels holds display labels per region.
var RegionLabels = map[Region]string{
	RegionEU:    "EU (Europe)",
	RegionLATAM: "LATAM (Latin America)",
}

func (r Region) Valid() bool { return slices.Contains(RegionOptions, r) }

// CityOptions lists the cities offered for each region. The first entry is
// the region's default pick.
var CityOptions = map[Region][]string{
	RegionEU: {
		"Paris", "London", "Rome", "Barcelona", "Amsterdam", "Berlin",
		"Prague", "Vienna", "Madrid", "Florence", "Venice", "Lisbon",
		"Athens", "Munich", "Budapest", "Brussels", "Zurich", "Copenhagen",
	},
	RegionLATAM: {
		"Mexico City", "São Paulo", "Buenos Aires", "Rio de Janeiro",
		"Bogotá", "Lima", "Santiago", "Medellín", "Cusco", "Havana",
		"Cartagena", "Quito", "Panama City", "Montevideo",
	},
}

// CityFor returns city when it belongs to region, otherwise the region's
// first city. Unknown regions return city unchanged.
func CityFor(region Region, city string) string {
	cities, ok := CityOptions[region]
	if !ok || len(cities) == 0 {
		return city
	}
	if slices.Contains(cities, city) {
		return city
	}
	return cities[0]
}

// AspectRatio is the output frame ratio.
type AspectRatio string

const (
	AspectPortrait AspectRatio = "9:16"
	AspectWide     AspectRatio = "16:9"
	AspectLookbook AspectRatio = "4:5"
	AspectSquare   AspectRatio = "1:1"
)

var AspectRatioOptions = []AspectRatio{AspectPortrait, AspectWide, AspectLookbook, AspectSquare}

var AspectRatioLabels = map[AspectRatio]string{
	AspectPortrait: "9:16 (portrait)",
	AspectWide:     "16:9 (wide)",
	AspectLookbook: "4:5 (lookbook)",
	AspectSquare:   "1:1 (square)",
}

func (a AspectRatio) Valid() bool { return slices.Contains(AspectRatioOptions, a) }

// HousingType is the dwelling category the interiors are drawn from.
type HousingType string

const (
	HousingStudio    HousingType = "STUDIO"
	HousingApartment HousingType = "APARTMENT"
	HousingLoft      HousingType = "LOFT"
	HousingVilla     HousingType = "VILLA"
	HousingPenthouse HousingType = "PENTHOUSE"
)

var HousingTypeOptions = []HousingType{HousingStudio, HousingApartment, HousingLoft, HousingVilla, HousingPenthouse}

var HousingTypeLabels = map[HousingType]string{
	HousingStudio:    "Studio (20-35㎡)",
	HousingApartment: "Apartment (60-90㎡)",
	HousingLoft:      "Loft (80-120㎡)",
	HousingVilla:     "Villa (150㎡+)",
	HousingPenthouse: "Penthouse (150㎡+)",
}

func (h HousingType) Valid() bool { return slices.Contains(HousingTypeOptions, h) }

// InteriorStyle is the decor vocabulary applied to every room.
type InteriorStyle string

const (
	StyleParis         InteriorStyle = "PARIS_STYLE"
	StyleLondon        InteriorStyle = "LONDON_STYLE"
	StyleMilan         InteriorStyle = "MILAN_STYLE"
	StyleBerlin        InteriorStyle = "BERLIN_STYLE"
	StyleScandi        InteriorStyle = "SCANDI_STYLE"
	StyleVienna        InteriorStyle = "VIENNA_STYLE"
	StyleMediterranean InteriorStyle = "MEDITERRANEAN_EU"
	StyleDutch         InteriorStyle = "DUTCH_STYLE"
	StyleMexico        InteriorStyle = "MEXICO_STYLE"
	StyleBrazil        InteriorStyle = "BRAZIL_STYLE"
	StyleArgentina     InteriorStyle = "ARGENTINA_STYLE"
	StyleLatamModern   InteriorStyle = "LATAM_MODERN"
)

var InteriorStyleOptions = []InteriorStyle{
	StyleParis, StyleLondon, StyleMilan, StyleBerlin,
	StyleScandi, StyleVienna, StyleMediterranean, StyleDutch,
	StyleMexico, StyleBrazil, StyleArgentina, StyleLatamModern,
}

var InteriorStyleLabels = map[InteriorStyle]string{
	StyleParis:         "Paris",
	StyleLondon:        "London",
	StyleMilan:         "Milan",
	StyleBerlin:        "Berlin",
	StyleScandi:        "Scandinavian",
	StyleVienna:        "Vienna",
	StyleMediterranean: "Mediterranean",
	StyleDutch:         "Dutch",
	StyleMexico:        "Mexico",
	StyleBrazil:        "Brazil",
	StyleArgentina:     "Argentina",
	StyleLatamModern:   "Latin modern",
}

func (s InteriorStyle) Valid() bool { return slices.Contains(InteriorStyleOptions, s) }

// OutputPreset tunes how the generated prompt is shaped for later steps.
type OutputPreset string

const (
	PresetBasic          OutputPreset = "BASIC"
	PresetDetailPlus     OutputPreset = "DETAIL_PLUS"
	PresetNegativePlus   OutputPreset = "NEGATIVE_PLUS"
	PresetCompositeReady OutputPreset = "COMPOSITE_READY"
)

var OutputPresetOptions = []OutputPreset{PresetBasic, PresetDetailPlus, PresetNegativePlus, PresetCompositeReady}

var OutputPresetLabels = map[OutputPreset]string{
	PresetBasic:          "Basic",
	PresetDetailPlus:     "Detail plus",
	PresetNegativePlus:   "Negative space plus",
	PresetCompositeReady: "Composite ready",
}

func (p OutputPreset) Valid() bool { return slices.Contains(OutputPresetOptions, p) }

// RoomTypeOptions lists the room categories a quad layout can draw from.
var RoomTypeOptions = []string{"Kitchen", "Living", "Bedroom", "Laundry", "Bathroom", "Study", "Dining"}

// FallbackRoomTypes replaces an empty room selection.
var FallbackRoomTypes = []string{"Kitchen", "Living", "Bedroom", "Laundry"}

const (
	MinEntropy = 1
	MaxEntropy = 10
)

// EntropyCaption describes the object density of an entropy level.
func EntropyCaption(level int) string {
	switch {
	case level < MinEntropy || level > MaxEntropy:
		return ""
	case level <= 2:
		return "ultra minimal (1-5 objects)"
	case level <= 4:
		return "minimal (5-10 objects)"
	case level <= 6:
		return "curated (15-25 objects, default)"
	case level <= 8:
		return "abundant (30-50 objects)"
	default:
		return "maximalist (60+ objects)"
	}
}
