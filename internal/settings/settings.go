// Package settings resolves the per-session styling record from hard defaults,
// an upstream payload and direct user edits.
package settings

import (
	"fmt"
	"slices"
	"strings"
)

const (
	DefaultProjectID        = "LG_AD_2026_STEP2_01"
	DefaultRegion           = RegionEU
	DefaultCity             = "Paris"
	DefaultSeason           = "WINTER"
	DefaultAge              = 35
	DefaultOccupation       = "Gallery Curator"
	DefaultFashionColor     = "#C19A6B"
	DefaultFashionColorName = "Camel"
	DefaultAspectRatio      = AspectLookbook
	DefaultHousingType      = HousingApartment
	DefaultInteriorStyle    = StyleParis
	DefaultEntropyLevel     = 5
	DefaultOutputPreset     = PresetBasic
)

// Record is the canonical styling configuration for one session.
type Record struct {
	ProjectID        string        `json:"project_id"`
	Region           Region        `json:"region"`
	City             string        `json:"city"`
	Season           string        `json:"season"`
	Age              int           `json:"age"`
	Occupation       string        `json:"occupation"`
	FashionColor     string        `json:"fashion_color"`
	FashionColorName string        `json:"fashion_color_name"`
	AspectRatio      AspectRatio   `json:"aspect_ratio"`
	HousingType      HousingType   `json:"housing_type"`
	InteriorStyle    InteriorStyle `json:"interior_style"`
	RoomTypes        []string      `json:"room_types"`
	EntropyLevel     int           `json:"entropy_level"`
	OutputPreset     OutputPreset  `json:"output_preset"`
}

// Defaults returns the baseline record every session starts from.
func Defaults() Record {
	return Record{
		ProjectID:        DefaultProjectID,
		Region:           DefaultRegion,
		City:             DefaultCity,
		Season:           DefaultSeason,
		Age:              DefaultAge,
		Occupation:       DefaultOccupation,
		FashionColor:     DefaultFashionColor,
		FashionColorName: DefaultFashionColorName,
		AspectRatio:      DefaultAspectRatio,
		HousingType:      DefaultHousingType,
		InteriorStyle:    DefaultInteriorStyle,
		RoomTypes:        slices.Clone(FallbackRoomTypes),
		EntropyLevel:     DefaultEntropyLevel,
		OutputPreset:     DefaultOutputPreset,
	}
}

// Clone returns a copy that shares no backing arrays with r.
func (r Record) Clone() Record {
	r.RoomTypes = slices.Clone(r.RoomTypes)
	return r
}

// Overrides carries field values pulled from an override source. A zero
// field means "not supplied" and never replaces the current value.
type Overrides struct {
	ProjectID        string
	Region           Region
	City             string
	Season           string
	Age              int
	Occupation       string
	FashionColor     string
	FashionColorName string
	AspectRatio      AspectRatio
	HousingType      HousingType
	InteriorStyle    InteriorStyle
	RoomTypes        []string
	EntropyLevel     int
	OutputPreset     OutputPreset

	// Carried from the payload but not part of Record.
	BiometricIDs []string
	Ethnicity    string
	Gender       string
}

// ApplyOverrides returns a copy of current with every non-empty override
// applied. Enumerated values outside their closed set are dropped and the
// current value is kept.
func ApplyOverrides(current Record, o Overrides) Record {
	next := current.Clone()

	if o.ProjectID != "" {
		next.ProjectID = o.ProjectID
	}
	if o.Region != "" && o.Region.Valid() {
		next.Region = o.Region
	}
	if o.City != "" {
		next.City = o.City
	}
	if o.Season != "" {
		next.Season = o.Season
	}
	if o.Age != 0 {
		next.Age = o.Age
	}
	if o.Occupation != "" {
		next.Occupation = o.Occupation
	}
	if o.FashionColor != "" {
		next.FashionColor = o.FashionColor
	}
	if o.FashionColorName != "" {
		next.FashionColorName = o.FashionColorName
	}
	if o.AspectRatio != "" && o.AspectRatio.Valid() {
		next.AspectRatio = o.AspectRatio
	}
	if o.HousingType != "" && o.HousingType.Valid() {
		next.HousingType = o.HousingType
	}
	if o.InteriorStyle != "" && o.InteriorStyle.Valid() {
		next.InteriorStyle = o.InteriorStyle
	}
	if len(o.RoomTypes) > 0 {
		next.RoomTypes = slices.Clone(o.RoomTypes)
	}
	if o.EntropyLevel != 0 {
		next.EntropyLevel = ClampEntropy(o.EntropyLevel)
	}
	if o.OutputPreset != "" && o.OutputPreset.Valid() {
		next.OutputPreset = o.OutputPreset
	}
	return next
}

// ApplyUserEdit overwrites current with a complete edited record, then
// restores the record invariants: enum fields outside their set keep the
// current value, an empty room list becomes FallbackRoomTypes and the
// entropy level is clamped.
func ApplyUserEdit(current Record, edit Record) Record {
	next := edit.Clone()

	if !next.Region.Valid() {
		next.Region = current.Region
	}
	if !next.AspectRatio.Valid() {
		next.AspectRatio = current.AspectRatio
	}
	if !next.HousingType.Valid() {
		next.HousingType = current.HousingType
	}
	if !next.InteriorStyle.Valid() {
		next.InteriorStyle = current.InteriorStyle
	}
	if !next.OutputPreset.Valid() {
		next.OutputPreset = current.OutputPreset
	}
	if len(next.RoomTypes) == 0 {
		next.RoomTypes = slices.Clone(FallbackRoomTypes)
	}
	next.EntropyLevel = ClampEntropy(next.EntropyLevel)
	return next
}

// ClampEntropy pins level into [MinEntropy, MaxEntropy].
func ClampEntropy(level int) int {
	return min(max(level, MinEntropy), MaxEntropy)
}

// Equal reports whether a and b hold the same value in every field.
func Equal(a, b Record) bool {
	return a.ProjectID == b.ProjectID &&
		a.Region == b.Region &&
		a.City == b.City &&
		a.Season == b.Season &&
		a.Age == b.Age &&
		a.Occupation == b.Occupation &&
		a.FashionColor == b.FashionColor &&
		a.FashionColorName == b.FashionColorName &&
		a.AspectRatio == b.AspectRatio &&
		a.HousingType == b.HousingType &&
		a.InteriorStyle == b.InteriorStyle &&
		slices.Equal(a.RoomTypes, b.RoomTypes) &&
		a.EntropyLevel == b.EntropyLevel &&
		a.OutputPreset == b.OutputPreset
}

// Changed is a display hint only; merge results never depend on it.
func Changed(before, after Record) bool {
	return !Equal(before, after)
}

// ContextSummary renders the record as the short context banner shown above
// the conversation.
func ContextSummary(r Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Region: %s / City: %s / %d / %s\n", labelOr(RegionLabels, r.Region), r.City, r.Age, r.Occupation)
	fmt.Fprintf(&b, "Fashion color: %s (%s) / Ratio: %s\n", r.FashionColorName, r.FashionColor, labelOr(AspectRatioLabels, r.AspectRatio))
	fmt.Fprintf(&b, "%s / %s / Rooms: %s / Entropy: %d %s / Preset: %s",
		labelOr(HousingTypeLabels, r.HousingType),
		labelOr(InteriorStyleLabels, r.InteriorStyle),
		strings.Join(r.RoomTypes, ", "),
		r.EntropyLevel,
		"("+EntropyCaption(r.EntropyLevel)+")",
		labelOr(OutputPresetLabels, r.OutputPreset),
	)
	return b.String()
}

func labelOr[K ~string](labels map[K]string, key K) string {
	if label, ok := labels[key]; ok {
		return label
	}
	return string(key)
}
