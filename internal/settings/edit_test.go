package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssign(t *testing.T) {
	base := Defaults()

	next, err := Assign(base, []string{
		"housing_type=loft",
		"room_types= Kitchen , Bathroom ,",
		"entropy_level=8",
		"age=42",
		"season=summer",
	})
	require.NoError(t, err)
	assert.Equal(t, HousingLoft, next.HousingType)
	assert.Equal(t, []string{"Kitchen", "Bathroom"}, next.RoomTypes)
	assert.Equal(t, 8, next.EntropyLevel)
	assert.Equal(t, 42, next.Age)
	assert.Equal(t, "SUMMER", next.Season)
	assert.Equal(t, DefaultCity, next.City)
	assert.Equal(t, FallbackRoomTypes, base.RoomTypes, "input untouched")
}

func TestAssign_RegionSnapsCity(t *testing.T) {
	next, err := Assign(Defaults(), []string{"region=LATAM"})
	require.NoError(t, err)
	assert.Equal(t, RegionLATAM, next.Region)
	assert.Equal(t, "Mexico City", next.City)

	next, err = Assign(Defaults(), []string{"region=LATAM", "city=Lima"})
	require.NoError(t, err)
	assert.Equal(t, "Lima", next.City)
}

func TestAssign_InvalidEnumLeftToApply(t *testing.T) {
	base := Defaults()
	edit, err := Assign(base, []string{"interior_style=BAROQUE"})
	require.NoError(t, err)

	applied := ApplyUserEdit(base, edit)
	assert.Equal(t, DefaultInteriorStyle, applied.InteriorStyle)
}

func TestAssign_Errors(t *testing.T) {
	base := Defaults()
	cases := []string{"age=old", "entropy_level=x", "colour=red", "no-equals"}
	for _, pair := range cases {
		got, err := Assign(base, []string{pair})
		assert.Error(t, err, pair)
		assert.True(t, Equal(base, got), pair)
	}
}

func TestSplitAssignments(t *testing.T) {
	cases := map[string][]string{
		"":                                       nil,
		"   ":                                    nil,
		"age=40":                                 {"age=40"},
		"region=LATAM city=Buenos Aires":         {"region=LATAM", "city=Buenos Aires"},
		"occupation=Gallery Curator age=40":      {"occupation=Gallery Curator", "age=40"},
		"room_types=Kitchen, Living Room":        {"room_types=Kitchen, Living Room"},
		"stray words city=Lima":                  {"stray words", "city=Lima"},
		"fashion_color=#112233  entropy_level=7": {"fashion_color=#112233", "entropy_level=7"},
	}
	for line, want := range cases {
		assert.Equal(t, want, SplitAssignments(line), line)
	}
}

func TestAssign_MultiWordValues(t *testing.T) {
	next, err := Assign(Defaults(), SplitAssignments("region=latam city=Buenos Aires occupation=Gallery Curator"))
	require.NoError(t, err)
	assert.Equal(t, RegionLATAM, next.Region)
	assert.Equal(t, "Buenos Aires", next.City)
	assert.Equal(t, "Gallery Curator", next.Occupation)

	_, err = Assign(Defaults(), SplitAssignments("stray city=Lima"))
	assert.EqualError(t, err, `expected field=value, got "stray"`)
}
