package settings

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Fields lists the assignable record fields by their JSON names.
var Fields = []string{
	"project_id", "region", "city", "season", "age", "occupation",
	"fashion_color", "fashion_color_name", "aspect_ratio", "housing_type",
	"interior_style", "room_types", "entropy_level", "output_preset",
}

var assignmentStart = regexp.MustCompile(`(?:^|\s)[A-Za-z_]+=`)

// SplitAssignments breaks a line of field=value pairs apart. A value runs up
// to the next word followed by "=", so "city=Buenos Aires age=40" yields two
// pairs.
func SplitAssignments(line string) []string {
	bounds := []int{0}
	for _, m := range assignmentStart.FindAllStringIndex(line, -1) {
		if m[0] > 0 {
			bounds = append(bounds, m[0])
		}
	}
	bounds = append(bounds, len(line))

	var pairs []string
	for i := 0; i+1 < len(bounds); i++ {
		if part := strings.TrimSpace(line[bounds[i]:bounds[i+1]]); part != "" {
			pairs = append(pairs, part)
		}
	}
	return pairs
}

// Assign applies "field=value" pairs to a copy of r and returns it as a
// complete edit for ApplyUserEdit. room_types takes a comma-separated list.
// When region or city is assigned the city is snapped to the region's list.
func Assign(r Record, pairs []string) (Record, error) {
	next := r.Clone()
	placeTouched := false

	for _, pair := range pairs {
		field, value, ok := strings.Cut(pair, "=")
		if !ok {
			return r, fmt.Errorf("expected field=value, got %q", pair)
		}
		field = strings.ToLower(strings.TrimSpace(field))
		value = strings.TrimSpace(value)
		if err := setField(&next, field, value); err != nil {
			return r, err
		}
		if field == "region" || field == "city" {
			placeTouched = true
		}
	}

	if placeTouched {
		next.City = CityFor(next.Region, next.City)
	}
	return next, nil
}

func setField(r *Record, field, value string) error {
	switch field {
	case "project_id":
		r.ProjectID = value
	case "region":
		r.Region = Region(strings.ToUpper(value))
	case "city":
		r.City = value
	case "season":
		r.Season = strings.ToUpper(value)
	case "age":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("age: %w", err)
		}
		r.Age = n
	case "occupation":
		r.Occupation = value
	case "fashion_color":
		r.FashionColor = value
	case "fashion_color_name":
		r.FashionColorName = value
	case "aspect_ratio":
		r.AspectRatio = AspectRatio(value)
	case "housing_type":
		r.HousingType = HousingType(strings.ToUpper(value))
	case "interior_style":
		r.InteriorStyle = InteriorStyle(strings.ToUpper(value))
	case "room_types":
		r.RoomTypes = splitList(value)
	case "entropy_level":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("entropy_level: %w", err)
		}
		r.EntropyLevel = n
	case "output_preset":
		r.OutputPreset = OutputPreset(strings.ToUpper(value))
	default:
		return fmt.Errorf("unknown field %q (known: %s)", field, strings.Join(Fields, ", "))
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
