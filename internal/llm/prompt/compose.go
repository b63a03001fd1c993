package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"artdirector/internal/settings"
)

// Compose renders the outbound message for one turn. The upstream payload is
// echoed as a fenced json block when present.
func Compose(r settings.Record, upstream json.RawMessage, direction string) string {
	lines := []string{
		"[STEP2_SYSTEM_OVERRIDE_DATA]",
		"Project_ID: " + r.ProjectID,
		"",
		"[STEP1_INHERITED_DATA]",
		"Region: " + string(r.Region),
		"City: " + r.City,
		"Season: " + r.Season,
		fmt.Sprintf("Model_Age: %d", r.Age),
		"Occupation: " + r.Occupation,
		"Fashion_Color: " + r.FashionColor,
		"Fashion_Color_Name: " + r.FashionColorName,
		"Aspect_Ratio: " + string(r.AspectRatio),
	}

	if echoed := indentJSON(upstream); echoed != "" {
		lines = append(lines,
			"",
			"[STEP1_JSON_BLOCK]",
			"```json",
			echoed,
			"```",
		)
	}

	lines = append(lines,
		"",
		"[STEP2_SETTINGS]",
		"Housing_Type: "+string(r.HousingType),
		"Interior_Style: "+string(r.InteriorStyle),
		"Room_Types: "+strings.Join(r.RoomTypes, ", "),
		fmt.Sprintf("Entropy_Level: %d", r.EntropyLevel),
		"Output_Preset: "+string(r.OutputPreset),
		"",
		"[USER_CREATIVE_DIRECTION]",
		direction,
	)

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// indentJSON pretty prints raw with two-space indentation, keeping the
// payload's key order and non-ASCII text as written. Empty values render as
// "" so no block is echoed for them.
func indentJSON(raw json.RawMessage) string {
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return strings.TrimSpace(string(raw))
	}
	switch compact.String() {
	case "", "null", "{}", "[]", `""`, "0", "false":
		return ""
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
