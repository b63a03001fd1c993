package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"artdirector/internal/llm/reply"

	"github.com/tidwall/gjson"
)

var (
	ErrEmptyPayload   = errors.New("upstream JSON is empty")
	ErrInvalidPayload = errors.New("upstream JSON could not be parsed")
)

// ParseUpstream reads an upstream payload pasted by the user. When the text
// contains a fenced json block, the first block's body is parsed instead of
// the whole text.
func ParseUpstream(text string) (json.RawMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyPayload
	}

	body := text
	if block, ok := reply.FirstBlock(text); ok {
		body = block.Body
	}
	body = strings.TrimSpace(body)

	var decoded any
	if err := json.Unmarshal([]byte(body), &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return json.RawMessage(body), nil
}

// ExtractOverrides pulls the inherited fields out of an upstream payload.
// Absent fields take their documented fallback. Values are read as gjson
// coerces them; type and enum checks are left to ApplyOverrides. A payload
// that is not an object, or an object with no members, yields no overrides.
func ExtractOverrides(payload json.RawMessage) Overrides {
	if len(bytes.TrimSpace(payload)) == 0 {
		return Overrides{}
	}

	doc := gjson.ParseBytes(payload)
	if !doc.IsObject() || len(doc.Map()) == 0 {
		return Overrides{}
	}
	fixed := doc.Get("fixed")

	return Overrides{
		Region:           Region(stringOr(doc.Get("region"), string(DefaultRegion))),
		City:             stringOr(doc.Get("city"), DefaultCity),
		Season:           stringOr(doc.Get("season"), DefaultSeason),
		FashionColor:     stringOr(doc.Get("fashion_color"), DefaultFashionColor),
		FashionColorName: stringOr(doc.Get("fashion_color_name"), DefaultFashionColorName),
		AspectRatio:      AspectRatio(stringOr(doc.Get("aspect_ratio"), string(DefaultAspectRatio))),
		ProjectID:        stringOr(doc.Get("project_id"), ""),
		BiometricIDs:     stringsOf(doc.Get("biometric_ids")),
		Age:              intOr(fixed.Get("age"), DefaultAge),
		Occupation:       stringOr(fixed.Get("occupation"), DefaultOccupation),
		Ethnicity:        stringOr(fixed.Get("ethnicity"), ""),
		Gender:           stringOr(fixed.Get("gender"), ""),
	}
}

func stringOr(r gjson.Result, fallback string) string {
	if !r.Exists() {
		return fallback
	}
	return r.String()
}

func intOr(r gjson.Result, fallback int) int {
	if !r.Exists() {
		return fallback
	}
	return int(r.Int())
}

func stringsOf(r gjson.Result) []string {
	if !r.Exists() {
		return []string{}
	}
	items := r.Array()
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.String())
	}
	return out
}
