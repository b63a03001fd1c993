package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"artdirector/internal/llm/reply"
	"artdirector/internal/settings"
)

const rule = "────────────────────────────────────────"

func printReply(w io.Writer, parsed reply.Parsed) {
	if parsed.Found {
		fmt.Fprintln(w, "STEP 3 handoff (JSON)")
		fmt.Fprintln(w, rule)
		fmt.Fprintln(w, prettyJSON(parsed.Payload))
		fmt.Fprintln(w, rule)
	}
	if strings.TrimSpace(parsed.Text) != "" {
		fmt.Fprintln(w, parsed.Text)
	}
}

func printSettings(w io.Writer, r settings.Record) {
	fmt.Fprintln(w, settings.ContextSummary(r))
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "project_id=%s\n", r.ProjectID)
	fmt.Fprintf(w, "region=%s city=%s season=%s\n", r.Region, r.City, r.Season)
	fmt.Fprintf(w, "age=%d occupation=%s\n", r.Age, r.Occupation)
	fmt.Fprintf(w, "fashion_color=%s fashion_color_name=%s aspect_ratio=%s\n", r.FashionColor, r.FashionColorName, r.AspectRatio)
	fmt.Fprintf(w, "housing_type=%s interior_style=%s\n", r.HousingType, r.InteriorStyle)
	fmt.Fprintf(w, "room_types=%s entropy_level=%d output_preset=%s\n", strings.Join(r.RoomTypes, ","), r.EntropyLevel, r.OutputPreset)
}

func prettyJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
