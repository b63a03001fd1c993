// Package reply splits generated text into an embedded JSON handoff and the
// prose shown to the user.
package reply

import (
	"encoding/json"
	"regexp"
	"strings"
)

// fencedJSON matches a ```json fenced block, capturing the shortest body.
var fencedJSON = regexp.MustCompile("(?is)```json\\s*(.*?)\\s*```")

// Block is one fenced json block located in a text.
type Block struct {
	Start int
	End   int
	Body  string
}

// Parsed is the outcome of splitting one model reply.
type Parsed struct {
	// Payload is the decoded JSON value; nil when nothing was extracted.
	Payload any    `json:"payload,omitempty"`
	Found   bool   `json:"found"`
	Text    string `json:"text"`
}

// Blocks returns every non-overlapping fenced json block in document order.
func Blocks(text string) []Block {
	matches := fencedJSON.FindAllStringSubmatchIndex(text, -1)
	blocks := make([]Block, 0, len(matches))
	for _, m := range matches {
		blocks = append(blocks, Block{
			Start: m[0],
			End:   m[1],
			Body:  strings.TrimSpace(text[m[2]:m[3]]),
		})
	}
	return blocks
}

// FirstBlock returns the first fenced json block regardless of whether its
// body parses.
func FirstBlock(text string) (Block, bool) {
	m := fencedJSON.FindStringSubmatchIndex(text)
	if m == nil {
		return Block{}, false
	}
	return Block{Start: m[0], End: m[1], Body: strings.TrimSpace(text[m[2]:m[3]])}, true
}

// Parse extracts the first fenced json block whose body decodes. On success
// the block, fences included, is cut from the text and the rest is trimmed.
// When no block decodes the text is returned byte for byte.
func Parse(text string) Parsed {
	for _, block := range Blocks(text) {
		var payload any
		if err := json.Unmarshal([]byte(block.Body), &payload); err != nil {
			continue
		}
		return Parsed{
			Payload: payload,
			Found:   true,
			Text:    strings.TrimSpace(text[:block.Start] + text[block.End:]),
		}
	}
	return Parsed{Text: text}
}
