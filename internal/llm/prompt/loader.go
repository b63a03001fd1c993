// Package prompt builds the text exchanged with the model: the system
// instruction assembled from prompt files and the per-turn composed message.
package prompt

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"artdirector/internal/utils"

	"github.com/rs/zerolog/log"
	"github.com/yargevad/filepathx"
)

const (
	SystemTitle   = "Art Director System STEP 2"
	SystemVersion = "5.9.0"

	// IndexFile optionally lists prompt files, one per line, in load order.
	IndexFile = "INDEX.txt"

	sectionSeparator = "\n\n---\n\n"
)

// DefaultFiles is the load order of the embedded prompt set.
var DefaultFiles = []string{
	"00_step2_core_rules.md",
	"10_step2_logic_physics.md",
	"20_step2_output_handoff_qa.md",
}

// embeddedPrompts holds the built-in instruction files.
//
//go:embed prompts/*.md
var embeddedPrompts embed.FS

var htmlComment = regexp.MustCompile(`(?s)<!--.*?-->`)

// Loader concatenates instruction files into one system instruction.
type Loader struct {
	fsys  fs.FS
	files []string
}

// NewEmbeddedLoader reads the prompt set compiled into the binary.
func NewEmbeddedLoader() *Loader {
	sub, err := fs.Sub(embeddedPrompts, "prompts")
	if err != nil {
		// prompts/ is embedded at build time; Sub only fails on a bad path.
		panic(err)
	}
	return &Loader{fsys: sub, files: DefaultFiles}
}

// NewDirLoader reads prompt files from dir. The order comes from dir's
// INDEX.txt when present, otherwise every *.md below dir in lexical order.
func NewDirLoader(dir string) (*Loader, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("prompt directory is required")
	}
	if !utils.DirectoryExists(dir) {
		return nil, &fs.PathError{Op: "open", Path: dir, Err: fs.ErrNotExist}
	}

	files, err := utils.ReadListFile(filepath.Join(dir, IndexFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if len(files) == 0 {
		files, err = globMarkdown(dir)
		if err != nil {
			return nil, err
		}
	}
	return &Loader{fsys: os.DirFS(dir), files: files}, nil
}

func globMarkdown(dir string) ([]string, error) {
	matches, err := filepathx.Glob(filepath.Join(dir, "**", "*.md"))
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(matches))
	for _, m := range matches {
		rel, err := filepath.Rel(dir, m)
		if err != nil {
			return nil, err
		}
		files = append(files, filepath.ToSlash(rel))
	}
	sort.Strings(files)
	return files, nil
}

// Files returns the ordered file list the loader reads.
func (l *Loader) Files() []string {
	out := make([]string, len(l.files))
	copy(out, l.files)
	return out
}

// Load returns the joined instruction text. Missing or empty files are
// skipped; when nothing loads a placeholder naming the system is returned.
func (l *Loader) Load() string {
	parts := make([]string, 0, len(l.files))
	for _, name := range l.files {
		content, err := l.loadFile(name)
		if err != nil {
			log.Warn().Err(err).Str("file", name).Msg("prompt: skipping unreadable prompt file")
			continue
		}
		if content != "" {
			parts = append(parts, content)
		}
	}

	if len(parts) == 0 {
		return SystemTitle + " v" + SystemVersion + " - Prompt files not found"
	}
	return strings.Join(parts, sectionSeparator)
}

func (l *Loader) loadFile(name string) (string, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return "", err
	}
	return CleanText(string(data)), nil
}

// CleanText removes HTML comments and surrounding whitespace.
func CleanText(s string) string {
	return strings.TrimSpace(htmlComment.ReplaceAllString(s, ""))
}
