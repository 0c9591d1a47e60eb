package templates

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/sant0-9/prompto/internal/intent"
)

// header is the YAML front matter of a user template file
type header struct {
	ID          string `yaml:"id"`
	Intent      string `yaml:"intent"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// Parse reads a user template: front matter between two "---" lines, then
// the template text. The id defaults to fallbackID. Text without a {context}
// slot gets one appended.
func Parse(data []byte, fallbackID string) (Template, error) {
	front, body, err := splitFrontMatter(data)
	if err != nil {
		return Template{}, err
	}

	var h header
	if err := yaml.Unmarshal(front, &h); err != nil {
		return Template{}, fmt.Errorf("invalid front matter: %w", err)
	}
	in, err := intent.Parse(h.Intent)
	if err != nil {
		return Template{}, err
	}

	t := Template{
		ID:          h.ID,
		Intent:      in,
		Name:        h.Name,
		Description: h.Description,
		Text:        strings.TrimSpace(body),
	}
	if t.ID == "" {
		t.ID = fallbackID
	}
	if t.Name == "" {
		t.Name = t.ID
	}
	if t.Text == "" {
		return Template{}, fmt.Errorf("template %s has no text", t.ID)
	}
	if slot := "{" + ContextPlaceholder + "}"; !strings.Contains(t.Text, slot) {
		t.Text += "\n\n" + slot
	}

	seen := map[string]bool{}
	for _, m := range placeholderPattern.FindAllStringSubmatch(t.Text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			t.Placeholders = append(t.Placeholders, m[1])
		}
	}
	return t, nil
}

func splitFrontMatter(data []byte) ([]byte, string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	var front bytes.Buffer
	var body strings.Builder

	line := 0
	inFront, closed := false, false
	for scanner.Scan() {
		text := scanner.Text()
		line++

		switch {
		case line == 1 && strings.TrimSpace(text) == "---":
			inFront = true
		case inFront && strings.TrimSpace(text) == "---":
			inFront, closed = false, true
		case inFront:
			front.WriteString(text)
			front.WriteByte('\n')
		default:
			body.WriteString(text)
			body.WriteByte('\n')
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, "", err
	}
	if !closed {
		return nil, "", fmt.Errorf("missing front matter")
	}
	return front.Bytes(), body.String(), nil
}

// LoadDir loads every *.md file in dir, sorted by file name. A missing
// directory holds no templates; unreadable or invalid files are skipped.
func LoadDir(dir string) ([]Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var out []Template
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Skipping unreadable template")
			continue
		}
		t, err := Parse(data, strings.TrimSuffix(entry.Name(), ".md"))
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Skipping invalid template")
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// Catalog is the built-in templates plus user templates. User templates
// come first for their intent, and one with a built-in id replaces it.
type Catalog struct {
	entries []Template
}

func NewCatalog(user []Template) *Catalog {
	ids := map[string]bool{}
	entries := make([]Template, 0, len(user)+len(catalog))
	for _, t := range user {
		if ids[t.ID] {
			continue
		}
		ids[t.ID] = true
		entries = append(entries, t)
	}
	for _, t := range catalog {
		if !ids[t.ID] {
			entries = append(entries, t)
		}
	}
	return &Catalog{entries: entries}
}

func (c *Catalog) All() []Template {
	out := make([]Template, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Catalog) ByIntent(i intent.Intent) []Template {
	var out []Template
	for _, t := range c.entries {
		if t.Intent == i {
			out = append(out, t)
		}
	}
	return out
}

func (c *Catalog) ByID(id string) (Template, bool) {
	for _, t := range c.entries {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
