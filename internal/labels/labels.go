// ABOUTME: Canonical display text for profile enums, BMI categories and field names.
// ABOUTME: One embedded JSON table per language shared by the CLI, MCP and prompt renderer.
package labels

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/harperreed/fitplan/internal/models"
)

// Lang is a supported display language.
type Lang string

const (
	Korean  Lang = "ko"
	English Lang = "en"

	// Default is used when no language is configured.
	Default = Korean
)

//go:embed locales/*.json
var localesFS embed.FS

var tables = mustLoad()

func mustLoad() map[Lang]map[string]string {
	out, err := load()
	if err != nil {
		panic(fmt.Sprintf("labels: %v", err))
	}
	return out
}

func load() (map[Lang]map[string]string, error) {
	entries, err := localesFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales dir: %w", err)
	}

	out := make(map[Lang]map[string]string, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if path.Ext(name) != ".json" {
			continue
		}
		content, err := localesFS.ReadFile(path.Join("locales", name))
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", name, err)
		}
		messages := map[string]string{}
		if err := json.Unmarshal(content, &messages); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", name, err)
		}
		out[Lang(strings.TrimSuffix(name, ".json"))] = messages
	}

	if _, ok := out[Default]; !ok {
		return nil, fmt.Errorf("required locale %q missing", Default)
	}
	return out, nil
}

// Supported returns the available languages in sorted order.
func Supported() []Lang {
	langs := make([]Lang, 0, len(tables))
	for l := range tables {
		langs = append(langs, l)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })
	return langs
}

// Parse normalizes s into a supported language.
func Parse(s string) (Lang, error) {
	l := Lang(strings.ToLower(strings.TrimSpace(s)))
	if l == "" {
		return Default, nil
	}
	if _, ok := tables[l]; !ok {
		return "", fmt.Errorf("unsupported language: %q", s)
	}
	return l, nil
}

// Text returns the message for key in lang. Unknown languages fall back to
// the default table. ok is false when the key is missing everywhere.
func Text(lang Lang, key string) (string, bool) {
	if table, found := tables[lang]; found {
		if msg, ok := table[key]; ok {
			return msg, true
		}
	}
	msg, ok := tables[Default][key]
	return msg, ok
}

func lookup(lang Lang, key string) string {
	if msg, ok := Text(lang, key); ok {
		return msg
	}
	return key
}

// Gender returns the display text for g.
func Gender(lang Lang, g models.Gender) string {
	return lookup(lang, "gender."+string(g))
}

// ActivityLevel returns the display text for a.
func ActivityLevel(lang Lang, a models.ActivityLevel) string {
	return lookup(lang, "activity."+string(a))
}

// Goal returns the display text for g.
func Goal(lang Lang, g models.Goal) string {
	return lookup(lang, "goal."+string(g))
}

// BMICategory returns the display text for a BMI category key.
func BMICategory(lang Lang, category string) string {
	return lookup(lang, "bmi."+category)
}

// Field returns the display name of a profile field.
func Field(lang Lang, field string) string {
	return lookup(lang, "field."+field)
}

// Placeholder returns the text substituted for an empty free-text field.
func Placeholder(lang Lang, field string) string {
	return lookup(lang, "placeholder."+field)
}
