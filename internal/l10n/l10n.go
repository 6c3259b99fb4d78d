// Package l10n provides the user-facing string table.
package l10n

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// String keys.
const (
	Hello             = "hello"
	ShowMore          = "show_more"
	ShowLess          = "show_less"
	OnboardingMessage = "onboarding_message"
	ContinueButton    = "continue_button"
)

//go:embed strings.yaml
var stringsYAML []byte

// Catalog holds every translation and matches requested locales against them.
type Catalog struct {
	tables  map[string]map[string]string
	matcher language.Matcher
}

// Table is the resolved string table for one locale.
type Table struct {
	Tag      language.Tag
	strings  map[string]string
	fallback map[string]string
}

// NewCatalog parses the embedded string tables.
func NewCatalog() (*Catalog, error) {
	return ParseCatalog(stringsYAML)
}

// ParseCatalog parses YAML of the form {locale: {key: text}}. English is
// required; it is the fallback for missing keys and unmatched locales.
func ParseCatalog(data []byte) (*Catalog, error) {
	var raw map[string]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse string table: %w", err)
	}

	c := &Catalog{tables: make(map[string]map[string]string, len(raw))}
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	// English first: the matcher falls back to its first tag.
	tags := []language.Tag{language.English}
	for _, name := range names {
		tag, err := language.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("string table locale %q: %w", name, err)
		}
		key := baseTag(tag).String()
		if _, dup := c.tables[key]; dup {
			return nil, fmt.Errorf("string table locale %q declared twice", key)
		}
		c.tables[key] = raw[name]
		if key != "en" {
			tags = append(tags, tag)
		}
	}
	if _, ok := c.tables["en"]; !ok {
		return nil, fmt.Errorf("string table has no %q entries", "en")
	}
	c.matcher = language.NewMatcher(tags)
	return c, nil
}

// Lookup resolves the table for locale. An empty locale is detected from the
// environment.
func (c *Catalog) Lookup(locale string) *Table {
	if strings.TrimSpace(locale) == "" {
		locale = EnvLocale()
	}
	tag, _ := language.MatchStrings(c.matcher, locale)
	base := baseTag(tag)
	table, ok := c.tables[base.String()]
	if !ok {
		base = language.English
		table = c.tables["en"]
	}
	return &Table{Tag: base, strings: table, fallback: c.tables["en"]}
}

// MustTable resolves locale against the embedded catalog. It panics if the
// embedded tables are malformed.
func MustTable(locale string) *Table {
	c, err := NewCatalog()
	if err != nil {
		panic(err)
	}
	return c.Lookup(locale)
}

// Get returns the text for key, falling back to English and then to the key.
func (t *Table) Get(key string) string {
	if s, ok := t.strings[key]; ok {
		return s
	}
	if s, ok := t.fallback[key]; ok {
		return s
	}
	return key
}

// EnvLocale reads the POSIX locale variables, e.g. "es_ES.UTF-8" -> "es-ES".
func EnvLocale() string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		v := os.Getenv(name)
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		return strings.ReplaceAll(v, "_", "-")
	}
	return ""
}

// baseTag strips regions and extensions the matcher may attach, e.g. "es-u-rg-eszzzz".
func baseTag(tag language.Tag) language.Tag {
	b, _ := tag.Base()
	t, err := language.Compose(b)
	if err != nil {
		return language.English
	}
	return t
}
