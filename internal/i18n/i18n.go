// Package i18n supplies the translation collaborator consumed by question
// executors: locale catalogs embedded at build time, BCP-47 tag matching, and
// a small {placeholder} interpolation scheme.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the canonical source locale for catalogs.
const BaseLocale = "en"

// TranslateFunc resolves a message key for one locale, interpolating vars
// into {name} placeholders. Unknown keys fall back to the base locale, then
// to the key itself.
type TranslateFunc func(key string, vars map[string]any) string

//go:embed locales/*.yaml
var embeddedFS embed.FS

// Bundle holds all loaded locale catalogs.
type Bundle struct {
	catalogs map[string]map[string]string
	matcher  language.Matcher
	tags     []language.Tag
	locales  []string
}

// LoadEmbedded loads the catalogs compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedFS)
}

// LoadFromFS loads locale catalogs from locales/*.yaml in the given filesystem.
// File names are the locale tags (en.yaml, fr.yaml, ...).
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("i18n: glob catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("i18n: no locale catalogs found")
	}
	sort.Strings(paths)

	b := &Bundle{catalogs: make(map[string]map[string]string)}
	for _, p := range paths {
		locale := strings.TrimSuffix(path.Base(p), ".yaml")
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("i18n: catalog %s: invalid locale: %w", p, err)
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("i18n: read catalog %s: %w", p, err)
		}
		messages := make(map[string]string)
		if err := yaml.Unmarshal(data, &messages); err != nil {
			return nil, fmt.Errorf("i18n: parse catalog %s: %w", p, err)
		}
		canonical := tag.String()
		b.catalogs[canonical] = messages
		b.locales = append(b.locales, canonical)
		b.tags = append(b.tags, tag)
	}

	if _, ok := b.catalogs[BaseLocale]; !ok {
		return nil, fmt.Errorf("i18n: base locale %q catalog is missing", BaseLocale)
	}

	// The matcher prefers the base locale when nothing else matches.
	ordered := make([]language.Tag, 0, len(b.tags))
	ordered = append(ordered, language.MustParse(BaseLocale))
	for i, tag := range b.tags {
		if b.locales[i] == BaseLocale {
			continue
		}
		ordered = append(ordered, tag)
	}
	b.matcher = language.NewMatcher(ordered)
	return b, nil
}

// Locales returns the loaded locale tags, sorted.
func (b *Bundle) Locales() []string {
	out := make([]string, len(b.locales))
	copy(out, b.locales)
	sort.Strings(out)
	return out
}

// Match resolves a requested BCP-47 tag (possibly with region subtags, e.g.
// "fr-CH") to the closest loaded catalog locale.
func (b *Bundle) Match(locale string) string {
	if strings.TrimSpace(locale) == "" {
		return BaseLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return BaseLocale
	}
	// The matcher index refers to the ordered tag list built in LoadFromFS,
	// which starts with the base locale.
	_, index, _ := b.matcher.Match(tag)
	ordered := append([]string{BaseLocale}, b.nonBaseLocales()...)
	if index < 0 || index >= len(ordered) {
		return BaseLocale
	}
	return ordered[index]
}

func (b *Bundle) nonBaseLocales() []string {
	var out []string
	for _, l := range b.locales {
		if l != BaseLocale {
			out = append(out, l)
		}
	}
	return out
}

// Translator returns a TranslateFunc bound to the closest matching catalog,
// along with the locale it resolved to.
func (b *Bundle) Translator(locale string) (TranslateFunc, string) {
	resolved := b.Match(locale)
	catalog := b.catalogs[resolved]
	base := b.catalogs[BaseLocale]
	fn := func(key string, vars map[string]any) string {
		msg, ok := catalog[key]
		if !ok {
			msg, ok = base[key]
		}
		if !ok {
			msg = key
		}
		return Interpolate(msg, vars)
	}
	return fn, resolved
}

// Interpolate substitutes {name} placeholders with the formatted values.
// Placeholders without a matching var are left intact.
func Interpolate(msg string, vars map[string]any) string {
	if len(vars) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	out := msg
	for name, value := range vars {
		out = strings.ReplaceAll(out, "{"+name+"}", fmt.Sprint(value))
	}
	return out
}
