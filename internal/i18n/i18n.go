// Package i18n resolves translation keys against embedded JSON bundles.
//
// Bundles are nested JSON objects; nested keys are addressed with dots
// ("messages.added"). Placeholders use the {{name}} form.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when no other language applies.
const DefaultLanguage = "en"

//go:embed locales/*.json
var embedded embed.FS

// Params holds placeholder values for Instant.
type Params map[string]any

// Translator resolves keys in the current language.
type Translator interface {
	// Instant returns the interpolated string for key.
	Instant(key string, params Params) string
	// Use switches language and returns the code actually selected.
	Use(code string) string
	// Current returns the active language code.
	Current() string
}

var placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// Bundle is a Translator over a fixed set of catalogs.
type Bundle struct {
	mu          sync.RWMutex
	catalogs    map[string]map[string]string
	codes       []string
	matcher     language.Matcher
	defaultLang string
	current     string
}

var _ Translator = (*Bundle)(nil)

// New returns a Bundle over the embedded locales with defaultLang active.
func New(defaultLang string) (*Bundle, error) {
	return NewFromFS(embedded, "locales", defaultLang)
}

// NewFromFS loads every <code>.json file in dir of fsys.
func NewFromFS(fsys fs.FS, dir, defaultLang string) (*Bundle, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}

	catalogs := make(map[string]map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != ".json" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", name, err)
		}
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", name, err)
		}
		flat := make(map[string]string)
		flatten("", raw, flat)
		catalogs[strings.TrimSuffix(name, ".json")] = flat
	}
	if len(catalogs) == 0 {
		return nil, fmt.Errorf("no locales found in %s", dir)
	}
	return newBundle(catalogs, defaultLang)
}

func newBundle(catalogs map[string]map[string]string, defaultLang string) (*Bundle, error) {
	if _, ok := catalogs[defaultLang]; !ok {
		if _, ok := catalogs[DefaultLanguage]; !ok {
			return nil, fmt.Errorf("default language %q has no catalog", defaultLang)
		}
		defaultLang = DefaultLanguage
	}

	// The default language goes first so the matcher falls back to it.
	codes := []string{defaultLang}
	rest := make([]string, 0, len(catalogs)-1)
	for code := range catalogs {
		if code != defaultLang {
			rest = append(rest, code)
		}
	}
	sort.Strings(rest)
	codes = append(codes, rest...)

	tags := make([]language.Tag, len(codes))
	for i, code := range codes {
		tags[i] = language.Make(code)
	}

	return &Bundle{
		catalogs:    catalogs,
		codes:       codes,
		matcher:     language.NewMatcher(tags),
		defaultLang: defaultLang,
		current:     defaultLang,
	}, nil
}

// flatten turns nested objects into dotted keys. Non-string leaves are
// formatted with fmt.
func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch typed := v.(type) {
		case map[string]any:
			flatten(key, typed, out)
		case string:
			out[key] = typed
		case nil:
		default:
			out[key] = fmt.Sprint(typed)
		}
	}
}

// Use switches to the bundled language closest to code. Unknown or
// unparsable codes select the default language.
func (b *Bundle) Use(code string) string {
	selected := b.resolve(code)
	b.mu.Lock()
	b.current = selected
	b.mu.Unlock()
	return selected
}

func (b *Bundle) resolve(code string) string {
	if _, ok := b.catalogs[code]; ok {
		return code
	}
	tag, err := language.Parse(code)
	if err != nil {
		return b.defaultLang
	}
	_, index, confidence := b.matcher.Match(tag)
	if confidence == language.No {
		return b.defaultLang
	}
	return b.codes[index]
}

// Current returns the active language code.
func (b *Bundle) Current() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.current
}

// Default returns the fallback language code.
func (b *Bundle) Default() string {
	return b.defaultLang
}

// Languages returns the bundled codes, default first.
func (b *Bundle) Languages() []string {
	out := make([]string, len(b.codes))
	copy(out, b.codes)
	return out
}

// Next switches to the language after the current one, wrapping around.
func (b *Bundle) Next() string {
	current := b.Current()
	next := b.codes[0]
	for i, code := range b.codes {
		if code == current {
			next = b.codes[(i+1)%len(b.codes)]
			break
		}
	}
	return b.Use(next)
}

// Instant resolves key in the current language, then the default language,
// then returns the key itself.
func (b *Bundle) Instant(key string, params Params) string {
	b.mu.RLock()
	current := b.current
	b.mu.RUnlock()

	text, ok := b.catalogs[current][key]
	if !ok {
		text, ok = b.catalogs[b.defaultLang][key]
	}
	if !ok {
		return key
	}
	return interpolate(text, params)
}

// interpolate replaces {{name}} with params[name]. Unknown names are left
// untouched.
func interpolate(text string, params Params) string {
	if len(params) == 0 || !strings.Contains(text, "{{") {
		return text
	}
	return placeholder.ReplaceAllStringFunc(text, func(m string) string {
		name := placeholder.FindStringSubmatch(m)[1]
		if v, ok := params[name]; ok {
			return fmt.Sprint(v)
		}
		return m
	})
}

// Static is a Translator that returns keys unchanged, interpolated. Useful
// where no bundle is loaded.
type Static struct{}

func (Static) Instant(key string, params Params) string { return interpolate(key, params) }
func (Static) Use(code string) string                   { return code }
func (Static) Current() string                          { return DefaultLanguage }
