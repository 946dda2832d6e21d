// Package i18n holds the localized messages attached to API error codes.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed messages/*.yaml
var messageFiles embed.FS

type messageFile struct {
	Language string            `yaml:"language"`
	Messages map[string]string `yaml:"messages"`
}

// Catalog maps error codes to messages per language. The first loaded
// language (English) is the fallback.
type Catalog struct {
	tags     []language.Tag
	messages map[language.Tag]map[string]string
	matcher  language.Matcher
}

// NewCatalog loads the embedded message files
func NewCatalog() (*Catalog, error) {
	c := &Catalog{messages: make(map[language.Tag]map[string]string)}

	// English first so it becomes the matcher default
	for _, name := range []string{"messages/en.yaml", "messages/ko.yaml"} {
		if err := c.loadFile(messageFiles, name); err != nil {
			return nil, err
		}
	}

	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

func (c *Catalog) loadFile(fsys fs.FS, name string) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	var f messageFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("unmarshal %s: %w", name, err)
	}

	tag, err := language.Parse(f.Language)
	if err != nil {
		return fmt.Errorf("%s: invalid language %q: %w", name, f.Language, err)
	}

	c.tags = append(c.tags, tag)
	c.messages[tag] = f.Messages
	return nil
}

// Message returns the message for code in the language best matching an
// Accept-Language header value. Unknown codes fall back to the default
// language, then to an empty string.
func (c *Catalog) Message(acceptLanguage, code string) string {
	tag := c.tags[0]
	if prefs, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil && len(prefs) > 0 {
		_, idx, conf := c.matcher.Match(prefs...)
		if conf != language.No {
			tag = c.tags[idx]
		}
	}

	if msg, ok := c.messages[tag][code]; ok {
		return msg
	}
	return c.messages[c.tags[0]][code]
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the process-wide catalog. The embedded files are part of
// the binary, so a load failure is a build defect and panics.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := NewCatalog()
		if err != nil {
			panic(fmt.Sprintf("i18n: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}
