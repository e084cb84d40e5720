package pagination

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var catalogs embed.FS

// Localizer renders pagination labels in one language.
type Localizer struct {
	tag       language.Tag
	localizer *i18n.Localizer
}

// NewLocalizer returns a localizer for a BCP 47 language such as "de" or
// "en-US". Unknown or malformed languages fall back to English.
func NewLocalizer(lang string) (*Localizer, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(catalogs, "locales/*.toml")
	if err != nil {
		return nil, err
	}
	for _, name := range files {
		data, err := catalogs.ReadFile(name)
		if err != nil {
			return nil, err
		}
		if _, err := bundle.ParseMessageFileBytes(data, name); err != nil {
			return nil, fmt.Errorf("pagination: catalog %s: %w", name, err)
		}
	}

	requested, err := language.Parse(lang)
	if err != nil {
		requested = language.English
	}
	matcher := language.NewMatcher(bundle.LanguageTags())
	_, idx, confidence := matcher.Match(requested)
	tag := language.English
	if confidence != language.No {
		tag = bundle.LanguageTags()[idx]
	}

	return &Localizer{
		tag:       tag,
		localizer: i18n.NewLocalizer(bundle, tag.String()),
	}, nil
}

// Language returns the catalog language that was matched.
func (l *Localizer) Language() language.Tag {
	return l.tag
}

// Label returns the one-based "Step 2 of 3" text for a zero-based index.
func (l *Localizer) Label(index, total int) string {
	s, err := l.localizer.Localize(&i18n.LocalizeConfig{
		MessageID: "StepLabel",
		TemplateData: map[string]any{
			"Current": index + 1,
			"Total":   total,
		},
	})
	if err != nil {
		return fmt.Sprintf("%d/%d", index+1, total)
	}
	return s
}

// Count returns the pluralized scene count.
func (l *Localizer) Count(total int) string {
	s, err := l.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    "SceneCount",
		PluralCount:  total,
		TemplateData: map[string]any{"Count": total},
	})
	if err != nil {
		return fmt.Sprintf("%d", total)
	}
	return s
}
