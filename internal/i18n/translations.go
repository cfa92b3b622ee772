package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"github.com/dgallion1/plaintext/internal/component"
	"github.com/dgallion1/plaintext/internal/metrics"
	"github.com/dgallion1/plaintext/internal/serializer/plain"
)

//go:embed locales/active.*.toml
var localeFS embed.FS

// ErrMissingTranslation is returned by strict resolvers when a key has no
// message in any loaded locale.
var ErrMissingTranslation = errors.New("i18n: missing translation")

// Options configures a Translator.
type Options struct {
	// DefaultLocale is the bundle's fallback language, e.g. "en".
	DefaultLocale string
	// Messages holds additional active.*.toml files loaded after the
	// embedded ones. May be nil.
	Messages fs.FS
	// Strict makes resolvers fail on keys with no message instead of
	// rendering the key itself.
	Strict bool
}

// Translator is a thin wrapper around go-i18n's Bundle that hands out
// plain.TranslationResolver values for a fixed locale.
type Translator struct {
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
	strict          bool
	log             *slog.Logger
}

// NewTranslator builds a Translator from the embedded message files and any
// extra files in opts.Messages.
func NewTranslator(opts Options, log *slog.Logger) (*Translator, error) {
	tag, err := language.Parse(opts.DefaultLocale)
	if err != nil {
		tag = language.English
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	if err := loadMessageFiles(bundle, localeFS, "locales/active.*.toml"); err != nil {
		return nil, err
	}
	if opts.Messages != nil {
		if err := loadMessageFiles(bundle, opts.Messages, "active.*.toml"); err != nil {
			return nil, err
		}
	}

	return &Translator{
		bundle:          bundle,
		defaultLanguage: tag,
		strict:          opts.Strict,
		log:             log,
	}, nil
}

func loadMessageFiles(bundle *i18n.Bundle, fsys fs.FS, pattern string) error {
	files, err := fs.Glob(fsys, pattern)
	if err != nil {
		return fmt.Errorf("glob %s: %w", pattern, err)
	}
	for _, file := range files {
		if _, err := bundle.LoadMessageFileFS(fsys, file); err != nil {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

// DefaultLanguage returns the bundle's fallback language.
func (t *Translator) DefaultLanguage() language.Tag {
	return t.defaultLanguage
}

// Languages returns every language with at least one loaded message.
func (t *Translator) Languages() []language.Tag {
	return t.bundle.LanguageTags()
}

// Resolver returns a resolver rendering translatable components in locale,
// falling back to the default language and then to the key itself. An
// empty locale selects the default language. Format arguments are not
// substituted.
func (t *Translator) Resolver(locale string) plain.TranslationResolver {
	languages := []string{}
	if locale != "" {
		languages = append(languages, locale)
	}
	languages = append(languages, t.defaultLanguage.String())
	localizer := i18n.NewLocalizer(t.bundle, languages...)
	label := t.metricLabel(locale)

	return func(c *component.TranslatableComponent) (string, error) {
		key := c.Key()
		if key == "" {
			return "", nil
		}

		msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: key})
		switch {
		case err == nil:
			metrics.TranslationsResolved.WithLabelValues(label, "hit").Inc()
			return msg, nil
		case msg != "":
			// Found only in a fallback language.
			metrics.TranslationsResolved.WithLabelValues(label, "fallback").Inc()
			return msg, nil
		}

		metrics.TranslationsResolved.WithLabelValues(label, "missing").Inc()
		if t.strict {
			return "", fmt.Errorf("%w: key=%s locales=%v", ErrMissingTranslation, key, languages)
		}
		t.log.Debug("i18n: localize failed", "key", key, "locales", languages, "error", err)
		return key, nil
	}
}

// metricLabel maps a requested locale onto one of the loaded languages so
// request input cannot grow label cardinality.
func (t *Translator) metricLabel(locale string) string {
	if locale == "" {
		return t.defaultLanguage.String()
	}
	tags := t.bundle.LanguageTags()
	_, idx, confidence := language.NewMatcher(tags).Match(language.Make(locale))
	if confidence == language.No {
		return t.defaultLanguage.String()
	}
	return tags[idx].String()
}
