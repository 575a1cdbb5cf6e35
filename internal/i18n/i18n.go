// Package i18n localizes learner-facing feedback for every front end.
package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/abhisek/mathdrill/internal/answer"
)

//go:embed locales/*.json
var localeFS embed.FS

var (
	loadOnce sync.Once
	bundle   *i18n.Bundle
	matcher  language.Matcher
)

// languageNames are the English names passed to the explainer.
var languageNames = map[string]string{
	"en": "English",
	"es": "Spanish",
}

type ctxKey struct{}

// Bundle returns the message bundle, loading the embedded locales on
// first use. English is the fallback language.
func Bundle() *i18n.Bundle {
	loadOnce.Do(func() {
		bundle = i18n.NewBundle(language.English)
		bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

		entries, err := localeFS.ReadDir("locales")
		if err != nil {
			panic(fmt.Sprintf("read embedded locales: %v", err))
		}
		for _, e := range entries {
			data, err := localeFS.ReadFile("locales/" + e.Name())
			if err != nil {
				panic(fmt.Sprintf("read locale %s: %v", e.Name(), err))
			}
			bundle.MustParseMessageFileBytes(data, e.Name())
		}
		matcher = language.NewMatcher(bundle.LanguageTags())
		slog.Debug("locales loaded", "languages", len(entries))
	})
	return bundle
}

// Match picks the best supported language for the given preferences,
// which may be tags ("es-MX") or Accept-Language values.
func Match(prefs ...string) language.Tag {
	Bundle()
	tag, _ := language.MatchStrings(matcher, prefs...)
	base, _ := tag.Base()
	return language.Make(base.String())
}

// Supported lists the languages with a locale file.
func Supported() []language.Tag {
	return Bundle().LanguageTags()
}

// LanguageName returns the English name of tag's base language.
func LanguageName(tag language.Tag) string {
	base, _ := tag.Base()
	if n, ok := languageNames[base.String()]; ok {
		return n
	}
	return "English"
}

// NewLocalizer returns a localizer preferring langs in order.
func NewLocalizer(langs ...string) *i18n.Localizer {
	return i18n.NewLocalizer(Bundle(), langs...)
}

// WithLocalizer stores loc in ctx.
func WithLocalizer(ctx context.Context, loc *i18n.Localizer) context.Context {
	return context.WithValue(ctx, ctxKey{}, loc)
}

// Context returns a background context localized for lang.
func Context(lang string) context.Context {
	return WithLocalizer(context.Background(), NewLocalizer(lang))
}

func localizer(ctx context.Context) *i18n.Localizer {
	if loc, ok := ctx.Value(ctxKey{}).(*i18n.Localizer); ok {
		return loc
	}
	return NewLocalizer("en")
}

func localize(ctx context.Context, cfg *i18n.LocalizeConfig) string {
	s, err := localizer(ctx).Localize(cfg)
	if err != nil {
		slog.Warn("missing translation", "id", cfg.MessageID, "error", err)
		return cfg.MessageID
	}
	return s
}

// T translates a message by ID.
func T(ctx context.Context, id string) string {
	return localize(ctx, &i18n.LocalizeConfig{MessageID: id})
}

// Td translates a message by ID with template data.
func Td(ctx context.Context, id string, data map[string]any) string {
	return localize(ctx, &i18n.LocalizeConfig{MessageID: id, TemplateData: data})
}

// Tp translates a pluralized message; {{.Count}} is set to count.
func Tp(ctx context.Context, id string, count int) string {
	return localize(ctx, &i18n.LocalizeConfig{
		MessageID:    id,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	})
}

// FormatHint explains the expected input shape for an answer like a.
func FormatHint(ctx context.Context, a answer.Answer) string {
	switch a.Kind {
	case answer.KindInt:
		return T(ctx, "HintInt")
	case answer.KindFraction:
		return T(ctx, "HintFraction")
	case answer.KindMoney:
		return T(ctx, "HintMoney")
	case answer.KindComposite:
		return Td(ctx, "HintComposite", map[string]any{"Units": strings.Join(a.Units, ", ")})
	case answer.KindChoice:
		return Td(ctx, "HintChoice", map[string]any{"Options": strings.Join(a.Options, ", ")})
	}
	return ""
}

// Percent renders a ratio in [0,1] as a whole percentage.
func Percent(r float64) int {
	return int(r*100 + 0.5)
}
