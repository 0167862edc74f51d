// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package i18n

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/Xuanwo/go-locale"
	"github.com/vorlif/spreak"
	"golang.org/x/text/language"
)

//go:embed locale/*
var locales embed.FS

// Supported lists the languages a catalog is shipped for, besides the English source.
var Supported = []language.Tag{language.German}

// Tag parses loc. An empty loc is detected from the environment and falls back to English.
func Tag(loc string) language.Tag {
	if loc != "" {
		return language.Make(loc)
	}
	tag, err := locale.Detect()
	if err != nil {
		return language.English
	}
	return tag
}

// New returns a localizer for loc backed by the embedded catalogs.
func New(loc string) (*spreak.Localizer, error) {
	tag := Tag(loc)
	localeFS, err := fs.Sub(locales, "locale")
	if err != nil {
		return nil, fmt.Errorf("failed to load locales: %w", err)
	}

	bundle, err := spreak.NewBundle(
		spreak.WithSourceLanguage(language.English),
		spreak.WithFallbackLanguage(language.English),
		spreak.WithDomainFs(spreak.NoDomain, localeFS),
		spreak.WithLanguage(languages(tag)...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create i18n bundle: %w", err)
	}
	return spreak.NewLocalizer(bundle, tag), nil
}

// languages returns the catalogs to load for tag. The requested tag is added when no
// shipped catalog covers its base language.
func languages(tag language.Tag) []any {
	langs := make([]any, 0, len(Supported)+1)
	for _, lang := range Supported {
		langs = append(langs, lang)
	}
	if tag == language.English || tag == language.Und {
		return langs
	}
	base, _ := tag.Base()
	for _, lang := range Supported {
		if supported, _ := lang.Base(); supported == base {
			return langs
		}
	}
	return append(langs, tag)
}
