package logging

import (
	"strings"

	"go.uber.org/zap"
)

// WarnNonUTF8Locale logs a warning when lang names a locale that is not
// UTF-8. An empty lang is ignored.
func WarnNonUTF8Locale(log *zap.Logger, lang string) {
	if lang == "" {
		return
	}
	log.Debug("locale", zap.String("LANG", lang))
	upper := strings.ToUpper(lang)
	if strings.HasSuffix(upper, ".UTF-8") || strings.HasSuffix(upper, ".UTF8") {
		return
	}
	log.Warn("non UTF-8 environment detected; only UTF-8 is supported and errors may occur")
}
