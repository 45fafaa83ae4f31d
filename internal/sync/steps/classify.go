package steps

import (
	"strings"

	types "github.com/madfam-org/avala/internal/domain"
)

var publicKeywords = []string{
	"gobierno",
	"gubernamental",
	"secretaría",
	"secretaria",
	"instituto",
	"universidad",
	"ayuntamiento",
	"municipio",
	"comisión",
	"comision",
	"consejo",
	"dependencia",
	"federal",
	"estatal",
	"público",
	"publico",
}

// ClassifyCertifierKind maps the registry's free-text entity type onto the
// two-value kind enum by case-insensitive keyword containment. Best-effort
// heuristic: wording the keyword list does not cover falls back to the more
// common private classification.
func ClassifyCertifierKind(rawType string) string {
	s := strings.ToLower(strings.TrimSpace(rawType))
	if s == "" {
		return types.CertifierKindPrivate
	}
	for _, kw := range publicKeywords {
		if strings.Contains(s, kw) {
			return types.CertifierKindPublic
		}
	}
	return types.CertifierKindPrivate
}
