package descriptor

import "strings"

// nameSeparators holds the namespace separators accepted in qualified
// symbol names. Extractor manifests use the backslash form, some callers
// pass the dot form; both split the same way.
const nameSeparators = `\.`

// CanonicalName returns the canonical form of a symbol identifier:
// lower-cased, with any leading namespace separator stripped. Identifiers
// compare case-insensitively, so `Acme\Widget`, `acme\widget` and
// `\ACME\WIDGET` all canonicalize to the same key. Cache lookups and
// snapshot filenames are keyed on this form.
func CanonicalName(identifier string) string {
	trimmed := strings.TrimLeft(identifier, nameSeparators)
	return strings.ToLower(trimmed)
}

// SplitName splits a qualified name into namespace and short name at the
// last separator. Names without a separator have an empty namespace.
func SplitName(qualified string) (namespace, short string) {
	if i := strings.LastIndexAny(qualified, nameSeparators); i >= 0 {
		return qualified[:i], qualified[i+1:]
	}
	return "", qualified
}
