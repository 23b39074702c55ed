package slug

import (
	"crypto/rand"
	"strings"
	"unicode"
)

// Option configures slug generation.
type Option func(*config)

type config struct {
	maxLength    int
	separator    rune
	suffixLength int
}

// MaxLength truncates the generated slug to at most n runes, counting the
// random suffix when one is configured.
func MaxLength(n int) Option {
	return func(c *config) {
		c.maxLength = n
	}
}

// Separator replaces the default hyphen separator.
func Separator(r rune) Option {
	return func(c *config) {
		c.separator = r
	}
}

// WithSuffix appends a random lowercase alphanumeric suffix of the given
// length, separated from the base slug by the separator. Useful when slug
// uniqueness is enforced and display names are expected to collide.
func WithSuffix(length int) Option {
	return func(c *config) {
		c.suffixLength = length
	}
}

// Make converts a display name into a canonical slug: lowercase ASCII
// letters and digits separated by single separators, with no leading or
// trailing separator.
func Make(name string, opts ...Option) string {
	cfg := &config{separator: '-'}
	for _, opt := range opts {
		opt(cfg)
	}

	var b strings.Builder
	b.Grow(len(name))

	pendingSep := false
	for _, r := range name {
		if folded, ok := asciiFold[r]; ok {
			r = folded
		}
		r = unicode.ToLower(r)

		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteRune(cfg.separator)
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}

	result := b.String()

	if cfg.suffixLength > 0 {
		suffix := randomSuffix(cfg.suffixLength)
		if result == "" {
			result = suffix
		} else {
			result = result + string(cfg.separator) + suffix
		}
	}

	if cfg.maxLength > 0 {
		runes := []rune(result)
		if len(runes) > cfg.maxLength {
			result = strings.TrimRight(string(runes[:cfg.maxLength]), string(cfg.separator))
		}
	}

	return result
}

// Validate reports whether s is already in the canonical form produced by
// Make with default options: non-empty, lowercase alphanumerics and single
// hyphens, no leading or trailing hyphen.
func Validate(s string) bool {
	if s == "" {
		return false
	}
	prevHyphen := true // rejects a leading hyphen
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			prevHyphen = false
		case r == '-':
			if prevHyphen {
				return false
			}
			prevHyphen = true
		default:
			return false
		}
	}
	return !prevHyphen
}

// asciiFold maps common Latin diacritics to their ASCII base letter. Not
// exhaustive; characters outside the map fall through to the separator rule.
var asciiFold = map[rune]rune{
	'à': 'a', 'á': 'a', 'â': 'a', 'ã': 'a', 'ä': 'a', 'å': 'a', 'ā': 'a', 'ą': 'a',
	'À': 'a', 'Á': 'a', 'Â': 'a', 'Ã': 'a', 'Ä': 'a', 'Å': 'a', 'Ā': 'a', 'Ą': 'a',
	'ç': 'c', 'ć': 'c', 'č': 'c', 'Ç': 'c', 'Ć': 'c', 'Č': 'c',
	'è': 'e', 'é': 'e', 'ê': 'e', 'ë': 'e', 'ē': 'e', 'ę': 'e', 'ě': 'e',
	'È': 'e', 'É': 'e', 'Ê': 'e', 'Ë': 'e', 'Ē': 'e', 'Ę': 'e', 'Ě': 'e',
	'ì': 'i', 'í': 'i', 'î': 'i', 'ï': 'i', 'ī': 'i',
	'Ì': 'i', 'Í': 'i', 'Î': 'i', 'Ï': 'i', 'Ī': 'i',
	'ł': 'l', 'Ł': 'l',
	'ñ': 'n', 'ń': 'n', 'ň': 'n', 'Ñ': 'n', 'Ń': 'n', 'Ň': 'n',
	'ò': 'o', 'ó': 'o', 'ô': 'o', 'õ': 'o', 'ö': 'o', 'ø': 'o', 'ō': 'o',
	'Ò': 'o', 'Ó': 'o', 'Ô': 'o', 'Õ': 'o', 'Ö': 'o', 'Ø': 'o', 'Ō': 'o',
	'ś': 's', 'š': 's', 'Ś': 's', 'Š': 's', 'ß': 's',
	'ù': 'u', 'ú': 'u', 'û': 'u', 'ü': 'u', 'ū': 'u', 'ů': 'u',
	'Ù': 'u', 'Ú': 'u', 'Û': 'u', 'Ü': 'u', 'Ū': 'u', 'Ů': 'u',
	'ý': 'y', 'ÿ': 'y', 'Ý': 'y',
	'ź': 'z', 'ž': 'z', 'ż': 'z', 'Ź': 'z', 'Ž': 'z', 'Ż': 'z',
	'æ': 'a', 'Æ': 'a', 'œ': 'o', 'Œ': 'o',
}

func randomSuffix(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"

	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failure is unrecoverable for uniqueness purposes,
		// fall back to a constant so callers still get a valid slug.
		for i := range b {
			b[i] = charset[i%len(charset)]
		}
		return string(b)
	}
	for i := range b {
		b[i] = charset[b[i]%byte(len(charset))]
	}
	return string(b)
}
