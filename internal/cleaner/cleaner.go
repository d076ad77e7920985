// Package cleaner provides the text sanitization used when turning
// platform-supplied strings (descriptions, nicknames) into values that
// are safe to persist and to use in file names.
package cleaner

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultMaxNameWidth caps cleaned names at a display width that stays
// within common filesystem limits even for wide CJK glyphs.
const DefaultMaxNameWidth = 64

// illegal holds characters that cannot appear in file names on the
// platforms we export to.
const illegal = `\/:*?"<>|`

// Cleaner sanitizes free-form platform text. The zero value is not
// usable; construct with New.
type Cleaner struct {
	maxWidth  int
	transform transform.Transformer
}

// New returns a Cleaner with the given display-width cap for names.
// A non-positive cap falls back to DefaultMaxNameWidth.
func New(maxWidth int) *Cleaner {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxNameWidth
	}
	return &Cleaner{
		maxWidth: maxWidth,
		// NFC-normalize and drop control characters in one pass.
		transform: transform.Chain(
			norm.NFC,
			runes.Remove(runes.In(unicode.Cc)),
		),
	}
}

// Filter removes characters that are illegal in file names along with
// control characters, and normalizes the text to NFC.
func (c *Cleaner) Filter(text string) string {
	out, _, err := transform.String(c.transform, text)
	if err != nil {
		out = text
	}
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(illegal, r) {
			return -1
		}
		return r
	}, out)
}

// ClearSpaces collapses whitespace runs into single spaces and trims
// the ends.
func (c *Cleaner) ClearSpaces(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// CleanName sanitizes a name for use as an account identifier or file
// name component: Filter, collapse spaces, cap the display width, and
// fall back to def when nothing usable remains. The inquire flag is
// accepted for interface compatibility with interactive callers; this
// implementation never prompts.
func (c *Cleaner) CleanName(raw string, inquire bool, def string) string {
	_ = inquire
	name := c.ClearSpaces(c.Filter(raw))
	name = runewidth.Truncate(name, c.maxWidth, "")
	name = strings.TrimSpace(name)
	if name == "" {
		return def
	}
	return name
}
