package teams

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Team represents the normalized team details document.
type Team struct {
	ID        string `json:"id"`
	Slug      string `json:"slug"`
	FullName  string `json:"fullName"`
	Nickname  string `json:"nickname"`
	Location  string `json:"location"`
	Shorthand string `json:"shorthand"`
	Emoji     string `json:"emoji,omitempty"`
}

// DisplayName prefers the full name and falls back to nickname, then slug.
func (t Team) DisplayName() string {
	switch {
	case t.FullName != "":
		return t.FullName
	case t.Nickname != "":
		return t.Nickname
	default:
		return t.Slug
	}
}

// Glyph renders Emoji for display. The upstream sends either the character itself or its code point
// in hex ("0x1F405").
func (t Team) Glyph() string {
	raw := strings.TrimSpace(t.Emoji)
	if !strings.HasPrefix(raw, "0x") && !strings.HasPrefix(raw, "0X") {
		return raw
	}
	cp, err := strconv.ParseInt(raw[2:], 16, 32)
	if err != nil || !utf8.ValidRune(rune(cp)) {
		return ""
	}
	return string(rune(cp))
}
