package compiler

import (
	"regexp"
	"sort"
	"strings"
)

// TagPrefix marks a lexeme as a tag keyword.
const TagPrefix = "#"

// tags maps lower-cased '#'-prefixed lexemes to their category.
var tags = map[string]Category{
	"#hai":     DocStart,
	"#kthxbye": DocEnd,
	"#obtw":    CommentStart,
	"#tldr":    CommentEnd,
	"#maek":    BlockStart,
	"#oic":     BlockEnd,
	"#gimmeh":  ElemStart,
	"#mkay":    ElemEnd,
	"#i":       DeclStart,
	"#it":      DeclMid,
	"#lemme":   UseStart,
}

// Element keywords that follow #maek or #gimmeh.
const (
	KwHead     = "head"
	KwTitle    = "title"
	KwParagraf = "paragraf"
	KwBold     = "bold"
	KwItalics  = "italics"
	KwList     = "list"
	KwItem     = "item"
	KwNewline  = "newline"
	KwSoundz   = "soundz"
	KwVidz     = "vidz"
)

var elementKeywords = map[string]bool{
	KwHead:     true,
	KwTitle:    true,
	KwParagraf: true,
	KwBold:     true,
	KwItalics:  true,
	KwList:     true,
	KwItem:     true,
	KwNewline:  true,
	KwSoundz:   true,
	KwVidz:     true,
}

// Marker words completing the two-word variable tags.
const (
	MarkHaz = "haz" // #i haz
	MarkIz  = "iz"  // #it iz
	MarkSee = "see" // #lemme see
)

var (
	textRe       = regexp.MustCompile(`^[A-Za-z0-9,.'":?!_/ ]+$`)
	addressRe    = regexp.MustCompile(`^[A-Za-z0-9,.'":?!_/%]+$`)
	identifierRe = regexp.MustCompile(`^[A-Za-z]+$`)
)

// Classify returns the primary category of lexeme and whether it is
// recognized at all. '#'-prefixed lexemes are only checked against the tag
// table. Bare lexemes are checked against element keywords, then free text,
// address and identifier in that order.
func Classify(lexeme string) (Category, bool) {
	lower := strings.ToLower(lexeme)
	if strings.HasPrefix(lexeme, TagPrefix) {
		cat, ok := tags[lower]
		if !ok {
			return Unrecognized, false
		}
		return cat, true
	}
	switch {
	case elementKeywords[lower]:
		return ElemKeyword, true
	case textRe.MatchString(lexeme):
		return Text, true
	case addressRe.MatchString(lexeme):
		return Address, true
	case identifierRe.MatchString(lexeme):
		return Identifier, true
	}
	return Unrecognized, false
}

// Is reports whether lexeme belongs to cat. Unlike Classify it answers for
// every overlapping category, so "bold" is both ElemKeyword and Text.
func Is(lexeme string, cat Category) bool {
	if strings.HasPrefix(lexeme, TagPrefix) {
		got, ok := tags[strings.ToLower(lexeme)]
		return ok && got == cat
	}
	switch cat {
	case ElemKeyword:
		return elementKeywords[strings.ToLower(lexeme)]
	case Text:
		return textRe.MatchString(lexeme)
	case Address:
		return addressRe.MatchString(lexeme)
	case Identifier:
		return identifierRe.MatchString(lexeme)
	}
	return false
}

// IsKeyword reports whether lexeme is the element keyword kw.
func IsKeyword(lexeme, kw string) bool {
	return !strings.HasPrefix(lexeme, TagPrefix) && strings.EqualFold(lexeme, kw)
}

// IsMarker reports whether lexeme is the marker word mark (haz, iz, see).
func IsMarker(lexeme, mark string) bool {
	return strings.EqualFold(lexeme, mark)
}

// TagSpelling returns the canonical spelling of a tag category, e.g. "#hai".
func TagSpelling(cat Category) string {
	for spelling, c := range tags {
		if c == cat {
			return spelling
		}
	}
	return cat.String()
}

// tagNames lists every tag keyword, sorted.
func tagNames() []string {
	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// keywordNames lists every element keyword, sorted.
func keywordNames() []string {
	names := make([]string, 0, len(elementKeywords))
	for name := range elementKeywords {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
