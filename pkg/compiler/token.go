package compiler

import "fmt"

// Category identifies the syntactic class of a lexeme.
type Category int

const (
	Unrecognized Category = iota // sentinel: matched nothing

	// Tag keywords (always '#'-prefixed)
	DocStart     // "#hai"
	DocEnd       // "#kthxbye"
	CommentStart // "#obtw"
	CommentEnd   // "#tldr"
	BlockStart   // "#maek"
	BlockEnd     // "#oic"
	ElemStart    // "#gimmeh"
	ElemEnd      // "#mkay"
	DeclStart    // "#i"
	DeclMid      // "#it"
	UseStart     // "#lemme"

	// Bare element keyword (head, title, paragraf, ...)
	ElemKeyword

	// Regex-validated content
	Text       // free text word
	Address    // url-ish word, '%' instead of space
	Identifier // letters only
)

// categoryNames is indexed by Category.
var categoryNames = [...]string{
	Unrecognized: "UNRECOGNIZED",
	DocStart:     "DOC_START",
	DocEnd:       "DOC_END",
	CommentStart: "COMMENT_START",
	CommentEnd:   "COMMENT_END",
	BlockStart:   "BLOCK_START",
	BlockEnd:     "BLOCK_END",
	ElemStart:    "ELEM_START",
	ElemEnd:      "ELEM_END",
	DeclStart:    "DECL_START",
	DeclMid:      "DECL_MID",
	UseStart:     "USE_START",
	ElemKeyword:  "ELEM_KEYWORD",
	Text:         "TEXT",
	Address:      "ADDRESS",
	Identifier:   "IDENTIFIER",
}

func (c Category) String() string {
	if int(c) >= 0 && int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Token is a single whitespace-delimited lexeme produced by Lex.
type Token struct {
	Lexeme string // the exact source text
	Line   int    // 1-based source line
}

func (t Token) String() string {
	cat, _ := Classify(t.Lexeme)
	return fmt.Sprintf("%-13s %-14q  line %d", cat, t.Lexeme, t.Line)
}
