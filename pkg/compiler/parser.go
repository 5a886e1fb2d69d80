package compiler

import (
	"fmt"
	"strings"
)

// Parser validates a token slice with one token of lookahead and checks
// variable scoping as it goes. It builds no tree: a nil error from Parse is
// the only thing handed to the generator.
//
// Grammar:
//
//	document      = "#hai" (comment | varDecl)* head? body "#kthxbye"
//	head          = "#maek" "head" title "#oic"
//	title         = "#gimmeh" "title" (varUse | TEXT)* "#mkay"
//	body          = (paragraph | list | styled | media | newline
//	                 | comment | varDecl | varUse | TEXT)*
//	paragraph     = "#maek" "paragraf" (styled | list | media | newline
//	                 | comment | varDecl | varUse | TEXT)* "#oic"
//	list          = "#maek" "list" ("#gimmeh" "item" itemBody "#mkay")* "#oic"
//	itemBody      = (styled | varUse | TEXT)*
//	styled        = "#gimmeh" ("bold" | "italics") (varUse | TEXT)* "#mkay"
//	media         = "#gimmeh" ("soundz" | "vidz") ADDRESS "#mkay"
//	newline       = "#gimmeh" "newline"
//	comment       = "#obtw" ANY* "#tldr"
//	varDecl       = "#i" "haz" IDENT ("#it" "iz" TEXT+ "#mkay")?
//	varUse        = "#lemme" "see" IDENT "#mkay"
type Parser struct {
	tokens []Token
	pos    int
	scopes *ScopeStack
}

func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens, scopes: NewScopeStack()}
}

// Scopes exposes the analyzer state, mainly for tests and debugging dumps.
func (p *Parser) Scopes() *ScopeStack {
	return p.scopes
}

// Check validates tokens lexically, syntactically and by scope.
func Check(tokens []Token) error {
	return NewParser(tokens).Parse()
}

// Parse runs the document rule and rejects trailing tokens.
func (p *Parser) Parse() error {
	if len(p.tokens) == 0 {
		return &Error{
			Kind: SyntaxError,
			Msg:  "empty document",
			Hint: "a document starts with '#hai' and ends with '#kthxbye'",
		}
	}
	if err := p.lex(); err != nil {
		return err
	}
	if err := p.parseDocument(); err != nil {
		return err
	}
	if !p.atEOF() {
		tok := p.peek()
		return p.errorf(SyntaxError, tok, "additional tokens after document, found '%s'", tok.Lexeme)
	}
	return nil
}

// errorf builds an *Error positioned at tok.
func (p *Parser) errorf(kind ErrorKind, tok Token, format string, args ...any) *Error {
	return &Error{Kind: kind, Line: tok.Line, Msg: fmt.Sprintf(format, args...)}
}

// unexpectedEOF reports input ending inside construct.
func (p *Parser) unexpectedEOF(construct string) *Error {
	e := &Error{Kind: SyntaxError, Msg: "unexpected end of input in " + construct, Incomplete: true}
	if len(p.tokens) > 0 {
		e.Line = p.tokens[len(p.tokens)-1].Line
	}
	return e
}

func (p *Parser) atEOF() bool {
	return p.pos >= len(p.tokens)
}

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	if p.atEOF() {
		return Token{}
	}
	return p.tokens[p.pos]
}

// at reports whether the current token exists and belongs to cat.
func (p *Parser) at(cat Category) bool {
	return !p.atEOF() && Is(p.peek().Lexeme, cat)
}

// lex rejects the current token if the classifier does not recognize it.
func (p *Parser) lex() error {
	if p.atEOF() {
		return nil
	}
	tok := p.peek()
	if _, ok := Classify(tok.Lexeme); ok {
		return nil
	}
	e := p.errorf(LexicalError, tok, "'%s' is not a recognized token", tok.Lexeme)
	if len(tok.Lexeme) > 0 && tok.Lexeme[:1] == TagPrefix {
		e.Hint = suggestTag(tok.Lexeme)
	} else {
		e.Hint = `text may only contain letters, digits, spaces and , . ' " : ? ! _ /`
	}
	return e
}

// advance consumes the current token and classifies the next one.
func (p *Parser) advance() error {
	if !p.atEOF() {
		p.pos++
	}
	return p.lex()
}

// expect consumes the current token if it belongs to cat.
func (p *Parser) expect(cat Category, construct string) error {
	if p.atEOF() {
		e := p.unexpectedEOF(construct)
		e.Msg += fmt.Sprintf(", expected '%s'", TagSpelling(cat))
		return e
	}
	tok := p.peek()
	if !Is(tok.Lexeme, cat) {
		return p.errorf(SyntaxError, tok, "expected '%s' in %s, found '%s'", TagSpelling(cat), construct, tok.Lexeme)
	}
	return p.advance()
}

// expectWord consumes the current token if it spells word, ignoring case.
func (p *Parser) expectWord(word, after, construct string) error {
	if p.atEOF() {
		return p.unexpectedEOF(construct)
	}
	tok := p.peek()
	if !IsMarker(tok.Lexeme, word) {
		return p.errorf(SyntaxError, tok, "expected '%s' after '%s', found '%s'", word, after, tok.Lexeme)
	}
	return p.advance()
}

// elementKeyword consumes the opener (#maek or #gimmeh) and returns the
// element keyword that follows, still unconsumed.
func (p *Parser) elementKeyword(construct string) (Token, error) {
	opener := p.peek()
	if err := p.advance(); err != nil {
		return Token{}, err
	}
	if p.atEOF() {
		return Token{}, p.unexpectedEOF(construct)
	}
	tok := p.peek()
	if !Is(tok.Lexeme, ElemKeyword) {
		e := p.errorf(SyntaxError, tok, "expected element keyword after '%s', found '%s'", opener.Lexeme, tok.Lexeme)
		e.Hint = suggestKeyword(tok.Lexeme, nil)
		return Token{}, e
	}
	return tok, nil
}

// unknownElement reports a keyword that is valid in general but not here.
func (p *Parser) unknownElement(tok Token, opener, construct string, allowed ...string) error {
	e := p.errorf(SyntaxError, tok, "unknown element after '%s' in %s: '%s'", opener, construct, tok.Lexeme)
	e.Hint = suggestKeyword(tok.Lexeme, allowed)
	if e.Hint == "" {
		e.Hint = fmt.Sprintf("allowed here: %v", allowed)
	}
	return e
}

// parseDocument handles the outer #hai ... #kthxbye.
func (p *Parser) parseDocument() error {
	tok := p.peek()
	if !Is(tok.Lexeme, DocStart) {
		return p.errorf(SyntaxError, tok, "expected document start '#hai', found '%s'", tok.Lexeme)
	}
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.parseBody(); err != nil {
		return err
	}
	// Trailing tokens are reported by Parse, not classified here.
	p.pos++
	return nil
}

// parseBody consumes body content up to, but not including, #kthxbye.
// A head is accepted while only comments and declarations have been seen.
func (p *Parser) parseBody() error {
	headAllowed := true
	for {
		if p.atEOF() {
			e := p.unexpectedEOF("body")
			e.Msg += ", expected document end '#kthxbye'"
			return e
		}
		tok := p.peek()
		var err error
		switch {
		case Is(tok.Lexeme, DocEnd):
			return nil
		case Is(tok.Lexeme, CommentStart):
			err = p.parseComment()
		case Is(tok.Lexeme, DeclStart):
			err = p.parseVarDecl()
		case Is(tok.Lexeme, UseStart):
			headAllowed = false
			err = p.parseVarUse()
		case Is(tok.Lexeme, BlockStart):
			var kw Token
			kw, err = p.elementKeyword("body")
			if err != nil {
				return err
			}
			switch {
			case IsKeyword(kw.Lexeme, KwHead):
				if !headAllowed {
					return p.errorf(SyntaxError, kw, "head must come before any body content")
				}
				err = p.parseHead()
			case IsKeyword(kw.Lexeme, KwParagraf):
				err = p.parseParagraph()
			case IsKeyword(kw.Lexeme, KwList):
				err = p.parseList()
			default:
				return p.unknownElement(kw, "#maek", "body", KwHead, KwParagraf, KwList)
			}
			headAllowed = false
		case Is(tok.Lexeme, ElemStart):
			headAllowed = false
			err = p.parseElement("body")
		case Is(tok.Lexeme, Text):
			headAllowed = false
			err = p.advance()
		default:
			return p.errorf(SyntaxError, tok, "unexpected token in body: '%s'", tok.Lexeme)
		}
		if err != nil {
			return err
		}
	}
}

// parseHead: the current token is the "head" keyword.
func (p *Parser) parseHead() error {
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.parseTitle(); err != nil {
		return err
	}
	return p.expect(BlockEnd, "head")
}

func (p *Parser) parseTitle() error {
	if err := p.expect(ElemStart, "head"); err != nil {
		return err
	}
	if p.atEOF() {
		return p.unexpectedEOF("head")
	}
	if tok := p.peek(); !IsKeyword(tok.Lexeme, KwTitle) {
		return p.errorf(SyntaxError, tok, "expected 'title' in head, found '%s'", tok.Lexeme)
	}
	if err := p.advance(); err != nil {
		return err
	}
	return p.parseInlineText("title")
}

// parseInlineText consumes (varUse | TEXT)* and the closing #mkay.
func (p *Parser) parseInlineText(construct string) error {
	for {
		if p.atEOF() {
			return p.unexpectedEOF(construct)
		}
		tok := p.peek()
		var err error
		switch {
		case Is(tok.Lexeme, ElemEnd):
			return p.advance()
		case Is(tok.Lexeme, UseStart):
			err = p.parseVarUse()
		case Is(tok.Lexeme, Text):
			err = p.advance()
		default:
			return p.errorf(SyntaxError, tok, "expected text or '#mkay' in %s, found '%s'", construct, tok.Lexeme)
		}
		if err != nil {
			return err
		}
	}
}

// parseParagraph: the current token is the "paragraf" keyword.
// The paragraph owns a scope frame for its whole extent.
func (p *Parser) parseParagraph() error {
	if err := p.advance(); err != nil {
		return err
	}
	p.scopes.Push()
	for {
		if p.atEOF() {
			return p.unexpectedEOF("paragraph")
		}
		tok := p.peek()
		var err error
		switch {
		case Is(tok.Lexeme, BlockEnd):
			p.scopes.Pop()
			return p.advance()
		case Is(tok.Lexeme, ElemStart):
			err = p.parseElement("paragraph")
		case Is(tok.Lexeme, BlockStart):
			var kw Token
			kw, err = p.elementKeyword("paragraph")
			if err != nil {
				return err
			}
			if !IsKeyword(kw.Lexeme, KwList) {
				return p.unknownElement(kw, "#maek", "paragraph", KwList)
			}
			err = p.parseList()
		case Is(tok.Lexeme, CommentStart):
			err = p.parseComment()
		case Is(tok.Lexeme, DeclStart):
			err = p.parseVarDecl()
		case Is(tok.Lexeme, UseStart):
			err = p.parseVarUse()
		case Is(tok.Lexeme, Text):
			err = p.advance()
		default:
			return p.errorf(SyntaxError, tok, "unexpected token in paragraph: '%s'", tok.Lexeme)
		}
		if err != nil {
			return err
		}
	}
}

// parseList: the current token is the "list" keyword.
func (p *Parser) parseList() error {
	if err := p.advance(); err != nil {
		return err
	}
	for {
		if p.atEOF() {
			return p.unexpectedEOF("list")
		}
		tok := p.peek()
		if Is(tok.Lexeme, BlockEnd) {
			return p.advance()
		}
		if !Is(tok.Lexeme, ElemStart) {
			return p.errorf(SyntaxError, tok, "expected '#gimmeh item' in list, found '%s'", tok.Lexeme)
		}
		if err := p.advance(); err != nil {
			return err
		}
		if p.atEOF() {
			return p.unexpectedEOF("list")
		}
		if kw := p.peek(); !IsKeyword(kw.Lexeme, KwItem) {
			return p.unknownElement(kw, "#gimmeh", "list", KwItem)
		}
		if err := p.advance(); err != nil {
			return err
		}
		if err := p.parseItemBody(); err != nil {
			return err
		}
	}
}

// parseItemBody consumes (styled | varUse | TEXT)* and the closing #mkay.
func (p *Parser) parseItemBody() error {
	for {
		if p.atEOF() {
			return p.unexpectedEOF("list item")
		}
		tok := p.peek()
		var err error
		switch {
		case Is(tok.Lexeme, ElemEnd):
			return p.advance()
		case Is(tok.Lexeme, ElemStart):
			var kw Token
			kw, err = p.elementKeyword("list item")
			if err != nil {
				return err
			}
			if !IsKeyword(kw.Lexeme, KwBold) && !IsKeyword(kw.Lexeme, KwItalics) {
				return p.unknownElement(kw, "#gimmeh", "list item", KwBold, KwItalics)
			}
			err = p.parseStyled(kw)
		case Is(tok.Lexeme, UseStart):
			err = p.parseVarUse()
		case Is(tok.Lexeme, Text):
			err = p.advance()
		default:
			return p.errorf(SyntaxError, tok, "expected text or '#mkay' in list item, found '%s'", tok.Lexeme)
		}
		if err != nil {
			return err
		}
	}
}

// parseElement handles a #gimmeh in flow content (body or paragraph).
func (p *Parser) parseElement(construct string) error {
	kw, err := p.elementKeyword(construct)
	if err != nil {
		return err
	}
	switch {
	case IsKeyword(kw.Lexeme, KwBold), IsKeyword(kw.Lexeme, KwItalics):
		return p.parseStyled(kw)
	case IsKeyword(kw.Lexeme, KwSoundz), IsKeyword(kw.Lexeme, KwVidz):
		return p.parseMedia(kw)
	case IsKeyword(kw.Lexeme, KwNewline):
		return p.advance()
	}
	return p.unknownElement(kw, "#gimmeh", construct, KwBold, KwItalics, KwNewline, KwSoundz, KwVidz)
}

// parseStyled: the current token is "bold" or "italics".
func (p *Parser) parseStyled(kw Token) error {
	if err := p.advance(); err != nil {
		return err
	}
	construct := KwBold
	if IsKeyword(kw.Lexeme, KwItalics) {
		construct = KwItalics
	}
	return p.parseInlineText(construct)
}

// parseMedia: the current token is "soundz" or "vidz".
func (p *Parser) parseMedia(kw Token) error {
	construct := KwSoundz
	if IsKeyword(kw.Lexeme, KwVidz) {
		construct = KwVidz
	}
	if err := p.advance(); err != nil {
		return err
	}
	if p.atEOF() {
		return p.unexpectedEOF(construct)
	}
	if tok := p.peek(); !Is(tok.Lexeme, Address) {
		return p.errorf(SyntaxError, tok, "expected address for %s, found '%s'", construct, tok.Lexeme)
	}
	if err := p.advance(); err != nil {
		return err
	}
	return p.expect(ElemEnd, construct)
}

// parseComment skips everything between #obtw and #tldr. Each token must
// still be recognized.
func (p *Parser) parseComment() error {
	if err := p.advance(); err != nil {
		return err
	}
	for !p.at(CommentEnd) {
		if p.atEOF() {
			return p.unexpectedEOF("comment")
		}
		if err := p.advance(); err != nil {
			return err
		}
	}
	return p.advance()
}

// parseIdentifier consumes a variable name after a two-word tag.
func (p *Parser) parseIdentifier(after, construct string) (Token, error) {
	if p.atEOF() {
		return Token{}, p.unexpectedEOF(construct)
	}
	tok := p.peek()
	if !Is(tok.Lexeme, Identifier) {
		e := p.errorf(SyntaxError, tok, "expected identifier after '%s', found '%s'", after, tok.Lexeme)
		e.Hint = "variable names use letters only"
		return Token{}, e
	}
	return tok, p.advance()
}

// parseVarDecl handles "#i haz NAME" with an optional "#it iz VALUE #mkay"
// and declares NAME in the innermost scope.
func (p *Parser) parseVarDecl() error {
	start := p.peek()
	const construct = "variable declaration"
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.expectWord(MarkHaz, start.Lexeme, construct); err != nil {
		return err
	}
	name, err := p.parseIdentifier("#i haz", construct)
	if err != nil {
		return err
	}
	b := Binding{Name: name.Lexeme, Line: start.Line}

	if p.at(DeclMid) {
		mid := p.peek()
		if err := p.advance(); err != nil {
			return err
		}
		if err := p.expectWord(MarkIz, mid.Lexeme, construct); err != nil {
			return err
		}
		var words []string
		for !p.at(ElemEnd) {
			if p.atEOF() {
				return p.unexpectedEOF(construct)
			}
			tok := p.peek()
			if !Is(tok.Lexeme, Text) {
				return p.errorf(SyntaxError, tok, "expected value text or '#mkay' in %s, found '%s'", construct, tok.Lexeme)
			}
			words = append(words, tok.Lexeme)
			if err := p.advance(); err != nil {
				return err
			}
		}
		if len(words) == 0 {
			return p.errorf(SyntaxError, p.peek(), "expected value after '#it iz', found '%s'", p.peek().Lexeme)
		}
		if err := p.advance(); err != nil {
			return err
		}
		b.Value = strings.Join(words, " ")
		b.HasValue = true
	}

	if prev, ok := p.scopes.Declare(b); !ok {
		return p.errorf(SemanticError, start,
			"variable '%s' already declared in this scope on line %d", b.Name, prev.Line)
	}
	return nil
}

// parseVarUse handles "#lemme see NAME #mkay" and resolves NAME.
func (p *Parser) parseVarUse() error {
	start := p.peek()
	const construct = "variable use"
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.expectWord(MarkSee, start.Lexeme, construct); err != nil {
		return err
	}
	name, err := p.parseIdentifier("#lemme see", construct)
	if err != nil {
		return err
	}
	if _, ok := p.scopes.Lookup(name.Lexeme); !ok {
		e := p.errorf(SemanticError, name, "variable '%s' is not declared", name.Lexeme)
		e.Hint = fmt.Sprintf("declare it first with '#i haz %s #it iz <value> #mkay'", name.Lexeme)
		if dym := didYouMean(name.Lexeme, p.scopes.Visible()); dym != "" {
			e.Hint += "; " + dym
		}
		return e
	}
	return p.expect(ElemEnd, construct)
}
