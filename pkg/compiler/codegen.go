package compiler

import (
	"fmt"
	"strings"
)

// CodeGen walks a validated token slice and emits HTML. It does not reuse the
// Parser: it matches tag sequences directly and tracks variables in its own
// flat binding list.
type CodeGen struct {
	tokens []Token
	pos    int
	out    strings.Builder

	bindings []Binding  // declaration order, most recent last
	marks    []int      // len(bindings) when each open paragraph began
	open     []openElem // elements awaiting #oic / #mkay
}

type openElem struct {
	closer string // e.g. "</p>"
	block  bool   // closed by #oic rather than #mkay
	scoped bool   // paragraph: truncate bindings on close
}

func newCodeGen(tokens []Token) *CodeGen {
	own := make([]Token, len(tokens))
	copy(own, tokens)
	return &CodeGen{tokens: own}
}

func (cg *CodeGen) atEOF() bool {
	return cg.pos >= len(cg.tokens)
}

// next consumes and returns the current token.
func (cg *CodeGen) next(construct string) (Token, error) {
	if cg.atEOF() {
		last := 0
		if len(cg.tokens) > 0 {
			last = cg.tokens[len(cg.tokens)-1].Line
		}
		return Token{}, fmt.Errorf("line %d: codegen: unexpected end of input in %s", last, construct)
	}
	tok := cg.tokens[cg.pos]
	cg.pos++
	return tok, nil
}

// nextIs consumes the current token, which must belong to cat.
func (cg *CodeGen) nextIs(cat Category, construct string) (Token, error) {
	tok, err := cg.next(construct)
	if err != nil {
		return tok, err
	}
	if !Is(tok.Lexeme, cat) {
		return tok, fmt.Errorf("line %d: codegen: expected %s in %s, got %q", tok.Line, cat, construct, tok.Lexeme)
	}
	return tok, nil
}

func (cg *CodeGen) write(s string) {
	cg.out.WriteString(s)
}

// word emits a text word preceded by a single space.
func (cg *CodeGen) word(s string) {
	cg.out.WriteByte(' ')
	cg.out.WriteString(s)
}

func (cg *CodeGen) push(opener string, e openElem) {
	cg.write(opener)
	if e.scoped {
		cg.marks = append(cg.marks, len(cg.bindings))
	}
	cg.open = append(cg.open, e)
}

// pop closes the innermost open element, which must match block.
func (cg *CodeGen) pop(tok Token, block bool) error {
	if len(cg.open) == 0 {
		return fmt.Errorf("line %d: codegen: %q closes nothing", tok.Line, tok.Lexeme)
	}
	e := cg.open[len(cg.open)-1]
	if e.block != block {
		return fmt.Errorf("line %d: codegen: %q cannot close %s", tok.Line, tok.Lexeme, e.closer)
	}
	cg.open = cg.open[:len(cg.open)-1]
	if e.scoped {
		mark := cg.marks[len(cg.marks)-1]
		cg.marks = cg.marks[:len(cg.marks)-1]
		cg.bindings = cg.bindings[:mark]
	}
	cg.write(e.closer)
	return nil
}

// resolve finds the most recent binding named name.
func (cg *CodeGen) resolve(name string) (Binding, bool) {
	for i := len(cg.bindings) - 1; i >= 0; i-- {
		if cg.bindings[i].Name == name {
			return cg.bindings[i], true
		}
	}
	return Binding{}, false
}

func (cg *CodeGen) genComment() error {
	cg.write("<!--")
	for {
		tok, err := cg.next("comment")
		if err != nil {
			return err
		}
		if Is(tok.Lexeme, CommentEnd) {
			cg.write(" -->")
			return nil
		}
		cg.word(tok.Lexeme)
	}
}

func (cg *CodeGen) genBlock() error {
	kw, err := cg.nextIs(ElemKeyword, "block")
	if err != nil {
		return err
	}
	switch strings.ToLower(kw.Lexeme) {
	case KwHead:
		cg.push("<head>", openElem{closer: "</head>", block: true})
	case KwParagraf:
		cg.push("<p>", openElem{closer: "</p>", block: true, scoped: true})
	case KwList:
		cg.push("<ul>", openElem{closer: "</ul>", block: true})
	default:
		return fmt.Errorf("line %d: codegen: unsupported block %q", kw.Line, kw.Lexeme)
	}
	return nil
}

func (cg *CodeGen) genElement() error {
	kw, err := cg.nextIs(ElemKeyword, "element")
	if err != nil {
		return err
	}
	switch strings.ToLower(kw.Lexeme) {
	case KwTitle:
		cg.push("<title>", openElem{closer: "</title>"})
	case KwItem:
		cg.push("<li>", openElem{closer: "</li>"})
	case KwBold:
		cg.push("<b>", openElem{closer: "</b>"})
	case KwItalics:
		cg.push("<i>", openElem{closer: "</i>"})
	case KwNewline:
		cg.write("<br/>")
	case KwSoundz, KwVidz:
		addr, err := cg.nextIs(Address, kw.Lexeme)
		if err != nil {
			return err
		}
		if _, err := cg.nextIs(ElemEnd, kw.Lexeme); err != nil {
			return err
		}
		if IsKeyword(kw.Lexeme, KwSoundz) {
			fmt.Fprintf(&cg.out, `<audio controls><source src="%s" type="audio/mpeg"></audio>`, addr.Lexeme)
		} else {
			fmt.Fprintf(&cg.out, `<iframe src=%s></iframe>`, addr.Lexeme)
		}
	default:
		return fmt.Errorf("line %d: codegen: unsupported element %q", kw.Line, kw.Lexeme)
	}
	return nil
}

// genDecl records "#i haz NAME [#it iz VALUE... #mkay]". It emits nothing.
func (cg *CodeGen) genDecl(start Token) error {
	if _, err := cg.next("variable declaration"); err != nil { // haz
		return err
	}
	name, err := cg.nextIs(Identifier, "variable declaration")
	if err != nil {
		return err
	}
	b := Binding{Name: name.Lexeme, Line: start.Line}
	if !cg.atEOF() && Is(cg.tokens[cg.pos].Lexeme, DeclMid) {
		cg.pos += 2 // #it iz
		var words []string
		for {
			tok, err := cg.next("variable declaration")
			if err != nil {
				return err
			}
			if Is(tok.Lexeme, ElemEnd) {
				break
			}
			words = append(words, tok.Lexeme)
		}
		b.Value = strings.Join(words, " ")
		b.HasValue = true
	}
	cg.bindings = append(cg.bindings, b)
	return nil
}

// genUse substitutes "#lemme see NAME #mkay" with the bound value.
func (cg *CodeGen) genUse() error {
	if _, err := cg.next("variable use"); err != nil { // see
		return err
	}
	name, err := cg.nextIs(Identifier, "variable use")
	if err != nil {
		return err
	}
	if _, err := cg.nextIs(ElemEnd, "variable use"); err != nil {
		return err
	}
	b, ok := cg.resolve(name.Lexeme)
	if !ok {
		return fmt.Errorf("line %d: codegen: variable %q has no binding", name.Line, name.Lexeme)
	}
	if b.HasValue {
		cg.word(b.Value)
	}
	return nil
}

func (cg *CodeGen) genToken(tok Token) error {
	switch {
	case Is(tok.Lexeme, DocStart):
		cg.write("<!DOCTYPE html><html>")
	case Is(tok.Lexeme, DocEnd):
		cg.write("</html>")
	case Is(tok.Lexeme, CommentStart):
		return cg.genComment()
	case Is(tok.Lexeme, BlockStart):
		return cg.genBlock()
	case Is(tok.Lexeme, BlockEnd):
		return cg.pop(tok, true)
	case Is(tok.Lexeme, ElemStart):
		return cg.genElement()
	case Is(tok.Lexeme, ElemEnd):
		return cg.pop(tok, false)
	case Is(tok.Lexeme, DeclStart):
		return cg.genDecl(tok)
	case Is(tok.Lexeme, UseStart):
		return cg.genUse()
	default:
		cg.word(tok.Lexeme)
	}
	return nil
}

// Generate emits the HTML for tokens, which must already have passed Check.
// The slice is copied; the caller's tokens are never consumed.
func Generate(tokens []Token) (string, error) {
	cg := newCodeGen(tokens)
	for !cg.atEOF() {
		tok, _ := cg.next("document")
		if err := cg.genToken(tok); err != nil {
			return "", err
		}
	}
	if len(cg.open) > 0 {
		return "", fmt.Errorf("codegen: %d element(s) left open, innermost %s", len(cg.open), cg.open[len(cg.open)-1].closer)
	}
	return cg.out.String(), nil
}
