package compiler

import "fmt"

// Compile runs the full pipeline on src. On failure it returns the first
// *Error (wrapped with a source snippet) and no HTML.
func Compile(src string) (string, error) {
	tokens := Lex(src)

	if err := Check(tokens); err != nil {
		return "", WrapErrorWithSource(err, src)
	}

	html, err := Generate(tokens)
	if err != nil {
		return "", fmt.Errorf("codegen error: %w", err)
	}
	return html, nil
}

// Validate lexes and checks src without generating anything.
func Validate(src string) error {
	if err := Check(Lex(src)); err != nil {
		return WrapErrorWithSource(err, src)
	}
	return nil
}

// Tokens returns the token dump of src, one line per token, as printed by
// the -tokens flag.
func Tokens(src string) []string {
	tokens := Lex(src)
	lines := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		lines = append(lines, tok.String())
	}
	return lines
}
