// Package compiler turns LOLCODE-flavoured markup into an HTML document.
//
// Pipeline: source → Lex → Check (syntax + scope) → Generate → HTML text
//
// Check and Generate are independent traversals of the same token slice.
// Generate runs only after Check has accepted the tokens.
package compiler
