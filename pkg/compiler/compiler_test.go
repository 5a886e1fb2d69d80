package compiler

import (
	"strings"
	"testing"
)

func TestCompileHeadDocument(t *testing.T) {
	html, err := Compile("#hai #maek head #gimmeh title hi #mkay #oic #kthxbye")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if !strings.Contains(html, "<head><title> hi</title></head>") {
		t.Errorf("missing head/title in %q", html)
	}
	if !strings.HasSuffix(html, "</html>") {
		t.Errorf("output does not close </html>: %q", html)
	}
}

func TestCompileSubstitutesVariable(t *testing.T) {
	html, err := Compile("#hai #i haz x #it iz hello #mkay #maek paragraf #lemme see x #mkay #oic #kthxbye")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if !strings.Contains(html, "<p> hello</p>") {
		t.Errorf("paragraph does not contain the substituted value: %q", html)
	}
}

func TestCompileUndeclaredVariable(t *testing.T) {
	src := "#hai #maek paragraf #lemme see x #mkay #oic #kthxbye"
	html, err := Compile(src)
	if err == nil {
		t.Fatalf("Compile succeeded, expected semantic error")
	}
	if html != "" {
		t.Errorf("failed compile returned HTML: %q", html)
	}
	if kind, ok := KindOf(err); !ok || kind != SemanticError {
		t.Errorf("KindOf = (%v, %v), want semantic", kind, ok)
	}
	if !strings.Contains(err.Error(), "> 1 | "+src) {
		t.Errorf("error lacks source snippet:\n%v", err)
	}
}

func TestCompileDeterministic(t *testing.T) {
	src := `#hai
#obtw sample #tldr
#i haz who #it iz world #mkay
#maek head #gimmeh title greeting #mkay #oic
#maek paragraf
  hello #lemme see who #mkay
  #maek list #gimmeh item a #mkay #gimmeh item #gimmeh italics b #mkay #mkay #oic
#oic
#gimmeh vidz https://example.com/v #mkay
#kthxbye`

	first, err := Compile(src)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Compile(src)
		if err != nil {
			t.Fatalf("Compile run %d failed: %v", i, err)
		}
		if again != first {
			t.Fatalf("run %d differs:\n%s\n%s", i, first, again)
		}
	}
}

func TestCompileMissingDelimiters(t *testing.T) {
	tests := []struct {
		name  string
		input string
		names string
	}{
		{"No Start", "#maek paragraf hi #oic #kthxbye", "#hai"},
		{"No End", "#hai #maek paragraf hi #oic", "#kthxbye"},
		{"Only Start", "#hai", "#kthxbye"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.input)
			if kind, ok := KindOf(err); !ok || kind != SyntaxError {
				t.Fatalf("KindOf = (%v, %v), want syntax: %v", kind, ok, err)
			}
			if !strings.Contains(err.Error(), tt.names) {
				t.Errorf("error does not name %s: %v", tt.names, err)
			}
		})
	}
}

func TestCompileScopeRules(t *testing.T) {
	dup := "#hai\n#maek paragraf\n#i haz x #it iz a #mkay\n#i haz x #it iz b #mkay\n#oic\n#kthxbye"
	_, err := Compile(dup)
	if kind, _ := KindOf(err); kind != SemanticError {
		t.Fatalf("duplicate in paragraph: expected semantic error, got %v", err)
	}
	if !strings.Contains(err.Error(), "on line 3") {
		t.Errorf("duplicate error does not cite line 3: %v", err)
	}

	redeclared := "#hai #maek paragraf #i haz x #it iz a #mkay #oic #i haz x #it iz b #mkay #kthxbye"
	if _, err := Compile(redeclared); err != nil {
		t.Errorf("redeclaring in the outer scope failed: %v", err)
	}

	enclosing := "#hai #i haz x #it iz a #mkay #maek paragraf #i haz y #it iz b #mkay #lemme see x #mkay #oic #kthxbye"
	if _, err := Compile(enclosing); err != nil {
		t.Errorf("use from an enclosing scope failed: %v", err)
	}
}

func TestCompileLexicalErrors(t *testing.T) {
	for _, bad := range []string{"a-b", "<p>", "#nope", "x=1", "a@b"} {
		src := "#hai " + bad + " #kthxbye"
		_, err := Compile(src)
		if kind, ok := KindOf(err); !ok || kind != LexicalError {
			t.Errorf("Compile(%q): KindOf = (%v, %v), want lexical", src, kind, ok)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := Validate("#hai hello #kthxbye"); err != nil {
		t.Errorf("Validate(valid) = %v", err)
	}
	err := Validate("#hai #maek paragraf")
	if !IsIncomplete(err) {
		t.Errorf("Validate(truncated) should be incomplete, got %v", err)
	}
}

func TestTokens(t *testing.T) {
	got := Tokens("#hai\nhello #kthxbye")
	if len(got) != 3 {
		t.Fatalf("Tokens returned %d lines, want 3: %q", len(got), got)
	}
	if !strings.HasPrefix(got[0], "DOC_START") || !strings.HasSuffix(got[0], "line 1") {
		t.Errorf("first token line = %q", got[0])
	}
	if !strings.HasPrefix(got[1], "TEXT") || !strings.HasSuffix(got[1], "line 2") {
		t.Errorf("second token line = %q", got[1])
	}
	if Tokens("") == nil {
		t.Errorf("Tokens(\"\") should be an empty, non-nil slice")
	}
}
