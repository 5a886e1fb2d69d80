package compiler

import (
	"reflect"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Head And Title",
			input: "#hai #maek head #gimmeh title hi #mkay #oic #kthxbye",
			want:  "<!DOCTYPE html><html><head><title> hi</title></head></html>",
		},
		{
			name:  "Paragraph",
			input: "#hai #maek paragraf hello #oic #kthxbye",
			want:  "<!DOCTYPE html><html><p> hello</p></html>",
		},
		{
			name:  "Empty Body",
			input: "#hai #kthxbye",
			want:  "<!DOCTYPE html><html></html>",
		},
		{
			name:  "Comment",
			input: "#hai #obtw note to self #tldr #kthxbye",
			want:  "<!DOCTYPE html><html><!-- note to self --></html>",
		},
		{
			name:  "Inline Elements",
			input: "#hai #maek paragraf a #gimmeh bold b #mkay #gimmeh italics c #mkay #gimmeh newline d #oic #kthxbye",
			want:  "<!DOCTYPE html><html><p> a<b> b</b><i> c</i><br/> d</p></html>",
		},
		{
			name:  "List",
			input: "#hai #maek list #gimmeh item one #mkay #gimmeh item two #mkay #oic #kthxbye",
			want:  "<!DOCTYPE html><html><ul><li> one</li><li> two</li></ul></html>",
		},
		{
			name:  "Media",
			input: "#hai #gimmeh soundz https://x.com/a.mp3 #mkay #gimmeh vidz https://y.com/v #mkay #kthxbye",
			want: `<!DOCTYPE html><html><audio controls><source src="https://x.com/a.mp3" type="audio/mpeg"></audio>` +
				`<iframe src=https://y.com/v></iframe></html>`,
		},
		{
			name:  "Shadowing",
			input: "#hai #i haz x #it iz outer #mkay #maek paragraf #i haz x #it iz inner #mkay #lemme see x #mkay #oic #lemme see x #mkay #kthxbye",
			want:  "<!DOCTYPE html><html><p> inner</p> outer</html>",
		},
		{
			name:  "Resolution By Name",
			input: "#hai #i haz a #it iz first #mkay #i haz b #it iz second #mkay #lemme see a #mkay #lemme see b #mkay #kthxbye",
			want:  "<!DOCTYPE html><html> first second</html>",
		},
		{
			name:  "Declaration Without Value Emits Nothing",
			input: "#hai #i haz x #lemme see x #mkay done #kthxbye",
			want:  "<!DOCTYPE html><html> done</html>",
		},
		{
			name:  "Multi Word Value In Title",
			input: "#hai #i haz t #it iz My Page #mkay #maek head #gimmeh title #lemme see t #mkay #oic #kthxbye",
			want:  "<!DOCTYPE html><html><head><title> My Page</title></head></html>",
		},
		{
			name:  "Upper Case Tags",
			input: "#HAI #MAEK PARAGRAF Hi #OIC #KTHXBYE",
			want:  "<!DOCTYPE html><html><p> Hi</p></html>",
		},
		{
			name:  "Paragraph Bindings Released On Close",
			input: "#hai #maek paragraf #i haz y #it iz a #mkay #oic #i haz y #it iz b #mkay #lemme see y #mkay #kthxbye",
			want:  "<!DOCTYPE html><html><p></p> b</html>",
		},
		{
			name:  "Nested List In Paragraph",
			input: "#hai #maek paragraf #maek list #gimmeh item #gimmeh bold x #mkay #mkay #oic #oic #kthxbye",
			want:  "<!DOCTYPE html><html><p><ul><li><b> x</b></li></ul></p></html>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Lex(tt.input)
			if err := Check(tokens); err != nil {
				t.Fatalf("Check failed: %v", err)
			}
			got, err := Generate(tokens)
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Generate:\n got: %s\nwant: %s", got, tt.want)
			}
		})
	}
}

func TestGenerateLeavesTokensIntact(t *testing.T) {
	tokens := Lex("#hai #i haz x #it iz v #mkay #maek paragraf #lemme see x #mkay #oic #kthxbye")
	before := append([]Token(nil), tokens...)

	first, err := Generate(tokens)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !reflect.DeepEqual(tokens, before) {
		t.Fatalf("Generate modified the caller's tokens")
	}
	second, err := Generate(tokens)
	if err != nil {
		t.Fatalf("second Generate failed: %v", err)
	}
	if first != second {
		t.Errorf("Generate is not repeatable:\n%s\n%s", first, second)
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{"Truncated Block", "#hai #maek", "unexpected end of input in block"},
		{"Closer Without Opener", "#hai #oic #kthxbye", "closes nothing"},
		{"Wrong Closer", "#hai #maek paragraf #mkay #oic #kthxbye", "cannot close </p>"},
		{"Unbound Variable", "#hai #lemme see x #mkay #kthxbye", "has no binding"},
		{"Left Open", "#hai #gimmeh bold x", "left open"},
		{"Missing Address", "#hai #gimmeh vidz #mkay #kthxbye", "expected ADDRESS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(Lex(tt.input))
			if err == nil {
				t.Fatalf("Generate(%q) succeeded, expected error", tt.input)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q does not contain %q", err, tt.contains)
			}
		})
	}
}
