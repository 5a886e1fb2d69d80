package compiler

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		lexeme string
		want   Category
		ok     bool
	}{
		{"#hai", DocStart, true},
		{"#HAI", DocStart, true},
		{"#KthxBye", DocEnd, true},
		{"#obtw", CommentStart, true},
		{"#tldr", CommentEnd, true},
		{"#maek", BlockStart, true},
		{"#oic", BlockEnd, true},
		{"#gimmeh", ElemStart, true},
		{"#mkay", ElemEnd, true},
		{"#i", DeclStart, true},
		{"#it", DeclMid, true},
		{"#lemme", UseStart, true},
		{"head", ElemKeyword, true},
		{"PARAGRAF", ElemKeyword, true},
		{"soundz", ElemKeyword, true},
		{"hello", Text, true},
		{"hello,", Text, true},
		{"it's", Text, true},
		{`"quoted"`, Text, true},
		{"https://example.com/a.mp3", Text, true},
		{"a%20b", Address, true},
		{"haz", Text, true},

		{"#nope", Unrecognized, false},
		{"#", Unrecognized, false},
		{"#head", Unrecognized, false},
		{"hello#", Unrecognized, false},
		{"<b>", Unrecognized, false},
		{"a-b", Unrecognized, false},
		{"x=1", Unrecognized, false},
		{"héllo", Unrecognized, false},
	}

	for _, tt := range tests {
		got, ok := Classify(tt.lexeme)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Classify(%q) = (%s, %v), want (%s, %v)", tt.lexeme, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIsOverlappingCategories(t *testing.T) {
	tests := []struct {
		lexeme string
		cat    Category
		want   bool
	}{
		{"bold", ElemKeyword, true},
		{"bold", Text, true},
		{"bold", Identifier, true},
		{"abc", Identifier, true},
		{"abc1", Identifier, false},
		{"abc1", Text, true},
		{"hello", Address, true},
		{"a%20b", Address, true},
		{"a%20b", Text, false},
		{"#hai", Text, false},
		{"#HAI", DocStart, true},
		{"#hai", DocEnd, false},
		{"#it", DeclStart, false},
		{"#it", DeclMid, true},
		{"head", DocStart, false},
	}

	for _, tt := range tests {
		if got := Is(tt.lexeme, tt.cat); got != tt.want {
			t.Errorf("Is(%q, %s) = %v, want %v", tt.lexeme, tt.cat, got, tt.want)
		}
	}
}

func TestKeywordHelpers(t *testing.T) {
	if !IsKeyword("HEAD", KwHead) {
		t.Error("IsKeyword(HEAD, head) = false")
	}
	if IsKeyword("#head", KwHead) {
		t.Error("IsKeyword(#head, head) = true; tags are never element keywords")
	}
	if !IsMarker("Haz", MarkHaz) {
		t.Error("IsMarker(Haz, haz) = false")
	}
	if IsMarker("has", MarkHaz) {
		t.Error("IsMarker(has, haz) = true")
	}
	if got := TagSpelling(DocEnd); got != "#kthxbye" {
		t.Errorf("TagSpelling(DocEnd) = %q", got)
	}
	if got := TagSpelling(ElemEnd); got != "#mkay" {
		t.Errorf("TagSpelling(ElemEnd) = %q", got)
	}
}

func TestCategoryString(t *testing.T) {
	if got := DocStart.String(); got != "DOC_START" {
		t.Errorf("DocStart.String() = %q", got)
	}
	if got := Identifier.String(); got != "IDENTIFIER" {
		t.Errorf("Identifier.String() = %q", got)
	}
	if got := Category(99).String(); got != "Category(99)" {
		t.Errorf("Category(99).String() = %q", got)
	}
}
