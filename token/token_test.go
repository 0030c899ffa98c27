package token

import "testing"

func allTokens(src string) [][]rune {
	cur := NewCursor(src)
	var out [][]rune
	for !cur.AtEnd() {
		tok := cur.Next()
		if len(tok) == 0 {
			return nil
		}
		out = append(out, tok)
	}
	return out
}

func TestCursorNext(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"literal run", "abc", []string{"a", "b", "c"}},
		{"alternation", "a|b", []string{"a", "|", "b"}},
		{"quantifiers", "a*b+c?", []string{"a", "*", "b", "+", "c", "?"}},
		{"non-greedy", "a*?b+?", []string{"a", "*?", "b", "+?"}},
		{"anchors", "^abc$", []string{"^", "a", "b", "c", "$"}},
		{"wildcard", "a.b", []string{"a", ".", "b"}},
		{"class", "[a-z]+", []string{"[a-z]", "+"}},
		{"negated class with escape", `[^\]a]`, []string{`[^\]a]`}},
		{"brace quantifier", "a{2,4}", []string{"a", "{2,4}"}},
		{"lazy brace quantifier", "a{2,4}?", []string{"a", "{2,4}?"}},
		{"group", "(ab)c", []string{"(ab)", "c"}},
		{"nested group", "(a(b)c)d", []string{"(a(b)c)", "d"}},
		{"non-capturing group", "(?:ab)", []string{"(?:ab)"}},
		{"named group", "(?<name>ab)", []string{"(?<name>ab)"}},
		{"lookahead", "(?=ab)", []string{"(?=ab)"}},
		{"negative lookbehind", "(?<!ab)", []string{"(?<!ab)"}},
		{"escape digit", `\d+`, []string{`\d`, "+"}},
		{"escape backref", `\1\22`, []string{`\1`, `\22`}},
		{"plain literal", `A`, []string{`A`}},
		{"escape unicode", "\\u0041", []string{"\\u0041"}},
		{"escape hex", `\x41`, []string{`\x41`}},
		{"escape control", `\cA`, []string{`\cA`}},
		{"escape bare nul", `\0`, []string{`\0`}},
		{"escape literal", `\n`, []string{`\n`}},
		{"group with nested bracket", "(a[b)c]d)", []string{"(a[b)c]d)"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := allTokens(tt.src)
			if toks == nil && tt.want != nil {
				t.Fatalf("Next() failed on %q", tt.src)
			}
			if len(toks) != len(tt.want) {
				t.Fatalf("got %d tokens, want %d: %v", len(toks), len(tt.want), toks)
			}
			for i, tok := range toks {
				if string(tok) != tt.want[i] {
					t.Errorf("token[%d] = %q, want %q", i, string(tok), tt.want[i])
				}
			}
		})
	}
}

func TestCursorInvalid(t *testing.T) {
	tests := []string{
		"[abc",
		"(abc",
		"{1,2",
		`\`,
		`\u004`,
		`\x4`,
		`\c`,
		"]",
		"}",
		")",
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			cur := NewCursor(src)
			tok := cur.Next()
			if len(tok) != 0 {
				t.Errorf("Next(%q) = %q, want empty", src, string(tok))
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	patterns := []string{
		"a|b",
		"[a-c]{2,4}",
		"(?!abd)abc",
		`(a*)bc\1`,
		`(a*)(b*)c\1\1\2`,
		"(?:0|的)+",
		`^\w+@\w+\.\w+$`,
	}
	for _, p := range patterns {
		t.Run(p, func(t *testing.T) {
			toks := allTokens(p)
			if toks == nil {
				t.Fatalf("tokenizing %q failed", p)
			}
			got := Join(toks)
			if got != p {
				t.Errorf("Join(tokens) = %q, want %q", got, p)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		tok  string
		want Category
	}{
		{"a", CategoryChar},
		{"|", CategoryAlternation},
		{"*", CategoryQuantifier},
		{"+", CategoryQuantifier},
		{"?", CategoryQuantifier},
		{"{2,3}", CategoryQuantifier},
		{"^", CategoryAssertion},
		{"$", CategoryAssertion},
		{`\b`, CategoryAssertion},
		{`\B`, CategoryAssertion},
		{`\d`, CategoryChar},
		{`\1`, CategoryChar},
		{"(abc)", CategoryGroup},
		{"(?:abc)", CategoryGroup},
		{"(?<name>abc)", CategoryGroup},
		{"(?=abc)", CategoryAssertion},
		{"(?!abc)", CategoryAssertion},
		{"(?<=abc)", CategoryAssertion},
		{"(?<!abc)", CategoryAssertion},
		{"(?#abc)", CategoryError},
		{"[abc]", CategoryChar},
		{".", CategoryChar},
	}
	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			got := Classify([]rune(tt.tok))
			if got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.tok, got, tt.want)
			}
		})
	}
}

func TestGroupInner(t *testing.T) {
	tests := []struct {
		tok  string
		want string
	}{
		{"(abc)", "abc"},
		{"(?:abc)", "abc"},
		{"(?<name>abc)", "abc"},
		{"()", ""},
		{"(?:)", ""},
	}
	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			got := string(GroupInner([]rune(tt.tok)))
			if got != tt.want {
				t.Errorf("GroupInner(%q) = %q, want %q", tt.tok, got, tt.want)
			}
		})
	}
}

func TestGroupName(t *testing.T) {
	tests := []struct {
		tok  string
		want string
	}{
		{"(?<name>abc)", "name"},
		{"(abc)", ""},
		{"(?:abc)", ""},
	}
	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			got := GroupName([]rune(tt.tok))
			if got != tt.want {
				t.Errorf("GroupName(%q) = %q, want %q", tt.tok, got, tt.want)
			}
		})
	}
}

func TestAssertionBody(t *testing.T) {
	tests := []struct {
		tok  string
		want string
	}{
		{"(?=abc)", "abc"},
		{"(?!abc)", "abc"},
		{"(?<=abc)", "abc"},
		{"(?<!abc)", "abc"},
		{"^", ""},
		{"$", ""},
		{`\b`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			got := string(AssertionBody([]rune(tt.tok)))
			if got != tt.want {
				t.Errorf("AssertionBody(%q) = %q, want %q", tt.tok, got, tt.want)
			}
		})
	}
}

func TestIsWordRune(t *testing.T) {
	tests := []struct {
		r    rune
		want bool
	}{
		{'a', true}, {'Z', true}, {'5', true}, {'_', true},
		{' ', false}, {'.', false}, {'-', false},
	}
	for _, tt := range tests {
		if got := IsWordRune(tt.r); got != tt.want {
			t.Errorf("IsWordRune(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}
