package laurex

import (
	"reflect"
	"testing"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		wantErr bool
	}{
		{"simple literal", "hello", false},
		{"digit", `\d`, false},
		{"word", `\w+`, false},
		{"alternation", "foo|bar", false},
		{"repetition", "a+", false},
		{"unclosed bracket still compiles (lenient)", "(", false},
		{"bad quantifier range is fatal", "a{5,2}", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := Compile(tt.pattern)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Compile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && re == nil {
				t.Error("Compile() returned nil")
			}
		})
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustCompile did not panic on a fatal quantifier error")
		}
	}()
	MustCompile("a{5,2}")
}

func TestMatchString(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{"hello", "hello world", true},
		{"hello", "goodbye world", false},
		{`\d`, "age 42", true},
		{`\d`, "no digits here", false},
		{"foo|bar", "test bar end", true},
		{"foo|bar", "test baz end", false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			re := MustCompile(tt.pattern)
			if got := re.MatchString(tt.input); got != tt.want {
				t.Errorf("MatchString(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFindString(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    string
	}{
		{"hello", "say hello world", "hello"},
		{`\d+`, "age: 42 years", "42"},
		{"xyz", "abc def", ""},
		{"a", "banana", "a"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			re := MustCompile(tt.pattern)
			if got := re.FindString(tt.input); got != tt.want {
				t.Errorf("FindString(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFindStringIndex(t *testing.T) {
	re := MustCompile(`\d+`)
	got := re.FindStringIndex("age: 42 years")
	want := []int{5, 7}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindStringIndex() = %v, want %v", got, want)
	}
	if re.FindStringIndex("no digits") != nil {
		t.Error("FindStringIndex() should be nil for no match")
	}
}

func TestFindStringSubmatch(t *testing.T) {
	re := MustCompile(`(\w+)@(\w+)\.com`)
	got := re.FindStringSubmatch("contact alice@example.com today")
	want := []string{"alice@example.com", "alice", "example"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindStringSubmatch() = %v, want %v", got, want)
	}
}

func TestFindAllString(t *testing.T) {
	re := MustCompile(`\d+`)
	got := re.FindAllString("a1 b22 c333", -1)
	want := []string{"1", "22", "333"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindAllString() = %v, want %v", got, want)
	}
	got2 := re.FindAllString("a1 b22 c333", 2)
	want2 := []string{"1", "22"}
	if !reflect.DeepEqual(got2, want2) {
		t.Errorf("FindAllString(n=2) = %v, want %v", got2, want2)
	}
}

func TestFindAllStringIndex(t *testing.T) {
	re := MustCompile(`\d+`)
	got := re.FindAllStringIndex("a1 b22 c333", -1)
	want := [][]int{{1, 2}, {4, 6}, {8, 11}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindAllStringIndex() = %v, want %v", got, want)
	}
}

func TestSearchLongestMatchProperty(t *testing.T) {
	re := MustCompile("[a-c]{2,4}")
	idx := re.FindStringIndex("abcabd")
	if idx == nil {
		t.Fatal("expected a match")
	}
	span := "abcabd"[idx[0]:idx[1]]
	if span != "abca" {
		t.Errorf("longest match = %q, want %q", span, "abca")
	}
}

func TestSearchMatchConsistency(t *testing.T) {
	// search(r, s) succeeding implies match(r, substring) succeeds on
	// the reported substring. Only the span is compared here, not the
	// captures.
	re := MustCompile(`(a*)bc\1`)
	full := "xxaabcaaa"
	idx := re.FindStringSubmatchIndex(full)
	if idx == nil {
		t.Fatal("expected a match")
	}
	sub := full[idx[0]:idx[1]]
	again, ok := re.MatchExact([]rune(sub))
	if !ok || again.Span.Start != 0 || again.Span.End != len(sub) {
		t.Errorf("re-matching the reported substring failed: %v ok=%v", again, ok)
	}
}

func TestMatchExact(t *testing.T) {
	re := MustCompile(`a+b`)
	if _, ok := re.MatchExact([]rune("aaab")); !ok {
		t.Error("MatchExact should accept the whole string \"aaab\"")
	}
	if _, ok := re.MatchExact([]rune("aaabx")); ok {
		t.Error("MatchExact should reject \"aaabx\" (trailing x not consumed)")
	}
	if _, ok := re.MatchExact([]rune("xaaab")); ok {
		t.Error("MatchExact should reject \"xaaab\" (leading x not consumed)")
	}
}

func TestMatchExactCaptures(t *testing.T) {
	re := MustCompile(`(\w+)@(\w+)`)
	m, ok := re.MatchExact([]rune("alice@example"))
	if !ok {
		t.Fatal("expected MatchExact to succeed")
	}
	runes := []rune("alice@example")
	if string(runes[m.Groups[0].Span.Start:m.Groups[0].Span.End]) != "alice" {
		t.Errorf("group 1 = %q, want \"alice\"", string(runes[m.Groups[0].Span.Start:m.Groups[0].Span.End]))
	}
	if string(runes[m.Groups[1].Span.Start:m.Groups[1].Span.End]) != "example" {
		t.Errorf("group 2 = %q, want \"example\"", string(runes[m.Groups[1].Span.Start:m.Groups[1].Span.End]))
	}
}

func TestSearchScenario(t *testing.T) {
	re := MustCompile("a|b")
	runes := []rune("ab")
	m, ok := re.Search(runes)
	if !ok || m.Span.Start != 0 || m.Span.End != 1 {
		t.Errorf("Search(\"ab\") = %v ok=%v, want span [0,1)", m, ok)
	}
}

func TestEmptyPatternMatchesNothing(t *testing.T) {
	re := MustCompile("")
	if re.MatchString("anything") {
		t.Error("empty pattern compiles to an empty automaton and should match nothing")
	}
	if got := re.FindString("anything"); got != "" {
		t.Errorf("FindString() = %q, want \"\"", got)
	}
}

func TestNonCapturingGroupNoEffect(t *testing.T) {
	plain := MustCompile("ab|cd")
	wrapped := MustCompile("(?:ab|cd)")
	for _, s := range []string{"ab", "cd", "xx"} {
		if plain.MatchString(s) != wrapped.MatchString(s) {
			t.Errorf("non-capturing wrapper changed result on %q", s)
		}
	}
}

func TestNumSubexpAndSubexpNames(t *testing.T) {
	re := MustCompile(`(?<year>\d+)-(?<month>\d+)`)
	if re.NumSubexp() != 2 {
		t.Errorf("NumSubexp() = %d, want 2", re.NumSubexp())
	}
	names := re.SubexpNames()
	want := []string{"", "year", "month"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("SubexpNames() = %v, want %v", names, want)
	}
}

func TestQuoteMeta(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"abc", "abc"},
		{"a.b", `a\.b`},
		{"1+1=2", `1\+1=2`},
		{"(a)", `\(a\)`},
	}
	for _, tt := range tests {
		if got := QuoteMeta(tt.in); got != tt.want {
			t.Errorf("QuoteMeta(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCompileWithConfigStrict(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strict = true
	_, err := CompileWithConfig("[abc", cfg)
	if err == nil {
		t.Fatal("expected error under Strict config for unclosed bracket")
	}
	if err != ErrUnclosedBracket {
		t.Errorf("err = %v, want ErrUnclosedBracket", err)
	}
}

func TestPrefilterDoesNotChangeResults(t *testing.T) {
	pattern := "alfa|bravo|charlie|delta|echo|foxtrot|golf|hotel|india"
	input := "the quick golf fox jumps over the lazy dog near india"

	withPF := DefaultConfig()
	withPF.EnablePrefilter = true
	reWith, err := CompileWithConfig(pattern, withPF)
	if err != nil {
		t.Fatal(err)
	}

	withoutPF := DefaultConfig()
	withoutPF.EnablePrefilter = false
	reWithout, err := CompileWithConfig(pattern, withoutPF)
	if err != nil {
		t.Fatal(err)
	}

	a := reWith.FindAllString(input, -1)
	b := reWithout.FindAllString(input, -1)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("prefilter changed results: with=%v without=%v", a, b)
	}
}
