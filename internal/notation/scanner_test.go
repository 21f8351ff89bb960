package notation

import (
	"reflect"
	"strings"
	"testing"
	"unicode"

	"Lambda-Link/internal/vocab"
)

func newTestScanner() *Scanner {
	return NewScanner(vocab.Builtin())
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func tokenTexts(tokens []Token) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Text)
	}
	return out
}

func TestScanTotality(t *testing.T) {
	scanner := newTestScanner()
	inputs := []string{
		"",
		"   \t\n ",
		"?Uk/co",
		"((()",
		"][",
		"{ns:cd",
		"{def:fe=custom",
		"}}}",
		"€€ unknown €",
		"!Ide'E lo- cd:bg {ns:md}dx",
	}
	for _, input := range inputs {
		first := scanner.Scan(input, NewContext())
		second := scanner.Scan(input, NewContext())
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("scan of %q not deterministic: %v vs %v", input, first, second)
		}
	}
}

func TestScanTokenCoverage(t *testing.T) {
	scanner := newTestScanner()
	inputs := []string{
		"?Uk/co",
		"! I de'E ",
		"{ns:cd}!If/bg",
		"{def:fe=custom}!Ife",
		"zzz (unknown) [w]",
		"{ns:cd and never closed",
	}
	for _, input := range inputs {
		tokens := scanner.Scan(input, NewContext())
		joined := strings.Join(tokenTexts(tokens), "")
		if stripSpace(joined) != stripSpace(input) {
			t.Fatalf("token texts of %q do not cover input: got %q", input, joined)
		}
	}
}

func TestScanWhitespaceSkipped(t *testing.T) {
	scanner := newTestScanner()
	tokens := scanner.Scan("? U k", NewContext())
	want := []string{"?", "U", "k"}
	if !reflect.DeepEqual(tokenTexts(tokens), want) {
		t.Fatalf("unexpected tokens: %v", tokens)
	}
}

func TestScanDisambiguatedAtoms(t *testing.T) {
	scanner := newTestScanner()

	tokens := scanner.Scan("!Ide'E", NewContext())
	want := []string{"!", "I", "de'E"}
	if !reflect.DeepEqual(tokenTexts(tokens), want) {
		t.Fatalf("unexpected tokens: %v", tokens)
	}

	tokens = scanner.Scan("!Ilo-", NewContext())
	want = []string{"!", "I", "lo-"}
	if !reflect.DeepEqual(tokenTexts(tokens), want) {
		t.Fatalf("unexpected tokens: %v", tokens)
	}
}

func TestScanDomainPrefix(t *testing.T) {
	scanner := newTestScanner()
	tokens := scanner.Scan("cd:bg", NewContext())
	if len(tokens) != 1 || tokens[0].Text != "cd:bg" || tokens[0].Kind != KindAtom {
		t.Fatalf("expected one domain-prefixed atom, got %v", tokens)
	}
}

func TestScanControlBlockMutatesContext(t *testing.T) {
	scanner := newTestScanner()
	ctx := NewContext()
	tokens := scanner.Scan("{ns:cd}!If/bg", ctx)

	if domains := ctx.ActiveDomains(); len(domains) != 1 || domains[0] != "cd" {
		t.Fatalf("expected cd activated, got %v", domains)
	}
	if tokens[0].Kind != KindBlock || tokens[0].Text != "{ns:cd}" {
		t.Fatalf("expected leading block token, got %v", tokens[0])
	}
	want := []string{"{ns:cd}", "!", "I", "f", "/", "bg"}
	if !reflect.DeepEqual(tokenTexts(tokens), want) {
		t.Fatalf("unexpected tokens: %v", tokens)
	}
}

func TestScanContextSensitivePair(t *testing.T) {
	scanner := newTestScanner()

	// bg 不是全局词汇：没有激活域时拆不成双字符原子。
	tokens := scanner.Scan("bg", NewContext())
	if len(tokens) == 1 && tokens[0].Text == "bg" && tokens[0].Kind == KindAtom {
		t.Fatalf("bg should not tokenize as a pair without domain cd: %v", tokens)
	}

	ctx := NewContext()
	ctx.ActivateDomain("cd")
	tokens = scanner.Scan("bg", ctx)
	if len(tokens) != 1 || tokens[0].Text != "bg" || tokens[0].Kind != KindAtom {
		t.Fatalf("bg should tokenize as a pair with domain cd active: %v", tokens)
	}
}

func TestScanDefinitionBlock(t *testing.T) {
	scanner := newTestScanner()
	ctx := NewContext()
	scanner.Scan(`{def:fe=custom,qq="quoted value"}`, ctx)

	if v, ok := ctx.Definition("fe"); !ok || v != "custom" {
		t.Fatalf("expected fe defined as custom, got %q (%v)", v, ok)
	}
	if v, ok := ctx.Definition("qq"); !ok || v != "quoted value" {
		t.Fatalf("expected quotes stripped, got %q (%v)", v, ok)
	}
}

func TestScanUnterminatedBlock(t *testing.T) {
	scanner := newTestScanner()
	ctx := NewContext()
	tokens := scanner.Scan("!I{ns:cd and more", ctx)

	last := tokens[len(tokens)-1]
	if last.Kind != KindLiteral || last.Text != "{ns:cd and more" {
		t.Fatalf("unterminated block should become a literal run, got %v", last)
	}
	if len(ctx.ActiveDomains()) != 0 {
		t.Fatalf("unterminated block must not mutate context: %v", ctx.ActiveDomains())
	}
}

func TestScanUnknownRun(t *testing.T) {
	scanner := newTestScanner()
	tokens := scanner.Scan("xyzk", NewContext())

	// x、y、z 均不可解析，k 是动词：未知串在 k 前停下。
	want := []string{"xyz", "k"}
	if !reflect.DeepEqual(tokenTexts(tokens), want) {
		t.Fatalf("unexpected tokens: %v", tokens)
	}
	if tokens[0].Kind != KindLiteral || tokens[1].Kind != KindAtom {
		t.Fatalf("unexpected kinds: %v", tokens)
	}
}
