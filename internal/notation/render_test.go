package notation

import (
	"strings"
	"testing"

	"Lambda-Link/internal/vocab"
)

func newTestRenderer() *Renderer {
	return NewRenderer(vocab.Builtin())
}

func TestRenderEnglishBasics(t *testing.T) {
	renderer := newTestRenderer()
	result := renderer.Render("?Uk/co", vocab.LangEN, NewContext())

	if result.Type != "question" {
		t.Fatalf("expected question type prefix, got %q", result.Type)
	}
	if result.Text != "(question) you know or cooperate" {
		t.Fatalf("unexpected rendering: %q", result.Text)
	}
}

func TestRenderChineseNoSeparator(t *testing.T) {
	renderer := newTestRenderer()
	result := renderer.Render("?Uk", vocab.LangZH, NewContext())
	if result.Text != "(问题) 你知道" {
		t.Fatalf("unexpected rendering: %q", result.Text)
	}
}

func TestRenderDisambiguation(t *testing.T) {
	renderer := newTestRenderer()

	result := renderer.Render("!Ide'E", vocab.LangEN, NewContext())
	if !strings.Contains(result.Text, "death") || strings.Contains(result.Text, "decide") {
		t.Fatalf("de'E should render death: %q", result.Text)
	}

	result = renderer.Render("!Ilo-", vocab.LangEN, NewContext())
	if !strings.Contains(result.Text, "lose") || strings.Contains(result.Text, "love") {
		t.Fatalf("lo- should render lose: %q", result.Text)
	}
}

func TestRenderNamespaceActivation(t *testing.T) {
	renderer := newTestRenderer()
	ctx := NewContext()
	result := renderer.Render("{ns:cd}!If/bg", vocab.LangEN, ctx)

	if domains := ctx.ActiveDomains(); len(domains) != 1 || domains[0] != "cd" {
		t.Fatalf("cd should be active after render: %v", domains)
	}
	if !strings.Contains(result.Text, "bug") {
		t.Fatalf("bg should resolve through domain cd: %q", result.Text)
	}
	if strings.Contains(result.Text, "{ns:cd}") {
		t.Fatalf("block token should be suppressed: %q", result.Text)
	}
}

func TestRenderLocalDefinition(t *testing.T) {
	renderer := newTestRenderer()
	result := renderer.Render("{def:fe=custom}!Ife", vocab.LangEN, NewContext())
	if !strings.Contains(result.Text, "custom") {
		t.Fatalf("fe should resolve to custom: %q", result.Text)
	}
	if strings.Contains(result.Text, "feel") || strings.Contains(result.Text, "fear") {
		t.Fatalf("definition should override feel/fear: %q", result.Text)
	}
}

func TestRenderUnresolvedBracketed(t *testing.T) {
	renderer := newTestRenderer()
	result := renderer.Render("?qq", vocab.LangEN, NewContext())
	if result.Text != "(question) [qq]" {
		t.Fatalf("unresolved token should be bracketed: %q", result.Text)
	}
	if len(result.Unresolved) != 1 || result.Unresolved[0] != "qq" {
		t.Fatalf("unexpected unresolved list: %v", result.Unresolved)
	}
}

func TestRenderBracketsPassThrough(t *testing.T) {
	renderer := newTestRenderer()
	result := renderer.Render("(Ik)", vocab.LangEN, NewContext())
	if result.Text != "( I know )" {
		t.Fatalf("brackets should pass through: %q", result.Text)
	}
}

func TestRenderEmptyInput(t *testing.T) {
	renderer := newTestRenderer()
	if result := renderer.Render("", vocab.LangEN, NewContext()); result.Text != "" {
		t.Fatalf("empty input should render empty, got %q", result.Text)
	}
	if result := renderer.Render("   ", vocab.LangEN, NewContext()); result.Text != "" {
		t.Fatalf("whitespace input should render empty, got %q", result.Text)
	}
}

func TestRenderSessionPersistence(t *testing.T) {
	renderer := newTestRenderer()
	ctx := NewContext()

	renderer.Render("{ns:cd}", vocab.LangEN, ctx)
	result := renderer.Render("!Ifbg", vocab.LangEN, ctx)
	if !strings.Contains(result.Text, "bug") {
		t.Fatalf("activation should persist across calls sharing a context: %q", result.Text)
	}
}

func TestEncodeHeuristics(t *testing.T) {
	encoder := NewEncoder(vocab.Builtin())

	if got := encoder.Encode("do you know?"); got != "?dUk" {
		t.Fatalf("unexpected encoding: %q", got)
	}
	if got := encoder.Encode("I want the memory"); got != "!Iwme" {
		t.Fatalf("unexpected encoding: %q", got)
	}
	if got := encoder.Encode("please find it"); !strings.HasPrefix(got, ".") {
		t.Fatalf("imperative should encode as command: %q", got)
	}
}
