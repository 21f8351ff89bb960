package vocab

import (
	"errors"
	"testing"

	xerrors "Lambda-Link/internal/errors"
)

const minimalDoc = `
version: 3
types:
  "!": {en: statement, zh: 陈述}
  "?": {en: question, zh: 问题}
entities:
  I: {en: I, zh: 我}
verbs:
  k: {en: know, zh: 知道}
extended:
  de: {en: decide, zh: 决定}
domains:
  cd:
    name: {en: code, zh: 代码}
    atoms:
      bg: {en: bug, zh: 缺陷}
disambiguation:
  de:
    primary: {en: decide, zh: 决定}
    alternates:
      E: {en: death, zh: 死亡}
`

func TestParseMinimalDocument(t *testing.T) {
	table, err := Parse([]byte(minimalDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if r, ok := table.Core("k"); !ok || r.EN != "know" {
		t.Fatalf("verbs not loaded: %+v (%v)", r, ok)
	}
	domain, ok := table.Domain("cd")
	if !ok || domain.Code != "cd" || domain.Atoms["bg"].ZH != "缺陷" {
		t.Fatalf("domain not loaded: %+v (%v)", domain, ok)
	}
	entry, ok := table.Disambiguated("de")
	if !ok || entry.Alternates["E"].EN != "death" {
		t.Fatalf("disambiguation not loaded: %+v (%v)", entry, ok)
	}
}

func TestParseRejectsMissingVersion(t *testing.T) {
	_, err := Parse([]byte(`types: {"!": {en: statement, zh: 陈述}}`))
	if err == nil {
		t.Fatal("expected configuration error")
	}
	if !errors.Is(err, xerrors.New(xerrors.CodeConfiguration, "")) {
		t.Fatalf("expected CONFIGURATION code, got %v", err)
	}
}

func TestParseRejectsOrphanDisambiguation(t *testing.T) {
	doc := `
version: 3
types:
  "!": {en: statement, zh: 陈述}
extended:
  de: {en: decide, zh: 决定}
disambiguation:
  lo:
    primary: {en: love, zh: 爱}
`
	if _, err := Parse([]byte(doc)); err == nil {
		t.Fatal("disambiguation key without extended primary should fail eagerly")
	}
}

func TestParseRejectsBadMarker(t *testing.T) {
	doc := `
version: 3
types:
  "!": {en: statement, zh: 陈述}
extended:
  de: {en: decide, zh: 决定}
disambiguation:
  de:
    primary: {en: decide, zh: 决定}
    alternates:
      Q: {en: wrong, zh: 错}
`
	if _, err := Parse([]byte(doc)); err == nil {
		t.Fatal("marker outside the fixed alphabet should fail")
	}
}

func TestParseRejectsBadKeys(t *testing.T) {
	cases := map[string]string{
		"multi-char single": `
version: 3
types:
  "!!": {en: statement, zh: 陈述}
extended:
  de: {en: decide, zh: 决定}
`,
		"bad extended key": `
version: 3
types:
  "!": {en: statement, zh: 陈述}
extended:
  dEc: {en: decide, zh: 决定}
`,
		"bad domain code": `
version: 3
types:
  "!": {en: statement, zh: 陈述}
extended:
  de: {en: decide, zh: 决定}
domains:
  c:
    name: {en: code, zh: 代码}
    atoms:
      bg: {en: bug, zh: 缺陷}
`,
		"missing zh rendering": `
version: 3
types:
  "!": {en: statement}
extended:
  de: {en: decide, zh: 决定}
`,
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Fatalf("%s: expected validation failure", name)
		}
	}
}
