package notation

import (
	"strings"

	"Lambda-Link/internal/vocab"
)

// ResolvedToken 把原始记号与它的解析结果配对，供 API 返回给调用方。
type ResolvedToken struct {
	Kind      TokenKind `json:"kind"`
	Text      string    `json:"text"`
	Rendering string    `json:"rendering,omitempty"`
	Resolved  bool      `json:"resolved"`
}

// Result 是一次渲染的结果。
type Result struct {
	Text       string          `json:"text"`
	Type       string          `json:"type,omitempty"`
	Tokens     []ResolvedToken `json:"tokens,omitempty"`
	Unresolved []string        `json:"unresolved,omitempty"`
}

// Renderer 组合扫描器与解析器，产出目标语言的自然语言串。
// 英文用空格连接，中文不加分隔；消息类型取第一个 types 命中，
// 作为括号前缀；控制块被抑制；未解析记号以方括号包住原文。
type Renderer struct {
	table    *vocab.Table
	scanner  *Scanner
	resolver *Resolver
}

// NewRenderer 构造渲染器。
func NewRenderer(table *vocab.Table) *Renderer {
	scanner := NewScanner(table)
	return &Renderer{table: table, scanner: scanner, resolver: scanner.Resolver()}
}

// Scanner 暴露底层扫描器，供需要原始记号序列的调用方使用。
func (r *Renderer) Scanner() *Scanner {
	return r.scanner
}

// Resolver 暴露底层解析器。
func (r *Renderer) Resolver() *Resolver {
	return r.resolver
}

// Render 把 Λ 串翻译为指定语言的渲染，ctx 在扫描过程中可能被控制块
// 修改，修改只影响其后的记号。
func (r *Renderer) Render(raw string, lang vocab.Language, ctx *Context) Result {
	if ctx == nil {
		ctx = NewContext()
	}
	tokens := r.scanner.Scan(raw, ctx)

	result := Result{Tokens: make([]ResolvedToken, 0, len(tokens))}
	var parts []string

	for _, tok := range tokens {
		resolved := ResolvedToken{Kind: tok.Kind, Text: tok.Text}
		switch tok.Kind {
		case KindBlock:
			// 控制块不进入输出。
		case KindBracket:
			resolved.Rendering = tok.Text
			resolved.Resolved = true
			parts = append(parts, tok.Text)
		default:
			if rendering, ok := r.table.Type(tok.Text); ok {
				// 类型标记成为前缀，不进入正文；取第一个命中。
				resolved.Rendering = rendering.In(lang)
				resolved.Resolved = true
				if result.Type == "" {
					result.Type = rendering.In(lang)
				}
				break
			}
			if rendering, ok := r.resolver.Resolve(tok.Text, lang, ctx); ok {
				resolved.Rendering = rendering
				resolved.Resolved = true
				parts = append(parts, rendering)
				break
			}
			resolved.Rendering = "[" + tok.Text + "]"
			parts = append(parts, resolved.Rendering)
			result.Unresolved = append(result.Unresolved, tok.Text)
		}
		result.Tokens = append(result.Tokens, resolved)
	}

	separator := " "
	if lang == vocab.LangZH {
		separator = ""
	}
	result.Text = strings.Join(parts, separator)
	if result.Type != "" {
		if result.Text == "" {
			result.Text = "(" + result.Type + ")"
		} else {
			result.Text = "(" + result.Type + ") " + result.Text
		}
	}
	return result
}
