package notation

import (
	"Lambda-Link/internal/vocab"
)

// outcome 是单个解析策略的三值结果。
type outcome uint8

const (
	// miss 表示本策略不命中，继续沿链查找。
	miss outcome = iota
	// hit 表示命中，返回渲染。
	hit
	// stop 表示本策略对该记号有最终裁决权且裁决为未解析，
	// 不再落入后续策略。
	stop
)

// query 是一次解析请求：记号拆分出的基键与可选标记，加上目标语言
// 和会话上下文。
type query struct {
	base   string
	marker string
	lang   vocab.Language
	ctx    *Context
}

// strategy 是解析链上的一环。
type strategy func(r *Resolver, q query) (string, outcome)

// Resolver 按固定优先级链解析记号：本地定义、消歧表、显式域前缀、
// 已激活域（按激活顺序）、discourse、emotion、extended、核心分类。
// 优先级表达为有序切片而不是嵌套分支，便于单独测试每一级。
type Resolver struct {
	table *vocab.Table
	chain []strategy
}

// NewResolver 构造解析器。
func NewResolver(table *vocab.Table) *Resolver {
	return &Resolver{
		table: table,
		chain: []strategy{
			resolveDefinition,
			resolveDisambiguation,
			resolveDomainPrefix,
			resolveActiveDomains,
			resolveDiscourse,
			resolveEmotion,
			resolveExtended,
			resolveCore,
		},
	}
}

// Resolve 解析一个原始记号。返回渲染串与是否命中；未命中是正常
// 结果值而非错误，调用方以括号字面量兜底。
func (r *Resolver) Resolve(token string, lang vocab.Language, ctx *Context) (string, bool) {
	if token == "" {
		return "", false
	}
	base, marker := splitMarker(token)
	q := query{base: base, marker: marker, lang: lang, ctx: ctx}
	for _, step := range r.chain {
		rendering, result := step(r, q)
		switch result {
		case hit:
			return rendering, true
		case stop:
			return "", false
		}
	}
	return "", false
}

// splitMarker 先于一切解析拆掉消歧后缀：<两小写>'<标记> 或 <两小写>-。
// 引号形式对标记字符保持宽松，无法识别的标记由消歧策略回退到主义项。
func splitMarker(token string) (base, marker string) {
	if len(token) == 4 && isTwoLowerASCII(token[:2]) && token[2] == '\'' {
		return token[:2], token[3:]
	}
	if len(token) == 3 && isTwoLowerASCII(token[:2]) && token[2] == '-' {
		return token[:2], "-"
	}
	return token, ""
}

// splitDomainPrefix 识别 <2-3 小写>:<2 小写> 形式。
func splitDomainPrefix(token string) (code, atom string, ok bool) {
	for _, n := range []int{3, 2} {
		if len(token) == n+3 && token[n] == ':' &&
			isLowerASCIIRun(token[:n]) && isTwoLowerASCII(token[n+1:]) {
			return token[:n], token[n+1:], true
		}
	}
	return "", "", false
}

// resolveDefinition 让本地定义压倒一切其他路径；
// 定义的字面串与渲染语言无关。
func resolveDefinition(_ *Resolver, q query) (string, outcome) {
	if q.ctx == nil {
		return "", miss
	}
	if value, ok := q.ctx.Definition(q.base); ok {
		return value, hit
	}
	return "", miss
}

// resolveDisambiguation 处理重载键：带已知标记取备选项，
// 标记缺失或无法识别取主义项。
func resolveDisambiguation(r *Resolver, q query) (string, outcome) {
	entry, ok := r.table.Disambiguated(q.base)
	if !ok {
		return "", miss
	}
	if q.marker != "" {
		if alt, ok := entry.Alternates[q.marker]; ok {
			return alt.In(q.lang), hit
		}
	}
	return entry.Primary.In(q.lang), hit
}

// resolveDomainPrefix 处理显式 domain:atom 形式。域或原子不存在时
// 该步有最终裁决权，不会落入部分匹配。
func resolveDomainPrefix(r *Resolver, q query) (string, outcome) {
	code, atom, ok := splitDomainPrefix(q.base)
	if !ok {
		return "", miss
	}
	domain, ok := r.table.Domain(code)
	if !ok {
		return "", stop
	}
	rendering, ok := domain.Atoms[atom]
	if !ok {
		return "", stop
	}
	return rendering.In(q.lang), hit
}

// resolveActiveDomains 按激活顺序查找各域，第一个含键的域胜出。
func resolveActiveDomains(r *Resolver, q query) (string, outcome) {
	if q.ctx == nil {
		return "", miss
	}
	for _, code := range q.ctx.ActiveDomains() {
		domain, ok := r.table.Domain(code)
		if !ok {
			continue
		}
		if rendering, ok := domain.Atoms[q.base]; ok {
			return rendering.In(q.lang), hit
		}
	}
	return "", miss
}

func resolveDiscourse(r *Resolver, q query) (string, outcome) {
	if rendering, ok := r.table.Discourse[q.base]; ok {
		return rendering.In(q.lang), hit
	}
	return "", miss
}

func resolveEmotion(r *Resolver, q query) (string, outcome) {
	if rendering, ok := r.table.Emotion[q.base]; ok {
		return rendering.In(q.lang), hit
	}
	return "", miss
}

func resolveExtended(r *Resolver, q query) (string, outcome) {
	if rendering, ok := r.table.Extended[q.base]; ok {
		return rendering.In(q.lang), hit
	}
	return "", miss
}

func resolveCore(r *Resolver, q query) (string, outcome) {
	if rendering, ok := r.table.Core(q.base); ok {
		return rendering.In(q.lang), hit
	}
	return "", miss
}

func isTwoLowerASCII(s string) bool {
	return len(s) == 2 && isLowerASCII(s[0]) && isLowerASCII(s[1])
}

func isLowerASCIIRun(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isLowerASCII(s[i]) {
			return false
		}
	}
	return len(s) > 0
}

func isLowerASCII(ch byte) bool {
	return ch >= 'a' && ch <= 'z'
}
