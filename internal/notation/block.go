package notation

import "strings"

// blockKind 标记控制块的变体。
type blockKind uint8

const (
	blockUnknown blockKind = iota
	blockNamespace
	blockDefinition
)

// definition 是 {def:...} 中的一个 key=value 对。
type definition struct {
	key   string
	value string
}

// blockOp 是控制块小语法的解析结果：要么激活一个域，要么安装一组
// 本地定义。无法识别的块内容解析为 blockUnknown，对上下文无影响，
// 但整个 {...} 跨度仍作为块记号产出。
type blockOp struct {
	kind        blockKind
	domain      string
	definitions []definition
}

// parseBlock 解析去掉花括号后的块内容。
func parseBlock(content string) blockOp {
	if rest, ok := strings.CutPrefix(content, "ns:"); ok {
		return blockOp{kind: blockNamespace, domain: strings.TrimSpace(rest)}
	}
	if rest, ok := strings.CutPrefix(content, "def:"); ok {
		op := blockOp{kind: blockDefinition}
		for _, pair := range strings.Split(rest, ",") {
			key, value, found := strings.Cut(pair, "=")
			if !found {
				continue
			}
			key = strings.TrimSpace(key)
			value = strings.TrimSpace(value)
			// 值可以用双引号包裹，引号被剥除。
			if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
				value = value[1 : len(value)-1]
			}
			if key == "" {
				continue
			}
			op.definitions = append(op.definitions, definition{key: key, value: value})
		}
		return op
	}
	return blockOp{kind: blockUnknown}
}

// apply 把控制块作用到会话上下文上。这是扫描过程中唯一修改
// 上下文的路径。
func (op blockOp) apply(ctx *Context) {
	switch op.kind {
	case blockNamespace:
		ctx.ActivateDomain(op.domain)
	case blockDefinition:
		for _, def := range op.definitions {
			ctx.DefineLocal(def.key, def.value)
		}
	}
}
