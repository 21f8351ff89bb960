package notation

import "fmt"

// TokenKind 区分扫描器产出的记号种类。
type TokenKind uint8

const (
	// KindAtom 是可交给解析链的原子键，可能带消歧后缀或域前缀。
	KindAtom TokenKind = iota
	// KindBracket 是单字符的括号记号。
	KindBracket
	// KindBlock 是完整的 {...} 控制块，渲染时被抑制。
	KindBlock
	// KindLiteral 是无法识别的字面串。
	KindLiteral
)

// String 返回记号种类名称。
func (k TokenKind) String() string {
	switch k {
	case KindAtom:
		return "ATOM"
	case KindBracket:
		return "BRACKET"
	case KindBlock:
		return "BLOCK"
	case KindLiteral:
		return "LITERAL"
	default:
		return "UNKNOWN"
	}
}

// Token 是扫描器产出的一个原始记号。Text 始终是输入串的原样切片，
// 因此所有记号的 Text 加上跳过的空白可以精确还原输入。
type Token struct {
	Kind TokenKind
	Text string
}

// String 返回调试表示。
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
}
