package notation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"Lambda-Link/internal/vocab"
)

// Scanner 对 Λ 记号串做单遍左到右扫描。每个位置按固定顺序尝试：
// 空白、控制块、括号、域前缀原子、带消歧后缀的原子、discourse/emotion
// 双字符、extended 双字符（依赖上下文的完整解析链）、单字符、未知串。
// 最长匹配通过检查顺序表达，而不是逐一尝试各长度。
//
// 扫描是全函数：任何输入（包括未闭合的控制块）都产生有限记号序列。
// 控制块是扫描过程中唯一修改上下文的步骤，因此同一消息里靠前的
// {ns:...} 会改变其后记号的切分与解析，但不影响之前的记号。
type Scanner struct {
	table    *vocab.Table
	resolver *Resolver
}

// NewScanner 构造扫描器。
func NewScanner(table *vocab.Table) *Scanner {
	return &Scanner{table: table, resolver: NewResolver(table)}
}

// Resolver 返回扫描器共用的解析器。
func (s *Scanner) Resolver() *Resolver {
	return s.resolver
}

// Scan 把原始串切分为记号序列，控制块作为副作用施加到 ctx 上。
func (s *Scanner) Scan(raw string, ctx *Context) []Token {
	var tokens []Token
	pos := 0
	for pos < len(raw) {
		r, size := utf8.DecodeRuneInString(raw[pos:])

		// 空白被消费但不产出记号。
		if unicode.IsSpace(r) {
			pos += size
			continue
		}

		// 控制块：{...} 作为整体记号产出并施加到上下文。
		if raw[pos] == '{' {
			if end := strings.IndexByte(raw[pos:], '}'); end >= 0 {
				span := raw[pos : pos+end+1]
				parseBlock(span[1 : len(span)-1]).apply(ctx)
				tokens = append(tokens, Token{Kind: KindBlock, Text: span})
				pos += end + 1
				continue
			}
			// 未闭合的 { 吞到输入结尾作为未知字面串，保持扫描不失败。
			tokens = append(tokens, Token{Kind: KindLiteral, Text: raw[pos:]})
			break
		}

		if isBracket(raw[pos]) {
			tokens = append(tokens, Token{Kind: KindBracket, Text: raw[pos : pos+1]})
			pos++
			continue
		}

		if n := matchDomainPrefix(raw[pos:]); n > 0 {
			tokens = append(tokens, Token{Kind: KindAtom, Text: raw[pos : pos+n]})
			pos += n
			continue
		}

		if n := matchDisambiguated(raw[pos:]); n > 0 {
			tokens = append(tokens, Token{Kind: KindAtom, Text: raw[pos : pos+n]})
			pos += n
			continue
		}

		if n := s.matchDiscourseEmotion(raw[pos:]); n > 0 {
			tokens = append(tokens, Token{Kind: KindAtom, Text: raw[pos : pos+n]})
			pos += n
			continue
		}

		if n := s.matchExtended(raw[pos:], ctx); n > 0 {
			tokens = append(tokens, Token{Kind: KindAtom, Text: raw[pos : pos+n]})
			pos += n
			continue
		}

		if s.matchSingle(raw[pos:pos+size], ctx) {
			tokens = append(tokens, Token{Kind: KindAtom, Text: raw[pos : pos+size]})
			pos += size
			continue
		}

		// 未知串：贪婪消费直到遇到可匹配的位置、空白或花括号。
		// 至少前进一个字符，保证扫描终止。
		j := pos + size
		for j < len(raw) {
			next, nextSize := utf8.DecodeRuneInString(raw[j:])
			if unicode.IsSpace(next) || raw[j] == '{' || raw[j] == '}' || s.matchesKnown(raw[j:], ctx) {
				break
			}
			j += nextSize
		}
		tokens = append(tokens, Token{Kind: KindLiteral, Text: raw[pos:j]})
		pos = j
	}
	return tokens
}

// matchDomainPrefix 识别起始处的 <2-3 小写>:<2 小写> 形式，
// 返回匹配长度。
func matchDomainPrefix(s string) int {
	for _, n := range []int{2, 3} {
		if len(s) >= n+3 && s[n] == ':' &&
			isLowerASCIIRun(s[:n]) && isTwoLowerASCII(s[n+1:n+3]) {
			return n + 3
		}
	}
	return 0
}

// matchDisambiguated 识别起始处的 <两小写>'<标记> 或 <两小写>- 形式。
func matchDisambiguated(s string) int {
	if len(s) >= 4 && isTwoLowerASCII(s[:2]) && s[2] == '\'' &&
		s[3] != '-' && vocab.IsMarker(s[3]) {
		return 4
	}
	if len(s) >= 3 && isTwoLowerASCII(s[:2]) && s[2] == '-' {
		return 3
	}
	return 0
}

// matchDiscourseEmotion 仅查 discourse 与 emotion 表，不依赖上下文。
func (s *Scanner) matchDiscourseEmotion(input string) int {
	if len(input) < 2 {
		return 0
	}
	pair := input[:2]
	if _, ok := s.table.Discourse[pair]; ok {
		return 2
	}
	if _, ok := s.table.Emotion[pair]; ok {
		return 2
	}
	return 0
}

// matchExtended 通过完整解析链判定两个小写字母是否成对切分。
// 这使切分依赖上下文：同样两个字符是否合并，取决于之前激活的域
// 和本地定义。域私有的双字符原子只能靠这一步切出来。
func (s *Scanner) matchExtended(input string, ctx *Context) int {
	if len(input) < 2 || !isTwoLowerASCII(input[:2]) {
		return 0
	}
	if _, ok := s.resolver.Resolve(input[:2], vocab.LangEN, ctx); ok {
		return 2
	}
	return 0
}

// matchSingle 判定单字符是否可通过解析链解析，或者是消息类型标记。
func (s *Scanner) matchSingle(ch string, ctx *Context) bool {
	if _, ok := s.table.Type(ch); ok {
		return true
	}
	_, ok := s.resolver.Resolve(ch, vocab.LangEN, ctx)
	return ok
}

// matchesKnown 判定位置是否会被步骤 3-8 识别，供未知串终止判断使用。
func (s *Scanner) matchesKnown(input string, ctx *Context) bool {
	if isBracket(input[0]) {
		return true
	}
	if matchDomainPrefix(input) > 0 || matchDisambiguated(input) > 0 {
		return true
	}
	if s.matchDiscourseEmotion(input) > 0 || s.matchExtended(input, ctx) > 0 {
		return true
	}
	_, size := utf8.DecodeRuneInString(input)
	return s.matchSingle(input[:size], ctx)
}

func isBracket(ch byte) bool {
	return ch == '(' || ch == ')' || ch == '[' || ch == ']'
}
