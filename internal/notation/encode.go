package notation

import (
	"strings"

	"Lambda-Link/internal/vocab"
)

// Encoder 把简单英文启发式转换为 Λ 记号串。这是基于关键词替换的
// 单向转换：不可逆，不做真正的歧义消解。反查表在构造时建立一次，
// 取每个英文渲染以 "/" 分隔的第一段作为关键词。
type Encoder struct {
	reverse map[string]string
}

// NewEncoder 从词汇表构造编码器。
func NewEncoder(table *vocab.Table) *Encoder {
	reverse := make(map[string]string)
	mappings := []map[string]vocab.Rendering{
		table.Entities, table.Verbs, table.Modifiers,
		table.Time, table.Quantifiers, table.Aspect, table.Extended,
	}
	for _, mapping := range mappings {
		for key, rendering := range mapping {
			word := strings.ToLower(strings.SplitN(rendering.EN, "/", 2)[0])
			if word == "" {
				continue
			}
			if _, exists := reverse[word]; !exists {
				reverse[word] = key
			}
		}
	}
	return &Encoder{reverse: reverse}
}

// imperativeLeads 出现在句首时提示命令类型。
var imperativeLeads = map[string]bool{
	"please": true,
	"do":     true,
	"find":   true,
	"make":   true,
	"create": true,
}

// Encode 把英文文本转换为 Λ 串。问号结尾推断为问题类型，
// 祈使开头推断为命令，否则为陈述。冠词被跳过。
func (e *Encoder) Encode(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	isQuestion := strings.HasSuffix(text, "?")

	var cleaned strings.Builder
	for _, r := range text {
		if r == '?' || isWordRune(r) || r == ' ' {
			if r == '?' {
				continue
			}
			cleaned.WriteRune(r)
		}
	}
	words := strings.Fields(cleaned.String())

	var out strings.Builder
	switch {
	case isQuestion:
		out.WriteString("?")
	case leadsImperative(words):
		out.WriteString(".")
	default:
		out.WriteString("!")
	}

	for _, word := range words {
		if word == "the" || word == "a" || word == "an" {
			continue
		}
		if key, ok := e.reverse[word]; ok {
			out.WriteString(key)
		}
	}
	return out.String()
}

func leadsImperative(words []string) bool {
	limit := 2
	if len(words) < limit {
		limit = len(words)
	}
	for _, word := range words[:limit] {
		if imperativeLeads[word] {
			return true
		}
	}
	return false
}

func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') ||
		(r >= 'A' && r <= 'Z')
}
