package vocab

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	xerrors "Lambda-Link/internal/errors"
)

// document 描述外部词汇文件的结构。
type document struct {
	Version        int                            `yaml:"version"`
	Types          map[string]Rendering           `yaml:"types"`
	Entities       map[string]Rendering           `yaml:"entities"`
	Verbs          map[string]Rendering           `yaml:"verbs"`
	Modifiers      map[string]Rendering           `yaml:"modifiers"`
	Time           map[string]Rendering           `yaml:"time"`
	Quantifiers    map[string]Rendering           `yaml:"quantifiers"`
	Aspect         map[string]Rendering           `yaml:"aspect"`
	Extended       map[string]Rendering           `yaml:"extended"`
	Discourse      map[string]Rendering           `yaml:"discourse"`
	Emotion        map[string]Rendering           `yaml:"emotion"`
	Domains        map[string]Domain              `yaml:"domains"`
	Disambiguation map[string]DisambiguationEntry `yaml:"disambiguation"`
}

// Load 从 YAML 文件构建词汇表。任何缺失或畸形字段都在此处失败，
// 不会推迟到扫描阶段。
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.CodeConfiguration, err, "读取词汇文件失败")
	}
	return Parse(data)
}

// Parse 解析并校验词汇文档。
func Parse(data []byte) (*Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, xerrors.Wrap(xerrors.CodeConfiguration, err, "解析词汇文档失败")
	}
	if doc.Version < 1 {
		return nil, xerrors.New(xerrors.CodeConfiguration, "词汇文档缺少 version 标记")
	}

	table := &Table{
		Types:          doc.Types,
		Entities:       doc.Entities,
		Verbs:          doc.Verbs,
		Modifiers:      doc.Modifiers,
		Time:           doc.Time,
		Quantifiers:    doc.Quantifiers,
		Aspect:         doc.Aspect,
		Extended:       doc.Extended,
		Discourse:      doc.Discourse,
		Emotion:        doc.Emotion,
		Domains:        doc.Domains,
		Disambiguation: doc.Disambiguation,
	}
	for code, domain := range table.Domains {
		domain.Code = code
		table.Domains[code] = domain
	}
	if err := Validate(table); err != nil {
		return nil, err
	}
	return table, nil
}

// Validate 校验词汇表的结构不变量。
func Validate(t *Table) error {
	if t == nil {
		return xerrors.New(xerrors.CodeConfiguration, "词汇表为空")
	}
	if len(t.Types) == 0 {
		return xerrors.New(xerrors.CodeConfiguration, "types 分类不能为空")
	}
	if len(t.Extended) == 0 {
		return xerrors.New(xerrors.CodeConfiguration, "extended 分类不能为空")
	}

	singles := map[Category]map[string]Rendering{
		CategoryTypes:       t.Types,
		CategoryEntities:    t.Entities,
		CategoryVerbs:       t.Verbs,
		CategoryModifiers:   t.Modifiers,
		CategoryTime:        t.Time,
		CategoryQuantifiers: t.Quantifiers,
		CategoryAspect:      t.Aspect,
	}
	for category, mapping := range singles {
		for key, r := range mapping {
			if utf8.RuneCountInString(key) != 1 {
				return configErrf("%s 分类的键 %q 不是单字符", category, key)
			}
			if err := checkRendering(string(category), key, r); err != nil {
				return err
			}
		}
	}

	doubles := map[Category]map[string]Rendering{
		CategoryExtended:  t.Extended,
		CategoryDiscourse: t.Discourse,
		CategoryEmotion:   t.Emotion,
	}
	for category, mapping := range doubles {
		for key, r := range mapping {
			if !isTwoLower(key) {
				return configErrf("%s 分类的键 %q 不是两个小写字母", category, key)
			}
			if err := checkRendering(string(category), key, r); err != nil {
				return err
			}
		}
	}

	for code, domain := range t.Domains {
		if !isDomainCode(code) {
			return configErrf("域代码 %q 必须是 2-3 个小写字母", code)
		}
		if domain.Name.EN == "" || domain.Name.ZH == "" {
			return configErrf("域 %q 缺少显示名称", code)
		}
		for key, r := range domain.Atoms {
			if !isTwoLower(key) {
				return configErrf("域 %q 的原子 %q 不是两个小写字母", code, key)
			}
			if err := checkRendering("domain "+code, key, r); err != nil {
				return err
			}
		}
	}

	for key, entry := range t.Disambiguation {
		if _, ok := t.Extended[key]; !ok {
			return configErrf("消歧键 %q 在 extended 分类中没有主义项", key)
		}
		if entry.Primary.EN == "" || entry.Primary.ZH == "" {
			return configErrf("消歧键 %q 缺少主渲染", key)
		}
		for marker, r := range entry.Alternates {
			if len(marker) != 1 || !IsMarker(marker[0]) {
				return configErrf("消歧键 %q 的标记 %q 不在标记字母表内", key, marker)
			}
			if err := checkRendering("disambiguation "+key, marker, r); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkRendering(scope, key string, r Rendering) error {
	if strings.TrimSpace(r.EN) == "" || strings.TrimSpace(r.ZH) == "" {
		return configErrf("%s 中的 %q 缺少 en 或 zh 渲染", scope, key)
	}
	return nil
}

func configErrf(format string, args ...any) error {
	return xerrors.New(xerrors.CodeConfiguration, fmt.Sprintf(format, args...))
}

func isTwoLower(key string) bool {
	if len(key) != 2 {
		return false
	}
	return isLower(key[0]) && isLower(key[1])
}

func isDomainCode(code string) bool {
	if len(code) < 2 || len(code) > 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if !isLower(code[i]) {
			return false
		}
	}
	return true
}

func isLower(ch byte) bool {
	return ch >= 'a' && ch <= 'z'
}
