package vocab

// Language 标识渲染目标语言。
type Language string

const (
	LangEN Language = "en"
	LangZH Language = "zh"
)

// Rendering 保存一个原子在所有目标语言下的显示文本。
type Rendering struct {
	EN string `yaml:"en" json:"en"`
	ZH string `yaml:"zh" json:"zh"`
}

// In 返回指定语言的显示文本，未知语言回退到英文。
func (r Rendering) In(lang Language) string {
	if lang == LangZH {
		return r.ZH
	}
	return r.EN
}

// Category 指向表内的一个原子分类。
type Category string

const (
	CategoryTypes       Category = "types"
	CategoryEntities    Category = "entities"
	CategoryVerbs       Category = "verbs"
	CategoryModifiers   Category = "modifiers"
	CategoryTime        Category = "time"
	CategoryQuantifiers Category = "quantifiers"
	CategoryAspect      Category = "aspect"
	CategoryExtended    Category = "extended"
	CategoryDiscourse   Category = "discourse"
	CategoryEmotion     Category = "emotion"
)

// Domain 是一个可激活的命名词汇空间。未激活时其中的原子不可见。
type Domain struct {
	Code  string               `yaml:"-" json:"code"`
	Name  Rendering            `yaml:"name" json:"name"`
	Atoms map[string]Rendering `yaml:"atoms" json:"atoms"`
}

// DisambiguationEntry 为语义重载的两字符原子提供主义项与标记备选项。
type DisambiguationEntry struct {
	Primary    Rendering            `yaml:"primary" json:"primary"`
	Alternates map[string]Rendering `yaml:"alternates" json:"alternates"`
}

// Markers 是消歧标记的固定字母表。"-" 作为后缀标记单独处理，
// 其余标记以 <key>'<marker> 的形式出现。
const Markers = "EVS23"

// IsMarker 判断字符是否属于标记字母表。
func IsMarker(ch byte) bool {
	for i := 0; i < len(Markers); i++ {
		if Markers[i] == ch {
			return true
		}
	}
	return ch == '-'
}

// Table 是进程级只读的词汇表。构造完成后不再修改，可被任意数量的
// 并发翻译调用共享。
type Table struct {
	Types       map[string]Rendering
	Entities    map[string]Rendering
	Verbs       map[string]Rendering
	Modifiers   map[string]Rendering
	Time        map[string]Rendering
	Quantifiers map[string]Rendering
	Aspect      map[string]Rendering
	Extended    map[string]Rendering
	Discourse   map[string]Rendering
	Emotion     map[string]Rendering

	Domains        map[string]Domain
	Disambiguation map[string]DisambiguationEntry
}

// singleCharCategories 按分类优先级排列单字符分类。
func (t *Table) singleCharCategories() []map[string]Rendering {
	return []map[string]Rendering{
		t.Types, t.Entities, t.Verbs, t.Modifiers, t.Time, t.Quantifiers, t.Aspect,
	}
}

// Core 在单字符核心分类中查找原子，按分类优先级取第一个命中。
func (t *Table) Core(key string) (Rendering, bool) {
	for _, category := range t.singleCharCategories() {
		if r, ok := category[key]; ok {
			return r, true
		}
	}
	return Rendering{}, false
}

// Type 判断原子是否是消息类型标记，并返回其渲染。
func (t *Table) Type(key string) (Rendering, bool) {
	r, ok := t.Types[key]
	return r, ok
}

// Domain 返回指定代码的词汇空间。
func (t *Table) Domain(code string) (Domain, bool) {
	d, ok := t.Domains[code]
	return d, ok
}

// Disambiguated 返回指定键的消歧义项。
func (t *Table) Disambiguated(key string) (DisambiguationEntry, bool) {
	e, ok := t.Disambiguation[key]
	return e, ok
}
