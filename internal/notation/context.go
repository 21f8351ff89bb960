package notation

// Context 保存一次翻译会话的可变状态：已激活的域（按激活顺序，
// 影响查找优先级）和本地定义。只有控制块会修改它；
// 契约是单写者、顺序使用，不提供内部加锁。
type Context struct {
	domains     []string
	definitions map[string]string
}

// NewContext 创建空白会话上下文。
func NewContext() *Context {
	return &Context{definitions: make(map[string]string)}
}

// ActivateDomain 按顺序激活一个域。重复激活是无操作而不是错误。
func (c *Context) ActivateDomain(code string) {
	if code == "" {
		return
	}
	for _, active := range c.domains {
		if active == code {
			return
		}
	}
	c.domains = append(c.domains, code)
}

// DefineLocal 安装一个本地定义，覆盖同键的先前定义。
// 本地定义在任何渲染语言下都返回同一字面串。
func (c *Context) DefineLocal(key, value string) {
	if key == "" {
		return
	}
	if c.definitions == nil {
		c.definitions = make(map[string]string)
	}
	c.definitions[key] = value
}

// ActiveDomains 返回激活顺序下的域代码副本。
func (c *Context) ActiveDomains() []string {
	if len(c.domains) == 0 {
		return nil
	}
	out := make([]string, len(c.domains))
	copy(out, c.domains)
	return out
}

// Definition 返回键的本地定义。
func (c *Context) Definition(key string) (string, bool) {
	v, ok := c.definitions[key]
	return v, ok
}

// State 是上下文的可序列化快照，供会话存储持久化。
type State struct {
	Domains     []string          `json:"domains,omitempty"`
	Definitions map[string]string `json:"definitions,omitempty"`
}

// Snapshot 导出上下文状态。
func (c *Context) Snapshot() State {
	state := State{}
	if len(c.domains) > 0 {
		state.Domains = make([]string, len(c.domains))
		copy(state.Domains, c.domains)
	}
	if len(c.definitions) > 0 {
		state.Definitions = make(map[string]string, len(c.definitions))
		for k, v := range c.definitions {
			state.Definitions[k] = v
		}
	}
	return state
}

// FromState 从快照重建上下文。
func FromState(state State) *Context {
	ctx := NewContext()
	for _, code := range state.Domains {
		ctx.ActivateDomain(code)
	}
	for k, v := range state.Definitions {
		ctx.DefineLocal(k, v)
	}
	return ctx
}
