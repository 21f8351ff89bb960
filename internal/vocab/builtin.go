package vocab

// Builtin 返回编译进程序的默认词汇表。外部词汇文件可以完全替换它。
func Builtin() *Table {
	return &Table{
		Types: map[string]Rendering{
			"!": {EN: "statement", ZH: "陈述"},
			"?": {EN: "question", ZH: "问题"},
			".": {EN: "command", ZH: "命令"},
			"~": {EN: "proposal", ZH: "提议"},
		},
		Entities: map[string]Rendering{
			"I": {EN: "I", ZH: "我"},
			"U": {EN: "you", ZH: "你"},
			"W": {EN: "we", ZH: "我们"},
			"A": {EN: "agent", ZH: "智能体"},
			"H": {EN: "human", ZH: "人类"},
			"X": {EN: "thing", ZH: "事物"},
		},
		Verbs: map[string]Rendering{
			"k": {EN: "know", ZH: "知道"},
			"w": {EN: "want", ZH: "想要"},
			"d": {EN: "do", ZH: "做"},
			"h": {EN: "have", ZH: "有"},
			"g": {EN: "go", ZH: "去"},
			"s": {EN: "say", ZH: "说"},
			"m": {EN: "make", ZH: "制作"},
			"f": {EN: "find", ZH: "找"},
			"t": {EN: "think", ZH: "想"},
		},
		Modifiers: map[string]Rendering{
			"+": {EN: "good", ZH: "好"},
			"n": {EN: "not", ZH: "不"},
			"/": {EN: "or", ZH: "或"},
			"&": {EN: "and", ZH: "和"},
		},
		Time: map[string]Rendering{
			"<": {EN: "past", ZH: "过去"},
			">": {EN: "future", ZH: "将来"},
			"@": {EN: "now", ZH: "现在"},
		},
		Quantifiers: map[string]Rendering{
			"*": {EN: "all", ZH: "所有"},
			"1": {EN: "one", ZH: "一"},
			"%": {EN: "some", ZH: "一些"},
			"0": {EN: "none", ZH: "零"},
		},
		Aspect: map[string]Rendering{
			"=": {EN: "ongoing", ZH: "进行中"},
			"#": {EN: "done", ZH: "已完成"},
		},
		Extended: map[string]Rendering{
			"co": {EN: "cooperate", ZH: "合作"},
			"de": {EN: "decide", ZH: "决定"},
			"fe": {EN: "feel", ZH: "感觉"},
			"lo": {EN: "love", ZH: "爱"},
			"se": {EN: "see", ZH: "看见"},
			"me": {EN: "memory", ZH: "记忆"},
			"he": {EN: "help", ZH: "帮助"},
			"wk": {EN: "work", ZH: "工作"},
			"pl": {EN: "plan", ZH: "计划"},
			"ne": {EN: "need", ZH: "需要"},
			"ti": {EN: "time", ZH: "时间"},
			"un": {EN: "understand", ZH: "理解"},
			"ag": {EN: "agree", ZH: "同意"},
			"re": {EN: "reply", ZH: "回复"},
			"st": {EN: "start", ZH: "开始"},
			"en": {EN: "end", ZH: "结束"},
			"le": {EN: "learn", ZH: "学习"},
			"tr": {EN: "translate", ZH: "翻译"},
			"ms": {EN: "message", ZH: "消息"},
		},
		Discourse: map[string]Rendering{
			"bt": {EN: "but", ZH: "但是"},
			"so": {EN: "so", ZH: "所以"},
			"if": {EN: "if", ZH: "如果"},
			"th": {EN: "then", ZH: "然后"},
			"bc": {EN: "because", ZH: "因为"},
			"ok": {EN: "okay", ZH: "好的"},
			"ty": {EN: "thanks", ZH: "谢谢"},
			"pz": {EN: "please", ZH: "请"},
		},
		Emotion: map[string]Rendering{
			"jy": {EN: "joy", ZH: "喜悦"},
			"sd": {EN: "sad", ZH: "悲伤"},
			"an": {EN: "anger", ZH: "愤怒"},
			"fr": {EN: "fear", ZH: "害怕"},
			"su": {EN: "surprise", ZH: "惊讶"},
			"cl": {EN: "calm", ZH: "平静"},
		},
		Domains: map[string]Domain{
			"cd": {
				Code: "cd",
				Name: Rendering{EN: "code", ZH: "代码"},
				Atoms: map[string]Rendering{
					"bg": {EN: "bug", ZH: "缺陷"},
					"fn": {EN: "function", ZH: "函数"},
					"pr": {EN: "pull request", ZH: "合并请求"},
					"db": {EN: "database", ZH: "数据库"},
					"cm": {EN: "commit", ZH: "提交"},
					"tc": {EN: "test case", ZH: "测试用例"},
					"rv": {EN: "review", ZH: "评审"},
				},
			},
			"md": {
				Code: "md",
				Name: Rendering{EN: "medical", ZH: "医疗"},
				Atoms: map[string]Rendering{
					"dx": {EN: "diagnosis", ZH: "诊断"},
					"rx": {EN: "prescription", ZH: "处方"},
					"pt": {EN: "patient", ZH: "病人"},
					"sy": {EN: "symptom", ZH: "症状"},
				},
			},
		},
		Disambiguation: map[string]DisambiguationEntry{
			"de": {
				Primary: Rendering{EN: "decide", ZH: "决定"},
				Alternates: map[string]Rendering{
					"E": {EN: "death", ZH: "死亡"},
					"2": {EN: "delay", ZH: "延迟"},
				},
			},
			"lo": {
				Primary: Rendering{EN: "love", ZH: "爱"},
				Alternates: map[string]Rendering{
					"-": {EN: "lose", ZH: "失去"},
					"2": {EN: "low", ZH: "低"},
				},
			},
			"fe": {
				Primary: Rendering{EN: "feel", ZH: "感觉"},
				Alternates: map[string]Rendering{
					"E": {EN: "fear", ZH: "恐惧"},
				},
			},
			"se": {
				Primary: Rendering{EN: "see", ZH: "看见"},
				Alternates: map[string]Rendering{
					"E": {EN: "sea", ZH: "海"},
					"2": {EN: "search", ZH: "搜索"},
				},
			},
			"me": {
				Primary: Rendering{EN: "memory", ZH: "记忆"},
				Alternates: map[string]Rendering{
					"V": {EN: "remember", ZH: "记住"},
				},
			},
		},
	}
}
