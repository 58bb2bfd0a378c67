package catalogfile

// PromptEntry is a single prompt in the catalog YAML, for example
//
//	id: 1
//	title: English translator
//	prompt: I want you to act as an English translator...
//	remark: Translate other languages into English.
//	website: https://github.com/f/awesome-chatgpt-prompts
//	tags: [language]
//	weight: 14572
type PromptEntry struct {
	ID      int      `yaml:"id"`
	Title   string   `yaml:"title"`
	Prompt  string   `yaml:"prompt"`
	Remark  *string  `yaml:"remark"`
	Website *string  `yaml:"website"`
	Tags    []string `yaml:"tags"`
	Weight  int      `yaml:"weight"`
}

// CatalogConfig is the root structure of a catalog file: a plain list,
// in authoring order.
type CatalogConfig []PromptEntry
