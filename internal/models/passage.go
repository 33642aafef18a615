package models

// Page 渲染后的百科条目页面
// 对应抽取阶段输入文件中的一行记录
type Page struct {
	PageID int    `json:"pageid"` // 条目页面ID
	RevID  int    `json:"revid"`  // 条目修订版本ID
	Title  string `json:"title"`  // 条目标题
	HTML   string `json:"html"`   // 渲染后的页面HTML
}

// Section 段落所处的标题层级快照
// 只序列化非空的层级；层级满足单调约束：h3为空时h4、dt必为空，h4为空时dt必为空
type Section struct {
	H2 string `json:"h2,omitempty"` // 小节标题
	H3 string `json:"h3,omitempty"` // 子小节标题
	H4 string `json:"h4,omitempty"` // 次级子小节标题
	Dt string `json:"dt,omitempty"` // 定义列表的术语项
}

// IsZero 判断是否完全没有标题上下文
func (s Section) IsZero() bool {
	return s == Section{}
}

// Paragraph 从页面HTML中抽取出的一条段落记录
// 创建后不再修改，按文档顺序逐行写出
type Paragraph struct {
	ID             string  `json:"id"` // 形如 "pageid-revid-paragraph_index"
	PageID         int     `json:"pageid"`
	RevID          int     `json:"revid"`
	ParagraphIndex int     `json:"paragraph_index"` // 页面内从0开始的段落序号
	Title          string  `json:"title"`
	Section        Section `json:"section"`
	Text           string  `json:"text"`     // 归一化后的段落文本
	HTMLTag        string  `json:"html_tag"` // 产生该段落的HTML标签名
}

// Passage 由同一标题上下文的若干段落合并切分得到的篇章
// ID在整个输出流上全局递增、从0开始且无空洞
type Passage struct {
	ID      int     `json:"id"`
	PageID  int     `json:"pageid"`
	RevID   int     `json:"revid"`
	Title   string  `json:"title"`
	Section Section `json:"section"`
	Text    string  `json:"text"`
}
