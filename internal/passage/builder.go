package passage

import (
	"strings"

	"github.com/fyerfyer/wiki-passages/internal/models"
)

// Builder 篇章构建器
// 把顺序到达的段落记录按(title, section)分组：相邻且键相同的段落进入同一组，
// 键变化时把缓冲的一组文本拼接后交给SplitSection切分并产出篇章
// 篇章ID在整个输出流上全局递增、从0开始且无空洞
type Builder struct {
	splitter SentenceSplitter
	maxChars int

	nextID int
	buffer []models.Paragraph
	last   *models.Paragraph // 上一条送入的段落记录
}

// NewBuilder 创建篇章构建器
func NewBuilder(splitter SentenceSplitter, maxChars int) *Builder {
	if maxChars <= 0 {
		maxChars = DefaultMaxPassageLength
	}
	return &Builder{
		splitter: splitter,
		maxChars: maxChars,
	}
}

// Add 送入一条段落记录
// 该记录与上一条的(title, section)不同时，先产出上一组的篇章再开始新组
func (b *Builder) Add(p models.Paragraph) []models.Passage {
	var out []models.Passage
	if b.last != nil && (p.Title != b.last.Title || p.Section != b.last.Section) {
		out = b.flush()
	}

	b.buffer = append(b.buffer, p)
	last := p
	b.last = &last
	return out
}

// Flush 输入结束后产出最后一组缓冲的篇章
func (b *Builder) Flush() []models.Passage {
	return b.flush()
}

func (b *Builder) flush() []models.Passage {
	if len(b.buffer) == 0 {
		return nil
	}

	// 组内段落文本按换行拼接为小节文本
	texts := make([]string, 0, len(b.buffer))
	for _, p := range b.buffer {
		texts = append(texts, p.Text)
	}
	sectionText := strings.Join(texts, "\n")

	// 篇章继承该组段落的页面标识与标题上下文
	tail := b.buffer[len(b.buffer)-1]
	var out []models.Passage
	for _, chunk := range SplitSection(sectionText, b.splitter, b.maxChars) {
		out = append(out, models.Passage{
			ID:      b.nextID,
			PageID:  tail.PageID,
			RevID:   tail.RevID,
			Title:   tail.Title,
			Section: tail.Section,
			Text:    chunk,
		})
		b.nextID++
	}

	b.buffer = b.buffer[:0]
	return out
}
