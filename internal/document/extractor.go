package document

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fyerfyer/wiki-passages/internal/models"
)

// 默认的标签配置
// 与维基百科企业版HTML的 section > h2,h3,h4,dt... 结构对应
var (
	// DefaultTagsToExtract 默认抽取文本的标签
	DefaultTagsToExtract = []string{"p", "h3", "h4", "h5", "h6", "dt", "dd", "li", "th", "tr"}
	// DefaultTagsToRemove 默认在抽取前整体清空的标签
	DefaultTagsToRemove = []string{"table"}
	// DefaultInnerTagsToRemove 默认在读取文本前清空的内部标签
	DefaultInnerTagsToRemove = []string{"sup"}
)

// nestedParentTags 这些标签的文本覆盖了其全部后代
// 后代元素即使命中抽取集合也要跳过，避免同一内容重复产出
var nestedParentTags = []string{"dd", "li", "th", "tr"}

// RawParagraph 抽取器产出的原始段落
// 尚未赋予文档内编号，过滤与编号由调用方完成
type RawParagraph struct {
	Section models.Section // 抽取时刻的标题层级快照
	Text    string         // 归一化后的元素文本
	HTMLTag string         // 产生文本的标签名
}

// Extractor 段落抽取器
// 遍历页面的section树，维护h2/h3/h4/dt标题上下文并按文档顺序产出段落
type Extractor struct {
	extractSelector string // 抽取标签的选择器
	removeSelector  string // 整体清空标签的选择器
	innerSelector   string // 内部清空标签的选择器
	skipSelector    string // 祖先命中即跳过的选择器
}

// ExtractorOption 抽取器配置选项
type ExtractorOption func(*extractorConfig)

type extractorConfig struct {
	tagsToExtract     []string
	tagsToRemove      []string
	innerTagsToRemove []string
}

// WithTagsToExtract 设置抽取文本的标签集合
func WithTagsToExtract(tags []string) ExtractorOption {
	return func(c *extractorConfig) {
		if len(tags) > 0 {
			c.tagsToExtract = tags
		}
	}
}

// WithTagsToRemove 设置抽取前整体清空的标签集合
func WithTagsToRemove(tags []string) ExtractorOption {
	return func(c *extractorConfig) {
		c.tagsToRemove = tags
	}
}

// WithInnerTagsToRemove 设置读取文本前清空的内部标签集合
func WithInnerTagsToRemove(tags []string) ExtractorOption {
	return func(c *extractorConfig) {
		c.innerTagsToRemove = tags
	}
}

// NewExtractor 创建段落抽取器
func NewExtractor(opts ...ExtractorOption) *Extractor {
	cfg := &extractorConfig{
		tagsToExtract:     DefaultTagsToExtract,
		tagsToRemove:      DefaultTagsToRemove,
		innerTagsToRemove: DefaultInnerTagsToRemove,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Extractor{
		extractSelector: strings.Join(cfg.tagsToExtract, ", "),
		removeSelector:  strings.Join(cfg.tagsToRemove, ", "),
		innerSelector:   strings.Join(cfg.innerTagsToRemove, ", "),
		skipSelector:    strings.Join(nestedParentTags, ", "),
	}
}

// sectionContext 当前的标题层级状态
// 以不可变值的方式在遍历中传递：上层标题变化时，派生新值并重置其下所有层级
type sectionContext struct {
	h2, h3, h4, dt string
}

func (c sectionContext) withH2(text string) sectionContext {
	return sectionContext{h2: text}
}

func (c sectionContext) withH3(text string) sectionContext {
	return sectionContext{h2: c.h2, h3: text}
}

func (c sectionContext) withH4(text string) sectionContext {
	return sectionContext{h2: c.h2, h3: c.h3, h4: text}
}

func (c sectionContext) withDt(text string) sectionContext {
	c.dt = text
	return c
}

func (c sectionContext) section() models.Section {
	return models.Section{H2: c.h2, H3: c.h3, H4: c.h4, Dt: c.dt}
}

// Extract 解析一页HTML并按文档顺序返回段落记录
// 页面中没有section元素时返回空结果；HTML无法解析时返回错误
func (e *Extractor) Extract(html string) ([]RawParagraph, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	var paragraphs []RawParagraph
	ctx := sectionContext{}

	// 从文档中的第一个section开始，依次处理它和它之后的兄弟section
	// 相邻section之间允许夹杂其他元素，查找时跳过它们
	section := doc.Find("section").First()
	for section.Length() > 0 {
		ctx, paragraphs = e.extractSection(section, ctx, paragraphs)
		section = section.NextAllFiltered("section").First()
	}

	return paragraphs, nil
}

// extractSection 处理单个section，返回更新后的标题上下文和累计的段落
func (e *Extractor) extractSection(section *goquery.Selection, ctx sectionContext, out []RawParagraph) (sectionContext, []RawParagraph) {
	// 小节自带h2时更新顶层标题并重置下层，否则沿用上一小节的h2
	// h2文本在任何清理发生之前读取
	if h2 := section.Find("h2").First(); h2.Length() > 0 {
		ctx = ctx.withH2(h2.Text())
	}

	// 先整体清空需要移除的元素，被清空的内容不会产生任何记录
	if e.removeSelector != "" {
		section.Find(e.removeSelector).Empty()
	}

	section.Find(e.extractSelector).Each(func(_ int, tag *goquery.Selection) {
		// 父元素的文本已覆盖这些嵌套元素，跳过以免重复产出
		if tag.ParentsFiltered(e.skipSelector).Length() > 0 {
			return
		}

		if e.innerSelector != "" {
			tag.Find(e.innerSelector).Empty()
		}

		// h3/h4/dt只更新标题上下文，本身不产生段落记录
		switch goquery.NodeName(tag) {
		case "h3":
			ctx = ctx.withH3(tag.Text())
			return
		case "h4":
			ctx = ctx.withH4(tag.Text())
			return
		case "dt":
			ctx = ctx.withDt(tag.Text())
			return
		}

		out = append(out, RawParagraph{
			Section: ctx.section(),
			Text:    NormalizeText(tag.Text()),
			HTMLTag: goquery.NodeName(tag),
		})
	})

	return ctx, out
}
