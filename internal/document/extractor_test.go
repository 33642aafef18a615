package document

import (
	"testing"

	"github.com/fyerfyer/wiki-passages/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// articleHTML 模拟维基百科企业版HTML的小节结构
const articleHTML = `<html><body>
<section>
  <p>導入部の段落テキストです。条目の概要を説明します。</p>
</section>
<section>
  <h2>歴史</h2>
  <p>歴史に関する最初の段落テキストです。<sup>[1]</sup></p>
  <h3>古代</h3>
  <p>古代に関する段落テキストです。</p>
  <h4>紀元前</h4>
  <p>紀元前に関する段落テキストです。</p>
  <dl>
    <dt>青銅器</dt>
    <dd>青銅器に関する<b>説明</b>テキストです。</dd>
  </dl>
  <h3>中世</h3>
  <p>中世に関する段落テキストです。</p>
</section>
<section>
  <p>前の小節を引き継ぐ段落テキストです。</p>
  <ul>
    <li>リスト項目のテキストです。<p>入れ子の段落です。</p></li>
  </ul>
  <table>
    <tr><th>表の見出し</th><td>表のセル</td></tr>
  </table>
</section>
</body></html>`

// TestExtractorHeadingContext 测试标题上下文的维护
func TestExtractorHeadingContext(t *testing.T) {
	extractor := NewExtractor()
	paragraphs, err := extractor.Extract(articleHTML)
	require.NoError(t, err)
	require.NotEmpty(t, paragraphs)

	for i, p := range paragraphs {
		t.Logf("段落 %d: section=%+v tag=%s text=%q", i, p.Section, p.HTMLTag, p.Text)
	}

	t.Run("first section has no heading context", func(t *testing.T) {
		assert.True(t, paragraphs[0].Section.IsZero(), "首个小节没有h2，上下文应为空")
		assert.Equal(t, "p", paragraphs[0].HTMLTag)
	})

	t.Run("h2 resets lower levels", func(t *testing.T) {
		assert.Equal(t, models.Section{H2: "歴史"}, paragraphs[1].Section)
	})

	t.Run("h3 and h4 update context without emitting", func(t *testing.T) {
		assert.Equal(t, models.Section{H2: "歴史", H3: "古代"}, paragraphs[2].Section)
		assert.Equal(t, models.Section{H2: "歴史", H3: "古代", H4: "紀元前"}, paragraphs[3].Section)

		for _, p := range paragraphs {
			assert.NotContains(t, []string{"h3", "h4", "dt"}, p.HTMLTag,
				"h3/h4/dt元素本身不应产生段落记录")
		}
	})

	t.Run("dt sets context for following dd", func(t *testing.T) {
		assert.Equal(t, models.Section{H2: "歴史", H3: "古代", H4: "紀元前", Dt: "青銅器"}, paragraphs[4].Section)
		assert.Equal(t, "dd", paragraphs[4].HTMLTag)
	})

	t.Run("new h3 resets h4 and dt", func(t *testing.T) {
		assert.Equal(t, models.Section{H2: "歴史", H3: "中世"}, paragraphs[5].Section)
	})

	t.Run("section without h2 inherits previous h2", func(t *testing.T) {
		assert.Equal(t, models.Section{H2: "歴史", H3: "中世"}, paragraphs[6].Section,
			"没有自己h2的小节应沿用上一小节的上下文")
	})

	t.Run("monotone hierarchy invariant", func(t *testing.T) {
		for _, p := range paragraphs {
			if p.Section.H3 == "" {
				assert.Empty(t, p.Section.H4, "h3为空时h4必须为空")
				assert.Empty(t, p.Section.Dt, "h3为空时dt必须为空")
			}
			if p.Section.H4 == "" {
				assert.Empty(t, p.Section.Dt, "h4为空时dt必须为空")
			}
		}
	})
}

// TestExtractorFiltering 测试元素的移除与跳过规则
func TestExtractorFiltering(t *testing.T) {
	extractor := NewExtractor()
	paragraphs, err := extractor.Extract(articleHTML)
	require.NoError(t, err)

	t.Run("sup content removed from text", func(t *testing.T) {
		assert.Equal(t, "歴史に関する最初の段落テキストです。", paragraphs[1].Text,
			"脚注标记sup应在读取文本前被清空")
	})

	t.Run("table content removed entirely", func(t *testing.T) {
		for _, p := range paragraphs {
			assert.NotContains(t, p.Text, "表の見出し", "table整体清空后不应产生任何记录")
			assert.NotEqual(t, "th", p.HTMLTag)
			assert.NotEqual(t, "tr", p.HTMLTag)
		}
	})

	t.Run("nested elements skipped", func(t *testing.T) {
		var liTexts []string
		for _, p := range paragraphs {
			if p.HTMLTag == "li" {
				liTexts = append(liTexts, p.Text)
			}
			if p.HTMLTag == "p" {
				assert.NotContains(t, p.Text, "入れ子の段落",
					"li内部的p应被跳过，其文本只随li产出一次")
			}
		}
		require.Len(t, liTexts, 1)
		assert.Contains(t, liTexts[0], "リスト項目のテキストです。")
		assert.Contains(t, liTexts[0], "入れ子の段落です。")
	})
}

// TestExtractorEdgeCases 测试边界情况
func TestExtractorEdgeCases(t *testing.T) {
	t.Run("no section elements yields zero records", func(t *testing.T) {
		extractor := NewExtractor()
		paragraphs, err := extractor.Extract("<html><body><p>本文テキストです。</p></body></html>")
		require.NoError(t, err)
		assert.Empty(t, paragraphs)
	})

	t.Run("empty html yields zero records", func(t *testing.T) {
		extractor := NewExtractor()
		paragraphs, err := extractor.Extract("")
		require.NoError(t, err)
		assert.Empty(t, paragraphs)
	})

	t.Run("non section siblings between sections skipped", func(t *testing.T) {
		html := `<html><body>
<section>
  <h2>概要</h2>
  <p>概要に関する段落テキストです。</p>
</section>
<div>小节之间的无关元素</div>
<style>p { color: red; }</style>
<section>
  <h2>歴史</h2>
  <p>歴史に関する段落テキストです。</p>
</section>
</body></html>`

		extractor := NewExtractor()
		paragraphs, err := extractor.Extract(html)
		require.NoError(t, err)
		require.Len(t, paragraphs, 2, "被其他元素隔开的后续section也必须被处理")
		assert.Equal(t, models.Section{H2: "概要"}, paragraphs[0].Section)
		assert.Equal(t, models.Section{H2: "歴史"}, paragraphs[1].Section)
	})

	t.Run("unknown tag names never match", func(t *testing.T) {
		extractor := NewExtractor(WithTagsToExtract([]string{"p", "no-such-tag"}))
		paragraphs, err := extractor.Extract(articleHTML)
		require.NoError(t, err)
		for _, p := range paragraphs {
			assert.Equal(t, "p", p.HTMLTag)
		}
	})

	t.Run("custom remove tags", func(t *testing.T) {
		extractor := NewExtractor(WithTagsToRemove([]string{"ul", "table"}))
		paragraphs, err := extractor.Extract(articleHTML)
		require.NoError(t, err)
		for _, p := range paragraphs {
			assert.NotEqual(t, "li", p.HTMLTag, "ul整体清空后不应产生li记录")
		}
	})
}
