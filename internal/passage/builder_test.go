package passage

import (
	"strings"
	"testing"

	"github.com/fyerfyer/wiki-passages/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paragraph(title string, section models.Section, text string) models.Paragraph {
	return models.Paragraph{
		PageID:  100,
		RevID:   200,
		Title:   title,
		Section: section,
		Text:    text,
	}
}

// collect 把一串段落送入构建器并收集全部产出的篇章
func collect(b *Builder, paragraphs ...models.Paragraph) []models.Passage {
	var out []models.Passage
	for _, p := range paragraphs {
		out = append(out, b.Add(p)...)
	}
	return append(out, b.Flush()...)
}

// TestBuilderMergesSameSection 测试同一分组的段落合并为一个篇章
func TestBuilderMergesSameSection(t *testing.T) {
	builder := NewBuilder(NewRuneSplitter(""), 1000)

	passages := collect(builder,
		paragraph("A", models.Section{H2: "X"}, "Sentence one."),
		paragraph("A", models.Section{H2: "X"}, "Sentence two."),
	)

	require.Len(t, passages, 1, "相邻且键相同的段落应合并为同一篇章")
	assert.Equal(t, "Sentence one.\nSentence two.", passages[0].Text)
	assert.Equal(t, 0, passages[0].ID)
	assert.Equal(t, "A", passages[0].Title)
	assert.Equal(t, models.Section{H2: "X"}, passages[0].Section)
}

// TestBuilderGroupBoundaries 测试分组边界的判定
func TestBuilderGroupBoundaries(t *testing.T) {
	t.Run("section change starts new group", func(t *testing.T) {
		builder := NewBuilder(NewRuneSplitter(""), 1000)
		passages := collect(builder,
			paragraph("A", models.Section{H2: "X"}, "最初の小節の文です。"),
			paragraph("A", models.Section{H2: "Y"}, "次の小節の文です。"),
		)

		require.Len(t, passages, 2)
		assert.Equal(t, "最初の小節の文です。", passages[0].Text)
		assert.Equal(t, models.Section{H2: "X"}, passages[0].Section)
		assert.Equal(t, "次の小節の文です。", passages[1].Text)
		assert.Equal(t, models.Section{H2: "Y"}, passages[1].Section)
	})

	t.Run("title change starts new group even with same section", func(t *testing.T) {
		builder := NewBuilder(NewRuneSplitter(""), 1000)
		passages := collect(builder,
			paragraph("A", models.Section{H2: "X"}, "条目Aの文です。"),
			paragraph("B", models.Section{H2: "X"}, "条目Bの文です。"),
		)

		require.Len(t, passages, 2)
		assert.Equal(t, "A", passages[0].Title)
		assert.Equal(t, "B", passages[1].Title)
	})

	t.Run("lower heading level change starts new group", func(t *testing.T) {
		builder := NewBuilder(NewRuneSplitter(""), 1000)
		passages := collect(builder,
			paragraph("A", models.Section{H2: "X", H3: "a"}, "小見出しaの文です。"),
			paragraph("A", models.Section{H2: "X", H3: "b"}, "小見出しbの文です。"),
		)
		require.Len(t, passages, 2)
	})
}

// TestBuilderDensePassageIDs 测试篇章ID全局连续递增
func TestBuilderDensePassageIDs(t *testing.T) {
	builder := NewBuilder(NewRuneSplitter(""), 80)

	// 多个标题、多个分组，其中一组足够长会被切成多块
	long := strings.Repeat("これは長い小節を構成する文です。", 20)
	passages := collect(builder,
		paragraph("A", models.Section{H2: "X"}, "条目Aの最初の文です。"),
		paragraph("A", models.Section{H2: "Y"}, long),
		paragraph("B", models.Section{}, "条目Bの導入部の文です。"),
		paragraph("B", models.Section{H2: "Z"}, "条目Bの小節の文です。"),
	)

	require.Greater(t, len(passages), 4, "长分组应被切成多块")
	for i, p := range passages {
		assert.Equal(t, i, p.ID, "篇章ID应从0开始连续递增且无空洞")
	}
}

// TestBuilderFlush 测试输入结束后的冲刷
func TestBuilderFlush(t *testing.T) {
	t.Run("final group flushed", func(t *testing.T) {
		builder := NewBuilder(NewRuneSplitter(""), 1000)

		assert.Empty(t, builder.Add(paragraph("A", models.Section{H2: "X"}, "残っている文です。")))
		passages := builder.Flush()
		require.Len(t, passages, 1)
		assert.Equal(t, "残っている文です。", passages[0].Text)
	})

	t.Run("flush on empty builder", func(t *testing.T) {
		builder := NewBuilder(NewRuneSplitter(""), 1000)
		assert.Empty(t, builder.Flush())
	})
}
