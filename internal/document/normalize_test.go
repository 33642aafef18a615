package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNormalizeText 测试文本归一化
func TestNormalizeText(t *testing.T) {
	t.Run("nfkc normalization", func(t *testing.T) {
		// 全角英数字和半角片假名归一化为标准形式
		assert.Equal(t, "ABC123", NormalizeText("ＡＢＣ１２３"))
		assert.Equal(t, "ウィキペディア", NormalizeText("ｳｨｷﾍﾟﾃﾞｨｱ"))
	})

	t.Run("whitespace collapse", func(t *testing.T) {
		assert.Equal(t, "地球 は 太陽系 の 惑星", NormalizeText("地球 \t は\n太陽系 　 の  惑星"))
	})

	t.Run("non printable characters removed", func(t *testing.T) {
		assert.Equal(t, "本文テキスト", NormalizeText("本文\u200bテキスト "))
	})

	t.Run("leading and trailing whitespace trimmed", func(t *testing.T) {
		assert.Equal(t, "概要の説明。", NormalizeText("  概要の説明。 \n"))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, "", NormalizeText(""))
		assert.Equal(t, "", NormalizeText("  \n\t "))
	})

	t.Run("idempotent", func(t *testing.T) {
		inputs := []string{
			"ＡＢＣ  テスト\u200b文字列 \n",
			"地球は太陽から3番目の惑星である。",
			"  Français — español ",
		}
		for _, input := range inputs {
			once := NormalizeText(input)
			twice := NormalizeText(once)
			assert.Equal(t, once, twice, "归一化应满足幂等性")
		}
	})
}
