package passage

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultMaxPassageLength 默认的篇章字符预算
const DefaultMaxPassageLength = 750

var lineBreaks = regexp.MustCompile(`\n+`)

// SplitSection 把一段小节文本切分成长度接近的若干篇章
// 每个篇章的长度尽量不超过maxChars（按字符计数），优先在句子边界断开，
// 并让各篇章长度彼此接近，而不是贪心地填满前面的篇章
func SplitSection(text string, splitter SentenceSplitter, maxChars int) []string {
	totalChars := utf8.RuneCountInString(text)
	if totalChars <= maxChars {
		return []string{text}
	}

	// 估算篇章数量
	nchunk := int(math.Round(float64(totalChars) / float64(maxChars)))
	if nchunk < 1 {
		nchunk = 1
	}

	// 增加篇章数直到平均长度不超过预算
	// nchunk递增时总长/nchunk严格递减，循环必然终止
	for float64(totalChars)/float64(nchunk) > float64(maxChars) {
		nchunk++
	}
	ncharChunk := float64(totalChars) / float64(nchunk)

	// 逐行切句，行尾的换行符作为该行末句的后缀保留
	var sentences []string
	for _, line := range lineBreaks.Split(text, -1) {
		sentences = append(sentences, splitter.Split(line)...)
		if len(sentences) > 0 {
			sentences[len(sentences)-1] += "\n"
		}
	}

	var chunks []string
	var chunkText strings.Builder
	nchar := 0 // 小节内已写出的累计字符数
	chunkID := 1

	for _, sentence := range sentences {
		l := utf8.RuneCountInString(sentence)

		// 半句前瞻：累计字符数将明显越过当前篇章的累计目标时换到下一篇章
		// 最后一个计划内的篇章不再切分，超出预算的部分全部归入其中
		if float64(nchar+l/2) >= ncharChunk*float64(chunkID) && chunkID != nchunk {
			chunkID++
			chunks = append(chunks, strings.TrimSpace(chunkText.String()))
			chunkText.Reset()
		}

		nchar += l
		chunkText.WriteString(sentence)
	}

	if chunkText.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(chunkText.String()))
	}

	return chunks
}
