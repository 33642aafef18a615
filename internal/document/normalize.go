package document

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText 归一化段落文本
// 依次执行NFKC归一化、空白折叠为单个空格、去除不可打印字符和首尾修剪
// 整个变换满足幂等性：归一化两次与一次的结果相同
func NormalizeText(text string) string {
	text = norm.NFKC.String(text)
	text = strings.Join(strings.Fields(text), " ")
	text = strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, text)
	return strings.TrimSpace(text)
}
