package passage

// SentenceSplitter 句子边界切分器
// Split把一行文本切分为有序的句子序列，所有句子按顺序拼接后必须与原行完全一致
// 实现不得丢弃或修剪任何字符
type SentenceSplitter interface {
	Split(line string) []string
}

// DefaultTerminators 默认的句子终止符集合
const DefaultTerminators = "。！？!?"

// sentenceClosers 终止符之后仍归入当前句子的收尾符号（右引号、右括号等）
const sentenceClosers = "」』）)】]\"'"

// RuneSplitter 基于终止符扫描的句子切分器
// 在终止符（及其后连续的收尾符号）之后断句，保留行内的全部字符
type RuneSplitter struct {
	terminators map[rune]bool
	closers     map[rune]bool
}

// NewRuneSplitter 创建句子切分器
// terminators为空时使用默认终止符集合
func NewRuneSplitter(terminators string) *RuneSplitter {
	if terminators == "" {
		terminators = DefaultTerminators
	}

	s := &RuneSplitter{
		terminators: make(map[rune]bool),
		closers:     make(map[rune]bool),
	}
	for _, r := range terminators {
		s.terminators[r] = true
	}
	for _, r := range sentenceClosers {
		s.closers[r] = true
	}
	return s
}

// Split 切分一行文本
// 空行返回空结果；没有终止符的行整体作为一个句子返回
func (s *RuneSplitter) Split(line string) []string {
	if line == "" {
		return nil
	}

	var sentences []string
	start := 0
	terminated := false

	for i, r := range line {
		if terminated && !s.terminators[r] && !s.closers[r] {
			sentences = append(sentences, line[start:i])
			start = i
			terminated = false
		}
		if s.terminators[r] {
			terminated = true
		}
	}
	if start < len(line) {
		sentences = append(sentences, line[start:])
	}

	return sentences
}
