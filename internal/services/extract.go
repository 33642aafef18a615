package services

import (
	"context"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/fyerfyer/wiki-passages/internal/document"
	"github.com/fyerfyer/wiki-passages/internal/models"
	"github.com/fyerfyer/wiki-passages/pkg/jsonl"
	"github.com/sirupsen/logrus"
)

// ExtractService 段落抽取流水线
// 负责读取页面HTML、抽取段落、过滤并按文档顺序写出段落记录
type ExtractService struct {
	extractor        *document.Extractor
	sectionsToIgnore map[string]bool // 按h2标题忽略的小节
	minLength        int             // 段落最小字符数
	maxLength        int             // 段落最大字符数
	progressInterval int             // 进度日志间隔（页面数）
	logger           *logrus.Logger
}

// ExtractOption 抽取服务配置选项
type ExtractOption func(*ExtractService)

// NewExtractService 创建段落抽取服务
func NewExtractService(extractor *document.Extractor, opts ...ExtractOption) *ExtractService {
	srv := &ExtractService{
		extractor:        extractor,
		sectionsToIgnore: make(map[string]bool),
		minLength:        10,   // 默认段落最小字符数
		maxLength:        1000, // 默认段落最大字符数
		progressInterval: 1000, // 默认每1000页输出一次进度
		logger:           logrus.New(),
	}

	for _, opt := range opts {
		opt(srv)
	}

	return srv
}

// WithIgnoredSections 设置按h2标题忽略的小节
func WithIgnoredSections(titles []string) ExtractOption {
	return func(s *ExtractService) {
		s.sectionsToIgnore = make(map[string]bool, len(titles))
		for _, t := range titles {
			s.sectionsToIgnore[t] = true
		}
	}
}

// WithLengthBounds 设置段落长度上下界（按字符计数）
func WithLengthBounds(min, max int) ExtractOption {
	return func(s *ExtractService) {
		if min > 0 {
			s.minLength = min
		}
		if max > 0 {
			s.maxLength = max
		}
	}
}

// WithProgressInterval 设置进度日志间隔
func WithProgressInterval(n int) ExtractOption {
	return func(s *ExtractService) {
		s.progressInterval = n
	}
}

// WithExtractLogger 设置日志记录器
func WithExtractLogger(logger *logrus.Logger) ExtractOption {
	return func(s *ExtractService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Run 执行抽取流水线
// 逐行读取页面、抽取并写出，输出顺序与输入顺序一致
// 任何一条记录失败都会中止整个运行；已写出的内容保留在输出文件中
func (s *ExtractService) Run(ctx context.Context, inputPath, outputPath string) error {
	reader, err := jsonl.NewReader(inputPath)
	if err != nil {
		return err
	}
	defer reader.Close()

	writer, err := jsonl.NewWriter(outputPath)
	if err != nil {
		return err
	}

	pages := 0
	paragraphs := 0

	for {
		if err := ctx.Err(); err != nil {
			_ = writer.Close()
			return err
		}

		var page models.Page
		if err := reader.Next(&page); err != nil {
			if err == io.EOF {
				break
			}
			_ = writer.Close()
			return fmt.Errorf("failed to read page record: %w", err)
		}

		n, err := s.processPage(page, writer)
		if err != nil {
			_ = writer.Close()
			return fmt.Errorf("failed to process page %d: %w", page.PageID, err)
		}

		pages++
		paragraphs += n
		if s.progressInterval > 0 && pages%s.progressInterval == 0 {
			s.logger.WithFields(logrus.Fields{
				"pages":      pages,
				"paragraphs": paragraphs,
			}).Info("extracting paragraphs")
		}
	}

	if err := writer.Close(); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"pages":      pages,
		"paragraphs": paragraphs,
	}).Info("paragraph extraction completed")
	return nil
}

// processPage 抽取单个页面并写出通过过滤的段落记录，返回写出数量
func (s *ExtractService) processPage(page models.Page, writer *jsonl.Writer) (int, error) {
	raws, err := s.extractor.Extract(page.HTML)
	if err != nil {
		return 0, err
	}

	index := 0
	for _, raw := range raws {
		// 顶层标题命中忽略集合的小节整体丢弃
		if s.sectionsToIgnore[raw.Section.H2] {
			continue
		}
		// 长度越界的段落丢弃；这是过滤决策而不是错误
		if n := utf8.RuneCountInString(raw.Text); n < s.minLength || n > s.maxLength {
			continue
		}

		p := models.Paragraph{
			ID:             fmt.Sprintf("%d-%d-%d", page.PageID, page.RevID, index),
			PageID:         page.PageID,
			RevID:          page.RevID,
			ParagraphIndex: index,
			Title:          page.Title,
			Section:        raw.Section,
			Text:           raw.Text,
			HTMLTag:        raw.HTMLTag,
		}
		if err := writer.Write(p); err != nil {
			return index, err
		}
		index++
	}

	return index, nil
}
