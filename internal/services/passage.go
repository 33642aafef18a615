package services

import (
	"context"
	"fmt"
	"io"

	"github.com/fyerfyer/wiki-passages/internal/models"
	"github.com/fyerfyer/wiki-passages/internal/passage"
	"github.com/fyerfyer/wiki-passages/internal/repository"
	"github.com/fyerfyer/wiki-passages/pkg/jsonl"
	"github.com/sirupsen/logrus"
)

// PassageService 篇章构建流水线
// 读取段落记录流，按(title, section)分组切分为篇章并写出，
// 可选地把篇章同步写入关系库供下游索引查询
type PassageService struct {
	splitter         passage.SentenceSplitter
	maxChars         int                          // 篇章字符预算
	repo             repository.PassageRepository // 可选的篇章仓储
	batchSize        int                          // 仓储批量写入大小
	progressInterval int                          // 进度日志间隔（段落数）
	logger           *logrus.Logger
}

// PassageOption 篇章服务配置选项
type PassageOption func(*PassageService)

// NewPassageService 创建篇章构建服务
func NewPassageService(splitter passage.SentenceSplitter, opts ...PassageOption) *PassageService {
	srv := &PassageService{
		splitter:         splitter,
		maxChars:         passage.DefaultMaxPassageLength,
		batchSize:        500,  // 默认批量写入大小
		progressInterval: 1000, // 默认每1000条段落输出一次进度
		logger:           logrus.New(),
	}

	for _, opt := range opts {
		opt(srv)
	}

	return srv
}

// WithMaxPassageLength 设置篇章字符预算
func WithMaxPassageLength(n int) PassageOption {
	return func(s *PassageService) {
		if n > 0 {
			s.maxChars = n
		}
	}
}

// WithPassageRepository 设置篇章仓储
func WithPassageRepository(repo repository.PassageRepository) PassageOption {
	return func(s *PassageService) {
		s.repo = repo
	}
}

// WithBatchSize 设置仓储批量写入大小
func WithBatchSize(n int) PassageOption {
	return func(s *PassageService) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithPassageProgressInterval 设置进度日志间隔
func WithPassageProgressInterval(n int) PassageOption {
	return func(s *PassageService) {
		s.progressInterval = n
	}
}

// WithPassageLogger 设置日志记录器
func WithPassageLogger(logger *logrus.Logger) PassageOption {
	return func(s *PassageService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Run 执行篇章构建流水线
// 段落记录严格按输入顺序消费，篇章按产出顺序写出
func (s *PassageService) Run(ctx context.Context, inputPath, outputPath string) error {
	reader, err := jsonl.NewReader(inputPath)
	if err != nil {
		return err
	}
	defer reader.Close()

	writer, err := jsonl.NewWriter(outputPath)
	if err != nil {
		return err
	}

	builder := passage.NewBuilder(s.splitter, s.maxChars)
	var pending []models.Passage // 等待批量入库的篇章
	records := 0
	passages := 0

	emit := func(batch []models.Passage) error {
		for _, p := range batch {
			if err := writer.Write(p); err != nil {
				return err
			}
		}
		passages += len(batch)

		if s.repo == nil {
			return nil
		}
		pending = append(pending, batch...)
		if len(pending) >= s.batchSize {
			if err := s.repo.SaveBatch(pending); err != nil {
				return fmt.Errorf("failed to store passages: %w", err)
			}
			pending = pending[:0]
		}
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			_ = writer.Close()
			return err
		}

		var p models.Paragraph
		if err := reader.Next(&p); err != nil {
			if err == io.EOF {
				break
			}
			_ = writer.Close()
			return fmt.Errorf("failed to read paragraph record: %w", err)
		}

		if err := emit(builder.Add(p)); err != nil {
			_ = writer.Close()
			return err
		}

		records++
		if s.progressInterval > 0 && records%s.progressInterval == 0 {
			s.logger.WithFields(logrus.Fields{
				"paragraphs": records,
				"passages":   passages,
			}).Info("building passages")
		}
	}

	// 输入结束后冲刷最后一组缓冲
	if err := emit(builder.Flush()); err != nil {
		_ = writer.Close()
		return err
	}

	if s.repo != nil && len(pending) > 0 {
		if err := s.repo.SaveBatch(pending); err != nil {
			_ = writer.Close()
			return fmt.Errorf("failed to store passages: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"paragraphs": records,
		"passages":   passages,
	}).Info("passage building completed")
	return nil
}
