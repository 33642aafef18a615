package main

import (
	"context"
	"fmt"
	"os"

	qpconfig "github.com/fyerfyer/wiki-passages/config"
	"github.com/fyerfyer/wiki-passages/internal/database"
	"github.com/fyerfyer/wiki-passages/internal/document"
	"github.com/fyerfyer/wiki-passages/internal/passage"
	"github.com/fyerfyer/wiki-passages/internal/repository"
	"github.com/fyerfyer/wiki-passages/internal/services"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// 命令行选项
var (
	cfgFile    string // 配置文件路径
	inputPath  string // 输入文件路径
	outputPath string // 输出文件路径
)

func main() {
	// 加载.env文件（如果存在）
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd 创建根命令
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wiki-passages",
		Short:         "把渲染后的百科条目HTML转换为带标题层级的检索篇章",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件路径 (默认 ./config.yaml)")
	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newPassagesCmd())

	return rootCmd
}

// newExtractCmd 创建段落抽取命令
func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "从页面HTML中抽取段落记录",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			logger.WithFields(logrus.Fields{
				"tags_to_extract":      cfg.Extract.TagsToExtract,
				"tags_to_remove":       cfg.Extract.TagsToRemove,
				"inner_tags_to_remove": cfg.Extract.InnerTagsToRemove,
				"sections_to_ignore":   cfg.Extract.SectionsToIgnore,
			}).Info("starting paragraph extraction")

			extractor := document.NewExtractor(
				document.WithTagsToExtract(cfg.Extract.TagsToExtract),
				document.WithTagsToRemove(cfg.Extract.TagsToRemove),
				document.WithInnerTagsToRemove(cfg.Extract.InnerTagsToRemove),
			)
			srv := services.NewExtractService(extractor,
				services.WithIgnoredSections(cfg.Extract.SectionsToIgnore),
				services.WithLengthBounds(cfg.Extract.MinParagraphLength, cfg.Extract.MaxParagraphLength),
				services.WithProgressInterval(cfg.Log.ProgressInterval),
				services.WithExtractLogger(logger),
			)

			if err := srv.Run(context.Background(), inputPath, outputPath); err != nil {
				logger.WithError(err).Error("paragraph extraction failed")
				return err
			}
			return nil
		},
	}

	addIOFlags(cmd)
	return cmd
}

// newPassagesCmd 创建篇章构建命令
func newPassagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "passages",
		Short: "把段落记录合并切分为长度受限的篇章",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			opts := []services.PassageOption{
				services.WithMaxPassageLength(cfg.Passage.MaxPassageLength),
				services.WithPassageProgressInterval(cfg.Log.ProgressInterval),
				services.WithPassageLogger(logger),
			}

			// 启用关系库时把篇章同步入库，供下游索引查询
			if cfg.Database.Enable {
				dbCfg := &database.Config{
					Type: cfg.Database.Type,
					DSN:  cfg.Database.DSN,
				}
				if err := database.Setup(dbCfg, logger); err != nil {
					return fmt.Errorf("failed to setup database: %w", err)
				}
				defer database.Close()

				opts = append(opts,
					services.WithPassageRepository(repository.NewPassageRepository()),
					services.WithBatchSize(cfg.Database.BatchSize),
				)
			}

			splitter := passage.NewRuneSplitter(cfg.Passage.SentenceTerminators)
			srv := services.NewPassageService(splitter, opts...)

			if err := srv.Run(context.Background(), inputPath, outputPath); err != nil {
				logger.WithError(err).Error("passage building failed")
				return err
			}
			return nil
		},
	}

	addIOFlags(cmd)
	return cmd
}

// addIOFlags 为子命令添加输入输出文件选项
func addIOFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&inputPath, "input", "", "输入文件路径 (gzip压缩的JSON Lines)")
	cmd.Flags().StringVar(&outputPath, "output", "", "输出文件路径 (gzip压缩的JSON Lines)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
}

// setup 加载配置并初始化日志记录器
func setup() (*qpconfig.Config, *logrus.Logger, error) {
	cfg, err := qpconfig.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return cfg, logger, nil
}
