package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config 应用程序配置结构体
type Config struct {
	Extract  ExtractConfig  `mapstructure:"extract"`
	Passage  PassageConfig  `mapstructure:"passage"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
}

// ExtractConfig 段落抽取配置
type ExtractConfig struct {
	TagsToExtract      []string `mapstructure:"tags_to_extract"`      // 抽取文本的标签集合
	TagsToRemove       []string `mapstructure:"tags_to_remove"`       // 抽取前整体清空的标签集合
	InnerTagsToRemove  []string `mapstructure:"inner_tags_to_remove"` // 读取文本前清空的内部标签集合
	SectionsToIgnore   []string `mapstructure:"sections_to_ignore"`   // 按h2标题忽略的小节
	MinParagraphLength int      `mapstructure:"min_paragraph_length"` // 段落最小字符数
	MaxParagraphLength int      `mapstructure:"max_paragraph_length"` // 段落最大字符数
}

// PassageConfig 篇章构建配置
type PassageConfig struct {
	MaxPassageLength    int    `mapstructure:"max_passage_length"`   // 篇章字符预算
	SentenceTerminators string `mapstructure:"sentence_terminators"` // 句子终止符集合
}

// DatabaseConfig 篇章存储配置
type DatabaseConfig struct {
	Enable    bool   `mapstructure:"enable"`     // 是否把篇章同步写入关系库
	Type      string `mapstructure:"type"`       // 数据库类型，目前支持sqlite
	DSN       string `mapstructure:"dsn"`        // 数据源名称
	BatchSize int    `mapstructure:"batch_size"` // 批量写入大小
}

// LogConfig 日志配置
type LogConfig struct {
	Level            string `mapstructure:"level"`             // 日志级别
	ProgressInterval int    `mapstructure:"progress_interval"` // 每处理多少条记录输出一次进度
}

// Load 从文件和环境变量加载配置
func Load(configPath string) (*Config, error) {
	var config Config

	// 设置默认配置路径
	if configPath == "" {
		configPath = "config.yaml" // 默认在当前目录寻找config.yaml
	}

	// 初始化viper
	v := viper.New()
	v.SetConfigFile(configPath)

	// 尝试读取配置文件，找不到时使用默认值
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("Warning: Config file not found at %s, using defaults", configPath)
		} else if strings.Contains(err.Error(), "no such file") {
			log.Printf("Warning: Config file not found at %s, using defaults", configPath)
		} else {
			return nil, fmt.Errorf("failed to read config file: %v", err)
		}
	}

	// 设置默认值
	setDefaults(v)

	// 支持环境变量覆盖，如 EXTRACT_MAX_PARAGRAPH_LENGTH
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 解析配置到结构体
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %v", err)
	}

	return &config, nil
}

// setDefaults 设置配置的默认值
func setDefaults(v *viper.Viper) {
	// 段落抽取默认配置
	v.SetDefault("extract.tags_to_extract", []string{"p", "h3", "h4", "h5", "h6", "dt", "dd", "li", "th", "tr"})
	v.SetDefault("extract.tags_to_remove", []string{"table"})
	v.SetDefault("extract.inner_tags_to_remove", []string{"sup"})
	v.SetDefault("extract.sections_to_ignore", []string{"脚注", "出典", "参考文献", "関連項目", "外部リンク"})
	v.SetDefault("extract.min_paragraph_length", 10)
	v.SetDefault("extract.max_paragraph_length", 1000)

	// 篇章构建默认配置
	v.SetDefault("passage.max_passage_length", 750)
	v.SetDefault("passage.sentence_terminators", "。！？!?")

	// 篇章存储默认配置
	v.SetDefault("database.enable", false)
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.dsn", "data/passages.db")
	v.SetDefault("database.batch_size", 500)

	// 日志默认配置
	v.SetDefault("log.level", "info")
	v.SetDefault("log.progress_interval", 1000)
}
