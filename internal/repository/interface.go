package repository

import "github.com/fyerfyer/wiki-passages/internal/models"

// PassageRepository 篇章仓储接口
// 为下游检索索引提供可查询的篇章存储
type PassageRepository interface {
	// SaveBatch 按流水线输出顺序批量写入篇章
	SaveBatch(passages []models.Passage) error

	// GetByPassageID 按全局篇章ID获取篇章
	GetByPassageID(passageID int) (*models.PassageRecord, error)

	// ListByTitle 按条目标题列出篇章，按全局篇章ID排序
	ListByTitle(title string) ([]*models.PassageRecord, error)

	// Count 统计已存储的篇章数量
	Count() (int64, error)
}
