package repository

import (
	"errors"
	"fmt"

	"github.com/fyerfyer/wiki-passages/internal/database"
	"github.com/fyerfyer/wiki-passages/internal/models"
	"gorm.io/gorm"
)

// passageRepository 篇章仓储实现
type passageRepository struct {
	db *gorm.DB // 数据库连接
}

// NewPassageRepository 创建篇章仓储实例
func NewPassageRepository() PassageRepository {
	return &passageRepository{
		db: database.MustDB(),
	}
}

// NewPassageRepositoryWithDB 使用指定的数据库连接创建篇章仓储实例
func NewPassageRepositoryWithDB(db *gorm.DB) PassageRepository {
	if db == nil {
		db = database.MustDB()
	}
	return &passageRepository{
		db: db,
	}
}

// SaveBatch 按流水线输出顺序批量写入篇章
func (r *passageRepository) SaveBatch(passages []models.Passage) error {
	if len(passages) == 0 {
		return nil
	}

	records := make([]*models.PassageRecord, 0, len(passages))
	for _, p := range passages {
		record, err := models.NewPassageRecord(p)
		if err != nil {
			return fmt.Errorf("failed to convert passage %d: %w", p.ID, err)
		}
		records = append(records, record)
	}

	return r.db.Create(&records).Error
}

// GetByPassageID 按全局篇章ID获取篇章
func (r *passageRepository) GetByPassageID(passageID int) (*models.PassageRecord, error) {
	var record models.PassageRecord
	err := r.db.Where("passage_id = ?", passageID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("passage not found: %d", passageID)
		}
		return nil, err
	}
	return &record, nil
}

// ListByTitle 按条目标题列出篇章，按全局篇章ID排序
func (r *passageRepository) ListByTitle(title string) ([]*models.PassageRecord, error) {
	var records []*models.PassageRecord
	err := r.db.Where("title = ?", title).Order("passage_id").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Count 统计已存储的篇章数量
func (r *passageRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&models.PassageRecord{}).Count(&total).Error
	return total, err
}
