package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// PassageRecord 篇章在关系库中的存储模型
// 供下游检索索引直接查询，内容与输出文件中的篇章逐条对应
type PassageRecord struct {
	ID        uint           `gorm:"primaryKey"`              // 自增主键
	PassageID int            `gorm:"not null;uniqueIndex"`    // 全局篇章ID
	PageID    int            `gorm:"not null;index"`          // 条目页面ID
	RevID     int            `gorm:"not null"`                // 条目修订版本ID
	Title     string         `gorm:"type:varchar(255);index"` // 条目标题
	Section   datatypes.JSON `gorm:"type:json"`               // 标题层级快照，JSON格式
	Text      string         `gorm:"type:text;not null"`      // 篇章文本
	CreatedAt time.Time      `gorm:"not null"`                // 写入时间
}

// TableName 明确指定表名
func (PassageRecord) TableName() string {
	return "passages"
}

// NewPassageRecord 把输出流中的篇章转换为存储模型
func NewPassageRecord(p Passage) (*PassageRecord, error) {
	section, err := json.Marshal(p.Section)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal section: %w", err)
	}

	return &PassageRecord{
		PassageID: p.ID,
		PageID:    p.PageID,
		RevID:     p.RevID,
		Title:     p.Title,
		Section:   datatypes.JSON(section),
		Text:      p.Text,
	}, nil
}
