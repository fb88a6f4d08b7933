// Package models 模型通用属性和方法
package models

import (
	"time"

	"gorm.io/gorm"
)

// CommonTimestampsField 通用时间戳
type CommonTimestampsField struct {
	CreatedAt time.Time `gorm:"column:created_at;index;" json:"created_at,omitempty"`
	UpdatedAt time.Time `gorm:"column:updated_at;index;" json:"updated_at,omitempty"`
}

// SoftDeletes 软删除
type SoftDeletes struct {
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index;" json:"deleted_at,omitempty"`
}
