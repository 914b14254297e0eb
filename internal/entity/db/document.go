package db

import "time"

// Document 保存一个集合的完整 JSON 文档，每个集合一行。
type Document struct {
	Name      string    `gorm:"primaryKey;column:name;type:varchar(191)" json:"name"`
	Body      string    `gorm:"column:body;not null" json:"body"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 指定表名。
func (Document) TableName() string {
	return "record_documents"
}
