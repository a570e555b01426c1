package db

import "gorm.io/gorm"

// Comment 定义了文章评论模型，新评论默认进入待审核状态
type Comment struct {
	gorm.Model
	PostID    uint   `gorm:"index;not null"`
	VisitorID string `gorm:"size:64;index"`
	Name      string `gorm:"size:80;not null"`
	Email     string `gorm:"size:120;not null"`
	Content   string `gorm:"type:text;not null"`
	Status    string `gorm:"size:20;default:pending"` // pending, approved, rejected
}
