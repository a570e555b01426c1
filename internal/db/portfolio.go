package db

import "gorm.io/gorm"

// Skill 定义了技能模型
type Skill struct {
	gorm.Model
	Name     string `gorm:"size:80;not null"`
	Category string `gorm:"size:50"`
	Level    int    `gorm:"default:0"` // 0-100
	Icon     string `gorm:"size:50"`
	Sort     int    `gorm:"default:0"`
}

// Experience 定义了工作经历模型
type Experience struct {
	gorm.Model
	Role    string `gorm:"size:100;not null"`
	Company string `gorm:"size:100;not null"`
	Start   string `gorm:"size:20"`
	End     string `gorm:"size:20"` // 为空表示至今
	Summary string `gorm:"type:text"`
	Sort    int    `gorm:"default:0"`
}

// Project 定义了作品集项目模型
type Project struct {
	gorm.Model
	Title       string `gorm:"size:120;not null"`
	Summary     string `gorm:"size:255"`
	Description string `gorm:"type:text"`
	ImageURL    string `gorm:"size:255"`
	ImageWidth  int
	ImageHeight int
	TechStack   string `gorm:"size:255"` // 逗号分隔的技术标签
	RepoURL     string `gorm:"size:255"`
	DemoURL     string `gorm:"size:255"`
	Featured    bool
	Status      string `gorm:"size:20;default:published"` // published, draft
	SortOrder   int    `gorm:"default:0"`
}
