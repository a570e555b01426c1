package db

import "gorm.io/gorm"

// Hero 保存首页主视觉区内容，站点只使用最新一条记录
type Hero struct {
	gorm.Model
	Name      string `gorm:"size:80;not null"`
	Tagline   string `gorm:"size:200"`
	Intro     string `gorm:"type:text"`
	AvatarURL string `gorm:"size:255"`
	CoverURL  string `gorm:"size:255"`
	ResumeURL string `gorm:"size:255"`
}

// About 保存关于页的 Markdown 内容，站点只使用最新一条记录
type About struct {
	gorm.Model
	Content string `gorm:"type:text"`
}

// SocialLink 用于保存前台展示的联系与社交信息
// 支持自定义排序、平台与跳转链接
// Icon 字段用于匹配前端内置的图标
// Visible 标记是否在前台展示
// Sort 值越小越靠前

type SocialLink struct {
	gorm.Model
	Platform string `gorm:"size:50;not null"`
	Label    string `gorm:"size:80;not null"`
	Value    string `gorm:"size:255;not null"`
	Link     string `gorm:"size:255"`
	Icon     string `gorm:"size:50"`
	Sort     int    `gorm:"default:0"`
	Visible  bool
}

// TableName 返回自定义表名，避免冲突
func (SocialLink) TableName() string {
	return "social_links"
}
