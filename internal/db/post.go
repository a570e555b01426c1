package db

import (
	"time"

	"gorm.io/gorm"
)

// ReactionKindCount 反应类型的固定数量，取值 1..ReactionKindCount
const ReactionKindCount = 5

// Post 定义了博客文章模型
type Post struct {
	gorm.Model
	Slug        string `gorm:"uniqueIndex;size:120;not null"`
	Title       string `gorm:"size:200"`
	Summary     string
	Content     string `gorm:"type:text"`
	CoverURL    string `gorm:"size:255"`
	CoverWidth  int
	CoverHeight int
	ReadingTime int
	Status      string `gorm:"size:20;default:draft"` // draft, published
	PublishedAt *time.Time
	UserID      uint
	User        User
	Tags        []Tag `gorm:"many2many:post_tags;"`

	// 冗余计数字段，由 engagement 服务通过原子 SQL 表达式维护
	ViewCount      uint64 `gorm:"default:0"`
	ReactionCount1 int64  `gorm:"default:0"`
	ReactionCount2 int64  `gorm:"default:0"`
	ReactionCount3 int64  `gorm:"default:0"`
	ReactionCount4 int64  `gorm:"default:0"`
	ReactionCount5 int64  `gorm:"default:0"`
}

// Tag 定义了标签模型
type Tag struct {
	gorm.Model
	Name  string `gorm:"unique;not null"`
	Posts []Post `gorm:"many2many:post_tags;"`
}

// reactionColumns 按类型索引的计数列名，下标 0 对应类型 1
var reactionColumns = [ReactionKindCount]string{
	"reaction_count1",
	"reaction_count2",
	"reaction_count3",
	"reaction_count4",
	"reaction_count5",
}

// ReactionColumn 返回指定反应类型对应的计数列名，类型越界时 ok 为 false。
func ReactionColumn(kind int) (string, bool) {
	if kind < 1 || kind > ReactionKindCount {
		return "", false
	}
	return reactionColumns[kind-1], true
}

// ReactionCounts 以 map 形式返回各反应类型的计数，便于 JSON 输出。
func (p *Post) ReactionCounts() map[int]int64 {
	return map[int]int64{
		1: p.ReactionCount1,
		2: p.ReactionCount2,
		3: p.ReactionCount3,
		4: p.ReactionCount4,
		5: p.ReactionCount5,
	}
}

// IsPublished 判断文章是否对外可见。
func (p *Post) IsPublished() bool {
	return p.Status == "published"
}
