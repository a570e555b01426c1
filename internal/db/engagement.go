package db

import "time"

// ViewEvent 记录 (文章, 访客) 维度的浏览事件，用于浏览量去重。
// 历史数据仅按 IP 记录，VisitorID 为空串，由 engagement 服务一次性收编。
type ViewEvent struct {
	ID        uint   `gorm:"primaryKey"`
	PostID    uint   `gorm:"uniqueIndex:idx_view_events_post_visitor"`
	VisitorID string `gorm:"size:64;uniqueIndex:idx_view_events_post_visitor"`
	IP        string `gorm:"size:64;index"`
	UserAgent string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 指定自定义表名。
func (ViewEvent) TableName() string {
	return "view_events"
}

// ReactionEvent 保存访客对文章的当前反应，同一 (文章, 访客) 至多一行。
// 再次提交相同类型即取消（删除行），提交不同类型则原地更新。
type ReactionEvent struct {
	ID        uint   `gorm:"primaryKey"`
	PostID    uint   `gorm:"uniqueIndex:idx_reaction_events_post_visitor"`
	VisitorID string `gorm:"size:64;uniqueIndex:idx_reaction_events_post_visitor"`
	IP        string `gorm:"size:64;index"`
	Reaction  int    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 指定自定义表名。
func (ReactionEvent) TableName() string {
	return "reaction_events"
}
