package service

import (
	"errors"

	"github.com/devfolio/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInvalidReaction 表示反应类型不在 1..5 范围内
var ErrInvalidReaction = errors.New("reaction kind out of range")

// EngagementService 负责匿名访客的浏览去重与反应账本。
// 并发正确性依赖 (post_id, visitor_id) 上的唯一索引：
// 两个并发的首次写入只有一个能插入成功，失败方按 RowsAffected 走对账分支。
type EngagementService struct {
	db *gorm.DB
}

// NewEngagementService 创建 EngagementService。
func NewEngagementService(gdb *gorm.DB) *EngagementService {
	return &EngagementService{db: gdb}
}

// ReactionResult 汇总一次反应操作后的聚合状态。
type ReactionResult struct {
	Counts          map[int]int64
	VisitorReaction *int // nil 表示当前无反应
}

// RecordView 记录访客对文章的浏览，同一 (文章, 访客) 至多计数一次。
// freshVisitor 标记本次请求新签发的访客标识，此类标识不参与旧 IP 记录收编，
// 避免 NAT 共享 IP 场景下把无关访客错误合并。
func (s *EngagementService) RecordView(postID uint, visitorID, ip, userAgent string, freshVisitor bool) (uint64, error) {
	var views uint64

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		var post db.Post
		if err := tx.Select("id", "view_count").First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}
		views = post.ViewCount

		// 无法确认访客身份时不记录浏览，直接返回当前计数
		if visitorID == "" {
			return nil
		}

		var existing db.ViewEvent
		err := tx.Where("post_id = ? AND visitor_id = ?", postID, visitorID).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// 旧记录收编：命中仅按 IP 记录的历史行时回填 visitor_id，不重复计数
		if !freshVisitor && adoptLegacyView(tx, postID, ip, visitorID) {
			return nil
		}

		event := db.ViewEvent{
			PostID:    postID,
			VisitorID: visitorID,
			IP:        ip,
			UserAgent: userAgent,
		}
		insert := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "visitor_id"}},
			DoNothing: true,
		}).Create(&event)
		if insert.Error != nil {
			return insert.Error
		}

		// RowsAffected == 0 说明并发请求已抢先插入，计数归对方维护
		if insert.RowsAffected == 0 {
			return nil
		}

		if err := tx.Model(&db.Post{}).Where("id = ?", postID).
			UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error; err != nil {
			return err
		}
		views = post.ViewCount + 1

		return nil
	}); err != nil {
		return 0, err
	}

	return views, nil
}

// SetReaction 记录、切换或取消访客对文章的反应，并同步各类型计数。
// 同类型再次提交为取消，不同类型为切换，均保证计数净变化正确。
func (s *EngagementService) SetReaction(postID uint, visitorID, ip string, kind int, freshVisitor bool) (ReactionResult, error) {
	if _, ok := db.ReactionColumn(kind); !ok {
		return ReactionResult{}, ErrInvalidReaction
	}

	var result ReactionResult

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		var post db.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}

		if visitorID == "" {
			result = ReactionResult{Counts: post.ReactionCounts()}
			return nil
		}

		var existing db.ReactionEvent
		err := tx.Where("post_id = ? AND visitor_id = ?", postID, visitorID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) && !freshVisitor {
			// 旧记录收编后重新读取，作为该访客的既有反应继续走分支判断
			if adoptLegacyReaction(tx, postID, ip, visitorID) {
				err = tx.Where("post_id = ? AND visitor_id = ?", postID, visitorID).First(&existing).Error
			}
		}

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := s.createReaction(tx, postID, visitorID, ip, kind, &result); err != nil {
				return err
			}
		case err != nil:
			return err
		case existing.Reaction == kind:
			// 取消：删除行并回退计数
			del := tx.Where("id = ? AND reaction = ?", existing.ID, existing.Reaction).
				Delete(&db.ReactionEvent{})
			if del.Error != nil {
				return del.Error
			}
			if del.RowsAffected == 1 {
				if err := decrementReaction(tx, postID, existing.Reaction); err != nil {
					return err
				}
			}
			result.VisitorReaction = nil
		default:
			// 切换：原地更新类型，旧类型减一、新类型加一
			if err := s.switchReaction(tx, postID, existing, kind); err != nil {
				return err
			}
			current := kind
			result.VisitorReaction = &current
		}

		var fresh db.Post
		if err := tx.First(&fresh, postID).Error; err != nil {
			return err
		}
		result.Counts = fresh.ReactionCounts()

		return nil
	}); err != nil {
		return ReactionResult{}, err
	}

	return result, nil
}

// createReaction 处理首次反应，包括并发首次写入的唯一键冲突对账。
func (s *EngagementService) createReaction(tx *gorm.DB, postID uint, visitorID, ip string, kind int, result *ReactionResult) error {
	event := db.ReactionEvent{
		PostID:    postID,
		VisitorID: visitorID,
		IP:        ip,
		Reaction:  kind,
	}
	insert := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "visitor_id"}},
		DoNothing: true,
	}).Create(&event)
	if insert.Error != nil {
		return insert.Error
	}

	if insert.RowsAffected == 1 {
		if err := incrementReaction(tx, postID, kind); err != nil {
			return err
		}
		current := kind
		result.VisitorReaction = &current
		return nil
	}

	// 并发请求已抢先建行：重读后对账，类型一致则无事可做，
	// 不一致则切换到本次提交的类型并修正两侧计数
	var winner db.ReactionEvent
	if err := tx.Where("post_id = ? AND visitor_id = ?", postID, visitorID).First(&winner).Error; err != nil {
		return err
	}
	if winner.Reaction != kind {
		if err := s.switchReaction(tx, postID, winner, kind); err != nil {
			return err
		}
	}
	current := kind
	result.VisitorReaction = &current
	return nil
}

// switchReaction 将既有反应更新为新类型并修正计数。
// 更新条件带上旧类型作为守卫，确保计数修正只在行确实被本次更新改变时发生。
func (s *EngagementService) switchReaction(tx *gorm.DB, postID uint, existing db.ReactionEvent, kind int) error {
	update := tx.Model(&db.ReactionEvent{}).
		Where("id = ? AND reaction = ?", existing.ID, existing.Reaction).
		Update("reaction", kind)
	if update.Error != nil {
		return update.Error
	}
	if update.RowsAffected == 0 {
		return nil
	}

	if err := decrementReaction(tx, postID, existing.Reaction); err != nil {
		return err
	}
	return incrementReaction(tx, postID, kind)
}

// VisitorReaction 查询访客在指定文章上的当前反应，无反应时返回 nil。
func (s *EngagementService) VisitorReaction(postID uint, visitorID string) (*int, error) {
	if visitorID == "" {
		return nil, nil
	}

	var event db.ReactionEvent
	if err := s.db.Where("post_id = ? AND visitor_id = ?", postID, visitorID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	reaction := event.Reaction
	return &reaction, nil
}

// adoptLegacyView 将按 IP 记录的历史浏览行回填 visitor_id。
// 带 visitor_id = '' 守卫的条件更新保证重复尝试安全、不会二次迁移；
// 回填失败视为无历史记录，由调用方按新访客处理。
func adoptLegacyView(tx *gorm.DB, postID uint, ip, visitorID string) bool {
	if ip == "" {
		return false
	}

	var legacy db.ViewEvent
	if err := tx.Where("post_id = ? AND ip = ? AND visitor_id = ''", postID, ip).
		First(&legacy).Error; err != nil {
		return false
	}

	update := tx.Model(&db.ViewEvent{}).
		Where("id = ? AND visitor_id = ''", legacy.ID).
		Update("visitor_id", visitorID)

	return update.Error == nil && update.RowsAffected == 1
}

// adoptLegacyReaction 收编按 IP 记录的历史反应行，逻辑同 adoptLegacyView。
func adoptLegacyReaction(tx *gorm.DB, postID uint, ip, visitorID string) bool {
	if ip == "" {
		return false
	}

	var legacy db.ReactionEvent
	if err := tx.Where("post_id = ? AND ip = ? AND visitor_id = ''", postID, ip).
		First(&legacy).Error; err != nil {
		return false
	}

	update := tx.Model(&db.ReactionEvent{}).
		Where("id = ? AND visitor_id = ''", legacy.ID).
		Update("visitor_id", visitorID)

	return update.Error == nil && update.RowsAffected == 1
}

func incrementReaction(tx *gorm.DB, postID uint, kind int) error {
	column, ok := db.ReactionColumn(kind)
	if !ok {
		return ErrInvalidReaction
	}
	return tx.Model(&db.Post{}).Where("id = ?", postID).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1)).Error
}

// decrementReaction 回退计数并在 SQL 层面钳制到 0，计数永不为负。
func decrementReaction(tx *gorm.DB, postID uint, kind int) error {
	column, ok := db.ReactionColumn(kind)
	if !ok {
		return ErrInvalidReaction
	}
	return tx.Model(&db.Post{}).Where("id = ?", postID).
		UpdateColumn(column, gorm.Expr("CASE WHEN "+column+" > 0 THEN "+column+" - 1 ELSE 0 END")).Error
}

// EngagementOverview 聚合后台面板需要的互动数据。
type EngagementOverview struct {
	TotalViews      uint64
	TotalReactions  int64
	PostCount       int64
	PendingComments int64
	TopPosts        []TopPostStat
}

// TopPostStat 描述热门文章的统计信息。
type TopPostStat struct {
	PostID    uint
	Title     string
	Slug      string
	ViewCount uint64
}

// Overview 汇总全站浏览与反应数据及热门文章。
func (s *EngagementService) Overview(limit int) (EngagementOverview, error) {
	if limit <= 0 {
		limit = 5
	}

	var overview EngagementOverview

	var totalViews struct {
		Views uint64
	}
	if err := s.db.Model(&db.Post{}).
		Select("COALESCE(SUM(view_count), 0) AS views").
		Scan(&totalViews).Error; err != nil {
		return overview, err
	}
	overview.TotalViews = totalViews.Views

	if err := s.db.Model(&db.ReactionEvent{}).Count(&overview.TotalReactions).Error; err != nil {
		return overview, err
	}

	if err := s.db.Model(&db.Post{}).Count(&overview.PostCount).Error; err != nil {
		return overview, err
	}

	if err := s.db.Model(&db.Comment{}).Where("status = ?", "pending").
		Count(&overview.PendingComments).Error; err != nil {
		return overview, err
	}

	var topPosts []TopPostStat
	if err := s.db.Model(&db.Post{}).
		Select("id AS post_id, title, slug, view_count").
		Where("status = ?", "published").
		Order("view_count DESC").
		Limit(limit).
		Scan(&topPosts).Error; err != nil {
		return overview, err
	}
	overview.TopPosts = topPosts

	return overview, nil
}
