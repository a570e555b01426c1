package service

import (
	"errors"
	"strings"

	"github.com/devfolio/internal/db"
	"gorm.io/gorm"
)

var ErrSocialLinkNotFound = errors.New("social link not found")

// ProfileService 管理首页主视觉、关于页与社交链接内容。
type ProfileService struct {
	db *gorm.DB
}

// HeroInput represents fields accepted when updating the hero section.
type HeroInput struct {
	Name      string
	Tagline   string
	Intro     string
	AvatarURL string
	CoverURL  string
	ResumeURL string
}

// SocialLinkInput represents fields accepted for contact entries.
type SocialLinkInput struct {
	Platform string
	Label    string
	Value    string
	Link     string
	Icon     string
	Sort     int
	Visible  bool
}

// NewProfileService creates a ProfileService instance.
func NewProfileService(gdb *gorm.DB) *ProfileService {
	return &ProfileService{db: gdb}
}

// GetHero 返回最新的主视觉内容，不存在时返回 nil。
func (s *ProfileService) GetHero() (*db.Hero, error) {
	var hero db.Hero
	if err := s.db.Order("id desc").First(&hero).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &hero, nil
}

// SaveHero 创建或更新主视觉内容，站点始终只维护一条记录。
func (s *ProfileService) SaveHero(input HeroInput) (*db.Hero, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.New("hero name is required")
	}

	hero, err := s.GetHero()
	if err != nil {
		return nil, err
	}
	if hero == nil {
		hero = &db.Hero{}
	}

	hero.Name = name
	hero.Tagline = strings.TrimSpace(input.Tagline)
	hero.Intro = input.Intro
	hero.AvatarURL = strings.TrimSpace(input.AvatarURL)
	hero.CoverURL = strings.TrimSpace(input.CoverURL)
	hero.ResumeURL = strings.TrimSpace(input.ResumeURL)

	if err := s.db.Save(hero).Error; err != nil {
		return nil, err
	}
	return hero, nil
}

// GetAbout 返回最新的关于页内容，不存在时返回 nil。
func (s *ProfileService) GetAbout() (*db.About, error) {
	var about db.About
	if err := s.db.Order("id desc").First(&about).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &about, nil
}

// SaveAbout 创建或更新关于页 Markdown 内容。
func (s *ProfileService) SaveAbout(content string) (*db.About, error) {
	about, err := s.GetAbout()
	if err != nil {
		return nil, err
	}
	if about == nil {
		about = &db.About{}
	}

	about.Content = content
	if err := s.db.Save(about).Error; err != nil {
		return nil, err
	}
	return about, nil
}

// ListSocialLinks 返回社交链接，onlyVisible 为 true 时仅返回前台可见项。
func (s *ProfileService) ListSocialLinks(onlyVisible bool) ([]db.SocialLink, error) {
	query := s.db.Model(&db.SocialLink{})
	if onlyVisible {
		query = query.Where("visible = ?", true)
	}

	var links []db.SocialLink
	if err := query.Order("sort asc, id asc").Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// CreateSocialLink persists a new contact entry.
func (s *ProfileService) CreateSocialLink(input SocialLinkInput) (*db.SocialLink, error) {
	if strings.TrimSpace(input.Platform) == "" || strings.TrimSpace(input.Label) == "" {
		return nil, errors.New("social link requires platform and label")
	}

	link := db.SocialLink{
		Platform: strings.TrimSpace(input.Platform),
		Label:    strings.TrimSpace(input.Label),
		Value:    strings.TrimSpace(input.Value),
		Link:     strings.TrimSpace(input.Link),
		Icon:     strings.TrimSpace(input.Icon),
		Sort:     input.Sort,
		Visible:  input.Visible,
	}
	if err := s.db.Create(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// UpdateSocialLink applies updates to an existing contact entry.
func (s *ProfileService) UpdateSocialLink(id uint, input SocialLinkInput) (*db.SocialLink, error) {
	var link db.SocialLink
	if err := s.db.First(&link, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSocialLinkNotFound
		}
		return nil, err
	}

	link.Platform = strings.TrimSpace(input.Platform)
	link.Label = strings.TrimSpace(input.Label)
	link.Value = strings.TrimSpace(input.Value)
	link.Link = strings.TrimSpace(input.Link)
	link.Icon = strings.TrimSpace(input.Icon)
	link.Sort = input.Sort
	link.Visible = input.Visible

	if err := s.db.Save(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// DeleteSocialLink removes a contact entry by id.
func (s *ProfileService) DeleteSocialLink(id uint) error {
	result := s.db.Delete(&db.SocialLink{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSocialLinkNotFound
	}
	return nil
}
