package service

import (
	"errors"
	"strings"

	"github.com/devfolio/internal/db"
	"gorm.io/gorm"
)

var (
	ErrSkillNotFound      = errors.New("skill not found")
	ErrExperienceNotFound = errors.New("experience not found")
)

// SkillService 管理技能与工作经历条目。
type SkillService struct {
	db *gorm.DB
}

// SkillInput represents fields accepted for a skill entry.
type SkillInput struct {
	Name     string
	Category string
	Level    int
	Icon     string
	Sort     int
}

// ExperienceInput represents fields accepted for an experience entry.
type ExperienceInput struct {
	Role    string
	Company string
	Start   string
	End     string
	Summary string
	Sort    int
}

// NewSkillService creates a SkillService instance.
func NewSkillService(gdb *gorm.DB) *SkillService {
	return &SkillService{db: gdb}
}

// ListSkills returns skills ordered by sort value then id.
func (s *SkillService) ListSkills() ([]db.Skill, error) {
	var skills []db.Skill
	if err := s.db.Order("sort asc, id asc").Find(&skills).Error; err != nil {
		return nil, err
	}
	return skills, nil
}

// CreateSkill persists a new skill entry.
func (s *SkillService) CreateSkill(input SkillInput) (*db.Skill, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.New("skill name is required")
	}

	skill := db.Skill{
		Name:     name,
		Category: strings.TrimSpace(input.Category),
		Level:    clampLevel(input.Level),
		Icon:     strings.TrimSpace(input.Icon),
		Sort:     input.Sort,
	}
	if err := s.db.Create(&skill).Error; err != nil {
		return nil, err
	}
	return &skill, nil
}

// UpdateSkill applies updates to an existing skill entry.
func (s *SkillService) UpdateSkill(id uint, input SkillInput) (*db.Skill, error) {
	var skill db.Skill
	if err := s.db.First(&skill, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSkillNotFound
		}
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.New("skill name is required")
	}

	skill.Name = name
	skill.Category = strings.TrimSpace(input.Category)
	skill.Level = clampLevel(input.Level)
	skill.Icon = strings.TrimSpace(input.Icon)
	skill.Sort = input.Sort

	if err := s.db.Save(&skill).Error; err != nil {
		return nil, err
	}
	return &skill, nil
}

// DeleteSkill removes a skill entry by id.
func (s *SkillService) DeleteSkill(id uint) error {
	result := s.db.Delete(&db.Skill{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSkillNotFound
	}
	return nil
}

// ListExperiences returns experiences ordered by sort value then newest first.
func (s *SkillService) ListExperiences() ([]db.Experience, error) {
	var experiences []db.Experience
	if err := s.db.Order("sort asc, id desc").Find(&experiences).Error; err != nil {
		return nil, err
	}
	return experiences, nil
}

// CreateExperience persists a new experience entry.
func (s *SkillService) CreateExperience(input ExperienceInput) (*db.Experience, error) {
	role := strings.TrimSpace(input.Role)
	company := strings.TrimSpace(input.Company)
	if role == "" || company == "" {
		return nil, errors.New("experience requires role and company")
	}

	experience := db.Experience{
		Role:    role,
		Company: company,
		Start:   strings.TrimSpace(input.Start),
		End:     strings.TrimSpace(input.End),
		Summary: input.Summary,
		Sort:    input.Sort,
	}
	if err := s.db.Create(&experience).Error; err != nil {
		return nil, err
	}
	return &experience, nil
}

// UpdateExperience applies updates to an existing experience entry.
func (s *SkillService) UpdateExperience(id uint, input ExperienceInput) (*db.Experience, error) {
	var experience db.Experience
	if err := s.db.First(&experience, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExperienceNotFound
		}
		return nil, err
	}

	role := strings.TrimSpace(input.Role)
	company := strings.TrimSpace(input.Company)
	if role == "" || company == "" {
		return nil, errors.New("experience requires role and company")
	}

	experience.Role = role
	experience.Company = company
	experience.Start = strings.TrimSpace(input.Start)
	experience.End = strings.TrimSpace(input.End)
	experience.Summary = input.Summary
	experience.Sort = input.Sort

	if err := s.db.Save(&experience).Error; err != nil {
		return nil, err
	}
	return &experience, nil
}

// DeleteExperience removes an experience entry by id.
func (s *SkillService) DeleteExperience(id uint) error {
	result := s.db.Delete(&db.Experience{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrExperienceNotFound
	}
	return nil
}

func clampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > 100 {
		return 100
	}
	return level
}
