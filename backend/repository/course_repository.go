// Package repository mirrors course snapshots into a SQL database so they
// survive a restart. The in-memory store stays the source of truth.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vamsidulam/aiprofessor-hub/backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxInsertAttempts = 5

// ErrPositionContention is returned when a new course could not claim a
// position after repeated collisions with concurrent inserts.
var ErrPositionContention = errors.New("could not assign course position")

type CourseRecord struct {
	ID               string `gorm:"primaryKey"`
	Position         int    `gorm:"uniqueIndex"`
	Title            string
	Description      string
	Difficulty       string
	EstimatedHours   int
	Progress         float64
	TotalLessons     int
	CompletedLessons int
	UpdatedAt        time.Time
}

func (CourseRecord) TableName() string { return "courses" }

type ModuleRecord struct {
	CourseID    string `gorm:"primaryKey"`
	ID          string `gorm:"primaryKey"`
	Position    int
	Title       string
	Description string
	Progress    float64
	IsCompleted bool
}

func (ModuleRecord) TableName() string { return "course_modules" }

type LessonRecord struct {
	CourseID    string `gorm:"primaryKey"`
	ID          string `gorm:"primaryKey"`
	ModuleID    string `gorm:"index"`
	Position    int
	Title       string
	Content     string
	Type        string
	Duration    int
	IsCompleted bool
}

func (LessonRecord) TableName() string { return "course_lessons" }

type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&CourseRecord{}, &ModuleRecord{}, &LessonRecord{})
}

// SaveCourse writes the whole course tree, replacing any previous rows for
// it. A new course is placed after all existing ones.
//
// Completion only ever grows, so a snapshot with fewer completed lessons than
// the saved row is older than it and is dropped. Saves that reach the
// database out of order therefore never roll progress back.
func (r *CourseRepository) SaveCourse(ctx context.Context, c models.Course) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := CourseRecord{
			ID:               c.ID,
			Title:            c.Title,
			Description:      c.Description,
			Difficulty:       string(c.Difficulty),
			EstimatedHours:   c.EstimatedHours,
			Progress:         c.Progress,
			TotalLessons:     c.TotalLessons,
			CompletedLessons: c.CompletedLessons,
		}

		saved, err := updateCourseRow(tx, rec)
		if err != nil {
			return err
		}
		if !saved {
			exists, err := courseExists(tx, c.ID)
			if err != nil {
				return err
			}
			if exists {
				return nil
			}
			inserted, err := insertCourseRow(tx, rec)
			if err != nil {
				return err
			}
			if !inserted {
				// another writer created the row after our update missed it
				if saved, err = updateCourseRow(tx, rec); err != nil || !saved {
					return err
				}
			}
		}

		if err := tx.Where("course_id = ?", c.ID).Delete(&LessonRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", c.ID).Delete(&ModuleRecord{}).Error; err != nil {
			return err
		}

		var modules []ModuleRecord
		var lessons []LessonRecord
		for mi, m := range c.Modules {
			modules = append(modules, ModuleRecord{
				CourseID:    c.ID,
				ID:          m.ID,
				Position:    mi,
				Title:       m.Title,
				Description: m.Description,
				Progress:    m.Progress,
				IsCompleted: m.IsCompleted,
			})
			for li, l := range m.Lessons {
				lessons = append(lessons, LessonRecord{
					CourseID:    c.ID,
					ID:          l.ID,
					ModuleID:    m.ID,
					Position:    li,
					Title:       l.Title,
					Content:     l.Content,
					Type:        string(l.Type),
					Duration:    l.Duration,
					IsCompleted: l.IsCompleted,
				})
			}
		}
		if len(modules) > 0 {
			if err := tx.Create(&modules).Error; err != nil {
				return err
			}
		}
		if len(lessons) > 0 {
			if err := tx.Create(&lessons).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// updateCourseRow overwrites an existing course row unless the stored row has
// more completed lessons. The row stays locked until the transaction ends.
func updateCourseRow(tx *gorm.DB, rec CourseRecord) (bool, error) {
	res := tx.Model(&CourseRecord{}).
		Where("id = ? AND completed_lessons <= ?", rec.ID, rec.CompletedLessons).
		Updates(map[string]interface{}{
			"title":             rec.Title,
			"description":       rec.Description,
			"difficulty":        rec.Difficulty,
			"estimated_hours":   rec.EstimatedHours,
			"progress":          rec.Progress,
			"total_lessons":     rec.TotalLessons,
			"completed_lessons": rec.CompletedLessons,
		})
	return res.RowsAffected > 0, res.Error
}

func courseExists(tx *gorm.DB, id string) (bool, error) {
	var n int64
	err := tx.Model(&CourseRecord{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// insertCourseRow appends a new course at MAX(position)+1. Position is
// unique, so two concurrent inserts cannot share a slot: the loser's insert
// is skipped and it retries with a fresh maximum. It reports false when the
// course id itself was taken in the meantime.
func insertCourseRow(tx *gorm.DB, rec CourseRecord) (bool, error) {
	for attempt := 0; attempt < maxInsertAttempts; attempt++ {
		var next int
		err := tx.Model(&CourseRecord{}).
			Select("COALESCE(MAX(position), -1) + 1").
			Scan(&next).Error
		if err != nil {
			return false, err
		}
		rec.Position = next

		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rec)
		if res.Error != nil {
			return false, res.Error
		}
		if res.RowsAffected == 1 {
			return true, nil
		}

		exists, err := courseExists(tx, rec.ID)
		if err != nil || exists {
			return false, err
		}
	}
	return false, fmt.Errorf("%w: course %q", ErrPositionContention, rec.ID)
}

// LoadCourses rebuilds every saved course in its original order.
func (r *CourseRepository) LoadCourses(ctx context.Context) ([]models.Course, error) {
	db := r.db.WithContext(ctx)

	var courses []CourseRecord
	if err := db.Order("position asc").Find(&courses).Error; err != nil {
		return nil, err
	}
	var modules []ModuleRecord
	if err := db.Order("course_id asc, position asc").Find(&modules).Error; err != nil {
		return nil, err
	}
	var lessons []LessonRecord
	if err := db.Order("course_id asc, module_id asc, position asc").Find(&lessons).Error; err != nil {
		return nil, err
	}

	type moduleKey struct{ course, module string }
	lessonsByModule := make(map[moduleKey][]models.Lesson)
	for _, l := range lessons {
		k := moduleKey{l.CourseID, l.ModuleID}
		lessonsByModule[k] = append(lessonsByModule[k], models.Lesson{
			ID:          l.ID,
			Title:       l.Title,
			Content:     l.Content,
			IsCompleted: l.IsCompleted,
			Type:        models.LessonKind(l.Type),
			Duration:    l.Duration,
		})
	}
	modulesByCourse := make(map[string][]models.Module)
	for _, m := range modules {
		ls := lessonsByModule[moduleKey{m.CourseID, m.ID}]
		if ls == nil {
			ls = []models.Lesson{}
		}
		modulesByCourse[m.CourseID] = append(modulesByCourse[m.CourseID], models.Module{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Lessons:     ls,
			IsCompleted: m.IsCompleted,
			Progress:    m.Progress,
		})
	}

	out := make([]models.Course, 0, len(courses))
	for _, c := range courses {
		mods := modulesByCourse[c.ID]
		if mods == nil {
			mods = []models.Module{}
		}
		out = append(out, models.Course{
			ID:               c.ID,
			Title:            c.Title,
			Description:      c.Description,
			Modules:          mods,
			Progress:         c.Progress,
			TotalLessons:     c.TotalLessons,
			CompletedLessons: c.CompletedLessons,
			Difficulty:       models.Difficulty(c.Difficulty),
			EstimatedHours:   c.EstimatedHours,
		})
	}
	return out, nil
}
