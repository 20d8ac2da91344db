// Package analytics derives cross-course figures from course snapshots. It
// only reads snapshots; nothing here feeds back into the store.
package analytics

import (
	"github.com/vamsidulam/aiprofessor-hub/backend/models"
	"github.com/vamsidulam/aiprofessor-hub/backend/progress"
)

const (
	SkillNotStarted   = "Not Started"
	SkillBeginner     = "Beginner"
	SkillIntermediate = "Intermediate"
	SkillAdvanced     = "Advanced"
	SkillMaster       = "Master"
)

// SkillLevel buckets a course progress value.
func SkillLevel(p float64) string {
	switch {
	case p <= 0:
		return SkillNotStarted
	case p < 30:
		return SkillBeginner
	case p < 70:
		return SkillIntermediate
	case p < 100:
		return SkillAdvanced
	default:
		return SkillMaster
	}
}

// Overview summarizes a snapshot sequence. Overall progress is flat over all
// lessons of all courses.
func Overview(courses []models.Course) models.ProgressOverview {
	out := models.ProgressOverview{
		TotalCourses: len(courses),
		Courses:      make([]models.CourseProgress, 0, len(courses)),
	}
	for _, c := range courses {
		switch {
		case c.Progress >= 100:
			out.CompletedCourses++
		case c.Progress > 0:
			out.InProgressCourses++
		}
		out.TotalLessons += c.TotalLessons
		out.CompletedLessons += c.CompletedLessons
		out.TotalHours += c.EstimatedHours

		out.Courses = append(out.Courses, models.CourseProgress{
			CourseID:         c.ID,
			Title:            c.Title,
			Progress:         c.Progress,
			CompletedLessons: c.CompletedLessons,
			TotalLessons:     c.TotalLessons,
			RemainingMinutes: c.RemainingMinutes(),
			SkillLevel:       SkillLevel(c.Progress),
		})
	}
	out.OverallProgress = progress.Percent(out.CompletedLessons, out.TotalLessons)
	return out
}
