// Package progress recomputes the derived progress fields of modules and
// courses from the completion flags of their lessons. Every function here is
// pure: inputs are never modified and the result depends only on the input.
package progress

import "github.com/vamsidulam/aiprofessor-hub/backend/models"

// CountLessons returns the number of completed lessons and the total number
// of lessons in a module.
func CountLessons(m models.Module) (completed, total int) {
	for _, l := range m.Lessons {
		if l.IsCompleted {
			completed++
		}
	}
	return completed, len(m.Lessons)
}

// Percent is 100*completed/total, or 0 when total is zero. No rounding.
func Percent(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// RecomputeModule returns a copy of m with Progress and IsCompleted derived
// from its lessons. A module without lessons has progress 0 and is never
// complete.
func RecomputeModule(m models.Module) models.Module {
	out := m.Clone()
	completed, total := CountLessons(m)
	out.Progress = Percent(completed, total)
	out.IsCompleted = total > 0 && completed == total
	return out
}

// RecomputeCourse returns a copy of c whose lesson totals and progress are
// derived from the flat set of lessons across all modules. Course progress is
// not the mean of module progress values.
func RecomputeCourse(c models.Course) models.Course {
	out := c.Clone()
	completed, total := 0, 0
	for _, m := range out.Modules {
		mc, mt := CountLessons(m)
		completed += mc
		total += mt
	}
	out.TotalLessons = total
	out.CompletedLessons = completed
	out.Progress = Percent(completed, total)
	return out
}

// Recompute refreshes every module and then the course itself.
func Recompute(c models.Course) models.Course {
	out := c.Clone()
	for i, m := range out.Modules {
		out.Modules[i] = RecomputeModule(m)
	}
	return RecomputeCourse(out)
}
