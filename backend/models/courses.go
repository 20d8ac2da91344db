package models

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// LessonKind only changes how a lesson is presented.
type LessonKind string

const (
	LessonVideo      LessonKind = "video"
	LessonText       LessonKind = "text"
	LessonPractice   LessonKind = "practice"
	LessonAssessment LessonKind = "assessment"
)

func (k LessonKind) Valid() bool {
	switch k {
	case LessonVideo, LessonText, LessonPractice, LessonAssessment:
		return true
	}
	return false
}

type Course struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Modules          []Module   `json:"modules"`
	Progress         float64    `json:"progress"`
	TotalLessons     int        `json:"totalLessons"`
	CompletedLessons int        `json:"completedLessons"`
	Difficulty       Difficulty `json:"difficulty"`
	EstimatedHours   int        `json:"estimatedHours"`
}

type Module struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Lessons     []Lesson `json:"lessons"`
	IsCompleted bool     `json:"isCompleted"`
	Progress    float64  `json:"progress"`
}

type Lesson struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	IsCompleted bool       `json:"isCompleted"`
	Type        LessonKind `json:"type"`
	Duration    int        `json:"duration"` // minutes
}

// Clone returns a deep copy that shares no slices with c.
func (c Course) Clone() Course {
	out := c
	if c.Modules != nil {
		out.Modules = make([]Module, len(c.Modules))
		for i, m := range c.Modules {
			out.Modules[i] = m.Clone()
		}
	}
	return out
}

func (m Module) Clone() Module {
	out := m
	if m.Lessons != nil {
		out.Lessons = make([]Lesson, len(m.Lessons))
		copy(out.Lessons, m.Lessons)
	}
	return out
}

// FindLesson reports the module and lesson index of lessonID.
func (c Course) FindLesson(lessonID string) (moduleIdx, lessonIdx int, ok bool) {
	for mi, m := range c.Modules {
		for li, l := range m.Lessons {
			if l.ID == lessonID {
				return mi, li, true
			}
		}
	}
	return -1, -1, false
}

// RemainingMinutes sums the durations of lessons not yet completed.
func (c Course) RemainingMinutes() int {
	total := 0
	for _, m := range c.Modules {
		for _, l := range m.Lessons {
			if !l.IsCompleted {
				total += l.Duration
			}
		}
	}
	return total
}
