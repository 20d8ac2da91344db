package models

// CourseProgress is one row of the progress overview.
type CourseProgress struct {
	CourseID         string  `json:"courseId"`
	Title            string  `json:"title"`
	Progress         float64 `json:"progress"`
	CompletedLessons int     `json:"completedLessons"`
	TotalLessons     int     `json:"totalLessons"`
	RemainingMinutes int     `json:"remainingMinutes"`
	SkillLevel       string  `json:"skillLevel"`
}

type ProgressOverview struct {
	TotalCourses      int              `json:"totalCourses"`
	CompletedCourses  int              `json:"completedCourses"`
	InProgressCourses int              `json:"inProgressCourses"`
	TotalLessons      int              `json:"totalLessons"`
	CompletedLessons  int              `json:"completedLessons"`
	TotalHours        int              `json:"totalHours"`
	OverallProgress   float64          `json:"overallProgress"`
	Courses           []CourseProgress `json:"courses"`
}
