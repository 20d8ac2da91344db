// Package generator produces new course trees from a topic. The mock
// implementation stands in for a real AI backend and only simulates latency.
package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vamsidulam/aiprofessor-hub/backend/models"
	"github.com/vamsidulam/aiprofessor-hub/backend/progress"
)

var ErrEmptyTopic = errors.New("topic is empty")

// Producer builds a structurally valid course with nothing completed.
type Producer interface {
	ProduceCourse(ctx context.Context, topic string) (models.Course, error)
}

type MockGenerator struct {
	Delay time.Duration
	NewID func() string
}

func NewMockGenerator(delay time.Duration) *MockGenerator {
	return &MockGenerator{
		Delay: delay,
		NewID: func() string { return uuid.New().String() },
	}
}

func (g *MockGenerator) ProduceCourse(ctx context.Context, topic string) (models.Course, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return models.Course{}, ErrEmptyTopic
	}

	if g.Delay > 0 {
		timer := time.NewTimer(g.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return models.Course{}, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return models.Course{}, err
	}

	return mockCourse(g.NewID(), topic), nil
}

func mockCourse(id, topic string) models.Course {
	c := models.Course{
		ID:             id,
		Title:          fmt.Sprintf("Master %s", topic),
		Description:    fmt.Sprintf("A comprehensive course covering all aspects of %s from beginner to advanced level.", topic),
		Difficulty:     models.DifficultyBeginner,
		EstimatedHours: 12,
		Modules: []models.Module{
			{
				ID:          "1",
				Title:       fmt.Sprintf("Introduction to %s", topic),
				Description: fmt.Sprintf("Get started with the fundamentals of %s", topic),
				Lessons: []models.Lesson{
					{
						ID:       "1-1",
						Title:    fmt.Sprintf("What is %s?", topic),
						Content:  fmt.Sprintf("Learn the basics and core concepts of %s", topic),
						Type:     models.LessonVideo,
						Duration: 15,
					},
					{
						ID:       "1-2",
						Title:    "Setting up your Environment",
						Content:  "Configure your development environment and tools",
						Type:     models.LessonText,
						Duration: 10,
					},
				},
			},
			{
				ID:          "2",
				Title:       fmt.Sprintf("Core Concepts of %s", topic),
				Description: "Dive deeper into the essential principles",
				Lessons: []models.Lesson{
					{
						ID:       "2-1",
						Title:    "Key Principles",
						Content:  "Understanding the fundamental principles",
						Type:     models.LessonVideo,
						Duration: 20,
					},
					{
						ID:       "2-2",
						Title:    "Hands-on Practice",
						Content:  "Apply what you've learned with practical exercises",
						Type:     models.LessonPractice,
						Duration: 30,
					},
				},
			},
			{
				ID:          "3",
				Title:       fmt.Sprintf("Advanced %s Techniques", topic),
				Description: "Master advanced concepts and best practices",
				Lessons: []models.Lesson{
					{
						ID:       "3-1",
						Title:    "Advanced Techniques",
						Content:  "Learn professional-level techniques and patterns",
						Type:     models.LessonVideo,
						Duration: 25,
					},
					{
						ID:       "3-2",
						Title:    "Final Project",
						Content:  "Build a complete project showcasing your skills",
						Type:     models.LessonAssessment,
						Duration: 60,
					},
				},
			},
		},
	}
	// totals are derived, never hand-written
	return progress.Recompute(c)
}
