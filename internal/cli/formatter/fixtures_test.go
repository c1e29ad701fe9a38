package formatter

import (
	"github.com/alexanderramin/learntrail/internal/domain"
)

func goBasics() *domain.Course {
	return &domain.Course{
		ID:          42,
		CourseUUID:  "course_c0ffee",
		Name:        "Go Basics",
		Description: "Learn the language",
		Chapters: []domain.Chapter{
			{ID: 1, Name: "Intro", Activities: []domain.Activity{
				{ID: 101, ActivityUUID: "activity_a1", Name: "Welcome", ActivityType: domain.ActivityVideo},
				{ID: 102, ActivityUUID: "activity_a2", Name: "Setup", ActivityType: domain.ActivityDocument},
			}},
			{ID: 2, Name: "Practice", Activities: []domain.Activity{
				{ID: 201, ActivityUUID: "activity_b1", Name: "Quiz", ActivityType: domain.ActivityDynamic},
			}},
		},
	}
}

func trailWith(course *domain.Course, status domain.RunStatus, done ...int64) *domain.Trail {
	run := domain.Run{ID: 1, CourseID: course.ID, Course: course, Status: status}
	for _, id := range done {
		run.Steps = append(run.Steps, domain.Step{ActivityID: id, Complete: true})
	}
	return &domain.Trail{UserID: 1, Runs: []domain.Run{run}}
}
