package domain

import (
	"strings"

	"github.com/google/uuid"
)

const (
	CoursePrefix        = "course_"
	ActivityPrefix      = "activity_"
	UserPrefix          = "user_"
	CertificationPrefix = "certification_"
)

// CleanCourseUUID strips the "course_" prefix. Already-clean ids pass through
// unchanged, so the operation is idempotent.
func CleanCourseUUID(id string) string {
	return strings.TrimPrefix(id, CoursePrefix)
}

// CleanActivityUUID strips the "activity_" prefix. Idempotent.
func CleanActivityUUID(id string) string {
	return strings.TrimPrefix(id, ActivityPrefix)
}

// QualifiedCourseUUID restores the "course_" prefix on a clean id.
func QualifiedCourseUUID(id string) string {
	return CoursePrefix + CleanCourseUUID(id)
}

// QualifiedActivityUUID restores the "activity_" prefix on a clean id.
func QualifiedActivityUUID(id string) string {
	return ActivityPrefix + CleanActivityUUID(id)
}

func NewCourseUUID() string        { return CoursePrefix + uuid.New().String() }
func NewActivityUUID() string      { return ActivityPrefix + uuid.New().String() }
func NewUserUUID() string          { return UserPrefix + uuid.New().String() }
func NewCertificationUUID() string { return CertificationPrefix + uuid.New().String() }
