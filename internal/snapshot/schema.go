// Package snapshot defines the JSON shapes of course, trail and certificate
// snapshots exchanged with the LMS API, and validates them at the boundary.
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// CourseSchema is a course with its chapter/activity tree.
type CourseSchema struct {
	ID          int64           `json:"id"`
	CourseUUID  string          `json:"course_uuid"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Chapters    []ChapterSchema `json:"chapters"`
}

type ChapterSchema struct {
	ID         int64            `json:"id"`
	Name       string           `json:"name"`
	Activities []ActivitySchema `json:"activities"`
}

type ActivitySchema struct {
	ID           int64  `json:"id"`
	ActivityUUID string `json:"activity_uuid"`
	Name         string `json:"name"`
	ActivityType string `json:"activity_type"`
}

// TrailSchema is a user's trail. Runs and steps may be absent.
type TrailSchema struct {
	Runs []RunSchema `json:"runs"`
}

type RunSchema struct {
	ID       int64         `json:"id,omitempty"`
	CourseID int64         `json:"course_id"`
	Course   *CourseSchema `json:"course,omitempty"`
	Status   string        `json:"status"`
	Steps    []StepSchema  `json:"steps"`
}

type StepSchema struct {
	ActivityID int64 `json:"activity_id"`
	Complete   bool  `json:"complete"`
}

// CertificationSchema is a course certification template.
type CertificationSchema struct {
	ID                int64          `json:"id"`
	CertificationUUID string         `json:"certification_uuid"`
	CourseID          int64          `json:"course_id"`
	Config            map[string]any `json:"config"`
	CreationDate      string         `json:"creation_date"`
	UpdateDate        string         `json:"update_date"`
}

// CertificateUserSchema is an issued certificate.
type CertificateUserSchema struct {
	ID                    int64  `json:"id"`
	UserID                int64  `json:"user_id"`
	CertificationID       int64  `json:"certification_id"`
	UserCertificationUUID string `json:"user_certification_uuid"`
	CreatedAt             string `json:"created_at"`
	UpdatedAt             string `json:"updated_at"`
}

// CertificateSchema is the verification view of an issued certificate.
type CertificateSchema struct {
	CertificateUser CertificateUserSchema `json:"certificate_user"`
	Certification   CertificationSchema   `json:"certification"`
	Course          CourseSummarySchema   `json:"course"`
	User            UserSummarySchema     `json:"user"`
}

type CourseSummarySchema struct {
	ID          int64  `json:"id"`
	CourseUUID  string `json:"course_uuid"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type UserSummarySchema struct {
	ID       int64  `json:"id"`
	UserUUID string `json:"user_uuid"`
	Username string `json:"username"`
}

// DecodeCourse parses a course snapshot.
func DecodeCourse(r io.Reader) (*CourseSchema, error) {
	var s CourseSchema
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing course snapshot: %w", err)
	}
	return &s, nil
}

// DecodeTrail parses a trail snapshot. A JSON null decodes to an empty trail.
func DecodeTrail(r io.Reader) (*TrailSchema, error) {
	var s TrailSchema
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing trail snapshot: %w", err)
	}
	return &s, nil
}

// DecodeCertificate parses a certificate verification response.
func DecodeCertificate(r io.Reader) (*CertificateSchema, error) {
	var s CertificateSchema
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing certificate: %w", err)
	}
	return &s, nil
}

// LoadCourseFile reads a course JSON file from disk.
func LoadCourseFile(path string) (*CourseSchema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeCourse(f)
}
