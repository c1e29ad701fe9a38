package domain

import (
	"fmt"
	"time"
)

// CertificationConfig is the display configuration of a course certificate.
type CertificationConfig struct {
	Name        string `json:"certification_name"`
	Description string `json:"certification_description,omitempty"`
	Type        string `json:"certification_type,omitempty"`
}

// Certification is the per-course certificate template.
type Certification struct {
	ID                int64
	CertificationUUID string
	CourseID          int64
	Config            CertificationConfig
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CertificateUser links a user to an issued certificate.
type CertificateUser struct {
	ID                    int64
	UserID                int64
	CertificationID       int64
	UserCertificationUUID string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// CertificatePrefix builds the per-user, per-day portion of a readable
// certificate id: "AB-20250615-a1b2-". The last four characters of the user
// uuid are used; "USER" stands in when the uuid is empty.
func CertificatePrefix(letters string, issued time.Time, userUUID string) string {
	short := "USER"
	if userUUID != "" {
		short = userUUID
		if len(short) > 4 {
			short = short[len(short)-4:]
		}
	}
	return fmt.Sprintf("%s-%s-%s-", letters, issued.Format("20060102"), short)
}

// CertificateID appends the three-digit sequence number to a prefix.
func CertificateID(prefix string, seq int) string {
	return fmt.Sprintf("%s%03d", prefix, seq)
}

// IssuedCertificate is the verification view of a certificate: the issued
// record with its template, course and holder.
type IssuedCertificate struct {
	Certificate   CertificateUser
	Certification Certification
	Course        Course
	User          User
}
