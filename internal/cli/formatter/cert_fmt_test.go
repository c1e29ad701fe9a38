package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/learntrail/internal/domain"
	"github.com/stretchr/testify/assert"
)

func issued() *domain.IssuedCertificate {
	at := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	return &domain.IssuedCertificate{
		Certificate:   domain.CertificateUser{UserCertificationUUID: "AB-20250615-beef-001", CreatedAt: at},
		Certification: domain.Certification{CertificationUUID: "certification_1234abcd", Config: domain.CertificationConfig{Name: "Go Certified", Description: "Finished Go Basics"}},
		Course:        domain.Course{Name: "Go Basics"},
		User:          domain.User{Username: "ana"},
	}
}

func TestFormatIssuedCertificate(t *testing.T) {
	out := stripANSI(FormatIssuedCertificate(issued()))
	assert.Contains(t, out, "CERTIFICATE")
	assert.Contains(t, out, "Go Certified")
	assert.Contains(t, out, "Finished Go Basics")
	assert.Contains(t, out, "AB-20250615-beef-001")
	assert.Contains(t, out, "ana")
	assert.Contains(t, out, "Jun 15, 2025")
}

func TestFormatIssuedCertificate_FallsBackToCourseName(t *testing.T) {
	ic := issued()
	ic.Certification.Config = domain.CertificationConfig{}
	out := stripANSI(FormatIssuedCertificate(ic))
	assert.Contains(t, out, "Go Basics")
}

func TestFormatIssuedList(t *testing.T) {
	out := stripANSI(FormatIssuedList([]*domain.IssuedCertificate{issued()}))
	assert.Contains(t, out, "AB-20250615-beef-001")
	assert.Contains(t, out, "Go Basics")

	assert.Contains(t, FormatIssuedList(nil), "No certificates yet")
}

func TestFormatCertifications(t *testing.T) {
	certs := []*domain.Certification{{CertificationUUID: "certification_1234abcd", Config: domain.CertificationConfig{Name: "Go Certified"}}}
	out := stripANSI(FormatCertifications(certs))
	assert.Contains(t, out, "1234abcd")
	assert.Contains(t, out, "Go Certified")
	assert.Contains(t, out, "--")

	assert.Contains(t, FormatCertifications(nil), "No certification configured")
}
