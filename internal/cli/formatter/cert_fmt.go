package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/learntrail/internal/domain"
)

// FormatCertifications renders the certification templates of a course.
func FormatCertifications(certs []*domain.Certification) string {
	if len(certs) == 0 {
		return Dim("No certification configured for this course.") + "\n"
	}
	headers := []string{"ID", "NAME", "TYPE", "CREATED"}
	rows := make([][]string, 0, len(certs))
	for _, c := range certs {
		typ := c.Config.Type
		if typ == "" {
			typ = "--"
		}
		rows = append(rows, []string{
			TruncID(c.CertificationUUID),
			Bold(c.Config.Name),
			Dim(typ),
			HumanDate(c.CreatedAt),
		})
	}
	return RenderTable(headers, rows)
}

// FormatIssuedCertificate renders the verification card of one certificate.
func FormatIssuedCertificate(ic *domain.IssuedCertificate) string {
	var b strings.Builder
	field := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render(fmt.Sprintf("%-8s", label)), value))
	}
	name := ic.Certification.Config.Name
	if name == "" {
		name = ic.Course.Name
	}
	b.WriteString(StyleBold.Render(name) + "\n")
	if ic.Certification.Config.Description != "" {
		b.WriteString(StyleFg.Render(ic.Certification.Config.Description) + "\n")
	}
	b.WriteString("\n")
	field("ID", StyleGreen.Render(ic.Certificate.UserCertificationUUID))
	field("HOLDER", ic.User.Username)
	field("COURSE", ic.Course.Name)
	field("ISSUED", ic.Certificate.CreatedAt.Format("Jan 2, 2006"))
	return RenderBox("Certificate", strings.TrimRight(b.String(), "\n"))
}

// FormatIssuedList renders the certificates a user holds.
func FormatIssuedList(list []*domain.IssuedCertificate) string {
	if len(list) == 0 {
		return Dim("No certificates yet. Finish a course to earn one.") + "\n"
	}
	headers := []string{"CERTIFICATE", "COURSE", "ISSUED"}
	rows := make([][]string, 0, len(list))
	for _, ic := range list {
		rows = append(rows, []string{
			StyleGreen.Render(ic.Certificate.UserCertificationUUID),
			Bold(ic.Course.Name),
			HumanDate(ic.Certificate.CreatedAt),
		})
	}
	return RenderBox("Certificates", RenderTable(headers, rows))
}
