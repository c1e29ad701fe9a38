package snapshot

import (
	"encoding/json"
	"time"

	"github.com/alexanderramin/learntrail/internal/domain"
)

// ToDomain converts a course snapshot. Call a validator first; unknown
// activity types are carried through verbatim.
func (s *CourseSchema) ToDomain() *domain.Course {
	if s == nil {
		return nil
	}
	c := &domain.Course{
		ID:          s.ID,
		CourseUUID:  s.CourseUUID,
		Name:        s.Name,
		Description: s.Description,
		Chapters:    make([]domain.Chapter, 0, len(s.Chapters)),
	}
	for i, ch := range s.Chapters {
		chapter := domain.Chapter{
			ID:         ch.ID,
			CourseID:   s.ID,
			Name:       ch.Name,
			OrderIndex: i,
			Activities: make([]domain.Activity, 0, len(ch.Activities)),
		}
		for j, a := range ch.Activities {
			at, err := domain.ParseActivityType(a.ActivityType)
			if err != nil {
				at = domain.ActivityType(a.ActivityType)
			}
			chapter.Activities = append(chapter.Activities, domain.Activity{
				ID:           a.ID,
				ChapterID:    ch.ID,
				ActivityUUID: a.ActivityUUID,
				Name:         a.Name,
				ActivityType: at,
				OrderIndex:   j,
			})
		}
		c.Chapters = append(c.Chapters, chapter)
	}
	return c
}

// ToDomain converts a trail snapshot. Nil runs and steps become empty slices.
func (s *TrailSchema) ToDomain() *domain.Trail {
	t := &domain.Trail{Runs: []domain.Run{}}
	if s == nil {
		return t
	}
	for _, r := range s.Runs {
		run := domain.Run{
			ID:       r.ID,
			CourseID: r.CourseID,
			Course:   r.Course.ToDomain(),
			Status:   domain.RunStatus(r.Status),
			Steps:    make([]domain.Step, 0, len(r.Steps)),
		}
		for _, st := range r.Steps {
			run.Steps = append(run.Steps, domain.Step{ActivityID: st.ActivityID, Complete: st.Complete})
		}
		t.Runs = append(t.Runs, run)
	}
	return t
}

// FromCourse renders a domain course as its wire shape.
func FromCourse(c *domain.Course) *CourseSchema {
	if c == nil {
		return nil
	}
	s := &CourseSchema{
		ID:          c.ID,
		CourseUUID:  c.CourseUUID,
		Name:        c.Name,
		Description: c.Description,
		Chapters:    make([]ChapterSchema, 0, len(c.Chapters)),
	}
	for _, ch := range c.Chapters {
		cs := ChapterSchema{ID: ch.ID, Name: ch.Name, Activities: make([]ActivitySchema, 0, len(ch.Activities))}
		for _, a := range ch.Activities {
			cs.Activities = append(cs.Activities, ActivitySchema{
				ID:           a.ID,
				ActivityUUID: a.ActivityUUID,
				Name:         a.Name,
				ActivityType: string(a.ActivityType),
			})
		}
		s.Chapters = append(s.Chapters, cs)
	}
	return s
}

// FromTrail renders a domain trail as its wire shape.
func FromTrail(t *domain.Trail) *TrailSchema {
	s := &TrailSchema{Runs: []RunSchema{}}
	if t == nil {
		return s
	}
	for _, r := range t.Runs {
		rs := RunSchema{
			ID:       r.ID,
			CourseID: r.CourseID,
			Course:   FromCourse(r.Course),
			Status:   string(r.Status),
			Steps:    make([]StepSchema, 0, len(r.Steps)),
		}
		for _, st := range r.Steps {
			rs.Steps = append(rs.Steps, StepSchema{ActivityID: st.ActivityID, Complete: st.Complete})
		}
		s.Runs = append(s.Runs, rs)
	}
	return s
}

// FromCertification renders a certification template.
func FromCertification(c *domain.Certification) CertificationSchema {
	return CertificationSchema{
		ID:                c.ID,
		CertificationUUID: c.CertificationUUID,
		CourseID:          c.CourseID,
		Config:            configToMap(c.Config),
		CreationDate:      c.CreatedAt.Format(time.RFC3339),
		UpdateDate:        c.UpdatedAt.Format(time.RFC3339),
	}
}

// FromCertificateUser renders an issued certificate.
func FromCertificateUser(cu *domain.CertificateUser) CertificateUserSchema {
	return CertificateUserSchema{
		ID:                    cu.ID,
		UserID:                cu.UserID,
		CertificationID:       cu.CertificationID,
		UserCertificationUUID: cu.UserCertificationUUID,
		CreatedAt:             cu.CreatedAt.Format(time.RFC3339),
		UpdatedAt:             cu.UpdatedAt.Format(time.RFC3339),
	}
}

// ConfigFromMap decodes a loosely-typed config object into the typed form.
// Unknown keys are dropped.
func ConfigFromMap(m map[string]any) domain.CertificationConfig {
	var cfg domain.CertificationConfig
	data, err := json.Marshal(m)
	if err != nil {
		return cfg
	}
	_ = json.Unmarshal(data, &cfg)
	return cfg
}

func configToMap(cfg domain.CertificationConfig) map[string]any {
	out := map[string]any{}
	data, err := json.Marshal(cfg)
	if err != nil {
		return out
	}
	_ = json.Unmarshal(data, &out)
	return out
}

// FromIssued renders a certificate verification view.
func FromIssued(ic *domain.IssuedCertificate) CertificateSchema {
	return CertificateSchema{
		CertificateUser: FromCertificateUser(&ic.Certificate),
		Certification:   FromCertification(&ic.Certification),
		Course: CourseSummarySchema{
			ID:          ic.Course.ID,
			CourseUUID:  ic.Course.CourseUUID,
			Name:        ic.Course.Name,
			Description: ic.Course.Description,
		},
		User: UserSummarySchema{
			ID:       ic.User.ID,
			UserUUID: ic.User.UserUUID,
			Username: ic.User.Username,
		},
	}
}

// ToDomain converts a certificate verification view. Unparseable timestamps
// are left zero.
func (s *CertificateSchema) ToDomain() *domain.IssuedCertificate {
	return &domain.IssuedCertificate{
		Certificate: domain.CertificateUser{
			ID:                    s.CertificateUser.ID,
			UserID:                s.CertificateUser.UserID,
			CertificationID:       s.CertificateUser.CertificationID,
			UserCertificationUUID: s.CertificateUser.UserCertificationUUID,
			CreatedAt:             parseTime(s.CertificateUser.CreatedAt),
			UpdatedAt:             parseTime(s.CertificateUser.UpdatedAt),
		},
		Certification: domain.Certification{
			ID:                s.Certification.ID,
			CertificationUUID: s.Certification.CertificationUUID,
			CourseID:          s.Certification.CourseID,
			Config:            ConfigFromMap(s.Certification.Config),
			CreatedAt:         parseTime(s.Certification.CreationDate),
			UpdatedAt:         parseTime(s.Certification.UpdateDate),
		},
		Course: domain.Course{
			ID:          s.Course.ID,
			CourseUUID:  s.Course.CourseUUID,
			Name:        s.Course.Name,
			Description: s.Course.Description,
		},
		User: domain.User{
			ID:       s.User.ID,
			UserUUID: s.User.UserUUID,
			Username: s.User.Username,
		},
	}
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
