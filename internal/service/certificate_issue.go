package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/alexanderramin/learntrail/internal/domain"
	"github.com/alexanderramin/learntrail/internal/repository"
)

// certificateIssuer creates readable certificate ids of the form
// "AB-20250615-beef-001". Clock and letter source are swappable for tests.
type certificateIssuer struct {
	now     func() time.Time
	letters func() string
}

func defaultIssuer() certificateIssuer {
	return certificateIssuer{
		now:     func() time.Time { return time.Now().UTC() },
		letters: randomLetters,
	}
}

func randomLetters() string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	return string([]byte{alphabet[rand.IntN(len(alphabet))], alphabet[rand.IntN(len(alphabet))]})
}

// issue returns the user's certificate for the course, creating it when
// missing. An existing certificate is returned unchanged. Completion is the
// caller's concern. The repos must share one transaction.
func (ci certificateIssuer) issue(
	ctx context.Context,
	certs repository.CertificationRepo,
	users repository.UserRepo,
	userID int64,
	course *domain.Course,
) (*domain.CertificateUser, error) {
	cert, err := certs.GetByCourse(ctx, course.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoCertification
		}
		return nil, err
	}

	existing, err := certs.GetCertificate(ctx, userID, cert.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	user, err := users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	prefix := domain.CertificatePrefix(ci.letters(), ci.now(), user.UserUUID)
	n, err := certs.CountCertificatesWithPrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}

	cu := &domain.CertificateUser{
		UserID:                userID,
		CertificationID:       cert.ID,
		UserCertificationUUID: domain.CertificateID(prefix, n+1),
	}
	if err := certs.CreateCertificate(ctx, cu); err != nil {
		return nil, fmt.Errorf("issuing certificate: %w", err)
	}
	return cu, nil
}
