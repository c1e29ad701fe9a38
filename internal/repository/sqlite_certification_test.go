package repository_test

import (
	"context"
	"testing"

	"github.com/alexanderramin/learntrail/internal/domain"
	"github.com/alexanderramin/learntrail/internal/repository"
	"github.com/alexanderramin/learntrail/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCertificationRepo_CRUD(t *testing.T) {
	db := testutil.NewTestDB(t)
	course := testutil.SeedCourse(t, db, "Go")
	repo := repository.NewSQLiteCertificationRepo(db)
	ctx := context.Background()

	cert := &domain.Certification{
		CourseID: course.ID,
		Config:   domain.CertificationConfig{Name: "Go Certified", Type: "completion"},
	}
	require.NoError(t, repo.Create(ctx, cert))
	assert.NotZero(t, cert.ID)
	assert.Contains(t, cert.CertificationUUID, domain.CertificationPrefix)

	byCourse, err := repo.GetByCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, cert.CertificationUUID, byCourse.CertificationUUID)
	assert.Equal(t, "Go Certified", byCourse.Config.Name)
	assert.Equal(t, "completion", byCourse.Config.Type)

	cert.Config.Description = "Awarded on completion"
	require.NoError(t, repo.Update(ctx, cert))
	byUUID, err := repo.GetByUUID(ctx, cert.CertificationUUID)
	require.NoError(t, err)
	assert.Equal(t, "Awarded on completion", byUUID.Config.Description)

	byID, err := repo.GetByID(ctx, cert.ID)
	require.NoError(t, err)
	assert.Equal(t, cert.CertificationUUID, byID.CertificationUUID)

	list, err := repo.ListByCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, cert.CertificationUUID))
	_, err = repo.GetByUUID(ctx, cert.CertificationUUID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, cert.CertificationUUID), repository.ErrNotFound)

	list, err = repo.ListByCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestCertificationRepo_OnePerCourse(t *testing.T) {
	db := testutil.NewTestDB(t)
	course := testutil.SeedCourse(t, db, "Go")
	repo := repository.NewSQLiteCertificationRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Certification{CourseID: course.ID}))
	err := repo.Create(ctx, &domain.Certification{CourseID: course.ID})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestCertificationRepo_Certificates(t *testing.T) {
	db := testutil.NewTestDB(t)
	ana := testutil.SeedUser(t, db, "ana")
	bo := testutil.SeedUser(t, db, "bo")
	course := testutil.SeedCourse(t, db, "Go")
	repo := repository.NewSQLiteCertificationRepo(db)
	ctx := context.Background()

	cert := &domain.Certification{CourseID: course.ID}
	require.NoError(t, repo.Create(ctx, cert))

	issued := &domain.CertificateUser{UserID: ana.ID, CertificationID: cert.ID, UserCertificationUUID: "AB-20250615-beef-001"}
	require.NoError(t, repo.CreateCertificate(ctx, issued))
	require.NoError(t, repo.CreateCertificate(ctx, &domain.CertificateUser{
		UserID: bo.ID, CertificationID: cert.ID, UserCertificationUUID: "CD-20250615-beef-002"}))

	got, err := repo.GetCertificate(ctx, ana.ID, cert.ID)
	require.NoError(t, err)
	assert.Equal(t, issued.ID, got.ID)

	byUUID, err := repo.GetCertificateByUUID(ctx, "CD-20250615-beef-002")
	require.NoError(t, err)
	assert.Equal(t, bo.ID, byUUID.UserID)

	_, err = repo.GetCertificateByUUID(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	mine, err := repo.ListCertificatesByUser(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "AB-20250615-beef-001", mine[0].UserCertificationUUID)

	// A second certificate for the same user and certification is rejected.
	err = repo.CreateCertificate(ctx, &domain.CertificateUser{UserID: ana.ID, CertificationID: cert.ID, UserCertificationUUID: "EF-1"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestCertificationRepo_CountCertificatesWithPrefix(t *testing.T) {
	db := testutil.NewTestDB(t)
	course := testutil.SeedCourse(t, db, "Go")
	repo := repository.NewSQLiteCertificationRepo(db)
	ctx := context.Background()

	cert := &domain.Certification{CourseID: course.ID}
	require.NoError(t, repo.Create(ctx, cert))
	for i, id := range []string{"AB-20250615-beef-001", "AB-20250615-beef-002", "AB-20250615-cafe-001", "AB_20250615-beef-001"} {
		u := testutil.SeedUser(t, db, "")
		require.NoError(t, repo.CreateCertificate(ctx, &domain.CertificateUser{
			UserID: u.ID, CertificationID: cert.ID, UserCertificationUUID: id}), "certificate %d", i)
	}

	n, err := repo.CountCertificatesWithPrefix(ctx, "AB-20250615-beef-")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// "_" is literal, not a wildcard.
	n, err = repo.CountCertificatesWithPrefix(ctx, "AB_20250615-")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = repo.CountCertificatesWithPrefix(ctx, "ZZ-")
	require.NoError(t, err)
	assert.Zero(t, n)
}
