package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/learntrail/internal/db"
	"github.com/alexanderramin/learntrail/internal/domain"
)

const (
	certificationColumns   = `id, certification_uuid, course_id, config, created_at, updated_at`
	certificateUserColumns = `id, user_id, certification_id, user_certification_uuid, created_at, updated_at`
)

type SQLiteCertificationRepo struct {
	db db.DBTX
}

func NewSQLiteCertificationRepo(conn db.DBTX) *SQLiteCertificationRepo {
	return &SQLiteCertificationRepo{db: conn}
}

func (r *SQLiteCertificationRepo) Create(ctx context.Context, c *domain.Certification) error {
	if c.CertificationUUID == "" {
		c.CertificationUUID = domain.NewCertificationUUID()
	}
	timestamps(&c.CreatedAt, &c.UpdatedAt)
	config, err := json.Marshal(c.Config)
	if err != nil {
		return fmt.Errorf("encoding certification config: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO certifications (certification_uuid, course_id, config, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		c.CertificationUUID, c.CourseID, string(config),
		c.CreatedAt.Format(time.RFC3339), c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return wrapWriteErr("inserting certification", err)
	}
	if c.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("reading certification id: %w", err)
	}
	return nil
}

func (r *SQLiteCertificationRepo) GetByID(ctx context.Context, id int64) (*domain.Certification, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+certificationColumns+` FROM certifications WHERE id = ?`, id)
	return scanCertification(row)
}

func (r *SQLiteCertificationRepo) GetByUUID(ctx context.Context, certificationUUID string) (*domain.Certification, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+certificationColumns+` FROM certifications WHERE certification_uuid = ?`, certificationUUID)
	return scanCertification(row)
}

func (r *SQLiteCertificationRepo) GetByCourse(ctx context.Context, courseID int64) (*domain.Certification, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+certificationColumns+` FROM certifications WHERE course_id = ?`, courseID)
	return scanCertification(row)
}

// ListByCourse returns the course's certifications; at most one with the
// current schema, but callers receive a list as the LMS API does.
func (r *SQLiteCertificationRepo) ListByCourse(ctx context.Context, courseID int64) ([]*domain.Certification, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+certificationColumns+` FROM certifications WHERE course_id = ? ORDER BY id`, courseID)
	if err != nil {
		return nil, fmt.Errorf("listing certifications: %w", err)
	}
	defer rows.Close()

	certs := []*domain.Certification{}
	for rows.Next() {
		c, err := scanCertification(rows)
		if err != nil {
			return nil, err
		}
		certs = append(certs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating certifications: %w", err)
	}
	return certs, nil
}

func (r *SQLiteCertificationRepo) Update(ctx context.Context, c *domain.Certification) error {
	config, err := json.Marshal(c.Config)
	if err != nil {
		return fmt.Errorf("encoding certification config: %w", err)
	}
	c.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	res, err := r.db.ExecContext(ctx,
		`UPDATE certifications SET config = ?, updated_at = ? WHERE certification_uuid = ?`,
		string(config), c.UpdatedAt.Format(time.RFC3339), c.CertificationUUID,
	)
	if err != nil {
		return fmt.Errorf("updating certification: %w", err)
	}
	return requireAffected(res, "certification")
}

// Delete removes a certification; issued certificates cascade.
func (r *SQLiteCertificationRepo) Delete(ctx context.Context, certificationUUID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM certifications WHERE certification_uuid = ?`, certificationUUID)
	if err != nil {
		return fmt.Errorf("deleting certification: %w", err)
	}
	return requireAffected(res, "certification")
}

func (r *SQLiteCertificationRepo) CreateCertificate(ctx context.Context, cu *domain.CertificateUser) error {
	timestamps(&cu.CreatedAt, &cu.UpdatedAt)
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO certificate_users (user_id, certification_id, user_certification_uuid, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		cu.UserID, cu.CertificationID, cu.UserCertificationUUID,
		cu.CreatedAt.Format(time.RFC3339), cu.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return wrapWriteErr("inserting certificate", err)
	}
	if cu.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("reading certificate id: %w", err)
	}
	return nil
}

func (r *SQLiteCertificationRepo) GetCertificate(ctx context.Context, userID, certificationID int64) (*domain.CertificateUser, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+certificateUserColumns+` FROM certificate_users WHERE user_id = ? AND certification_id = ?`,
		userID, certificationID)
	return scanCertificateUser(row)
}

func (r *SQLiteCertificationRepo) GetCertificateByUUID(ctx context.Context, userCertificationUUID string) (*domain.CertificateUser, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+certificateUserColumns+` FROM certificate_users WHERE user_certification_uuid = ?`,
		userCertificationUUID)
	return scanCertificateUser(row)
}

func (r *SQLiteCertificationRepo) ListCertificatesByUser(ctx context.Context, userID int64) ([]*domain.CertificateUser, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+certificateUserColumns+` FROM certificate_users WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing certificates: %w", err)
	}
	defer rows.Close()

	certs := []*domain.CertificateUser{}
	for rows.Next() {
		cu, err := scanCertificateUser(rows)
		if err != nil {
			return nil, err
		}
		certs = append(certs, cu)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating certificates: %w", err)
	}
	return certs, nil
}

// CountCertificatesWithPrefix counts issued certificate ids starting with
// prefix. LIKE wildcards in the prefix are escaped.
func (r *SQLiteCertificationRepo) CountCertificatesWithPrefix(ctx context.Context, prefix string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM certificate_users WHERE user_certification_uuid LIKE ? ESCAPE '\'`,
		escapeLike(prefix)+"%",
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting certificates: %w", err)
	}
	return n, nil
}

func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}

func scanCertification(row rowScanner) (*domain.Certification, error) {
	var c domain.Certification
	var config, createdStr, updatedStr string
	if err := row.Scan(&c.ID, &c.CertificationUUID, &c.CourseID, &config, &createdStr, &updatedStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("certification: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning certification: %w", err)
	}
	if err := json.Unmarshal([]byte(config), &c.Config); err != nil {
		return nil, fmt.Errorf("decoding certification config: %w", err)
	}
	var err error
	c.CreatedAt, c.UpdatedAt, err = parseTimes(createdStr, updatedStr)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanCertificateUser(row rowScanner) (*domain.CertificateUser, error) {
	var cu domain.CertificateUser
	var createdStr, updatedStr string
	if err := row.Scan(&cu.ID, &cu.UserID, &cu.CertificationID, &cu.UserCertificationUUID, &createdStr, &updatedStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("certificate: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning certificate: %w", err)
	}
	var err error
	cu.CreatedAt, cu.UpdatedAt, err = parseTimes(createdStr, updatedStr)
	if err != nil {
		return nil, err
	}
	return &cu, nil
}
