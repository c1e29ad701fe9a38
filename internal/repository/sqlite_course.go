package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/learntrail/internal/db"
	"github.com/alexanderramin/learntrail/internal/domain"
)

const courseColumns = `id, course_uuid, name, description, created_at, updated_at`

// SQLiteCourseRepo implements CourseRepo. Create writes several tables and
// should run inside a UnitOfWork.
type SQLiteCourseRepo struct {
	db db.DBTX
}

func NewSQLiteCourseRepo(conn db.DBTX) *SQLiteCourseRepo {
	return &SQLiteCourseRepo{db: conn}
}

// Create inserts the course and its tree. Zero ids are assigned by SQLite and
// written back; empty uuids are generated. Order indexes follow slice order.
func (r *SQLiteCourseRepo) Create(ctx context.Context, c *domain.Course) error {
	if c.CourseUUID == "" {
		c.CourseUUID = domain.NewCourseUUID()
	}
	timestamps(&c.CreatedAt, &c.UpdatedAt)

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO courses (id, course_uuid, name, description, created_at, updated_at)
		VALUES (NULLIF(?, 0), ?, ?, ?, ?, ?)`,
		c.ID, c.CourseUUID, c.Name, c.Description,
		c.CreatedAt.Format(time.RFC3339), c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return wrapWriteErr("inserting course", err)
	}
	if c.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("reading course id: %w", err)
	}

	for i := range c.Chapters {
		ch := &c.Chapters[i]
		ch.CourseID = c.ID
		ch.OrderIndex = i
		res, err := r.db.ExecContext(ctx,
			`INSERT INTO chapters (id, course_id, name, order_index) VALUES (NULLIF(?, 0), ?, ?, ?)`,
			ch.ID, ch.CourseID, ch.Name, ch.OrderIndex,
		)
		if err != nil {
			return wrapWriteErr(fmt.Sprintf("inserting chapter %q", ch.Name), err)
		}
		if ch.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("reading chapter id: %w", err)
		}

		for j := range ch.Activities {
			a := &ch.Activities[j]
			a.ChapterID = ch.ID
			a.OrderIndex = j
			if a.ActivityUUID == "" {
				a.ActivityUUID = domain.NewActivityUUID()
			}
			res, err := r.db.ExecContext(ctx,
				`INSERT INTO activities (id, chapter_id, activity_uuid, name, activity_type, order_index)
				VALUES (NULLIF(?, 0), ?, ?, ?, ?, ?)`,
				a.ID, a.ChapterID, a.ActivityUUID, a.Name, string(a.ActivityType), a.OrderIndex,
			)
			if err != nil {
				return wrapWriteErr(fmt.Sprintf("inserting activity %q", a.Name), err)
			}
			if a.ID, err = res.LastInsertId(); err != nil {
				return fmt.Errorf("reading activity id: %w", err)
			}
		}
	}
	return nil
}

func (r *SQLiteCourseRepo) GetByID(ctx context.Context, id int64) (*domain.Course, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = ?`, id)
	return r.getTree(ctx, row)
}

// GetByUUID accepts the uuid with or without its "course_" prefix.
func (r *SQLiteCourseRepo) GetByUUID(ctx context.Context, courseUUID string) (*domain.Course, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+courseColumns+` FROM courses WHERE course_uuid = ?`,
		domain.QualifiedCourseUUID(courseUUID))
	return r.getTree(ctx, row)
}

// GetByActivityUUID returns the course holding the activity. The uuid may
// be given with or without its "activity_" prefix.
func (r *SQLiteCourseRepo) GetByActivityUUID(ctx context.Context, activityUUID string) (*domain.Course, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT c.id, c.course_uuid, c.name, c.description, c.created_at, c.updated_at
		FROM courses c
		JOIN chapters ch ON ch.course_id = c.id
		JOIN activities a ON a.chapter_id = ch.id
		WHERE a.activity_uuid = ?`,
		domain.QualifiedActivityUUID(activityUUID))
	return r.getTree(ctx, row)
}

func (r *SQLiteCourseRepo) List(ctx context.Context) ([]*domain.Course, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	var courses []*domain.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating courses: %w", err)
	}
	rows.Close()

	// Trees are loaded after the cursor is closed; a single-connection pool
	// cannot serve a second query while one is open.
	for _, c := range courses {
		if err := r.loadTree(ctx, c); err != nil {
			return nil, err
		}
	}
	return courses, nil
}

// Update writes the course's name and description. The tree is immutable.
func (r *SQLiteCourseRepo) Update(ctx context.Context, c *domain.Course) error {
	c.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	res, err := r.db.ExecContext(ctx,
		`UPDATE courses SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
		c.Name, c.Description, c.UpdatedAt.Format(time.RFC3339), c.ID,
	)
	if err != nil {
		return wrapWriteErr("updating course", err)
	}
	return requireAffected(res, "course")
}

// Delete removes the course; chapters, activities, runs and certifications
// cascade.
func (r *SQLiteCourseRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting course: %w", err)
	}
	return requireAffected(res, "course")
}

func (r *SQLiteCourseRepo) getTree(ctx context.Context, row *sql.Row) (*domain.Course, error) {
	c, err := scanCourse(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadTree(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// loadTree fills c.Chapters with one ordered join. Chapters without
// activities are kept.
func (r *SQLiteCourseRepo) loadTree(ctx context.Context, c *domain.Course) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ch.id, ch.name, ch.order_index,
			a.id, a.activity_uuid, a.name, a.activity_type, a.order_index
		FROM chapters ch
		LEFT JOIN activities a ON a.chapter_id = ch.id
		WHERE ch.course_id = ?
		ORDER BY ch.order_index, ch.id, a.order_index, a.id`, c.ID)
	if err != nil {
		return fmt.Errorf("loading course tree: %w", err)
	}
	defer rows.Close()

	c.Chapters = []domain.Chapter{}
	for rows.Next() {
		var (
			chID                int64
			chName              string
			chOrder             int
			aID, aOrder         sql.NullInt64
			aUUID, aName, aType sql.NullString
		)
		if err := rows.Scan(&chID, &chName, &chOrder, &aID, &aUUID, &aName, &aType, &aOrder); err != nil {
			return fmt.Errorf("scanning course tree row: %w", err)
		}
		if n := len(c.Chapters); n == 0 || c.Chapters[n-1].ID != chID {
			c.Chapters = append(c.Chapters, domain.Chapter{
				ID:         chID,
				CourseID:   c.ID,
				Name:       chName,
				OrderIndex: chOrder,
				Activities: []domain.Activity{},
			})
		}
		if !aID.Valid {
			continue
		}
		ch := &c.Chapters[len(c.Chapters)-1]
		ch.Activities = append(ch.Activities, domain.Activity{
			ID:           aID.Int64,
			ChapterID:    chID,
			ActivityUUID: aUUID.String,
			Name:         aName.String,
			ActivityType: domain.ActivityType(aType.String),
			OrderIndex:   int(aOrder.Int64),
		})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating course tree: %w", err)
	}
	return nil
}

func scanCourse(row rowScanner) (*domain.Course, error) {
	var c domain.Course
	var createdStr, updatedStr string
	if err := row.Scan(&c.ID, &c.CourseUUID, &c.Name, &c.Description, &createdStr, &updatedStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("course: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning course: %w", err)
	}
	var err error
	c.CreatedAt, c.UpdatedAt, err = parseTimes(createdStr, updatedStr)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
