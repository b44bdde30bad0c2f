package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"studyhub/internal/domain"
)

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment domain.Enrollment) error
	Exists(ctx context.Context, userID, courseID string) (bool, error)
	ListCourseIDsByUserID(ctx context.Context, userID string) ([]string, error)
	Count(ctx context.Context) (int64, error)
	// TotalRevenue suma el precio (en centavos) de cada curso por inscripcion.
	TotalRevenue(ctx context.Context) (int64, error)
}

type PgEnrollmentRepository struct {
	pool *pgxpool.Pool
}

func NewPgEnrollmentRepository(pool *pgxpool.Pool) *PgEnrollmentRepository {
	return &PgEnrollmentRepository{pool: pool}
}

func (r *PgEnrollmentRepository) Create(ctx context.Context, enrollment domain.Enrollment) error {
	const query = `
		INSERT INTO enrollments (user_id, course_id, joined_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.pool.Exec(ctx, query,
		enrollment.UserID,
		enrollment.CourseID,
		enrollment.JoinedAt,
	)
	return err
}

func (r *PgEnrollmentRepository) Exists(ctx context.Context, userID, courseID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM enrollments WHERE user_id = $1 AND course_id = $2
		)
	`
	var exists bool
	err := r.pool.QueryRow(ctx, query, userID, courseID).Scan(&exists)
	return exists, err
}

func (r *PgEnrollmentRepository) ListCourseIDsByUserID(ctx context.Context, userID string) ([]string, error) {
	const query = `
		SELECT course_id FROM enrollments WHERE user_id = $1
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PgEnrollmentRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM enrollments`).Scan(&n)
	return n, err
}

func (r *PgEnrollmentRepository) TotalRevenue(ctx context.Context) (int64, error) {
	const query = `
		SELECT COALESCE(SUM(c.price), 0)
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
	`
	var total int64
	err := r.pool.QueryRow(ctx, query).Scan(&total)
	return total, err
}
