package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"studyhub/internal/domain"
)

type CourseRepository interface {
	Create(ctx context.Context, course domain.Course) error
	GetByID(ctx context.Context, id string) (domain.Course, error)
	List(ctx context.Context) ([]domain.Course, error)
	ListByIDs(ctx context.Context, ids []string) ([]domain.Course, error)
	Count(ctx context.Context) (int64, error)
	CreateContent(ctx context.Context, content domain.CourseContent) error
	ListContentByCourseID(ctx context.Context, courseID string) ([]domain.CourseContent, error)
}

type PgCourseRepository struct {
	pool *pgxpool.Pool
}

func NewPgCourseRepository(pool *pgxpool.Pool) *PgCourseRepository {
	return &PgCourseRepository{pool: pool}
}

func (r *PgCourseRepository) Create(ctx context.Context, course domain.Course) error {
	const query = `
		INSERT INTO courses (id, title, description, price, image_url)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		course.ID,
		course.Title,
		course.Description,
		course.Price,
		course.ImageURL,
	)
	return err
}

func (r *PgCourseRepository) GetByID(ctx context.Context, id string) (domain.Course, error) {
	const query = `
		SELECT id, title, description, price, image_url
		FROM courses
		WHERE id = $1
	`
	var course domain.Course
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&course.Price,
		&course.ImageURL,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Course{}, err
	}
	return course, err
}

func (r *PgCourseRepository) List(ctx context.Context) ([]domain.Course, error) {
	const query = `
		SELECT id, title, description, price, image_url
		FROM courses
		ORDER BY title ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCourses(rows)
}

func (r *PgCourseRepository) ListByIDs(ctx context.Context, ids []string) ([]domain.Course, error) {
	if len(ids) == 0 {
		return []domain.Course{}, nil
	}
	const query = `
		SELECT id, title, description, price, image_url
		FROM courses
		WHERE id = ANY($1)
		ORDER BY title ASC
	`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCourses(rows)
}

func (r *PgCourseRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&n)
	return n, err
}

func (r *PgCourseRepository) CreateContent(ctx context.Context, content domain.CourseContent) error {
	const query = `
		INSERT INTO contents (id, course_id, title, type, data)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		content.ID,
		content.CourseID,
		content.Title,
		content.Type,
		content.Data,
	)
	return err
}

func (r *PgCourseRepository) ListContentByCourseID(ctx context.Context, courseID string) ([]domain.CourseContent, error) {
	const query = `
		SELECT id, course_id, title, type, data
		FROM contents
		WHERE course_id = $1
	`
	rows, err := r.pool.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contents []domain.CourseContent
	for rows.Next() {
		var c domain.CourseContent
		if err := rows.Scan(&c.ID, &c.CourseID, &c.Title, &c.Type, &c.Data); err != nil {
			return nil, err
		}
		contents = append(contents, c)
	}
	return contents, rows.Err()
}

func scanCourses(rows pgx.Rows) ([]domain.Course, error) {
	var courses []domain.Course
	for rows.Next() {
		var c domain.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Price, &c.ImageURL); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}
