package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"studyhub/internal/domain"
	"studyhub/internal/repository"
)

var (
	ErrCourseNotFound = errors.New("course not found")
	ErrNotEnrolled    = errors.New("not enrolled in this course")
	ErrInvalidContent = errors.New("invalid content")
)

// CourseService maneja catalogo, inscripciones y acceso a contenido.
type CourseService struct {
	logger      *zap.Logger
	courses     repository.CourseRepository
	enrollments repository.EnrollmentRepository
}

func NewCourseService(logger *zap.Logger, courses repository.CourseRepository, enrollments repository.EnrollmentRepository) *CourseService {
	return &CourseService{
		logger:      logger,
		courses:     courses,
		enrollments: enrollments,
	}
}

// List devuelve el catalogo completo, sembrando cursos demo la primera vez.
func (s *CourseService) List(ctx context.Context) ([]domain.Course, error) {
	if err := s.seedIfEmpty(ctx); err != nil {
		return nil, err
	}
	return s.courses.List(ctx)
}

// Buy inscribe al usuario en el curso. Repetir la compra no es error: devuelve
// alreadyEnrolled=true y no toca nada.
func (s *CourseService) Buy(ctx context.Context, userID, courseID string) (domain.Course, bool, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Course{}, false, ErrCourseNotFound
		}
		return domain.Course{}, false, fmt.Errorf("get course: %w", err)
	}

	enrolled, err := s.enrollments.Exists(ctx, userID, courseID)
	if err != nil {
		return domain.Course{}, false, fmt.Errorf("check enrollment: %w", err)
	}
	if enrolled {
		return course, true, nil
	}

	// Aqui iria la logica real de pago.
	enrollment := domain.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		JoinedAt: time.Now().UTC(),
	}
	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		return domain.Course{}, false, fmt.Errorf("create enrollment: %w", err)
	}

	s.logger.Info("course purchased",
		zap.String("user_id", userID),
		zap.String("course_id", courseID),
	)
	return course, false, nil
}

// MyCourses devuelve los cursos en los que el usuario esta inscrito.
func (s *CourseService) MyCourses(ctx context.Context, userID string) ([]domain.Course, error) {
	ids, err := s.enrollments.ListCourseIDsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return s.courses.ListByIDs(ctx, ids)
}

// Content devuelve el contenido del curso solo a inscritos; admin y owner
// pueden ver sin inscripcion.
func (s *CourseService) Content(ctx context.Context, userID string, role domain.UserRole, courseID string) ([]domain.CourseContent, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("get course: %w", err)
	}

	if !role.IsStaff() {
		enrolled, err := s.enrollments.Exists(ctx, userID, courseID)
		if err != nil {
			return nil, fmt.Errorf("check enrollment: %w", err)
		}
		if !enrolled {
			return nil, ErrNotEnrolled
		}
	}

	return s.courses.ListContentByCourseID(ctx, courseID)
}

type CreateCourseInput struct {
	Title       string
	Description string
	Price       int
	ImageURL    string
}

// CreateCourse da de alta un curso (rutas de admin).
func (s *CourseService) CreateCourse(ctx context.Context, input CreateCourseInput) (domain.Course, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || input.Price < 0 {
		return domain.Course{}, ErrInvalidInput
	}
	course := domain.Course{
		ID:          uuid.NewString(),
		Title:       title,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return domain.Course{}, err
	}
	return course, nil
}

type AddContentInput struct {
	Title string
	Type  string
	Data  string
}

// AddContent agrega un item de contenido a un curso existente (rutas de admin).
func (s *CourseService) AddContent(ctx context.Context, courseID string, input AddContentInput) (domain.CourseContent, error) {
	if input.Type != domain.ContentTypeVideo && input.Type != domain.ContentTypeText {
		return domain.CourseContent{}, ErrInvalidContent
	}
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CourseContent{}, ErrCourseNotFound
		}
		return domain.CourseContent{}, fmt.Errorf("get course: %w", err)
	}

	content := domain.CourseContent{
		ID:       uuid.NewString(),
		CourseID: courseID,
		Title:    strings.TrimSpace(input.Title),
		Type:     input.Type,
		Data:     input.Data,
	}
	if err := s.courses.CreateContent(ctx, content); err != nil {
		return domain.CourseContent{}, err
	}
	return content, nil
}

func (s *CourseService) seedIfEmpty(ctx context.Context) error {
	count, err := s.courses.Count(ctx)
	if err != nil {
		return fmt.Errorf("count courses: %w", err)
	}
	if count > 0 {
		return nil
	}

	seeds := []domain.Course{
		{ID: uuid.NewString(), Title: "Advanced React Patterns", Description: "Master Request", Price: 4999, ImageURL: "https://via.placeholder.com/300/0f172a/eca338?text=React"},
		{ID: uuid.NewString(), Title: "FastAPI Masterclass", Description: "Build high-performance APIs", Price: 3999, ImageURL: "https://via.placeholder.com/300/0f172a/eca338?text=FastAPI"},
		{ID: uuid.NewString(), Title: "AI Engineering 101", Description: "Integrate LLMs into apps", Price: 5999, ImageURL: "https://via.placeholder.com/300/0f172a/eca338?text=AI"},
	}
	for _, course := range seeds {
		if err := s.courses.Create(ctx, course); err != nil {
			return fmt.Errorf("seed course: %w", err)
		}
		contents := []domain.CourseContent{
			{ID: uuid.NewString(), CourseID: course.ID, Title: "Welcome to the Course", Type: domain.ContentTypeText, Data: fmt.Sprintf("Welcome to %s! Here is your overview.", course.Title)},
			{ID: uuid.NewString(), CourseID: course.ID, Title: "Chapter 1: Getting Started", Type: domain.ContentTypeVideo, Data: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
			{ID: uuid.NewString(), CourseID: course.ID, Title: "Study Notes", Type: domain.ContentTypeText, Data: "1. Key Concept A\n2. Key Concept B\n3. Summary"},
		}
		for _, c := range contents {
			if err := s.courses.CreateContent(ctx, c); err != nil {
				return fmt.Errorf("seed content: %w", err)
			}
		}
	}

	s.logger.Info("seeded demo courses", zap.Int("count", len(seeds)))
	return nil
}
