package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"studyhub/internal/domain"
)

type mockCourseRepo struct {
	courses  map[string]domain.Course
	contents map[string][]domain.CourseContent
}

func newMockCourseRepo(courses ...domain.Course) *mockCourseRepo {
	repo := &mockCourseRepo{
		courses:  make(map[string]domain.Course),
		contents: make(map[string][]domain.CourseContent),
	}
	for _, c := range courses {
		repo.courses[c.ID] = c
	}
	return repo
}

func (m *mockCourseRepo) Create(ctx context.Context, course domain.Course) error {
	m.courses[course.ID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(ctx context.Context, id string) (domain.Course, error) {
	c, ok := m.courses[id]
	if !ok {
		return domain.Course{}, pgx.ErrNoRows
	}
	return c, nil
}

func (m *mockCourseRepo) List(ctx context.Context) ([]domain.Course, error) {
	var out []domain.Course
	for _, c := range m.courses {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCourseRepo) ListByIDs(ctx context.Context, ids []string) ([]domain.Course, error) {
	var out []domain.Course
	for _, id := range ids {
		if c, ok := m.courses[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCourseRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.courses)), nil
}

func (m *mockCourseRepo) CreateContent(ctx context.Context, content domain.CourseContent) error {
	m.contents[content.CourseID] = append(m.contents[content.CourseID], content)
	return nil
}

func (m *mockCourseRepo) ListContentByCourseID(ctx context.Context, courseID string) ([]domain.CourseContent, error) {
	return m.contents[courseID], nil
}

type mockEnrollmentRepo struct {
	enrollments map[string]domain.Enrollment
}

func newMockEnrollmentRepo() *mockEnrollmentRepo {
	return &mockEnrollmentRepo{enrollments: make(map[string]domain.Enrollment)}
}

func enrollKey(userID, courseID string) string { return userID + "|" + courseID }

func (m *mockEnrollmentRepo) Create(ctx context.Context, e domain.Enrollment) error {
	m.enrollments[enrollKey(e.UserID, e.CourseID)] = e
	return nil
}

func (m *mockEnrollmentRepo) Exists(ctx context.Context, userID, courseID string) (bool, error) {
	_, ok := m.enrollments[enrollKey(userID, courseID)]
	return ok, nil
}

func (m *mockEnrollmentRepo) ListCourseIDsByUserID(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	for _, e := range m.enrollments {
		if e.UserID == userID {
			ids = append(ids, e.CourseID)
		}
	}
	return ids, nil
}

func (m *mockEnrollmentRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.enrollments)), nil
}

func (m *mockEnrollmentRepo) TotalRevenue(ctx context.Context) (int64, error) {
	return 0, nil
}

func TestCourseService_List(t *testing.T) {
	t.Run("catalogo vacio siembra cursos demo", func(t *testing.T) {
		repo := newMockCourseRepo()
		svc := NewCourseService(zap.NewNop(), repo, newMockEnrollmentRepo())

		courses, err := svc.List(context.Background())
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(courses) != 3 {
			t.Fatalf("expected 3 seeded courses, got %d", len(courses))
		}
		for _, c := range courses {
			if len(repo.contents[c.ID]) != 3 {
				t.Fatalf("expected 3 content items for %q, got %d", c.Title, len(repo.contents[c.ID]))
			}
		}
	})

	t.Run("catalogo poblado no re-siembra", func(t *testing.T) {
		repo := newMockCourseRepo(domain.Course{ID: "c1", Title: "Go"})
		svc := NewCourseService(zap.NewNop(), repo, newMockEnrollmentRepo())

		courses, err := svc.List(context.Background())
		if err != nil || len(courses) != 1 {
			t.Fatalf("expected existing course only, got %d err=%v", len(courses), err)
		}
	})
}

func TestCourseService_Buy(t *testing.T) {
	t.Run("inscripcion nueva", func(t *testing.T) {
		repo := newMockCourseRepo(domain.Course{ID: "c1", Title: "Go", Price: 1000})
		enrollments := newMockEnrollmentRepo()
		svc := NewCourseService(zap.NewNop(), repo, enrollments)

		course, already, err := svc.Buy(context.Background(), "u1", "c1")
		if err != nil || already {
			t.Fatalf("unexpected result: already=%v err=%v", already, err)
		}
		if course.Title != "Go" {
			t.Fatalf("unexpected course: %+v", course)
		}
		if ok, _ := enrollments.Exists(context.Background(), "u1", "c1"); !ok {
			t.Fatalf("expected enrollment created")
		}
	})

	t.Run("recompra es no-op", func(t *testing.T) {
		repo := newMockCourseRepo(domain.Course{ID: "c1", Title: "Go"})
		svc := NewCourseService(zap.NewNop(), repo, newMockEnrollmentRepo())

		if _, _, err := svc.Buy(context.Background(), "u1", "c1"); err != nil {
			t.Fatalf("first buy: %v", err)
		}
		_, already, err := svc.Buy(context.Background(), "u1", "c1")
		if err != nil || !already {
			t.Fatalf("expected already enrolled, got already=%v err=%v", already, err)
		}
	})

	t.Run("curso inexistente", func(t *testing.T) {
		svc := NewCourseService(zap.NewNop(), newMockCourseRepo(), newMockEnrollmentRepo())
		if _, _, err := svc.Buy(context.Background(), "u1", "ghost"); !errors.Is(err, ErrCourseNotFound) {
			t.Fatalf("expected ErrCourseNotFound, got %v", err)
		}
	})
}

func TestCourseService_Content(t *testing.T) {
	course := domain.Course{ID: "c1", Title: "Go"}
	item := domain.CourseContent{ID: "ct1", CourseID: "c1", Title: "Intro", Type: domain.ContentTypeText, Data: "hello"}

	t.Run("estudiante sin inscripcion rechazado", func(t *testing.T) {
		repo := newMockCourseRepo(course)
		_ = repo.CreateContent(context.Background(), item)
		svc := NewCourseService(zap.NewNop(), repo, newMockEnrollmentRepo())

		_, err := svc.Content(context.Background(), "u1", domain.UserRoleStudent, "c1")
		if !errors.Is(err, ErrNotEnrolled) {
			t.Fatalf("expected ErrNotEnrolled, got %v", err)
		}
	})

	t.Run("estudiante inscrito accede", func(t *testing.T) {
		repo := newMockCourseRepo(course)
		_ = repo.CreateContent(context.Background(), item)
		enrollments := newMockEnrollmentRepo()
		_ = enrollments.Create(context.Background(), domain.Enrollment{UserID: "u1", CourseID: "c1"})
		svc := NewCourseService(zap.NewNop(), repo, enrollments)

		contents, err := svc.Content(context.Background(), "u1", domain.UserRoleStudent, "c1")
		if err != nil || len(contents) != 1 {
			t.Fatalf("expected 1 content item, got %d err=%v", len(contents), err)
		}
	})

	t.Run("admin y owner no requieren inscripcion", func(t *testing.T) {
		for _, role := range []domain.UserRole{domain.UserRoleAdmin, domain.UserRoleOwner} {
			repo := newMockCourseRepo(course)
			_ = repo.CreateContent(context.Background(), item)
			svc := NewCourseService(zap.NewNop(), repo, newMockEnrollmentRepo())

			if _, err := svc.Content(context.Background(), "staff", role, "c1"); err != nil {
				t.Fatalf("role %q: unexpected error: %v", role, err)
			}
		}
	})
}

func TestCourseService_Admin(t *testing.T) {
	t.Run("crear curso", func(t *testing.T) {
		repo := newMockCourseRepo()
		svc := NewCourseService(zap.NewNop(), repo, newMockEnrollmentRepo())

		course, err := svc.CreateCourse(context.Background(), CreateCourseInput{Title: "Go", Price: 2500})
		if err != nil {
			t.Fatalf("create course: %v", err)
		}
		if course.ID == "" || course.Price != 2500 {
			t.Fatalf("unexpected course: %+v", course)
		}
	})

	t.Run("titulo vacio se rechaza", func(t *testing.T) {
		svc := NewCourseService(zap.NewNop(), newMockCourseRepo(), newMockEnrollmentRepo())
		if _, err := svc.CreateCourse(context.Background(), CreateCourseInput{Title: " "}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("agregar contenido valida tipo", func(t *testing.T) {
		repo := newMockCourseRepo(domain.Course{ID: "c1"})
		svc := NewCourseService(zap.NewNop(), repo, newMockEnrollmentRepo())

		if _, err := svc.AddContent(context.Background(), "c1", AddContentInput{Title: "x", Type: "pdf", Data: "d"}); !errors.Is(err, ErrInvalidContent) {
			t.Fatalf("expected ErrInvalidContent, got %v", err)
		}
		content, err := svc.AddContent(context.Background(), "c1", AddContentInput{Title: "x", Type: domain.ContentTypeVideo, Data: "url"})
		if err != nil || content.CourseID != "c1" {
			t.Fatalf("unexpected content: %+v err=%v", content, err)
		}
	})

	t.Run("contenido en curso inexistente", func(t *testing.T) {
		svc := NewCourseService(zap.NewNop(), newMockCourseRepo(), newMockEnrollmentRepo())
		if _, err := svc.AddContent(context.Background(), "ghost", AddContentInput{Title: "x", Type: domain.ContentTypeText, Data: "d"}); !errors.Is(err, ErrCourseNotFound) {
			t.Fatalf("expected ErrCourseNotFound, got %v", err)
		}
	})
}

func TestAnalyticsService_Dashboard(t *testing.T) {
	users := newMockUserRepo(
		newUser(t, "a", "pw", domain.UserRoleStudent, true),
		newUser(t, "b", "pw", domain.UserRoleOwner, true),
	)
	courses := newMockCourseRepo(domain.Course{ID: "c1", Price: 1000})
	enrollments := newMockEnrollmentRepo()
	_ = enrollments.Create(context.Background(), domain.Enrollment{UserID: "u1", CourseID: "c1"})

	svc := NewAnalyticsService(users, courses, enrollments)
	stats, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if stats.TotalUsers != 2 || stats.TotalCourses != 1 || stats.TotalEnrollments != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
