package service

import (
	"context"
	"fmt"

	"studyhub/internal/repository"
)

// DashboardStats agrega los numeros globales que ve el owner.
type DashboardStats struct {
	TotalUsers       int64 `json:"total_users"`
	TotalCourses     int64 `json:"total_courses"`
	TotalEnrollments int64 `json:"total_enrollments"`
	TotalRevenue     int64 `json:"total_revenue"`
}

type AnalyticsService struct {
	users       repository.UserRepository
	courses     repository.CourseRepository
	enrollments repository.EnrollmentRepository
}

func NewAnalyticsService(
	users repository.UserRepository,
	courses repository.CourseRepository,
	enrollments repository.EnrollmentRepository,
) *AnalyticsService {
	return &AnalyticsService{
		users:       users,
		courses:     courses,
		enrollments: enrollments,
	}
}

func (s *AnalyticsService) Dashboard(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	var err error

	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return DashboardStats{}, fmt.Errorf("count users: %w", err)
	}
	if stats.TotalCourses, err = s.courses.Count(ctx); err != nil {
		return DashboardStats{}, fmt.Errorf("count courses: %w", err)
	}
	if stats.TotalEnrollments, err = s.enrollments.Count(ctx); err != nil {
		return DashboardStats{}, fmt.Errorf("count enrollments: %w", err)
	}
	if stats.TotalRevenue, err = s.enrollments.TotalRevenue(ctx); err != nil {
		return DashboardStats{}, fmt.Errorf("total revenue: %w", err)
	}

	return stats, nil
}
