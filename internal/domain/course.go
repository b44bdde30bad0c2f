package domain

import "time"

const (
	ContentTypeVideo = "video"
	ContentTypeText  = "text"
)

type Course struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	// Price se guarda en centavos para evitar aritmetica en punto flotante.
	Price    int    `json:"price"`
	ImageURL string `json:"image_url"`
}

type CourseContent struct {
	ID       string `json:"id"`
	CourseID string `json:"course_id"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Data     string `json:"data"`
}

type Enrollment struct {
	UserID   string    `json:"user_id"`
	CourseID string    `json:"course_id"`
	JoinedAt time.Time `json:"joined_at"`
}
