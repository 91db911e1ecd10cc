package domain

import "time"

// Customer карточка клиента
type Customer struct {
	ID            int64
	Phone         string
	Name          string
	UserID        *string
	TotalBookings int
	TotalVisits   int
	TotalSpent    int64
	LastBookingAt *time.Time
	LastVisitAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Employee сотрудник (мастер/администратор зала)
type Employee struct {
	ID     int64
	UserID string
	Name   string
	Active bool
}

// PointKind категория начисления баллов
type PointKind string

const (
	PointsPurchase PointKind = "purchase"
	PointsVisit    PointKind = "visit"
)
