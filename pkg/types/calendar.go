package types

import (
	"errors"
	"fmt"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

var (
	// ErrInvalidDateString возвращается при неверном формате даты
	ErrInvalidDateString = errors.New("invalid date string format")

	// ErrInvalidTimeString возвращается при неверном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format")
)

// DateString календарная дата в формате YYYY-MM-DD без часового пояса
// Все сравнения дат выполняются только по календарю
type DateString string

// NewDateStringFromString парсит и нормализует дату
func NewDateStringFromString(s string) (DateString, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateString, s)
	}
	return DateString(t.Format(dateLayout)), nil
}

// NewDateString возвращает календарную дату момента t в его часовом поясе
func NewDateString(t time.Time) DateString {
	return DateString(t.Format(dateLayout))
}

func (d DateString) String() string {
	return string(d)
}

func (d DateString) IsZero() bool {
	return d == ""
}

// Validate проверяет формат даты
func (d DateString) Validate() error {
	if _, err := time.Parse(dateLayout, string(d)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDateString, string(d))
	}
	return nil
}

// Time возвращает полночь даты в UTC (для арифметики по дням)
func (d DateString) Time() (time.Time, error) {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateString, string(d))
	}
	return t, nil
}

// Before сравнивает даты (формат YYYY-MM-DD упорядочен лексикографически)
func (d DateString) Before(other DateString) bool {
	return d < other
}

func (d DateString) After(other DateString) bool {
	return d > other
}

// DaysUntil количество суток от d до other (отрицательное, если other раньше)
func (d DateString) DaysUntil(other DateString) (int, error) {
	from, err := d.Time()
	if err != nil {
		return 0, err
	}
	to, err := other.Time()
	if err != nil {
		return 0, err
	}
	return int(to.Sub(from).Hours() / 24), nil
}

// TimeString время суток в формате HH:MM
type TimeString string

// NewTimeStringFromString парсит и нормализует время (9:05 -> 09:05)
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return TimeString(t.Format(timeLayout)), nil
}

func (t TimeString) String() string {
	return string(t)
}

func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат времени
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}
