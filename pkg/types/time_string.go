package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimeFormat формат времени HH:MM (24 часа)
const TimeFormat = "15:04"

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

// TimeString время суток в формате "HH:MM" (24 часа)
// Каноническое представление времени начала/конца слота без привязки к дате
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeFormat))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
// Возвращает ошибку, если строка не соответствует "HH:MM" (00:00 - 23:59)
func NewTimeStringFromString(s string) (TimeString, error) {
	var hours, minutes int
	if _, err := fmt.Sscanf(s, "%02d:%02d", &hours, &minutes); err != nil {
		return "", fmt.Errorf("invalid time format %q, expected HH:MM: %v", s, err)
	}
	if len(s) != 5 || s[2] != ':' {
		return "", fmt.Errorf("invalid time format %q, expected HH:MM", s)
	}
	if hours < 0 || hours > 23 {
		return "", fmt.Errorf("invalid hours %d in %q, expected 00-23", hours, s)
	}
	if minutes < 0 || minutes > 59 {
		return "", fmt.Errorf("invalid minutes %d in %q, expected 00-59", minutes, s)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", hours, minutes)), nil
}

// NewTimeStringFromMinutes создает TimeString из количества минут с начала суток
// Возвращает ошибку, если значение выходит за пределы суток
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= MinutesPerDay {
		return "", fmt.Errorf("minutes %d out of day range [0, %d)", minutes, MinutesPerDay)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true, если значение не установлено
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет, что значение соответствует формату "HH:MM"
func (t TimeString) Validate() error {
	_, err := NewTimeStringFromString(string(t))
	return err
}

// MinutesFromMidnight возвращает количество минут с начала суток (0-1439)
// Для невалидного значения возвращает ошибку
func (t TimeString) MinutesFromMidnight() (int, error) {
	parsed, err := NewTimeStringFromString(string(t))
	if err != nil {
		return 0, err
	}
	var hours, minutes int
	fmt.Sscanf(string(parsed), "%02d:%02d", &hours, &minutes)
	return hours*60 + minutes, nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// AddMinutes возвращает время, сдвинутое на minutes минут вперёд
// Возвращает ошибку при выходе за пределы суток (переход через полночь не поддерживается)
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	total, err := t.MinutesFromMidnight()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(total + minutes)
}

// SubMinutes возвращает время, сдвинутое на minutes минут назад
// Возвращает ошибку при выходе за пределы суток
func (t TimeString) SubMinutes(minutes int) (TimeString, error) {
	return t.AddMinutes(-minutes)
}

// Display12h возвращает время в 12-часовом формате "hh:mm AM/PM"
// Часы 00 и 12 отображаются как 12
func (t TimeString) Display12h() (string, error) {
	total, err := t.MinutesFromMidnight()
	if err != nil {
		return "", err
	}
	hours := total / 60
	minutes := total % 60

	suffix := "AM"
	if hours >= 12 {
		suffix = "PM"
	}

	displayHours := hours % 12
	if displayHours == 0 {
		displayHours = 12
	}

	return fmt.Sprintf("%02d:%02d %s", displayHours, minutes, suffix), nil
}

// Value реализует driver.Valuer для записи в БД
func (t TimeString) Value() (driver.Value, error) {
	if _, err := NewTimeStringFromString(string(t)); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения из БД
// Поддерживает колонки TIME (приходят как string или []byte "HH:MM:SS") и time.Time
func (t *TimeString) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case nil:
		*t = ""
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeString", value)
	}
}

func (t *TimeString) scanString(s string) error {
	// Колонка TIME возвращает "HH:MM:SS" - отбрасываем секунды
	if len(s) > 5 {
		s = s[:5]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
