package util

import (
	"strings"
	"time"
)

// IsOpen проверяет, открыт ли туалет в момент now по строке часов работы
// в формате "HH:MM-HH:MM". Пустая строка означает "всегда открыто".
// Некорректная строка тоже трактуется как "открыто": битые данные не
// должны прятать туалет из выдачи open now. Если закрытие раньше открытия,
// окно считается ночным (через полночь). Перевод now в нужный часовой пояс -
// обязанность вызывающей стороны.
func IsOpen(hours string, now time.Time) bool {
	if strings.TrimSpace(hours) == "" {
		return true
	}

	parts := strings.Split(hours, "-")
	if len(parts) != 2 {
		return true
	}

	open, err := parseClock(parts[0])
	if err != nil {
		return true
	}
	close, err := parseClock(parts[1])
	if err != nil {
		return true
	}

	minute := now.Hour()*60 + now.Minute()
	if close < open {
		// Ночное окно: открыто с open до полуночи и с полуночи до close
		return minute >= open || minute <= close
	}
	return minute >= open && minute <= close
}

// parseClock разбирает "HH:MM" в минуты от полуночи
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
