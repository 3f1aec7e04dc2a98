package dateformat

import (
	"strconv"
	"time"
)

// Format именованный формат отображения даты.
// Набор значений совпадает с enum DateFormat, который отдает бэкенд настроек.
type Format string

const (
	EEE_D_MMM_YYYY   Format = "EEE_D_MMM_YYYY"   // Sat, 20 Jul 2024
	EEEE_D_MMM_YYYY  Format = "EEEE_D_MMM_YYYY"  // Saturday, 20 Jul 2024
	EEEE_D_MMMM_YYYY Format = "EEEE_D_MMMM_YYYY" // Saturday, 20 July 2024
	D_MMM_YYYY       Format = "D_MMM_YYYY"       // 20 Jul 2024
	D_MMMM_YYYY      Format = "D_MMMM_YYYY"      // 20 July 2024
)

// DefaultFormat используется, когда формат не указан или неизвестен.
const DefaultFormat = EEEE_D_MMMM_YYYY

var layouts = map[Format]string{
	EEE_D_MMM_YYYY:   "Mon, 2 Jan 2006",
	EEEE_D_MMM_YYYY:  "Monday, 2 Jan 2006",
	EEEE_D_MMMM_YYYY: "Monday, 2 January 2006",
	D_MMM_YYYY:       "2 Jan 2006",
	D_MMMM_YYYY:      "2 January 2006",
}

// DisplayLocation часовой пояс отображения. Моменты хранятся как epoch
// millis, а календарную дату им дает этот пояс: она одна и та же для
// всех зрителей независимо от их локального времени.
var DisplayLocation = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Singapore")
	if err != nil {
		return time.FixedZone("SGT", 8*60*60)
	}
	return loc
}()

// Known сообщает, является ли name известным форматом.
func Known(name Format) bool {
	_, ok := layouts[name]
	return ok
}

// FormatInstant преобразует момент времени в строку для отображения.
// instant может быть epoch millis (int64/int/float64), строкой с числом,
// строкой RFC3339 или time.Time. Невалидный вход дает пустую строку,
// функция никогда не паникует.
func FormatInstant(instant interface{}, name Format) string {
	t, ok := parseInstant(instant)
	if !ok {
		return ""
	}

	layout, known := layouts[name]
	if !known {
		layout = layouts[DefaultFormat]
	}

	return t.In(DisplayLocation).Format(layout)
}

// ComposeInstant собирает epoch millis из выбора в календаре.
// month нумеруется с нуля, как в пикере. Результат - полночь
// выбранной даты в поясе отображения.
func ComposeInstant(year, month, day int) int64 {
	return time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, DisplayLocation).UnixMilli()
}

// NormalizeDateOnly прижимает момент к полуночи его календарной даты
// в поясе отображения. Для полей "только дата" (taken_at) хранится
// нормализованное значение, чтобы отображение не зависело от таймзоны
// зрителя и повторная нормализация ничего не меняла.
func NormalizeDateOnly(millis int64) int64 {
	t := time.UnixMilli(millis).In(DisplayLocation)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, DisplayLocation).UnixMilli()
}

// ParseInstant разбирает произвольное представление момента времени.
// Числовая строка трактуется как epoch millis, не как дата.
func ParseInstant(instant interface{}) (time.Time, bool) {
	return parseInstant(instant)
}

func parseInstant(instant interface{}) (time.Time, bool) {
	switch v := instant.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return v, true
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, false
		}
		return *v, true
	case int64:
		return time.UnixMilli(v), true
	case int:
		return time.UnixMilli(int64(v)), true
	case float64:
		return time.UnixMilli(int64(v)), true
	case string:
		if v == "" {
			return time.Time{}, false
		}
		// сначала пробуем число: "1721404800000" - это millis, а не дата
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
			return time.UnixMilli(ms), true
		}
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t, true
		}
		if t, err := time.Parse("2006-01-02", v); err == nil {
			return t, true
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}
