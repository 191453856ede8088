package tracker

import (
	"time"

	"github.com/codegrind-hub/codegrind-bot/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// STREAK (Серия активных дней)
// ══════════════════════════════════════════════════════════════════════════════

// Streak вычисляет длину серии последовательных активных дней.
//
// Отсчёт начинается от самого позднего активного дня, а не от today:
// давно неактивный участник сохраняет длину своей последней серии.
// Это задокументированное поведение продукта, а не ошибка.
// today ограничивает серию сверху - дни позже today не учитываются.
func Streak(activity map[string]int, today time.Time) int {
	mostRecent, ok := mostRecentActiveDay(activity)
	if !ok {
		return 0
	}

	todayStart := timeutil.StartOfDay(today)

	count := 0
	for day := mostRecent; activity[timeutil.DayKey(day)] > 0; day = timeutil.AddDays(day, -1) {
		if !day.After(todayStart) {
			count++
		}
	}
	return count
}

// mostRecentActiveDay возвращает самый поздний день с положительным счётчиком.
func mostRecentActiveDay(activity map[string]int) (time.Time, bool) {
	var best time.Time
	found := false

	for key, n := range activity {
		if n <= 0 {
			continue
		}
		day, err := timeutil.ParseDayKey(key)
		if err != nil {
			// Невалидный ключ игнорируем: хранилище чистит их при загрузке.
			continue
		}
		if !found || day.After(best) {
			best = day
			found = true
		}
	}

	return best, found
}
