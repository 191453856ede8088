package tracker

import (
	"sort"
	"time"

	"github.com/codegrind-hub/codegrind-bot/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// AGGREGATION ENGINE
// Производные представления поверх хранилища: рейтинг, топы, оконные суммы
// и прогресс по цели. Только чтение - агрегатор никогда не мутирует записи.
// ══════════════════════════════════════════════════════════════════════════════

// Entry - пара (участник, запись) в отсортированном рейтинге.
type Entry struct {
	MemberID MemberID
	Record   *ActivityRecord
}

// StreakEntry - участник с длиной его серии.
type StreakEntry struct {
	MemberID    MemberID
	DisplayName string
	Length      int
}

// GoalProgress - прогресс участника по установленной цели.
type GoalProgress struct {
	// Solved - текущее количество решённых задач.
	Solved int

	// Goal - целевое значение (0 = не установлена).
	Goal int

	// Percent - 100 * Solved / Goal. Валиден только при Set == true.
	Percent int

	// Set - установлена ли цель.
	Set bool
}

// Aggregator читает хранилище и отвечает на запросы рейтинга и прогресса.
type Aggregator struct {
	store *Store
}

// NewAggregator создаёт агрегатор поверх хранилища.
func NewAggregator(store *Store) *Aggregator {
	return &Aggregator{store: store}
}

// Len возвращает количество известных участников.
func (a *Aggregator) Len() int {
	return a.store.Len()
}

// Get возвращает запись участника без создания.
func (a *Aggregator) Get(id MemberID) (*ActivityRecord, bool) {
	return a.store.Get(id)
}

// ranked возвращает все записи, отсортированные по ProblemsSolved по
// убыванию. Сортировка стабильная: при равенстве счётчиков сохраняется
// порядок вставки в хранилище.
func (a *Aggregator) ranked() []Entry {
	entries := make([]Entry, 0, a.store.Len())
	for _, id := range a.store.Members() {
		rec, ok := a.store.Get(id)
		if !ok {
			continue
		}
		entries = append(entries, Entry{MemberID: id, Record: rec})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Record.ProblemsSolved > entries[j].Record.ProblemsSolved
	})

	return entries
}

// Rank возвращает позицию участника (с единицы) в рейтинге по решённым
// задачам. Для неизвестного участника возвращается len(участников) + 1.
func (a *Aggregator) Rank(id MemberID) int {
	entries := a.ranked()
	for i, e := range entries {
		if e.MemberID == id {
			return i + 1
		}
	}
	return len(entries) + 1
}

// TopN возвращает первые n записей рейтинга.
func (a *Aggregator) TopN(n int) []Entry {
	entries := a.ranked()
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// TopStreaks возвращает до n участников с положительными сериями,
// по убыванию длины серии.
func (a *Aggregator) TopStreaks(n int, today time.Time) []StreakEntry {
	entries := make([]StreakEntry, 0, a.store.Len())
	for _, id := range a.store.Members() {
		rec, ok := a.store.Get(id)
		if !ok {
			continue
		}
		length := rec.Streak(today)
		if length <= 0 {
			continue
		}
		entries = append(entries, StreakEntry{
			MemberID:    id,
			DisplayName: rec.DisplayName,
			Length:      length,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Length > entries[j].Length
	})

	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// WindowSum суммирует дневную активность участника за days последних
// календарных дней, включая today. Отсутствующие дни считаются нулями.
func (a *Aggregator) WindowSum(id MemberID, days int, today time.Time) int {
	rec, ok := a.store.Get(id)
	if !ok {
		return 0
	}

	sum := 0
	for _, key := range timeutil.WindowKeys(today, days) {
		sum += rec.Activity[key]
	}
	return sum
}

// GoalProgress возвращает прогресс участника по цели.
// При goal == 0 прогресс помечается как "не установлен".
func (a *Aggregator) GoalProgress(id MemberID) GoalProgress {
	rec, ok := a.store.Get(id)
	if !ok {
		return GoalProgress{}
	}

	p := GoalProgress{
		Solved: rec.ProblemsSolved,
		Goal:   rec.Goal,
	}
	if rec.Goal > 0 {
		p.Set = true
		p.Percent = 100 * rec.ProblemsSolved / rec.Goal
	}
	return p
}
