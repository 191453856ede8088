// Package tracker содержит доменную модель учёта активности участников
// CodeGrind Hub. Это ядро бизнес-логики - здесь нет внешних зависимостей.
package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/codegrind-hub/codegrind-bot/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// MemberID представляет уникальный идентификатор участника чата.
// Идентификатор непрозрачный: бот использует Telegram user ID в строковом виде.
type MemberID string

// IsValid проверяет, что идентификатор не пустой.
func (m MemberID) IsValid() bool {
	return len(m) > 0
}

// String возвращает строковое представление идентификатора.
func (m MemberID) String() string {
	return string(m)
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrInvalidMemberID - невалидный идентификатор участника.
	ErrInvalidMemberID = errors.New("invalid member id: must not be empty")

	// ErrZeroAdjustment - нулевая корректировка счётчика не имеет смысла.
	ErrZeroAdjustment = errors.New("adjustment amount must not be zero")

	// ErrNegativeGoal - цель не может быть отрицательной.
	ErrNegativeGoal = errors.New("goal must be non-negative")

	// ErrMemberNotFound - участник не найден в хранилище.
	ErrMemberNotFound = errors.New("member not found")
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: ACTIVITY RECORD
// ══════════════════════════════════════════════════════════════════════════════

// ActivityRecord - запись активности одного участника.
// Создаётся лениво при первом обращении и никогда не удаляется.
type ActivityRecord struct {
	// MemberID - идентификатор участника.
	MemberID MemberID

	// DisplayName - отображаемое имя (обновляется из входящих сообщений).
	DisplayName string

	// ProblemsSolved - счётчик решённых задач. Никогда не уходит ниже нуля.
	ProblemsSolved int

	// LastActive - время последней активности. Нулевое значение = "никогда".
	LastActive time.Time

	// Activity - количество событий по календарным дням (ключ UTC "2006-01-02").
	// Сумма значений не обязана совпадать с ProblemsSolved: админские
	// корректировки меняют только счётчик.
	Activity map[string]int

	// Goal - целевое количество решённых задач. 0 = цель не установлена.
	Goal int

	// CreatedAt - время создания записи.
	CreatedAt time.Time
}

// NewRecord создаёт новую запись с нулевыми счётчиками.
func NewRecord(id MemberID) *ActivityRecord {
	return &ActivityRecord{
		MemberID:  id,
		Activity:  make(map[string]int),
		CreatedAt: timeutil.Now(),
	}
}

// NeverActive возвращает true, если активность ещё ни разу не записывалась.
func (r *ActivityRecord) NeverActive() bool {
	return r.LastActive.IsZero()
}

// ActiveOn возвращает true, если в указанный день была активность.
func (r *ActivityRecord) ActiveOn(day time.Time) bool {
	return r.Activity[timeutil.DayKey(day)] > 0
}

// RecordSolve записывает одно событие решения: инкрементирует дневной
// счётчик и общий счётчик, обновляет время последней активности.
// Операция намеренно не идемпотентна - каждый вызов считается отдельным
// решением. Защита "раз в день" живёт только в сценарии ежедневной загадки.
func (r *ActivityRecord) RecordSolve(at time.Time) {
	key := timeutil.DayKey(at)
	if _, ok := r.Activity[key]; !ok {
		r.Activity[key] = 0
	}
	r.Activity[key]++
	r.ProblemsSolved++
	r.LastActive = at.UTC()
}

// AdjustSolves корректирует счётчик решённых задач на delta (может быть
// отрицательной). Результат ограничивается нулём снизу. Дневная активность
// и LastActive не затрагиваются.
func (r *ActivityRecord) AdjustSolves(delta int) (int, error) {
	if delta == 0 {
		return r.ProblemsSolved, ErrZeroAdjustment
	}
	r.ProblemsSolved += delta
	if r.ProblemsSolved < 0 {
		r.ProblemsSolved = 0
	}
	return r.ProblemsSolved, nil
}

// SetGoal устанавливает цель. Ноль снимает цель, отрицательные значения
// отклоняются.
func (r *ActivityRecord) SetGoal(goal int) error {
	if goal < 0 {
		return ErrNegativeGoal
	}
	r.Goal = goal
	return nil
}

// HasGoal возвращает true, если цель установлена.
func (r *ActivityRecord) HasGoal() bool {
	return r.Goal > 0
}

// Streak возвращает длину текущей серии активных дней записи.
func (r *ActivityRecord) Streak(today time.Time) int {
	return Streak(r.Activity, today)
}

// String возвращает строковое представление записи для логирования.
func (r *ActivityRecord) String() string {
	return fmt.Sprintf(
		"ActivityRecord{Member: %s, Solved: %d, Goal: %d, Days: %d}",
		r.MemberID, r.ProblemsSolved, r.Goal, len(r.Activity),
	)
}

// Clone создаёт глубокую копию записи.
func (r *ActivityRecord) Clone() *ActivityRecord {
	if r == nil {
		return nil
	}

	clone := *r
	clone.Activity = make(map[string]int, len(r.Activity))
	for k, v := range r.Activity {
		clone.Activity[k] = v
	}
	return &clone
}
