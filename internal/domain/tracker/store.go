package tracker

import (
	"context"
)

// ══════════════════════════════════════════════════════════════════════════════
// ACTIVITY STORE
// Полное отображение участник -> запись активности. Хранилище принадлежит
// процессу целиком: загружается один раз при старте, мутируется в памяти
// и синхронно сбрасывается на диск после каждой мутации (write-through).
// ══════════════════════════════════════════════════════════════════════════════

// Store - упорядоченное хранилище записей активности.
// Порядок вставки сохраняется: при равных счётчиках он определяет
// позиции в рейтинге, поэтому map дополнен слайсом ключей.
type Store struct {
	records map[MemberID]*ActivityRecord
	order   []MemberID
}

// NewStore создаёт пустое хранилище.
func NewStore() *Store {
	return &Store{
		records: make(map[MemberID]*ActivityRecord),
	}
}

// GetOrCreate возвращает запись участника, создавая её при первом обращении.
// Созданная запись сразу видна последующим вызовам.
func (s *Store) GetOrCreate(id MemberID) *ActivityRecord {
	if rec, ok := s.records[id]; ok {
		return rec
	}

	rec := NewRecord(id)
	s.records[id] = rec
	s.order = append(s.order, id)
	return rec
}

// Get возвращает запись участника без создания.
func (s *Store) Get(id MemberID) (*ActivityRecord, bool) {
	rec, ok := s.records[id]
	return rec, ok
}

// Insert добавляет готовую запись (используется при загрузке с диска).
// Существующая запись с тем же идентификатором заменяется без изменения
// порядка.
func (s *Store) Insert(rec *ActivityRecord) {
	if rec == nil || !rec.MemberID.IsValid() {
		return
	}
	if _, ok := s.records[rec.MemberID]; !ok {
		s.order = append(s.order, rec.MemberID)
	}
	s.records[rec.MemberID] = rec
}

// Members возвращает идентификаторы всех участников в порядке вставки.
func (s *Store) Members() []MemberID {
	out := make([]MemberID, len(s.order))
	copy(out, s.order)
	return out
}

// Len возвращает количество участников в хранилище.
func (s *Store) Len() int {
	return len(s.records)
}

// ══════════════════════════════════════════════════════════════════════════════
// PERSISTENCE PORT
// ══════════════════════════════════════════════════════════════════════════════

// Persister - порт персистентности хранилища.
// Реализация обязана соблюдать контракт: отсутствующий или повреждённый
// источник при Load трактуется как первый запуск (пустое хранилище, без
// ошибки), Save атомарно заменяет предыдущее состояние.
type Persister interface {
	// Load читает сохранённое состояние.
	Load(ctx context.Context) (*Store, error)

	// Save сериализует полное хранилище.
	Save(ctx context.Context, store *Store) error
}
