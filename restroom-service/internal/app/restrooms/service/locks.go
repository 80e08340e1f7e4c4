package service

import "sync"

// restroomLocks сериализует мутации по id туалета: пересчёт среднего
// рейтинга не должен терять обновления при конкурентных отзывах.
// Разные id не блокируют друг друга.
type restroomLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newRestroomLocks() *restroomLocks {
	return &restroomLocks{
		locks: make(map[int64]*sync.Mutex),
	}
}

// lock захватывает мьютекс для id и возвращает его для последующего Unlock
func (l *restroomLocks) lock(id int64) *sync.Mutex {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m
}
