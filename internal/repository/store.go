package repository

import (
	"sort"
	"strconv"
	"sync"

	"team-task-service/internal/domain"
)

// Store — in-memory хранилище всех пяти коллекций сущностей.
// Store единолично владеет данными: наружу отдаются только копии,
// все мутации сериализованы одним RWMutex, поэтому каскадные удаления
// и тройное обновление назначения атомарны относительно друг друга.
//
// Два уровня блокировок: mu защищает сами данные внутри методов
// репозиториев; opMu сериализует целые операции use case-уровня,
// у которых проверки инвариантов и мутация должны быть единым целым.
// Порядок захвата строго opMu → mu.
type Store struct {
	mu     sync.RWMutex
	opMu   sync.Mutex
	nextID int64

	users   map[string]*domain.User
	teams   map[string]*domain.Team
	members map[string]*domain.TeamMember
	tasks   map[string]*domain.Task
	history map[string]*domain.AssignmentRecord
}

// NewStore создает пустое хранилище.
func NewStore() *Store {
	return &Store{
		nextID:  1,
		users:   make(map[string]*domain.User),
		teams:   make(map[string]*domain.Team),
		members: make(map[string]*domain.TeamMember),
		tasks:   make(map[string]*domain.Task),
		history: make(map[string]*domain.AssignmentRecord),
	}
}

// OperationLock возвращает замок, под которым выполняются целиком
// мутирующие операции поверх этого Store.
func (s *Store) OperationLock() sync.Locker {
	return &s.opMu
}

// newID выдает следующий идентификатор единой глобальной последовательности.
// Идентификаторы монотонно растут и никогда не переиспользуются.
// Вызывается только под write-блокировкой.
func (s *Store) newID() string {
	id := strconv.FormatInt(s.nextID, 10)
	s.nextID++
	return id
}

// sortByID упорядочивает выборку по возрастанию числового id,
// чтобы результаты обратных просмотров были детерминированы.
func sortByID(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		a, _ := strconv.ParseInt(ids[i], 10, 64)
		b, _ := strconv.ParseInt(ids[j], 10, 64)
		return a < b
	})
}

func strPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	c.Name = strPtr(u.Name)
	return &c
}

func cloneTeam(t *domain.Team) *domain.Team {
	c := *t
	return &c
}

func cloneMember(m *domain.TeamMember) *domain.TeamMember {
	c := *m
	return &c
}

func cloneTask(t *domain.Task) *domain.Task {
	c := *t
	c.AssignedUserID = strPtr(t.AssignedUserID)
	c.Description = strPtr(t.Description)
	return &c
}

func cloneRecord(r *domain.AssignmentRecord) *domain.AssignmentRecord {
	c := *r
	c.FromUserID = strPtr(r.FromUserID)
	c.ToUserID = strPtr(r.ToUserID)
	return &c
}
