package repository

import (
	"errors"
	"sort"
	"sync"

	"github.com/noah-isme/classroom-core/internal/models"
)

// ErrNotFound is returned when no entity exists for the requested ID.
var ErrNotFound = errors.New("repository: not found")

// MemoryRepository keeps the classroom object graph addressable by ID for the
// lifetime of the process. It does not persist anything.
type MemoryRepository struct {
	mu          sync.RWMutex
	students    map[string]*models.Student
	teachers    map[string]*models.Teacher
	admins      map[string]*models.Administrator
	courses     map[string]*models.Course
	assignments map[string]*models.Assignment
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		students:    make(map[string]*models.Student),
		teachers:    make(map[string]*models.Teacher),
		admins:      make(map[string]*models.Administrator),
		courses:     make(map[string]*models.Course),
		assignments: make(map[string]*models.Assignment),
	}
}

// SaveStudent stores a student.
func (r *MemoryRepository) SaveStudent(s *models.Student) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.students[s.ID] = s
}

// FindStudent returns a student by ID.
func (r *MemoryRepository) FindStudent(id string) (*models.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.students[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

// SaveTeacher stores a teacher.
func (r *MemoryRepository) SaveTeacher(t *models.Teacher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.teachers[t.ID] = t
}

// FindTeacher returns a teacher by ID.
func (r *MemoryRepository) FindTeacher(id string) (*models.Teacher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if t, ok := r.teachers[id]; ok {
		return t, nil
	}
	return nil, ErrNotFound
}

// SaveAdministrator stores an administrator.
func (r *MemoryRepository) SaveAdministrator(a *models.Administrator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.admins[a.ID] = a
}

// FindAdministrator returns an administrator by ID.
func (r *MemoryRepository) FindAdministrator(id string) (*models.Administrator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if a, ok := r.admins[id]; ok {
		return a, nil
	}
	return nil, ErrNotFound
}

// FindUser returns the identity of any role by ID.
func (r *MemoryRepository) FindUser(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.students[id]; ok {
		return &s.User, nil
	}
	if t, ok := r.teachers[id]; ok {
		return &t.User, nil
	}
	if a, ok := r.admins[id]; ok {
		return &a.User, nil
	}
	return nil, ErrNotFound
}

// SaveCourse stores a course.
func (r *MemoryRepository) SaveCourse(c *models.Course) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.courses[c.ID] = c
}

// FindCourse returns a course by ID.
func (r *MemoryRepository) FindCourse(id string) (*models.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.courses[id]; ok {
		return c, nil
	}
	return nil, ErrNotFound
}

// ListCourses returns every course ordered by creation time.
func (r *MemoryRepository) ListCourses() []*models.Course {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*models.Course, 0, len(r.courses))
	for _, c := range r.courses {
		list = append(list, c)
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list
}

// SaveAssignment stores an assignment.
func (r *MemoryRepository) SaveAssignment(a *models.Assignment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assignments[a.ID] = a
}

// FindAssignment returns an assignment by ID.
func (r *MemoryRepository) FindAssignment(id string) (*models.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if a, ok := r.assignments[id]; ok {
		return a, nil
	}
	return nil, ErrNotFound
}
