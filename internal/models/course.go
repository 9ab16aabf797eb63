package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MaterialOptions configures AddMaterial.
type MaterialOptions struct {
	// Important only adds a notification; it is not stored with the material.
	Important bool
}

// Course holds an ordered material catalog and the enrolled students.
// A Course is not safe for concurrent use.
type Course struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`

	materials []string
	students  []*Student
}

// NewCourse constructs an empty course owned by ownerID.
func NewCourse(name, ownerID string) *Course {
	return &Course{
		ID:        uuid.NewString(),
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	}
}

// String returns the course name.
func (c *Course) String() string {
	return c.Name
}

// AddMaterial appends content to the catalog. Exactly one entry is added
// regardless of opts.
func (c *Course) AddMaterial(content string, opts MaterialOptions) []Notification {
	c.materials = append(c.materials, content)
	out := []Notification{
		newNotification(NotificationMaterialAdded, fmt.Sprintf("material %q added to course %s", content, c.Name)),
	}
	if opts.Important {
		out = append(out, newNotification(NotificationMaterialImportant, fmt.Sprintf("material %q marked as important", content)))
	}
	return out
}

// RemoveMaterial removes the first entry equal to content. A missing entry
// leaves the catalog untouched and reports false.
func (c *Course) RemoveMaterial(content string) (Notification, bool) {
	n := newNotification(NotificationMaterialRemoved, fmt.Sprintf("material %q removed from course %s", content, c.Name))
	for i, m := range c.materials {
		if m == content {
			c.materials = append(c.materials[:i:i], c.materials[i+1:]...)
			return n, true
		}
	}
	return n, false
}

// HasMaterial reports whether content is in the catalog.
func (c *Course) HasMaterial(content string) bool {
	for _, m := range c.materials {
		if m == content {
			return true
		}
	}
	return false
}

// Materials returns a copy of the catalog in insertion order.
func (c *Course) Materials() []string {
	return append([]string(nil), c.materials...)
}

// EnrollStudent appends s to the enrolled students. Repeated calls append
// again; duplicate checks belong to the caller.
func (c *Course) EnrollStudent(s *Student) Notification {
	c.students = append(c.students, s)
	return newNotification(NotificationEnrollmentCreated, fmt.Sprintf("%s enrolled in course %s", s.Name, c.Name))
}

// IsEnrolled reports whether s is in the enrolled set.
func (c *Course) IsEnrolled(s *Student) bool {
	for _, enrolled := range c.students {
		if enrolled == s {
			return true
		}
	}
	return false
}

// Students returns the enrolled students in enrollment order.
func (c *Course) Students() []*Student {
	return append([]*Student(nil), c.students...)
}
