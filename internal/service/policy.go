package service

import (
	"fmt"
	"sort"
	"sync"

	"github.com/noah-isme/classroom-core/pkg/config"
	appErrors "github.com/noah-isme/classroom-core/pkg/errors"
)

// Policy holds the opt-in hardenings. The zero value keeps the permissive behaviour:
// duplicate enrollments append, missing materials are ignored, submit and evaluate
// overwrite prior state and grades are not range checked.
type Policy struct {
	RejectDuplicateEnrollment bool
	StrictMaterialRemoval     bool
	StrictTransitions         bool
	EnforceGradeRange         bool
	MinGrade                  int
	MaxGrade                  int
	RequireCourseOwnership    bool
}

// PolicyFromConfig maps configuration flags onto a Policy.
func PolicyFromConfig(cfg config.PolicyConfig) Policy {
	return Policy{
		RejectDuplicateEnrollment: cfg.RejectDuplicateEnrollment,
		StrictMaterialRemoval:     cfg.StrictMaterialRemoval,
		StrictTransitions:         cfg.StrictTransitions,
		EnforceGradeRange:         cfg.EnforceGradeRange,
		MinGrade:                  cfg.MinGrade,
		MaxGrade:                  cfg.MaxGrade,
		RequireCourseOwnership:    cfg.RequireCourseOwnership,
	}
}

func (p Policy) checkGrade(grade int) error {
	if !p.EnforceGradeRange {
		return nil
	}
	if grade < p.MinGrade || grade > p.MaxGrade {
		return appErrors.Clone(appErrors.ErrInvalidGrade, fmt.Sprintf("grade %d outside %d..%d", grade, p.MinGrade, p.MaxGrade))
	}
	return nil
}

// Locks serialises mutations per aggregate ID. Services mutating the same
// aggregates must share one Locks value.
type Locks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLocks constructs an empty lock set.
func NewLocks() *Locks {
	return &Locks{locks: make(map[string]*sync.Mutex)}
}

// acquire locks every key in a stable order and returns the release func.
func (k *Locks) acquire(keys ...string) func() {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	held := make([]*sync.Mutex, 0, len(sorted))
	for i, key := range sorted {
		if i > 0 && key == sorted[i-1] {
			continue
		}
		k.mu.Lock()
		l, ok := k.locks[key]
		if !ok {
			l = &sync.Mutex{}
			k.locks[key] = l
		}
		k.mu.Unlock()
		l.Lock()
		held = append(held, l)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
