package service

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/classroom-core/pkg/config"
	appErrors "github.com/noah-isme/classroom-core/pkg/errors"
)

func TestPolicyFromConfig(t *testing.T) {
	p := PolicyFromConfig(config.PolicyConfig{StrictTransitions: true, EnforceGradeRange: true, MinGrade: 1, MaxGrade: 12})
	assert.True(t, p.StrictTransitions)
	assert.False(t, p.RejectDuplicateEnrollment)
	assert.NoError(t, p.checkGrade(12))
	assert.True(t, errors.Is(p.checkGrade(0), appErrors.ErrInvalidGrade))
}

func TestZeroPolicyAcceptsAnyGrade(t *testing.T) {
	var p Policy
	assert.NoError(t, p.checkGrade(-1000))
	assert.NoError(t, p.checkGrade(1000))
}

func TestLocksAcquireOverlappingKeys(t *testing.T) {
	locks := NewLocks()
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			release := locks.acquire("course", "student")
			counter++
			release()
		}()
		go func() {
			defer wg.Done()
			release := locks.acquire("student", "course", "student")
			counter++
			release()
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, counter)
}
