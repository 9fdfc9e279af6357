package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	s := Load()

	assert.Equal(t, 0.5, s.ConfidenceThreshold)
	assert.Equal(t, 60*time.Second, s.SLADelay)
	assert.Equal(t, 120*time.Second, s.OrderPenaltyAfter)
	assert.True(t, s.OrderPenaltyEnabled)
	assert.Equal(t, "postgres", s.StoreDriver)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CONFIDENCE_THRESHOLD", "0.8")
	t.Setenv("SLA_DELAY", "5s")
	t.Setenv("ORDER_PENALTY_ENABLED", "false")
	t.Setenv("STORE_DRIVER", "memory")

	s := Load()

	assert.Equal(t, 0.8, s.ConfidenceThreshold)
	assert.Equal(t, 5*time.Second, s.SLADelay)
	assert.False(t, s.OrderPenaltyEnabled)
	assert.Equal(t, "memory", s.StoreDriver)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("CONFIDENCE_THRESHOLD", "abc")
	t.Setenv("SLA_DELAY", "soon")

	s := Load()

	assert.Equal(t, 0.5, s.ConfidenceThreshold)
	assert.Equal(t, 60*time.Second, s.SLADelay)
}
