package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsCollector(t *testing.T) {
	mc := NewMetricsCollector()

	assert.Equal(t, 0, mc.OperationCount("create_comment"))

	mc.AddOperationLatency("create_comment", 3*time.Millisecond)
	mc.AddOperationLatency("create_comment", 5*time.Millisecond)
	mc.AddOperationLatency("delete_comment", time.Millisecond)

	assert.Equal(t, 2, mc.OperationCount("create_comment"))
	assert.Equal(t, 1, mc.OperationCount("delete_comment"))
	assert.Equal(t, 0, mc.OperationCount("unknown_operation"))

	assert.Greater(t, mc.Uptime(), time.Duration(0))
}
