package deepseek

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProvider(t *testing.T) {
	p := NewProvider("key", "")

	assert.Equal(t, "deepseek", p.Name())
	assert.Equal(t, "deepseek-chat", p.DefaultModel())
	assert.Contains(t, p.AvailableModels(), "deepseek-reasoner")
	assert.True(t, p.IsConfigured())
}
