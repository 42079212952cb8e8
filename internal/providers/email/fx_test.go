package email

import (
	"testing"

	"github.com/smallbiznis/sellapp/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromConfigDefaultsToNoOp(t *testing.T) {
	t.Setenv("SMTP_HOST", "")

	provider := NewFromConfig(config.Load())
	assert.IsType(t, &NoOpProvider{}, provider)
}

func TestNewFromConfigSelectsSMTPWhenHostSet(t *testing.T) {
	t.Setenv("SMTP_HOST", "smtp.example.com")

	provider := NewFromConfig(config.Load())
	smtp, ok := provider.(*SMTPProvider)
	require.True(t, ok)
	assert.Equal(t, "smtp.example.com", smtp.cfg.Host)
}
