package email

import (
	"testing"

	"github.com/deppfellow/fieldservice/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_AllTemplatesWithPreviewData(t *testing.T) {
	for name, data := range PreviewData {
		t.Run(string(name), func(t *testing.T) {
			html, err := Render(name, data)
			require.NoError(t, err)
			assert.Contains(t, html, data["UserName"])
		})
	}
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Render("missing", nil)
	assert.Error(t, err)
}

func TestSendEmail_DisabledWithoutAPIKey(t *testing.T) {
	logger := zerolog.Nop()
	cfg := &config.Config{Integration: config.IntegrationConfig{MailFrom: config.DefaultMailFrom}}

	c := NewClient(cfg, &logger)

	assert.False(t, c.Enabled())
	assert.NoError(t, c.SendWelcomeEmail("maria@x.com", "Maria", "cliente"))
	assert.NoError(t, c.SendAccountStatusEmail("maria@x.com", "Maria", "INATIVO"))
}
