package cmd_test

import (
	"testing"
	"time"

	"storefront/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := cmd.LoadConfig(envOf(nil))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "0.18", cfg.TaxRate.String())
	assert.Equal(t, "10000", cfg.FreeShippingThreshold.String())
	assert.Equal(t, "500", cfg.FlatShippingFee.String())
	assert.Equal(t, "ORD", cfg.OrderNumberPrefix)
	assert.Equal(t, 5*time.Second, cfg.NotificationTimeout)
	assert.Equal(t, 50, cfg.NotificationBatchSize)
	assert.False(t, cfg.EmailEnabled())
	assert.False(t, cfg.WhatsAppEnabled())
	assert.False(t, cfg.KafkaEnabled())
	assert.Equal(t, "host=localhost port=5432 user=postgres password= dbname=storefront sslmode=disable", cfg.DSN())
}

func TestLoadConfig_Overrides(t *testing.T) {
	cfg, err := cmd.LoadConfig(envOf(map[string]string{
		"TAX_RATE":                "0.05",
		"NOTIFICATION_TIMEOUT":    "750ms",
		"NOTIFICATION_BATCH_SIZE": "10",
		"SMTP_HOST":               "smtp.example.com",
		"WHATSAPP_API_URL":        "https://wa.example.com/send",
		"WHATSAPP_API_TOKEN":      "secret",
		"KAFKA_HOST":              "kafka-1:9092,kafka-2:9092",
	}))

	require.NoError(t, err)
	assert.Equal(t, "0.05", cfg.TaxRate.String())
	assert.Equal(t, 750*time.Millisecond, cfg.NotificationTimeout)
	assert.Equal(t, 10, cfg.NotificationBatchSize)
	assert.True(t, cfg.EmailEnabled())
	assert.False(t, cfg.WhatsAppEnabled(), "admin number is still missing")
	assert.True(t, cfg.KafkaEnabled())
}

func TestLoadConfig_ReportsEveryMalformedValue(t *testing.T) {
	_, err := cmd.LoadConfig(envOf(map[string]string{
		"TAX_RATE":             "eighteen",
		"SMTP_PORT":            "smtp",
		"NOTIFICATION_TIMEOUT": "soon",
	}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "TAX_RATE")
	assert.Contains(t, err.Error(), "SMTP_PORT")
	assert.Contains(t, err.Error(), "NOTIFICATION_TIMEOUT")
}
