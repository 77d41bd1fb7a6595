package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	LogLevel string
	LogFile  string

	TaxRate               decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
	OrderNumberPrefix     string

	NotificationTimeout   time.Duration
	NotificationBatchSize int

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	WhatsAppAPIURL      string
	WhatsAppAPIToken    string
	AdminWhatsAppNumber string

	KafkaHost              string
	KafkaOrderChangedTopic string
}

// DSN is the PostgreSQL connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) EmailEnabled() bool {
	return c.SMTPHost != ""
}

func (c Config) WhatsAppEnabled() bool {
	return c.WhatsAppAPIURL != "" && c.WhatsAppAPIToken != "" && c.AdminWhatsAppNumber != ""
}

func (c Config) KafkaEnabled() bool {
	return c.KafkaHost != ""
}

// LoadConfig reads every setting through getenv and applies defaults.
// All malformed values are reported together.
func LoadConfig(getenv func(string) string) (Config, error) {
	env := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	var problems []error
	dec := func(key, def string) decimal.Decimal {
		d, err := decimal.NewFromString(env(key, def))
		if err != nil {
			problems = append(problems, fmt.Errorf("%s: %w", key, err))
		}
		return d
	}
	integer := func(key string, def int) int {
		n, err := strconv.Atoi(env(key, strconv.Itoa(def)))
		if err != nil {
			problems = append(problems, fmt.Errorf("%s: %w", key, err))
		}
		return n
	}
	duration := func(key string, def time.Duration) time.Duration {
		d, err := time.ParseDuration(env(key, def.String()))
		if err != nil {
			problems = append(problems, fmt.Errorf("%s: %w", key, err))
		}
		return d
	}

	cfg := Config{
		HTTPPort:   env("HTTP_PORT", "8080"),
		DBHost:     env("DB_HOST", "localhost"),
		DBPort:     env("DB_PORT", "5432"),
		DBUser:     env("DB_USER", "postgres"),
		DBPassword: getenv("DB_PASSWORD"),
		DBName:     env("DB_NAME", "storefront"),
		DBSslMode:  env("DB_SSLMODE", "disable"),

		LogLevel: env("LOG_LEVEL", "info"),
		LogFile:  env("LOG_FILE", ""),

		TaxRate:               dec("TAX_RATE", "0.18"),
		FreeShippingThreshold: dec("FREE_SHIPPING_THRESHOLD", "10000"),
		FlatShippingFee:       dec("FLAT_SHIPPING_FEE", "500"),
		OrderNumberPrefix:     env("ORDER_NUMBER_PREFIX", "ORD"),

		NotificationTimeout:   duration("NOTIFICATION_TIMEOUT", 5*time.Second),
		NotificationBatchSize: integer("NOTIFICATION_BATCH_SIZE", 50),

		SMTPHost:     env("SMTP_HOST", ""),
		SMTPPort:     integer("SMTP_PORT", 587),
		SMTPUser:     env("SMTP_USER", ""),
		SMTPPassword: getenv("SMTP_PASSWORD"),
		SMTPFrom:     env("SMTP_FROM", ""),

		WhatsAppAPIURL:      env("WHATSAPP_API_URL", ""),
		WhatsAppAPIToken:    env("WHATSAPP_API_TOKEN", ""),
		AdminWhatsAppNumber: env("ADMIN_WHATSAPP_NUMBER", ""),

		KafkaHost:              env("KAFKA_HOST", ""),
		KafkaOrderChangedTopic: env("KAFKA_ORDER_CHANGED_TOPIC", "orders.changed"),
	}

	if err := errors.Join(problems...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
