package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
	Checkout CheckoutConfig
	Payment  PaymentConfig
	Kafka    KafkaConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Port           string        `envconfig:"PORT" required:"true"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"15s"`
	// deployment identity echoed by the payment processor; events carrying another tag are ignored
	AppTag string `envconfig:"APP_TAG" default:"gocart"`
}

type DBConfig struct {
	Host           string        `envconfig:"DB_HOST" default:"localhost"`
	Port           string        `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER" required:"true"`
	Password       string        `envconfig:"DB_PASSWORD" required:"true"`
	DBName         string        `envconfig:"DB_NAME" required:"true"`
	SSLMode        string        `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone       string        `envconfig:"DB_TIMEZONE" default:"Asia/Tokyo"`
	MaxConns       int32         `envconfig:"DB_MAX_CONNS" default:"20"`
	ConnectTimeout time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"5s"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Tokyo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"32400"` // 9*60*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

type CheckoutConfig struct {
	ShippingFee decimal.Decimal `envconfig:"SHIPPING_FEE" default:"5.00"`
	// plan whose holders pay no shipping fee
	ShippingWaiverPlan string `envconfig:"SHIPPING_WAIVER_PLAN" default:"pro"`
	// plan that satisfies members-only coupons
	MemberPlan     string        `envconfig:"MEMBER_PLAN" default:"pro"`
	IdempotencyTTL time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"24h"`
}

type PaymentConfig struct {
	Currency      string        `envconfig:"CURRENCY" default:"usd"`
	SecretKey     string        `envconfig:"STRIPE_SECRET_KEY"`
	WebhookSecret string        `envconfig:"STRIPE_WEBHOOK_SECRET"`
	SuccessURL    string        `envconfig:"PAYMENT_SUCCESS_URL" default:"http://localhost:3000/loading?nextUrl=orders"`
	CancelURL     string        `envconfig:"PAYMENT_CANCEL_URL" default:"http://localhost:3000/cart"`
	SessionTTL    time.Duration `envconfig:"PAYMENT_SESSION_TTL" default:"31m"`
	ExpiryGrace   time.Duration `envconfig:"PAYMENT_EXPIRY_GRACE" default:"10m"`
	Timeout       time.Duration `envconfig:"PAYMENT_TIMEOUT" default:"10s"`
	MaxRetries    int64         `envconfig:"PAYMENT_MAX_RETRIES" default:"2"`
	// webhook signature timestamp tolerance
	SignatureTolerance time.Duration `envconfig:"STRIPE_SIGNATURE_TOLERANCE" default:"5m"`
	BreakerFailures    uint32        `envconfig:"PAYMENT_BREAKER_FAILURES" default:"5"`
	BreakerOpenTimeout time.Duration `envconfig:"PAYMENT_BREAKER_OPEN_TIMEOUT" default:"30s"`
}

type KafkaConfig struct {
	// empty disables publishing; outbox rows stay unpublished
	Brokers []string `envconfig:"KAFKA_BROKERS"`
	Topic   string   `envconfig:"KAFKA_ORDER_TOPIC" default:"gocart.orders"`
}

type WorkerConfig struct {
	Enabled             bool          `envconfig:"WORKERS_ENABLED" default:"true"`
	ExpirySweepInterval time.Duration `envconfig:"EXPIRY_SWEEP_INTERVAL" default:"1m"`
	ExpirySweepBatch    int32         `envconfig:"EXPIRY_SWEEP_BATCH" default:"100"`
	OutboxPollInterval  time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"2s"`
	OutboxBatch         int32         `envconfig:"OUTBOX_BATCH" default:"100"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

// Stripe rejects checkout sessions expiring less than 30 minutes or more than 24 hours out.
const (
	MinSessionTTL = 30 * time.Minute
	MaxSessionTTL = 24 * time.Hour
	// SessionExpiryLeeway covers the time between creating a session row and the processor call.
	SessionExpiryLeeway = time.Minute
)

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Payment.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid payment config: %w", err)
	}
	return cfg, nil
}

func (c PaymentConfig) Validate() error {
	if c.SessionTTL < MinSessionTTL || c.SessionTTL > MaxSessionTTL {
		return fmt.Errorf("PAYMENT_SESSION_TTL must be between %s and %s, got %s", MinSessionTTL, MaxSessionTTL, c.SessionTTL)
	}
	// the sweeper must not cancel before the processor session can still complete
	if c.ExpiryGrace < SessionExpiryLeeway {
		return fmt.Errorf("PAYMENT_EXPIRY_GRACE must be at least %s, got %s", SessionExpiryLeeway, c.ExpiryGrace)
	}
	return nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:           "8889", // Test port
			RequestTimeout: 15 * time.Second,
			AppTag:         "gocart",
		},
		DB: DBConfig{
			Host:           "localhost",
			Port:           "15433", // Test DB port
			User:           "test",
			Password:       "test",
			DBName:         "test_db",
			SSLMode:        "disable",
			TimeZone:       "Asia/Tokyo",
			MaxConns:       10,
			ConnectTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Tokyo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 32400,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Checkout: CheckoutConfig{
			ShippingFee:        decimal.RequireFromString("5.00"),
			ShippingWaiverPlan: "pro",
			MemberPlan:         "pro",
			IdempotencyTTL:     24 * time.Hour,
		},
		Payment: PaymentConfig{
			Currency:           "usd",
			SecretKey:          "sk_test_dummy",
			WebhookSecret:      "whsec_test_secret",
			SuccessURL:         "http://localhost:3000/loading?nextUrl=orders",
			CancelURL:          "http://localhost:3000/cart",
			SessionTTL:         31 * time.Minute,
			ExpiryGrace:        10 * time.Minute,
			Timeout:            5 * time.Second,
			MaxRetries:         0,
			SignatureTolerance: 5 * time.Minute,
			BreakerFailures:    5,
			BreakerOpenTimeout: 30 * time.Second,
		},
		Kafka: KafkaConfig{
			Topic: "gocart.orders",
		},
		Worker: WorkerConfig{
			Enabled:             false,
			ExpirySweepInterval: time.Minute,
			ExpirySweepBatch:    100,
			OutboxPollInterval:  2 * time.Second,
			OutboxBatch:         100,
		},
	}
}
