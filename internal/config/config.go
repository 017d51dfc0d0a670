package config

import "time"

type Config struct {
	LogLevel string `flag:"log-level"`

	DatabaseURL string `flag:"database-url"`

	ListenAddr  string `flag:"listen-addr"`
	MetricsAddr string `flag:"metrics-addr"`

	SessionSecret string        `flag:"session-secret"`
	SessionTTL    time.Duration `flag:"session-ttl"`

	NATSURL  string `flag:"nats-url"`
	NATSInit bool   `flag:"nats-init"`

	S3Bucket    string `flag:"s3-bucket"`
	S3Region    string `flag:"s3-region"`
	S3Endpoint  string `flag:"s3-endpoint"`
	S3PublicURL string `flag:"s3-public-url"`
	S3AccessKey string `flag:"s3-access-key"`
	S3SecretKey string `flag:"s3-secret-key"`

	APIURL   string `flag:"api-url"`
	APIToken string `flag:"api-token"`
}
