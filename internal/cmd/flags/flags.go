package flags

import (
	"fmt"
	"slices"
	"time"

	"github.com/urfave/cli/v3"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

// TODO: extract custom EnumFlag
var LogLevel = &cli.StringFlag{
	Name:    "log-level",
	Aliases: []string{"l"},
	Usage:   "The level of the logs",
	Value:   "info",
	Validator: func(value string) error {
		if !slices.Contains(validLogLevels, value) {
			return fmt.Errorf("invalid log level: %s, allowed values are: %s", value, validLogLevels)
		}
		return nil
	},
	Sources: cli.EnvVars("LOG_LEVEL"),
}

var DatabaseURL = &cli.StringFlag{
	Name:     "database-url",
	Aliases:  []string{"d"},
	Usage:    "The PostgreSQL connection string",
	Required: true,
	Sources:  cli.EnvVars("DATABASE_URL"),
}

var ListenAddr = &cli.StringFlag{
	Name:    "listen-addr",
	Usage:   "The address the API server listens on",
	Value:   ":8888",
	Sources: cli.EnvVars("LISTEN_ADDR"),
}

var MetricsAddr = &cli.StringFlag{
	Name:    "metrics-addr",
	Usage:   "The address the metrics and health server listens on",
	Value:   ":8080",
	Sources: cli.EnvVars("METRICS_ADDR"),
}

var SessionSecret = &cli.StringFlag{
	Name:     "session-secret",
	Usage:    "The secret session tokens are signed with",
	Required: true,
	Sources:  cli.EnvVars("SESSION_SECRET"),
}

var SessionTTL = &cli.DurationFlag{
	Name:    "session-ttl",
	Usage:   "How long a session stays valid",
	Value:   7 * 24 * time.Hour,
	Sources: cli.EnvVars("SESSION_TTL"),
}

var NATSURL = &cli.StringFlag{
	Name:    "nats-url",
	Aliases: []string{"n"},
	Usage:   "The URL of the NATS server, events are not published when empty",
	Sources: cli.EnvVars("NATS_URL"),
}

var InitNATS = &cli.BoolFlag{
	Name:        "nats-init",
	Aliases:     []string{"i"},
	Usage:       "Initialize the NATS server: create the event stream",
	DefaultText: "false",
	Value:       false,
	Sources:     cli.EnvVars("NATS_INIT"),
}

var S3Bucket = &cli.StringFlag{
	Name:    "s3-bucket",
	Usage:   "The bucket uploaded images are stored in, uploads are disabled when empty",
	Sources: cli.EnvVars("S3_BUCKET"),
}

var S3Region = &cli.StringFlag{
	Name:    "s3-region",
	Usage:   "The region of the bucket",
	Value:   "us-east-1",
	Sources: cli.EnvVars("S3_REGION", "AWS_REGION"),
}

var S3Endpoint = &cli.StringFlag{
	Name:    "s3-endpoint",
	Usage:   "A custom S3-compatible endpoint",
	Sources: cli.EnvVars("S3_ENDPOINT"),
}

var S3PublicURL = &cli.StringFlag{
	Name:    "s3-public-url",
	Usage:   "The base URL uploaded images are served from",
	Sources: cli.EnvVars("S3_PUBLIC_URL"),
}

var S3AccessKey = &cli.StringFlag{
	Name:    "s3-access-key",
	Usage:   "The access key of the bucket",
	Sources: cli.EnvVars("S3_ACCESS_KEY", "AWS_ACCESS_KEY_ID"),
}

var S3SecretKey = &cli.StringFlag{
	Name:    "s3-secret-key",
	Usage:   "The secret key of the bucket",
	Sources: cli.EnvVars("S3_SECRET_KEY", "AWS_SECRET_ACCESS_KEY"),
}

var APIURL = &cli.StringFlag{
	Name:    "api-url",
	Usage:   "The base URL of a running API server",
	Value:   "http://localhost:8888",
	Sources: cli.EnvVars("GROUPME_API_URL"),
}

var APIToken = &cli.StringFlag{
	Name:    "api-token",
	Usage:   "A session token to authenticate with",
	Sources: cli.EnvVars("GROUPME_API_TOKEN"),
}
