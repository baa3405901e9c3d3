package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/gommon/log"
)

const (
	Prefix        = "FOSTERCARE"
	ParamsPath    = "/fostercare/prod/"
	DriverAWS     = "aws"
	DriverMemory  = "memory"
	productionEnv = "production"
)

type AppConfig struct {
	ListenAddr   string `split_words:"true" default:":7070"`
	DatabasePath string `split_words:"true" default:"fostercare.db"`
	LogLevel     string `split_words:"true" default:"info"`
	MachineID    int64  `split_words:"true" default:"1"`

	// Driver selects the auth and file store implementations, "aws" or "memory".
	Driver string `default:"memory"`

	AwsRegion       string `split_words:"true" default:"us-east-2"`
	S3Bucket        string `envconfig:"S3_BUCKET"`
	PublicBaseURL   string `envconfig:"PUBLIC_BASE_URL"`
	CognitoPoolID   string `split_words:"true"`
	CognitoClientID string `split_words:"true"`

	SessionSecret string        `split_words:"true" default:"change-me"`
	SessionTTL    time.Duration `split_words:"true" default:"1h"`
	SecureCookies bool          `split_words:"true" default:"false"`

	BodyLimit   string   `split_words:"true" default:"30M"`
	CorsOrigins []string `split_words:"true" default:"*"`
}

// Load reads the environment into an AppConfig. Outside production a .env file
// is loaded first when present, in production the SSM parameters are exported.
func Load(ctx context.Context) (*AppConfig, error) {
	if os.Getenv("GO_ENV") == productionEnv {
		if err := loadProdEnv(ctx); err != nil {
			return nil, err
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &AppConfig{}
	if err := envconfig.Process(Prefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse env vars: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) Validate() error {
	switch c.Driver {
	case DriverMemory:
		if c.PublicBaseURL == "" {
			c.PublicBaseURL = "http://localhost" + c.ListenAddr + "/media"
		}
		return nil
	case DriverAWS:
		var missing []string
		if c.S3Bucket == "" {
			missing = append(missing, Prefix+"_S3_BUCKET")
		}
		if c.CognitoPoolID == "" {
			missing = append(missing, Prefix+"_COGNITO_POOL_ID")
		}
		if c.CognitoClientID == "" {
			missing = append(missing, Prefix+"_COGNITO_CLIENT_ID")
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
		}
		return nil
	default:
		return fmt.Errorf("unknown driver %q", c.Driver)
	}
}

// AWS loads the shared SDK configuration for the configured region.
func (c *AppConfig) AWS(ctx context.Context) (aws.Config, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(c.AwsRegion))
	if err != nil {
		return aws.Config{}, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return cfg, nil
}

// ParamsAPI is the part of the SSM client the loader uses.
type ParamsAPI interface {
	GetParametersByPath(ctx context.Context, in *ssm.GetParametersByPathInput, opts ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

func loadProdEnv(ctx context.Context) error {
	region := os.Getenv(Prefix + "_AWS_REGION")
	if region == "" {
		region = "us-east-2"
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return fmt.Errorf("unable to load SDK config: %w", err)
	}

	n, err := ExportParameters(ctx, ssm.NewFromConfig(cfg), ParamsPath)
	if err != nil {
		return err
	}
	log.Debugf("loaded %d prod environment variables", n)
	return nil
}

// ExportParameters sets every parameter under path as an environment variable
// named after the part of the parameter name following path.
func ExportParameters(ctx context.Context, client ParamsAPI, path string) (int, error) {
	count := 0
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(path),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})

	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return count, fmt.Errorf("unable to load prod environment: %w", err)
		}

		for _, param := range out.Parameters {
			key := strings.TrimPrefix(aws.ToString(param.Name), path)
			if err := os.Setenv(key, aws.ToString(param.Value)); err != nil {
				return count, fmt.Errorf("unable to set environment variable: %w", err)
			}
			count++
		}
	}
	return count, nil
}

// ParseLevel maps LOG_LEVEL to a gommon level, defaulting to INFO.
func ParseLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
