package config

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("GO_ENV", "")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.ListenAddr)
	assert.Equal(t, DriverMemory, cfg.Driver)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"*"}, cfg.CorsOrigins)
	assert.Equal(t, "http://localhost:7070/media", cfg.PublicBaseURL)
}

func TestLoad_FromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("GO_ENV", "")
	t.Setenv("FOSTERCARE_LISTEN_ADDR", ":9000")
	t.Setenv("FOSTERCARE_SESSION_TTL", "15m")
	t.Setenv("FOSTERCARE_CORS_ORIGINS", "https://a.org,https://b.org")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, 15*time.Minute, cfg.SessionTTL)
	assert.Equal(t, []string{"https://a.org", "https://b.org"}, cfg.CorsOrigins)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("GO_ENV", "")
	t.Setenv("FOSTERCARE_DATABASE_PATH", "")
	require.NoError(t, os.Unsetenv("FOSTERCARE_DATABASE_PATH"))
	require.NoError(t, os.WriteFile(".env", []byte("FOSTERCARE_DATABASE_PATH=/data/care.db\n"), 0o600))

	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/data/care.db", cfg.DatabasePath)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     AppConfig
		wantErr string
	}{
		{name: "memory", cfg: AppConfig{Driver: DriverMemory}},
		{
			name:    "aws missing settings",
			cfg:     AppConfig{Driver: DriverAWS, S3Bucket: "b"},
			wantErr: "FOSTERCARE_COGNITO_POOL_ID, FOSTERCARE_COGNITO_CLIENT_ID",
		},
		{
			name: "aws complete",
			cfg:  AppConfig{Driver: DriverAWS, S3Bucket: "b", CognitoPoolID: "p", CognitoClientID: "c"},
		},
		{name: "unknown", cfg: AppConfig{Driver: "gcp"}, wantErr: `unknown driver "gcp"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

type fakeParams struct {
	pages [][]types.Parameter
	calls int
}

func (f *fakeParams) GetParametersByPath(_ context.Context, _ *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	out := &ssm.GetParametersByPathOutput{Parameters: f.pages[f.calls]}
	f.calls++
	if f.calls < len(f.pages) {
		out.NextToken = aws.String("more")
	}
	return out, nil
}

func TestExportParameters(t *testing.T) {
	t.Setenv("FOSTERCARE_S3_BUCKET", "")
	t.Setenv("FOSTERCARE_DRIVER", "")

	client := &fakeParams{pages: [][]types.Parameter{
		{{Name: aws.String(ParamsPath + "FOSTERCARE_S3_BUCKET"), Value: aws.String("care-files")}},
		{{Name: aws.String(ParamsPath + "FOSTERCARE_DRIVER"), Value: aws.String("aws")}},
	}}

	n, err := ExportParameters(context.Background(), client, ParamsPath)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "care-files", os.Getenv("FOSTERCARE_S3_BUCKET"))
	assert.Equal(t, "aws", os.Getenv("FOSTERCARE_DRIVER"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.DEBUG, ParseLevel("DEBUG"))
	assert.Equal(t, log.INFO, ParseLevel(""))
	assert.Equal(t, log.ERROR, ParseLevel("error"))
}

// chdir switches the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
