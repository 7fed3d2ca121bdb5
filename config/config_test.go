package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ReadsEnvironment(t *testing.T) {
	t.Setenv("PORTFOLIO_TEST_KEY", "a=b")

	c := New()
	assert.Equal(t, "a=b", c["PORTFOLIO_TEST_KEY"])
}

func TestGetters(t *testing.T) {
	c := map[string]string{
		"PORT":      "9090",
		"BAD_INT":   "nine",
		"AUTO":      "true",
		"BAD_BOOL":  "maybe",
		"TTL":       "90m",
		"BAD_TTL":   "-1h",
		"ORIGINS":   "https://a.dev, ,https://b.dev",
		"EMPTY_VAL": "",
	}

	assert.Equal(t, "9090", GetString(c, "PORT", "8080"))
	assert.Equal(t, "8080", GetString(c, "MISSING", "8080"))
	assert.Equal(t, "fallback", GetString(c, "EMPTY_VAL", "fallback"))
	assert.Equal(t, "x", GetString(nil, "PORT", "x"))

	assert.Equal(t, 9090, GetInt(c, "PORT", 1))
	assert.Equal(t, 1, GetInt(c, "BAD_INT", 1))

	assert.True(t, GetBool(c, "AUTO", false))
	assert.True(t, GetBool(c, "BAD_BOOL", true))

	assert.Equal(t, 90*time.Minute, GetDuration(c, "TTL", time.Hour))
	assert.Equal(t, time.Hour, GetDuration(c, "BAD_TTL", time.Hour))

	assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, GetList(c, "ORIGINS"))
	assert.Nil(t, GetList(c, "MISSING"))
}

func TestMerge_DoesNotOverrideExplicitValues(t *testing.T) {
	c := map[string]string{"JWT_SECRET": "from-env", "EMPTY": ""}

	Merge(c, map[string]string{"JWT_SECRET": "from-ssm", "EMPTY": "filled", "NEW": "value"})

	assert.Equal(t, "from-env", c["JWT_SECRET"])
	assert.Equal(t, "filled", c["EMPTY"])
	assert.Equal(t, "value", c["NEW"])
}

type fakeSSM struct {
	pages [][]types.Parameter
	err   error
	calls int
}

func (f *fakeSSM) GetParametersByPath(_ context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	page := f.pages[f.calls]
	f.calls++

	out := &ssm.GetParametersByPathOutput{Parameters: page}
	if f.calls < len(f.pages) {
		out.NextToken = aws.String("next")
	}
	return out, nil
}

func TestFetchParameters_PagesAndStripsPrefix(t *testing.T) {
	client := &fakeSSM{pages: [][]types.Parameter{
		{{Name: aws.String("/portfolio/prod/JWT_SECRET"), Value: aws.String("s3cret")}},
		{{Name: aws.String("/portfolio/prod/SMTP_PASSWORD"), Value: aws.String("pw")}},
	}}

	values, err := fetchParameters(context.Background(), client, "/portfolio/prod")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"JWT_SECRET": "s3cret", "SMTP_PASSWORD": "pw"}, values)
	assert.Equal(t, 2, client.calls)
}

func TestFetchParameters_Error(t *testing.T) {
	client := &fakeSSM{err: errors.New("access denied")}

	_, err := fetchParameters(context.Background(), client, "/portfolio/prod")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestLoadSSM_SkippedWithoutPath(t *testing.T) {
	c := map[string]string{}
	require.NoError(t, LoadSSM(context.Background(), c))
	assert.Empty(t, c)
}
