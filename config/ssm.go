package config

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// SSMParameterPathKey names the env var holding the SSM path prefix
// (e.g. "/portfolio/prod"). Loading is skipped when it is unset.
const SSMParameterPathKey = "AWS_SSM_PARAMETER_PATH"

// LoadSSM reads every parameter under the configured SSM path and merges
// them into config. The final path segment becomes the key, so
// "/portfolio/prod/JWT_SECRET" fills JWT_SECRET.
func LoadSSM(ctx context.Context, config map[string]string) error {
	prefix := GetString(config, SSMParameterPathKey, "")
	if prefix == "" {
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}

	values, err := fetchParameters(ctx, ssm.NewFromConfig(awsCfg), prefix)
	if err != nil {
		return err
	}

	Merge(config, values)
	return nil
}

func fetchParameters(ctx context.Context, client ssm.GetParametersByPathAPIClient, prefix string) (map[string]string, error) {
	input := &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	}

	values := make(map[string]string)
	paginator := ssm.NewGetParametersByPathPaginator(client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("get parameters under %s: %w", prefix, err)
		}
		for _, param := range page.Parameters {
			name := strings.TrimSpace(path.Base(aws.ToString(param.Name)))
			if name == "" || name == "/" || name == "." {
				continue
			}
			values[name] = aws.ToString(param.Value)
		}
	}

	return values, nil
}
