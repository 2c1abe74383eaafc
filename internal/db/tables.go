package db

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

func ConfigTableName() string {
	return os.Getenv("TABLE_NAME")
}

// ConfigTableParameter names an SSM parameter holding the table name, used
// when TABLE_NAME is not set.
func ConfigTableParameter() string {
	return os.Getenv("TABLE_NAME_PARAMETER")
}

type SSMClient interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// ResolveTableName returns TABLE_NAME, falling back to the SSM parameter
// named by TABLE_NAME_PARAMETER.
func ResolveTableName(ctx context.Context, client SSMClient) (string, error) {
	if t := strings.TrimSpace(ConfigTableName()); t != "" {
		return t, nil
	}
	param := strings.TrimSpace(ConfigTableParameter())
	if param == "" {
		return "", fmt.Errorf("TABLE_NAME is not set")
	}
	if client == nil {
		return "", fmt.Errorf("TABLE_NAME is not set and no ssm client for %s", param)
	}

	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{Name: aws.String(param)})
	if err != nil {
		return "", fmt.Errorf("ssm get parameter %s: %w", param, err)
	}
	if out.Parameter == nil || strings.TrimSpace(aws.ToString(out.Parameter.Value)) == "" {
		return "", fmt.Errorf("ssm parameter %s is empty", param)
	}
	return strings.TrimSpace(aws.ToString(out.Parameter.Value)), nil
}
