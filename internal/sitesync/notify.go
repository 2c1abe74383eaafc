package sitesync

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Summary describes one finished sync run.
type Summary struct {
	RunID     string   `json:"runId"`
	Endpoint  string   `json:"endpoint"`
	Projects  int      `json:"projects"`
	Pages     int      `json:"pages"`
	Artifacts []string `json:"artifacts"`
}

// Notifier announces finished runs on an SNS topic, e.g. to trigger a site
// rebuild.
type Notifier struct {
	Client   SNSAPI
	TopicArn string
}

func (n Notifier) Notify(ctx context.Context, s Summary) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	_, err = n.Client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.TopicArn),
		Subject:  aws.String("Site config updated"),
		Message:  aws.String(string(b)),
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}
	return nil
}
