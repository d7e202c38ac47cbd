package email

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// SESAPI is the part of the SES v2 client the transport uses.
type SESAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type SESTransport struct {
	client SESAPI
}

// NewSESTransport loads the AWS SDK config for region. Static keys are used
// when both are set; otherwise the default credential chain applies.
func NewSESTransport(ctx context.Context, region, accessKeyID, secretAccessKey string) (*SESTransport, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if accessKeyID != "" && secretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	return NewSESTransportWithClient(sesv2.NewFromConfig(cfg)), nil
}

func NewSESTransportWithClient(client SESAPI) *SESTransport {
	return &SESTransport{client: client}
}

func (t *SESTransport) Name() string { return "ses" }

func (t *SESTransport) Send(ctx context.Context, msg Message) error {
	body := &types.Body{
		Text: &types.Content{Data: aws.String(msg.Text), Charset: aws.String("UTF-8")},
	}
	if msg.HTML != "" {
		body.Html = &types.Content{Data: aws.String(msg.HTML), Charset: aws.String("UTF-8")}
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(msg.From),
		Destination:      &types.Destination{ToAddresses: []string{msg.To}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
				Body:    body,
			},
		},
	}
	if msg.ReplyTo != "" {
		input.ReplyToAddresses = []string{msg.ReplyTo}
	}

	if _, err := t.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("ses send email: %w", err)
	}
	return nil
}
