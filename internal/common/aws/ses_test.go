// internal/common/aws/ses_test.go
package aws

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESClient_Send(t *testing.T) {
	api := &fakeSES{}
	client := NewSESClientWithAPI(api, "no-reply@technet.dev")

	id, err := client.Send(context.Background(), Email{
		To:      "ada@example.com",
		Subject: "Verify",
		Text:    "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)

	assert.Equal(t, "no-reply@technet.dev", aws.ToString(api.input.Source))
	assert.Equal(t, []string{"ada@example.com"}, api.input.Destination.ToAddresses)
	assert.Equal(t, "hello", aws.ToString(api.input.Message.Body.Text.Data))
	assert.Nil(t, api.input.Message.Body.Html)
}

func TestSESClient_SendError(t *testing.T) {
	client := NewSESClientWithAPI(&fakeSES{err: errors.New("throttled")}, "no-reply@technet.dev")

	_, err := client.Send(context.Background(), Email{To: "ada@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}
