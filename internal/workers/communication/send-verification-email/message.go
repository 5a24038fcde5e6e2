// internal/workers/communication/send-verification-email/message.go
package sendverificationemail

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"

	"technet-workers/internal/common/aws"
)

const subject = "Verify your TechNet email address"

var htmlBody = template.Must(template.New("verify").Parse(`<p>Hi {{.Name}},</p>
<p>Welcome to TechNet! Click the link below to activate your account and start networking with tech professionals.</p>
<p><a href="{{.Link}}">Verify my email</a></p>
<p>If you did not create an account you can ignore this email.</p>`))

func verifyLink(base, token string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse verify url: %w", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func buildEmail(to, name, link string) (aws.Email, error) {
	if name == "" {
		name = "there"
	}

	var html bytes.Buffer
	if err := htmlBody.Execute(&html, struct{ Name, Link string }{name, link}); err != nil {
		return aws.Email{}, err
	}

	return aws.Email{
		To:      to,
		Subject: subject,
		HTML:    html.String(),
		Text: fmt.Sprintf("Hi %s,\n\nWelcome to TechNet! Verify your email address by opening:\n%s\n",
			name, link),
	}, nil
}
