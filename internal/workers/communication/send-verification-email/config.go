// internal/workers/communication/send-verification-email/config.go
package sendverificationemail

import "time"

type Config struct {
	Timeout time.Duration
	// VerifyURL receives the token as the "token" query parameter.
	VerifyURL string
	MaxSends  int
	Window    time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:   10 * time.Second,
		VerifyURL: "https://technet.example.com/verify-email",
		MaxSends:  3,
		Window:    24 * time.Hour,
	}
}
