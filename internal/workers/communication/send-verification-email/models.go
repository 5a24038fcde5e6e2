// internal/workers/communication/send-verification-email/models.go
package sendverificationemail

import "time"

type Input struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"fullName,omitempty"`
	// Token is generated when empty.
	Token string `json:"token,omitempty"`
}

type Output struct {
	MessageID        string    `json:"messageId"`
	Token            string    `json:"verificationToken"`
	Attempt          int       `json:"attempt"`
	RemainingResends int       `json:"remainingResends"`
	SentAt           time.Time `json:"sentAt"`
}
