package session

import (
	"os"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// Credentials is the payload sent to the login endpoint. It is transient:
// it exists only for the duration of a Login call and is never persisted.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	TenantID int64  `json:"tenantId"`
	DeviceID string `json:"deviceId,omitempty"`
}

func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(&c.Password, validation.Required, validation.Length(1, 200)),
		validation.Field(&c.TenantID, validation.Required, validation.Min(int64(1))),
	)
}

// DeviceIdentifier derives a stable device identifier from the host name so
// the backend can correlate refresh tokens per device. Falls back to a
// random identifier when no stable seed is available.
func DeviceIdentifier() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return uuid.NewString()
	}

	if id, err := hashid.NewUUID(host); err == nil {
		return id.String()
	}

	return uuid.NewString()
}
