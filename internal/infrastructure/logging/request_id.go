package logging

import (
	"strings"

	"github.com/google/uuid"
)

// RequestIDHeader is the header echoed back on every response
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLength = 128

// GenerateRequestID returns a random UUIDv4 request id
func GenerateRequestID() string {
	return uuid.NewString()
}

// ResolveRequestID keeps a caller supplied id when it is printable and short,
// otherwise it generates a new one
func ResolveRequestID(incoming string) string {
	incoming = strings.TrimSpace(incoming)
	if incoming == "" || len(incoming) > maxRequestIDLength {
		return GenerateRequestID()
	}
	for _, r := range incoming {
		if r < 0x21 || r > 0x7e {
			return GenerateRequestID()
		}
	}
	return incoming
}
