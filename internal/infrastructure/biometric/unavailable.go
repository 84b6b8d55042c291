package biometric

import (
	"context"

	"github.com/etherkeep/etherkeep-daemon/internal/core/domain"
	"github.com/etherkeep/etherkeep-daemon/internal/core/ports"
)

type unavailableAuthenticator struct{}

// NewUnavailableAuthenticator returns the BiometricAuthenticator for hosts
// without biometric hardware, like the headless machines the daemon usually
// runs on. It reports unavailability and refuses every operation, so callers
// exercise the same degraded path a phone without enrolled biometrics takes.
func NewUnavailableAuthenticator() ports.BiometricAuthenticator {
	return unavailableAuthenticator{}
}

func (a unavailableAuthenticator) Available() bool {
	return false
}

func (a unavailableAuthenticator) Enroll(_ []byte) error {
	return domain.ErrBiometricsUnavailable
}

func (a unavailableAuthenticator) Authenticate(
	_ context.Context, _ string,
) ([]byte, error) {
	return nil, domain.ErrBiometricsUnavailable
}

func (a unavailableAuthenticator) Remove() error {
	return domain.ErrBiometricsUnavailable
}
