package ports

import "context"

// BiometricAuthenticator abstracts the platform biometric facility: a
// prompt plus a credential slot released only after a successful prompt,
// the way hardware keystores gate key material. Whether and when to invoke
// the prompt is always the caller's decision, availability never implies
// authentication.
type BiometricAuthenticator interface {
	// Available returns whether biometric hardware is present and enrolled.
	Available() bool
	// Enroll stores the credential behind the biometric gate.
	Enroll(credential []byte) error
	// Authenticate shows the platform prompt with the given reason and blocks
	// until the user responds, the prompt times out or ctx is cancelled. On
	// success it releases the enrolled credential; a dismissed or failed
	// prompt returns domain.ErrAuthCancelled and releases nothing.
	Authenticate(ctx context.Context, reason string) ([]byte, error)
	// Remove drops the enrolled credential.
	Remove() error
}
