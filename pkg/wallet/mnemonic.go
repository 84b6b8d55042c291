package wallet

import "strings"

type NewMnemonicOpts struct {
	EntropySize int
}

func (o NewMnemonicOpts) validate() error {
	if o.EntropySize > 0 {
		if o.EntropySize < 128 || o.EntropySize > 256 || o.EntropySize%32 != 0 {
			return ErrInvalidEntropySize
		}
	}
	if o.EntropySize < 0 {
		return ErrInvalidEntropySize
	}
	return nil
}

// NewMnemonic returns a new mnemonic as a list of words. Entropy is read
// from the system's CSPRNG; an error is returned if the source is not
// available, there is no fallback to a weaker generator.
func NewMnemonic(opts NewMnemonicOpts) ([]string, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.EntropySize == 0 {
		opts.EntropySize = 128
	}

	return generateMnemonic(opts.EntropySize)
}

// SanitizeMnemonic trims the provided phrase and collapses any internal
// whitespace run to a single space, returning the resulting word list.
// No case normalization is applied.
func SanitizeMnemonic(phrase string) []string {
	return strings.Fields(phrase)
}

// IsMnemonicValid checks the word count (a multiple of 3 in the [12,24]
// range) before bothering with wordlist membership and checksum validation.
func IsMnemonicValid(mnemonic []string) bool {
	if len(mnemonic) < 12 || len(mnemonic) > 24 || len(mnemonic)%3 != 0 {
		return false
	}
	return isMnemonicValid(mnemonic)
}
