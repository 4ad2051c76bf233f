package blake2snet

import (
	"errors"

	"github.com/jefferyq2/blake2s-net/blake2s"
)

// Argument bounds enforced by the one-shot API. They are looser than the
// BLAKE2s wire format in places: a 64-byte key or output size passes this
// layer and is then rejected by the blake2s package with its own error. Both
// layers check independently so their bounds stay auditable against each
// other.
const (
	// Minimum length of a key, in bytes, when one is supplied.
	KeyLengthMin = 16
	// Maximum length of a key, in bytes. The wire format underneath only
	// accepts keys up to blake2s.KeyLength.
	KeyLengthMax = 64
	// Maximum number of output bytes accepted by this layer. The wire format
	// underneath only produces up to blake2s.MaxOutput.
	OutputLengthMax = 64
	// Required length of a salt argument, in bytes. Only the first
	// blake2s.SaltLength bytes influence the digest.
	SaltLength = 16
	// Required length of a personalization argument, in bytes. Only the
	// first blake2s.SeparatorLength bytes influence the digest.
	PersonalLength = 16
)

var (
	// ErrKeyLength is returned when a supplied key is outside
	// KeyLengthMin..KeyLengthMax bytes.
	ErrKeyLength = errors.New("blake2s-net: key length must be between 16 and 64 bytes")
	// ErrOutputSize is returned when the requested output size is outside
	// 1..OutputLengthMax bytes.
	ErrOutputSize = errors.New("blake2s-net: output size must be between 1 and 64 bytes")
	// ErrSaltLength is returned when a salt is not exactly SaltLength bytes.
	ErrSaltLength = errors.New("blake2s-net: salt must be exactly 16 bytes")
	// ErrPersonalLength is returned when a personalization string is not
	// exactly PersonalLength bytes.
	ErrPersonalLength = errors.New("blake2s-net: personalization must be exactly 16 bytes")
	// ErrMissingArgument is returned when a required argument is nil.
	ErrMissingArgument = errors.New("blake2s-net: required argument is missing")
)

// Hash computes the BLAKE2s digest of message, producing outputBytes bytes of
// output. A nil key produces the plain hash; supplying a key turns the
// function into a MAC. Output sizes above blake2s.MaxOutput and keys longer
// than blake2s.KeyLength pass this layer's checks but fail in the blake2s
// package.
func Hash(message, key []byte, outputBytes int) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if err := validateOutputSize(outputBytes); err != nil {
		return nil, err
	}
	return sum(message, key, nil, nil, outputBytes)
}

// HashSaltPersonal computes the BLAKE2s digest of message with a salt and a
// personalization string, both required and exactly 16 bytes. The wire format
// only has room for 8 bytes of each: the last 8 bytes of either argument are
// accepted but never influence the digest. The key is optional with the same
// bound as Hash.
func HashSaltPersonal(message, key, salt, personalization []byte, outputBytes int) ([]byte, error) {
	if message == nil || salt == nil || personalization == nil {
		return nil, ErrMissingArgument
	}
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if err := validateSalt(salt); err != nil {
		return nil, err
	}
	if err := validatePersonal(personalization); err != nil {
		return nil, err
	}
	if err := validateOutputSize(outputBytes); err != nil {
		return nil, err
	}
	return sum(message, key, salt[:blake2s.SaltLength], personalization[:blake2s.SeparatorLength], outputBytes)
}

func validateKey(key []byte) error {
	if key == nil {
		return nil
	}
	if len(key) < KeyLengthMin || len(key) > KeyLengthMax {
		return ErrKeyLength
	}
	return nil
}

func validateOutputSize(outputBytes int) error {
	if outputBytes < 1 || outputBytes > OutputLengthMax {
		return ErrOutputSize
	}
	return nil
}

func validateSalt(salt []byte) error {
	if len(salt) != SaltLength {
		return ErrSaltLength
	}
	return nil
}

func validatePersonal(personalization []byte) error {
	if len(personalization) != PersonalLength {
		return ErrPersonalLength
	}
	return nil
}

func sum(message, key, salt, personalization []byte, outputBytes int) ([]byte, error) {
	d, err := blake2s.NewDigest(key, salt, personalization, outputBytes)
	if err != nil {
		return nil, err
	}
	d.Write(message)
	return d.Sum(nil), nil
}
