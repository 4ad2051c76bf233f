package blake2snet

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
	xblake2s "golang.org/x/crypto/blake2s"

	"github.com/jefferyq2/blake2s-net/blake2s"
)

func TestHashKnownVector(t *testing.T) {
	// BLAKE2s-256 of "abc", RFC 7693 appendix B.
	digest, err := Hash([]byte("abc"), nil, 32)
	require.NoError(t, err)
	require.Equal(t,
		"508c5e8c327c14e2e1a72ba34eeb452f37458b209ed63a294d999b4c86675982",
		hex.EncodeToString(digest))

	again, err := Hash([]byte("abc"), nil, 32)
	require.NoError(t, err)
	require.Equal(t, digest, again, "identical inputs must produce identical digests")
}

func TestHashEmptyMessage(t *testing.T) {
	digest, err := Hash(nil, nil, 32)
	require.NoError(t, err)
	require.Equal(t,
		"69217a3079908094e11121d042354a7c1f55b6482ca1a51e1b250dfd1ed0eef9",
		hex.EncodeToString(digest))
}

func TestHashKeyBounds(t *testing.T) {
	msg := []byte("message")

	_, err := Hash(msg, make([]byte, 15), 32)
	require.ErrorIs(t, err, ErrKeyLength, "15-byte key must fail at this layer")

	_, err = Hash(msg, make([]byte, 65), 32)
	require.ErrorIs(t, err, ErrKeyLength)

	_, err = Hash(msg, make([]byte, 16), 32)
	require.NoError(t, err, "16-byte key is the minimum")

	_, err = Hash(msg, make([]byte, 32), 32)
	require.NoError(t, err, "32-byte key is the wire-format maximum")

	// A 64-byte key passes this layer's 16..64 check but exceeds the wire
	// format's 32-byte capacity, so it fails deeper down.
	_, err = Hash(msg, make([]byte, 64), 32)
	require.ErrorIs(t, err, blake2s.ErrKeyTooLong)

	_, err = Hash(msg, make([]byte, 33), 32)
	require.ErrorIs(t, err, blake2s.ErrKeyTooLong)
}

func TestHashOutputBounds(t *testing.T) {
	msg := []byte("message")

	_, err := Hash(msg, nil, 0)
	require.ErrorIs(t, err, ErrOutputSize)

	_, err = Hash(msg, nil, 65)
	require.ErrorIs(t, err, ErrOutputSize)

	digest, err := Hash(msg, nil, 1)
	require.NoError(t, err)
	require.Len(t, digest, 1)

	digest, err = Hash(msg, nil, 32)
	require.NoError(t, err)
	require.Len(t, digest, 32)

	// 33..64 pass this layer's check but exceed the wire format's 32-byte
	// digest capacity, so they fail deeper down.
	_, err = Hash(msg, nil, 33)
	require.ErrorIs(t, err, blake2s.ErrOutputRange)

	_, err = Hash(msg, nil, 64)
	require.ErrorIs(t, err, blake2s.ErrOutputRange)
}

func TestHashSaltPersonalArguments(t *testing.T) {
	msg := []byte("message")
	salt := bytes.Repeat([]byte{0x55}, SaltLength)
	personal := bytes.Repeat([]byte{0xee}, PersonalLength)

	_, err := HashSaltPersonal(nil, nil, salt, personal, 32)
	require.ErrorIs(t, err, ErrMissingArgument)

	_, err = HashSaltPersonal(msg, nil, nil, personal, 32)
	require.ErrorIs(t, err, ErrMissingArgument)

	_, err = HashSaltPersonal(msg, nil, salt, nil, 32)
	require.ErrorIs(t, err, ErrMissingArgument)

	_, err = HashSaltPersonal(msg, nil, salt[:8], personal, 32)
	require.ErrorIs(t, err, ErrSaltLength)

	_, err = HashSaltPersonal(msg, nil, append(salt, 0x55), personal, 32)
	require.ErrorIs(t, err, ErrSaltLength)

	_, err = HashSaltPersonal(msg, nil, salt, personal[:15], 32)
	require.ErrorIs(t, err, ErrPersonalLength)

	_, err = HashSaltPersonal(msg, nil, salt, personal, 0)
	require.ErrorIs(t, err, ErrOutputSize)

	digest, err := HashSaltPersonal(msg, nil, salt, personal, 32)
	require.NoError(t, err)
	require.Len(t, digest, 32)

	plain, err := Hash(msg, nil, 32)
	require.NoError(t, err)
	require.NotEqual(t, plain, digest, "salt and personalization must change the digest")
}

func TestHashSaltPersonalWindow(t *testing.T) {
	// The wire format packs only 8 bytes of salt and personalization: two
	// 16-byte arguments that agree on their first 8 bytes hash identically.
	msg := []byte("message")
	saltA := []byte("saltsaltAAAAAAAA")
	saltB := []byte("saltsaltBBBBBBBB")
	personalA := []byte("personalAAAAAAAA")
	personalB := []byte("personalBBBBBBBB")

	a, err := HashSaltPersonal(msg, nil, saltA, personalA, 32)
	require.NoError(t, err)
	b, err := HashSaltPersonal(msg, nil, saltB, personalB, 32)
	require.NoError(t, err)
	require.Equal(t, a, b, "bytes past the 8-byte window must not influence the digest")

	c, err := HashSaltPersonal(msg, nil, []byte("SALTSALTAAAAAAAA"), personalA, 32)
	require.NoError(t, err)
	require.NotEqual(t, a, c, "bytes inside the 8-byte window must influence the digest")
}

func TestHashSaltPersonalKeyed(t *testing.T) {
	msg := []byte("message")
	salt := bytes.Repeat([]byte{0x55}, SaltLength)
	personal := bytes.Repeat([]byte{0xee}, PersonalLength)

	_, err := HashSaltPersonal(msg, make([]byte, 15), salt, personal, 32)
	require.ErrorIs(t, err, ErrKeyLength)

	_, err = HashSaltPersonal(msg, make([]byte, 64), salt, personal, 32)
	require.ErrorIs(t, err, blake2s.ErrKeyTooLong)

	keyed, err := HashSaltPersonal(msg, make([]byte, 32), salt, personal, 32)
	require.NoError(t, err)
	unkeyed, err := HashSaltPersonal(msg, nil, salt, personal, 32)
	require.NoError(t, err)
	require.NotEqual(t, unkeyed, keyed)
}

func TestHashAgainstXCrypto(t *testing.T) {
	for _, msg := range [][]byte{
		nil,
		[]byte("abc"),
		bytes.Repeat([]byte{0x01}, 64),
		bytes.Repeat([]byte{0x02}, 65),
		bytes.Repeat([]byte{0x03}, 500),
	} {
		digest, err := Hash(msg, nil, 32)
		require.NoError(t, err)
		want := xblake2s.Sum256(msg)
		require.Equal(t, want[:], digest)

		key := bytes.Repeat([]byte{0xaa}, 32)
		digest, err = Hash(msg, key, 32)
		require.NoError(t, err)
		x, err := xblake2s.New256(key)
		require.NoError(t, err)
		x.Write(msg)
		require.Equal(t, x.Sum(nil), digest)
	}
}
