// Package blake2s implements the BLAKE2s secure hashing algorithm with
// support for salting and personalization. BLAKE2s is optimized for 8- to
// 32-bit platforms and produces digests of any size between 1 and 32 bytes.
package blake2s

import (
	"encoding/binary"
	"errors"
	"math/bits"
)

// Digest represents the internal state of the BLAKE2s algorithm.
type Digest struct {
	h      [8]uint32
	t0, t1 uint32
	f0, f1 uint32

	buf    [BlockSize]byte
	offset int // current offset inside the block

	// size is defined in hash.Hash, and returns the number of bytes Sum will
	// return. Since BLAKE2 output length is dynamic, so is this.
	size int
}

// After this function is called, the parameterBlock can be discarded.
func initFromParams(p *parameterBlock) *Digest {
	w := p.words()

	return &Digest{
		h: [8]uint32{
			IV0 ^ w[0], IV1 ^ w[1], IV2 ^ w[2], IV3 ^ w[3],
			IV4 ^ w[4], IV5 ^ w[5], IV6 ^ w[6], IV7 ^ w[7],
		},
		size: int(p.digestSize),
	}
}

// NewDigest constructs a new instance of a BLAKE2s hash with the provided
// configuration. Key, salt, and personalization may all be nil. Salt and
// personalization longer than SaltLength and SeparatorLength bytes are
// silently truncated; keys longer than KeyLength bytes are an error.
func NewDigest(key, salt, personalization []byte, outputBytes int) (*Digest, error) {
	params, err := newParameterBlock(key, salt, personalization, outputBytes)
	if err != nil {
		return nil, err
	}

	// Initialize the internal state
	digest := initFromParams(params)

	if len(key) > 0 {
		// Write key to entire first block and compress
		var keyBuf [BlockSize]byte
		copy(keyBuf[:], key)
		digest.Write(keyBuf[:])
	}

	return digest, nil
}

// Write adds more data to the running hash.
func (d *Digest) Write(input []byte) (n int, err error) {
	bytesWritten := 0

	// If we have capacity, just copy and wait for a full block. If we don't
	// have capacity, we'll need to take a full block and compress.
	for bytesWritten < len(input) {
		// How much space do we have left in the block?
		freeBytes := BlockSize - d.offset
		inputLeft := len(input) - bytesWritten

		if inputLeft <= freeBytes {
			newOffset := d.offset + inputLeft
			copy(d.buf[d.offset:newOffset], input[bytesWritten:])
			d.offset = newOffset
			return bytesWritten + inputLeft, nil
		}

		copy(d.buf[d.offset:], input[bytesWritten:bytesWritten+freeBytes])

		// increment counter, preserving overflow behavior
		d.t0 += BlockSize
		if d.t0 < BlockSize {
			d.t1++
		}

		d.compress()

		// advance pointers
		bytesWritten += freeBytes
		d.offset = 0

		// loop until we can't fill another buffer
	}

	return bytesWritten, nil
}

func (d *Digest) compress() {
	// Split the block buffer into 32-bit words.
	var m [16]uint32
	for i := range m {
		m[i] = binary.LittleEndian.Uint32(d.buf[i*4 : i*4+4])
	}

	// Create the internal round state. Copy the current hash state to the
	// top, then the tweaked IVs to the bottom.
	var v [16]uint32
	copy(v[:8], d.h[:])
	v[8] = IV0
	v[9] = IV1
	v[10] = IV2
	v[11] = IV3
	v[12] = IV4 ^ d.t0
	v[13] = IV5 ^ d.t1
	v[14] = IV6 ^ d.f0
	v[15] = IV7 ^ d.f1

	for round := 0; round < RoundCount; round++ {
		s := &sigma[round]

		// column step
		v[0], v[4], v[8], v[12] = g(v[0], v[4], v[8], v[12], m[s[0]], m[s[1]])
		v[1], v[5], v[9], v[13] = g(v[1], v[5], v[9], v[13], m[s[2]], m[s[3]])
		v[2], v[6], v[10], v[14] = g(v[2], v[6], v[10], v[14], m[s[4]], m[s[5]])
		v[3], v[7], v[11], v[15] = g(v[3], v[7], v[11], v[15], m[s[6]], m[s[7]])

		// diagonal step
		v[0], v[5], v[10], v[15] = g(v[0], v[5], v[10], v[15], m[s[8]], m[s[9]])
		v[1], v[6], v[11], v[12] = g(v[1], v[6], v[11], v[12], m[s[10]], m[s[11]])
		v[2], v[7], v[8], v[13] = g(v[2], v[7], v[8], v[13], m[s[12]], m[s[13]])
		v[3], v[4], v[9], v[14] = g(v[3], v[4], v[9], v[14], m[s[14]], m[s[15]])
	}

	for i := range d.h {
		d.h[i] ^= v[i] ^ v[i+8]
	}
}

// The internal BLAKE2s round function. We lift the table lookups into the
// caller so this function has a better chance of inlining.
func g(a, b, c, d, m0, m1 uint32) (uint32, uint32, uint32, uint32) {
	a = a + b + m0
	d = bits.RotateLeft32(d^a, -16)
	c = c + d
	b = bits.RotateLeft32(b^c, -12)
	a = a + b + m1
	d = bits.RotateLeft32(d^a, -8)
	c = c + d
	b = bits.RotateLeft32(b^c, -7)
	return a, b, c, d
}

// Note that due to the nature of the hash.Hash interface, calling finalize
// WILL NOT permanently update the underlying hash state. Instead it will
// simulate what would happen if the current block were the final block.
func (d *Digest) finalize(out []byte) error {
	if d.f0 != 0 {
		return errors.New("blake2s: tried to finalize but last flag already set")
	}

	// make copies of everything
	dCopy := *d

	// Zero the unused portion of the buffer.
	memclrBuf := dCopy.buf[dCopy.offset:BlockSize]
	for i := range memclrBuf {
		memclrBuf[i] = 0
	}

	// increment counter by size of pending input before padding
	dCopy.t0 += uint32(d.offset)
	if dCopy.t0 < uint32(d.offset) {
		dCopy.t1++
	}
	// set last block flag
	dCopy.f0 = 0xFFFFFFFF

	dCopy.compress()

	for offset := 0; offset < len(out); offset++ {
		shift := 8 * (uint(offset) % 4)
		out[offset] = byte(dCopy.h[offset/4] >> shift)
	}

	return nil
}

// Sum appends the current hash to b and returns the resulting slice.
// It does not change the underlying hash state.
func (d *Digest) Sum(b []byte) (out []byte) {
	// if there's space, reuse the b slice
	if n := len(b) + d.size; cap(b) >= n {
		out = b[:n]
	} else {
		out = make([]byte, n)
		copy(out, b)
	}

	err := d.finalize(out[len(b):])

	if err != nil {
		return out[:len(b)]
	}

	return out
}

// Reset resets the Hash to its initial state.
func (d *Digest) Reset() {
	// TODO: not this
	panic("BLAKE2 cannot be reset without storing the key")
}

// Size returns the digest output size in bytes.
func (d *Digest) Size() int { return d.size }

// BlockSize returns the hash's underlying block size. The Write method must be
// able to accept any amount of data, but it may operate more efficiently if
// all writes are a multiple of the block size.
func (d *Digest) BlockSize() int { return BlockSize }
