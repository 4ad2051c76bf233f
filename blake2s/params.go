package blake2s

import (
	"encoding/binary"
	"errors"
)

// Hard preconditions of the BLAKE2s wire format. These hold regardless of
// whatever bounds a caller enforced beforehand.
var (
	// ErrOutputRange is returned when the requested digest size is outside
	// 1..MaxOutput.
	ErrOutputRange = errors.New("blake2s: asked for negative, zero, or too much output")
	// ErrKeyTooLong is returned when a key exceeds KeyLength bytes.
	ErrKeyTooLong = errors.New("blake2s: key too large")
)

// header holds the four single-byte fields that share the first word of the
// parameter block. The wire format interleaves them, so they travel packed
// into one 32-bit word, from least to most significant byte.
type header struct {
	digestSize byte // 0
	keyLength  byte // 1
	fanout     byte // 2
	depth      byte // 3
}

// word packs the header into the first word of the parameter block.
func (h header) word() uint32 {
	return uint32(h.digestSize) |
		uint32(h.keyLength)<<8 |
		uint32(h.fanout)<<16 |
		uint32(h.depth)<<24
}

// These are the user-visible parameters of a BLAKE2 hash instance. The
// parameter block is XOR'd with the IV at the beginning of the hash. We only
// support sequential mode, so the tree fields are hardcoded to a default.
// They are nevertheless defined for clarity.
type parameterBlock struct {
	header                 // 0-3
	leafLength      uint32 // 4-7
	nodeOffset      uint32 // 8-11
	xofLength       uint16 // 12-13
	nodeDepth       byte   // 14
	innerLength     byte   // 15
	Salt            []byte // 16-23
	Personalization []byte // 24-31
}

// newParameterBlock validates a configuration against the wire format and
// packs it. Only the first SaltLength bytes of salt and the first
// SeparatorLength bytes of personalization are encoded; shorter values are
// implicitly right-padded with zero.
func newParameterBlock(key, salt, personalization []byte, outputBytes int) (*parameterBlock, error) {
	if outputBytes < 1 || outputBytes > MaxOutput {
		return nil, ErrOutputRange
	}
	if len(key) > KeyLength {
		return nil, ErrKeyTooLong
	}

	p := &parameterBlock{
		header: header{
			digestSize: byte(outputBytes),
			keyLength:  byte(len(key)),
			fanout:     1, // sequential mode
			depth:      1, // sequential mode
		},
	}

	p.Salt = make([]byte, SaltLength)
	copy(p.Salt, salt)

	p.Personalization = make([]byte, SeparatorLength)
	copy(p.Personalization, personalization)

	return p, nil
}

// words returns the parameter block as the eight 32-bit words that are XOR'd
// into the initialization vector before the first compression.
func (p *parameterBlock) words() (w [8]uint32) {
	w[0] = p.header.word()
	w[1] = p.leafLength
	w[2] = p.nodeOffset
	w[3] = uint32(p.xofLength) | uint32(p.nodeDepth)<<16 | uint32(p.innerLength)<<24
	w[4], w[5] = pairLE(p.Salt)
	w[6], w[7] = pairLE(p.Personalization)
	return w
}

// Marshal packs a BLAKE2s parameter block into its 32-byte wire image.
func (p *parameterBlock) Marshal() []byte {
	buf := make([]byte, 32)
	buf[0] = p.digestSize
	buf[1] = p.keyLength
	buf[2] = p.fanout
	buf[3] = p.depth
	binary.LittleEndian.PutUint32(buf[4:], p.leafLength)
	binary.LittleEndian.PutUint32(buf[8:], p.nodeOffset)
	binary.LittleEndian.PutUint16(buf[12:], p.xofLength)
	buf[14] = p.nodeDepth
	buf[15] = p.innerLength
	copy(buf[16:24], p.Salt)
	copy(buf[24:32], p.Personalization)
	return buf
}

// pairLE reinterprets the first 8 bytes of b as two little-endian 32-bit
// words, zero-padding when b is shorter.
func pairLE(b []byte) (uint32, uint32) {
	var buf [8]byte
	copy(buf[:], b)
	return binary.LittleEndian.Uint32(buf[0:4]), binary.LittleEndian.Uint32(buf[4:8])
}
