// Package blake2snet exposes the BLAKE2s secure hashing algorithm through a
// small one-shot API with support for keying, salting and personalization.
// BLAKE2s is optimized for 8- to 32-bit platforms and produces digests of any
// size between 1 and 32 bytes.
//
// The argument bounds enforced here match the original blake2s-net contract:
// keys of 16 to 64 bytes, output sizes of 1 to 64 bytes, and 16-byte salt and
// personalization strings. The BLAKE2s wire format underneath is stricter
// (32-byte keys and digests, 8-byte salt and personalization), and its
// violations surface as errors from the blake2s package. See the package
// documentation of blake2s for the wire-level bounds.
package blake2snet
