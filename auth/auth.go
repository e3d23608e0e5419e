// Package auth implements the authorization gate: identities are secp256k1
// keys, addressed by HASH160 of the compressed public key, and every mutating
// call carries a Proof signed over a digest of the operation and its
// arguments.
package auth

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
)

// AddressSize is the length of an address (HASH160 output).
const AddressSize = 20

// digestDomain separates ledger authorization digests from any other message
// signed with the same key.
const digestDomain = "libsplit/authorize/v1"

// Address identifies a participant.
type Address [AddressSize]byte

// String returns the lowercase hex encoding of the address.
func (a Address) String() string { return hex.EncodeToString(a[:]) }

// IsZero reports whether a is the all-zero address.
func (a Address) IsZero() bool { return a == Address{} }

// ParseAddress decodes a 40-character hex address.
func ParseAddress(s string) (Address, error) {
	var a Address
	b, err := hex.DecodeString(s)
	if err != nil {
		return a, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if len(b) != AddressSize {
		return a, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidAddress, AddressSize, len(b))
	}
	copy(a[:], b)
	return a, nil
}

// AddressFromPubKey computes HASH160(compressed pubkey).
func AddressFromPubKey(pub *ec.PublicKey) Address {
	var a Address
	copy(a[:], bsvhash.Hash160(pub.Compressed()))
	return a
}

// Digest computes the 32-byte message an identity signs to authorize op
// with the given arguments. Each argument is length-prefixed so that
// distinct argument lists never collide.
func Digest(op string, args ...[]byte) []byte {
	size := len(digestDomain) + 4 + len(op)
	for _, a := range args {
		size += 4 + len(a)
	}
	buf := make([]byte, 0, size)
	buf = append(buf, digestDomain...)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(op)))
	buf = append(buf, op...)
	for _, a := range args {
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(a)))
		buf = append(buf, a...)
	}
	return bsvhash.Sha256(buf)
}

// Proof shows that the holder of PubKey signed a specific digest.
type Proof struct {
	PubKey    []byte // compressed secp256k1 public key (33 bytes)
	Signature []byte // DER-encoded ECDSA signature over the digest
}

// Verify checks that proof was produced by the key behind claimed over
// digest. It fails closed: any missing or malformed piece is ErrUnauthorized.
func Verify(proof *Proof, claimed Address, digest []byte) error {
	if proof == nil {
		return fmt.Errorf("%w: missing proof for %s", ErrUnauthorized, claimed)
	}
	if len(proof.PubKey) == 0 || len(proof.Signature) == 0 {
		return fmt.Errorf("%w: incomplete proof for %s", ErrUnauthorized, claimed)
	}

	pub, err := ec.PublicKeyFromBytes(proof.PubKey)
	if err != nil {
		return fmt.Errorf("%w: bad public key: %w", ErrUnauthorized, err)
	}
	if AddressFromPubKey(pub) != claimed {
		return fmt.Errorf("%w: key does not match %s", ErrUnauthorized, claimed)
	}

	sig, err := ec.ParseDERSignature(proof.Signature)
	if err != nil {
		return fmt.Errorf("%w: bad signature: %w", ErrUnauthorized, err)
	}
	if !sig.Verify(digest, pub) {
		return fmt.Errorf("%w: signature check failed for %s", ErrUnauthorized, claimed)
	}
	return nil
}
