package auth

import (
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
)

// Signer produces proofs for a single identity.
type Signer struct {
	priv *ec.PrivateKey
	addr Address
}

// NewSigner wraps an existing private key.
func NewSigner(priv *ec.PrivateKey) (*Signer, error) {
	if priv == nil {
		return nil, ErrNilKey
	}
	return &Signer{priv: priv, addr: AddressFromPubKey(priv.PubKey())}, nil
}

// GenerateSigner creates a signer for a fresh random key.
func GenerateSigner() (*Signer, error) {
	priv, err := ec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("auth: generate key: %w", err)
	}
	return NewSigner(priv)
}

// Address returns the signer's identity.
func (s *Signer) Address() Address { return s.addr }

// PublicKey returns the signer's public key.
func (s *Signer) PublicKey() *ec.PublicKey { return s.priv.PubKey() }

// Sign returns a proof over digest.
func (s *Signer) Sign(digest []byte) (*Proof, error) {
	sig, err := s.priv.Sign(digest)
	if err != nil {
		return nil, fmt.Errorf("auth: sign: %w", err)
	}
	return &Proof{
		PubKey:    s.priv.PubKey().Compressed(),
		Signature: sig.Serialize(),
	}, nil
}
