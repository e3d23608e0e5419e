package wallet

import (
	"fmt"

	bip32 "github.com/bsv-blockchain/go-sdk/compat/bip32"
	"github.com/bsv-blockchain/go-sdk/script"

	"github.com/bitfsorg/libsplit-go/auth"
)

const (
	// BIP44 path constants.
	PurposeBIP44     = 44
	CoinTypeBSV      = 236
	IdentityAccount  = 0
	IdentityChain    = 0
	MaxIdentityIndex = Hardened - 1

	// BIP32 hardened offset.
	Hardened = 0x80000000
)

// Wallet derives identities from a BIP39 seed.
type Wallet struct {
	identityChain *bip32.ExtendedKey
	network       *Network
}

// Identity is a derived ledger identity.
type Identity struct {
	*auth.Signer

	Index uint32
	Path  string

	// DisplayAddress is the base58check P2PKH address of the identity on
	// the wallet's network. It encodes the same HASH160 as Address().
	DisplayAddress string
}

// NewWallet creates a Wallet from a BIP39 seed. A nil network means mainnet.
func NewWallet(seed []byte, network *Network) (*Wallet, error) {
	if len(seed) == 0 {
		return nil, ErrInvalidSeed
	}
	if network == nil {
		network = &MainNet
	}

	master, err := bip32.NewMaster(seed, network.params)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDerivationFailed, err)
	}

	// m/44'/236'/0'/0
	key := master
	for _, idx := range []uint32{PurposeBIP44 + Hardened, CoinTypeBSV + Hardened, IdentityAccount + Hardened, IdentityChain} {
		if key, err = key.Child(idx); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDerivationFailed, err)
		}
	}
	return &Wallet{identityChain: key, network: network}, nil
}

// Network returns the wallet's network.
func (w *Wallet) Network() *Network {
	return w.network
}

// DeriveIdentity derives the identity at m/44'/236'/0'/0/index.
func (w *Wallet) DeriveIdentity(index uint32) (*Identity, error) {
	if index > MaxIdentityIndex {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	child, err := w.identityChain.Child(index)
	if err != nil {
		return nil, fmt.Errorf("%w: index %d: %w", ErrDerivationFailed, index, err)
	}
	priv, err := child.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("%w: extract private key: %w", ErrDerivationFailed, err)
	}
	signer, err := auth.NewSigner(priv)
	if err != nil {
		return nil, err
	}
	addr, err := script.NewAddressFromPublicKey(priv.PubKey(), w.network.MainNet)
	if err != nil {
		return nil, fmt.Errorf("%w: display address: %w", ErrDerivationFailed, err)
	}
	return &Identity{
		Signer:         signer,
		Index:          index,
		Path:           fmt.Sprintf("m/44'/%d'/%d'/%d/%d", CoinTypeBSV, IdentityAccount, IdentityChain, index),
		DisplayAddress: addr.AddressString,
	}, nil
}
