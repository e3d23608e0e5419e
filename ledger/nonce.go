package ledger

import (
	"encoding/binary"

	"github.com/bitfsorg/libsplit-go/auth"
	"github.com/bitfsorg/libsplit-go/storage"
)

// Nonce returns the value addr must sign into its next authorized call.
// Every successful signed call advances it by one, so a proof is good for
// a single call.
func (l *Ledger) Nonce(addr auth.Address) (uint64, error) {
	var n uint64
	err := l.store.View(func(tx storage.Tx) error {
		n = loadNonce(tx, addr)
		return nil
	})
	return n, err
}

// nonceArg encodes a nonce as a digest argument.
func nonceArg(nonce uint64) []byte { return binary.BigEndian.AppendUint64(nil, nonce) }
