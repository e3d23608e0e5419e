package wallet

import (
	"fmt"

	chaincfg "github.com/bsv-blockchain/go-sdk/transaction/chaincfg"
)

// Network selects the BIP32 version bytes and the address prefix used when
// displaying identities.
type Network struct {
	Name    string
	MainNet bool
	params  *chaincfg.Params
}

// Predefined networks.
var (
	MainNet = Network{Name: "mainnet", MainNet: true, params: &chaincfg.MainNet}
	TestNet = Network{Name: "testnet", params: &chaincfg.TestNet}
	RegTest = Network{Name: "regtest", params: &chaincfg.TestNet}
)

var networks = map[string]*Network{
	"mainnet": &MainNet,
	"testnet": &TestNet,
	"regtest": &RegTest,
}

// GetNetwork returns a predefined network by name.
func GetNetwork(name string) (*Network, error) {
	if n, ok := networks[name]; ok {
		return n, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidNetwork, name)
}
