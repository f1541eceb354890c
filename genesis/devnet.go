// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	_ "embed"
	"sync"

	"github.com/vechain/nftstaker/chain"
)

//go:embed devnet.yaml
var devnetConfig []byte

// DevAccount account for development.
type DevAccount struct {
	Address    chain.Address
	PrivateKey *ecdsa.PrivateKey
}

var devnet = sync.OnceValue(func() *Config {
	c, err := ParseConfig(devnetConfig)
	if err != nil {
		panic(err)
	}
	return c
})

// DevAccounts returns the key holding wallets of the devnet.
func DevAccounts() []DevAccount {
	var accs []DevAccount
	for _, acc := range devnet().Accounts {
		pk, err := acc.key()
		if err != nil {
			panic(err)
		}
		if pk == nil {
			continue
		}
		accs = append(accs, DevAccount{chain.PublicKeyToAddress(pk.PublicKey), pk})
	}
	return accs
}

// NewDevnet create genesis for development.
func NewDevnet() *Genesis {
	cfg := *devnet()
	gene, err := New("devnet", &cfg)
	if err != nil {
		panic(err)
	}
	return gene
}
