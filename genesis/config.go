// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/nftstaker/builtin/metadata"
	"github.com/vechain/nftstaker/chain"
)

// Config is the yaml description of a network's initial state.
type Config struct {
	ChainTag     byte       `yaml:"chainTag"`
	LaunchTime   int64      `yaml:"launchTime"`
	RewardMint   RewardMint `yaml:"rewardMint"`
	VaultFunding uint64     `yaml:"vaultFunding"`
	Accounts     []Account  `yaml:"accounts"`
	NFTs         []NFT      `yaml:"nfts"`
}

// RewardMint describes the fungible reward token.
type RewardMint struct {
	Decimals uint8  `yaml:"decimals"`
	Supply   uint64 `yaml:"supply"`
}

// Account is a funded wallet. Exactly one of PrivateKey and Address is set.
type Account struct {
	PrivateKey   string `yaml:"privateKey,omitempty"`
	Address      string `yaml:"address,omitempty"`
	Lamports     uint64 `yaml:"lamports"`
	RewardTokens uint64 `yaml:"rewardTokens"`
}

// NFT is a single unit asset issued to Accounts[Holder].
type NFT struct {
	Symbol string `yaml:"symbol"`
	Name   string `yaml:"name"`
	URI    string `yaml:"uri"`
	Holder int    `yaml:"holder"`
}

// key returns the account's private key, nil for address only accounts.
func (a *Account) key() (*ecdsa.PrivateKey, error) {
	if a.PrivateKey == "" {
		return nil, nil
	}
	pk, err := crypto.HexToECDSA(strings.TrimPrefix(a.PrivateKey, "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "private key")
	}
	return pk, nil
}

func (a *Account) address() (chain.Address, error) {
	if a.Address != "" {
		return chain.ParseAddress(a.Address)
	}
	pk, err := a.key()
	if err != nil {
		return chain.Address{}, err
	}
	return chain.PublicKeyToAddress(pk.PublicKey), nil
}

// Validate checks internal consistency of the config.
func (c *Config) Validate() error {
	if c.ChainTag == 0 {
		return errors.New("chainTag must be non zero")
	}
	issued := c.VaultFunding
	for i, acc := range c.Accounts {
		if (acc.PrivateKey == "") == (acc.Address == "") {
			return errors.Errorf("accounts[%d]: exactly one of privateKey and address required", i)
		}
		if _, err := acc.address(); err != nil {
			return errors.WithMessagef(err, "accounts[%d]", i)
		}
		if issued+acc.RewardTokens < issued {
			return errors.New("reward token allocation overflows")
		}
		issued += acc.RewardTokens
	}
	if issued > c.RewardMint.Supply {
		return errors.Errorf("allocated %d reward tokens exceeds supply %d", issued, c.RewardMint.Supply)
	}
	for i, nft := range c.NFTs {
		if nft.Holder < 0 || nft.Holder >= len(c.Accounts) {
			return errors.Errorf("nfts[%d]: holder %d out of range", i, nft.Holder)
		}
		if len(nft.Symbol) > metadata.MaxSymbolLength || len(nft.Name) > metadata.MaxNameLength || len(nft.URI) > metadata.MaxURILength {
			return errors.Errorf("nfts[%d]: field too long", i)
		}
	}
	return nil
}

// ParseConfig decodes and validates a yaml config.
func ParseConfig(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	if err := c.Validate(); err != nil {
		return nil, errors.WithMessage(err, "invalid genesis")
	}
	return &c, nil
}

// LoadConfig reads a yaml config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	return ParseConfig(data)
}
