// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/nftstaker/builtin"
	"github.com/vechain/nftstaker/builtin/metadata"
	"github.com/vechain/nftstaker/chain"
	"github.com/vechain/nftstaker/state"
	"github.com/vechain/nftstaker/xenv"
)

// issuerLamports pays for every bootstrap account.
const issuerLamports uint64 = 1_000_000_000_000_000_000

// Issuer is the genesis authority of the reward mint and all NFT mints.
var Issuer = chain.DeriveAddress(chain.SystemProgramID, []byte("genesis"))

// Genesis builds the initial state of a network.
type Genesis struct {
	config *Config
	id     chain.Bytes32
	name   string
}

// New creates a genesis from a config.
func New(name string, config *Config) (*Genesis, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, errors.Wrap(err, "encode genesis")
	}
	return &Genesis{config: config, id: chain.Blake2b(data), name: name}, nil
}

// ID identifies the genesis content.
func (g *Genesis) ID() chain.Bytes32 { return g.id }

// Name returns the network name.
func (g *Genesis) Name() string { return g.name }

// ChainTag returns the tag transactions must carry.
func (g *Genesis) ChainTag() byte { return g.config.ChainTag }

// LaunchTime returns the configured network launch time.
func (g *Genesis) LaunchTime() int64 { return g.config.LaunchTime }

// Config returns the underlying config.
func (g *Genesis) Config() *Config { return g.config }

// RewardMint returns the address of the reward token mint.
func (g *Genesis) RewardMint() chain.Address {
	return chain.DeriveAddress(chain.TokenProgramID, []byte("reward"), []byte{g.config.ChainTag})
}

// NFTMint returns the mint address of the i-th configured NFT.
func (g *Genesis) NFTMint(i int) chain.Address {
	return chain.DeriveAddress(chain.TokenProgramID, []byte("nft"), []byte{g.config.ChainTag}, binary.BigEndian.AppendUint32(nil, uint32(i)))
}

// Build writes the bootstrap accounts into state: the reward mint, the
// funded vault, the wallets and the NFTs.
func (g *Genesis) Build(st *state.State) error {
	if err := st.SetBalance(Issuer, issuerLamports); err != nil {
		return err
	}
	var (
		sys        = builtin.System.Native(st)
		tk         = builtin.Token.Native(st)
		rewardMint = g.RewardMint()
	)
	if err := tk.InitializeMint(Issuer, rewardMint, g.config.RewardMint.Decimals, Issuer); err != nil {
		return errors.WithMessage(err, "reward mint")
	}
	treasury, err := tk.InitializeAssociatedAccount(Issuer, Issuer, rewardMint)
	if err != nil {
		return err
	}
	if err := tk.MintTo(rewardMint, treasury, Issuer, g.config.RewardMint.Supply); err != nil {
		return err
	}

	program := builtin.Staking.Native(xenv.New(st, &xenv.ClockContext{Time: g.config.LaunchTime}, &xenv.TransactionContext{Signer: Issuer}))
	if err := program.InitializeVault(rewardMint); err != nil {
		return errors.WithMessage(err, "vault")
	}
	if err := program.Fund(g.config.VaultFunding); err != nil {
		return errors.WithMessage(err, "fund vault")
	}

	holders := make([]chain.Address, 0, len(g.config.Accounts))
	for i, acc := range g.config.Accounts {
		addr, err := acc.address()
		if err != nil {
			return err
		}
		holders = append(holders, addr)
		if err := sys.Transfer(Issuer, addr, acc.Lamports); err != nil {
			return errors.WithMessagef(err, "accounts[%d]", i)
		}
		ata, err := tk.InitializeAssociatedAccount(Issuer, addr, rewardMint)
		if err != nil {
			return errors.WithMessagef(err, "accounts[%d]", i)
		}
		if err := tk.Transfer(treasury, ata, Issuer, acc.RewardTokens); err != nil {
			return errors.WithMessagef(err, "accounts[%d]", i)
		}
	}

	for i, nft := range g.config.NFTs {
		mint := g.NFTMint(i)
		if err := tk.InitializeMint(Issuer, mint, 0, Issuer); err != nil {
			return errors.WithMessagef(err, "nfts[%d]", i)
		}
		if _, err := metadata.Create(st, Issuer, Issuer, metadata.Metadata{
			Mint:   mint,
			Name:   nft.Name,
			Symbol: nft.Symbol,
			URI:    nft.URI,
		}); err != nil {
			return errors.WithMessagef(err, "nfts[%d]", i)
		}
		ata, err := tk.InitializeAssociatedAccount(Issuer, holders[nft.Holder], mint)
		if err != nil {
			return errors.WithMessagef(err, "nfts[%d]", i)
		}
		if err := tk.MintTo(mint, ata, Issuer, 1); err != nil {
			return errors.WithMessagef(err, "nfts[%d]", i)
		}
	}
	return nil
}
