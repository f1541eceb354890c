// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/vechain/nftstaker/builtin/staking"
	"github.com/vechain/nftstaker/builtin/system"
	"github.com/vechain/nftstaker/builtin/token"
	"github.com/vechain/nftstaker/chain"
	"github.com/vechain/nftstaker/state"
	"github.com/vechain/nftstaker/xenv"
)

// Builtin programs binding.
var (
	System   = &systemProgram{&program{"system", chain.SystemProgramID}}
	Token    = &tokenProgram{&program{"token", chain.TokenProgramID}}
	Metadata = &program{"metadata", chain.MetadataProgramID}
	Staking  = &stakingProgram{&program{"staking", chain.StakingProgramID}}
)

var programs = []*program{System.program, Token.program, Metadata, Staking.program}

type program struct {
	Name    string
	Address chain.Address
}

type (
	systemProgram  struct{ *program }
	tokenProgram   struct{ *program }
	stakingProgram struct{ *program }
)

func (s *systemProgram) Native(state *state.State) *system.System {
	return system.New(state)
}

func (t *tokenProgram) Native(state *state.State) *token.Token {
	return token.New(state)
}

func (s *stakingProgram) Native(env *xenv.Environment) *staking.Staking {
	return staking.New(env)
}

// ProgramName returns the name of the builtin program at addr.
func ProgramName(addr chain.Address) (string, bool) {
	for _, p := range programs {
		if p.Address == addr {
			return p.Name, true
		}
	}
	return "", false
}
