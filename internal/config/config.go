// Copyright 2024 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package config loads the TOML configuration of a governance deployment.
package config

import (
	"bytes"
	"fmt"
	"math/big"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"

	"github.com/sailakshmidurga/dao-governance/chain"
	"github.com/sailakshmidurga/dao-governance/genesis"
	"github.com/sailakshmidurga/dao-governance/governance"
	"github.com/sailakshmidurga/dao-governance/votes"
)

// Config is the top level configuration file layout.
type Config struct {
	Chain    ChainConfig
	Token    TokenConfig
	Governor GovernorConfig
	Timelock TimelockConfig
	Treasury TreasuryConfig
	Node     NodeConfig
}

// ChainConfig 执行环境参数
type ChainConfig struct {
	ChainID     uint64
	GenesisTime uint64
	BlockTime   uint64
	Deployer    common.Address
}

// TokenConfig 治理代币参数
type TokenConfig struct {
	Name          string
	Symbol        string
	Clock         string                // blocknumber | timestamp
	InitialSupply *math.HexOrDecimal256 // 铸造给部署者
}

// GovernorConfig 治理合约参数
type GovernorConfig struct {
	Name              string
	VotingDelay       uint64
	VotingPeriod      uint64
	ProposalThreshold *math.HexOrDecimal256
	QuorumNumerator   uint64
	GracePeriod       uint64
}

// TimelockConfig 时间锁参数
type TimelockConfig struct {
	MinDelay            uint64
	Executors           []common.Address // 空表示任何人都可执行
	RevokeDeployerAdmin bool
}

// TreasuryConfig 金库参数
type TreasuryConfig struct {
	Deposit *math.HexOrDecimal256 // 部署者存入金库的金额
}

// NodeConfig 本地运行参数
type NodeConfig struct {
	DataDir         string
	LogLevel        string
	DatabaseCache   int
	DatabaseHandles int
}

// DefaultConfig returns the configuration of the reference deployment. The
// supply is small enough for two 1000 token holders to reach quorum.
func DefaultConfig() *Config {
	chainCfg := chain.DefaultConfig()
	tokenCfg := votes.DefaultConfig()
	govCfg := governance.DefaultConfig()
	boot := genesis.DefaultBootstrapConfig()

	return &Config{
		Chain: ChainConfig{
			ChainID:     chainCfg.ChainID,
			GenesisTime: chainCfg.GenesisTime,
			BlockTime:   chainCfg.BlockTime,
			Deployer:    common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"),
		},
		Token: TokenConfig{
			Name:          tokenCfg.Name,
			Symbol:        tokenCfg.Symbol,
			Clock:         "blocknumber",
			InitialSupply: (*math.HexOrDecimal256)(new(big.Int).Mul(big.NewInt(10000), big.NewInt(params.Ether))),
		},
		Governor: GovernorConfig{
			Name:              govCfg.Name,
			VotingDelay:       govCfg.VotingDelay,
			VotingPeriod:      govCfg.VotingPeriod,
			ProposalThreshold: (*math.HexOrDecimal256)(new(big.Int).Set(govCfg.ProposalThreshold)),
			QuorumNumerator:   govCfg.QuorumNumerator,
			GracePeriod:       govCfg.GracePeriod,
		},
		Timelock: TimelockConfig{
			MinDelay:            boot.MinDelay,
			RevokeDeployerAdmin: boot.RevokeDeployerAdmin,
		},
		Treasury: TreasuryConfig{
			Deposit: math.NewHexOrDecimal256(0),
		},
		Node: NodeConfig{
			DataDir:         "govdata",
			LogLevel:        "info",
			DatabaseCache:   16,
			DatabaseHandles: 16,
		},
	}
}

// Load reads a TOML file on top of the defaults and applies environment
// overrides. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown config field %q in %s", undecoded[0].String(), path)
		}
	}
	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Encode renders the configuration as TOML.
func (cfg *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// applyEnv overrides node settings from the environment
func applyEnv(cfg *Config) {
	cfg.Node.DataDir = getEnvOrDefault("DAOGOV_DATADIR", cfg.Node.DataDir)
	cfg.Node.LogLevel = getEnvOrDefault("DAOGOV_LOGLEVEL", cfg.Node.LogLevel)
}

// getEnvOrDefault retrieves an environment variable or returns a default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// ChainConfig returns the execution environment parameters.
func (cfg *Config) ChainConfig() *chain.Config {
	return &chain.Config{
		ChainID:     cfg.Chain.ChainID,
		GenesisTime: cfg.Chain.GenesisTime,
		BlockTime:   cfg.Chain.BlockTime,
	}
}

// BootstrapConfig converts the file layout into a bootstrap configuration.
func (cfg *Config) BootstrapConfig() (*genesis.BootstrapConfig, error) {
	clock, err := votes.ParseClockMode(cfg.Token.Clock)
	if err != nil {
		return nil, err
	}
	boot := genesis.DefaultBootstrapConfig()
	boot.Token = &votes.Config{Name: cfg.Token.Name, Symbol: cfg.Token.Symbol, Clock: clock}
	boot.Governor = &governance.Config{
		Name:              cfg.Governor.Name,
		VotingDelay:       cfg.Governor.VotingDelay,
		VotingPeriod:      cfg.Governor.VotingPeriod,
		ProposalThreshold: bigOrZero(cfg.Governor.ProposalThreshold),
		QuorumNumerator:   cfg.Governor.QuorumNumerator,
		GracePeriod:       cfg.Governor.GracePeriod,
	}
	boot.InitialSupply = bigOrZero(cfg.Token.InitialSupply)
	boot.MinDelay = cfg.Timelock.MinDelay
	boot.Executors = cfg.Timelock.Executors
	boot.RevokeDeployerAdmin = cfg.Timelock.RevokeDeployerAdmin

	deposit, overflow := uint256.FromBig(bigOrZero(cfg.Treasury.Deposit))
	if overflow {
		return nil, fmt.Errorf("treasury deposit overflows 256 bits")
	}
	if !deposit.IsZero() {
		boot.TreasuryDeposit = deposit
		boot.Alloc = map[common.Address]*uint256.Int{cfg.Chain.Deployer: deposit.Clone()}
	}
	return boot, nil
}

func bigOrZero(v *math.HexOrDecimal256) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set((*big.Int)(v))
}
