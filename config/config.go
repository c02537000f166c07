package config

import (
	"errors"
	"time"

	"github.com/libsv/go-p2p/wire"
)

var ErrUnknownNetwork = errors.New("unknown Bitcoin network")

type AppConfig struct {
	LogLevel           string            `json:"logLevel" mapstructure:"logLevel"`
	LogFormat          string            `json:"logFormat" mapstructure:"logFormat"`
	ProfilerAddr       string            `json:"profilerAddr" mapstructure:"profilerAddr"`
	PrometheusEndpoint string            `json:"prometheusEndpoint" mapstructure:"prometheusEndpoint"`
	PrometheusAddr     string            `json:"prometheusAddr" mapstructure:"prometheusAddr"`
	Network            string            `json:"network" mapstructure:"network"`
	Peers              []*PeerConfig     `json:"peers" mapstructure:"peers"`
	Db                 *DbConfig         `json:"db" mapstructure:"db"`
	Requester          *RequesterConfig  `json:"requester" mapstructure:"requester"`
	Sync               *SyncConfig       `json:"sync" mapstructure:"sync"`
}

type PeerConfig struct {
	Host string `json:"host" mapstructure:"host"`
	Port int    `json:"port" mapstructure:"port"`
}

type DbConfig struct {
	Path        string `json:"path" mapstructure:"path"`
	CacheMiB    int    `json:"cacheMiB" mapstructure:"cacheMiB"`
	FileHandles int    `json:"fileHandles" mapstructure:"fileHandles"`
}

type RequesterConfig struct {
	TxRetryInterval          time.Duration `json:"txRetryInterval" mapstructure:"txRetryInterval"`
	BlkRetryInterval         time.Duration `json:"blkRetryInterval" mapstructure:"blkRetryInterval"`
	BlockDownloadWindow      int32         `json:"blockDownloadWindow" mapstructure:"blockDownloadWindow"`
	MaxBlocksInFlightPerPeer int           `json:"maxBlocksInFlightPerPeer" mapstructure:"maxBlocksInFlightPerPeer"`
	DownloadTimeout          time.Duration `json:"downloadTimeout" mapstructure:"downloadTimeout"`
	PacerBurst               float64       `json:"pacerBurst" mapstructure:"pacerBurst"`
	PacerRate                float64       `json:"pacerRate" mapstructure:"pacerRate"`
	MaxThinTypeRequests      int           `json:"maxThinTypeRequests" mapstructure:"maxThinTypeRequests"`
}

type SyncConfig struct {
	SendInterval  time.Duration `json:"sendInterval" mapstructure:"sendInterval"`
	SweepInterval time.Duration `json:"sweepInterval" mapstructure:"sweepInterval"`
	IBDMargin     int32         `json:"ibdMargin" mapstructure:"ibdMargin"`
}

// GetNetwork maps the configured network name to its wire magic.
func (c *AppConfig) GetNetwork() (wire.BitcoinNet, error) {
	switch c.Network {
	case "mainnet":
		return wire.MainNet, nil
	case "testnet":
		return wire.TestNet3, nil
	case "regtest":
		return wire.TestNet, nil
	default:
		return 0, ErrUnknownNetwork
	}
}

func (c *AppConfig) IsPrometheusEnabled() bool {
	return c.PrometheusEndpoint != "" && c.PrometheusAddr != ""
}
