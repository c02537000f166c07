package config

import (
	"testing"
	"time"

	"github.com/libsv/go-p2p/wire"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()

	// when
	cfg, err := Load()

	// then
	require.NoError(t, err)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "mainnet", cfg.Network)
	assert.Equal(t, 5*time.Second, cfg.Requester.TxRetryInterval)
	assert.Equal(t, int32(1024), cfg.Requester.BlockDownloadWindow)
	assert.Equal(t, 100, cfg.Requester.MaxThinTypeRequests)
	assert.Equal(t, time.Second, cfg.Sync.SendInterval)
	require.Len(t, cfg.Peers, 1)
	assert.Equal(t, 8333, cfg.Peers[0].Port)
}

func TestLoadEnvOverride(t *testing.T) {
	viper.Reset()
	t.Setenv("MEMBERCOIN_LOGLEVEL", "DEBUG")
	t.Setenv("MEMBERCOIN_NETWORK", "testnet")

	// when
	cfg, err := Load()

	// then
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, "testnet", cfg.Network)
}

func TestLoadBadPath(t *testing.T) {
	viper.Reset()

	_, err := Load("/does/not/exist")
	require.ErrorIs(t, err, ErrConfigPath)
}

func TestGetNetwork(t *testing.T) {
	tt := []struct {
		network string
		want    wire.BitcoinNet
		wantErr error
	}{
		{network: "mainnet", want: wire.MainNet},
		{network: "testnet", want: wire.TestNet3},
		{network: "regtest", want: wire.TestNet},
		{network: "moonnet", wantErr: ErrUnknownNetwork},
	}

	for _, tc := range tt {
		t.Run(tc.network, func(t *testing.T) {
			cfg := &AppConfig{Network: tc.network}

			net, err := cfg.GetNetwork()

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, net)
		})
	}
}
