package config

import "time"

func getDefaultAppConfig() *AppConfig {
	return &AppConfig{
		LogLevel:           "INFO",
		LogFormat:          "text",
		ProfilerAddr:       "",
		PrometheusEndpoint: "",
		PrometheusAddr:     ":2112",
		Network:            "mainnet",
		Peers: []*PeerConfig{
			{Host: "localhost", Port: 8333},
		},
		Db: &DbConfig{
			Path:        "data/chaindb",
			CacheMiB:    64,
			FileHandles: 64,
		},
		Requester: &RequesterConfig{
			TxRetryInterval:          5 * time.Second,
			BlkRetryInterval:         5 * time.Second,
			BlockDownloadWindow:      1024,
			MaxBlocksInFlightPerPeer: 16,
			DownloadTimeout:          60 * time.Second,
			PacerBurst:               500,
			PacerRate:                250,
			MaxThinTypeRequests:      100,
		},
		Sync: &SyncConfig{
			SendInterval:  time.Second,
			SweepInterval: 10 * time.Second,
			IBDMargin:     144,
		},
	}
}
