package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/libsv/go-p2p/chaincfg/chainhash"
	"github.com/libsv/go-p2p/wire"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/memberapp/Membercoin/config"
	"github.com/memberapp/Membercoin/internal/chain"
	"github.com/memberapp/Membercoin/internal/chaindb"
	mcLogger "github.com/memberapp/Membercoin/internal/logger"
	"github.com/memberapp/Membercoin/internal/netsync"
	"github.com/memberapp/Membercoin/internal/p2p"
	"github.com/memberapp/Membercoin/internal/requester"
	"github.com/memberapp/Membercoin/internal/validator"
	"github.com/memberapp/Membercoin/internal/version"
)

func main() {
	err := run()
	if err != nil {
		log.Fatalf("failed to run membercoind: %v", err)
	}

	os.Exit(0)
}

func run() error {
	configDir := parseFlags()

	cfg, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("failed to load app config: %w", err)
	}

	logger, err := mcLogger.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to create logger: %v", err)
	}

	hostname, err := os.Hostname()
	if err != nil {
		return fmt.Errorf("failed to get host name: %v", err)
	}

	logger = logger.With(slog.String("host", hostname))

	logger.Info("Starting membercoind", slog.String("version", version.Version), slog.String("commit", version.Commit))

	network, err := cfg.GetNetwork()
	if err != nil {
		return fmt.Errorf("failed to resolve network: %w", err)
	}

	shutdownFns := make([]func(), 0)

	go func() {
		if cfg.ProfilerAddr != "" {
			logger.Info(fmt.Sprintf("Starting profiler on http://%s/debug/pprof", cfg.ProfilerAddr))

			err := http.ListenAndServe(cfg.ProfilerAddr, nil)
			if err != nil {
				logger.Error("failed to start profiler server", slog.String("err", err.Error()))
			}
		}
	}()

	go func() {
		if cfg.IsPrometheusEnabled() {
			logger.Info("Starting prometheus", slog.String("endpoint", cfg.PrometheusEndpoint))
			http.Handle(cfg.PrometheusEndpoint, promhttp.Handler())
			err := http.ListenAndServe(cfg.PrometheusAddr, nil)
			if err != nil {
				logger.Error("failed to start prometheus server", slog.String("err", err.Error()))
			}
		}
	}()

	store, err := chaindb.Open(logger, cfg.Db.Path, cfg.Db.CacheMiB, cfg.Db.FileHandles)
	if err != nil {
		return fmt.Errorf("failed to open chain db: %w", err)
	}
	shutdownFns = append(shutdownFns, func() {
		err := store.Close()
		if err != nil {
			logger.Error("failed to close chain db", slog.String("err", err.Error()))
		}
	})

	chainIndex, err := loadChainIndex(store, network)
	if err != nil {
		appCleanup(logger, shutdownFns)
		return fmt.Errorf("failed to load chain index: %w", err)
	}
	logger.Info("Loaded chain index", slog.Int("height", int(chainIndex.Height())))

	peerManager := p2p.NewPeerManager(logger, network, p2p.WithRestartUnhealthyPeers())

	req := requester.New(logger, peerManager, chainIndex,
		requester.WithTxRetryInterval(cfg.Requester.TxRetryInterval),
		requester.WithBlockRetryInterval(cfg.Requester.BlkRetryInterval),
		requester.WithBlockDownloadWindow(cfg.Requester.BlockDownloadWindow),
		requester.WithMaxBlocksInFlightPerPeer(cfg.Requester.MaxBlocksInFlightPerPeer),
		requester.WithDownloadTimeout(cfg.Requester.DownloadTimeout),
		requester.WithRequestPacer(cfg.Requester.PacerBurst, cfg.Requester.PacerRate),
		requester.WithMaxThinTypeRequests(cfg.Requester.MaxThinTypeRequests),
	)

	statsCollector := requester.NewStatsCollector(logger, req)
	err = statsCollector.Start()
	if err != nil {
		appCleanup(logger, shutdownFns)
		return fmt.Errorf("failed to start stats collector: %w", err)
	}

	syncManager := netsync.NewManager(logger, req, peerManager, chainIndex,
		netsync.WithSendInterval(cfg.Sync.SendInterval),
		netsync.WithSweepInterval(cfg.Sync.SweepInterval),
		netsync.WithIBDMargin(cfg.Sync.IBDMargin),
	)
	shutdownFns = append(shutdownFns, syncManager.Shutdown, statsCollector.Shutdown, peerManager.Shutdown)

	msgHandler := netsync.NewMessageHandler(logger, req, chainIndex, store, validator.New(), syncManager.IsIBD)

	for _, peerCfg := range cfg.Peers {
		address := fmt.Sprintf("%s:%d", peerCfg.Host, peerCfg.Port)
		peer := p2p.NewPeer(logger, msgHandler, address, network,
			p2p.WithUserAgent("membercoind", version.Version),
		)

		err = peerManager.AddPeer(peer)
		if err != nil {
			appCleanup(logger, shutdownFns)
			return fmt.Errorf("failed to add peer %s: %w", address, err)
		}

		if ok := peer.Connect(); !ok {
			logger.Warn("Failed to connect to peer on startup, will retry", slog.String("address", address))
		}
	}

	syncManager.Start()

	// setup signal catching
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-signalChan
	logger.Info("Received shutdown signal", slog.String("reason", sig.String()))

	appCleanup(logger, shutdownFns)

	return nil
}

// loadChainIndex rebuilds the in-memory header tree from the header
// records persisted in the chain db, seeding the genesis block for
// the configured network.
func loadChainIndex(store *chaindb.Store, network wire.BitcoinNet) (*chain.Index, error) {
	genesisHash, err := chain.GenesisHash(network)
	if err != nil {
		return nil, err
	}

	index := chain.NewIndex()
	index.AddGenesis(*genesisHash)

	err = store.LoadHeaders(func(hash, parent chainhash.Hash, height int32) error {
		if height == 0 {
			return nil
		}
		_, err := index.AddHeader(hash, parent)
		return err
	})
	if err != nil {
		return nil, err
	}

	best, err := store.BestBlockHash()
	if err != nil {
		if errors.Is(err, chaindb.ErrNotFound) {
			return index, nil
		}
		return nil, err
	}

	tip := index.LookupNode(best)
	if tip == nil {
		return nil, chain.ErrUnknownNode
	}
	err = index.SetTip(tip)
	if err != nil {
		return nil, err
	}

	return index, nil
}

func appCleanup(logger *slog.Logger, shutdownFns []func()) {
	logger.Info("cleaning up")
	for _, fn := range shutdownFns {
		fn()
	}
}

func parseFlags() string {
	configDir := flag.String("config", "", "path to configuration file")
	help := flag.Bool("help", false, "Show help")

	flag.Parse()

	if *help {
		fmt.Println("usage: membercoind [options]")
		fmt.Println("where options are:")
		fmt.Println("")
		fmt.Println("    -config=/location")
		fmt.Println("          directory to look for config (default='')")
		fmt.Println("")
		os.Exit(0)
	}

	return *configDir
}
