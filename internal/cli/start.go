package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"nftswapd/internal/config"
	"nftswapd/internal/core/ledger"
	"nftswapd/internal/core/ledger/genesis"
	"nftswapd/internal/core/ledger/manager"
	"nftswapd/internal/core/tx"
	"nftswapd/internal/pricefeed"
	"nftswapd/internal/rpc"
	"nftswapd/internal/storage"
)

// snapshotPoll is how often the snapshot loop checks the applied-transaction
// count against snapshot_every.
const snapshotPoll = time.Second

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the nftswapd daemon",
	Long: `Start the daemon: open the storage backend, restore the latest
ledger snapshot (or create genesis state), and serve the JSON-RPC API
until interrupted.`,
	RunE: runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)

	// Bare "nftswapd" starts the daemon, matching how operators run it.
	rootCmd.RunE = runStart
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	db, err := storage.Open(storage.Config{
		Backend:     cfg.Storage.Backend,
		Path:        cfg.StoragePath(),
		Compression: cfg.Storage.Compression,
	})
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	snapshots, err := manager.NewSnapshotStore(db)
	if err != nil {
		return err
	}

	l, err := snapshots.LoadLatest()
	if err != nil {
		return err
	}
	if l == nil {
		gen, err := config.LoadGenesis(cfg)
		if err != nil {
			return err
		}
		l, err = genesis.Create(gen)
		if err != nil {
			return fmt.Errorf("create genesis ledger: %w", err)
		}
		if !quiet {
			log.Printf("created genesis ledger: %d entries", l.EntryCount())
		}
	} else if !quiet {
		log.Printf("restored ledger %d: %d entries (snapshots %s)",
			l.Sequence(), l.EntryCount(), snapshots.Ranges())
	}

	engine := tx.NewEngine(l, tx.EngineConfig{
		AdminAccount:           cfg.Engine.AdminAccount,
		MaxBatchSize:           cfg.Engine.MaxBatchSize,
		MinFeeBps:              cfg.Engine.MinFeeBps,
		MaxFeeBps:              cfg.Engine.MaxFeeBps,
		RoyaltySingleRecipient: cfg.Engine.RoyaltySingleRecipient,
	})

	var feed pricefeed.Recorder = pricefeed.Noop{}
	if cfg.Pricefeed.Enabled {
		recorder, err := pricefeed.NewSQLiteRecorder(cfg.PricefeedPath())
		if err != nil {
			return fmt.Errorf("open trade recorder: %w", err)
		}
		defer recorder.Close()
		engine.SetRecorder(recorder)
		feed = recorder
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)

	if cfg.RPC.Enabled {
		var cache *manager.EntryCache
		if cfg.RPC.CacheEntries > 0 {
			cache, err = manager.NewEntryCache(manager.EntryCacheConfig{MaxEntries: cfg.RPC.CacheEntries})
			if err != nil {
				return fmt.Errorf("create entry cache: %w", err)
			}
		}
		server := rpc.NewServer(&rpc.Services{
			Ledger:    l,
			Engine:    engine,
			Feed:      feed,
			Snapshots: snapshots,
			Cache:     cache,
			Version:   Version,
			StartTime: time.Now(),
		})
		group.Go(func() error {
			if !quiet {
				log.Printf("rpc listening on %s", cfg.RPC.Listen)
			}
			return server.ListenAndServe(ctx, cfg.RPC.Listen)
		})
	}

	if cfg.SnapshotEvery > 0 {
		group.Go(func() error {
			return snapshotLoop(ctx, engine, l, snapshots, cfg.SnapshotEvery)
		})
	}

	group.Go(func() error {
		<-ctx.Done()
		return nil
	})

	if err := group.Wait(); err != nil {
		return err
	}
	if !quiet {
		log.Printf("shutdown complete")
	}
	return nil
}

// snapshotLoop closes and persists the ledger after every batch of applied
// transactions. On shutdown it takes a final snapshot if anything applied
// since the last one.
func snapshotLoop(ctx context.Context, engine *tx.Engine, l *ledger.Ledger, snapshots *manager.SnapshotStore, every uint32) error {
	ticker := time.NewTicker(snapshotPoll)
	defer ticker.Stop()

	lastSeq := engine.Sequence()
	snapshot := func() error {
		seq := engine.Sequence()
		if seq == lastSeq {
			return nil
		}
		h := l.Close(seq - lastSeq)
		if err := snapshots.Save(h, l); err != nil {
			return fmt.Errorf("snapshot ledger %d: %w", h.Sequence, err)
		}
		lastSeq = seq
		if !quiet {
			log.Printf("snapshot ledger %d: %d txs, %d entries", h.Sequence, h.TxCount, l.EntryCount())
		}
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return snapshot()
		case <-ticker.C:
			if engine.Sequence()-lastSeq < every {
				continue
			}
			if err := snapshot(); err != nil {
				return err
			}
		}
	}
}
