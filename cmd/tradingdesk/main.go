package main

import (
	"flag"
	"os"
	"path/filepath"

	pyroscope "github.com/grafana/pyroscope-go"
	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"

	"tradedesk/internal/app"
	"tradedesk/internal/histdata"
	"tradedesk/internal/ops"
	"tradedesk/pkg/conn"
)

func main() {
	configPath := flag.String("config", "", "Path to JSON config (default: built-in treasury desk)")
	dataDir := flag.String("data-dir", "data", "Directory holding the input feed files")
	outDir := flag.String("out-dir", "", "Audit output directory (overrides config)")
	profile := flag.Bool("profile", false, "Enable continuous profiling")
	profileAddr := flag.String("profile-addr", "http://localhost:4040", "Pyroscope server address")
	flag.Parse()

	if *profile {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: "tradedesk",
			ServerAddress:   *profileAddr,
			Tags:            map[string]string{"env": "local"},
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseSpace,
			},
		})
		if err != nil {
			logs.Errorf("starting profiler: %+v", err)
		} else {
			defer func() { _ = profiler.Stop() }()
		}
	}

	if err := run(*configPath, *dataDir, *outDir); err != nil {
		logs.Errorf("desk failed: %+v", err)
		os.Exit(1)
	}
}

func run(configPath, dataDir, outDir string) error {
	loaded := ops.Default()
	if configPath != "" {
		var err error
		loaded, err = ops.Load(configPath)
		if err != nil {
			return err
		}
	}
	if outDir != "" {
		loaded.OutputDir = outDir
	}

	store, err := openStore(loaded)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logs.Errorf("closing audit store: %+v", err)
		}
	}()

	desk := app.NewDesk(app.Options{
		RefData:     loaded.RefData,
		Store:       store,
		GUIOut:      os.Stdout,
		GUIThrottle: loaded.GUIThrottle,
	})

	feeds, closeFeeds, err := openFeeds(dataDir)
	if err != nil {
		return err
	}
	defer closeFeeds()

	done := make(chan error, 1)
	go func() { done <- desk.Run(feeds) }()

	select {
	case err := <-done:
		return err
	case <-sys.Shutdown():
		// Closing the feed files makes the replay stop at its next
		// read; wait for it so the audit store is not closed under a
		// live writer.
		logs.Info("shutdown signal received, closing desk")
		closeFeeds()
		<-done
		return nil
	}
}

func openStore(loaded ops.Loaded) (histdata.Store, error) {
	if !loaded.Database.Enabled {
		return histdata.NewFileStore(loaded.OutputDir)
	}
	db, err := conn.Open(conn.Option{
		Host:     loaded.Database.Host,
		Port:     loaded.Database.Port,
		User:     loaded.Database.User,
		Password: loaded.Database.Password,
		Database: loaded.Database.Database,
	})
	if err != nil {
		return nil, err
	}
	return histdata.NewDBStore(db)
}

func openFeeds(dataDir string) (app.Feeds, func(), error) {
	var feeds app.Feeds
	var files []*os.File
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	open := func(name string) *os.File {
		f, err := os.Open(filepath.Join(dataDir, name))
		if err != nil {
			logs.Infof("feed %s not found, skipping", name)
			return nil
		}
		files = append(files, f)
		return f
	}

	if f := open("prices.txt"); f != nil {
		feeds.Prices = f
	}
	if f := open("trades.txt"); f != nil {
		feeds.Trades = f
	}
	if f := open("marketdata.txt"); f != nil {
		feeds.Market = f
	}
	if f := open("inquiries.txt"); f != nil {
		feeds.Inquiries = f
	}
	return feeds, closeAll, nil
}
