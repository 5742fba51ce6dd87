// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2024 The Decred developers
// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/beetlecoin/beetled/blockchain"
	"github.com/beetlecoin/beetled/blockchain/standalone"
	"github.com/beetlecoin/beetled/internal/banmanager"
	"github.com/beetlecoin/beetled/internal/metrics"
	"github.com/beetlecoin/beetled/internal/version"
	"github.com/beetlecoin/beetled/masternode"
	"github.com/beetlecoin/beetled/mnpayments"
	"github.com/beetlecoin/beetled/spork"
)

// cleanInterval is the interval between two removals of the old masternode
// winners.
const cleanInterval = 5 * time.Minute

var cfg *config

// startMetricsServer serves the prometheus metrics on the passed address until
// the context is canceled.
func startMetricsServer(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		beetLog.Infof("Metrics server listening on %s", addr)
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			beetLog.Errorf("Metrics server: %v", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(),
			5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
}

// cleanPayments periodically removes the old masternode winners until the
// context is canceled.
func cleanPayments(ctx context.Context, payments *mnpayments.Payments) {
	ticker := time.NewTicker(cleanInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			payments.Clean()
			beetLog.Debugf("Masternode payments: %v", payments)

		case <-ctx.Done():
			return
		}
	}
}

// beetledMain is the real main function for beetled.  It is necessary to work
// around the fact that deferred functions do not run when os.Exit() is called.
func beetledMain() error {
	// Load configuration and parse command line.  This function also
	// initializes logging and configures it accordingly.
	appName := filepath.Base(os.Args[0])
	appName = strings.TrimSuffix(appName, filepath.Ext(appName))
	tcfg, _, err := loadConfig(appName)
	if err != nil {
		usageMessage := fmt.Sprintf("Use %s -h to show usage", appName)
		fmt.Fprintln(os.Stderr, err)
		var e errSuppressUsage
		if !errors.As(err, &e) {
			fmt.Fprintln(os.Stderr, usageMessage)
		}
		return err
	}
	cfg = tcfg
	defer func() {
		if logRotator != nil {
			logRotator.Close()
		}
	}()

	// Get a context that will be canceled when a shutdown signal has been
	// triggered from an OS signal such as SIGINT (Ctrl+C).
	ctx := shutdownListener()
	defer beetLog.Info("Shutdown complete")

	// Show version and home dir at startup.
	beetLog.Infof("Version %s (Go version %s %s/%s)", version.String(),
		runtime.Version(), runtime.GOOS, runtime.GOARCH)
	beetLog.Infof("Home dir: %s", cfg.HomeDir)
	if cfg.NoFileLogging {
		beetLog.Info("File logging disabled")
	}

	params := cfg.params

	// Load the spork database.
	sporks, err := spork.Open(params, cfg.DataDir)
	if err != nil {
		beetLog.Errorf("%v", err)
		return err
	}
	defer func() {
		beetLog.Infof("Gracefully shutting down the spork database...")
		sporks.Close()
	}()

	if shutdownRequested(ctx) {
		return nil
	}

	index := blockchain.NewBlockIndex(params)
	chainSync := newChainSync(index)
	banMgr := banmanager.NewBanManager(&banmanager.Config{
		DisableBanning: cfg.DisableBanning,
		BanThreshold:   cfg.BanThreshold,
		BanDuration:    cfg.BanDuration,
		MaxPeers:       defaultMaxPeers,
	})

	var payments *mnpayments.Payments
	mnList := masternode.NewList(&masternode.Config{
		Chain:       index,
		MinProtocol: func() uint32 { return payments.MinPaymentsProto() },
	})

	var active *mnpayments.ActiveMasternode
	if cfg.Masternode {
		active = &mnpayments.ActiveMasternode{
			Outpoint: cfg.mnOutpoint,
			Key:      cfg.mnKey,
		}
		beetLog.Infof("Running masternode %v", cfg.mnOutpoint)
	}

	payments = mnpayments.New(&mnpayments.Config{
		Params:           params,
		Chain:            index,
		Masternodes:      mnList,
		Sync:             chainSync,
		Sporks:           sporks,
		Subsidy:          standalone.NewSubsidyCache(params),
		Misbehaver:       banMgr,
		Metrics:          metrics.NewPayments(),
		LiteMode:         cfg.LiteMode,
		ActiveMasternode: active,
	})

	// Load the masternode payments cache.  A missing or damaged cache is
	// rebuilt from the network.
	paymentsDB := mnpayments.NewDB(cfg.DataDir, params)
	beetLog.Infof("Loading masternode payment cache from %s",
		paymentsDB.Path())
	if err := mnpayments.LoadPayments(paymentsDB, payments); err != nil {
		beetLog.Warnf("Unable to load %s (%v): %v", mnpayments.FileName,
			mnpayments.ReadResultOf(err), err)
	}
	beetLog.Infof("Masternode payments: %v", payments)
	defer func() {
		beetLog.Infof("Saving masternode payment cache to %s",
			paymentsDB.Path())
		if err := mnpayments.DumpPayments(paymentsDB, payments); err != nil {
			beetLog.Errorf("Unable to save %s: %v", mnpayments.FileName, err)
		}
	}()

	if cfg.MetricsListen != "" {
		startMetricsServer(ctx, cfg.MetricsListen)
	}
	go cleanPayments(ctx, payments)

	// Wait until the interrupt signal is received from an OS signal.
	<-ctx.Done()
	beetLog.Infof("Seen %d masternode winners", chainSync.SeenWinners())
	return nil
}

func main() {
	// Work around defer not working after os.Exit()
	if err := beetledMain(); err != nil {
		os.Exit(1)
	}
}
