// Command dqmd serves the configured local sampler over HTTP for remote
// clients (package remote).
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/plan-systems/klog"

	"github.com/katalvlaran/circuiteq/config"
	"github.com/katalvlaran/circuiteq/service"
)

func main() {
	fset := flag.NewFlagSet("dqmd", flag.ExitOnError)
	klog.InitFlags(fset)
	_ = fset.Set("logtostderr", "true")
	_ = fset.Set("v", "2")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	cfgPath := fset.String("config", "", "YAML configuration file")
	addr := fset.String("addr", "", "listen address (overrides config)")
	_ = fset.Parse(os.Args[1:])

	code := serve(*cfgPath, *addr)
	klog.Flush()
	os.Exit(code)
}

func serve(cfgPath, addr string) int {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		klog.Errorf("%v", err)
		return 1
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	sampler, err := cfg.LocalSampler()
	if err != nil {
		klog.Errorf("%v", err)
		return 1
	}
	srv, err := service.New(sampler,
		service.WithCacheSize(cfg.Server.CacheSize),
		service.WithSolveTimeout(cfg.Server.SolveTimeout),
	)
	if err != nil {
		klog.Errorf("%v", err)
		return 1
	}

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		klog.Infof("dqmd: %s sampler listening on %s", cfg.Solver.Kind, cfg.Server.Addr)
		errc <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			klog.Errorf("dqmd: %v", err)
			return 1
		}
	case <-ctx.Done():
		klog.Infof("dqmd: shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			klog.Errorf("dqmd: shutdown: %v", err)
			return 1
		}
	}

	return 0
}
