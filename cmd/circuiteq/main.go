// Command circuiteq reports whether two transistor netlists are equivalent
// (or merely isomorphic) and prints the node mapping.
//
//	circuiteq [-config file] [-mode equivalence|isomorphism] [-solver exact|anneal|remote] netlist1 netlist2
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"

	"github.com/plan-systems/klog"

	"github.com/katalvlaran/circuiteq/config"
	"github.com/katalvlaran/circuiteq/iso"
	"github.com/katalvlaran/circuiteq/netlist"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	fset := flag.NewFlagSet("circuiteq", flag.ContinueOnError)
	klog.InitFlags(fset)
	_ = fset.Set("logtostderr", "true")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})
	defer klog.Flush()

	cfgPath := fset.String("config", "", "YAML configuration file")
	mode := fset.String("mode", "", "equivalence or isomorphism (overrides config)")
	kind := fset.String("solver", "", "exact, anneal or remote (overrides config)")
	fset.Usage = func() {
		fmt.Fprintln(fset.Output(), "usage: circuiteq [flags] netlist1 netlist2")
		fset.PrintDefaults()
	}
	if err := fset.Parse(args); err != nil {
		return 2
	}
	if fset.NArg() != 2 {
		fset.Usage()
		return 2
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		klog.Errorf("%v", err)
		return 1
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *kind != "" {
		cfg.Solver.Kind = *kind
	}
	if err := cfg.Validate(); err != nil {
		klog.Errorf("%v", err)
		return 1
	}

	loader, err := netlist.NewLoader(2)
	if err != nil {
		klog.Errorf("%v", err)
		return 1
	}
	g1, err := loader.Load(fset.Arg(0))
	if err != nil {
		klog.Errorf("%v", err)
		return 1
	}
	g2, err := loader.Load(fset.Arg(1))
	if err != nil {
		klog.Errorf("%v", err)
		return 1
	}
	klog.V(1).Infof("%s: %d nodes, %d edges; %s: %d nodes, %d edges",
		fset.Arg(0), g1.VertexCount(), g1.EdgeCount(), fset.Arg(1), g2.VertexCount(), g2.EdgeCount())

	sampler, err := cfg.NewSampler()
	if err != nil {
		klog.Errorf("%v", err)
		return 1
	}
	matcher, err := iso.NewMatcher(sampler, cfg.MatchOptions()...)
	if err != nil {
		klog.Errorf("%v", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var res iso.Result
	noun := "equivalence"
	if cfg.Mode == config.ModeIsomorphism {
		noun = "isomorphism"
		res, err = matcher.FindIsomorphism(ctx, g1, g2)
	} else {
		res, err = matcher.FindEquivalence(ctx, g1, g2)
	}
	if err != nil {
		klog.Errorf("%s query failed: %v", noun, err)
		return 1
	}
	klog.V(1).Infof("best energy %g, ground %g, %d samples scanned", res.BestEnergy, res.GroundEnergy, res.Scanned)

	printResult(stdout, cfg.Mode, res)

	return 0
}

func printResult(w io.Writer, mode string, res iso.Result) {
	if !res.Found {
		if mode == config.ModeIsomorphism {
			fmt.Fprintln(w, "No isomorphism found")
		} else {
			fmt.Fprintln(w, "No equivalence found")
		}
		return
	}
	if mode == config.ModeIsomorphism {
		fmt.Fprintln(w, "Circuits are isomorphic:")
	} else {
		fmt.Fprintln(w, "Circuits are equivalent:")
	}
	keys := make([]string, 0, len(res.Mapping))
	for k := range res.Mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s -> %s\n", k, res.Mapping[k])
	}
}
