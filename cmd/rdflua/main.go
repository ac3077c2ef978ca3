// Package main is the entry point for the rdflua demo host.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/zot/rdflua/internal/config"
	"github.com/zot/rdflua/internal/orchestrator"
	"github.com/zot/rdflua/internal/resolver"
	"github.com/zot/rdflua/internal/store"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}

	fs := cfg.RemainingArgs
	if len(fs) == 0 {
		fmt.Fprintln(os.Stderr, "usage: rdflua [flags] <script.lua>")
		return 1
	}
	scriptPath := fs[0]

	source, err := os.ReadFile(scriptPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", scriptPath, err)
		return 1
	}

	logger := config.NewLogger(cfg.Verbosity(), "[rdflua]")

	resolvers := resolver.NewRegistry()
	if cfg.Resolver.FileDir != "" {
		if err := resolvers.File.LoadDir(cfg.Resolver.FileDir); err != nil {
			fmt.Fprintf(os.Stderr, "failed to load modules from %s: %v\n", cfg.Resolver.FileDir, err)
			return 1
		}
		if cfg.Resolver.Watch {
			if err := resolvers.File.Watch(cfg.Resolver.FileDir, logger); err != nil {
				fmt.Fprintf(os.Stderr, "failed to watch %s: %v\n", cfg.Resolver.FileDir, err)
				return 1
			}
			defer resolvers.File.StopWatch()
		}
	}

	backing := newBackingStore(cfg.Store.Kind)

	orch := orchestrator.New(resolvers, logger)
	resp := orch.Run(string(source), backing)

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode response: %v\n", err)
		return 1
	}
	fmt.Println(string(out))

	if resp.Error != nil {
		return 1
	}
	return 0
}

func newBackingStore(kind string) any {
	switch kind {
	case "async-memory":
		return store.NewAsyncMemoryStore()
	default:
		return store.NewMemoryStore()
	}
}
