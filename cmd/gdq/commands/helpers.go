package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/l3aro/go-dominance-query/internal/config"
	"github.com/l3aro/go-dominance-query/internal/log"
	"github.com/l3aro/go-dominance-query/pkg/cache"
	"github.com/l3aro/go-dominance-query/pkg/cfg"
	"github.com/l3aro/go-dominance-query/pkg/dom"
)

// target is a resolved analysis subject.
type target struct {
	fn      *cfg.Function
	path    string
	content []byte
}

// loadTarget resolves the function under analysis: a graph document when
// graphPath is set, otherwise a Go source file plus function name from args.
func loadTarget(graphPath string, args []string) (*target, error) {
	if graphPath != "" {
		doc, err := cfg.LoadDocument(graphPath)
		if err != nil {
			return nil, err
		}
		fn, err := doc.Function()
		if err != nil {
			return nil, err
		}
		content, err := os.ReadFile(graphPath)
		if err != nil {
			return nil, fmt.Errorf("reading graph document %s: %w", graphPath, err)
		}
		return &target{fn: fn, path: graphPath, content: content}, nil
	}

	if len(args) != 2 {
		return nil, fmt.Errorf("expected <file> <function> arguments (or --graph)")
	}
	filePath, functionName := args[0], args[1]

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, expected a file: %s", filePath)
	}
	if !strings.HasSuffix(filePath, ".go") {
		return nil, fmt.Errorf("unsupported file type: %s (only .go files supported; use --graph for other inputs)", filePath)
	}

	fn, err := cfg.ExtractGoFunction(filePath, functionName)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			if suggestion := similarFunction(filePath, functionName); suggestion != "" {
				return nil, fmt.Errorf("%w\nDid you mean: %s?", err, suggestion)
			}
		}
		return nil, err
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", filePath, err)
	}
	return &target{fn: fn, path: filePath, content: content}, nil
}

// similarFunction finds a declared function with a similar name (simple
// prefix/contains match).
func similarFunction(filePath, funcName string) string {
	names, err := cfg.ListGoFunctions(filePath)
	if err != nil {
		return ""
	}
	lower := strings.ToLower(funcName)
	for _, name := range names {
		nameLower := strings.ToLower(name)
		if strings.Contains(nameLower, lower) || strings.Contains(lower, nameLower) {
			return name
		}
	}
	return ""
}

// newLogger builds the command logger from configuration.
func newLogger(cfgc *config.Config) log.Logger {
	level := log.InfoLevel
	if cfgc.Verbose {
		level = log.DebugLevel
	}
	return log.New(log.LoggerConfig{Level: level, JSONOutput: cfgc.JSONLogs})
}

// analyzeTarget computes (or recalls from the cache) the dominance analysis
// of a target. Verification always bypasses the cache: its whole point is
// recomputation.
func analyzeTarget(cfgc *config.Config, logger log.Logger, t *target, verify, noCache bool) *dom.Result {
	useCache := !noCache && !verify && cfgc.CacheDir != ""
	cacheFile := filepath.Join(cfgc.CacheDir, "results.msgpack")
	key := cache.Key(t.path, t.content, t.fn.Name)

	var c *cache.ResultCache
	if useCache {
		c = cache.New(cache.Options{MaxSize: cfgc.CacheMaxEntries})
		if err := c.LoadFile(cacheFile); err != nil {
			logger.Warn("ignoring unreadable result cache", "path", cacheFile, "error", err)
		} else if result, ok := c.Get(key); ok {
			logger.Debug("result cache hit", "key", key)
			return result
		}
	}

	info := dom.Analyze(t.fn, dom.Options{Verify: verify, Logger: logger})
	result := info.Result()

	if useCache {
		c.Set(key, result)
		if err := c.SaveFile(cacheFile); err != nil {
			logger.Warn("failed to persist result cache", "path", cacheFile, "error", err)
		}
	}
	return result
}
