// Package parser turns HAProxy-style configuration text into the typed
// model in parserconfig.
//
// This is the second stage of the pipeline: package grammar recognizes the
// text into a concrete parse tree, and the builders here classify each
// line, resolve cross-line semantics (service-address fallback to the
// first bind) and assemble the Configuration aggregate.
//
// Parsing is in-memory only (no file I/O) and all-or-nothing: on any
// error no partial Configuration is returned. Semantic validation
// (whether a referenced backend exists, port ranges, and so on) is not
// performed here; consumers of the model decide what to check.
package parser

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/idevyatovsky-hpmd/haconfig/pkg/grammar"
	"github.com/idevyatovsky-hpmd/haconfig/pkg/metrics"
	"github.com/idevyatovsky-hpmd/haconfig/pkg/parser/parserconfig"
)

// ParsedConfigCacheSize defines the number of parsed configurations to
// cache. Sized so that a working set of a current and a handful of
// candidate configurations stays resident when the same buffers are
// parsed repeatedly.
const ParsedConfigCacheSize = 16

// cacheSlot holds a single cached parsed configuration.
type cacheSlot struct {
	key    uint64
	config *parserconfig.Configuration
}

// parsedConfigCache is a content-keyed LRU cache for parsed
// configurations. A Configuration is an immutable snapshot of its input,
// so identical buffers can safely share one instance; the cache turns
// repeated parses of the same text into map lookups.
//
// The map gives O(1) lookups; the slice keeps LRU order, oldest first.
type parsedConfigCache struct {
	mu        sync.Mutex
	entries   map[uint64]*cacheSlot
	order     []uint64
	maxSize   int
	hitCount  atomic.Int64
	missCount atomic.Int64
}

var configCache = &parsedConfigCache{
	entries: make(map[uint64]*cacheSlot, ParsedConfigCacheSize),
	order:   make([]uint64, 0, ParsedConfigCacheSize),
	maxSize: ParsedConfigCacheSize,
}

// get returns the cached configuration for the key, or nil. A hit moves
// the entry to the most-recently-used position.
func (c *parsedConfigCache) get(key uint64) *parserconfig.Configuration {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok || entry.config == nil {
		return nil
	}

	c.moveToEnd(key)
	c.hitCount.Add(1)
	return entry.config
}

// moveToEnd moves the given key to the end of the LRU order.
// Must be called with c.mu held.
func (c *parsedConfigCache) moveToEnd(key uint64) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.order = append(c.order, key)
}

// set stores a parsed configuration, evicting the least recently used
// entry when full.
func (c *parsedConfigCache) set(key uint64, config *parserconfig.Configuration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key].config = config
		c.moveToEnd(key)
		return
	}

	if len(c.entries) >= c.maxSize {
		oldest := c.order[0]
		delete(c.entries, oldest)
		c.order = c.order[1:]
	}

	c.entries[key] = &cacheSlot{key: key, config: config}
	c.order = append(c.order, key)
}

// CacheStats returns the parsed-configuration cache hit/miss counters.
func CacheStats() (hits, misses int64) {
	return configCache.hitCount.Load(), configCache.missCount.Load()
}

// hashConfig computes the cache key for a configuration buffer.
func hashConfig(config string) uint64 {
	return xxhash.Sum64String(config)
}

// Parser parses configuration buffers into parserconfig.Configuration
// values. The zero-cost default is fine for most callers; options attach
// a logger or metrics.
type Parser struct {
	logger  *slog.Logger
	metrics *metrics.ParserMetrics
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger attaches a logger for debug-level parse diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) { p.logger = logger }
}

// WithMetrics attaches a metrics bundle; parse counts, durations and
// cache traffic are recorded on it.
func WithMetrics(m *metrics.ParserMetrics) Option {
	return func(p *Parser) { p.metrics = m }
}

// New creates a new Parser.
func New(opts ...Option) *Parser {
	p := &Parser{logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFromString parses one configuration buffer into a Configuration.
//
// The buffer must contain complete configuration text; reading it from a
// file or stream is the caller's responsibility. Identical buffers share a
// cached, immutable Configuration, so two parses of the same text are
// structurally (and usually physically) equal.
//
// Errors: *EmptyInputError for empty/whitespace-only input,
// *grammar.SyntaxError for unrecognizable text, *MissingAddressError for a
// frontend or listen with no resolvable address. Any error means no
// Configuration at all.
func (p *Parser) ParseFromString(config string) (*parserconfig.Configuration, error) {
	if !hasText(config) {
		p.countError()
		return nil, &EmptyInputError{}
	}

	key := hashConfig(config)
	if cached := configCache.get(key); cached != nil {
		if p.metrics != nil {
			p.metrics.ParsesTotal.Inc()
			p.metrics.CacheHits.Inc()
		}
		return cached, nil
	}

	start := time.Now()

	tree, err := grammar.Recognize(config)
	if err != nil {
		p.countError()
		return nil, fmt.Errorf("failed to recognize configuration: %w", err)
	}

	conf, err := p.assemble(tree)
	if err != nil {
		p.countError()
		return nil, fmt.Errorf("failed to build configuration: %w", err)
	}

	configCache.set(key, conf)
	configCache.missCount.Add(1)

	elapsed := time.Since(start)
	if p.metrics != nil {
		p.metrics.ParsesTotal.Inc()
		p.metrics.CacheMisses.Inc()
		p.metrics.ParseDuration.Observe(elapsed.Seconds())
	}
	p.logger.Debug("parsed configuration",
		"sections", len(tree.Sections),
		"duration", elapsed)

	return conf, nil
}

// assemble walks the tree once and dispatches every section to its
// builder. The switch is exhaustive over the grammar's section kinds; the
// grammar emits no other kind.
//
// Global is a single slot: a later global section overwrites an earlier
// one, so only the last occurrence in source order survives.
func (p *Parser) assemble(tree *grammar.Tree) (*parserconfig.Configuration, error) {
	conf := &parserconfig.Configuration{
		ServerIndex: make(map[string]map[string]*parserconfig.Server),
		UserIndex:   make(map[string]map[string]*parserconfig.User),
		GroupIndex:  make(map[string]map[string]*parserconfig.Group),
	}

	for _, sec := range tree.Sections {
		switch sec.Kind {
		case grammar.SectionGlobal:
			conf.Global = buildGlobal(sec)

		case grammar.SectionDefaults:
			conf.Defaults = append(conf.Defaults, buildDefaults(sec))

		case grammar.SectionFrontend:
			fe, err := buildFrontend(sec)
			if err != nil {
				return nil, err
			}
			conf.Frontends = append(conf.Frontends, fe)

		case grammar.SectionBackend:
			be := buildBackend(sec)
			conf.Backends = append(conf.Backends, be)
			if index := parserconfig.BuildServerIndex(be.Servers); index != nil {
				conf.ServerIndex[be.Name] = index
			}

		case grammar.SectionListen:
			l, err := buildListen(sec)
			if err != nil {
				return nil, err
			}
			conf.Listens = append(conf.Listens, l)
			if index := parserconfig.BuildServerIndex(l.Servers); index != nil {
				conf.ServerIndex[l.Name] = index
			}

		case grammar.SectionUserlist:
			ul := buildUserlist(sec)
			conf.Userlists = append(conf.Userlists, ul)
			if index := parserconfig.BuildUserIndex(ul.Users); index != nil {
				conf.UserIndex[ul.Name] = index
			}
			if index := parserconfig.BuildGroupIndex(ul.Groups); index != nil {
				conf.GroupIndex[ul.Name] = index
			}
		}
	}

	return conf, nil
}

func (p *Parser) countError() {
	if p.metrics != nil {
		p.metrics.ParsesTotal.Inc()
		p.metrics.ParseErrors.Inc()
	}
}

// hasText reports whether the buffer contains anything besides whitespace.
func hasText(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\r', '\n', '\v', '\f':
		default:
			return true
		}
	}
	return false
}
