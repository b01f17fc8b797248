// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package fingerprint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/jeranaias/painel-tui/internal/storage"
)

// SaltKey is the storage key of the per-installation salt.
const SaltKey = "deviceSalt"

// DefaultTimeout bounds signal collection.
const DefaultTimeout = 5 * time.Second

// Signal is one named device property.
type Signal struct {
	Name  string
	Value string
}

// Collector returns zero or more signals. A returned error aborts the whole
// collection and the fingerprint resolves to "".
type Collector func(ctx context.Context) ([]Signal, error)

// Provider computes the fingerprint once and caches it.
type Provider struct {
	collectors []Collector
	store      storage.Store
	timeout    time.Duration

	once sync.Once
	done chan struct{}

	mu    sync.RWMutex
	value string
}

// Option configures a Provider.
type Option func(*Provider)

// WithCollectors replaces the default signal collectors.
func WithCollectors(c ...Collector) Option {
	return func(p *Provider) { p.collectors = c }
}

// WithStore persists the installation salt in st.
func WithStore(st storage.Store) Option {
	return func(p *Provider) { p.store = st }
}

// WithTimeout bounds collection. Zero means DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Provider) { p.timeout = d }
}

// New creates a provider. Nothing is collected until Start or Wait.
func New(opts ...Option) *Provider {
	p := &Provider{
		collectors: DefaultCollectors(),
		timeout:    DefaultTimeout,
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.timeout <= 0 {
		p.timeout = DefaultTimeout
	}
	return p
}

// Start begins collection in the background. Only the first call has any
// effect.
func (p *Provider) Start(ctx context.Context) {
	p.once.Do(func() {
		go p.run(ctx)
	})
}

// Done is closed once the fingerprint has resolved.
func (p *Provider) Done() <-chan struct{} {
	return p.done
}

// Pending reports whether the fingerprint is still being computed.
func (p *Provider) Pending() bool {
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

// Value returns the fingerprint and whether it has resolved. A resolved
// value may be "" if collection failed.
func (p *Provider) Value() (string, bool) {
	if p.Pending() {
		return "", false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.value, true
}

// Wait starts collection if needed and blocks until it resolves or ctx is
// done. It returns "" when collection failed or ctx expired first.
func (p *Provider) Wait(ctx context.Context) string {
	p.Start(context.WithoutCancel(ctx))
	select {
	case <-p.done:
		v, _ := p.Value()
		return v
	case <-ctx.Done():
		return ""
	}
}

func (p *Provider) run(ctx context.Context) {
	value := ""
	defer func() {
		if r := recover(); r != nil {
			log.Printf("FINGERPRINT | collection panicked: %v", r)
			value = ""
		}
		p.mu.Lock()
		p.value = value
		p.mu.Unlock()
		close(p.done)
	}()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	signals, err := p.collect(ctx)
	if err != nil {
		log.Printf("FINGERPRINT | collection failed: %v", err)
		return
	}
	value = Hash(signals)
}

func (p *Provider) collect(ctx context.Context) ([]Signal, error) {
	var all []Signal
	for _, c := range p.collectors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s, err := c(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, s...)
	}
	if p.store != nil {
		salt, err := p.salt(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, Signal{Name: "salt", Value: salt})
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("no device signals collected")
	}
	return all, nil
}

// salt returns the installation salt, creating it on first use.
func (p *Provider) salt(ctx context.Context) (string, error) {
	v, ok, err := p.store.Get(ctx, SaltKey)
	if err != nil {
		return "", fmt.Errorf("read salt: %w", err)
	}
	if ok && v != "" {
		return v, nil
	}
	v = uuid.NewString()
	if err := p.store.Set(ctx, SaltKey, v); err != nil {
		return "", fmt.Errorf("write salt: %w", err)
	}
	return v, nil
}

// Hash returns the hex BLAKE2b-256 digest of signals. Order does not
// matter; empty values are skipped.
func Hash(signals []Signal) string {
	lines := make([]string, 0, len(signals))
	for _, s := range signals {
		if s.Value == "" {
			continue
		}
		lines = append(lines, s.Name+"="+s.Value)
	}
	sort.Strings(lines)
	sum := blake2b.Sum256([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(sum[:])
}

// =============================================================================
// DEFAULT COLLECTORS
// =============================================================================

// DefaultCollectors returns the built-in signal collectors.
func DefaultCollectors() []Collector {
	return []Collector{hostSignals, platformSignals, environmentSignals}
}

func hostSignals(context.Context) ([]Signal, error) {
	host, _ := os.Hostname()
	return []Signal{
		{Name: "hostname", Value: host},
		{Name: "cpus", Value: fmt.Sprint(runtime.NumCPU())},
	}, nil
}

func platformSignals(context.Context) ([]Signal, error) {
	out := []Signal{
		{Name: "os", Value: runtime.GOOS},
		{Name: "arch", Value: runtime.GOARCH},
	}
	return append(out, kernelSignals()...), nil
}

func environmentSignals(context.Context) ([]Signal, error) {
	home, _ := os.UserHomeDir()
	zone, _ := time.Now().Zone()
	return []Signal{
		{Name: "home", Value: home},
		{Name: "tz", Value: zone},
		{Name: "lang", Value: os.Getenv("LANG")},
		{Name: "term", Value: os.Getenv("TERM")},
	}, nil
}
