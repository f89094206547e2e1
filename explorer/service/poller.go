package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Cogwheel-Validator/spectra-explorer/explorer/models"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/views"
)

// DefaultRefreshInterval is how often the dashboard is reloaded
const DefaultRefreshInterval = 5 * time.Second

// block heights fetched at once when filling the window
const windowFetchConcurrency = 4

// ErrNotLoaded is returned while no dashboard cycle has completed yet
var ErrNotLoaded = errors.New("dashboard not loaded yet")

// Snapshot is one published dashboard state. It is never modified after publication.
type Snapshot struct {
	Dashboard views.Dashboard     `json:"dashboard"`
	Data      views.DashboardData `json:"-"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// Poller reloads the dashboard on an interval and publishes snapshots
type Poller struct {
	explorer *Explorer
	interval time.Duration

	cycleMu sync.Mutex // serializes cycles, guards window
	window  *views.BlockWindow

	snapshot atomic.Pointer[Snapshot]

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPoller(e *Explorer, interval time.Duration, visibleBlocks int) *Poller {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Poller{
		explorer: e,
		interval: interval,
		window:   views.NewBlockWindow(visibleBlocks),
	}
}

// Snapshot returns the latest published dashboard, or ErrNotLoaded
func (p *Poller) Snapshot() (*Snapshot, error) {
	s := p.snapshot.Load()
	if s == nil {
		return nil, ErrNotLoaded
	}
	return s, nil
}

// Start refreshes the validator directory and begins polling. A loop started
// earlier is stopped first so only one loop runs at a time.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel, p.done = cancel, done
	go p.run(loopCtx, done)
}

// Stop ends the polling loop and waits for it to exit. Cycles still in flight are
// discarded.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Poller) stopLocked() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
	p.cancel, p.done = nil, nil
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	if n, err := p.explorer.RefreshValidators(ctx); err != nil {
		log.Warn().Err(err).Msg("validator refresh failed, proposers will show addresses")
	} else {
		log.Info().Int("validators", n).Msg("validator directory loaded")
	}

	p.cycleLogged(ctx)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.cycleLogged(ctx)
		}
	}
}

func (p *Poller) cycleLogged(ctx context.Context) {
	if err := p.Refresh(ctx); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("dashboard refresh failed")
	}
}

// Refresh runs one dashboard cycle and publishes its snapshot. A failed cycle keeps
// the previous snapshot.
func (p *Poller) Refresh(ctx context.Context) error {
	p.cycleMu.Lock()
	defer p.cycleMu.Unlock()

	data, err := p.explorer.DashboardData(ctx)
	if err != nil {
		return err
	}
	latest := data.LatestBlock
	fetched := p.fetchBlocks(ctx, p.window.Missing(latest.Height()))
	if err := ctx.Err(); err != nil {
		return err
	}
	p.window.Apply(latest, fetched)

	p.snapshot.Store(&Snapshot{
		Dashboard: views.Dashboard{
			Summary: views.NormalizeSummary(data),
			Blocks:  views.NormalizeBlockRows(p.window.Blocks(), p.explorer.Directory()),
		},
		Data:      data,
		UpdatedAt: time.Now(),
	})
	return nil
}

// fetchBlocks loads the given heights. Failed heights are left nil and fetched again
// on the next cycle.
func (p *Poller) fetchBlocks(ctx context.Context, heights []int64) []*models.BlockResponse {
	out := make([]*models.BlockResponse, len(heights))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(windowFetchConcurrency)
	for i, h := range heights {
		g.Go(func() error {
			b, err := p.explorer.api.FetchBlockByHeight(gctx, h)
			if err != nil {
				log.Debug().Err(err).Int64("height", h).Msg("window block fetch failed")
				return nil
			}
			out[i] = b
			return nil
		})
	}
	_ = g.Wait()
	return out
}
