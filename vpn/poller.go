package vpn

import (
	"context"
	"sync"
	"time"

	"github.com/yllada/nordvpn-indicator/common"
)

// StatusSource queries the raw connection status.
type StatusSource interface {
	QueryStatus(ctx context.Context) (string, error)
}

// AccountMarker records that the user has connected at least once.
type AccountMarker interface {
	HasAccountMarker() bool
	TouchAccountMarker() error
}

// Poller samples the connection status at a fixed interval and reports
// transitions. It owns the current ConnectionStatus.
type Poller struct {
	mu             sync.RWMutex
	source         StatusSource
	marker         AccountMarker
	interval       time.Duration
	running        bool
	stopChan       chan struct{}
	status         ConnectionStatus
	onStatusChange func(status ConnectionStatus)
}

// NewPoller creates a poller. marker may be nil.
func NewPoller(source StatusSource, marker AccountMarker, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = common.PollInterval
	}
	return &Poller{
		source:   source,
		marker:   marker,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// SetOnStatusChange sets a callback for status changes. It runs on the
// polling goroutine; UI code must hop to its own thread.
func (p *Poller) SetOnStatusChange(callback func(status ConnectionStatus)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onStatusChange = callback
}

// Start begins polling. The first query runs immediately.
func (p *Poller) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.stopChan = make(chan struct{})
	stop := p.stopChan
	p.mu.Unlock()

	common.LogInfo("Status poller started (interval: %v)", p.interval)

	go p.runLoop(stop)
}

// Stop ends polling. An in-flight query is not interrupted; its result is
// dropped once it returns.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.stopChan)
	p.mu.Unlock()

	common.LogInfo("Status poller stopped")
}

// IsRunning returns whether the poller is currently running.
func (p *Poller) IsRunning() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.running
}

// Status returns the last polled status.
func (p *Poller) Status() ConnectionStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

func (p *Poller) runLoop(stop chan struct{}) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(stop)
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			p.poll(stop)
		}
	}
}

// poll runs one query and reports a transition, if any.
func (p *Poller) poll(stop chan struct{}) {
	raw, err := p.source.QueryStatus(context.Background())
	status := ClassifyStatus(raw, err)

	select {
	case <-stop:
		return
	default:
	}

	p.mu.Lock()
	old := p.status
	if status == old {
		p.mu.Unlock()
		return
	}
	p.status = status
	callback := p.onStatusChange
	p.mu.Unlock()

	common.LogInfo("Connection status: %s -> %s", old, status)

	if status == StatusConnected && p.marker != nil && !p.marker.HasAccountMarker() {
		if err := p.marker.TouchAccountMarker(); err != nil {
			common.LogWarn("Could not create account marker: %v", err)
		}
	}

	if callback != nil {
		callback(status)
	}
}
