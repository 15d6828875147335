// Package heartbeat periodically reports daemon liveness to an
// operator-configured HTTP endpoint.
package heartbeat

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"

	"tensord/log"
	"tensord/server"
	"tensord/service"
	"tensord/version"
)

const (
	DefaultInterval = 30 * time.Second
	DefaultTimeout  = 10 * time.Second
)

type Beat struct {
	Moniker   string `json:"moniker"`
	Model     string `json:"model"`
	UserAgent string `json:"user_agent"`
	Exchanges uint64 `json:"exchanges"`
	RxBytes   uint64 `json:"rx_bytes"`
	TxBytes   uint64 `json:"tx_bytes"`
}

// StatsProvider yields the counters included in each beat.
type StatsProvider func() server.Stats

type Heartbeater struct {
	Interval time.Duration
	Timeout  time.Duration
	url      string
	moniker  string
	model    string
	stats    StatsProvider
	lgr      log.Logger
	quitCh   chan struct{}
	once     sync.Once
}

var _ service.Service = (*Heartbeater)(nil)

func NewHeartbeater(url string, moniker string, model string, stats StatsProvider) *Heartbeater {
	return &Heartbeater{
		Interval: DefaultInterval,
		Timeout:  DefaultTimeout,
		url:      url,
		moniker:  moniker,
		model:    model,
		stats:    stats,
		lgr:      log.WithModule("heartbeat"),
		quitCh:   make(chan struct{}),
	}
}

func (h *Heartbeater) Start() error {
	client := &http.Client{
		Timeout: h.Timeout,
	}

	ticker := time.NewTicker(h.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := h.beat(client); err != nil {
				h.lgr.Error("failed to send heartbeat", "err", err)
			}
		case <-h.quitCh:
			return nil
		}
	}
}

func (h *Heartbeater) Stop() error {
	h.once.Do(func() {
		close(h.quitCh)
	})
	return nil
}

func (h *Heartbeater) beat(client *http.Client) error {
	stats := h.stats()
	beat := &Beat{
		Moniker:   h.moniker,
		Model:     h.model,
		UserAgent: version.UserAgent,
		Exchanges: stats.Exchanges,
		RxBytes:   stats.RxBytes,
		TxBytes:   stats.TxBytes,
	}
	beatJSON, err := json.Marshal(beat)
	if err != nil {
		return errors.Wrap(err, "failed to marshal heartbeat")
	}

	res, err := client.Post(h.url, "application/json", bytes.NewReader(beatJSON))
	if err != nil {
		return err
	}
	if err := res.Body.Close(); err != nil {
		h.lgr.Error("failed to close response body", "err", err)
	}
	if res.StatusCode != http.StatusNoContent {
		h.lgr.Warn("heartbeat server sent non-204 status code", "code", res.StatusCode)
	}
	return nil
}
