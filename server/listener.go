// Package server implements the daemon side of an exchange: accept a
// connection, decode one array, run the model forward, encode the
// result, close.
package server

import (
	"bufio"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"tensord/log"
	"tensord/nn"
	"tensord/npy"
	"tensord/service"
)

const (
	DefaultMaxInboundConns = 64
	DefaultIdleTimeout     = 10 * time.Second
	DefaultAcceptRate      = 64
	DefaultAcceptBurst     = 192
)

// Stats are cumulative counters over the listener's lifetime.
type Stats struct {
	Exchanges uint64
	RxBytes   uint64
	TxBytes   uint64
}

type Listener struct {
	IdleTimeout time.Duration
	MaxElements int

	host     string
	port     int
	model    nn.Model
	sem      *semaphore.Weighted
	limiter  *rate.Limiter
	lgr      log.Logger
	quitCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	exchanges uint64
	rxBytes   uint64
	txBytes   uint64
}

var _ service.Service = (*Listener)(nil)

func NewListener(host string, port int, model nn.Model) *Listener {
	return &Listener{
		IdleTimeout: DefaultIdleTimeout,
		MaxElements: npy.DefaultMaxElements,
		host:        host,
		port:        port,
		model:       model,
		sem:         semaphore.NewWeighted(DefaultMaxInboundConns),
		limiter:     rate.NewLimiter(DefaultAcceptRate, DefaultAcceptBurst),
		lgr:         log.WithModule("listener"),
		quitCh:      make(chan struct{}),
	}
}

// SetMaxInboundConns bounds concurrently served connections. Must be
// called before Start.
func (l *Listener) SetMaxInboundConns(n int) {
	l.sem = semaphore.NewWeighted(int64(n))
}

// SetAcceptRate bounds the accepted connection rate. Must be called
// before Start.
func (l *Listener) SetAcceptRate(perSecond, burst int) {
	l.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
}

func (l *Listener) Start() error {
	listener, err := net.Listen("tcp", fmt.Sprintf("%s:%d", l.host, l.port))
	if err != nil {
		return errors.Wrap(err, "error binding listener")
	}

	go func() {
		<-l.quitCh
		if err := listener.Close(); err != nil {
			l.lgr.Error("failed to shut down listener", "err", err)
		} else {
			l.lgr.Info("listener shut down")
		}
	}()

	l.lgr.Info(
		"listening for exchanges",
		"host", l.host,
		"port", l.port,
		"model", l.model.Kind(),
	)
	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-l.quitCh:
				l.wg.Wait()
				return nil
			default:
			}
			return errors.Wrap(err, "error accepting connection")
		}
		if !l.limiter.Allow() {
			l.lgr.Warn("accept rate exceeded, dropping connection", "remote_addr", conn.RemoteAddr())
			conn.Close()
			continue
		}
		if !l.sem.TryAcquire(1) {
			l.lgr.Warn("connection limit reached, dropping connection", "remote_addr", conn.RemoteAddr())
			conn.Close()
			continue
		}

		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			defer l.sem.Release(1)
			l.serveConn(conn)
		}()
	}
}

func (l *Listener) Stop() error {
	l.stopOnce.Do(func() {
		close(l.quitCh)
	})
	return nil
}

// ExchangeStats returns cumulative exchange counters.
func (l *Listener) ExchangeStats() Stats {
	return Stats{
		Exchanges: atomic.LoadUint64(&l.exchanges),
		RxBytes:   atomic.LoadUint64(&l.rxBytes),
		TxBytes:   atomic.LoadUint64(&l.txBytes),
	}
}

func (l *Listener) serveConn(conn net.Conn) {
	defer conn.Close()
	lgr := l.lgr.Sub("remote_addr", conn.RemoteAddr())
	defer func() {
		if p := recover(); p != nil {
			lgr.Error("panic serving exchange", "err", p)
		}
	}()

	if err := conn.SetDeadline(time.Now().Add(l.IdleTimeout)); err != nil {
		lgr.Error("failed to set connection deadline", "err", err)
		return
	}

	connR := NewCountingReader(bufio.NewReader(conn))
	connW := NewCountingWriter(conn)
	defer func() {
		atomic.AddUint64(&l.rxBytes, connR.Count())
		atomic.AddUint64(&l.txBytes, connW.Count())
	}()

	input, err := npy.DecodeLimit(connR, l.MaxElements)
	if err != nil {
		lgr.Warn("error decoding input array", "err", err)
		return
	}

	output, err := l.model.Forward(input)
	if err != nil {
		lgr.Warn(
			"forward pass failed",
			"input_shape", input,
			"err", err,
		)
		return
	}

	if err := npy.Encode(connW, output); err != nil {
		lgr.Warn("error encoding result array", "err", err)
		return
	}

	atomic.AddUint64(&l.exchanges, 1)
	lgr.Debug(
		"served exchange",
		"input_shape", input,
		"output_shape", output,
	)
}
