// Package client performs one-shot exchanges against a tensord daemon:
// dial, send one array, read one array back, close.
package client

import (
	"bufio"
	"context"
	"net"
	"time"

	"github.com/pkg/errors"

	"tensord/npy"
	"tensord/tensor"
)

const DefaultTimeout = 10 * time.Second

type options struct {
	timeout     time.Duration
	maxElements int
}

type Option func(*options)

// WithTimeout bounds the whole exchange, dial included.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithMaxElements bounds the element count accepted in the response.
func WithMaxElements(n int) Option {
	return func(o *options) {
		o.maxElements = n
	}
}

// Exchange dials addr, sends t, and returns the daemon's reply.
func Exchange(ctx context.Context, addr string, t *tensor.Tensor, opts ...Option) (*tensor.Tensor, error) {
	o := &options{
		timeout:     DefaultTimeout,
		maxElements: npy.DefaultMaxElements,
	}
	for _, opt := range opts {
		opt(o)
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, errors.Wrap(err, "error dialing daemon")
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, errors.Wrap(err, "error setting connection deadline")
		}
	}

	return ExchangeConn(conn, t, o.maxElements)
}

// ExchangeConn performs one exchange over an existing connection. The
// caller retains ownership of the connection.
func ExchangeConn(conn net.Conn, t *tensor.Tensor, maxElements int) (*tensor.Tensor, error) {
	if err := npy.Encode(conn, t); err != nil {
		return nil, errors.Wrap(err, "error sending array")
	}

	result, err := npy.DecodeLimit(bufio.NewReader(conn), maxElements)
	if err != nil {
		return nil, errors.Wrap(err, "error receiving array")
	}
	return result, nil
}
