package transport

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"strconv"

	"qtb/internal/protocol"
)

// Listener is the debug consumer side of the bridge protocol: it accepts
// bridge connections one at a time and hands every decoded event to a
// handler. The real TUI implements the same contract.
type Listener struct {
	ln net.Listener
}

// Listen opens a TCP listener on all interfaces at the given port.
func Listen(port int) (*Listener, error) {
	ln, err := net.Listen("tcp", net.JoinHostPort("", strconv.Itoa(port)))
	if err != nil {
		return nil, fmt.Errorf("listen on port %d: %w", port, err)
	}
	return &Listener{ln: ln}, nil
}

// Addr returns the bound address.
func (l *Listener) Addr() string {
	return l.ln.Addr().String()
}

// Serve accepts connections sequentially until the listener is closed.
// Undecodable lines are skipped; a dropped bridge connection just means
// waiting for the next one.
func (l *Listener) Serve(handle func(protocol.Envelope)) error {
	for {
		conn, err := l.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}

		scanner := bufio.NewScanner(conn)
		scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
		for scanner.Scan() {
			env, err := protocol.Decode(scanner.Bytes())
			if err != nil {
				continue
			}
			handle(env)
		}
		_ = conn.Close()
	}
}

// Close stops accepting connections.
func (l *Listener) Close() error {
	return l.ln.Close()
}
