package command

import (
	"context"
	"fmt"
	"net"

	"go.uber.org/zap"
)

// Listener accepts hub command datagrams and answers on the sender's
// address. It runs beside the control loop; every mutation goes through
// the mutex-guarded State.
type Listener struct {
	conn    *net.UDPConn
	handler *Handler
	logger  *zap.Logger
}

func NewListener(port int, handler *Handler, logger *zap.Logger) (*Listener, error) {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{Port: port})
	if err != nil {
		return nil, fmt.Errorf("listen on command port %d: %w", port, err)
	}
	logger.Info("command listener started", zap.Int("port", port))
	return &Listener{conn: conn, handler: handler, logger: logger}, nil
}

// Run reads datagrams until ctx is cancelled.
func (l *Listener) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		l.conn.Close()
	}()

	buf := make([]byte, 256)
	for {
		n, addr, err := l.conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("command read: %w", err)
		}

		reply := l.handler.Handle(string(buf[:n]))
		if reply == "" {
			continue
		}
		if _, err := l.conn.WriteToUDP([]byte(reply), addr); err != nil {
			l.logger.Warn("command reply failed",
				zap.String("peer", addr.String()),
				zap.Error(err),
			)
		}
	}
}
