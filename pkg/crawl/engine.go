package crawl

import (
	"context"
	"net"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Jules0x-xyz/Znodes-Crawler-Zcash/internal/zwire"
	"github.com/Jules0x-xyz/Znodes-Crawler-Zcash/pkg/metrics"
	"github.com/Jules0x-xyz/Znodes-Crawler-Zcash/pkg/network"
)

const (
	// DialTimeout bounds TCP connect plus the unilateral handshake send.
	DialTimeout = 2000 * time.Millisecond

	// ImpersonationUserAgent and ImpersonationStartHeight are the fixed
	// values the crawler advertises in its own Version message.
	ImpersonationUserAgent          = "/MagicBean:5.4.2/"
	ImpersonationStartHeight int32 = 3_150_000

	// StaleOpenTimeout is how long a Connected peer may go without a
	// usable Addr before the scheduler reaps it.
	StaleOpenTimeout = 90 * time.Second
)

// engine performs the one-sided handshake and message loop for a single
// outbound connection, mutating store as it observes protocol events.
type engine struct {
	store *network.Store
	mgr   *connManager
	magic zwire.Magic
	log   *zap.Logger
}

func newEngine(store *network.Store, mgr *connManager, magic zwire.Magic, log *zap.Logger) *engine {
	return &engine{store: store, mgr: mgr, magic: magic, log: log.Named("proto")}
}

// Run dials addr, performs the handshake, and serves the message loop
// until the connection closes, the disconnect-after-gossip rule fires,
// or ctx is cancelled. It always releases addr's connManager reservation
// before returning.
func (e *engine) Run(ctx context.Context, addr string) {
	defer e.mgr.Release(addr)

	connID := uuid.New()
	log := e.log.With(zap.String("conn_id", connID.String()), zap.String("addr", addr))

	metrics.DialAttempts.Inc()
	dialStart := time.Now()
	deadline := dialStart.Add(DialTimeout)
	dialer := net.Dialer{Deadline: deadline}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		e.store.RecordDialFailure(addr)
		metrics.DialFailures.Inc()
		log.Debug("dial failed", zap.Error(err))
		return
	}

	conn.SetWriteDeadline(deadline)
	if err := e.handshake(conn); err != nil {
		conn.Close()
		e.store.RecordDialFailure(addr)
		metrics.DialFailures.Inc()
		log.Debug("handshake send failed", zap.Error(err))
		return
	}
	conn.SetWriteDeadline(time.Time{})
	elapsed := time.Since(dialStart)
	now := time.Now()
	e.store.RecordHandshakeSuccess(addr, now, elapsed)
	metrics.HandshakesCompleted.Inc()
	log.Debug("handshake completed", zap.Duration("elapsed", elapsed))

	connCtx, cancel := context.WithCancel(ctx)
	e.mgr.MarkConnected(addr, conn, cancel)

	go func() {
		<-connCtx.Done()
		conn.SetReadDeadline(time.Now())
	}()

	e.serve(connCtx, conn, addr, log)
	e.store.SetState(addr, network.Disconnected)
}

// handshake sends a unilateral Version message. It does not wait for the
// peer's own Version; the handshake completes when the local send
// succeeds.
func (e *engine) handshake(conn net.Conn) error {
	v := &zwire.VersionMsg{
		Version:     zwire.ProtocolVersion,
		Services:    zwire.NodeNetwork,
		Timestamp:   time.Now().Unix(),
		AddrRecv:    zwire.NewNetAddr(net.ParseIP("0.0.0.0"), 0, zwire.NodeNetwork),
		AddrFrom:    zwire.NewNetAddr(net.ParseIP("127.0.0.1"), 0, zwire.NodeNetwork),
		Nonce:       uint64(time.Now().UnixNano()),
		UserAgent:   ImpersonationUserAgent,
		StartHeight: ImpersonationStartHeight,
		Relay:       true,
	}
	return zwire.WriteMessage(conn, e.magic, v)
}

// serve runs the per-connection message dispatch loop until the
// connection errors out, ctx is cancelled, or the Addr-gossip disconnect
// rule fires.
func (e *engine) serve(ctx context.Context, conn net.Conn, addr string, log *zap.Logger) {
	for {
		msg, err := zwire.ReadMessage(conn, e.magic, zwire.NewPayload)
		if err != nil {
			if err == zwire.ErrUnknownCommand {
				continue
			}
			return
		}

		switch p := msg.Payload.(type) {
		case *zwire.VersionMsg:
			e.store.RecordVersion(addr, p.Version, p.UserAgent, uint64(p.Services), p.StartHeight)
			log.Info("version received", zap.Uint32("protocol_version", p.Version), zap.String("user_agent", p.UserAgent), zap.Int32("start_height", p.StartHeight))
			if err := zwire.WriteMessage(conn, e.magic, &zwire.VerackMsg{}); err != nil {
				return
			}
			if err := zwire.WriteMessage(conn, e.magic, &zwire.GetAddrMsg{}); err != nil {
				return
			}

		case *zwire.AddrMsg:
			metrics.AddrMessagesReceived.Inc()
			others := make([]string, 0, len(p.Addrs))
			for _, a := range p.Addrs {
				others = append(others, a.Addr())
			}
			e.store.AddAddrs(addr, others, time.Now())
			log.Info("addr received", zap.Int("count", len(others)))

			if addrTriggersDisconnect(addr, others) {
				log.Info("disconnecting after gossip")
				return
			}

		case *zwire.PingMsg:
			if err := zwire.WriteMessage(conn, e.magic, &zwire.PongMsg{Nonce: p.Nonce}); err != nil {
				return
			}

		case *zwire.GetAddrMsg:
			if err := zwire.WriteMessage(conn, e.magic, &zwire.AddrMsg{}); err != nil {
				return
			}

		case *zwire.GetHeadersMsg:
			if err := zwire.WriteMessage(conn, e.magic, &zwire.HeadersMsg{}); err != nil {
				return
			}

		case *zwire.GetDataMsg:
			if err := zwire.WriteMessage(conn, e.magic, &zwire.NotFoundMsg{Inventory: p.Inventory}); err != nil {
				return
			}

		default:
			// Any other message kind is ignored.
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// addrTriggersDisconnect implements the Addr-gossip liveness rule: a
// peer echoing only its own address does not trigger disconnect (B3),
// but any other content does — once a peer has shared its neighborhood
// there is no further value in holding the socket.
func addrTriggersDisconnect(src string, others []string) bool {
	if len(others) > 1 {
		return true
	}
	if len(others) == 1 && others[0] != src {
		return true
	}
	return false
}
