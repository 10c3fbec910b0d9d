package monitor

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/protei/gtp/internal/logger"
	"github.com/protei/gtp/pkg/config"
	"github.com/protei/gtp/pkg/gtpv1"
	"github.com/protei/gtp/pkg/gtpv2"
)

// Sink receives the summary of every successfully decoded message.
type Sink interface {
	Consume(Summary)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Summary)

func (f SinkFunc) Consume(s Summary) { f(s) }

// Monitor binds the GTP-C and GTP-U listeners and feeds decoded message
// summaries to the registered sinks.
type Monitor struct {
	cfg   *config.Config
	log   *logger.Logger
	sinks []Sink

	controlConn *net.UDPConn
	userConn    *net.UDPConn
}

// New creates a monitor for the given configuration.
func New(cfg *config.Config, log *logger.Logger) *Monitor {
	return &Monitor{cfg: cfg, log: log.WithComponent("monitor")}
}

// AddSink registers a sink. Must be called before Run.
func (m *Monitor) AddSink(s Sink) {
	m.sinks = append(m.sinks, s)
}

// Run binds the configured listeners and blocks until the context is
// cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	var err error
	if m.cfg.Listeners.ControlPlane != "" {
		m.controlConn, err = listen(m.cfg.Listeners.ControlPlane)
		if err != nil {
			return fmt.Errorf("control plane listener: %w", err)
		}
		go m.readLoop(ctx, m.controlConn, m.decodeControl)
		m.log.Info("control plane listener started", "addr", m.cfg.Listeners.ControlPlane)
	}
	if m.cfg.Listeners.UserPlane != "" {
		m.userConn, err = listen(m.cfg.Listeners.UserPlane)
		if err != nil {
			return fmt.Errorf("user plane listener: %w", err)
		}
		go m.readLoop(ctx, m.userConn, m.decodeUser)
		m.log.Info("user plane listener started", "addr", m.cfg.Listeners.UserPlane)
	}

	<-ctx.Done()
	if m.controlConn != nil {
		m.controlConn.Close()
	}
	if m.userConn != nil {
		m.userConn.Close()
	}
	return nil
}

func listen(addr string) (*net.UDPConn, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}
	return net.ListenUDP("udp", udpAddr)
}

func (m *Monitor) readLoop(ctx context.Context, conn *net.UDPConn, decode func([]byte) (Summary, error)) {
	buf := make([]byte, m.cfg.Listeners.BufferSize)
	local := conn.LocalAddr().String()
	for {
		n, peer, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			m.log.Error("read failed", err, "addr", local)
			continue
		}
		data := make([]byte, n)
		copy(data, buf[:n])

		s, err := decode(data)
		if err != nil {
			m.log.Warn("decode failed", "addr", local, "peer", peer.String(), "size", n, "error", err.Error())
			continue
		}
		s.Timestamp = time.Now()
		s.Source = peer.String()
		s.Destination = local
		if s.PayloadSize == 0 {
			s.PayloadSize = n
		}
		m.dispatch(s)
	}
}

func (m *Monitor) dispatch(s Summary) {
	m.log.Debug("message decoded",
		"protocol", string(s.Protocol),
		"message", s.MessageName,
		"teid", s.TEID,
		"sequence", s.Sequence,
	)
	for _, sink := range m.sinks {
		sink.Consume(s)
	}
}

// decodeControl handles port 2123 traffic: GTPv1-C or GTPv2-C keyed on
// the version bits.
func (m *Monitor) decodeControl(data []byte) (Summary, error) {
	if len(data) == 0 {
		return Summary{}, gtpv1.ErrHeaderInvalidLength
	}
	switch data[0] >> 5 {
	case 1:
		if !m.cfg.Decoders.GTPv1C {
			return Summary{}, errors.New("GTPv1-C decoding disabled")
		}
		msg, err := gtpv1.DecodeControlPlane(data)
		if err != nil {
			return Summary{}, err
		}
		return summarizeV1(msg, ProtocolGTPv1C), nil
	case 2:
		if !m.cfg.Decoders.GTPv2C {
			return Summary{}, errors.New("GTPv2-C decoding disabled")
		}
		msg, err := gtpv2.Decode(data)
		if err != nil {
			return Summary{}, err
		}
		return summarizeV2(msg), nil
	}
	return Summary{}, gtpv1.ErrHeaderVersionNotSupported
}

// decodeUser handles port 2152 traffic.
func (m *Monitor) decodeUser(data []byte) (Summary, error) {
	if !m.cfg.Decoders.GTPv1U {
		return Summary{}, errors.New("GTPv1-U decoding disabled")
	}
	msg, err := gtpv1.DecodeUserPlane(data)
	if err != nil {
		return Summary{}, err
	}
	return summarizeV1(msg, ProtocolGTPv1U), nil
}
