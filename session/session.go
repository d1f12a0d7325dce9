/*
Package session implements the connection-oriented IRC session: the
registration handshake, auto-ping, auto-join on end-of-MOTD, the
per-command emitters, and the reply queue that funnels callback output
back to the wire. See Session.Loop for the event loop itself.
*/
package session

import (
	"strconv"

	"github.com/pkg/errors"
	log15 "gopkg.in/inconshreveable/log15.v2"

	"github.com/nightjar-irc/nightjar/irc"
	"github.com/nightjar-irc/nightjar/transport"
)

// Sentinel errors, wrapped at the point they're first observed.
var (
	ErrConnectionFailed       = transport.ErrConnectionFailed
	ErrTlsHandshakeFailed     = transport.ErrTlsHandshakeFailed
	ErrNetworkReadFailed      = transport.ErrNetworkReadFailed
	ErrNetworkWriteFailed     = transport.ErrNetworkWriteFailed
	ErrMemoryAllocationFailed = errors.New("session: buffer or queue growth failed")
	ErrThreadSpawnFailed      = errors.New("session: failed to spawn writer or worker")
)

const defaultPort = 6667

// SessionConfig is immutable once a Session has been constructed from
// it. toml tags let config.LoadFile decode one directly from a file;
// building it as a plain struct literal remains the primary path.
type SessionConfig struct {
	User     string   `toml:"user"`
	Nick     string   `toml:"nick"`
	RealName string   `toml:"real_name"`
	Server   string   `toml:"server"`
	Port     int      `toml:"port"`
	TLS      bool     `toml:"tls"`
	Channels []string `toml:"channels"`

	// AltNick is a fallback nick kept for the host's own callback to use
	// when the server reports ERR_NICKNAMEINUSE (delivered as an
	// irc.NickInUseMessage, which does not carry AltNick). The session
	// itself never reads it and never retries automatically; see
	// SPEC_FULL's nick collision fallback.
	AltNick string `toml:"alt_nick"`
}

func (c SessionConfig) port() int {
	if c.Port == 0 {
		return defaultPort
	}
	return c.Port
}

// Session owns a single connection's worth of state: the transport,
// the reply queue, and the config it was constructed with. One Session
// serves exactly one connection; reconnection is the host's concern.
type Session struct {
	cfg  SessionConfig
	conn *transport.Conn

	// Logger receives operationally meaningful events only (connect and
	// connect failure, register, auto-join failure, reader and writer
	// death); never per-line wire tracing. Defaults to a discard logger.
	Logger log15.Logger

	// Dial, CertStore and InsecureSkipVerify configure how Connect opens
	// the transport; whether TLS is used at all is SessionConfig.TLS.
	// Dial defaults to a plain TCP dial; see transport.DialProxy for a
	// SOCKS5 alternative.
	Dial               transport.DialFunc
	CertStore          transport.CertStore
	InsecureSkipVerify bool

	queue *replyQueue
}

// New builds a Session from cfg. The session is not yet connected.
func New(cfg SessionConfig) *Session {
	logger := log15.New()
	logger.SetHandler(log15.DiscardHandler())

	return &Session{
		cfg:    cfg,
		Logger: logger,
		queue:  newReplyQueue(),
	}
}

// Connect opens the transport to cfg.Server:cfg.Port, optionally
// TLS-wrapped, and leaves the session ready for Register.
func (s *Session) Connect() error {
	addr := s.cfg.Server + ":" + strconv.Itoa(s.cfg.port())

	conn, err := transport.Connect(transport.Options{
		Addr:               addr,
		UseTLS:             s.cfg.TLS,
		InsecureSkipVerify: s.InsecureSkipVerify,
		CertStore:          s.CertStore,
		Dial:               s.Dial,
	})
	if err != nil {
		s.Logger.Error("connect failed", "server", s.cfg.Server, "err", err)
		return err
	}

	s.conn = conn
	s.Logger.Info("connected", "server", s.cfg.Server, "tls", s.cfg.TLS)
	return nil
}

// Register sends the registration handshake as a single write: NICK
// followed by USER. It does not wait for RPL_WELCOME; the session
// considers itself registered once the write succeeds.
func (s *Session) Register() error {
	line := irc.FormatNick(s.cfg.Nick) + "\r\n" + irc.FormatUser(s.cfg.User, s.cfg.RealName) + "\r\n"
	if err := s.writeRaw(line); err != nil {
		return err
	}
	s.Logger.Info("registered", "nick", s.cfg.Nick, "user", s.cfg.User)
	return nil
}

// Disconnect closes the transport. Idempotent and safe to call when
// never connected.
func (s *Session) Disconnect() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

// writeRaw writes a pre-terminated line (or lines) directly, bypassing
// Conn.Write's own "\r\n" append, since Register needs to send two
// lines in a single write per spec.
func (s *Session) writeRaw(line string) error {
	if s.conn == nil {
		return errors.New("session: not connected")
	}
	_, err := s.conn.WriteRaw([]byte(line))
	return err
}

func (s *Session) writeLine(line string) error {
	if s.conn == nil {
		return errors.New("session: not connected")
	}
	return s.conn.Write(line)
}

// Nick sends a NICK command, optionally with the vestigial hopcount
// parameter some old servers still accept.
func (s *Session) Nick(name string, hopcount ...int) error {
	if len(hopcount) > 0 {
		return s.writeLine(irc.FormatNick(name) + " " + strconv.Itoa(hopcount[0]))
	}
	return s.writeLine(irc.FormatNick(name))
}

// Join sends a JOIN for one or more channels.
func (s *Session) Join(channels ...string) error {
	return s.writeLine(irc.FormatJoin(channels...))
}

// Part sends a PART for one or more channels, with an optional reason.
func (s *Session) Part(reason string, channels ...string) error {
	return s.writeLine(irc.FormatPart(reason, channels...))
}

// Privmsg sends text to targets, splitting across multiple lines if it
// doesn't fit in one.
func (s *Session) Privmsg(targets, text string) error {
	for _, line := range irc.FormatPrivmsgLines(targets, text) {
		if err := s.writeLine(line); err != nil {
			return err
		}
	}
	return nil
}

// Notice sends text to targets, splitting across multiple lines if it
// doesn't fit in one.
func (s *Session) Notice(targets, text string) error {
	for _, line := range irc.FormatNoticeLines(targets, text) {
		if err := s.writeLine(line); err != nil {
			return err
		}
	}
	return nil
}

// Quit sends a QUIT with an optional parting reason.
func (s *Session) Quit(reason string) error {
	return s.writeLine(irc.FormatQuit(reason))
}

// Topic queries channel's topic when text is empty, or sets it
// otherwise.
func (s *Session) Topic(channel, text string) error {
	return s.writeLine(irc.FormatTopic(channel, text))
}

// pong replies to a PING with the same token.
func (s *Session) pong(token string) error {
	return s.writeLine(irc.FormatPing(token))
}
