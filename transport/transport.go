/*
Package transport owns the raw byte-level connection to an IRC server:
dialing, an optional TLS upgrade, and framing the stream into lines on
"\r\n" (bare "\n" tolerated, following the teacher's inet package). It
deliberately knows nothing about IRC grammar; irc.Parse starts where
this package ends.
*/
package transport

import (
	"bufio"
	"crypto/tls"
	"crypto/x509"
	"io"
	"io/ioutil"
	"net"

	"github.com/pkg/errors"
)

// Sentinel errors for the taxonomy this module surfaces to callers.
// They are wrapped with github.com/pkg/errors at the point they're
// first observed, so Cause(err) recovers one of these.
var (
	ErrConnectionFailed   = errors.New("transport: connection failed")
	ErrTlsHandshakeFailed = errors.New("transport: tls handshake failed")
	ErrNetworkReadFailed  = errors.New("transport: network read failed")
	ErrNetworkWriteFailed = errors.New("transport: network write failed")
	ErrLineTooLong        = errors.New("transport: line exceeds maximum length")
)

// maxLineBytes bounds how large a single inbound line, terminator
// included, may grow before the connection is considered
// protocol-broken. The line reader's buffer is exactly this size, so
// ReadLine rejects a longer line instead of growing the buffer; irc.Parse
// itself applies no length limit.
const maxLineBytes = 512

// DialFunc opens a raw, not-yet-upgraded network connection to addr.
// The default is net.Dial("tcp", addr); a host can substitute a proxy
// dialer (see DialProxy) or a fake for tests.
type DialFunc func(addr string) (net.Conn, error)

// DefaultDial dials addr over plain TCP.
func DefaultDial(addr string) (net.Conn, error) {
	return net.Dial("tcp", addr)
}

// CertStore supplies the root CA pool used to verify a server's TLS
// certificate. Swapping implementations lets a host pin a private CA
// without touching the system trust store.
type CertStore interface {
	Pool() (*x509.CertPool, error)
}

// SystemCertStore verifies against the OS trust store.
type SystemCertStore struct{}

// Pool returns the system certificate pool.
func (SystemCertStore) Pool() (*x509.CertPool, error) {
	return x509.SystemCertPool()
}

// FileCertStore verifies against a PEM bundle read from Path, grounded
// on the teacher's readCert helper.
type FileCertStore struct {
	Path string
}

// Pool reads and parses the PEM bundle at Path into a CertPool.
func (f FileCertStore) Pool() (*x509.CertPool, error) {
	pem, err := ioutil.ReadFile(f.Path)
	if err != nil {
		return nil, errors.Wrap(err, "transport: reading cert file")
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, errors.New("transport: no certificates found in " + f.Path)
	}
	return pool, nil
}

// Options configures Connect.
type Options struct {
	// Addr is "host:port". Required.
	Addr string
	// UseTLS upgrades the connection with crypto/tls before any IRC
	// traffic is exchanged.
	UseTLS bool
	// InsecureSkipVerify disables certificate verification; useful
	// against self-signed test servers, never for production use.
	InsecureSkipVerify bool
	// CertStore supplies the root CA pool when UseTLS is set and a
	// private CA must be trusted. Nil means the system trust store via
	// crypto/tls's own default behavior.
	CertStore CertStore
	// Dial opens the underlying connection. Nil means DefaultDial.
	Dial DialFunc
}

// Conn is a framed, line-oriented connection to an IRC server.
type Conn struct {
	raw    net.Conn
	reader *bufio.Reader
}

// Connect dials and, if requested, TLS-upgrades a connection per opts.
func Connect(opts Options) (*Conn, error) {
	dial := opts.Dial
	if dial == nil {
		dial = DefaultDial
	}

	raw, err := dial(opts.Addr)
	if err != nil {
		return nil, errors.Wrap(ErrConnectionFailed, err.Error())
	}

	if !opts.UseTLS {
		return newConn(raw), nil
	}

	conf := &tls.Config{InsecureSkipVerify: opts.InsecureSkipVerify}
	if opts.CertStore != nil {
		pool, err := opts.CertStore.Pool()
		if err != nil {
			raw.Close()
			return nil, errors.Wrap(ErrTlsHandshakeFailed, err.Error())
		}
		conf.RootCAs = pool
	}

	tlsConn := tls.Client(raw, conf)
	if err := tlsConn.Handshake(); err != nil {
		raw.Close()
		return nil, errors.Wrap(ErrTlsHandshakeFailed, err.Error())
	}

	return newConn(tlsConn), nil
}

func newConn(raw net.Conn) *Conn {
	return &Conn{raw: raw, reader: bufio.NewReaderSize(raw, maxLineBytes)}
}

// ReadLine reads one line, with its terminating "\r\n" or "\n" removed.
// It returns io.EOF, unwrapped, when the peer closed the connection
// cleanly with no partial line pending: callers treat that as a clean
// end of the loop, not a failure. Any other read error comes back
// wrapped in ErrNetworkReadFailed. ReadLine returns ErrLineTooLong if
// the server sends a line exceeding the 512-byte budget without a
// terminator.
func (c *Conn) ReadLine() (string, error) {
	buf, err := c.reader.ReadSlice('\n')
	if err == bufio.ErrBufferFull {
		return "", ErrLineTooLong
	}
	line := string(buf)
	if err != nil {
		if len(line) > 0 {
			return trimEOL(line), nil
		}
		if err == io.EOF {
			return "", io.EOF
		}
		return "", errors.Wrap(ErrNetworkReadFailed, err.Error())
	}
	return trimEOL(line), nil
}

func trimEOL(line string) string {
	n := len(line)
	if n > 0 && line[n-1] == '\n' {
		n--
	}
	if n > 0 && line[n-1] == '\r' {
		n--
	}
	return line[:n]
}

// Write sends line followed by "\r\n".
func (c *Conn) Write(line string) error {
	_, err := c.raw.Write([]byte(line + "\r\n"))
	if err != nil {
		return errors.Wrap(ErrNetworkWriteFailed, err.Error())
	}
	return nil
}

// WriteRaw writes buf verbatim, with no terminator appended. It exists
// for callers (registration) that need to send more than one
// CRLF-terminated line in a single write.
func (c *Conn) WriteRaw(buf []byte) (int, error) {
	n, err := c.raw.Write(buf)
	if err != nil {
		return n, errors.Wrap(ErrNetworkWriteFailed, err.Error())
	}
	return n, nil
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	return c.raw.Close()
}
