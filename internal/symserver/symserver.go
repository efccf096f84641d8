// Package symserver is the networked form of spec.md's "symbolic debuggers
// and backtrace formatters" consumer: a remote "what symbol/line is at
// address X" query service over QUIC, speaking a tiny length-prefixed JSON
// protocol version-negotiated with semver so a client and server built from
// different godbg releases fail cleanly instead of misparsing each other's
// frames. The teacher has no networked debugger of its own; this is grounded
// only in its pkg/hw/cpu/debugger event/controller split (request in,
// structured answer out) retargeted at a remote symtab.DB lookup.
package symserver

import (
	"bufio"
	"context"
	"crypto/tls"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/Masterminds/semver/v3"
	"github.com/quic-go/quic-go"

	"github.com/gitmesam/godbg/pkg/symtab"
)

// ProtocolVersion is this build's wire-protocol version.
const ProtocolVersion = "1.0.0"

// Compatible is the range of client protocol versions a server built from
// this package accepts. Bumped only on a breaking wire-format change.
const Compatible = "^1.0.0"

// Query asks for the symbol covering Address in the module the server was
// started against.
type Query struct {
	Address uint64 `json:"address"`
}

// Answer is the server's response: the enclosing function (if any) and the
// resolved source line, mirroring symtab.Function and symtab.LineRecord.
type Answer struct {
	Found    bool   `json:"found"`
	Function string `json:"function,omitempty"`
	Offset   uint64 `json:"offset,omitempty"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Server answers Query requests against one parsed database.
type Server struct {
	DB  *symtab.DB
	Log *slog.Logger
}

// Serve listens on addr until ctx is canceled, handling one stream per
// connection (this protocol is strictly request/response, so a client
// reconnects rather than multiplexing streams).
func (s *Server) Serve(ctx context.Context, addr string, tlsConf *tls.Config) error {
	listener, err := quic.ListenAddr(addr, tlsConf, nil)
	if err != nil {
		return fmt.Errorf("symserver: listen: %w", err)
	}
	defer listener.Close()

	for {
		conn, err := listener.Accept(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("symserver: accept: %w", err)
		}
		go s.handleConn(ctx, conn)
	}
}

func (s *Server) handleConn(ctx context.Context, conn quic.Connection) {
	stream, err := conn.AcceptStream(ctx)
	if err != nil {
		return
	}
	defer stream.Close()

	if err := s.negotiate(stream); err != nil {
		s.logf("version negotiation failed: %s", err)
		return
	}

	reader := bufio.NewReader(stream)
	for {
		var q Query
		if err := readJSON(reader, &q); err != nil {
			if err != io.EOF {
				s.logf("query decode: %s", err)
			}
			return
		}
		ans := s.resolve(q)
		if err := writeJSON(stream, ans); err != nil {
			s.logf("answer encode: %s", err)
			return
		}
	}
}

func (s *Server) negotiate(stream quic.Stream) error {
	reader := bufio.NewReader(stream)
	var hello struct {
		Version string `json:"version"`
	}
	if err := readJSON(reader, &hello); err != nil {
		return err
	}
	clientVersion, err := semver.NewVersion(hello.Version)
	if err != nil {
		return fmt.Errorf("invalid client version %q: %w", hello.Version, err)
	}
	constraint, err := semver.NewConstraint(Compatible)
	if err != nil {
		return err
	}
	if !constraint.Check(clientVersion) {
		writeJSON(stream, struct {
			OK    bool   `json:"ok"`
			Error string `json:"error"`
		}{false, fmt.Sprintf("server requires protocol %s, client offered %s", Compatible, hello.Version)})
		return fmt.Errorf("incompatible client protocol version %s", hello.Version)
	}
	return writeJSON(stream, struct {
		OK bool `json:"ok"`
	}{true})
}

func (s *Server) resolve(q Query) Answer {
	f := s.DB.FindNearest(q.Address)
	if f == nil {
		return Answer{Found: false}
	}
	ans := Answer{Found: true, Function: f.Name, Offset: q.Address - f.Low}
	best := -1
	for i, rec := range f.Lines {
		if rec.Offset <= ans.Offset {
			best = i
		}
	}
	if best >= 0 {
		ans.Line = f.Lines[best].Line
		ans.File = s.DB.SourcePath(f.Lines[best].File)
	}
	return ans
}

func (s *Server) logf(format string, args ...any) {
	if s.Log == nil {
		return
	}
	s.Log.Warn(fmt.Sprintf(format, args...))
}

// Client queries a remote Server over QUIC.
type Client struct {
	conn   quic.Connection
	stream quic.Stream
	reader *bufio.Reader
}

// Dial connects to a symserver at addr and performs version negotiation.
func Dial(ctx context.Context, addr string, tlsConf *tls.Config) (*Client, error) {
	conn, err := quic.DialAddr(ctx, addr, tlsConf, nil)
	if err != nil {
		return nil, fmt.Errorf("symserver: dial: %w", err)
	}
	stream, err := conn.OpenStreamSync(ctx)
	if err != nil {
		conn.CloseWithError(0, "stream open failed")
		return nil, err
	}

	c := &Client{conn: conn, stream: stream, reader: bufio.NewReader(stream)}
	if err := writeJSON(stream, struct {
		Version string `json:"version"`
	}{ProtocolVersion}); err != nil {
		return nil, err
	}
	var ack struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := readJSON(c.reader, &ack); err != nil {
		return nil, err
	}
	if !ack.OK {
		return nil, fmt.Errorf("symserver: %s", ack.Error)
	}
	return c, nil
}

// Query asks the remote server what symbol covers addr.
func (c *Client) Query(addr uint64) (*Answer, error) {
	if err := writeJSON(c.stream, Query{Address: addr}); err != nil {
		return nil, err
	}
	var ans Answer
	if err := readJSON(c.reader, &ans); err != nil {
		return nil, err
	}
	return &ans, nil
}

// Close tears down the client's stream and connection.
func (c *Client) Close() error {
	c.stream.Close()
	return c.conn.CloseWithError(0, "closed")
}

// Messages are length-prefixed JSON: a 4-byte big-endian length followed by
// that many bytes of JSON, matching quic-go's unordered-boundary stream
// model where plain JSON decoders can't tell one message from the next.

func writeJSON(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(data)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func readJSON(r io.Reader, v any) error {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return err
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	data := make([]byte, n)
	if _, err := io.ReadFull(r, data); err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
