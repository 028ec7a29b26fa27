package server

import (
	"bytes"
	"net"

	"github.com/yeisme/ptserve/pkg/header"
)

// net/http answers unreadable requests (400, 431, 501, 505) straight on the
// connection, before any handler runs, with this header block after the
// status line.
var (
	connErrorHeaders  = []byte("\r\nContent-Type: text/plain; charset=utf-8\r\nConnection: close\r\n\r\n")
	plainErrorHeaders = []byte("\r\n" + header.ContentType + ": " + header.PlainTextValue + "\r\nConnection: close\r\n\r\n")
)

// plainTextListener wraps accepted connections with plainTextConn.
type plainTextListener struct {
	net.Listener
}

func (l plainTextListener) Accept() (net.Conn, error) {
	c, err := l.Listener.Accept()
	if err != nil {
		return nil, err
	}
	return plainTextConn{Conn: c}, nil
}

// plainTextConn rewrites the Content-Type of connection-level error
// responses. Each of them is written with a single Write call.
type plainTextConn struct {
	net.Conn
}

func (c plainTextConn) Write(p []byte) (int, error) {
	rewritten, ok := rewriteConnError(p)
	if !ok {
		return c.Conn.Write(p)
	}
	if _, err := c.Conn.Write(rewritten); err != nil {
		return 0, err
	}
	return len(p), nil
}

// rewriteConnError reports whether p is a connection-level error response
// and, if so, returns it with "Content-Type: text/plain".
func rewriteConnError(p []byte) ([]byte, bool) {
	if !bytes.HasPrefix(p, []byte("HTTP/1.")) {
		return nil, false
	}
	eol := bytes.Index(p, []byte("\r\n"))
	if eol < 0 || !bytes.HasPrefix(p[eol:], connErrorHeaders) {
		return nil, false
	}
	out := make([]byte, 0, len(p))
	out = append(out, p[:eol]...)
	out = append(out, plainErrorHeaders...)
	out = append(out, p[eol+len(connErrorHeaders):]...)
	return out, true
}
