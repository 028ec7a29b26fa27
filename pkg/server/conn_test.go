package server

import (
	"bytes"
	"net"
	"testing"
)

func TestRewriteConnError(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{
			name:  "bad request",
			input: "HTTP/1.1 400 Bad Request\r\nContent-Type: text/plain; charset=utf-8\r\nConnection: close\r\n\r\n400 Bad Request",
			want:  "HTTP/1.1 400 Bad Request\r\nContent-Type: text/plain\r\nConnection: close\r\n\r\n400 Bad Request",
			ok:    true,
		},
		{
			name:  "status error with text",
			input: "HTTP/1.1 400 Bad Request: missing required Host header\r\nContent-Type: text/plain; charset=utf-8\r\nConnection: close\r\n\r\n400 Bad Request: missing required Host header",
			want:  "HTTP/1.1 400 Bad Request: missing required Host header\r\nContent-Type: text/plain\r\nConnection: close\r\n\r\n400 Bad Request: missing required Host header",
			ok:    true,
		},
		{
			name:  "handler response",
			input: "HTTP/1.1 200 OK\r\nContent-Length: 41\r\nContent-Type: text/plain\r\n\r\nContent-Type: text/plain; charset=utf-8\r\n",
			ok:    false,
		},
		{
			name:  "body only",
			input: "\r\nContent-Type: text/plain; charset=utf-8\r\nConnection: close\r\n\r\n",
			ok:    false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := rewriteConnError([]byte(tc.input))
			if ok != tc.ok {
				t.Fatalf("ok = %t, want %t", ok, tc.ok)
			}
			if ok && string(got) != tc.want {
				t.Errorf("rewritten = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPlainTextConnWrite(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	input := []byte("HTTP/1.1 400 Bad Request\r\nContent-Type: text/plain; charset=utf-8\r\nConnection: close\r\n\r\n400 Bad Request")
	received := make(chan []byte, 1)
	go func() {
		buf := make([]byte, 256)
		n, _ := client.Read(buf)
		received <- buf[:n]
	}()

	n, err := plainTextConn{Conn: server}.Write(input)
	if err != nil {
		t.Fatalf("Write returned an error: %v", err)
	}
	if n != len(input) {
		t.Errorf("n = %d, want %d", n, len(input))
	}
	if got := <-received; bytes.Contains(got, []byte("charset")) {
		t.Errorf("charset still sent: %q", got)
	}
}
