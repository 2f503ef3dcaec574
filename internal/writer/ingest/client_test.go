// internal/writer/ingest/client_test.go
package ingest

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPacket_Layout(t *testing.T) {
	pkt := Packet(3, 9, 0x0130, []uint16{0x0102, 0xA0B0})

	require.Equal(t, []byte{
		'R', 'I', 0x01, 0x03,
		0x00, 0x09,
		0x01, 0x30,
		0x00, 0x02,
		0x01, 0x02, 0xA0, 0xB0,
	}, pkt)
}

// serveOnce accepts one packet of n bytes and answers with status.
func serveOnce(t *testing.T, n int, status byte) (string, <-chan []byte) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	got := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		buf := make([]byte, n)
		if _, err := io.ReadFull(conn, buf); err != nil {
			return
		}
		got <- buf
		_, _ = conn.Write([]byte{status})
	}()

	return ln.Addr().String(), got
}

func TestClient_WriteRegisters(t *testing.T) {
	regs := []uint16{1, 2, 3}
	endpoint, got := serveOnce(t, headerLen+2*len(regs), respOK)

	c, err := NewClient(Config{Endpoint: endpoint, Timeout: time.Second})
	require.NoError(t, err)

	require.NoError(t, c.WriteRegisters(3, 1, 48, regs))
	require.Equal(t, Packet(3, 1, 48, regs), <-got)
}

func TestClient_Rejected(t *testing.T) {
	endpoint, _ := serveOnce(t, headerLen+2, respRejected)

	c, err := NewClient(Config{Endpoint: endpoint, Timeout: time.Second})
	require.NoError(t, err)

	require.ErrorIs(t, c.WriteRegisters(3, 1, 0, []uint16{7}), ErrRejected)
}

func TestClient_UnknownStatus(t *testing.T) {
	endpoint, _ := serveOnce(t, headerLen+2, 0x7F)

	c, err := NewClient(Config{Endpoint: endpoint, Timeout: time.Second})
	require.NoError(t, err)

	err = c.WriteRegisters(3, 1, 0, []uint16{7})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrRejected)
}
