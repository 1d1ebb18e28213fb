package mail

import (
	"bufio"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRaw(t *testing.T) {
	raw := string(buildRaw(
		From{Name: "Loja", Email: "loja@varejao.online"},
		Message{To: "ana@loja.com", Subject: "Seu pedido foi enviado 🚚", HTML: "<p>oi</p>"},
	))

	assert.Contains(t, raw, "From: \"Loja\" <loja@varejao.online>\r\n")
	assert.Contains(t, raw, "To: ana@loja.com\r\n")
	assert.Contains(t, raw, "Subject: =?UTF-8?q?")
	assert.Contains(t, raw, "Content-Type: text/html; charset=\"UTF-8\"\r\n")
	assert.True(t, strings.HasSuffix(raw, "\r\n\r\n<p>oi</p>"))
}

// fakeSMTP accepts one unauthenticated message and reports its DATA.
func fakeSMTP(t *testing.T) (addr string, data <-chan string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	out := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.SetDeadline(time.Now().Add(5 * time.Second))

		r := bufio.NewReader(conn)
		write := func(s string) { _, _ = conn.Write([]byte(s + "\r\n")) }
		write("220 localhost ESMTP")

		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			cmd := strings.ToUpper(strings.TrimSpace(line))
			switch {
			case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
				write("250 localhost")
			case strings.HasPrefix(cmd, "MAIL FROM"), strings.HasPrefix(cmd, "RCPT TO"):
				write("250 OK")
			case cmd == "DATA":
				write("354 go ahead")
				var b strings.Builder
				for {
					l, err := r.ReadString('\n')
					if err != nil {
						return
					}
					if l == ".\r\n" {
						break
					}
					b.WriteString(l)
				}
				out <- b.String()
				write("250 queued")
			case cmd == "QUIT":
				write("221 bye")
				return
			default:
				write("502 unsupported")
			}
		}
	}()

	return ln.Addr().String(), out
}

func TestSMTPSenderSend(t *testing.T) {
	addr, data := fakeSMTP(t)
	host, port, err := net.SplitHostPort(addr)
	require.NoError(t, err)

	s := NewSMTPSender(SMTPConfig{
		Host: host,
		Port: port,
		From: From{Name: "Loja", Email: "loja@varejao.online"},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = s.Send(ctx, Message{To: "ana@loja.com", Subject: "Bem-vindo", HTML: "<h1>Olá</h1>"})
	require.NoError(t, err)

	select {
	case got := <-data:
		assert.Contains(t, got, "To: ana@loja.com")
		assert.Contains(t, got, "<h1>Olá</h1>")
	case <-time.After(2 * time.Second):
		t.Fatal("server did not receive the message")
	}
}

func TestSMTPSenderRequiresRecipient(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "127.0.0.1", Port: "1"})
	assert.ErrorIs(t, s.Send(context.Background(), Message{}), ErrNoRecipient)
}
