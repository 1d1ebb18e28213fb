package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/PabloPavan/varejao_api/internal/mail"
	"github.com/PabloPavan/varejao_api/internal/orders"
	"github.com/PabloPavan/varejao_api/internal/queue"
	"github.com/PabloPavan/varejao_api/internal/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	mu     sync.Mutex
	sent   []mail.Message
	failTo map[string]bool
	notify chan mail.Message
}

func (f *fakeSender) Send(ctx context.Context, msg mail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTo[msg.To] {
		return errors.New("mailbox unavailable")
	}
	f.sent = append(f.sent, msg)
	if f.notify != nil {
		f.notify <- msg
	}
	return nil
}

func (f *fakeSender) recipients() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.sent))
	for _, m := range f.sent {
		out = append(out, m.To)
	}
	return out
}

type namesStub map[string]string

func (n namesStub) DisplayName(ctx context.Context, email string) string {
	if name, ok := n[email]; ok {
		return name
	}
	return users.DefaultDisplayName
}

func orderPayload(t *testing.T, o orders.Order) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(OrderPayload{Order: o})
	require.NoError(t, err)
	return raw
}

func TestOrderPlacedSendsPurchaserAndAdmin(t *testing.T) {
	sender := &fakeSender{}
	j := &Jobs{
		Renderer:   newTestRenderer(t),
		Sender:     sender,
		Names:      namesStub{"a@b.com": "Ana"},
		AdminEmail: "admin@loja.com",
	}

	err := j.orderPlaced(context.Background(), orderPayload(t, sampleOrder()))

	require.NoError(t, err)
	assert.Equal(t, []string{"a@b.com", "admin@loja.com"}, sender.recipients())
	assert.Contains(t, sender.sent[0].HTML, "Ana")
}

func TestOrderPlacedWithoutAdmin(t *testing.T) {
	sender := &fakeSender{}
	j := &Jobs{Renderer: newTestRenderer(t), Sender: sender}

	err := j.orderPlaced(context.Background(), orderPayload(t, sampleOrder()))

	require.NoError(t, err)
	assert.Equal(t, []string{"a@b.com"}, sender.recipients())
	assert.Contains(t, sender.sent[0].HTML, "Cliente")
}

func TestOrderPlacedAdminStillSentWhenPurchaserFails(t *testing.T) {
	sender := &fakeSender{failTo: map[string]bool{"a@b.com": true}}
	j := &Jobs{Renderer: newTestRenderer(t), Sender: sender, AdminEmail: "admin@loja.com"}

	err := j.orderPlaced(context.Background(), orderPayload(t, sampleOrder()))

	assert.Error(t, err)
	assert.Equal(t, []string{"admin@loja.com"}, sender.recipients())
}

func TestOrderShippedUsesFallbackName(t *testing.T) {
	sender := &fakeSender{}
	j := &Jobs{Renderer: newTestRenderer(t), Sender: sender, Names: namesStub{}}

	o := sampleOrder()
	o.Status = orders.StatusShipped
	err := j.orderShipped(context.Background(), orderPayload(t, o))

	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].HTML, "Boa notícia, Cliente!")
}

func TestWelcomeBadPayload(t *testing.T) {
	j := &Jobs{Renderer: newTestRenderer(t), Sender: &fakeSender{}}

	err := j.welcome(context.Background(), json.RawMessage(`{"name":`))
	assert.Error(t, err)
}

func TestNotifierThroughQueue(t *testing.T) {
	q := queue.New(queue.NewMemoryDriver(10), queue.Options{JobTimeout: time.Second})
	sender := &fakeSender{notify: make(chan mail.Message, 4)}
	jobs := &Jobs{Renderer: newTestRenderer(t), Sender: sender}
	jobs.Register(q)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = q.Run(ctx, 1)
	}()
	defer func() {
		cancel()
		<-done
	}()

	n := &Notifier{Queue: q}
	receipt, err := n.UserRegistered(context.Background(), users.User{Name: "Ana", Email: "ana@loja.com"})
	require.NoError(t, err)
	assert.Equal(t, JobUserWelcome, receipt.Type)

	select {
	case msg := <-sender.notify:
		assert.Equal(t, "ana@loja.com", msg.To)
		assert.Contains(t, msg.HTML, "Olá, Ana!")
	case <-time.After(2 * time.Second):
		t.Fatal("welcome email was not sent")
	}
}
