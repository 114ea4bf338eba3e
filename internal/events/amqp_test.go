package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	declareErr error
	published  []amqp.Publishing
	keys       []string
	closed     bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	return f.declareErr
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.keys = append(f.keys, exchange+"/"+key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

type fakeConn struct {
	ch     *fakeChannel
	chErr  error
	closed bool
}

func (f *fakeConn) Channel() (amqpChannel, error) {
	if f.chErr != nil {
		return nil, f.chErr
	}
	return f.ch, nil
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

func TestNewAMQP(t *testing.T) {
	orig := amqpDial
	t.Cleanup(func() { amqpDial = orig })

	amqpDial = func(string) (amqpConn, error) { return nil, errors.New("refused") }
	_, err := NewAMQP("amqp://x", Exchange)
	require.ErrorContains(t, err, "dial rabbitmq")

	conn := &fakeConn{chErr: errors.New("no channel")}
	amqpDial = func(string) (amqpConn, error) { return conn, nil }
	_, err = NewAMQP("amqp://x", Exchange)
	require.ErrorContains(t, err, "open channel")
	require.True(t, conn.closed)

	conn = &fakeConn{ch: &fakeChannel{declareErr: errors.New("denied")}}
	_, err = NewAMQP("amqp://x", Exchange)
	require.ErrorContains(t, err, "declare exchange")
	require.True(t, conn.ch.closed)
	require.True(t, conn.closed)

	conn = &fakeConn{ch: &fakeChannel{}}
	p, err := NewAMQP("amqp://x", Exchange)
	require.NoError(t, err)
	require.NoError(t, p.Close())
	require.True(t, conn.ch.closed)
}

func TestAMQPPublish(t *testing.T) {
	ch := &fakeChannel{}
	p := &AMQP{ch: ch, exchange: Exchange}
	require.NoError(t, p.Publish(context.Background(), ItemCreated, ItemEvent{ItemID: "i1"}))
	require.Equal(t, []string{"back2u.items/item.created"}, ch.keys)
	msg := ch.published[0]
	require.Equal(t, "application/json", msg.ContentType)
	require.Equal(t, amqp.Persistent, msg.DeliveryMode)

	var ev ItemEvent
	require.NoError(t, json.Unmarshal(msg.Body, &ev))
	require.Equal(t, "i1", ev.ItemID)

	require.Error(t, p.Publish(context.Background(), ItemCreated, make(chan int)))
}
