package push

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/require"

	"dealchat/internal/app/directory"
	"dealchat/internal/app/store"
	"dealchat/internal/configs"
)

type fakeSubs struct {
	subs map[string]json.RawMessage
	err  error
}

func (f *fakeSubs) Upsert(ctx context.Context, username string, descriptor json.RawMessage) error {
	if f.subs == nil {
		f.subs = make(map[string]json.RawMessage)
	}
	f.subs[username] = descriptor
	return nil
}

func (f *fakeSubs) Get(ctx context.Context, username string) (*store.Subscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	descriptor, ok := f.subs[username]
	if !ok {
		return nil, nil
	}
	return &store.Subscription{Username: username, Descriptor: descriptor}, nil
}

func testDispatcher(t *testing.T, subs *fakeSubs) *Dispatcher {
	t.Helper()
	cfg := &configs.AppConfig{
		User1Username:   "daddy",
		User1Password:   "pw1",
		User2Username:   "Dum",
		User2Password:   "pw2",
		VAPIDSubscriber: "mailto:ops@example.com",
		VAPIDPublicKey:  "pub",
		VAPIDPrivateKey: "priv",
		NotifyTitle:     "Sale Alert! on Myntra",
		NotifyBody:      "Sale 20% off on selected items! Grab now before they run out!",
		NotifyIcon:      "/icon.png",
		NotifyBadge:     "/badge.png",
		NotifyURL:       "/chat",
	}
	return NewDispatcher(cfg, directory.New(cfg), subs)
}

func validDescriptor(t *testing.T) json.RawMessage {
	t.Helper()
	return json.RawMessage(`{"endpoint":"https://push.example/ep","keys":{"p256dh":"BP","auth":"AU"}}`)
}

func TestNotifyOther_NoSubscription(t *testing.T) {
	req := require.New(t)
	subs := &fakeSubs{}
	d := testDispatcher(t, subs)

	called := false
	d.send = func(ctx context.Context, message []byte, s *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
		called = true
		return nil, nil
	}

	req.NotPanics(func() { d.NotifyOther(context.Background(), "daddy") })
	req.False(called, "no delivery should be attempted without a subscription")
}

func TestNotifyOther_UnknownSender(t *testing.T) {
	req := require.New(t)
	d := testDispatcher(t, &fakeSubs{})

	req.NotPanics(func() { d.NotifyOther(context.Background(), "stranger") })
}

func TestNotifyOther_LookupFailure(t *testing.T) {
	req := require.New(t)
	d := testDispatcher(t, &fakeSubs{err: errors.New("storage unavailable")})

	req.NotPanics(func() { d.NotifyOther(context.Background(), "daddy") })
}

func TestNotifyOther_MalformedDescriptor(t *testing.T) {
	req := require.New(t)
	subs := &fakeSubs{}
	req.NoError(subs.Upsert(context.Background(), "Dum", json.RawMessage(`"not an object"`)))
	d := testDispatcher(t, subs)

	called := false
	d.send = func(ctx context.Context, message []byte, s *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
		called = true
		return nil, nil
	}

	req.NotPanics(func() { d.NotifyOther(context.Background(), "daddy") })
	req.False(called)
}

func TestNotifyOther_DeliveryError(t *testing.T) {
	req := require.New(t)
	subs := &fakeSubs{}
	req.NoError(subs.Upsert(context.Background(), "Dum", validDescriptor(t)))
	d := testDispatcher(t, subs)

	d.send = func(ctx context.Context, message []byte, s *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
		return nil, errors.New("endpoint unreachable")
	}

	req.NotPanics(func() { d.NotifyOther(context.Background(), "daddy") })
}

func TestNotifyOther_ExpiredEndpoint(t *testing.T) {
	req := require.New(t)
	subs := &fakeSubs{}
	req.NoError(subs.Upsert(context.Background(), "Dum", validDescriptor(t)))
	d := testDispatcher(t, subs)

	d.send = func(ctx context.Context, message []byte, s *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusGone,
			Body:       io.NopCloser(strings.NewReader("")),
		}, nil
	}

	req.NotPanics(func() { d.NotifyOther(context.Background(), "daddy") })
}

func TestNotifyOther_DeliversFixedPayloadToOtherParty(t *testing.T) {
	req := require.New(t)
	subs := &fakeSubs{}
	req.NoError(subs.Upsert(context.Background(), "Dum", validDescriptor(t)))
	d := testDispatcher(t, subs)

	var gotPayload []byte
	var gotEndpoint string
	d.send = func(ctx context.Context, message []byte, s *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
		gotPayload = message
		gotEndpoint = s.Endpoint
		return &http.Response{
			StatusCode: http.StatusCreated,
			Body:       io.NopCloser(strings.NewReader("")),
		}, nil
	}

	d.NotifyOther(context.Background(), "daddy")

	req.Equal("https://push.example/ep", gotEndpoint)

	var payload alertPayload
	req.NoError(json.Unmarshal(gotPayload, &payload))
	req.Equal("Sale Alert! on Myntra", payload.Title)
	req.Equal("/chat", payload.Data.URL)
	req.Equal("/icon.png", payload.Icon)
}
