/*
Package push delivers the fixed web-push alert to the counterparty of a sent message.

Delivery is strictly best-effort: every failure mode (missing recipient, storage
error, malformed descriptor, expired endpoint, transport error) is logged and
swallowed. Nothing in this package may ever fail the message send that triggered it.
*/
package push

import (
	"context"
	"encoding/json"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"

	"dealchat/internal/app/directory"
	"dealchat/internal/app/store"
	"dealchat/internal/configs"
	"dealchat/internal/pkg/logx"
)

// defaultTTL is the number of seconds a push service may retain an undelivered alert.
const defaultTTL = 60

// sendFunc matches webpush.SendNotificationWithContext; injectable for tests.
type sendFunc func(ctx context.Context, message []byte, s *webpush.Subscription, options *webpush.Options) (*http.Response, error)

// alertPayload is the fixed notification body. It is identical for every
// message and deliberately not derived from message content.
type alertPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Icon  string `json:"icon"`
	Badge string `json:"badge"`
	Data  struct {
		URL string `json:"url"`
	} `json:"data"`
}

// Dispatcher resolves the other party of a sender and pushes the fixed alert
// to their registered endpoint, if any.
type Dispatcher struct {
	dir     *directory.Directory
	subs    store.SubscriptionStore
	options webpush.Options
	payload []byte
	send    sendFunc
}

// NewDispatcher builds a Dispatcher with the VAPID credentials and the fixed
// alert payload taken from configuration.
func NewDispatcher(cfg *configs.AppConfig, dir *directory.Directory, subs store.SubscriptionStore) *Dispatcher {
	payload := alertPayload{
		Title: cfg.NotifyTitle,
		Body:  cfg.NotifyBody,
		Icon:  cfg.NotifyIcon,
		Badge: cfg.NotifyBadge,
	}
	payload.Data.URL = cfg.NotifyURL

	// The payload never varies, so marshal it once.
	raw, err := json.Marshal(payload)
	if err != nil {
		logx.Error(err, "failed to marshal fixed alert payload")
		raw = []byte(`{}`)
	}

	return &Dispatcher{
		dir:  dir,
		subs: subs,
		options: webpush.Options{
			Subscriber:      cfg.VAPIDSubscriber,
			VAPIDPublicKey:  cfg.VAPIDPublicKey,
			VAPIDPrivateKey: cfg.VAPIDPrivateKey,
			TTL:             defaultTTL,
		},
		payload: raw,
		send:    webpush.SendNotificationWithContext,
	}
}

// NotifyOther attempts to deliver the fixed alert to the party opposite the
// sender. It never returns an error and never panics; callers are expected to
// run it on its own goroutine so delivery cannot delay the triggering request.
func (d *Dispatcher) NotifyOther(ctx context.Context, sender string) {
	recipient, ok := d.dir.ResolveOther(sender)
	if !ok {
		logx.Warn("push skipped: no counterparty for sender", "sender", sender)
		return
	}

	sub, err := d.subs.Get(ctx, recipient)
	if err != nil {
		logx.Error(err, "push skipped: subscription lookup failed", "recipient", recipient)
		return
	}
	if sub == nil {
		// The recipient never registered an endpoint; silently degrade.
		return
	}

	var endpoint webpush.Subscription
	if err := json.Unmarshal(sub.Descriptor, &endpoint); err != nil {
		logx.Error(err, "push failed: malformed subscription descriptor", "recipient", recipient)
		return
	}

	res, err := d.send(ctx, d.payload, &endpoint, &d.options)
	if err != nil {
		logx.Error(err, "push notification failed", "recipient", recipient)
		return
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		// 404/410 from the push service means the endpoint expired. The stale
		// subscription stays in the table; nothing ever prunes it.
		logx.Warn("push service rejected notification", "recipient", recipient, "status", res.StatusCode)
	}
}
