package handler

import (
	"encoding/json"
	"net/http"

	"dealchat/internal/pkg/errs"
	"dealchat/internal/pkg/logx"
	"dealchat/internal/pkg/req"
	"dealchat/internal/pkg/resp"
)

type SubscribeInput struct {
	Username string `json:"username"`

	// Subscription is the opaque descriptor produced by the browser Push API.
	// The server stores it verbatim; only the dispatcher ever interprets it.
	Subscription json.RawMessage `json:"subscription"`
}

// HandleSubscribe registers (or replaces) the caller's push endpoint.
// Failure degrades the client to "no push alerts"; there is no retry policy.
func HandleSubscribe(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input SubscribeInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.Username == "" || len(input.Subscription) == 0 {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		if err := deps.Subscriptions.Upsert(r.Context(), input.Username, input.Subscription); err != nil {
			logx.Error(err, "failed to store push subscription", "username", input.Username)
			resp.RespondError(w, r, errs.NewError(errs.ErrSubscribeFailed))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{})
	}
}
