package handler

import (
	"context"
	"net/http"

	"dealchat/internal/app/store"
	"dealchat/internal/pkg/errs"
	"dealchat/internal/pkg/logx"
	"dealchat/internal/pkg/req"
	"dealchat/internal/pkg/resp"
)

// HandleListMessages returns the bounded, time-ascending history window.
// Every poll returns the full window; clients replace their view wholesale.
func HandleListMessages(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messages, err := deps.Messages.Recent(r.Context(), store.DefaultRecentLimit)
		if err != nil {
			logx.Error(err, "failed to fetch messages")
			resp.RespondError(w, r, errs.NewError(errs.ErrMessageFetchFailed))
			return
		}

		if messages == nil {
			messages = []store.Message{}
		}

		resp.RespondSuccess(w, r, map[string]any{
			"messages": messages,
		})
	}
}

type SendMessageInput struct {
	From     string  `json:"from"`
	Content  string  `json:"content"`
	Type     string  `json:"type"`
	ImageURL *string `json:"imageUrl"`
}

// HandleSendMessage appends a message to the log and fires the push alert to
// the other party. Delivery runs on its own goroutine with a fresh context so
// it can neither delay nor fail the response.
func HandleSendMessage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input SendMessageInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.From == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		kind := input.Type
		if kind == "" {
			kind = store.KindText
		}
		if kind != store.KindText && kind != store.KindImage {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		message, err := deps.Messages.Append(r.Context(), input.From, input.Content, kind, input.ImageURL)
		if err != nil {
			logx.Error(err, "failed to store message", "from", input.From)
			resp.RespondError(w, r, errs.NewError(errs.ErrMessageSendFailed))
			return
		}

		go deps.Dispatcher.NotifyOther(context.Background(), input.From)

		resp.RespondSuccess(w, r, map[string]any{
			"message": message,
		})
	}
}
