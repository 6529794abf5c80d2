/*
Package handler provides the HTTP handlers and routing setup for the chat service.

This file holds the login handler. There is no registration, no session token
and no logout endpoint: the client keeps the authenticated username locally and
re-derives its session from it (trust-on-first-use, documented limitation).
*/
package handler

import (
	"net/http"

	"dealchat/internal/pkg/errs"
	"dealchat/internal/pkg/logx"
	"dealchat/internal/pkg/req"
	"dealchat/internal/pkg/resp"
)

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLogin verifies the credentials against the two configured accounts.
// Invalid credentials are the only client-correctable failure (401).
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input LoginInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		user, err := deps.Directory.Authenticate(input.Username, input.Password)
		if err != nil {
			logx.Warn("login rejected", "username", input.Username)
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"username": user.Username,
		})
	}
}
