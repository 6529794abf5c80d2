package handler

import (
	"context"

	"dealchat/internal/app/directory"
	"dealchat/internal/app/store"
	"dealchat/internal/app/storage"
	"dealchat/internal/configs"
)

// Notifier is the push-delivery capability the send handler fires after a
// message is persisted. Implementations must swallow their own failures.
type Notifier interface {
	NotifyOther(ctx context.Context, sender string)
}

// AppDeps bundles the collaborators every handler needs.
type AppDeps struct {
	Config         *configs.AppConfig
	Directory      *directory.Directory
	Messages       store.MessageStore
	Subscriptions  store.SubscriptionStore
	Dispatcher     Notifier
	StorageService storage.StorageService
}
