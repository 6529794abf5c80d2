package client

import (
	"encoding/json"
	"os"
	"path"
)

// PersistedIdentity is the client-local "session": just the authenticated
// username, trusted on re-launch without expiry. There is no server token to
// refresh or revoke; this mirrors the deployment's documented trust model.
type PersistedIdentity struct {
	Username string `json:"username"`
}

func identityPath(dir string) string {
	if dir == "" {
		homeDir, _ := os.UserHomeDir()
		dir = path.Join(homeDir, ".dealchat")
	}
	return path.Join(dir, "session.json")
}

func loadIdentity(dir string) (string, bool) {
	content, err := os.ReadFile(identityPath(dir))
	if err != nil {
		return "", false
	}

	var identity PersistedIdentity
	if err := json.Unmarshal(content, &identity); err != nil || identity.Username == "" {
		return "", false
	}

	return identity.Username, true
}

func saveIdentity(dir, username string) error {
	filePath := identityPath(dir)
	if err := os.MkdirAll(path.Dir(filePath), 0o755); err != nil {
		return err
	}

	content, err := json.Marshal(PersistedIdentity{Username: username})
	if err != nil {
		return err
	}

	return os.WriteFile(filePath, content, 0o600)
}

func clearIdentity(dir string) {
	os.Remove(identityPath(dir))
}
