package instance

import (
	"os"

	"github.com/angelmondragon/orderview-backend/pkg/env"
)

const fallbackID = "local"

// ID names the running process in logs: ORDERVIEW_INSTANCE_ID or
// INSTANCE_ID, then the platform DYNO name, then the hostname.
func ID() string {
	if id := env.Lookup("INSTANCE_ID", env.Get("DYNO", "")); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return fallbackID
}
