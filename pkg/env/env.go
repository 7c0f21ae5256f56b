package env

import (
	"os"
	"strings"
)

// Prefix namespaces variables owned by the order view services.
const Prefix = "ORDERVIEW_"

// Get returns the value of key, or fallback when it is unset or blank.
func Get(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

// Lookup reads ORDERVIEW_<name> first, then the bare name, then fallback.
func Lookup(name, fallback string) string {
	return Get(Prefix+name, Get(name, fallback))
}
