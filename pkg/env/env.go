package env

import "os"

// Get resolves an environment variable, preferring the FERRE_-prefixed
// spelling so ad-hoc lookups line up with the config prefix.
func Get(key, fallback string) string {
	if val := os.Getenv("FERRE_" + key); val != "" {
		return val
	}
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
