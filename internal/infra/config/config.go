// internal/infra/config/config.go
package config

import "os"

// Config holds environment-driven settings for the whole application.
type Config struct {
	Port                     string
	GCPProjectID             string
	FirestoreProjectID       string
	FirestoreCredentialsFile string
	FirebaseProjectID        string
}

// Load reads the environment and returns a Config.
func Load() *Config {
	defaultProject := os.Getenv("GCP_PROJECT_ID")

	return &Config{
		Port:                     getenvDefault("PORT", "8080"),
		GCPProjectID:             defaultProject,
		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		FirebaseProjectID:        getenvDefault("FIREBASE_PROJECT_ID", defaultProject),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
