package cli

import (
	"fmt"
	"os"
)

// WriteEnvFile writes the bootstrap credentials to path, replacing any
// existing contents wholesale. No merging with prior entries happens.
func WriteEnvFile(path, endpoint, apiKey, projectID string) error {
	content := fmt.Sprintf(
		"APPWRITE_ENDPOINT=%s\nAPPWRITE_API_KEY=%s\nAPPWRITE_PROJECT_ID=%s\n",
		endpoint, apiKey, projectID,
	)
	return os.WriteFile(path, []byte(content), 0o600)
}
