package utils

// MaskKey masks an API key for safe logging (first 4 and last 4 chars).
func MaskKey(key string) string {
	if key == "" {
		return "(empty)"
	}
	if len(key) <= 12 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
