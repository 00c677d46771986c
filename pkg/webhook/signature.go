package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SignatureHeader is the request header carrying the payload signature.
// https://developers.facebook.com/docs/messenger-platform/webhooks#security
const SignatureHeader = "X-Hub-Signature-256"

// ValidateSignature reports whether the header signature matches the HMAC
// SHA256 of the raw request body under the app secret. The comparison is
// constant time.
func ValidateSignature(body []byte, appSecret, headerSignature string) bool {
	if appSecret == "" || headerSignature == "" {
		return false
	}
	signature := strings.TrimPrefix(headerSignature, "sha256=")

	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
