package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestValidateSignature(t *testing.T) {
	body := []byte(`{"object":"page","entry":[]}`)
	secret := "app-secret"

	if !ValidateSignature(body, secret, sign(body, secret)) {
		t.Error("valid signature rejected")
	}
	if ValidateSignature(body, secret, sign(body, "other-secret")) {
		t.Error("signature under wrong secret accepted")
	}
	if ValidateSignature([]byte("tampered"), secret, sign(body, secret)) {
		t.Error("signature over different body accepted")
	}
	if ValidateSignature(body, secret, "") {
		t.Error("empty signature accepted")
	}
	if ValidateSignature(body, "", sign(body, secret)) {
		t.Error("empty secret accepted")
	}
	if ValidateSignature(body, secret, "sha256=zz") {
		t.Error("malformed signature accepted")
	}
}

func TestValidateSignatureWithoutPrefix(t *testing.T) {
	body := []byte("payload")
	secret := "s3cr3t"

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	bare := hex.EncodeToString(mac.Sum(nil))

	if !ValidateSignature(body, secret, bare) {
		t.Error("signature without sha256= prefix rejected")
	}
}
