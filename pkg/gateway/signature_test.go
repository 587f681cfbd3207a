package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	const secret = "test-secret"

	sig := Signature("order_ABC123", "pay_XYZ789", secret)
	assert.True(t, VerifySignature("order_ABC123", "pay_XYZ789", sig, secret))
}

func TestVerifySignatureRejectsTampering(t *testing.T) {
	const secret = "test-secret"
	sig := Signature("order_ABC123", "pay_XYZ789", secret)

	assert.False(t, VerifySignature("order_ABC123", "pay_XYZ789", sig+"0", secret))
	assert.False(t, VerifySignature("order_ABC124", "pay_XYZ789", sig, secret))
	assert.False(t, VerifySignature("order_ABC123", "pay_XYZ790", sig, secret))
	assert.False(t, VerifySignature("order_ABC123", "pay_XYZ789", sig, "other-secret"))
	assert.False(t, VerifySignature("order_ABC123", "pay_XYZ789", "", secret))
}
