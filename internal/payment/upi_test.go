package payment

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soulstitch/storefront/internal/money"
)

var payee = Payee{ID: "soulstitch@upi", Name: "Soul & Stitch"}

func TestUPILink(t *testing.T) {
	t.Run("deep link carries the order note", func(t *testing.T) {
		got := UPILink(payee, money.MustParse("700"), OrderNote)
		assert.Equal(t, "upi://pay?pa=soulstitch@upi&pn=Soul%20%26%20Stitch&tn=Order&am=700.00&cu=INR", got)
	})

	t.Run("qr payload has no note", func(t *testing.T) {
		got := UPILink(payee, money.MustParse("199.5"), "")
		assert.Equal(t, "upi://pay?pa=soulstitch@upi&pn=Soul%20%26%20Stitch&am=199.50&cu=INR", got)
	})
}

func TestQRCode(t *testing.T) {
	png, err := QRCode(UPILink(payee, money.MustParse("700"), ""), QRImageSize)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    Method
		label   string
		confirm bool
	}{
		{in: "COD", want: MethodCOD, label: "Cash on Delivery"},
		{in: "online", want: MethodOnline, label: "Online (App)", confirm: true},
		{in: " QR ", want: MethodQR, label: "Online (QR Code)", confirm: true},
	}
	for _, tt := range tests {
		m, err := ParseMethod(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, m)
		assert.Equal(t, tt.label, m.Label())
		assert.Equal(t, tt.confirm, m.NeedsConfirmation())
	}

	_, err := ParseMethod("CARD")
	require.ErrorIs(t, err, ErrUnknownMethod)
}

func TestChatLink(t *testing.T) {
	got := ChatLink("919958268957", "Hi, I need help with my order")
	assert.Equal(t, "whatsapp://send?phone=919958268957&text=Hi%2C%20I%20need%20help%20with%20my%20order", got)
}
