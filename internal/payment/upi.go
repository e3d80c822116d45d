package payment

import (
	"fmt"
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/soulstitch/storefront/internal/money"
)

const (
	currency    = "INR"
	OrderNote   = "Order"
	QRImageSize = 256
)

// Payee is the merchant VPA the buyer pays to.
type Payee struct {
	ID   string
	Name string
}

// UPILink builds upi://pay?pa=..&pn=..[&tn=..]&am=..&cu=INR. An empty note
// leaves out tn.
func UPILink(p Payee, amount money.Amount, note string) string {
	var b strings.Builder
	b.WriteString("upi://pay?pa=")
	b.WriteString(escape(p.ID))
	b.WriteString("&pn=")
	b.WriteString(escape(p.Name))
	if note != "" {
		b.WriteString("&tn=")
		b.WriteString(escape(note))
	}
	b.WriteString("&am=")
	b.WriteString(amount.StringFixed(2))
	b.WriteString("&cu=")
	b.WriteString(currency)
	return b.String()
}

// QRCode renders content as a PNG of size x size pixels.
func QRCode(content string, size int) ([]byte, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}

// ChatLink builds a whatsapp://send deep link with a pre-filled message.
func ChatLink(phone, text string) string {
	return "whatsapp://send?phone=" + escape(phone) + "&text=" + escape(text)
}

func escape(s string) string {
	e := url.QueryEscape(s)
	e = strings.ReplaceAll(e, "+", "%20")
	return strings.ReplaceAll(e, "%40", "@")
}
