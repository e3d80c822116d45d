package payment

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownMethod = errors.New("unknown payment method")

// Method is the closed set of checkout payment options.
type Method string

const (
	MethodCOD    Method = "COD"
	MethodOnline Method = "ONLINE"
	MethodQR     Method = "QR"
)

var labels = map[Method]string{
	MethodCOD:    "Cash on Delivery",
	MethodOnline: "Online (App)",
	MethodQR:     "Online (QR Code)",
}

func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := labels[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
	return m, nil
}

// Label is the human readable name recorded on orders.
func (m Method) Label() string {
	return labels[m]
}

// NeedsConfirmation reports whether the buyer must attest to having paid
// before the order is recorded.
func (m Method) NeedsConfirmation() bool {
	return m == MethodOnline || m == MethodQR
}
