package model

import (
	"fmt"
	"sort"
	"strings"
)

// PaymentMethod is the portal's code for a form of payment
type PaymentMethod int

const (
	PayContado                 PaymentMethod = 1
	PayTarjetaCredito          PaymentMethod = 68
	PayTarjetaDebito           PaymentMethod = 69
	PayOtrosMediosElectronicos PaymentMethod = 90
	PayTransferenciaBancaria   PaymentMethod = 91
	PayCuentaCorriente         PaymentMethod = 96
	PayCheque                  PaymentMethod = 97
	PayOtra                    PaymentMethod = 99
)

var paymentMethodDescriptions = map[PaymentMethod]string{
	PayContado:                 "Contado",
	PayTarjetaDebito:           "Tarjeta de Débito",
	PayTarjetaCredito:          "Tarjeta de Crédito",
	PayCuentaCorriente:         "Cuenta Corriente",
	PayCheque:                  "Cheque",
	PayTransferenciaBancaria:   "Transferencia Bancaria",
	PayOtra:                    "Otra",
	PayOtrosMediosElectronicos: "Otros medios de pago electrónico",
}

var paymentMethodNames = map[string]PaymentMethod{
	"CONTADO":                   PayContado,
	"TARJETA_DEBITO":            PayTarjetaDebito,
	"TARJETA_CREDITO":           PayTarjetaCredito,
	"CUENTA_CORRIENTE":          PayCuentaCorriente,
	"CHEQUE":                    PayCheque,
	"TRANSFERENCIA_BANCARIA":    PayTransferenciaBancaria,
	"OTRA":                      PayOtra,
	"OTROS_MEDIOS_ELECTRONICOS": PayOtrosMediosElectronicos,
}

// Description returns the portal's display label for the method
func (m PaymentMethod) Description() string {
	if desc, ok := paymentMethodDescriptions[m]; ok {
		return desc
	}
	return fmt.Sprintf("PaymentMethod(%d)", int(m))
}

// Name returns the record-set name for the method
func (m PaymentMethod) Name() string {
	for name, code := range paymentMethodNames {
		if code == m {
			return name
		}
	}
	return fmt.Sprintf("PaymentMethod(%d)", int(m))
}

// IsValid reports whether the method is a known portal code
func (m PaymentMethod) IsValid() bool {
	_, ok := paymentMethodDescriptions[m]
	return ok
}

// RequiresCardData reports whether the method needs supplementary card data
// on the recipient form. Filling that data is not implemented downstream;
// callers must treat such methods as a recognized gap.
func (m PaymentMethod) RequiresCardData() bool {
	return m == PayTarjetaDebito || m == PayTarjetaCredito
}

// PaymentMethods returns all known methods in ascending code order
func PaymentMethods() []PaymentMethod {
	methods := make([]PaymentMethod, 0, len(paymentMethodDescriptions))
	for m := range paymentMethodDescriptions {
		methods = append(methods, m)
	}
	sort.Slice(methods, func(i, j int) bool { return methods[i] < methods[j] })
	return methods
}

// ParsePaymentMethod parses a payment method from its record-set name
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	if m, ok := paymentMethodNames[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return m, nil
	}
	return 0, NewValidationError("invoice.payment.method", s, "membership", "unknown payment method")
}

// PaymentInfo is the validated set of payment methods for an invoice
type PaymentInfo struct {
	Methods []PaymentMethod
}

// CreatePaymentInfo validates a set of payment method names. At least one
// method must be selected; duplicates collapse.
func CreatePaymentInfo(names ...string) (PaymentInfo, error) {
	if len(names) == 0 {
		return PaymentInfo{}, NewValidationError("invoice.payment.method", nil, "required",
			"at least one payment method must be selected")
	}
	seen := make(map[PaymentMethod]bool, len(names))
	var methods []PaymentMethod
	for _, name := range names {
		m, err := ParsePaymentMethod(name)
		if err != nil {
			return PaymentInfo{}, err
		}
		if !seen[m] {
			seen[m] = true
			methods = append(methods, m)
		}
	}
	sort.Slice(methods, func(i, j int) bool { return methods[i] < methods[j] })
	return PaymentInfo{Methods: methods}, nil
}

// Has reports whether the method is among the selected ones
func (p PaymentInfo) Has(m PaymentMethod) bool {
	for _, method := range p.Methods {
		if method == m {
			return true
		}
	}
	return false
}

// RequiresCardData reports whether any selected method needs supplementary
// card data
func (p PaymentInfo) RequiresCardData() bool {
	for _, m := range p.Methods {
		if m.RequiresCardData() {
			return true
		}
	}
	return false
}
