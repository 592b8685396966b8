package model

import (
	"fmt"
	"strings"
)

// IssuerType distinguishes the two tax regimes an issuer can operate under.
// Responsable Inscripto is a registered VAT payer, Monotributo the simplified
// regime; most cross-field rules key off this distinction.
type IssuerType int

const (
	IssuerResponsableInscripto IssuerType = iota + 1
	IssuerMonotributo
)

var issuerTypeNames = map[IssuerType]string{
	IssuerResponsableInscripto: "RESPONSABLE_INSCRIPTO",
	IssuerMonotributo:          "MONOTRIBUTO",
}

func (t IssuerType) String() string {
	if name, ok := issuerTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("IssuerType(%d)", int(t))
}

// IsValid reports whether the issuer type is a known value
func (t IssuerType) IsValid() bool {
	_, ok := issuerTypeNames[t]
	return ok
}

// ParseIssuerType parses an issuer type from its record-set name
func ParseIssuerType(s string) (IssuerType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "RESPONSABLE_INSCRIPTO":
		return IssuerResponsableInscripto, nil
	case "MONOTRIBUTO":
		return IssuerMonotributo, nil
	default:
		return 0, NewValidationError("issuer.type", s, "membership",
			"issuer type must be RESPONSABLE_INSCRIPTO or MONOTRIBUTO")
	}
}

// InvoiceType is the portal's numeric code for a document class
type InvoiceType int

// Document classes offered by the portal's invoice generator. Codes are the
// select-option values the generator page uses.
const (
	// Monotributo documents
	FacturaC     InvoiceType = 2
	NotaDebitoC  InvoiceType = 3
	NotaCreditoC InvoiceType = 4
	ReciboC      InvoiceType = 5

	// Responsable Inscripto documents
	FacturaA     InvoiceType = 10
	NotaDebitoA  InvoiceType = 11
	NotaCreditoA InvoiceType = 12
	ReciboA      InvoiceType = 13
	FacturaB     InvoiceType = 19
	NotaDebitoB  InvoiceType = 21
	NotaCreditoB InvoiceType = 23
	ReciboB      InvoiceType = 25
	FacturaT     InvoiceType = 111
	NotaDebitoT  InvoiceType = 112
	NotaCreditoT InvoiceType = 113

	// Electronic SME credit (FCE MiPyME) documents
	FacturaFCEA     InvoiceType = 114
	NotaDebitoFCEA  InvoiceType = 115
	NotaCreditoFCEA InvoiceType = 116
	FacturaFCEB     InvoiceType = 117
	NotaDebitoFCEB  InvoiceType = 118
	NotaCreditoFCEB InvoiceType = 119
	FacturaFCEC     InvoiceType = 120
	NotaDebitoFCEC  InvoiceType = 121
	NotaCreditoFCEC InvoiceType = 122
)

var invoiceTypeDescriptions = map[InvoiceType]string{
	FacturaC:     "Factura C",
	NotaDebitoC:  "Nota de Débito C",
	NotaCreditoC: "Nota de Crédito C",
	ReciboC:      "Recibo C",

	FacturaA:     "Factura A",
	NotaDebitoA:  "Nota de Débito A",
	NotaCreditoA: "Nota de Crédito A",
	ReciboA:      "Recibo A",
	FacturaB:     "Factura B",
	NotaDebitoB:  "Nota de Débito B",
	NotaCreditoB: "Nota de Crédito B",
	ReciboB:      "Recibo B",
	FacturaT:     "Factura T",
	NotaDebitoT:  "Nota de Débito T",
	NotaCreditoT: "Nota de Crédito T",

	FacturaFCEA:     "Factura de Crédito Electrónica MiPyMEs (FCE) A",
	NotaDebitoFCEA:  "Nota de Débito Electrónica MiPyMEs (FCE) A",
	NotaCreditoFCEA: "Nota de Crédito Electrónica MiPyMEs (FCE) A",
	FacturaFCEB:     "Factura de Crédito Electrónica MiPyMEs (FCE) B",
	NotaDebitoFCEB:  "Nota de Débito Electrónica MiPyMEs (FCE) B",
	NotaCreditoFCEB: "Nota de Crédito Electrónica MiPyMEs (FCE) B",
	FacturaFCEC:     "Factura de Crédito Electrónica MiPyMEs (FCE) C",
	NotaDebitoFCEC:  "Nota de Débito Electrónica MiPyMEs (FCE) C",
	NotaCreditoFCEC: "Nota de Crédito Electrónica MiPyMEs (FCE) C",
}

var invoiceTypeNames = map[string]InvoiceType{
	"FACTURA_C":      FacturaC,
	"NOTA_DEBITO_C":  NotaDebitoC,
	"NOTA_CREDITO_C": NotaCreditoC,
	"RECIBO_C":       ReciboC,

	"FACTURA_A":      FacturaA,
	"NOTA_DEBITO_A":  NotaDebitoA,
	"NOTA_CREDITO_A": NotaCreditoA,
	"RECIBO_A":       ReciboA,
	"FACTURA_B":      FacturaB,
	"NOTA_DEBITO_B":  NotaDebitoB,
	"NOTA_CREDITO_B": NotaCreditoB,
	"RECIBO_B":       ReciboB,
	"FACTURA_T":      FacturaT,
	"NOTA_DEBITO_T":  NotaDebitoT,
	"NOTA_CREDITO_T": NotaCreditoT,

	"FACTURA_CREDITO_ELECTRONICA_MIPYME_A": FacturaFCEA,
	"NOTA_DEBITO_ELECTRONICA_MIPYME_A":     NotaDebitoFCEA,
	"NOTA_CREDITO_ELECTRONICA_MIPYME_A":    NotaCreditoFCEA,
	"FACTURA_CREDITO_ELECTRONICA_MIPYME_B": FacturaFCEB,
	"NOTA_DEBITO_ELECTRONICA_MIPYME_B":     NotaDebitoFCEB,
	"NOTA_CREDITO_ELECTRONICA_MIPYME_B":    NotaCreditoFCEB,
	"FACTURA_CREDITO_ELECTRONICA_MIPYME_C": FacturaFCEC,
	"NOTA_DEBITO_ELECTRONICA_MIPYME_C":     NotaDebitoFCEC,
	"NOTA_CREDITO_ELECTRONICA_MIPYME_C":    NotaCreditoFCEC,
}

// Description returns the portal's display label for the document class
func (t InvoiceType) Description() string {
	if desc, ok := invoiceTypeDescriptions[t]; ok {
		return desc
	}
	return fmt.Sprintf("InvoiceType(%d)", int(t))
}

// Name returns the record-set name for the document class
func (t InvoiceType) Name() string {
	for name, code := range invoiceTypeNames {
		if code == t {
			return name
		}
	}
	return fmt.Sprintf("InvoiceType(%d)", int(t))
}

// IsValid reports whether the invoice type is a known portal code
func (t InvoiceType) IsValid() bool {
	_, ok := invoiceTypeDescriptions[t]
	return ok
}

// ParseInvoiceType parses an invoice type from its record-set name
func ParseInvoiceType(s string) (InvoiceType, error) {
	if code, ok := invoiceTypeNames[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return code, nil
	}
	return 0, NewValidationError("invoice.type", s, "membership", "unknown invoice type")
}

// allowedInvoiceTypes maps each issuer type to the document classes the
// portal lets it issue
var allowedInvoiceTypes = map[IssuerType]map[InvoiceType]bool{
	IssuerMonotributo: {
		FacturaC:        true,
		NotaDebitoC:     true,
		NotaCreditoC:    true,
		ReciboC:         true,
		FacturaFCEC:     true,
		NotaDebitoFCEC:  true,
		NotaCreditoFCEC: true,
	},
	IssuerResponsableInscripto: {
		FacturaA:        true,
		NotaDebitoA:     true,
		NotaCreditoA:    true,
		ReciboA:         true,
		FacturaB:        true,
		NotaDebitoB:     true,
		NotaCreditoB:    true,
		ReciboB:         true,
		FacturaT:        true,
		NotaDebitoT:     true,
		NotaCreditoT:    true,
		FacturaFCEA:     true,
		NotaDebitoFCEA:  true,
		NotaCreditoFCEA: true,
		FacturaFCEB:     true,
		NotaDebitoFCEB:  true,
		NotaCreditoFCEB: true,
	},
}

// InvoiceTypeAllowed reports whether the issuer type may issue the given
// document class
func InvoiceTypeAllowed(invoiceType InvoiceType, issuerType IssuerType) bool {
	return allowedInvoiceTypes[issuerType][invoiceType]
}

// InvoiceTypesFor returns the document classes available to an issuer type,
// in ascending code order
func InvoiceTypesFor(issuerType IssuerType) []InvoiceType {
	var types []InvoiceType
	for t := range allowedInvoiceTypes[issuerType] {
		types = append(types, t)
	}
	sortInvoiceTypes(types)
	return types
}

func sortInvoiceTypes(types []InvoiceType) {
	for i := 1; i < len(types); i++ {
		for j := i; j > 0 && types[j-1] > types[j]; j-- {
			types[j-1], types[j] = types[j], types[j-1]
		}
	}
}

// InvoiceTypeInfo is a validated (invoice type, issuer type, sales point)
// triple ready for the type-selection step
type InvoiceTypeInfo struct {
	Code        InvoiceType
	Description string
	IssuerType  IssuerType
	SalesPoint  SalesPoint
}

// CreateInvoiceTypeInfo validates the issuer/invoice-type pairing and the
// sales point, producing the inputs for the type-selection step
func CreateInvoiceTypeInfo(code InvoiceType, issuerType IssuerType, salesPoint string) (InvoiceTypeInfo, error) {
	if !issuerType.IsValid() {
		return InvoiceTypeInfo{}, NewValidationError("issuer.type", int(issuerType), "membership", "unknown issuer type")
	}
	if !code.IsValid() {
		return InvoiceTypeInfo{}, NewValidationError("invoice.type", int(code), "membership", "unknown invoice type")
	}
	if !InvoiceTypeAllowed(code, issuerType) {
		return InvoiceTypeInfo{}, NewValidationError("invoice.type", code.Name(), "compatibility",
			fmt.Sprintf("invoice type %s cannot be issued by %s", code.Name(), issuerType))
	}
	sp, err := CreateSalesPoint(salesPoint)
	if err != nil {
		return InvoiceTypeInfo{}, err
	}
	return InvoiceTypeInfo{
		Code:        code,
		Description: code.Description(),
		IssuerType:  issuerType,
		SalesPoint:  sp,
	}, nil
}
