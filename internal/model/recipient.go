package model

import (
	"fmt"
	"sort"
	"strings"
)

// VatCondition is the recipient's registered tax status. Codes are the
// select-option values used by the recipient form.
type VatCondition int

const (
	CondIVAResponsableInscripto VatCondition = 1
	CondIVASujetoExento         VatCondition = 4
	CondConsumidorFinal         VatCondition = 5
	CondResponsableMonotributo  VatCondition = 6
	CondSujetoNoCategorizado    VatCondition = 7
	CondProveedorDelExterior    VatCondition = 8
	CondClienteDelExterior      VatCondition = 9
	CondIVALiberadoLey19640     VatCondition = 10
	CondMonotributistaSocial    VatCondition = 13
	CondIVANoAlcanzado          VatCondition = 15
	CondMonotributistaTIP       VatCondition = 16
)

var vatConditionDescriptions = map[VatCondition]string{
	CondIVAResponsableInscripto: "IVA Responsable Inscripto",
	CondIVASujetoExento:         "IVA Sujeto Exento",
	CondConsumidorFinal:         "Consumidor Final",
	CondResponsableMonotributo:  "Responsable Monotributo",
	CondSujetoNoCategorizado:    "Sujeto No Categorizado",
	CondProveedorDelExterior:    "Proveedor del Exterior",
	CondClienteDelExterior:      "Cliente del Exterior",
	CondIVALiberadoLey19640:     "IVA Liberado - Ley Nº 19.640",
	CondMonotributistaSocial:    "Monotributista Social",
	CondIVANoAlcanzado:          "IVA No Alcanzado",
	CondMonotributistaTIP:       "Monotributista Trabajador Independiente Promovido",
}

var vatConditionNames = map[string]VatCondition{
	"IVA_RESPONSABLE_INSCRIPTO": CondIVAResponsableInscripto,
	"IVA_SUJETO_EXENTO":         CondIVASujetoExento,
	"CONSUMIDOR_FINAL":          CondConsumidorFinal,
	"RESPONSABLE_MONOTRIBUTO":   CondResponsableMonotributo,
	"SUJETO_NO_CATEGORIZADO":    CondSujetoNoCategorizado,
	"PROVEEDOR_DEL_EXTERIOR":    CondProveedorDelExterior,
	"CLIENTE_DEL_EXTERIOR":      CondClienteDelExterior,
	"IVA_LIBERADO_LEY_19640":    CondIVALiberadoLey19640,
	"MONOTRIBUTISTA_SOCIAL":     CondMonotributistaSocial,
	"IVA_NO_ALCANZADO":          CondIVANoAlcanzado,
	"MONOTRIBUTISTA_TRABAJADOR_INDEPENDIENTE_PROMOVIDO": CondMonotributistaTIP,
}

// Description returns the portal's display label for the condition
func (c VatCondition) Description() string {
	if desc, ok := vatConditionDescriptions[c]; ok {
		return desc
	}
	return fmt.Sprintf("VatCondition(%d)", int(c))
}

// Name returns the record-set name for the condition
func (c VatCondition) Name() string {
	for name, code := range vatConditionNames {
		if code == c {
			return name
		}
	}
	return fmt.Sprintf("VatCondition(%d)", int(c))
}

// IsValid reports whether the condition is a known value
func (c VatCondition) IsValid() bool {
	_, ok := vatConditionDescriptions[c]
	return ok
}

// VatConditions returns all known conditions in ascending code order
func VatConditions() []VatCondition {
	conditions := make([]VatCondition, 0, len(vatConditionDescriptions))
	for c := range vatConditionDescriptions {
		conditions = append(conditions, c)
	}
	sort.Slice(conditions, func(i, j int) bool { return conditions[i] < conditions[j] })
	return conditions
}

// ParseVatCondition parses a VAT condition from its record-set name
func ParseVatCondition(s string) (VatCondition, error) {
	if cond, ok := vatConditionNames[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return cond, nil
	}
	return 0, NewValidationError("recipient.iva_condition", s, "membership", "unknown IVA condition")
}

// registeredRecipientConditions are the conditions a Factura A (and its FCE
// variant) can target: recipients registered with the tax authority.
var registeredRecipientConditions = map[VatCondition]bool{
	CondIVAResponsableInscripto: true,
	CondResponsableMonotributo:  true,
	CondMonotributistaSocial:    true,
	CondMonotributistaTIP:       true,
}

// broadRecipientConditions are the conditions B/C class documents can
// target: final consumers, exempt and exterior parties.
var broadRecipientConditions = map[VatCondition]bool{
	CondIVASujetoExento:      true,
	CondConsumidorFinal:      true,
	CondSujetoNoCategorizado: true,
	CondProveedorDelExterior: true,
	CondClienteDelExterior:   true,
	CondIVALiberadoLey19640:  true,
	CondIVANoAlcanzado:       true,
}

// validConditionsFor returns the set of legal recipient conditions for an
// (issuer type, invoice type) pair
func validConditionsFor(issuerType IssuerType, invoiceType InvoiceType) map[VatCondition]bool {
	if issuerType == IssuerResponsableInscripto {
		if invoiceType == FacturaA || invoiceType == FacturaFCEA {
			return registeredRecipientConditions
		}
		return broadRecipientConditions
	}

	// Monotributo issuers can bill any recipient class
	all := make(map[VatCondition]bool, len(vatConditionDescriptions))
	for c := range vatConditionDescriptions {
		all[c] = true
	}
	return all
}

// Recipient holds the validated counterparty data for the recipient form
type Recipient struct {
	Condition VatCondition
	CUIT      CUIT // zero when the condition does not require identification
}

// CreateRecipient validates the recipient's VAT condition against the
// (issuer type, invoice type) pair, and the recipient CUIT when present.
// Registered recipient conditions always require a CUIT.
func CreateRecipient(condition VatCondition, issuerType IssuerType, invoiceType InvoiceType, cuit string) (Recipient, error) {
	if !condition.IsValid() {
		return Recipient{}, NewValidationError("recipient.iva_condition", int(condition), "membership", "unknown IVA condition")
	}
	if !validConditionsFor(issuerType, invoiceType)[condition] {
		return Recipient{}, NewValidationError("recipient.iva_condition", condition.Name(), "compatibility",
			fmt.Sprintf("invalid IVA condition %s for issuer type %s and invoice type %s",
				condition.Name(), issuerType, invoiceType.Name()))
	}

	r := Recipient{Condition: condition}
	if cuit != "" {
		c, err := CreateCUIT(cuit)
		if err != nil {
			return Recipient{}, err
		}
		r.CUIT = c
	} else if registeredRecipientConditions[condition] {
		return Recipient{}, NewValidationError("recipient.cuit", nil, "required",
			fmt.Sprintf("recipient CUIT is required for condition %s", condition.Name()))
	}
	return r, nil
}
