package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/afip-submitter/internal/model"
)

func TestCreateRecipient_FacturaA(t *testing.T) {
	// Factura A only reaches recipients registered with the tax authority
	registered := []model.VatCondition{
		model.CondIVAResponsableInscripto,
		model.CondResponsableMonotributo,
		model.CondMonotributistaSocial,
		model.CondMonotributistaTIP,
	}

	for _, cond := range registered {
		r, err := model.CreateRecipient(cond, model.IssuerResponsableInscripto, model.FacturaA, "27-23456789-4")
		require.NoError(t, err, "condition %s", cond.Name())
		assert.Equal(t, cond, r.Condition)
		assert.Equal(t, "27234567894", r.CUIT.String())
	}

	_, err := model.CreateRecipient(model.CondConsumidorFinal, model.IssuerResponsableInscripto, model.FacturaA, "")
	require.Error(t, err)

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "compatibility", verr.Rule)
}

func TestCreateRecipient_FacturaB(t *testing.T) {
	// B class documents target final consumers and exempt parties instead
	r, err := model.CreateRecipient(model.CondConsumidorFinal, model.IssuerResponsableInscripto, model.FacturaB, "")
	require.NoError(t, err)
	assert.True(t, r.CUIT.IsZero())

	_, err = model.CreateRecipient(model.CondIVAResponsableInscripto, model.IssuerResponsableInscripto, model.FacturaB, "27-23456789-4")
	assert.Error(t, err)
}

func TestCreateRecipient_MonotributoAnyCondition(t *testing.T) {
	for _, cond := range model.VatConditions() {
		_, err := model.CreateRecipient(cond, model.IssuerMonotributo, model.FacturaC, "27-23456789-4")
		assert.NoError(t, err, "condition %s", cond.Name())
	}
}

func TestCreateRecipient_RegisteredRequiresCUIT(t *testing.T) {
	_, err := model.CreateRecipient(model.CondIVAResponsableInscripto, model.IssuerResponsableInscripto, model.FacturaA, "")
	require.Error(t, err)

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "recipient.cuit", verr.Field)
	assert.Equal(t, "required", verr.Rule)
}

func TestCreateRecipient_BadCUIT(t *testing.T) {
	_, err := model.CreateRecipient(model.CondConsumidorFinal, model.IssuerMonotributo, model.FacturaC, "123")
	assert.Error(t, err)
}

func TestParseVatCondition(t *testing.T) {
	cond, err := model.ParseVatCondition("CONSUMIDOR_FINAL")
	require.NoError(t, err)
	assert.Equal(t, model.CondConsumidorFinal, cond)
	assert.Equal(t, "Consumidor Final", cond.Description())

	_, err = model.ParseVatCondition("TURISTA")
	assert.Error(t, err)
}
