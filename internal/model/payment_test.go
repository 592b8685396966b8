package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/afip-submitter/internal/model"
)

func TestCreatePaymentInfo(t *testing.T) {
	p, err := model.CreatePaymentInfo("CONTADO", "TRANSFERENCIA_BANCARIA")
	require.NoError(t, err)
	assert.Len(t, p.Methods, 2)
	assert.True(t, p.Has(model.PayContado))
	assert.True(t, p.Has(model.PayTransferenciaBancaria))
	assert.False(t, p.RequiresCardData())
}

func TestCreatePaymentInfo_Empty(t *testing.T) {
	_, err := model.CreatePaymentInfo()
	require.Error(t, err)

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "required", verr.Rule)
}

func TestCreatePaymentInfo_Duplicates(t *testing.T) {
	p, err := model.CreatePaymentInfo("CHEQUE", "cheque", " CHEQUE ")
	require.NoError(t, err)
	assert.Len(t, p.Methods, 1)
}

func TestCreatePaymentInfo_Unknown(t *testing.T) {
	_, err := model.CreatePaymentInfo("CRIPTO")
	assert.Error(t, err)
}

func TestPaymentMethod_RequiresCardData(t *testing.T) {
	assert.True(t, model.PayTarjetaCredito.RequiresCardData())
	assert.True(t, model.PayTarjetaDebito.RequiresCardData())
	assert.False(t, model.PayContado.RequiresCardData())
	assert.False(t, model.PayTransferenciaBancaria.RequiresCardData())

	p, err := model.CreatePaymentInfo("CONTADO", "TARJETA_CREDITO")
	require.NoError(t, err)
	assert.True(t, p.RequiresCardData())
}

func TestParsePaymentMethod_Codes(t *testing.T) {
	m, err := model.ParsePaymentMethod("TARJETA_DEBITO")
	require.NoError(t, err)
	assert.Equal(t, 69, int(m))

	m, err = model.ParsePaymentMethod("OTROS_MEDIOS_ELECTRONICOS")
	require.NoError(t, err)
	assert.Equal(t, 90, int(m))
}

func TestCreateCurrency(t *testing.T) {
	c, err := model.CreateCurrency(model.CurrencyDolarEstadounidense)
	require.NoError(t, err)
	assert.Equal(t, "Dólar Estadounidense", c.Description)

	_, err = model.CreateCurrency("XXX")
	assert.Error(t, err)

	_, err = model.CreateCurrency("")
	assert.Error(t, err)
}
