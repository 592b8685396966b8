package model_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	money "github.com/rezonia/afip-submitter/internal/decimal"
	"github.com/rezonia/afip-submitter/internal/model"
)

func TestParseVatRate(t *testing.T) {
	tests := []struct {
		raw  string
		want model.VatRate
	}{
		{"21", model.VatVeintiuno},
		{"10.5", model.VatDiezCinco},
		{"27", model.VatVeintisiete},
		{"2.5", model.VatDosCinco},
		{"5", model.VatCinco},
		{"0", model.VatCero},
		{"NO_GRAVADO", model.VatNoGravado},
		{"EXENTO", model.VatExento},
		{"exento", model.VatExento},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			r, err := model.ParseVatRate(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r)
		})
	}
}

func TestParseVatRate_Unknown(t *testing.T) {
	_, err := model.ParseVatRate("19")
	require.Error(t, err)
	// the error enumerates the accepted spellings
	assert.Contains(t, err.Error(), "10.5")
	assert.Contains(t, err.Error(), "NO_GRAVADO")
}

func TestVatRate_Percent(t *testing.T) {
	assert.True(t, model.VatVeintiuno.Percent().Equal(money.MustFromString("21")))
	assert.True(t, model.VatDiezCinco.Percent().Equal(money.MustFromString("10.5")))
	assert.True(t, model.VatNoGravado.Percent().IsZero())
	assert.True(t, model.VatExento.Percent().IsZero())
}

func TestCreateServiceCode(t *testing.T) {
	sc, err := model.CreateServiceCode("12")
	require.NoError(t, err)
	assert.Equal(t, "0012", sc.String())

	sc, err = model.CreateServiceCode("1234")
	require.NoError(t, err)
	assert.Equal(t, "1234", sc.String())

	for _, raw := range []string{"", "12345", "12a"} {
		_, err := model.CreateServiceCode(raw)
		assert.Error(t, err, "code %q", raw)
	}
}

func TestCreateUnitPrice(t *testing.T) {
	p, err := model.CreateUnitPrice("1500.50")
	require.NoError(t, err)
	assert.True(t, p.Equal(money.MustFromString("1500.50")))

	tests := []struct {
		name string
		raw  string
		rule string
	}{
		{"negative", "-1", "range"},
		{"three decimals", "100.999", "scale"},
		{"not a number", "abc", "format"},
		{"too many digits", strings.Repeat("9", 20), "length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.CreateUnitPrice(tt.raw)
			require.Error(t, err)

			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.rule, verr.Rule)
		})
	}
}

func TestCreateDiscountPercent(t *testing.T) {
	d, err := model.CreateDiscountPercent("10.25")
	require.NoError(t, err)
	assert.True(t, d.Equal(money.MustFromString("10.25")))

	// empty means no discount
	d, err = model.CreateDiscountPercent("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	for _, raw := range []string{"-1", "100.01", "10.999", "abc"} {
		_, err := model.CreateDiscountPercent(raw)
		assert.Error(t, err, "discount %q", raw)
	}
}

func TestCreateServiceLine_RateByRegime(t *testing.T) {
	// Responsable Inscripto discriminates VAT, so the rate is mandatory
	_, err := model.CreateServiceLine(model.IssuerResponsableInscripto, "123", "consultoría", "1000", "", "")
	require.Error(t, err)
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "required", verr.Rule)

	// Monotributo documents never discriminate VAT
	_, err = model.CreateServiceLine(model.IssuerMonotributo, "123", "consultoría", "1000", "", "21")
	require.Error(t, err)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "forbidden", verr.Rule)

	line, err := model.CreateServiceLine(model.IssuerMonotributo, "123", "consultoría", "1000", "", "")
	require.NoError(t, err)
	assert.True(t, line.VatAmount().IsZero())
}

func TestServiceLine_Pricing(t *testing.T) {
	line, err := model.CreateServiceLine(model.IssuerResponsableInscripto, "123", "consultoría", "100.99", "10", "21")
	require.NoError(t, err)

	// discounting keeps full precision; the portal rounds when rendering
	assert.True(t, line.DiscountedPrice().Equal(money.MustFromString("90.891")),
		"got %s", line.DiscountedPrice())
	assert.True(t, line.VatAmount().Equal(money.MustFromString("19.08711")),
		"got %s", line.VatAmount())
	assert.True(t, line.TotalPrice().Equal(money.MustFromString("109.97811")),
		"got %s", line.TotalPrice())
}

func TestServiceLine_NoDiscount(t *testing.T) {
	line, err := model.CreateServiceLine(model.IssuerResponsableInscripto, "1", "hosting", "200", "", "10.5")
	require.NoError(t, err)

	assert.True(t, line.DiscountedPrice().Equal(money.MustFromString("200")))
	assert.True(t, line.VatAmount().Equal(money.MustFromString("21")))
	assert.True(t, line.TotalPrice().Equal(money.MustFromString("221")))
}
