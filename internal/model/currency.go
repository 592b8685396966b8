package model

import "sort"

// CurrencyCode is the portal's code for an invoicing currency. The empty
// string is the unselected state; invoices default to pesos when unset.
type CurrencyCode string

const (
	CurrencyUnselected CurrencyCode = ""

	CurrencyDolarEstadounidense CurrencyCode = "DOL"
	CurrencyDolarLibre          CurrencyCode = "002"
	CurrencyEuro                CurrencyCode = "060"
	CurrencyRealBrasileno       CurrencyCode = "012"
	CurrencyPesoUruguayo        CurrencyCode = "011"
	CurrencyPesoChileno         CurrencyCode = "033"
	CurrencyPesoBoliviano       CurrencyCode = "031"
	CurrencyPesoColombiano      CurrencyCode = "032"
	CurrencyPesoMexicano        CurrencyCode = "010"
	CurrencyGuarani             CurrencyCode = "029"
	CurrencyNuevoSolPeruano     CurrencyCode = "035"
	CurrencyBolivar             CurrencyCode = "023"
	CurrencyDolarCanadiense     CurrencyCode = "018"
	CurrencyLibraEsterlina      CurrencyCode = "021"
	CurrencyFrancoSuizo         CurrencyCode = "009"
	CurrencyCoronaDanesa        CurrencyCode = "014"
	CurrencyCoronaNoruega       CurrencyCode = "015"
	CurrencyCoronaSueca         CurrencyCode = "016"
	CurrencyCoronaCheca         CurrencyCode = "024"
	CurrencyZlotyPolaco         CurrencyCode = "061"
	CurrencyRubloRuso           CurrencyCode = "RUB"
	CurrencyYenJapones          CurrencyCode = "019"
	CurrencyYuanChino           CurrencyCode = "064"
	CurrencyRupiaHindu          CurrencyCode = "062"
	CurrencyDolarHongKong       CurrencyCode = "051"
	CurrencyDolarSingapur       CurrencyCode = "052"
	CurrencyDolarTaiwan         CurrencyCode = "054"
	CurrencyBahtTailandia       CurrencyCode = "057"
	CurrencyDinarKuwaiti        CurrencyCode = "059"
	CurrencyDolarAustraliano    CurrencyCode = "026"
	CurrencyDolarNeozelandes    CurrencyCode = "NZD"
	CurrencyRandSudafricano     CurrencyCode = "034"
	CurrencyShekelIsrael        CurrencyCode = "030"
	CurrencyRiyalSaudita        CurrencyCode = "047"
	CurrencyDirhamMarroqui      CurrencyCode = "045"
	CurrencyLibraEgipcia        CurrencyCode = "046"
	CurrencyGramosOroFino       CurrencyCode = "049"
	CurrencyDerechosGiro        CurrencyCode = "041"
)

var currencyDescriptions = map[CurrencyCode]string{
	CurrencyDolarEstadounidense: "Dólar Estadounidense",
	CurrencyDolarLibre:          "Dólar Libre EEUU",
	CurrencyEuro:                "Euro",
	CurrencyRealBrasileno:       "Real",
	CurrencyPesoUruguayo:        "Pesos Uruguayos",
	CurrencyPesoChileno:         "Peso Chileno",
	CurrencyPesoBoliviano:       "Peso Boliviano",
	CurrencyPesoColombiano:      "Peso Colombiano",
	CurrencyPesoMexicano:        "Pesos Mejicanos",
	CurrencyGuarani:             "Güaraní",
	CurrencyNuevoSolPeruano:     "Nuevo Sol Peruano",
	CurrencyBolivar:             "Bolívar Venezolano",
	CurrencyDolarCanadiense:     "Dólar Canadiense",
	CurrencyLibraEsterlina:      "Libra Esterlina",
	CurrencyFrancoSuizo:         "Franco Suizo",
	CurrencyCoronaDanesa:        "Coronas Danesas",
	CurrencyCoronaNoruega:       "Coronas Noruegas",
	CurrencyCoronaSueca:         "Coronas Suecas",
	CurrencyCoronaCheca:         "Corona Checa",
	CurrencyZlotyPolaco:         "Zloty Polaco",
	CurrencyRubloRuso:           "Rublo (Rusia)",
	CurrencyYenJapones:          "Yens",
	CurrencyYuanChino:           "Yuan (Rep. Pop. China)",
	CurrencyRupiaHindu:          "Rupia Hindú",
	CurrencyDolarHongKong:       "Dólar de Hong Kong",
	CurrencyDolarSingapur:       "Dólar de Singapur",
	CurrencyDolarTaiwan:         "Dólar de Taiwan",
	CurrencyBahtTailandia:       "Baht (Tailandia)",
	CurrencyDinarKuwaiti:        "Dinar Kuwaiti",
	CurrencyDolarAustraliano:    "Dólar Australiano",
	CurrencyDolarNeozelandes:    "Dólar Neozelandes",
	CurrencyRandSudafricano:     "Rand Sudafricano",
	CurrencyShekelIsrael:        "Shekel (Israel)",
	CurrencyRiyalSaudita:        "Riyal Saudita",
	CurrencyDirhamMarroqui:      "Dirham Marroquí",
	CurrencyLibraEgipcia:        "Libra Egipcia",
	CurrencyGramosOroFino:       "Gramos de Oro Fino",
	CurrencyDerechosGiro:        "Derechos Especiales de Giro",
}

// Description returns the portal's display label for the currency
func (c CurrencyCode) Description() string {
	if desc, ok := currencyDescriptions[c]; ok {
		return desc
	}
	return string(c)
}

// IsValid reports whether the code is a known portal currency
func (c CurrencyCode) IsValid() bool {
	_, ok := currencyDescriptions[c]
	return ok
}

// Currency is a validated invoicing currency selection
type Currency struct {
	Code        CurrencyCode
	Description string
}

// CreateCurrency validates a currency code selection
func CreateCurrency(code CurrencyCode) (Currency, error) {
	if code == CurrencyUnselected {
		return Currency{}, NewValidationError("invoice.currency", nil, "required", "currency must be selected")
	}
	if !code.IsValid() {
		return Currency{}, NewValidationError("invoice.currency", string(code), "membership", "unknown currency code")
	}
	return Currency{Code: code, Description: code.Description()}, nil
}

// Currencies returns all known currency codes in ascending code order
func Currencies() []Currency {
	codes := make([]Currency, 0, len(currencyDescriptions))
	for code, desc := range currencyDescriptions {
		codes = append(codes, Currency{Code: code, Description: desc})
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i].Code < codes[j].Code })
	return codes
}
