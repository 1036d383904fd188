package infer

import (
	"sort"
	"strings"
)

// countryCodes maps uppercase country names to ISO 3166-1 alpha-2 codes.
// French spellings first (the exports this tool sees are mostly French),
// plus the English names that show up in mixed files.
var countryCodes = map[string]string{
	"FRANCE":         "FR",
	"BELGIQUE":       "BE",
	"BELGIUM":        "BE",
	"SUISSE":         "CH",
	"SWITZERLAND":    "CH",
	"ALLEMAGNE":      "DE",
	"GERMANY":        "DE",
	"ESPAGNE":        "ES",
	"SPAIN":          "ES",
	"ITALIE":         "IT",
	"ITALY":          "IT",
	"ROYAUME-UNI":    "GB",
	"UNITED KINGDOM": "GB",
	"ANGLETERRE":     "GB",
	"LUXEMBOURG":     "LU",
	"PAYS-BAS":       "NL",
	"NETHERLANDS":    "NL",
	"PORTUGAL":       "PT",
	"AUTRICHE":       "AT",
	"IRLANDE":        "IE",
	"GRECE":          "GR",
	"GRÈCE":          "GR",
	"POLOGNE":        "PL",
	"ROUMANIE":       "RO",
	"SUEDE":          "SE",
	"SUÈDE":          "SE",
	"DANEMARK":       "DK",
	"NORVEGE":        "NO",
	"NORVÈGE":        "NO",
	"FINLANDE":       "FI",
	"ETATS-UNIS":     "US",
	"ÉTATS-UNIS":     "US",
	"UNITED STATES":  "US",
	"USA":            "US",
	"CANADA":         "CA",
	"BRESIL":         "BR",
	"BRÉSIL":         "BR",
	"MEXIQUE":        "MX",
	"CHINE":          "CN",
	"JAPON":          "JP",
	"INDE":           "IN",
	"AUSTRALIE":      "AU",
	"MAROC":          "MA",
	"ALGERIE":        "DZ",
	"ALGÉRIE":        "DZ",
	"TUNISIE":        "TN",
	"SENEGAL":        "SN",
	"SÉNÉGAL":        "SN",
	"COTE D'IVOIRE":  "CI",
	"CÔTE D'IVOIRE":  "CI",
	"CAMEROUN":       "CM",
	"MADAGASCAR":     "MG",
	"LIBAN":          "LB",
	"VIETNAM":        "VN",
	"TURQUIE":        "TR",
}

// countryNames is the sorted key list, so the substring fallback scans in a
// deterministic order.
var countryNames = func() []string {
	names := make([]string, 0, len(countryCodes))
	for name := range countryCodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}()

// CountryToISO2 resolves a country name to its alpha-2 code: exact lookup
// first, then substring match in either direction.
func CountryToISO2(name string) (string, bool) {
	n := strings.ToUpper(strings.TrimSpace(name))
	if n == "" {
		return "", false
	}
	if code, ok := countryCodes[n]; ok {
		return code, true
	}
	for _, known := range countryNames {
		if strings.Contains(n, known) || strings.Contains(known, n) {
			return countryCodes[known], true
		}
	}
	return "", false
}
