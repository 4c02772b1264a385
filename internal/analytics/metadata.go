package analytics

// Unknown labels tickets whose tags match no known brand or country.
const Unknown = "Unknown"

var brandLabels = map[string]string{
	"portal_ccs": "Crocs",
	"portal_xia": "Xiaomi",
	"portal_hof": "Hoff",
	"portal_onr": "On Running",
	"portal_odm": "Ondademar",
	"portal_inv": "Invicta",
	"portal_sca": "Scalpers",
	"portal_cub": "Cubitt",
	"portal_elg": "El Ganso",
	"portal_jbl": "JBL",
	"portal_hp":  "HP",
	"portal_del": "Dell",
	"portal_eps": "Epson",
	"portal_mot": "Motorola",
	"portal_hnk": "Harman Kardom",
}

var countryLabels = map[string]string{
	"portal_co": "Colombia",
	"portal_cl": "Chile",
	"portal_pe": "Peru",
	"portal_cr": "Costa Rica",
	"portal_gt": "Guatemala",
	"portal_hn": "Honduras",
	"portal_pa": "Panamá",
	"portal_sv": "El Salvador",
	"portal_ec": "Ecuador",
	"portal_mx": "México",
}

// Metadata is the brand and country a ticket is attributed to.
type Metadata struct {
	Brand   string
	Country string
}

// ExtractMetadata scans tags in order; the first tag found in each table wins.
func ExtractMetadata(tags []string) Metadata {
	md := Metadata{Brand: Unknown, Country: Unknown}
	brandFound, countryFound := false, false

	for _, tag := range tags {
		if !brandFound {
			if label, ok := brandLabels[tag]; ok {
				md.Brand = label
				brandFound = true
			}
		}
		if !countryFound {
			if label, ok := countryLabels[tag]; ok {
				md.Country = label
				countryFound = true
			}
		}
		if brandFound && countryFound {
			break
		}
	}
	return md
}
