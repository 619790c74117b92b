package engine

import (
	"strings"

	"github.com/tartampluch/go-multitime/internal/config"
)

// regionalIndicatorA is the code point of REGIONAL INDICATOR SYMBOL LETTER A.
const regionalIndicatorA = 0x1F1E6

// cityCountries maps the lowercase city component of an IANA identifier to an
// ISO 3166-1 alpha-2 code. Only exact city matches produce a flag; there is no
// fallback on the region component.
var cityCountries = map[string]string{
	"abidjan":             "ci",
	"abu_dhabi":           "ae",
	"accra":               "gh",
	"addis_ababa":         "et",
	"aden":                "ye",
	"algiers":             "dz",
	"almaty":              "kz",
	"amman":               "jo",
	"amsterdam":           "nl",
	"andorra":             "ad",
	"antananarivo":        "mg",
	"apia":                "ws",
	"araguaina":           "br",
	"ashgabat":            "tm",
	"asmara":              "er",
	"astana":              "kz",
	"asuncion":            "py",
	"athens":              "gr",
	"auckland":            "nz",
	"baghdad":             "iq",
	"baku":                "az",
	"bamako":              "ml",
	"bandar_seri_begawan": "bn",
	"bangkok":             "th",
	"bangui":              "cf",
	"banjul":              "gm",
	"basseterre":          "kn",
	"beijing":             "cn",
	"beirut":              "lb",
	"belem":               "br",
	"belgrade":            "rs",
	"belize":              "bz",
	"berlin":              "de",
	"bishkek":             "kg",
	"bissau":              "gw",
	"bogota":              "co",
	"bratislava":          "sk",
	"brazzaville":         "cg",
	"bridgetown":          "bb",
	"brussels":            "be",
	"bucharest":           "ro",
	"budapest":            "hu",
	"buenos_aires":        "ar",
	"bujumbura":           "bi",
	"cairo":               "eg",
	"calgary":             "ca",
	"canberra":            "au",
	"caracas":             "ve",
	"casablanca":          "ma",
	"castries":            "lc",
	"catamarca":           "ar",
	"chicago":             "us",
	"chihuahua":           "mx",
	"chisinau":            "md",
	"chongqing":           "cn",
	"colombo":             "lk",
	"conakry":             "gn",
	"copenhagen":          "dk",
	"cordoba":             "ar",
	"dakar":               "sn",
	"damascus":            "sy",
	"dar_es_salaam":       "tz",
	"dhaka":               "bd",
	"dili":                "tl",
	"djibouti":            "dj",
	"dodoma":              "tz",
	"doha":                "qa",
	"dubai":               "ae",
	"dublin":              "ie",
	"dushanbe":            "tj",
	"edmonton":            "ca",
	"fiji":                "fj",
	"fortaleza":           "br",
	"freetown":            "sl",
	"funafuti":            "tv",
	"gaborone":            "bw",
	"gaza":                "ps",
	"guam":                "gu",
	"guatemala":           "gt",
	"guayaquil":           "ec",
	"halifax":             "ca",
	"harare":              "zw",
	"harbin":              "cn",
	"havana":              "cu",
	"hebron":              "ps",
	"helsinki":            "fi",
	"ho_chi_minh":         "vn",
	"hong_kong":           "hk",
	"honiara":             "sb",
	"islamabad":           "pk",
	"jakarta":             "id",
	"jerusalem":           "il",
	"johannesburg":        "za",
	"juba":                "ss",
	"jujuy":               "ar",
	"kabul":               "af",
	"kampala":             "ug",
	"karachi":             "pk",
	"kashgar":             "cn",
	"kathmandu":           "np",
	"khartoum":            "sd",
	"kiev":                "ua",
	"kigali":              "rw",
	"kingston":            "jm",
	"kingstown":           "vc",
	"kinshasa":            "cd",
	"kiritimati":          "ki",
	"kolkata":             "in",
	"kuala_lumpur":        "my",
	"kuwait":              "kw",
	"kyiv":                "ua",
	"la_paz":              "bo",
	"la_rioja":            "ar",
	"lagos":               "ng",
	"libreville":          "ga",
	"lima":                "pe",
	"lisbon":              "pt",
	"ljubljana":           "si",
	"lome":                "tg",
	"london":              "gb",
	"los_angeles":         "us",
	"luanda":              "ao",
	"lusaka":              "zm",
	"luxembourg":          "lu",
	"macao":               "mo",
	"macau":               "mo",
	"madrid":              "es",
	"majuro":              "mh",
	"malabo":              "gq",
	"male":                "mv",
	"managua":             "ni",
	"manama":              "bh",
	"manaus":              "br",
	"manila":              "ph",
	"maputo":              "mz",
	"maseru":              "ls",
	"mazatlan":            "mx",
	"mbabane":             "sz",
	"melbourne":           "au",
	"mendoza":             "ar",
	"mexico_city":         "mx",
	"minsk":               "by",
	"mogadishu":           "so",
	"monaco":              "mc",
	"monrovia":            "lr",
	"monterrey":           "mx",
	"montevideo":          "uy",
	"montreal":            "ca",
	"moroni":              "km",
	"moscow":              "ru",
	"mumbai":              "in",
	"muscat":              "om",
	"nairobi":             "ke",
	"ndjamena":            "td",
	"new_delhi":           "in",
	"new_york":            "us",
	"ngerulmud":           "pw",
	"niamey":              "ne",
	"nicosia":             "cy",
	"nouakchott":          "mr",
	"nuku_alofa":          "to",
	"nur-sultan":          "kz",
	"oslo":                "no",
	"ottawa":              "ca",
	"ouagadougou":         "bf",
	"palikir":             "fm",
	"panama":              "pa",
	"paris":               "fr",
	"phnom_penh":          "kh",
	"podgorica":           "me",
	"port-au-prince":      "ht",
	"port_louis":          "mu",
	"port_moresby":        "pg",
	"port_of_spain":       "tt",
	"port_vila":           "vu",
	"porto-novo":          "bj",
	"prague":              "cz",
	"praia":               "cv",
	"pyongyang":           "kp",
	"recife":              "br",
	"reykjavik":           "is",
	"riga":                "lv",
	"rio_branco":          "br",
	"riyadh":              "sa",
	"rome":                "it",
	"roseau":              "dm",
	"saigon":              "vn",
	"salta":               "ar",
	"san_jose":            "cr",
	"san_juan":            "pr",
	"san_marino":          "sm",
	"san_salvador":        "sv",
	"sanaa":               "ye",
	"santiago":            "cl",
	"santo_domingo":       "do",
	"sao_paulo":           "br",
	"sao_tome":            "st",
	"sarajevo":            "ba",
	"seoul":               "kr",
	"shanghai":            "cn",
	"singapore":           "sg",
	"skopje":              "mk",
	"sofia":               "bg",
	"st_georges":          "gd",
	"st_johns":            "ag",
	"stockholm":           "se",
	"suva":                "fj",
	"sydney":              "au",
	"taipei":              "tw",
	"tallinn":             "ee",
	"tarawa":              "ki",
	"tashkent":            "uz",
	"tbilisi":             "ge",
	"tegucigalpa":         "hn",
	"tehran":              "ir",
	"tel_aviv":            "il",
	"thimphu":             "bt",
	"tijuana":             "mx",
	"tirane":              "al",
	"tokyo":               "jp",
	"toronto":             "ca",
	"tripoli":             "ly",
	"tucuman":             "ar",
	"tunis":               "tn",
	"ulaanbaatar":         "mn",
	"urumqi":              "cn",
	"valletta":            "mt",
	"vancouver":           "ca",
	"vatican":             "va",
	"victoria":            "sc",
	"vienna":              "at",
	"vientiane":           "la",
	"vilnius":             "lt",
	"warsaw":              "pl",
	"washington":          "us",
	"wellington":          "nz",
	"windhoek":            "na",
	"winnipeg":            "ca",
	"yamoussoukro":        "ci",
	"yangon":              "mm",
	"yaren":               "nr",
	"yerevan":             "am",
	"zagreb":              "hr",
	"zurich":              "ch",
}

// CountryCode returns the country of a zone's city component, or "" when unknown.
// "America/Argentina/Buenos_Aires" is matched on "buenos_aires".
func CountryCode(timezoneID string) string {
	parts := strings.Split(timezoneID, config.TimezoneSeparator)
	if len(parts) < 2 {
		return ""
	}
	return cityCountries[strings.ToLower(parts[len(parts)-1])]
}

// FlagGlyph turns a two-letter country code into its emoji flag.
// Anything that is not exactly two ASCII letters yields "".
func FlagGlyph(countryCode string) string {
	if len(countryCode) != 2 {
		return ""
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(countryCode) {
		if r < 'A' || r > 'Z' {
			return ""
		}
		b.WriteRune(rune(regionalIndicatorA + (r - 'A')))
	}
	return b.String()
}

// FlagFor returns the flag of a zone, or nil when the city is not mapped.
func FlagFor(timezoneID string) *Flag {
	code := CountryCode(timezoneID)
	if code == "" {
		return nil
	}
	return &Flag{CountryCode: code, Glyph: FlagGlyph(code)}
}
