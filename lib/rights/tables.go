package rights

// Canonical license URIs and markers used on Wikimedia Commons.
const (
	PublicDomainURI = "https://creativecommons.org/publicdomain/mark/1.0/"
	CCZeroURI       = "https://creativecommons.org/publicdomain/zero/1.0/"
	CCBaseURI       = "https://creativecommons.org/licenses/"
	CCBy30URI       = CCBaseURI + "by/3.0/"
	CCBySa30URI     = CCBaseURI + "by-sa/3.0/"

	// GFDLMarker is a placeholder candidate, substituted with CC-BY-SA-3.0
	// during reduction when it ends up the only license signal.
	GFDLMarker = "GFDL"
)

// UnknownAuthor is the sentinel written to the VNA schema when a file
// declares its author as unknown.
const UnknownAuthor = "Onbekend"

// Tables is the immutable configuration of a Resolver: template alias sets,
// license detection sets and the license URI dictionary. Passing them in
// explicitly keeps resolvers independent and lets tests swap tables.
type Tables struct {
	// InfoTemplates are exact names of file-metadata templates; any name
	// containing "information" is treated as one too.
	InfoTemplates     []string
	AuthorAliases     []string
	PermissionAliases []string

	// LicenseExact and LicensePrefixes detect bare license templates.
	LicenseExact    []string
	LicensePrefixes []string

	// LicenseURIs maps license tokens to canonical URIs; LicenseScan keeps
	// the token lookup order used when scanning free-text permission notes.
	LicenseURIs map[string]string
	LicenseScan []string

	// SpecialTemplates maps an institutional template name prefix to the
	// fixed license URI it implies.
	SpecialTemplates map[string]string

	// PreferredLangs is the priority order for language-wrapped author
	// fields.
	PreferredLangs []string

	UnknownAuthor string
}

// DefaultTables returns the production tables for Wikimedia Commons
// file-description pages.
func DefaultTables() Tables {
	return Tables{
		InfoTemplates: []string{
			"information", "artwork", "photograph", "book", "map",
			"art photo", "artphoto",
		},
		AuthorAliases: []string{
			"author", "artist", "photographer", "creator", "by", "maker",
		},
		PermissionAliases: []string{"permission", "licence", "license"},
		LicenseExact: []string{
			"cc0", "self", "gfdl", "gfdl-user", "attribution",
			"fal", "free-art-license", "pd", "pd-old", "pd-old-70",
			"pd-ineligible", "pd-us", "pd-textlogo",
		},
		LicensePrefixes: []string{
			"cc-by", "cc by", "cc-by-sa", "cc by-sa", "cc0", "pd", "gfdl",
			"creative commons", "cc-", "attribution-gencat",
		},
		LicenseURIs: map[string]string{
			"pd":       PublicDomainURI,
			"cc-zero":  CCZeroURI,
			"cc-by":    CCBaseURI,
			"gfdl":     GFDLMarker,
			"ccby30":   CCBy30URI,
			"ccbysa30": CCBySa30URI,
		},
		LicenseScan: []string{"pd", "cc-zero", "cc-by", "gfdl", "ccby30", "ccbysa30"},
		SpecialTemplates: map[string]string{
			"wikiportrait":      CCBy30URI,
			"nationaal archief": CCBySa30URI,
		},
		PreferredLangs: []string{"nl", "en"},
		UnknownAuthor:  UnknownAuthor,
	}
}
