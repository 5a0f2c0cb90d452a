package normalize

// Options configures one call to Normalize. Zero value is NOT valid;
// use DefaultOptions() as the base and flip switches from there.
type Options struct {
	CorrectTypos                  bool
	Stemming                      bool
	RemoveLocations                bool
	NormalizeConjugation           bool
	NormalizePlural                bool
	NormalizeGender                bool
	NormalizeThesaurus              bool
	NormalizeSpecialCharacterTerms bool
}

// DefaultOptions matches spec §4.1's defaults.
func DefaultOptions() Options {
	return Options{
		CorrectTypos:                   true,
		Stemming:                       false,
		RemoveLocations:                false,
		NormalizeConjugation:           true,
		NormalizePlural:                true,
		NormalizeGender:                true,
		NormalizeThesaurus:             true,
		NormalizeSpecialCharacterTerms: true,
	}
}

// CatalogOptions is used to materialize catalog_role.normalized_title:
// correct_typos is off because catalog titles are already canonical.
func CatalogOptions() Options {
	opts := DefaultOptions()
	opts.CorrectTypos = false
	return opts
}

// cacheKey turns title+options into a single comparable map key for the
// memoization layer in memo.go.
func (o Options) cacheKey(title string) string {
	flags := [8]bool{
		o.CorrectTypos, o.Stemming, o.RemoveLocations, o.NormalizeConjugation,
		o.NormalizePlural, o.NormalizeGender, o.NormalizeThesaurus, o.NormalizeSpecialCharacterTerms,
	}
	buf := make([]byte, 0, len(title)+len(flags)+1)
	for _, f := range flags {
		if f {
			buf = append(buf, '1')
		} else {
			buf = append(buf, '0')
		}
	}
	buf = append(buf, '|')
	buf = append(buf, title...)
	return string(buf)
}
