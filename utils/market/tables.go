package market

// The Gamma API has no full-text search, so query expansion works off fixed
// tables. Keys are matched as substrings of the lower-cased query.

// synonyms maps domain phrases to related phrases worth trying as variants
var synonyms = map[string][]string{
	// Sports events
	"march madness": {"ncaa", "college basketball", "ncaa tournament"},
	"super bowl":    {"nfl", "championship", "football"},
	"world series":  {"mlb", "baseball", "championship"},
	"stanley cup":   {"nhl", "hockey", "championship"},
	"world cup":     {"soccer", "fifa"},
	"grand slam":    {"tennis"},
	"finals":        {"championship", "playoffs"},
	"playoffs":      {"postseason", "finals"},

	// Player / team action verbs
	"win":   {"winner", "champion", "victory"},
	"lose":  {"loser", "defeat"},
	"beat":  {"defeat", "win"},
	"trade": {"traded", "deal"},
	"mvp":   {"most valuable player"},

	// Politics
	"election":  {"president", "presidential", "vote"},
	"president": {"presidential", "election"},
	"impeach":   {"impeachment", "removal"},
	"congress":  {"senate", "house"},
	"primary":   {"nomination", "nominee"},

	// Economics
	"fed":       {"federal reserve", "fomc", "interest rate"},
	"rate cut":  {"fed", "interest rate"},
	"inflation": {"cpi", "prices"},
	"recession": {"gdp", "economy"},

	// Crypto
	"bitcoin":  {"btc", "crypto"},
	"btc":      {"bitcoin"},
	"ethereum": {"eth", "crypto"},
	"eth":      {"ethereum"},

	// Tech
	"ai":      {"artificial intelligence", "openai"},
	"chatgpt": {"openai", "ai"},
	"iphone":  {"apple"},
}

// leagueSports maps league abbreviations to sport names. The reverse direction
// (sport name in query adds the league key) is applied at expansion time.
var leagueSports = map[string][]string{
	"nba":  {"basketball"},
	"nfl":  {"football"},
	"mlb":  {"baseball"},
	"nhl":  {"hockey"},
	"mls":  {"soccer"},
	"epl":  {"premier league", "soccer"},
	"ufc":  {"mma"},
	"ncaa": {"college"},
	"f1":   {"formula 1"},
	"pga":  {"golf"},
	"atp":  {"tennis"},
}

// stemSuffixes is the ordered list of (suffix, replacement) pairs tried on
// every word of length >= 4. Every matching pair contributes a stem.
var stemSuffixes = []struct {
	suffix      string
	replacement string
}{
	{"ing", ""},
	{"ed", ""},
	{"er", ""},
	{"ment", ""},
	{"s", ""},
}

// fillerPhrases are conversational lead-ins stripped from queries. The
// "what's"/"whats" contractions are rewritten to the literal "what is" instead
// of being removed outright.
var fillerPhrases = []struct {
	phrase      string
	replacement string
}{
	{"who will", ""},
	{"what are", ""},
	{"the odds", ""},
	{"whats", "what is"},
	{"what's", "what is"},
	{"will", ""},
}
