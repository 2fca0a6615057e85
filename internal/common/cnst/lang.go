package cnst

const (
	// XLang is the header and context key carrying the client language preference
	XLang = "X-Lang"

	// LangEN is the English language code (default)
	LangEN = "en"

	// LangSQ is the Albanian language code
	LangSQ = "sq"
)
