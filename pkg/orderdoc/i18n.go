package orderdoc

// Language selects the translation set and the text direction for a
// whole rendering pass.
type Language string

const (
	LanguageEN Language = "en"
	LanguageAR Language = "ar"
)

// RTL reports whether the language lays out right-to-left.
func (l Language) RTL() bool {
	return l == LanguageAR
}

// Translations is a flat message-key lookup supplied by the caller for
// the active language.
type Translations map[string]string

// Get returns the translated string for key, or the key itself when the
// table has no entry. Falling back to the key keeps partially translated
// tables rendering instead of producing blank runs.
func (t Translations) Get(key string) string {
	if t != nil {
		if v, ok := t[key]; ok && v != "" {
			return v
		}
	}
	return key
}
