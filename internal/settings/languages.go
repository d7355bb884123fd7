package settings

// PracticeLanguages are the languages a user can practice.
var PracticeLanguages = []string{
	"Japanese", "Spanish", "Turkish", "Chinese", "French", "German", "Italian",
	"Portuguese", "Korean", "Arabic", "Russian", "Dutch", "Polish", "Hindi",
}

// UILanguages are the languages explanations and hints can be given in.
var UILanguages = []string{
	"English", "Spanish", "French", "German", "Turkish", "Portuguese", "Italian",
}

var flags = map[string]string{
	"English":    "🇬🇧",
	"Japanese":   "🇯🇵",
	"Spanish":    "🇪🇸",
	"Turkish":    "🇹🇷",
	"Chinese":    "🇨🇳",
	"French":     "🇫🇷",
	"German":     "🇩🇪",
	"Italian":    "🇮🇹",
	"Portuguese": "🇧🇷",
	"Korean":     "🇰🇷",
	"Arabic":     "🇸🇦",
	"Russian":    "🇷🇺",
	"Dutch":      "🇳🇱",
	"Polish":     "🇵🇱",
	"Hindi":      "🇮🇳",
}

// Flag returns the flag emoji for a language, or a globe.
func Flag(language string) string {
	if f, ok := flags[language]; ok {
		return f
	}
	return "🌐"
}
