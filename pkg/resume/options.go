package resume

import "strings"

// LanguageOptions is the A-Z language picklist shown in the form.
var LanguageOptions = []string{
	"Afrikaans", "Akan", "Albanian", "Amharic", "Arabic", "Aragonese",
	"Armenian", "Assamese", "Aymara", "Azerbaijani",
	"Bambara", "Basque", "Belarusian", "Bengali", "Bhojpuri", "Bislama",
	"Bosnian", "Breton", "Bulgarian", "Burmese",
	"Catalan", "Cebuano", "Chamorro", "Chichewa",
	"Chinese (Mandarin)", "Chinese (Cantonese)", "Corsican",
	"Croatian", "Czech",
	"Danish", "Dhivehi", "Dogri", "Dutch", "Dzongkha",
	"English", "Esperanto", "Estonian", "Ewe",
	"Faroese", "Fijian", "Filipino", "Finnish", "French", "Frisian", "Fula",
	"Galician", "Georgian", "German", "Greek", "Greenlandic",
	"Guarani", "Gujarati",
	"Haitian Creole", "Hausa", "Hebrew", "Hindi", "Hmong", "Hungarian",
	"Icelandic", "Igbo", "Ilocano", "Indonesian", "Inuktitut",
	"Irish", "Italian",
	"Japanese", "Javanese",
	"Kannada", "Kazakh", "Khmer", "Kinyarwanda", "Korean",
	"Kurdish", "Kyrgyz",
	"Lao", "Latin", "Latvian", "Lingala", "Lithuanian", "Luxembourgish",
	"Macedonian", "Maithili", "Malagasy", "Malay", "Malayalam",
	"Maltese", "Maori", "Marathi", "Mongolian",
	"Nepali", "Newari", "Norwegian", "Nyanja",
	"Odia", "Oromo", "Ossetian",
	"Pashto", "Persian (Farsi)", "Polish", "Portuguese", "Punjabi",
	"Quechua",
	"Romanian", "Russian",
	"Samoan", "Sanskrit", "Scots", "Scottish Gaelic", "Serbian",
	"Sesotho", "Setswana", "Shona", "Sindhi", "Sinhala",
	"Slovak", "Slovenian", "Somali", "Spanish", "Sundanese",
	"Swahili", "Swedish",
	"Tagalog", "Tajik", "Tamil", "Tatar", "Telugu", "Thai",
	"Tigrinya", "Tok Pisin", "Tongan", "Turkish", "Turkmen",
	"Ukrainian", "Urdu", "Uyghur", "Uzbek",
	"Vietnamese",
	"Welsh", "Wolof",
	"Xhosa",
	"Yiddish", "Yoruba",
	"Zulu",
}

var SoftSkillOptions = []string{
	"Communication", "Teamwork", "Leadership", "Problem Solving", "Critical Thinking",
	"Time Management", "Adaptability", "Creativity", "Work Ethic", "Attention to Detail",
	"Decision Making", "Conflict Resolution", "Public Speaking", "Emotional Intelligence",
	"Collaboration", "Stress Management", "Self Motivation", "Active Listening",
	"Negotiation", "Flexibility",
}

const LevelFresher = "Fresher"

var ExperienceLevels = []string{LevelFresher, "1 Year", "2 Years", "3 Years", "5+ Years", "10+ Years"}

// CanonicalOption returns the option spelled as in the list when value matches
// it case-insensitively.
func CanonicalOption(options []string, value string) (string, bool) {
	v := strings.TrimSpace(value)
	for _, o := range options {
		if strings.EqualFold(o, v) {
			return o, true
		}
	}
	return v, false
}

// LevelYears maps "1 Year".."3 Years" to 1..3; other levels give 0.
func LevelYears(level string) int {
	switch level {
	case "1 Year":
		return 1
	case "2 Years":
		return 2
	case "3 Years":
		return 3
	}
	return 0
}
