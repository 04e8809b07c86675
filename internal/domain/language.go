package domain

// Supported UI languages. The site is bilingual; every public route is
// prefixed with one of these segments.
const (
	LangEnglish = "en"
	LangArabic  = "ar"
)

// Text directions derived from the language.
const (
	DirLTR = "ltr"
	DirRTL = "rtl"
)

// SupportedLanguages lists the recognized language segments.
var SupportedLanguages = []string{LangEnglish, LangArabic}

// IsSupportedLanguage reports whether lang is a recognized UI language.
func IsSupportedLanguage(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

// DirectionFor returns the text direction for a language: rtl for Arabic,
// ltr otherwise.
func DirectionFor(lang string) string {
	if lang == LangArabic {
		return DirRTL
	}
	return DirLTR
}
