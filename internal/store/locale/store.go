// Package locale holds the current UI language and keeps every global
// consequence of it (text direction, document attributes, persisted
// preference) consistent on each mutation.
package locale

import (
	"sync"

	"golang.org/x/text/language"

	"github.com/khadamat/webgate/internal/domain"
	"github.com/khadamat/webgate/internal/storage"
	"github.com/khadamat/webgate/pkg/logger"
)

// Body marker classes managed by the store. Both kinds are stripped
// before the new pair is applied, so no stale marker survives a switch.
const (
	ClassRTL         = "rtl"
	ClassLTR         = "ltr"
	ClassFontArabic  = "font-arabic"
	ClassFontEnglish = "font-english"
)

var markerClasses = []string{ClassRTL, ClassLTR, ClassFontArabic, ClassFontEnglish}

// Translator is an optional globally registered translation engine that
// follows the store's language.
type Translator interface {
	SetLocale(lang string)
}

// matcher negotiates Accept-Language against the supported set.
// Arabic first: it is the site default and the matcher's fallback.
var matcher = language.NewMatcher([]language.Tag{
	language.Arabic,
	language.English,
})

// Store is the locale store.
type Store struct {
	doc        Document
	state      storage.StateStore
	translator Translator
	log        *logger.Logger

	mu   sync.RWMutex
	lang string
}

// New creates the store and immediately applies the persisted (or
// default) language to the document, so the document is never stale
// after construction.
func New(doc Document, state storage.StateStore, translator Translator, defaultLang string, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	if !domain.IsSupportedLanguage(defaultLang) {
		defaultLang = domain.LangArabic
	}
	s := &Store{doc: doc, state: state, translator: translator, log: log, lang: defaultLang}
	if saved := state.Read(storage.KeyLanguage); domain.IsSupportedLanguage(saved) {
		s.lang = saved
	}
	s.SetLanguage(s.lang)
	return s
}

// Language returns the current language. Implements the API client's
// locale provider.
func (s *Store) Language() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lang
}

// Direction returns rtl for Arabic, ltr otherwise.
func (s *Store) Direction() string {
	return domain.DirectionFor(s.Language())
}

// IsRTL reports whether the current language reads right to left.
func (s *Store) IsRTL() bool {
	return s.Direction() == domain.DirRTL
}

// FontClass returns the body font marker for the current language.
func (s *Store) FontClass() string {
	if s.Language() == domain.LangArabic {
		return ClassFontArabic
	}
	return ClassFontEnglish
}

// SetLanguage switches the current language and synchronizes direction,
// document attributes, body classes and the persisted preference in one
// step. Unsupported languages are logged and ignored.
func (s *Store) SetLanguage(lang string) {
	if !domain.IsSupportedLanguage(lang) {
		s.log.Warn().Str("language", lang).Msg("unsupported language ignored")
		return
	}

	s.mu.Lock()
	s.lang = lang
	s.mu.Unlock()

	dir := domain.DirectionFor(lang)
	s.doc.SetDocumentDirection(dir)
	s.doc.SetDocumentLanguage(lang)

	for _, c := range markerClasses {
		s.doc.RemoveBodyClass(c)
	}
	s.doc.AddBodyClass(dir)
	s.doc.AddBodyClass(s.FontClass())

	if err := s.state.Write(storage.KeyLanguage, lang); err != nil {
		s.log.Error().Err(err).Msg("persist language preference")
	}

	if s.translator != nil {
		s.translator.SetLocale(lang)
	}
}

// ToggleLanguage swaps between the two supported languages.
func (s *Store) ToggleLanguage() {
	if s.Language() == domain.LangEnglish {
		s.SetLanguage(domain.LangArabic)
	} else {
		s.SetLanguage(domain.LangEnglish)
	}
}

// Negotiate picks the best supported language for an Accept-Language
// header. An empty or unrecognized header falls back to Arabic.
func Negotiate(acceptLanguage string) string {
	if acceptLanguage == "" {
		return domain.LangArabic
	}
	tag, _ := language.MatchStrings(matcher, acceptLanguage)
	base, _ := tag.Base()
	if base.String() == domain.LangEnglish {
		return domain.LangEnglish
	}
	return domain.LangArabic
}
