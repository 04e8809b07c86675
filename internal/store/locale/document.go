package locale

import (
	"sort"
	"sync"
)

// Document abstracts the global document the store mutates: language and
// direction attributes plus body marker classes. Injected so tests can
// observe the side effects deterministically.
type Document interface {
	SetDocumentLanguage(lang string)
	SetDocumentDirection(dir string)
	AddBodyClass(class string)
	RemoveBodyClass(class string)
}

// PageState is the gateway's document: it records the attributes and
// classes that page rendering picks up for <html lang dir> and <body>.
type PageState struct {
	mu      sync.RWMutex
	lang    string
	dir     string
	classes map[string]struct{}
}

// NewPageState creates an empty page state.
func NewPageState() *PageState {
	return &PageState{classes: map[string]struct{}{}}
}

func (p *PageState) SetDocumentLanguage(lang string) {
	p.mu.Lock()
	p.lang = lang
	p.mu.Unlock()
}

func (p *PageState) SetDocumentDirection(dir string) {
	p.mu.Lock()
	p.dir = dir
	p.mu.Unlock()
}

func (p *PageState) AddBodyClass(class string) {
	p.mu.Lock()
	p.classes[class] = struct{}{}
	p.mu.Unlock()
}

func (p *PageState) RemoveBodyClass(class string) {
	p.mu.Lock()
	delete(p.classes, class)
	p.mu.Unlock()
}

// Lang returns the document language attribute.
func (p *PageState) Lang() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lang
}

// Dir returns the document direction attribute.
func (p *PageState) Dir() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.dir
}

// BodyClasses returns the body classes in stable order.
func (p *PageState) BodyClasses() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, 0, len(p.classes))
	for c := range p.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
