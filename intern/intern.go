// Package intern maps identifier text to small integer symbols. An Interner
// is owned by whoever drives the pipeline and passed down explicitly.
package intern

import "sync"

// Symbol identifies an interned string. The zero Symbol is the empty
// string in every Interner.
type Symbol uint32

// Interner is safe for concurrent use.
type Interner struct {
	mu      sync.RWMutex
	strings []string
	symbols map[string]Symbol
}

func New() *Interner {
	return &Interner{
		strings: []string{""},
		symbols: map[string]Symbol{"": 0},
	}
}

func (in *Interner) Intern(s string) Symbol {
	in.mu.RLock()
	sym, ok := in.symbols[s]
	in.mu.RUnlock()
	if ok {
		return sym
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	if sym, ok := in.symbols[s]; ok {
		return sym
	}
	sym = Symbol(len(in.strings))
	in.strings = append(in.strings, s)
	in.symbols[s] = sym
	return sym
}

// Lookup returns the text of sym. It panics for symbols this Interner did
// not produce.
func (in *Interner) Lookup(sym Symbol) string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if int(sym) >= len(in.strings) {
		panic("intern: unknown symbol")
	}
	return in.strings[sym]
}

// Get reports the symbol for s without interning it.
func (in *Interner) Get(s string) (Symbol, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	sym, ok := in.symbols[s]
	return sym, ok
}

// Len counts distinct strings, including the empty string.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.strings)
}
