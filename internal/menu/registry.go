package menu

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/quillmath/quill/internal/engine/caret"
	"github.com/quillmath/quill/internal/engine/tree"
)

// Errors returned by the registry.
var (
	// ErrInvalidEntry is returned when an entry misses a name, code, or
	// action.
	ErrInvalidEntry = errors.New("invalid menu entry")

	// ErrDuplicateCode is returned when an entry's code is already
	// registered.
	ErrDuplicateCode = errors.New("duplicate entry code")

	// ErrEntryNotFound is returned when selecting an unknown code.
	ErrEntryNotFound = errors.New("menu entry not found")
)

// Action inserts an entry's element at the caret.
type Action func(c *caret.Caret) error

// Entry is one selectable element of the insertion menu.
type Entry struct {
	// Name is the human-readable display name, e.g. "Greek small alpha".
	Name string

	// Code is the canonical lookup code, e.g. "alpha".
	Code string

	// Aliases are additional search terms.
	Aliases []string

	// Action performs the insertion.
	Action Action
}

// Result is one ranked search hit.
type Result struct {
	Entry Entry
	Score int
}

// Registry is the searchable entry store.
type Registry struct {
	mu      sync.RWMutex
	entries []Entry
	byCode  map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byCode: make(map[string]int)}
}

// Register adds an entry.
func (r *Registry) Register(e Entry) error {
	if e.Name == "" || e.Code == "" || e.Action == nil {
		return ErrInvalidEntry
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byCode[e.Code]; exists {
		return ErrDuplicateCode
	}
	r.byCode[e.Code] = len(r.entries)
	r.entries = append(r.entries, e)
	return nil
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Lookup returns the entry with the given canonical code.
func (r *Registry) Lookup(code string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.byCode[code]
	if !ok {
		return Entry{}, ErrEntryNotFound
	}
	return r.entries[idx], nil
}

// Search returns entries matching the query, best first. A match is a
// case-insensitive subsequence of the name, code, or an alias; an empty
// query returns every entry in registration order.
func (r *Registry) Search(query string) []Result {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if query == "" {
		out := make([]Result, len(r.entries))
		for i, e := range r.entries {
			out[i] = Result{Entry: e}
		}
		return out
	}

	q := []rune(strings.ToLower(query))
	var out []Result
	for _, e := range r.entries {
		best := 0
		for _, text := range e.searchTexts() {
			if s := score(q, []rune(strings.ToLower(text))); s > best {
				best = s
			}
		}
		if best > 0 {
			out = append(out, Result{Entry: e, Score: best})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

func (e Entry) searchTexts() []string {
	texts := make([]string, 0, len(e.Aliases)+2)
	texts = append(texts, e.Code, e.Name)
	texts = append(texts, e.Aliases...)
	return texts
}

// score rates a subsequence match of query against text: consecutive
// matched runes and early, prefix-anchored matches rank higher; gaps and
// long texts rank lower. Zero means no match.
func score(query, text []rune) int {
	if len(query) == 0 || len(query) > len(text) {
		return 0
	}

	matches := make([]int, 0, len(query))
	ti := 0
	for _, qr := range query {
		found := false
		for ; ti < len(text); ti++ {
			if text[ti] == qr {
				matches = append(matches, ti)
				ti++
				found = true
				break
			}
		}
		if !found {
			return 0
		}
	}

	s := 100
	for i := 1; i < len(matches); i++ {
		if matches[i] == matches[i-1]+1 {
			s += 20
		}
	}
	if matches[0] == 0 {
		s += 25
	} else {
		s -= matches[0]
	}
	if gap := matches[len(matches)-1] - matches[0] - len(matches) + 1; gap > 0 {
		s -= gap * 2
	}
	if len(text) < 20 {
		s += 20 - len(text)
	}
	if s < 1 {
		s = 1
	}
	return s
}

// SymbolAction builds an action inserting an atomic symbol.
func SymbolAction(glyph string) Action {
	return func(c *caret.Caret) error {
		_, err := c.InsertSymbol(glyph)
		return err
	}
}

// NodeAction builds an action inserting a compound node and descending
// into its first child slot.
func NodeAction(factory func() *tree.Node) Action {
	return func(c *caret.Caret) error {
		idx, err := c.InsertNode(factory())
		if err != nil {
			return err
		}
		return c.EnterNode(idx, 0, caret.SideLeading)
	}
}
