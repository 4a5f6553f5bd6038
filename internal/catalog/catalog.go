// internal/catalog/catalog.go
//
// Game catalogue: the landing page cards and the image lists the games
// deal from.
//
// Initialization behavior (Init):
//   1. If CATALOG_FILE is set, the YAML document at that path is loaded.
//   2. Otherwise the embedded catalog.yaml is used.
//
// The document is validated once (sync.Once); image lists are copied out
// on every access so sessions never share a backing array.

package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/kidgames/internal/game"
)

//go:embed catalog.yaml
var embedded []byte

// Entry is one landing page card. Game is empty for cards that only link
// somewhere else.
type Entry struct {
	Name       string    `yaml:"name" json:"name"`
	Slug       string    `yaml:"slug" json:"slug"`
	Link       string    `yaml:"link" json:"link"`
	Image      string    `yaml:"image" json:"image"`
	Alt        string    `yaml:"alt" json:"alt"`
	Background string    `yaml:"background" json:"background"`
	Game       game.Kind `yaml:"game,omitempty" json:"game,omitempty"`
}

// Playable reports whether the entry can start a session.
func (e Entry) Playable() bool { return e.Game != "" }

// Images holds the image lists per game.
type Images struct {
	Critters    []string `yaml:"critters"`
	MemoryGame  []string `yaml:"memory-game"`
	MemoryCards []string `yaml:"memory-cards"`
}

// Catalog is the parsed document.
type Catalog struct {
	Entries []Entry `yaml:"games"`
	Images  Images  `yaml:"images"`
}

var (
	initOnce   sync.Once
	current    *Catalog
	initialErr error
)

// Init loads the catalogue exactly once.
func Init() error {
	initOnce.Do(func() {
		data := embedded
		if path := os.Getenv("CATALOG_FILE"); path != "" {
			b, err := os.ReadFile(path)
			if err != nil {
				initialErr = fmt.Errorf("catalog: %w", err)
				return
			}
			data = b
		}
		current, initialErr = Parse(data)
	})
	return initialErr
}

// Default returns the loaded catalogue, or nil before a successful Init.
func Default() *Catalog { return current }

// Builtin parses the embedded document, ignoring CATALOG_FILE.
func Builtin() (*Catalog, error) { return Parse(embedded) }

// Parse decodes and validates a catalogue document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Entries) == 0 {
		return errors.New("catalog: no games listed")
	}
	slugs := make(map[string]struct{}, len(c.Entries))
	for i, e := range c.Entries {
		if e.Name == "" || e.Slug == "" {
			return fmt.Errorf("catalog: entry %d needs a name and slug", i)
		}
		if _, dup := slugs[e.Slug]; dup {
			return fmt.Errorf("catalog: duplicate slug %q", e.Slug)
		}
		slugs[e.Slug] = struct{}{}
		if e.Playable() && !slices.Contains(game.Kinds(), e.Game) {
			return fmt.Errorf("catalog: %s: %w %q", e.Slug, game.ErrUnknownKind, e.Game)
		}
	}
	// Game configs validate the lists against their own curves; here we only
	// insist they exist.
	if len(c.Images.Critters) == 0 || len(c.Images.MemoryGame) == 0 || len(c.Images.MemoryCards) == 0 {
		return errors.New("catalog: every image list must be non-empty")
	}
	return nil
}

// Assets returns copies of the image lists for session construction.
func (c *Catalog) Assets() game.Assets {
	return game.Assets{
		Critters:    slices.Clone(c.Images.Critters),
		MemoryGame:  slices.Clone(c.Images.MemoryGame),
		MemoryCards: slices.Clone(c.Images.MemoryCards),
	}
}

// Lookup finds an entry by slug.
func (c *Catalog) Lookup(slug string) (Entry, bool) {
	for _, e := range c.Entries {
		if e.Slug == slug {
			return e, true
		}
	}
	return Entry{}, false
}

// Stats returns (entries, playable entries).
func (c *Catalog) Stats() (entries int, playable int) {
	for _, e := range c.Entries {
		if e.Playable() {
			playable++
		}
	}
	return len(c.Entries), playable
}
