// Package registry keeps the game variants known to the binary.
// Variants register a factory from init(), so commands and the SSH server
// can look them up by ID without importing each variant by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/gridsnake/internal/core"
)

// Game is what the platform drives each frame. Implementations hold pure
// logic and never import the terminal stack.
type Game interface {
	// ID is the stable identifier used on the command line and as the
	// score table key, e.g. "snake" or "snake_wrap".
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a new session with the given screen size, seed and clock.
	Reset(cfg core.RuntimeConfig)

	// Step applies one rendered frame of input and runs a logic tick when
	// one is due.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst.
	Render(dst *core.Screen)

	// State returns score and game-over/paused flags.
	State() core.GameState
}

// Resizer is implemented by games that adapt to terminal resizes without
// starting over.
type Resizer interface {
	Resize(w, h int)
}

// RecordKeeper is implemented by games that show a stored best score.
type RecordKeeper interface {
	SetBest(score int)
}

// GameInfo describes a registered variant.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a factory under id. It panics on a duplicate id.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns the registered variants sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create builds a new game by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
