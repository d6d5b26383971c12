// Package variants holds the catalogue of chess variants. Each variant
// is an engine.Rules value composed from the Western rules and a few
// rule fragments.
package variants

import (
	"fmt"
	"strings"
	"sync"

	"github.com/lgbarn/variantboard-go/internal/engine"
	"github.com/lgbarn/variantboard-go/internal/errors"
)

// Constructor builds the rules of a variant.
type Constructor func() *engine.Rules

// Registry maps variant names to their rules. Rules are built on first
// use and shared by every board of the variant.
type Registry struct {
	mu      sync.Mutex
	names   []string
	ctors   map[string]Constructor
	rules   map[string]*engine.Rules
	aliases map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		ctors:   make(map[string]Constructor),
		rules:   make(map[string]*engine.Rules),
		aliases: make(map[string]string),
	}
}

// Register adds a variant. Registering a name twice panics.
func (r *Registry) Register(name string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(name)
	if _, ok := r.ctors[key]; ok {
		panic("variants: duplicate variant " + name)
	}
	r.ctors[key] = ctor
	r.names = append(r.names, key)
}

// Alias makes alias another name of the registered variant name.
func (r *Registry) Alias(alias, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[strings.ToLower(alias)] = strings.ToLower(name)
}

func (r *Registry) resolve(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if target, ok := r.aliases[key]; ok {
		return target
	}
	return key
}

// Has reports whether name is a registered variant or alias.
func (r *Registry) Has(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.ctors[r.resolve(name)]
	return ok
}

// Names returns the variant names in registration order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.names...)
}

// Rules returns the shared rules of a variant.
func (r *Registry) Rules(name string) (*engine.Rules, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := r.resolve(name)
	if rules, ok := r.rules[key]; ok {
		return rules, nil
	}
	ctor, ok := r.ctors[key]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, errors.ErrUnknownVariant)
	}
	rules := ctor()
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	r.rules[key] = rules
	return rules, nil
}

// Create returns a board of the variant set to its starting position.
func (r *Registry) Create(name string) (*engine.Board, error) {
	rules, err := r.Rules(name)
	if err != nil {
		return nil, err
	}
	b := engine.New(rules)
	if err := b.Reset(); err != nil {
		return nil, err
	}
	return b, nil
}

// RegisterAll registers every variant of the catalogue in a fixed
// order.
func RegisterAll(r *Registry) {
	// Western family
	r.Register("standard", Standard)
	r.Register("fischerandom", FischerRandom)
	r.Register("kingofthehill", KingOfTheHill)
	r.Register("3check", func() *engine.Rules { return NCheck(3) })
	r.Register("5check", func() *engine.Rules { return NCheck(5) })
	r.Register("horde", Horde)
	r.Register("extinction", Extinction)
	r.Register("kinglet", Kinglet)
	r.Register("andernach", Andernach)
	r.Register("antiandernach", AntiAndernach)
	r.Register("superandernach", SuperAndernach)
	r.Register("berolina", Berolina)
	r.Register("knightrelay", KnightRelay)
	r.Register("racingkings", RacingKings)
	r.Register("grid", Grid)
	r.Register("displacedgrid", DisplacedGrid)
	r.Register("slippedgrid", SlippedGrid)
	r.Register("gridolina", Gridolina)
	r.Register("knightmate", Knightmate)
	r.Register("coregal", Coregal)
	r.Register("threekings", ThreeKings)
	r.Register("twokings", TwoKings)
	r.Register("twokingssymmetric", TwoKingsSymmetric)
	r.Register("chigorin", Chigorin)
	r.Register("losalamos", LosAlamos)
	r.Register("rifle", Rifle)
	r.Register("shoot", Shoot)

	// Explosions and drops
	r.Register("atomic", Atomic)
	r.Register("crazyhouse", Crazyhouse)
	r.Register("loop", Loop)
	r.Register("chessgi", Chessgi)
	r.Register("pocketknight", PocketKnight)
	r.Register("seirawan", Seirawan)
	r.Register("placement", Placement)

	// Losing chess
	r.Register("antichess", Antichess)
	r.Register("giveaway", Giveaway)
	r.Register("suicide", Suicide)
	r.Register("losers", Losers)
	r.Register("codrus", Codrus)

	// Large and irregular boards
	r.Register("capablanca", Capablanca)
	r.Register("gothic", Gothic)
	r.Register("embassy", Embassy)
	r.Register("janus", JanusChess)
	r.Register("grand", Grand)
	r.Register("modern", Modern)
	r.Register("almost", Almost)
	r.Register("amazon", Amazon)
	r.Register("courier", CourierChess)
	r.Register("caparandom", Caparandom)
	r.Register("chancellor", ChancellorChess)

	// Shatranj and Makruk
	r.Register("shatranj", Shatranj)
	r.Register("makruk", Makruk)
	r.Register("cambodian", Cambodian)
	r.Register("karouk", KarOuk)
	r.Register("asean", Asean)
	r.Register("makpong", Makpong)
	r.Register("aiwok", AiWok)
	r.Register("sittuyin", Sittuyin)

	// Xiangqi
	r.Register("minixiangqi", MiniXiangqi)

	r.Alias("chess", "standard")
	r.Alias("fischerrandom", "fischerandom")
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide registry with every variant.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
		RegisterAll(defaultRegistry)
	})
	return defaultRegistry
}

// Create returns a board of the named variant from the default
// registry.
func Create(name string) (*engine.Board, error) {
	return Default().Create(name)
}

// Names lists the variants of the default registry.
func Names() []string {
	return Default().Names()
}
