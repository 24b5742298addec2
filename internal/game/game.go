package game

import (
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/tomz197/survivors/internal/config"
	"github.com/tomz197/survivors/internal/progression"
	"github.com/tomz197/survivors/internal/shop"
	"github.com/tomz197/survivors/internal/storage"
)

// Options configures a Game. Zero fields fall back to defaults.
type Options struct {
	Tuning   config.Tuning
	Store    storage.Store // Nil keeps the profile in memory only
	Logger   *log.Logger   // Nil discards
	Time     TimeProvider  // Nil uses the system clock
	Rand     *rand.Rand    // Nil seeds from Tuning.Seed or the time
	Catalog  *progression.Catalog
	Upgrades []shop.Upgrade
}

// Game is one single-player simulation: state machine, clock, world and
// the profile-backed shop. Tick must not be called concurrently.
type Game struct {
	tuning  config.Tuning
	log     *log.Logger
	clock   *Clock
	rng     *rand.Rand
	world   *World
	catalog *progression.Catalog
	shop    *shop.Shop

	state         State
	offers        []progression.Upgrade
	pendingLevels int

	runID     uuid.UUID
	runActive bool
	lastNow   time.Duration
	done      bool

	frame   Frame
	buttons []Button
}

// New creates a game at the start menu and loads the profile from the store.
// A profile that cannot be read is replaced by an empty one.
func New(opts Options) (*Game, error) {
	if opts.Tuning == (config.Tuning{}) {
		opts.Tuning = config.DefaultTuning()
	}
	if err := opts.Tuning.Validate(); err != nil {
		return nil, fmt.Errorf("tuning: %w", err)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Time == nil {
		opts.Time = MonotonicTimeProvider{}
	}
	if opts.Rand == nil {
		seed := uint64(opts.Tuning.Seed)
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		opts.Rand = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	if opts.Catalog == nil {
		c, err := progression.DefaultCatalog()
		if err != nil {
			return nil, fmt.Errorf("upgrade catalog: %w", err)
		}
		opts.Catalog = c
	}
	if opts.Upgrades == nil {
		opts.Upgrades = shop.DefaultUpgrades
	}

	profile := storage.NewProfile()
	if opts.Store != nil {
		p, err := opts.Store.Load()
		if err != nil {
			opts.Logger.Warn("profile unreadable, starting fresh", "err", err)
		} else {
			profile = p
		}
	}

	g := &Game{
		tuning:  opts.Tuning,
		log:     opts.Logger,
		clock:   NewClock(opts.Time),
		rng:     opts.Rand,
		world:   NewWorld(opts.Tuning, opts.Rand),
		catalog: opts.Catalog,
		shop:    shop.New(opts.Store, profile, opts.Upgrades),
		state:   StateStartMenu,
	}
	g.buildFrame()
	return g, nil
}

// State returns the current state.
func (g *Game) State() State { return g.state }

// World returns the simulation world.
func (g *Game) World() *World { return g.world }

// Clock returns the run clock.
func (g *Game) Clock() *Clock { return g.clock }

// Shop returns the permanent-upgrade shop.
func (g *Game) Shop() *shop.Shop { return g.shop }

// Offers returns the upgrades on offer while in LEVEL_UP.
func (g *Game) Offers() []progression.Upgrade { return g.offers }

// Done reports whether the player chose to quit from the start menu.
func (g *Game) Done() bool { return g.done }

// Tick processes the events of one frame and, while PLAYING, advances the
// simulation by one step.
func (g *Game) Tick(in Input) {
	for _, ev := range in.Events {
		g.handleEvent(ev)
	}
	if g.state == StatePlaying {
		g.step(in)
	}
	g.buildFrame()
}

// Close ends an active run, banking its currency. Safe to call repeatedly.
func (g *Game) Close() error {
	if !g.runActive {
		return nil
	}
	g.clock.Freeze()
	return g.endRun("quit")
}

func (g *Game) handleEvent(ev Event) {
	switch ev.Kind {
	case EventPauseToggle:
		switch g.state {
		case StatePlaying:
			g.goTo(StatePaused)
		case StatePaused:
			g.goTo(StatePlaying)
		}
	case EventBack:
		switch g.state {
		case StatePlaying:
			g.goTo(StatePaused)
		case StatePaused:
			g.goTo(StatePlaying)
		case StateShop, StateCredits:
			g.goTo(StateStartMenu)
		}
	case EventClick:
		g.click(ev.Pos)
	case EventSelect:
		g.activate(ev.Index)
	}
}

// transition changes state and keeps the clock frozen outside PLAYING.
func (g *Game) transition(to State) error {
	if err := checkTransition(g.state, to); err != nil {
		return err
	}
	from := g.state
	if from == StatePlaying {
		g.clock.Freeze()
	}
	if to == StatePlaying && (from == StatePaused || from == StateLevelUp) {
		g.clock.Thaw()
	}
	g.state = to
	return nil
}

func (g *Game) goTo(to State) {
	if err := g.transition(to); err != nil {
		g.log.Warn("state change rejected", "err", err)
	}
}

func (g *Game) startRun() {
	if err := g.transition(StatePlaying); err != nil {
		g.log.Warn("cannot start run", "err", err)
		return
	}

	w := g.world
	w.Reset(progression.Threshold(1))
	g.shop.ApplyBonuses(w.Player)
	if err := g.catalog.Apply(w.Player, progression.StartingUpgrade); err != nil {
		g.log.Warn("starting skill not granted", "err", err)
	}

	g.offers = nil
	g.pendingLevels = 0
	g.clock.Start()
	g.lastNow = 0
	g.runID = uuid.New()
	g.runActive = true
	g.log.Info("run started", "run", g.runID, "max_health", w.Player.MaxHealth, "speed", w.Player.Speed)
}

// endRun banks the run's currency and persists the profile.
func (g *Game) endRun(reason string) error {
	if !g.runActive {
		return nil
	}
	g.runActive = false

	w := g.world
	earned := int(math.Floor(w.RunCurrency))
	g.log.Info("run ended",
		"run", g.runID,
		"reason", reason,
		"elapsed", FormatElapsed(g.clock.Elapsed()),
		"level", w.Player.Level,
		"kills", w.Kills,
		"currency", earned,
	)
	if err := g.shop.Deposit(earned); err != nil {
		g.log.Error("profile not saved", "err", err)
		return err
	}
	return nil
}

func (g *Game) abandonRun() {
	if err := g.transition(StateStartMenu); err != nil {
		g.log.Warn("cannot abandon run", "err", err)
		return
	}
	_ = g.endRun("abandoned")
}

func (g *Game) quit() {
	g.done = true
}

func (g *Game) purchase(key string) {
	if err := g.shop.Purchase(key); err != nil {
		g.log.Warn("purchase failed", "key", key, "err", err)
		return
	}
	g.log.Info("purchased", "key", key, "level", g.shop.Level(key), "currency", g.shop.Currency())
}

// enterLevelUp queues n level-ups and presents offers if any are eligible.
func (g *Game) enterLevelUp(n int) {
	g.pendingLevels += n
	g.offers = g.catalog.Offers(g.world.Player, g.rng, g.tuning.UpgradeOffers)
	if len(g.offers) == 0 {
		g.log.Debug("no eligible upgrades, skipping level-up", "level", g.world.Player.Level)
		g.pendingLevels = 0
		return
	}
	g.goTo(StateLevelUp)
}

// chooseUpgrade applies offer i and either re-offers for the next queued
// level or returns to PLAYING.
func (g *Game) chooseUpgrade(i int) {
	if i < 0 || i >= len(g.offers) {
		return
	}
	key := g.offers[i].Key
	if err := g.catalog.Apply(g.world.Player, key); err != nil {
		g.log.Error("upgrade not applied", "key", key, "err", err)
	} else {
		g.log.Debug("upgrade applied", "run", g.runID, "key", key)
	}

	g.pendingLevels--
	if g.pendingLevels > 0 {
		g.offers = g.catalog.Offers(g.world.Player, g.rng, g.tuning.UpgradeOffers)
		if len(g.offers) > 0 {
			return
		}
	}
	g.pendingLevels = 0
	g.offers = nil
	g.goTo(StatePlaying)
}

// step advances one PLAYING tick in the fixed order: move, rebuild the
// index, steer, skills, projectiles, combat, then spawn.
func (g *Game) step(in Input) {
	now := g.clock.Elapsed()
	dt := now - g.lastNow
	g.lastNow = now

	w := g.world
	p := w.Player
	p.Intent = in.Move
	p.Move(w.tuning.WorldWidth, w.tuning.WorldHeight)
	p.UpdateInvincibility(now)

	w.RebuildIndex()
	w.Steer()
	w.UpdateSkills(now)
	w.UpdateProjectiles(now)

	res := w.ResolveCombat(now)
	if !p.Alive() {
		g.goTo(StateGameOver)
		_ = g.endRun("died")
		return
	}

	w.UpdateSpawner(dt)

	if res.LevelsGained > 0 {
		g.log.Debug("level up", "run", g.runID, "level", p.Level, "gained", res.LevelsGained)
		g.enterLevelUp(res.LevelsGained)
	}
}

// FormatElapsed renders a duration as mm:ss.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	s := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}
