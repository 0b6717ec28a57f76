package onboarding

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/kestrelgames/onboarding-core-go/internal/account"
	"github.com/kestrelgames/onboarding-core-go/internal/calibration"
	"github.com/kestrelgames/onboarding-core-go/internal/catalog"
	"github.com/kestrelgames/onboarding-core-go/internal/credential"
	"github.com/kestrelgames/onboarding-core-go/internal/identity"
	"github.com/kestrelgames/onboarding-core-go/internal/identity/entity"
)

// ErrInvalidEvent indicates an event that is not legal in the current state.
var ErrInvalidEvent = errors.New("event not valid in current state")

// Config carries the controller's calibration parameters.
type Config struct {
	ArchetypeSampleSize int
	SkillSampleSize     int
}

// ConfigFromEnv reads controller config from env vars, with defaults sized
// to the authored pools.
func ConfigFromEnv() Config {
	cfg := Config{ArchetypeSampleSize: 6, SkillSampleSize: 3}
	if v, err := strconv.Atoi(os.Getenv("ARCHETYPE_SAMPLE_SIZE")); err == nil && v > 0 {
		cfg.ArchetypeSampleSize = v
	}
	if v, err := strconv.Atoi(os.Getenv("SKILL_SAMPLE_SIZE")); err == nil && v > 0 {
		cfg.SkillSampleSize = v
	}
	return cfg
}

// Controller is the onboarding state machine. Each public method handles one
// user event: it advances at most one transition (or one calibration step)
// synchronously and returns. All presenter work happens through callbacks
// that cannot corrupt controller state.
type Controller struct {
	mu        sync.Mutex
	cfg       Config
	store     *identity.Store
	accounts  *account.Service
	creds     *credential.Service
	presenter Presenter
	logger    *zap.SugaredLogger

	state           State
	accountID       string
	engine          *calibration.Engine
	archetypeResult *calibration.Result
}

// NewController constructs a controller starting from the resolver's verdict.
// A nil presenter defaults to NopPresenter.
func NewController(cfg Config, store *identity.Store, accounts *account.Service, creds *credential.Service, presenter Presenter, logger *zap.SugaredLogger, initial Resolution) *Controller {
	if presenter == nil {
		presenter = NopPresenter{}
	}
	state := initial.State
	if state == StateUnspecified {
		state = StatePortal
	}
	return &Controller{
		cfg:       cfg,
		store:     store,
		accounts:  accounts,
		creds:     creds,
		presenter: presenter,
		logger:    logger,
		state:     state,
		accountID: initial.AccountID,
	}
}

// State returns the current onboarding state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// AccountID returns the logged-in account id, empty at the portal.
func (c *Controller) AccountID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accountID
}

// Question returns the current calibration question, its index, and the
// session length. ok is false outside an active session.
func (c *Controller) Question() (q catalog.Question, index, total int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.engine == nil {
		return catalog.Question{}, 0, 0, false
	}
	q, ok = c.engine.Current()
	return q, c.engine.Cursor(), c.engine.Len(), ok
}

// Login handles a portal login. Admin accounts warp straight to COMPLETE,
// accounts with a calibrated identity resume at COMPLETE, everyone else
// enters the showcase.
func (c *Controller) Login(ctx context.Context, identifier, displayName, passphrase string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StatePortal {
		return fmt.Errorf("%w: login in %s", ErrInvalidEvent, c.state)
	}
	out, err := c.accounts.Login(ctx, identifier, displayName, passphrase)
	if err != nil {
		return err
	}
	if _, err := c.creds.Issue(ctx, out.Record.Profile.AccountID); err != nil {
		return err
	}
	c.accountID = out.Record.Profile.AccountID
	switch {
	case out.Admin:
		c.setState(StateComplete, CueWarp)
	case out.Record.Profile.HasIdentity():
		c.setState(StateComplete, CueNone)
	default:
		c.setState(StateShowcase, CueNone)
	}
	return nil
}

// Logout clears the credential marker, discards any active session, and
// returns to the portal.
func (c *Controller) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StatePortal {
		return fmt.Errorf("%w: logout in %s", ErrInvalidEvent, c.state)
	}
	return c.logout(ctx)
}

func (c *Controller) logout(ctx context.Context) error {
	if err := c.creds.Clear(ctx); err != nil {
		c.logger.Warnw("clear marker on logout", "error", err)
	}
	c.engine = nil
	c.archetypeResult = nil
	c.accountID = ""
	c.setState(StatePortal, CueNone)
	return nil
}

// Continue handles the per-state accept/continue event: showcase opens the
// archetype session, the reveal opens the skill session, synthesis hands off
// to the avatar builder.
func (c *Controller) Continue(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case StateShowcase:
		engine, err := calibration.StartArchetype(catalog.ArchetypePool, c.cfg.ArchetypeSampleSize)
		if err != nil {
			return fmt.Errorf("open archetype session: %w", err)
		}
		c.engine = engine
		c.setState(StateCalibrateIdentity, CueTransition)
		c.presentQuestion()
		return nil
	case StateRevealIdentity:
		if c.archetypeResult == nil {
			return calibration.ErrNoLockedArchetype
		}
		engine, err := calibration.StartSkill(catalog.SkillPool, c.cfg.SkillSampleSize, c.archetypeResult.Archetype)
		if err != nil {
			return fmt.Errorf("open skill session: %w", err)
		}
		c.engine = engine
		c.setState(StateCalibrateSkill, CueTransition)
		c.presentQuestion()
		return nil
	case StateSynthesize:
		c.setState(StateBuildAvatar, CueWarp)
		return nil
	default:
		return fmt.Errorf("%w: continue in %s", ErrInvalidEvent, c.state)
	}
}

// Answer forwards an option choice to the active calibration session. A
// finalized archetype session moves to the reveal; a finalized skill session
// commits the full identity and moves to synthesis. Internal finalization or
// commit failures abort the session cleanly and return to the state that
// opened it.
func (c *Controller) Answer(ctx context.Context, optionIndex int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.engine == nil || (c.state != StateCalibrateIdentity && c.state != StateCalibrateSkill) {
		return fmt.Errorf("%w: answer in %s", ErrInvalidEvent, c.state)
	}
	step, err := c.engine.Answer(optionIndex)
	if err != nil {
		if errors.Is(err, calibration.ErrInvalidOption) {
			// collaborator bug; session stays where it is
			return err
		}
		c.abortSession()
		return err
	}
	if step.Status == calibration.StatusContinue {
		c.presentQuestion()
		return nil
	}

	result := *step.Result
	switch result.Mode {
	case calibration.ModeArchetype:
		c.engine = nil
		c.archetypeResult = &result
		c.present(func() { c.presenter.Finalized(result) })
		c.setState(StateRevealIdentity, CueTransition)
		return nil
	case calibration.ModeSkill:
		if _, err := c.store.UpdateProfile(ctx, c.accountID, func(p *entity.Profile) {
			p.Archetype = string(result.Archetype)
			p.StartingSkill = result.Skill.Name
		}); err != nil {
			c.abortSession()
			return fmt.Errorf("commit identity: %w", err)
		}
		c.engine = nil
		c.present(func() { c.presenter.Finalized(result) })
		c.setState(StateSynthesize, CueTransition)
		return nil
	default:
		c.abortSession()
		return fmt.Errorf("unexpected session mode %v", result.Mode)
	}
}

// Back handles back navigation. States with an active session step the
// session back first; only at its first question does the controller leave
// for the predecessor state. The showcase's back event logs the account out.
func (c *Controller) Back(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case StateShowcase:
		return c.logout(ctx)
	case StateCalibrateIdentity:
		if err := c.stepBack(); err != nil {
			if errors.Is(err, calibration.ErrAtStart) {
				c.engine = nil
				c.setState(StateShowcase, CueNone)
				return nil
			}
			return err
		}
		return nil
	case StateRevealIdentity:
		// re-running calibration discards the previous result; a fresh
		// session gets a fresh sample
		c.archetypeResult = nil
		engine, err := calibration.StartArchetype(catalog.ArchetypePool, c.cfg.ArchetypeSampleSize)
		if err != nil {
			return fmt.Errorf("reopen archetype session: %w", err)
		}
		c.engine = engine
		c.setState(StateCalibrateIdentity, CueNone)
		c.presentQuestion()
		return nil
	case StateCalibrateSkill:
		if err := c.stepBack(); err != nil {
			if errors.Is(err, calibration.ErrAtStart) {
				c.engine = nil
				c.setState(StateRevealIdentity, CueNone)
				return nil
			}
			return err
		}
		return nil
	case StateSynthesize:
		if c.archetypeResult != nil {
			c.setState(StateRevealIdentity, CueNone)
		} else {
			// manual-override path came straight from the showcase
			c.setState(StateShowcase, CueNone)
		}
		return nil
	case StateBuildAvatar:
		c.setState(StateSynthesize, CueNone)
		return nil
	default:
		return fmt.Errorf("%w: back in %s", ErrInvalidEvent, c.state)
	}
}

// ManualOverride sets the profile's archetype and starting skill directly
// from a user-picked pair and warps to synthesis. No session is opened and
// nothing is scored.
func (c *Controller) ManualOverride(ctx context.Context, archetype catalog.Category, lane int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateShowcase {
		return fmt.Errorf("%w: manual override in %s", ErrInvalidEvent, c.state)
	}
	if _, err := catalog.Info(archetype); err != nil {
		return err
	}
	skill, err := catalog.SkillAt(archetype, lane)
	if err != nil {
		return err
	}
	if _, err := c.store.UpdateProfile(ctx, c.accountID, func(p *entity.Profile) {
		p.Archetype = string(archetype)
		p.StartingSkill = skill.Name
	}); err != nil {
		return fmt.Errorf("commit manual identity: %w", err)
	}
	c.archetypeResult = nil
	c.setState(StateSynthesize, CueWarp)
	return nil
}

// CompleteAvatar records the avatar reference produced by the avatar
// collaborator and finishes onboarding.
func (c *Controller) CompleteAvatar(ctx context.Context, avatarRef string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateBuildAvatar {
		return fmt.Errorf("%w: avatar completion in %s", ErrInvalidEvent, c.state)
	}
	if _, err := c.store.UpdateProfile(ctx, c.accountID, func(p *entity.Profile) {
		p.AvatarRef = avatarRef
	}); err != nil {
		return fmt.Errorf("commit avatar: %w", err)
	}
	c.archetypeResult = nil
	c.setState(StateComplete, CueTransition)
	return nil
}

func (c *Controller) stepBack() error {
	q, err := c.engine.Back()
	if err != nil {
		return err
	}
	total := c.engine.Len()
	index := c.engine.Cursor()
	c.present(func() { c.presenter.QuestionPresented(q, index, total) })
	return nil
}

// abortSession discards the active session so an internal error never leaves
// the user mid-quiz with an inconsistent ledger, and returns control to the
// state that opened the session.
func (c *Controller) abortSession() {
	c.engine = nil
	if c.state == StateCalibrateSkill {
		c.setState(StateRevealIdentity, CueNone)
	} else {
		c.setState(StateShowcase, CueNone)
	}
}

func (c *Controller) setState(state State, cue Cue) {
	c.state = state
	c.logger.Debugw("onboarding state", "state", state.String(), "cue", cue.String())
	c.present(func() { c.presenter.StateChanged(state, cue) })
}

func (c *Controller) presentQuestion() {
	if c.engine == nil {
		return
	}
	q, ok := c.engine.Current()
	if !ok {
		return
	}
	index, total := c.engine.Cursor(), c.engine.Len()
	c.present(func() { c.presenter.QuestionPresented(q, index, total) })
}

// present runs a presenter callback, containing any panic: collaborator
// failures must not corrupt controller state.
func (c *Controller) present(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Errorw("presenter panic", "panic", r)
		}
	}()
	fn()
}
