// Package workspace holds the recruiter session: which view is active, the
// candidate snapshot it renders, and the transient add and search state.
// Every surface (shell, CLI, HTTP API) drives the same Controller.
package workspace

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/talent-search/internal/extraction"
	"github.com/jonathan/talent-search/internal/logging"
	"github.com/jonathan/talent-search/internal/ranking"
	"github.com/jonathan/talent-search/internal/types"
	"github.com/sirupsen/logrus"
)

const (
	// SampleResumeText is inserted by InsertSampleText.
	SampleResumeText = "John Doe\njohn@example.com\nSenior Developer with 5 years in Java and React."
	// AnalyzeFailedMessage is shown when extraction fails.
	AnalyzeFailedMessage = "Failed to parse resume. Please try again."
	// SavedMessage is the success banner text.
	SavedMessage = "Candidate saved successfully to database!"
	// DefaultBannerDuration is how long the success banner stays up.
	DefaultBannerDuration = 3 * time.Second
)

// Intelligence is the AI capability the workspace depends on.
type Intelligence interface {
	Extract(ctx context.Context, rawText string) (*types.CandidateDraft, error)
	Rank(ctx context.Context, query string, candidates []types.CandidateProfile) []types.SearchResult
}

// Store is the persistence the workspace depends on.
type Store interface {
	GetAll(ctx context.Context) []types.CandidateProfile
	Save(ctx context.Context, record types.CandidateProfile) error
	Delete(ctx context.Context, id string) error
}

// AddState is the Add Candidate view state.
type AddState struct {
	Input     string                `json:"input"`
	Draft     *types.CandidateDraft `json:"draft,omitempty"`
	Analyzing bool                  `json:"analyzing"`
	Error     string                `json:"error,omitempty"`
	Success   bool                  `json:"success"`
}

// SearchState is the Search view state.
type SearchState struct {
	Query     string                  `json:"query"`
	Results   []types.RankedCandidate `json:"results"`
	Searching bool                    `json:"searching"`
	Searched  bool                    `json:"searched"`
}

// State is a point-in-time copy of the controller.
type State struct {
	View       View                     `json:"view"`
	Candidates []types.CandidateProfile `json:"candidates"`
	Add        AddState                 `json:"add"`
	Search     SearchState              `json:"search"`
}

// Option configures a Controller.
type Option func(*Controller)

// WithBannerDuration sets how long the saved banner stays visible.
func WithBannerDuration(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.bannerDuration = d
		}
	}
}

// WithClock overrides the timestamp source for saved records.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithIDGenerator overrides how record ids are minted.
func WithIDGenerator(newID func() string) Option {
	return func(c *Controller) {
		if newID != nil {
			c.newID = newID
		}
	}
}

// WithLogger sets the controller logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// Controller is safe for concurrent use. Its mutex is never held while the
// model is being called.
type Controller struct {
	store Store
	ai    Intelligence
	log   logrus.FieldLogger

	bannerDuration time.Duration
	now            func() time.Time
	newID          func() string

	mu          sync.Mutex
	view        View
	candidates  []types.CandidateProfile
	add         AddState
	search      SearchState
	bannerTimer *time.Timer
	bannerSeq   uint64
	addEpoch    uint64
	searchEpoch uint64
}

// New returns a Controller on the Dashboard with an empty snapshot. Call
// Navigate or Refresh to load candidates.
func New(store Store, ai Intelligence, opts ...Option) *Controller {
	c := &Controller{
		store:          store,
		ai:             ai,
		log:            logging.Discard(),
		bannerDuration: DefaultBannerDuration,
		now:            time.Now,
		newID:          uuid.NewString,
		view:           ViewDashboard,
		candidates:     []types.CandidateProfile{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithField("component", "workspace")
	return c
}

// View returns the active view.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Navigate re-reads the store and switches to v. Leaving a view drops its
// transient state. Re-entering the active view only refreshes.
func (c *Controller) Navigate(ctx context.Context, v View) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v != c.view {
		switch c.view {
		case ViewAddCandidate:
			c.resetAddLocked()
		case ViewSearch:
			c.search = SearchState{Searching: c.search.Searching}
			c.searchEpoch++
		}
		c.log.WithFields(logrus.Fields{"from": c.view, "to": v}).Debug("navigate")
		c.view = v
	}
	c.refreshLocked(ctx)
}

// Refresh re-reads the store into the snapshot.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshLocked(ctx)
}

func (c *Controller) refreshLocked(ctx context.Context) {
	c.candidates = c.store.GetAll(ctx)
}

// Snapshot returns the candidate list as of the last refresh.
func (c *Controller) Snapshot() []types.CandidateProfile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]types.CandidateProfile(nil), c.candidates...)
}

// State returns a copy of the whole controller state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	add := c.add
	if add.Draft != nil {
		d := *add.Draft
		add.Draft = &d
	}
	search := c.search
	search.Results = append([]types.RankedCandidate{}, c.search.Results...)

	return State{
		View:       c.view,
		Candidates: append([]types.CandidateProfile{}, c.candidates...),
		Add:        add,
		Search:     search,
	}
}

// Stats summarises the snapshot.
func (c *Controller) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ComputeStats(c.candidates)
}

// Recent returns the newest candidates of the snapshot.
func (c *Controller) Recent() []types.CandidateProfile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return RecentCandidates(c.candidates)
}

// SetInput replaces the resume text of the Add view.
func (c *Controller) SetInput(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.add.Input = text
}

// InsertSampleText replaces the input with a short example resume.
func (c *Controller) InsertSampleText() {
	c.SetInput(SampleResumeText)
}

// Analyze extracts a draft from the current input. On failure the input and
// any earlier draft are kept and the error is recorded in the Add state.
func (c *Controller) Analyze(ctx context.Context) (*types.CandidateDraft, error) {
	c.mu.Lock()
	if c.add.Analyzing {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	text := c.add.Input
	if strings.TrimSpace(text) == "" {
		c.mu.Unlock()
		return nil, ErrEmptyInput
	}
	c.add.Analyzing = true
	c.add.Error = ""
	c.add.Success = false
	epoch := c.addEpoch
	c.mu.Unlock()

	draft, err := c.ai.Extract(ctx, text)
	if err == nil && draft == nil {
		err = &extraction.ExtractionError{Reason: extraction.ReasonEmptyResponse, Message: "no profile returned"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.add.Analyzing = false
	if epoch != c.addEpoch {
		// The Add view was left while the call was running.
		if err != nil {
			return nil, err
		}
		d := *draft
		return &d, nil
	}
	if err != nil {
		c.add.Error = AnalyzeFailedMessage
		c.log.WithError(err).Warn("resume analysis failed")
		return nil, err
	}
	c.add.Draft = draft
	d := *draft
	return &d, nil
}

// AnalyzeText sets the input and analyzes it.
func (c *Controller) AnalyzeText(ctx context.Context, text string) (*types.CandidateDraft, error) {
	c.mu.Lock()
	if c.add.Analyzing {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	c.add.Input = text
	c.mu.Unlock()
	return c.Analyze(ctx)
}

// Save stores the pending draft as a new candidate with a fresh id and
// timestamp, clears the Add view and raises the success banner.
func (c *Controller) Save(ctx context.Context) (types.CandidateProfile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.add.Draft == nil {
		return types.CandidateProfile{}, ErrNoDraft
	}

	record := c.add.Draft.ToProfile(c.newID(), c.now(), c.add.Input)
	if err := c.store.Save(ctx, record); err != nil {
		return types.CandidateProfile{}, err
	}

	c.add.Draft = nil
	c.add.Input = ""
	c.add.Error = ""
	c.showBannerLocked()
	c.refreshLocked(ctx)

	c.log.WithField("candidate_id", record.ID).Info("candidate saved")
	return record, nil
}

// Discard drops the pending draft and keeps the input.
func (c *Controller) Discard() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.add.Draft = nil
}

// Delete removes a candidate after confirm agrees to DeletePrompt.
func (c *Controller) Delete(ctx context.Context, id string, confirm Confirmer) error {
	if confirm == nil || !confirm.Confirm(DeletePrompt) {
		return ErrNotConfirmed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Delete(ctx, id); err != nil {
		return err
	}
	c.refreshLocked(ctx)
	c.log.WithField("candidate_id", id).Info("candidate deleted")
	return nil
}

// Search ranks a fresh snapshot of the store against query and replaces the
// previous result set.
func (c *Controller) Search(ctx context.Context, query string) ([]types.RankedCandidate, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	c.mu.Lock()
	if c.search.Searching {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	c.search.Searching = true
	c.search.Query = query
	c.refreshLocked(ctx)
	candidates := append([]types.CandidateProfile(nil), c.candidates...)
	epoch := c.searchEpoch
	c.mu.Unlock()

	results := c.ai.Rank(ctx, query, candidates)
	ranked := ranking.MergeResults(results, candidates, ranking.WithLogger(c.log))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.search.Searching = false
	if epoch == c.searchEpoch {
		c.search.Searched = true
		c.search.Results = ranked
	}

	c.log.WithFields(logrus.Fields{"candidates": len(candidates), "matches": len(ranked)}).Info("search complete")
	return append([]types.RankedCandidate{}, ranked...), nil
}

func (c *Controller) resetAddLocked() {
	if c.bannerTimer != nil {
		c.bannerTimer.Stop()
		c.bannerTimer = nil
	}
	c.bannerSeq++
	c.addEpoch++
	c.add = AddState{Analyzing: c.add.Analyzing}
}

func (c *Controller) showBannerLocked() {
	if c.bannerTimer != nil {
		c.bannerTimer.Stop()
	}
	c.bannerSeq++
	seq := c.bannerSeq
	c.add.Success = true
	c.bannerTimer = time.AfterFunc(c.bannerDuration, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.bannerSeq == seq {
			c.add.Success = false
			c.bannerTimer = nil
		}
	})
}
