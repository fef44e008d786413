package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultTimeout bounds the evidence-collection phase of a single audit.
const DefaultTimeout = 30 * time.Second

// State tracks the audit lifecycle. Failed is reachable only from
// collecting, when both evidence sources end up absent.
type State string

const (
	StateStarted     State = "started"
	StateCollecting  State = "collecting_evidence"
	StateNormalizing State = "normalizing"
	StateScoring     State = "scoring"
	StateComplete    State = "complete"
	StateFailed      State = "failed"
)

// OnChainCollector fetches contract facts from the blockchain side. An
// empty record with nil error means the address is not a contract (empty
// evidence, not an error); a returned error means collection failed and the
// side degrades to absent.
type OnChainCollector interface {
	Collect(ctx context.Context, address string) (*OnChainEvidence, error)
}

// OffChainCollector fetches news, sentiment, and team facts.
type OffChainCollector interface {
	Collect(ctx context.Context, name, address string) (*OffChainEvidence, error)
}

// InsightGenerator produces the optional AI insight. Failure only lowers
// confidence, never the score.
type InsightGenerator interface {
	Generate(ctx context.Context, on *OnChainEvidence, off *OffChainEvidence) (*Insight, error)
}

// Orchestrator runs audits: concurrent evidence collection with partial
// failure tolerance, then the synchronous scoring pipeline. Each audit
// operates on its own evidence snapshot; orchestrators are safe for
// concurrent use.
type Orchestrator struct {
	onChain  OnChainCollector
	offChain OffChainCollector
	insight  InsightGenerator
	timeout  time.Duration
}

type Option func(*Orchestrator)

// WithInsight enables the AI insight collaborator.
func WithInsight(g InsightGenerator) Option {
	return func(o *Orchestrator) { o.insight = g }
}

// WithTimeout overrides the evidence-collection timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.timeout = d
		}
	}
}

func NewOrchestrator(on OnChainCollector, off OffChainCollector, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		onChain:  on,
		offChain: off,
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// AuditProject parses the raw target and runs the audit. Malformed
// address-shaped input is rejected here, before any collector is invoked.
func (o *Orchestrator) AuditProject(ctx context.Context, raw string) (*TrustScore, error) {
	id, err := ParseIdentifier(raw)
	if err != nil {
		return nil, err
	}
	return o.Audit(ctx, id)
}

// Audit produces the TrustScore for one project. It fails only on
// insufficient evidence: a single failed or timed-out source degrades to
// absent evidence and the audit proceeds on the other side.
func (o *Orchestrator) Audit(ctx context.Context, id *ProjectIdentifier) (*TrustScore, error) {
	if id == nil {
		return nil, fmt.Errorf("%w: nil identifier", ErrInvalidIdentifier)
	}

	state := StateStarted
	slog.Debug("audit", "project", id.String(), "state", state)

	cctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	state = StateCollecting
	onEv, offEv, sources := o.collect(cctx, id)

	if onEv == nil && offEv == nil {
		state = StateFailed
		slog.Debug("audit", "project", id.String(), "state", state)
		return nil, fmt.Errorf("audit failed for %s: %w", id.String(), ErrInsufficientEvidence)
	}

	var ins *Insight
	if o.insight != nil {
		var err error
		ins, err = o.insight.Generate(cctx, onEv, offEv)
		sources.Insight.Attempted = true
		if err != nil {
			slog.Warn("insight degraded", "project", id.String(), "error", err)
			sources.Insight.Error = err.Error()
			ins = nil
		} else {
			sources.Insight.Collected = ins != nil
		}
	}

	state = StateNormalizing
	slog.Debug("audit", "project", id.String(), "state", state)
	onSub := NormalizeOnChain(onEv)
	offSub := NormalizeOffChain(offEv)

	state = StateScoring
	slog.Debug("audit", "project", id.String(), "state", state)

	overall, err := Combine(onSub, offSub)
	if err != nil {
		return nil, fmt.Errorf("audit failed for %s: %w", id.String(), err)
	}

	confidence := EstimateConfidence(onEv, offEv, onSub, offSub, ins != nil)
	positive, risk := ExtractFactors(onSub, offSub)

	score := &TrustScore{
		Project:         id.Name,
		Address:         id.Address,
		OverallScore:    overall,
		OnChainScore:    subValue(onSub),
		OffChainScore:   subValue(offSub),
		ConfidenceLevel: confidence,
		PositiveFactors: Labels(positive),
		RiskFactors:     Labels(risk),
		Recommendation:  RecommendationFor(overall),
		Insight:         ins,
		Sources:         sources,
		Timestamp:       time.Now().UTC(),
	}

	state = StateComplete
	slog.Debug("audit", "project", id.String(), "state", state, "score", overall)
	return score, nil
}

// collect fans out to both collectors and waits for both to settle. Errors
// are absorbed into the source report: one slow or failed source must not
// abort the other.
func (o *Orchestrator) collect(ctx context.Context, id *ProjectIdentifier) (*OnChainEvidence, *OffChainEvidence, SourceReport) {
	var (
		onEv   *OnChainEvidence
		offEv  *OffChainEvidence
		onErr  error
		offErr error
	)

	g, gctx := errgroup.WithContext(ctx)

	if id.IsAddress() {
		g.Go(func() error {
			onEv, onErr = o.onChain.Collect(gctx, id.Address)
			return nil
		})
	}
	g.Go(func() error {
		offEv, offErr = o.offChain.Collect(gctx, id.Name, id.Address)
		return nil
	})
	g.Wait() //nolint:errcheck // collector errors are captured per side

	sources := SourceReport{
		OnChain:  SourceStatus{Attempted: id.IsAddress(), Collected: onEv != nil},
		OffChain: SourceStatus{Attempted: true, Collected: offEv != nil},
	}

	if onErr != nil {
		slog.Warn("on-chain evidence degraded", "project", id.String(), "error", onErr)
		sources.OnChain.Error = onErr.Error()
		onEv = nil
		sources.OnChain.Collected = false
	}
	if offErr != nil {
		slog.Warn("off-chain evidence degraded", "project", id.String(), "error", offErr)
		sources.OffChain.Error = offErr.Error()
		offEv = nil
		sources.OffChain.Collected = false
	}

	return onEv, offEv, sources
}

func subValue(s *SubScore) *int {
	if s == nil {
		return nil
	}
	v := s.Value
	return &v
}
