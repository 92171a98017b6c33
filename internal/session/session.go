// Package session owns the import state machine. A Session is the aggregate
// root for one user-paced import: upload, mapping, review, success. It is
// exclusively owned by the flow that created it, so no locking is needed;
// the store is the only shared mutable state and its batch atomicity is the
// invariant that makes retries safe.
package session

import (
	"context"
	"io"

	"fjacquet/statement-import/internal/dedup"
	"fjacquet/statement-import/internal/importerror"
	"fjacquet/statement-import/internal/logging"
	"fjacquet/statement-import/internal/mapping"
	"fjacquet/statement-import/internal/models"
	"fjacquet/statement-import/internal/normalizer"
	"fjacquet/statement-import/internal/router"
	"fjacquet/statement-import/internal/store"

	"github.com/google/uuid"
)

// Step is the current position in the import flow.
type Step string

const (
	StepUpload  Step = "upload"
	StepMapping Step = "mapping"
	StepReview  Step = "review"
	StepSuccess Step = "success"
)

// Deps are the collaborators a session drives.
type Deps struct {
	Router      *router.Router
	Templates   mapping.TemplateStore
	Normalizer  *normalizer.Normalizer
	Store       store.TransactionStore
	Logger      logging.Logger
	DedupWindow int
}

// Session holds all state for one import. Failures never advance the step:
// the session stays where it is and the same operation can be retried.
type Session struct {
	id     string
	userID string
	step   Step

	fileName   string
	headers    []string
	rawRows    []models.RawRow
	mapping    models.ColumnMapping
	normalized []models.NormalizedRow
	existing   *dedup.Index

	skipDuplicates bool
	committed      int

	deps Deps
	log  logging.Logger
}

// New creates a session on the upload step.
func New(userID string, deps Deps) *Session {
	if deps.DedupWindow <= 0 {
		deps.DedupWindow = store.DefaultDedupWindow
	}
	id := uuid.New().String()
	return &Session{
		id:     id,
		userID: userID,
		step:   StepUpload,
		deps:   deps,
		log:    deps.Logger.WithField("session", id),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Step returns the current step.
func (s *Session) Step() Step { return s.step }

// Headers returns the header list of the uploaded file.
func (s *Session) Headers() []string { return s.headers }

// Mapping returns the current column mapping.
func (s *Session) Mapping() models.ColumnMapping { return s.mapping }

// SetMapping replaces the column mapping while on the mapping step.
func (s *Session) SetMapping(m models.ColumnMapping) error {
	if s.step != StepMapping {
		return &importerror.TransitionError{Step: string(s.step), Action: "change the column mapping"}
	}
	s.mapping = m
	return nil
}

// Rows returns the normalized rows populated on entering review.
func (s *Session) Rows() []models.NormalizedRow { return s.normalized }

// SkipDuplicates returns the current toggle value.
func (s *Session) SkipDuplicates() bool { return s.skipDuplicates }

// SetSkipDuplicates sets the toggle. It only affects which rows the commit
// includes; duplicate flags themselves are always computed.
func (s *Session) SetSkipDuplicates(skip bool) { s.skipDuplicates = skip }

// CommittedCount returns how many records the successful commit wrote.
func (s *Session) CommittedCount() int { return s.committed }

// Upload routes the selected file into a table and advances to mapping. On
// any routing failure the session stays on upload. The history snapshot for
// duplicate comparison is fetched here, exactly once per session.
func (s *Session) Upload(ctx context.Context, fileName string, file io.Reader) error {
	if s.step != StepUpload {
		return &importerror.TransitionError{Step: string(s.step), Action: "upload a file"}
	}

	result, err := s.deps.Router.Route(ctx, fileName, file)
	if err != nil {
		return err
	}

	recent, err := s.deps.Store.Recent(ctx, s.userID, s.deps.DedupWindow)
	if err != nil {
		// Import can proceed without history; rows just won't be flagged.
		s.log.WithError(err).Warn("Failed to fetch history for duplicate detection")
		recent = nil
	}
	s.existing = dedup.NewIndex(recent)

	s.fileName = fileName
	s.headers = result.Headers
	s.rawRows = result.Rows
	if result.Premapped != nil {
		s.mapping = *result.Premapped
	} else {
		s.mapping = mapping.Resolve(result.Headers, s.deps.Templates, s.log)
	}

	s.step = StepMapping
	s.log.WithField("file", fileName).WithField("rows", len(s.rawRows)).
		Info("File uploaded, awaiting mapping confirmation")
	return nil
}

// ConfirmMapping validates the mapping, persists it as a template for this
// header signature, runs normalization and duplicate flagging, and advances
// to review. An incomplete mapping blocks the step without advancing.
func (s *Session) ConfirmMapping(ctx context.Context) error {
	if s.step != StepMapping {
		return &importerror.TransitionError{Step: string(s.step), Action: "confirm the column mapping"}
	}

	if err := mapping.Validate(s.mapping, s.headers); err != nil {
		return err
	}

	if s.deps.Templates != nil {
		if err := s.deps.Templates.Put(mapping.Signature(s.headers), s.mapping); err != nil {
			// Template reuse is a convenience; its persistence never blocks
			// the import itself.
			s.log.WithError(err).Warn("Failed to save mapping template")
		}
	}

	s.normalized = s.deps.Normalizer.NormalizeRows(ctx, s.rawRows, s.mapping)
	dedup.MarkDuplicates(s.normalized, s.existing)

	s.step = StepReview
	return nil
}

// Back returns from review to mapping, discarding the normalized rows but
// keeping the parsed file and mapping.
func (s *Session) Back() error {
	if s.step != StepReview {
		return &importerror.TransitionError{Step: string(s.step), Action: "go back to mapping"}
	}
	s.normalized = nil
	s.step = StepMapping
	return nil
}

// CommitSet returns the rows the committer would write: valid rows, minus
// duplicates when skipDuplicates is on.
func (s *Session) CommitSet() []models.NormalizedRow {
	var subset []models.NormalizedRow
	for _, row := range s.normalized {
		if !row.IsValid {
			continue
		}
		if s.skipDuplicates && row.IsDuplicate {
			continue
		}
		subset = append(subset, row)
	}
	return subset
}

// Commit writes the commit set as one atomic batch and advances to success.
// An empty set fails with ErrNothingToImport; a store failure becomes a
// retryable CommitError. On any failure the session stays on review with all
// rows intact.
func (s *Session) Commit(ctx context.Context) (int, error) {
	if s.step != StepReview {
		return 0, &importerror.TransitionError{Step: string(s.step), Action: "commit the import"}
	}

	subset := s.CommitSet()
	if len(subset) == 0 {
		return 0, importerror.ErrNothingToImport
	}

	txs := make([]models.Transaction, len(subset))
	for i, row := range subset {
		txs[i] = row.Transaction()
	}

	if err := s.deps.Store.CreateMany(ctx, s.userID, txs); err != nil {
		s.log.WithError(err).Error("Batch commit failed")
		return 0, &importerror.CommitError{Err: err}
	}

	s.committed = len(txs)
	s.step = StepSuccess
	s.log.WithField("count", s.committed).Info("Import committed")
	return s.committed, nil
}

// Reset discards all session state and returns to the upload step. Valid
// from any step; this is the cancel/close action.
func (s *Session) Reset() {
	s.step = StepUpload
	s.fileName = ""
	s.headers = nil
	s.rawRows = nil
	s.mapping = models.ColumnMapping{}
	s.normalized = nil
	s.existing = nil
	s.skipDuplicates = false
	s.committed = 0
}
