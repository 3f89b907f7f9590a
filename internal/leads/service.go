package leads

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Service validates drafts, stamps them and forwards them to the sink.
type Service struct {
	sink      Sink
	validator *Validator
	log       *slog.Logger
	now       func() time.Time
	newID     func() string
}

func NewService(sink Sink, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	if sink == nil {
		sink = NewLogSink(log)
	}
	return &Service{
		sink:      sink,
		validator: NewValidator(),
		log:       log,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

func (s *Service) SinkName() string { return s.sink.Name() }

// Submit rejects an invalid draft with a *ValidationError and never calls
// the sink for it.
func (s *Service) Submit(ctx context.Context, d Draft) (Receipt, error) {
	d = d.Normalized()
	if err := s.validator.Validate(d); err != nil {
		return Receipt{}, err
	}
	lead := Lead{
		ID:          s.newID(),
		Name:        d.Name,
		Email:       d.Email,
		Phone:       d.Phone,
		Message:     d.Message,
		ListingID:   d.ListingID,
		SubmittedAt: s.now().UTC(),
	}
	if err := s.sink.Submit(ctx, lead); err != nil {
		s.log.ErrorContext(ctx, "lead sink failed", "sink", s.sink.Name(), "id", lead.ID, "err", err)
		return Receipt{}, fmt.Errorf("submit lead: %w", err)
	}
	r := Receipt{Reference: lead.ID, Sink: s.sink.Name(), At: lead.SubmittedAt}
	if lead.ListingID != nil {
		r.Listing = *lead.ListingID
	}
	return r, nil
}
