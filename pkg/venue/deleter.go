// Package venue implements the "delete venue" action: send the delete to
// the backend, then move on to the venue listing.
package venue

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/fyyur/venues-client/pkg/api"
	"github.com/fyyur/venues-client/pkg/client"
)

// ListingPath is where a settled delete navigates to.
const ListingPath = api.VenuesPath

// DeleteFailedMessage is logged when a delete request never settles.
const DeleteFailedMessage = "error to delete the venue"

// Remover sends the delete request. *client.Client implements it. A nil
// result with a nil error still counts as settled.
type Remover interface {
	DeleteVenue(ctx context.Context, id client.VenueID) (*client.DeleteResult, error)
}

// RemoverFunc adapts a function to Remover.
type RemoverFunc func(ctx context.Context, id client.VenueID) (*client.DeleteResult, error)

func (f RemoverFunc) DeleteVenue(ctx context.Context, id client.VenueID) (*client.DeleteResult, error) {
	return f(ctx, id)
}

// Deleter runs venue deletions. It holds no per-call state and is safe for
// concurrent use.
type Deleter struct {
	remover Remover
	nav     Navigator
	logger  *slog.Logger
}

// NewDeleter wires a Deleter. A nil logger falls back to slog.Default().
func NewDeleter(remover Remover, nav Navigator, logger *slog.Logger) *Deleter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Deleter{
		remover: remover,
		nav:     nav,
		logger:  logger,
	}
}

// Delete sends the delete for id in the background and returns at once.
//
// Once the request settles exactly one of two things happens. If the backend
// answered, whatever the status, the navigator is sent to ListingPath. If
// the request failed before an answer arrived, DeleteFailedMessage is logged
// at error level with the cause and nothing else happens. Errors are never
// returned to the caller.
func (d *Deleter) Delete(ctx context.Context, id client.VenueID) *Pending {
	p := &Pending{done: make(chan struct{})}

	go func() {
		defer close(p.done)

		result, err := d.remover.DeleteVenue(ctx, id)
		if err != nil {
			d.logger.ErrorContext(ctx, DeleteFailedMessage,
				slog.String("venue_id", id.String()),
				slog.Any("error", err),
			)
			return
		}

		attrs := []any{slog.String("venue_id", id.String())}
		if result != nil {
			attrs = append(attrs, slog.Int("status", result.StatusCode))
			if result.BodyErr != nil {
				attrs = append(attrs, slog.Any("body_error", result.BodyErr))
			}
		}
		d.logger.DebugContext(ctx, "venue delete settled", attrs...)

		if err := d.nav.Navigate(ctx, ListingPath); err != nil {
			d.logger.WarnContext(ctx, "navigation after venue delete failed",
				slog.String("location", ListingPath),
				slog.Any("error", err),
			)
			return
		}
		p.navigated.Store(true)
	}()

	return p
}

// Pending tracks a Delete in flight. Waiting on it is optional.
type Pending struct {
	done      chan struct{}
	navigated atomic.Bool
}

// Done is closed once the delete has settled and its follow-up has run.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until Done is closed.
func (p *Pending) Wait() {
	<-p.done
}

// Navigated reports whether navigation happened. It is only meaningful
// after Done is closed.
func (p *Pending) Navigated() bool {
	return p.navigated.Load()
}
