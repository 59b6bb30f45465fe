package venue

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fyyur/venues-client/pkg/client"
)

// Navigator moves the user's view to a location once an action completes.
type Navigator interface {
	Navigate(ctx context.Context, path string) error
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, path string) error

func (f NavigatorFunc) Navigate(ctx context.Context, path string) error {
	return f(ctx, path)
}

// Resolver turns a site path into an absolute URL. *client.Client implements it.
type Resolver interface {
	ResolveURL(path string) string
}

// WriterNavigator prints the absolute location to W, one per line.
type WriterNavigator struct {
	W        io.Writer
	Resolver Resolver
}

func (n *WriterNavigator) Navigate(_ context.Context, path string) error {
	location := path
	if n.Resolver != nil {
		location = n.Resolver.ResolveURL(path)
	}
	_, err := fmt.Fprintf(n.W, "Location: %s\n", location)
	return err
}

// ListingFetcher loads the venue listing. *client.Client implements it.
type ListingFetcher interface {
	FetchListing(ctx context.Context) (*client.ListingPage, error)
}

// FollowNavigator loads the listing page the way a browser would after a
// redirect, and hands the page to OnPage.
type FollowNavigator struct {
	Fetcher ListingFetcher
	OnPage  func(*client.ListingPage)
}

func (n *FollowNavigator) Navigate(ctx context.Context, path string) error {
	if path != ListingPath {
		return fmt.Errorf("cannot follow %s: only the venue listing is supported", path)
	}
	page, err := n.Fetcher.FetchListing(ctx)
	if err != nil {
		return fmt.Errorf("load venue listing: %w", err)
	}
	if n.OnPage != nil {
		n.OnPage(page)
	}
	return nil
}

// RecordingNavigator remembers every location it was sent to.
type RecordingNavigator struct {
	mu        sync.Mutex
	locations []string
}

func (n *RecordingNavigator) Navigate(_ context.Context, path string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.locations = append(n.locations, path)
	return nil
}

// Locations returns a copy of the recorded locations in order.
func (n *RecordingNavigator) Locations() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.locations...)
}
