package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyyur/venues-client/pkg/client"
	"github.com/fyyur/venues-client/pkg/venue"
)

// errNotDeleted is returned after the failure has already been logged, so
// the process exits non-zero without repeating the message.
var errNotDeleted = errors.New("venue was not deleted")

// Venue command group
var venueCmd = &cobra.Command{
	Use:   "venue",
	Short: "Venue operations",
}

func init() {
	venueCmd.AddCommand(venueDeleteCmd)
	venueDeleteCmd.Flags().Bool("follow", false, "Load the venue listing after deleting")
}

// Venue delete command
var venueDeleteCmd = &cobra.Command{
	Use:   "delete <venue-id>",
	Short: "Delete a venue",
	Long: `Sends DELETE /venues/<venue-id> and, once the backend answers, moves on
to the venue listing. By default any answer counts, whatever its status;
use --strict-status to fail on non-2xx responses.

Example:
  fyyur venue delete 42
  fyyur venue delete 42 --follow --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		follow, _ := cmd.Flags().GetBool("follow")
		id := client.VenueID(args[0])

		c, err := newClient()
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		logger, err := newLogger(cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		recorder := &venue.RecordingNavigator{}
		navigators := []venue.Navigator{recorder}
		if !jsonOutput {
			navigators = append(navigators, &venue.WriterNavigator{W: out, Resolver: c})
		}

		var page *client.ListingPage
		var listingErr error
		if follow {
			follower := &venue.FollowNavigator{
				Fetcher: c,
				OnPage:  func(p *client.ListingPage) { page = p },
			}
			navigators = append(navigators, venue.NavigatorFunc(func(ctx context.Context, path string) error {
				listingErr = follower.Navigate(ctx, path)
				return listingErr
			}))
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		pending := venue.NewDeleter(c, chain(navigators), logger).Delete(ctx, id)
		pending.Wait()

		// The recorder runs first, so it alone says whether the delete
		// navigated. Loading the listing is reported on its own.
		locations := recorder.Locations()
		navigated := len(locations) > 0

		if jsonOutput {
			result := map[string]any{
				"venueId":   id,
				"navigated": navigated,
			}
			if navigated {
				result["location"] = c.ResolveURL(locations[0])
			}
			if page != nil {
				result["listingStatus"] = page.StatusCode
			}
			if listingErr != nil {
				result["listingError"] = listingErr.Error()
			}
			if err := outputJSON(out, result); err != nil {
				return err
			}
		} else if page != nil {
			fmt.Fprintf(out, "Loaded %s (status %d, %d bytes)\n", page.URL, page.StatusCode, len(page.Body))
		}

		if !navigated {
			return errNotDeleted
		}
		return listingErr
	},
}

// chain sends every navigation through each navigator in order, stopping
// at the first failure.
func chain(navs []venue.Navigator) venue.Navigator {
	return venue.NavigatorFunc(func(ctx context.Context, path string) error {
		for _, n := range navs {
			if err := n.Navigate(ctx, path); err != nil {
				return err
			}
		}
		return nil
	})
}
