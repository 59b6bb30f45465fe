// Package client provides a high-level wrapper around the Fyyur venue
// endpoints.
//
// This package wraps the request bindings in pkg/api with an interface that
// handles:
//   - Typed errors distinguishing transport failures from HTTP answers
//   - Optional strict status checking
//   - Optional retry with exponential backoff for 5xx and 429 answers
//   - Context-aware operations
//
// # Basic Usage
//
//	c, err := client.New("http://localhost:5000",
//	    client.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := c.DeleteVenue(ctx, client.VenueIDFromInt(42))
//	if err != nil {
//	    // The request never reached the backend.
//	    log.Fatal(err)
//	}
//	fmt.Println("backend answered", result.Status)
//
// # Status Handling
//
// By default a delete succeeds whenever the backend answers, whatever the
// status code. Callers that need to tell a 404 or 500 apart from success
// opt in to strict mode:
//
//	c, _ := client.New(baseURL, client.WithStrictStatus(), client.WithMaxRetries(2))
//
//	_, err := c.DeleteVenue(ctx, "42")
//	switch {
//	case client.IsNotFound(err):
//	    // Already gone
//	case client.IsServiceError(err):
//	    // Backend failed after retries
//	case client.IsTransportError(err):
//	    // Network failure
//	}
package client
