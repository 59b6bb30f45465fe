package client

import "strconv"

// VenueID identifies a venue at the backend. It is opaque to the client and
// only ever placed in a URL path segment.
type VenueID string

// VenueIDFromInt builds a VenueID from a numeric primary key.
func VenueIDFromInt(n int64) VenueID {
	return VenueID(strconv.FormatInt(n, 10))
}

func (id VenueID) String() string {
	return string(id)
}

// DeleteResult describes a settled delete request.
type DeleteResult struct {
	VenueID    VenueID
	StatusCode int
	Status     string

	// BodyErr is set when the response body could not be read after the
	// status arrived. The delete still counts as settled.
	BodyErr error
}

// OK reports whether the backend answered with a 2xx status.
func (r *DeleteResult) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ListingPage is the venue listing as loaded after navigation.
type ListingPage struct {
	URL        string
	StatusCode int
	Body       []byte
}
