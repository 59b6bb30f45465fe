// Package api provides primitives to interact with the Fyyur venue endpoints.
//
// The layout follows oapi-codegen's client output: request builders,
// a raw Client, and a ClientWithResponses that parses each response into a
// typed wrapper.
package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/oapi-codegen/runtime"
)

const (
	// VenuesPath is the venue listing page.
	VenuesPath = "/venues"
)

// HttpRequestDoer performs HTTP requests.
//
// The standard http.Client implements this interface.
//
//nolint:revive // name kept for parity with generated clients
type HttpRequestDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RequestEditorFn is the function signature for the RequestEditor callback function.
type RequestEditorFn func(ctx context.Context, req *http.Request) error

// Client which conforms to the OpenAPI3 specification for this service.
type Client struct {
	// The endpoint of the server conforming to this interface, with scheme,
	// https://api.deepmap.com for example. This can contain a path relative
	// to the server, such as https://api.deepmap.com/dev-test, and all the
	// paths in the OpenAPI document will be appended to the server.
	Server string

	// Doer for performing requests, typically a *http.Client with any
	// customized settings, such as certificate chains.
	Client HttpRequestDoer

	// A list of callbacks for modifying requests which are generated before sending over
	// the network.
	RequestEditors []RequestEditorFn
}

// ClientOption allows setting custom parameters during construction.
type ClientOption func(*Client) error

// NewClient creates a new Client, with reasonable defaults.
func NewClient(server string, opts ...ClientOption) (*Client, error) {
	client := Client{
		Server: server,
	}
	for _, o := range opts {
		if err := o(&client); err != nil {
			return nil, err
		}
	}
	// ensure the server URL always has a trailing slash
	if !strings.HasSuffix(client.Server, "/") {
		client.Server += "/"
	}
	if client.Client == nil {
		client.Client = &http.Client{}
	}
	return &client, nil
}

// WithHTTPClient allows overriding the default Doer, which is
// automatically created using http.Client. This is useful for tests.
func WithHTTPClient(doer HttpRequestDoer) ClientOption {
	return func(c *Client) error {
		c.Client = doer
		return nil
	}
}

// WithRequestEditorFn allows setting up a callback function, which will be
// called right before sending the request. This can be used to mutate the request.
func WithRequestEditorFn(fn RequestEditorFn) ClientOption {
	return func(c *Client) error {
		c.RequestEditors = append(c.RequestEditors, fn)
		return nil
	}
}

// DeleteVenue issues DELETE /venues/{venue_id}.
func (c *Client) DeleteVenue(ctx context.Context, venueID string, reqEditors ...RequestEditorFn) (*http.Response, error) {
	req, err := NewDeleteVenueRequest(c.Server, venueID)
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)
	if err := c.applyEditors(ctx, req, reqEditors); err != nil {
		return nil, err
	}
	return c.Client.Do(req)
}

// GetVenues issues GET /venues.
func (c *Client) GetVenues(ctx context.Context, reqEditors ...RequestEditorFn) (*http.Response, error) {
	req, err := NewGetVenuesRequest(c.Server)
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)
	if err := c.applyEditors(ctx, req, reqEditors); err != nil {
		return nil, err
	}
	return c.Client.Do(req)
}

// NewDeleteVenueRequest generates requests for DeleteVenue.
func NewDeleteVenueRequest(server string, venueID string) (*http.Request, error) {
	pathParam0, err := runtime.StyleParamWithLocation("simple", false, "venue_id", runtime.ParamLocationPath, venueID)
	if err != nil {
		return nil, err
	}

	queryURL, err := ResolvePath(server, fmt.Sprintf("/venues/%s", pathParam0))
	if err != nil {
		return nil, err
	}

	return http.NewRequest(http.MethodDelete, queryURL.String(), nil)
}

// NewGetVenuesRequest generates requests for GetVenues.
func NewGetVenuesRequest(server string) (*http.Request, error) {
	queryURL, err := ResolvePath(server, VenuesPath)
	if err != nil {
		return nil, err
	}

	return http.NewRequest(http.MethodGet, queryURL.String(), nil)
}

// ResolvePath resolves an absolute operation path against server, keeping
// any path prefix server already carries.
func ResolvePath(server, operationPath string) (*url.URL, error) {
	serverURL, err := url.Parse(server)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(serverURL.Path, "/") {
		serverURL.Path += "/"
	}
	if strings.HasPrefix(operationPath, "/") {
		operationPath = "." + operationPath
	}
	return serverURL.Parse(operationPath)
}

func (c *Client) applyEditors(ctx context.Context, req *http.Request, additionalEditors []RequestEditorFn) error {
	for _, r := range c.RequestEditors {
		if err := r(ctx, req); err != nil {
			return err
		}
	}
	for _, r := range additionalEditors {
		if err := r(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

// ClientWithResponses builds on Client to offer response payloads.
type ClientWithResponses struct {
	ClientInterface
}

// ClientInterface is the raw request surface of Client.
type ClientInterface interface {
	DeleteVenue(ctx context.Context, venueID string, reqEditors ...RequestEditorFn) (*http.Response, error)
	GetVenues(ctx context.Context, reqEditors ...RequestEditorFn) (*http.Response, error)
}

// NewClientWithResponses creates a new ClientWithResponses, which wraps
// Client with return type handling.
func NewClientWithResponses(server string, opts ...ClientOption) (*ClientWithResponses, error) {
	client, err := NewClient(server, opts...)
	if err != nil {
		return nil, err
	}
	return &ClientWithResponses{client}, nil
}

// DeleteVenueResponse is the parsed result of DeleteVenue.
type DeleteVenueResponse struct {
	Body         []byte
	HTTPResponse *http.Response
}

// Status returns HTTPResponse.Status
func (r DeleteVenueResponse) Status() string {
	if r.HTTPResponse != nil {
		return r.HTTPResponse.Status
	}
	return http.StatusText(0)
}

// StatusCode returns HTTPResponse.StatusCode
func (r DeleteVenueResponse) StatusCode() int {
	if r.HTTPResponse != nil {
		return r.HTTPResponse.StatusCode
	}
	return 0
}

// GetVenuesResponse is the parsed result of GetVenues.
type GetVenuesResponse struct {
	Body         []byte
	HTTPResponse *http.Response
}

// Status returns HTTPResponse.Status
func (r GetVenuesResponse) Status() string {
	if r.HTTPResponse != nil {
		return r.HTTPResponse.Status
	}
	return http.StatusText(0)
}

// StatusCode returns HTTPResponse.StatusCode
func (r GetVenuesResponse) StatusCode() int {
	if r.HTTPResponse != nil {
		return r.HTTPResponse.StatusCode
	}
	return 0
}

// DeleteVenueWithResponse request returning *DeleteVenueResponse
func (c *ClientWithResponses) DeleteVenueWithResponse(ctx context.Context, venueID string, reqEditors ...RequestEditorFn) (*DeleteVenueResponse, error) {
	rsp, err := c.DeleteVenue(ctx, venueID, reqEditors...)
	if err != nil {
		return nil, err
	}
	return ParseDeleteVenueResponse(rsp)
}

// GetVenuesWithResponse request returning *GetVenuesResponse
func (c *ClientWithResponses) GetVenuesWithResponse(ctx context.Context, reqEditors ...RequestEditorFn) (*GetVenuesResponse, error) {
	rsp, err := c.GetVenues(ctx, reqEditors...)
	if err != nil {
		return nil, err
	}
	return ParseGetVenuesResponse(rsp)
}

// ParseDeleteVenueResponse parses an HTTP response from a DeleteVenueWithResponse call
func ParseDeleteVenueResponse(rsp *http.Response) (*DeleteVenueResponse, error) {
	bodyBytes, err := io.ReadAll(rsp.Body)
	defer func() { _ = rsp.Body.Close() }()
	if err != nil {
		return nil, err
	}

	return &DeleteVenueResponse{
		Body:         bodyBytes,
		HTTPResponse: rsp,
	}, nil
}

// ParseGetVenuesResponse parses an HTTP response from a GetVenuesWithResponse call
func ParseGetVenuesResponse(rsp *http.Response) (*GetVenuesResponse, error) {
	bodyBytes, err := io.ReadAll(rsp.Body)
	defer func() { _ = rsp.Body.Close() }()
	if err != nil {
		return nil, err
	}

	return &GetVenuesResponse{
		Body:         bodyBytes,
		HTTPResponse: rsp,
	}, nil
}
