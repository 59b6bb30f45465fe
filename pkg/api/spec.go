package api

import (
	"context"
	_ "embed"
	"fmt"
	"net/url"
	"path"
	"sort"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

// specFile is the name the embedded document is loaded under.
const specFile = "openapi.json"

//go:embed openapi.json
var rawSpec []byte

// Operation is a single method and path pair from the embedded document.
type Operation struct {
	Method      string
	Path        string
	OperationID string
	Summary     string
}

// decodeSpecCached returns a loader yielding a private copy of the embedded document.
func decodeSpecCached() func() ([]byte, error) {
	data := append([]byte(nil), rawSpec...)
	return func() ([]byte, error) {
		return data, nil
	}
}

// PathToRawSpec constructs a synthetic filesystem for resolving external
// references when loading the document.
func PathToRawSpec(pathToFile string) map[string]func() ([]byte, error) {
	res := make(map[string]func() ([]byte, error))
	if len(pathToFile) > 0 {
		res[pathToFile] = decodeSpecCached()
	}
	return res
}

var (
	swaggerOnce sync.Once
	swaggerDoc  *openapi3.T
	swaggerErr  error
)

// GetSwagger returns the parsed and validated OpenAPI document describing
// the endpoints this package binds.
func GetSwagger() (*openapi3.T, error) {
	swaggerOnce.Do(func() {
		resolvePath := PathToRawSpec(specFile)
		loader := openapi3.NewLoader()
		loader.ReadFromURIFunc = func(_ *openapi3.Loader, u *url.URL) ([]byte, error) {
			getSpec, ok := resolvePath[path.Clean(u.String())]
			if !ok {
				return nil, fmt.Errorf("path not found: %s", u)
			}
			return getSpec()
		}
		doc, err := loader.LoadFromURI(&url.URL{Path: specFile})
		if err != nil {
			swaggerErr = fmt.Errorf("error loading Swagger: %w", err)
			return
		}
		if err := doc.Validate(context.Background()); err != nil {
			swaggerErr = fmt.Errorf("invalid Swagger: %w", err)
			return
		}
		swaggerDoc = doc
	})
	return swaggerDoc, swaggerErr
}

// Operations lists every operation in the embedded document ordered by path
// and then method.
func Operations() ([]Operation, error) {
	doc, err := GetSwagger()
	if err != nil {
		return nil, err
	}

	var ops []Operation
	for path, item := range doc.Paths.Map() {
		for method, op := range item.Operations() {
			ops = append(ops, Operation{
				Method:      method,
				Path:        path,
				OperationID: op.OperationID,
				Summary:     op.Summary,
			})
		}
	}

	sort.Slice(ops, func(i, j int) bool {
		if ops[i].Path != ops[j].Path {
			return ops[i].Path < ops[j].Path
		}
		return ops[i].Method < ops[j].Method
	})
	return ops, nil
}
