package leadapi

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed contract.yaml
var contractYAML []byte

// Operation IDs the clients resolve against the contract.
const (
	opSearchAddresses = "searchAddresses"
	opGetParcel       = "getParcel"
	opCreateEstimate  = "createEstimate"
	opCreateLead      = "createLead"
)

// endpoint is one resolved route: HTTP method plus path template.
type endpoint struct {
	method string
	path   string
}

// loadEndpoints parses and validates the embedded OpenAPI contract and maps
// every operation ID to its route. A client construction fails rather than
// run against a contract it cannot resolve.
func loadEndpoints(ctx context.Context) (map[string]endpoint, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(contractYAML)
	if err != nil {
		return nil, fmt.Errorf("leadapi: parse contract: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("leadapi: validate contract: %w", err)
	}

	endpoints := make(map[string]endpoint)
	for path, item := range doc.Paths.Map() {
		for method, op := range item.Operations() {
			if op == nil || op.OperationID == "" {
				continue
			}
			if _, exists := endpoints[op.OperationID]; exists {
				return nil, fmt.Errorf("leadapi: duplicate operation id %q", op.OperationID)
			}
			endpoints[op.OperationID] = endpoint{method: method, path: path}
		}
	}

	for _, required := range []string{opSearchAddresses, opGetParcel, opCreateEstimate, opCreateLead} {
		if _, ok := endpoints[required]; !ok {
			return nil, fmt.Errorf("leadapi: contract missing operation %q", required)
		}
	}
	return endpoints, nil
}
