// Package contract holds the OpenAPI description of the analysis service and
// checks outgoing requests and incoming responses against it.
package contract

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-nutriform/pkg/model"
)

// OperationID is the operation the client calls.
const OperationID = "analyzeNutrition"

//go:embed analyze.yaml
var embeddedSpec []byte

// Spec returns a copy of the embedded OpenAPI document.
func Spec() []byte {
	out := make([]byte, len(embeddedSpec))
	copy(out, embeddedSpec)
	return out
}

// Direction tells which side of the exchange broke the contract.
type Direction string

const (
	DirectionRequest  Direction = "request"
	DirectionResponse Direction = "response"
)

// ViolationError reports a payload that does not match its schema.
type ViolationError struct {
	Direction Direction
	Err       error
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("contract: %s violates schema: %v", e.Direction, e.Err)
}

func (e *ViolationError) Unwrap() error { return e.Err }

// ErrOperationNotFound is returned when a document lacks OperationID.
var ErrOperationNotFound = errors.New("contract: operation not found")

// Contract is a loaded and validated OpenAPI document narrowed to the
// analyze operation.
type Contract struct {
	doc      *openapi3.T
	method   string
	path     string
	request  *openapi3.Schema
	response *openapi3.Schema
	failure  *openapi3.Schema
}

var (
	defaultOnce     sync.Once
	defaultContract *Contract
	defaultErr      error
)

// Default loads the embedded document once.
func Default() (*Contract, error) {
	defaultOnce.Do(func() {
		defaultContract, defaultErr = Load(context.Background(), embeddedSpec)
	})
	return defaultContract, defaultErr
}

// Load parses data as an OpenAPI 3 document (JSON or YAML), validates it and
// locates the analyze operation.
func Load(ctx context.Context, data []byte) (*Contract, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New("contract: document payload is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("contract: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("contract: validate document: %w", err)
	}

	c := &Contract{doc: doc}
	if err := c.locate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Contract) locate() error {
	if c.doc.Paths == nil {
		return ErrOperationNotFound
	}
	for path, item := range c.doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil || op.OperationID != OperationID {
				continue
			}
			c.method = strings.ToUpper(method)
			c.path = path
			c.request = requestSchema(op.RequestBody)
			if op.Responses != nil {
				responses := op.Responses.Map()
				c.response = jsonSchema(responses["200"])
				c.failure = jsonSchema(responses["default"])
			}
			if c.request == nil || c.response == nil {
				return fmt.Errorf("contract: operation %s lacks request or 200 response schema", OperationID)
			}
			return nil
		}
	}
	return ErrOperationNotFound
}

// Method is the HTTP method of the analyze operation.
func (c *Contract) Method() string { return c.method }

// Path is the URL path of the analyze operation.
func (c *Contract) Path() string { return c.path }

// Title is the document title.
func (c *Contract) Title() string {
	if c.doc.Info == nil {
		return ""
	}
	return c.doc.Info.Title
}

// ValidateRequest checks the JSON form of req against the request schema.
func (c *Contract) ValidateRequest(req model.AnalysisRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("contract: encode request: %w", err)
	}
	return visit(DirectionRequest, c.request, payload)
}

// ValidateResponse checks a response body. Success bodies are checked
// against the result schema, anything else against the error schema.
func (c *Contract) ValidateResponse(status int, body []byte) error {
	schema := c.response
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		schema = c.failure
	}
	if schema == nil {
		return nil
	}
	return visit(DirectionResponse, schema, body)
}

func visit(direction Direction, schema *openapi3.Schema, payload []byte) error {
	var decoded any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return &ViolationError{Direction: direction, Err: err}
	}
	if err := schema.VisitJSON(decoded); err != nil {
		return &ViolationError{Direction: direction, Err: err}
	}
	return nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	return contentSchema(body.Value.Content)
}

func jsonSchema(ref *openapi3.ResponseRef) *openapi3.Schema {
	if ref == nil || ref.Value == nil {
		return nil
	}
	return contentSchema(ref.Value.Content)
}

func contentSchema(content openapi3.Content) *openapi3.Schema {
	mt, ok := content["application/json"]
	if !ok || mt == nil || mt.Schema == nil {
		return nil
	}
	return mt.Schema.Value
}
