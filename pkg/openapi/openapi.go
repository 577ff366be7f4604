// Package openapi describes the registry's HTTP surface as an OpenAPI 3.1
// document rendered to JSON or YAML.
package openapi

import (
	"encoding/json"
	"fmt"

	yaml "gopkg.in/yaml.v3"

	"github.com/vyvo/airports/backend/pkg/airports"
)

// Document is the root of an OpenAPI 3.1 description.
type Document struct {
	OpenAPI    string              `json:"openapi" yaml:"openapi"`
	Info       Info                `json:"info" yaml:"info"`
	Tags       []Tag               `json:"tags" yaml:"tags"`
	Paths      map[string]PathItem `json:"paths" yaml:"paths"`
	Components Components          `json:"components" yaml:"components"`
}

// Info carries the API title, description and version.
type Info struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Version     string `json:"version" yaml:"version"`
}

// Tag groups operations in rendered documentation.
type Tag struct {
	Name         string        `json:"name" yaml:"name"`
	Description  string        `json:"description" yaml:"description"`
	ExternalDocs *ExternalDocs `json:"externalDocs,omitempty" yaml:"externalDocs,omitempty"`
}

// ExternalDocs links additional documentation for a tag.
type ExternalDocs struct {
	Description string `json:"description" yaml:"description"`
	URL         string `json:"url" yaml:"url"`
}

// PathItem maps lower-case HTTP methods to operations.
type PathItem map[string]*Operation

// Operation describes a single method on a path.
type Operation struct {
	Tags        []string            `json:"tags" yaml:"tags"`
	Summary     string              `json:"summary" yaml:"summary"`
	OperationID string              `json:"operationId" yaml:"operationId"`
	Parameters  []Parameter         `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *RequestBody        `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses" yaml:"responses"`
}

// Parameter is a query or path parameter.
type Parameter struct {
	Name     string  `json:"name" yaml:"name"`
	In       string  `json:"in" yaml:"in"`
	Required bool    `json:"required" yaml:"required"`
	Schema   *Schema `json:"schema" yaml:"schema"`
}

type RequestBody struct {
	Required bool                 `json:"required" yaml:"required"`
	Content  map[string]MediaType `json:"content" yaml:"content"`
}

type Response struct {
	Description string               `json:"description" yaml:"description"`
	Content     map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

type MediaType struct {
	Schema *Schema `json:"schema" yaml:"schema"`
}

// Components holds the named schemas referenced by $ref.
type Components struct {
	Schemas map[string]*Schema `json:"schemas" yaml:"schemas"`
}

// Schema is the JSON Schema subset the registry document needs. Nullable
// fields are expressed with AnyOf and a "null" type.
type Schema struct {
	Ref        string             `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Type       string             `json:"type,omitempty" yaml:"type,omitempty"`
	Title      string             `json:"title,omitempty" yaml:"title,omitempty"`
	MinLength  *int               `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength  *int               `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Minimum    *int               `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	AnyOf      []*Schema          `json:"anyOf,omitempty" yaml:"anyOf,omitempty"`
	Properties map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required   []string           `json:"required,omitempty" yaml:"required,omitempty"`
	Items      *Schema            `json:"items,omitempty" yaml:"items,omitempty"`
}

const (
	tagAirports = "Airports"
	docsURL     = "https://github.com/njmlopez17/Python_VBCode_PyTest/blob/99f193d74e9729fb4b5fc8d38c81c3592de453c1/Test%20Automation%20End-to-End%20documentation.pdf"
)

func intPtr(n int) *int { return &n }

func ref(name string) *Schema {
	return &Schema{Ref: "#/components/schemas/" + name}
}

func bounded(title string, minLen, maxLen int) *Schema {
	return &Schema{Type: "string", Title: title, MinLength: intPtr(minLen), MaxLength: intPtr(maxLen)}
}

func jsonBody(schema *Schema) map[string]MediaType {
	return map[string]MediaType{"application/json": {Schema: schema}}
}

func messageResponses(extra map[string]Response) map[string]Response {
	responses := map[string]Response{
		"200": {Description: "Successful Response", Content: jsonBody(ref("Message"))},
	}
	for code, resp := range extra {
		responses[code] = resp
	}
	return responses
}

var (
	validationResponse = Response{Description: "Validation Error", Content: jsonBody(ref("HTTPValidationError"))}
	notFoundResponse   = Response{Description: "Airport not found", Content: jsonBody(ref("HTTPError"))}
)

// Spec returns the document for the registry routes.
func Spec() *Document {
	airportBody := &RequestBody{Required: true, Content: jsonBody(ref("Airport"))}

	return &Document{
		OpenAPI: "3.1.0",
		Info: Info{
			Title:       "Airports",
			Description: "This is a sampling APIs for Airport.",
			Version:     "0.1.0",
		},
		Tags: []Tag{{
			Name:        tagAirports,
			Description: "Airport list. Link on the documentation on the right.",
			ExternalDocs: &ExternalDocs{
				Description: "Sampling Test automation documentation",
				URL:         docsURL,
			},
		}},
		Paths: map[string]PathItem{
			"/airports": {
				"get": {
					Tags:        []string{tagAirports},
					Summary:     "List airports",
					OperationID: "list_airports",
					Parameters: []Parameter{{
						Name:   "limit",
						In:     "query",
						Schema: &Schema{Type: "integer", Title: "Limit", Minimum: intPtr(0)},
					}},
					Responses: map[string]Response{
						"200": {Description: "Successful Response", Content: jsonBody(&Schema{Type: "array", Items: ref("Airport")})},
						"422": validationResponse,
					},
				},
				"post": {
					Tags:        []string{tagAirports},
					Summary:     "Create airport",
					OperationID: "create_airport",
					RequestBody: airportBody,
					Responses: messageResponses(map[string]Response{
						"302": {Description: "Airport already exists", Content: jsonBody(ref("HTTPError"))},
						"422": validationResponse,
					}),
				},
				"put": {
					Tags:        []string{tagAirports},
					Summary:     "Create or replace airport",
					OperationID: "update_airport",
					RequestBody: airportBody,
					Responses:   messageResponses(map[string]Response{"422": validationResponse}),
				},
				"patch": {
					Tags:        []string{tagAirports},
					Summary:     "Update supplied airport fields",
					OperationID: "update_airport_partial",
					RequestBody: &RequestBody{Required: true, Content: jsonBody(ref("AirportPatch"))},
					Responses: messageResponses(map[string]Response{
						"404": notFoundResponse,
						"422": validationResponse,
					}),
				},
			},
			"/airports/{airport_id}": {
				"delete": {
					Tags:        []string{tagAirports},
					Summary:     "Delete airport",
					OperationID: "delete_airport",
					Parameters: []Parameter{{
						Name:     "airport_id",
						In:       "path",
						Required: true,
						Schema:   &Schema{Type: "string", Title: "Airport Id"},
					}},
					Responses: messageResponses(map[string]Response{"404": notFoundResponse}),
				},
			},
		},
		Components: Components{Schemas: schemas()},
	}
}

func schemas() map[string]*Schema {
	countryState := &Schema{
		Title: "Country State",
		AnyOf: []*Schema{{Type: "string"}, {Type: "null"}},
	}
	return map[string]*Schema{
		"Airport": {
			Type:  "object",
			Title: "Airport",
			Properties: map[string]*Schema{
				"airport_id":    bounded("Airport Id", airports.MinIDLength, airports.MaxIDLength),
				"airport_name":  bounded("Airport Name", airports.MinNameLength, airports.MaxNameLength),
				"city":          bounded("City", airports.MinCityLength, airports.MaxCityLength),
				"country_state": countryState,
			},
			Required: []string{"airport_id", "airport_name", "city"},
		},
		"AirportPatch": {
			Type:  "object",
			Title: "AirportPatch",
			Properties: map[string]*Schema{
				"airport_id":    bounded("Airport Id", airports.MinIDLength, airports.MaxIDLength),
				"airport_name":  bounded("Airport Name", airports.MinNameLength, airports.MaxNameLength),
				"city":          bounded("City", airports.MinCityLength, airports.MaxCityLength),
				"country_state": countryState,
			},
			Required: []string{"airport_id"},
		},
		"Message": {
			Type:       "object",
			Title:      "Message",
			Properties: map[string]*Schema{"message": {Type: "string"}},
			Required:   []string{"message"},
		},
		"HTTPError": {
			Type:       "object",
			Title:      "HTTPError",
			Properties: map[string]*Schema{"detail": {Type: "string"}},
			Required:   []string{"detail"},
		},
		"ValidationError": {
			Type:  "object",
			Title: "ValidationError",
			Properties: map[string]*Schema{
				"type":  {Type: "string"},
				"loc":   {Type: "array", Items: &Schema{}},
				"msg":   {Type: "string"},
				"input": {},
				"ctx":   {Type: "object"},
			},
			Required: []string{"type", "loc", "msg"},
		},
		"HTTPValidationError": {
			Type:       "object",
			Title:      "HTTPValidationError",
			Properties: map[string]*Schema{"detail": {Type: "array", Items: ref("ValidationError")}},
		},
	}
}

// JSON renders the document as indented JSON.
func (d *Document) JSON() ([]byte, error) {
	payload, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal openapi json: %w", err)
	}
	return payload, nil
}

// YAML renders the document as YAML.
func (d *Document) YAML() ([]byte, error) {
	payload, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal openapi yaml: %w", err)
	}
	return payload, nil
}
