// Package openapi derives form schemas from the request bodies of OpenAPI 3
// operations. Documents are parsed with kin-openapi; per-property presentation
// and conditional behaviour travel in the x-formengine extension.
package openapi
