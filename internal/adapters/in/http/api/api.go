// Package api embeds the OpenAPI document describing the order HTTP API.
package api

import (
	_ "embed"
)

//go:embed openapi.yaml
var OpenAPI []byte
