// Package static embeds the API documentation served under /docs.
package static

import _ "embed"

//go:embed openapi.json
var OpenAPISpec []byte

//go:embed openapi.html
var OpenAPIUI []byte
