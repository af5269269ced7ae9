// Package docs registers the swagger spec for `fsl serve`'s introspection
// API, in the shape swaggo/swag's code generator produces from the @-tag
// annotations on internal/server's handlers. It is imported for its side
// effect (swag.Register) by internal/server, which then serves the UI
// through swaggo/http-swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/healthz": {
            "get": {
                "tags": ["ops"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/schema": {
            "get": {
                "tags": ["schema"],
                "summary": "Re-parse and inspect the configured schema directory",
                "parameters": [
                    {
                        "type": "string",
                        "description": "list|canonical|link|merge-roles",
                        "name": "op",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "500": {"description": "schema load or operation failed"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported swagger metadata, in the shape the swag CLI
// generates for httpSwagger.Handler to read at /swagger/doc.json.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "fsl introspection API",
	Description:      "Local development introspection server for the fsl schema toolchain.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
