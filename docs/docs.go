// Package docs holds the Swagger spec served at /docs. Regenerate with
// `swag init -g cmd/api/main.go` after changing handler annotations.
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
        "/": {
            "get": {
                "description": "Returns API name, version, status and the available pages.",
                "produces": ["application/json"],
                "tags": ["meta"],
                "summary": "API root info",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Returns basic health status and timestamp.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/health/backend": {
            "get": {
                "description": "Requests the season list from the statistics backend.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Backend health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/health/cache": {
            "get": {
                "description": "Returns rendered chart cache statistics (keys, hits, misses).",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Cache health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/v1/years": {
            "get": {
                "description": "Returns the seasons available in the statistics backend, in backend order.",
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List seasons",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.YearsResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/api/v1/teams": {
            "get": {
                "description": "Returns every team known to the statistics backend.",
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List teams",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.TeamsResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/api/v1/views/home": {
            "get": {
                "description": "Loads matches per season and the team-wins pivot concurrently. Each dataset carries its own error; the response is always 200.",
                "produces": ["application/json"],
                "tags": ["views"],
                "summary": "Home page",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dashboard.HomeSnapshot"}},
                    "304": {"description": "Not modified"}
                }
            }
        },
        "/api/v1/views/{view}": {
            "get": {
                "description": "Loads the season list, selects the requested season (or the page default) and returns the shaped dataset. Backend failures are reported inside the snapshot with a 200.",
                "produces": ["application/json"],
                "tags": ["views"],
                "summary": "Season page",
                "parameters": [
                    {"enum": ["bowlers", "extra-runs", "team-stats"], "type": "string", "description": "Page", "name": "view", "in": "path", "required": true},
                    {"type": "string", "description": "Season (defaults to first season for bowlers, latest otherwise)", "name": "year", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dashboard.Snapshot"}},
                    "304": {"description": "Not modified"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/api/v1/charts/{chart}.{format}": {
            "get": {
                "description": "Renders the chart of a page for a season. Images are cached per dataset content, so a changed dataset is always redrawn.",
                "produces": ["image/png", "image/svg+xml", "application/pdf"],
                "tags": ["charts"],
                "summary": "Rendered chart",
                "parameters": [
                    {"enum": ["matches-per-year", "team-wins", "bowlers", "extra-runs", "team-stats"], "type": "string", "description": "Chart", "name": "chart", "in": "path", "required": true},
                    {"enum": ["png", "svg", "pdf"], "type": "string", "description": "Image format", "name": "format", "in": "path", "required": true},
                    {"type": "string", "description": "Season (season pages only)", "name": "year", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "304": {"description": "Not modified"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dashboard.Snapshot": {
            "type": "object",
            "properties": {
                "view": {"type": "string"},
                "state": {"type": "string", "enum": ["idle", "loading_periods", "periods_loaded", "periods_error", "loading_dataset", "dataset_loaded", "dataset_error"]},
                "loading": {"type": "boolean"},
                "periods": {"type": "array", "items": {"type": "string"}},
                "selected": {"type": "string"},
                "data": {"type": "object"},
                "error": {"type": "string"}
            }
        },
        "dashboard.HomeSnapshot": {
            "type": "object",
            "properties": {
                "view": {"type": "string"},
                "matches": {"$ref": "#/definitions/dashboard.Slot"},
                "team_wins": {"$ref": "#/definitions/dashboard.Slot"}
            }
        },
        "dashboard.Slot": {
            "type": "object",
            "properties": {
                "loading": {"type": "boolean"},
                "data": {"type": "object"},
                "error": {"type": "string"}
            }
        },
        "handler.YearsResponse": {
            "type": "object",
            "properties": {
                "years": {"type": "array", "items": {"type": "string"}},
                "count": {"type": "integer"}
            }
        },
        "handler.TeamsResponse": {
            "type": "object",
            "properties": {
                "teams": {"type": "array", "items": {"type": "string"}},
                "count": {"type": "integer"}
            }
        },
        "respond.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"},
                        "detail": {"type": "string"}
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "IPL Dashboard API",
	Description:      "View models and rendered charts for the IPL statistics dashboard.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
