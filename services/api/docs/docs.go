// Package docs registers the OpenAPI document served at /swagger/doc.json.
// Keep it in sync with the @Router annotations in the http package.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/ingest": {
            "get": {
                "description": "Appends one sample. Legacy path: /iot_proj/connect.php",
                "produces": ["application/json"],
                "tags": ["ingest"],
                "summary": "Ingest a water-level sample",
                "parameters": [
                    {"type": "number", "description": "Water level in centimeters", "name": "cm", "in": "query", "required": true},
                    {"type": "number", "description": "Water level in feet as reported by the sensor", "name": "ft", "in": "query", "required": true},
                    {"type": "string", "description": "Threshold label as reported by the sensor", "name": "threshold", "in": "query", "required": true},
                    {"type": "string", "description": "Sensor API key", "name": "X-API-Key", "in": "header"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/IngestResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "post": {
                "description": "Same as GET with the values in a form body",
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["ingest"],
                "summary": "Ingest a water-level sample",
                "parameters": [
                    {"type": "number", "name": "cm", "in": "formData", "required": true},
                    {"type": "number", "name": "ft", "in": "formData", "required": true},
                    {"type": "string", "name": "threshold", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/IngestResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/latest": {
            "get": {
                "description": "Most recent sample by id. Legacy path: /api/latest-water-level.php",
                "produces": ["application/json"],
                "tags": ["readings"],
                "summary": "Latest water level",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LatestResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/history": {
            "get": {
                "description": "Samples of the trailing window, oldest first. Legacy path: /api/water-level.php",
                "produces": ["application/json"],
                "tags": ["readings"],
                "summary": "Water level history",
                "parameters": [
                    {"type": "number", "default": 24, "description": "Window length in hours", "name": "hours", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/HistoryResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {"tags": ["health"], "summary": "Liveness", "responses": {"200": {"description": "OK"}}}
        },
        "/readyz": {
            "get": {"tags": ["health"], "summary": "Readiness", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        }
    },
    "definitions": {
        "Reading": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "water_level_cm": {"type": "number"},
                "water_level_meters": {"type": "number"},
                "water_level_feet": {"type": "number"},
                "water_level_display": {"type": "string", "example": "4'11\""},
                "threshold": {"type": "string", "enum": ["normal", "warning", "danger"]},
                "timestamp": {"type": "string", "format": "date-time"}
            }
        },
        "Freshness": {
            "type": "object",
            "properties": {
                "fresh": {"type": "boolean"},
                "age_seconds": {"type": "integer"},
                "max_age_seconds": {"type": "integer"}
            }
        },
        "IngestResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"$ref": "#/definitions/Reading"},
                "reported": {
                    "type": "object",
                    "properties": {"feet": {"type": "number"}, "threshold": {"type": "string"}}
                }
            }
        },
        "LatestResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"$ref": "#/definitions/Reading"},
                "freshness": {"$ref": "#/definitions/Freshness"},
                "fetched_at": {"type": "string", "format": "date-time"}
            }
        },
        "HistoryResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"type": "array", "items": {"$ref": "#/definitions/Reading"}},
                "current": {"$ref": "#/definitions/Reading"},
                "count": {"type": "integer"},
                "freshness": {"$ref": "#/definitions/Freshness"},
                "window": {
                    "type": "object",
                    "properties": {
                        "hours": {"type": "number"},
                        "from": {"type": "string", "format": "date-time"},
                        "to": {"type": "string", "format": "date-time"}
                    }
                }
            }
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {"type": "string"},
                "error_type": {"type": "string"},
                "request_id": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Floodwatch Water Level API",
	Description:      "Ingestion and read API for water-level sensor samples.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
