// Package docs registers the OpenAPI description served under /swagger.
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
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/registerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/authResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in with email and password",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/authResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/ewaste": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["ewaste"],
                "summary": "List e-waste items",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "status", "in": "query"},
                    {"type": "string", "name": "category", "in": "query"},
                    {"type": "string", "name": "reportedBy", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/listItemsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["ewaste"],
                "summary": "Report a new e-waste item",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/createItemRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/createItemResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/ewaste/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["ewaste"],
                "summary": "Export items as a spreadsheet",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/ewaste/qr/{code}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["ewaste"],
                "summary": "Resolve a scanned lookup code",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "code", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/itemResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/ewaste/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["ewaste"],
                "summary": "Get an item by id",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/itemResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/ewaste/{id}/history": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["ewaste"],
                "summary": "Status history of an item",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/historyResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/ewaste/{id}/status": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["ewaste"],
                "summary": "Move an item to a new status",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/updateStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/updateStatusResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "registerRequest": {
            "type": "object",
            "properties": {
                "role": {"type": "string", "enum": ["admin", "vendor"]},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "whatsapp": {"type": "string"},
                "name": {"type": "string"},
                "department": {"type": "string"},
                "address": {"type": "string"},
                "location": {"type": "object", "properties": {"coordinates": {"type": "array", "items": {"type": "number"}}}},
                "serviceRadiusKm": {"type": "number"},
                "capacityKgPerDay": {"type": "number"},
                "workingHours": {"type": "object", "properties": {"start": {"type": "string"}, "end": {"type": "string"}}}
            }
        },
        "loginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "authResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "token": {"type": "string"},
                "user": {"type": "object"}
            }
        },
        "createItemRequest": {
            "type": "object",
            "properties": {
                "itemName": {"type": "string"},
                "description": {"type": "string"},
                "category": {"type": "string", "enum": ["Laptop", "Mobile", "Battery", "Monitor", "Other"]},
                "weightKg": {"type": "number"}
            }
        },
        "updateStatusRequest": {
            "type": "object",
            "properties": {"status": {"type": "string", "enum": ["collected", "in-transit", "recycled", "disposed"]}}
        },
        "historyEntryResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "updatedBy": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "itemResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "itemName": {"type": "string"},
                "description": {"type": "string"},
                "category": {"type": "string"},
                "weightKg": {"type": "number"},
                "lookupCode": {"type": "string"},
                "reportedBy": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "email": {"type": "string"}}},
                "status": {"type": "string"},
                "statusHistory": {"type": "array", "items": {"$ref": "#/definitions/historyEntryResponse"}},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "createItemResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "item": {"$ref": "#/definitions/itemResponse"},
                "lookupCode": {"type": "string"},
                "qrCodeImage": {"type": "string"}
            }
        },
        "updateStatusResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "item": {"$ref": "#/definitions/itemResponse"}}
        },
        "historyResponse": {
            "type": "object",
            "properties": {
                "itemId": {"type": "string"},
                "status": {"type": "string"},
                "statusHistory": {"type": "array", "items": {"$ref": "#/definitions/historyEntryResponse"}}
            }
        },
        "listItemsResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/itemResponse"}},
                "pagination": {
                    "type": "object",
                    "properties": {
                        "total": {"type": "integer"},
                        "page": {"type": "integer"},
                        "limit": {"type": "integer"},
                        "totalPages": {"type": "integer"}
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "E-waste Tracker API",
	Description:      "Registry and lifecycle tracking for campus e-waste.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
