// Package docs holds the swagger description served at /swagger/*any.
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
        "/api/health": {
            "get": {
                "description": "Reports that the server is running",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "Server is running",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/api/messages": {
            "post": {
                "description": "Stores a message and broadcasts it to everyone in the room",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["messages"],
                "summary": "Create a new message",
                "parameters": [
                    {
                        "description": "Message Creation",
                        "name": "message",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/controllers.CreateMessageInput"}
                    }
                ],
                "responses": {
                    "201": {"description": "Message created", "schema": {"$ref": "#/definitions/models.Message"}},
                    "400": {"description": "Missing required fields", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/messages/room/{roomId}": {
            "get": {
                "description": "Returns the messages of a room, oldest first, capped at the history limit",
                "produces": ["application/json"],
                "tags": ["messages"],
                "summary": "Get messages for a room",
                "parameters": [
                    {"type": "string", "description": "Room ID", "name": "roomId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "List of messages",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Message"}}
                    },
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/rooms": {
            "get": {
                "description": "Returns every chat room, newest first",
                "produces": ["application/json"],
                "tags": ["rooms"],
                "summary": "Get all rooms",
                "responses": {
                    "200": {
                        "description": "List of rooms",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Room"}}
                    },
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "post": {
                "description": "Creates a chat room with a unique name",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["rooms"],
                "summary": "Create a new chat room",
                "parameters": [
                    {
                        "description": "Room Creation",
                        "name": "room",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/controllers.CreateRoomInput"}
                    }
                ],
                "responses": {
                    "201": {"description": "Room created", "schema": {"$ref": "#/definitions/models.Room"}},
                    "400": {"description": "Missing name or room already exists", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/rooms/{id}": {
            "get": {
                "description": "Returns a single chat room by id",
                "produces": ["application/json"],
                "tags": ["rooms"],
                "summary": "Get details of a specific room",
                "parameters": [
                    {"type": "string", "description": "Room ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Room details", "schema": {"$ref": "#/definitions/models.Room"}},
                    "404": {"description": "Room not found", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/ws": {
            "get": {
                "description": "Upgrades to a websocket carrying join-room, leave-room and send-message events",
                "tags": ["websocket"],
                "summary": "Open a realtime connection",
                "responses": {
                    "101": {"description": "Switching protocols"},
                    "403": {"description": "Origin not allowed"}
                }
            }
        }
    },
    "definitions": {
        "controllers.CreateMessageInput": {
            "type": "object",
            "properties": {
                "content": {"type": "string", "example": "Hello, everyone!"},
                "roomId": {"type": "string", "example": "5f0c6a4e-8d2b-4f4e-9a57-1b2c3d4e5f60"},
                "username": {"type": "string", "example": "alice"}
            }
        },
        "controllers.CreateRoomInput": {
            "type": "object",
            "properties": {
                "description": {"type": "string", "example": "Talk about anything"},
                "name": {"type": "string", "example": "General Chat"}
            }
        },
        "errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "models.Message": {
            "type": "object",
            "properties": {
                "content": {"type": "string", "example": "Hello, everyone!"},
                "createdAt": {"type": "string"},
                "id": {"type": "string"},
                "roomId": {"type": "string"},
                "username": {"type": "string", "example": "alice"}
            }
        },
        "models.Room": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "description": {"type": "string", "example": "Everything and nothing"},
                "id": {"type": "string"},
                "name": {"type": "string", "example": "general"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5000",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Realtime Chat API",
	Description:      "Rooms, message history and a websocket room broadcast.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
