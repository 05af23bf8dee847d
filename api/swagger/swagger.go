package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Planify Web",
        "description": "Server-rendered school planner: calendar, timetable, classrooms and chat in front of the Planify REST backend.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Calendar", "description": "Month grid and events"},
        {"name": "Timetable", "description": "Weekly timetable and exports"},
        {"name": "Classrooms", "description": "Classroom management"},
        {"name": "Chat", "description": "Inbox and conversations"},
        {"name": "Preferences", "description": "Theme preference"},
        {"name": "Dialogs", "description": "Confirm dialogs"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "A dependency is unreachable"}
                }
            }
        },
        "/metrics": {
            "get": {
                "summary": "Prometheus metrics",
                "produces": ["text/plain"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/calendar": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Calendar page",
                "produces": ["text/html"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "view", "in": "query", "type": "string", "enum": ["month", "week", "day"]},
                    {"name": "date", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {"200": {"description": "HTML page"}}
            }
        },
        "/calendar/grid": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Month grid fragment",
                "produces": ["text/html"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {"200": {"description": "HTML fragment"}}
            }
        },
        "/events": {
            "post": {
                "tags": ["Calendar"],
                "summary": "Create an event",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateEventRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "303": {"description": "Browser redirect to the calendar"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Backend failure", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events/{id}": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Event detail",
                "produces": ["text/html", "application/json"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Event"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events/{id}/delete": {
            "post": {
                "tags": ["Calendar"],
                "summary": "Delete an event",
                "description": "Browsers are sent back with a confirm dialog; JSON clients delete directly.",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "303": {"description": "Confirm dialog opened"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/edt": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Weekly timetable",
                "produces": ["text/html", "application/json"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "week", "in": "query", "type": "string", "format": "date"},
                    {"name": "nav", "in": "query", "type": "string", "enum": ["prev", "next", "today"]},
                    {"name": "professor", "in": "query", "type": "string"},
                    {"name": "classroom", "in": "query", "type": "string"},
                    {"name": "subject", "in": "query", "type": "string"},
                    {"name": "tab", "in": "query", "type": "string", "enum": ["grille", "liste"]}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/edt/export": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Export the filtered week",
                "produces": ["application/pdf", "text/csv", "text/calendar"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "format", "in": "query", "required": true, "type": "string", "enum": ["pdf", "csv", "ical"]},
                    {"name": "week", "in": "query", "type": "string", "format": "date"},
                    {"name": "professor", "in": "query", "type": "string"},
                    {"name": "classroom", "in": "query", "type": "string"},
                    {"name": "subject", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File attachment"},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classrooms": {
            "get": {
                "tags": ["Classrooms"],
                "summary": "List classrooms",
                "produces": ["text/html", "application/json"],
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Classrooms"],
                "summary": "Create a classroom",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ClassroomRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classrooms/{id}": {
            "post": {
                "tags": ["Classrooms"],
                "summary": "Update a classroom",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ClassroomRequest"}}
                ],
                "responses": {
                    "201": {"description": "Updated", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classrooms/{id}/delete": {
            "post": {
                "tags": ["Classrooms"],
                "summary": "Delete a classroom (administrators)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Deleted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Classroom in use", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/chat": {
            "get": {
                "tags": ["Chat"],
                "summary": "Inbox",
                "produces": ["text/html", "application/json"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "q", "in": "query", "type": "string"},
                    {"name": "fragment", "in": "query", "type": "boolean"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/chat/unread": {
            "get": {
                "tags": ["Chat"],
                "summary": "Unread badge total",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/chat/{id}": {
            "get": {
                "tags": ["Chat"],
                "summary": "Conversation page",
                "produces": ["text/html", "application/json"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/chat/{id}/messages": {
            "get": {
                "tags": ["Chat"],
                "summary": "Messages newer than after",
                "produces": ["text/html", "application/json"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "after", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "headers": {"X-Last-Message-ID": {"type": "integer", "description": "Highest message id"}}
                    }
                }
            }
        },
        "/chat/send": {
            "post": {
                "tags": ["Chat"],
                "summary": "Send a message",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SendMessageRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/chat/start": {
            "post": {
                "tags": ["Chat"],
                "summary": "Start a conversation",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StartChatRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/preferences/theme": {
            "post": {
                "tags": ["Preferences"],
                "summary": "Toggle light/dark theme",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/dialogs/{id}": {
            "post": {
                "tags": ["Dialogs"],
                "summary": "Answer a confirm dialog",
                "consumes": ["application/x-www-form-urlencoded"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "confirmed", "in": "formData", "required": true, "type": "boolean"}
                ],
                "responses": {
                    "204": {"description": "Resolved"},
                    "404": {"description": "Unknown dialog", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Event": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "start": {"type": "string"},
                "end": {"type": "string"},
                "color": {"type": "string"},
                "location": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "CreateEventRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "color": {"type": "string"},
                "location": {"type": "string"},
                "event_type": {"type": "string"}
            },
            "required": ["title", "start_date"]
        },
        "ClassroomRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "capacity": {"type": "integer"},
                "location": {"type": "string"},
                "equipment": {"type": "string"},
                "is_active": {"type": "boolean"}
            },
            "required": ["name", "capacity"]
        },
        "SendMessageRequest": {
            "type": "object",
            "properties": {
                "chat_id": {"type": "integer"},
                "content": {"type": "string"}
            },
            "required": ["chat_id", "content"]
        },
        "StartChatRequest": {
            "type": "object",
            "properties": {
                "user_id": {"type": "integer"}
            },
            "required": ["user_id"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
