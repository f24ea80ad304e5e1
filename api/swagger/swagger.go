// Package swagger serves the pre-rendered OpenAPI document for /docs.
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "AcadSync Timetable API",
        "description": "Timetable management backend with constraint-solver based generation",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Auth", "description": "Login and session introspection"},
        {"name": "Rooms", "description": "Classroom and laboratory management"},
        {"name": "Batches", "description": "Student cohort management"},
        {"name": "Subjects", "description": "Curriculum subject management"},
        {"name": "Faculty", "description": "Instructor roster, qualifications and availability"},
        {"name": "Students", "description": "Student roster management"},
        {"name": "Timetable", "description": "Generation, per-role views and exports"},
        {"name": "Dashboard", "description": "Role-specific landing views"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unreachable"}
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate and obtain an access token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Token issued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/api/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Return the authenticated user",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Current user", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/rooms": {
            "get": {
                "tags": ["Rooms"],
                "summary": "List rooms",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Rooms", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Rooms"],
                "summary": "Create room",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/api/rooms/{id}": {
            "get": {
                "tags": ["Rooms"],
                "summary": "Get room detail",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "Room"}}
            },
            "put": {
                "tags": ["Rooms"],
                "summary": "Update room",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "Updated"}}
            },
            "delete": {
                "tags": ["Rooms"],
                "summary": "Delete room",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Deleted"}}
            }
        },
        "/api/batches": {
            "get": {
                "tags": ["Batches"],
                "summary": "List batches",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Batches"}}
            },
            "post": {
                "tags": ["Batches"],
                "summary": "Create batch",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Duplicate name"}}
            }
        },
        "/api/subjects": {
            "get": {
                "tags": ["Subjects"],
                "summary": "List subjects",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Subjects"}}
            },
            "post": {
                "tags": ["Subjects"],
                "summary": "Create subject",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/faculty": {
            "get": {
                "tags": ["Faculty"],
                "summary": "List faculty",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Faculty"}}
            },
            "post": {
                "tags": ["Faculty"],
                "summary": "Create faculty member",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Students"}}
            },
            "post": {
                "tags": ["Students"],
                "summary": "Create student",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/timetable/generate": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Generate a new timetable, replacing the current one",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Timetable replaced", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "A generation is already running"},
                    "422": {"description": "No feasible schedule"},
                    "502": {"description": "Engine unavailable or returned a malformed result"}
                }
            }
        },
        "/api/timetable": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Get the complete current timetable",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Timetable entries"}}
            }
        },
        "/api/timetable/teacher": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Get the authenticated instructor's timetable",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Timetable entries"}}
            }
        },
        "/api/timetable/student": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Get the authenticated student's batch timetable",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Timetable entries"}}
            }
        },
        "/api/timetable/export": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Download the current timetable as CSV or PDF",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}],
                "responses": {"200": {"description": "File download"}}
            }
        },
        "/api/timetable/export/download": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Retrieve an archived export using a signed token",
                "parameters": [{"name": "token", "in": "query", "type": "string", "required": true}],
                "responses": {"200": {"description": "File download"}, "401": {"description": "Invalid or expired token"}}
            }
        },
        "/api/dashboard/admin": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Admin dashboard with entity counts",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Stats"}}
            }
        },
        "/api/dashboard/teacher": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Faculty dashboard",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Dashboard"}}
            }
        },
        "/api/dashboard/student": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Student dashboard",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Dashboard"}}
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
