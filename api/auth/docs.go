// Package auth holds the OpenAPI document served at /swagger/. It mirrors
// the swag annotations on the handlers in internal/auth/http; regenerate with
// `swag init -g internal/auth/http/router.go -o api/auth` after changing them.
package auth

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "AussieBroadWAN Team",
            "url": "https://github.com/aussiebroadwan/folio"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/authsdk.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/authsdk.AuthResponse"}},
                    "400": {"description": "validation failure or email already registered", "schema": {"$ref": "#/definitions/authsdk.APIError"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Login",
                "description": "Check email and password; sets the sid and token cookies.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/authsdk.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/authsdk.AuthResponse"}},
                    "400": {"description": "invalid_credentials", "schema": {"$ref": "#/definitions/authsdk.APIError"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"SessionCookie": []}],
                "tags": ["Auth"],
                "summary": "Current user",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/authsdk.UserResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/authsdk.APIError"}},
                    "404": {"description": "account no longer exists", "schema": {"$ref": "#/definitions/authsdk.APIError"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Logout",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/authsdk.MessageResponse"}}
                }
            }
        },
        "/auth/google": {
            "get": {
                "tags": ["OAuth"],
                "summary": "Start Google sign-in",
                "responses": {
                    "302": {"description": "Found"},
                    "404": {"description": "Google login is not configured", "schema": {"$ref": "#/definitions/authsdk.APIError"}}
                }
            }
        },
        "/auth/google/callback": {
            "get": {
                "tags": ["OAuth"],
                "summary": "Google sign-in callback",
                "parameters": [
                    {"type": "string", "name": "state", "in": "query", "required": true},
                    {"type": "string", "name": "code", "in": "query", "required": true}
                ],
                "responses": {
                    "302": {"description": "Found"}
                }
            }
        },
        "/auth/resetpassword": {
            "post": {
                "tags": ["Password"],
                "summary": "Request a password reset link",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/authsdk.ResetPasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/authsdk.MessageResponse"}},
                    "400": {"description": "email missing", "schema": {"$ref": "#/definitions/authsdk.APIError"}},
                    "500": {"description": "mail could not be sent", "schema": {"$ref": "#/definitions/authsdk.APIError"}}
                }
            }
        },
        "/auth/changepasswordwithtoken": {
            "post": {
                "tags": ["Password"],
                "summary": "Change password with a reset token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/authsdk.ChangePasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/authsdk.MessageResponse"}},
                    "400": {"description": "Invalid or expired token", "schema": {"$ref": "#/definitions/authsdk.APIError"}}
                }
            }
        },
        "/users/profile": {
            "put": {
                "security": [{"SessionCookie": []}],
                "tags": ["Users"],
                "summary": "Update profile text",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/authsdk.ProfileUpdateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/authsdk.UserResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/authsdk.APIError"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/authsdk.APIError"}}
                }
            }
        },
        "/users/follow/{id}": {
            "put": {
                "security": [{"SessionCookie": []}],
                "tags": ["Follows"],
                "summary": "Follow a user",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/authsdk.MessageResponse"}},
                    "400": {"description": "self follow or already following", "schema": {"$ref": "#/definitions/authsdk.APIError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/authsdk.APIError"}}
                }
            }
        },
        "/users/unfollow/{id}": {
            "put": {
                "security": [{"SessionCookie": []}],
                "tags": ["Follows"],
                "summary": "Unfollow a user",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/authsdk.MessageResponse"}},
                    "400": {"description": "not following", "schema": {"$ref": "#/definitions/authsdk.APIError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/authsdk.APIError"}}
                }
            }
        },
        "/users/{id}/followers": {
            "get": {
                "security": [{"SessionCookie": []}],
                "tags": ["Follows"],
                "summary": "List followers",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/authsdk.UserSummary"}}}
                }
            }
        },
        "/users/{id}/following": {
            "get": {
                "security": [{"SessionCookie": []}],
                "tags": ["Follows"],
                "summary": "List followed users",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/authsdk.UserSummary"}}}
                }
            }
        },
        "/users/{id}/is-following": {
            "get": {
                "security": [{"SessionCookie": []}],
                "tags": ["Follows"],
                "summary": "Does the caller follow this user",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/authsdk.IsFollowingResponse"}}
                }
            }
        },
        "/admin/admin-dashboard": {
            "get": {
                "security": [{"SessionCookie": []}],
                "tags": ["Admin"],
                "summary": "Admin access probe",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/authsdk.AdminDashboardResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/authsdk.APIError"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/authsdk.APIError"}}
                }
            }
        },
        "/admin/all-users": {
            "get": {
                "security": [{"SessionCookie": []}],
                "tags": ["Admin"],
                "summary": "List all users",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/authsdk.AdminUser"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/authsdk.APIError"}}
                }
            }
        },
        "/admin/delete-user/{id}": {
            "delete": {
                "security": [{"SessionCookie": []}],
                "tags": ["Admin"],
                "summary": "Delete a user",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/authsdk.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/authsdk.APIError"}}
                }
            }
        },
        "/admin/send-email": {
            "post": {
                "security": [{"SessionCookie": []}],
                "tags": ["Admin"],
                "summary": "Email every user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/authsdk.SendEmailRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/authsdk.SendEmailResponse"}},
                    "404": {"description": "no users", "schema": {"$ref": "#/definitions/authsdk.APIError"}},
                    "500": {"description": "mail delivery failed", "schema": {"$ref": "#/definitions/authsdk.APIError"}}
                }
            }
        },
        "/admin/logout": {
            "post": {
                "security": [{"SessionCookie": []}],
                "tags": ["Admin"],
                "summary": "Admin logout",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/authsdk.MessageResponse"}}
                }
            }
        },
        "/livez": {
            "get": {
                "tags": ["Health"],
                "summary": "Liveness probe",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/authsdk.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "tags": ["Health"],
                "summary": "Readiness probe",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/authsdk.HealthResponse"}},
                    "503": {"description": "at least one check failed", "schema": {"$ref": "#/definitions/authsdk.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "authsdk.APIError": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "authsdk.RegisterRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "authsdk.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "authsdk.AuthUser": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "isAdmin": {"type": "boolean"},
                "role": {"type": "string"},
                "lastLogin": {"type": "string", "format": "date-time"}
            }
        },
        "authsdk.AuthResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "user": {"$ref": "#/definitions/authsdk.AuthUser"}
            }
        },
        "authsdk.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "authsdk.UserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "isAdmin": {"type": "boolean"},
                "role": {"type": "string"},
                "isLoggedIn": {"type": "boolean"},
                "lastLogin": {"type": "string", "format": "date-time"},
                "bio": {"type": "string"},
                "dribbbleProfile": {"type": "string"},
                "behanceProfile": {"type": "string"},
                "profilePicture": {"type": "string"},
                "bannerImage": {"type": "string"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "authsdk.ProfileUpdateRequest": {
            "type": "object",
            "properties": {
                "bio": {"type": "string"},
                "dribbbleProfile": {"type": "string"},
                "behanceProfile": {"type": "string"}
            }
        },
        "authsdk.UserSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "profilePicture": {"type": "string"}
            }
        },
        "authsdk.IsFollowingResponse": {
            "type": "object",
            "properties": {
                "isFollowing": {"type": "boolean"}
            }
        },
        "authsdk.ResetPasswordRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"}
            }
        },
        "authsdk.ChangePasswordRequest": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "authsdk.AdminDashboardResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "isAdmin": {"type": "boolean"}
            }
        },
        "authsdk.AdminUser": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "isLoggedIn": {"type": "boolean"},
                "lastLogin": {"type": "string", "format": "date-time"},
                "profilePicture": {"type": "string"},
                "isAdmin": {"type": "boolean"}
            }
        },
        "authsdk.SendEmailRequest": {
            "type": "object",
            "properties": {
                "subject": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "authsdk.SendEmailResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "sent": {"type": "integer"},
                "failed": {"type": "integer"}
            }
        },
        "authsdk.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "uptime": {"type": "string"},
                "version": {"type": "string"},
                "checks": {"$ref": "#/definitions/authsdk.HealthChecks"}
            }
        },
        "authsdk.HealthChecks": {
            "type": "object",
            "properties": {
                "database": {"type": "string"},
                "signer": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "SessionCookie": {
            "description": "Opaque session id set by /auth/login.",
            "type": "apiKey",
            "name": "sid",
            "in": "cookie"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Folio Authentication Service API",
	Description:      "Accounts, sessions and identity for the Folio portfolio platform.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
