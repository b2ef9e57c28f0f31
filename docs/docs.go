// Package docs registers the OpenAPI description served at /swagger.
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
        "/process-document": {
            "post": {
                "description": "OCR, classify and, when confident, extract, validate and risk-score an uploaded document. Low-confidence documents are sent to the review queue.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Process a document",
                "parameters": [
                    {"type": "file", "description": "Document to process (PDF, JPG, PNG or TIFF)", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "Processing outcome", "schema": {"$ref": "#/definitions/domain.ProcessingResult"}},
                    "400": {"description": "Missing file, unsupported type or OCR produced no text", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "413": {"description": "File too large", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "500": {"description": "AI returned invalid JSON or an internal error occurred", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/review-document": {
            "post": {
                "description": "Re-extract a document under the type chosen by a reviewer, log it and remove it from the review queue",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Resolve a queued document",
                "parameters": [
                    {"type": "file", "description": "The queued document", "name": "file", "in": "formData", "required": true},
                    {"enum": ["Invoice", "Claim Form", "Inspection Report", "Unknown Document"], "type": "string", "description": "Document type chosen by the reviewer", "name": "correct_doc_type", "in": "formData", "required": true},
                    {"type": "string", "description": "Review queue filename to remove", "name": "filename_to_remove", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "Resolution outcome", "schema": {"$ref": "#/definitions/domain.ResolutionResult"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "413": {"description": "File too large", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "500": {"description": "AI returned invalid JSON or an internal error occurred", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/dashboard-data": {
            "get": {
                "description": "KPIs, document type distribution and the top 5 vendors by summed amount. An empty log yields {\"kpis\":{},\"charts\":{}}.",
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Dashboard data",
                "responses": {
                    "200": {"description": "Dashboard aggregates", "schema": {"$ref": "#/definitions/handler.DashboardResponse"}}
                }
            }
        },
        "/dashboard-data/export": {
            "get": {
                "description": "Download every log record as CSV or XLSX",
                "produces": ["text/csv", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["dashboard"],
                "summary": "Export processed logs",
                "parameters": [
                    {"enum": ["csv", "xlsx"], "type": "string", "default": "csv", "description": "Export format", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Log export", "schema": {"type": "file"}},
                    "400": {"description": "Unknown format", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "500": {"description": "Log store unavailable", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/review-queue": {
            "get": {
                "description": "Documents awaiting review, in insertion order",
                "produces": ["application/json"],
                "tags": ["review"],
                "summary": "Review queue",
                "responses": {
                    "200": {"description": "Queued documents", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.ReviewQueueEntry"}}},
                    "500": {"description": "Queue unreadable", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        }
    },
    "definitions": {
        "domain.ProcessingResult": {
            "type": "object",
            "properties": {
                "filename": {"type": "string"},
                "ocr_text": {"type": "string"},
                "doc_type": {"type": "string", "enum": ["Invoice", "Claim Form", "Inspection Report", "Unknown Document"]},
                "confidence": {"type": "number"},
                "status": {"type": "string", "enum": ["Sent to Review Queue", "Processing Complete"]},
                "extracted_data": {"type": "object", "additionalProperties": {}},
                "validation_results": {"type": "object", "additionalProperties": {"type": "string"}},
                "risk_analysis": {"type": "string"}
            }
        },
        "domain.ResolutionResult": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "success"},
                "extracted_data": {"type": "object", "additionalProperties": {}},
                "removed": {"type": "integer"}
            }
        },
        "domain.ReviewQueueEntry": {
            "type": "object",
            "properties": {
                "filename": {"type": "string"},
                "ai_guess": {"type": "string"},
                "confidence": {"type": "string", "example": "85%"},
                "file_url": {"type": "string"}
            }
        },
        "domain.DashboardKPIs": {
            "type": "object",
            "properties": {
                "total_docs": {"type": "integer"},
                "total_invoices": {"type": "integer"},
                "total_value": {"type": "number"}
            }
        },
        "domain.DashboardCharts": {
            "type": "object",
            "properties": {
                "doc_distribution": {"type": "object", "additionalProperties": {"type": "integer"}},
                "top_vendors": {"type": "object", "additionalProperties": {"type": "number"}}
            }
        },
        "handler.DashboardResponse": {
            "type": "object",
            "properties": {
                "kpis": {"$ref": "#/definitions/domain.DashboardKPIs"},
                "charts": {"$ref": "#/definitions/domain.DashboardCharts"}
            }
        },
        "handler.ErrorResponseBody": {
            "type": "object",
            "properties": {
                "detail": {"type": "string", "example": "OCR failed."},
                "code": {"type": "string", "example": "OCR_EMPTY"}
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
	Title:            "Pravaah API",
	Description:      "Document intake pipeline: OCR, classification, LLM extraction, validation, risk analysis and human review.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
