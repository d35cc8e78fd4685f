package router

import (
	"fmt"
	"net/http"
)

func registerSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	mux.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Ledger Service API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Ledger Service API",
    "version": "1.0.0"
  },
  "paths": {
    "/customers": {
      "post": {
        "summary": "Create customer",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["name"],
                "properties": {
                  "name": {"type": "string"}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Created"},
          "400": {"description": "Validation error"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/token": {
      "post": {
        "summary": "Issue a bearer token",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["username", "password"],
                "properties": {
                  "username": {"type": "string"},
                  "password": {"type": "string"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Token issued"},
          "400": {"description": "Validation error"},
          "401": {"description": "Invalid credentials"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/accounts": {
      "post": {
        "summary": "Create account",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["customerId"],
                "properties": {
                  "customerId": {"type": "integer"},
                  "initialDeposit": {"type": "string", "example": "100.00"}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Created"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Customer not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/accounts/balance": {
      "get": {
        "summary": "Get account balance",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "parameters": [
          {
            "name": "accountId",
            "in": "query",
            "required": true,
            "schema": {
              "type": "integer"
            }
          }
        ],
        "responses": {
          "200": {"description": "Balance fetched"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Account not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/customers/accounts": {
      "get": {
        "summary": "List accounts for a customer",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "parameters": [
          {
            "name": "customerId",
            "in": "query",
            "required": true,
            "schema": {
              "type": "integer"
            }
          }
        ],
        "responses": {
          "200": {"description": "Accounts fetched"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Customer not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/transfer-funds": {
      "post": {
        "summary": "Transfer funds between accounts",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["fromAccountId", "toAccountId", "amount"],
                "properties": {
                  "fromAccountId": {"type": "integer"},
                  "toAccountId": {"type": "integer"},
                  "amount": {"type": "string", "example": "25.00"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Transfer posted"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Account not found"},
          "409": {"description": "Posting conflicted, retry"},
          "422": {"description": "Insufficient balance"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/deposit-funds": {
      "post": {
        "summary": "Deposit funds into an account",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["accountId", "amount"],
                "properties": {
                  "accountId": {"type": "integer"},
                  "amount": {"type": "string", "example": "50.00"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Deposit posted"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Account not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/withdraw-funds": {
      "post": {
        "summary": "Withdraw funds from an account",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["accountId", "amount"],
                "properties": {
                  "accountId": {"type": "integer"},
                  "amount": {"type": "string", "example": "50.00"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Withdrawal posted"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Account not found"},
          "422": {"description": "Insufficient balance"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/accounts/history": {
      "get": {
        "summary": "List transfer history for an account",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "parameters": [
          {
            "name": "accountId",
            "in": "query",
            "required": true,
            "schema": {
              "type": "integer"
            }
          }
        ],
        "responses": {
          "200": {"description": "History fetched"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Account not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/accounts/statement": {
      "get": {
        "summary": "Build an account statement with running balances",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "parameters": [
          {
            "name": "accountId",
            "in": "query",
            "required": true,
            "schema": {
              "type": "integer"
            }
          }
        ],
        "responses": {
          "200": {"description": "Statement fetched"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Account not found"},
          "500": {"description": "Server error"}
        }
      }
    }
  },
  "components": {
    "securitySchemes": {
      "BearerAuth": {
        "type": "http",
        "scheme": "bearer"
      }
    }
  }
}`
