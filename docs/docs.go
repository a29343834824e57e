// Package docs registra en swag el documento OpenAPI de la API.
// Se mantiene a mano junto con las anotaciones @Router de los handlers.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{marshal .Schemes}},
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
        "/tutores": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "tutores"
                ],
                "summary": "Listar tutores",
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/tutors.Response"
                            }
                        }
                    },
                    "500": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "tutores"
                ],
                "summary": "Registrar tutor",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "payload",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/tutors.createTutorRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/tutors.Response"
                        }
                    },
                    "400": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/tutores/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "tutores"
                ],
                "summary": "Obtener tutor",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/tutors.Response"
                        }
                    },
                    "400": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "tutores"
                ],
                "summary": "Actualizar tutor",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "payload",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/tutors.updateTutorRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/tutors.Response"
                        }
                    },
                    "400": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "tutores"
                ],
                "summary": "Eliminar tutor",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/animais": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "animais"
                ],
                "summary": "Listar animais",
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/animals.Response"
                            }
                        }
                    },
                    "500": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "animais"
                ],
                "summary": "Registrar animal",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "payload",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/animals.createAnimalRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/animals.Response"
                        }
                    },
                    "400": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/animais/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "animais"
                ],
                "summary": "Obtener animal",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/animals.Response"
                        }
                    },
                    "400": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "animais"
                ],
                "summary": "Actualizar animal",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "payload",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/animals.updateAnimalRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/animals.Response"
                        }
                    },
                    "400": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "animais"
                ],
                "summary": "Eliminar animal",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/funcionarios": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "funcionarios"
                ],
                "summary": "Listar funcionarios",
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/employees.Response"
                            }
                        }
                    },
                    "500": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "funcionarios"
                ],
                "summary": "Registrar funcionario",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "payload",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/employees.createEmployeeRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/employees.Response"
                        }
                    },
                    "400": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/funcionarios/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "funcionarios"
                ],
                "summary": "Obtener funcionario",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/employees.Response"
                        }
                    },
                    "400": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "funcionarios"
                ],
                "summary": "Actualizar funcionario",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "payload",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/employees.updateEmployeeRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/employees.Response"
                        }
                    },
                    "400": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "funcionarios"
                ],
                "summary": "Eliminar funcionario",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/consultas": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "consultas"
                ],
                "summary": "Listar consultas",
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/appointments.DetailedResponse"
                            }
                        }
                    },
                    "500": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "consultas"
                ],
                "summary": "Registrar consulta",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "payload",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/appointments.createAppointmentRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/appointments.Response"
                        }
                    },
                    "400": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/consultas/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "consultas"
                ],
                "summary": "Obtener consulta",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/appointments.DetailedResponse"
                        }
                    },
                    "400": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "consultas"
                ],
                "summary": "Actualizar consulta",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "payload",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/appointments.updateAppointmentRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/appointments.DetailedResponse"
                        }
                    },
                    "400": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "consultas"
                ],
                "summary": "Eliminar consulta",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/pagamentos": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "pagamentos"
                ],
                "summary": "Listar pagamentos",
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/payments.Response"
                            }
                        }
                    },
                    "500": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "pagamentos"
                ],
                "summary": "Registrar pagamento",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "payload",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/payments.createPaymentRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/payments.Response"
                        }
                    },
                    "400": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/pagamentos/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "pagamentos"
                ],
                "summary": "Obtener pagamento",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/payments.Response"
                        }
                    },
                    "400": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "pagamentos"
                ],
                "summary": "Actualizar pagamento",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "payload",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/payments.updatePaymentRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/payments.Response"
                        }
                    },
                    "400": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "pagamentos"
                ],
                "summary": "Eliminar pagamento",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/tutores/nome/{nome}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "tutores"
                ],
                "summary": "Buscar tutor por nombre exacto",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Nombre exacto",
                        "name": "nome",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/tutors.Response"
                        }
                    },
                    "404": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/funcionarios/nome/{nome}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "funcionarios"
                ],
                "summary": "Buscar funcionario por nombre exacto",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Nombre exacto",
                        "name": "nome",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/employees.Response"
                        }
                    },
                    "404": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/tutores/{id}/animais": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "tutores"
                ],
                "summary": "Animales de un tutor",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/animals.Response"
                            }
                        }
                    },
                    "400": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/animais/tutor/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "animais"
                ],
                "summary": "Consultas de un animal (ruta heredada)",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID del animal",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/appointments.Response"
                            }
                        }
                    },
                    "400": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/animais/{id}/consultas": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "animais"
                ],
                "summary": "Consultas de un animal",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID del animal",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/appointments.Response"
                            }
                        }
                    },
                    "400": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/funcionarios/{id}/consultas": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "funcionarios"
                ],
                "summary": "Consultas de un funcionario",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/appointments.Response"
                            }
                        }
                    },
                    "400": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/consultas/{id}/animal": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "consultas"
                ],
                "summary": "Animal de una consulta",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/animals.Response"
                        }
                    },
                    "400": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/consultas/{id}/pagamento": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "consultas"
                ],
                "summary": "Pagamento de una consulta",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/payments.Response"
                        }
                    },
                    "400": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "httpx.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                },
                "details": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/apperr.FieldError"
                    }
                }
            }
        },
        "apperr.FieldError": {
            "type": "object",
            "properties": {
                "field": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "tutors.Response": {
            "type": "object",
            "properties": {
                "id_tutor": {
                    "type": "integer"
                },
                "nome": {
                    "type": "string"
                },
                "telefone": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                },
                "updatedAt": {
                    "type": "string"
                }
            }
        },
        "tutors.createTutorRequest": {
            "type": "object",
            "properties": {
                "nome": {
                    "type": "string",
                    "example": "Ana Silva"
                },
                "telefone": {
                    "type": "string",
                    "example": "(11) 91234-5678"
                },
                "email": {
                    "type": "string",
                    "example": "ana@x.com"
                }
            }
        },
        "tutors.updateTutorRequest": {
            "type": "object",
            "properties": {
                "nome": {
                    "type": "string"
                },
                "telefone": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                }
            }
        },
        "employees.Response": {
            "type": "object",
            "properties": {
                "id_funcionario": {
                    "type": "integer"
                },
                "nome": {
                    "type": "string"
                },
                "cargo": {
                    "type": "string"
                },
                "telefone": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                },
                "updatedAt": {
                    "type": "string"
                }
            }
        },
        "employees.createEmployeeRequest": {
            "type": "object",
            "properties": {
                "nome": {
                    "type": "string"
                },
                "cargo": {
                    "type": "string",
                    "example": "Veterinário"
                },
                "telefone": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                }
            }
        },
        "employees.updateEmployeeRequest": {
            "type": "object",
            "properties": {
                "nome": {
                    "type": "string"
                },
                "cargo": {
                    "type": "string"
                },
                "telefone": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                }
            }
        },
        "animals.Response": {
            "type": "object",
            "properties": {
                "id_animal": {
                    "type": "integer"
                },
                "nome": {
                    "type": "string"
                },
                "especie": {
                    "type": "string"
                },
                "raca": {
                    "type": "string"
                },
                "peso": {
                    "type": "string",
                    "example": "12.50"
                },
                "sexo": {
                    "type": "string"
                },
                "data_nascimento": {
                    "type": "string",
                    "example": "2020-05-01"
                },
                "observacoes_medicas": {
                    "type": "string"
                },
                "status_animal": {
                    "type": "string",
                    "enum": [
                        "Ativo",
                        "Inativo",
                        "Falecido"
                    ]
                },
                "id_tutor": {
                    "type": "integer"
                },
                "createdAt": {
                    "type": "string"
                },
                "updatedAt": {
                    "type": "string"
                }
            }
        },
        "animals.createAnimalRequest": {
            "type": "object",
            "properties": {
                "nome": {
                    "type": "string",
                    "example": "Rex"
                },
                "especie": {
                    "type": "string",
                    "example": "Cachorro"
                },
                "raca": {
                    "type": "string",
                    "example": "Labrador"
                },
                "peso": {
                    "type": "string",
                    "example": "12.50"
                },
                "sexo": {
                    "type": "string",
                    "example": "M"
                },
                "data_nascimento": {
                    "type": "string",
                    "example": "2020-05-01"
                },
                "observacoes_medicas": {
                    "type": "string"
                },
                "status_animal": {
                    "type": "string",
                    "enum": [
                        "Ativo",
                        "Inativo",
                        "Falecido"
                    ]
                },
                "id_tutor": {
                    "type": "integer"
                }
            }
        },
        "animals.updateAnimalRequest": {
            "type": "object",
            "properties": {
                "nome": {
                    "type": "string"
                },
                "especie": {
                    "type": "string"
                },
                "raca": {
                    "type": "string"
                },
                "peso": {
                    "type": "string"
                },
                "sexo": {
                    "type": "string"
                },
                "data_nascimento": {
                    "type": "string"
                },
                "observacoes_medicas": {
                    "type": "string"
                },
                "status_animal": {
                    "type": "string"
                },
                "id_tutor": {
                    "type": "integer"
                }
            }
        },
        "appointments.Response": {
            "type": "object",
            "properties": {
                "id_consulta": {
                    "type": "integer"
                },
                "id_animal": {
                    "type": "integer"
                },
                "id_funcionario": {
                    "type": "integer"
                },
                "data_hora": {
                    "type": "string"
                },
                "diagnostico": {
                    "type": "string"
                },
                "status_consulta": {
                    "type": "string"
                },
                "preco": {
                    "type": "string",
                    "example": "150.00"
                },
                "createdAt": {
                    "type": "string"
                },
                "updatedAt": {
                    "type": "string"
                }
            }
        },
        "appointments.DetailedResponse": {
            "type": "object",
            "properties": {
                "id_consulta": {
                    "type": "integer"
                },
                "id_animal": {
                    "type": "integer"
                },
                "id_funcionario": {
                    "type": "integer"
                },
                "data_hora": {
                    "type": "string"
                },
                "diagnostico": {
                    "type": "string"
                },
                "status_consulta": {
                    "type": "string"
                },
                "preco": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                },
                "updatedAt": {
                    "type": "string"
                },
                "animal": {
                    "$ref": "#/definitions/animals.Response"
                },
                "funcionario": {
                    "$ref": "#/definitions/employees.Response"
                }
            }
        },
        "appointments.createAppointmentRequest": {
            "type": "object",
            "properties": {
                "id_animal": {
                    "type": "integer"
                },
                "id_funcionario": {
                    "type": "integer"
                },
                "data_hora": {
                    "type": "string",
                    "example": "2024-06-01T14:30:00Z"
                },
                "diagnostico": {
                    "type": "string"
                },
                "status_consulta": {
                    "type": "string",
                    "enum": [
                        "Agendada",
                        "Realizada",
                        "Cancelada",
                        "Remarcada",
                        "Não Compareceu",
                        "Em Andamento"
                    ]
                },
                "preco": {
                    "type": "string",
                    "example": "150.00"
                }
            }
        },
        "appointments.updateAppointmentRequest": {
            "type": "object",
            "properties": {
                "id_animal": {
                    "type": "integer"
                },
                "id_funcionario": {
                    "type": "integer"
                },
                "data_hora": {
                    "type": "string"
                },
                "diagnostico": {
                    "type": "string"
                },
                "status_consulta": {
                    "type": "string"
                },
                "preco": {
                    "type": "string"
                }
            }
        },
        "payments.Response": {
            "type": "object",
            "properties": {
                "id_pagamento": {
                    "type": "integer"
                },
                "id_consulta": {
                    "type": "integer"
                },
                "valor": {
                    "type": "string",
                    "example": "150.00"
                },
                "data_pagamento": {
                    "type": "string"
                },
                "metodo": {
                    "type": "string"
                },
                "status_pagamento": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                },
                "updatedAt": {
                    "type": "string"
                }
            }
        },
        "payments.createPaymentRequest": {
            "type": "object",
            "properties": {
                "id_consulta": {
                    "type": "integer"
                },
                "valor": {
                    "type": "string",
                    "example": "150.00"
                },
                "data_pagamento": {
                    "type": "string"
                },
                "metodo": {
                    "type": "string",
                    "enum": [
                        "Cartão de Crédito",
                        "Cartão de Débito",
                        "Dinheiro",
                        "Pix",
                        "Transferência"
                    ]
                },
                "status_pagamento": {
                    "type": "string",
                    "enum": [
                        "Pendente",
                        "Pago",
                        "Cancelado",
                        "Reembolsado"
                    ]
                }
            }
        },
        "payments.updatePaymentRequest": {
            "type": "object",
            "properties": {
                "id_consulta": {
                    "type": "integer"
                },
                "valor": {
                    "type": "string"
                },
                "data_pagamento": {
                    "type": "string"
                },
                "metodo": {
                    "type": "string"
                },
                "status_pagamento": {
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "vet-clinic API",
	Description:      "API de gestión de clínica veterinaria: tutores, animais, funcionarios, consultas y pagamentos.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
