// Package validation contains the input checks shared by handlers and
// services.
//
// It holds the Brazilian document validators (CPF, CNPJ, phone, CEP), the
// exhaustive required-field collector, the duplicate/existence checker used
// by the service layer, and the echo binding helper that runs
// go-playground/validator tags on request payloads.
package validation
