package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/fieldservice/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	uniqueSuffixRe = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)
	keyDetailRe    = regexp.MustCompile(`^Key \((.+)\)=\((.*)\)`)
)

// ErrCode reports the mapped Code for err, or Other.
func ErrCode(err error) Code {
	if sqlErr, ok := AsError(err); ok {
		return sqlErr.Code
	}
	return Other
}

// AsError finds a database error in the chain and normalizes it.
func AsError(err error) (*Error, bool) {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr, true
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return ConvertPgError(pgerr), true
	}

	return nil, false
}

func IsUniqueViolation(err error) bool {
	return ErrCode(err) == UniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	return ErrCode(err) == ForeignKeyViolation
}

// ConvertPgError converts a raw pgconn.PgError into an Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		Detail:         src.Detail,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode creates <DOMAIN>_<ACTION> codes such as CLIENT_ALREADY_EXISTS.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)
	case UniqueViolation:
		return fmt.Sprintf("A %s with this identifier already exists", entityName)
	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)
	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"
	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName prefers a "<entity>_id" column, then the singularized table.
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(entity)
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "record"
}

// humanizeText: "service_offerings" -> "Service Offerings".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// jsonFieldName: "cpf_cnpj" -> "cpfCnpj", matching the payload tags.
func jsonFieldName(column string) string {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(column)), "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}

// extractColumnForUniqueViolation infers the column from constraint names
// shaped like unique_<table>_<column> or <table>_<column>_key.
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	matches := uniqueSuffixRe.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// UniqueViolationField returns the offending field (payload naming) and value
// of a unique violation. The Detail line ("Key (email)=(a@x.com) already
// exists.") is preferred; the constraint name is the fallback.
func UniqueViolationField(sqlErr *Error) (string, string) {
	if m := keyDetailRe.FindStringSubmatch(sqlErr.Detail); len(m) == 3 {
		columns := strings.Split(m[1], ",")
		for i := range columns {
			columns[i] = jsonFieldName(columns[i])
		}
		return strings.Join(columns, ","), m[2]
	}

	column := extractColumnForUniqueViolation(sqlErr.ConstraintName)
	if column == "" {
		column = sqlErr.ColumnName
	}
	if column == "" {
		column = "identifier"
	}
	return jsonFieldName(column), ""
}

// Translate turns err into one of the domain error kinds for operation.
// Domain errors and ErrNoRecord pass through untouched.
func Translate(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errs.IsDomain(err) || errors.Is(err, errs.ErrNoRecord) {
		return err
	}

	sqlErr, ok := AsError(err)
	if !ok {
		return errs.NewDatabase(operation, err)
	}

	switch sqlErr.Code {
	case UniqueViolation:
		field, value := UniqueViolationField(sqlErr)
		return errs.NewDuplicateResource(field, value)

	case ForeignKeyViolation:
		if strings.Contains(sqlErr.Detail, "still referenced") {
			return errs.NewInvalidOperation(operation, "record has dependent records")
		}
		column := sqlErr.ColumnName
		if m := keyDetailRe.FindStringSubmatch(sqlErr.Detail); len(m) == 3 {
			column = m[1]
		}
		referenced := strings.ToLower(getEntityName("", column))
		return errs.NewInvalidOperation(operation, fmt.Sprintf("referenced %s does not exist", referenced))

	case NotNullViolation:
		return errs.NewFieldValidation(jsonFieldName(sqlErr.ColumnName), "is required")

	case CheckViolation:
		field := sqlErr.ColumnName
		if field == "" {
			field = extractColumnForCheck(sqlErr.ConstraintName)
		}
		return errs.NewFieldValidation(jsonFieldName(field), "has an invalid value")

	default:
		return errs.NewDatabase(operation, err)
	}
}

// extractColumnForCheck handles Postgres' default <table>_<column>_check names.
func extractColumnForCheck(constraintName string) string {
	name := strings.TrimSuffix(constraintName, "_check")
	if idx := strings.LastIndex(name, "_"); idx >= 0 {
		return name[idx+1:]
	}
	return name
}

// HandleError converts any error into the HTTPError sent to the client.
//
// Domain kinds are mapped by errs.ToHTTPError, raw Postgres errors get a
// generated code and a friendly message, and everything else becomes a 500.
func HandleError(err error) error {
	if httpErr := errs.ToHTTPError(err); httpErr != nil {
		return httpErr
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)

		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewBadRequestError(userMessage, false, &errorCode, nil, nil)

		case UniqueViolation:
			columnName := extractColumnForUniqueViolation(sqlErr.ConstraintName)
			if columnName != "" {
				userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(columnName))
			}
			return errs.NewConflictError(userMessage, true, &errorCode, nil)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{Field: jsonFieldName(sqlErr.ColumnName), Error: "is required"},
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil)

		case CheckViolation:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

		default:
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, errs.ErrNoRecord) || errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}
