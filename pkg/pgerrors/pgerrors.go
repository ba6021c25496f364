package pgerrors

import (
	"errors"

	"github.com/lib/pq"
)

// Коды SQLSTATE, на которые реагируют репозитории
const (
	CodeUndefinedColumn           pq.ErrorCode = "42703"
	CodeDatatypeMismatch          pq.ErrorCode = "42804"
	CodeInvalidTextRepresentation pq.ErrorCode = "22P02"
	CodeUniqueViolation           pq.ErrorCode = "23505"
)

// Code возвращает SQLSTATE ошибки PostgreSQL или пустую строку
func Code(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

// IsUndefinedColumn запрос ссылается на колонку, которой нет в таблице
func IsUndefinedColumn(err error) bool {
	return Code(err) == CodeUndefinedColumn
}

// IsSchemaMismatch колонки нет или её тип не совпадает с переданным значением
func IsSchemaMismatch(err error) bool {
	switch Code(err) {
	case CodeUndefinedColumn, CodeDatatypeMismatch, CodeInvalidTextRepresentation:
		return true
	}
	return false
}

func IsUniqueViolation(err error) bool {
	return Code(err) == CodeUniqueViolation
}
