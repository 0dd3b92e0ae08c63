package model

import "sabai/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldName      = "name"
	FieldEmail     = "email"
	FieldTelephone = "telephone"
	FieldPassword  = "password"
	FieldRole      = "role"
	FieldActive    = "active"
)

type User struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Email     string `db:"email"`
	Telephone string `db:"telephone"`
	Password  string `db:"password"`
	Role      string `db:"role"`
	Active    bool   `db:"active"`
	model.Metadata
}
