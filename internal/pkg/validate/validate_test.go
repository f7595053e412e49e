package validate

import (
	"errors"
	"testing"
)

type signupForm struct {
	Name     string `form:"nombre" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
	Confirm  string `form:"confirmar" validate:"required,eqfield=Password"`
}

func TestStruct_Valid(t *testing.T) {
	err := Struct(signupForm{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "secreto",
		Confirm:  "secreto",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestStruct_FieldNamesComeFromFormTags(t *testing.T) {
	err := Struct(signupForm{})

	var vErr *Error
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	for _, field := range []string{"nombre", "email", "password", "confirmar"} {
		if _, ok := vErr.Fields[field]; !ok {
			t.Fatalf("missing field %q in %v", field, vErr.Fields)
		}
	}
}

func TestStruct_Messages(t *testing.T) {
	err := Struct(signupForm{
		Name:     "Ana",
		Email:    "no-es-un-email",
		Password: "abc",
		Confirm:  "xyz",
	})

	var vErr *Error
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if vErr.Fields["email"] != "el email debe ser válido" {
		t.Fatalf("email message = %q", vErr.Fields["email"])
	}
	if vErr.Fields["password"] != "debe tener al menos 6 caracteres" {
		t.Fatalf("password message = %q", vErr.Fields["password"])
	}
	if vErr.Fields["confirmar"] != "la confirmación no coincide" {
		t.Fatalf("confirmar message = %q", vErr.Fields["confirmar"])
	}
}

func TestError_StringIncludesFields(t *testing.T) {
	e := &Error{Fields: map[string]string{"email": "el email debe ser válido"}}
	if e.Error() == "" || e.Error() == "validation failed" {
		t.Fatalf("expected field detail in %q", e.Error())
	}
}
