package middleware

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v3"

	"devjobs/internal/pkg/response"
	"devjobs/internal/pkg/validate"
)

func TestNormalizeError_BodyOverServerLimit(t *testing.T) {
	// fiber rejects a body over BodyLimit before any middleware runs, so the
	// oversize-upload message must come out of the generic classification.
	status, msg, _ := normalizeError(fiber.ErrRequestEntityTooLarge)
	if status != fiber.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", status)
	}
	if msg != msgFileTooLarge {
		t.Fatalf("expected %q, got %q", msgFileTooLarge, msg)
	}

	status, msg, _ = normalizeError(fiber.NewError(fiber.StatusRequestEntityTooLarge, "body too large"))
	if status != fiber.StatusRequestEntityTooLarge || msg != msgFileTooLarge {
		t.Fatalf("any 413 must carry the upload message, got %d %q", status, msg)
	}
}

func TestNormalizeError_ValidationFieldMap(t *testing.T) {
	vErr := &validate.Error{Fields: map[string]string{"email": "el email debe ser válido"}}

	status, msg, data := normalizeError(vErr)
	if status != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", status)
	}
	if msg != response.MessageUnprocessableEntity {
		t.Fatalf("unexpected message %q", msg)
	}
	fields, ok := data.(map[string]string)
	if !ok || fields["email"] == "" {
		t.Fatalf("field map not surfaced: %v", data)
	}
}

func TestNormalizeError_AppErrorPassthrough(t *testing.T) {
	status, msg, _ := normalizeError(NewAppError(fiber.StatusConflict, "ya existe", nil, nil))
	if status != fiber.StatusConflict || msg != "ya existe" {
		t.Fatalf("got %d %q", status, msg)
	}
}

func TestNormalizeError_ServerErrorsCollapse(t *testing.T) {
	for _, err := range []error{
		errors.New("pool exhausted"),
		NewAppError(fiber.StatusBadGateway, "upstream detail", nil, nil),
		fiber.NewError(fiber.StatusServiceUnavailable, "detail"),
	} {
		status, msg, _ := normalizeError(err)
		if status != fiber.StatusInternalServerError {
			t.Fatalf("%v: expected 500, got %d", err, status)
		}
		if msg != response.MessageInternalServerError {
			t.Fatalf("%v: internal detail leaked as %q", err, msg)
		}
	}
}
