package pkg

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// ValidationError agrupa todas las reglas incumplidas de una petición
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// Add añade un mensaje; útil para reglas que no cubre el validador
func (e *ValidationError) Add(message string) {
	e.Messages = append(e.Messages, message)
}

// Err devuelve nil si no se ha acumulado ningún mensaje
func (e *ValidationError) Err() error {
	if e == nil || len(e.Messages) == 0 {
		return nil
	}
	return e
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	// Los mensajes usan el nombre JSON del campo
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// messages traduce (campo, regla) a un mensaje legible para el cliente
var messages = map[string]func(value any) string{
	"title.notblank":    func(any) string { return "El título es requerido." },
	"status.oneof":      func(v any) string { return fmt.Sprintf("Estado inválido: %q", fmt.Sprint(v)) },
	"priority.oneof":    func(v any) string { return fmt.Sprintf("Prioridad inválida: %q", fmt.Sprint(v)) },
	"color.hexcolor":    func(v any) string { return fmt.Sprintf("Color inválido: %q", fmt.Sprint(v)) },
	"name.notblank":     func(any) string { return "El nombre es obligatorio" },
	"username.notblank": func(any) string { return "El nombre de usuario es obligatorio" },
	"password.notblank": func(any) string { return "La contraseña es obligatoria" },
	"role.notblank":     func(any) string { return "El rol es obligatorio" },
}

// Validate comprueba las etiquetas `validate` del struct y devuelve un
// *ValidationError con todas las reglas incumplidas, o nil.
func Validate(s any) *ValidationError {
	err := validate.Struct(s)
	if err == nil {
		return &ValidationError{}
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return NewValidationError(err.Error())
	}

	out := &ValidationError{}
	for _, fe := range fieldErrors {
		out.Add(translate(fe))
	}
	return out
}

func translate(fe validator.FieldError) string {
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		value := fe.Value()
		if rv := reflect.ValueOf(value); rv.Kind() == reflect.Pointer && !rv.IsNil() {
			value = rv.Elem().Interface()
		}
		return msg(value)
	}
	return fmt.Sprintf("Campo inválido: %s", fe.Field())
}

// ParseIDs interpreta una lista de identificadores recibida en JSON. Acepta
// números enteros y strings numéricos; ok es false si algún elemento no lo es.
func ParseIDs(value any) (ids []int64, ok bool) {
	if value == nil {
		return []int64{}, true
	}
	list, isList := value.([]any)
	if !isList {
		return nil, false
	}

	ids = make([]int64, 0, len(list))
	for _, item := range list {
		switch v := item.(type) {
		case float64:
			if v != float64(int64(v)) {
				return nil, false
			}
			ids = append(ids, int64(v))
		case string:
			id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return nil, false
			}
			ids = append(ids, id)
		default:
			return nil, false
		}
	}
	return ids, true
}

// ParseID valida el :id de la ruta
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
