package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

var (
	// ErrInvalidTarget indicates the destination is not a non-nil pointer to a struct.
	ErrInvalidTarget = errors.New("binder: target must be a non-nil pointer to a struct")

	// ErrEmptyBody indicates the request carried no body.
	ErrEmptyBody = errors.New("binder: empty request body")

	// ErrMalformedBody indicates the body could not be decoded.
	ErrMalformedBody = errors.New("binder: malformed request body")

	// ErrUnsupportedField indicates a tagged form field has a kind the form binder cannot fill.
	ErrUnsupportedField = errors.New("binder: unsupported field type")
)

// MaxMultipartMemory caps how much of a multipart body is held in memory.
// Larger parts spill to temporary files.
const MaxMultipartMemory = 1 << 20

// Func decodes a request into v.
type Func func(r *http.Request, v any) error

// JSON decodes the request body as a single JSON document.
// Unknown fields are ignored.
func JSON() Func {
	return func(r *http.Request, v any) error {
		if err := checkTarget(v); err != nil {
			return err
		}
		if r.Body == nil || r.Body == http.NoBody {
			return ErrEmptyBody
		}
		if err := json.NewDecoder(r.Body).Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return ErrEmptyBody
			}
			return fmt.Errorf("%w: %w", ErrMalformedBody, err)
		}
		return nil
	}
}

// Form decodes url-encoded or multipart form values into fields tagged with `form:"name"`.
// Untagged fields fall back to the lowercased field name.
func Form() Func {
	return func(r *http.Request, v any) error {
		if err := checkTarget(v); err != nil {
			return err
		}
		if err := parseForm(r); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedBody, err)
		}
		return fill(reflect.ValueOf(v).Elem(), func(key string) (string, bool) {
			vals, ok := r.Form[key]
			if !ok || len(vals) == 0 {
				return "", false
			}
			return vals[0], true
		})
	}
}

// Auto picks JSON or Form from the request Content-Type. JSON is the default.
func Auto() Func {
	jsonBinder, formBinder := JSON(), Form()
	return func(r *http.Request, v any) error {
		mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		switch mediaType {
		case "application/x-www-form-urlencoded", "multipart/form-data":
			return formBinder(r, v)
		default:
			return jsonBinder(r, v)
		}
	}
}

// parseForm fills r.Form. ParseForm alone ignores multipart bodies.
func parseForm(r *http.Request) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.ParseForm()
	}
	if err := r.ParseMultipartForm(MaxMultipartMemory); err != nil {
		return err
	}
	if r.MultipartForm != nil {
		_ = r.MultipartForm.RemoveAll()
	}
	return nil
}

func checkTarget(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrInvalidTarget
	}
	return nil
}

func fill(rv reflect.Value, lookup func(string) (string, bool)) error {
	rt := rv.Type()
	for i := range rt.NumField() {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		key := sf.Tag.Get("form")
		if key == "-" {
			continue
		}
		if key == "" {
			key = strings.ToLower(sf.Name)
		}
		raw, ok := lookup(key)
		if !ok {
			continue
		}
		if err := setValue(rv.Field(i), raw); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
	}
	return nil
}

func setValue(f reflect.Value, raw string) error {
	switch f.Kind() {
	case reflect.String:
		f.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedBody, err)
		}
		f.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, f.Type().Bits())
		if err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedBody, err)
		}
		f.SetInt(n)
	default:
		return ErrUnsupportedField
	}
	return nil
}
