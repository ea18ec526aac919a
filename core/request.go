package core

import (
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

type bodyKind int

const (
	bodyNone bodyKind = iota
	bodyJSON
	bodyBytes
	bodyMultipart
)

// Request describes one call relative to the service endpoint. It is built
// per call and never shared.
type Request struct {
	Method  string
	Path    string
	Query   []QueryParam
	Headers http.Header
	Timeout time.Duration

	pathParams  map[string]string
	kind        bodyKind
	jsonBody    any
	rawBody     []byte
	contentType string
	parts       []FormPart
	stream      bool
}

// NewRequest starts a descriptor. Path segments written as {name} are filled
// by WithPathParam.
func NewRequest(method, path string) *Request {
	return &Request{
		Method:  strings.ToUpper(strings.TrimSpace(method)),
		Path:    path,
		Headers: http.Header{},
	}
}

func (r *Request) WithPathParam(name, value string) *Request {
	if r.pathParams == nil {
		r.pathParams = map[string]string{}
	}
	r.pathParams[name] = value
	return r
}

// WithQuery sets a query argument. Absent values (nil, nil pointers, empty
// strings, empty lists) are skipped entirely and lists are comma-joined.
// Setting a key twice keeps the last value in its original position.
func (r *Request) WithQuery(key string, value any) *Request {
	formatted, ok := FormatValue(value)
	if !ok {
		return r
	}
	for i := range r.Query {
		if r.Query[i].Key == key {
			r.Query[i].Value = formatted
			return r
		}
	}
	r.Query = append(r.Query, QueryParam{Key: key, Value: formatted})
	return r
}

// WithHeader follows the same omit-if-absent rule as WithQuery.
func (r *Request) WithHeader(key string, value any) *Request {
	formatted, ok := FormatValue(value)
	if !ok {
		return r
	}
	r.Headers.Set(key, formatted)
	return r
}

func (r *Request) WithAccept(accept string) *Request {
	return r.WithHeader("Accept", accept)
}

func (r *Request) WithJSON(body any) *Request {
	r.kind = bodyJSON
	r.jsonBody = body
	return r
}

func (r *Request) WithBytes(data []byte, contentType string) *Request {
	r.kind = bodyBytes
	r.rawBody = data
	r.contentType = contentType
	return r
}

func (r *Request) WithMultipart(parts ...FormPart) *Request {
	r.kind = bodyMultipart
	r.parts = append(r.parts, parts...)
	return r
}

func (r *Request) WithTimeout(timeout time.Duration) *Request {
	r.Timeout = timeout
	return r
}

// Stream marks the call as returning a body the caller reads incrementally.
func (r *Request) Stream() *Request {
	r.stream = true
	return r
}

// ResolvedPath substitutes path parameters, escaping each value.
func (r *Request) ResolvedPath() (string, error) {
	path := r.Path
	for name, value := range r.pathParams {
		placeholder := "{" + name + "}"
		if !strings.Contains(path, placeholder) {
			return "", InternalFault(fmt.Sprintf("watson: path %q has no parameter %q", r.Path, name))
		}
		path = strings.ReplaceAll(path, placeholder, url.PathEscape(value))
	}
	if start := strings.Index(path, "{"); start >= 0 {
		if end := strings.Index(path[start:], "}"); end > 0 {
			return "", NewArgumentFault(path[start+1 : start+end])
		}
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path, nil
}

// FormatValue renders a query or header value. The boolean result is false
// when the value is absent.
func FormatValue(value any) (string, bool) {
	if isNilValue(value) {
		return "", false
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.String:
		if rv.String() == "" {
			return "", false
		}
		return rv.String(), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32), true
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true
	case reflect.Slice, reflect.Array:
		items := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			if item, ok := FormatValue(rv.Index(i).Interface()); ok {
				items = append(items, item)
			}
		}
		if len(items) == 0 {
			return "", false
		}
		return strings.Join(items, ","), true
	default:
		if stringer, ok := value.(fmt.Stringer); ok {
			text := stringer.String()
			return text, text != ""
		}
		return fmt.Sprint(rv.Interface()), true
	}
}
