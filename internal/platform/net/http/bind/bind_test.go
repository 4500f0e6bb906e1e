package bind

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "rolegate/internal/platform/errors"
	kit "rolegate/internal/platform/testkit"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
)

// shared payload for many tests
type payload struct {
	Name string `json:"name" validate:"required,min=2"`
	Age  int    `json:"age" validate:"min=1"`
}

type filter struct {
	Search *string `json:"search"`
	Page   *int    `json:"page"`
}

func (filter) LenientJSON() {}

type titled struct {
	Title *string `json:"title" validate:"omitnil,notblank,max=10"`
}

type ruled struct {
	Code  string `json:"code"`
	Count int    `json:"count"`
}

func (r ruled) Validate() error {
	return ozzo.ValidateStruct(&r,
		ozzo.Field(&r.Code, ozzo.Required),
		ozzo.Field(&r.Count, ozzo.Min(0)),
	)
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestParseJSON_Success(t *testing.T) {
	got, err := ParseJSON[payload](post(`{"name":"Alice","age":3}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Alice" || got.Age != 3 {
		t.Fatalf("got %+v", got)
	}
}

func TestParseJSON_EmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
	if _, err := ParseJSON[payload](req); perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected JSON error code, got %v (%v)", perr.CodeOf(err), err)
	}

	del := httptest.NewRequest(http.MethodDelete, "/", http.NoBody)
	if _, err := ParseJSON[payload](del); err != nil {
		t.Fatalf("DELETE with empty body should pass: %v", err)
	}
}

func TestParseJSON_UnknownFieldRejectedOnStrictBodies(t *testing.T) {
	_, err := ParseJSON[payload](post(`{"name":"Al","age":2,"id":"x"}`))
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected unknown field rejection, got %v", err)
	}
}

func TestParseJSON_LenientFilter(t *testing.T) {
	got, err := ParseJSON[filter](post(`{"search":"alpha","sort":"whatever","extra":1}`))
	if err != nil {
		t.Fatalf("lenient body should ignore unknown fields: %v", err)
	}
	if got.Search == nil || *got.Search != "alpha" || got.Page != nil {
		t.Fatalf("got %+v", got)
	}

	empty := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
	got, err = ParseJSON[filter](empty)
	if err != nil || got.Search != nil {
		t.Fatalf("empty lenient body should decode to zero: %+v %v", got, err)
	}
}

func TestParseJSON_InvalidAndTrailing(t *testing.T) {
	if _, err := ParseJSON[payload](post(`{`)); perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("invalid json err=%v", err)
	}

	kit.Swap(t, &jsonMore, func(*json.Decoder) bool { return true })
	if _, err := ParseJSON[payload](post(`{"name":"Al","age":2}`)); perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("trailing data err=%v", err)
	}
}

func TestParseJSON_MaxBytes(t *testing.T) {
	_, err := ParseJSON[payload](post(`{"name":"Alice","age":3}`), JSONOptions{MaxBytes: 5, DisallowUnknown: true})
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("truncated body should fail as JSON, got %v", err)
	}
}

func TestParseJSON_ValidatorErrorCarriesField(t *testing.T) {
	_, err := ParseJSON[payload](post(`{"name":"A","age":3}`))
	e, ok := perr.As(err)
	if !ok || e.Code() != perr.ErrorCodeValidation || e.Field() != "name" {
		t.Fatalf("expected validation on name, got %v", err)
	}
	if !strings.Contains(err.Error(), "name must be at least 2") {
		t.Fatalf("short min message expected, got %q", err.Error())
	}
}

func TestParseJSON_NotBlank(t *testing.T) {
	_, err := ParseJSON[titled](post(`{"title":"   "}`))
	e, ok := perr.As(err)
	if !ok || e.Field() != "title" || !strings.Contains(err.Error(), "must not be blank") {
		t.Fatalf("blank title should fail: %v", err)
	}

	got, err := ParseJSON[titled](post(`{}`))
	if err != nil || got.Title != nil {
		t.Fatalf("absent title should pass: %+v %v", got, err)
	}
	if _, err := ParseJSON[titled](post(`{"title":"ok"}`)); err != nil {
		t.Fatalf("title ok: %v", err)
	}
}

func TestParseJSON_OzzoRules(t *testing.T) {
	_, err := ParseJSON[ruled](post(`{"code":"","count":1}`))
	e, ok := perr.As(err)
	if !ok || e.Code() != perr.ErrorCodeValidation || e.Field() != "code" {
		t.Fatalf("ozzo required should map to validation on code, got %v", err)
	}
	if _, err := ParseJSON[ruled](post(`{"code":"A1","count":0}`)); err != nil {
		t.Fatalf("valid ruled: %v", err)
	}
}

func TestParseJSON_MapPayload(t *testing.T) {
	got, err := ParseJSON[map[string]any](post(`{"k":"v"}`))
	if err != nil || got["k"] != "v" {
		t.Fatalf("map payload: %v %v", got, err)
	}
}

func TestFromOzzo(t *testing.T) {
	if FromOzzo(nil) != nil {
		t.Fatalf("nil should stay nil")
	}
	err := FromOzzo(ozzo.Errors{"b": ozzo.NewError("x", "bad b"), "a": ozzo.NewError("x", "bad a")})
	if e, ok := perr.As(err); !ok || e.Field() != "a" {
		t.Fatalf("first field by name expected, got %v", err)
	}
	err = FromOzzo(ozzo.Errors{"org": perr.Authorizationf("privilege escalation")})
	if e, ok := perr.As(err); !ok || e.Code() != perr.ErrorCodeForbidden || e.Field() != "org" {
		t.Fatalf("project errors keep their code, got %v", err)
	}
	if perr.CodeOf(FromOzzo(ozzo.NewError("x", "plain"))) != perr.ErrorCodeValidation {
		t.Fatalf("plain ozzo error should be validation")
	}
}

func TestTagNameFunc(t *testing.T) {
	type tagged struct {
		A string `json:"alpha,omitempty" validate:"required"`
		B string `json:"-" validate:"required"`
	}
	err := Get().Validator.Struct(tagged{B: "x"})
	if f, _ := ValidationFieldAndMessage(err); f != "alpha" {
		t.Fatalf("json tag name expected, got %q", f)
	}
	err = Get().Validator.Struct(tagged{A: "x"})
	if f, _ := ValidationFieldAndMessage(err); f != "B" {
		t.Fatalf("field name expected for dash tag, got %q", f)
	}
	if f, m := ValidationFieldAndMessage(nil); f != "" || m != "" {
		t.Fatalf("nil should be blank")
	}
}

func TestRegisterValidation(t *testing.T) {
	if err := RegisterValidation("always_ok", func(FieldLevel) bool { return true }); err != nil {
		t.Fatalf("RegisterValidation: %v", err)
	}
	type s struct {
		V string `json:"v" validate:"always_ok"`
	}
	if err := Get().Validator.Struct(s{}); err != nil {
		t.Fatalf("custom tag should pass: %v", err)
	}
}
