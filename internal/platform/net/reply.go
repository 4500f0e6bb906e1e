package net

import (
	"net/http"

	perr "rolegate/internal/platform/errors"
)

// Wire is the response envelope every JSON endpoint writes
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Pagination any            `json:"pagination,omitempty"`
	Data       any            `json:"data,omitempty"`
}

func envelope(status int, reqID string) Wire {
	return Wire{StatusCode: status, Status: http.StatusText(status), RequestID: reqID}
}

// OK is a 200 carrying data
func OK(data any, reqID string) (int, Wire) {
	w := envelope(http.StatusOK, reqID)
	w.Data = data
	return w.StatusCode, w
}

// Created is a 201 carrying the new resource
func Created(data any, reqID string) (int, Wire) {
	w := envelope(http.StatusCreated, reqID)
	w.Data = data
	return w.StatusCode, w
}

// Page is a 200 with a pagination block beside data
// Pass a non nil slice so an empty page renders "data": []
func Page(data, pagination any, reqID string) (int, Wire) {
	status, w := OK(data, reqID)
	w.Pagination = pagination
	return status, w
}

// Error renders err with the status its code maps to. Causes never leak
func Error(err error, reqID string) (int, Wire) {
	if err == nil {
		return OK(nil, reqID)
	}
	pw := perr.WireFrom(err)
	w := envelope(pw.Code.Status(), reqID)
	w.Code, w.Error, w.Field = pw.Code, pw.Message, pw.Field
	return w.StatusCode, w
}
