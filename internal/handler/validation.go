// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strings"

	"github.com/kedjora/kedjora-go/internal/service"
)

// optionalFormValue returns nil when the form does not carry name, so the
// service layer can tell "absent" from "blank".
func optionalFormValue(r *http.Request, name string) *string {
	if _, ok := r.Form[name]; !ok {
		return nil
	}
	v := strings.TrimSpace(r.Form.Get(name))
	return &v
}

// orderFromForm reads the contact form into an order request.
func orderFromForm(r *http.Request) service.OrderInput {
	return service.OrderInput{
		Name:      r.FormValue("name"),
		Email:     r.FormValue("email"),
		Phone:     optionalFormValue(r, "phone"),
		ServiceID: r.FormValue("serviceId"),
		Message:   r.FormValue("message"),
	}
}

// isJSONRequest reports whether the client sent a JSON body.
func isJSONRequest(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get(HeaderContentType), "application/json")
}
