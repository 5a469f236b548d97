// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"

	"github.com/mitchellh/mapstructure"
)

const maxBodyBytes = 1 << 20

// ParseBody decodes a JSON or url-encoded form body into v. Form fields are
// matched by their json tag; empty form values are left unset.
func ParseBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		return json.NewDecoder(r.Body).Decode(v)
	}

	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("invalid form body: %w", err)
	}
	return DecodeForm(r.PostForm, v)
}

// DecodeForm maps form values onto v's json-tagged fields, converting
// strings to numbers, booleans, and text-unmarshalable types.
func DecodeForm(form map[string][]string, v interface{}) error {
	input := make(map[string]interface{}, len(form))
	for key, values := range form {
		if len(values) == 0 || values[0] == "" {
			continue
		}
		input[key] = values[0]
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.TextUnmarshallerHookFunc(),
		Result:           v,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}
