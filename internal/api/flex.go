// ABOUTME: Lenient numeric JSON field for form-driven clients.
// ABOUTME: Accepts numbers, numeric strings, empty strings and null.
package api

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// flexFloat decodes a number sent either as a JSON number or a string.
// Unparseable strings decode as missing rather than failing the request.
type flexFloat struct {
	v   float64
	set bool
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = flexFloat{}
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			*f = flexFloat{}
			return nil
		}
		*f = flexFloat{v: v, set: true}
		return nil
	}

	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = flexFloat{v: v, set: true}
	return nil
}

// value returns the number, or zero when missing.
func (f flexFloat) value() float64 {
	return f.v
}

func (f flexFloat) ptr() *float64 {
	if !f.set {
		return nil
	}
	v := f.v
	return &v
}

func (f flexFloat) intPtr() *int {
	if !f.set {
		return nil
	}
	n := int(math.Round(f.v))
	return &n
}
