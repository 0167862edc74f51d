// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package vartype

import (
	"encoding/json"
	"testing"
)

func TestVariable(t *testing.T) {
	t.Run("a zero variable is not set", func(t *testing.T) {
		var v VarFloat64
		if v.IsSet() {
			t.Error("expected variable not to be set")
		}
		if v.String() != "n/a" {
			t.Errorf("expected placeholder string, got %q", v.String())
		}
	})
	t.Run("a new variable is set", func(t *testing.T) {
		v := NewVariable(4.5)
		if !v.IsSet() {
			t.Error("expected variable to be set")
		}
		if v.Value() != 4.5 {
			t.Errorf("expected value to be 4.5, got %f", v.Value())
		}
		if v.String() != "4.5" {
			t.Errorf("expected string to be 4.5, got %q", v.String())
		}
	})
	t.Run("set marks the variable as set", func(t *testing.T) {
		var v VarInt
		v.Set(0)
		if !v.IsSet() {
			t.Error("expected variable to be set")
		}
	})
}

func TestVariable_JSON(t *testing.T) {
	type payload struct {
		Visibility VarFloat64 `json:"visibility"`
		Speed      VarFloat64 `json:"speed"`
		Gust       VarFloat64 `json:"gust"`
	}
	t.Run("present fields are set and missing fields are not", func(t *testing.T) {
		var p payload
		if err := json.Unmarshal([]byte(`{"visibility":0,"speed":null}`), &p); err != nil {
			t.Fatalf("failed to unmarshal payload: %s", err)
		}
		if !p.Visibility.IsSet() {
			t.Error("expected a zero visibility to be set")
		}
		if p.Speed.IsSet() {
			t.Error("expected a null speed not to be set")
		}
		if p.Gust.IsSet() {
			t.Error("expected a missing gust not to be set")
		}
	})
	t.Run("invalid values fail to unmarshal", func(t *testing.T) {
		var p payload
		if err := json.Unmarshal([]byte(`{"visibility":"far"}`), &p); err == nil {
			t.Error("expected unmarshal to fail")
		}
	})
	t.Run("unset variables marshal to null", func(t *testing.T) {
		data, err := json.Marshal(payload{Visibility: NewVariable(10000.0)})
		if err != nil {
			t.Fatalf("failed to marshal payload: %s", err)
		}
		want := `{"visibility":10000,"speed":null,"gust":null}`
		if string(data) != want {
			t.Errorf("expected %s, got %s", want, data)
		}
	})
}
