package utils_test

import (
	"reflect"
	"testing"

	"oficina-backend/utils"
)

func TestDigits(t *testing.T) {
	if got := utils.Digits("123.456.789-00"); got != "12345678900" {
		t.Errorf("Digits = %q", got)
	}
	if got := utils.Digits("(11) 99876-5432"); got != "11998765432" {
		t.Errorf("Digits = %q", got)
	}
}

func TestUpdatesFromPtrDTO(t *testing.T) {
	name := "  Ana "
	rate := 25.0
	dto := struct {
		Name    *string  `json:"name"`
		Rate    *float64 `json:"commission_rate"`
		Skipped *string  `json:"skipped"`
		Hidden  *string  `json:"-"`
	}{Name: &name, Rate: &rate}

	utils.NormalizeDTO(&dto)
	got := utils.UpdatesFromPtrDTO(&dto, nil)

	want := map[string]any{"name": "Ana", "commission_rate": 25.0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UpdatesFromPtrDTO = %#v, want %#v", got, want)
	}
}
