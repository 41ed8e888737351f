package pagination

import (
	"testing"

	"restaurant-graphql-api/internal/apperr"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		page Page
		ok   bool
	}{
		{Default(), true},
		{Page{Skip: 0, Limit: 1}, true},
		{Page{Skip: 500, Limit: MaxLimit}, true},
		{Page{Skip: -1, Limit: 10}, false},
		{Page{Skip: 0, Limit: 0}, false},
		{Page{Skip: 0, Limit: MaxLimit + 1}, false},
	}
	for _, tc := range cases {
		err := tc.page.Validate()
		if tc.ok && err != nil {
			t.Errorf("%+v: unexpected error %v", tc.page, err)
		}
		if !tc.ok && !apperr.Is(err, apperr.KindInvalidInput) {
			t.Errorf("%+v: want InvalidInput, got %v", tc.page, err)
		}
	}
}
