package validation

import (
	"testing"

	"github.com/fekuna/ventstock/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "integer", in: "60", want: "60"},
		{name: "decimal with spaces", in: "  40.50 ", want: "40.5"},
		{name: "zero", in: "0", want: "0"},
		{name: "negative", in: "-1", wantErr: true},
		{name: "not a number", in: "abc", wantErr: true},
		{name: "blank", in: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Money("price", tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperror.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestQuantity(t *testing.T) {
	n, err := Quantity("quantity", "")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = Quantity("quantity", "12")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	_, err = Quantity("quantity", "-3")
	assert.True(t, apperror.IsValidation(err))

	_, err = Quantity("quantity", "2.5")
	assert.True(t, apperror.IsValidation(err))
}

func TestRequiredAndOptional(t *testing.T) {
	_, err := Required("name", "  ")
	assert.True(t, apperror.IsValidation(err))

	v, err := Required("name", " Axial-300 ")
	require.NoError(t, err)
	assert.Equal(t, "Axial-300", v)

	assert.Nil(t, Optional("   "))
	require.NotNil(t, Optional(" 1200 m3/h "))
	assert.Equal(t, "1200 m3/h", *Optional(" 1200 m3/h "))
}

func TestID(t *testing.T) {
	id, err := ID("id", "7")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	_, err = ID("id", "0")
	assert.True(t, apperror.IsValidation(err))
}
