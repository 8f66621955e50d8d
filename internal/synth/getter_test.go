package synth

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/macrogen/pkg/macro"
	"github.com/cmmoran/macrogen/pkg/model"
)

func TestGetter(t *testing.T) {
	got, err := Getter("Account", field("_balance", "double?"), []string{"owner"}, nil)
	require.NoError(t, err)
	require.Equal(t, &model.GeneratedGetter{
		Class: "Account",
		Field: "_balance",
		Name:  "balance",
		Type:  model.TypeRef{Name: "double", Nullable: true},
	}, got)
}

func TestGetterErrors(t *testing.T) {
	tests := []struct {
		name     string
		field    model.Field
		existing []string
		target   any
	}{
		{name: "public field", field: field("balance", "int"), target: new(*macro.InvalidGetterNameError)},
		{name: "marker only", field: field("_", "int"), target: new(*macro.InvalidGetterNameError)},
		{name: "existing getter", field: field("_owner", "String"), existing: []string{"owner"}, target: new(*macro.DuplicateGetterError)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Getter("Account", tt.field, tt.existing, macro.NewOptions())
			require.Nil(t, got)
			require.Error(t, err)
			require.True(t, errors.As(err, tt.target), "unexpected error %v", err)
			require.True(t, macro.IsFatal(err))
		})
	}
}
