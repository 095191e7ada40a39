package kernel_test

import (
	"encoding/json"
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleID = "550e8400-e29b-41d4-a716-446655440000"

func TestRef_UnmarshalJSON(t *testing.T) {
	t.Run("raw_string_shape", func(t *testing.T) {
		var ref kernel.Ref

		err := json.Unmarshal([]byte(`"`+sampleID+`"`), &ref)

		require.NoError(t, err)
		assert.Equal(t, sampleID, ref.ID().String())
	})

	t.Run("structured_shape", func(t *testing.T) {
		var ref kernel.Ref

		err := json.Unmarshal([]byte(`{"id":"`+sampleID+`","name":"Ravi","phone":"+91900"}`), &ref)

		require.NoError(t, err)
		assert.Equal(t, sampleID, ref.ID().String())
	})

	t.Run("both_shapes_resolve_to_same_identity", func(t *testing.T) {
		var asString, asObject kernel.Ref

		require.NoError(t, json.Unmarshal([]byte(`"`+sampleID+`"`), &asString))
		require.NoError(t, json.Unmarshal([]byte(`{"id":"`+sampleID+`"}`), &asObject))

		assert.True(t, asString.ID().IsEqual(asObject.ID()))
	})

	t.Run("object_without_id_fails", func(t *testing.T) {
		var ref kernel.Ref

		err := json.Unmarshal([]byte(`{"name":"Ravi"}`), &ref)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("malformed_id_fails", func(t *testing.T) {
		var ref kernel.Ref

		err := json.Unmarshal([]byte(`"not-a-uuid"`), &ref)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRefFromAny(t *testing.T) {
	t.Run("string_value", func(t *testing.T) {
		ref, err := kernel.RefFromAny(sampleID)

		require.NoError(t, err)
		assert.Equal(t, sampleID, ref.ID().String())
	})

	t.Run("map_value", func(t *testing.T) {
		ref, err := kernel.RefFromAny(map[string]any{"id": sampleID, "name": "Ravi"})

		require.NoError(t, err)
		assert.Equal(t, sampleID, ref.ID().String())
	})

	t.Run("unsupported_shape", func(t *testing.T) {
		_, err := kernel.RefFromAny(42)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRef_MarshalJSON(t *testing.T) {
	t.Run("emits_normalized_string_shape", func(t *testing.T) {
		id, err := kernel.UUIDFromString(sampleID)
		require.NoError(t, err)

		data, err := json.Marshal(kernel.RefFromUUID(id))

		require.NoError(t, err)
		assert.JSONEq(t, `"`+sampleID+`"`, string(data))
	})
}

func TestRoleFromString(t *testing.T) {
	t.Run("valid_roles", func(t *testing.T) {
		for _, s := range []string{"admin", "delivery", "customer"} {
			role, err := kernel.RoleFromString(s)
			require.NoError(t, err)
			require.NoError(t, role.Validate())
			assert.Equal(t, s, role.String())
		}
	})

	t.Run("invalid_role", func(t *testing.T) {
		_, err := kernel.RoleFromString("superuser")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var role kernel.Role
		require.Error(t, role.Validate())
		assert.Equal(t, "unknown", role.String())
	})
}
