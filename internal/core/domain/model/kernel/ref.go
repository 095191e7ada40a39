package kernel

import (
	"encoding/json"

	"fulfillment/internal/pkg/errs"
)

// Ref is a compatibility shim for identity references arriving from external
// callers. Historically the platform stored partner and customer references in
// two shapes: a raw string identifier ("a1b2...") and a structured reference
// object ({"id": "a1b2...", "name": "..."}). Ref accepts either shape during
// JSON unmarshaling and normalizes both into a single UUID, so the rest of
// the core performs exactly one equality check.
//
// Example:
//
//	var ref kernel.Ref
//	_ = json.Unmarshal([]byte(`"550e8400-e29b-41d4-a716-446655440000"`), &ref)
//	_ = json.Unmarshal([]byte(`{"id":"550e8400-e29b-41d4-a716-446655440000"}`), &ref)
//	// both yield the same ref.ID()
type Ref struct {
	id UUID
}

// RefFromUUID wraps an already normalized UUID into a Ref.
func RefFromUUID(id UUID) Ref {
	return Ref{id: id}
}

// RefFromAny normalizes an untyped reference value into a Ref.
// Accepts a plain string id or a map with an "id" key, mirroring the two
// shapes UnmarshalJSON handles. Any other shape is a ValueIsInvalidError.
func RefFromAny(value any) (Ref, error) {
	switch v := value.(type) {
	case string:
		id, err := UUIDFromString(v)
		if err != nil {
			return Ref{}, errs.NewValueIsInvalidErrorWithCause("reference", err)
		}
		return Ref{id: id}, nil
	case map[string]any:
		raw, ok := v["id"].(string)
		if !ok {
			return Ref{}, errs.NewValueIsRequiredError("reference id")
		}
		id, err := UUIDFromString(raw)
		if err != nil {
			return Ref{}, errs.NewValueIsInvalidErrorWithCause("reference", err)
		}
		return Ref{id: id}, nil
	default:
		return Ref{}, errs.NewValueIsInvalidError("reference")
	}
}

// ID returns the normalized identifier.
func (r Ref) ID() UUID {
	return r.id
}

// Validate checks that the reference resolved to a usable identifier.
func (r Ref) Validate() error {
	return r.id.Validate()
}

// UnmarshalJSON accepts both reference shapes: a JSON string holding the id,
// or a JSON object with an "id" field. Extra fields on the object form
// (name, phone) are ignored; only the identity matters for comparison.
func (r *Ref) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		id, idErr := UUIDFromString(asString)
		if idErr != nil {
			return errs.NewValueIsInvalidErrorWithCause("reference", idErr)
		}
		r.id = id
		return nil
	}

	var asObject struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &asObject); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("reference", err)
	}
	if asObject.ID == "" {
		return errs.NewValueIsRequiredError("reference id")
	}

	id, err := UUIDFromString(asObject.ID)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("reference", err)
	}
	r.id = id
	return nil
}

// MarshalJSON always emits the normalized string shape.
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.id.String())
}
