package infrastructure

import (
	"fmt"

	"github.com/Victor-armando18/vinyl-store/internal/domain/cart"
	"github.com/Victor-armando18/vinyl-store/internal/domain/form"
	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/goccy/go-json"
)

// ApplyValuesPatch applies an RFC 6902 patch to form values and returns the
// patched copy. The original values are returned untouched on failure.
func ApplyValuesPatch(original form.Values, patchData []byte) (form.Values, error) {
	if original == nil {
		original = form.Values{}
	}
	originalJSON, err := json.Marshal(original)
	if err != nil {
		return original, err
	}

	patch, err := jsonpatch.DecodePatch(patchData)
	if err != nil {
		return original, fmt.Errorf("decode patch: %w", err)
	}

	modifiedJSON, err := patch.Apply(originalJSON)
	if err != nil {
		return original, fmt.Errorf("apply patch: %w", err)
	}

	updated := form.Values{}
	if err := json.Unmarshal(modifiedJSON, &updated); err != nil {
		return original, err
	}
	return updated, nil
}

// CartDelta returns the JSON merge patch turning before into after, or nil
// when both carts serialize identically.
func CartDelta(before, after cart.Cart) (json.RawMessage, error) {
	beforeJSON, err := json.Marshal(cartDocument(before))
	if err != nil {
		return nil, err
	}
	afterJSON, err := json.Marshal(cartDocument(after))
	if err != nil {
		return nil, err
	}
	patch, err := jsonpatch.CreateMergePatch(beforeJSON, afterJSON)
	if err != nil {
		return nil, err
	}
	if len(patch) <= 2 {
		return nil, nil
	}
	return patch, nil
}

// cartDocument keys lines by id so the merge patch names what changed
// instead of replacing the whole item list.
func cartDocument(c cart.Cart) map[string]any {
	items := map[string]any{}
	for _, it := range c.Items() {
		items[string(it.ID)] = it
	}
	return map[string]any{
		"items":      items,
		"totalItems": c.TotalItems(),
		"totalPrice": c.TotalPrice(),
	}
}
