package mapping

import (
	"strings"

	"github.com/DaviCMachado/my-price-tracker/internal/model"
)

// StoreDraft carries the raw form fields of the new/edit store form.
type StoreDraft struct {
	Name     string
	Address  string
	ColorTag string
}

// NewStorePayload validates a store draft and produces the store to persist.
// Address is optional; the color tag defaults to the standard palette default.
func NewStorePayload(draft StoreDraft) (*model.Store, error) {
	name, address, color, err := validateStoreDraft(draft)
	if err != nil {
		return nil, err
	}
	return &model.Store{Name: name, Address: address, ColorTag: color}, nil
}

// ApplyStoreEdit overwrites the editable fields of store from draft.
func ApplyStoreEdit(store *model.Store, draft StoreDraft) error {
	name, address, color, err := validateStoreDraft(draft)
	if err != nil {
		return err
	}
	store.Name = name
	store.Address = address
	store.ColorTag = color
	return nil
}

func validateStoreDraft(draft StoreDraft) (name string, address *string, color string, err error) {
	name = strings.TrimSpace(draft.Name)
	color = draft.ColorTag

	fields := make(map[string]string)
	if name == "" {
		fields["name"] = "required"
	}
	if color == "" {
		color = model.DefaultColorTag
	} else if !validColorTag(color) {
		fields["color_tag"] = "not in palette"
	}

	if addr := strings.TrimSpace(draft.Address); addr != "" {
		address = &addr
	}

	err = newValidationError(fields)
	return name, address, color, err
}

func validColorTag(tag string) bool {
	for _, c := range model.ColorPalette {
		if c == tag {
			return true
		}
	}
	return false
}
