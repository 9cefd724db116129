package mapping

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DaviCMachado/my-price-tracker/internal/model"
)

// DisplayDateLayout is the dd/mm/yyyy label shown next to each record,
// captured once at submit time and never recomputed.
const DisplayDateLayout = "02/01/2006"

// RecordDraft carries the raw form fields of the new/edit price record form.
// PriceText is unparsed user text.
type RecordDraft struct {
	Product   string
	Store     string
	PromoFlag string
	PriceText string
}

// NewRecordPayload validates a create-path draft and produces the record to
// persist. RecordedAt is left zero for the database to stamp; DisplayDate is
// stamped here from now.
func NewRecordPayload(draft RecordDraft, now time.Time) (*model.PriceRecord, error) {
	price, err := validateDraft(&draft)
	if err != nil {
		return nil, err
	}
	return &model.PriceRecord{
		Product:     draft.Product,
		StoreName:   draft.Store,
		Price:       price,
		PromoFlag:   draft.PromoFlag,
		DisplayDate: now.Format(DisplayDateLayout),
	}, nil
}

// ApplyRecordEdit validates an edit-path draft and overwrites the editable
// fields of record. RecordedAt and DisplayDate are never touched.
func ApplyRecordEdit(record *model.PriceRecord, draft RecordDraft) error {
	price, err := validateDraft(&draft)
	if err != nil {
		return err
	}
	record.Product = draft.Product
	record.StoreName = draft.Store
	record.Price = price
	record.PromoFlag = draft.PromoFlag
	return nil
}

// DraftFromRecord loads a stored record back into editable form state.
// The price round-trips exactly for values with at most two fractional digits.
func DraftFromRecord(record *model.PriceRecord) RecordDraft {
	return RecordDraft{
		Product:   record.Product,
		Store:     record.StoreName,
		PromoFlag: record.PromoFlag,
		PriceText: record.Price.String(),
	}
}

// validateDraft trims, checks required fields, defaults the promo flag and
// parses the price text. Returns the parsed price on success.
func validateDraft(draft *RecordDraft) (decimal.Decimal, error) {
	draft.Product = strings.TrimSpace(draft.Product)
	draft.Store = strings.TrimSpace(draft.Store)

	fields := make(map[string]string)
	if draft.Product == "" {
		fields["product"] = "required"
	}
	if draft.Store == "" {
		fields["store"] = "required"
	}

	if draft.PromoFlag == "" {
		draft.PromoFlag = model.PromoWithoutLoyalty
	}
	if draft.PromoFlag != model.PromoWithLoyalty && draft.PromoFlag != model.PromoWithoutLoyalty {
		fields["promo_flag"] = "must be with_loyalty or without_loyalty"
	}

	price, err := decimal.NewFromString(strings.TrimSpace(draft.PriceText))
	switch {
	case err != nil:
		fields["price"] = "must be a number"
	case price.IsNegative():
		fields["price"] = "must not be negative"
	}

	if verr := newValidationError(fields); verr != nil {
		return decimal.Decimal{}, verr
	}
	return price, nil
}
