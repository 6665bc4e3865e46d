package order

import (
	"regexp"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Field names a draft attribute settable from the checkout forms. The set is
// closed: Draft.Set rejects anything else.
type Field string

const (
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
	FieldAddress Field = "address"
	FieldPayment Field = "payment"
)

// Sentinel errors for draft field assignment.
var (
	ErrUnknownField   = errors.New("unknown order field")
	ErrUnknownPayment = errors.New("unknown payment method")
)

// Validation patterns. The email pattern requires a dot in the domain and no
// whitespace or second @ in either part; the phone pattern accepts an
// optional leading +, then 2-15 digits with a non-zero first digit.
var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[1-9][0-9]{1,14}$`)
)

// Human-readable validation conditions, surfaced to the user as inline form
// errors. AllErrors reports them in this fixed order.
const (
	condEmailRequired    = "email is required"
	condEmailInvalid     = "invalid email format"
	condPhoneRequired    = "phone is required"
	condPhoneInvalid     = "invalid phone number"
	condAddressRequired  = "delivery address is required"
	condPaymentRequired  = "payment method is required"
	condBasketEmpty      = "basket is empty"
	condNoItemsSelected  = "no items selected"
	condTotalNotPositive = "order total must be positive"
)

// Draft accumulates checkout field values as the user completes the delivery
// form and then the contact form. The zero value is an empty draft.
type Draft struct {
	email   string
	phone   string
	address string
	payment Payment
}

// NewDraft returns an empty draft.
func NewDraft() *Draft {
	return &Draft{}
}

// Set assigns one named field. Unknown field names and unknown payment
// methods are rejected; any string is accepted for the remaining fields,
// validity being a separate question answered by the error accessors.
func (d *Draft) Set(field Field, value string) error {
	switch field {
	case FieldEmail:
		d.email = value
	case FieldPhone:
		d.phone = value
	case FieldAddress:
		d.address = value
	case FieldPayment:
		p := Payment(value)
		if p != PaymentOnline && p != PaymentCash {
			return errors.Wrapf(ErrUnknownPayment, "%q", value)
		}
		d.payment = p
	default:
		return errors.Wrapf(ErrUnknownField, "%q", field)
	}
	return nil
}

// Accessors for the current field values. Empty string means absent.

func (d *Draft) Email() string    { return d.email }
func (d *Draft) Phone() string    { return d.phone }
func (d *Draft) Address() string  { return d.address }
func (d *Draft) Payment() Payment { return d.payment }

// Clear resets every field to absent.
func (d *Draft) Clear() {
	*d = Draft{}
}

// Empty reports whether no field has been set.
func (d *Draft) Empty() bool {
	return *d == Draft{}
}

// Validate is the single source of truth for submit-readiness: the draft may
// be submitted only when the email and phone match their patterns, the
// address is non-blank, the payment method is set, and the basket is
// non-empty.
func (d *Draft) Validate(basketEmpty bool) bool {
	return d.email != "" &&
		d.phone != "" &&
		strings.TrimSpace(d.address) != "" &&
		d.payment != "" &&
		!basketEmpty &&
		emailPattern.MatchString(d.email) &&
		phonePattern.MatchString(d.phone)
}

// ContactErrors reports the unmet conditions of the contact form: email and
// phone format. It gates the second-step "Pay" control.
func (d *Draft) ContactErrors() []string {
	var errs []string
	switch {
	case d.email == "":
		errs = append(errs, condEmailRequired)
	case !emailPattern.MatchString(d.email):
		errs = append(errs, condEmailInvalid)
	}
	switch {
	case d.phone == "":
		errs = append(errs, condPhoneRequired)
	case !phonePattern.MatchString(d.phone):
		errs = append(errs, condPhoneInvalid)
	}
	return errs
}

// DeliveryErrors reports the unmet conditions of the delivery form: address,
// payment method, and basket non-emptiness. It gates the first-step "Next"
// control.
func (d *Draft) DeliveryErrors(basketEmpty bool) []string {
	var errs []string
	if strings.TrimSpace(d.address) == "" {
		errs = append(errs, condAddressRequired)
	}
	if d.payment == "" {
		errs = append(errs, condPaymentRequired)
	}
	if basketEmpty {
		errs = append(errs, condBasketEmpty)
	}
	return errs
}

// AllErrors reports every unmet condition in the fixed order: email, phone,
// address, payment, basket-empty.
func (d *Draft) AllErrors(basketEmpty bool) []string {
	errs := d.ContactErrors()
	return append(errs, d.DeliveryErrors(basketEmpty)...)
}

// Build assembles the submission payload from the draft plus the
// basket-derived total and selected item IDs. It fails with a
// *ValidationError carrying the ordered unmet conditions when the draft is
// not submittable, when no item is selected, or when the total is not
// positive. This is the only path that reaches the remote submission call.
func (d *Draft) Build(total decimal.Decimal, itemIDs []string, basketEmpty bool) (Order, error) {
	conds := d.AllErrors(basketEmpty)
	if len(conds) == 0 {
		if len(itemIDs) == 0 {
			conds = append(conds, condNoItemsSelected)
		} else if !total.IsPositive() {
			conds = append(conds, condTotalNotPositive)
		}
	}
	if len(conds) > 0 {
		return Order{}, &ValidationError{Conditions: conds}
	}

	return Order{
		Email:   d.email,
		Phone:   d.phone,
		Address: d.address,
		Payment: d.payment,
		Total:   total,
		Items:   itemIDs,
	}, nil
}
