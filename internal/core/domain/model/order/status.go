package order

import (
	"fmt"
	"strings"

	"storefront/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// The nominal progression is
//
//	Pending -> Confirmed -> InProduction -> QualityCheck -> ReadyToShip -> Shipped -> Delivered
//
// and Cancelled is reachable from any non-terminal state. Administrators may
// also move a non-terminal order to any other status (manual correction), so
// the only hard rules are: Delivered and Cancelled are terminal, the target
// must be a known status, and the target must differ from the current one.
type Status int

const (
	// Unknown is the zero value and never valid.
	Unknown Status = iota
	Pending
	Confirmed
	InProduction
	QualityCheck
	ReadyToShip
	Shipped
	Delivered
	Cancelled
)

type statusInfo struct {
	code        string
	label       string
	description string
	terminal    bool
}

// statusTable is the single source for codes, labels and customer-facing text.
// Pending and Cancelled have no description on purpose; notifications fall back
// to GenericStatusDescription for them.
//
//nolint:gochecknoglobals // read-only lookup table
var statusTable = map[Status]statusInfo{
	Pending:      {code: "pending", label: "Pending"},
	Confirmed:    {code: "confirmed", label: "Confirmed", description: "Your order has been confirmed and is being prepared."},
	InProduction: {code: "in_production", label: "In Production", description: "Your custom jewelry is now being crafted by our artisans."},
	QualityCheck: {code: "quality_check", label: "Quality Check", description: "Your jewelry is undergoing final quality checks."},
	ReadyToShip:  {code: "ready_to_ship", label: "Ready to Ship", description: "Your order is ready and will be shipped soon."},
	Shipped:      {code: "shipped", label: "Shipped", description: "Your order has been shipped and is on its way to you."},
	Delivered:    {code: "delivered", label: "Delivered", description: "Your order has been delivered. We hope you love it!", terminal: true},
	Cancelled:    {code: "cancelled", label: "Cancelled", terminal: true},
}

// GenericStatusDescription is used for statuses without a dedicated text.
const GenericStatusDescription = "Your order status has been updated."

// AllStatuses lists the valid statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Confirmed, InProduction, QualityCheck, ReadyToShip, Shipped, Delivered, Cancelled}
}

// ParseStatus maps a wire code such as "in_production" to a Status.
// Unrecognised codes yield Unknown.
func ParseStatus(code string) Status {
	code = strings.ToLower(strings.TrimSpace(code))
	for s, info := range statusTable {
		if info.code == code {
			return s
		}
	}
	return Unknown
}

func (s Status) Validate() error {
	if _, ok := statusTable[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire code, or "unknown".
func (s Status) String() string {
	if info, ok := statusTable[s]; ok {
		return info.code
	}
	return "unknown"
}

// Label returns the display name, e.g. "Ready to Ship".
func (s Status) Label() string {
	if info, ok := statusTable[s]; ok {
		return info.label
	}
	return "Unknown"
}

// Description returns the customer-facing text for s.
// The second result is false when s has no dedicated text.
func (s Status) Description() (string, bool) {
	info, ok := statusTable[s]
	if !ok || info.description == "" {
		return GenericStatusDescription, false
	}
	return info.description, true
}

func (s Status) IsTerminal() bool {
	return statusTable[s].terminal
}

// ValidateTransition checks whether s may move to target without changing anything.
func (s Status) ValidateTransition(target Status) error {
	switch {
	case s.Validate() != nil:
		return errs.NewInvalidTransitionError(s.String(), target.String(), "current status is not recognised")
	case s.IsTerminal():
		return errs.NewInvalidTransitionError(s.String(), target.String(), s.String()+" is a terminal status")
	case target.Validate() != nil:
		return errs.NewInvalidTransitionError(s.String(), target.String(), "target status is not recognised")
	case target == s:
		return errs.NewInvalidTransitionError(s.String(), target.String(), "order is already in this status")
	}
	return nil
}

// TransitionTo returns target if the move is allowed, otherwise (Unknown, error).
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := s.ValidateTransition(target); err != nil {
		return Unknown, err
	}
	return target, nil
}
