package concert

import "reflect"

// OwnedResource is any domain record that carries a fixed owner. Bookings
// expose their creating user, events their organizer.
type OwnedResource interface {
	OwnerUsername() string
}

// AuthorizationDecision is the outcome of an ownership check.
type AuthorizationDecision int

const (
	// DecisionAllowed lets the operation proceed.
	DecisionAllowed AuthorizationDecision = iota
	// DecisionDeniedUnauthorized means the resource exists but belongs to
	// someone else.
	DecisionDeniedUnauthorized
	// DecisionDeniedNotFound means the resource does not exist.
	DecisionDeniedNotFound
)

// Authorize compares a resource's recorded owner against the resolved
// principal. It performs no I/O; the resource must already be loaded with
// its owner relation. A nil resource (or a resource with no owner loaded)
// is reported as not found so callers keep "missing" and "not yours"
// distinguishable.
func Authorize(resource OwnedResource, principal string) AuthorizationDecision {
	if resource == nil {
		return DecisionDeniedNotFound
	}
	if v := reflect.ValueOf(resource); v.Kind() == reflect.Pointer && v.IsNil() {
		return DecisionDeniedNotFound
	}

	owner := resource.OwnerUsername()
	if owner == "" {
		return DecisionDeniedNotFound
	}

	if principal == "" || owner != principal {
		return DecisionDeniedUnauthorized
	}

	return DecisionAllowed
}

// AuthorizeOwnership runs Authorize and maps a denial to the matching rich
// error for the given resource kind ("booking", "event"). Callers propagate
// the error untouched; the HTTP layer keeps the two denial kinds on
// distinct statuses.
func AuthorizeOwnership(kind string, resource OwnedResource, principal string) error {
	switch Authorize(resource, principal) {
	case DecisionDeniedNotFound:
		return NewNotFoundError(kind)
	case DecisionDeniedUnauthorized:
		return NewUnauthorizedAccessError(kind)
	}
	return nil
}
