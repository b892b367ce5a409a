// Package concert implements the booking backend's domain core: dual-issuer
// bearer authentication plus ownership authorization over bookings and
// events.
//
// Token resolution:
//   - TokenService mints and verifies the backend's own HMAC-signed tokens.
//     Externally issued Cognito tokens are verified by provider/cognito.
//   - TokenValidator abstracts both paths behind a single Validate call;
//     MultiTokenValidator tries the cheap local path before the network-bound
//     remote path and reports the last failure when both are exhausted.
//   - middleware/identityware runs the resolution once per request and
//     installs the resulting principal without ever rejecting the request.
//     Anonymous requests only fail later, when a handler demands ownership.
//
// Ownership:
//   - Any record exposing OwnerUsername can be passed to Authorize, which
//     distinguishes a missing record from a record owned by someone else.
//     Booking and event services run this check before every single-item
//     read, mutation, or cancellation.
package concert
