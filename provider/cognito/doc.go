// Package cognito verifies bearer tokens issued by an AWS Cognito user
// pool. Verification keys are fetched lazily from the pool's JWKS endpoint
// and cached for the life of the process, with background refresh handling
// key rotation. The validator pins RS256, requires a valid token_use claim,
// and resolves the principal through the cognito:username, email, sub
// fallback chain.
package cognito
