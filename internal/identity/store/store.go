// Package store persists registered identities. Each user's handle set is
// written exactly once.
//
// Error contract: Create returns sentinel.ErrAlreadyUsed when the user is
// already registered; FindByUser returns sentinel.ErrNotFound when not.
package store
