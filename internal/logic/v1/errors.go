// Package v1 provides the storefront business logic for API version 1.
//
// Error Handling:
// This package defines sentinel errors that represent the failures the
// HTTP boundary needs to distinguish. They should be wrapped with
// context using fmt.Errorf("%w") when returned from business logic
// methods.
//
// Example Usage:
//
//	if product == nil {
//	    return 0, fmt.Errorf("add product %d: %w", productID, ErrProductNotFound)
//	}
//
// Error Checking (in handlers):
//
//	switch {
//	case errors.Is(err, logicv1.ErrProductNotFound):
//	    c.JSON(http.StatusBadRequest, gin.H{"error": "Product not found"})
//	case errors.Is(err, logicv1.ErrEntryNotFound):
//	    c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in cart"})
//	default:
//	    c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
//	}
package v1

import "errors"

// Sentinel errors for storefront operations.
// These errors should be wrapped with context using fmt.Errorf("%w") when returned.
var (
	// ErrInvalidCredentials indicates the provided credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound indicates the user does not exist in the system.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists indicates the email is already registered.
	ErrUserExists = errors.New("user already exists")

	// ErrSessionNotFound indicates the session token does not exist.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired indicates the session token has expired.
	ErrSessionExpired = errors.New("session expired")

	// ErrProductNotFound indicates the serial number matches no catalog row.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidQuantity indicates a quantity below 1 was requested.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrEntryNotFound indicates no cart entry exists for the
	// (user, product) pair.
	ErrEntryNotFound = errors.New("cart entry not found")
)
