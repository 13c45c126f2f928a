// Copyright (c) 2025 Recruitd
// adminctl - admin credential lifecycle manager
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import "github.com/recruitd/adminctl/internal/model"

// Package-level helpers delegating to the initialized store. These keep
// command code free of store plumbing; the store is set once by InitDB.

// DefaultStore returns the package-level store, or nil before InitDB.
func DefaultStore() Store {
	return store
}

// FindByEmail looks up one admin account through the package store.
func FindByEmail(email string) (*model.AdminAccount, error) {
	return store.FindByEmail(email)
}

// ListAdmins returns all admin accounts through the package store.
func ListAdmins() ([]model.AdminAccount, error) {
	return store.ListAdmins()
}

// ListActiveAdmins returns all active admin accounts through the package store.
func ListActiveAdmins() ([]model.AdminAccount, error) {
	return store.ListActiveAdmins()
}

// LogAction writes an audit entry through the package store.
func LogAction(action, details string) error {
	return store.LogAction(action, details)
}
