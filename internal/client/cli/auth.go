package cli

import (
	"context"
	"os"

	"github.com/vehicleq/vehicleq-go/internal/client/api"
	"github.com/vehicleq/vehicleq-go/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to the interactive input helpers and can be swapped
// in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the registration form fields and creates an account.
// On success the new user is logged in immediately (the store persists and
// publishes the session).
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	fullName, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Enter phone", os.Stdout)
	if err != nil {
		return err
	}

	p := api.RegisterParams{
		Username: username,
		Email:    email,
		Password: string(password),
		FullName: fullName,
		Phone:    phone,
	}
	if err := a.session.Register(ctx, p); err != nil {
		printlnFn("Registration unsuccessful:", a.session.LastError().Get())
		return err
	}

	printlnFn("Success! Logged in as", username)
	return nil
}

// Login prompts for credentials and authenticates. Success and failure
// messages come from the session store's published state.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, username, string(password)); err != nil {
		printlnFn("Login unsuccessful:", a.session.LastError().Get())
		return err
	}

	printlnFn("Login successful")
	return nil
}

// Logout clears the cached session. Safe to call when not logged in.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Logged out")
	return nil
}

// Profile prints the cached user record.
func (a *App) Profile(ctx context.Context) error {
	u := a.session.CurrentUser()
	if u == nil {
		printlnFn("Not logged in")
		return nil
	}
	printlnFn("Username: ", u.Username)
	printlnFn("Email:    ", u.Email)
	printlnFn("Full name:", u.FullName)
	printlnFn("Phone:    ", u.Phone)
	return nil
}

// EditProfile prompts for the editable fields, updates the record on the
// server, then overwrites the cached session with the confirmed result.
func (a *App) EditProfile(ctx context.Context) error {
	u := a.session.CurrentUser()
	if u == nil {
		printlnFn("Not logged in")
		return nil
	}

	fullName, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Enter phone", os.Stdout)
	if err != nil {
		return err
	}

	updated, err := a.client.UpdateProfile(ctx, u.ID, fullName, phone)
	if err != nil {
		printlnFn("Update unsuccessful:", api.ErrorMessage(err, "Profile update failed"))
		return err
	}
	if err := a.session.UpdateCurrentUser(ctx, updated); err != nil {
		return err
	}

	printlnFn("Profile updated")
	return nil
}
