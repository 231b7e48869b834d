package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/vehicleq/vehicleq-go/internal/client/api"
	"github.com/vehicleq/vehicleq-go/internal/common"
)

// AdminLogin authenticates the administrator and opens the gate.
func (a *App) AdminLogin(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter admin username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.admin.Login(ctx, username, string(password)); err != nil {
		printlnFn("Admin login unsuccessful:", api.ErrorMessage(err, "Admin login failed"))
		return err
	}

	printlnFn("Admin login successful")
	return nil
}

// AdminLogout closes the gate. Safe to call when the gate is already closed.
func (a *App) AdminLogout(ctx context.Context) error {
	if err := a.admin.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Admin logged out")
	return nil
}

// AdminList prints every vehicle with its uploader.
func (a *App) AdminList(ctx context.Context) error {
	if !a.requireAdmin(ctx) {
		return nil
	}

	vs, err := a.admin.ListAll(ctx)
	if err != nil {
		printlnFn("Load unsuccessful:", api.ErrorMessage(err, "Could not load vehicles"))
		return err
	}
	if len(vs) == 0 {
		printlnFn("No vehicles")
		return nil
	}
	for _, v := range vs {
		printlnFn(fmt.Sprintf("#%d  %s  owner=%s  uploaded=%s  by %s <%s>",
			v.ID, v.Number, v.Owner, v.Timestamp, v.Username, v.UserEmail))
	}
	return nil
}

// AdminDelete removes any user's vehicle after confirmation.
func (a *App) AdminDelete(ctx context.Context) error {
	if !a.requireAdmin(ctx) {
		return nil
	}

	id, err := getVehicleID(a, "Enter vehicle id to delete")
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}
	ok, err := Confirm(a.reader, fmt.Sprintf("Delete vehicle #%d for all users?", id), os.Stdout)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Cancelled")
		return nil
	}

	if err := a.admin.Delete(ctx, id); err != nil {
		printlnFn("Delete unsuccessful:", api.ErrorMessage(err, "Delete failed"))
		return err
	}
	printlnFn("Deleted")
	return nil
}

// Export downloads the full dataset and saves it to the chosen destination.
func (a *App) Export(ctx context.Context) error {
	if !a.requireAdmin(ctx) {
		return nil
	}

	dest := "file"
	if a.config.S3Bucket != "" {
		choice, err := getSimpleText(a.reader, "Export destination (file/s3)", os.Stdout)
		if err != nil {
			return err
		}
		if choice == "s3" {
			dest = "s3"
		}
	}

	loc, err := a.admin.Export(ctx, a.exporter(dest))
	if err != nil {
		printlnFn("Export unsuccessful:", api.ErrorMessage(err, "Export failed"))
		return err
	}
	printlnFn("Exported to", loc)
	return nil
}

// Import reads a previously exported bundle from disk and posts it back.
func (a *App) Import(ctx context.Context) error {
	if !a.requireAdmin(ctx) {
		return nil
	}

	path, err := getSimpleText(a.reader, "Enter bundle path", os.Stdout)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		printlnFn("Cannot read bundle:", err.Error())
		return err
	}

	ok, err := Confirm(a.reader, "Import will overwrite server data. Continue?", os.Stdout)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Cancelled")
		return nil
	}

	if err := a.admin.Import(ctx, data); err != nil {
		printlnFn("Import unsuccessful:", api.ErrorMessage(err, "Import failed"))
		return err
	}
	printlnFn("Import successful")
	return nil
}
