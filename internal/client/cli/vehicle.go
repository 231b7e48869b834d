package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vehicleq/vehicleq-go/internal/client/api"
	"github.com/vehicleq/vehicleq-go/internal/client/models"
)

func getVehicleID(a *App, prompt string) (int64, error) {
	s, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func (a *App) printVehicles(vs []models.Vehicle) {
	if len(vs) == 0 {
		printlnFn("No vehicles")
		return
	}
	for _, v := range vs {
		printlnFn(fmt.Sprintf("#%d  %s  owner=%s  uploaded=%s  %s",
			v.ID, v.Number, v.Owner, v.Timestamp, a.vehicles.ImageURL(v.ID)))
	}
}

// List loads and prints the current user's vehicles, newest first.
func (a *App) List(ctx context.Context) error {
	u := a.session.CurrentUser()
	if u == nil {
		printlnFn("Not logged in")
		return nil
	}
	if err := a.vehicles.LoadForUser(ctx, u.ID); err != nil {
		printlnFn("Load unsuccessful:", api.ErrorMessage(err, "Could not load vehicles"))
		return err
	}
	a.printVehicles(a.vehicles.Vehicles().Get())
	return nil
}

// ListAll loads and prints every vehicle on the server.
func (a *App) ListAll(ctx context.Context) error {
	if err := a.vehicles.LoadAll(ctx); err != nil {
		printlnFn("Load unsuccessful:", api.ErrorMessage(err, "Could not load vehicles"))
		return err
	}
	a.printVehicles(a.vehicles.Vehicles().Get())
	return nil
}

// Upload prompts for the vehicle details and a photo path and uploads the
// entry. On success the store has already prepended it to the list.
func (a *App) Upload(ctx context.Context) error {
	u := a.session.CurrentUser()
	if u == nil {
		printlnFn("Not logged in")
		return nil
	}

	number, err := getSimpleText(a.reader, "Enter vehicle number", os.Stdout)
	if err != nil {
		return err
	}
	owner, err := getSimpleText(a.reader, "Enter owner name", os.Stdout)
	if err != nil {
		return err
	}
	path, err := getSimpleText(a.reader, "Enter photo path", os.Stdout)
	if err != nil {
		return err
	}
	img, err := os.ReadFile(path)
	if err != nil {
		printlnFn("Cannot read photo:", err.Error())
		return err
	}

	v, err := a.vehicles.Upload(ctx, api.UploadParams{
		UserID:    u.ID,
		Number:    number,
		Owner:     owner,
		Image:     img,
		ImageName: filepath.Base(path),
	})
	if err != nil {
		printlnFn("Upload unsuccessful:", api.ErrorMessage(err, "Upload failed"))
		return err
	}

	printlnFn(fmt.Sprintf("Uploaded vehicle #%d", v.ID))
	return nil
}

// Delete removes one of the user's vehicles after confirmation.
func (a *App) Delete(ctx context.Context) error {
	id, err := getVehicleID(a, "Enter vehicle id to delete")
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Delete vehicle #%d?", id), os.Stdout)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Cancelled")
		return nil
	}

	if err := a.vehicles.Delete(ctx, id); err != nil {
		printlnFn("Delete unsuccessful:", api.ErrorMessage(err, "Delete failed"))
		return err
	}
	printlnFn("Deleted")
	return nil
}

// SaveImage downloads a vehicle's photo to a local file.
func (a *App) SaveImage(ctx context.Context) error {
	id, err := getVehicleID(a, "Enter vehicle id")
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}
	dest, err := getSimpleText(a.reader, "Enter destination path", os.Stdout)
	if err != nil {
		return err
	}

	img, err := a.client.GetImage(ctx, id)
	if err != nil {
		printlnFn("Download unsuccessful:", api.ErrorMessage(err, "Image download failed"))
		return err
	}
	if err := os.WriteFile(dest, img, 0o600); err != nil {
		printlnFn("Cannot write file:", err.Error())
		return err
	}

	printlnFn("Saved to", dest)
	return nil
}
