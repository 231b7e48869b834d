package models

// ExportBundle is the full-dataset snapshot produced by the admin export
// endpoint and accepted back by the import endpoint. Importing a bundle
// that was just exported must be a no-op on server state, so the bundle is
// carried verbatim: exactly these three fields, nothing added or dropped.
type ExportBundle struct {
	ExportDate string    `json:"export_date"`
	Users      []User    `json:"users"`
	Vehicles   []Vehicle `json:"vehicles"`
}
