package models

// Vehicle is a single registered vehicle entry. Timestamp is the
// server-assigned creation time, kept as the server's opaque string
// ("2006-01-02 15:04:05"); listings arrive newest-first. The image itself
// is an opaque binary resource addressable by id, see api.Client.ImageURL.
type Vehicle struct {
	ID        int64  `json:"id"`
	Number    string `json:"number"`
	Owner     string `json:"owner"`
	UserID    int64  `json:"user_id,omitempty"`
	Timestamp string `json:"timestamp"`
	ImagePath string `json:"image_path,omitempty"`
}

// AdminVehicle is the administrator projection of Vehicle: the same entry
// denormalized with the uploading user's name and email. Read-only, never
// written back to the server.
type AdminVehicle struct {
	Vehicle
	Username  string `json:"username"`
	UserEmail string `json:"user_email"`
}
