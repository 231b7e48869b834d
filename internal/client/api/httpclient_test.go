package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vehicleq/vehicleq-go/internal/client/models"
	"github.com/vehicleq/vehicleq-go/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestClient(t *testing.T, h http.HandlerFunc) (*HTTPClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, 5*time.Second, testLogger()), srv
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestLoginUser_Success(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login/", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("X-Request-Id"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "alice", r.FormValue("username"))
		require.Equal(t, "secret", r.FormValue("password"))

		writeJSON(t, w, http.StatusOK, map[string]any{
			"id": 1, "username": "alice", "email": "a@x.com", "full_name": "Alice A", "phone": "555",
		})
	})

	u, err := c.LoginUser(context.Background(), "alice", "secret")
	require.NoError(t, err)
	require.Equal(t, &models.User{ID: 1, Username: "alice", Email: "a@x.com", FullName: "Alice A", Phone: "555"}, u)
}

func TestLoginUser_ServerDetailSurfacesAsHTTPError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "Invalid username or password"})
	})

	_, err := c.LoginUser(context.Background(), "alice", "wrong")
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusUnauthorized, httpErr.Status)
	require.Equal(t, "Invalid username or password", httpErr.Detail)
}

func TestLoginUser_EmptyFieldsRejectedBeforeNetwork(t *testing.T) {
	called := false
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	_, err := c.LoginUser(context.Background(), "", "")
	require.ErrorIs(t, err, ErrValidation)
	require.False(t, called)
}

func TestLoginUser_TransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // refuse connections
	c := NewHTTPClient(srv.URL, time.Second, testLogger())

	_, err := c.LoginUser(context.Background(), "alice", "secret")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestRegisterUser_SendsAllFormFields(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/register/", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "alice", r.FormValue("username"))
		require.Equal(t, "a@x.com", r.FormValue("email"))
		require.Equal(t, "secret", r.FormValue("password"))
		require.Equal(t, "Alice A", r.FormValue("full_name"))
		require.Equal(t, "555", r.FormValue("phone"))
		writeJSON(t, w, http.StatusOK, map[string]any{"id": 1, "username": "alice"})
	})

	u, err := c.RegisterUser(context.Background(), RegisterParams{
		Username: "alice", Email: "a@x.com", Password: "secret", FullName: "Alice A", Phone: "555",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), u.ID)
}

func TestRegisterUser_BadEmailRejectedBeforeNetwork(t *testing.T) {
	called := false
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	_, err := c.RegisterUser(context.Background(), RegisterParams{
		Username: "alice", Email: "not-an-email", Password: "s", FullName: "A", Phone: "5",
	})
	require.ErrorIs(t, err, ErrValidation)
	require.False(t, called)
}

func TestUpdateProfile_UsesPut(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/profile/7", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "Alice B", r.FormValue("full_name"))
		require.Equal(t, "556", r.FormValue("phone"))
		writeJSON(t, w, http.StatusOK, map[string]any{"id": 7, "full_name": "Alice B", "phone": "556"})
	})

	u, err := c.UpdateProfile(context.Background(), 7, "Alice B", "556")
	require.NoError(t, err)
	require.Equal(t, "Alice B", u.FullName)
}

func TestGetUserVehicles_DecodesList(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/vehicles/1", r.URL.Path)
		writeJSON(t, w, http.StatusOK, []map[string]any{
			{"id": 11, "number": "B", "owner": "O2", "timestamp": "2026-08-31 10:00:00"},
			{"id": 10, "number": "A", "owner": "O1", "timestamp": "2026-08-30 09:00:00"},
		})
	})

	vs, err := c.GetUserVehicles(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, vs, 2)
	require.Equal(t, int64(11), vs[0].ID) // server order preserved
	require.Equal(t, "2026-08-30 09:00:00", vs[1].Timestamp)
}

func TestUploadVehicle_MultipartWithImagePart(t *testing.T) {
	img := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/upload/", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "1", r.FormValue("user_id"))
		require.Equal(t, "KA01AB1234", r.FormValue("number"))
		require.Equal(t, "Bob", r.FormValue("owner"))

		file, hdr, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "car.jpg", hdr.Filename)
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		require.Equal(t, img, data)

		writeJSON(t, w, http.StatusOK, map[string]any{"id": 12, "number": "KA01AB1234", "owner": "Bob"})
	})

	v, err := c.UploadVehicle(context.Background(), UploadParams{
		UserID: 1, Number: "KA01AB1234", Owner: "Bob", Image: img, ImageName: "car.jpg",
	})
	require.NoError(t, err)
	require.Equal(t, int64(12), v.ID)
}

func TestUploadVehicle_MissingImageRejectedBeforeNetwork(t *testing.T) {
	called := false
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	_, err := c.UploadVehicle(context.Background(), UploadParams{UserID: 1, Number: "N", Owner: "O"})
	require.ErrorIs(t, err, ErrValidation)
	require.False(t, called)
}

func TestDeleteVehicle(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/vehicle/12", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]string{"message": "Vehicle deleted"})
	})

	require.NoError(t, c.DeleteVehicle(context.Background(), 12))
}

func TestGetImage_ReturnsRawBytes(t *testing.T) {
	img := []byte{0xFF, 0xD8, 0x01, 0x02}
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/image/12", r.URL.Path)
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(img)
	})

	got, err := c.GetImage(context.Background(), 12)
	require.NoError(t, err)
	require.Equal(t, img, got)
}

func TestImageURL_IsPure(t *testing.T) {
	c := NewHTTPClient("http://example.test/", 0, testLogger())
	require.Equal(t, "http://example.test/image/42", c.ImageURL(42))
}

func TestAdminLogin_IgnoresOpaqueBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/login/", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "admin", r.FormValue("username"))
		writeJSON(t, w, http.StatusOK, map[string]string{"message": "ok", "token": "whatever"})
	})

	require.NoError(t, c.AdminLogin(context.Background(), "admin", "secret"))
}

func TestGetAllVehicles_DecodesAdminProjection(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/vehicles/", r.URL.Path)
		writeJSON(t, w, http.StatusOK, []map[string]any{
			{"id": 10, "number": "A", "owner": "O", "user_id": 1, "username": "alice", "user_email": "a@x.com"},
		})
	})

	vs, err := c.GetAllVehicles(context.Background())
	require.NoError(t, err)
	require.Len(t, vs, 1)
	require.Equal(t, "alice", vs[0].Username)
	require.Equal(t, "a@x.com", vs[0].UserEmail)
	require.Equal(t, int64(1), vs[0].UserID)
}

func TestExportImport_RoundTrip(t *testing.T) {
	bundle := models.ExportBundle{
		ExportDate: "2026-09-01T10:00:00",
		Users:      []models.User{{ID: 1, Username: "alice"}},
		Vehicles:   []models.Vehicle{{ID: 10, Number: "A"}},
	}

	var imported models.ExportBundle
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/export/":
			writeJSON(t, w, http.StatusOK, bundle)
		case "/admin/import/":
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&imported))
			writeJSON(t, w, http.StatusOK, map[string]string{"message": "ok"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	got, err := c.ExportAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, bundle, *got)

	require.NoError(t, c.ImportAll(context.Background(), got))
	require.Equal(t, bundle, imported)
}

func TestPing(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	require.NoError(t, c.Ping(context.Background()))
}
