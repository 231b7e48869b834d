package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vehicleq/vehicleq-go/internal/client/models"
	"github.com/vehicleq/vehicleq-go/internal/logging"
)

// HTTPClient implements Client over plain net/http. Requests carrying
// user-entered credentials or file payloads use multipart form encoding,
// the import endpoint uses a JSON body, everything else is a bare GET or
// DELETE. No retries: a failed call surfaces its error exactly once.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	log     logging.Logger
}

// NewHTTPClient builds a client for the given base URL. A zero timeout
// leaves the transport's default in place.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		log:     log.With("component", "api"),
	}
}

// formFile describes a single file part of a multipart request.
type formFile struct {
	field string
	name  string
	data  []byte
}

// errorBody matches the backend's conventional error payload.
type errorBody struct {
	Detail string `json:"detail"`
}

func (c *HTTPClient) do(ctx context.Context, method, path string, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-Id", reqID)

	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "method", method, "path", path, "request_id", reqID, "error", err)
		return fmt.Errorf("%s %s: %w", method, path, ErrUnavailable)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "request done", "method", method, "path", path, "request_id", reqID, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		_ = json.Unmarshal(raw, &eb)
		return &HTTPError{Status: resp.StatusCode, Detail: eb.Detail}
	}

	if out == nil {
		return nil
	}
	if raw, ok := out.(*[]byte); ok {
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response %s %s: %w", method, path, err)
		}
		*raw = b
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response %s %s: %w", method, path, err)
	}
	return nil
}

// doForm encodes fields (and an optional file) as multipart/form-data and
// issues the request.
func (c *HTTPClient) doForm(ctx context.Context, method, path string, fields map[string]string, file *formFile, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("encode field %s: %w", k, err)
		}
	}
	if file != nil {
		part, err := w.CreateFormFile(file.field, file.name)
		if err != nil {
			return fmt.Errorf("encode file part: %w", err)
		}
		if _, err := part.Write(file.data); err != nil {
			return fmt.Errorf("encode file part: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize form: %w", err)
	}
	return c.do(ctx, method, path, w.FormDataContentType(), &buf, out)
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body, out any) error {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		r = bytes.NewReader(b)
	}
	return c.do(ctx, method, path, "application/json", r, out)
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", "", nil, nil)
}

func (c *HTTPClient) RegisterUser(ctx context.Context, p RegisterParams) (*models.User, error) {
	if err := checkParams(p); err != nil {
		return nil, err
	}
	var u models.User
	err := c.doForm(ctx, http.MethodPost, "/register/", map[string]string{
		"username":  p.Username,
		"email":     p.Email,
		"password":  p.Password,
		"full_name": p.FullName,
		"phone":     p.Phone,
	}, nil, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) LoginUser(ctx context.Context, username, password string) (*models.User, error) {
	if err := checkParams(loginParams{Username: username, Password: password}); err != nil {
		return nil, err
	}
	var u models.User
	err := c.doForm(ctx, http.MethodPost, "/login/", map[string]string{
		"username": username,
		"password": password,
	}, nil, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) GetUserProfile(ctx context.Context, userID int64) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/profile/%d", userID), "", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, userID int64, fullName, phone string) (*models.User, error) {
	if err := checkParams(profileParams{FullName: fullName, Phone: phone}); err != nil {
		return nil, err
	}
	var u models.User
	err := c.doForm(ctx, http.MethodPut, fmt.Sprintf("/profile/%d", userID), map[string]string{
		"full_name": fullName,
		"phone":     phone,
	}, nil, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) GetVehicles(ctx context.Context) ([]models.Vehicle, error) {
	var vs []models.Vehicle
	if err := c.do(ctx, http.MethodGet, "/vehicles/", "", nil, &vs); err != nil {
		return nil, err
	}
	return vs, nil
}

func (c *HTTPClient) GetUserVehicles(ctx context.Context, userID int64) ([]models.Vehicle, error) {
	var vs []models.Vehicle
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/vehicles/%d", userID), "", nil, &vs); err != nil {
		return nil, err
	}
	return vs, nil
}

func (c *HTTPClient) UploadVehicle(ctx context.Context, p UploadParams) (*models.Vehicle, error) {
	if err := checkParams(p); err != nil {
		return nil, err
	}
	name := p.ImageName
	if name == "" {
		name = uuid.NewString() + ".jpg"
	}
	var v models.Vehicle
	err := c.doForm(ctx, http.MethodPost, "/upload/", map[string]string{
		"user_id": strconv.FormatInt(p.UserID, 10),
		"number":  p.Number,
		"owner":   p.Owner,
	}, &formFile{field: "image", name: name, data: p.Image}, &v)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *HTTPClient) DeleteVehicle(ctx context.Context, vehicleID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/vehicle/%d", vehicleID), "", nil, nil)
}

func (c *HTTPClient) GetImage(ctx context.Context, vehicleID int64) ([]byte, error) {
	var b []byte
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/image/%d", vehicleID), "", nil, &b); err != nil {
		return nil, err
	}
	return b, nil
}

func (c *HTTPClient) ImageURL(vehicleID int64) string {
	return fmt.Sprintf("%s/image/%d", c.baseURL, vehicleID)
}

func (c *HTTPClient) AdminLogin(ctx context.Context, username, password string) error {
	if err := checkParams(loginParams{Username: username, Password: password}); err != nil {
		return err
	}
	// The response body is an opaque acknowledgement the client never
	// inspects; success is the status code alone.
	return c.doForm(ctx, http.MethodPost, "/admin/login/", map[string]string{
		"username": username,
		"password": password,
	}, nil, nil)
}

func (c *HTTPClient) GetAllVehicles(ctx context.Context) ([]models.AdminVehicle, error) {
	var vs []models.AdminVehicle
	if err := c.do(ctx, http.MethodGet, "/admin/vehicles/", "", nil, &vs); err != nil {
		return nil, err
	}
	return vs, nil
}

func (c *HTTPClient) DeleteAdminVehicle(ctx context.Context, vehicleID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/vehicle/%d", vehicleID), "", nil, nil)
}

func (c *HTTPClient) ExportAll(ctx context.Context) (*models.ExportBundle, error) {
	var b models.ExportBundle
	if err := c.do(ctx, http.MethodGet, "/admin/export/", "", nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *HTTPClient) ImportAll(ctx context.Context, bundle *models.ExportBundle) error {
	return c.doJSON(ctx, http.MethodPost, "/admin/import/", bundle, nil)
}
