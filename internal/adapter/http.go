package adapter

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-identity/internal/app"
	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/models"
	"github.com/go-resty/resty/v2"
)

// avatarFormField must match the multipart field read by the server.
const avatarFormField = "file0"

// envelope mirrors [models.Response] with a concrete user section so that
// resty can decode it without an intermediate map.
type envelope[U any] struct {
	Status    string             `json:"status"`
	Message   string             `json:"message"`
	User      U                  `json:"user"`
	Users     []models.User      `json:"users"`
	Token     string             `json:"token"`
	File      *models.StoredFile `json:"file"`
	CreatedBy *models.Claims     `json:"created_by"`
}

type httpIdentityClient struct {
	client *resty.Client

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPIdentityClient constructs the REST implementation of
// [IdentityClient]. address may omit the scheme, in which case http is
// assumed. A zero timeout leaves requests bounded only by their context.
func NewHTTPIdentityClient(address string, timeout time.Duration, logger *logger.Logger) (IdentityClient, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &httpIdentityClient{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", ErrInvalidAddress
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (c *httpIdentityClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}

func (c *httpIdentityClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *httpIdentityClient) Version(ctx context.Context) (string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		Get("/api/version")
	if err != nil {
		return "", c.requestError("version", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

// Register attaches the stored token when present. A success envelope without
// a user means the email or nick was already taken.
func (c *httpIdentityClient) Register(ctx context.Context, input models.RegisterInput) (models.RegisterResult, error) {
	var body envelope[models.User]

	resp, err := c.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(input).
		SetResult(&body).
		Post("/api/user/register")
	if err != nil {
		return models.RegisterResult{}, c.requestError("register", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RegisterResult{}, err
	}

	if body.Message == app.MsgUserAlreadyExists || body.User.ID == "" {
		return models.RegisterResult{AlreadyExists: true}, nil
	}
	return models.RegisterResult{User: body.User, CreatedBy: body.CreatedBy}, nil
}

func (c *httpIdentityClient) Login(ctx context.Context, creds models.Credentials) (models.LoginResult, error) {
	var body envelope[models.LoginUser]

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		SetResult(&body).
		Post("/api/user/login")
	if err != nil {
		return models.LoginResult{}, c.requestError("login", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginResult{}, err
	}
	if body.Token == "" {
		return models.LoginResult{}, fmt.Errorf("%w: login response carries no token", ErrUnauthorized)
	}

	c.SetToken(body.Token)
	return models.LoginResult{User: body.User, Token: models.Token{SignedString: body.Token}}, nil
}

func (c *httpIdentityClient) Profile(ctx context.Context, id string) (models.User, error) {
	var body envelope[models.User]

	resp, err := c.request(ctx).
		SetResult(&body).
		SetPathParam("id", id).
		Get("/api/user/profile/{id}")
	if err != nil {
		return models.User{}, c.requestError("profile", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return body.User, nil
}

func (c *httpIdentityClient) ListUsers(ctx context.Context, page int) (models.ListResponse, error) {
	var list models.ListResponse

	resp, err := c.request(ctx).
		SetResult(&list).
		SetPathParam("page", strconv.Itoa(page)).
		Get("/api/user/list/{page}")
	if err != nil {
		return models.ListResponse{}, c.requestError("list users", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ListResponse{}, err
	}

	return list, nil
}

func (c *httpIdentityClient) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.User, error) {
	var body envelope[models.User]

	resp, err := c.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(update).
		SetResult(&body).
		Put("/api/user/update")
	if err != nil {
		return models.User{}, c.requestError("update profile", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return body.User, nil
}

func (c *httpIdentityClient) UploadAvatar(ctx context.Context, fileName string, content io.Reader) (models.AvatarUpload, error) {
	var body envelope[models.User]

	resp, err := c.request(ctx).
		SetFileReader(avatarFormField, fileName, content).
		SetResult(&body).
		Post("/api/user/upload")
	if err != nil {
		return models.AvatarUpload{}, c.requestError("upload avatar", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AvatarUpload{}, err
	}

	result := models.AvatarUpload{User: body.User}
	if body.File != nil {
		result.File = *body.File
	}
	return result, nil
}

func (c *httpIdentityClient) Avatar(ctx context.Context, fileName string) ([]byte, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("file", fileName).
		Get("/api/user/avatar/{file}")
	if err != nil {
		return nil, c.requestError("fetch avatar", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}

func (c *httpIdentityClient) DeleteUser(ctx context.Context, id string) (models.User, error) {
	var body envelope[models.User]

	resp, err := c.request(ctx).
		SetResult(&body).
		SetPathParam("id", id).
		Delete("/api/user/{id}")
	if err != nil {
		return models.User{}, c.requestError("delete user", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return body.User, nil
}

func (c *httpIdentityClient) ListAllUsers(ctx context.Context) ([]models.User, error) {
	var body envelope[models.User]

	resp, err := c.request(ctx).
		SetResult(&body).
		Get("/api/user/all")
	if err != nil {
		return nil, c.requestError("list all users", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return body.Users, nil
}

// request starts a request bound to ctx and carrying the stored token, if any.
func (c *httpIdentityClient) request(ctx context.Context) *resty.Request {
	req := c.client.R().SetContext(ctx)
	if token := c.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

func (c *httpIdentityClient) requestError(op string, err error) error {
	c.logger.Debug().Err(err).Str("op", op).Msg("request to identity server failed")
	return fmt.Errorf("%s request: %w", op, err)
}
