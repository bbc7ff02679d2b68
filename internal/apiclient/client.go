package apiclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bookbazaar/pkg/domain"
)

// Client calls the remote marketplace service over HTTP. Timeouts live here;
// the state engines carry none of their own.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// APIError represents a marketplace service error response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsNotFound reports whether err is a 404 from the service.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsValidation reports whether err is a 4xx rejection (bad credentials or
// fields). 404 is classified separately as NotFound.
func IsValidation(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) &&
		apiErr.Status >= 400 && apiErr.Status < 500 &&
		apiErr.Status != http.StatusNotFound
}

// NewClient constructs a marketplace service client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SignupRequest carries registration fields.
type SignupRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	College   string `json:"college,omitempty"`
	ContactNo string `json:"contact_no,omitempty"`
}

// CreateBookRequest carries the fields of a new listing.
type CreateBookRequest struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Category    string  `json:"category,omitempty"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// UpdateBookRequest carries a partial listing update; nil fields are left
// unchanged server-side.
type UpdateBookRequest struct {
	Title       *string  `json:"title,omitempty"`
	Author      *string  `json:"author,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Description *string  `json:"description,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
}

// Login exchanges credentials for an access token.
func (c *Client) Login(email, password string) (string, error) {
	payload := map[string]string{"email": email, "password": password}
	var resp loginResponse
	if err := c.doJSON(http.MethodPost, "/api/auth/login", "", payload, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// Signup registers a new account. It never authenticates as a side effect.
func (c *Client) Signup(req SignupRequest) error {
	return c.doJSON(http.MethodPost, "/api/auth/signup", "", req, nil)
}

// ListBooks fetches the catalog for the given search text and category.
// Both parameters are applied server-side.
func (c *Client) ListBooks(token, q, category string) ([]domain.Book, error) {
	params := url.Values{}
	if q != "" {
		params.Set("q", q)
	}
	if category != "" {
		params.Set("category", category)
	}
	path := "/api/books/"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var resp listBooksResponse
	if err := c.doJSON(http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// GetBook fetches a single catalog item.
func (c *Client) GetBook(token string, id int64) (domain.Book, error) {
	var book domain.Book
	path := fmt.Sprintf("/api/books/%d", id)
	if err := c.doJSON(http.MethodGet, path, token, nil, &book); err != nil {
		return domain.Book{}, err
	}
	return book, nil
}

// CreateBook publishes a new listing owned by the current session.
func (c *Client) CreateBook(token string, req CreateBookRequest) (domain.Book, error) {
	var book domain.Book
	if err := c.doJSON(http.MethodPost, "/api/books/", token, req, &book); err != nil {
		return domain.Book{}, err
	}
	return book, nil
}

// UpdateBook applies a partial update to an owned listing.
func (c *Client) UpdateBook(token string, id int64, req UpdateBookRequest) (domain.Book, error) {
	var book domain.Book
	path := fmt.Sprintf("/api/books/%d", id)
	if err := c.doJSON(http.MethodPut, path, token, req, &book); err != nil {
		return domain.Book{}, err
	}
	return book, nil
}

// DeleteBook removes an owned listing.
func (c *Client) DeleteBook(token string, id int64) error {
	path := fmt.Sprintf("/api/books/%d", id)
	return c.doJSON(http.MethodDelete, path, token, nil, nil)
}

// MyListings returns the listings owned by the current session.
func (c *Client) MyListings(token string) ([]domain.Book, error) {
	var items []domain.Book
	if err := c.doJSON(http.MethodGet, "/api/books/me/listings", token, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AdminListUsers returns all users. Authorization is enforced server-side.
func (c *Client) AdminListUsers(token string) ([]domain.User, error) {
	var items []domain.User
	if err := c.doJSON(http.MethodGet, "/api/admin/users", token, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AdminListBooks returns all listings regardless of owner.
func (c *Client) AdminListBooks(token string) ([]domain.Book, error) {
	var items []domain.Book
	if err := c.doJSON(http.MethodGet, "/api/admin/books", token, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AdminDeleteBook removes any listing regardless of owner.
func (c *Client) AdminDeleteBook(token string, id int64) error {
	path := fmt.Sprintf("/api/admin/books/%d", id)
	return c.doJSON(http.MethodDelete, path, token, nil, nil)
}

func (c *Client) doJSON(method, path, token string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	addAuthHeader(req, token)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		var errResp struct {
			Detail string `json:"detail"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		msg := strings.TrimSpace(errResp.Detail)
		if msg == "" {
			msg = resp.Status
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return err
	}
	return nil
}

// addAuthHeader attaches the bearer token when present. An empty token sends
// the request unauthenticated; the server is responsible for rejecting it.
func addAuthHeader(req *http.Request, token string) {
	if strings.TrimSpace(token) == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type listBooksResponse struct {
	Items []domain.Book `json:"items"`
	Total int           `json:"total"`
}
