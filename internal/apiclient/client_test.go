package apiclient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookbazaar/pkg/domain"
)

func TestListBooksSendsQueryAndBearerToken(t *testing.T) {
	var gotQuery, gotCategory, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/books/" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query().Get("q")
		gotCategory = r.URL.Query().Get("category")
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []domain.Book{{ID: 1, Title: "x", Price: 300}},
			"total": 1,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	items, err := c.ListBooks("tok-1", "algorithms", "Textbook")
	if err != nil {
		t.Fatalf("list books: %v", err)
	}
	if len(items) != 1 || items[0].ID != 1 {
		t.Fatalf("unexpected items: %+v", items)
	}
	if gotQuery != "algorithms" || gotCategory != "Textbook" {
		t.Fatalf("query not forwarded: q=%q category=%q", gotQuery, gotCategory)
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
}

func TestEmptyTokenSendsUnauthenticatedRequest(t *testing.T) {
	var sawAuthHeader bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuthHeader = r.Header["Authorization"]
		_ = json.NewEncoder(w).Encode(map[string]any{"items": []domain.Book{}, "total": 0})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	if _, err := c.ListBooks("", "", ""); err != nil {
		t.Fatalf("list books: %v", err)
	}
	if sawAuthHeader {
		t.Fatalf("expected no Authorization header without a token")
	}
}

func TestErrorResponsesBecomeAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Book not found"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	err := c.DeleteBook("tok", 42)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsNotFound(err) {
		t.Fatalf("expected NotFound classification, got %v", err)
	}
	if IsValidation(err) {
		t.Fatalf("404 must not classify as validation")
	}
	if err.Error() != "Book not found" {
		t.Fatalf("expected server detail as message, got %q", err.Error())
	}
}

func TestValidationClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Email already registered"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	err := c.Signup(SignupRequest{Name: "Bob", Email: "bob@example.com", Password: "secret1"})
	if !IsValidation(err) {
		t.Fatalf("expected validation classification, got %v", err)
	}
	if IsNotFound(err) {
		t.Fatalf("400 must not classify as not found")
	}
}

func TestErrorWithoutDetailFallsBackToStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	err := c.Signup(SignupRequest{Email: "x@example.com", Password: "secret1"})
	if err == nil || err.Error() == "" {
		t.Fatalf("expected non-empty error message, got %v", err)
	}
	if IsNotFound(err) || IsValidation(err) {
		t.Fatalf("5xx must classify as transport failure, got %v", err)
	}
}

func TestLoginReturnsAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "abc", "token_type": "bearer"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	token, err := c.Login("alice@example.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token != "abc" {
		t.Fatalf("unexpected token: %q", token)
	}
}

func TestCreateBookPostsPayload(t *testing.T) {
	var got CreateBookRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/books/" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(domain.Book{ID: 7, Title: got.Title, Author: got.Author, Price: got.Price, SellerID: 3})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	book, err := c.CreateBook("tok", CreateBookRequest{Title: "SICP", Author: "Abelson", Price: 650})
	if err != nil {
		t.Fatalf("create book: %v", err)
	}
	if book.ID != 7 || book.SellerID != 3 {
		t.Fatalf("unexpected created book: %+v", book)
	}
	if got.Title != "SICP" || got.Price != 650 {
		t.Fatalf("payload not forwarded: %+v", got)
	}
}

func TestMyListingsDecodesBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/books/me/listings" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode([]domain.Book{{ID: 1}, {ID: 2}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	items, err := c.MyListings("tok")
	if err != nil {
		t.Fatalf("my listings: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(items))
	}
}
