package app

import (
	"log/slog"

	"golang.org/x/sync/errgroup"

	"bookbazaar/internal/apiclient"
	"bookbazaar/pkg/domain"
)

// CreateListing publishes a new listing owned by the current session. The
// call goes out with whatever token the session holds; an unauthenticated
// request is the server's to reject.
func (a *App) CreateListing(req apiclient.CreateBookRequest) (domain.Book, error) {
	book, err := a.api.CreateBook(a.session.Token(), req)
	if err != nil {
		slog.Warn("listings: create failed", "title", req.Title, "err", err)
		a.notifier.Error("Failed to publish listing")
		return domain.Book{}, err
	}
	a.notifier.Success("Listing published!")
	return book, nil
}

// UpdateListing applies a partial update to an owned listing.
func (a *App) UpdateListing(id int64, req apiclient.UpdateBookRequest) (domain.Book, error) {
	book, err := a.api.UpdateBook(a.session.Token(), id, req)
	if err != nil {
		slog.Warn("listings: update failed", "id", id, "err", err)
		a.notifier.Error("Failed to update listing")
		return domain.Book{}, err
	}
	a.notifier.Success("Listing updated")
	return book, nil
}

// DeleteListing removes an owned listing. A listing already gone remotely
// still surfaces as a single failure notification; local state is unchanged
// either way.
func (a *App) DeleteListing(id int64) error {
	if err := a.api.DeleteBook(a.session.Token(), id); err != nil {
		if apiclient.IsNotFound(err) {
			slog.Info("listings: delete target missing", "id", id)
		} else {
			slog.Warn("listings: delete failed", "id", id, "err", err)
		}
		a.notifier.Error("Failed to delete listing")
		return err
	}
	a.notifier.Success("Listing deleted")
	return nil
}

// MyListings returns the listings owned by the current session.
func (a *App) MyListings() ([]domain.Book, error) {
	items, err := a.api.MyListings(a.session.Token())
	if err != nil {
		slog.Warn("listings: my-listings fetch failed", "err", err)
		a.notifier.Error("Failed to load your listings")
		return nil, err
	}
	return items, nil
}

// Overview is the admin dashboard data set.
type Overview struct {
	Users []domain.User
	Books []domain.Book
}

// AdminOverview loads users and books concurrently. Authorization lives
// server-side behind the is_admin flag; the core only forwards the token.
func (a *App) AdminOverview() (Overview, error) {
	token := a.session.Token()
	var ov Overview
	var g errgroup.Group
	g.Go(func() error {
		users, err := a.api.AdminListUsers(token)
		if err != nil {
			return err
		}
		ov.Users = users
		return nil
	})
	g.Go(func() error {
		books, err := a.api.AdminListBooks(token)
		if err != nil {
			return err
		}
		ov.Books = books
		return nil
	})
	if err := g.Wait(); err != nil {
		slog.Warn("admin: overview fetch failed", "err", err)
		a.notifier.Error("Failed to load admin data")
		return Overview{}, err
	}
	return ov, nil
}

// AdminDeleteBook removes any listing regardless of owner.
func (a *App) AdminDeleteBook(id int64) error {
	if err := a.api.AdminDeleteBook(a.session.Token(), id); err != nil {
		slog.Warn("admin: delete failed", "id", id, "err", err)
		a.notifier.Error("Failed to delete listing")
		return err
	}
	a.notifier.Success("Listing deleted")
	return nil
}

// Close tears the session down: logout plus cart reset. Safe to call more
// than once.
func (a *App) Close() {
	a.session.Logout()
	a.cart.Clear()
}
