/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package fake provides an in-memory BookStore service for exercising the
// test harness without network access.  It follows the live service's
// status codes and error bodies closely enough for the harness' error
// handling to be tested against it.
package fake

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/unikorn-cloud/bookstore/pkg/openapi"
)

type Book struct {
	ISBN        string `json:"isbn"`
	Title       string `json:"title"`
	SubTitle    string `json:"subTitle,omitempty"`
	Author      string `json:"author,omitempty"`
	PublishDate string `json:"publish_date,omitempty"`
	Publisher   string `json:"publisher,omitempty"`
	Pages       int    `json:"pages,omitempty"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty"`
}

// DefaultCatalog is served unless WithCatalog says otherwise.
func DefaultCatalog() []Book {
	return []Book{
		{
			ISBN:        "9781449325862",
			Title:       "Git Pocket Guide",
			SubTitle:    "A Working Introduction",
			Author:      "Richard E. Silverman",
			PublishDate: "2020-06-04T08:48:39.000Z",
			Publisher:   "O'Reilly Media",
			Pages:       234,
			Website:     "http://chimera.labs.oreilly.com/books/1230000000561/index.html",
		},
		{
			ISBN:        "9781449331818",
			Title:       "Learning JavaScript Design Patterns",
			SubTitle:    "A JavaScript and jQuery Developer's Guide",
			Author:      "Addy Osmani",
			PublishDate: "2020-06-04T09:11:40.000Z",
			Publisher:   "O'Reilly Media",
			Pages:       254,
			Website:     "http://www.addyosmani.com/resources/essentialjsdesignpatterns/book/",
		},
	}
}

type message struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type login struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

type isbnReference struct {
	ISBN string `json:"isbn"`
}

type addBooks struct {
	UserID            string          `json:"userId"`
	CollectionOfIsbns []isbnReference `json:"collectionOfIsbns"`
}

type user struct {
	id       string
	name     string
	password string
	token    string
	books    []string
}

// Server is an in-memory BookStore.
type Server struct {
	lock sync.Mutex

	catalog []Book

	// users are keyed by ID, names and tokens index them.
	users  map[string]*user
	names  map[string]string
	tokens map[string]string

	rentStatus int
	dropRented bool

	router chi.Router
}

type Option func(*Server)

// WithCatalog replaces the default catalog.
func WithCatalog(books []Book) Option {
	return func(s *Server) {
		s.catalog = books
	}
}

// WithRentStatus sets the success status of a rent, the live service uses 201.
func WithRentStatus(status int) Option {
	return func(s *Server) {
		s.rentStatus = status
	}
}

// WithoutRentedBooks makes rents succeed but omit the books from the response.
func WithoutRentedBooks() Option {
	return func(s *Server) {
		s.dropRented = true
	}
}

func New(options ...Option) *Server {
	s := &Server{
		catalog:    DefaultCatalog(),
		users:      map[string]*user{},
		names:      map[string]string{},
		tokens:     map[string]string{},
		rentStatus: http.StatusCreated,
	}

	for _, o := range options {
		o(s)
	}

	router := chi.NewRouter()

	router.Route("/Account/v1", func(r chi.Router) {
		r.Post("/User", s.createUser)
		r.Get("/User/{userID}", s.getUser)
		r.Delete("/User/{userID}", s.deleteUser)
		r.Post("/GenerateToken", s.generateToken)
		r.Post("/Authorized", s.authorized)
	})

	router.Route("/BookStore/v1", func(r chi.Router) {
		r.Get("/Books", s.listBooks)
		r.Post("/Books", s.addBooks)
	})

	s.router = router

	return s
}

// NewTestServer starts a server that is closed when the test ends.
func NewTestServer(t testing.TB, options ...Option) (*Server, *httptest.Server) {
	t.Helper()

	s := New(options...)

	server := httptest.NewServer(s)
	t.Cleanup(server.Close)

	return s, server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// UserCount returns the number of registered users.
func (s *Server) UserCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return len(s.users)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, code, text string) {
	writeJSON(w, status, &message{Code: code, Message: text})
}

func strongPassword(password string) bool {
	var upper, lower, digit, special bool

	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}

	return len(password) >= 8 && upper && lower && digit && special
}

func decodeLogin(w http.ResponseWriter, r *http.Request) (*login, bool) {
	var request login

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.UserName == "" || request.Password == "" {
		writeMessage(w, http.StatusBadRequest, "1200", "UserName and Password required.")
		return nil, false
	}

	return &request, true
}

// authenticate resolves the bearer token to a user, callers must hold the lock.
func (s *Server) authenticate(r *http.Request) *user {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		return nil
	}

	id, ok := s.tokens[token]
	if !ok {
		return nil
	}

	return s.users[id]
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	request, ok := decodeLogin(w, r)
	if !ok {
		return
	}

	if !strongPassword(request.Password) {
		writeMessage(w, http.StatusBadRequest, "1300", "Passwords must have at least one non alphanumeric character, one digit ('0'-'9'), one uppercase ('A'-'Z'), one lowercase ('a'-'z'), one special character and Password must be eight characters or longer.")
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.names[request.UserName]; ok {
		writeMessage(w, http.StatusNotAcceptable, "1204", "User exists!")
		return
	}

	u := &user{
		id:       uuid.NewString(),
		name:     request.UserName,
		password: request.Password,
	}

	s.users[u.id] = u
	s.names[u.name] = u.id

	writeJSON(w, http.StatusCreated, map[string]any{
		"userID":   u.id,
		"username": u.name,
		"books":    []Book{},
	})
}

func (s *Server) generateToken(w http.ResponseWriter, r *http.Request) {
	request, ok := decodeLogin(w, r)
	if !ok {
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	id, ok := s.names[request.UserName]
	if !ok || s.users[id].password != request.Password {
		writeJSON(w, http.StatusOK, map[string]any{
			"token":   nil,
			"expires": nil,
			"status":  "Failed",
			"result":  "User authorization failed.",
		})

		return
	}

	u := s.users[id]

	if u.token != "" {
		delete(s.tokens, u.token)
	}

	u.token = uuid.NewString()
	s.tokens[u.token] = u.id

	writeJSON(w, http.StatusOK, map[string]any{
		"token":   u.token,
		"expires": time.Now().Add(7 * 24 * time.Hour).UTC().Format(time.RFC3339),
		"status":  "Success",
		"result":  "User authorized successfully.",
	})
}

func (s *Server) authorized(w http.ResponseWriter, r *http.Request) {
	request, ok := decodeLogin(w, r)
	if !ok {
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	id, ok := s.names[request.UserName]
	if !ok || s.users[id].password != request.Password {
		writeMessage(w, http.StatusNotFound, "1207", "User not found!")
		return
	}

	writeJSON(w, http.StatusOK, s.users[id].token != "")
}

func (s *Server) lookupBook(isbn string) (Book, bool) {
	for _, book := range s.catalog {
		if book.ISBN == isbn {
			return book, true
		}
	}

	return Book{}, false
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	defer s.lock.Unlock()

	u := s.authenticate(r)
	if u == nil {
		writeMessage(w, http.StatusUnauthorized, "1200", "User not authorized!")
		return
	}

	if u.id != chi.URLParam(r, "userID") {
		writeMessage(w, http.StatusUnauthorized, "1207", "User not found!")
		return
	}

	books := make([]Book, 0, len(u.books))

	for _, isbn := range u.books {
		if book, ok := s.lookupBook(isbn); ok {
			books = append(books, book)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"userId":   u.id,
		"username": u.name,
		"books":    books,
	})
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	defer s.lock.Unlock()

	u := s.authenticate(r)
	if u == nil {
		writeMessage(w, http.StatusUnauthorized, "1200", "User not authorized!")
		return
	}

	if u.id != chi.URLParam(r, "userID") {
		writeMessage(w, http.StatusOK, "1207", "User Id not correct!")
		return
	}

	delete(s.tokens, u.token)
	delete(s.names, u.name)
	delete(s.users, u.id)

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listBooks(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	defer s.lock.Unlock()

	books := s.catalog
	if books == nil {
		books = []Book{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"books": books,
	})
}

func (s *Server) addBooks(w http.ResponseWriter, r *http.Request) {
	var request addBooks

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.UserID == "" || len(request.CollectionOfIsbns) == 0 {
		writeMessage(w, http.StatusBadRequest, "1207", "User Id not correct!")
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	u := s.authenticate(r)
	if u == nil || u.id != request.UserID {
		writeMessage(w, http.StatusUnauthorized, "1200", "User not authorized!")
		return
	}

	added := make([]isbnReference, 0, len(request.CollectionOfIsbns))

	for _, ref := range request.CollectionOfIsbns {
		if err := openapi.ValidateISBN(ref.ISBN); err != nil {
			writeMessage(w, http.StatusBadRequest, "1205", "ISBN supplied is not available in Books Collection!")
			return
		}

		if _, ok := s.lookupBook(ref.ISBN); !ok {
			writeMessage(w, http.StatusBadRequest, "1205", "ISBN supplied is not available in Books Collection!")
			return
		}

		if slices.Contains(u.books, ref.ISBN) {
			writeMessage(w, http.StatusBadRequest, "1210", "ISBN already present in the User's Collection!")
			return
		}

		added = append(added, ref)
	}

	for _, ref := range added {
		u.books = append(u.books, ref.ISBN)
	}

	if s.dropRented {
		added = []isbnReference{}
	}

	writeJSON(w, s.rentStatus, map[string]any{
		"books": added,
	})
}
