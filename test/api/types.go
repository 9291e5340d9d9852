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

package api

import (
	"fmt"
)

// UserCredentials identify a user.  They are generated per scenario and
// reused across the whole of that scenario's request chain.
type UserCredentials struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// Validate checks both fields are populated.
func (c UserCredentials) Validate() error {
	if c.UserName == "" {
		return fmt.Errorf("%w: user name must not be empty", ErrInvalidArgument)
	}

	if c.Password == "" {
		return fmt.Errorf("%w: password must not be empty", ErrInvalidArgument)
	}

	return nil
}

// CreatedUser is the result of a successful user creation.
type CreatedUser struct {
	UserID   string
	UserName string
}

// AuthToken is a bearer token issued for a user.
type AuthToken struct {
	Token   string
	Expires string
	Status  string
	Result  string
}

// Book is a catalog entry.  Rent responses only populate ISBN.
type Book struct {
	ISBN        string `json:"isbn"`
	Title       string `json:"title,omitempty"`
	SubTitle    string `json:"subTitle,omitempty"`
	Author      string `json:"author,omitempty"`
	PublishDate string `json:"publish_date,omitempty"`
	Publisher   string `json:"publisher,omitempty"`
	Pages       int    `json:"pages,omitempty"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty"`
}

// RentedCollection is the set of books assigned to a user by a rent call.
type RentedCollection struct {
	Books []Book `json:"books"`
}

// ISBNs returns the isbn of every book in the collection, in order.
func (c *RentedCollection) ISBNs() []string {
	isbns := make([]string, len(c.Books))

	for i := range c.Books {
		isbns[i] = c.Books[i].ISBN
	}

	return isbns
}

// UserAccount is a user as read back from the service.
type UserAccount struct {
	UserID   string `json:"userId"`
	UserName string `json:"username"`
	Books    []Book `json:"books"`
}

// Wire records.
type createUserResponse struct {
	UserID   string `json:"userID"`
	Username string `json:"username"`
	Books    []Book `json:"books"`
}

type tokenResponse struct {
	Token   *string `json:"token"`
	Expires *string `json:"expires"`
	Status  string  `json:"status"`
	Result  string  `json:"result"`
}

type bookListResponse struct {
	Books []Book `json:"books"`
}

type isbnReference struct {
	ISBN string `json:"isbn"`
}

type addBooksRequest struct {
	UserID            string          `json:"userId"`
	CollectionOfIsbns []isbnReference `json:"collectionOfIsbns"`
}
