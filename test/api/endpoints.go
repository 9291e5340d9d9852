/*
Copyright 2024-2025 the Unikorn Authors.
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
	"net/url"
)

// Endpoints contains all API endpoint patterns.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// Account endpoints.
func (e *Endpoints) CreateUser() string {
	return "/Account/v1/User"
}

func (e *Endpoints) GetUser(userID string) string {
	return fmt.Sprintf("/Account/v1/User/%s", url.PathEscape(userID))
}

func (e *Endpoints) DeleteUser(userID string) string {
	return fmt.Sprintf("/Account/v1/User/%s", url.PathEscape(userID))
}

func (e *Endpoints) GenerateToken() string {
	return "/Account/v1/GenerateToken"
}

func (e *Endpoints) Authorized() string {
	return "/Account/v1/Authorized"
}

// Catalog endpoints.
func (e *Endpoints) ListBooks() string {
	return "/BookStore/v1/Books"
}

func (e *Endpoints) AddBooks() string {
	return "/BookStore/v1/Books"
}
